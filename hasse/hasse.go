// Package hasse derives global views of a finite mesh topology: its
// incidence relation as an explicit directed graph (the Hasse diagram, with
// DOT export and a topological-sort check of acyclicity) and dense 0/1
// incidence matrices between two codimensions.
package hasse

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/graph/encoding/dot"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/meshtopo/entityset"
	"github.com/notargets/meshtopo/topology"
)

// node is one mesh point in the diagram. IDs are stable: variant-major in
// EntityVariants order, flat offset within the variant minor.
type node struct {
	id    int64
	point topology.Point
}

func (n node) ID() int64 { return n.id }

func (n node) DOTID() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s_c%d_o%d", n.point.Set.Tag(), n.point.Codimension(),
		n.point.Set.Offset(n.point.Indices))
	s := b.String()
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '_' {
			out = append(out, r)
		} else {
			out = append(out, '_')
		}
	}
	return string(out)
}

// Diagram is the Hasse diagram of a topology: one node per point, one edge
// per cone step (from each point to each member of its cone).
type Diagram struct {
	g      *simple.DirectedGraph
	points map[int64]topology.Point
	bases  map[entityset.VariantKey]int64
}

// New enumerates every point of every variant and records every cone step as
// a directed edge.
func New(t topology.MeshTopology) (*Diagram, error) {
	d := &Diagram{
		g:      simple.NewDirectedGraph(),
		points: make(map[int64]topology.Point),
		bases:  make(map[entityset.VariantKey]int64),
	}

	var next int64
	for _, set := range t.EntityVariants() {
		d.bases[entityset.KeyOf(set)] = next
		next += int64(set.Size())
	}

	for _, set := range t.EntityVariants() {
		for _, multi := range entityset.Enumerate(set) {
			p := topology.NewPoint(set, multi...)
			d.addNode(p)
		}
	}
	for _, set := range t.EntityVariants() {
		for _, multi := range entityset.Enumerate(set) {
			p := topology.NewPoint(set, multi...)
			cone, err := t.Cone(p)
			if err != nil {
				return nil, err
			}
			from := d.id(p)
			for _, q := range cone {
				d.g.SetEdge(d.g.NewEdge(d.g.Node(from), d.g.Node(d.id(q))))
			}
		}
	}
	return d, nil
}

func (d *Diagram) id(p topology.Point) int64 {
	return d.bases[entityset.KeyOf(p.Set)] + int64(p.Set.Offset(p.Indices))
}

func (d *Diagram) addNode(p topology.Point) {
	id := d.id(p)
	if _, ok := d.points[id]; ok {
		return
	}
	d.points[id] = p
	d.g.AddNode(node{id: id, point: p})
}

// NumPoints returns the node count.
func (d *Diagram) NumPoints() int { return d.g.Nodes().Len() }

// NumIncidences returns the edge count, one per cone step.
func (d *Diagram) NumIncidences() int { return d.g.Edges().Len() }

// Point returns the mesh point behind a node ID.
func (d *Diagram) Point(id int64) (topology.Point, bool) {
	p, ok := d.points[id]
	return p, ok
}

// Sorted returns the points in a topological order of the cone relation. An
// error means the relation has a cycle, which a well-formed topology cannot
// produce: codimension strictly increases along every edge.
func (d *Diagram) Sorted() ([]topology.Point, error) {
	nodes, err := topo.Sort(d.g)
	if err != nil {
		return nil, fmt.Errorf("hasse: cone relation is not a DAG: %w", err)
	}
	out := make([]topology.Point, len(nodes))
	for i, n := range nodes {
		out[i] = d.points[n.ID()]
	}
	return out, nil
}

// DOT marshals the diagram in Graphviz DOT form for inspection.
func (d *Diagram) DOT(name string) ([]byte, error) {
	return dot.Marshal(d.g, name, "", "  ")
}

// IncidenceMatrix builds the dense 0/1 matrix relating the entities of two
// codimensions: rows run over all points of codimension codimA (variants
// concatenated in EntityVariants order, flat offsets within each), columns
// over codimension codimB, and an entry is 1 exactly when the row entity and
// column entity are related through repeated cone or support steps.
func IncidenceMatrix(t topology.MeshTopology, codimA, codimB int) (*mat.Dense, error) {
	rowSets := t.EntityVariants(codimA)
	colSets := t.EntityVariants(codimB)
	if len(rowSets) == 0 || len(colSets) == 0 {
		return nil, fmt.Errorf("%w: no variants at codimension %d or %d",
			topology.ErrConfiguration, codimA, codimB)
	}

	rows := 0
	rowBase := make(map[entityset.VariantKey]int)
	for _, s := range rowSets {
		rowBase[entityset.KeyOf(s)] = rows
		rows += s.Size()
	}
	cols := 0
	colBase := make(map[entityset.VariantKey]int)
	for _, s := range colSets {
		colBase[entityset.KeyOf(s)] = cols
		cols += s.Size()
	}

	m := mat.NewDense(rows, cols, nil)
	for _, s := range rowSets {
		base := rowBase[entityset.KeyOf(s)]
		for _, multi := range entityset.Enumerate(s) {
			p := topology.NewPoint(s, multi...)
			row := base + s.Offset(multi)
			for _, target := range colSets {
				if codimA == codimB && !entityset.SameVariant(s, target) {
					continue
				}
				related, err := topology.IndexRelation(t, p, target)
				if err != nil {
					return nil, err
				}
				cb := colBase[entityset.KeyOf(target)]
				for _, q := range related {
					m.Set(row, cb+q.Set.Offset(q.Indices), 1)
				}
			}
		}
	}
	return m, nil
}
