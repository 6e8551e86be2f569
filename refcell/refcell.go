// Package refcell describes canonical reference cells: which entities of
// each dimension a cell has and which vertices each entity touches. The
// tables are the external incidence data consumed read-only by table-based
// mesh topologies at construction time.
//
// Entity numbering is canonical and combinatorial: simplex entities of
// dimension d are the (d+1)-subsets of the vertex list in lexicographic
// order; hypercube entities of dimension d are ordered free-axis-subset
// major, fixed-corner minor. Only vertex-set containment between adjacent
// dimensions matters to consumers, so any consistent numbering serves.
package refcell

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/stat/combin"
)

// ErrConfiguration reports an unsupported cell request.
var ErrConfiguration = errors.New("refcell: invalid configuration")

// Kind is the shape of a reference cell.
type Kind int

const (
	Vertex Kind = iota
	Line
	Tri
	Quad
	Tet
	Hex
)

func (k Kind) String() string {
	switch k {
	case Vertex:
		return "vertex"
	case Line:
		return "interval"
	case Tri:
		return "triangle"
	case Quad:
		return "quadrilateral"
	case Tet:
		return "tetrahedron"
	case Hex:
		return "hexahedron"
	}
	return "unknown"
}

// Properties contains metadata describing a reference cell.
type Properties struct {
	Name        string // Full descriptive name (e.g. "tetrahedron")
	ShortName   string // Abbreviated name (e.g. "tet")
	Kind        Kind   // Cell shape
	Dimension   int    // Spatial dimension
	NumVertices int
	NumEdges    int
	NumFaces    int // Codimension-1 entities for 3D cells, 0 otherwise
	NumCells    int // Always 1
}

// Cell is an immutable reference-cell description. topology[d][e] lists the
// sorted vertex IDs of entity e of dimension d.
type Cell struct {
	kind     Kind
	dim      int
	topology [][][]int
}

// Simplex returns the reference simplex of the given dimension (0 through 3:
// vertex, interval, triangle, tetrahedron).
func Simplex(dim int) (*Cell, error) {
	if dim < 0 || dim > 3 {
		return nil, fmt.Errorf("%w: no reference simplex of dimension %d", ErrConfiguration, dim)
	}
	kinds := []Kind{Vertex, Line, Tri, Tet}
	topology := make([][][]int, dim+1)
	for d := 0; d <= dim; d++ {
		// Entities of dimension d are the (d+1)-subsets of the vertices.
		topology[d] = subsets(dim+1, d+1)
	}
	return &Cell{kind: kinds[dim], dim: dim, topology: topology}, nil
}

// Hypercube returns the reference hypercube of the given dimension (0 through
// 3: vertex, interval, quadrilateral, hexahedron). Vertex v has coordinate
// bit k along axis k.
func Hypercube(dim int) (*Cell, error) {
	if dim < 0 || dim > 3 {
		return nil, fmt.Errorf("%w: no reference hypercube of dimension %d", ErrConfiguration, dim)
	}
	kinds := []Kind{Vertex, Line, Quad, Hex}
	topology := make([][][]int, dim+1)
	for d := 0; d <= dim; d++ {
		topology[d] = hypercubeEntities(dim, d)
	}
	return &Cell{kind: kinds[dim], dim: dim, topology: topology}, nil
}

// subsets lists all k-subsets of [0, n) in lexicographic order.
func subsets(n, k int) [][]int {
	if k == 0 {
		return [][]int{{}}
	}
	return combin.Combinations(n, k)
}

// hypercubeEntities lists the dimension-d entities of a dim-hypercube: pick d
// free axes, then one corner value for each fixed axis; the entity's vertices
// range over the free axes.
func hypercubeEntities(dim, d int) [][]int {
	var out [][]int
	for _, free := range subsets(dim, d) {
		isFree := make([]bool, dim)
		for _, a := range free {
			isFree[a] = true
		}
		var fixed []int
		for a := 0; a < dim; a++ {
			if !isFree[a] {
				fixed = append(fixed, a)
			}
		}
		for corner := 0; corner < 1<<len(fixed); corner++ {
			verts := make([]int, 0, 1<<d)
			for span := 0; span < 1<<d; span++ {
				v := 0
				for bi, a := range fixed {
					if corner&(1<<bi) != 0 {
						v |= 1 << a
					}
				}
				for bi, a := range free {
					if span&(1<<bi) != 0 {
						v |= 1 << a
					}
				}
				verts = append(verts, v)
			}
			out = append(out, sortInts(verts))
		}
	}
	return out
}

func sortInts(v []int) []int {
	for i := 1; i < len(v); i++ {
		for j := i; j > 0 && v[j] < v[j-1]; j-- {
			v[j], v[j-1] = v[j-1], v[j]
		}
	}
	return v
}

// Kind returns the cell shape.
func (c *Cell) Kind() Kind { return c.kind }

// Dimension returns the cell's spatial dimension.
func (c *Cell) Dimension() int { return c.dim }

// NumEntities returns how many entities of the given dimension the cell has.
func (c *Cell) NumEntities(dim int) int {
	if dim < 0 || dim > c.dim {
		return 0
	}
	return len(c.topology[dim])
}

// EntityCounts returns the entity count per dimension 0..Dimension().
func (c *Cell) EntityCounts() []int {
	counts := make([]int, c.dim+1)
	for d := range counts {
		counts[d] = len(c.topology[d])
	}
	return counts
}

// NumVertices returns the vertex count.
func (c *Cell) NumVertices() int { return c.NumEntities(0) }

// EntityVertices returns the sorted vertex IDs of entity e of dimension dim.
func (c *Cell) EntityVertices(dim, e int) ([]int, error) {
	if dim < 0 || dim > c.dim {
		return nil, fmt.Errorf("%w: %s has no entities of dimension %d", ErrConfiguration, c.kind, dim)
	}
	if e < 0 || e >= len(c.topology[dim]) {
		return nil, fmt.Errorf("%w: %s has %d entities of dimension %d, requested %d",
			ErrConfiguration, c.kind, len(c.topology[dim]), dim, e)
	}
	return c.topology[dim][e], nil
}

// Properties returns the cell's metadata.
func (c *Cell) Properties() Properties {
	p := Properties{
		Name:      c.kind.String(),
		ShortName: shortNames[c.kind],
		Kind:      c.kind,
		Dimension: c.dim,
		NumCells:  1,
	}
	p.NumVertices = c.NumEntities(0)
	if c.dim >= 1 {
		p.NumEdges = c.NumEntities(1)
	}
	if c.dim >= 3 {
		p.NumFaces = c.NumEntities(2)
	}
	return p
}

var shortNames = map[Kind]string{
	Vertex: "pt",
	Line:   "line",
	Tri:    "tri",
	Quad:   "quad",
	Tet:    "tet",
	Hex:    "hex",
}
