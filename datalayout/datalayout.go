// Package datalayout attaches degrees of freedom to the entity variants of
// a mesh topology and does the size and offset bookkeeping over the
// resulting flattened per-mesh vector. It adds no new index algebra: every
// dataset is a tensor product of an entity set with a flat dof set.
package datalayout

import (
	"fmt"

	"github.com/notargets/meshtopo/entityset"
	"github.com/notargets/meshtopo/topology"
)

// DofTag marks the dof factor of a dataset.
type DofTag struct{}

func (DofTag) String() string { return "dof" }

// LayoutTag identifies a dataset by the entity variant it decorates.
type LayoutTag struct {
	Entity entityset.Tag
}

func (t LayoutTag) String() string { return fmt.Sprintf("layout(%s)", t.Entity) }

// DataSet is an entity variant crossed with its per-entity dof interval: one
// point of the dataset addresses one dof of one entity. Product-shaped
// entity sets flatten into the dataset, so a dataset is always a flat
// product.
type DataSet struct {
	*entityset.TensorProductEntitySet
	entity entityset.EntitySet
	dofs   *entityset.UnstructuredEntitySet
}

// Entity returns the decorated entity set.
func (d *DataSet) Entity() entityset.EntitySet { return d.entity }

// DofsPerEntity returns how many dofs each entity carries.
func (d *DataSet) DofsPerEntity() int { return d.dofs.Size() }

// DataLayout maps every entity variant of a topology to a dataset and
// derives total size and per-codimension offset ranges. Both are computed
// from the datasets, never stored independently.
type DataLayout struct {
	topo     topology.MeshTopology
	order    []entityset.EntitySet
	datasets map[entityset.VariantKey]*DataSet
}

// New builds a layout giving every entity of codimension c the dof count
// dofsPerCodim[c]. Codimensions absent from the map carry no dofs.
func New(topo topology.MeshTopology, dofsPerCodim map[int]int) (*DataLayout, error) {
	if topo == nil {
		return nil, fmt.Errorf("%w: nil topology", topology.ErrConfiguration)
	}
	for codim, n := range dofsPerCodim {
		if n < 0 {
			return nil, fmt.Errorf("%w: negative dof count %d at codimension %d",
				topology.ErrConfiguration, n, codim)
		}
	}

	// Dof index names share the entity sets' scope, so reserve theirs.
	arena := entityset.NewArena()
	variants := topo.EntityVariants()
	arena.ReserveSet(variants...)

	l := &DataLayout{
		topo:     topo,
		order:    variants,
		datasets: make(map[entityset.VariantKey]*DataSet),
	}
	for _, v := range variants {
		dofs, err := entityset.NewUnstructured(arena, dofsPerCodim[v.Codimension()], 0, DofTag{})
		if err != nil {
			return nil, err
		}
		prod, err := entityset.NewTensorProduct(LayoutTag{Entity: v.Tag()}, v, dofs)
		if err != nil {
			return nil, err
		}
		l.datasets[entityset.KeyOf(v)] = &DataSet{
			TensorProductEntitySet: prod,
			entity:                 v,
			dofs:                   dofs,
		}
	}
	return l, nil
}

// Topology returns the laid-out topology.
func (l *DataLayout) Topology() topology.MeshTopology { return l.topo }

// DataSet returns the dataset decorating the given entity variant, or nil
// when the variant does not belong to the layout's topology.
func (l *DataLayout) DataSet(s entityset.EntitySet) *DataSet {
	return l.datasets[entityset.KeyOf(s)]
}

// Size returns the total dof count across all entity variants.
func (l *DataLayout) Size() int {
	size := 0
	for _, v := range l.order {
		size += l.datasets[entityset.KeyOf(v)].Size()
	}
	return size
}

// Range returns the half-open offset interval [start, end) holding all dofs
// of the given codimension within the flattened per-mesh vector, laid out as
// a prefix sum over codimensions 0 through Dimension() in that fixed order.
func (l *DataLayout) Range(codim int) (start, end int, err error) {
	if codim < 0 || codim > l.topo.Dimension() {
		return 0, 0, fmt.Errorf("%w: codimension %d outside [0, %d]",
			topology.ErrConfiguration, codim, l.topo.Dimension())
	}
	offset := 0
	for c := 0; c <= l.topo.Dimension(); c++ {
		total := 0
		for _, v := range l.topo.EntityVariants(c) {
			total += l.datasets[entityset.KeyOf(v)].Size()
		}
		if c == codim {
			return offset, offset + total, nil
		}
		offset += total
	}
	return 0, 0, nil
}

// ClosureDofs returns one dataset point per dof supported on the topological
// closure of p: for every point in the closure carrying dofs, its entity
// multi-index extended by each dof position.
func (l *DataLayout) ClosureDofs(p topology.Point) ([]topology.Point, error) {
	closure, err := topology.Closure(l.topo, p)
	if err != nil {
		return nil, err
	}
	var out []topology.Point
	for _, q := range closure {
		ds := l.datasets[entityset.KeyOf(q.Set)]
		if ds == nil || ds.DofsPerEntity() == 0 {
			continue
		}
		for d := 0; d < ds.DofsPerEntity(); d++ {
			indices := make([]int, len(q.Indices)+1)
			copy(indices, q.Indices)
			indices[len(q.Indices)] = d
			out = append(out, topology.NewPoint(ds, indices...))
		}
	}
	return out, nil
}
