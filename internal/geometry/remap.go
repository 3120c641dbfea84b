package geometry

import (
	"fmt"
	"slices"

	"ogre-meshxml/internal/scene"
)

// Table maps a source vertex index, as referenced by bone weights, to the
// document-local vertex indices that were produced from it. A source vertex
// split on a normal or uv seam maps to several local vertices.
type Table map[int][]int

// Lookup returns the local indices for a source vertex.
func (t Table) Lookup(source int) ([]int, bool) {
	local, ok := t[source]
	return local, ok
}

// Remapper builds the source-to-local index table for a sub-mesh.
type Remapper interface {
	Remap(sub *scene.SubMesh) (Table, error)
}

// IdentityRemap maps source vertex i to local vertex i. It suits importers
// that never split vertices. Indices past the last vertex have no entry.
type IdentityRemap struct{}

func (IdentityRemap) Remap(sub *scene.SubMesh) (Table, error) {
	t := make(Table, len(sub.Vertices))
	for i := range sub.Vertices {
		t[i] = []int{i}
	}
	return t, nil
}

// SourceRemap groups local vertices by their recorded Vertex.Source.
// Local indices for one source vertex are kept in ascending order.
type SourceRemap struct{}

func (SourceRemap) Remap(sub *scene.SubMesh) (Table, error) {
	t := make(Table)
	for i := range sub.Vertices {
		src := sub.Vertices[i].Source
		if src < 0 {
			return nil, fmt.Errorf("geometry: vertex %d has negative source index %d", i, src)
		}
		t[src] = append(t[src], i)
	}
	for _, local := range t {
		slices.Sort(local)
	}
	return t, nil
}
