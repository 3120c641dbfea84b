// Package weights regroups bone-major skinning weights into the
// vertex-major assignment list the mesh document expects.
package weights

import (
	"cmp"
	"log/slog"
	"slices"

	"cogentcore.org/core/base/ordmap"

	"ogre-meshxml/internal/geometry"
	"ogre-meshxml/internal/scene"
)

// Assignment binds one vertex to one bone with a non-zero weight.
type Assignment struct {
	Vertex int
	Bone   int
	Weight float32
}

// Consolidate converts per-bone weight lists into assignments ordered by
// ascending vertex index. Assignments that share a vertex keep the order in
// which their bones were visited. Zero weights are dropped and no
// normalization is applied.
func Consolidate(bones []scene.Bone) []Assignment {
	return consolidate(bones, func(v int) ([]int, bool) { return []int{v}, true })
}

// ConsolidateRemapped is Consolidate with every source vertex index first
// rewritten through table. A source vertex that fans out to several local
// vertices yields one assignment per local vertex. Weights on source
// vertices missing from table (vertices no face uses) are dropped.
func ConsolidateRemapped(bones []scene.Bone, table geometry.Table) []Assignment {
	return consolidate(bones, table.Lookup)
}

func consolidate(bones []scene.Bone, resolve func(int) ([]int, bool)) []Assignment {
	byVertex := ordmap.New[int, []Assignment]()
	n := 0
	dropped := 0
	for bi, bone := range bones {
		for _, w := range bone.Weights {
			if w.Weight == 0 {
				continue
			}
			local, ok := resolve(w.Vertex)
			if !ok {
				dropped++
				continue
			}
			for _, v := range local {
				list, _ := byVertex.ValueByKeyTry(v)
				byVertex.Add(v, append(list, Assignment{Vertex: v, Bone: bi, Weight: w.Weight}))
				n++
			}
		}
	}

	// Keys are unique in the ordmap, so a stable sort by key yields the
	// ascending-vertex order while each value keeps its insertion order.
	groups := slices.Clone(byVertex.Order)
	slices.SortStableFunc(groups, func(a, b ordmap.KeyValue[int, []Assignment]) int {
		return cmp.Compare(a.Key, b.Key)
	})

	out := make([]Assignment, 0, n)
	for _, g := range groups {
		out = append(out, g.Value...)
	}
	if dropped > 0 {
		slog.Debug("weights: dropped weights on unmapped vertices", "count", dropped)
	}
	return out
}
