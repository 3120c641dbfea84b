package weights

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ogre-meshxml/internal/geometry"
	"ogre-meshxml/internal/scene"
)

func TestConsolidateDropsZeroAndGroupsByVertex(t *testing.T) {
	bones := []scene.Bone{
		{Name: "B0", Weights: []scene.VertexWeight{{Vertex: 2, Weight: 0.5}}},
		{Name: "B1", Weights: []scene.VertexWeight{{Vertex: 0, Weight: 0}, {Vertex: 2, Weight: 0.5}}},
	}
	assert.Equal(t, []Assignment{
		{Vertex: 2, Bone: 0, Weight: 0.5},
		{Vertex: 2, Bone: 1, Weight: 0.5},
	}, Consolidate(bones))
}

func TestConsolidateAscendingVertexStableBones(t *testing.T) {
	bones := []scene.Bone{
		{Weights: []scene.VertexWeight{{Vertex: 7, Weight: 0.25}, {Vertex: 1, Weight: 1}}},
		{Weights: []scene.VertexWeight{{Vertex: 3, Weight: 0.5}, {Vertex: 7, Weight: 0.25}}},
		{Weights: []scene.VertexWeight{{Vertex: 7, Weight: 0.5}}},
	}
	assert.Equal(t, []Assignment{
		{Vertex: 1, Bone: 0, Weight: 1},
		{Vertex: 3, Bone: 1, Weight: 0.5},
		{Vertex: 7, Bone: 0, Weight: 0.25},
		{Vertex: 7, Bone: 1, Weight: 0.25},
		{Vertex: 7, Bone: 2, Weight: 0.5},
	}, Consolidate(bones))
}

func TestConsolidateNoNormalization(t *testing.T) {
	bones := []scene.Bone{
		{Weights: []scene.VertexWeight{{Vertex: 0, Weight: 0.9}}},
		{Weights: []scene.VertexWeight{{Vertex: 0, Weight: 0.9}}},
	}
	got := Consolidate(bones)
	var sum float32
	for _, a := range got {
		sum += a.Weight
	}
	assert.InDelta(t, 1.8, sum, 1e-6)
}

func TestConsolidateEmpty(t *testing.T) {
	assert.Empty(t, Consolidate(nil))
	assert.Empty(t, Consolidate([]scene.Bone{{Name: "idle"}}))
	assert.Empty(t, Consolidate([]scene.Bone{{Weights: []scene.VertexWeight{{Vertex: 4, Weight: 0}}}}))
}

func TestConsolidateRemappedFansOut(t *testing.T) {
	table := geometry.Table{0: {0, 3}, 1: {1}, 2: {2}}
	bones := []scene.Bone{
		{Weights: []scene.VertexWeight{{Vertex: 0, Weight: 0.75}, {Vertex: 2, Weight: 1}}},
		{Weights: []scene.VertexWeight{{Vertex: 0, Weight: 0.25}}},
	}
	assert.Equal(t, []Assignment{
		{Vertex: 0, Bone: 0, Weight: 0.75},
		{Vertex: 0, Bone: 1, Weight: 0.25},
		{Vertex: 2, Bone: 0, Weight: 1},
		{Vertex: 3, Bone: 0, Weight: 0.75},
		{Vertex: 3, Bone: 1, Weight: 0.25},
	}, ConsolidateRemapped(bones, table))
}

func TestConsolidateRemappedDropsUnmapped(t *testing.T) {
	table := geometry.Table{0: {0}}
	bones := []scene.Bone{
		{Weights: []scene.VertexWeight{{Vertex: 9, Weight: 1}, {Vertex: 0, Weight: 0.5}}},
	}
	assert.Equal(t, []Assignment{{Vertex: 0, Bone: 0, Weight: 0.5}}, ConsolidateRemapped(bones, table))
}
