package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ogre-meshxml/internal/scene"
)

func TestIdentityRemap(t *testing.T) {
	sub := &scene.SubMesh{Vertices: make([]scene.Vertex, 3)}
	table, err := IdentityRemap{}.Remap(sub)
	require.NoError(t, err)
	assert.Equal(t, Table{0: {0}, 1: {1}, 2: {2}}, table)

	_, ok := table.Lookup(3)
	assert.False(t, ok)
}

func TestSourceRemapFansOut(t *testing.T) {
	// Source vertex 0 was split on a uv seam into local 0 and 2.
	sub := &scene.SubMesh{Vertices: []scene.Vertex{
		{Source: 0},
		{Source: 1},
		{Source: 0},
		{Source: 5},
	}}
	table, err := SourceRemap{}.Remap(sub)
	require.NoError(t, err)

	local, ok := table.Lookup(0)
	require.True(t, ok)
	assert.Equal(t, []int{0, 2}, local)

	local, ok = table.Lookup(5)
	require.True(t, ok)
	assert.Equal(t, []int{3}, local)

	_, ok = table.Lookup(2)
	assert.False(t, ok)
}

func TestSourceRemapNegativeSource(t *testing.T) {
	sub := &scene.SubMesh{Vertices: []scene.Vertex{{Source: 0}, {Source: -1}}}
	_, err := SourceRemap{}.Remap(sub)
	assert.Error(t, err)
}

func TestRemappersAgreeWithoutSplits(t *testing.T) {
	sub := &scene.SubMesh{Vertices: []scene.Vertex{{Source: 0}, {Source: 1}, {Source: 2}}}
	a, err := IdentityRemap{}.Remap(sub)
	require.NoError(t, err)
	b, err := SourceRemap{}.Remap(sub)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
