package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ogre-meshxml/internal/geometry"
	"ogre-meshxml/internal/scene"
)

const cubeCornerOBJ = `# two triangles sharing an edge, split on a uv seam
o corner
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vt 0.5 0.5
vn 0 0 1
f 1/1/1 2/2/1 3/3/1
f 1/5/1 3/3/1 4/4/1
`

func TestReadOBJUnifiesCorners(t *testing.T) {
	s, err := ReadOBJ(strings.NewReader(cubeCornerOBJ), Options{})
	require.NoError(t, err)
	require.Len(t, s.SubMeshes, 1)

	sub := s.SubMeshes[0]
	assert.Equal(t, "corner", sub.Name)
	// position 1 appears with two different uvs
	require.Len(t, sub.Vertices, 5)
	assert.Equal(t, []scene.Face{scene.Tri(0, 1, 2), scene.Tri(3, 2, 4)}, sub.Faces)

	assert.Equal(t, 0, sub.Vertices[0].Source)
	assert.Equal(t, 0, sub.Vertices[3].Source)
	assert.Equal(t, [2]float32{0.5, 0.5}, *sub.Vertices[3].TexCoord)
	assert.Equal(t, [3]float32{0, 0, 1}, *sub.Vertices[4].Normal)

	g, err := geometry.Extract(&sub)
	require.NoError(t, err)
	assert.Equal(t, geometry.Channels{HasNormals: true, HasTexCoord0: true}, g.Channels())

	table, err := geometry.SourceRemap{}.Remap(&sub)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 3}, table[0])
}

func TestReadOBJGroupsAndMaterials(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
v 0 1 0
g first
f 1 2 3
usemtl other
f 3 2 1
g empty
g last
f -3 -2 -1
`
	s, err := ReadOBJ(strings.NewReader(src), Options{})
	require.NoError(t, err)
	require.Len(t, s.SubMeshes, 3)
	assert.Equal(t, "first", s.SubMeshes[0].Name)
	assert.Equal(t, "first", s.SubMeshes[1].Name)
	assert.Equal(t, "last", s.SubMeshes[2].Name)
	assert.Equal(t, []scene.Face{scene.Tri(0, 1, 2)}, s.SubMeshes[2].Faces)
}

func TestReadOBJQuads(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
f 1 2 3 4
`
	s, err := ReadOBJ(strings.NewReader(src), Options{})
	require.NoError(t, err)
	assert.Equal(t, []scene.Face{{Indices: []uint32{0, 1, 2, 3}}}, s.SubMeshes[0].Faces)
	assert.ErrorIs(t, geometry.CheckTopology(s), geometry.ErrUnsupportedTopology)

	s, err = ReadOBJ(strings.NewReader(src), Options{Triangulate: true})
	require.NoError(t, err)
	assert.Equal(t, []scene.Face{scene.Tri(0, 1, 2), scene.Tri(0, 2, 3)}, s.SubMeshes[0].Faces)
}

func TestReadOBJErrors(t *testing.T) {
	tests := map[string]string{
		"index out of range": "v 0 0 0\nf 1 2 3\n",
		"zero index":         "v 0 0 0\nv 0 0 0\nv 0 0 0\nf 0 1 2\n",
		"bad float":          "v 0 zero 0\n",
		"short face":         "v 0 0 0\nv 1 0 0\nf 1 2\n",
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ReadOBJ(strings.NewReader(src), Options{})
			assert.ErrorContains(t, err, "line")
		})
	}
}

func TestLoadOBJWithMaterialLibrary(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hero.mtl"), []byte("newmtl skin\nmap_Kd -s 1 1 1 textures/hero.png\n"), 0644))
	obj := "mtllib hero.mtl\nv 0 0 0\nv 1 0 0\nv 0 1 0\nusemtl skin\nf 1 2 3\n"
	path := filepath.Join(dir, "hero.obj")
	require.NoError(t, os.WriteFile(path, []byte(obj), 0644))

	s, err := Load(path, Options{})
	require.NoError(t, err)
	assert.Equal(t, "hero", s.Name)
	require.Len(t, s.SubMeshes, 1)
	assert.Equal(t, filepath.Join(dir, "textures", "hero.png"), s.SubMeshes[0].Texture)
}
