package importer

import (
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ogre-meshxml/internal/geometry"
	"ogre-meshxml/internal/scene"
	"ogre-meshxml/internal/weights"
)

func skinnedTriangle(t *testing.T) *gltf.Document {
	t.Helper()
	doc := gltf.NewDocument()

	pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}})
	norm := modeler.WriteNormal(doc, [][3]float32{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}})
	uv := modeler.WriteTextureCoord(doc, [][2]float32{{0, 0}, {1, 0}, {0, 1}})
	joints := modeler.WriteJoints(doc, [][4]uint8{{0, 1, 0, 0}, {1, 0, 0, 0}, {0, 0, 0, 0}})
	wts := modeler.WriteWeights(doc, [][4]float32{{0.75, 0.25, 0, 0}, {1, 0, 0, 0}, {1, 0, 0, 0}})
	idx := modeler.WriteIndices(doc, []uint16{0, 1, 2})

	doc.Meshes = []*gltf.Mesh{{
		Name: "tri",
		Primitives: []*gltf.Primitive{{
			Indices: gltf.Index(idx),
			Attributes: gltf.PrimitiveAttributes{
				gltf.POSITION:   pos,
				gltf.NORMAL:     norm,
				gltf.TEXCOORD_0: uv,
				gltf.JOINTS_0:   joints,
				gltf.WEIGHTS_0:  wts,
			},
		}},
	}}
	doc.Nodes = []*gltf.Node{
		{Name: "body", Mesh: gltf.Index(0), Skin: gltf.Index(0)},
		{Name: "hips"},
		{Name: "spine"},
	}
	doc.Skins = []*gltf.Skin{{Joints: []int{1, 2}}}
	return doc
}

func TestFromGLTF(t *testing.T) {
	s, err := FromGLTF(skinnedTriangle(t), Options{})
	require.NoError(t, err)
	require.Len(t, s.SubMeshes, 1)

	sub := s.SubMeshes[0]
	assert.Equal(t, "tri", sub.Name)
	require.Len(t, sub.Vertices, 3)
	assert.Equal(t, [3]float32{1, 0, 0}, sub.Vertices[1].Position)
	assert.Equal(t, []scene.Face{scene.Tri(0, 1, 2)}, sub.Faces)

	g, err := geometry.Extract(&sub)
	require.NoError(t, err)
	assert.Equal(t, geometry.Channels{HasNormals: true, HasTexCoord0: true}, g.Channels())

	require.Len(t, sub.Bones, 2)
	assert.Equal(t, "hips", sub.Bones[0].Name)
	assert.Equal(t, "spine", sub.Bones[1].Name)
	assert.Equal(t, []scene.VertexWeight{{Vertex: 0, Weight: 0.75}, {Vertex: 2, Weight: 1}}, sub.Bones[0].Weights)
	assert.Equal(t, []scene.VertexWeight{{Vertex: 0, Weight: 0.25}, {Vertex: 1, Weight: 1}}, sub.Bones[1].Weights)

	assert.Equal(t, []weights.Assignment{
		{Vertex: 0, Bone: 0, Weight: 0.75},
		{Vertex: 0, Bone: 1, Weight: 0.25},
		{Vertex: 1, Bone: 1, Weight: 1},
		{Vertex: 2, Bone: 0, Weight: 1},
	}, weights.Consolidate(sub.Bones))
}

func TestFromGLTFTangents(t *testing.T) {
	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}})
	tan := modeler.WriteTangent(doc, [][4]float32{{1, 0, 0, 1}, {1, 0, 0, 1}, {1, 0, 0, -1}})
	doc.Meshes = []*gltf.Mesh{{Name: "t", Primitives: []*gltf.Primitive{{
		Attributes: gltf.PrimitiveAttributes{gltf.POSITION: pos, gltf.TANGENT: tan},
	}}}}

	s, err := FromGLTF(doc, Options{})
	require.NoError(t, err)
	sub := s.SubMeshes[0]
	// non-indexed primitive: every three vertices form a face
	assert.Equal(t, []scene.Face{scene.Tri(0, 1, 2)}, sub.Faces)
	require.NotNil(t, sub.Vertices[2].Tangent)
	assert.Equal(t, [3]float32{1, 0, 0}, *sub.Vertices[2].Tangent)
	assert.Empty(t, sub.Bones)
}

func TestFromGLTFNonTriangleMode(t *testing.T) {
	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}})
	doc.Meshes = []*gltf.Mesh{{Primitives: []*gltf.Primitive{{
		Mode:       gltf.PrimitiveLines,
		Attributes: gltf.PrimitiveAttributes{gltf.POSITION: pos},
	}}}}

	_, err := FromGLTF(doc, Options{})
	assert.ErrorIs(t, err, geometry.ErrUnsupportedTopology)
}

func TestFromGLTFAccessorOutOfRange(t *testing.T) {
	for _, attr := range []string{gltf.POSITION, gltf.NORMAL, gltf.TEXCOORD_0, gltf.JOINTS_0, gltf.WEIGHTS_0, "indices"} {
		t.Run(attr, func(t *testing.T) {
			doc := skinnedTriangle(t)
			prim := doc.Meshes[0].Primitives[0]
			if attr == "indices" {
				prim.Indices = gltf.Index(99)
			} else {
				prim.Attributes[attr] = 99
			}

			var err error
			require.NotPanics(t, func() { _, err = FromGLTF(doc, Options{}) })
			assert.ErrorContains(t, err, "accessor 99 out of range")
		})
	}
}

func TestFromGLTFMultiplePrimitives(t *testing.T) {
	doc := gltf.NewDocument()
	a := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}})
	b := modeler.WritePosition(doc, [][3]float32{{0, 0, 1}, {1, 0, 1}, {0, 1, 1}})
	doc.Meshes = []*gltf.Mesh{{Name: "m", Primitives: []*gltf.Primitive{
		{Attributes: gltf.PrimitiveAttributes{gltf.POSITION: a}},
		{Attributes: gltf.PrimitiveAttributes{gltf.POSITION: b}},
	}}}

	s, err := FromGLTF(doc, Options{})
	require.NoError(t, err)
	require.Len(t, s.SubMeshes, 2)
	assert.Equal(t, "m_0", s.SubMeshes[0].Name)
	assert.Equal(t, "m_1", s.SubMeshes[1].Name)
}

func TestLoadGLTFFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tri.glb")
	require.NoError(t, gltf.SaveBinary(skinnedTriangle(t), path))

	s, err := Load(path, Options{})
	require.NoError(t, err)
	assert.NotEmpty(t, s.Name)
	require.Len(t, s.SubMeshes, 1)
	assert.Len(t, s.SubMeshes[0].Bones, 2)
}
