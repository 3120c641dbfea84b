package importer

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"ogre-meshxml/internal/geometry"
	"ogre-meshxml/internal/scene"
)

// LoadGLTF reads a .gltf or .glb file.
func LoadGLTF(path string, opts Options) (*scene.Scene, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("importer: open %s: %w", path, err)
	}
	s, err := FromGLTF(doc, opts)
	if err != nil {
		return nil, fmt.Errorf("importer: %s: %w", path, err)
	}
	return s, nil
}

// FromGLTF converts every primitive of every mesh into a sub-mesh.
// JOINTS_0/WEIGHTS_0 are regrouped per joint slot of the skin bound to the
// mesh. Only triangle-list primitives are accepted.
func FromGLTF(doc *gltf.Document, opts Options) (*scene.Scene, error) {
	s := &scene.Scene{}
	if len(doc.Scenes) > 0 {
		s.Name = doc.Scenes[0].Name
	}

	for mi, mesh := range doc.Meshes {
		skin := meshSkin(doc, mi)
		for pi, prim := range mesh.Primitives {
			sub, err := readPrimitive(doc, prim, skin, opts)
			if err != nil {
				return nil, fmt.Errorf("mesh %d primitive %d: %w", mi, pi, err)
			}
			sub.Name = mesh.Name
			if len(mesh.Primitives) > 1 {
				sub.Name = fmt.Sprintf("%s_%d", mesh.Name, pi)
			}
			s.SubMeshes = append(s.SubMeshes, *sub)
		}
	}
	return s, nil
}

// meshSkin returns the skin of the first node instancing mesh mi.
func meshSkin(doc *gltf.Document, mi int) *gltf.Skin {
	for _, n := range doc.Nodes {
		if n.Mesh != nil && *n.Mesh == mi && n.Skin != nil && *n.Skin < len(doc.Skins) {
			return doc.Skins[*n.Skin]
		}
	}
	return nil
}

func readPrimitive(doc *gltf.Document, prim *gltf.Primitive, skin *gltf.Skin, opts Options) (*scene.SubMesh, error) {
	if prim.Mode != gltf.PrimitiveTriangles {
		return nil, fmt.Errorf("primitive mode %d: %w", prim.Mode, geometry.ErrUnsupportedTopology)
	}

	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return nil, fmt.Errorf("primitive has no POSITION attribute")
	}
	acc, err := accessor(doc, posIdx, "POSITION")
	if err != nil {
		return nil, err
	}
	positions, err := modeler.ReadPosition(doc, acc, nil)
	if err != nil {
		return nil, fmt.Errorf("read positions: %w", err)
	}

	sub := &scene.SubMesh{Vertices: make([]scene.Vertex, len(positions)), Texture: baseColorTexture(doc, prim)}
	for i, p := range positions {
		sub.Vertices[i] = scene.Vertex{Position: p, Source: i}
	}

	if idx, ok := prim.Attributes["NORMAL"]; ok {
		acc, err := accessor(doc, idx, "NORMAL")
		if err != nil {
			return nil, err
		}
		normals, err := modeler.ReadNormal(doc, acc, nil)
		if err != nil {
			return nil, fmt.Errorf("read normals: %w", err)
		}
		for i := range normals {
			if i < len(sub.Vertices) {
				n := normals[i]
				sub.Vertices[i].Normal = &n
			}
		}
	}

	// TANGENT is VEC4; w is handedness and is not serialized.
	if idx, ok := prim.Attributes["TANGENT"]; ok {
		acc, err := accessor(doc, idx, "TANGENT")
		if err != nil {
			return nil, err
		}
		tangents, err := modeler.ReadTangent(doc, acc, nil)
		if err != nil {
			return nil, fmt.Errorf("read tangents: %w", err)
		}
		for i := range tangents {
			if i < len(sub.Vertices) {
				t := [3]float32{tangents[i][0], tangents[i][1], tangents[i][2]}
				sub.Vertices[i].Tangent = &t
			}
		}
	}

	if idx, ok := prim.Attributes["TEXCOORD_0"]; ok {
		acc, err := accessor(doc, idx, "TEXCOORD_0")
		if err != nil {
			return nil, err
		}
		uvs, err := modeler.ReadTextureCoord(doc, acc, nil)
		if err != nil {
			return nil, fmt.Errorf("read texcoords: %w", err)
		}
		for i := range uvs {
			if i < len(sub.Vertices) {
				t := uvs[i]
				sub.Vertices[i].TexCoord = &t
			}
		}
	}

	if err := readFaces(doc, prim, sub, opts); err != nil {
		return nil, err
	}
	if err := readSkinning(doc, prim, skin, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func readFaces(doc *gltf.Document, prim *gltf.Primitive, sub *scene.SubMesh, opts Options) error {
	var indices []uint32
	if prim.Indices != nil {
		acc, err := accessor(doc, *prim.Indices, "indices")
		if err != nil {
			return err
		}
		indices, err = modeler.ReadIndices(doc, acc, nil)
		if err != nil {
			return fmt.Errorf("read indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(sub.Vertices))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}
	if len(indices)%3 != 0 {
		return fmt.Errorf("%d indices do not form triangles: %w", len(indices), geometry.ErrUnsupportedTopology)
	}
	for i := 0; i+2 < len(indices); i += 3 {
		addFace(sub, []uint32{indices[i], indices[i+1], indices[i+2]}, opts)
	}
	return nil
}

// accessor returns the accessor a primitive refers to, rejecting indices a
// malformed file points past the accessor list.
func accessor(doc *gltf.Document, idx int, what string) (*gltf.Accessor, error) {
	if idx < 0 || idx >= len(doc.Accessors) || doc.Accessors[idx] == nil {
		return nil, fmt.Errorf("%s accessor %d out of range (%d accessors)", what, idx, len(doc.Accessors))
	}
	return doc.Accessors[idx], nil
}

// readSkinning regroups the four per-vertex influences into bone-major
// weight lists indexed by joint slot. Zero weights are padding and skipped.
func readSkinning(doc *gltf.Document, prim *gltf.Primitive, skin *gltf.Skin, sub *scene.SubMesh) error {
	jIdx, hasJoints := prim.Attributes["JOINTS_0"]
	wIdx, hasWeights := prim.Attributes["WEIGHTS_0"]
	if !hasJoints || !hasWeights {
		return nil
	}

	jAcc, err := accessor(doc, jIdx, "JOINTS_0")
	if err != nil {
		return err
	}
	wAcc, err := accessor(doc, wIdx, "WEIGHTS_0")
	if err != nil {
		return err
	}
	joints, err := modeler.ReadJoints(doc, jAcc, nil)
	if err != nil {
		return fmt.Errorf("read joints: %w", err)
	}
	weights, err := modeler.ReadWeights(doc, wAcc, nil)
	if err != nil {
		return fmt.Errorf("read weights: %w", err)
	}

	boneCount := 0
	if skin != nil {
		boneCount = len(skin.Joints)
	}
	for _, j := range joints {
		for _, slot := range j {
			boneCount = max(boneCount, int(slot)+1)
		}
	}

	bones := make([]scene.Bone, boneCount)
	for b := range bones {
		if skin != nil && b < len(skin.Joints) && skin.Joints[b] < len(doc.Nodes) {
			bones[b].Name = doc.Nodes[skin.Joints[b]].Name
		}
	}
	for vi := 0; vi < len(joints) && vi < len(weights); vi++ {
		for k := 0; k < 4; k++ {
			if weights[vi][k] == 0 {
				continue
			}
			b := int(joints[vi][k])
			bones[b].Weights = append(bones[b].Weights, scene.VertexWeight{Vertex: vi, Weight: weights[vi][k]})
		}
	}
	sub.Bones = bones
	return nil
}

// baseColorTexture returns the image URI of the primitive's base color
// texture, if any.
func baseColorTexture(doc *gltf.Document, prim *gltf.Primitive) string {
	if prim.Material == nil || *prim.Material >= len(doc.Materials) {
		return ""
	}
	pbr := doc.Materials[*prim.Material].PBRMetallicRoughness
	if pbr == nil || pbr.BaseColorTexture == nil || pbr.BaseColorTexture.Index >= len(doc.Textures) {
		return ""
	}
	tex := doc.Textures[pbr.BaseColorTexture.Index]
	if tex.Source == nil || *tex.Source >= len(doc.Images) {
		return ""
	}
	return doc.Images[*tex.Source].URI
}
