// Package meshxml builds, writes and checks OGRE XML mesh documents.
package meshxml

import (
	"fmt"
	"log/slog"

	"ogre-meshxml/internal/geometry"
	"ogre-meshxml/internal/scene"
	"ogre-meshxml/internal/weights"
)

// Element names of the mesh schema.
const (
	TagMesh           = "mesh"
	TagSharedGeometry = "sharedgeometry"
	TagSubMeshes      = "submeshes"
	TagSubMesh        = "submesh"
	TagSkeletonLink   = "skeletonlink"
	TagLevelOfDetail  = "levelofdetail"
	TagSubMeshNames   = "submeshnames"
	TagExtremes       = "extremes"
	TagPoses          = "poses"
	TagAnimations     = "animations"

	TagFaces          = "faces"
	TagFace           = "face"
	TagGeometry       = "geometry"
	TagVertexBuffer   = "vertexbuffer"
	TagVertex         = "vertex"
	TagPosition       = "position"
	TagNormal         = "normal"
	TagTangent        = "tangent"
	TagTexCoord       = "texcoord"
	TagBoneAssigns    = "boneassignments"
	TagBoneAssignment = "vertexboneassignment"
)

// Fixed sub-mesh attributes. None of them is derived from the scene.
const (
	DefaultMaterial = "BaseWhite"
	OperationType   = "triangle_list"
)

// Options tune the builder.
type Options struct {
	// BoneAssignments enables per-sub-mesh vertex bone assignments. Off by
	// default: weights reference importer vertex indices, so Remapper must
	// translate them to document vertex numbering first.
	BoneAssignments bool

	// Remapper builds the source-to-document vertex table used for bone
	// assignments. Nil selects geometry.SourceRemap.
	Remapper geometry.Remapper
}

// Builder realizes one Document from one Scene.
type Builder struct {
	opts Options
}

// NewBuilder returns a builder with the given options.
func NewBuilder(opts Options) *Builder {
	if opts.Remapper == nil {
		opts.Remapper = geometry.SourceRemap{}
	}
	return &Builder{opts: opts}
}

// Build maps a scene with default options.
func Build(s *scene.Scene) (*Document, error) {
	return NewBuilder(Options{}).Build(s)
}

// Build maps every sub-mesh of s into a new document. It fails fast: on
// error no document is returned.
func (b *Builder) Build(s *scene.Scene) (*Document, error) {
	if !s.HasMeshes() {
		return nil, fmt.Errorf("meshxml: build: %w", ErrSceneHasNoMeshes)
	}
	if err := geometry.CheckTopology(s); err != nil {
		return nil, fmt.Errorf("meshxml: build: %w", err)
	}

	root := NewNode(TagMesh)
	root.Append(TagSharedGeometry)

	subs := root.Append(TagSubMeshes)
	for i := range s.SubMeshes {
		if err := b.writeSubMesh(subs.Append(TagSubMesh), &s.SubMeshes[i]); err != nil {
			return nil, fmt.Errorf("meshxml: build: submesh %d: %w", i, err)
		}
	}

	// Schema sections without scene-derived content stay empty.
	for _, tag := range []string{TagSkeletonLink, TagLevelOfDetail, TagSubMeshNames, TagExtremes, TagPoses, TagAnimations} {
		root.Append(tag)
	}

	slog.Debug("meshxml: built document", "scene", s.Name, "submeshes", len(s.SubMeshes))
	return &Document{root: root}, nil
}

func (b *Builder) writeSubMesh(node *Node, sub *scene.SubMesh) error {
	g, err := geometry.Extract(sub)
	if err != nil {
		return err
	}

	node.SetAttr("material", DefaultMaterial)
	node.SetAttr("usesharedvertices", "false")
	node.SetAttr("use32bitindexes", "false")
	node.SetAttr("operationtype", OperationType)

	if g.HasFaces() {
		writeFaces(node.Append(TagFaces), g)
	}

	if g.HasPositions() {
		geo := node.Append(TagGeometry)
		geo.SetAttr("vertexcount", formatCount(g.VertexCount()))
		writeVertices(geo.Append(TagVertexBuffer), g)
	}

	if b.opts.BoneAssignments && len(g.Bones()) > 0 {
		return b.writeBoneAssignments(node, g)
	}
	return nil
}

func writeFaces(faces *Node, g *geometry.Geometry) {
	faces.SetAttr("count", formatCount(g.FaceCount()))
	for i := 0; i < g.FaceCount(); i++ {
		idx := g.Face(i)
		face := faces.Append(TagFace)
		face.SetAttr("v1", formatUint(idx[0]))
		face.SetAttr("v2", formatUint(idx[1]))
		face.SetAttr("v3", formatUint(idx[2]))
	}
}

func writeVertices(vb *Node, g *geometry.Geometry) {
	ch := g.Channels()
	vb.SetAttr("positions", "true")
	vb.SetAttr("normals", formatBool(ch.HasNormals))
	vb.SetAttr("texture_coord_dimensions_0", "float2")
	vb.SetAttr("tangents", formatBool(ch.HasTangents))
	if ch.HasTexCoord0 {
		// one set only
		vb.SetAttr("texture_coords", "1")
	}

	for i := 0; i < g.VertexCount(); i++ {
		v := g.Vertex(i)
		vn := vb.Append(TagVertex)
		writeVec3(vn.Append(TagPosition), v.Position)
		if ch.HasNormals {
			writeVec3(vn.Append(TagNormal), *v.Normal)
		}
		if ch.HasTangents {
			writeVec3(vn.Append(TagTangent), *v.Tangent)
		}
		if ch.HasTexCoord0 {
			tc := vn.Append(TagTexCoord)
			tc.SetAttr("u", formatFloat(v.TexCoord[0]))
			tc.SetAttr("v", formatFloat(v.TexCoord[1]))
		}
	}
}

func writeVec3(n *Node, v [3]float32) {
	n.SetAttr("x", formatFloat(v[0]))
	n.SetAttr("y", formatFloat(v[1]))
	n.SetAttr("z", formatFloat(v[2]))
}

func (b *Builder) writeBoneAssignments(node *Node, g *geometry.Geometry) error {
	table, err := b.opts.Remapper.Remap(g.SubMesh())
	if err != nil {
		return err
	}
	assigns := weights.ConsolidateRemapped(g.Bones(), table)
	if len(assigns) == 0 {
		return nil
	}

	ba := node.Append(TagBoneAssigns)
	for _, a := range assigns {
		n := ba.Append(TagBoneAssignment)
		n.SetAttr("vertexindex", formatCount(a.Vertex))
		n.SetAttr("boneindex", formatCount(a.Bone))
		n.SetAttr("weight", formatFloat(a.Weight))
	}
	return nil
}
