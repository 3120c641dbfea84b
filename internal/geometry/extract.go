// Package geometry is a read-only view over the vertex and face data of a
// sub-mesh, with the structural checks that gate serialization.
package geometry

import (
	"errors"
	"fmt"

	"ogre-meshxml/internal/scene"
)

// ErrUnsupportedTopology is returned when a face is not a triangle.
var ErrUnsupportedTopology = errors.New("only models with triangle lists are supported")

// Channels reports which optional vertex attributes a sub-mesh carries.
// A channel is present only when every vertex has it.
type Channels struct {
	HasNormals   bool
	HasTangents  bool
	HasTexCoord0 bool
}

// Geometry exposes the vertices and faces of one sub-mesh by index.
type Geometry struct {
	sub      *scene.SubMesh
	channels Channels
}

// Extract validates the sub-mesh topology and returns a view over it.
func Extract(sub *scene.SubMesh) (*Geometry, error) {
	if err := checkFaces(sub); err != nil {
		return nil, err
	}
	return &Geometry{sub: sub, channels: scanChannels(sub.Vertices)}, nil
}

// CheckTopology verifies every face of every sub-mesh before any document
// work starts, so a bad sub-mesh aborts the whole scene.
func CheckTopology(s *scene.Scene) error {
	for i := range s.SubMeshes {
		if err := checkFaces(&s.SubMeshes[i]); err != nil {
			return fmt.Errorf("submesh %d: %w", i, err)
		}
	}
	return nil
}

func checkFaces(sub *scene.SubMesh) error {
	for i, f := range sub.Faces {
		if len(f.Indices) != 3 {
			return fmt.Errorf("face %d has %d indices: %w", i, len(f.Indices), ErrUnsupportedTopology)
		}
	}
	return nil
}

func scanChannels(verts []scene.Vertex) Channels {
	if len(verts) == 0 {
		return Channels{}
	}
	c := Channels{HasNormals: true, HasTangents: true, HasTexCoord0: true}
	for i := range verts {
		v := &verts[i]
		c.HasNormals = c.HasNormals && v.Normal != nil
		c.HasTangents = c.HasTangents && v.Tangent != nil
		c.HasTexCoord0 = c.HasTexCoord0 && v.TexCoord != nil
	}
	return c
}

func (g *Geometry) Channels() Channels { return g.channels }

func (g *Geometry) VertexCount() int { return len(g.sub.Vertices) }

func (g *Geometry) FaceCount() int { return len(g.sub.Faces) }

// HasPositions reports whether the sub-mesh has any vertex positions.
func (g *Geometry) HasPositions() bool { return len(g.sub.Vertices) > 0 }

func (g *Geometry) HasFaces() bool { return len(g.sub.Faces) > 0 }

// Vertex returns the vertex at index i.
func (g *Geometry) Vertex(i int) *scene.Vertex { return &g.sub.Vertices[i] }

// Face returns the three indices of face i.
func (g *Geometry) Face(i int) [3]uint32 {
	f := g.sub.Faces[i].Indices
	return [3]uint32{f[0], f[1], f[2]}
}

// Bones returns the skinning influences of the sub-mesh.
func (g *Geometry) Bones() []scene.Bone { return g.sub.Bones }

// SubMesh returns the underlying sub-mesh.
func (g *Geometry) SubMesh() *scene.SubMesh { return g.sub }
