package importer

import (
	"fmt"

	"ogre-meshxml/internal/bmd"
	"ogre-meshxml/internal/scene"
	"ogre-meshxml/internal/skeleton"
)

// LoadBMD reads an unencrypted BMD model and moves it into its bind pose.
func LoadBMD(path string, opts Options) (*scene.Scene, error) {
	m, err := bmd.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("importer: %w", err)
	}
	skeleton.ApplyBindPose(m)
	return FromBMD(m, opts)
}

// FromBMD converts a parsed BMD model as-is; positions are not posed.
// Triangle corners are unified into document vertices, and each vertex is
// rigidly bound to its node bone with weight 1, keyed by the BMD vertex index.
func FromBMD(m *bmd.Model, opts Options) (*scene.Scene, error) {
	s := &scene.Scene{Name: m.Name, SubMeshes: make([]scene.SubMesh, 0, len(m.Meshes))}
	for mi := range m.Meshes {
		mesh := &m.Meshes[mi]
		sub := scene.SubMesh{Name: fmt.Sprintf("%s_%d", m.Name, mi), Texture: mesh.TexPath}
		verts := newVertexSet(&sub)

		for ti, tri := range mesh.Tris {
			n := tri.Polygon
			if n != 3 && n != 4 {
				return nil, fmt.Errorf("importer: bmd mesh %d triangle %d: polygon size %d", mi, ti, n)
			}
			idx := make([]uint32, n)
			for k := 0; k < n; k++ {
				c := corner{pos: int(tri.VI[k]), norm: int(tri.NI[k]), uv: int(tri.TI[k])}
				if c.pos < 0 || c.pos >= len(mesh.Verts) {
					return nil, fmt.Errorf("importer: bmd mesh %d triangle %d: vertex %d out of range", mi, ti, c.pos)
				}
				idx[k] = verts.add(c, mesh.Verts, mesh.Normals, mesh.UVs)
			}
			addFace(&sub, idx, opts)
		}

		sub.Bones = rigidBones(mesh.Nodes, len(m.Bones))
		s.SubMeshes = append(s.SubMeshes, sub)
	}

	// Bone names are shared by all sub-meshes.
	for i := range s.SubMeshes {
		for bi := range s.SubMeshes[i].Bones {
			if bi < len(m.Bones) {
				s.SubMeshes[i].Bones[bi].Name = m.Bones[bi].Name
			}
		}
	}
	return s, nil
}

// rigidBones turns per-vertex bone nodes into bone-major weight lists.
func rigidBones(nodes []int16, boneCount int) []scene.Bone {
	if boneCount == 0 {
		return nil
	}
	bones := make([]scene.Bone, boneCount)
	for vi, node := range nodes {
		b := int(node)
		if b < 0 || b >= boneCount {
			continue
		}
		bones[b].Weights = append(bones[b].Weights, scene.VertexWeight{Vertex: vi, Weight: 1})
	}
	return bones
}
