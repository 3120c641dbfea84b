// Package skeleton poses BMD geometry, whose vertices are stored in the
// local space of the bone they are bound to.
package skeleton

import (
	"ogre-meshxml/internal/bmd"
	"ogre-meshxml/internal/mathutil"
)

// WorldTransforms chains each bone's bind pose with its parent's. Parents
// must precede children; dummy bones and forward references are treated as
// roots.
func WorldTransforms(bones []bmd.Bone) []mathutil.Transform {
	worlds := make([]mathutil.Transform, len(bones))
	for i, b := range bones {
		if b.IsDummy {
			worlds[i] = mathutil.Identity()
			continue
		}

		local := mathutil.Transform{
			Rot: mathutil.EulerXYZ(float64(b.BindRotation[0]), float64(b.BindRotation[1]), float64(b.BindRotation[2])),
			Pos: mathutil.FromFloat32(b.BindPosition),
		}
		if b.Parent >= 0 && b.Parent < i {
			worlds[i] = worlds[b.Parent].Then(local)
		} else {
			worlds[i] = local
		}
	}
	return worlds
}

// ApplyBindPose moves every mesh of m into model space in place. Vertices
// and normals follow their node bone; out-of-range nodes are left as-is.
func ApplyBindPose(m *bmd.Model) {
	if len(m.Bones) == 0 {
		return
	}

	worlds := WorldTransforms(m.Bones)
	identity := true
	for _, w := range worlds {
		if !w.IsIdentity() {
			identity = false
			break
		}
	}
	if identity {
		return
	}

	for mi := range m.Meshes {
		mesh := &m.Meshes[mi]
		for vi := range mesh.Verts {
			if w, ok := boneAt(worlds, mesh.Nodes, vi); ok {
				mesh.Verts[vi] = toFloat32(w.Point(mathutil.FromFloat32(mesh.Verts[vi])))
			}
		}
		for ni := range mesh.Normals {
			if w, ok := boneAt(worlds, mesh.NormalNodes, ni); ok {
				mesh.Normals[ni] = toFloat32(w.Direction(mathutil.FromFloat32(mesh.Normals[ni])))
			}
		}
	}
}

func boneAt(worlds []mathutil.Transform, nodes []int16, i int) (mathutil.Transform, bool) {
	if i >= len(nodes) {
		return mathutil.Transform{}, false
	}
	b := int(nodes[i])
	if b < 0 || b >= len(worlds) {
		return mathutil.Transform{}, false
	}
	return worlds[b], true
}

func toFloat32(v mathutil.Vec3) [3]float32 {
	return [3]float32{float32(v[0]), float32(v[1]), float32(v[2])}
}
