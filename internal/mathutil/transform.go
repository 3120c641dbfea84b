package mathutil

// Transform is a rigid transform: rotate by Rot, then translate by Pos.
type Transform struct {
	Rot Mat3
	Pos Vec3
}

func Identity() Transform {
	return Transform{Rot: Mat3Identity()}
}

// Then returns the transform applying child first and t second.
func (t Transform) Then(child Transform) Transform {
	return Transform{
		Rot: Mat3Mul(t.Rot, child.Rot),
		Pos: t.Rot.MulVec3(child.Pos).Add(t.Pos),
	}
}

// Point transforms a position.
func (t Transform) Point(p Vec3) Vec3 {
	return t.Rot.MulVec3(p).Add(t.Pos)
}

// Direction rotates a direction; translation does not apply.
func (t Transform) Direction(d Vec3) Vec3 {
	return t.Rot.MulVec3(d)
}

// IsIdentity reports whether t is the identity within a small tolerance.
func (t Transform) IsIdentity() bool {
	id := Mat3Identity()
	for i := range t.Rot {
		if d := t.Rot[i] - id[i]; d > 1e-8 || d < -1e-8 {
			return false
		}
	}
	return t.Pos.Len() < 1e-8
}
