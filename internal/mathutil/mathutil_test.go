package mathutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMat3MulIdentity(t *testing.T) {
	r := RotY(Deg2Rad(30))
	assert.Equal(t, r, Mat3Mul(Mat3Identity(), r))
}

func TestRotYQuarterTurn(t *testing.T) {
	v := RotY(math.Pi / 2).MulVec3(Vec3{1, 0, 0})
	assert.InDelta(t, 0, v[0], 1e-9)
	assert.InDelta(t, -1, v[2], 1e-9)
}

func TestNormalizeDegenerate(t *testing.T) {
	assert.Equal(t, Vec3{}, Vec3{}.Normalize())
	assert.InDelta(t, 1, Vec3{3, 4, 0}.Normalize().Len(), 1e-12)
}

func TestBounds(t *testing.T) {
	b := EmptyBounds()
	assert.True(t, b.Empty())
	assert.Equal(t, Vec3{}, b.Size())

	b.Extend(Vec3{-1, 0, 2})
	b.Extend(Vec3{3, 4, 2})
	assert.False(t, b.Empty())
	assert.Equal(t, Vec3{4, 4, 0}, b.Size())
	assert.Equal(t, Vec3{1, 2, 2}, b.Center())
}

func TestEulerXYZOrder(t *testing.T) {
	// X first: (0,1,0) -> (0,0,1); then Z leaves it.
	v := EulerXYZ(math.Pi/2, 0, math.Pi/2).MulVec3(Vec3{0, 1, 0})
	assert.InDelta(t, 0, v[0], 1e-9)
	assert.InDelta(t, 0, v[1], 1e-9)
	assert.InDelta(t, 1, v[2], 1e-9)
}

func TestTransformThen(t *testing.T) {
	parent := Transform{Rot: RotZ(math.Pi / 2), Pos: Vec3{10, 0, 0}}
	child := Transform{Rot: Mat3Identity(), Pos: Vec3{1, 0, 0}}

	world := parent.Then(child)
	p := world.Point(Vec3{})
	assert.InDelta(t, 10, p[0], 1e-9)
	assert.InDelta(t, 1, p[1], 1e-9)

	d := world.Direction(Vec3{1, 0, 0})
	assert.InDelta(t, 0, d[0], 1e-9)
	assert.InDelta(t, 1, d[1], 1e-9)

	assert.True(t, Identity().IsIdentity())
	assert.False(t, parent.IsIdentity())
}
