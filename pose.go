package gimbal

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Pose is a value-type position/rotation/scale triple. It is what a Node
// caches as its world transform and what composition operates on.
type Pose struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
}

// NewPose returns a pose with the given components.
func NewPose(position mgl32.Vec3, rotation mgl32.Quat, scale mgl32.Vec3) Pose {
	return Pose{Position: position, Rotation: rotation, Scale: scale}
}

// RotationScale returns the upper 3x3 of the pose's matrix: R * S.
func (p Pose) RotationScale() mgl32.Mat3 {
	return p.Rotation.Mat4().Mat3().Mul3(mgl32.Diag3(p.Scale))
}

// Mul composes p (the parent) with c (the child):
//
//	position = p.Position + RotationScale(p) * c.Position
//	rotation = p.Rotation * c.Rotation
//	scale    = p.Scale * c.Scale (component-wise)
//
// This is exact for uniform and axis-aligned scale chains. It is not a
// general 4x4 product and is not commutative.
func (p Pose) Mul(c Pose) Pose {
	return Pose{
		Position: p.Position.Add(p.RotationScale().Mul3x1(c.Position)),
		Rotation: p.Rotation.Mul(c.Rotation),
		Scale:    mulVec3(p.Scale, c.Scale),
	}
}

// Inverse returns the pose i such that p.Mul(i) is the identity pose.
// Near-zero scale components are clamped to Epsilon first.
func (p Pose) Inverse() Pose {
	invRot := p.Rotation.Inverse()
	invScale := safeReciprocal(p.Scale)
	return Pose{
		Position: mulVec3(invScale, invRot.Rotate(p.Position)).Mul(-1),
		Rotation: invRot,
		Scale:    invScale,
	}
}

// Matrix returns Translate(Position) * Rotation * Scale.
func (p Pose) Matrix() mgl32.Mat4 {
	t := mgl32.Translate3D(p.Position[0], p.Position[1], p.Position[2])
	s := mgl32.Scale3D(p.Scale[0], p.Scale[1], p.Scale[2])
	return t.Mul4(p.Rotation.Mat4()).Mul4(s)
}

// TransformPoint maps v from the pose's local space to its parent space.
func (p Pose) TransformPoint(v mgl32.Vec3) mgl32.Vec3 {
	return p.Position.Add(p.RotationScale().Mul3x1(v))
}

// InverseTransformPoint maps v from the parent space into the pose's local
// space. It is the inverse of TransformPoint.
func (p Pose) InverseTransformPoint(v mgl32.Vec3) mgl32.Vec3 {
	return mulVec3(safeReciprocal(p.Scale), p.Rotation.Inverse().Rotate(v.Sub(p.Position)))
}

// ApproxEqual reports whether every component of p and o differs by at most
// eps. Rotations q and -q describe the same orientation and compare equal.
func (p Pose) ApproxEqual(o Pose, eps float32) bool {
	if !vecNear(p.Position, o.Position, eps) || !vecNear(p.Scale, o.Scale, eps) {
		return false
	}
	return quatNear(p.Rotation, o.Rotation, eps) || quatNear(p.Rotation, o.Rotation.Scale(-1), eps)
}

// SafeInverseMatrix inverts m after clamping any basis column shorter than
// Epsilon to length Epsilon. A column of exactly zero length is rebuilt
// orthogonal to the other two. A zero-scale matrix therefore inverts to a
// very large but finite matrix instead of NaN or Inf.
func SafeInverseMatrix(m mgl32.Mat4) mgl32.Mat4 {
	axes := [3]mgl32.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	for i := 0; i < 3; i++ {
		col := m.Col(i)
		v := col.Vec3()
		l := v.Len()
		if l >= Epsilon {
			continue
		}
		if l > 0 {
			v = v.Mul(Epsilon / l)
		} else {
			v = m.Col((i + 1) % 3).Vec3().Cross(m.Col((i + 2) % 3).Vec3())
			if c := v.Len(); c > 0 {
				v = v.Mul(Epsilon / c)
			} else {
				v = axes[i].Mul(Epsilon)
			}
		}
		m.SetCol(i, v.Vec4(col[3]))
	}
	return m.Inv()
}

// EulerToQuat converts Euler angles in radians to a quaternion. The rotation
// is applied about X first, then Y, then Z.
func EulerToQuat(e mgl32.Vec3) mgl32.Quat {
	qx := mgl32.QuatRotate(e[0], mgl32.Vec3{1, 0, 0})
	qy := mgl32.QuatRotate(e[1], mgl32.Vec3{0, 1, 0})
	qz := mgl32.QuatRotate(e[2], mgl32.Vec3{0, 0, 1})
	return qz.Mul(qy).Mul(qx)
}

// QuatToEuler converts a unit quaternion to Euler angles in radians using
// the same convention as EulerToQuat. Pitch is clamped at ±π/2.
func QuatToEuler(q mgl32.Quat) mgl32.Vec3 {
	w, x, y, z := float64(q.W), float64(q.V[0]), float64(q.V[1]), float64(q.V[2])

	roll := math.Atan2(2*(w*x+y*z), 1-2*(x*x+y*y))

	sinp := 2 * (w*y - z*x)
	if sinp > 1 {
		sinp = 1
	} else if sinp < -1 {
		sinp = -1
	}
	pitch := math.Asin(sinp)

	yaw := math.Atan2(2*(w*z+x*y), 1-2*(y*y+z*z))

	return mgl32.Vec3{float32(roll), float32(pitch), float32(yaw)}
}

// --- Helpers ---

// vecNear compares component-wise with an absolute tolerance.
func vecNear(a, b mgl32.Vec3, eps float32) bool {
	for i := range a {
		if abs32(a[i]-b[i]) > eps {
			return false
		}
	}
	return true
}

func quatNear(a, b mgl32.Quat, eps float32) bool {
	return abs32(a.W-b.W) <= eps && vecNear(a.V, b.V, eps)
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func mulVec3(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}

// clampScale pushes c away from zero to at least Epsilon, keeping its sign.
func clampScale(c float32) float32 {
	if c >= 0 && c < Epsilon {
		return Epsilon
	}
	if c < 0 && c > -Epsilon {
		return -Epsilon
	}
	return c
}

func safeReciprocal(v mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{1 / clampScale(v[0]), 1 / clampScale(v[1]), 1 / clampScale(v[2])}
}
