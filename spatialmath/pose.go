// Package spatialmath defines the homogeneous transforms and inertia tensors used to describe
// joints and bodies of a kinematic tree.
package spatialmath

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"

	"go.viam.com/dynbridge/utils"
)

// Pose is a 4x4 homogeneous transform: a rotation in the upper left 3x3 block and a
// translation in the last column.
type Pose struct {
	m mgl64.Mat4
}

// NewZeroPose returns the identity transform.
func NewZeroPose() Pose {
	return Pose{mgl64.Ident4()}
}

// NewPoseFromPoint returns a pure translation.
func NewPoseFromPoint(point r3.Vector) Pose {
	return Pose{mgl64.Translate3D(point.X, point.Y, point.Z)}
}

// NewPoseFromQuat builds a transform from a translation and a rotation quaternion. The quaternion
// is normalized first; a zero quaternion is treated as no rotation.
func NewPoseFromQuat(point r3.Vector, q quat.Number) Pose {
	if quat.Abs(q) == 0 {
		q = quat.Number{Real: 1}
	}
	rot := mgl64.Quat{W: q.Real, V: mgl64.Vec3{q.Imag, q.Jmag, q.Kmag}}.Normalize()
	m := rot.Mat4()
	m.Set(0, 3, point.X)
	m.Set(1, 3, point.Y)
	m.Set(2, 3, point.Z)
	return Pose{m}
}

// NewPoseFromMatrix wraps an existing matrix.
func NewPoseFromMatrix(m mgl64.Mat4) Pose {
	return Pose{m}
}

// NewQuatFromRPY returns the quaternion for fixed-axis roll, pitch and yaw angles in radians, i.e.
// the rotation Rz(yaw) * Ry(pitch) * Rx(roll) used by URDF origins.
func NewQuatFromRPY(roll, pitch, yaw float64) quat.Number {
	qx := quat.Number{Real: math.Cos(roll / 2), Imag: math.Sin(roll / 2)}
	qy := quat.Number{Real: math.Cos(pitch / 2), Jmag: math.Sin(pitch / 2)}
	qz := quat.Number{Real: math.Cos(yaw / 2), Kmag: math.Sin(yaw / 2)}
	return quat.Mul(qz, quat.Mul(qy, qx))
}

// Compose returns the transform a*b, i.e. b expressed in the frame a is expressed in.
func Compose(a, b Pose) Pose {
	return Pose{a.m.Mul4(b.m)}
}

// Matrix returns a copy of the underlying matrix.
func (p Pose) Matrix() mgl64.Mat4 {
	return p.m
}

// At returns the element at the given row and column.
func (p Pose) At(row, col int) float64 {
	return p.m.At(row, col)
}

// Point returns the translation part.
func (p Pose) Point() r3.Vector {
	return r3.Vector{X: p.m.At(0, 3), Y: p.m.At(1, 3), Z: p.m.At(2, 3)}
}

// Orientation returns the rotation part as a unit quaternion.
func (p Pose) Orientation() quat.Number {
	q := mgl64.Mat4ToQuat(p.m)
	return quat.Number{Real: q.W, Imag: q.V[0], Jmag: q.V[1], Kmag: q.V[2]}
}

// IsZero reports whether the pose is the identity transform.
func (p Pose) IsZero() bool {
	return p.m == mgl64.Ident4()
}

// String prints the matrix row by row.
func (p Pose) String() string {
	return fmt.Sprintf("[%.4f %.4f %.4f %.4f; %.4f %.4f %.4f %.4f; %.4f %.4f %.4f %.4f; %.4f %.4f %.4f %.4f]",
		p.m.At(0, 0), p.m.At(0, 1), p.m.At(0, 2), p.m.At(0, 3),
		p.m.At(1, 0), p.m.At(1, 1), p.m.At(1, 2), p.m.At(1, 3),
		p.m.At(2, 0), p.m.At(2, 1), p.m.At(2, 2), p.m.At(2, 3),
		p.m.At(3, 0), p.m.At(3, 1), p.m.At(3, 2), p.m.At(3, 3),
	)
}

// PoseAlmostEqual returns true if every element of the two transforms differs by at most epsilon.
func PoseAlmostEqual(a, b Pose, epsilon float64) bool {
	return a.m.ApproxEqualThreshold(b.m, epsilon)
}

// R3VectorAlmostEqual compares two r3.Vector objects and returns if the all elementwise differences are less than epsilon.
func R3VectorAlmostEqual(a, b r3.Vector, epsilon float64) bool {
	return utils.Float64AlmostEqual(a.X, b.X, epsilon) &&
		utils.Float64AlmostEqual(a.Y, b.Y, epsilon) &&
		utils.Float64AlmostEqual(a.Z, b.Z, epsilon)
}
