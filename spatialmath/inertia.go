package spatialmath

import (
	"gonum.org/v1/gonum/mat"
)

// Inertia is a symmetric 3x3 inertia tensor. Only the six independent entries are stored so the
// tensor is symmetric by construction.
type Inertia struct {
	sym *mat.SymDense
}

// NewInertia builds a tensor from its diagonal and upper off-diagonal entries.
func NewInertia(ixx, ixy, ixz, iyy, iyz, izz float64) Inertia {
	return Inertia{mat.NewSymDense(3, []float64{
		ixx, ixy, ixz,
		ixy, iyy, iyz,
		ixz, iyz, izz,
	})}
}

// NewIdentityInertia returns the 3x3 identity tensor.
func NewIdentityInertia() Inertia {
	return NewInertia(1, 0, 0, 1, 0, 1)
}

// At returns the element at row i, column j.
func (in Inertia) At(i, j int) float64 {
	if in.sym == nil {
		return 0
	}
	return in.sym.At(i, j)
}

// Ixx returns the xx moment.
func (in Inertia) Ixx() float64 { return in.At(0, 0) }

// Iyy returns the yy moment.
func (in Inertia) Iyy() float64 { return in.At(1, 1) }

// Izz returns the zz moment.
func (in Inertia) Izz() float64 { return in.At(2, 2) }

// Ixy returns the xy product.
func (in Inertia) Ixy() float64 { return in.At(0, 1) }

// Ixz returns the xz product.
func (in Inertia) Ixz() float64 { return in.At(0, 2) }

// Iyz returns the yz product.
func (in Inertia) Iyz() float64 { return in.At(1, 2) }

// Matrix returns a dense copy of the tensor.
func (in Inertia) Matrix() *mat.Dense {
	d := mat.NewDense(3, 3, nil)
	if in.sym != nil {
		d.Copy(in.sym)
	}
	return d
}

// IsIdentity reports whether the tensor is the identity.
func (in Inertia) IsIdentity() bool {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := 0.
			if i == j {
				want = 1
			}
			if in.At(i, j) != want {
				return false
			}
		}
	}
	return true
}

// AlmostEqual compares both tensors elementwise.
func (in Inertia) AlmostEqual(other Inertia, epsilon float64) bool {
	return mat.EqualApprox(in.Matrix(), other.Matrix(), epsilon)
}
