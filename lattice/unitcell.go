// Package lattice implements crystal unit cells, motifs, and the
// lattice-enumeration algorithm that turns an SDF region into a set of
// motif-site positions (spec §4.B).
package lattice

import (
	"errors"

	v3 "github.com/latticecad/latticecad/vec/v3"
	"gonum.org/v1/gonum/mat"
)

// ErrDegenerateCell is returned when the three lattice vectors are not
// linearly independent.
var ErrDegenerateCell = errors.New("lattice: lattice vectors are not linearly independent")

// diamondEdge is the conventional cubic diamond lattice constant, Å.
const diamondEdge = 3.567

// UnitCell holds the three lattice basis vectors a, b, c (Å) and the
// precomputed transform between fractional and Cartesian coordinates.
type UnitCell struct {
	A, B, C v3.Vec
	toCart  *mat.Dense // 3x3, columns a, b, c
	toFrac  *mat.Dense // inverse of toCart
}

// CubicDiamond returns the default cubic diamond unit cell (edge 3.567 Å).
func CubicDiamond() UnitCell {
	uc, err := NewUnitCell(
		v3.Vec{X: diamondEdge},
		v3.Vec{Y: diamondEdge},
		v3.Vec{Z: diamondEdge},
	)
	if err != nil {
		panic("lattice: default cubic diamond cell must be well formed")
	}
	return uc
}

// NewUnitCell builds a UnitCell from three lattice vectors, validating
// that they are linearly independent.
func NewUnitCell(a, b, c v3.Vec) (UnitCell, error) {
	toCart := mat.NewDense(3, 3, []float64{
		a.X, b.X, c.X,
		a.Y, b.Y, c.Y,
		a.Z, b.Z, c.Z,
	})
	det := mat.Det(toCart)
	if det == 0 || isNearZero(det) {
		return UnitCell{}, ErrDegenerateCell
	}
	var toFrac mat.Dense
	if err := toFrac.Inverse(toCart); err != nil {
		return UnitCell{}, ErrDegenerateCell
	}
	return UnitCell{A: a, B: b, C: c, toCart: toCart, toFrac: &toFrac}, nil
}

func isNearZero(x float64) bool {
	const tol = 1e-12
	return x > -tol && x < tol
}

// ToCartesian converts a fractional coordinate (in units of a, b, c) to
// a Cartesian position.
func (u UnitCell) ToCartesian(frac v3.Vec) v3.Vec {
	v := mat.NewVecDense(3, []float64{frac.X, frac.Y, frac.Z})
	var out mat.VecDense
	out.MulVec(u.toCart, v)
	return v3.Vec{X: out.AtVec(0), Y: out.AtVec(1), Z: out.AtVec(2)}
}

// ToFractional converts a Cartesian position to fractional coordinates.
func (u UnitCell) ToFractional(p v3.Vec) v3.Vec {
	v := mat.NewVecDense(3, []float64{p.X, p.Y, p.Z})
	var out mat.VecDense
	out.MulVec(u.toFrac, v)
	return v3.Vec{X: out.AtVec(0), Y: out.AtVec(1), Z: out.AtVec(2)}
}

// Volume returns the unit cell volume, |det([a b c])|.
func (u UnitCell) Volume() float64 {
	d := mat.Det(u.toCart)
	if d < 0 {
		return -d
	}
	return d
}
