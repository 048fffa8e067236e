package uff_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"

	"github.com/latticecad/latticecad/uff"
	v3 "github.com/latticecad/latticecad/vec/v3"
)

func TestTorsionEnergyGradientMatchesCentralDifference(t *testing.T) {
	p1 := v3.Vec{X: 0, Y: 1, Z: 0}
	p2 := v3.Vec{X: 0, Y: 0, Z: 0}
	p3 := v3.Vec{X: 1, Y: 0, Z: 0}
	p4 := v3.Vec{X: 1.3, Y: 0.8, Z: 0.6}

	v, n, phi0 := 2.0, 3.0, 0.0

	f := func(x []float64) float64 {
		e, _, _, _, _ := uff.TorsionEnergy(v3.Vec{X: x[0], Y: x[1], Z: x[2]}, p2, p3, p4, v, n, phi0)
		return e
	}
	numGrad := fd.Gradient(nil, f, []float64{p1.X, p1.Y, p1.Z}, nil)

	_, g1, _, _, _ := uff.TorsionEnergy(p1, p2, p3, p4, v, n, phi0)
	require.InDelta(t, numGrad[0], g1.X, 1e-3)
	require.InDelta(t, numGrad[1], g1.Y, 1e-3)
	require.InDelta(t, numGrad[2], g1.Z, 1e-3)
}

func TestTorsionEnergyIsPeriodic(t *testing.T) {
	p1 := v3.Vec{X: 0, Y: 1, Z: 0}
	p2 := v3.Vec{X: 0, Y: 0, Z: 0}
	p3 := v3.Vec{X: 1, Y: 0, Z: 0}
	p4 := v3.Vec{X: 1, Y: -1, Z: 0} // dihedral near 180 degrees

	eEclipsed, _, _, _, _ := uff.TorsionEnergy(p1, p2, p3, v3.Vec{X: 1, Y: 1, Z: 0}, 2, 3, 0)
	eStaggered, _, _, _, _ := uff.TorsionEnergy(p1, p2, p3, p4, 2, 3, 0)
	// p4 rotated 120 degrees about the j-k axis from the eclipsed position:
	// with n = 3 the energy repeats.
	eRotated, _, _, _, _ := uff.TorsionEnergy(p1, p2, p3, v3.Vec{X: 1, Y: -0.5, Z: 0.8660254037844386}, 2, 3, 0)
	require.NotEqual(t, eEclipsed, eStaggered)
	require.InDelta(t, eEclipsed, eRotated, 1e-9)
}
