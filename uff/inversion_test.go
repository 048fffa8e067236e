package uff_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"

	"github.com/latticecad/latticecad/uff"
	v3 "github.com/latticecad/latticecad/vec/v3"
)

func TestInversionEnergyGradientMatchesCentralDifference(t *testing.T) {
	pi := v3.Vec{X: 0, Y: 0, Z: 0}
	pj := v3.Vec{X: 1, Y: 0, Z: 0}
	pk := v3.Vec{X: -0.5, Y: 0.87, Z: 0}
	pl := v3.Vec{X: -0.2, Y: -0.3, Z: 0.9}

	k, c0, c1, c2 := 6.0, 1.0, -1.0, 0.0

	f := func(x []float64) float64 {
		e, _, _, _, _ := uff.InversionEnergy(v3.Vec{X: x[0], Y: x[1], Z: x[2]}, pj, pk, pl, k, c0, c1, c2)
		return e
	}
	numGrad := fd.Gradient(nil, f, []float64{pi.X, pi.Y, pi.Z}, nil)

	_, gi, _, _, _ := uff.InversionEnergy(pi, pj, pk, pl, k, c0, c1, c2)
	require.InDelta(t, numGrad[0], gi.X, 1e-3)
	require.InDelta(t, numGrad[1], gi.Y, 1e-3)
	require.InDelta(t, numGrad[2], gi.Z, 1e-3)
}

func TestInversionEnergyIsZeroForPlanarSubstituent(t *testing.T) {
	// l lying in the i-j-k plane: the out-of-plane angle is zero, so
	// sinW is zero and the energy reduces to k*(c0+c1+c2).
	pi := v3.Vec{X: 0, Y: 0, Z: 0}
	pj := v3.Vec{X: 1, Y: 0, Z: 0}
	pk := v3.Vec{X: 0, Y: 1, Z: 0}
	pl := v3.Vec{X: -1, Y: -1, Z: 0}

	e, _, _, _, _ := uff.InversionEnergy(pi, pj, pk, pl, 6, 1, -1, 0)
	require.InDelta(t, 0, e, 1e-6)
}
