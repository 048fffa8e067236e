package uff_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"

	"github.com/latticecad/latticecad/atom"
	"github.com/latticecad/latticecad/uff"
	v3 "github.com/latticecad/latticecad/vec/v3"
)

func TestBondEnergyGradientMatchesCentralDifference(t *testing.T) {
	pa, ok := uff.Lookup("C_3")
	require.True(t, ok)
	pb, ok := uff.Lookup("H_")
	require.True(t, ok)

	pi := v3.Vec{X: 0, Y: 0, Z: 0}
	pj := v3.Vec{X: 1.1, Y: 0.2, Z: -0.1}

	f := func(x []float64) float64 {
		e, _, _ := uff.BondEnergy(v3.Vec{X: x[0], Y: x[1], Z: x[2]}, pj, pa, pb, 0)
		return e
	}
	numGrad := fd.Gradient(nil, f, []float64{pi.X, pi.Y, pi.Z}, nil)

	_, gi, _ := uff.BondEnergy(pi, pj, pa, pb, 0)
	require.InDelta(t, numGrad[0], gi.X, 1e-4)
	require.InDelta(t, numGrad[1], gi.Y, 1e-4)
	require.InDelta(t, numGrad[2], gi.Z, 1e-4)
}

func TestAngleEnergyIsMinimizedAtTheta0(t *testing.T) {
	theta0, ok := uff.Lookup("C_3")
	require.True(t, ok)

	pj := v3.Vec{}
	pi := v3.Vec{X: 1, Y: 0, Z: 0}
	// place pk at the ideal tetrahedral angle from pi
	pk := v3.Vec{X: -1.0 / 3, Y: 0.9428, Z: 0}

	eAtIdeal, _, _, _ := uff.AngleEnergy(pi, pj, pk, 50, theta0.Theta0)
	eOff, _, _, _ := uff.AngleEnergy(pi, pj, v3.Vec{X: 0, Y: 1, Z: 0}, 50, theta0.Theta0)
	require.Less(t, eAtIdeal, eOff, "energy at the equilibrium angle should be below that of a displaced angle")
}

func TestVdWEnergyGradientMatchesCentralDifference(t *testing.T) {
	pa, ok := uff.Lookup("C_3")
	require.True(t, ok)
	pb, ok := uff.Lookup("O_3")
	require.True(t, ok)

	pi := v3.Vec{X: 0, Y: 0, Z: 0}
	pj := v3.Vec{X: 3.2, Y: 0.4, Z: -0.3}

	f := func(x []float64) float64 {
		e, _, _ := uff.VdWEnergy(v3.Vec{X: x[0], Y: x[1], Z: x[2]}, pj, pa, pb)
		return e
	}
	numGrad := fd.Gradient(nil, f, []float64{pi.X, pi.Y, pi.Z}, nil)

	_, gi, _ := uff.VdWEnergy(pi, pj, pa, pb)
	require.InDelta(t, numGrad[0], gi.X, 1e-4)
	require.InDelta(t, numGrad[1], gi.Y, 1e-4)
	require.InDelta(t, numGrad[2], gi.Z, 1e-4)
}

func TestMinimizeReducesEnergy(t *testing.T) {
	s := atom.New()
	o := s.AddAtom(atom.Atom{Element: atom.Hydrogen, Pos: v3.Vec{X: 0, Y: 0, Z: 0}})
	h1 := s.AddAtom(atom.Atom{Element: atom.Hydrogen, Pos: v3.Vec{X: 1.5, Y: 0.3, Z: 0}})
	require.NoError(t, s.AddBond(o, h1, atom.BondSingle))

	report, err := uff.Minimize(s, uff.MinimizeOptions{})
	require.NoError(t, err)
	require.LessOrEqual(t, report.FinalEnergy, report.InitialEnergy+1e-6)
}
