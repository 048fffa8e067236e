package lattice_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/latticecad/latticecad/lattice"
	"github.com/latticecad/latticecad/sdf"
	v3 "github.com/latticecad/latticecad/vec/v3"
)

func TestEnumerateIsDeterministic(t *testing.T) {
	uc := lattice.CubicDiamond()
	motif := lattice.CubicZincblende()
	region, err := sdf.Cuboid3D(v3.Vec{X: -5, Y: -5, Z: -5}, v3.Vec{X: 10, Y: 10, Z: 10})
	require.NoError(t, err)

	a, err := lattice.Enumerate(uc, motif, region)
	require.NoError(t, err)
	b, err := lattice.Enumerate(uc, motif, region)
	require.NoError(t, err)

	require.Equal(t, len(a), len(b))
	for i := range a {
		require.Equal(t, a[i], b[i])
	}
	require.NotEmpty(t, a)
}

func TestEnumerateRejectsEmptyMotif(t *testing.T) {
	uc := lattice.CubicDiamond()
	region, err := sdf.Sphere3D(v3.Vec{}, 5)
	require.NoError(t, err)

	_, err = lattice.Enumerate(uc, lattice.Motif{}, region)
	require.ErrorIs(t, err, lattice.ErrEmptyMotif)
}

func TestNewUnitCellRejectsDegenerateVectors(t *testing.T) {
	_, err := lattice.NewUnitCell(
		v3.Vec{X: 1},
		v3.Vec{X: 2}, // parallel to a, degenerate
		v3.Vec{Z: 1},
	)
	require.ErrorIs(t, err, lattice.ErrDegenerateCell)
}
