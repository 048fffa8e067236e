package fill_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/latticecad/latticecad/atom"
	"github.com/latticecad/latticecad/fill"
	"github.com/latticecad/latticecad/lattice"
	"github.com/latticecad/latticecad/sdf"
	v3 "github.com/latticecad/latticecad/vec/v3"
)

func diamondRegion(t *testing.T) sdf.SDF3 {
	t.Helper()
	s, err := sdf.Sphere3D(v3.Vec{}, 4)
	require.NoError(t, err)
	return s
}

func TestFillProducesBondedCarbonLattice(t *testing.T) {
	uc := lattice.CubicDiamond()
	motif := lattice.CubicZincblende()
	opts := fill.Options{Elements: map[lattice.Role]atom.Element{
		lattice.RolePrimary:   atom.Carbon,
		lattice.RoleSecondary: atom.Carbon,
	}}

	s, err := fill.Fill(uc, motif, diamondRegion(t), opts)
	require.NoError(t, err)
	require.Greater(t, s.Len(), 0)

	var bonded bool
	for _, id := range s.Atoms() {
		if s.Coordination(id) > 0 {
			bonded = true
			break
		}
	}
	require.True(t, bonded, "interior atoms should have inferred bonds to their motif neighbors")
}

func TestFillRemoveOrphansDropsZeroCoordinationAtoms(t *testing.T) {
	uc := lattice.CubicDiamond()
	motif := lattice.CubicZincblende()
	opts := fill.Options{
		Elements:      map[lattice.Role]atom.Element{lattice.RolePrimary: atom.Carbon, lattice.RoleSecondary: atom.Carbon},
		RemoveOrphans: true,
	}

	s, err := fill.Fill(uc, motif, diamondRegion(t), opts)
	require.NoError(t, err)
	for _, id := range s.Atoms() {
		require.Greater(t, s.Coordination(id), 0)
	}
}

func TestPassivateCapsDanglingValenceWithHydrogen(t *testing.T) {
	s := atom.New()
	c := s.AddAtom(atom.Atom{Element: atom.Carbon, Pos: v3.Vec{}})
	h := s.AddAtom(atom.Atom{Element: atom.Hydrogen, Pos: v3.Vec{X: 1.1}})
	require.NoError(t, s.AddBond(c, h, atom.BondSingle))

	require.NoError(t, fill.Passivate(s, nil))

	require.Equal(t, atom.Carbon.Valence, s.Coordination(c))
}

func TestReconstruct100BondsNearbyDanglingPairs(t *testing.T) {
	s := atom.New()
	a := s.AddAtom(atom.Atom{Element: atom.Carbon, Pos: v3.Vec{X: 0, Y: 0, Z: 0}})
	b := s.AddAtom(atom.Atom{Element: atom.Carbon, Pos: v3.Vec{X: 1.0, Y: 0, Z: 0}})

	fill.Reconstruct100(s)

	_, bonded := s.BondBetween(a, b)
	require.True(t, bonded, "two nearby under-coordinated atoms should be paired into a dimer")
}
