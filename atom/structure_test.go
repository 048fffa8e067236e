package atom_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/latticecad/latticecad/atom"
	v3 "github.com/latticecad/latticecad/vec/v3"
)

func TestAddRemoveAtomCascadesBonds(t *testing.T) {
	s := atom.New()
	a := s.AddAtom(atom.Atom{Element: atom.Carbon, Pos: v3.Vec{}})
	b := s.AddAtom(atom.Atom{Element: atom.Hydrogen, Pos: v3.Vec{X: 1.1}})
	require.NoError(t, s.AddBond(a, b, atom.BondSingle))
	require.Equal(t, 1, s.Coordination(a))

	require.NoError(t, s.RemoveAtom(b))
	require.Equal(t, 0, s.Coordination(a))
	require.Equal(t, 1, s.Len())
}

func TestAddBondRejectsSelfAndDuplicate(t *testing.T) {
	s := atom.New()
	a := s.AddAtom(atom.Atom{Element: atom.Carbon})
	b := s.AddAtom(atom.Atom{Element: atom.Carbon, Pos: v3.Vec{X: 1.5}})

	require.ErrorIs(t, s.AddBond(a, a, atom.BondSingle), atom.ErrSelfBond)
	require.NoError(t, s.AddBond(a, b, atom.BondSingle))
	require.ErrorIs(t, s.AddBond(b, a, atom.BondDouble), atom.ErrDuplicateBond)
}

func TestDistanceAngleDihedral(t *testing.T) {
	s := atom.New()
	a := s.AddAtom(atom.Atom{Pos: v3.Vec{X: 0, Y: 0, Z: 0}, Element: atom.Carbon})
	b := s.AddAtom(atom.Atom{Pos: v3.Vec{X: 1, Y: 0, Z: 0}, Element: atom.Carbon})
	c := s.AddAtom(atom.Atom{Pos: v3.Vec{X: 1, Y: 1, Z: 0}, Element: atom.Carbon})
	e := s.AddAtom(atom.Atom{Pos: v3.Vec{X: 1, Y: 1, Z: 1}, Element: atom.Carbon})

	d, err := s.Distance(a, b)
	require.NoError(t, err)
	require.InDelta(t, 1.0, d, 1e-9)

	ang, err := s.Angle(a, b, c)
	require.NoError(t, err)
	require.InDelta(t, 1.5707963267948966, ang, 1e-9) // 90 degrees

	dih, err := s.Dihedral(a, b, c, e)
	require.NoError(t, err)
	require.InDelta(t, -1.5707963267948966, dih, 1e-9) // -90 degrees
}

func TestAtomsNearFindsWithinRadius(t *testing.T) {
	s := atom.New()
	near := s.AddAtom(atom.Atom{Pos: v3.Vec{X: 0.5}, Element: atom.Carbon})
	_ = s.AddAtom(atom.Atom{Pos: v3.Vec{X: 10}, Element: atom.Carbon})

	hits := s.AtomsNear(v3.Vec{}, 1.0)
	require.Contains(t, hits, near)
	require.Len(t, hits, 1)
}

func TestByNumberRangeValidation(t *testing.T) {
	_, err := atom.ByNumber(0)
	require.Error(t, err)
	_, err = atom.ByNumber(119)
	require.Error(t, err)
	el, err := atom.ByNumber(6)
	require.NoError(t, err)
	require.Equal(t, "C", el.Symbol)
}
