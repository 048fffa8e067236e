package uff_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/latticecad/latticecad/atom"
	"github.com/latticecad/latticecad/uff"
	v3 "github.com/latticecad/latticecad/vec/v3"
)

func TestTypeSp3CarbonByDefault(t *testing.T) {
	s := atom.New()
	c := s.AddAtom(atom.Atom{Element: atom.Carbon, Pos: v3.Vec{}})
	h := s.AddAtom(atom.Atom{Element: atom.Hydrogen, Pos: v3.Vec{X: 1.1}})
	require.NoError(t, s.AddBond(c, h, atom.BondSingle))

	label, err := uff.Type(s, c)
	require.NoError(t, err)
	require.Equal(t, "C_3", label)
}

func TestTypeAromaticCarbonUsesResonantLabel(t *testing.T) {
	s := atom.New()
	c1 := s.AddAtom(atom.Atom{Element: atom.Carbon, Pos: v3.Vec{X: 0}})
	c2 := s.AddAtom(atom.Atom{Element: atom.Carbon, Pos: v3.Vec{X: 1.4}})
	require.NoError(t, s.AddBond(c1, c2, atom.BondAromatic))

	label, err := uff.Type(s, c1)
	require.NoError(t, err)
	require.Equal(t, "C_R", label)
}

func TestTypeUnmappedElementErrors(t *testing.T) {
	s := atom.New()
	el, err := atom.ByNumber(92) // uranium: not in the UFF table this engine carries
	require.NoError(t, err)
	id := s.AddAtom(atom.Atom{Element: el})

	_, err = uff.Type(s, id)
	require.Error(t, err)
}

func TestTypeAllCoversEveryAtom(t *testing.T) {
	s := atom.New()
	c := s.AddAtom(atom.Atom{Element: atom.Carbon})
	h := s.AddAtom(atom.Atom{Element: atom.Hydrogen, Pos: v3.Vec{X: 1.1}})
	require.NoError(t, s.AddBond(c, h, atom.BondSingle))

	labels, err := uff.TypeAll(s)
	require.NoError(t, err)
	require.Len(t, labels, 2)
	require.Equal(t, "H_", labels[h])
}
