package atom_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/latticecad/latticecad/atom"
	v3 "github.com/latticecad/latticecad/vec/v3"
)

func TestWriteXYZHeaderMatchesAtomCount(t *testing.T) {
	s := atom.New()
	s.AddAtom(atom.Atom{Element: atom.Carbon, Pos: v3.Vec{}})
	s.AddAtom(atom.Atom{Element: atom.Hydrogen, Pos: v3.Vec{X: 1.1}})

	var buf strings.Builder
	require.NoError(t, s.WriteXYZ(&buf, "test"))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Equal(t, "2", lines[0])
	require.Equal(t, "test", lines[1])
	require.Len(t, lines, 4)
}

func TestWriteMOLCountsLineMatchesAtomsAndBonds(t *testing.T) {
	s := atom.New()
	c := s.AddAtom(atom.Atom{Element: atom.Carbon, Pos: v3.Vec{}})
	h := s.AddAtom(atom.Atom{Element: atom.Hydrogen, Pos: v3.Vec{X: 1.1}})
	require.NoError(t, s.AddBond(c, h, atom.BondSingle))

	var buf strings.Builder
	require.NoError(t, s.WriteMOL(&buf, "mol"))

	lines := strings.Split(buf.String(), "\n")
	require.Contains(t, lines[3], "  2  1")
	require.Equal(t, "M  END", lines[len(lines)-2])
}
