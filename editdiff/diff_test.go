package editdiff_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/latticecad/latticecad/atom"
	"github.com/latticecad/latticecad/editdiff"
	v3 "github.com/latticecad/latticecad/vec/v3"
)

func TestApplyMatchesAnchoredAtom(t *testing.T) {
	base := atom.New()
	baseAtom := base.AddAtom(atom.Atom{Element: atom.Carbon, Pos: v3.Vec{X: 0, Y: 0, Z: 0}})

	diff := atom.New()
	diff.AddAtom(atom.Atom{
		Element: atom.Carbon,
		Pos:     v3.Vec{X: 0.1, Y: 0, Z: 0}, // moved slightly
		Anchor:  &atom.Anchor{Pos: v3.Vec{X: 0, Y: 0, Z: 0}},
	})

	result := editdiff.Apply(base, diff, 1e-3)
	require.Equal(t, 1, result.Structure.Len())

	matched := editdiff.SelectByProvenance(result, editdiff.DiffMatched)
	require.Len(t, matched, 1)

	moved, err := result.Structure.Atom(matched[0])
	require.NoError(t, err)
	require.InDelta(t, 0.1, moved.Pos.X, 1e-9)
	_ = baseAtom
}

func TestApplyAddsUnanchoredAtom(t *testing.T) {
	base := atom.New()
	base.AddAtom(atom.Atom{Element: atom.Carbon})

	diff := atom.New()
	diff.AddAtom(atom.Atom{Element: atom.Hydrogen, Pos: v3.Vec{X: 2}})

	result := editdiff.Apply(base, diff, 1e-3)
	require.Equal(t, 2, result.Structure.Len())
	require.Len(t, editdiff.SelectByProvenance(result, editdiff.DiffAdded), 1)
	require.Len(t, editdiff.SelectByProvenance(result, editdiff.Base), 1)
}

func TestApplyDeleteRemovesMatchedAtom(t *testing.T) {
	base := atom.New()
	base.AddAtom(atom.Atom{Element: atom.Carbon, Pos: v3.Vec{X: 0}})

	diff := atom.New()
	diff.AddAtom(atom.Atom{
		Deleted: true,
		Anchor:  &atom.Anchor{Pos: v3.Vec{X: 0}},
	})

	result := editdiff.Apply(base, diff, 1e-3)
	require.Equal(t, 0, result.Structure.Len())
}

func TestAddAtomToolThreePhasePattern(t *testing.T) {
	diff := atom.New()
	tool := editdiff.NewAddAtomTool(atom.Carbon)

	require.NoError(t, tool.Begin(diff))
	require.NoError(t, tool.MoveTo(diff, v3.Vec{X: 1, Y: 2, Z: 3}))
	require.Equal(t, 1, diff.Len())
	require.NoError(t, tool.Commit(diff))

	// calling Update after commit is a protocol error
	require.ErrorIs(t, tool.Update(diff), editdiff.ErrWrongPhase)
}

func TestDefaultToolClickCyclesBondOrder(t *testing.T) {
	diff := atom.New()
	a := diff.AddAtom(atom.Atom{Element: atom.Carbon, Pos: v3.Vec{X: 0, Y: 0, Z: 0}})
	b := diff.AddAtom(atom.Atom{Element: atom.Carbon, Pos: v3.Vec{X: 1.5, Y: 0, Z: 0}})
	require.NoError(t, diff.AddBond(a, b, atom.BondSingle))

	tool := &editdiff.DefaultTool{}
	require.NoError(t, tool.Begin(diff))
	tool.SelectBond(a, b)

	require.NoError(t, tool.Click(diff))
	bond, ok := diff.BondBetween(a, b)
	require.True(t, ok)
	require.Equal(t, 2, bond.Order)

	require.NoError(t, tool.Click(diff))
	bond, _ = diff.BondBetween(a, b)
	require.Equal(t, 3, bond.Order)

	require.NoError(t, tool.Click(diff))
	bond, _ = diff.BondBetween(a, b)
	require.Equal(t, 1, bond.Order)
}

func TestDefaultToolClickWithNoSelectionIsNoop(t *testing.T) {
	diff := atom.New()
	tool := &editdiff.DefaultTool{}
	require.NoError(t, tool.Begin(diff))
	require.NoError(t, tool.Click(diff))
}

func TestAddAtomToolGuideBareAtom(t *testing.T) {
	diff := atom.New()
	center := diff.AddAtom(atom.Atom{Element: atom.Carbon, Pos: v3.Vec{X: 0, Y: 0, Z: 0}})

	tool := editdiff.NewAddAtomTool(atom.Hydrogen)
	require.NoError(t, tool.Begin(diff))
	require.NoError(t, tool.Guide(diff, center, 0))
	require.NoError(t, tool.Commit(diff))

	require.Equal(t, 1, diff.Coordination(center))
}

func TestAddAtomToolGuideSingleNeighborRing(t *testing.T) {
	diff := atom.New()
	center := diff.AddAtom(atom.Atom{Element: atom.Carbon, Pos: v3.Vec{X: 0, Y: 0, Z: 0}})
	nb := diff.AddAtom(atom.Atom{Element: atom.Carbon, Pos: v3.Vec{X: 1.5, Y: 0, Z: 0}})
	require.NoError(t, diff.AddBond(center, nb, atom.BondSingle))

	tool := editdiff.NewAddAtomTool(atom.Hydrogen)
	require.NoError(t, tool.Begin(diff))
	require.NoError(t, tool.Guide(diff, center, 0.7))
	require.NoError(t, tool.Commit(diff))

	require.Equal(t, 2, diff.Coordination(center))
}

func TestAddAtomToolGuideIdealizedSnap(t *testing.T) {
	diff := atom.New()
	center := diff.AddAtom(atom.Atom{Element: atom.Carbon, Pos: v3.Vec{X: 0, Y: 0, Z: 0}})
	for _, p := range []v3.Vec{{X: 1, Y: 1, Z: 1}, {X: 1, Y: -1, Z: -1}} {
		nb := diff.AddAtom(atom.Atom{Element: atom.Carbon, Pos: p})
		require.NoError(t, diff.AddBond(center, nb, atom.BondSingle))
	}

	tool := editdiff.NewAddAtomTool(atom.Hydrogen)
	require.NoError(t, tool.Begin(diff))
	require.NoError(t, tool.Guide(diff, center, 0))
	require.NoError(t, tool.Commit(diff))

	require.Equal(t, 3, diff.Coordination(center))
}
