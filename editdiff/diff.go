// Package editdiff implements the non-destructive atom-editing model:
// diffs, provenance, and the tool interaction pattern described in
// spec §4.D.2 ("atom_edit").
package editdiff

import (
	"math"

	"github.com/latticecad/latticecad/atom"
	v3 "github.com/latticecad/latticecad/vec/v3"
)

// Provenance classifies where a result atom came from after a diff has
// been applied to a base structure.
type Provenance int

const (
	// Base marks an atom carried over unchanged from the base structure.
	Base Provenance = iota
	// DiffMatched marks an atom present in the diff whose anchor matched
	// a base atom (an edited atom: moved, re-elemented, or untouched but
	// explicitly re-asserted).
	DiffMatched
	// DiffAdded marks an atom present in the diff with no anchor, or
	// whose anchor matched nothing in the base (a pure addition).
	DiffAdded
)

// Diff is a structure describing a set of edits relative to some base:
// every atom optionally carries an Anchor recording where the
// corresponding base atom sits, so matching survives base atoms moving
// or being added/removed elsewhere.
type Diff = atom.Structure

// Result is the outcome of applying a Diff to a base structure: the
// merged structure plus a provenance tag per result atom ID.
type Result struct {
	Structure  *atom.Structure
	Provenance map[atom.ID]Provenance
}

// MatchTolerance is the default distance (Å) within which a diff atom's
// anchor is considered to match a base atom.
const MatchTolerance = 1e-6

// Apply merges diff onto base: diff atoms whose anchor matches a base
// atom (within tol) replace that base atom in place; diff atoms with no
// matching anchor are pure additions; base atoms with no matching diff
// atom are carried over unchanged; a diff atom marked Deleted removes
// its matched base atom instead of replacing it.
func Apply(base, diff *atom.Structure, tol float64) Result {
	if tol <= 0 {
		tol = MatchTolerance
	}
	out := atom.New()
	prov := make(map[atom.ID]Provenance)

	matchedBase := make(map[atom.ID]bool)
	// remapBase maps a base atom ID to its ID in out, once carried over.
	remapBase := make(map[atom.ID]atom.ID)
	remapDiff := make(map[atom.ID]atom.ID)

	for _, did := range diff.Atoms() {
		da, err := diff.Atom(did)
		if err != nil {
			continue
		}
		if da.Anchor == nil {
			if da.Deleted {
				continue
			}
			nid := out.AddAtom(atom.Atom{Element: da.Element, Pos: da.Pos, Frozen: da.Frozen})
			remapDiff[did] = nid
			prov[nid] = DiffAdded
			continue
		}
		bid, ok := nearestUnmatched(base, matchedBase, da.Anchor.Pos, tol)
		if !ok {
			if da.Deleted {
				continue
			}
			nid := out.AddAtom(atom.Atom{Element: da.Element, Pos: da.Pos, Frozen: da.Frozen})
			remapDiff[did] = nid
			prov[nid] = DiffAdded
			continue
		}
		matchedBase[bid] = true
		if da.Deleted {
			continue // matched base atom is dropped, no output atom
		}
		nid := out.AddAtom(atom.Atom{Element: da.Element, Pos: da.Pos, Frozen: da.Frozen})
		remapBase[bid] = nid
		remapDiff[did] = nid
		prov[nid] = DiffMatched
	}

	for _, bid := range base.Atoms() {
		if matchedBase[bid] {
			continue
		}
		ba, err := base.Atom(bid)
		if err != nil {
			continue
		}
		nid := out.AddAtom(atom.Atom{Element: ba.Element, Pos: ba.Pos, Frozen: ba.Frozen})
		remapBase[bid] = nid
		prov[nid] = Base
	}

	for _, b := range base.Bonds() {
		a1, ok1 := remapBase[b.A]
		a2, ok2 := remapBase[b.B]
		if ok1 && ok2 {
			_ = out.AddBond(a1, a2, b.Order)
		}
	}
	for _, b := range diff.Bonds() {
		a1, ok1 := remapDiff[b.A]
		a2, ok2 := remapDiff[b.B]
		if !ok1 || !ok2 {
			continue
		}
		if _, exists := out.BondBetween(a1, a2); exists {
			continue
		}
		_ = out.AddBond(a1, a2, b.Order)
	}

	return Result{Structure: out, Provenance: prov}
}

func nearestUnmatched(base *atom.Structure, matched map[atom.ID]bool, p v3.Vec, tol float64) (atom.ID, bool) {
	best, bestDist := atom.ID(-1), math.Inf(1)
	for _, cand := range base.AtomsNear(p, tol) {
		if matched[cand] {
			continue
		}
		ba, err := base.Atom(cand)
		if err != nil {
			continue
		}
		d := ba.Pos.Distance(p)
		if d < bestDist {
			best, bestDist = cand, d
		}
	}
	if best < 0 {
		return 0, false
	}
	return best, true
}

// SelectByProvenance returns every result atom ID with the given
// provenance tag, letting a selection made before re-evaluation (e.g.
// "select everything I added") survive a structural change.
func SelectByProvenance(r Result, want Provenance) []atom.ID {
	var out []atom.ID
	for id, p := range r.Provenance {
		if p == want {
			out = append(out, id)
		}
	}
	return out
}
