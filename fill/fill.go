// Package fill implements atom_fill: turning a lattice + motif + SDF
// region into an AtomicStructure, with optional dangling-bond cleanup,
// passivation, and (100) surface reconstruction (spec §4.D.1).
package fill

import (
	"fmt"
	"math"

	"github.com/latticecad/latticecad/atom"
	"github.com/latticecad/latticecad/lattice"
	"github.com/latticecad/latticecad/sdf"
	v3 "github.com/latticecad/latticecad/vec/v3"
	"github.com/latticecad/latticecad/vec/v3i"
)

// Options configures an atom_fill run. All cleanup stages are opt-in,
// matching the node's default of "raw enumeration plus bonding only".
type Options struct {
	// Elements maps each motif role to the element placed at that role's
	// sites. A role with no entry falls back to atom.Carbon.
	Elements map[lattice.Role]atom.Element

	RemoveOrphans      bool // drop atoms left with zero bonds after inference
	RemoveSingleBonded bool // iteratively drop atoms left with exactly one bond
	Passivate          bool // cap dangling valence with hydrogen
	Reconstruct100     bool // apply (100)-2x1 dimer reconstruction
}

// siteKey identifies one motif-site instance for neighbor lookup.
type siteKey struct {
	cell v3i.Vec
	site int
}

// Fill runs the atom_fill algorithm and returns the resulting structure.
func Fill(u lattice.UnitCell, m lattice.Motif, region sdf.SDF3, opts Options) (*atom.Structure, error) {
	sites, err := lattice.Enumerate(u, m, region)
	if err != nil {
		return nil, err
	}

	s := atom.New()
	ids := make(map[siteKey]atom.ID, len(sites))
	for _, es := range sites {
		role := m.Sites[es.SiteIndex].Role
		el, ok := opts.Elements[role]
		if !ok {
			el = atom.Carbon
		}
		id := s.AddAtom(atom.Atom{Element: el, Pos: es.Pos})
		ids[siteKey{cell: es.Cell, site: es.SiteIndex}] = id
	}

	// Bond inference: for each enumerated site, walk its motif's
	// neighbor templates and bond to whichever target site instance is
	// also present (sites outside region were never enumerated, so this
	// naturally produces dangling bonds at the boundary).
	for _, es := range sites {
		from := ids[siteKey{cell: es.Cell, site: es.SiteIndex}]
		for _, nb := range m.Sites[es.SiteIndex].Neighbors {
			targetCell := v3i.Vec{X: es.Cell.X + nb.Delta.X, Y: es.Cell.Y + nb.Delta.Y, Z: es.Cell.Z + nb.Delta.Z}
			to, ok := ids[siteKey{cell: targetCell, site: nb.TargetSite}]
			if !ok {
				continue
			}
			if _, exists := s.BondBetween(from, to); exists {
				continue
			}
			_ = s.AddBond(from, to, nb.Order)
		}
	}

	if opts.RemoveOrphans {
		removeWhere(s, func(id atom.ID) bool { return s.Coordination(id) == 0 })
	}
	if opts.RemoveSingleBonded {
		for {
			before := s.Len()
			removeWhere(s, func(id atom.ID) bool { return s.Coordination(id) == 1 })
			if s.Len() == before {
				break
			}
		}
	}
	if opts.Passivate {
		if err := Passivate(s, maxValenceOf(opts)); err != nil {
			return nil, err
		}
	}
	if opts.Reconstruct100 {
		Reconstruct100(s)
	}
	return s, nil
}

func maxValenceOf(opts Options) map[string]int {
	out := make(map[string]int)
	for _, el := range opts.Elements {
		out[el.Symbol] = el.Valence
	}
	return out
}

func removeWhere(s *atom.Structure, pred func(atom.ID) bool) {
	var doomed []atom.ID
	for _, id := range s.Atoms() {
		if pred(id) {
			doomed = append(doomed, id)
		}
	}
	for _, id := range doomed {
		_ = s.RemoveAtom(id)
	}
}

// Passivate caps every atom whose coordination is below its element's
// preferred valence with hydrogen atoms placed along the idealized
// sp3/sp2/sp directions implied by its existing bonds (spec §4.D.1).
// valenceOverride, if non-nil, overrides an element's Valence by symbol.
func Passivate(s *atom.Structure, valenceOverride map[string]int) error {
	hydro := atom.Hydrogen
	for _, id := range s.Atoms() {
		a, err := s.Atom(id)
		if err != nil {
			return err
		}
		want := a.Element.Valence
		if valenceOverride != nil {
			if v, ok := valenceOverride[a.Element.Symbol]; ok && v > 0 {
				want = v
			}
		}
		if want <= 0 {
			continue
		}
		need := want - s.Coordination(id)
		if need <= 0 {
			continue
		}
		dirs := missingDirections(s, id, a.Pos, want, need)
		bondLen := a.Element.CovalentRadius + hydro.CovalentRadius
		for _, d := range dirs {
			hid := s.AddAtom(atom.Atom{Element: hydro, Pos: a.Pos.Add(d.MulScalar(bondLen))})
			_ = s.AddBond(id, hid, atom.BondSingle)
		}
	}
	return nil
}

// missingDirections returns `need` unit directions completing the
// idealized geometry (tetrahedral for want==4, trigonal for want==3,
// linear for want==2) around center, given the existing bond directions.
func missingDirections(s *atom.Structure, id atom.ID, center v3.Vec, want, need int) []v3.Vec {
	var existing []v3.Vec
	for _, nb := range s.Neighbors(id) {
		p, err := s.Atom(nb.ID)
		if err != nil {
			continue
		}
		existing = append(existing, p.Pos.Sub(center).Normalize())
	}

	ideal := idealDirections(want)
	used := make([]bool, len(ideal))
	// Greedily match existing bonds to the ideal direction set closest
	// to them so the remaining, unmatched ideal directions are the ones
	// handed back as passivation targets.
	for _, e := range existing {
		best, bestDot := -1, math.Inf(-1)
		for i, d := range ideal {
			if used[i] {
				continue
			}
			if dot := e.Dot(d); dot > bestDot {
				best, bestDot = i, dot
			}
		}
		if best >= 0 {
			used[best] = true
		}
	}
	var out []v3.Vec
	for i, d := range ideal {
		if !used[i] {
			out = append(out, d)
		}
		if len(out) == need {
			break
		}
	}
	return out
}

// idealDirections returns the unit vectors of the idealized coordination
// geometry for a given target valence: 4 -> tetrahedral, 3 -> trigonal
// planar, 2 -> linear, else a single +Z direction.
func idealDirections(want int) []v3.Vec {
	switch want {
	case 4:
		a := 1.0 / math.Sqrt(3)
		return []v3.Vec{
			{X: a, Y: a, Z: a},
			{X: a, Y: -a, Z: -a},
			{X: -a, Y: a, Z: -a},
			{X: -a, Y: -a, Z: a},
		}
	case 3:
		return []v3.Vec{
			{X: 1, Y: 0, Z: 0},
			{X: -0.5, Y: math.Sqrt(3) / 2, Z: 0},
			{X: -0.5, Y: -math.Sqrt(3) / 2, Z: 0},
		}
	case 2:
		return []v3.Vec{{X: 1, Y: 0, Z: 0}, {X: -1, Y: 0, Z: 0}}
	default:
		return []v3.Vec{{X: 0, Y: 0, Z: 1}}
	}
}

// Reconstruct100 applies the (100)-2x1 dimer reconstruction: each atom
// with coordination of at most 2 is paired with the nearest other such
// unpaired atom within 2*dimerBond, and the pair is set dimerBond apart
// about its midpoint and bonded, reducing the
// passivation load the way a real diamond/silicon (100) surface relaxes
// (spec §4.D.1 "(100) 2x1 dimer reconstruction").
func Reconstruct100(s *atom.Structure) {
	const dimerBond = 1.4 // Å, approximate reconstructed Si/C dimer bond length

	var dangling []atom.ID
	for _, id := range s.Atoms() {
		if s.Coordination(id) <= 2 {
			dangling = append(dangling, id)
		}
	}
	paired := make(map[atom.ID]bool)
	for _, id := range dangling {
		if paired[id] {
			continue
		}
		a, err := s.Atom(id)
		if err != nil {
			continue
		}
		bestID, bestDist := atom.ID(-1), math.Inf(1)
		for _, cand := range dangling {
			if cand == id || paired[cand] {
				continue
			}
			c, err := s.Atom(cand)
			if err != nil {
				continue
			}
			d := a.Pos.Distance(c.Pos)
			if d < bestDist {
				bestID, bestDist = cand, d
			}
		}
		if bestID < 0 || bestDist > 2*dimerBond {
			continue
		}
		b, _ := s.Atom(bestID)
		mid := a.Pos.Lerp(b.Pos, 0.5)
		dir := b.Pos.Sub(a.Pos).Normalize()
		_ = s.SetAtom(id, atom.Atom{Element: a.Element, Pos: mid.Sub(dir.MulScalar(dimerBond / 2))})
		_ = s.SetAtom(bestID, atom.Atom{Element: b.Element, Pos: mid.Add(dir.MulScalar(dimerBond / 2))})
		if _, exists := s.BondBetween(id, bestID); !exists {
			_ = s.AddBond(id, bestID, atom.BondSingle)
		}
		paired[id], paired[bestID] = true, true
	}
}

// ErrNoElement is returned when a motif role has no assigned element and
// no fallback is acceptable (reserved for future strict-mode callers).
var ErrNoElement = fmt.Errorf("fill: motif role has no assigned element")

// IdealDirections exports idealDirections for callers outside this
// package that need the same idealized coordination geometry for
// interactive guidance (editdiff's guided atom placement).
func IdealDirections(want int) []v3.Vec { return idealDirections(want) }

// MissingDirections exports missingDirections for callers outside this
// package; see idealDirections.
func MissingDirections(s *atom.Structure, id atom.ID, center v3.Vec, want, need int) []v3.Vec {
	return missingDirections(s, id, center, want, need)
}
