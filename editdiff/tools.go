package editdiff

import (
	"errors"
	"fmt"
	"math"

	"github.com/latticecad/latticecad/atom"
	"github.com/latticecad/latticecad/fill"
	v3 "github.com/latticecad/latticecad/vec/v3"
)

// tetrahedralAngle is the ideal bond angle (radians) around a
// single-bonded atom's existing neighbor, used to sweep the guided
// placement ring (spec §4.D.2 "single-neighbor rotating ring").
const tetrahedralAngle = 1.9106332362490186 // 109.47 degrees

// ErrWrongPhase is returned when a tool method is called out of the
// begin/update/commit sequence the interaction pattern requires.
var ErrWrongPhase = errors.New("editdiff: tool method called out of sequence")

// phase tracks the three-phase mutation pattern shared by every tool:
// a tool is Begin()-ed once per gesture, Update()-ed any number of
// times as the pointer or parameters change, and Commit()-ed exactly
// once to bake the result into the working diff.
type phase int

const (
	phaseIdle phase = iota
	phaseActive
)

// Tool is the common interface every atom_edit interaction implements.
type Tool interface {
	Begin(diff *atom.Structure) error
	Update(diff *atom.Structure) error
	Commit(diff *atom.Structure) error
	Cancel()
}

// DefaultTool is the selection/inspection tool: most of its methods only
// read the diff (hit-testing, measurement) between begin and commit, but
// its click action mutates an already-selected bond by cycling its
// order (spec §4.D.2 "bond-order cycling").
type DefaultTool struct {
	phase    phase
	Selected []atom.ID

	bondA, bondB atom.ID
	hasBond      bool
}

func (t *DefaultTool) Begin(diff *atom.Structure) error {
	t.phase = phaseActive
	return nil
}

func (t *DefaultTool) Update(diff *atom.Structure) error {
	if t.phase != phaseActive {
		return ErrWrongPhase
	}
	return nil
}

func (t *DefaultTool) Commit(diff *atom.Structure) error {
	if t.phase != phaseActive {
		return ErrWrongPhase
	}
	t.phase = phaseIdle
	return nil
}

func (t *DefaultTool) Cancel() { t.phase = phaseIdle }

// SelectAtoms replaces the tool's current atom selection.
func (t *DefaultTool) SelectAtoms(ids ...atom.ID) {
	t.Selected = ids
	t.hasBond = false
}

// SelectBond marks the bond between a and b as selected; a subsequent
// Click on the same bond cycles its order.
func (t *DefaultTool) SelectBond(a, b atom.ID) {
	t.bondA, t.bondB = a, b
	t.hasBond = true
}

// Click dispatches the tool's click action. With a bond selected, it
// cycles that bond's order 1 -> 2 -> 3 -> 1 (period 3); with no bond
// selected it is a no-op, since plain atom selection is tracked by
// SelectAtoms rather than mutating the diff.
func (t *DefaultTool) Click(diff *atom.Structure) error {
	if t.phase != phaseActive {
		return ErrWrongPhase
	}
	if !t.hasBond {
		return nil
	}
	b, ok := diff.BondBetween(t.bondA, t.bondB)
	if !ok {
		return fmt.Errorf("editdiff: no bond between selected atoms %d and %d", t.bondA, t.bondB)
	}
	next := b.Order%3 + 1
	return diff.SetBondOrder(t.bondA, t.bondB, next)
}

// AddAtomTool places a new atom either freely at a pointer position or,
// once Guide is called, at a position snapped to the idealized
// coordination geometry around an existing atom (spec §4.D.2 "guided
// placement"). The pending atom is inserted into the diff by the first
// Update, MoveTo or Guide call and moved by later ones; Commit ends the
// gesture and, if guided, bonds the atom to the guide target.
type AddAtomTool struct {
	phase   phase
	Element atom.Element
	pos     v3.Vec
	placed  atom.ID
	started bool

	guided      bool
	guideTarget atom.ID
	rotation    float64
}

func NewAddAtomTool(el atom.Element) *AddAtomTool {
	return &AddAtomTool{Element: el}
}

func (t *AddAtomTool) Begin(diff *atom.Structure) error {
	t.phase = phaseActive
	t.started = false
	t.guided = false
	return nil
}

// Update moves the pending atom to pos, inserting it on first call.
func (t *AddAtomTool) Update(diff *atom.Structure) error {
	return t.updateAt(diff, t.pos)
}

// MoveTo is the pointer-driven variant of Update used by interactive
// callers (CLI/GUI front ends) that track a live cursor position. It
// cancels any guided placement started by Guide, reverting to free
// placement.
func (t *AddAtomTool) MoveTo(diff *atom.Structure, pos v3.Vec) error {
	t.guided = false
	t.pos = pos
	return t.updateAt(diff, pos)
}

// Guide switches the tool into guided placement relative to target, an
// atom already present in diff, and sets the rotation (radians) used to
// sweep the guide when target has zero or one existing bonds. Clicking
// an existing atom with no bonds offers a single direction that rotates
// freely around it (the "bare-atom rotating dot"); one existing bond
// offers a ring of directions swept around that bond's axis at the
// tetrahedral angle (the "single-neighbor rotating ring"); two or more
// bonds snap to the idealized sp3/sp2/sp directions completing the
// target's valence, reusing the same geometry fill.go uses to place
// passivating hydrogens.
func (t *AddAtomTool) Guide(diff *atom.Structure, target atom.ID, rotation float64) error {
	t.guided = true
	t.guideTarget = target
	t.rotation = rotation
	return t.updateAt(diff, t.guidedPosition(diff))
}

func (t *AddAtomTool) guidedPosition(diff *atom.Structure) v3.Vec {
	center, err := diff.Atom(t.guideTarget)
	if err != nil {
		return t.pos
	}
	bondLen := t.Element.CovalentRadius + center.Element.CovalentRadius

	switch diff.Coordination(t.guideTarget) {
	case 0:
		dir := v3.Vec{X: math.Cos(t.rotation), Y: math.Sin(t.rotation), Z: 0}
		return center.Pos.Add(dir.MulScalar(bondLen))
	case 1:
		nbs := diff.Neighbors(t.guideTarget)
		nb, err := diff.Atom(nbs[0].ID)
		if err != nil {
			return t.pos
		}
		axis := nb.Pos.Sub(center.Pos).Normalize()
		u, v := axis.ApproxOrthonormalBasis()
		ring := axis.MulScalar(math.Cos(tetrahedralAngle)).
			Add(u.MulScalar(math.Cos(t.rotation) * math.Sin(tetrahedralAngle))).
			Add(v.MulScalar(math.Sin(t.rotation) * math.Sin(tetrahedralAngle)))
		return center.Pos.Add(ring.Normalize().MulScalar(bondLen))
	default:
		want := center.Element.Valence
		need := want - diff.Coordination(t.guideTarget)
		if need <= 0 {
			return t.pos
		}
		dirs := fill.MissingDirections(diff, t.guideTarget, center.Pos, want, need)
		if len(dirs) == 0 {
			return t.pos
		}
		return center.Pos.Add(dirs[0].MulScalar(bondLen))
	}
}

func (t *AddAtomTool) updateAt(diff *atom.Structure, pos v3.Vec) error {
	if t.phase != phaseActive {
		return ErrWrongPhase
	}
	t.pos = pos
	if !t.started {
		t.placed = diff.AddAtom(atom.Atom{Element: t.Element, Pos: pos})
		t.started = true
		return nil
	}
	return diff.SetAtom(t.placed, atom.Atom{Element: t.Element, Pos: pos})
}

func (t *AddAtomTool) Commit(diff *atom.Structure) error {
	if t.phase != phaseActive {
		return ErrWrongPhase
	}
	t.phase = phaseIdle
	if t.guided && t.started {
		if _, exists := diff.BondBetween(t.guideTarget, t.placed); !exists {
			return diff.AddBond(t.guideTarget, t.placed, atom.BondSingle)
		}
	}
	return nil
}

// Cancel ends the gesture without adding the guide bond. An atom already
// inserted by Update, MoveTo or Guide is not removed and stays in the diff.
func (t *AddAtomTool) Cancel() {
	t.phase = phaseIdle
}

// AddBondTool connects two atoms already present in the diff, tracking
// the second ("to") endpoint live as the pointer moves over candidate
// atoms and finalizing the bond on Commit.
type AddBondTool struct {
	phase    phase
	From     atom.ID
	to       atom.ID
	hasTo    bool
	Order    int
	fromSet  bool
}

func NewAddBondTool(from atom.ID, order int) *AddBondTool {
	return &AddBondTool{From: from, Order: order, fromSet: true}
}

func (t *AddBondTool) Begin(diff *atom.Structure) error {
	if !t.fromSet {
		return errors.New("editdiff: AddBondTool requires a From atom")
	}
	t.phase = phaseActive
	return nil
}

// HoverAtom updates which candidate atom the bond would connect to if
// committed now, without mutating the diff.
func (t *AddBondTool) HoverAtom(id atom.ID) {
	t.to, t.hasTo = id, true
}

func (t *AddBondTool) Update(diff *atom.Structure) error {
	if t.phase != phaseActive {
		return ErrWrongPhase
	}
	return nil
}

func (t *AddBondTool) Commit(diff *atom.Structure) error {
	if t.phase != phaseActive {
		return ErrWrongPhase
	}
	t.phase = phaseIdle
	if !t.hasTo {
		return errors.New("editdiff: AddBondTool committed with no target atom")
	}
	return diff.AddBond(t.From, t.to, t.Order)
}

func (t *AddBondTool) Cancel() { t.phase = phaseIdle }

// Distance, Angle, and Dihedral are read-only measurement queries over
// a result structure (spec §4.D.2 "measurement tools").
func Distance(s *atom.Structure, a, b atom.ID) (float64, error) { return s.Distance(a, b) }
func Angle(s *atom.Structure, a, b, c atom.ID) (float64, error) { return s.Angle(a, b, c) }
func Dihedral(s *atom.Structure, a, b, c, d atom.ID) (float64, error) {
	return s.Dihedral(a, b, c, d)
}

// SetDistance is the writable counterpart of Distance: it moves atom b
// directly away from or toward a along their existing bond direction so
// the measured distance becomes want, leaving a fixed.
func SetDistance(s *atom.Structure, a, b atom.ID, want float64) error {
	pa, err := s.Atom(a)
	if err != nil {
		return err
	}
	pb, err := s.Atom(b)
	if err != nil {
		return err
	}
	dir := pb.Pos.Sub(pa.Pos)
	if dir.Length() == 0 {
		return errors.New("editdiff: cannot redirect a zero-length bond")
	}
	newPos := pa.Pos.Add(dir.Normalize().MulScalar(want))
	return s.SetAtom(b, atom.Atom{Element: pb.Element, Pos: newPos, Anchor: pb.Anchor, Frozen: pb.Frozen})
}
