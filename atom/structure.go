package atom

import (
	"errors"
	"fmt"

	"github.com/dhconnelly/rtreego"
	v3 "github.com/latticecad/latticecad/vec/v3"
)

// ID is a stable, dense, never-reused integer atom identifier within one
// AtomicStructure.
type ID int

// Anchor records "where the matching base atom currently sits" for a
// diff atom (spec §3 "Diff"). nil means a pure addition.
type Anchor struct {
	Pos v3.Vec
}

// Atom is one atom: its element, Cartesian position, and (only
// meaningful on diff structures) its anchor.
type Atom struct {
	Element  Element
	Pos      v3.Vec
	Anchor   *Anchor
	Deleted  bool // delete-marker atom, diff structures only
	Frozen   bool // excluded from minimizer variables
}

// Bond order codes. 1-3 are the ordinary single/double/triple bonds;
// 4-7 are specialized dative/aromatic variants carried opaquely by the
// rest of the system (UFF typing is the only part that special-cases
// the aromatic code, 4).
const (
	BondSingle   = 1
	BondDouble   = 2
	BondTriple   = 3
	BondAromatic = 4
	BondDative   = 5
)

// Bond is an ordered pair of atom IDs with an integer order.
type Bond struct {
	A, B  ID
	Order int
}

// key returns the unordered pair key used to enforce "at most one bond
// per unordered pair".
func (b Bond) key() [2]ID {
	if b.A <= b.B {
		return [2]ID{b.A, b.B}
	}
	return [2]ID{b.B, b.A}
}

var (
	// ErrSelfBond is returned when a bond's two endpoints are the same atom.
	ErrSelfBond = errors.New("atom: self-bonds are not allowed")
	// ErrDuplicateBond is returned when a bond already exists between two atoms.
	ErrDuplicateBond = errors.New("atom: a bond already exists between these atoms")
	// ErrNoSuchAtom is returned when an atom ID is not present in the structure.
	ErrNoSuchAtom = errors.New("atom: no such atom")
	// ErrNoSuchBond is returned when no bond exists between two given atoms.
	ErrNoSuchBond = errors.New("atom: no such bond")
)

// Structure is an ordered set of atoms and bonds, the result of a
// lattice fill or a diff application. IDs are dense but never reused:
// RemoveAtom leaves a hole rather than renumbering.
type Structure struct {
	atoms   map[ID]*Atom
	order   []ID // insertion order, for deterministic iteration/export
	bonds   map[[2]ID]*Bond
	nextID  ID
	index   *rtreego.Rtree // spatial index over atom positions
	spatial map[ID]*atomSpatial
}

// New returns an empty AtomicStructure.
func New() *Structure {
	return &Structure{
		atoms:   make(map[ID]*Atom),
		bonds:   make(map[[2]ID]*Bond),
		index:   rtreego.NewTree(3, 8, 25),
		spatial: make(map[ID]*atomSpatial),
	}
}

// atomSpatial adapts an atom position to rtreego.Spatial so the
// structure's R-tree can answer AtomsNear radius queries; editdiff's
// anchor matching is their caller (spec §4.D.2).
type atomSpatial struct {
	id  ID
	pos v3.Vec
}

func (s *atomSpatial) Bounds() *rtreego.Rect {
	const eps = 1e-6
	r, _ := rtreego.NewRect(
		rtreego.Point{s.pos.X - eps, s.pos.Y - eps, s.pos.Z - eps},
		[]float64{2 * eps, 2 * eps, 2 * eps},
	)
	return r
}

// AddAtom inserts a new atom and returns its ID.
func (s *Structure) AddAtom(a Atom) ID {
	id := s.nextID
	s.nextID++
	cp := a
	s.atoms[id] = &cp
	s.order = append(s.order, id)
	sp := &atomSpatial{id: id, pos: a.Pos}
	s.spatial[id] = sp
	s.index.Insert(sp)
	return id
}

// Atom returns the atom with the given ID.
func (s *Structure) Atom(id ID) (Atom, error) {
	a, ok := s.atoms[id]
	if !ok {
		return Atom{}, fmt.Errorf("%w: %d", ErrNoSuchAtom, id)
	}
	return *a, nil
}

// SetAtom overwrites the element/position of an existing atom (used by
// move/re-element operations; it never touches the atom's anchor).
func (s *Structure) SetAtom(id ID, a Atom) error {
	cur, ok := s.atoms[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrNoSuchAtom, id)
	}
	anchor := cur.Anchor
	*cur = a
	cur.Anchor = anchor
	s.index.Delete(s.spatial[id])
	s.spatial[id] = &atomSpatial{id: id, pos: a.Pos}
	s.index.Insert(s.spatial[id])
	return nil
}

// RemoveAtom deletes an atom and every bond incident to it.
func (s *Structure) RemoveAtom(id ID) error {
	if _, ok := s.atoms[id]; !ok {
		return fmt.Errorf("%w: %d", ErrNoSuchAtom, id)
	}
	for k, b := range s.bonds {
		if b.A == id || b.B == id {
			delete(s.bonds, k)
		}
	}
	s.index.Delete(s.spatial[id])
	delete(s.spatial, id)
	delete(s.atoms, id)
	for i, o := range s.order {
		if o == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// AddBond adds a bond between a and b with the given order. Self-bonds
// and duplicate unordered pairs are rejected.
func (s *Structure) AddBond(a, b ID, order int) error {
	if a == b {
		return ErrSelfBond
	}
	if _, ok := s.atoms[a]; !ok {
		return fmt.Errorf("%w: %d", ErrNoSuchAtom, a)
	}
	if _, ok := s.atoms[b]; !ok {
		return fmt.Errorf("%w: %d", ErrNoSuchAtom, b)
	}
	bond := Bond{A: a, B: b, Order: order}
	k := bond.key()
	if _, exists := s.bonds[k]; exists {
		return ErrDuplicateBond
	}
	s.bonds[k] = &bond
	return nil
}

// RemoveBond removes the bond between a and b, if any.
func (s *Structure) RemoveBond(a, b ID) error {
	k := (Bond{A: a, B: b}).key()
	if _, ok := s.bonds[k]; !ok {
		return ErrNoSuchBond
	}
	delete(s.bonds, k)
	return nil
}

// SetBondOrder changes the order of an existing bond.
func (s *Structure) SetBondOrder(a, b ID, order int) error {
	k := (Bond{A: a, B: b}).key()
	bond, ok := s.bonds[k]
	if !ok {
		return ErrNoSuchBond
	}
	bond.Order = order
	return nil
}

// BondBetween returns the bond between a and b, if any.
func (s *Structure) BondBetween(a, b ID) (Bond, bool) {
	k := (Bond{A: a, B: b}).key()
	bond, ok := s.bonds[k]
	if !ok {
		return Bond{}, false
	}
	return *bond, true
}

// Atoms returns every atom ID in insertion order.
func (s *Structure) Atoms() []ID {
	out := make([]ID, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of atoms.
func (s *Structure) Len() int { return len(s.atoms) }

// Bonds returns every bond, in no particular order.
func (s *Structure) Bonds() []Bond {
	out := make([]Bond, 0, len(s.bonds))
	for _, b := range s.bonds {
		out = append(out, *b)
	}
	return out
}

// Neighbors returns the IDs bonded to id, together with the bond order
// of each, in no particular order.
func (s *Structure) Neighbors(id ID) []struct {
	ID    ID
	Order int
} {
	var out []struct {
		ID    ID
		Order int
	}
	for _, b := range s.bonds {
		if b.A == id {
			out = append(out, struct {
				ID    ID
				Order int
			}{b.B, b.Order})
		} else if b.B == id {
			out = append(out, struct {
				ID    ID
				Order int
			}{b.A, b.Order})
		}
	}
	return out
}

// Coordination returns the number of bonds incident to id.
func (s *Structure) Coordination(id ID) int {
	return len(s.Neighbors(id))
}

// AtomsNear returns every atom ID within radius of center, using the
// structure's R-tree index.
func (s *Structure) AtomsNear(center v3.Vec, radius float64) []ID {
	rect, _ := rtreego.NewRect(
		rtreego.Point{center.X - radius, center.Y - radius, center.Z - radius},
		[]float64{2 * radius, 2 * radius, 2 * radius},
	)
	hits := s.index.SearchIntersect(rect)
	out := make([]ID, 0, len(hits))
	r2 := radius * radius
	for _, h := range hits {
		sp := h.(*atomSpatial)
		if sp.pos.Sub(center).Length2() <= r2 {
			out = append(out, sp.id)
		}
	}
	return out
}

// Distance returns the distance between two atoms.
func (s *Structure) Distance(a, b ID) (float64, error) {
	pa, err := s.Atom(a)
	if err != nil {
		return 0, err
	}
	pb, err := s.Atom(b)
	if err != nil {
		return 0, err
	}
	return pa.Pos.Distance(pb.Pos), nil
}

// Angle returns the angle (radians) at vertex b formed by a-b-c.
func (s *Structure) Angle(a, b, c ID) (float64, error) {
	pa, err := s.Atom(a)
	if err != nil {
		return 0, err
	}
	pb, err := s.Atom(b)
	if err != nil {
		return 0, err
	}
	pc, err := s.Atom(c)
	if err != nil {
		return 0, err
	}
	u := pa.Pos.Sub(pb.Pos)
	v := pc.Pos.Sub(pb.Pos)
	return vectorAngle(u, v), nil
}

// Dihedral returns the dihedral angle (radians) over the 4-chain a-b-c-d.
func (s *Structure) Dihedral(a, b, c, d ID) (float64, error) {
	pa, err := s.Atom(a)
	if err != nil {
		return 0, err
	}
	pb, err := s.Atom(b)
	if err != nil {
		return 0, err
	}
	pc, err := s.Atom(c)
	if err != nil {
		return 0, err
	}
	pd, err := s.Atom(d)
	if err != nil {
		return 0, err
	}
	b1 := pb.Pos.Sub(pa.Pos)
	b2 := pc.Pos.Sub(pb.Pos)
	b3 := pd.Pos.Sub(pc.Pos)
	n1 := b1.Cross(b2)
	n2 := b2.Cross(b3)
	m1 := n1.Cross(b2.Normalize())
	x := n1.Dot(n2)
	y := m1.Dot(n2)
	return atan2(y, x), nil
}

// Translate moves every atom in ids by delta. A nil ids translates the
// whole structure.
func (s *Structure) Translate(ids []ID, delta v3.Vec) {
	s.forEach(ids, func(a *Atom) { a.Pos = a.Pos.Add(delta) })
}

// Rotate rotates every atom in ids by the given rotation (about pivot).
// A nil ids rotates the whole structure.
func (s *Structure) Rotate(ids []ID, pivot v3.Vec, rotate func(v3.Vec) v3.Vec) {
	s.forEach(ids, func(a *Atom) { a.Pos = pivot.Add(rotate(a.Pos.Sub(pivot))) })
}

func (s *Structure) forEach(ids []ID, f func(*Atom)) {
	targets := ids
	if targets == nil {
		targets = s.order
	}
	for _, id := range targets {
		a, ok := s.atoms[id]
		if !ok {
			continue
		}
		f(a)
		s.index.Delete(s.spatial[id])
		s.spatial[id] = &atomSpatial{id: id, pos: a.Pos}
		s.index.Insert(s.spatial[id])
	}
}

// Merge appends every atom and bond of other into s, remapping other's
// IDs to freshly allocated ones in s. It returns the ID remapping.
func (s *Structure) Merge(other *Structure) map[ID]ID {
	remap := make(map[ID]ID, other.Len())
	for _, id := range other.order {
		a := *other.atoms[id]
		remap[id] = s.AddAtom(a)
	}
	for _, b := range other.bonds {
		_ = s.AddBond(remap[b.A], remap[b.B], b.Order)
	}
	return remap
}

// Clone returns a deep copy of s. Atom IDs are preserved exactly,
// including the holes left by removed atoms, and the copy allocates
// new IDs from where s would.
func (s *Structure) Clone() *Structure {
	out := New()
	for _, id := range s.order {
		a := *s.atoms[id]
		out.nextID = id
		out.AddAtom(a)
	}
	out.nextID = s.nextID
	for _, b := range s.bonds {
		_ = out.AddBond(b.A, b.B, b.Order)
	}
	return out
}
