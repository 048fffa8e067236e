package lattice

import (
	"errors"

	v3 "github.com/latticecad/latticecad/vec/v3"
	"github.com/latticecad/latticecad/vec/v3i"
)

// ErrEmptyMotif is returned when a motif has no sites.
var ErrEmptyMotif = errors.New("lattice: motif has no sites")

// Role names an atomic role within a motif (e.g. PRIMARY, SECONDARY).
// Role-to-element assignment is kept separate from the motif itself so
// the same motif geometry can be re-elemented (diamond -> zincblende,
// say) without redefining sites.
type Role string

// Common motif roles. Motifs are free to define their own role names;
// these are just the ones the default motifs use.
const (
	RolePrimary   Role = "PRIMARY"
	RoleSecondary Role = "SECONDARY"
)

// NeighborTemplate declares a bond from a motif site to a target site
// (by index into Motif.Sites) in a neighboring cell, offset by Delta
// cells along a/b/c, with the given bond order.
type NeighborTemplate struct {
	TargetSite int
	Delta      v3i.Vec
	Order      int
}

// Site is one atomic position in a motif, given as a fractional
// coordinate of the unit cell plus a role. Fractional coordinates
// (modulo periodic wrap) are the canonical identity of a site: two
// sites at the same fractional position are the same atom.
type Site struct {
	Frac      v3.Vec
	Role      Role
	Neighbors []NeighborTemplate
}

// Motif is an ordered list of atomic sites that decorates every cell of
// a unit cell.
type Motif struct {
	Sites []Site
}

// Validate reports an error if the motif is empty.
func (m Motif) Validate() error {
	if len(m.Sites) == 0 {
		return ErrEmptyMotif
	}
	return nil
}

// CubicZincblende returns the two-site zincblende motif (site 0 PRIMARY,
// site 1 SECONDARY, both elemented as Carbon to yield cubic diamond
// when used with CubicDiamond, per the atom_fill default).
func CubicZincblende() Motif {
	return Motif{
		Sites: []Site{
			{
				Frac: v3.Vec{X: 0, Y: 0, Z: 0},
				Role: RolePrimary,
				Neighbors: []NeighborTemplate{
					{TargetSite: 1, Delta: v3i.Vec{0, 0, 0}, Order: 1},
					{TargetSite: 1, Delta: v3i.Vec{-1, 0, 0}, Order: 1},
					{TargetSite: 1, Delta: v3i.Vec{0, -1, 0}, Order: 1},
					{TargetSite: 1, Delta: v3i.Vec{0, 0, -1}, Order: 1},
				},
			},
			{
				Frac: v3.Vec{X: 0.25, Y: 0.25, Z: 0.25},
				Role: RoleSecondary,
				Neighbors: []NeighborTemplate{
					{TargetSite: 0, Delta: v3i.Vec{0, 0, 0}, Order: 1},
					{TargetSite: 0, Delta: v3i.Vec{1, 0, 0}, Order: 1},
					{TargetSite: 0, Delta: v3i.Vec{0, 1, 0}, Order: 1},
					{TargetSite: 0, Delta: v3i.Vec{0, 0, 1}, Order: 1},
				},
			},
		},
	}
}

// ApplyOffset returns a copy of m with frac added to every site's
// fractional coordinate (the atom_fill "motif fractional offset" input).
func (m Motif) ApplyOffset(frac v3.Vec) Motif {
	out := Motif{Sites: make([]Site, len(m.Sites))}
	for i, s := range m.Sites {
		s.Frac = s.Frac.Add(frac)
		out.Sites[i] = s
	}
	return out
}
