package lattice

import (
	"math"

	"github.com/latticecad/latticecad/sdf"
	v3 "github.com/latticecad/latticecad/vec/v3"
	"github.com/latticecad/latticecad/vec/v3i"
)

// EnumeratedSite is one enumerated motif-site instance: which unit cell
// it's in, which motif site it is, and its Cartesian position.
type EnumeratedSite struct {
	Cell      v3i.Vec
	SiteIndex int
	Pos       v3.Vec
}

// Enumerate produces every motif-site position inside region (signed
// distance <= 0), per spec §4.B:
//
//  1. the AABB of region is transformed into fractional coordinates of
//     the unit cell (8 corners, component-wise min/max, padded by 1
//     whole cell to guarantee coverage of sites straddling the boundary)
//  2. every integer cell in that range is visited
//  3. every motif site in that cell is tested against region
func Enumerate(u UnitCell, m Motif, region sdf.SDF3) ([]EnumeratedSite, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	bb := region.BoundingBox()
	lo, hi := fractionalBounds(u, bb)

	var out []EnumeratedSite
	for i := lo.X; i <= hi.X; i++ {
		for j := lo.Y; j <= hi.Y; j++ {
			for k := lo.Z; k <= hi.Z; k++ {
				cell := v3i.Vec{X: i, Y: j, Z: k}
				cellFrac := v3.Vec{X: float64(i), Y: float64(j), Z: float64(k)}
				for si, site := range m.Sites {
					p := u.ToCartesian(cellFrac.Add(site.Frac))
					if region.Evaluate(p) <= 0 {
						out = append(out, EnumeratedSite{Cell: cell, SiteIndex: si, Pos: p})
					}
				}
			}
		}
	}
	return out, nil
}

// fractionalBounds computes the integer cell-index range that must be
// visited to cover bb, by transforming its 8 corners into fractional
// coordinates and padding by one cell on every side.
func fractionalBounds(u UnitCell, bb sdf.Box3) (lo, hi v3i.Vec) {
	corners := bb.Vertices()
	min := u.ToFractional(corners[0])
	max := min
	for _, c := range corners[1:] {
		f := u.ToFractional(c)
		min = min.Min(f)
		max = max.Max(f)
	}
	lo = v3i.Vec{X: int(math.Floor(min.X)) - 1, Y: int(math.Floor(min.Y)) - 1, Z: int(math.Floor(min.Z)) - 1}
	hi = v3i.Vec{X: int(math.Ceil(max.X)) + 1, Y: int(math.Ceil(max.Y)) + 1, Z: int(math.Ceil(max.Z)) + 1}
	return lo, hi
}
