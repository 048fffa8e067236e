package sdf

import (
	"math"

	v2 "github.com/latticecad/latticecad/vec/v2"
)

//-----------------------------------------------------------------------------
// circle

type circleSDF struct {
	center v2.Vec
	radius float64
	bb     Box2
}

// Circle2D returns a circle SDF2.
func Circle2D(center v2.Vec, radius float64) (SDF2, error) {
	if radius <= 0 {
		return nil, ErrDegenerate
	}
	r := v2.Vec{X: radius, Y: radius}.MulScalar(2)
	return &circleSDF{center: center, radius: radius, bb: NewBox2(center, r)}, nil
}

func (s *circleSDF) Evaluate(p v2.Vec) float64 { return p.Sub(s.center).Length() - s.radius }
func (s *circleSDF) BoundingBox() Box2         { return s.bb }

//-----------------------------------------------------------------------------
// rectangle

type rectangleSDF struct {
	center v2.Vec
	half   v2.Vec
	bb     Box2
}

// Rectangle2D returns a rectangle SDF2 with the given minimum corner and extent.
func Rectangle2D(minCorner, extent v2.Vec) (SDF2, error) {
	if extent.X <= 0 || extent.Y <= 0 {
		return nil, ErrDegenerate
	}
	center := minCorner.Add(extent.MulScalar(0.5))
	return &rectangleSDF{center: center, half: extent.MulScalar(0.5), bb: NewBox2(center, extent)}, nil
}

func (s *rectangleSDF) Evaluate(p v2.Vec) float64 {
	q := p.Sub(s.center).Abs().Sub(s.half)
	outside := v2.Vec{X: math.Max(q.X, 0), Y: math.Max(q.Y, 0)}.Length()
	inside := math.Min(math.Max(q.X, q.Y), 0)
	return outside + inside
}
func (s *rectangleSDF) BoundingBox() Box2 { return s.bb }

//-----------------------------------------------------------------------------
// half plane

type halfPlaneSDF struct {
	normal v2.Vec
	offset float64
}

// HalfPlane2D returns the solid half-plane {p : normal.Dot(p) <= offset}.
func HalfPlane2D(normal v2.Vec, offset float64) (SDF2, error) {
	n := normal.Normalize()
	if n.Length2() == 0 {
		return nil, ErrDegenerate
	}
	return &halfPlaneSDF{normal: n, offset: offset}, nil
}

func (s *halfPlaneSDF) Evaluate(p v2.Vec) float64 { return s.normal.Dot(p) - s.offset }
func (s *halfPlaneSDF) BoundingBox() Box2 {
	v := v2.Vec{X: VolumeLimit, Y: VolumeLimit}
	return Box2{Min: v.Neg(), Max: v}
}

//-----------------------------------------------------------------------------
// regular polygon

type polygonSDF struct {
	verts []v2.Vec
	bb    Box2
}

// RegularPolygon2D returns a regular n-gon (n >= 3) centered at the origin
// with circumradius radius, vertex 0 on the +X axis.
func RegularPolygon2D(n int, radius float64) (SDF2, error) {
	if n < 3 || radius <= 0 {
		return nil, ErrDegenerate
	}
	verts := make([]v2.Vec, n)
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		verts[i] = v2.Vec{X: radius * math.Cos(a), Y: radius * math.Sin(a)}
	}
	return Polygon2D(verts)
}

// Polygon2D returns the SDF2 of an arbitrary simple polygon given by its
// ordered vertices (at least 3, not required to be convex).
func Polygon2D(verts []v2.Vec) (SDF2, error) {
	if len(verts) < 3 {
		return nil, ErrDegenerate
	}
	bb := Box2{Min: verts[0], Max: verts[0]}
	for _, v := range verts[1:] {
		bb = bb.Union(Box2{Min: v, Max: v})
	}
	return &polygonSDF{verts: verts, bb: bb}, nil
}

func (s *polygonSDF) Evaluate(p v2.Vec) float64 {
	n := len(s.verts)
	d := p.Sub(s.verts[0]).Length2()
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		vi, vj := s.verts[i], s.verts[j]
		e := vj.Sub(vi)
		w := p.Sub(vi)
		t := clamp(w.Dot(e)/math.Max(e.Length2(), 1e-300), 0, 1)
		proj := vi.Add(e.MulScalar(t))
		d = math.Min(d, p.Sub(proj).Length2())

		cond := (vi.Y > p.Y) != (vj.Y > p.Y)
		if cond {
			xint := (vj.X-vi.X)*(p.Y-vi.Y)/(vj.Y-vi.Y) + vi.X
			if p.X < xint {
				inside = !inside
			}
		}
	}
	dist := math.Sqrt(d)
	if inside {
		return -dist
	}
	return dist
}
func (s *polygonSDF) BoundingBox() Box2 { return s.bb }
