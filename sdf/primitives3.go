package sdf

import (
	"math"

	v2 "github.com/latticecad/latticecad/vec/v2"
	v3 "github.com/latticecad/latticecad/vec/v3"
)

//-----------------------------------------------------------------------------
// sphere

type sphereSDF struct {
	center v3.Vec
	radius float64
	bb     Box3
}

// Sphere3D returns a sphere SDF3 centered at center with the given radius.
func Sphere3D(center v3.Vec, radius float64) (SDF3, error) {
	if radius <= 0 {
		return nil, ErrDegenerate
	}
	r := v3.Vec{X: radius, Y: radius, Z: radius}.MulScalar(2)
	return &sphereSDF{center: center, radius: radius, bb: NewBox3(center, r)}, nil
}

func (s *sphereSDF) Evaluate(p v3.Vec) float64 { return p.Sub(s.center).Length() - s.radius }
func (s *sphereSDF) BoundingBox() Box3         { return s.bb }

//-----------------------------------------------------------------------------
// cuboid

type cuboidSDF struct {
	center v3.Vec
	half   v3.Vec
	bb     Box3
}

// Cuboid3D returns a box SDF3 with the given minimum corner and extent.
func Cuboid3D(minCorner, extent v3.Vec) (SDF3, error) {
	if extent.X <= 0 || extent.Y <= 0 || extent.Z <= 0 {
		return nil, ErrDegenerate
	}
	center := minCorner.Add(extent.MulScalar(0.5))
	return &cuboidSDF{center: center, half: extent.MulScalar(0.5), bb: NewBox3(center, extent)}, nil
}

func (s *cuboidSDF) Evaluate(p v3.Vec) float64 {
	q := p.Sub(s.center).Abs().Sub(s.half)
	outside := v3.Vec{X: math.Max(q.X, 0), Y: math.Max(q.Y, 0), Z: math.Max(q.Z, 0)}.Length()
	inside := math.Min(q.MaxComponent(), 0)
	return outside + inside
}
func (s *cuboidSDF) BoundingBox() Box3 { return s.bb }

//-----------------------------------------------------------------------------
// half space

type halfSpaceSDF struct {
	normal v3.Vec // unit normal, solid is normal.Dot(p) <= offset
	offset float64
}

// HalfSpace3D returns the solid half-space {p : normal.Dot(p) <= offset}.
// Infinite in extent; its bounding box is clamped to VolumeLimit.
func HalfSpace3D(normal v3.Vec, offset float64) (SDF3, error) {
	n := normal.Normalize()
	if n.Length2() == 0 {
		return nil, ErrDegenerate
	}
	return &halfSpaceSDF{normal: n, offset: offset}, nil
}

func (s *halfSpaceSDF) Evaluate(p v3.Vec) float64 { return s.normal.Dot(p) - s.offset }
func (s *halfSpaceSDF) BoundingBox() Box3 {
	v := v3.Vec{X: VolumeLimit, Y: VolumeLimit, Z: VolumeLimit}
	return Box3{Min: v.Neg(), Max: v}
}

//-----------------------------------------------------------------------------
// extrude

type extrudeSDF struct {
	sketch SDF2
	height float64
	bb     Box3
}

// Extrude3D extrudes a 2D sketch along Z from 0 to height.
func Extrude3D(sketch SDF2, height float64) (SDF3, error) {
	if height <= 0 {
		return nil, ErrDegenerate
	}
	return &extrudeSDF{sketch: sketch, height: height, bb: sketch.BoundingBox().Extrude(height)}, nil
}

func (s *extrudeSDF) Evaluate(p v3.Vec) float64 {
	d2 := s.sketch.Evaluate(v2.Vec{X: p.X, Y: p.Y})
	dz := math.Abs(p.Z-s.height*0.5) - s.height*0.5
	// 2D inside/outside combined with the slab in Z.
	wx := math.Max(d2, 0)
	wz := math.Max(dz, 0)
	outside := math.Sqrt(wx*wx + wz*wz)
	inside := math.Min(math.Max(d2, dz), 0)
	return outside + inside
}
func (s *extrudeSDF) BoundingBox() Box3 { return s.bb }
