package sdf

import (
	"math"

	v2 "github.com/latticecad/latticecad/vec/v2"
)

// SampleContour2D walks a coarse grid over s's bounding box and returns
// the points lying near the zero contour, refined by gradient descent.
// This is the 2D analogue of SamplePointCloud3D, used for sketch
// preview and as the scanline base for SVG/DXF export.
func SampleContour2D(s SDF2, cells int) []v2.Vec {
	if cells < 1 {
		cells = 1
	}
	bb := s.BoundingBox()
	size := bb.Size()
	step := size.MaxComponent() / float64(cells)
	if step <= 0 {
		return nil
	}
	cellDiag := v2.Vec{X: step, Y: step}.Length()

	nx := int(math.Ceil(size.X / step))
	ny := int(math.Ceil(size.Y / step))

	var points []v2.Vec
	for i := 0; i <= nx; i++ {
		for j := 0; j <= ny; j++ {
			p := bb.Min.Add(v2.Vec{X: float64(i) * step, Y: float64(j) * step})
			if math.Abs(s.Evaluate(p)) < cellDiag {
				points = append(points, refineToSurface2D(s, p, cellDiag))
			}
		}
	}
	return points
}

func refineToSurface2D(s SDF2, p v2.Vec, h float64) v2.Vec {
	for i := 0; i < 8; i++ {
		d := s.Evaluate(p)
		if math.Abs(d) < 1e-4 {
			break
		}
		g := gradient2(s, p, h*0.01)
		gl := g.Length()
		if gl == 0 {
			break
		}
		p = p.Sub(g.DivScalar(gl).MulScalar(d))
	}
	return p
}

func gradient2(s SDF2, p v2.Vec, h float64) v2.Vec {
	dx := s.Evaluate(p.Add(v2.Vec{X: h})) - s.Evaluate(p.Sub(v2.Vec{X: h}))
	dy := s.Evaluate(p.Add(v2.Vec{Y: h})) - s.Evaluate(p.Sub(v2.Vec{Y: h}))
	return v2.Vec{X: dx, Y: dy}.DivScalar(2 * h)
}
