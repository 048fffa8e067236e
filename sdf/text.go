package sdf

import (
	"math"
	"os"

	"github.com/golang/freetype/truetype"
	"github.com/llgcode/draw2d"
	v2 "github.com/latticecad/latticecad/vec/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Font wraps a parsed TrueType font, used by the text 2D primitive node
// (geometry2d_text, SPEC_FULL.md domain stack) to turn a string into a
// sketch that can feed extrude/facet_shell like any other SDF2.
type Font struct {
	ttf *truetype.Font
}

// LoadFont parses a TrueType font file.
func LoadFont(path string) (*Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	ttf, err := truetype.Parse(data)
	if err != nil {
		return nil, err
	}
	return &Font{ttf: ttf}, nil
}

// contourFlattener accumulates a polyline from draw2d path-flattening
// callbacks; each MoveTo starts a new contour.
type contourFlattener struct {
	contours [][]v2.Vec
}

func (c *contourFlattener) MoveTo(x, y float64) {
	c.contours = append(c.contours, []v2.Vec{{X: x, Y: y}})
}
func (c *contourFlattener) LineTo(x, y float64) {
	n := len(c.contours) - 1
	c.contours[n] = append(c.contours[n], v2.Vec{X: x, Y: y})
}
func (c *contourFlattener) Close() {}
func (c *contourFlattener) End()   {}

// glyphContours renders a single rune's outline to a set of closed
// polylines in font units multiplied by scale, using draw2d to flatten
// the font's quadratic Bezier segments. TextSDF2 is its only caller.
func (f *Font) glyphContours(r rune, scale float64) ([][]v2.Vec, float64, error) {
	idx := f.ttf.Index(r)
	var buf truetype.GlyphBuf
	upm := fixed.Int26_6(f.ttf.FUnitsPerEm())
	if err := buf.Load(f.ttf, upm, idx, font.HintingNone); err != nil {
		return nil, 0, err
	}

	path := new(draw2d.Path)
	e0 := 0
	for _, e1 := range buf.Ends {
		contour := buf.Points[e0:e1]
		emitContour(path, contour, scale)
		e0 = e1
	}

	flat := &contourFlattener{}
	draw2d.FlattenPath(path, flat)

	advance := float64(buf.AdvanceWidth) * scale
	return flat.contours, advance, nil
}

func emitContour(path *draw2d.Path, pts []truetype.Point, scale float64) {
	if len(pts) == 0 {
		return
	}
	toXY := func(p truetype.Point) (float64, float64) {
		return float64(p.X) * scale, float64(p.Y) * scale
	}
	sx, sy := toXY(pts[0])
	path.MoveTo(sx, sy)
	for i := 1; i < len(pts); i++ {
		p := pts[i]
		x, y := toXY(p)
		if p.Flags&0x01 != 0 {
			path.LineTo(x, y)
		} else {
			// off-curve control point: the curve ends at the next point
			// if it is on-curve, otherwise at the implied on-curve
			// midpoint the way TrueType's quadratic contours require.
			next := pts[0]
			if i+1 < len(pts) {
				next = pts[i+1]
			}
			nx, ny := toXY(next)
			if next.Flags&0x01 == 0 {
				nx, ny = (x+nx)/2, (y+ny)/2
			} else if i+1 < len(pts) {
				i++
			}
			path.QuadCurveTo(x, y, nx, ny)
		}
	}
	path.Close()
}

// multiContourSDF2 evaluates signed distance as the nearest-edge
// distance across all contours, with the sign given by an even-odd
// point-in-polygon test summed over every contour — correctly handling
// glyphs whose holes ('o', 'e', ...) are separate contours.
type multiContourSDF2 struct {
	contours [][]v2.Vec
	bb       Box2
}

func newMultiContourSDF2(contours [][]v2.Vec) *multiContourSDF2 {
	var bb Box2
	first := true
	for _, c := range contours {
		for _, p := range c {
			if first {
				bb = Box2{Min: p, Max: p}
				first = false
			} else {
				bb.Min = bb.Min.Min(p)
				bb.Max = bb.Max.Max(p)
			}
		}
	}
	return &multiContourSDF2{contours: contours, bb: bb}
}

func (s *multiContourSDF2) Evaluate(p v2.Vec) float64 {
	best := math.Inf(1)
	inside := false
	for _, c := range s.contours {
		n := len(c)
		for i, j := 0, n-1; i < n; j, i = i, i+1 {
			vi, vj := c[i], c[j]
			e := vj.Sub(vi)
			w := p.Sub(vi)
			t := clamp(w.Dot(e)/math.Max(e.Length2(), 1e-300), 0, 1)
			proj := vi.Add(e.MulScalar(t))
			best = math.Min(best, p.Sub(proj).Length2())

			if (vi.Y > p.Y) != (vj.Y > p.Y) {
				xint := (vj.X-vi.X)*(p.Y-vi.Y)/(vj.Y-vi.Y) + vi.X
				if p.X < xint {
					inside = !inside
				}
			}
		}
	}
	d := math.Sqrt(best)
	if inside {
		return -d
	}
	return d
}
func (s *multiContourSDF2) BoundingBox() Box2 { return s.bb }

// TextSDF2 lays out text left-to-right at the given point size (in the
// same length units as the rest of the sketch) and returns its outline
// as a single SDF2, unioning every glyph's contours.
func TextSDF2(f *Font, text string, size float64) (SDF2, error) {
	if text == "" {
		return nil, ErrDegenerate
	}
	scale := size / float64(f.ttf.FUnitsPerEm())
	var all [][]v2.Vec
	cursor := 0.0
	for _, r := range text {
		contours, advance, err := f.glyphContours(r, scale)
		if err != nil {
			return nil, err
		}
		for _, c := range contours {
			shifted := make([]v2.Vec, len(c))
			for i, p := range c {
				shifted[i] = v2.Vec{X: p.X + cursor, Y: p.Y}
			}
			all = append(all, shifted)
		}
		cursor += advance
	}
	if len(all) == 0 {
		return nil, ErrDegenerate
	}
	return newMultiContourSDF2(all), nil
}
