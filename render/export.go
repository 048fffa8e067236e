package render

import (
	"io"

	"github.com/ajstarks/svgo"
	"github.com/hpinc/go3mf"
	"github.com/yofu/dxf"

	"github.com/latticecad/latticecad/sdf"
	v2 "github.com/latticecad/latticecad/vec/v2"
	v3 "github.com/latticecad/latticecad/vec/v3"
)

// ToMesh runs uniform marching cubes over s and returns the full
// triangle list, draining MarchingCubesUniform's output channel itself.
func ToMesh(s sdf.SDF3, meshCells int) []*Triangle3 {
	r := NewMarchingCubesUniform(meshCells)
	out := make(chan []*Triangle3, 1)
	go func() {
		r.Render(s, out)
		close(out)
	}()
	var tris []*Triangle3
	for ts := range out {
		tris = append(tris, ts...)
	}
	return tris
}

// ToMeshAroundAtoms runs marching cubes over s at a coarse global
// resolution, refined to refineCells around each of the given atom
// centers (radius sets the focus box half-extent). Meant for an
// atom_fill/apply_diff-derived implicit surface, where surface detail
// matters close to atoms and is wasted in the empty space between them.
func ToMeshAroundAtoms(s sdf.SDF3, meshCells, refineCells int, atomCenters []v3.Vec, radius float64) []*Triangle3 {
	r := NewMarchingCubesAdaptive(meshCells, refineCells, atomCenters, radius)
	out := make(chan []*Triangle3, 1)
	go func() {
		r.Render(s, out)
		close(out)
	}()
	var tris []*Triangle3
	for ts := range out {
		tris = append(tris, ts...)
	}
	return tris
}

// ExportMesh3MF writes a triangle mesh to w in 3MF format, the format
// go3mf implements in the example pack (the teacher's nearest pack
// sibling for solid, manifold mesh interchange).
func ExportMesh3MF(w io.Writer, tris []*Triangle3) error {
	model := &go3mf.Model{}
	mesh := &go3mf.Mesh{}

	index := make(map[v3key]uint32)
	var vertices []v3key

	vertexIndex := func(v v3key) uint32 {
		if i, ok := index[v]; ok {
			return i
		}
		i := uint32(len(vertices))
		index[v] = i
		vertices = append(vertices, v)
		mesh.Vertices.Vertex = append(mesh.Vertices.Vertex, go3mf.Point3D{float32(v.x), float32(v.y), float32(v.z)})
		return i
	}

	for _, t := range tris {
		a := vertexIndex(v3key{t.V[0].X, t.V[0].Y, t.V[0].Z})
		b := vertexIndex(v3key{t.V[1].X, t.V[1].Y, t.V[1].Z})
		c := vertexIndex(v3key{t.V[2].X, t.V[2].Y, t.V[2].Z})
		mesh.Triangles.Triangle = append(mesh.Triangles.Triangle, go3mf.Triangle{V1: a, V2: b, V3: c})
	}

	obj := &go3mf.Object{ID: 1, Mesh: mesh, Type: go3mf.ObjectTypeModel}
	model.Resources.Objects = append(model.Resources.Objects, obj)
	model.Build.Items = append(model.Build.Items, &go3mf.Item{ObjectID: 1})

	enc := go3mf.NewEncoder(w)
	return enc.Encode(model)
}

type v3key struct{ x, y, z float64 }

// ExportSVG writes a 2D point-sampled contour to w as an SVG polyline
// per contour, using the stroke-only style the pack's svgo examples
// use for sketch output.
func ExportSVG(w io.Writer, contours [][]v2.Vec, width, height int) {
	canvas := svg.New(w)
	canvas.Start(width, height)
	defer canvas.End()

	for _, c := range contours {
		if len(c) < 2 {
			continue
		}
		xs := make([]int, len(c))
		ys := make([]int, len(c))
		for i, p := range c {
			xs[i] = int(p.X) + width/2
			ys[i] = height/2 - int(p.Y)
		}
		canvas.Polyline(xs, ys, "fill:none;stroke:black;stroke-width:1")
	}
}

// ExportDXF writes a 2D point-sampled contour to path as a segment per
// consecutive contour edge, on a single "SKETCH" layer. Segments rather
// than a single polyline entity keep this to the small, stable part of
// the dxf package's drawing API.
func ExportDXF(path string, contours [][]v2.Vec) error {
	d := dxf.NewDrawing()
	d.Layer("SKETCH", true)

	for _, c := range contours {
		for i := 0; i+1 < len(c); i++ {
			d.Line(c[i].X, c[i].Y, 0, c[i+1].X, c[i+1].Y, 0)
		}
	}
	return d.SaveAs(path)
}
