package network

import (
	"context"
	"fmt"
	"os"

	"github.com/latticecad/latticecad/atom"
	"github.com/latticecad/latticecad/editdiff"
	"github.com/latticecad/latticecad/fill"
	"github.com/latticecad/latticecad/lattice"
	"github.com/latticecad/latticecad/render"
	"github.com/latticecad/latticecad/sdf"
	"github.com/latticecad/latticecad/uff"
	v2 "github.com/latticecad/latticecad/vec/v2"
	v3 "github.com/latticecad/latticecad/vec/v3"
)

// builtins.go registers the concrete geometry, lattice, and force-field
// node types the evaluator ships with out of the box. Each Eval func is
// a thin adapter between Value and the typed package API underneath.

func init() {
	Register(NodeType{
		Name: "sphere", Category: "geometry/sdf3",
		Doc:     "a sphere SDF centered at the origin",
		Params:  []PinSpec{{Name: "radius", Kind: KindFloat}},
		Outputs: []PinSpec{{Name: "out", Kind: KindSDF3}},
		Eval: func(ctx context.Context, in map[string]Value, p map[string]Value) (map[string]Value, error) {
			r, err := AsFloat(p["radius"])
			if err != nil {
				return nil, fmt.Errorf("sphere: radius: %w", err)
			}
			s, err := sdf.Sphere3D(v3.Vec{}, r)
			if err != nil {
				return nil, err
			}
			return map[string]Value{"out": SDF3Value(s)}, nil
		},
	})

	Register(NodeType{
		Name: "cuboid", Category: "geometry/sdf3",
		Doc:     "an axis-aligned box SDF centered at the origin",
		Params:  []PinSpec{{Name: "size", Kind: KindVec3}},
		Outputs: []PinSpec{{Name: "out", Kind: KindSDF3}},
		Eval: func(ctx context.Context, in map[string]Value, p map[string]Value) (map[string]Value, error) {
			sizeV, ok := p["size"]
			if !ok || sizeV.Kind != KindVec3 {
				return nil, fmt.Errorf("cuboid: size must be a vec3")
			}
			s, err := sdf.Cuboid3D(sizeV.Vec3.MulScalar(-0.5), sizeV.Vec3)
			if err != nil {
				return nil, err
			}
			return map[string]Value{"out": SDF3Value(s)}, nil
		},
	})

	Register(NodeType{
		Name: "union", Category: "geometry/combine",
		Doc:     "the union of a list of sdf3 shapes",
		Inputs:  []PinSpec{{Name: "shapes", Kind: KindList}},
		Outputs: []PinSpec{{Name: "out", Kind: KindSDF3}},
		Eval: func(ctx context.Context, in map[string]Value, p map[string]Value) (map[string]Value, error) {
			shapes, err := sdf3List(in["shapes"])
			if err != nil {
				return nil, err
			}
			return map[string]Value{"out": SDF3Value(sdf.Union3D(shapes...))}, nil
		},
	})

	Register(NodeType{
		Name: "intersect", Category: "geometry/combine",
		Doc:     "the intersection of a list of sdf3 shapes",
		Inputs:  []PinSpec{{Name: "shapes", Kind: KindList}},
		Outputs: []PinSpec{{Name: "out", Kind: KindSDF3}},
		Eval: func(ctx context.Context, in map[string]Value, p map[string]Value) (map[string]Value, error) {
			shapes, err := sdf3List(in["shapes"])
			if err != nil {
				return nil, err
			}
			return map[string]Value{"out": SDF3Value(sdf.Intersect3D(shapes...))}, nil
		},
	})

	Register(NodeType{
		Name: "difference", Category: "geometry/combine",
		Doc:     "base shapes minus sub shapes; an empty base is treated as the identity (union of sub)",
		Inputs:  []PinSpec{{Name: "base", Kind: KindList}, {Name: "sub", Kind: KindList}},
		Outputs: []PinSpec{{Name: "out", Kind: KindSDF3}},
		Eval: func(ctx context.Context, in map[string]Value, p map[string]Value) (map[string]Value, error) {
			base, err := sdf3List(in["base"])
			if err != nil {
				return nil, err
			}
			sub, err := sdf3List(in["sub"])
			if err != nil {
				return nil, err
			}
			return map[string]Value{"out": SDF3Value(sdf.Difference3D(base, sub))}, nil
		},
	})

	Register(NodeType{
		Name: "geo_trans", Category: "geometry/transform",
		Doc:     "applies a continuous affine transform to an sdf3 shape",
		Inputs:  []PinSpec{{Name: "shape", Kind: KindSDF3}},
		Params:  []PinSpec{{Name: "translate", Kind: KindVec3}},
		Outputs: []PinSpec{{Name: "out", Kind: KindSDF3}},
		Eval: func(ctx context.Context, in map[string]Value, p map[string]Value) (map[string]Value, error) {
			shape := in["shape"].SDF3
			t := sdf.Identity3()
			if tv, ok := p["translate"]; ok && tv.Kind == KindVec3 {
				t = sdf.Translate3(tv.Vec3)
			}
			out := sdf.GeoTransform3D(shape, t)
			return map[string]Value{"out": SDF3Value(out)}, nil
		},
	})

	Register(NodeType{
		Name: "lattice_fill", Category: "lattice",
		Doc: "enumerates a unit cell + motif inside a region and bonds the result, with optional passivation and surface reconstruction",
		Inputs: []PinSpec{{Name: "region", Kind: KindSDF3}},
		Params: []PinSpec{
			{Name: "passivate", Kind: KindBool},
			{Name: "reconstruct_100", Kind: KindBool},
			{Name: "remove_orphans", Kind: KindBool},
		},
		Outputs: []PinSpec{{Name: "out", Kind: KindStructure}},
		Eval: func(ctx context.Context, in map[string]Value, p map[string]Value) (map[string]Value, error) {
			region := in["region"].SDF3
			uc := lattice.CubicDiamond()
			motif := lattice.CubicZincblende()
			opts := fill.Options{
				Elements:           map[lattice.Role]atom.Element{lattice.RolePrimary: atom.Carbon, lattice.RoleSecondary: atom.Carbon},
				Passivate:          boolParam(p, "passivate"),
				Reconstruct100:     boolParam(p, "reconstruct_100"),
				RemoveOrphans:      boolParam(p, "remove_orphans"),
				RemoveSingleBonded: boolParam(p, "remove_orphans"),
			}
			s, err := fill.Fill(uc, motif, region, opts)
			if err != nil {
				return nil, err
			}
			return map[string]Value{"out": StructureValue(s)}, nil
		},
	})

	Register(NodeType{
		Name: "uff_minimize", Category: "forcefield",
		Doc:     "relaxes a structure's geometry by minimizing its UFF energy",
		Inputs:  []PinSpec{{Name: "structure", Kind: KindStructure}},
		Outputs: []PinSpec{{Name: "out", Kind: KindStructure}, {Name: "final_energy", Kind: KindFloat}},
		Eval: func(ctx context.Context, in map[string]Value, p map[string]Value) (map[string]Value, error) {
			s := in["structure"].Structure
			clone := s.Clone()
			report, err := uff.Minimize(clone, uff.MinimizeOptions{})
			if err != nil {
				return nil, err
			}
			return map[string]Value{
				"out":          StructureValue(clone),
				"final_energy": FloatValue(report.FinalEnergy),
			}, nil
		},
	})

	Register(NodeType{
		Name: "text", Category: "geometry/sdf2",
		Doc:    "a 2d sketch tracing a string in a TrueType font, usable anywhere an sdf2 is",
		Params: []PinSpec{{Name: "font_path", Kind: KindString}, {Name: "text", Kind: KindString}, {Name: "size", Kind: KindFloat}},
		Outputs: []PinSpec{{Name: "out", Kind: KindSDF2}},
		Eval: func(ctx context.Context, in map[string]Value, p map[string]Value) (map[string]Value, error) {
			fontPath, ok := p["font_path"]
			if !ok || fontPath.Kind != KindString {
				return nil, fmt.Errorf("text: font_path is required")
			}
			font, err := sdf.LoadFont(fontPath.String)
			if err != nil {
				return nil, fmt.Errorf("text: %w", err)
			}
			size, err := AsFloat(p["size"])
			if err != nil {
				return nil, fmt.Errorf("text: size: %w", err)
			}
			s, err := sdf.TextSDF2(font, p["text"].String, size)
			if err != nil {
				return nil, err
			}
			return map[string]Value{"out": SDF2Value(s)}, nil
		},
	})

	Register(NodeType{
		Name: "render_mesh", Category: "render",
		Doc: "marching-cubes a solid sdf3 into a triangle mesh and writes it out as a 3MF file; " +
			"wiring a structure into an optional focus_structure pin refines the mesh around its atoms instead of sampling the whole volume uniformly",
		Inputs:      []PinSpec{{Name: "shape", Kind: KindSDF3}},
		Params:      []PinSpec{{Name: "path", Kind: KindString}, {Name: "mesh_cells", Kind: KindInt}, {Name: "refine_cells", Kind: KindInt}, {Name: "focus_radius", Kind: KindFloat}},
		Outputs:     []PinSpec{{Name: "triangle_count", Kind: KindInt}},
		DynamicPins: true,
		Eval: func(ctx context.Context, in map[string]Value, p map[string]Value) (map[string]Value, error) {
			cells := 100
			if cv, ok := p["mesh_cells"]; ok && cv.Kind == KindInt && cv.Int > 0 {
				cells = cv.Int
			}

			var tris []*render.Triangle3
			if focus, ok := in["focus_structure"]; ok && focus.Kind == KindStructure && focus.Structure != nil {
				refine := 20
				if rv, ok := p["refine_cells"]; ok && rv.Kind == KindInt && rv.Int > 0 {
					refine = rv.Int
				}
				radius := 2.0
				if rv, ok := p["focus_radius"]; ok {
					if f, err := AsFloat(rv); err == nil && f > 0 {
						radius = f
					}
				}
				ids := focus.Structure.Atoms()
				centers := make([]v3.Vec, 0, len(ids))
				for _, id := range ids {
					a, err := focus.Structure.Atom(id)
					if err != nil {
						continue
					}
					centers = append(centers, a.Pos)
				}
				tris = render.ToMeshAroundAtoms(in["shape"].SDF3, cells, refine, centers, radius)
			} else {
				tris = render.ToMesh(in["shape"].SDF3, cells)
			}

			if pathV, ok := p["path"]; ok && pathV.Kind == KindString && pathV.String != "" {
				f, err := os.Create(pathV.String)
				if err != nil {
					return nil, fmt.Errorf("render_mesh: %w", err)
				}
				defer f.Close()
				if err := render.ExportMesh3MF(f, tris); err != nil {
					return nil, fmt.Errorf("render_mesh: %w", err)
				}
			}
			return map[string]Value{"triangle_count": IntValue(len(tris))}, nil
		},
	})

	Register(NodeType{
		Name: "apply_diff", Category: "edit",
		Doc:     "applies a diff structure onto a base structure, matching anchored atoms by nearest position",
		Inputs:  []PinSpec{{Name: "base", Kind: KindStructure}, {Name: "diff", Kind: KindStructure}},
		Params:  []PinSpec{{Name: "tolerance", Kind: KindFloat}},
		Outputs: []PinSpec{{Name: "out", Kind: KindStructure}},
		Eval: func(ctx context.Context, in map[string]Value, p map[string]Value) (map[string]Value, error) {
			tol := editdiff.MatchTolerance
			if tv, ok := p["tolerance"]; ok {
				if f, err := AsFloat(tv); err == nil {
					tol = f
				}
			}
			result := editdiff.Apply(in["base"].Structure, in["diff"].Structure, tol)
			return map[string]Value{"out": StructureValue(result.Structure)}, nil
		},
	})

	registerPrimitiveNodes()
	registerLatticeTransformNodes()
	registerSamplingNodes()
	registerLiteralNodes()
}

// registerPrimitiveNodes wires the remaining sdf3/sdf2 primitive
// constructors as node types (spec §4.A/§4.B): half-space and extrude
// for solids, and the full 2D primitive set used to build sketches for
// extrude/facet_shell/text-adjacent sketches.
func registerPrimitiveNodes() {
	Register(NodeType{
		Name: "half_space", Category: "geometry/sdf3",
		Doc:     "the solid half-space {p : normal.p <= offset}",
		Params:  []PinSpec{{Name: "normal", Kind: KindVec3}, {Name: "offset", Kind: KindFloat}},
		Outputs: []PinSpec{{Name: "out", Kind: KindSDF3}},
		Eval: func(ctx context.Context, in map[string]Value, p map[string]Value) (map[string]Value, error) {
			offset, err := AsFloat(p["offset"])
			if err != nil {
				return nil, fmt.Errorf("half_space: offset: %w", err)
			}
			s, err := sdf.HalfSpace3D(p["normal"].Vec3, offset)
			if err != nil {
				return nil, err
			}
			return map[string]Value{"out": SDF3Value(s)}, nil
		},
	})

	Register(NodeType{
		Name: "extrude", Category: "geometry/transform",
		Doc:     "extrudes a 2d sketch along Z from 0 to height",
		Inputs:  []PinSpec{{Name: "sketch", Kind: KindSDF2}},
		Params:  []PinSpec{{Name: "height", Kind: KindFloat}},
		Outputs: []PinSpec{{Name: "out", Kind: KindSDF3}},
		Eval: func(ctx context.Context, in map[string]Value, p map[string]Value) (map[string]Value, error) {
			height, err := AsFloat(p["height"])
			if err != nil {
				return nil, fmt.Errorf("extrude: height: %w", err)
			}
			s, err := sdf.Extrude3D(in["sketch"].SDF2, height)
			if err != nil {
				return nil, err
			}
			return map[string]Value{"out": SDF3Value(s)}, nil
		},
	})

	Register(NodeType{
		Name: "facet_shell", Category: "geometry/transform",
		Doc:     "hollows a solid into a thin shell aligned to the cubic lattice",
		Inputs:  []PinSpec{{Name: "shape", Kind: KindSDF3}},
		Params:  []PinSpec{{Name: "thickness", Kind: KindFloat}},
		Outputs: []PinSpec{{Name: "out", Kind: KindSDF3}},
		Eval: func(ctx context.Context, in map[string]Value, p map[string]Value) (map[string]Value, error) {
			thickness, err := AsFloat(p["thickness"])
			if err != nil {
				return nil, fmt.Errorf("facet_shell: thickness: %w", err)
			}
			uc := lattice.CubicDiamond()
			s, err := sdf.FacetShell3D(in["shape"].SDF3, uc.A, uc.B, uc.C, thickness)
			if err != nil {
				return nil, err
			}
			return map[string]Value{"out": SDF3Value(s)}, nil
		},
	})

	Register(NodeType{
		Name: "circle", Category: "geometry/sdf2",
		Doc:     "a circle SDF2",
		Params:  []PinSpec{{Name: "center", Kind: KindVec2}, {Name: "radius", Kind: KindFloat}},
		Outputs: []PinSpec{{Name: "out", Kind: KindSDF2}},
		Eval: func(ctx context.Context, in map[string]Value, p map[string]Value) (map[string]Value, error) {
			radius, err := AsFloat(p["radius"])
			if err != nil {
				return nil, fmt.Errorf("circle: radius: %w", err)
			}
			s, err := sdf.Circle2D(p["center"].Vec2, radius)
			if err != nil {
				return nil, err
			}
			return map[string]Value{"out": SDF2Value(s)}, nil
		},
	})

	Register(NodeType{
		Name: "rectangle", Category: "geometry/sdf2",
		Doc:     "an axis-aligned rectangle SDF2 given a minimum corner and extent",
		Params:  []PinSpec{{Name: "min_corner", Kind: KindVec2}, {Name: "extent", Kind: KindVec2}},
		Outputs: []PinSpec{{Name: "out", Kind: KindSDF2}},
		Eval: func(ctx context.Context, in map[string]Value, p map[string]Value) (map[string]Value, error) {
			s, err := sdf.Rectangle2D(p["min_corner"].Vec2, p["extent"].Vec2)
			if err != nil {
				return nil, err
			}
			return map[string]Value{"out": SDF2Value(s)}, nil
		},
	})

	Register(NodeType{
		Name: "half_plane", Category: "geometry/sdf2",
		Doc:     "the solid half-plane {p : normal.p <= offset}",
		Params:  []PinSpec{{Name: "normal", Kind: KindVec2}, {Name: "offset", Kind: KindFloat}},
		Outputs: []PinSpec{{Name: "out", Kind: KindSDF2}},
		Eval: func(ctx context.Context, in map[string]Value, p map[string]Value) (map[string]Value, error) {
			offset, err := AsFloat(p["offset"])
			if err != nil {
				return nil, fmt.Errorf("half_plane: offset: %w", err)
			}
			s, err := sdf.HalfPlane2D(p["normal"].Vec2, offset)
			if err != nil {
				return nil, err
			}
			return map[string]Value{"out": SDF2Value(s)}, nil
		},
	})

	Register(NodeType{
		Name: "regular_polygon", Category: "geometry/sdf2",
		Doc:     "a regular n-gon centered at the origin",
		Params:  []PinSpec{{Name: "sides", Kind: KindInt}, {Name: "radius", Kind: KindFloat}},
		Outputs: []PinSpec{{Name: "out", Kind: KindSDF2}},
		Eval: func(ctx context.Context, in map[string]Value, p map[string]Value) (map[string]Value, error) {
			radius, err := AsFloat(p["radius"])
			if err != nil {
				return nil, fmt.Errorf("regular_polygon: radius: %w", err)
			}
			s, err := sdf.RegularPolygon2D(p["sides"].Int, radius)
			if err != nil {
				return nil, err
			}
			return map[string]Value{"out": SDF2Value(s)}, nil
		},
	})

	Register(NodeType{
		Name: "polygon", Category: "geometry/sdf2",
		Doc:     "an arbitrary simple polygon given its ordered vertices",
		Inputs:  []PinSpec{{Name: "vertices", Kind: KindList}},
		Outputs: []PinSpec{{Name: "out", Kind: KindSDF2}},
		Eval: func(ctx context.Context, in map[string]Value, p map[string]Value) (map[string]Value, error) {
			verts, err := vec2List(in["vertices"])
			if err != nil {
				return nil, err
			}
			s, err := sdf.Polygon2D(verts)
			if err != nil {
				return nil, err
			}
			return map[string]Value{"out": SDF2Value(s)}, nil
		},
	})
}

// registerLatticeTransformNodes wires the lattice-restricted transforms
// (spec §4.B "lattice_move/lattice_rot/lattice_symop"): translation by
// whole lattice steps, rotation by a lattice symmetry angle, and an
// arbitrary rotation+translation symmetry operation, all against the
// cubic diamond unit cell's basis vectors.
func registerLatticeTransformNodes() {
	Register(NodeType{
		Name: "lattice_move", Category: "lattice",
		Doc:     "translates a shape by whole steps along the lattice basis vectors",
		Inputs:  []PinSpec{{Name: "shape", Kind: KindSDF3}},
		Params:  []PinSpec{{Name: "steps", Kind: KindVec3}},
		Outputs: []PinSpec{{Name: "out", Kind: KindSDF3}},
		Eval: func(ctx context.Context, in map[string]Value, p map[string]Value) (map[string]Value, error) {
			uc := lattice.CubicDiamond()
			out := sdf.LatticeMove3D(in["shape"].SDF3, uc.A, uc.B, uc.C, p["steps"].Vec3)
			return map[string]Value{"out": SDF3Value(out)}, nil
		},
	})

	Register(NodeType{
		Name: "lattice_rot", Category: "lattice",
		Doc:     "rotates a shape by angle (radians) about axis",
		Inputs:  []PinSpec{{Name: "shape", Kind: KindSDF3}},
		Params:  []PinSpec{{Name: "axis", Kind: KindVec3}, {Name: "angle", Kind: KindFloat}},
		Outputs: []PinSpec{{Name: "out", Kind: KindSDF3}},
		Eval: func(ctx context.Context, in map[string]Value, p map[string]Value) (map[string]Value, error) {
			angle, err := AsFloat(p["angle"])
			if err != nil {
				return nil, fmt.Errorf("lattice_rot: angle: %w", err)
			}
			out := sdf.LatticeRot3D(in["shape"].SDF3, p["axis"].Vec3, angle)
			return map[string]Value{"out": SDF3Value(out)}, nil
		},
	})

	Register(NodeType{
		Name: "lattice_symop", Category: "lattice",
		Doc:     "applies a rotation about axis composed with a translation, as a lattice symmetry operation",
		Inputs:  []PinSpec{{Name: "shape", Kind: KindSDF3}},
		Params: []PinSpec{
			{Name: "axis", Kind: KindVec3},
			{Name: "angle", Kind: KindFloat},
			{Name: "translation", Kind: KindVec3},
		},
		Outputs: []PinSpec{{Name: "out", Kind: KindSDF3}},
		Eval: func(ctx context.Context, in map[string]Value, p map[string]Value) (map[string]Value, error) {
			angle, err := AsFloat(p["angle"])
			if err != nil {
				return nil, fmt.Errorf("lattice_symop: angle: %w", err)
			}
			rot := sdf.RotateAxis3(p["axis"].Vec3, angle)
			out := sdf.LatticeSymop3D(in["shape"].SDF3, rot, p["translation"].Vec3)
			return map[string]Value{"out": SDF3Value(out)}, nil
		},
	})
}

// registerSamplingNodes wires surface sampling and ray tracing (spec
// §4.B "surface sampling" and "ray tracing for interactive picking").
func registerSamplingNodes() {
	Register(NodeType{
		Name: "sample_points", Category: "render",
		Doc:     "samples a point cloud near the surface of a solid sdf3",
		Inputs:  []PinSpec{{Name: "shape", Kind: KindSDF3}},
		Params:  []PinSpec{{Name: "cells", Kind: KindInt}},
		Outputs: []PinSpec{{Name: "points", Kind: KindList}},
		Eval: func(ctx context.Context, in map[string]Value, p map[string]Value) (map[string]Value, error) {
			cells := 32
			if cv, ok := p["cells"]; ok && cv.Kind == KindInt && cv.Int > 0 {
				cells = cv.Int
			}
			pts := sdf.SamplePointCloud3D(in["shape"].SDF3, cells)
			vals := make([]Value, len(pts))
			for i, pt := range pts {
				vals[i] = Vec3Value(pt)
			}
			return map[string]Value{"points": ListValue(KindVec3, vals)}, nil
		},
	})

	Register(NodeType{
		Name: "sample_contour", Category: "render",
		Doc:     "samples a point cloud near the boundary of a sketch sdf2",
		Inputs:  []PinSpec{{Name: "shape", Kind: KindSDF2}},
		Params:  []PinSpec{{Name: "cells", Kind: KindInt}},
		Outputs: []PinSpec{{Name: "points", Kind: KindList}},
		Eval: func(ctx context.Context, in map[string]Value, p map[string]Value) (map[string]Value, error) {
			cells := 32
			if cv, ok := p["cells"]; ok && cv.Kind == KindInt && cv.Int > 0 {
				cells = cv.Int
			}
			pts := sdf.SampleContour2D(in["shape"].SDF2, cells)
			vals := make([]Value, len(pts))
			for i, pt := range pts {
				vals[i] = Vec2Value(pt)
			}
			return map[string]Value{"points": ListValue(KindVec2, vals)}, nil
		},
	})

	Register(NodeType{
		Name: "sample_mesh_surface", Category: "render",
		Doc:     "marches a solid sdf3 into a triangle mesh and returns its vertices, points lying exactly on the isosurface rather than scattered through the solid",
		Inputs:  []PinSpec{{Name: "shape", Kind: KindSDF3}},
		Params:  []PinSpec{{Name: "mesh_cells", Kind: KindInt}},
		Outputs: []PinSpec{{Name: "points", Kind: KindList}},
		Eval: func(ctx context.Context, in map[string]Value, p map[string]Value) (map[string]Value, error) {
			cells := 32
			if cv, ok := p["mesh_cells"]; ok && cv.Kind == KindInt && cv.Int > 0 {
				cells = cv.Int
			}
			pts := render.ToMeshVertices(in["shape"].SDF3, cells)
			vals := make([]Value, len(pts))
			for i, pt := range pts {
				vals[i] = Vec3Value(pt)
			}
			return map[string]Value{"points": ListValue(KindVec3, vals)}, nil
		},
	})

	Register(NodeType{
		Name: "ray_march", Category: "render",
		Doc:    "sphere-marches a ray against a solid sdf3, reporting the first surface hit",
		Inputs: []PinSpec{{Name: "shape", Kind: KindSDF3}},
		Params: []PinSpec{
			{Name: "origin", Kind: KindVec3},
			{Name: "direction", Kind: KindVec3},
			{Name: "epsilon", Kind: KindFloat},
		},
		Outputs: []PinSpec{
			{Name: "hit", Kind: KindBool},
			{Name: "point", Kind: KindVec3},
			{Name: "distance", Kind: KindFloat},
		},
		Eval: func(ctx context.Context, in map[string]Value, p map[string]Value) (map[string]Value, error) {
			epsilon, _ := AsFloat(p["epsilon"])
			hit, ok := sdf.RayMarch(in["shape"].SDF3, p["origin"].Vec3, p["direction"].Vec3, epsilon)
			if !ok {
				return map[string]Value{
					"hit":      BoolValue(false),
					"point":    Vec3Value(v3.Vec{}),
					"distance": FloatValue(0),
				}, nil
			}
			return map[string]Value{
				"hit":      BoolValue(true),
				"point":    Vec3Value(hit.Point),
				"distance": FloatValue(hit.Distance),
			}, nil
		},
	})
}

// registerLiteralNodes wires the zero-input constant node types (spec
// §4.A "literal nodes") so they can feed typed pins elsewhere in the
// network: each emits its single param verbatim, except range, which
// emits the list described by its three params.
func registerLiteralNodes() {
	Register(NodeType{
		Name: "int", Category: "literal",
		Doc:     "emits a constant int",
		Params:  []PinSpec{{Name: "value", Kind: KindInt}},
		Outputs: []PinSpec{{Name: "out", Kind: KindInt}},
		Eval: func(ctx context.Context, in map[string]Value, p map[string]Value) (map[string]Value, error) {
			return map[string]Value{"out": IntValue(p["value"].Int)}, nil
		},
	})
	Register(NodeType{
		Name: "float", Category: "literal",
		Doc:     "emits a constant float",
		Params:  []PinSpec{{Name: "value", Kind: KindFloat}},
		Outputs: []PinSpec{{Name: "out", Kind: KindFloat}},
		Eval: func(ctx context.Context, in map[string]Value, p map[string]Value) (map[string]Value, error) {
			v, _ := AsFloat(p["value"])
			return map[string]Value{"out": FloatValue(v)}, nil
		},
	})
	Register(NodeType{
		Name: "bool", Category: "literal",
		Doc:     "emits a constant bool",
		Params:  []PinSpec{{Name: "value", Kind: KindBool}},
		Outputs: []PinSpec{{Name: "out", Kind: KindBool}},
		Eval: func(ctx context.Context, in map[string]Value, p map[string]Value) (map[string]Value, error) {
			return map[string]Value{"out": BoolValue(p["value"].Bool)}, nil
		},
	})
	Register(NodeType{
		Name: "string", Category: "literal",
		Doc:     "emits a constant string",
		Params:  []PinSpec{{Name: "value", Kind: KindString}},
		Outputs: []PinSpec{{Name: "out", Kind: KindString}},
		Eval: func(ctx context.Context, in map[string]Value, p map[string]Value) (map[string]Value, error) {
			return map[string]Value{"out": StringValue(p["value"].String)}, nil
		},
	})
	Register(NodeType{
		Name: "range", Category: "list",
		Doc:     "emits the list of ints [start, end) stepping by step (default 1, or -1 if end < start)",
		Params:  []PinSpec{{Name: "start", Kind: KindInt}, {Name: "end", Kind: KindInt}, {Name: "step", Kind: KindInt}},
		Outputs: []PinSpec{{Name: "out", Kind: KindList}},
		Eval: func(ctx context.Context, in map[string]Value, p map[string]Value) (map[string]Value, error) {
			start, end := p["start"].Int, p["end"].Int
			step := p["step"].Int
			if step == 0 {
				if end < start {
					step = -1
				} else {
					step = 1
				}
			}
			var vals []Value
			if step > 0 {
				for i := start; i < end; i += step {
					vals = append(vals, IntValue(i))
				}
			} else {
				for i := start; i > end; i += step {
					vals = append(vals, IntValue(i))
				}
			}
			return map[string]Value{"out": ListValue(KindInt, vals)}, nil
		},
	})
}

func sdf3List(v Value) ([]sdf.SDF3, error) {
	if v.Kind != KindList {
		return nil, fmt.Errorf("network: expected a list of sdf3 shapes")
	}
	out := make([]sdf.SDF3, 0, len(v.List))
	for _, item := range v.List {
		if item.Kind != KindSDF3 {
			return nil, fmt.Errorf("network: list element is not an sdf3 shape")
		}
		out = append(out, item.SDF3)
	}
	return out, nil
}

func boolParam(p map[string]Value, name string) bool {
	v, ok := p[name]
	return ok && v.Kind == KindBool && v.Bool
}

func vec2List(v Value) ([]v2.Vec, error) {
	if v.Kind != KindList {
		return nil, fmt.Errorf("network: expected a list of vec2 points")
	}
	out := make([]v2.Vec, 0, len(v.List))
	for _, item := range v.List {
		if item.Kind != KindVec2 {
			return nil, fmt.Errorf("network: list element is not a vec2")
		}
		out = append(out, item.Vec2)
	}
	return out, nil
}
