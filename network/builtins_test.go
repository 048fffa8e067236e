package network_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/latticecad/latticecad/network"
	v2pkg "github.com/latticecad/latticecad/vec/v2"
	v3pkg "github.com/latticecad/latticecad/vec/v3"
)

func v3(x, y, z float64) v3pkg.Vec { return v3pkg.Vec{X: x, Y: y, Z: z} }
func v2(x, y float64) v2pkg.Vec    { return v2pkg.Vec{X: x, Y: y} }

func evalOut(t *testing.T, net *network.NodeNetwork, id network.NodeID, pin string) network.Value {
	t.Helper()
	v, err := network.NewEvaluator(net).Evaluate(context.Background(), id, pin)
	require.NoError(t, err)
	return v
}

func TestBuiltinSphere(t *testing.T) {
	net := network.NewNetwork()
	s := net.AddNode("sphere", map[string]network.Value{"radius": network.FloatValue(2)})
	v := evalOut(t, net, s, "out")
	require.Equal(t, network.KindSDF3, v.Kind)
}

func TestBuiltinCuboid(t *testing.T) {
	net := network.NewNetwork()
	c := net.AddNode("cuboid", map[string]network.Value{"size": network.Vec3Value(v3(1, 2, 3))})
	v := evalOut(t, net, c, "out")
	require.Equal(t, network.KindSDF3, v.Kind)
}

func TestBuiltinIntersectAndDifference(t *testing.T) {
	net := network.NewNetwork()
	s1 := net.AddNode("sphere", map[string]network.Value{"radius": network.FloatValue(2)})
	s2 := net.AddNode("sphere", map[string]network.Value{"radius": network.FloatValue(1)})

	inter := net.AddNode("intersect", map[string]network.Value{})
	require.NoError(t, net.Connect(s1, "out", inter, "shapes"))
	v := evalOut(t, net, inter, "out")
	require.Equal(t, network.KindSDF3, v.Kind)

	diff := net.AddNode("difference", map[string]network.Value{})
	require.NoError(t, net.Connect(s1, "out", diff, "base"))
	require.NoError(t, net.Connect(s2, "out", diff, "sub"))
	v = evalOut(t, net, diff, "out")
	require.Equal(t, network.KindSDF3, v.Kind)
}

func TestBuiltinGeoTrans(t *testing.T) {
	net := network.NewNetwork()
	s := net.AddNode("sphere", map[string]network.Value{"radius": network.FloatValue(1)})
	g := net.AddNode("geo_trans", map[string]network.Value{"translate": network.Vec3Value(v3(1, 0, 0))})
	require.NoError(t, net.Connect(s, "out", g, "shape"))
	v := evalOut(t, net, g, "out")
	require.Equal(t, network.KindSDF3, v.Kind)
}

func TestBuiltinLatticeFillAndUFFMinimize(t *testing.T) {
	net := network.NewNetwork()
	region := net.AddNode("sphere", map[string]network.Value{"radius": network.FloatValue(4)})
	lf := net.AddNode("lattice_fill", map[string]network.Value{
		"passivate":       network.BoolValue(true),
		"remove_orphans":  network.BoolValue(true),
		"reconstruct_100": network.BoolValue(false),
	})
	require.NoError(t, net.Connect(region, "out", lf, "region"))
	v := evalOut(t, net, lf, "out")
	require.Equal(t, network.KindStructure, v.Kind)
	require.Greater(t, v.Structure.Len(), 0)

	minimize := net.AddNode("uff_minimize", map[string]network.Value{})
	require.NoError(t, net.Connect(lf, "out", minimize, "structure"))
	v = evalOut(t, net, minimize, "final_energy")
	require.Equal(t, network.KindFloat, v.Kind)
}

func TestBuiltinApplyDiff(t *testing.T) {
	net := network.NewNetwork()
	base := net.AddNode("sphere", map[string]network.Value{"radius": network.FloatValue(3)})
	baseFill := net.AddNode("lattice_fill", map[string]network.Value{})
	require.NoError(t, net.Connect(base, "out", baseFill, "region"))

	diffRegion := net.AddNode("sphere", map[string]network.Value{"radius": network.FloatValue(1)})
	diffFill := net.AddNode("lattice_fill", map[string]network.Value{})
	require.NoError(t, net.Connect(diffRegion, "out", diffFill, "region"))

	apply := net.AddNode("apply_diff", map[string]network.Value{})
	require.NoError(t, net.Connect(baseFill, "out", apply, "base"))
	require.NoError(t, net.Connect(diffFill, "out", apply, "diff"))

	v := evalOut(t, net, apply, "out")
	require.Equal(t, network.KindStructure, v.Kind)
}

func TestBuiltinHalfSpaceExtrudeFacetShell(t *testing.T) {
	net := network.NewNetwork()
	circle := net.AddNode("circle", map[string]network.Value{"radius": network.FloatValue(2)})
	extrude := net.AddNode("extrude", map[string]network.Value{"height": network.FloatValue(5)})
	require.NoError(t, net.Connect(circle, "out", extrude, "sketch"))
	v := evalOut(t, net, extrude, "out")
	require.Equal(t, network.KindSDF3, v.Kind)

	hs := net.AddNode("half_space", map[string]network.Value{
		"normal": network.Vec3Value(v3(0, 0, 1)),
		"offset": network.FloatValue(0),
	})
	v = evalOut(t, net, hs, "out")
	require.Equal(t, network.KindSDF3, v.Kind)

	shell := net.AddNode("facet_shell", map[string]network.Value{"thickness": network.FloatValue(0.5)})
	require.NoError(t, net.Connect(extrude, "out", shell, "shape"))
	v = evalOut(t, net, shell, "out")
	require.Equal(t, network.KindSDF3, v.Kind)
}

func TestBuiltin2DPrimitives(t *testing.T) {
	net := network.NewNetwork()
	rect := net.AddNode("rectangle", map[string]network.Value{
		"min_corner": network.Vec2Value(v2(-1, -1)),
		"extent":     network.Vec2Value(v2(2, 2)),
	})
	require.Equal(t, network.KindSDF2, evalOut(t, net, rect, "out").Kind)

	hp := net.AddNode("half_plane", map[string]network.Value{
		"normal": network.Vec2Value(v2(0, 1)),
		"offset": network.FloatValue(0),
	})
	require.Equal(t, network.KindSDF2, evalOut(t, net, hp, "out").Kind)

	poly := net.AddNode("regular_polygon", map[string]network.Value{
		"sides": network.IntValue(6), "radius": network.FloatValue(1),
	})
	require.Equal(t, network.KindSDF2, evalOut(t, net, poly, "out").Kind)
}

func TestBuiltinLatticeMoveRotSymop(t *testing.T) {
	net := network.NewNetwork()
	s := net.AddNode("sphere", map[string]network.Value{"radius": network.FloatValue(1)})

	move := net.AddNode("lattice_move", map[string]network.Value{"steps": network.Vec3Value(v3(1, 0, 0))})
	require.NoError(t, net.Connect(s, "out", move, "shape"))
	require.Equal(t, network.KindSDF3, evalOut(t, net, move, "out").Kind)

	rot := net.AddNode("lattice_rot", map[string]network.Value{
		"axis": network.Vec3Value(v3(0, 0, 1)), "angle": network.FloatValue(1.5707963267948966),
	})
	require.NoError(t, net.Connect(s, "out", rot, "shape"))
	require.Equal(t, network.KindSDF3, evalOut(t, net, rot, "out").Kind)

	symop := net.AddNode("lattice_symop", map[string]network.Value{
		"axis": network.Vec3Value(v3(0, 0, 1)), "angle": network.FloatValue(0),
		"translation": network.Vec3Value(v3(1, 1, 1)),
	})
	require.NoError(t, net.Connect(s, "out", symop, "shape"))
	require.Equal(t, network.KindSDF3, evalOut(t, net, symop, "out").Kind)
}

func TestBuiltinSamplingAndRayMarch(t *testing.T) {
	net := network.NewNetwork()
	s := net.AddNode("sphere", map[string]network.Value{"radius": network.FloatValue(2)})

	pts := net.AddNode("sample_points", map[string]network.Value{"cells": network.IntValue(8)})
	require.NoError(t, net.Connect(s, "out", pts, "shape"))
	v := evalOut(t, net, pts, "points")
	require.Equal(t, network.KindList, v.Kind)

	surf := net.AddNode("sample_mesh_surface", map[string]network.Value{"mesh_cells": network.IntValue(10)})
	require.NoError(t, net.Connect(s, "out", surf, "shape"))
	v = evalOut(t, net, surf, "points")
	require.Equal(t, network.KindList, v.Kind)
	require.NotEmpty(t, v.List)

	ray := net.AddNode("ray_march", map[string]network.Value{
		"origin": network.Vec3Value(v3(-10, 0, 0)), "direction": network.Vec3Value(v3(1, 0, 0)),
	})
	require.NoError(t, net.Connect(s, "out", ray, "shape"))
	v = evalOut(t, net, ray, "hit")
	require.Equal(t, network.KindBool, v.Kind)
	require.True(t, v.Bool)
}

func TestBuiltinRenderMeshFocusStructure(t *testing.T) {
	net := network.NewNetwork()
	region := net.AddNode("sphere", map[string]network.Value{"radius": network.FloatValue(3)})
	lf := net.AddNode("lattice_fill", map[string]network.Value{"passivate": network.BoolValue(true)})
	require.NoError(t, net.Connect(region, "out", lf, "region"))

	rm := net.AddNode("render_mesh", map[string]network.Value{
		"mesh_cells":   network.IntValue(8),
		"refine_cells": network.IntValue(6),
		"focus_radius": network.FloatValue(1.5),
	})
	require.NoError(t, net.Connect(region, "out", rm, "shape"))
	require.NoError(t, net.Connect(lf, "out", rm, "focus_structure"))

	v := evalOut(t, net, rm, "triangle_count")
	require.Equal(t, network.KindInt, v.Kind)
	require.Greater(t, v.Int, 0)
}

func TestBuiltinLiteralsAndRange(t *testing.T) {
	net := network.NewNetwork()
	i := net.AddNode("int", map[string]network.Value{"value": network.IntValue(7)})
	require.Equal(t, 7, evalOut(t, net, i, "out").Int)

	r := net.AddNode("range", map[string]network.Value{"start": network.IntValue(0), "end": network.IntValue(5)})
	v := evalOut(t, net, r, "out")
	require.Equal(t, network.KindList, v.Kind)
	require.Len(t, v.List, 5)
	require.Equal(t, 0, v.List[0].Int)
	require.Equal(t, 4, v.List[4].Int)
}
