package sdf_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/latticecad/latticecad/sdf"
	v3 "github.com/latticecad/latticecad/vec/v3"
)

// TestUnionIsCommutative verifies the boolean laws a correct CSG
// implementation must satisfy regardless of operand order.
func TestUnionIsCommutative(t *testing.T) {
	a, err := sdf.Sphere3D(v3.Vec{}, 1)
	require.NoError(t, err)
	b, err := sdf.Sphere3D(v3.Vec{X: 1.5}, 1)
	require.NoError(t, err)

	ab := sdf.Union3D(a, b)
	ba := sdf.Union3D(b, a)

	for _, p := range samplePoints() {
		require.InDelta(t, ab.Evaluate(p), ba.Evaluate(p), 1e-9)
	}
}

func TestDifferenceEmptyBaseIsIdentity(t *testing.T) {
	sub, err := sdf.Sphere3D(v3.Vec{}, 1)
	require.NoError(t, err)

	diff := sdf.Difference3D(nil, []sdf.SDF3{sub})
	union := sdf.Union3D(sub)

	for _, p := range samplePoints() {
		require.InDelta(t, union.Evaluate(p), diff.Evaluate(p), 1e-9)
	}
}

func TestDifferenceCutsOutSub(t *testing.T) {
	base, err := sdf.Sphere3D(v3.Vec{}, 2)
	require.NoError(t, err)
	sub, err := sdf.Sphere3D(v3.Vec{}, 1)
	require.NoError(t, err)

	diff := sdf.Difference3D([]sdf.SDF3{base}, []sdf.SDF3{sub})
	require.Greater(t, diff.Evaluate(v3.Vec{}), 0.0, "center should be outside the shell")
	require.Less(t, diff.Evaluate(v3.Vec{X: 1.5}), 0.0, "shell interior should stay inside")
}

func samplePoints() []v3.Vec {
	return []v3.Vec{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 0, Y: 2, Z: 0},
		{X: -1, Y: -1, Z: -1},
		{X: 3, Y: 3, Z: 3},
	}
}
