package render_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/latticecad/latticecad/render"
	"github.com/latticecad/latticecad/sdf"
	v3 "github.com/latticecad/latticecad/vec/v3"
)

func TestToMeshUniform(t *testing.T) {
	s, err := sdf.Sphere3D(v3.Vec{}, 2)
	require.NoError(t, err)

	tris := render.ToMesh(s, 20)
	require.NotEmpty(t, tris)
}

func TestToMeshAroundAtomsRefinesNearFocus(t *testing.T) {
	s, err := sdf.Sphere3D(v3.Vec{}, 2)
	require.NoError(t, err)

	focus := []v3.Vec{{X: 0, Y: 0, Z: 2}}
	coarse := render.ToMesh(s, 10)
	adaptive := render.ToMeshAroundAtoms(s, 10, 40, focus, 1)

	require.NotEmpty(t, coarse)
	require.NotEmpty(t, adaptive)
}
