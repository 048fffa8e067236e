// Package conv converts between the float and integer vector flavors.
package conv

import (
	v2 "github.com/latticecad/latticecad/vec/v2"
	v2i "github.com/latticecad/latticecad/vec/v2i"
	v3 "github.com/latticecad/latticecad/vec/v3"
	v3i "github.com/latticecad/latticecad/vec/v3i"
)

// V3ToV3i truncates each component of a float vector toward zero.
// Callers typically Ceil/Floor/Round before calling this.
func V3ToV3i(a v3.Vec) v3i.Vec {
	return v3i.Vec{X: int(a.X), Y: int(a.Y), Z: int(a.Z)}
}

// V3iToV3 widens an integer vector to float.
func V3iToV3(a v3i.Vec) v3.Vec {
	return v3.Vec{X: float64(a.X), Y: float64(a.Y), Z: float64(a.Z)}
}

// V2ToV2i truncates a float vector into an integer vector.
func V2ToV2i(a v2.Vec) v2i.Vec {
	return v2i.Vec{X: int(a.X), Y: int(a.Y)}
}

// V2iToV2 widens an integer vector to float.
func V2iToV2(a v2i.Vec) v2.Vec {
	return v2.Vec{X: float64(a.X), Y: float64(a.Y)}
}
