package atom

import (
	"math"

	v3 "github.com/latticecad/latticecad/vec/v3"
)

// vectorAngle returns the angle (radians, [0, pi]) between two vectors.
func vectorAngle(u, v v3.Vec) float64 {
	lu := u.Length()
	lv := v.Length()
	if lu == 0 || lv == 0 {
		return 0
	}
	cos := u.Dot(v) / (lu * lv)
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}
	return math.Acos(cos)
}

// atan2 is the standard two-argument arctangent, exposed so callers in
// this package don't need to import math directly for a single call.
func atan2(y, x float64) float64 {
	return math.Atan2(y, x)
}
