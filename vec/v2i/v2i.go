// Package v2i provides an integer 2D vector type.
package v2i

import v2 "github.com/latticecad/latticecad/vec/v2"

// Vec is a 2D integer vector.
type Vec struct {
	X, Y int
}

// ToV2 converts to a float64 2D vector.
func (a Vec) ToV2() v2.Vec { return v2.Vec{X: float64(a.X), Y: float64(a.Y)} }

// Add returns a + b.
func (a Vec) Add(b Vec) Vec { return Vec{a.X + b.X, a.Y + b.Y} }
