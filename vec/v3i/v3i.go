// Package v3i provides an integer 3D vector type, used for lattice cell
// indices and marching-cubes grid steps.
package v3i

// Vec is a 3D integer vector.
type Vec struct {
	X, Y, Z int
}

// Add returns a + b.
func (a Vec) Add(b Vec) Vec { return Vec{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }

// Sub returns a - b.
func (a Vec) Sub(b Vec) Vec { return Vec{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }

// Equals reports whether a and b are identical.
func (a Vec) Equals(b Vec) bool { return a == b }

// Min returns the component-wise minimum of a and b.
func (a Vec) Min(b Vec) Vec {
	v := a
	if b.X < v.X {
		v.X = b.X
	}
	if b.Y < v.Y {
		v.Y = b.Y
	}
	if b.Z < v.Z {
		v.Z = b.Z
	}
	return v
}

// Max returns the component-wise maximum of a and b.
func (a Vec) Max(b Vec) Vec {
	v := a
	if b.X > v.X {
		v.X = b.X
	}
	if b.Y > v.Y {
		v.Y = b.Y
	}
	if b.Z > v.Z {
		v.Z = b.Z
	}
	return v
}
