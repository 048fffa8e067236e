// Package v3 provides a 3D float64 vector type used throughout latticecad
// for Cartesian positions, directions and extents.
package v3

import "math"

// Vec is a 3D vector/point.
type Vec struct {
	X, Y, Z float64
}

// Add returns a + b.
func (a Vec) Add(b Vec) Vec {
	return Vec{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

// Sub returns a - b.
func (a Vec) Sub(b Vec) Vec {
	return Vec{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

// Mul returns the component-wise product of a and b.
func (a Vec) Mul(b Vec) Vec {
	return Vec{a.X * b.X, a.Y * b.Y, a.Z * b.Z}
}

// Div returns the component-wise quotient of a and b.
func (a Vec) Div(b Vec) Vec {
	return Vec{a.X / b.X, a.Y / b.Y, a.Z / b.Z}
}

// AddScalar adds k to every component.
func (a Vec) AddScalar(k float64) Vec {
	return Vec{a.X + k, a.Y + k, a.Z + k}
}

// MulScalar scales every component by k.
func (a Vec) MulScalar(k float64) Vec {
	return Vec{a.X * k, a.Y * k, a.Z * k}
}

// DivScalar divides every component by k.
func (a Vec) DivScalar(k float64) Vec {
	return Vec{a.X / k, a.Y / k, a.Z / k}
}

// Neg returns -a.
func (a Vec) Neg() Vec {
	return Vec{-a.X, -a.Y, -a.Z}
}

// Dot returns the dot product of a and b.
func (a Vec) Dot(b Vec) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// Cross returns the cross product a x b.
func (a Vec) Cross(b Vec) Vec {
	return Vec{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

// Length returns the Euclidean norm of a.
func (a Vec) Length() float64 {
	return math.Sqrt(a.Dot(a))
}

// Length2 returns the squared Euclidean norm of a.
func (a Vec) Length2() float64 {
	return a.Dot(a)
}

// Normalize returns a scaled to unit length. The zero vector is returned
// unchanged.
func (a Vec) Normalize() Vec {
	l := a.Length()
	if l == 0 {
		return a
	}
	return a.DivScalar(l)
}

// Abs returns the component-wise absolute value of a.
func (a Vec) Abs() Vec {
	return Vec{math.Abs(a.X), math.Abs(a.Y), math.Abs(a.Z)}
}

// Ceil returns the component-wise ceiling of a.
func (a Vec) Ceil() Vec {
	return Vec{math.Ceil(a.X), math.Ceil(a.Y), math.Ceil(a.Z)}
}

// Floor returns the component-wise floor of a.
func (a Vec) Floor() Vec {
	return Vec{math.Floor(a.X), math.Floor(a.Y), math.Floor(a.Z)}
}

// Min returns the component-wise minimum of a and b.
func (a Vec) Min(b Vec) Vec {
	return Vec{math.Min(a.X, b.X), math.Min(a.Y, b.Y), math.Min(a.Z, b.Z)}
}

// Max returns the component-wise maximum of a and b.
func (a Vec) Max(b Vec) Vec {
	return Vec{math.Max(a.X, b.X), math.Max(a.Y, b.Y), math.Max(a.Z, b.Z)}
}

// MaxComponent returns the largest of X, Y, Z.
func (a Vec) MaxComponent() float64 {
	return math.Max(a.X, math.Max(a.Y, a.Z))
}

// MinComponent returns the smallest of X, Y, Z.
func (a Vec) MinComponent() float64 {
	return math.Min(a.X, math.Min(a.Y, a.Z))
}

// Distance returns the Euclidean distance between a and b.
func (a Vec) Distance(b Vec) float64 {
	return a.Sub(b).Length()
}

// Lerp linearly interpolates between a and b, t in [0,1].
func (a Vec) Lerp(b Vec, t float64) Vec {
	return a.Add(b.Sub(a).MulScalar(t))
}

// Equals reports whether a and b are equal within tolerance tol.
func (a Vec) Equals(b Vec, tol float64) bool {
	return a.Sub(b).Length() <= tol
}

// ApproxOrthonormalBasis returns two unit vectors orthogonal to a and to
// each other, forming a right-handed basis {u, v, a.Normalize()}.
// a must be non-zero.
func (a Vec) ApproxOrthonormalBasis() (u, v Vec) {
	n := a.Normalize()
	ref := Vec{1, 0, 0}
	if math.Abs(n.X) > 0.9 {
		ref = Vec{0, 1, 0}
	}
	u = ref.Sub(n.MulScalar(ref.Dot(n))).Normalize()
	v = n.Cross(u)
	return u, v
}
