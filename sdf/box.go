package sdf

import (
	v2 "github.com/latticecad/latticecad/vec/v2"
	v3 "github.com/latticecad/latticecad/vec/v3"
)

// Box3 is an axis-aligned 3D bounding box.
type Box3 struct {
	Min, Max v3.Vec
}

// NewBox3 returns the box with the given center and size.
func NewBox3(center, size v3.Vec) Box3 {
	half := size.MulScalar(0.5)
	return Box3{Min: center.Sub(half), Max: center.Add(half)}
}

// Size returns the box's extent along each axis.
func (b Box3) Size() v3.Vec { return b.Max.Sub(b.Min) }

// Center returns the box's center point.
func (b Box3) Center() v3.Vec { return b.Min.Add(b.Max).MulScalar(0.5) }

// Extend returns the smallest box containing both b and p.
func (b Box3) Extend(p v3.Vec) Box3 {
	return Box3{Min: b.Min.Min(p), Max: b.Max.Max(p)}
}

// Union returns the smallest box containing both b and o.
func (b Box3) Union(o Box3) Box3 {
	return Box3{Min: b.Min.Min(o.Min), Max: b.Max.Max(o.Max)}
}

// Contains reports whether p lies within the box (inclusive).
func (b Box3) Contains(p v3.Vec) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Vertices returns the 8 corners of the box.
func (b Box3) Vertices() [8]v3.Vec {
	return [8]v3.Vec{
		{X: b.Min.X, Y: b.Min.Y, Z: b.Min.Z},
		{X: b.Max.X, Y: b.Min.Y, Z: b.Min.Z},
		{X: b.Max.X, Y: b.Max.Y, Z: b.Min.Z},
		{X: b.Min.X, Y: b.Max.Y, Z: b.Min.Z},
		{X: b.Min.X, Y: b.Min.Y, Z: b.Max.Z},
		{X: b.Max.X, Y: b.Min.Y, Z: b.Max.Z},
		{X: b.Max.X, Y: b.Max.Y, Z: b.Max.Z},
		{X: b.Min.X, Y: b.Max.Y, Z: b.Max.Z},
	}
}

// Box2 is an axis-aligned 2D bounding box.
type Box2 struct {
	Min, Max v2.Vec
}

// NewBox2 returns the box with the given center and size.
func NewBox2(center, size v2.Vec) Box2 {
	half := size.MulScalar(0.5)
	return Box2{Min: center.Sub(half), Max: center.Add(half)}
}

// Size returns the box's extent along each axis.
func (b Box2) Size() v2.Vec { return b.Max.Sub(b.Min) }

// Center returns the box's center point.
func (b Box2) Center() v2.Vec { return b.Min.Add(b.Max).MulScalar(0.5) }

// Union returns the smallest box containing both b and o.
func (b Box2) Union(o Box2) Box2 {
	return Box2{Min: b.Min.Min(o.Min), Max: b.Max.Max(o.Max)}
}

// Extrude lifts a 2D box into a 3D box spanning [0, height] on Z.
func (b Box2) Extrude(height float64) Box3 {
	return Box3{
		Min: v3.Vec{X: b.Min.X, Y: b.Min.Y, Z: 0},
		Max: v3.Vec{X: b.Max.X, Y: b.Max.Y, Z: height},
	}
}
