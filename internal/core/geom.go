// Package core provides fundamental types and utilities for the asteroids simulation.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "math"

// Vec2 is a 2D vector in field units.
type Vec2 struct {
	X, Y float64
}

// V is shorthand for constructing a Vec2.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// FromAngle returns a vector of the given length pointing along angle (radians).
func FromAngle(angle, length float64) Vec2 {
	return Vec2{X: math.Cos(angle) * length, Y: math.Sin(angle) * length}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v * s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Len returns the magnitude of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// LenSq returns the squared magnitude of v.
func (v Vec2) LenSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Normalize returns a unit vector in the direction of v.
// The zero vector is returned unchanged.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return Vec2{X: v.X / l, Y: v.Y / l}
}

// Angle returns the heading of v in radians.
func (v Vec2) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// Rotate returns v rotated by angle radians.
func (v Vec2) Rotate(angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	return Vec2{X: v.X*cos - v.Y*sin, Y: v.X*sin + v.Y*cos}
}

// ClampLen returns v scaled down so its magnitude does not exceed max.
func (v Vec2) ClampLen(max float64) Vec2 {
	if max <= 0 {
		return v
	}
	l := v.Len()
	if l <= max {
		return v
	}
	return v.Scale(max / l)
}

// Field is the toroidal playing area. Positions live in [0, W) x [0, H).
type Field struct {
	W, H float64
}

// Wrap maps an arbitrary position into the field.
func (f Field) Wrap(p Vec2) Vec2 {
	return Vec2{X: wrapAxis(p.X, f.W), Y: wrapAxis(p.Y, f.H)}
}

// Contains reports whether p already lies inside the field.
func (f Field) Contains(p Vec2) bool {
	return p.X >= 0 && p.X < f.W && p.Y >= 0 && p.Y < f.H
}

// Displacement returns the shortest vector from a to b on the torus.
func (f Field) Displacement(a, b Vec2) Vec2 {
	return Vec2{X: shortestAxis(b.X-a.X, f.W), Y: shortestAxis(b.Y-a.Y, f.H)}
}

// Distance returns the shortest distance between a and b on the torus.
func (f Field) Distance(a, b Vec2) float64 {
	return f.Displacement(a, b).Len()
}

// DistanceSq returns the squared shortest distance between a and b.
func (f Field) DistanceSq(a, b Vec2) float64 {
	return f.Displacement(a, b).LenSq()
}

// Center returns the middle of the field.
func (f Field) Center() Vec2 {
	return Vec2{X: f.W / 2, Y: f.H / 2}
}

// Antipode returns the point half a field away from p on both axes.
func (f Field) Antipode(p Vec2) Vec2 {
	return f.Wrap(p.Add(Vec2{X: f.W / 2, Y: f.H / 2}))
}

func wrapAxis(v, size float64) float64 {
	if size <= 0 {
		return 0
	}
	r := math.Mod(v, size)
	if r < 0 {
		r += size
	}
	// -tiny + size rounds to size in floating point
	if r >= size {
		r = 0
	}
	return r
}

func shortestAxis(d, size float64) float64 {
	if size <= 0 {
		return d
	}
	r := math.Remainder(d, size)
	return r
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
