// Package geometry holds the 2D vector type shared by the steering engine,
// the simulation host and the renderer.
package geometry

import (
	"fmt"
	"math"
)

// Epsilon is the tolerance used for float64 comparisons and zero-length checks.
const Epsilon = 1e-9

// Vector2D is a point or a displacement in cartesian space.
// Fields are public so literals stay short: v := Vector2D{X: 1, Y: 2}
type Vector2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Zero is the null vector.
var Zero = Vector2D{}

// NewVector creates a new Vector2D.
func NewVector(x, y float64) Vector2D {
	return Vector2D{X: x, Y: y}
}

// NewVectorPolar creates a vector of length radius pointing at theta radians.
func NewVectorPolar(radius, theta float64) Vector2D {
	x := radius * math.Cos(theta)
	y := radius * math.Sin(theta)

	// cos(Pi/2) is 6e-17, not 0
	if math.Abs(x) < Epsilon {
		x = 0
	}
	if math.Abs(y) < Epsilon {
		y = 0
	}
	return Vector2D{X: x, Y: y}
}

// String implements fmt.Stringer.
func (v Vector2D) String() string {
	return fmt.Sprintf("(%.2f, %.2f)", v.X, v.Y)
}

// ---------------------------------------------------------------------
// Arithmetic. Value receivers, every operation returns a new vector.
// ---------------------------------------------------------------------

// Add returns v + other.
func (v Vector2D) Add(other Vector2D) Vector2D {
	return Vector2D{v.X + other.X, v.Y + other.Y}
}

// Sub returns v - other.
func (v Vector2D) Sub(other Vector2D) Vector2D {
	return Vector2D{v.X - other.X, v.Y - other.Y}
}

// Mul scales the vector by a scalar value.
func (v Vector2D) Mul(scalar float64) Vector2D {
	return Vector2D{v.X * scalar, v.Y * scalar}
}

// Div scales the vector by 1/scalar. Dividing by zero yields the zero vector,
// which is what every averaging caller in the engine wants for an empty set.
func (v Vector2D) Div(scalar float64) Vector2D {
	if scalar == 0 {
		return Zero
	}
	return Vector2D{v.X / scalar, v.Y / scalar}
}

// Dot calculates the dot product of two vectors.
func (v Vector2D) Dot(other Vector2D) float64 {
	return v.X*other.X + v.Y*other.Y
}

// ---------------------------------------------------------------------
// Magnitude
// ---------------------------------------------------------------------

// LenSqr is the squared magnitude. Use it for comparisons.
func (v Vector2D) LenSqr() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Len is the magnitude of the vector.
func (v Vector2D) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// IsZero reports whether the vector has no usable length.
func (v Vector2D) IsZero() bool {
	return v.LenSqr() < Epsilon*Epsilon
}

// Normalize returns a unit vector in the same direction,
// or the zero vector if the length is effectively zero.
func (v Vector2D) Normalize() Vector2D {
	l := v.Len()
	if l < Epsilon {
		return Zero
	}
	return v.Mul(1 / l)
}

// SetLen returns a vector with the same direction and the given magnitude.
// A zero vector stays zero: it has no direction to stretch.
func (v Vector2D) SetLen(length float64) Vector2D {
	return v.Normalize().Mul(length)
}

// Limit clamps the magnitude to max, leaving shorter vectors untouched.
func (v Vector2D) Limit(max float64) Vector2D {
	if max < 0 {
		max = 0
	}
	if v.LenSqr() > max*max {
		return v.SetLen(max)
	}
	return v
}

// ---------------------------------------------------------------------
// Geometric utilities
// ---------------------------------------------------------------------

// DistanceTo calculates the Euclidean distance to another point.
func (v Vector2D) DistanceTo(other Vector2D) float64 {
	return v.Sub(other).Len()
}

// DistanceSquaredTo calculates the squared Euclidean distance to another point.
func (v Vector2D) DistanceSquaredTo(other Vector2D) float64 {
	return v.Sub(other).LenSqr()
}

// Angle returns the heading of the vector relative to the X-axis, in [-Pi, Pi].
func (v Vector2D) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// Rotate rotates the vector by angle (in radians) around the origin.
func (v Vector2D) Rotate(angle float64) Vector2D {
	cosTheta := math.Cos(angle)
	sinTheta := math.Sin(angle)
	return Vector2D{
		X: v.X*cosTheta - v.Y*sinTheta,
		Y: v.X*sinTheta + v.Y*cosTheta,
	}
}

// Eq checks if two vectors are equal within Epsilon.
func (v Vector2D) Eq(other Vector2D) bool {
	return math.Abs(v.X-other.X) <= Epsilon && math.Abs(v.Y-other.Y) <= Epsilon
}

// EqTol is Eq with a caller supplied tolerance.
func (v Vector2D) EqTol(other Vector2D, tol float64) bool {
	return math.Abs(v.X-other.X) <= tol && math.Abs(v.Y-other.Y) <= tol
}
