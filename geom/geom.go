/*
Package geom implements points, displacement vectors and similarity
transforms for planar curve work.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package geom

import (
	"math"
	"math/cmplx"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'geom'
func tracer() tracing.Trace {
	return tracing.Select("geom")
}

// Epsilon : numbers below ε are considered 0.
var Epsilon float64 = 0.0000001

// Is0 is a predicate: is n = 0 ?
func Is0(n float64) bool {
	return math.Abs(n) <= Epsilon
}

// === Vec2 ===================================================================

// Vec2 is a planar displacement vector, backed by a complex number so
// that rotation and scaling reduce to complex multiplication.
type Vec2 complex128

// V is a quick notation for constructing a Vec2 from floats.
func V(x, y float64) Vec2 {
	return Vec2(complex(x, y))
}

// FromAngle constructs a unit vector pointing at angle theta (radians).
func FromAngle(theta float64) Vec2 {
	return V(math.Cos(theta), math.Sin(theta))
}

// C returns v as a complex128.
func (v Vec2) C() complex128 {
	return complex128(v)
}

// X is the x-part of v.
func (v Vec2) X() float64 {
	return real(v)
}

// Y is the y-part of v.
func (v Vec2) Y() float64 {
	return imag(v)
}

// Add returns v + w.
func (v Vec2) Add(w Vec2) Vec2 {
	return v + w
}

// Sub returns v - w.
func (v Vec2) Sub(w Vec2) Vec2 {
	return v - w
}

// Scaled returns v scaled by factor a.
func (v Vec2) Scaled(a float64) Vec2 {
	return V(v.X()*a, v.Y()*a)
}

// Neg returns -v.
func (v Vec2) Neg() Vec2 {
	return -v
}

// Dot is the dot product of v and w.
func (v Vec2) Dot(w Vec2) float64 {
	return v.X()*w.X() + v.Y()*w.Y()
}

// Cross is the z-component of the 3D cross product of v and w.
func (v Vec2) Cross(w Vec2) float64 {
	return v.X()*w.Y() - v.Y()*w.X()
}

// Hypot is the length of v.
func (v Vec2) Hypot() float64 {
	return cmplx.Abs(v.C())
}

// Atan2 is the angle of v, in (-pi, pi].
func (v Vec2) Atan2() float64 {
	return cmplx.Phase(v.C())
}

// IsZero is a predicate: is v the zero vector (within Epsilon)?
func (v Vec2) IsZero() bool {
	return Is0(v.X()) && Is0(v.Y())
}

// Mul multiplies two vectors as complex numbers; this is the composition
// of the rotation+scale each represents.
func (v Vec2) Mul(w Vec2) Vec2 {
	return Vec2(v.C() * w.C())
}

// Recip returns 1/v (as a complex reciprocal); undefined for the zero vector.
func (v Vec2) Recip() Vec2 {
	return Vec2(1 / v.C())
}

// === Point ===================================================================

// Point is a planar Cartesian coordinate, backed by a complex number.
type Point complex128

// P is a quick notation for constructing a Point from floats.
func P(x, y float64) Point {
	return Point(complex(x, y))
}

// Origin represents the frequently used constant (0,0).
var Origin = P(0, 0)

// C returns p as a complex128.
func (p Point) C() complex128 {
	return complex128(p)
}

// X is the x-part of p.
func (p Point) X() float64 {
	return real(p)
}

// Y is the y-part of p.
func (p Point) Y() float64 {
	return imag(p)
}

// Add returns p displaced by v.
func (p Point) Add(v Vec2) Point {
	return Point(p.C() + v.C())
}

// Sub returns the displacement from q to p, i.e. p - q.
func (p Point) Sub(q Point) Vec2 {
	return Vec2(p.C() - q.C())
}

// Lerp linearly interpolates between p (t=0) and q (t=1).
func (p Point) Lerp(q Point, t float64) Point {
	return p.Add(q.Sub(p).Scaled(t))
}

// Equal compares two points within Epsilon.
func (p Point) Equal(q Point) bool {
	d := p.Sub(q)
	return Is0(d.X()) && Is0(d.Y())
}

// === Similarity =============================================================

// Similarity is a rotation+uniform-scale+translate transform: the
// restriction of a general affine transform to conformal maps, which is
// all the hyperbezier math ever needs (it always carries a canonical
// unit-length curve onto a world chord). Adapted from arithm.AT, whose
// general 3x3 affine machinery is overkill here: a conformal map is
// exactly "multiply by a complex number, then translate", so Basis
// plays the role of AT's rotation+scale submatrix collapsed to one
// complex coefficient.
type Similarity struct {
	Origin Point // where canonical (0,0) lands
	Basis  Vec2  // canonical (1,0) lands at Origin+Basis; scales/rotates everything else
}

// Identity is the similarity that changes nothing.
func Identity() Similarity {
	return Similarity{Origin: Origin, Basis: V(1, 0)}
}

// SimilarityTo builds the similarity that carries canonical (0,0) to p0
// and canonical (1,0) to p1.
func SimilarityTo(p0, p1 Point) Similarity {
	return Similarity{Origin: p0, Basis: p1.Sub(p0)}
}

// Apply transforms a canonical point into world space.
func (s Similarity) Apply(p Point) Point {
	return s.Origin.Add(s.ApplyVec(Vec2(p)))
}

// ApplyVec transforms a canonical displacement into world space.
func (s Similarity) ApplyVec(v Vec2) Vec2 {
	return s.Basis.Mul(v)
}

// Invert returns the similarity that undoes s.
func (s Similarity) Invert() Similarity {
	if s.Basis.IsZero() {
		tracer().Errorf("inverting a degenerate similarity (zero basis)")
		return Identity()
	}
	inv := s.Basis.Recip()
	// Origin' = -inv * Origin, so that Apply(Invert(Apply(p))) == p.
	return Similarity{
		Origin: Point(inv.Mul(Vec2(s.Origin)).Neg()),
		Basis:  inv,
	}
}

// Rotated returns a new Vec2 rotated around origin by theta (counterclockwise).
func (v Vec2) Rotated(theta float64) Vec2 {
	return v.Mul(FromAngle(theta))
}
