package hyperbez

import (
	"math"

	"github.com/curvelab/hyperspline/geom"
)

// Hyperbezier is HyperbezParams attached to two world endpoints, plus a
// cached similarity mapping canonical space (unit arclength, horizontal
// initial tangent) onto the actual chord.
type Hyperbezier struct {
	Params HyperbezParams
	P0, P1 geom.Point

	scaleRot geom.Vec2
}

// FromPointsParams attaches params to world endpoints p0, p1: it computes
// the similarity that carries the canonical position(1) onto the chord
// p1-p0. Letting uv = position(1), the similarity coefficient is
// chord/uv (complex division) -- equivalently the dot/perp-dot
// construction of uv_scaled = uv/|uv|^2 against the chord, collapsed to
// one complex reciprocal since Vec2 is complex128-backed.
func FromPointsParams(params HyperbezParams, p0, p1 geom.Point) Hyperbezier {
	uv := position(params, 0, 1)
	chord := p1.Sub(p0)
	var scaleRot geom.Vec2
	if uv.IsZero() {
		tracer().Errorf("hyperbezier: degenerate canonical integral, cannot attach to endpoints")
		scaleRot = geom.V(1, 0)
	} else {
		scaleRot = chord.Mul(uv.Recip())
	}
	return Hyperbezier{Params: params, P0: p0, P1: p1, scaleRot: scaleRot}
}

// Theta is the tangent angle at t, see HyperbezParams.Theta.
func (h Hyperbezier) Theta(t float64) float64 {
	return h.Params.Theta(t)
}

// Position is the canonical displacement from the start at parameter t.
func (h Hyperbezier) Position(t float64) geom.Vec2 {
	return position(h.Params, 0, t)
}

// Eval is the world position at t in [0,1]. t == 1 returns P1 exactly,
// short-circuiting the quadrature to eliminate drift at the endpoint.
func (h Hyperbezier) Eval(t float64) geom.Point {
	if t == 1 {
		return h.P1
	}
	return h.P0.Add(h.scaleRot.Mul(h.Position(t)))
}

// SamplePtDeriv returns the world position and the unnormalized world
// derivative vector at t.
func (h Hyperbezier) SamplePtDeriv(t float64) (geom.Point, geom.Vec2) {
	pos := h.P0.Add(h.scaleRot.Mul(h.Position(t)))
	deriv := h.scaleRot.Mul(geom.FromAngle(h.Theta(t)))
	return pos, deriv
}

// Subsegment returns the hyperbezier representing the restricted arc
// [t0, t1] of h, attached to the corresponding world endpoints.
// Precondition (panics, a programmer error): 0 <= t0 < t1 <= 1.
func (h Hyperbezier) Subsegment(t0, t1 float64) Hyperbezier {
	if t0 < 0 || t1 > 1 || t0 >= t1 {
		panic("hyperbez: subsegment range must satisfy 0 <= t0 < t1 <= 1")
	}
	p := h.Params
	dt := t1 - t0
	e := p.C*t0*t0 + p.D*t0 + 1
	s := 1 / e
	ps := dt * s * math.Sqrt(s)
	newParams := NewHyperbezParams(
		p.A*ps,
		(p.B+p.A*t0)*ps,
		p.C*dt*dt*s,
		(p.D+2*p.C*t0)*dt*s,
	)
	return FromPointsParams(newParams, h.Eval(t0), h.Eval(t1))
}
