package hyperbez

import (
	"math"

	"github.com/curvelab/hyperspline/geom"
)

// HyperbezParams is the four-coefficient closed-form hyperbezier
// representation: theta(t) = (thA*t + thB)/sqrt(C*t^2 + D*t + 1) - thB.
// Invariant (caller's responsibility, not checked here): C must not be
// zero, and 4*C - D*D must not be zero.
type HyperbezParams struct {
	A, B, C, D float64

	thA, thB float64
}

// NewHyperbezParams builds a HyperbezParams and caches the derived thA/thB
// coefficients. Fails silently if C or 4*C-D*D is near zero -- that
// precondition is the caller's obligation, not checked here.
func NewHyperbezParams(a, b, c, d float64) HyperbezParams {
	denom := 2 / (4*c - d*d)
	thA := (2*b*c - d*a) * denom
	thB := b*(d*denom) - a*(1+0.5*d*(d*denom))/c
	return HyperbezParams{A: a, B: b, C: c, D: d, thA: thA, thB: thB}
}

// Theta is the tangent angle at t in [0,1]. Theta(0) == 0 always.
func (p HyperbezParams) Theta(t float64) float64 {
	return (p.thA*t+p.thB)/math.Sqrt(p.C*t*t+p.D*t+1) - p.thB
}

// position integrates (cos theta(u), sin theta(u)) over [t0,t1] with
// order-32 Gauss-Legendre quadrature, the higher-accuracy order this
// primitive uses for direct position evaluation.
func position(p HyperbezParams, t0, t1 float64) geom.Vec2 {
	return Integrate(p.Theta, t0, t1, 32)
}
