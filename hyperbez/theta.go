package hyperbez

import (
	"math"

	"github.com/curvelab/hyperspline/geom"
)

// ThetaHyperbez is the (k0, bias0, k1, bias1) hyperbezier representation
// the spline solver builds and iterates on. k0/k1 are signed curvature
// contributions from each end; bias0/bias1 are tensions in roughly
// (-1, 2], where 1 is an Euler spiral endpoint, <1 gives cubic-polynomial
// (Spiro-like) curvature and >1 gives hyperbolic (high-tension) curvature.
type ThetaHyperbez struct {
	K0, Bias0, K1, Bias1 float64
}

// ThetaParams is the angle-relative-to-chord parametrization SolveForTheta
// consumes: same bias fields as ThetaHyperbez, but k0/k1 replaced by
// chord-relative tangent angles.
type ThetaParams struct {
	Th0, Bias0, Th1, Bias1 float64
}

// Result holds the endpoint tangent angles, chord length and endpoint
// curvatures recovered by ThetaHyperbez.Compute.
type Result struct {
	Th0, Th1, Chord float64
	K0, K1          float64
}

// ComputeTheta returns the tangent angle at arclength parameter s in [0,1],
// relative to an arbitrary overall rotation of the curve.
func (h ThetaHyperbez) ComputeTheta(s float64) float64 {
	return h.K1*integrateBasis(h.Bias1, s) - h.K0*integrateBasis(h.Bias0, 1-s)
}

func (h ThetaHyperbez) integrate(t0, t1 float64, order int) geom.Vec2 {
	return Integrate(h.ComputeTheta, t0, t1, order)
}

// Compute measures the endpoint tangent angles (relative to the chord),
// the chord length (assuming total arclength 1), and the endpoint
// curvatures in those same canonical units.
func (h ThetaHyperbez) Compute() Result {
	integral := h.integrate(0, 1, 24)
	thChord := integral.Atan2()
	chord := integral.Hypot()
	return Result{
		Th0:   thChord - h.ComputeTheta(0),
		Th1:   h.ComputeTheta(1) - thChord,
		Chord: chord,
		K0:    chord * h.K0 * computeK(h.Bias0),
		K1:    chord * h.K1 * computeK(h.Bias1),
	}
}

// SolveForTheta finds the (k0, k1) hyperbezier whose chord-relative
// tangent angles match p, holding bias0/bias1 fixed. Secant method on the
// shared curvature-balance parameter dth, capped at a fixed 10 iterations;
// terminates early once the mod_tau-normalized angle error drops below
// 1e-3. This mirrors the source's structure, including its comment that
// the sign convention feels inverted but "works out in the end" -- the
// negation lives in the callers that build ThetaParams, not here.
func SolveForTheta(p ThetaParams) ThetaHyperbez {
	const n = 10
	dth := 0.0
	haveLast := false
	var lastDth, lastErr float64
	for i := 0; i < n; i++ {
		cand := ThetaHyperbez{
			K0: p.Th0 + 0.5*dth, Bias0: p.Bias0,
			K1: p.Th1 - 0.5*dth, Bias1: p.Bias1,
		}
		if i == n-1 {
			return cand
		}
		res := cand.Compute()
		thErr := ModTau(p.Th0 - p.Th1 - (res.Th0 - res.Th1))
		if math.Abs(thErr) < 1e-3 {
			return cand
		}
		nextDth, nextErr := dth, thErr
		delta := -0.5
		if haveLast {
			delta = (nextDth - lastDth) / (nextErr - lastErr)
		}
		dth -= delta * thErr
		lastDth, lastErr, haveLast = nextDth, nextErr, true
	}
	panic("hyperbez: solveForTheta loop exited without returning")
}

// ParamsForV recovers (th, bias) for a Bezier control-point arm v, given
// relative to a unit chord running (0,0) -> (1,0). Calibrated so that
// Bezier parameters approximating a circular arc map to bias = 1.
func ParamsForV(v geom.Vec2) (th, bias float64) {
	th = v.Atan2()
	a := v.Hypot() * 1.5 * (math.Cos(th) + 1)
	if a < 1 {
		bias = 2 - a*a
	} else {
		bias = 1 + 2*math.Tanh(0.5*(1-a))
	}
	return th, bias
}

// VForParams is the inverse of ParamsForV, used to compute world-space
// auto control points from a solved (th, bias) pair.
func VForParams(th, bias float64) geom.Vec2 {
	var a float64
	if bias >= 1 {
		a = math.Sqrt(2 - bias)
	} else {
		a = 1 - 2*math.Atanh(0.5*(bias-1))
	}
	length := a / (1.5 * (math.Cos(th) + 1))
	return geom.FromAngle(th).Scaled(length)
}

// Solve recovers a ThetaHyperbez from two Bezier-style control points
// given relative to a unit chord running (0,0) -> (1,0).
func Solve(p1, p2 geom.Point) ThetaHyperbez {
	th0, bias0 := ParamsForV(geom.Vec2(p1))
	th1, bias1 := ParamsForV(geom.P(1, 0).Sub(p2))
	return SolveForTheta(ThetaParams{Th0: -th0, Bias0: bias0, Th1: th1, Bias1: bias1})
}
