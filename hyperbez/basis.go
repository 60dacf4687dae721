package hyperbez

import "math"

// maxA clamps the cusp at bias == 2 (where the hyperbolic branch's
// denominator 1-a would hit zero). Behavior strictly at the cusp is
// undefined; this is the documented "approximate, do not rely on exact
// values" boundary.
const maxA = 1.0 - 1e-4

// integrateBasis is the analytic closed form of the basis integral,
// normalized so that integrateBasis(bias, 1) - integrateBasis(bias, 0) == 1.
func integrateBasis(bias, s float64) float64 {
	switch {
	case bias <= 1:
		iy0 := 4*s*s*s - 3*s*s*s*s
		iy1 := s * s
		return iy0 + bias*(iy1-iy0)
	case bias < 1.0002:
		// Second-order approximation, numerically robust near the
		// Euler/hyperbolic boundary where the general formula below
		// suffers catastrophic cancellation.
		b := (bias - 1) * (4.0 / 3.0)
		return (1-b)*s*s + b*s*s*s
	default:
		a := math.Min(bias-1, maxA)
		norm := 1/(1-a) + math.Log(1-a) - 1
		return (1/(1-a*s) + math.Log(1-a*s) - 1) / norm
	}
}

// computeK is the endpoint curvature magnitude for a given bias.
func computeK(bias float64) float64 {
	switch {
	case bias <= 1:
		return 2 * bias
	case bias < 1.0007:
		a := bias - 1
		return 2 + 4.0/3.0*a + 11.0/9.0*a*a
	default:
		a := math.Min(bias-1, maxA)
		sr := (a * a) / (1/(1-a) + math.Log(1-a) - 1)
		return sr / ((1 - a) * (1 - a))
	}
}

// ComputeKInv inverts computeK: given an endpoint curvature magnitude,
// recovers the bias that produces it.
func ComputeKInv(k float64) float64 {
	if k <= 2 {
		return k / 2
	}
	lo, hi := 2-2/k, 2-1/k
	for i := 0; i < 20; i++ {
		mid := 0.5 * (lo + hi)
		if computeK(mid) > k {
			hi = mid
		} else {
			lo = mid
		}
	}
	return 0.5 * (lo + hi)
}
