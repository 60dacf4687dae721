/*
Package hyperbez implements the hyperbezier curve family: planar curves
whose tangent angle is a closed-form function of arc length, together
with the quadrature, root-finding and rendering machinery that the
spline solver in package spline builds on.

Two related representations of the curve exist, mirroring two
generations of the same math found in the source this package is
grounded on:

  - ThetaHyperbez, parametrized by (k0, bias0, k1, bias1): the form the
    spline solver iterates on. Its tangent angle is a sum of two
    per-side basis-integral contributions (integrateBasis), which lets
    each side independently be cubic-polynomial (Spiro-like, bias <= 1),
    Euler (bias == 1) or hyperbolic/high-tension (bias > 1).
  - HyperbezParams/Hyperbezier, parametrized by four real coefficients
    (a, b, c, d): a single closed-form rational tangent angle, used for
    direct construction from endpoints, evaluation, derivative
    sampling and subsegment extraction.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package hyperbez

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'hyperbez'
func tracer() tracing.Trace {
	return tracing.Select("hyperbez")
}
