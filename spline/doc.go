/*
Package spline implements the interpolating-spline solver: given a
sequence of declarative path elements (move/line/spline, with optional
hard-pinned or auto control points, open or closed), it iteratively
determines the free tangent angles and tension biases that make the
assembled curve G²-continuous at every smooth joint, and emits one
hyperbezier segment (package hyperbez) per element.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package spline

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'spline'
func tracer() tracing.Trace {
	return tracing.Select("spline")
}
