package spline

import (
	"github.com/curvelab/hyperspline/geom"
	"github.com/curvelab/hyperspline/hyperbez"
)

// Segment packages one hyperbezier leg together with its world-space
// endpoints and control points, and cached tangent angles and endpoint
// curvatures.
type Segment struct {
	P0, P1, P2, P3 geom.Point
	Th0, Th1       float64
	K0, K1         float64
	Hb             hyperbez.ThetaHyperbez

	ch float64 // canonical chord length (hb.Compute().Chord), cached
}

// chord is the world-space chord vector p3 - p0.
func (s Segment) chord() geom.Vec2 { return s.P3.Sub(s.P0) }

// IsLine reports whether s is a degenerate straight-line segment.
func (s Segment) IsLine() bool {
	return s.Hb.K0 == 0 && s.Hb.K1 == 0
}

// lineSegment builds a degenerate line segment from p0 to p3.
func lineSegment(p0, p3 geom.Point) Segment {
	return Segment{
		P0: p0, P1: p0, P2: p3, P3: p3,
		Hb: hyperbez.ThetaHyperbez{K0: 0, Bias0: 0, K1: 0, Bias1: 0},
	}
}

// makeSegment builds a concrete hyperbezier segment. p1/p2 may be nil,
// in which case they are filled in from hb via VForParams; th0/th1 are
// the tangent angles (relative to chord) used to build hb.
func makeSegment(p0 geom.Point, p1, p2 *geom.Point, p3 geom.Point, th0, th1 float64, hb hyperbez.ThetaHyperbez) Segment {
	r := hb.Compute()
	v := p3.Sub(p0)
	a := geom.SimilarityTo(p0, p3)

	var worldP1, worldP2 geom.Point
	if p1 != nil {
		worldP1 = *p1
	} else {
		worldP1 = a.Apply(geom.Point(hyperbez.VForParams(th0, hb.Bias0)))
	}
	if p2 != nil {
		worldP2 = *p2
	} else {
		arm := hyperbez.VForParams(-th1, hb.Bias1)
		worldP2 = a.Apply(geom.P(1, 0).Sub(arm))
	}

	kScale := 1 / v.Hypot()
	return Segment{
		P0: p0, P1: worldP1, P2: worldP2, P3: p3,
		Th0: th0, Th1: th1,
		K0: r.K0 * kScale, K1: r.K1 * kScale,
		Hb: hb, ch: r.Chord,
	}
}

// RenderElements renders s into world-space Bezier path elements,
// dropping the initial move-to (the caller is assumed to already be
// positioned at P0).
func (s Segment) RenderElements() []geom.PathEl {
	if s.IsLine() {
		return []geom.PathEl{{Kind: geom.ElLineTo, To: s.P3}}
	}
	a := geom.SimilarityTo(s.P0, s.P3)
	raw := s.Hb.RenderElements(s.Hb.RenderSubdivisions())
	out := make([]geom.PathEl, 0, len(raw)-1)
	for _, el := range raw[1:] {
		out = append(out, el.Transform(a))
	}
	return out
}

// Render appends s's rendered elements to path.
func (s Segment) Render(path *geom.Path) {
	path.Extend(s.RenderElements())
}

// ToBezier is a convenience that renders s as a standalone path,
// starting with a move-to P0.
func (s Segment) ToBezier() geom.Path {
	var p geom.Path
	p.MoveTo(s.P0)
	s.Render(&p)
	return p
}
