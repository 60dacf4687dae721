package hyperbez

import (
	"math"

	"github.com/curvelab/hyperspline/geom"
)

// RenderSubdivisions is the heuristic subdivision count: more for curves
// that turn more sharply at either end.
func (h ThetaHyperbez) RenderSubdivisions() int {
	return 2 + int(math.Floor(math.Abs(h.K0)+math.Abs(h.K1)))
}

// calcRenderT is the tangent-length factor used at each end of the
// rendered cubic sequence: sqrt(2-bias)/3 on the hyperbolic side
// (bias >= 1), a flat 1/3 for cubic-polynomial/Euler biases.
func calcRenderT(bias float64) float64 {
	if bias >= 1 {
		return math.Sqrt(2-bias) * (1.0 / 3.0)
	}
	return 1.0 / 3.0
}

// RenderElements renders h to a sequence of cubic Bezier elements in
// canonical unit-chord space: the curve runs from (0,0) to (1,0). The
// first element is a MoveTo((0,0)); callers that already start their
// path there (e.g. Segment) drop it.
//
// The walk reparametrizes arclength with a cubic blend between the two
// endpoint tangent-length factors (t1 at s=0, t2 at s=1) so that high-
// tension ends get proportionally shorter control arms, then maps every
// raw integral-space point through the inverse of the similarity that
// carries the curve's own chord onto (0,0)->(1,0).
func (h ThetaHyperbez) RenderElements(n int) []geom.PathEl {
	const order = 24
	v := h.integrate(0, 1, order)
	vInv := v.Recip()

	t1 := calcRenderT(h.Bias0)
	t2 := 1 - calcRenderT(h.Bias1)
	step := 1.0 / float64(n)

	toChordSpace := func(raw geom.Vec2) geom.Point {
		return geom.Point(raw.Mul(vInv))
	}

	els := make([]geom.PathEl, 0, n+1)
	els = append(els, geom.PathEl{Kind: geom.ElMoveTo, To: geom.Origin})

	lastP := geom.Origin
	lastV := geom.FromAngle(h.ComputeTheta(0)).Scaled(step * t1)
	for i := 1; i <= n; i++ {
		u := float64(i) * step
		um := 1 - u
		t := 3*u*um*(um*t1+u*t2) + u*u*u
		p := geom.Point(h.integrate(0, t, order))
		p1 := lastP.Add(lastV)
		dt := um*um*t1 + 2*u*um*(t2-t1) + u*u*(1-t2)
		v := geom.FromAngle(h.ComputeTheta(t)).Scaled(step * dt)
		p2 := p.Add(v.Neg())

		els = append(els, geom.PathEl{
			Kind: geom.ElCurveTo,
			C1:   toChordSpace(geom.Vec2(p1)),
			C2:   toChordSpace(geom.Vec2(p2)),
			To:   toChordSpace(geom.Vec2(p)),
		})
		lastV = v
		lastP = p
	}
	return els
}

// Render renders h to a path in canonical unit-chord space, the
// slice-returning convenience over RenderElements.
func (h ThetaHyperbez) Render(n int) geom.Path {
	return geom.Path(h.RenderElements(n))
}
