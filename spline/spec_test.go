package spline

import (
	"math"
	"testing"

	"github.com/curvelab/hyperspline/geom"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestEmptySpecSolvesToEmptySpline(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	sp := NewSplineSpec()
	sp.MoveTo(geom.P(0, 0))
	s, err := sp.Solve()
	assert.NoError(t, err)
	assert.Empty(t, s.Segments())
}

func TestSolveIsIdempotentWithoutMutation(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	sp := NewSplineSpec()
	sp.MoveTo(geom.P(0, 0))
	sp.SplineTo(nil, nil, geom.P(100, 0), true)
	sp.SplineTo(nil, nil, geom.P(200, 100), true)
	sp.LineTo(geom.P(300, 100), false)

	s1, err := sp.Solve()
	assert.NoError(t, err)
	segs1 := s1.IntoOwned()

	s2, err := sp.Solve()
	assert.NoError(t, err)
	segs2 := s2.IntoOwned()

	assert.Equal(t, len(segs1), len(segs2))
	for i := range segs1 {
		assert.Equal(t, segs1[i], segs2[i])
	}
}

func TestRenderStartsAndEndsAtPinnedEndpoints(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	sp := NewSplineSpec()
	p0 := geom.P(10, 20)
	p3 := geom.P(400, -30)
	sp.MoveTo(p0)
	sp.SplineTo(nil, nil, geom.P(150, 80), true)
	sp.SplineTo(nil, nil, p3, false)

	s, err := sp.Solve()
	assert.NoError(t, err)
	path := s.Render()
	assert.NotEmpty(t, path)
	assert.Equal(t, geom.ElMoveTo, path[0].Kind)
	assert.True(t, path[0].To.Equal(p0))
	last := path[len(path)-1]
	assert.True(t, last.To.Equal(p3))
}

func TestClosedSpecProducesClosedSpline(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	sp := NewSplineSpec()
	sp.MoveTo(geom.P(0, 0))
	sp.SplineTo(nil, nil, geom.P(100, 0), true)
	sp.SplineTo(nil, nil, geom.P(100, 100), true)
	sp.SplineTo(nil, nil, geom.P(0, 100), true)
	sp.Close()

	s, err := sp.Solve()
	assert.NoError(t, err)
	assert.True(t, s.IsClosed())
	assert.Equal(t, 4, len(s.Segments()))
}

func TestSmoothJointCurvatureContinuity(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	sp := NewSplineSpec()
	sp.MoveTo(geom.P(0, 0))
	sp.SplineTo(nil, nil, geom.P(100, 0), true)
	sp.SplineTo(nil, nil, geom.P(200, 60), true)
	sp.SplineTo(nil, nil, geom.P(320, 40), false)

	s, err := sp.Solve()
	assert.NoError(t, err)
	segs := s.Segments()
	for i := 0; i+1 < len(segs); i++ {
		if !sp.elements[i+1].IsSmooth() {
			continue
		}
		assert.InDelta(t, segs[i].K1, segs[i+1].K0, 5e-2,
			"joint between segment %d and %d", i, i+1)
	}
}

func TestPinnedControlPointsSurviveSolve(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	sp := NewSplineSpec()
	p1 := geom.P(40, 90)
	p2 := geom.P(150, 10)
	sp.MoveTo(geom.P(0, 0))
	sp.SplineTo(&p1, &p2, geom.P(200, 0), false)

	s, err := sp.Solve()
	assert.NoError(t, err)
	segs := s.Segments()
	assert.Len(t, segs, 1)
	assert.True(t, segs[0].P1.Equal(p1))
	assert.True(t, segs[0].P2.Equal(p2))
}

func TestValidateRejectsMissingInitialMoveTo(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	sp := &SplineSpec{elements: []Element{LineToEl(geom.P(1, 1), false)}, dirty: true}
	_, err := sp.Solve()
	assert.ErrorIs(t, err, ErrNotStartedWithMoveTo)
}

func TestValidateRejectsDegenerateElement(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	sp := NewSplineSpec()
	sp.MoveTo(geom.P(5, 5))
	sp.LineTo(geom.P(5, 5), false)
	_, err := sp.Solve()
	assert.ErrorIs(t, err, ErrDegenerateElement)
}

func TestValidateRejectsInvalidPoint(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	sp := NewSplineSpec()
	sp.MoveTo(geom.P(0, 0))
	sp.LineTo(geom.P(math.NaN(), 1), false)
	_, err := sp.Solve()
	assert.ErrorIs(t, err, ErrInvalidPoint)
}

func TestMustSolvePanicsOnInvalidSpec(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	sp := &SplineSpec{elements: []Element{LineToEl(geom.P(1, 1), false)}, dirty: true}
	assert.Panics(t, func() { sp.MustSolve() })
}

// E1: a single auto spline_to between two points is an Euler-spiral
// segment (bias0 = bias1 = 1) with exact endpoints.
func TestScenarioE1SingleAutoSplineIsEuler(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	sp := NewSplineSpec()
	p0 := geom.P(100, 100)
	p1 := geom.P(300, 200)
	sp.MoveTo(p0)
	sp.SplineTo(nil, nil, p1, true)

	s, err := sp.Solve()
	assert.NoError(t, err)
	segs := s.Segments()
	assert.Len(t, segs, 1)
	assert.True(t, segs[0].P0.Equal(p0))
	assert.True(t, segs[0].P3.Equal(p1))
	assert.InDelta(t, 1.0, segs[0].Hb.Bias0, 1e-6)
	assert.InDelta(t, 1.0, segs[0].Hb.Bias1, 1e-6)
}

// E2: a single line_to renders as exactly one LineTo element.
func TestScenarioE2SingleLineRendersOneLineTo(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	sp := NewSplineSpec()
	sp.MoveTo(geom.P(0, 0))
	sp.LineTo(geom.P(100, 0), false)

	s, err := sp.Solve()
	assert.NoError(t, err)
	segs := s.Segments()
	assert.Len(t, segs, 1)
	assert.True(t, segs[0].IsLine())

	path := s.Render()
	assert.Len(t, path, 2)
	assert.Equal(t, geom.ElLineTo, path[1].Kind)
	assert.True(t, path[1].To.Equal(geom.P(100, 0)))
}

// E3: a closed triangle of line legs has three segments (the closing
// leg included) and reports itself closed.
func TestScenarioE3ClosedTriangle(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	sp := NewSplineSpec()
	sp.MoveTo(geom.P(0, 0))
	sp.LineTo(geom.P(100, 0), true)
	sp.LineTo(geom.P(100, 100), true)
	sp.Close()

	s, err := sp.Solve()
	assert.NoError(t, err)
	assert.True(t, s.IsClosed())
	assert.Len(t, s.Segments(), 3)
}

// E5: a three-point auto smooth spline converges its middle joint's
// curvature error below the property-8 tolerance.
func TestScenarioE5ThreePointAutoSplineConverges(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	sp := NewSplineSpec()
	sp.MoveTo(geom.P(0, 0))
	sp.SplineTo(nil, nil, geom.P(100, 50), true)
	sp.SplineTo(nil, nil, geom.P(200, 0), false)

	s, err := sp.Solve()
	assert.NoError(t, err)
	segs := s.Segments()
	assert.Len(t, segs, 2)
	kScale := math.Sqrt(segs[0].chord().Hypot() * segs[1].chord().Hypot())
	errAt := math.Atan(segs[0].K1*kScale) - math.Atan(segs[1].K0*kScale)
	assert.Less(t, math.Abs(errAt), 1e-2)
}

// Property 6: a pinned-p1 / auto-p2 segment renders to under 64 Bezier
// elements.
func TestRenderElementBoundUnder64(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	sp := NewSplineSpec()
	p1 := geom.P(20, 40)
	sp.MoveTo(geom.P(0, 0))
	sp.SplineTo(&p1, nil, geom.P(100, 0), true)

	s, err := sp.Solve()
	assert.NoError(t, err)
	path := s.Render()
	assert.Less(t, len(path), 64)
}

// E2-style scenario: an open path of three line legs solves to line
// segments only, regardless of smoothness flags.
func TestAllLineSpecRendersAsPolyline(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	sp := NewSplineSpec()
	sp.MoveTo(geom.P(0, 0))
	sp.LineTo(geom.P(10, 0), true)
	sp.LineTo(geom.P(10, 10), true)
	sp.LineTo(geom.P(0, 10), false)

	s, err := sp.Solve()
	assert.NoError(t, err)
	for _, seg := range s.Segments() {
		assert.True(t, seg.IsLine())
	}
}
