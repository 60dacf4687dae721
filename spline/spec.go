package spline

import (
	"errors"
	"fmt"
	"math"

	"github.com/npillmayer/schuko/gconf"

	"github.com/curvelab/hyperspline/geom"
	"github.com/curvelab/hyperspline/hyperbez"
)

// Sentinel errors for SplineSpec.Solve, following jhobby's
// ValidateForSolve taxonomy (ErrNilPath, ErrTooFewKnots, ErrInvalidKnot,
// ErrDegenerateSegment, ErrCycleHasDuplicateTerminalKnot).
var (
	ErrNotStartedWithMoveTo          = errors.New("spline: first element must be MoveTo")
	ErrTooFewElements                = errors.New("spline: too few elements to close a cycle")
	ErrInvalidPoint                  = errors.New("spline: element has a NaN or infinite coordinate")
	ErrDegenerateElement             = errors.New("spline: consecutive elements collapse to the same point")
	ErrCycleHasDuplicateTerminalKnot = errors.New("spline: closed spec must not repeat its first point as its last")
)

// SplineSpec owns a declarative element list and the solver's cached
// state. Append elements with MoveTo/LineTo/SplineTo/Close, then call
// Solve.
type SplineSpec struct {
	elements []Element
	isClosed bool

	ths      []float64
	dths     []float64
	segments []Segment
	dirty    bool
}

// NewSplineSpec returns an empty spec, ready for MoveTo.
func NewSplineSpec() *SplineSpec {
	return &SplineSpec{dirty: true}
}

// MoveTo must be the first element appended to an empty spec.
func (sp *SplineSpec) MoveTo(p geom.Point) {
	if len(sp.elements) != 0 {
		panic("spline: MoveTo must be the spec's first element")
	}
	sp.elements = append(sp.elements, MoveToEl(p))
	sp.dirty = true
}

// LineTo appends a straight leg to p.
func (sp *SplineSpec) LineTo(p geom.Point, smooth bool) {
	if len(sp.elements) == 0 {
		panic("spline: cannot append LineTo before MoveTo")
	}
	sp.elements = append(sp.elements, LineToEl(p, smooth))
	sp.dirty = true
}

// SplineTo appends a hyperbezier leg to p3, with optional pinned control
// points p1/p2 (nil for auto).
func (sp *SplineSpec) SplineTo(p1, p2 *geom.Point, p3 geom.Point, smooth bool) {
	if len(sp.elements) == 0 {
		panic("spline: cannot append SplineTo before MoveTo")
	}
	sp.elements = append(sp.elements, SplineToEl(p1, p2, p3, smooth))
	sp.dirty = true
}

// Close marks the spec as a closed path, joining the last element's
// endpoint back to the first.
func (sp *SplineSpec) Close() {
	if len(sp.elements) < 2 {
		panic("spline: cannot close a spec with fewer than 2 elements")
	}
	sp.isClosed = true
	sp.dirty = true
}

// IsClosed reports whether the spec is a closed path.
func (sp *SplineSpec) IsClosed() bool { return sp.isClosed }

// Elements returns the current element list.
func (sp *SplineSpec) Elements() []Element { return sp.elements }

// ElementsMut returns a pointer to the element slice for in-place
// rewriting, marking the spec dirty -- callers are expected to mutate
// through it and then call Solve again.
func (sp *SplineSpec) ElementsMut() *[]Element {
	sp.dirty = true
	return &sp.elements
}

// Segments returns the current solved segment vector. The second
// return value is false if the spec is dirty (not yet, or no longer,
// solved).
func (sp *SplineSpec) Segments() ([]Segment, bool) {
	if sp.dirty {
		return nil, false
	}
	return sp.segments, true
}

func (sp *SplineSpec) validate() error {
	n := len(sp.elements)
	if n == 0 {
		return nil
	}
	if sp.elements[0].Kind != KindMoveTo {
		return ErrNotStartedWithMoveTo
	}
	if sp.isClosed && n < 3 {
		return fmt.Errorf("%w: closed spec needs at least 3 elements, got %d", ErrTooFewElements, n)
	}
	for i, el := range sp.elements {
		x, y := el.P3.X(), el.P3.Y()
		if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
			return fmt.Errorf("%w at element %d", ErrInvalidPoint, i)
		}
	}
	for i := 1; i < n; i++ {
		if sp.elements[i].P3.Equal(sp.elements[i-1].P3) {
			return fmt.Errorf("%w between elements %d and %d", ErrDegenerateElement, i-1, i)
		}
	}
	if sp.isClosed && sp.elements[n-1].P3.Equal(sp.elements[0].P3) {
		return ErrCycleHasDuplicateTerminalKnot
	}
	return nil
}

// Solve rebuilds the solver state if the spec is dirty, then returns a
// Spline view over the current segment vector. Idempotent while the
// spec is not dirty: calling Solve twice without an intervening
// mutation returns segments identical to the first call.
func (sp *SplineSpec) Solve() (*Spline, error) {
	if sp.dirty {
		if err := sp.validate(); err != nil {
			return nil, err
		}
		sp.segments = sp.initialSegs()
		sp.ths = sp.initialThs()
		sp.dths = make([]float64, len(sp.ths))
		sp.updateSegs()
		const outerIters = 10
		for i := 0; i < outerIters; i++ {
			sp.iterate(i)
			sp.adjustTensions(i)
			sp.updateSegs()
		}
		sp.dirty = false
		if gconf.IsSet("tracingchoices") {
			tracer().Infof("solved spline: %d elements, %d segments, closed=%v",
				len(sp.elements), len(sp.segments), sp.isClosed)
		}
	}
	return &Spline{segments: sp.segments, isClosed: sp.isClosed}, nil
}

// MustSolve is Solve, panicking on error.
func (sp *SplineSpec) MustSolve() *Spline {
	s, err := sp.Solve()
	if err != nil {
		panic(err)
	}
	return s
}

// --- modular indexing over elements, ignoring the MoveTo at index 0 ---

func (sp *SplineSpec) prevIx(i int) int {
	if i == 1 {
		return len(sp.elements) - 1
	}
	return i - 1
}

func (sp *SplineSpec) nextIx(i int) int {
	if i == len(sp.elements)-1 {
		return 1
	}
	return i + 1
}

// prevEl returns the element immediately preceding element i, gated by
// smoothness and path closure: the predecessor is only meaningful if
// it declares its own joint smooth, and (for the wrap-around case) only
// if the path is actually closed.
func (sp *SplineSpec) prevEl(i int) *Element {
	el := &sp.elements[sp.prevIx(i)]
	if (i > 1 || sp.isClosed) && el.IsSmooth() {
		return el
	}
	return nil
}

// nextEl is the symmetric counterpart of prevEl, gated on element i's
// own smoothness.
func (sp *SplineSpec) nextEl(i int) *Element {
	if (i < len(sp.elements)-1 || sp.isClosed) && sp.elements[i].IsSmooth() {
		return &sp.elements[sp.nextIx(i)]
	}
	return nil
}

// chord is the world-space chord vector of the segment ending at
// element elementIx.
func (sp *SplineSpec) chord(elementIx int) geom.Vec2 {
	seg := sp.segments[elementIx-1]
	return seg.P3.Sub(seg.P0)
}

// initialSegs builds the initial segment vector: straight lines for
// LineTo and fully-auto SplineTo elements, and fully-solved hyperbeziers
// for SplineTo elements with both control points pinned.
func (sp *SplineSpec) initialSegs() []Segment {
	if len(sp.elements) <= 1 {
		return nil
	}
	segs := make([]Segment, 0, len(sp.elements)-1)
	p0 := sp.elements[0].Endpoint()
	for _, el := range sp.elements[1:] {
		p3 := el.Endpoint()
		var seg Segment
		if el.Kind == KindSplineTo && el.P1 != nil && el.P2 != nil {
			a := geom.SimilarityTo(p0, p3)
			aInv := a.Invert()
			v0 := geom.Vec2(aInv.Apply(*el.P1))
			v1 := geom.P(1, 0).Sub(aInv.Apply(*el.P2))
			th0, bias0 := hyperbez.ParamsForV(v0)
			th1, bias1 := hyperbez.ParamsForV(v1)
			hb := hyperbez.SolveForTheta(hyperbez.ThetaParams{
				Th0: -th0, Bias0: bias0, Th1: th1, Bias1: bias1,
			})
			seg = makeSegment(p0, el.P1, el.P2, p3, th0, -th1, hb)
		} else {
			seg = lineSegment(p0, p3)
		}
		segs = append(segs, seg)
		p0 = p3
	}
	return segs
}

// initialThs allocates one free absolute tangent angle for every
// auto/auto smooth joint, seeded at the bisector of the two adjacent
// chord directions.
func (sp *SplineSpec) initialThs() []float64 {
	var ths []float64
	for i := 1; i < len(sp.elements); i++ {
		prev := sp.prevEl(i)
		if sp.elements[i].IsAutoP1() && prev != nil && prev.IsAutoP2() {
			d0 := sp.chord(sp.prevIx(i))
			d1 := sp.chord(i)
			th0 := d0.Atan2()
			th1 := d1.Atan2()
			bend := hyperbez.ModTau(th1 - th0)
			ths = append(ths, hyperbez.ModTau(th0+0.5*bend))
		}
	}
	return ths
}

// updateSegs rebuilds every not-fully-pinned SplineTo segment from the
// current free-theta and bias state.
func (sp *SplineSpec) updateSegs() {
	nSeg := len(sp.segments)
	thIx := 0
	for i := 0; i < nSeg; i++ {
		el := sp.elements[i+1]
		if el.Kind != KindSplineTo {
			continue
		}
		p1, p2 := el.P1, el.P2
		if p1 != nil && p2 != nil {
			continue
		}
		p0 := sp.segments[i].P0
		p3 := el.P3
		v := p3.Sub(p0)
		aInv := geom.SimilarityTo(p0, p3).Invert()
		chordTh := v.Atan2()

		var th0, bias0 float64
		haveTh0, haveBias0 := false, false
		if p1 != nil {
			v0 := geom.Vec2(aInv.Apply(*p1))
			th0, bias0 = hyperbez.ParamsForV(v0)
			haveTh0, haveBias0 = true, true
		} else if prev := sp.prevEl(i + 1); prev != nil {
			switch {
			case prev.Kind == KindSplineTo && prev.P2 == nil:
				th0 = hyperbez.ModTau(sp.ths[thIx] - chordTh)
				thIx = (thIx + 1) % len(sp.ths)
				haveTh0 = true
			case prev.Kind == KindSplineTo && prev.P2 != nil:
				prevChTh := p0.Sub(*prev.P2).Atan2()
				th0 = hyperbez.ModTau(prevChTh - chordTh)
				haveTh0 = true
				bias0 = sp.segments[i].Hb.Bias0
				haveBias0 = true
			case prev.Kind == KindLineTo:
				prevSeg := sp.segments[(i+nSeg-1)%nSeg]
				prevChTh := prevSeg.chord().Atan2()
				th0 = hyperbez.ModTau(prevChTh - chordTh)
				haveTh0 = true
				bias0 = 0
				haveBias0 = true
			}
		}

		var th1, bias1 float64
		haveTh1, haveBias1 := false, false
		if p2 != nil {
			v1 := geom.P(1, 0).Sub(aInv.Apply(*p2))
			rawTh1, rawBias1 := hyperbez.ParamsForV(v1)
			th1 = -rawTh1
			bias1 = rawBias1
			haveTh1, haveBias1 = true, true
		} else if next := sp.nextEl(i + 1); next != nil {
			switch {
			case next.Kind == KindSplineTo && next.P1 == nil:
				th1 = hyperbez.ModTau(chordTh - sp.ths[thIx])
				haveTh1 = true
			case next.Kind == KindSplineTo && next.P1 != nil:
				nextChTh := next.P1.Sub(p3).Atan2()
				th1 = hyperbez.ModTau(chordTh - nextChTh)
				haveTh1 = true
				bias1 = sp.segments[i].Hb.Bias1
				haveBias1 = true
			case next.Kind == KindLineTo:
				nextChTh := next.P3.Sub(p3).Atan2()
				th1 = hyperbez.ModTau(chordTh - nextChTh)
				haveTh1 = true
				bias1 = 0
				haveBias1 = true
			}
		}

		var th0f, th1f float64
		switch {
		case haveTh0 && haveTh1:
			th0f, th1f = th0, th1
		case haveTh0 && !haveTh1:
			th0f = th0
			th1f = endpointTangent(th0)
		case !haveTh0 && haveTh1:
			th0f = endpointTangent(th1)
			th1f = th1
		default:
			th0f, th1f = 0, 0
		}
		if !haveBias0 {
			bias0 = biasForTheta(th0f)
		}
		if !haveBias1 {
			bias1 = biasForTheta(th1f)
		}

		hb := hyperbez.SolveForTheta(hyperbez.ThetaParams{
			Th0: -th0f, Bias0: bias0, Th1: -th1f, Bias1: bias1,
		})
		sp.segments[i] = makeSegment(p0, p1, p2, p3, th0f, th1f, hb)
	}
}

// iterate adjusts the free tangent angles to reduce curvature mismatch
// at auto/auto smooth joints, by one Newton step against a numerical
// derivative, under-relaxed by a tanh schedule. Returns the total
// absolute curvature-mismatch error before the update, for diagnostics.
func (sp *SplineSpec) iterate(iterIx int) float64 {
	const epsilon = 1e-3
	thIx := 0
	absErr := 0.0
	for i := 1; i < len(sp.elements); i++ {
		prev := sp.prevEl(i)
		if !(sp.elements[i].IsAutoP1() && prev != nil && prev.IsAutoP2()) {
			continue
		}
		prevSeg := sp.segments[sp.prevIx(i)-1]
		seg := sp.segments[i-1]
		prevCh := prevSeg.chord().Hypot()
		thisCh := seg.chord().Hypot()
		kScale := math.Sqrt(prevCh * thisCh)

		kErr := math.Atan(prevSeg.K1*kScale) - math.Atan(seg.K0*kScale)
		absErr += math.Abs(kErr)

		th1p := prevSeg.Th1 + epsilon
		seg0p := hyperbez.SolveForTheta(hyperbez.ThetaParams{
			Th0: -prevSeg.Th0, Bias0: prevSeg.Hb.Bias0,
			Th1: -th1p, Bias1: biasForTheta(th1p),
		})
		k0p := seg0p.Compute().K1 / prevCh

		th0p := seg.Th0 - epsilon
		seg1p := hyperbez.SolveForTheta(hyperbez.ThetaParams{
			Th0: -th0p, Bias0: biasForTheta(th0p),
			Th1: -seg.Th1, Bias1: seg.Hb.Bias1,
		})
		k1p := seg1p.Compute().K0 / thisCh

		kErrP := math.Atan(k0p*kScale) - math.Atan(k1p*kScale)
		derr := (kErrP - kErr) / epsilon
		sp.dths[thIx] = kErr / derr
		thIx++
	}
	scale := math.Tanh(0.25 * (float64(iterIx) + 1.0))
	for idx := range sp.ths {
		sp.ths[idx] += scale * sp.dths[idx]
	}
	tracer().Debugf("iterate(%d): abs_err=%v scale=%v dths=%v", iterIx, absErr, scale, sp.dths)
	return absErr
}

// adjustTensions adjusts free tensions (bias) on sides adjacent to a
// hard-pinned opposite control point, so that endpoint curvature better
// matches the pinned neighbor, again under the tanh-relaxed schedule.
func (sp *SplineSpec) adjustTensions(iterIx int) {
	const minBias = -0.9
	scale := math.Tanh(0.25 * (float64(iterIx) + 1.0))
	for i := 1; i < len(sp.elements); i++ {
		prev := sp.prevEl(i)
		if sp.elements[i].IsAutoP1() && prev != nil && prev.IsGivenP2() {
			prevSeg := sp.segments[sp.prevIx(i)-1]
			seg := sp.segments[i-1]
			thisCh := seg.chord().Hypot()
			target := hyperbez.ComputeKInv(prevSeg.K1 * thisCh / (seg.Hb.K0 * seg.ch))
			if target < minBias {
				target = minBias
			}
			cur := sp.segments[i-1].Hb.Bias0
			sp.segments[i-1].Hb.Bias0 = cur + scale*(target-cur)
		}
		next := sp.nextEl(i)
		if sp.elements[i].IsAutoP2() && next != nil && next.IsGivenP1() {
			nextSeg := sp.segments[sp.nextIx(i)-1]
			seg := sp.segments[i-1]
			thisCh := seg.chord().Hypot()
			target := hyperbez.ComputeKInv(nextSeg.K0 * thisCh / (seg.Hb.K1 * seg.ch))
			if target < minBias {
				target = minBias
			}
			cur := sp.segments[i-1].Hb.Bias1
			sp.segments[i-1].Hb.Bias1 = cur + scale*(target-cur)
		}
	}
}
