package spline

import "github.com/curvelab/hyperspline/geom"

// ElementKind discriminates the declarative path step variants.
type ElementKind int

const (
	KindMoveTo ElementKind = iota
	KindLineTo
	KindSplineTo
)

// Element is a declarative path step. Optional control points are
// modeled as a tagged variant via a nil *geom.Point -- nil means "auto",
// a non-nil pointer means "pinned" -- rather than a sentinel value such
// as a NaN-valued point: null vs. present is semantic here, not merely
// the absence of a number.
//
// Only SplineTo ever carries P1/P2; MoveTo and LineTo leave them nil and
// store their single point in P3.
type Element struct {
	Kind   ElementKind
	P1, P2 *geom.Point
	P3     geom.Point
	Smooth bool
}

// MoveToEl builds a MoveTo element.
func MoveToEl(p geom.Point) Element {
	return Element{Kind: KindMoveTo, P3: p}
}

// LineToEl builds a LineTo element.
func LineToEl(p geom.Point, smooth bool) Element {
	return Element{Kind: KindLineTo, P3: p, Smooth: smooth}
}

// SplineToEl builds a SplineTo element. p1/p2 may be nil for "auto".
func SplineToEl(p1, p2 *geom.Point, p3 geom.Point, smooth bool) Element {
	return Element{Kind: KindSplineTo, P1: p1, P2: p2, P3: p3, Smooth: smooth}
}

// Endpoint is the element's on-curve terminal point.
func (e Element) Endpoint() geom.Point { return e.P3 }

// IsSmooth reports whether the joint at this element's endpoint must be
// G²-continuous with the next element.
func (e Element) IsSmooth() bool {
	switch e.Kind {
	case KindLineTo, KindSplineTo:
		return e.Smooth
	default:
		return false
	}
}

// IsAutoP1 reports whether this is a SplineTo with an auto incoming
// control point.
func (e Element) IsAutoP1() bool { return e.Kind == KindSplineTo && e.P1 == nil }

// IsAutoP2 reports whether this is a SplineTo with an auto outgoing
// control point.
func (e Element) IsAutoP2() bool { return e.Kind == KindSplineTo && e.P2 == nil }

// IsGivenP1 reports whether this is a SplineTo with a pinned incoming
// control point.
func (e Element) IsGivenP1() bool { return e.Kind == KindSplineTo && e.P1 != nil }

// IsGivenP2 reports whether this is a SplineTo with a pinned outgoing
// control point.
func (e Element) IsGivenP2() bool { return e.Kind == KindSplineTo && e.P2 != nil }
