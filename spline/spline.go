package spline

import "github.com/curvelab/hyperspline/geom"

// Spline is an immutable, solved view over a SplineSpec's segment
// vector: it no longer tracks the declarative elements, free tangent
// angles or tensions that produced it.
type Spline struct {
	segments []Segment
	isClosed bool
}

// Segments returns the solved segment vector, in order.
func (s *Spline) Segments() []Segment { return s.segments }

// IsClosed reports whether s is a closed path.
func (s *Spline) IsClosed() bool { return s.isClosed }

// IntoOwned returns a defensive copy of s's segment vector, safe to
// retain across a later SplineSpec.Solve call.
func (s *Spline) IntoOwned() []Segment {
	out := make([]Segment, len(s.segments))
	copy(out, s.segments)
	return out
}

// Render flattens s into a fresh Bezier path: a thin wrapper over
// RenderExtend applied to an empty path.
func (s *Spline) Render() geom.Path {
	var p geom.Path
	s.RenderExtend(&p)
	return p
}

// RenderExtend appends s's move-to, rendered segments and (if s is
// closed) its close-path onto path. The move-to is emitted whatever path
// already holds, so repeated calls append a sequence of subpaths, each
// starting with its own move-to. A spline with no segments appends
// nothing.
func (s *Spline) RenderExtend(path *geom.Path) {
	if len(s.segments) == 0 {
		return
	}
	path.MoveTo(s.segments[0].P0)
	for _, seg := range s.segments {
		seg.Render(path)
	}
	if s.isClosed {
		path.ClosePath()
	}
}
