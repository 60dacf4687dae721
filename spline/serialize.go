package spline

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/curvelab/hyperspline/geom"
)

// Element's wire format is a tagged union, one key per variant, with
// the variant's payload an externally-tagged tuple array -- the shape
// produced by serde's default encoding of a Rust enum whose variants
// carry positional fields (LineTo(Point, bool), SplineTo(Option<Point>,
// Option<Point>, Point, bool)). This is the one place in the module
// that reaches for encoding/json rather than a pack library: the wire
// shape is a handful of small, internal structs with no need for
// streaming, schema validation or non-JSON formats, so pulling in a
// heavier codec would add a dependency for no capability actually used.

type wirePoint [2]float64

func pointToWire(p geom.Point) wirePoint { return wirePoint{p.X(), p.Y()} }
func wireToPoint(w wirePoint) geom.Point { return geom.P(w[0], w[1]) }

var rawNull = []byte("null")

func isRawNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), rawNull)
}

type wireMoveTo struct {
	MoveTo wirePoint `json:"MoveTo"`
}

type wireLineTo struct {
	LineTo [2]interface{} `json:"LineTo"`
}

type wireSplineTo struct {
	SplineTo [4]interface{} `json:"SplineTo"`
}

// MarshalJSON encodes e as a single-key tagged object whose value is a
// tuple array, e.g. {"MoveTo":[1,2]},
// {"LineTo":[[1,2],true]} or
// {"SplineTo":[[1,2],null,[5,6],true]}.
func (e Element) MarshalJSON() ([]byte, error) {
	switch e.Kind {
	case KindMoveTo:
		return json.Marshal(wireMoveTo{MoveTo: pointToWire(e.P3)})
	case KindLineTo:
		return json.Marshal(wireLineTo{LineTo: [2]interface{}{pointToWire(e.P3), e.Smooth}})
	case KindSplineTo:
		var p1w, p2w *wirePoint
		if e.P1 != nil {
			w := pointToWire(*e.P1)
			p1w = &w
		}
		if e.P2 != nil {
			w := pointToWire(*e.P2)
			p2w = &w
		}
		return json.Marshal(wireSplineTo{
			SplineTo: [4]interface{}{p1w, p2w, pointToWire(e.P3), e.Smooth},
		})
	default:
		return nil, fmt.Errorf("spline: unknown element kind %d", e.Kind)
	}
}

// UnmarshalJSON decodes e from its tagged-object, tuple-array wire form.
func (e *Element) UnmarshalJSON(data []byte) error {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	switch {
	case probe["MoveTo"] != nil:
		var w wireMoveTo
		if err := json.Unmarshal(data, &w); err != nil {
			return err
		}
		*e = MoveToEl(wireToPoint(w.MoveTo))
	case probe["LineTo"] != nil:
		var tuple []json.RawMessage
		if err := json.Unmarshal(probe["LineTo"], &tuple); err != nil {
			return err
		}
		if len(tuple) != 2 {
			return fmt.Errorf("spline: LineTo tuple must have 2 elements, got %d", len(tuple))
		}
		var pt wirePoint
		if err := json.Unmarshal(tuple[0], &pt); err != nil {
			return err
		}
		var smooth bool
		if err := json.Unmarshal(tuple[1], &smooth); err != nil {
			return err
		}
		*e = LineToEl(wireToPoint(pt), smooth)
	case probe["SplineTo"] != nil:
		var tuple []json.RawMessage
		if err := json.Unmarshal(probe["SplineTo"], &tuple); err != nil {
			return err
		}
		if len(tuple) != 4 {
			return fmt.Errorf("spline: SplineTo tuple must have 4 elements, got %d", len(tuple))
		}
		var p1, p2 *geom.Point
		if !isRawNull(tuple[0]) {
			var pt wirePoint
			if err := json.Unmarshal(tuple[0], &pt); err != nil {
				return err
			}
			p := wireToPoint(pt)
			p1 = &p
		}
		if !isRawNull(tuple[1]) {
			var pt wirePoint
			if err := json.Unmarshal(tuple[1], &pt); err != nil {
				return err
			}
			p := wireToPoint(pt)
			p2 = &p
		}
		if isRawNull(tuple[2]) {
			return fmt.Errorf("spline: SplineTo element missing its endpoint")
		}
		var p3 wirePoint
		if err := json.Unmarshal(tuple[2], &p3); err != nil {
			return err
		}
		var smooth bool
		if err := json.Unmarshal(tuple[3], &smooth); err != nil {
			return err
		}
		*e = SplineToEl(p1, p2, wireToPoint(p3), smooth)
	default:
		return fmt.Errorf("spline: element object has none of MoveTo/LineTo/SplineTo")
	}
	return nil
}

type wireSpec struct {
	Elements []Element `json:"elements"`
	IsClosed bool      `json:"isClosed,omitempty"`
}

// MarshalJSON encodes sp's declarative element list and closedness. The
// cached solver state (free angles, tensions, segments) is never
// serialized: a deserialized spec always starts dirty and is rebuilt by
// the next Solve call.
func (sp *SplineSpec) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireSpec{Elements: sp.elements, IsClosed: sp.isClosed})
}

// UnmarshalJSON replaces sp's contents with the decoded element list,
// discarding any previously solved state and marking sp dirty.
func (sp *SplineSpec) UnmarshalJSON(data []byte) error {
	var w wireSpec
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	sp.elements = w.Elements
	sp.isClosed = w.IsClosed
	sp.ths = nil
	sp.dths = nil
	sp.segments = nil
	sp.dirty = true
	return nil
}
