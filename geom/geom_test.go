package geom

import (
	"math"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestVecBasic(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	v := V(3, 2)
	w := V(-3, -2)
	r := v.Add(w)
	if !r.IsZero() {
		t.Errorf("Expected v + w to be (0,0), is %v", r)
	}
}

func TestPointLerp(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p0, p1 := P(0, 0), P(10, 0)
	mid := p0.Lerp(p1, 0.5)
	assert.InDelta(t, 5.0, mid.X(), 1e-9)
	assert.InDelta(t, 0.0, mid.Y(), 1e-9)
}

func TestSimilarityRoundTrip(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p0, p1 := P(100, 100), P(300, 200)
	s := SimilarityTo(p0, p1)
	if !s.Apply(Origin).Equal(p0) {
		t.Fatalf("expected canonical origin to map to p0, got %v", s.Apply(Origin))
	}
	if !s.Apply(P(1, 0)).Equal(p1) {
		t.Fatalf("expected canonical (1,0) to map to p1, got %v", s.Apply(P(1, 0)))
	}
	inv := s.Invert()
	back := inv.Apply(s.Apply(P(0.37, -1.2)))
	assert.InDelta(t, 0.37, back.X(), 1e-9)
	assert.InDelta(t, -1.2, back.Y(), 1e-9)
}

func TestRotatedQuarterTurn(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	v := V(1, 0).Rotated(math.Pi / 2)
	assert.InDelta(t, 0.0, v.X(), 1e-9)
	assert.InDelta(t, 1.0, v.Y(), 1e-9)
}
