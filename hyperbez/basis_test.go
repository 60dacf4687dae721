package hyperbez

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestComputeKRoundTrip(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, k := range []float64{0, 1, 2, 2.000001, 3, 5, 10, 20} {
		bias := ComputeKInv(k)
		got := computeK(bias)
		assert.InDelta(t, k, got, 1e-5, "k=%v", k)
	}
}

func TestModTauRange(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, x := range []float64{0, 1, -1, 3.5, -3.5, 100, -100, 1e6} {
		r := ModTau(x)
		if r <= -3.14159265358979 || r > 3.14159265358979+1e-9 {
			t.Errorf("ModTau(%v) = %v out of (-pi, pi]", x, r)
		}
	}
}

func TestModTauPeriodic(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	const tau = 2 * 3.14159265358979
	x := 0.7
	for k := -3; k <= 3; k++ {
		assert.InDelta(t, ModTau(x), ModTau(x+float64(k)*tau), 1e-9)
	}
}

func TestIntegrateBasisNormalized(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, bias := range []float64{0.2, 0.8, 1.0, 1.0001, 1.001, 1.5, 1.9999} {
		f0 := integrateBasis(bias, 0)
		f1 := integrateBasis(bias, 1)
		assert.InDelta(t, 0.0, f0, 1e-9, "bias=%v", bias)
		assert.InDelta(t, 1.0, f1, 1e-6, "bias=%v", bias)
	}
}
