package hyperbez

import (
	"fmt"
	"math"

	"github.com/curvelab/hyperspline/geom"
	"gonum.org/v1/gonum/integrate/quad"
)

// glOrders are the Gauss-Legendre orders this package caches tables for.
// Order 24 is the workhorse for chord integration (ThetaHyperbez.Compute,
// and the render walk); order 32 is used for higher-accuracy position
// evaluation of the (a,b,c,d) primitive. The smaller orders are kept
// available for callers that trade accuracy for speed.
var glOrders = []int{3, 5, 7, 9, 11, 24, 32}

type glTable struct {
	x []float64
	w []float64
}

var glTables = buildGLTables()

func buildGLTables() map[int]glTable {
	tables := make(map[int]glTable, len(glOrders))
	for _, n := range glOrders {
		x := make([]float64, n)
		w := make([]float64, n)
		quad.Legendre{}.FixedLocations(x, w, -1, 1)
		tables[n] = glTable{x: x, w: w}
	}
	return tables
}

// ModTau normalizes x into (-pi, pi].
func ModTau(x float64) float64 {
	const tau = 2 * math.Pi
	r := x - tau*math.Round(x/tau)
	if r <= -math.Pi {
		r += tau
	}
	return r
}

// Integrate numerically integrates (cos(theta(u)), sin(theta(u))) over
// [t0, t1] using order-point Gauss-Legendre quadrature with a midpoint
// change of variable: the node/weight table is looked up from gonum,
// the summation loop is hand-written.
func Integrate(theta func(float64) float64, t0, t1 float64, order int) geom.Vec2 {
	tbl, ok := glTables[order]
	if !ok {
		panic(fmt.Sprintf("hyperbez: no Gauss-Legendre coefficients for order %d", order))
	}
	tm := 0.5 * (t1 + t0)
	dt := 0.5 * (t1 - t0)
	var sum geom.Vec2
	for i, xi := range tbl.x {
		t := tm + dt*xi
		th := theta(t)
		sum = sum.Add(geom.FromAngle(th).Scaled(tbl.w[i]))
	}
	return sum.Scaled(dt)
}
