package tsppd

import (
	"git.solver4all.com/azaryc2s/gorobi/gurobi"
)

// Cut is a linear inequality over the variable columns, ready to be handed
// to the engine as a user cut or lazy constraint.
type Cut struct {
	Ind   []int32
	Val   []float64
	Sense int8
	RHS   float64
}

// SolutionValues is the snapshot of the x variables taken at one callback
// invocation: a dense (2n+2)^2 matrix with zeros on forbidden arcs, and a
// flag telling whether every value is integral within eps.
type SolutionValues struct {
	X         [][]float64
	IsInteger bool
}

// ComputeXValues unpacks the x block of a raw engine solution array into a
// dense matrix and classifies it as integer or fractional.
func ComputeXValues(g *Graph, xVals []float64, eps float64) *SolutionValues {
	nodes := g.NumNodes()
	sol := &SolutionValues{IsInteger: true}
	sol.X = make([][]float64, nodes)
	for i := 0; i < nodes; i++ {
		sol.X[i] = make([]float64, nodes)
	}
	for k, arc := range g.Arcs() {
		v := xVals[k]
		if v > eps {
			if v < 1-eps {
				sol.IsInteger = false
			}
			sol.X[arc.From][arc.To] = v
		}
	}
	return sol
}

// lessEqualCut builds a <= cut with unit coefficients on the given x columns.
func lessEqualCut(ind []int32, rhs float64) Cut {
	val := make([]float64, len(ind))
	for i := range val {
		val[i] = 1.0
	}
	return Cut{Ind: ind, Val: val, Sense: gurobi.LESS_EQUAL, RHS: rhs}
}
