package tsppd

import (
	"testing"

	"git.solver4all.com/azaryc2s/gorobi/gurobi"
	"github.com/stretchr/testify/require"
)

// testCost builds a cost matrix with unit costs on all arcs except the ones
// no tour can ever use (into the source, out of the sink, self loops, source
// straight to the sink). Tests that need extra forbidden arcs set them to -1
// themselves.
func testCost(n int) [][]int {
	nodes := 2*n + 2
	cost := make([][]int, nodes)
	for i := 0; i < nodes; i++ {
		cost[i] = make([]int, nodes)
		for j := 0; j < nodes; j++ {
			cost[i][j] = 1
		}
	}
	for i := 0; i < nodes; i++ {
		cost[i][i] = -1
		cost[i][0] = -1
		cost[nodes-1][i] = -1
	}
	cost[0][nodes-1] = -1
	return cost
}

// testGraph builds an n-request graph with the given capacity, request
// demands and per-node draughts over a unit cost matrix.
func testGraph(t *testing.T, n, capacity int, q []int, draughts []int) *Graph {
	t.Helper()
	nodes := 2*n + 2
	demand := make([]int, nodes)
	for r := 1; r <= n; r++ {
		demand[r] = q[r-1]
		demand[n+r] = -q[r-1]
	}
	if draughts == nil {
		draughts = make([]int, nodes)
		for i := range draughts {
			draughts[i] = capacity
		}
	}
	g, err := NewGraph(n, capacity, testCost(n), demand, draughts)
	require.NoError(t, err)
	return g
}

// emptySolution builds a zero fractional snapshot for hand-crafted x values.
func emptySolution(g *Graph) *SolutionValues {
	nodes := g.NumNodes()
	x := make([][]float64, nodes)
	for i := 0; i < nodes; i++ {
		x[i] = make([]float64, nodes)
	}
	return &SolutionValues{X: x, IsInteger: false}
}

// feasibleTours enumerates every feasible tour of a small instance by brute
// force over the permutations of the pickup/delivery nodes.
func feasibleTours(g *Graph) [][]int {
	inner := make([]int, 0, 2*g.N)
	for v := 1; v <= 2*g.N; v++ {
		inner = append(inner, v)
	}
	var tours [][]int
	permute(inner, 0, func(perm []int) {
		tour := make([]int, 0, g.NumNodes())
		tour = append(tour, g.Source())
		tour = append(tour, perm...)
		tour = append(tour, g.Sink())
		if g.CheckTour(tour) == nil {
			tours = append(tours, tour)
		}
	})
	return tours
}

func permute(a []int, k int, visit func([]int)) {
	if k == len(a) {
		visit(a)
		return
	}
	for i := k; i < len(a); i++ {
		a[k], a[i] = a[i], a[k]
		permute(a, k+1, visit)
		a[k], a[i] = a[i], a[k]
	}
}

// tourSatisfiesCut evaluates a cut against the x vector of an integer tour.
func tourSatisfiesCut(g *Graph, cut Cut, tour []int) bool {
	x := make([]float64, g.ArcCount())
	for t := 1; t < len(tour); t++ {
		x[g.ArcIndex(tour[t-1], tour[t])] = 1.0
	}
	lhs := 0.0
	for i, k := range cut.Ind {
		lhs += cut.Val[i] * x[k]
	}
	switch cut.Sense {
	case gurobi.LESS_EQUAL:
		return lhs <= cut.RHS+1e-9
	case gurobi.GREATER_EQUAL:
		return lhs >= cut.RHS-1e-9
	}
	return lhs >= cut.RHS-1e-9 && lhs <= cut.RHS+1e-9
}

// requireCutsValid checks that no feasible tour of the instance violates any
// of the produced cuts.
func requireCutsValid(t *testing.T, g *Graph, cuts []Cut) {
	t.Helper()
	tours := feasibleTours(g)
	require.NotEmpty(t, tours)
	for ci, cut := range cuts {
		for _, tour := range tours {
			require.True(t, tourSatisfiesCut(g, cut, tour), "cut %d cuts off feasible tour %v", ci, tour)
		}
	}
}
