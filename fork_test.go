package tsppd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSimplifiedForkSeparatorFindsViolatedCut(t *testing.T) {
	g := testGraph(t, 2, 5, []int{3, 4}, nil)

	// Entering pickup 2 with request 1 on board always overloads the
	// vehicle, so 1 -> 2 -> v is eliminable for every successor v; the
	// fractional flow routes 1.5 units through the hub anyway.
	require.True(t, g.IsPathEliminable(1, 2, 4))
	require.True(t, g.IsPathEliminable(1, 2, 3))

	sol := emptySolution(g)
	sol.X[1][2] = 0.8
	sol.X[2][4] = 0.7

	cuts := SeparateSimplifiedForkCuts(g, sol, 1e-6)
	require.NotEmpty(t, cuts)

	found := false
	for _, cut := range cuts {
		if cut.RHS != 1 {
			continue
		}
		inds := make(map[int32]bool)
		for _, k := range cut.Ind {
			inds[k] = true
		}
		if inds[int32(g.ArcIndex(1, 2))] && inds[int32(g.ArcIndex(2, 4))] {
			found = true
		}
	}
	require.True(t, found, "expected x(1,2) + x(2,4) <= 1")

	requireCutsValid(t, g, cuts)
}

func TestForkSeparatorGrowsBothSides(t *testing.T) {
	g := testGraph(t, 2, 5, []int{3, 4}, nil)

	// Hub 2 with predecessor 1 and two successors: both middle paths are
	// eliminable, and the total flow through the hub is 1.9.
	sol := emptySolution(g)
	sol.X[1][2] = 0.8
	sol.X[2][4] = 0.6
	sol.X[2][3] = 0.5

	cuts := SeparateForkCuts(g, sol, 1e-6)
	require.NotEmpty(t, cuts)

	found := false
	for _, cut := range cuts {
		if cut.RHS != 1 || len(cut.Ind) != 3 {
			continue
		}
		inds := make(map[int32]bool)
		for _, k := range cut.Ind {
			inds[k] = true
		}
		if inds[int32(g.ArcIndex(1, 2))] && inds[int32(g.ArcIndex(2, 4))] && inds[int32(g.ArcIndex(2, 3))] {
			found = true
		}
	}
	require.True(t, found, "expected x(1,2) + x(2,4) + x(2,3) <= 1")

	requireCutsValid(t, g, cuts)
}

func TestForkSeparatorsQuietOnFeasibleTour(t *testing.T) {
	g := testGraph(t, 2, 5, []int{3, 4}, nil)
	sol := emptySolution(g)
	tour := []int{0, 2, 4, 1, 3, 5}
	for s := 1; s < len(tour); s++ {
		sol.X[tour[s-1]][tour[s]] = 1.0
	}
	require.Empty(t, SeparateForkCuts(g, sol, 1e-6))
	require.Empty(t, SeparateSimplifiedForkCuts(g, sol, 1e-6))
}

func TestForkSeparatorsAreIdempotent(t *testing.T) {
	g := testGraph(t, 2, 5, []int{3, 4}, nil)
	sol := emptySolution(g)
	sol.X[1][2] = 0.8
	sol.X[2][4] = 0.6
	sol.X[2][3] = 0.5
	sol.X[4][1] = 0.4

	require.Equal(t, SeparateForkCuts(g, sol, 1e-6), SeparateForkCuts(g, sol, 1e-6))
	require.Equal(t, SeparateSimplifiedForkCuts(g, sol, 1e-6), SeparateSimplifiedForkCuts(g, sol, 1e-6))
}
