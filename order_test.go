package tsppd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGeneralisedOrderSeparatorFindsViolatedCut(t *testing.T) {
	g := testGraph(t, 2, 10, []int{3, 4}, nil)

	// S1 = {1, 4} and S2 = {3, 2} both look like single segments in the
	// fraction, which no feasible tour allows: one of the two deliveries
	// would come before its pickup.
	sol := emptySolution(g)
	sol.X[1][4] = 1.0
	sol.X[2][3] = 0.6
	sol.X[3][2] = 0.6

	cuts := SeparateGeneralisedOrderCuts(g, sol, 1e-6)
	require.NotEmpty(t, cuts)

	found := false
	for _, cut := range cuts {
		if cut.RHS == 1 && len(cut.Ind) == 4 {
			inds := make(map[int32]bool)
			for _, k := range cut.Ind {
				inds[k] = true
			}
			if inds[int32(g.ArcIndex(1, 4))] && inds[int32(g.ArcIndex(4, 1))] &&
				inds[int32(g.ArcIndex(2, 3))] && inds[int32(g.ArcIndex(3, 2))] {
				found = true
			}
		}
	}
	require.True(t, found, "expected x(S1) + x(S2) <= 1 over the seed sets")

	requireCutsValid(t, g, cuts)
}

func TestGeneralisedOrderSeparatorQuietOnFeasibleTour(t *testing.T) {
	g := testGraph(t, 2, 10, []int{3, 4}, nil)
	sol := emptySolution(g)
	for _, tour := range [][]int{{0, 1, 3, 2, 4, 5}, {0, 1, 2, 3, 4, 5}} {
		for i := range sol.X {
			for j := range sol.X[i] {
				sol.X[i][j] = 0
			}
		}
		for s := 1; s < len(tour); s++ {
			sol.X[tour[s-1]][tour[s]] = 1.0
		}
		require.Empty(t, SeparateGeneralisedOrderCuts(g, sol, 1e-6))
	}
}

func TestGeneralisedOrderSeparatorIsIdempotent(t *testing.T) {
	g := testGraph(t, 2, 10, []int{3, 4}, nil)
	sol := emptySolution(g)
	sol.X[1][4] = 0.9
	sol.X[4][1] = 0.5
	sol.X[2][3] = 0.7
	sol.X[3][2] = 0.5

	require.Equal(t, SeparateGeneralisedOrderCuts(g, sol, 1e-6), SeparateGeneralisedOrderCuts(g, sol, 1e-6))
}
