package tsppd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSubtourSeparatorFindsTwoNodeSubtour(t *testing.T) {
	g := testGraph(t, 2, 10, []int{3, 4}, nil)

	// Fractional flow circulating between pickup 1 and its delivery 3.
	sol := emptySolution(g)
	sol.X[1][3] = 1.0
	sol.X[3][1] = 1.0

	cuts := SeparateSubtourCuts(g, sol, 1e-6)
	require.NotEmpty(t, cuts)

	found := false
	for _, cut := range cuts {
		if len(cut.Ind) == 2 && cut.RHS == 1 {
			inds := map[int32]bool{cut.Ind[0]: true, cut.Ind[1]: true}
			if inds[int32(g.ArcIndex(1, 3))] && inds[int32(g.ArcIndex(3, 1))] {
				found = true
			}
		}
	}
	require.True(t, found, "expected the cut x(1,3) + x(3,1) <= 1")

	requireCutsValid(t, g, cuts)
}

func TestSubtourSeparatorGrowsLargerSets(t *testing.T) {
	g := testGraph(t, 2, 10, []int{3, 4}, nil)

	// A three-node fractional cycle 1 -> 3 -> 2 -> 1 with total inner flow
	// 2.4 > |S| - 1 = 2.
	sol := emptySolution(g)
	sol.X[1][3] = 0.8
	sol.X[3][2] = 0.8
	sol.X[2][1] = 0.8

	cuts := SeparateSubtourCuts(g, sol, 1e-6)
	require.NotEmpty(t, cuts)

	found := false
	for _, cut := range cuts {
		if cut.RHS == 2 {
			found = true
		}
	}
	require.True(t, found, "expected a cut over a 3-node set with rhs 2")

	requireCutsValid(t, g, cuts)
}

func TestSubtourSeparatorIsIdempotent(t *testing.T) {
	g := testGraph(t, 2, 10, []int{3, 4}, nil)
	sol := emptySolution(g)
	sol.X[1][3] = 0.9
	sol.X[3][1] = 0.9
	sol.X[2][4] = 0.7
	sol.X[4][2] = 0.6

	first := SeparateSubtourCuts(g, sol, 1e-6)
	second := SeparateSubtourCuts(g, sol, 1e-6)
	require.Equal(t, first, second)
}

func TestSubtourSeparatorQuietOnCleanSolution(t *testing.T) {
	g := testGraph(t, 2, 10, []int{3, 4}, nil)

	// The x values of a feasible tour violate no subtour inequality.
	sol := emptySolution(g)
	tour := []int{0, 1, 3, 2, 4, 5}
	for s := 1; s < len(tour); s++ {
		sol.X[tour[s-1]][tour[s]] = 1.0
	}

	cuts := SeparateSubtourCuts(g, sol, 1e-6)
	require.Empty(t, cuts)
}
