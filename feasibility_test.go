package tsppd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func integerSolution(g *Graph, arcs [][2]int) *SolutionValues {
	sol := emptySolution(g)
	sol.IsInteger = true
	for _, a := range arcs {
		sol.X[a[0]][a[1]] = 1.0
	}
	return sol
}

func TestFeasibilitySeparatorAcceptsValidTour(t *testing.T) {
	g := testGraph(t, 2, 5, []int{3, 4}, nil)
	sol := integerSolution(g, [][2]int{{0, 1}, {1, 3}, {3, 2}, {2, 4}, {4, 5}})
	require.Empty(t, SeparateFeasibilityCuts(g, sol))
}

func TestFeasibilitySeparatorCutsDepotlessCycle(t *testing.T) {
	g := testGraph(t, 2, 5, []int{3, 4}, nil)

	// Main path serves request 1 only; request 2 circulates on its own.
	sol := integerSolution(g, [][2]int{{0, 1}, {1, 3}, {3, 5}, {2, 4}, {4, 2}})

	cuts := SeparateFeasibilityCuts(g, sol)
	require.Len(t, cuts, 1)

	cut := cuts[0]
	require.Equal(t, float64(1), cut.RHS)
	require.Len(t, cut.Ind, 2)
	inds := map[int32]bool{cut.Ind[0]: true, cut.Ind[1]: true}
	require.True(t, inds[int32(g.ArcIndex(2, 4))])
	require.True(t, inds[int32(g.ArcIndex(4, 2))])

	// The incumbent itself must be cut off.
	require.False(t, tourSatisfiesCut(g, cut, []int{2, 4, 2}))

	requireCutsValid(t, g, cuts)
}

func TestFeasibilitySeparatorStrengthensOrphanDeliveryCycle(t *testing.T) {
	// Capacity 10 so the depot path 0 -> 1 -> 2 -> 5 itself breaks nothing;
	// the two deliveries circulate without their pickups.
	g := testGraph(t, 2, 10, []int{3, 4}, nil)
	sol := integerSolution(g, [][2]int{{0, 1}, {1, 2}, {2, 5}, {3, 4}, {4, 3}})

	cuts := SeparateFeasibilityCuts(g, sol)
	require.Len(t, cuts, 2)

	// Plain subtour cut on the cycle.
	require.Equal(t, float64(1), cuts[0].RHS)
	require.Len(t, cuts[0].Ind, 2)

	// Strengthened variant: also counts the arcs from the cycle to the
	// pickups it is missing.
	require.Equal(t, float64(1), cuts[1].RHS)
	require.Len(t, cuts[1].Ind, 6)
	inds := make(map[int32]bool)
	for _, k := range cuts[1].Ind {
		inds[k] = true
	}
	for _, arc := range [][2]int{{3, 4}, {4, 3}, {3, 1}, {3, 2}, {4, 1}, {4, 2}} {
		require.True(t, inds[int32(g.ArcIndex(arc[0], arc[1]))], "missing arc (%d,%d)", arc[0], arc[1])
	}

	requireCutsValid(t, g, cuts)
}

func TestFeasibilitySeparatorCutsCapacityViolatingPath(t *testing.T) {
	g := testGraph(t, 2, 5, []int{3, 4}, nil)

	// Both pickups on board: 3 + 4 > 5 at node 2.
	sol := integerSolution(g, [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 4}, {4, 5}})

	cuts := SeparateFeasibilityCuts(g, sol)
	require.Len(t, cuts, 1)

	cut := cuts[0]
	require.Equal(t, float64(1), cut.RHS)
	require.Equal(t, []int32{int32(g.ArcIndex(0, 1)), int32(g.ArcIndex(1, 2))}, cut.Ind)

	require.False(t, tourSatisfiesCut(g, cut, []int{0, 1, 2, 3, 4, 5}))
	requireCutsValid(t, g, cuts)
}

func TestFeasibilitySeparatorCutsPrecedenceViolatingPath(t *testing.T) {
	g := testGraph(t, 2, 10, []int{3, 4}, nil)

	// Delivery 4 shows up before pickup 2.
	sol := integerSolution(g, [][2]int{{0, 1}, {1, 4}, {4, 2}, {2, 3}, {3, 5}})

	cuts := SeparateFeasibilityCuts(g, sol)
	require.NotEmpty(t, cuts)

	cut := cuts[0]
	require.Equal(t, float64(1), cut.RHS)
	require.Equal(t, []int32{int32(g.ArcIndex(0, 1)), int32(g.ArcIndex(1, 4))}, cut.Ind)

	requireCutsValid(t, g, cuts)
}

func TestFeasibilitySeparatorIsIdempotent(t *testing.T) {
	g := testGraph(t, 2, 5, []int{3, 4}, nil)
	sol := integerSolution(g, [][2]int{{0, 1}, {1, 3}, {3, 5}, {2, 4}, {4, 2}})
	require.Equal(t, SeparateFeasibilityCuts(g, sol), SeparateFeasibilityCuts(g, sol))
}
