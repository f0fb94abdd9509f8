package tsppd

import (
	"fmt"
	"sort"
)

// SeparateSubtourCuts separates subtour elimination inequalities on a
// fractional solution. From every pickup/delivery seed it grows a candidate
// set S by repeatedly pulling in the outside node with the largest fractional
// flow to S; whenever the flow kept inside S exceeds |S|-1 it emits
// x(S:S) <= |S|-1.
func SeparateSubtourCuts(g *Graph, sol *SolutionValues, eps float64) []Cut {
	var cuts []Cut
	emitted := make(map[string]bool)

	for seed := 1; seed <= 2*g.N; seed++ {
		inS := make([]bool, g.NumNodes())
		S := []int{seed}
		inS[seed] = true
		inside := 0.0

		for {
			best := -1
			bestF := 0.0
			for v := 1; v <= 2*g.N; v++ {
				if inS[v] {
					continue
				}
				flow := 0.0
				for _, s := range S {
					flow += sol.X[s][v] + sol.X[v][s]
				}
				if flow > bestF+eps {
					bestF = flow
					best = v
				}
			}
			if best == -1 {
				break
			}
			inside += bestF
			S = append(S, best)
			inS[best] = true

			if inside > float64(len(S)-1)+eps {
				key := setKey(S)
				if !emitted[key] {
					emitted[key] = true
					cuts = append(cuts, subtourCut(g, inS, len(S)))
				}
			}
		}
	}
	return cuts
}

func subtourCut(g *Graph, inS []bool, size int) Cut {
	var ind []int32
	for k, arc := range g.Arcs() {
		if inS[arc.From] && inS[arc.To] {
			ind = append(ind, int32(k))
		}
	}
	return lessEqualCut(ind, float64(size-1))
}

func setKey(s []int) string {
	sorted := append([]int{}, s...)
	sort.Ints(sorted)
	return fmt.Sprintf("%v", sorted)
}
