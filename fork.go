package tsppd

// Fork inequalities. The vehicle enters a hub node h exactly once and leaves
// it exactly once; if every combination of a predecessor u in L and a
// successor v in R makes u -> h -> v a path no feasible tour can contain,
// then at most one of the arcs counted in x(L:{h}) + x({h}:R) can be used:
//
//	sum_{u in L} x(u,h) + sum_{v in R} x(h,v) <= 1
//
// The full separator grows sets on both sides of the hub; the simplified one
// pins one side to the single best candidate and only grows the other.

// SeparateForkCuts separates fork inequalities with greedily grown
// predecessor and successor sets around every pickup/delivery hub.
func SeparateForkCuts(g *Graph, sol *SolutionValues, eps float64) []Cut {
	var cuts []Cut

	for h := 1; h <= 2*g.N; h++ {
		u0 := bestPredecessor(g, sol, h, nil, nil, eps)
		if u0 == nil {
			continue
		}
		L := []int{u0.node}
		var R []int

		for {
			grew := false
			if v := bestSuccessor(g, sol, h, L, R, eps); v != nil {
				R = append(R, v.node)
				grew = true
			}
			if u := bestPredecessor(g, sol, h, L, R, eps); u != nil {
				L = append(L, u.node)
				grew = true
			}
			if !grew {
				break
			}
		}

		if len(R) == 0 {
			continue
		}
		if forkLHS(sol, h, L, R) > 1+eps {
			cuts = append(cuts, forkCut(g, h, L, R))
		}
	}
	return cuts
}

// SeparateSimplifiedForkCuts separates the single-predecessor and
// single-successor templates of the fork inequality.
func SeparateSimplifiedForkCuts(g *Graph, sol *SolutionValues, eps float64) []Cut {
	var cuts []Cut
	emitted := make(map[string]bool)

	for h := 1; h <= 2*g.N; h++ {
		// One predecessor, grown successor set.
		if u := bestPredecessor(g, sol, h, nil, nil, eps); u != nil {
			L := []int{u.node}
			var R []int
			for {
				v := bestSuccessor(g, sol, h, L, R, eps)
				if v == nil {
					break
				}
				R = append(R, v.node)
			}
			if len(R) > 0 && forkLHS(sol, h, L, R) > 1+eps {
				cut := forkCut(g, h, L, R)
				if key := cutKey(cut); !emitted[key] {
					emitted[key] = true
					cuts = append(cuts, cut)
				}
			}
		}

		// One successor, grown predecessor set.
		if v := bestSuccessor(g, sol, h, nil, nil, eps); v != nil {
			R := []int{v.node}
			var L []int
			for {
				u := bestPredecessor(g, sol, h, L, R, eps)
				if u == nil {
					break
				}
				L = append(L, u.node)
			}
			if len(L) > 0 && forkLHS(sol, h, L, R) > 1+eps {
				cut := forkCut(g, h, L, R)
				if key := cutKey(cut); !emitted[key] {
					emitted[key] = true
					cuts = append(cuts, cut)
				}
			}
		}
	}
	return cuts
}

// bestPredecessor picks the pickup/delivery node u with the largest x(u,h)
// among those not yet in L whose path u -> h -> v is eliminable for every v
// already in R.
func bestPredecessor(g *Graph, sol *SolutionValues, h int, L, R []int, eps float64) *bestNode {
	best := -1
	bestF := 0.0
	for u := 1; u <= 2*g.N; u++ {
		if u == h || containsNode(L, u) || g.ArcIndex(u, h) == -1 {
			continue
		}
		compatible := true
		for _, v := range R {
			if !g.IsPathEliminable(u, h, v) {
				compatible = false
				break
			}
		}
		if !compatible {
			continue
		}
		if flow := sol.X[u][h]; flow > bestF+eps {
			bestF = flow
			best = u
		}
	}
	if best == -1 {
		return nil
	}
	return &bestNode{node: best, flow: bestF}
}

// bestSuccessor is the outgoing mirror of bestPredecessor.
func bestSuccessor(g *Graph, sol *SolutionValues, h int, L, R []int, eps float64) *bestNode {
	best := -1
	bestF := 0.0
	for v := 1; v <= 2*g.N; v++ {
		if v == h || containsNode(R, v) || g.ArcIndex(h, v) == -1 {
			continue
		}
		compatible := true
		for _, u := range L {
			if !g.IsPathEliminable(u, h, v) {
				compatible = false
				break
			}
		}
		if !compatible {
			continue
		}
		if flow := sol.X[h][v]; flow > bestF+eps {
			bestF = flow
			best = v
		}
	}
	if best == -1 {
		return nil
	}
	return &bestNode{node: best, flow: bestF}
}

func forkLHS(sol *SolutionValues, h int, L, R []int) float64 {
	lhs := 0.0
	for _, u := range L {
		lhs += sol.X[u][h]
	}
	for _, v := range R {
		lhs += sol.X[h][v]
	}
	return lhs
}

func forkCut(g *Graph, h int, L, R []int) Cut {
	ind := make([]int32, 0, len(L)+len(R))
	for _, u := range L {
		ind = append(ind, int32(g.ArcIndex(u, h)))
	}
	for _, v := range R {
		ind = append(ind, int32(g.ArcIndex(h, v)))
	}
	return lessEqualCut(ind, 1)
}

func cutKey(c Cut) string {
	ind := make([]int, len(c.Ind))
	for i, k := range c.Ind {
		ind[i] = int(k)
	}
	return setKey(ind)
}
