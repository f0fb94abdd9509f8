package tsppd

import (
	"fmt"
	"math"
)

// bestNode is the "best candidate node" result of the growth helpers:
// present (non-nil) with the node and its fractional flow, or absent (nil).
type bestNode struct {
	node int
	flow float64
}

// SeparateCapacityCuts separates rounded capacity-draught inequalities. Two
// disjoint sets S and T are grown from every (pickup, delivery) seed pair;
// at each step one node is added to S and possibly one to T, and the cut
// x(S:S) + x(S:T) + x(T:T) <= |S| + |T| - ceil((demand_S + demand_U) / D)
// is emitted whenever the current solution violates it. D is the capacity
// capped by the largest draught in S; demand_U counts requests delivered in
// T whose pickup sits in neither set.
//
// The S-rule prefers the pickup candidate unless the delivery strictly
// dominates with flow >= 1; the T-rule prefers the delivery the same way.
// The asymmetry between the two rules is kept as is.
func SeparateCapacityCuts(g *Graph, sol *SolutionValues, eps float64) ([]Cut, error) {
	var cuts []Cut

	for i := 1; i <= g.N; i++ {
		for j := g.N + 1; j <= 2*g.N; j++ {
			S := []int{i}
			T := []int{j}

			for {
				bps := bestPickupNodeForS(g, sol, S, eps)
				bds := bestDeliveryNodeForS(g, sol, S)

				if bps == nil && bds == nil {
					break
				}

				if bps == nil || (bds != nil && bps.flow < bds.flow && bds.flow >= 1) {
					S = append(S, bds.node)
					T = removeNode(T, bds.node)
				} else {
					S = append(S, bps.node)
					T = removeNode(T, bps.node)
				}

				bpt := bestPickupNodeForT(g, sol, S, T, eps)
				bdt := bestDeliveryNodeForT(g, sol, S, T, eps)

				if bdt != nil || bpt != nil {
					if bdt == nil || (bpt != nil && bdt.flow < bpt.flow && bpt.flow >= 1) {
						T = append(T, bpt.node)
					} else {
						T = append(T, bdt.node)
					}
				}

				lhs := capacityLHS(sol, S, T)
				rhs, err := capacityRHS(g, S, T)
				if err != nil {
					return nil, err
				}

				if lhs > rhs+eps {
					cuts = append(cuts, capacityCut(g, S, T, rhs))
				}
			}
		}
	}

	return cuts, nil
}

func capacityLHS(sol *SolutionValues, S, T []int) float64 {
	lhs := 0.0
	for _, s1 := range S {
		for _, s2 := range S {
			lhs += sol.X[s1][s2]
		}
		for _, t := range T {
			lhs += sol.X[s1][t]
		}
	}
	for _, t1 := range T {
		for _, t2 := range T {
			lhs += sol.X[t1][t2]
		}
	}
	return lhs
}

func capacityRHS(g *Graph, S, T []int) (float64, error) {
	if len(S) == 0 {
		return 0, fmt.Errorf("capacity separator: cannot take the max draught of an empty S")
	}

	demandS := 0
	maxDraught := g.Draught[S[0]]
	for _, s := range S {
		demandS += g.Demand[s]
		if g.Draught[s] > maxDraught {
			maxDraught = g.Draught[s]
		}
	}

	demandU := 0
	for _, t := range T {
		if g.IsDelivery(t) {
			p := g.PickupOf(t)
			if !containsNode(S, p) && !containsNode(T, p) {
				demandU += g.Demand[p]
			}
		}
	}

	denominator := minInt(g.Capacity, maxDraught)
	return float64(len(S)+len(T)) - math.Ceil(float64(demandS+demandU)/float64(denominator)), nil
}

func capacityCut(g *Graph, S, T []int, rhs float64) Cut {
	inS := make([]bool, g.NumNodes())
	inT := make([]bool, g.NumNodes())
	for _, s := range S {
		inS[s] = true
	}
	for _, t := range T {
		inT[t] = true
	}
	var ind []int32
	for k, arc := range g.Arcs() {
		if inS[arc.From] {
			if inS[arc.To] || inT[arc.To] {
				ind = append(ind, int32(k))
			}
		} else if inT[arc.From] && inT[arc.To] {
			ind = append(ind, int32(k))
		}
	}
	return lessEqualCut(ind, rhs)
}

func bestPickupNodeForS(g *Graph, sol *SolutionValues, S []int, eps float64) *bestNode {
	best := -1
	bestF := 0.0
	for i := 1; i <= g.N; i++ {
		if containsNode(S, i) {
			continue
		}
		flow := 0.0
		for _, s := range S {
			flow += sol.X[s][i] + sol.X[i][s]
		}
		if flow > bestF+eps {
			bestF = flow
			best = i
		}
	}
	if best == -1 {
		return nil
	}
	return &bestNode{node: best, flow: bestF}
}

// bestDeliveryNodeForS compares with flow > bestF where its siblings use
// flow > bestF + eps; kept that way on purpose.
func bestDeliveryNodeForS(g *Graph, sol *SolutionValues, S []int) *bestNode {
	best := -1
	bestF := 0.0
	for i := g.N + 1; i <= 2*g.N; i++ {
		if containsNode(S, i) {
			continue
		}
		flow := 0.0
		for _, s := range S {
			flow += sol.X[s][i] + sol.X[i][s]
		}
		if flow > bestF {
			bestF = flow
			best = i
		}
	}
	if best == -1 {
		return nil
	}
	return &bestNode{node: best, flow: bestF}
}

func bestPickupNodeForT(g *Graph, sol *SolutionValues, S, T []int, eps float64) *bestNode {
	best := -1
	bestF := 0.0
	for i := 1; i <= g.N; i++ {
		if containsNode(S, i) || containsNode(T, i) {
			continue
		}
		flow := 0.0
		for _, t := range T {
			flow += sol.X[t][i] + sol.X[i][t]
		}
		if flow > bestF+eps {
			bestF = flow
			best = i
		}
	}
	if best == -1 {
		return nil
	}
	return &bestNode{node: best, flow: bestF}
}

func bestDeliveryNodeForT(g *Graph, sol *SolutionValues, S, T []int, eps float64) *bestNode {
	best := -1
	bestF := 0.0
	for i := g.N + 1; i <= 2*g.N; i++ {
		if containsNode(S, i) || containsNode(T, i) {
			continue
		}
		flow := 0.0
		for _, t := range T {
			flow += sol.X[t][i] + sol.X[i][t]
		}
		if flow > bestF+eps {
			bestF = flow
			best = i
		}
	}
	if best == -1 {
		return nil
	}
	return &bestNode{node: best, flow: bestF}
}

func containsNode(set []int, v int) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func removeNode(set []int, v int) []int {
	out := set[:0]
	for _, s := range set {
		if s != v {
			out = append(out, s)
		}
	}
	return out
}
