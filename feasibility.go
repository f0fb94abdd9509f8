package tsppd

// SeparateFeasibilityCuts inspects an integer incumbent for the constraints
// the base model leaves out: depot-less cycles, and precedence, capacity or
// draught violations along the depot path. The returned cuts are added as
// lazy constraints.
func SeparateFeasibilityCuts(g *Graph, sol *SolutionValues) []Cut {
	nodes := g.NumNodes()
	succ := make([]int, nodes)
	for i := 0; i < nodes; i++ {
		succ[i] = -1
		for j := 0; j < nodes; j++ {
			if sol.X[i][j] > 0.5 {
				succ[i] = j
				break
			}
		}
	}

	var cuts []Cut
	visited := make([]bool, nodes)

	// Walk the depot path and cut off the first infeasible prefix.
	path := []int{g.Source()}
	visited[g.Source()] = true
	for at := g.Source(); succ[at] != -1; at = succ[at] {
		next := succ[at]
		if visited[next] {
			break
		}
		path = append(path, next)
		visited[next] = true
		if next == g.Sink() {
			break
		}
	}
	if cut, violated := pathViolationCut(g, path); violated {
		cuts = append(cuts, cut)
	}

	// Every remaining node with an outgoing arc lies on a cycle that misses
	// both depots.
	for v := 1; v <= 2*g.N; v++ {
		if visited[v] || succ[v] == -1 {
			continue
		}
		cycle := []int{v}
		visited[v] = true
		for at := succ[v]; at != v && at != -1 && !visited[at]; at = succ[at] {
			cycle = append(cycle, at)
			visited[at] = true
		}
		cuts = append(cuts, cycleCuts(g, cycle)...)
	}

	return cuts
}

// pathViolationCut simulates the loads along the depot path and, on the first
// precedence, capacity or draught violation, returns a cut over the arcs of
// the violating prefix: that exact arc sequence can appear in no feasible
// tour, so the sum of its arcs is bounded by its length minus one. The
// set-form subtour cut is useless here because a path incumbent satisfies it
// with equality.
func pathViolationCut(g *Graph, path []int) (Cut, bool) {
	picked := make([]bool, g.NumNodes())
	load := 0
	for t := 1; t < len(path); t++ {
		v := path[t]
		if v == g.Sink() {
			break
		}
		before := load
		load += g.Demand[v]
		bad := load < 0 || load > g.Capacity || before > g.Draught[v] || load > g.Draught[v]
		if !bad && g.IsDelivery(v) && !picked[g.PickupOf(v)] {
			bad = true
		}
		if g.IsPickup(v) {
			picked[v] = true
		}
		if bad {
			ind := make([]int32, 0, t)
			for s := 1; s <= t; s++ {
				ind = append(ind, int32(g.ArcIndex(path[s-1], path[s])))
			}
			return lessEqualCut(ind, float64(t-1)), true
		}
	}
	return Cut{}, false
}

// cycleCuts emits the subtour elimination cut for a depot-less cycle and, if
// the cycle contains a delivery without its pickup, a precedence-strengthened
// variant that also counts arcs from the cycle to the missing pickups. In a
// feasible tour the components of V cannot all exit directly onto pickups
// whose deliveries lie in V, so the strengthened form keeps the same
// right-hand side.
func cycleCuts(g *Graph, cycle []int) []Cut {
	inCycle := make([]bool, g.NumNodes())
	for _, v := range cycle {
		inCycle[v] = true
	}

	var inner []int32
	for k, arc := range g.Arcs() {
		if inCycle[arc.From] && inCycle[arc.To] {
			inner = append(inner, int32(k))
		}
	}
	cuts := []Cut{lessEqualCut(inner, float64(len(cycle)-1))}

	missing := make([]bool, g.NumNodes())
	anyMissing := false
	for _, v := range cycle {
		if g.IsDelivery(v) && !inCycle[g.PickupOf(v)] {
			missing[g.PickupOf(v)] = true
			anyMissing = true
		}
	}
	if anyMissing {
		strengthened := append([]int32{}, inner...)
		for k, arc := range g.Arcs() {
			if inCycle[arc.From] && missing[arc.To] {
				strengthened = append(strengthened, int32(k))
			}
		}
		cuts = append(cuts, lessEqualCut(strengthened, float64(len(cycle)-1)))
	}
	return cuts
}
