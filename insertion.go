package tsppd

// BestInsertionPath builds a feasible warm-start tour by best insertion: the
// tour starts as source -> sink and requests are inserted one at a time,
// always taking the request/position combination with the cheapest feasible
// cost increase (pickup before delivery, loads simulated). Returns nil when
// some request cannot be placed anywhere.
func BestInsertionPath(g *Graph) []int {
	tour := []int{g.Source(), g.Sink()}
	remaining := make([]int, 0, g.N)
	for r := 1; r <= g.N; r++ {
		remaining = append(remaining, r)
	}

	for len(remaining) > 0 {
		bestCost := -1
		bestAt := -1
		var bestTour []int

		for ri, r := range remaining {
			for p := 1; p < len(tour); p++ {
				for d := p + 1; d <= len(tour); d++ {
					candidate := insertRequest(g, tour, r, p, d)
					cost := g.PathCost(candidate)
					if cost < 0 {
						continue
					}
					if _, err := g.SimulateLoads(candidate); err != nil {
						continue
					}
					if bestCost < 0 || cost < bestCost {
						bestCost = cost
						bestAt = ri
						bestTour = candidate
					}
				}
			}
		}

		if bestAt == -1 {
			Log(LOG_INFO, "Best insertion could not place any of the %d remaining requests", len(remaining))
			return nil
		}
		tour = bestTour
		remaining = append(remaining[:bestAt], remaining[bestAt+1:]...)
	}

	return tour
}

// insertRequest places pickup r before position p and delivery n+r before
// position d of the tour that results from the pickup insertion.
func insertRequest(g *Graph, tour []int, r, p, d int) []int {
	candidate := make([]int, 0, len(tour)+2)
	candidate = append(candidate, tour[:p]...)
	candidate = append(candidate, r)
	candidate = append(candidate, tour[p:]...)

	out := make([]int, 0, len(candidate)+1)
	out = append(out, candidate[:d]...)
	out = append(out, g.DeliveryOf(r))
	out = append(out, candidate[d:]...)
	return out
}
