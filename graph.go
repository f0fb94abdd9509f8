package tsppd

import (
	"fmt"
)

// Arc is one allowed arc of the instance graph. The slice of all arcs in
// row-major (from, to) order defines the column index of the x and y
// variables: the k-th allowed arc is the k-th variable of each block.
type Arc struct {
	From int
	To   int
}

// Graph is the immutable instance graph: source depot 0, pickups 1..n,
// deliveries n+1..2n (delivery of request i is node n+i), sink depot 2n+1.
// A negative cost marks a forbidden arc; self loops are always forbidden.
type Graph struct {
	N        int
	Capacity int
	Cost     [][]int
	Demand   []int
	Draught  []int

	arcs   []Arc
	arcIdx [][]int
}

func NewGraph(n int, capacity int, cost [][]int, demand []int, draught []int) (*Graph, error) {
	nodes := 2*n + 2
	if n < 1 {
		return nil, fmt.Errorf("instance needs at least one request, got n=%d", n)
	}
	if capacity < 1 {
		return nil, fmt.Errorf("vehicle capacity must be positive, got %d", capacity)
	}
	if len(cost) != nodes {
		return nil, fmt.Errorf("cost matrix has %d rows, want %d", len(cost), nodes)
	}
	for i := 0; i < nodes; i++ {
		if len(cost[i]) != nodes {
			return nil, fmt.Errorf("cost matrix row %d has %d columns, want %d", i, len(cost[i]), nodes)
		}
	}
	if len(demand) != nodes {
		return nil, fmt.Errorf("demand vector has length %d, want %d", len(demand), nodes)
	}
	if len(draught) != nodes {
		return nil, fmt.Errorf("draught vector has length %d, want %d", len(draught), nodes)
	}
	if demand[0] != 0 || demand[nodes-1] != 0 {
		return nil, fmt.Errorf("depot demands must be 0, got %d and %d", demand[0], demand[nodes-1])
	}
	for i := 1; i <= n; i++ {
		if demand[i] <= 0 {
			return nil, fmt.Errorf("pickup %d must have positive demand, got %d", i, demand[i])
		}
		if demand[i] > capacity {
			return nil, fmt.Errorf("pickup %d demand %d exceeds capacity %d", i, demand[i], capacity)
		}
		if demand[n+i] != -demand[i] {
			return nil, fmt.Errorf("delivery %d demand %d must be -%d", n+i, demand[n+i], demand[i])
		}
	}
	for i := 0; i < nodes; i++ {
		if draught[i] < 0 {
			return nil, fmt.Errorf("draught of node %d must be non-negative, got %d", i, draught[i])
		}
		if draught[i] < demand[i] {
			return nil, fmt.Errorf("draught %d of node %d cannot hold its own demand %d", draught[i], i, demand[i])
		}
	}

	g := &Graph{N: n, Capacity: capacity, Cost: cost, Demand: demand, Draught: draught}
	g.arcIdx = make([][]int, nodes)
	for i := 0; i < nodes; i++ {
		g.arcIdx[i] = make([]int, nodes)
		for j := 0; j < nodes; j++ {
			if i != j && cost[i][j] >= 0 {
				g.arcIdx[i][j] = len(g.arcs)
				g.arcs = append(g.arcs, Arc{From: i, To: j})
			} else {
				g.arcIdx[i][j] = -1
			}
		}
	}
	return g, nil
}

func (g *Graph) NumNodes() int {
	return 2*g.N + 2
}

func (g *Graph) Source() int {
	return 0
}

func (g *Graph) Sink() int {
	return 2*g.N + 1
}

func (g *Graph) IsPickup(i int) bool {
	return i >= 1 && i <= g.N
}

func (g *Graph) IsDelivery(i int) bool {
	return i >= g.N+1 && i <= 2*g.N
}

// DeliveryOf returns the delivery node of the request picked up at i.
func (g *Graph) DeliveryOf(i int) int {
	return i + g.N
}

// PickupOf returns the pickup node of the request delivered at i.
func (g *Graph) PickupOf(i int) int {
	return i - g.N
}

func (g *Graph) ArcCount() int {
	return len(g.arcs)
}

// ArcIndex returns the column index of arc (i,j), or -1 if the arc is
// forbidden.
func (g *Graph) ArcIndex(i, j int) int {
	return g.arcIdx[i][j]
}

func (g *Graph) Arcs() []Arc {
	return g.arcs
}

// maxLoadAt is the largest load the vehicle may carry while at node i.
func (g *Graph) maxLoadAt(i int) int {
	if g.Draught[i] < g.Capacity {
		return g.Draught[i]
	}
	return g.Capacity
}

// alpha is the lower linking coefficient of arc (i,j): y(i,j) >= alpha * x(i,j).
func (g *Graph) alpha(i, j int) int {
	n := g.N
	if i >= 1 && i <= n && j >= 1 && j <= n {
		return g.Demand[i]
	}
	if i >= n+1 && i <= 2*n && j >= n+1 && j <= 2*n {
		return -g.Demand[j]
	}
	if i >= 1 && i <= n && j >= n+1 && j <= 2*n {
		if j != i+n {
			return g.Demand[i] - g.Demand[j]
		}
		return g.Demand[i]
	}
	return 0
}

// beta is the upper linking coefficient of arc (i,j): y(i,j) <= beta * x(i,j).
func (g *Graph) beta(i, j int) int {
	b := g.Capacity - maxInt(0, g.Demand[j])
	if g.Draught[i] < b {
		b = g.Draught[i]
	}
	if d := g.Draught[j] - maxInt(0, g.Demand[j]); d < b {
		b = d
	}
	return b
}

// SimulateLoads walks a (partial) path starting at the source depot and
// returns the load carried after leaving each position. It fails on the first
// precedence, capacity or draught violation.
func (g *Graph) SimulateLoads(path []int) ([]int, error) {
	if len(path) == 0 || path[0] != g.Source() {
		return nil, fmt.Errorf("path must start at the source depot")
	}
	loads := make([]int, len(path))
	picked := make([]bool, g.NumNodes())
	load := 0
	for t := 1; t < len(path); t++ {
		v := path[t]
		if v == g.Source() {
			return nil, fmt.Errorf("path revisits the source depot at position %d", t)
		}
		if v == g.Sink() {
			if load != 0 {
				return nil, fmt.Errorf("vehicle reaches the sink carrying %d", load)
			}
			loads[t] = 0
			continue
		}
		if g.IsDelivery(v) && !picked[g.PickupOf(v)] {
			return nil, fmt.Errorf("delivery %d visited before its pickup %d", v, g.PickupOf(v))
		}
		if g.IsPickup(v) {
			picked[v] = true
		}
		before := load
		load += g.Demand[v]
		if load < 0 {
			return nil, fmt.Errorf("negative load %d after node %d", load, v)
		}
		if load > g.Capacity {
			return nil, fmt.Errorf("load %d after node %d exceeds capacity %d", load, v, g.Capacity)
		}
		if before > g.Draught[v] || load > g.Draught[v] {
			return nil, fmt.Errorf("load at node %d exceeds its draught %d", v, g.Draught[v])
		}
		loads[t] = load
	}
	return loads, nil
}

// PathCost sums the arc costs of a path, or returns -1 if it uses a
// forbidden arc.
func (g *Graph) PathCost(path []int) int {
	cost := 0
	for t := 1; t < len(path); t++ {
		c := g.Cost[path[t-1]][path[t]]
		if c < 0 {
			return -1
		}
		cost += c
	}
	return cost
}

// CheckTour validates a complete tour: a Hamiltonian path from the source to
// the sink over allowed arcs, each pickup before its delivery, and the load
// within capacity and draught bounds everywhere.
func (g *Graph) CheckTour(path []int) error {
	if len(path) != g.NumNodes() {
		return fmt.Errorf("tour visits %d nodes, want %d", len(path), g.NumNodes())
	}
	if path[0] != g.Source() || path[len(path)-1] != g.Sink() {
		return fmt.Errorf("tour must run from node %d to node %d", g.Source(), g.Sink())
	}
	seen := make([]bool, g.NumNodes())
	for _, v := range path {
		if v < 0 || v >= g.NumNodes() {
			return fmt.Errorf("node %d out of range", v)
		}
		if seen[v] {
			return fmt.Errorf("node %d visited twice", v)
		}
		seen[v] = true
	}
	if g.PathCost(path) < 0 {
		return fmt.Errorf("tour uses a forbidden arc")
	}
	_, err := g.SimulateLoads(path)
	return err
}

// IsPathEliminable reports whether the 3-node path i -> j -> k can appear in
// no feasible tour: either a delivery precedes its own pickup inside the
// window, or no entering load satisfies the capacity and draught bounds along
// it. Callers pass pickup/delivery nodes only.
func (g *Graph) IsPathEliminable(i, j, k int) bool {
	if i == j || j == k || i == k {
		return true
	}
	if g.IsDelivery(i) && (g.PickupOf(i) == j || g.PickupOf(i) == k) {
		return true
	}
	if g.IsDelivery(j) && g.PickupOf(j) == k {
		return true
	}

	// Feasible window for the load carried out of i.
	lo := 0
	if g.Demand[i] > 0 {
		lo = g.Demand[i]
	}
	lo = maxInt(lo, -g.Demand[j])
	lo = maxInt(lo, -g.Demand[j]-g.Demand[k])

	hi := g.maxLoadAt(i)
	hi = minInt(hi, g.beta(i, j))
	hi = minInt(hi, g.beta(j, k)-g.Demand[j])
	hi = minInt(hi, g.maxLoadAt(j)-g.Demand[j])
	hi = minInt(hi, g.maxLoadAt(k)-g.Demand[j]-g.Demand[k])

	return lo > hi
}

// NewGraphFromInstance builds the graph of an instance, computing the cost
// matrix from the coordinates when no explicit edge weights are present.
func NewGraphFromInstance(inst *Instance) (*Graph, error) {
	weights := inst.EdgeWeights
	if weights == nil && inst.NodeCoordinates != nil {
		weights = CalcEdgeDist(inst.NodeCoordinates, inst.EdgeWeightType)
	}
	return NewGraph(inst.RequestCount, inst.Capacity, weights, inst.Demands, inst.Draughts)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
