package tsppd

import (
	"fmt"

	"git.solver4all.com/azaryc2s/gorobi/gurobi"
)

// TSPPDModel bundles the gurobi model with everything the callback needs:
// the instance graph, the parameters, the variable layout and the statistics.
type TSPPDModel struct {
	GModel *gurobi.Model
	GEnv   *gurobi.Env
	Graph  *Graph
	Params Params
	Stats  *CutStats

	VarNames []string
	XStart   int
	YStart   int
	VarCount int
	RefPath  []int
}

// CreateTSPPDModel builds the base MIP: binary arc variables x with the arc
// costs as objective, integer load variables y in [0, capacity], degree rows,
// load-flow rows, the y linking rows and the optional a-priori
// strengthenings. refPath is the reference tour for the k-opt restriction;
// it may be nil when k_opt is unset.
func CreateTSPPDModel(env *gurobi.Env, g *Graph, params Params, refPath []int) (*TSPPDModel, error) {
	var err error
	if err = checkParams(params); err != nil {
		return nil, err
	}

	arcCount := g.ArcCount()
	xStart := 0
	yStart := arcCount
	varCount := 2 * arcCount

	objFun := make([]float64, varCount)
	upper := make([]float64, varCount)
	varType := make([]int8, varCount)
	varNames := make([]string, varCount)
	for k, arc := range g.Arcs() {
		objFun[xStart+k] = float64(g.Cost[arc.From][arc.To])
		upper[xStart+k] = 1.0
		varType[xStart+k] = gurobi.BINARY
		varNames[xStart+k] = fmt.Sprintf("x_%d_%d", arc.From, arc.To)

		upper[yStart+k] = float64(g.Capacity)
		varType[yStart+k] = gurobi.INTEGER
		varNames[yStart+k] = fmt.Sprintf("y_%d_%d", arc.From, arc.To)
	}

	model, err := env.NewModel("tsppd", int32(varCount), objFun, nil, upper, varType, varNames)
	if err != nil {
		return nil, err
	}

	err = model.SetIntAttr(gurobi.INT_ATTR_MODELSENSE, gurobi.MINIMIZE)
	if err != nil {
		return nil, err
	}

	// Degree rows: one arc out of every node but the sink, one arc into every
	// node but the source.
	Log(LOG_INFO, "Creating and setting the degree constraints")
	for i := 0; i <= 2*g.N; i++ {
		var (
			ind []int32
			val []float64
		)
		for j := 0; j < g.NumNodes(); j++ {
			if k := g.ArcIndex(i, j); k != -1 {
				ind = append(ind, int32(xStart+k))
				val = append(val, 1.0)
			}
		}
		err = model.AddConstr(ind, val, gurobi.EQUAL, 1.0, fmt.Sprintf("outdegree_%d", i))
		if err != nil {
			Log(LOG_ERROR, "Error adding outdegree_%d: %s", i, err.Error())
			return nil, err
		}
	}
	for j := 1; j <= 2*g.N+1; j++ {
		var (
			ind []int32
			val []float64
		)
		for i := 0; i < g.NumNodes(); i++ {
			if k := g.ArcIndex(i, j); k != -1 {
				ind = append(ind, int32(xStart+k))
				val = append(val, 1.0)
			}
		}
		err = model.AddConstr(ind, val, gurobi.EQUAL, 1.0, fmt.Sprintf("indegree_%d", j))
		if err != nil {
			Log(LOG_ERROR, "Error adding indegree_%d: %s", j, err.Error())
			return nil, err
		}
	}

	// Gavish-Graves load flow: what leaves node i carries q(i) more than what
	// arrived.
	Log(LOG_INFO, "Creating and setting the load flow constraints")
	for i := 1; i <= 2*g.N; i++ {
		var (
			ind []int32
			val []float64
		)
		for j := 0; j < g.NumNodes(); j++ {
			if k := g.ArcIndex(i, j); k != -1 {
				ind = append(ind, int32(yStart+k))
				val = append(val, 1.0)
			}
			if k := g.ArcIndex(j, i); k != -1 {
				ind = append(ind, int32(yStart+k))
				val = append(val, -1.0)
			}
		}
		err = model.AddConstr(ind, val, gurobi.EQUAL, float64(g.Demand[i]), fmt.Sprintf("load_%d", i))
		if err != nil {
			Log(LOG_ERROR, "Error adding load_%d: %s", i, err.Error())
			return nil, err
		}
	}

	// The vehicle leaves the source depot empty.
	{
		var (
			ind []int32
			val []float64
		)
		for j := 0; j < g.NumNodes(); j++ {
			if k := g.ArcIndex(0, j); k != -1 {
				ind = append(ind, int32(yStart+k))
				val = append(val, 1.0)
			}
		}
		err = model.AddConstr(ind, val, gurobi.EQUAL, 0.0, "initial_load")
		if err != nil {
			Log(LOG_ERROR, "Error adding initial_load: %s", err.Error())
			return nil, err
		}
	}

	// Linking rows: alpha(i,j)*x <= y <= beta(i,j)*x per arc.
	Log(LOG_INFO, "Creating and setting the load linking constraints")
	for k, arc := range g.Arcs() {
		ind := []int32{int32(xStart + k), int32(yStart + k)}

		lowVal := []float64{float64(g.alpha(arc.From, arc.To)), -1.0}
		err = model.AddConstr(ind, lowVal, gurobi.LESS_EQUAL, 0.0, fmt.Sprintf("y_lower_%d_%d", arc.From, arc.To))
		if err != nil {
			Log(LOG_ERROR, "Error adding y_lower_%d_%d: %s", arc.From, arc.To, err.Error())
			return nil, err
		}

		upVal := []float64{float64(g.beta(arc.From, arc.To)), -1.0}
		err = model.AddConstr(ind, upVal, gurobi.GREATER_EQUAL, 0.0, fmt.Sprintf("y_upper_%d_%d", arc.From, arc.To))
		if err != nil {
			Log(LOG_ERROR, "Error adding y_upper_%d_%d: %s", arc.From, arc.To, err.Error())
			return nil, err
		}
	}

	if params.BC.TwoCyclesElim {
		Log(LOG_INFO, "Creating and setting the 2-cycle elimination constraints")
		for _, pair := range TwoCyclePairs(g) {
			i, j := pair[0], pair[1]
			ind := []int32{int32(xStart + g.ArcIndex(i, j)), int32(xStart + g.ArcIndex(j, i))}
			val := []float64{1.0, 1.0}
			err = model.AddConstr(ind, val, gurobi.LESS_EQUAL, 1.0, fmt.Sprintf("tce_%d_%d", i, j))
			if err != nil {
				Log(LOG_ERROR, "Error adding tce_%d_%d: %s", i, j, err.Error())
				return nil, err
			}
		}
	}

	if params.BC.SubpathElim {
		Log(LOG_INFO, "Creating and setting the subpath elimination constraints")
		for _, tri := range EliminableTriples(g) {
			i, j, k := tri[0], tri[1], tri[2]
			ind := []int32{int32(xStart + g.ArcIndex(i, j)), int32(xStart + g.ArcIndex(j, k))}
			val := []float64{1.0, 1.0}
			err = model.AddConstr(ind, val, gurobi.LESS_EQUAL, 1.0, fmt.Sprintf("sube_%d_%d_%d", i, j, k))
			if err != nil {
				Log(LOG_ERROR, "Error adding sube_%d_%d_%d: %s", i, j, k, err.Error())
				return nil, err
			}
		}
	}

	if params.KOpt != nil && refPath != nil {
		Log(LOG_INFO, "Creating and setting the %d-opt neighbourhood constraint", *params.KOpt)
		ind, val, rhs, kerr := KOptRow(g, refPath, *params.KOpt)
		if kerr != nil {
			return nil, kerr
		}
		err = model.AddConstr(ind, val, gurobi.GREATER_EQUAL, rhs, "k_opt_constraint")
		if err != nil {
			Log(LOG_ERROR, "Error adding k_opt_constraint: %s", err.Error())
			return nil, err
		}
	}

	// Lazy feasibility cuts and user cuts on our own rows both need these.
	err = model.SetIntParam(gurobi.INT_PAR_LAZYCONSTRAINTS, 1)
	if err != nil {
		return nil, err
	}
	err = model.SetIntParam(gurobi.INT_PAR_PRECRUSH, 1)
	if err != nil {
		return nil, err
	}

	return &TSPPDModel{
		GModel:   model,
		GEnv:     env,
		Graph:    g,
		Params:   params,
		Stats:    NewCutStats(),
		VarNames: varNames,
		XStart:   xStart,
		YStart:   yStart,
		VarCount: varCount,
		RefPath:  refPath,
	}, nil
}

// TwoCyclePairs lists the unordered node pairs whose arcs exist in both
// directions.
func TwoCyclePairs(g *Graph) [][2]int {
	var pairs [][2]int
	for i := 0; i < g.NumNodes(); i++ {
		for j := i + 1; j < g.NumNodes(); j++ {
			if g.ArcIndex(i, j) != -1 && g.ArcIndex(j, i) != -1 {
				pairs = append(pairs, [2]int{i, j})
			}
		}
	}
	return pairs
}

// EliminableTriples lists the pickup/delivery triples (i,j,k) whose arcs
// exist and whose 3-node path can appear in no feasible tour.
func EliminableTriples(g *Graph) [][3]int {
	var triples [][3]int
	for i := 1; i <= 2*g.N; i++ {
		for j := 1; j <= 2*g.N; j++ {
			for k := 1; k <= 2*g.N; k++ {
				if g.ArcIndex(i, j) != -1 && g.ArcIndex(j, k) != -1 && g.IsPathEliminable(i, j, k) {
					triples = append(triples, [3]int{i, j, k})
				}
			}
		}
	}
	return triples
}

// KOptRow builds the k-opt restriction row: the next incumbent must keep all
// but at most k arcs of the reference tour.
func KOptRow(g *Graph, refPath []int, k int) ([]int32, []float64, float64, error) {
	if err := g.CheckTour(refPath); err != nil {
		return nil, nil, 0, fmt.Errorf("k-opt reference tour is not feasible: %s", err.Error())
	}
	var (
		ind []int32
		val []float64
	)
	for t := 1; t < len(refPath); t++ {
		ind = append(ind, int32(g.ArcIndex(refPath[t-1], refPath[t])))
		val = append(val, 1.0)
	}
	return ind, val, float64(len(ind) - k), nil
}

// SetWarmStart loads a feasible tour as the engine's starting solution, with
// the load variables derived by simulating the tour.
func (m *TSPPDModel) SetWarmStart(path []int) error {
	if err := m.Graph.CheckTour(path); err != nil {
		return err
	}
	loads, err := m.Graph.SimulateLoads(path)
	if err != nil {
		return err
	}
	start := make([]float64, m.VarCount)
	for t := 1; t < len(path); t++ {
		k := m.Graph.ArcIndex(path[t-1], path[t])
		start[m.XStart+k] = 1.0
		start[m.YStart+k] = float64(loads[t-1])
	}
	return m.GModel.SetDblAttrArray(gurobi.DBL_ATTR_START, 0, start)
}

// ExtractTour rebuilds the visiting order from an integer solution array.
func (m *TSPPDModel) ExtractTour(solA []float64) ([]int, error) {
	g := m.Graph
	path := []int{g.Source()}
	seen := make([]bool, g.NumNodes())
	seen[g.Source()] = true
	at := g.Source()
	for at != g.Sink() {
		next := -1
		for j := 0; j < g.NumNodes(); j++ {
			if k := g.ArcIndex(at, j); k != -1 && solA[m.XStart+k] > 0.5 {
				next = j
				break
			}
		}
		if next == -1 {
			return nil, fmt.Errorf("no outgoing arc selected at node %d", at)
		}
		if seen[next] {
			return nil, fmt.Errorf("solution revisits node %d", next)
		}
		path = append(path, next)
		seen[next] = true
		at = next
	}
	if len(path) != g.NumNodes() {
		return nil, fmt.Errorf("solution path visits %d of %d nodes", len(path), g.NumNodes())
	}
	return path, nil
}
