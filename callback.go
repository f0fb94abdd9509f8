package tsppd

import (
	"time"

	"git.solver4all.com/azaryc2s/gorobi/gurobi"
)

/* Cuts callback. On integer incumbents the feasibility separator runs and its
cuts go in as lazy constraints; on fractional node relaxations each enabled
valid-inequality family runs on its node stride and its cuts go in as user
cuts. The only shared mutable state is the statistics collector. */

func CutsCallback(model *gurobi.Model, cbdata gurobi.CPVoid, where int32, usrdata interface{}) int32 {
	m := usrdata.(*TSPPDModel)
	g := m.Graph
	eps := m.Params.Eps

	if where == gurobi.CB_MIPSOL {
		solA, err := gurobi.CbGetDblArray(cbdata, where, gurobi.CB_MIPSOL_SOL, m.VarCount)
		if err != nil {
			Log(LOG_ERROR, "Couldn't retrieve the incumbent in the callback: %s", err.Error())
			return 0
		}
		sol := ComputeXValues(g, solA[m.XStart:m.XStart+g.ArcCount()], eps)

		start := time.Now()
		cuts := SeparateFeasibilityCuts(g, sol)
		m.Stats.AddTime(CUT_FEASIBILITY, time.Since(start))

		if len(cuts) > 0 {
			Log(LOG_DEBUG, "Adding %d feasibility cuts", len(cuts))
		}
		for _, cut := range cuts {
			err = gurobi.CbLazy(cbdata, len(cut.Ind), cut.Ind, cut.Val, cut.Sense, cut.RHS)
			if err != nil {
				Log(LOG_ERROR, "Couldn't add a feasibility cut: %s", err.Error())
			}
		}
		m.Stats.AddCuts(CUT_FEASIBILITY, len(cuts))
	}

	if where == gurobi.CB_MIPNODE {
		status, err := gurobi.CbGetInt(cbdata, where, gurobi.CB_MIPNODE_STATUS)
		if err != nil || status != gurobi.OPTIMAL {
			return 0
		}
		nodeF, err := gurobi.CbGetDbl(cbdata, where, gurobi.CB_MIPNODE_NODCNT)
		if err != nil {
			Log(LOG_ERROR, "Couldn't retrieve the node count in the callback: %s", err.Error())
			return 0
		}
		node := int(nodeF + 0.5)

		solA, err := gurobi.CbGetDblArray(cbdata, where, gurobi.CB_MIPNODE_REL, m.VarCount)
		if err != nil {
			Log(LOG_ERROR, "Couldn't retrieve the node relaxation in the callback: %s", err.Error())
			return 0
		}
		sol := ComputeXValues(g, solA[m.XStart:m.XStart+g.ArcCount()], eps)

		bc := m.Params.BC

		if bc.SubtourElim.Enabled && node%bc.SubtourElim.CutEveryNNodes == 0 {
			start := time.Now()
			cuts := SeparateSubtourCuts(g, sol, eps)
			m.Stats.AddTime(CUT_SUBTOUR, time.Since(start))
			LogCuts(CUT_SUBTOUR, node, len(cuts))
			addUserCuts(cbdata, cuts)
			m.Stats.AddCuts(CUT_SUBTOUR, len(cuts))
		}

		if bc.GeneralisedOrder.Enabled && node%bc.GeneralisedOrder.CutEveryNNodes == 0 {
			start := time.Now()
			cuts := SeparateGeneralisedOrderCuts(g, sol, eps)
			m.Stats.AddTime(CUT_GENERAL_ORDER, time.Since(start))
			LogCuts(CUT_GENERAL_ORDER, node, len(cuts))
			addUserCuts(cbdata, cuts)
			m.Stats.AddCuts(CUT_GENERAL_ORDER, len(cuts))
		}

		if bc.Capacity.Enabled && node%bc.Capacity.CutEveryNNodes == 0 {
			start := time.Now()
			cuts, err := SeparateCapacityCuts(g, sol, eps)
			m.Stats.AddTime(CUT_CAPACITY, time.Since(start))
			if err != nil {
				// A broken separator invariant is a bug; abort the solve.
				Log(LOG_ERROR, "Capacity separator failed: %s", err.Error())
				return 1
			}
			LogCuts(CUT_CAPACITY, node, len(cuts))
			addUserCuts(cbdata, cuts)
			m.Stats.AddCuts(CUT_CAPACITY, len(cuts))
		}

		if bc.SimplifiedFork.Enabled && node%bc.SimplifiedFork.CutEveryNNodes == 0 {
			start := time.Now()
			cuts := SeparateSimplifiedForkCuts(g, sol, eps)
			m.Stats.AddTime(CUT_SIMPLIFIED_FORK, time.Since(start))
			LogCuts(CUT_SIMPLIFIED_FORK, node, len(cuts))
			addUserCuts(cbdata, cuts)
			m.Stats.AddCuts(CUT_SIMPLIFIED_FORK, len(cuts))
		}

		if bc.Fork.Enabled && node%bc.Fork.CutEveryNNodes == 0 {
			start := time.Now()
			cuts := SeparateForkCuts(g, sol, eps)
			m.Stats.AddTime(CUT_FORK, time.Since(start))
			LogCuts(CUT_FORK, node, len(cuts))
			addUserCuts(cbdata, cuts)
			m.Stats.AddCuts(CUT_FORK, len(cuts))
		}
	}

	return 0
}

func addUserCuts(cbdata gurobi.CPVoid, cuts []Cut) {
	for _, cut := range cuts {
		err := gurobi.CbCut(cbdata, len(cut.Ind), cut.Ind, cut.Val, cut.Sense, cut.RHS)
		if err != nil {
			Log(LOG_ERROR, "Couldn't add a user cut: %s", err.Error())
		}
	}
}
