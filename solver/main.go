/* Copyright 2021, Arkadiusz Zarychta, arkadiusz.zarychta@h-brs.de */
/* Copyright 2021, Gurobi Optimization, LLC */

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io/ioutil"
	"strings"
	"time"

	"git.solver4all.com/azaryc2s/gorobi/gurobi"
	"git.solver4all.com/azaryc2s/tsppd"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/host"
	"github.com/shirou/gopsutil/mem"
)

var (
	sol   tsppd.Solution
	pInst tsppd.Instance

	cuts    tsppd.ArrayStringFlags
	inputF  *string
	outputF *string
	paramsF *string
	logLvl  *int
)

func main() {
	var err error

	flag.Var(&cuts, "cuts", "List of user cut families to enable. Possible: {SEC, GO, CAP, FORK, SFORK}. When given, only the listed families run")
	inputF = flag.String("input", "input.json", "Path to the input instance")
	outputF = flag.String("output", "", "Path to the output file. By default the input file will be overwritten adding the solution")
	paramsF = flag.String("params", "", "Path to a params file overriding the branch-and-cut defaults")
	logLvl = flag.Int("log", 2, "Level of the logging output. Higher value is more verbose. Range 1-4")

	flag.Parse()
	tsppd.InitLoggers(*logLvl)

	hostStat, _ := host.Info()
	cpuStat, _ := cpu.Info()
	vmStat, _ := mem.VirtualMemory()
	sol = tsppd.Solution{Comment: "", System: tsppd.SysInfo{hostStat.Platform, cpuStat[0].ModelName, fmt.Sprintf("%d GB", (vmStat.Total / 1024 / 1024 / 1024))}}

	params := tsppd.DefaultParams()
	if *paramsF != "" {
		params, err = tsppd.LoadParams(*paramsF)
		if err != nil {
			tsppd.Log(tsppd.LOG_ERROR, "At %s: %s\n", *paramsF, err.Error())
			return
		}
	}
	if len(cuts) > 0 {
		if err = applyCutSelection(&params); err != nil {
			tsppd.Log(tsppd.LOG_ERROR, err.Error())
			return
		}
	}

	instStr, err := ioutil.ReadFile(*inputF)
	if err != nil {
		tsppd.Log(tsppd.LOG_ERROR, "At %s: %s\n", *inputF, err.Error())
		return
	}
	err = json.Unmarshal(instStr, &pInst)
	if err != nil {
		tsppd.Log(tsppd.LOG_ERROR, "At %s: %s\n", *inputF, err.Error())
		return
	}
	pInst.Solution = &sol

	g, err := tsppd.NewGraphFromInstance(&pInst)
	if err != nil {
		tsppd.Log(tsppd.LOG_ERROR, "Invalid instance %s: %s\n", *inputF, err.Error())
		return
	}

	heurPath := tsppd.BestInsertionPath(g)
	if heurPath != nil {
		tsppd.Log(tsppd.LOG_INFO, "Best insertion found a starting tour with cost %d: %v", g.PathCost(heurPath), heurPath)
	} else {
		tsppd.Log(tsppd.LOG_INFO, "Best insertion found no starting tour")
	}

	// Create environment
	env, err := gurobi.LoadEnv("tsppd.log")
	if err != nil {
		tsppd.Log(tsppd.LOG_ERROR, "At %s: %s\n", *inputF, err.Error())
		return
	}
	defer env.Free()
	threads, _ := env.GetIntParam(gurobi.INT_PAR_THREADS)
	sol.Comment = fmt.Sprintf("Solver-Settings: SolverDev: Zarychta, Threads=%d, TwoCycles=%t, Subpath=%t, Cuts=%s", threads, params.BC.TwoCyclesElim, params.BC.SubpathElim, cuts.String())

	model, err := tsppd.CreateTSPPDModel(env, g, params, heurPath)
	if err != nil {
		tsppd.Log(tsppd.LOG_ERROR, "At %s: %s\n", *inputF, err.Error())
		return
	}
	defer model.GModel.Free()

	if heurPath != nil {
		err = model.SetWarmStart(heurPath)
		if err != nil {
			tsppd.Log(tsppd.LOG_ERROR, "Couldn't set the heuristic solution: %s\n", err.Error())
		}
	}

	// Write model to '<fileName>.lp'
	lpName := strings.ReplaceAll(*inputF, ".json", ".lp")
	err = model.GModel.Write(lpName)
	if err != nil {
		tsppd.Log(tsppd.LOG_ERROR, "At %s: %s\n", *inputF, err.Error())
		return
	}

	err = model.GModel.SetCallbackFuncGo(tsppd.CutsCallback, model)
	if err != nil {
		tsppd.Log(tsppd.LOG_ERROR, err.Error())
		return
	}

	model.Stats.Reset()
	startTime := time.Now()
	err = model.GModel.Optimize()
	if err != nil {
		tsppd.Log(tsppd.LOG_ERROR, "At %s: %s\n", *inputF, err.Error())
		return
	}
	sol.Time = time.Since(startTime).String()
	tsppd.Log(tsppd.LOG_INFO, "\n---OPTIMIZATION DONE---\n")

	captureSolution(model)
	tsppd.Log(tsppd.LOG_INFO, "Found a TSPPD-Tour with cost %d (%s): %v \n", sol.Obj, sol.Status, sol.Route)
}

// applyCutSelection turns the -cuts list into family toggles: only the named
// user cut families stay enabled. The lazy feasibility cuts always run.
func applyCutSelection(params *tsppd.Params) error {
	params.BC.SubtourElim.Enabled = false
	params.BC.GeneralisedOrder.Enabled = false
	params.BC.Capacity.Enabled = false
	params.BC.Fork.Enabled = false
	params.BC.SimplifiedFork.Enabled = false
	for _, c := range cuts {
		switch c {
		case tsppd.CUT_SUBTOUR:
			params.BC.SubtourElim.Enabled = true
		case tsppd.CUT_GENERAL_ORDER:
			params.BC.GeneralisedOrder.Enabled = true
		case tsppd.CUT_CAPACITY:
			params.BC.Capacity.Enabled = true
		case tsppd.CUT_FORK:
			params.BC.Fork.Enabled = true
		case tsppd.CUT_SIMPLIFIED_FORK:
			params.BC.SimplifiedFork.Enabled = true
		default:
			return fmt.Errorf("unknown cut family: %s", c)
		}
	}
	return nil
}

func captureSolution(model *tsppd.TSPPDModel) {
	defer writeSolution()
	gmodel := model.GModel
	g := model.Graph

	optimstatus, err := gmodel.GetIntAttr(gurobi.INT_ATTR_STATUS)
	if err != nil {
		sol.Comment += fmt.Sprintf("Couldn't retrieve optimization status: %s. ", err.Error())
		return
	}
	solcount, err := gmodel.GetIntAttr(gurobi.INT_ATTR_SOLCOUNT)
	if err != nil {
		sol.Comment += fmt.Sprintf("Couldn't retrieve the solution count: %s. ", err.Error())
		return
	}

	if optimstatus == gurobi.OPTIMAL {
		sol.Optimal = true
		sol.Status = tsppd.STATUS_OPTIMAL
	} else if optimstatus == gurobi.INF_OR_UNBD {
		sol.Status = tsppd.STATUS_INFEASIBLE
		tsppd.Log(tsppd.LOG_ERROR, "Model for %s is infeasible\n", *inputF)
	} else if optimstatus == gurobi.TIME_LIMIT {
		sol.Comment += "Time limit reached. "
		if solcount > 0 {
			sol.Status = tsppd.STATUS_FEASIBLE
		} else {
			sol.Status = tsppd.STATUS_INTERRUPTED
		}
	} else {
		sol.Comment += "The optimization stopped before the time limit without an optimal solution. "
		if solcount > 0 {
			sol.Status = tsppd.STATUS_FEASIBLE
		} else {
			sol.Status = tsppd.STATUS_INTERRUPTED
		}
	}

	sol.Cuts = model.Stats.Report()

	if solcount == 0 {
		return
	}

	objval, err := gmodel.GetDblAttr(gurobi.DBL_ATTR_OBJVAL)
	if err != nil {
		sol.Comment += fmt.Sprintf("Couldn't retrieve the obj-value: %s. ", err.Error())
		return
	}
	sol.Obj = int(objval + 0.5)
	sol.UBound = sol.Obj

	lb, err := gmodel.GetDblAttr(gurobi.DBL_ATTR_OBJBOUND)
	if err != nil {
		sol.Comment += fmt.Sprintf("Couldn't retrieve the lower-bound-value: %s. ", err.Error())
		tsppd.Log(tsppd.LOG_ERROR, err.Error())
	} else {
		sol.LBound = int(lb + 0.5)
	}

	solA, err := gmodel.GetDblAttrArray(gurobi.DBL_ATTR_X, 0, int32(model.VarCount))
	if err != nil {
		sol.Comment += fmt.Sprintf("Couldn't retrieve the array with the decision variables: %s. ", err.Error())
		return
	}
	route, err := model.ExtractTour(solA)
	if err != nil {
		sol.Comment += fmt.Sprintf("Couldn't reconstruct the tour: %s. ", err.Error())
		return
	}
	sol.Route = route
	sol.RouteCost = g.PathCost(route)

	if err = g.CheckTour(route); err != nil {
		sol.Comment += fmt.Sprintf("The computed tour is invalid: %s! ", err.Error())
		tsppd.Log(tsppd.LOG_ERROR, "The computed tour is invalid: %s!", err.Error())
	} else {
		tsppd.Log(tsppd.LOG_INFO, "The computed tour is valid!")
	}
}

func writeSolution() {
	jsonInst, err := json.MarshalIndent(pInst, "", "\t")
	if err != nil {
		tsppd.Log(tsppd.LOG_ERROR, "At %s: %s\n", *inputF, err.Error())
		return
	}
	jsonInst = []byte(tsppd.SanitizeJsonArrayLineBreaks(string(jsonInst)))
	var fileName string
	if *outputF == "" {
		fileName = *inputF //overwrite the input file
	} else {
		fileName = *outputF
	}
	err = ioutil.WriteFile(fileName, jsonInst, 0644)
	if err != nil {
		tsppd.Log(tsppd.LOG_ERROR, "At %s: %s\n", *inputF, err.Error())
		return
	}
}
