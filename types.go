package tsppd

const (
	CUT_FEASIBILITY     = "FEAS"
	CUT_SUBTOUR         = "SEC"
	CUT_GENERAL_ORDER   = "GO"
	CUT_CAPACITY        = "CAP"
	CUT_FORK            = "FORK"
	CUT_SIMPLIFIED_FORK = "SFORK"

	STATUS_OPTIMAL     = "proven-optimal"
	STATUS_FEASIBLE    = "feasible-no-proof"
	STATUS_INFEASIBLE  = "infeasible"
	STATUS_INTERRUPTED = "interrupted"
)

type Instance struct {
	Name    string `json:"name"`
	Comment string `json:"comment"`
	Type    string `json:"type"`

	RequestCount    int         `json:"request_count"`
	Capacity        int         `json:"capacity"`
	DisplayDataType string      `json:"display_data_type"`
	EdgeWeightType  string      `json:"edge_weight_type"`
	NodeCoordinates [][]float64 `json:"node_coordinates"`
	EdgeWeights     [][]int     `json:"edge_weights"`
	Demands         []int       `json:"demands"`
	Draughts        []int       `json:"draughts"`

	Solution *Solution `json:"solution,omitempty"`
}

type Solution struct {
	Obj       int    `json:"obj"`
	LBound    int    `json:"lbound"`
	UBound    int    `json:"ubound"`
	Optimal   bool   `json:"optimal"`
	Status    string `json:"status"`
	RouteCost int    `json:"route_cost"`
	Route     []int  `json:"route"`

	Cuts CutReport `json:"cuts"`

	Time    string  `json:"time"`
	System  SysInfo `json:"system"`
	Comment string  `json:"comment"`
}

// SysInfo saves the basic system information
type SysInfo struct {
	Platform string
	CPU      string
	RAM      string
}

// CutReport is the persisted per-family key/value block: how many cuts each
// separator added and how long it spent separating.
type CutReport struct {
	FeasibilityCuts    int64 `json:"feasibility_cuts"`
	SubtourCuts        int64 `json:"subtour_cuts"`
	GeneralOrderCuts   int64 `json:"generalised_order_cuts"`
	CapacityCuts       int64 `json:"capacity_cuts"`
	ForkCuts           int64 `json:"fork_cuts"`
	SimplifiedForkCuts int64 `json:"simplified_fork_cuts"`

	FeasibilitySeconds    float64 `json:"feasibility_seconds"`
	SubtourSeconds        float64 `json:"subtour_seconds"`
	GeneralOrderSeconds   float64 `json:"generalised_order_seconds"`
	CapacitySeconds       float64 `json:"capacity_seconds"`
	ForkSeconds           float64 `json:"fork_seconds"`
	SimplifiedForkSeconds float64 `json:"simplified_fork_seconds"`
}

type CutFamilyParams struct {
	Enabled        bool `json:"enabled"`
	CutEveryNNodes int  `json:"cut_every_n_nodes"`
}

type BCParams struct {
	TwoCyclesElim    bool            `json:"two_cycles_elim"`
	SubpathElim      bool            `json:"subpath_elim"`
	SubtourElim      CutFamilyParams `json:"subtour_elim"`
	GeneralisedOrder CutFamilyParams `json:"generalised_order"`
	Capacity         CutFamilyParams `json:"capacity"`
	Fork             CutFamilyParams `json:"fork"`
	SimplifiedFork   CutFamilyParams `json:"simplified_fork"`
}

type Params struct {
	Eps  float64  `json:"eps"`
	KOpt *int     `json:"k_opt,omitempty"`
	BC   BCParams `json:"bc"`
}
