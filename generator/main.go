package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"math/rand"
	"time"

	"git.solver4all.com/azaryc2s/tsppd"
)

var requests tsppd.ArrayIntFlags
var name *string
var output *string
var count *int
var capacity *int
var qMax *int
var xTo *int
var yTo *int
var w *string

func main() {
	flag.Var(&requests, "n", "List of request counts")
	name = flag.String("name", "zarychta", "Name for the instance")
	output = flag.String("outputDir", ".", "Output directory")
	count = flag.Int("count", 1, "Number of instances per combination")
	capacity = flag.Int("capacity", 10, "Vehicle capacity")
	qMax = flag.Int("qmax", 5, "Largest request demand")
	xTo = flag.Int("x", 10000, "Max value on the x-axis")
	yTo = flag.Int("y", 10000, "Max value on the y-axis")
	w = flag.String("w", "EUC_2D", "EDGE_WEIGHT_TYPE - how the distance between nodes is calculated.")

	flag.Parse()

	if *qMax > *capacity {
		log.Printf("qmax %d cannot exceed the capacity %d\n", *qMax, *capacity)
		return
	}

	for l := 0; l < *count; l++ {
		rand.Seed(time.Now().UnixNano())
		for i := 0; i < len(requests); i++ {
			n := requests[i]
			nodes := 2*n + 2

			coordinatesArray := make([][]float64, nodes)
			for node := 0; node < nodes; node++ {
				x := rand.Intn(*xTo)
				y := rand.Intn(*yTo)
				coordinatesArray[node] = []float64{float64(x), float64(y)}
			}
			edgeWeights := tsppd.CalcEdgeDist(coordinatesArray, *w)

			demands := make([]int, nodes)
			draughts := make([]int, nodes)
			draughts[0] = *capacity
			draughts[nodes-1] = *capacity
			for r := 1; r <= n; r++ {
				q := 1 + rand.Intn(*qMax)
				demands[r] = q
				demands[n+r] = -q
				draughts[r] = q + rand.Intn(*capacity-q+1)
				draughts[n+r] = q + rand.Intn(*capacity-q+1)
			}

			forbidStructuralArcs(edgeWeights, n)

			comment := fmt.Sprintf("%s instance Nr. %d with %d requests, capacity %d and demands up to %d", *name, l, n, *capacity, *qMax)
			instName := fmt.Sprintf("%s_%d_%d_%d", *name, n, *capacity, l)
			inst := tsppd.Instance{Name: instName, Comment: comment, Type: "TSPPD", RequestCount: n, Capacity: *capacity, NodeCoordinates: coordinatesArray, EdgeWeights: edgeWeights, Demands: demands, Draughts: draughts, DisplayDataType: "COORD_DISPLAY", EdgeWeightType: *w}

			jsonInst, err := json.MarshalIndent(inst, "", "\t")
			if err != nil {
				log.Fatal(err)
			}

			jsonInst = []byte(tsppd.SanitizeJsonArrayLineBreaks(string(jsonInst)))
			err = ioutil.WriteFile(fmt.Sprintf("%s/%s.json", *output, instName), jsonInst, 0644)
			if err != nil {
				log.Fatal(err)
			}
		}
	}
}

// forbidStructuralArcs marks the arcs no tour can use: into the source, out
// of the sink, source to a delivery or the sink, a pickup straight to the
// sink, a delivery back to its own pickup, and self loops.
func forbidStructuralArcs(edgeWeights [][]int, n int) {
	nodes := 2*n + 2
	for i := 0; i < nodes; i++ {
		edgeWeights[i][i] = -1
		edgeWeights[i][0] = -1
		edgeWeights[nodes-1][i] = -1
	}
	edgeWeights[0][nodes-1] = -1
	for r := 1; r <= n; r++ {
		edgeWeights[0][n+r] = -1
		edgeWeights[r][nodes-1] = -1
		edgeWeights[n+r][r] = -1
	}
}
