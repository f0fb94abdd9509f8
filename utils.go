package tsppd

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"math"
	"regexp"
)

func CalcEdgeDist(coordinates [][]float64, distType string) [][]int {
	n := len(coordinates)
	result := make([][]int, n)
	for node := 0; node < n; node++ {
		result[node] = make([]int, n)
		for node2 := 0; node2 < node; node2++ {
			xDist := coordinates[node][0] - coordinates[node2][0]
			yDist := coordinates[node][1] - coordinates[node2][1]
			var distance int
			if distType == "EUC_2D" {
				distance = int(math.Sqrt(math.Pow(xDist, 2)+math.Pow(yDist, 2)) + 0.5)
			} else if distType == "CEIL_2D" {
				distance = int(math.Ceil(math.Sqrt(math.Pow(xDist, 2) + math.Pow(yDist, 2))))
			}
			result[node][node2] = distance
			result[node2][node] = distance
		}
	}
	return result
}

func DefaultParams() Params {
	return Params{
		Eps: 1e-6,
		BC: BCParams{
			TwoCyclesElim:    true,
			SubpathElim:      true,
			SubtourElim:      CutFamilyParams{Enabled: true, CutEveryNNodes: 1},
			GeneralisedOrder: CutFamilyParams{Enabled: true, CutEveryNNodes: 1},
			Capacity:         CutFamilyParams{Enabled: true, CutEveryNNodes: 1},
			Fork:             CutFamilyParams{Enabled: true, CutEveryNNodes: 1},
			SimplifiedFork:   CutFamilyParams{Enabled: true, CutEveryNNodes: 1},
		},
	}
}

// LoadParams reads a params JSON file on top of the defaults. Missing fields
// keep their default values, so a params file only has to name what it changes.
func LoadParams(fileName string) (Params, error) {
	params := DefaultParams()
	raw, err := ioutil.ReadFile(fileName)
	if err != nil {
		return params, err
	}
	err = json.Unmarshal(raw, &params)
	if err != nil {
		return params, err
	}
	if err = checkParams(params); err != nil {
		return params, err
	}
	return params, nil
}

func checkParams(params Params) error {
	if params.Eps <= 0 {
		return fmt.Errorf("eps must be positive, got %g", params.Eps)
	}
	families := map[string]CutFamilyParams{
		"subtour_elim":      params.BC.SubtourElim,
		"generalised_order": params.BC.GeneralisedOrder,
		"capacity":          params.BC.Capacity,
		"fork":              params.BC.Fork,
		"simplified_fork":   params.BC.SimplifiedFork,
	}
	for name, f := range families {
		if f.CutEveryNNodes < 1 {
			return fmt.Errorf("bc.%s.cut_every_n_nodes must be >= 1, got %d", name, f.CutEveryNNodes)
		}
	}
	if params.KOpt != nil && *params.KOpt < 0 {
		return fmt.Errorf("k_opt must be >= 0, got %d", *params.KOpt)
	}
	return nil
}

func Print2DArray(a [][]int) string {
	res := ""
	for _, x := range a {
		for _, y := range x {
			res += fmt.Sprintf("%d,", y)
		}
		res += fmt.Sprintln("")
	}
	return res
}

func SanitizeJsonArrayLineBreaks(json string) string {
	res := fmt.Sprintf("%s", json)
	var numbers = regexp.MustCompile(`\s*([-]?[0-9]+(\.[0-9]+)?),\s+([-]?[0-9]+(\.[0-9]+)?)(,)?`)
	var brackets = regexp.MustCompile(`\[(([-]?[0-9]+(\.[0-9]+)?,)+[-]?[0-9]+(\.[0-9]+)?)\s+\](,?)(\s+)`)
	for numbers.MatchString(res) {
		res = numbers.ReplaceAllString(res, "$1,$3$5")
	}
	for brackets.MatchString(res) {
		res = brackets.ReplaceAllString(res, "[$1]$5$6")
	}
	return res
}
