package main

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"log"
	"math"
	"os"
	"strings"

	"git.solver4all.com/azaryc2s/tsppd"
)

func main() {
	if len(os.Args) < 2 {
		log.Printf("No arguments passed!")
		return
	}
	dirName := os.Args[1]
	dir, err := ioutil.ReadDir(dirName)
	if err != nil {
		log.Printf("Couldn't open directory %s: %s\n", os.Args[1], err.Error())
		return
	}
	fmt.Printf("Name,Status,Time,Obj,LBound,Gap,Requests,FeasCuts,SECs,GOCuts,CapCuts,ForkCuts,SForkCuts,Comment\n")
	for _, f := range dir {
		fileName := dirName + "/" + f.Name()
		if !strings.Contains(fileName, ".json") {
			continue
		}
		inst := tsppd.Instance{}
		instStr, err := ioutil.ReadFile(fileName)
		if err != nil {
			log.Printf("Couldn't read %s: %s\n", f.Name(), err.Error())
			return
		}
		err = json.Unmarshal(instStr, &inst)
		if err != nil {
			log.Printf("Couldn't parse %s: %s\n", f.Name(), err.Error())
			return
		}
		if inst.Solution == nil {
			fmt.Printf("No solution for %s\n", inst.Name)
			continue
		}
		sol := *inst.Solution

		g, err := tsppd.NewGraphFromInstance(&inst)
		if err != nil {
			log.Printf("Invalid instance %s: %s\n", inst.Name, err.Error())
			continue
		}
		if sol.Route != nil {
			if err = g.CheckTour(sol.Route); err != nil {
				sol.Comment += fmt.Sprintf(" The stored tour is invalid: %s!", err.Error())
			}
		}

		gap := 0.0
		if sol.LBound > 0 {
			gap = math.Round((float64(sol.Obj-sol.LBound)/float64(sol.LBound))*1000) / 1000.0
		}
		c := sol.Cuts
		fmt.Printf("%s,%s,%s,%d,%d,%.4f,%d,%d,%d,%d,%d,%d,%d,%s\n", inst.Name, sol.Status, sol.Time, sol.Obj, sol.LBound, gap, inst.RequestCount, c.FeasibilityCuts, c.SubtourCuts, c.GeneralOrderCuts, c.CapacityCuts, c.ForkCuts, c.SimplifiedForkCuts, sol.Comment)
	}
}
