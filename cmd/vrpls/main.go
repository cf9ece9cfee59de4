// Command vrpls is the CLI stand-in for the "surrounding collaborator"
// that does input parsing and JSON serialization around the pure
// internal/engine core (spec §1) — the api package's request/response
// handling, mirrored here in local types without the HTTP server.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"vrpls/internal/config"
	"vrpls/internal/engine"
	"vrpls/internal/heuristic"
	"vrpls/internal/matrix"
	"vrpls/internal/model"
)

func main() {
	if len(os.Args) < 2 || os.Args[1] != "run" {
		fmt.Fprintln(os.Stderr, "usage: vrpls run -problem problem.json [-config vrpls.yaml]")
		os.Exit(2)
	}

	fs := flag.NewFlagSet("run", flag.ExitOnError)
	problemPath := fs.String("problem", "", "path to a JSON problem file")
	configPath := fs.String("config", "", "path to a YAML config file")
	_ = fs.Parse(os.Args[2:])

	if *problemPath == "" {
		fmt.Fprintln(os.Stderr, "vrpls run: -problem is required")
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "vrpls: %v\n", err)
		os.Exit(1)
	}

	b, err := os.ReadFile(*problemPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "vrpls: reading problem file: %v\n", err)
		os.Exit(1)
	}
	var prob problem
	if err := json.Unmarshal(b, &prob); err != nil {
		fmt.Fprintf(os.Stderr, "vrpls: parsing problem file: %v\n", err)
		os.Exit(1)
	}

	in := prob.toInput()
	regretCoeff := cfg.RegretCoeff
	if prob.RegretCoeff != nil {
		regretCoeff = *prob.RegretCoeff
	}
	iterationCap := cfg.IterationCap
	if prob.IterationCap > 0 {
		iterationCap = prob.IterationCap
	}

	rh := heuristic.Greedy{}
	sol := heuristic.SeedSolution(in, rh, regretCoeff)
	ls := engine.New(in, sol, rh)
	ls.MaxRounds = iterationCap
	ls.Run(context.Background())

	fmt.Println(string(mustMarshalResult(in, ls)))
}

// problem mirrors api.OptimizeRequest's shape so the CLI and HTTP
// entrypoints accept the same JSON.
type problem struct {
	Jobs         []jobDTO     `json:"jobs"`
	Vehicles     []vehicleDTO `json:"vehicles"`
	SpeedKph     float64      `json:"speedKph,omitempty"`
	RegretCoeff  *float64     `json:"regretCoeff,omitempty"`
	IterationCap int          `json:"iterationCap,omitempty"`
}

type timeWindowDTO struct {
	Earliest int64 `json:"earliest"`
	Latest   int64 `json:"latest"`
}

type jobDTO struct {
	ID          int             `json:"id"`
	Lat         float64         `json:"lat"`
	Lng         float64         `json:"lng"`
	Amount      []float64       `json:"amount"`
	Skills      []string        `json:"skills,omitempty"`
	ServiceSec  int64           `json:"serviceSec"`
	TimeWindows []timeWindowDTO `json:"timeWindows,omitempty"`
}

type vehicleDTO struct {
	ID         int       `json:"id"`
	Capacity   []float64 `json:"capacity"`
	Skills     []string  `json:"skills,omitempty"`
	ShiftStart int64     `json:"shiftStart"`
	ShiftEnd   int64     `json:"shiftEnd"`
	StartLat   float64   `json:"startLat"`
	StartLng   float64   `json:"startLng"`
	EndLat     float64   `json:"endLat"`
	EndLng     float64   `json:"endLng"`
}

func (p problem) toInput() *model.Input {
	var points []matrix.Point

	jobs := make([]model.Job, len(p.Jobs))
	for i, j := range p.Jobs {
		loc := len(points)
		points = append(points, matrix.Point{Lat: j.Lat, Lng: j.Lng})
		tws := make([]model.TimeWindow, len(j.TimeWindows))
		for k, w := range j.TimeWindows {
			tws[k] = model.TimeWindow{Earliest: w.Earliest, Latest: w.Latest}
		}
		jobs[i] = model.Job{ID: j.ID, Location: loc, Amount: model.Amount(j.Amount), Skills: j.Skills, ServiceSec: j.ServiceSec, TimeWindows: tws}
	}

	vehicles := make([]model.Vehicle, len(p.Vehicles))
	for i, v := range p.Vehicles {
		start := len(points)
		points = append(points, matrix.Point{Lat: v.StartLat, Lng: v.StartLng})
		end := len(points)
		points = append(points, matrix.Point{Lat: v.EndLat, Lng: v.EndLng})
		vehicles[i] = model.Vehicle{ID: v.ID, Capacity: model.Amount(v.Capacity), Skills: v.Skills, ShiftStart: v.ShiftStart, ShiftEnd: v.ShiftEnd, StartLocation: start, EndLocation: end}
	}

	return &model.Input{Jobs: jobs, Vehicles: vehicles, Matrix: matrix.NewHaversineProvider(points, p.SpeedKph)}
}

type resultDTO struct {
	Indicators engine.Indicators `json:"indicators"`
	Routes     []routeDTO        `json:"routes"`
	Unassigned []int             `json:"unassignedJobIds,omitempty"`
}

type routeDTO struct {
	VehicleID int   `json:"vehicleId"`
	JobIDs    []int `json:"jobIds"`
	Cost      int64 `json:"cost"`
}

func mustMarshalResult(in *model.Input, ls *engine.LocalSearch) []byte {
	ind := ls.Indicators()
	res := resultDTO{Indicators: ind}
	st := ls.State()
	for v, route := range ls.Solution().Routes {
		ids := make([]int, len(route.Jobs))
		for i, jobIdx := range route.Jobs {
			ids[i] = in.Jobs[jobIdx].ID
		}
		res.Routes = append(res.Routes, routeDTO{VehicleID: in.Vehicles[v].ID, JobIDs: ids, Cost: st.RouteCosts[v]})
	}
	for jobIdx := range st.Unassigned {
		res.Unassigned = append(res.Unassigned, in.Jobs[jobIdx].ID)
	}
	b, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return []byte(`{"error":"failed to marshal result"}`)
	}
	return b
}
