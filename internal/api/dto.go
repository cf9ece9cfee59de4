package api

import (
	"fmt"

	"vrpls/internal/matrix"
	"vrpls/internal/model"
)

// TimeWindowDTO is the wire shape of model.TimeWindow.
type TimeWindowDTO struct {
	Earliest int64 `json:"earliest"`
	Latest   int64 `json:"latest"`
}

// JobDTO is the wire shape of model.Job.
type JobDTO struct {
	ID          int             `json:"id"`
	Lat         float64         `json:"lat"`
	Lng         float64         `json:"lng"`
	Amount      []float64       `json:"amount"`
	Skills      []string        `json:"skills,omitempty"`
	ServiceSec  int64           `json:"serviceSec"`
	TimeWindows []TimeWindowDTO `json:"timeWindows,omitempty"`
}

// VehicleDTO is the wire shape of model.Vehicle.
type VehicleDTO struct {
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

// OptimizeRequest is the body of POST /v1/optimize. Locations are
// given as lat/lng pairs; the server builds a matrix.HaversineProvider
// (buildInput; it is not wrapped in a matrix.CachedProvider, even when
// Redis is configured) rather than accepting a raw cost matrix, mirroring how the ancestor
// derived travel time from coordinates instead of ingesting one.
type OptimizeRequest struct {
	Jobs         []JobDTO     `json:"jobs"`
	Vehicles     []VehicleDTO `json:"vehicles"`
	SpeedKph     float64      `json:"speedKph,omitempty"`
	RegretCoeff  *float64     `json:"regretCoeff,omitempty"`
	IterationCap int          `json:"iterationCap,omitempty"`
}

// OptimizeResponse is the body of a completed run.
type OptimizeResponse struct {
	RunID      string     `json:"runId"`
	Status     string     `json:"status"`
	Indicators Indicators `json:"indicators,omitempty"`
	Routes     []RouteDTO `json:"routes,omitempty"`
	Unassigned []int      `json:"unassignedJobIds,omitempty"`
	Error      string     `json:"error,omitempty"`
}

// Indicators mirrors engine.Indicators for JSON.
type Indicators struct {
	UnassignedCount int   `json:"unassignedCount"`
	TotalCost       int64 `json:"totalCost"`
	UsedVehicles    int   `json:"usedVehicles"`
}

// RouteDTO is one vehicle's resulting job sequence.
type RouteDTO struct {
	VehicleID int   `json:"vehicleId"`
	JobIDs    []int `json:"jobIds"`
	Cost      int64 `json:"cost"`
}

func validateOptimizeRequest(req *OptimizeRequest) error {
	if len(req.Vehicles) == 0 {
		return fmt.Errorf("vehicles must not be empty")
	}
	seen := make(map[int]struct{}, len(req.Jobs))
	for _, j := range req.Jobs {
		if _, dup := seen[j.ID]; dup {
			return fmt.Errorf("duplicate job id: %d", j.ID)
		}
		seen[j.ID] = struct{}{}
		if len(j.Amount) == 0 {
			return fmt.Errorf("job %d: amount must not be empty", j.ID)
		}
		for _, w := range j.TimeWindows {
			if w.Earliest > w.Latest {
				return fmt.Errorf("job %d: time window earliest %d > latest %d", j.ID, w.Earliest, w.Latest)
			}
		}
	}
	vseen := make(map[int]struct{}, len(req.Vehicles))
	dim := -1
	for _, v := range req.Vehicles {
		if _, dup := vseen[v.ID]; dup {
			return fmt.Errorf("duplicate vehicle id: %d", v.ID)
		}
		vseen[v.ID] = struct{}{}
		if dim == -1 {
			dim = len(v.Capacity)
		} else if len(v.Capacity) != dim {
			return fmt.Errorf("vehicle %d: capacity dimension %d does not match %d", v.ID, len(v.Capacity), dim)
		}
		if v.ShiftEnd < v.ShiftStart {
			return fmt.Errorf("vehicle %d: shiftEnd %d before shiftStart %d", v.ID, v.ShiftEnd, v.ShiftStart)
		}
	}
	for _, j := range req.Jobs {
		if dim != -1 && len(j.Amount) != dim {
			return fmt.Errorf("job %d: amount dimension %d does not match fleet capacity dimension %d", j.ID, len(j.Amount), dim)
		}
	}
	if req.IterationCap < 0 {
		return fmt.Errorf("iterationCap must be >= 0")
	}
	return nil
}

// buildInput turns the wire request into an engine-ready model.Input,
// assigning each job/vehicle location a slot in a shared coordinate
// list consumed by a matrix.HaversineProvider. Job IDs are carried
// through on model.Job.ID, so the resulting Route.Jobs indices are
// mapped back to wire IDs via in.Jobs[idx].ID.
func buildInput(req *OptimizeRequest) *model.Input {
	var points []matrix.Point

	jobs := make([]model.Job, len(req.Jobs))
	for i, j := range req.Jobs {
		loc := len(points)
		points = append(points, matrix.Point{Lat: j.Lat, Lng: j.Lng})
		tws := make([]model.TimeWindow, len(j.TimeWindows))
		for k, w := range j.TimeWindows {
			tws[k] = model.TimeWindow{Earliest: w.Earliest, Latest: w.Latest}
		}
		jobs[i] = model.Job{
			ID:          j.ID,
			Location:    loc,
			Amount:      model.Amount(j.Amount),
			Skills:      j.Skills,
			ServiceSec:  j.ServiceSec,
			TimeWindows: tws,
		}
	}

	vehicles := make([]model.Vehicle, len(req.Vehicles))
	for i, v := range req.Vehicles {
		startLoc := len(points)
		points = append(points, matrix.Point{Lat: v.StartLat, Lng: v.StartLng})
		endLoc := len(points)
		points = append(points, matrix.Point{Lat: v.EndLat, Lng: v.EndLng})
		vehicles[i] = model.Vehicle{
			ID:            v.ID,
			Capacity:      model.Amount(v.Capacity),
			Skills:        v.Skills,
			ShiftStart:    v.ShiftStart,
			ShiftEnd:      v.ShiftEnd,
			StartLocation: startLoc,
			EndLocation:   endLoc,
		}
	}

	provider := matrix.NewHaversineProvider(points, req.SpeedKph)
	return &model.Input{Jobs: jobs, Vehicles: vehicles, Matrix: provider}
}
