package engine

import "vrpls/internal/model"

// Route is the time-windowed route representation of spec §4.3
// ("TwRoute"): an ordered sequence of job indices plus, per position,
// the earliest feasible service start (forward profile) and the
// latest service start that still lets every downstream job and the
// return to depot complete on time (backward profile). These two
// arrays make IsValidAdditionForTW an O(1) test after O(L)
// maintenance. The operators' IsValid checks do not use them: each
// one runs Rebuild on the candidate job sequence, an O(L) replay of
// the whole schedule per candidate.
//
// Grounded on the ancestor's schedulePlan (internal/opt/alns_engine.go),
// generalized from a single start/end timestamp pass into the
// two-sided forward/backward profile spec §4.3 calls for, and from a
// single time window per job to a sorted list of disjoint windows.
type Route struct {
	Vehicle int // index into Input.Vehicles
	Jobs    []int

	Earliest []int64
	Latest   []int64
	// winIdx[i] records which of Jobs[i]'s time windows the forward
	// pass selected; the backward pass clamps Latest[i] against that
	// window's own Latest bound. Bookkeeping only, not exposed.
	winIdx []int
}

// NewRoute returns an empty route for the given vehicle.
func NewRoute(vehicle int) *Route { return &Route{Vehicle: vehicle} }

// Len returns the number of jobs on the route.
func (r *Route) Len() int { return len(r.Jobs) }

// Clone returns a deep copy safe to mutate independently.
func (r *Route) Clone() *Route {
	c := &Route{
		Vehicle:  r.Vehicle,
		Jobs:     append([]int(nil), r.Jobs...),
		Earliest: append([]int64(nil), r.Earliest...),
		Latest:   append([]int64(nil), r.Latest...),
		winIdx:   append([]int(nil), r.winIdx...),
	}
	return c
}

// locationAt returns the matrix index of the node at position i, or
// the vehicle's start/end depot for i == -1 / i == Len().
func (r *Route) locationAt(in *model.Input, i int) int {
	v := in.Vehicles[r.Vehicle]
	switch {
	case i < 0:
		return v.StartLocation
	case i >= len(r.Jobs):
		return v.EndLocation
	default:
		return in.Jobs[r.Jobs[i]].Location
	}
}

// earliestFeasibleStart scans a job's (assumed non-decreasing, sorted
// by Earliest) disjoint time windows for the first one whose Latest
// bound can still accommodate the given arrival, returning the
// resulting service start, that window's index, and feasibility.
func earliestFeasibleStart(job model.Job, arrival int64) (start int64, winIdx int, ok bool) {
	if len(job.TimeWindows) == 0 {
		return arrival, 0, true
	}
	for idx, w := range job.TimeWindows {
		if arrival <= w.Latest {
			if arrival < w.Earliest {
				return w.Earliest, idx, true
			}
			return arrival, idx, true
		}
	}
	return 0, 0, false
}

// Rebuild recomputes Earliest/Latest/winIdx from scratch for the
// current Jobs sequence in O(L). Returns false if the sequence is
// infeasible under the vehicle's shift and the jobs' time windows.
func (r *Route) Rebuild(in *model.Input) bool {
	n := len(r.Jobs)
	r.Earliest = make([]int64, n)
	r.Latest = make([]int64, n)
	r.winIdx = make([]int, n)
	v := in.Vehicles[r.Vehicle]

	// Forward pass: earliest feasible start per position.
	t := v.ShiftStart
	prevLoc := v.StartLocation
	for i, jobIdx := range r.Jobs {
		job := in.Jobs[jobIdx]
		arrival := t + in.Matrix.Cost(prevLoc, job.Location)
		start, wi, ok := earliestFeasibleStart(job, arrival)
		if !ok {
			return false
		}
		r.Earliest[i] = start
		r.winIdx[i] = wi
		t = start + job.ServiceSec
		prevLoc = job.Location
	}
	if t+in.Matrix.Cost(prevLoc, v.EndLocation) > v.ShiftEnd {
		return false
	}

	// Backward pass: latest start that still allows every downstream
	// job and the return to depot to finish on time.
	tLatest := v.ShiftEnd
	nextLoc := v.EndLocation
	for i := n - 1; i >= 0; i-- {
		job := in.Jobs[r.Jobs[i]]
		latestFinish := tLatest - in.Matrix.Cost(job.Location, nextLoc)
		latestStart := latestFinish - job.ServiceSec
		if len(job.TimeWindows) > 0 {
			winLatest := job.TimeWindows[r.winIdx[i]].Latest
			if winLatest < latestStart {
				latestStart = winLatest
			}
		}
		if latestStart < r.Earliest[i] {
			return false
		}
		r.Latest[i] = latestStart
		tLatest = latestStart
		nextLoc = job.Location
	}
	return true
}

// IsValidAdditionForTW reports whether inserting jobIdx at position
// rank (0..Len()) preserves feasibility of every downstream position,
// in O(1) using the current profiles.
func (r *Route) IsValidAdditionForTW(in *model.Input, jobIdx, rank int) bool {
	job := in.Jobs[jobIdx]
	v := in.Vehicles[r.Vehicle]

	var depart int64
	if rank == 0 {
		depart = v.ShiftStart
	} else {
		prevJob := in.Jobs[r.Jobs[rank-1]]
		depart = r.Earliest[rank-1] + prevJob.ServiceSec
	}
	arrival := depart + in.Matrix.Cost(r.locationAt(in, rank-1), job.Location)
	start, _, ok := earliestFeasibleStart(job, arrival)
	if !ok {
		return false
	}
	finish := start + job.ServiceSec

	if rank == len(r.Jobs) {
		return finish+in.Matrix.Cost(job.Location, v.EndLocation) <= v.ShiftEnd
	}
	nextArrival := finish + in.Matrix.Cost(job.Location, r.locationAt(in, rank))
	return nextArrival <= r.Latest[rank]
}

// IsValidRemoval always holds: removing a job from a feasible route
// can never make the remainder infeasible (less work, same or earlier
// arrivals everywhere). Kept as a named predicate to mirror spec §4.3's
// interface and to give operators one place to call.
func (r *Route) IsValidRemoval(int) bool { return true }

// Add inserts jobIdx at position rank and refreshes the profiles in
// O(L). Callers must have validated feasibility first (e.g. via
// IsValidAdditionForTW); Add itself does not re-check and will simply
// reflect whatever Rebuild computes.
func (r *Route) Add(in *model.Input, jobIdx, rank int) {
	r.Jobs = append(r.Jobs, 0)
	copy(r.Jobs[rank+1:], r.Jobs[rank:])
	r.Jobs[rank] = jobIdx
	r.Rebuild(in)
}

// Remove deletes the job at position rank and refreshes the profiles.
func (r *Route) Remove(in *model.Input, rank int) {
	r.Jobs = append(r.Jobs[:rank], r.Jobs[rank+1:]...)
	r.Rebuild(in)
}

// IsValidTwoOpt reports whether splicing r's 0..i with other's
// (j+1..) — the source side of a TwoOptStar move — can possibly be
// feasible before the full splice is materialized and Rebuild is run;
// a cheap necessary check the driver can use to prune, not a
// substitute for Rebuild after Apply.
func (r *Route) IsValidTwoOpt(in *model.Input, i int, other *Route, j int) bool {
	if i >= len(r.Jobs) || j >= len(other.Jobs) {
		return true
	}
	v := in.Vehicles[r.Vehicle]
	depart := v.ShiftStart
	if i >= 0 {
		depart = r.Earliest[i] + in.Jobs[r.Jobs[i]].ServiceSec
	}
	tailJob := in.Jobs[other.Jobs[j+1]]
	arrival := depart + in.Matrix.Cost(r.locationAt(in, i), tailJob.Location)
	_, _, ok := earliestFeasibleStart(tailJob, arrival)
	return ok
}

// IsValidReverseTwoOpt is the analogous cheap pre-check for
// ReverseTwoOptStar, where the spliced tail is traversed in reverse.
func (r *Route) IsValidReverseTwoOpt(in *model.Input, i int, other *Route, j int) bool {
	if i >= len(r.Jobs) || j < 0 {
		return true
	}
	v := in.Vehicles[r.Vehicle]
	depart := v.ShiftStart
	if i >= 0 {
		depart = r.Earliest[i] + in.Jobs[r.Jobs[i]].ServiceSec
	}
	headJob := in.Jobs[other.Jobs[j]]
	arrival := depart + in.Matrix.Cost(r.locationAt(in, i), headJob.Location)
	_, _, ok := earliestFeasibleStart(headJob, arrival)
	return ok
}

// Cost returns the total travel cost of the route, including the legs
// to/from the vehicle's depot.
func (r *Route) Cost(in *model.Input) int64 {
	v := in.Vehicles[r.Vehicle]
	var total int64
	prevLoc := v.StartLocation
	for _, jobIdx := range r.Jobs {
		loc := in.Jobs[jobIdx].Location
		total += in.Matrix.Cost(prevLoc, loc)
		prevLoc = loc
	}
	total += in.Matrix.Cost(prevLoc, v.EndLocation)
	return total
}

// HasSkillsFor reports whether the route's vehicle can serve jobIdx.
func (r *Route) HasSkillsFor(in *model.Input, jobIdx int) bool {
	return model.HasSkills(in.Vehicles[r.Vehicle].Skills, in.Jobs[jobIdx].Skills)
}

// FitsCapacity reports whether adding amt to the route's current total
// demand stays within the vehicle's capacity.
func (r *Route) FitsCapacity(in *model.Input, amt model.Amount) bool {
	total := r.TotalAmount(in)
	return total.Add(amt).LTE(in.Vehicles[r.Vehicle].Capacity)
}

// TotalAmount sums the demand of every job currently on the route.
func (r *Route) TotalAmount(in *model.Input) model.Amount {
	dim := len(in.Vehicles[r.Vehicle].Capacity)
	total := make(model.Amount, dim)
	for _, jobIdx := range r.Jobs {
		total = total.Add(in.Jobs[jobIdx].Amount)
	}
	return total
}
