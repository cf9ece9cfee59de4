// Package model defines the immutable domain types consumed by the
// local-search engine: jobs, vehicles, and the fleet/job pool bundled
// as an Input.
package model

import "fmt"

// Amount is an elementwise-additive demand/capacity vector (e.g.
// weight, volume, parcel count). All vectors compared or combined in
// the same Input share one dimension.
type Amount []float64

// Add returns a+b; both must have the same length.
func (a Amount) Add(b Amount) Amount {
	out := make(Amount, len(a))
	for i := range a {
		out[i] = a[i] + b[i]
	}
	return out
}

// Sub returns a-b; both must have the same length.
func (a Amount) Sub(b Amount) Amount {
	out := make(Amount, len(a))
	for i := range a {
		out[i] = a[i] - b[i]
	}
	return out
}

// LTE reports whether a <= b componentwise.
func (a Amount) LTE(b Amount) bool {
	for i := range a {
		if a[i] > b[i] {
			return false
		}
	}
	return true
}

// TimeWindow is a closed service window (both bounds included), in seconds since the
// planning epoch (unix seconds is the common choice but the engine
// treats it as an opaque integer axis).
type TimeWindow struct {
	Earliest int64
	Latest   int64
}

// Contains reports whether t falls within the window.
func (w TimeWindow) Contains(t int64) bool { return t >= w.Earliest && t <= w.Latest }

// Job is an atomic service request.
type Job struct {
	ID          int
	Location    int // index into the distance/duration matrix
	Amount      Amount
	Skills      []string
	ServiceSec  int64
	TimeWindows []TimeWindow // one or more disjoint windows; empty means unconstrained
}

// HasSkills reports whether every skill in want is present in have.
func HasSkills(have, want []string) bool {
	if len(want) == 0 {
		return true
	}
	set := make(map[string]struct{}, len(have))
	for _, s := range have {
		set[s] = struct{}{}
	}
	for _, s := range want {
		if _, ok := set[s]; !ok {
			return false
		}
	}
	return true
}

// Vehicle is a fleet resource.
type Vehicle struct {
	ID                         int
	Capacity                   Amount
	Skills                     []string
	ShiftStart, ShiftEnd       int64
	StartLocation, EndLocation int
}

// Input is the immutable description of the fleet, the job pool, and
// the cost function the core consults through matrix.Provider.
type Input struct {
	Jobs     []Job
	Vehicles []Vehicle
	Matrix   CostProvider
}

// CostProvider exposes matrix.cost(from,to) -> cost without importing
// package matrix, avoiding an import cycle between model and matrix.
type CostProvider interface {
	Cost(from, to int) int64
}

func (in Input) String() string {
	return fmt.Sprintf("Input{jobs=%d vehicles=%d}", len(in.Jobs), len(in.Vehicles))
}
