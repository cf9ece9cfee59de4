// Package matrix provides the distance/duration cost function the
// core engine consults through model.CostProvider. It is an external
// collaborator to the core (spec §1, §6): the engine only ever calls
// Cost(from, to); how that number is produced is this package's
// concern.
package matrix

import "math"

// Provider is the cost(from, to) -> cost interface the engine depends
// on via model.CostProvider.
type Provider interface {
	Cost(from, to int) int64
}

// Point is a geographic coordinate used by HaversineProvider.
type Point struct{ Lat, Lng float64 }

// HaversineProvider computes integer-second travel costs from great
// circle distance and a constant speed. Grounded on the ancestor's
// haversine/haversineMeters helpers (opt/alns_engine.go,
// opt/heuristics.go), unified into one implementation here.
type HaversineProvider struct {
	Points   []Point
	SpeedKph float64
}

// NewHaversineProvider builds a provider with a sane default speed
// when speedKph is non-positive.
func NewHaversineProvider(points []Point, speedKph float64) *HaversineProvider {
	if speedKph <= 0 {
		speedKph = 50
	}
	return &HaversineProvider{Points: points, SpeedKph: speedKph}
}

// Cost returns the travel time in whole seconds between two matrix
// indices.
func (h *HaversineProvider) Cost(from, to int) int64 {
	if from == to {
		return 0
	}
	a, b := h.Points[from], h.Points[to]
	meters := haversineMeters(a.Lat, a.Lng, b.Lat, b.Lng)
	speedMS := h.SpeedKph / 3.6
	return int64(math.Round(meters / speedMS))
}

func haversineMeters(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadiusM = 6371000.0
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusM * c
}
