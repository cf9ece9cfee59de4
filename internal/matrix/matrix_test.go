package matrix_test

import (
	"math"
	"testing"
	"time"

	"vrpls/internal/matrix"
)

func TestHaversineProviderZeroForSamePoint(t *testing.T) {
	p := matrix.NewHaversineProvider([]matrix.Point{{Lat: 40.7128, Lng: -74.0060}}, 50)
	if got := p.Cost(0, 0); got != 0 {
		t.Errorf("Cost(0,0) = %d, want 0", got)
	}
}

func TestHaversineProviderKnownDistance(t *testing.T) {
	// Roughly 1 degree of longitude at the equator is ~111.32km.
	points := []matrix.Point{{Lat: 0, Lng: 0}, {Lat: 0, Lng: 1}}
	p := matrix.NewHaversineProvider(points, 111.32) // 1 hour at this speed
	got := p.Cost(0, 1)
	want := int64(3600)
	if math.Abs(float64(got-want)) > 30 {
		t.Errorf("Cost(0,1) = %d, want close to %d", got, want)
	}
}

func TestHaversineProviderDefaultsSpeed(t *testing.T) {
	p := matrix.NewHaversineProvider(nil, 0)
	if p.SpeedKph != 50 {
		t.Errorf("SpeedKph = %v, want default 50", p.SpeedKph)
	}
}

type constProvider struct{ calls int }

func (c *constProvider) Cost(from, to int) int64 {
	c.calls++
	return int64(from + to)
}

func TestCachedProviderLocalMemoization(t *testing.T) {
	inner := &constProvider{}
	cached := matrix.NewCachedProvider(inner, nil, time.Minute)

	if got, want := cached.Cost(1, 2), int64(3); got != want {
		t.Fatalf("Cost(1,2) = %d, want %d", got, want)
	}
	if got, want := cached.Cost(1, 2), int64(3); got != want {
		t.Fatalf("second Cost(1,2) = %d, want %d", got, want)
	}
	if inner.calls != 1 {
		t.Errorf("inner.calls = %d, want 1 (second call should hit local cache)", inner.calls)
	}
}
