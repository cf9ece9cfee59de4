package model_test

import (
	"testing"

	"vrpls/internal/model"
)

func TestAmountArithmetic(t *testing.T) {
	a := model.Amount{1, 2, 3}
	b := model.Amount{4, 5, 6}

	sum := a.Add(b)
	if want := (model.Amount{5, 7, 9}); !amountEqual(sum, want) {
		t.Errorf("Add = %v, want %v", sum, want)
	}

	diff := b.Sub(a)
	if want := (model.Amount{3, 3, 3}); !amountEqual(diff, want) {
		t.Errorf("Sub = %v, want %v", diff, want)
	}

	if !a.LTE(b) {
		t.Errorf("LTE: expected %v <= %v", a, b)
	}
	if b.LTE(a) {
		t.Errorf("LTE: expected %v not <= %v", b, a)
	}
}

func TestTimeWindowContains(t *testing.T) {
	w := model.TimeWindow{Earliest: 100, Latest: 200}
	cases := []struct {
		t    int64
		want bool
	}{
		{99, false},
		{100, true},
		{150, true},
		{200, true},
		{201, false},
	}
	for _, c := range cases {
		if got := w.Contains(c.t); got != c.want {
			t.Errorf("Contains(%d) = %v, want %v", c.t, got, c.want)
		}
	}
}

func TestHasSkills(t *testing.T) {
	cases := []struct {
		have, want []string
		ok         bool
	}{
		{nil, nil, true},
		{[]string{"forklift"}, nil, true},
		{[]string{"forklift", "hazmat"}, []string{"hazmat"}, true},
		{[]string{"forklift"}, []string{"hazmat"}, false},
		{nil, []string{"hazmat"}, false},
	}
	for _, c := range cases {
		if got := model.HasSkills(c.have, c.want); got != c.ok {
			t.Errorf("HasSkills(%v, %v) = %v, want %v", c.have, c.want, got, c.ok)
		}
	}
}

func amountEqual(a, b model.Amount) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
