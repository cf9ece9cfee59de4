package engine_test

// lineMatrix places every location on a 1D line by index; cost is the
// absolute difference between two locations' positions. Deterministic
// and easy to reason about by hand, the way the ancestor's tests
// picked simple fixed geometries over random matrices.
type lineMatrix struct {
	pos []int64
}

func (m lineMatrix) Cost(from, to int) int64 {
	d := m.pos[from] - m.pos[to]
	if d < 0 {
		d = -d
	}
	return d
}
