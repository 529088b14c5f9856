package conquest

// Rand is a deterministic pseudo-random source based on splitmix64.
// It lives on the Game value rather than in package state so that two
// games never share draws, and its single uint64 of state round-trips
// through snapshots, which keeps replays byte-identical.
type Rand struct {
	state uint64
}

// NewRand returns a source seeded with the given value.
func NewRand(seed int64) *Rand {
	return &Rand{state: uint64(seed)}
}

// RestoreRand reconstructs a source from a previously saved state.
func RestoreRand(state uint64) *Rand {
	return &Rand{state: state}
}

// State exposes the internal state for snapshotting.
func (r *Rand) State() uint64 {
	return r.state
}

// Clone returns an independent copy at the same position in the sequence.
func (r *Rand) Clone() *Rand {
	return &Rand{state: r.state}
}

func (r *Rand) next() uint64 {
	r.state += 0x9e3779b97f4a7c15
	z := r.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// UniformInt returns a value in [0, n). n <= 0 returns 0 without drawing.
func (r *Rand) UniformInt(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.next() % uint64(n))
}

// Percent returns a value in [0.0, 1.0) with 53 bits of precision.
func (r *Rand) Percent() float64 {
	return float64(r.next()>>11) / (1 << 53)
}
