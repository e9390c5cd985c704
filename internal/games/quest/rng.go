package quest

// RNG is a deterministic xorshift64 generator. Only cosmetic effects draw
// from it, but keeping it seedable makes whole runs reproducible.
type RNG struct {
	state uint64
}

// NewRNG creates a generator from a seed. Zero is replaced by a fixed
// non-zero constant because xorshift never leaves the zero state.
func NewRNG(seed int64) *RNG {
	s := uint64(seed) //#nosec G115 -- seed bits are reinterpreted, not range checked
	if s == 0 {
		s = 0x9E3779B97F4A7C15
	}
	return &RNG{state: s}
}

// Next returns the next raw value.
func (r *RNG) Next() uint64 {
	r.state ^= r.state << 13
	r.state ^= r.state >> 7
	r.state ^= r.state << 17
	return r.state
}

// Float returns a value in [0, 1).
func (r *RNG) Float() float64 {
	return float64(r.Next()>>11) / (1 << 53)
}

// State exposes the internal state for snapshots.
func (r *RNG) State() uint64 {
	return r.state
}
