package core

// RuntimeConfig contains host settings passed to the simulation at startup.
// Gameplay tuning lives in the YAML config; this only carries what the
// platform decides.
type RuntimeConfig struct {
	TickRate int   // Host frame requests per second (default 60)
	Seed     int64 // RNG seed for cosmetic randomness
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}
