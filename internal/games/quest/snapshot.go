package quest

import "math"

// Snapshot is a flat copy of the simulation state for replay comparison.
// Uses primitive types only for stable hashing.
type Snapshot struct {
	Tick        uint64
	Scene       int
	PlayerX     float64
	PlayerY     float64
	Health      float64
	Mana        float64
	Invuln      float64
	Mode        int
	Unlocked    bool
	ChestOpened bool
	Kills       int
	BossSpawned bool
	SpawnTimer  float64

	// Each enemy is 5 values: ID, Kind, X, Y, Health
	EnemyData []float64
	// Each projectile is 4 values: ID, X, Y, Life
	ProjectileData []float64

	ParticleCount int
	RNGState      uint64
}

// Snapshot returns the current state as a Snapshot.
func (s *SimulationState) Snapshot() Snapshot {
	em := s.Entities

	enemyData := make([]float64, 0, len(em.Enemies)*5)
	for _, e := range em.Enemies {
		enemyData = append(enemyData, float64(e.ID), float64(e.Kind), e.Pos.X, e.Pos.Y, e.Health)
	}
	projectileData := make([]float64, 0, len(em.Projectiles)*4)
	for _, p := range em.Projectiles {
		projectileData = append(projectileData, float64(p.ID), p.Pos.X, p.Pos.Y, p.Life)
	}

	return Snapshot{
		Tick:        s.Tick,
		Scene:       int(s.Scene),
		PlayerX:     s.Player.Pos.X,
		PlayerY:     s.Player.Pos.Y,
		Health:      s.Player.Health,
		Mana:        s.Player.Mana,
		Invuln:      s.Player.Invuln,
		Mode:        int(s.Player.Mode),
		Unlocked:    s.Player.RangedUnlocked,
		ChestOpened: s.Chest.Opened,
		Kills:       s.Kills,
		BossSpawned: s.BossSpawned,
		SpawnTimer:  em.spawnTimer,

		EnemyData:      enemyData,
		ProjectileData: projectileData,
		ParticleCount:  len(em.Particles),
		RNGState:       em.rng.State(),
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	mix := func(v uint64) { h = h*31 + v }

	mix(uint64(snap.Scene)) //#nosec G115 -- hash computation
	mix(math.Float64bits(snap.PlayerX))
	mix(math.Float64bits(snap.PlayerY))
	mix(math.Float64bits(snap.Health))
	mix(math.Float64bits(snap.Mana))
	mix(math.Float64bits(snap.Invuln))
	mix(uint64(snap.Mode)) //#nosec G115 -- hash computation
	mix(boolBit(snap.Unlocked))
	mix(boolBit(snap.ChestOpened))
	mix(uint64(snap.Kills)) //#nosec G115 -- hash computation
	mix(boolBit(snap.BossSpawned))
	mix(math.Float64bits(snap.SpawnTimer))

	for _, v := range snap.EnemyData {
		mix(math.Float64bits(v))
	}
	for _, v := range snap.ProjectileData {
		mix(math.Float64bits(v))
	}
	mix(uint64(snap.ParticleCount)) //#nosec G115 -- hash computation
	mix(snap.RNGState)

	return h
}

func boolBit(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
