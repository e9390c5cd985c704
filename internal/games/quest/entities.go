package quest

import (
	"github.com/vovakirdan/tui-quest/internal/config"
	"github.com/vovakirdan/tui-quest/internal/core"
)

// EntityID identifies an enemy or projectile for the lifetime of a run.
// IDs are never reused.
type EntityID uint64

// EnemyKind distinguishes regular enemies from the boss.
type EnemyKind int

const (
	EnemyGrunt EnemyKind = iota
	EnemyBoss
)

// String returns the sprite key of the enemy kind.
func (k EnemyKind) String() string {
	if k == EnemyBoss {
		return "boss"
	}
	return "enemy"
}

// Enemy is a hostile that seeks the player.
type Enemy struct {
	ID        EntityID
	Kind      EnemyKind
	Pos       core.Vec2 // Center
	Health    float64
	MaxHealth float64
	Speed     float64 // Units per millisecond
	Size      float64
}

// Alive reports whether the enemy still has health.
func (e *Enemy) Alive() bool {
	return e.Health > 0
}

// HealthFraction returns health/max clamped to [0, 1].
func (e *Enemy) HealthFraction() float64 {
	if e.MaxHealth <= 0 {
		return 0
	}
	return core.ClampF(e.Health/e.MaxHealth, 0, 1)
}

// Box returns the enemy's world footprint.
func (e *Enemy) Box() core.Box {
	return core.Box{Min: e.Pos.Sub(core.V(e.Size/2, e.Size/2)), W: e.Size, H: e.Size}
}

// Projectile is a fireball in flight.
type Projectile struct {
	ID    EntityID
	Pos   core.Vec2
	Vel   core.Vec2 // Units per millisecond
	Life  float64   // Milliseconds remaining
	Spent bool      // Already struck an enemy
}

// Expired reports whether the projectile is removed at the end of the tick.
func (p *Projectile) Expired() bool {
	return p.Spent || p.Life <= 0
}

// Particle is a cosmetic spark with no gameplay effect.
type Particle struct {
	Pos  core.Vec2
	Vel  core.Vec2
	Life float64
}

// EntityManager owns enemies, projectiles and particles. It spawns grunts
// on a timer, runs the shared seek AI and applies contact damage.
type EntityManager struct {
	Enemies     []*Enemy
	Projectiles []*Projectile
	Particles   []*Particle

	cfg        config.QuestConfig
	spawnTimer float64 // Milliseconds accumulated toward the next grunt
	nextID     EntityID
	rng        *RNG
}

// NewEntityManager creates an empty manager.
func NewEntityManager(cfg config.QuestConfig, seed int64) *EntityManager {
	return &EntityManager{
		cfg: cfg,
		rng: NewRNG(seed),
	}
}

// SpawnTimer returns the milliseconds accumulated toward the next spawn.
func (m *EntityManager) SpawnTimer() float64 {
	return m.spawnTimer
}

func (m *EntityManager) newID() EntityID {
	m.nextID++
	return m.nextID
}

// Spawn adds an enemy of the given kind centered at pos.
func (m *EntityManager) Spawn(kind EnemyKind, pos core.Vec2) *Enemy {
	stats := m.cfg.Enemies.Grunt
	if kind == EnemyBoss {
		stats = m.cfg.Enemies.Boss.EnemyConfig
	}
	e := &Enemy{
		ID:        m.newID(),
		Kind:      kind,
		Pos:       pos,
		Health:    stats.Health,
		MaxHealth: stats.Health,
		Speed:     stats.Speed,
		Size:      stats.Size,
	}
	m.Enemies = append(m.Enemies, e)
	return e
}

// Fire launches a projectile from origin along angle.
func (m *EntityManager) Fire(origin core.Vec2, angle float64) *Projectile {
	p := &Projectile{
		ID:   m.newID(),
		Pos:  origin,
		Vel:  core.FromAngle(angle, m.cfg.Ranged.Speed),
		Life: m.cfg.Ranged.LifetimeMillis,
	}
	m.Projectiles = append(m.Projectiles, p)
	return p
}

// Burst emits the death particle effect at pos.
func (m *EntityManager) Burst(pos core.Vec2) {
	spread := m.cfg.Particles.Spread
	for range m.cfg.Particles.Count {
		vel := core.V((m.rng.Float()-0.5)*spread, (m.rng.Float()-0.5)*spread)
		m.Particles = append(m.Particles, &Particle{
			Pos:  pos,
			Vel:  vel,
			Life: m.cfg.Particles.LifetimeMillis,
		})
	}
}

// Advance runs one tick: grunt spawning (overworld only), enemy seek and
// contact damage, the invulnerability countdown, and projectile and
// particle motion. Enemies chase the player in every active scene.
func (m *EntityManager) Advance(s *SimulationState, dt float64) []Event {
	var events []Event

	if s.Scene == SceneOverworld {
		events = m.advanceSpawner(s.Player.Pos, dt, events)
	}

	p := &s.Player
	ecfg := m.cfg.Enemies
	for _, e := range m.Enemies {
		toPlayer := p.Pos.Sub(e.Pos)
		d := toPlayer.Len()

		// Contact is judged on the distance before this tick's step
		if d > ecfg.StopRadius {
			step := min(e.Speed*dt, d-ecfg.StopRadius)
			e.Pos = e.Pos.Add(toPlayer.Scale(step / d))
		}
		if d < ecfg.ContactRadius && p.Invuln <= 0 {
			p.Health -= ecfg.ContactDamage
			p.Invuln = m.cfg.Player.InvulnMillis
			events = append(events, PlayerHurtEvent{Damage: ecfg.ContactDamage, Health: p.Health})
		}
	}
	p.Invuln = max(0, p.Invuln-dt)

	for _, pr := range m.Projectiles {
		pr.Pos = pr.Pos.Add(pr.Vel.Scale(dt))
		pr.Life -= dt
	}
	for _, pt := range m.Particles {
		pt.Pos = pt.Pos.Add(pt.Vel.Scale(dt))
		pt.Life -= dt
	}
	return events
}

// advanceSpawner accumulates time and spawns one grunt per elapsed
// interval. The remainder carries over, so the spawn count depends only on
// total elapsed time and not on how it was split into ticks.
func (m *EntityManager) advanceSpawner(player core.Vec2, dt float64, events []Event) []Event {
	interval := m.cfg.Enemies.SpawnIntervalMillis
	m.spawnTimer += dt
	for m.spawnTimer > interval {
		m.spawnTimer -= interval
		e := m.Spawn(EnemyGrunt, player.Add(m.cfg.Enemies.SpawnOffset.Vec()))
		events = append(events, EnemySpawnedEvent{ID: e.ID, Kind: e.Kind})
	}
	return events
}

// Cleanup removes dead enemies, spent or expired projectiles and faded
// particles. It runs once at the end of every tick.
func (m *EntityManager) Cleanup() {
	enemies := m.Enemies[:0]
	for _, e := range m.Enemies {
		if e.Alive() {
			enemies = append(enemies, e)
		}
	}
	clear(m.Enemies[len(enemies):])
	m.Enemies = enemies

	projectiles := m.Projectiles[:0]
	for _, p := range m.Projectiles {
		if !p.Expired() {
			projectiles = append(projectiles, p)
		}
	}
	clear(m.Projectiles[len(projectiles):])
	m.Projectiles = projectiles

	particles := m.Particles[:0]
	for _, p := range m.Particles {
		if p.Life > 0 {
			particles = append(particles, p)
		}
	}
	clear(m.Particles[len(particles):])
	m.Particles = particles
}

// Enemy returns the live enemy with the given ID, or nil.
func (m *EntityManager) Enemy(id EntityID) *Enemy {
	for _, e := range m.Enemies {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// Count returns the number of enemies of the given kind.
func (m *EntityManager) Count(kind EnemyKind) int {
	n := 0
	for _, e := range m.Enemies {
		if e.Kind == kind {
			n++
		}
	}
	return n
}
