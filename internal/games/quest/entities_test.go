package quest

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-quest/internal/config"
	"github.com/vovakirdan/tui-quest/internal/core"
	"github.com/vovakirdan/tui-quest/internal/games/quest/world"
)

// newTestState returns an overworld state whose every cell has the given seed.
func newTestState(seed float64) *SimulationState {
	cfg := config.DefaultQuestConfig()
	gen := world.NewGeneratorWithSeed(cfg.World, func(int, int) float64 { return seed })
	s := NewSimulationState(cfg, gen, 1)
	s.Scene = SceneOverworld
	return s
}

func press(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func hold(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Hold(a, true)
	}
	return in
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

const emptySeed = 0.9

func TestSpawnCountIndependentOfTickSplit(t *testing.T) {
	tests := []struct {
		name     string
		splits   []float64
		expected int
	}{
		{"one 4000ms tick", []float64{4000}, 0},
		{"ten 400ms ticks", repeat(400, 10), 0},
		{"one 4010ms tick", []float64{4010}, 1},
		{"ten 401ms ticks", repeat(401, 10), 1},
		{"one 12100ms tick", []float64{12100}, 3},
		{"121 100ms ticks", repeat(100, 121), 3},
		{"two uneven ticks", []float64{4000, 8100}, 3},
		{"two even ticks", []float64{6050, 6050}, 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestState(emptySeed)
			for _, dt := range tc.splits {
				s.Entities.Advance(s, dt)
			}
			if got := s.Entities.Count(EnemyGrunt); got != tc.expected {
				t.Errorf("spawned %d grunts, expected %d", got, tc.expected)
			}
		})
	}
}

func repeat(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestSpawnOffsetFromPlayer(t *testing.T) {
	s := newTestState(emptySeed)
	s.Player.Pos = core.V(100, -50)

	events := s.Entities.Advance(s, 4001)

	if len(s.Entities.Enemies) != 1 {
		t.Fatalf("expected 1 enemy, got %d", len(s.Entities.Enemies))
	}
	e := s.Entities.Enemies[0]
	if e.Kind != EnemyGrunt || e.Health != 3 || e.Speed != 0.08 || e.Size != 64 {
		t.Errorf("unexpected grunt stats: %+v", e)
	}
	// Spawned at player + (400, 400), then moved for the whole tick
	want := math.Hypot(400, 400) - 0.08*4001
	if got := e.Pos.Dist(s.Player.Pos); math.Abs(got-want) > 1e-6 {
		t.Errorf("grunt distance = %v, expected %v", got, want)
	}
	if len(events) == 0 {
		t.Fatal("expected a spawn event")
	}
	if ev, ok := events[0].(EnemySpawnedEvent); !ok || ev.Kind != EnemyGrunt {
		t.Errorf("first event = %#v, expected grunt spawn", events[0])
	}
}

func TestNoSpawningIndoors(t *testing.T) {
	s := newTestState(emptySeed)
	s.Scene = SceneInterior

	s.Entities.Advance(s, 10000)

	if len(s.Entities.Enemies) != 0 {
		t.Errorf("no grunts should spawn inside, got %d", len(s.Entities.Enemies))
	}
	if s.Entities.SpawnTimer() != 0 {
		t.Errorf("spawn timer should not run inside, got %v", s.Entities.SpawnTimer())
	}
}

func TestSeekStopsAtStopRadius(t *testing.T) {
	s := newTestState(emptySeed)
	s.Scene = SceneInterior // keep the spawner quiet
	e := s.Entities.Spawn(EnemyGrunt, core.V(100, 0))

	s.Entities.Advance(s, 100)
	if !approx(e.Pos.X, 92) || e.Pos.Y != 0 {
		t.Errorf("after 100ms at 0.08/ms enemy should be at (92,0), got %v", e.Pos)
	}

	s.Entities.Advance(s, 10000)
	if !approx(e.Pos.X, 20) {
		t.Errorf("enemy should stop exactly at the stop radius, got %v", e.Pos)
	}

	s.Entities.Advance(s, 100)
	if !approx(e.Pos.X, 20) {
		t.Errorf("enemy at the stop radius should hold position, got %v", e.Pos)
	}
}

func TestContactDamageAndInvulnerability(t *testing.T) {
	s := newTestState(emptySeed)
	s.Scene = SceneInterior
	s.Entities.Spawn(EnemyGrunt, core.V(30, 0))
	s.Entities.Spawn(EnemyGrunt, core.V(-30, 0))

	events := s.Entities.Advance(s, 16)
	if s.Player.Health != 85 {
		t.Fatalf("two touching grunts should deal one hit, health=%v", s.Player.Health)
	}
	if s.Player.Invuln != 984 {
		t.Errorf("invuln = %v, expected 1000-16", s.Player.Invuln)
	}
	hurt := 0
	for _, ev := range events {
		if _, ok := ev.(PlayerHurtEvent); ok {
			hurt++
		}
	}
	if hurt != 1 {
		t.Errorf("expected 1 hurt event, got %d", hurt)
	}

	s.Entities.Advance(s, 984)
	if s.Player.Health != 85 {
		t.Errorf("no damage while invulnerable, health=%v", s.Player.Health)
	}
	if s.Player.Invuln != 0 {
		t.Errorf("invuln should reach exactly 0, got %v", s.Player.Invuln)
	}

	s.Entities.Advance(s, 16)
	if s.Player.Health != 70 {
		t.Errorf("damage should resume after invulnerability, health=%v", s.Player.Health)
	}
}

func TestInvulnerabilityNeverNegative(t *testing.T) {
	s := newTestState(emptySeed)
	s.Player.Invuln = 10
	s.Entities.Advance(s, 500)
	if s.Player.Invuln != 0 {
		t.Errorf("invuln = %v, expected clamp to 0", s.Player.Invuln)
	}
}

func TestProjectileLifetime(t *testing.T) {
	s := newTestState(emptySeed)
	p := s.Entities.Fire(core.V(0, 0), 0)

	s.Entities.Advance(s, 1000)
	if math.Abs(p.Pos.X-600) > 1e-6 || math.Abs(p.Pos.Y) > 1e-9 {
		t.Errorf("projectile at %v, expected (600,0)", p.Pos)
	}
	s.Entities.Cleanup()
	if len(s.Entities.Projectiles) != 1 {
		t.Fatal("projectile removed before its lifetime ended")
	}

	s.Entities.Advance(s, 500)
	s.Entities.Cleanup()
	if len(s.Entities.Projectiles) != 0 {
		t.Errorf("projectile should expire after 1500ms, %d left", len(s.Entities.Projectiles))
	}
}

func TestBurstParticles(t *testing.T) {
	s := newTestState(emptySeed)
	s.Entities.Burst(core.V(10, 10))

	if len(s.Entities.Particles) != 8 {
		t.Fatalf("expected 8 particles, got %d", len(s.Entities.Particles))
	}
	for _, p := range s.Entities.Particles {
		if p.Vel.X < -0.25 || p.Vel.X >= 0.25 || p.Vel.Y < -0.25 || p.Vel.Y >= 0.25 {
			t.Errorf("particle velocity %v outside spread", p.Vel)
		}
		if p.Life != 500 {
			t.Errorf("particle life = %v, expected 500", p.Life)
		}
	}

	s.Entities.Advance(s, 500)
	s.Entities.Cleanup()
	if len(s.Entities.Particles) != 0 {
		t.Errorf("particles should fade after 500ms, %d left", len(s.Entities.Particles))
	}
}

func TestCleanupRemovesDeadEnemies(t *testing.T) {
	s := newTestState(emptySeed)
	alive := s.Entities.Spawn(EnemyGrunt, core.V(500, 0))
	dead := s.Entities.Spawn(EnemyGrunt, core.V(-500, 0))
	dead.Health = 0

	s.Entities.Cleanup()

	if len(s.Entities.Enemies) != 1 || s.Entities.Enemies[0] != alive {
		t.Errorf("expected only the live enemy to remain, got %d", len(s.Entities.Enemies))
	}
	if s.Entities.Enemy(dead.ID) != nil {
		t.Error("dead enemy still addressable")
	}
}

func TestEntityIDsNeverReused(t *testing.T) {
	s := newTestState(emptySeed)
	seen := make(map[EntityID]bool)
	for i := 0; i < 5; i++ {
		e := s.Entities.Spawn(EnemyGrunt, core.V(0, 0))
		p := s.Entities.Fire(core.V(0, 0), 0)
		for _, id := range []EntityID{e.ID, p.ID} {
			if seen[id] {
				t.Fatalf("id %d reused", id)
			}
			seen[id] = true
		}
		e.Health = 0
		s.Entities.Cleanup()
	}
}

func TestHealthFraction(t *testing.T) {
	s := newTestState(emptySeed)
	boss := s.Entities.Spawn(EnemyBoss, core.V(0, 0))
	boss.Health = 15
	if got := boss.HealthFraction(); got != 0.5 {
		t.Errorf("HealthFraction() = %v, expected 0.5", got)
	}
	boss.Health = -4
	if got := boss.HealthFraction(); got != 0 {
		t.Errorf("HealthFraction() = %v, expected clamp to 0", got)
	}
}
