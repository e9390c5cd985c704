package quest

import (
	"testing"

	"github.com/vovakirdan/tui-quest/internal/config"
	"github.com/vovakirdan/tui-quest/internal/core"
)

type recordingAudio struct {
	played  []Sound
	started int
	stopped int
}

func (r *recordingAudio) Play(s Sound)  { r.played = append(r.played, s) }
func (r *recordingAudio) StartAmbient() { r.started++ }
func (r *recordingAudio) StopAmbient()  { r.stopped++ }

func newTestLoop(t *testing.T, seed float64, opts ...Option) *Loop {
	t.Helper()
	opts = append([]Option{WithSeedFunc(func(int, int) float64 { return seed })}, opts...)
	l, err := NewLoop(config.DefaultQuestConfig(), core.RuntimeConfig{TickRate: 60, Seed: 7}, opts...)
	if err != nil {
		t.Fatalf("NewLoop() error: %v", err)
	}
	return l
}

// started returns a loop that has already left the title menu.
func started(t *testing.T, seed float64, opts ...Option) *Loop {
	t.Helper()
	l := newTestLoop(t, seed, opts...)
	l.Advance(press(core.ActionStart), 0)
	if l.State().Scene != SceneOverworld {
		t.Fatalf("scene = %v after start, expected overworld", l.State().Scene)
	}
	return l
}

func hasEvent[T Event](events []Event) bool {
	for _, ev := range events {
		if _, ok := ev.(T); ok {
			return true
		}
	}
	return false
}

func TestNewLoopRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultQuestConfig()
	cfg.World.GridPitch = 0
	if _, err := NewLoop(cfg, core.DefaultConfig()); err == nil {
		t.Error("expected validation error")
	}
}

func TestMenuWaitsForStart(t *testing.T) {
	audio := &recordingAudio{}
	l := newTestLoop(t, emptySeed, WithAudio(audio))

	res := l.Advance(hold(core.ActionRight), 100)
	if !res.Continue || res.Frame.Scene != SceneMenu {
		t.Fatalf("menu frame: continue=%v scene=%v", res.Continue, res.Frame.Scene)
	}
	if l.State().Tick != 0 || l.State().Player.Pos != (core.Vec2{}) {
		t.Error("simulation advanced on the menu")
	}

	res = l.Advance(press(core.ActionStart), 16)
	if res.Frame.Scene != SceneOverworld {
		t.Fatalf("scene = %v, expected overworld", res.Frame.Scene)
	}
	if !hasEvent[GameStartedEvent](res.Events) {
		t.Error("expected GameStartedEvent")
	}
	if audio.started != 1 {
		t.Errorf("ambient started %d times, expected 1", audio.started)
	}
}

func TestFrameDeltaFromTimestamps(t *testing.T) {
	l := newTestLoop(t, emptySeed)

	start := press(core.ActionStart)
	l.Frame(1000, start)
	if got := l.State().Elapsed; got != 0 {
		t.Fatalf("first frame should advance by zero, elapsed=%v", got)
	}

	l.Frame(1016, core.NewInputFrame())
	if got := l.State().Elapsed; got != 16 {
		t.Errorf("elapsed = %v, expected 16", got)
	}

	l.Frame(900, core.NewInputFrame())
	if got := l.State().Elapsed; got != 16 {
		t.Errorf("backwards timestamp should advance by zero, elapsed=%v", got)
	}

	l.Frame(950, core.NewInputFrame())
	if got := l.State().Elapsed; got != 66 {
		t.Errorf("elapsed = %v, expected 66", got)
	}
}

func TestHouseRoundTrip(t *testing.T) {
	l := started(t, houseSeed)
	s := l.State()

	s.Player.Pos = core.V(80, 160)
	res := l.Advance(core.NewInputFrame(), 16)
	if res.Frame.Scene != SceneInterior {
		t.Fatalf("scene = %v, expected interior", res.Frame.Scene)
	}
	if s.Player.Pos != core.V(400, 500) {
		t.Errorf("interior spawn = %v", s.Player.Pos)
	}

	s.Player.Pos = core.V(400, 538)
	res = l.Advance(hold(core.ActionDown), 16)
	if res.Frame.Scene != SceneOverworld {
		t.Fatalf("scene = %v, expected overworld", res.Frame.Scene)
	}
	if s.Player.Pos != core.V(80, 200) {
		t.Errorf("returned to %v, expected (80,200)", s.Player.Pos)
	}

	res = l.Advance(core.NewInputFrame(), 16)
	if res.Frame.Scene != SceneOverworld {
		t.Errorf("player re-entered the house immediately after leaving")
	}
}

func TestDefeatEndsTheLoop(t *testing.T) {
	audio := &recordingAudio{}
	l := started(t, emptySeed, WithAudio(audio))
	s := l.State()
	s.Player.Health = 15
	s.Entities.Spawn(EnemyGrunt, core.V(30, 0))

	res := l.Advance(core.NewInputFrame(), 16)

	if s.Player.Health != 0 {
		t.Errorf("health = %v, expected 0", s.Player.Health)
	}
	if res.Continue {
		t.Error("loop should stop once defeated")
	}
	if res.Frame.Scene != SceneDefeated {
		t.Errorf("scene = %v, expected defeated", res.Frame.Scene)
	}
	if !hasEvent[GameOverEvent](res.Events) {
		t.Error("expected GameOverEvent")
	}
	if audio.stopped != 1 {
		t.Errorf("ambient stopped %d times, expected 1", audio.stopped)
	}

	tick := s.Tick
	res = l.Advance(press(core.ActionPrimary), 16)
	if res.Continue || len(res.Events) != 0 || s.Tick != tick {
		t.Error("a defeated run must not advance")
	}
}

func TestRangedRejectedWithoutMana(t *testing.T) {
	audio := &recordingAudio{}
	l := started(t, emptySeed, WithAudio(audio))
	s := l.State()
	s.Player.RangedUnlocked = true
	s.Player.Mode = ModeRanged
	s.Player.Mana = 19

	res := l.Advance(press(core.ActionPrimary), 16)

	if s.Player.Mana != 19 {
		t.Errorf("mana = %v, expected unchanged 19", s.Player.Mana)
	}
	if len(s.Entities.Projectiles) != 0 {
		t.Error("no projectile should be created")
	}
	if hasEvent[SoundEvent](res.Events) || len(audio.played) != 0 {
		t.Error("rejected cast should be silent")
	}
}

func TestBossSpawnsOnFifthKillTick(t *testing.T) {
	l := started(t, emptySeed)
	s := l.State()
	s.Kills = 4
	victim := s.Entities.Spawn(EnemyGrunt, core.V(50, 0))
	victim.Health = 1

	res := l.Advance(press(core.ActionPrimary), 16)

	if s.Kills != 5 {
		t.Fatalf("kills = %d, expected 5", s.Kills)
	}
	if !s.BossSpawned || s.Entities.Count(EnemyBoss) != 1 {
		t.Fatal("boss should spawn on the tick of the fifth kill")
	}
	bossEvents := 0
	for _, ev := range res.Events {
		if sp, ok := ev.(EnemySpawnedEvent); ok && sp.Kind == EnemyBoss {
			bossEvents++
		}
	}
	if bossEvents != 1 {
		t.Errorf("boss spawn events = %d, expected 1", bossEvents)
	}
	if s.Entities.Enemy(victim.ID) != nil {
		t.Error("dead grunt should be removed at the end of the tick")
	}

	next := s.Entities.Spawn(EnemyGrunt, core.V(-50, 0))
	next.Health = 1
	l.Advance(core.NewInputFrame(), 16) // same swing is still sweeping
	if s.Kills != 6 {
		t.Fatalf("kills = %d, expected 6", s.Kills)
	}
	if n := s.Entities.Count(EnemyBoss); n != 1 {
		t.Errorf("boss count = %d, expected exactly 1", n)
	}
}

func TestSpawnSplitThroughLoop(t *testing.T) {
	tests := []struct {
		name   string
		splits []float64
	}{
		{"ten 400ms", repeat(400, 10)},
		{"one 4000ms", []float64{4000}},
		{"ten 401ms", repeat(401, 10)},
		{"one 4010ms", []float64{4010}},
	}

	counts := make(map[string]int)
	for _, tc := range tests {
		l := started(t, emptySeed)
		for _, dt := range tc.splits {
			l.Advance(core.NewInputFrame(), dt)
		}
		counts[tc.name] = l.State().Entities.Count(EnemyGrunt)
	}

	if counts["ten 400ms"] != counts["one 4000ms"] || counts["one 4000ms"] != 0 {
		t.Errorf("4000ms total: %d vs %d, expected 0", counts["ten 400ms"], counts["one 4000ms"])
	}
	if counts["ten 401ms"] != counts["one 4010ms"] || counts["one 4010ms"] != 1 {
		t.Errorf("4010ms total: %d vs %d, expected 1", counts["ten 401ms"], counts["one 4010ms"])
	}
}

func TestSoundsReachTheSink(t *testing.T) {
	audio := &recordingAudio{}
	l := started(t, emptySeed, WithAudio(audio))
	s := l.State()
	victim := s.Entities.Spawn(EnemyGrunt, core.V(50, 0))
	victim.Health = 1

	l.Advance(press(core.ActionPrimary), 16)

	want := []Sound{SoundSwing, SoundPickup}
	if len(audio.played) != len(want) {
		t.Fatalf("played %v, expected %v", audio.played, want)
	}
	for i := range want {
		if audio.played[i] != want[i] {
			t.Errorf("sound %d = %v, expected %v", i, audio.played[i], want[i])
		}
	}
}

func TestRestartReturnsToMenu(t *testing.T) {
	audio := &recordingAudio{}
	l := started(t, emptySeed, WithAudio(audio))
	s := l.State()
	s.Kills = 3
	s.Player.Health = 0
	l.Advance(core.NewInputFrame(), 16)

	l.Restart()

	fresh := l.State()
	if fresh == s {
		t.Fatal("restart should build a new state")
	}
	if fresh.Scene != SceneMenu || fresh.Kills != 0 || fresh.Player.Health != 100 {
		t.Errorf("state after restart = scene %v kills %d health %v", fresh.Scene, fresh.Kills, fresh.Player.Health)
	}
	if res := l.Advance(core.NewInputFrame(), 16); !res.Continue {
		t.Error("menu after restart should keep running")
	}
}

func TestDeterministicReplay(t *testing.T) {
	script := func(i int) core.InputFrame {
		in := core.NewInputFrame()
		in.Pointer = core.V(600, 450)
		switch {
		case i == 0:
			in.Set(core.ActionStart)
		case i < 120:
			in.Hold(core.ActionRight, true)
		}
		if i%25 == 0 {
			in.Set(core.ActionPrimary)
		}
		return in
	}

	run := func() Snapshot {
		l, err := NewLoop(config.DefaultQuestConfig(), core.RuntimeConfig{TickRate: 60, Seed: 42})
		if err != nil {
			t.Fatalf("NewLoop() error: %v", err)
		}
		for i := 0; i < 900; i++ {
			if res := l.Frame(float64(i*16), script(i)); !res.Continue {
				break
			}
		}
		return l.State().Snapshot()
	}

	a, b := run(), run()
	if a.Hash() != b.Hash() {
		t.Errorf("replay diverged: %d vs %d", a.Hash(), b.Hash())
	}
	if a.Tick == 0 {
		t.Error("replay never left the menu")
	}
}
