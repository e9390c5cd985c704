package quest

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-quest/internal/config"
	"github.com/vovakirdan/tui-quest/internal/core"
	"github.com/vovakirdan/tui-quest/internal/games/quest/world"
)

// FrameResult is everything the host needs after one frame.
type FrameResult struct {
	Frame    Frame
	Events   []Event
	Continue bool // False once the run has ended; the host should stop requesting frames
}

// Loop drives the simulation one host frame at a time. It derives the
// tick delta from host timestamps and runs, in order: scene rules, weapon
// input, entity updates, combat, cleanup and the defeat check.
type Loop struct {
	cfg     config.QuestConfig
	runtime core.RuntimeConfig
	seedFn  world.SeedFunc

	state      *SimulationState
	scenes     *SceneMachine
	combat     *CombatResolver
	compositor *Compositor

	audio  AudioSink
	logger *log.Logger

	lastTime float64
	primed   bool // lastTime holds a real timestamp
}

// Option configures a Loop.
type Option func(*Loop)

// WithAudio routes sound requests to a.
func WithAudio(a AudioSink) Option {
	return func(l *Loop) {
		if a != nil {
			l.audio = a
		}
	}
}

// WithLogger sets the logger for run milestones.
func WithLogger(logger *log.Logger) Option {
	return func(l *Loop) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithSeedFunc replaces the world hash. Used by tests to place houses.
func WithSeedFunc(fn world.SeedFunc) Option {
	return func(l *Loop) {
		l.seedFn = fn
	}
}

// NewLoop validates cfg and creates a loop sitting on the title menu.
func NewLoop(cfg config.QuestConfig, rt core.RuntimeConfig, opts ...Option) (*Loop, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	l := &Loop{
		cfg:        cfg,
		runtime:    rt,
		scenes:     NewSceneMachine(cfg),
		combat:     NewCombatResolver(cfg),
		compositor: NewCompositor(cfg),
		audio:      NopAudio{},
		logger:     log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.reset()
	return l, nil
}

func (l *Loop) reset() {
	seed := l.seedFn
	if seed == nil {
		seed = world.SineHash(l.cfg.World.Hash)
	}
	gen := world.NewGeneratorWithSeed(l.cfg.World, seed)
	l.state = NewSimulationState(l.cfg, gen, l.runtime.Seed)
	l.primed = false
}

// State returns the live simulation state.
func (l *Loop) State() *SimulationState {
	return l.state
}

// Config returns the configuration the loop was built with.
func (l *Loop) Config() config.QuestConfig {
	return l.cfg
}

// Compose describes the current state without advancing it.
func (l *Loop) Compose() Frame {
	return l.compositor.Compose(l.state)
}

// Restart discards the run and returns to the title menu.
func (l *Loop) Restart() {
	l.audio.StopAmbient()
	l.reset()
	l.logger.Info("run restarted")
}

// Frame runs one frame at host time now (milliseconds). The first frame
// and any frame whose timestamp goes backwards advance by zero.
func (l *Loop) Frame(now float64, in core.InputFrame) FrameResult {
	dt := 0.0
	if l.primed {
		dt = max(0, now-l.lastTime)
	}
	l.lastTime, l.primed = now, true
	return l.Advance(in, dt)
}

// Advance runs one tick of dt milliseconds.
func (l *Loop) Advance(in core.InputFrame, dt float64) FrameResult {
	s := l.state
	if s.Scene == SceneDefeated {
		return FrameResult{Frame: l.compositor.Compose(s), Continue: false}
	}

	var events []Event
	if s.Scene == SceneMenu {
		if !in.Has(core.ActionStart) {
			return FrameResult{Frame: l.compositor.Compose(s), Continue: true}
		}
		events = append(events, l.scenes.Start(s)...)
	}

	s.Pointer = in.Pointer
	s.Tick++
	s.Elapsed += dt

	events = append(events, l.scenes.Step(s, in, dt)...)
	events = append(events, l.combat.HandleInput(s, in)...)
	events = append(events, s.Entities.Advance(s, dt)...)
	events = append(events, l.combat.Resolve(s, dt)...)
	s.Entities.Cleanup()
	events = append(events, l.scenes.CheckDefeat(s)...)

	l.dispatch(events)

	return FrameResult{
		Frame:    l.compositor.Compose(s),
		Events:   events,
		Continue: s.Scene != SceneDefeated,
	}
}

// dispatch forwards sounds to the audio sink and logs milestones.
func (l *Loop) dispatch(events []Event) {
	for _, ev := range events {
		switch e := ev.(type) {
		case SoundEvent:
			l.audio.Play(e.Sound)
		case GameStartedEvent:
			l.audio.StartAmbient()
			l.logger.Info("run started")
		case SceneChangedEvent:
			l.logger.Debug("scene changed", "from", e.From, "to", e.To)
		case ChestOpenedEvent:
			l.logger.Info("chest opened", "ranged", true)
		case EnemySpawnedEvent:
			if e.Kind == EnemyBoss {
				l.logger.Info("boss spawned", "id", e.ID)
			} else {
				l.logger.Debug("enemy spawned", "id", e.ID)
			}
		case EnemyKilledEvent:
			l.logger.Debug("enemy killed", "id", e.ID, "kind", e.Kind, "kills", e.Kills)
		case PlayerHurtEvent:
			l.logger.Debug("player hurt", "damage", e.Damage, "health", e.Health)
		case GameOverEvent:
			l.audio.StopAmbient()
			l.logger.Info("game over", "kills", e.Kills, "boss", e.BossSpawned, "elapsed_ms", int64(e.Elapsed))
		}
	}
}
