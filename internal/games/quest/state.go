// Package quest implements the action-adventure simulation: scene
// transitions, enemies, combat and the per-frame draw list. It has no
// terminal or audio dependencies; the platform layer feeds it input frames
// and consumes the draw list and events it produces.
package quest

import (
	"github.com/vovakirdan/tui-quest/internal/config"
	"github.com/vovakirdan/tui-quest/internal/core"
	"github.com/vovakirdan/tui-quest/internal/games/quest/world"
)

// Scene is the top-level mode of the simulation.
type Scene int

const (
	SceneMenu      Scene = iota // Title screen, no simulation
	SceneOverworld              // Infinite procedural world
	SceneInterior               // Inside a house
	SceneDefeated               // Terminal until restart
)

// String returns a human-readable name for the scene.
func (s Scene) String() string {
	switch s {
	case SceneMenu:
		return "menu"
	case SceneOverworld:
		return "overworld"
	case SceneInterior:
		return "interior"
	case SceneDefeated:
		return "defeated"
	default:
		return "unknown"
	}
}

// Active reports whether the world advances in this scene.
func (s Scene) Active() bool {
	return s == SceneOverworld || s == SceneInterior
}

// WeaponMode selects what the primary action does.
type WeaponMode int

const (
	ModeMelee  WeaponMode = iota // Sword swing
	ModeRanged                   // Fireball, once unlocked
)

// String returns the HUD label for the mode.
func (m WeaponMode) String() string {
	if m == ModeRanged {
		return "Fireball"
	}
	return "Sword"
}

// PlayerState holds the player's position and resources.
type PlayerState struct {
	Pos            core.Vec2
	Health         float64
	MaxHealth      float64
	Mana           float64
	MaxMana        float64
	Invuln         float64 // Milliseconds of contact immunity left
	Mode           WeaponMode
	RangedUnlocked bool
}

// Alive reports whether the player still has health.
func (p PlayerState) Alive() bool {
	return p.Health > 0
}

// Chest is the interior container that unlocks the ranged attack.
type Chest struct {
	Center core.Vec2
	W, H   float64
	Opened bool
}

// Box returns the chest's world footprint.
func (c Chest) Box() core.Box {
	return core.Box{Min: c.Center.Sub(core.V(c.W/2, c.H/2)), W: c.W, H: c.H}
}

// Swing is an in-progress melee attack. Hit tracks the enemies already
// struck by this swing so each takes damage at most once per swing.
type Swing struct {
	Active   bool
	Progress float64 // 0..1
	Angle    float64 // Current blade angle in radians
	hit      map[EntityID]struct{}
}

// HitCount returns the number of enemies this swing has struck.
func (s Swing) HitCount() int {
	return len(s.hit)
}

// SimulationState is the aggregate of everything that changes per tick.
type SimulationState struct {
	Scene    Scene
	Player   PlayerState
	SavedPos core.Vec2 // Overworld return point while inside
	Pointer  core.Vec2 // Last known pointer in viewport space
	Chest    Chest
	Swing    Swing

	Kills       int
	BossSpawned bool
	Elapsed     float64 // Milliseconds spent in active scenes
	Tick        uint64

	World    *world.Generator
	Entities *EntityManager
}

// NewSimulationState returns a fresh state sitting on the title menu.
// The player starts at the world origin with full health and mana.
func NewSimulationState(cfg config.QuestConfig, gen *world.Generator, seed int64) *SimulationState {
	return &SimulationState{
		Scene: SceneMenu,
		Player: PlayerState{
			Health:    cfg.Player.MaxHealth,
			MaxHealth: cfg.Player.MaxHealth,
			Mana:      cfg.Player.MaxMana,
			MaxMana:   cfg.Player.MaxMana,
			Mode:      ModeMelee,
		},
		Pointer: cfg.Viewport.Center(),
		Chest: Chest{
			Center: cfg.Interior.Chest.Position.Vec(),
			W:      cfg.Interior.Chest.Width,
			H:      cfg.Interior.Chest.Height,
		},
		World:    gen,
		Entities: NewEntityManager(cfg, seed),
	}
}

// AimAngle returns the angle from the viewport center to the pointer.
// The player is always drawn at the viewport center.
func (s *SimulationState) AimAngle(viewport config.ViewportConfig) float64 {
	return s.Pointer.Sub(viewport.Center()).Angle()
}
