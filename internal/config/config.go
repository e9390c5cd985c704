// Package config provides YAML-based tuning for the quest simulation:
// world generation bands, movement speeds, combat radii and timers.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-quest/internal/core"
)

// QuestConfig contains every tunable constant of the simulation.
type QuestConfig struct {
	World     WorldConfig     `yaml:"world"`
	Player    PlayerConfig    `yaml:"player"`
	Doorway   DoorwayConfig   `yaml:"doorway"`
	Interior  InteriorConfig  `yaml:"interior"`
	Enemies   EnemiesConfig   `yaml:"enemies"`
	Melee     MeleeConfig     `yaml:"melee"`
	Ranged    RangedConfig    `yaml:"ranged"`
	Particles ParticlesConfig `yaml:"particles"`
	Viewport  ViewportConfig  `yaml:"viewport"`
}

// Point is a 2D offset in world units.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// WorldConfig defines the procedural overworld.
type WorldConfig struct {
	GridPitch  float64       `yaml:"grid_pitch"`  // World units per grid cell
	Hash       HashConfig    `yaml:"hash"`        // Cell seed constants
	ViewRadius int           `yaml:"view_radius"` // Cells drawn around the player cell in each direction
	House      FeatureConfig `yaml:"house"`
	Tree       FeatureConfig `yaml:"tree"`
}

// HashConfig holds the constants of |sin(gx*A + gy*B) * Scale| mod 1.
type HashConfig struct {
	A     float64 `yaml:"a"`
	B     float64 `yaml:"b"`
	Scale float64 `yaml:"scale"`
}

// FeatureConfig defines one terrain feature variant.
// A cell seed below Threshold (and above every lower band) selects it.
type FeatureConfig struct {
	Threshold   float64 `yaml:"threshold"`
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	DepthOffset float64 `yaml:"depth_offset"` // Added to gy*pitch for the draw depth
}

// PlayerConfig defines the player's stats.
type PlayerConfig struct {
	BaseSpeed    float64 `yaml:"base_speed"` // Units per millisecond
	MaxHealth    float64 `yaml:"max_health"`
	MaxMana      float64 `yaml:"max_mana"`
	Size         float64 `yaml:"size"`
	InvulnMillis float64 `yaml:"invuln_ms"` // Grace period after contact damage
}

// DoorwayConfig defines how houses are entered and left.
type DoorwayConfig struct {
	Offset      Point   `yaml:"offset"`        // Doorway point relative to the house cell origin
	Radius      float64 `yaml:"radius"`        // Entry distance (strict)
	ExitOffsetY float64 `yaml:"exit_offset_y"` // Added to the saved y so leaving does not re-enter
}

// InteriorConfig defines the fixed indoor scene.
type InteriorConfig struct {
	Spawn Point       `yaml:"spawn"`
	MinX  float64     `yaml:"min_x"`
	MaxX  float64     `yaml:"max_x"`
	MinY  float64     `yaml:"min_y"`
	MaxY  float64     `yaml:"max_y"`
	ExitY float64     `yaml:"exit_y"` // Leaving when y exceeds this
	Chest ChestConfig `yaml:"chest"`
}

// ChestConfig defines the interior chest.
type ChestConfig struct {
	Position       Point   `yaml:"position"` // Center of the chest
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"`
	InteractRadius float64 `yaml:"interact_radius"`
}

// EnemiesConfig defines spawning and the shared enemy AI.
type EnemiesConfig struct {
	SpawnIntervalMillis float64     `yaml:"spawn_interval_ms"`
	SpawnOffset         Point       `yaml:"spawn_offset"`
	StopRadius          float64     `yaml:"stop_radius"`    // Seek stops inside this distance
	ContactRadius       float64     `yaml:"contact_radius"` // Contact damage inside this distance
	ContactDamage       float64     `yaml:"contact_damage"`
	Grunt               EnemyConfig `yaml:"grunt"`
	Boss                BossConfig  `yaml:"boss"`
}

// EnemyConfig defines one enemy variant.
type EnemyConfig struct {
	Health float64 `yaml:"health"`
	Speed  float64 `yaml:"speed"` // Units per millisecond
	Size   float64 `yaml:"size"`
}

// BossConfig defines the one-shot boss.
type BossConfig struct {
	EnemyConfig `yaml:",inline"`
	KillTrigger int   `yaml:"kill_trigger"` // Kill count that summons the boss
	Offset      Point `yaml:"offset"`
}

// MeleeConfig defines the sword swing.
type MeleeConfig struct {
	ProgressPerMillis float64 `yaml:"progress_per_ms"`
	Range             float64 `yaml:"range"`
	Damage            float64 `yaml:"damage"`
	AngleOffset       float64 `yaml:"angle_offset"` // Radians added to the aim angle at progress 0
	ArcWidth          float64 `yaml:"arc_width"`    // Radians swept over the full swing
}

// RangedConfig defines the fireball.
type RangedConfig struct {
	ManaCost       float64 `yaml:"mana_cost"`
	Speed          float64 `yaml:"speed"`
	LifetimeMillis float64 `yaml:"lifetime_ms"`
	HitRadius      float64 `yaml:"hit_radius"`
	Damage         float64 `yaml:"damage"`
}

// ParticlesConfig defines the cosmetic death burst.
type ParticlesConfig struct {
	Count          int     `yaml:"count"`
	Spread         float64 `yaml:"spread"` // Velocity components are uniform in [-spread/2, spread/2)
	LifetimeMillis float64 `yaml:"lifetime_ms"`
}

// ViewportConfig is the logical screen the camera and pointer live in.
type ViewportConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Center returns the middle of the viewport, where the player is drawn.
func (v ViewportConfig) Center() core.Vec2 {
	return core.V(v.Width/2, v.Height/2)
}

// Vec converts the point to a world vector.
func (p Point) Vec() core.Vec2 {
	return core.V(p.X, p.Y)
}

// Validate checks the constants the simulation relies on.
// All problems are reported together.
func (c QuestConfig) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}

	positive("world.grid_pitch", c.World.GridPitch)
	positive("world.hash.scale", c.World.Hash.Scale)
	if c.World.ViewRadius < 0 {
		errs = append(errs, fmt.Errorf("world.view_radius must not be negative, got %d", c.World.ViewRadius))
	}
	if !(0 <= c.World.House.Threshold && c.World.House.Threshold < c.World.Tree.Threshold && c.World.Tree.Threshold <= 1) {
		errs = append(errs, fmt.Errorf("world thresholds must satisfy 0 <= house (%v) < tree (%v) <= 1",
			c.World.House.Threshold, c.World.Tree.Threshold))
	}
	positive("world.house.width", c.World.House.Width)
	positive("world.house.height", c.World.House.Height)
	positive("world.tree.width", c.World.Tree.Width)
	positive("world.tree.height", c.World.Tree.Height)

	positive("player.base_speed", c.Player.BaseSpeed)
	positive("player.max_health", c.Player.MaxHealth)
	if c.Player.MaxMana < 0 {
		errs = append(errs, fmt.Errorf("player.max_mana must not be negative, got %v", c.Player.MaxMana))
	}
	positive("doorway.radius", c.Doorway.Radius)

	if c.Interior.MinX >= c.Interior.MaxX || c.Interior.MinY >= c.Interior.MaxY {
		errs = append(errs, errors.New("interior bounds are empty"))
	}
	if c.Interior.ExitY > c.Interior.MaxY {
		errs = append(errs, fmt.Errorf("interior.exit_y (%v) is unreachable beyond max_y (%v)", c.Interior.ExitY, c.Interior.MaxY))
	}

	positive("enemies.spawn_interval_ms", c.Enemies.SpawnIntervalMillis)
	positive("enemies.grunt.health", c.Enemies.Grunt.Health)
	positive("enemies.grunt.speed", c.Enemies.Grunt.Speed)
	positive("enemies.boss.health", c.Enemies.Boss.Health)
	positive("enemies.boss.speed", c.Enemies.Boss.Speed)
	if c.Enemies.StopRadius >= c.Enemies.ContactRadius {
		errs = append(errs, fmt.Errorf("enemies.stop_radius (%v) must be below contact_radius (%v)",
			c.Enemies.StopRadius, c.Enemies.ContactRadius))
	}
	if c.Enemies.Boss.KillTrigger <= 0 {
		errs = append(errs, fmt.Errorf("enemies.boss.kill_trigger must be positive, got %d", c.Enemies.Boss.KillTrigger))
	}

	positive("melee.progress_per_ms", c.Melee.ProgressPerMillis)
	positive("melee.range", c.Melee.Range)
	positive("ranged.speed", c.Ranged.Speed)
	positive("ranged.lifetime_ms", c.Ranged.LifetimeMillis)
	positive("ranged.hit_radius", c.Ranged.HitRadius)

	if c.Particles.Count < 0 {
		errs = append(errs, fmt.Errorf("particles.count must not be negative, got %d", c.Particles.Count))
	}
	positive("viewport.width", c.Viewport.Width)
	positive("viewport.height", c.Viewport.Height)

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid quest config: %w", errors.Join(errs...))
	}
	return nil
}
