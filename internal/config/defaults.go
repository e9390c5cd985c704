package config

import (
	_ "embed"
	"math"
)

//go:embed defaults/quest.yaml
var defaultQuestYAML []byte

// DefaultQuestConfig returns the default quest configuration.
// It mirrors defaults/quest.yaml and is the fallback if the embed fails to parse.
func DefaultQuestConfig() QuestConfig {
	return QuestConfig{
		World: WorldConfig{
			GridPitch:  200,
			Hash:       HashConfig{A: 12.98, B: 78.23, Scale: 43758},
			ViewRadius: 4, // 9x9 window
			House: FeatureConfig{
				Threshold:   0.05,
				Width:       160,
				Height:      160,
				DepthOffset: 150,
			},
			Tree: FeatureConfig{
				Threshold:   0.25,
				Width:       80,
				Height:      80,
				DepthOffset: 70,
			},
		},
		Player: PlayerConfig{
			BaseSpeed:    0.3,
			MaxHealth:    100,
			MaxMana:      100,
			Size:         64,
			InvulnMillis: 1000,
		},
		Doorway: DoorwayConfig{
			Offset:      Point{X: 80, Y: 145},
			Radius:      30,
			ExitOffsetY: 40,
		},
		Interior: InteriorConfig{
			Spawn: Point{X: 400, Y: 500},
			MinX:  250,
			MaxX:  550,
			MinY:  250,
			MaxY:  550,
			ExitY: 540,
			Chest: ChestConfig{
				Position:       Point{X: 400, Y: 350},
				Width:          60,
				Height:         60,
				InteractRadius: 60,
			},
		},
		Enemies: EnemiesConfig{
			SpawnIntervalMillis: 4000,
			SpawnOffset:         Point{X: 400, Y: 400},
			StopRadius:          20,
			ContactRadius:       40,
			ContactDamage:       15,
			Grunt:               EnemyConfig{Health: 3, Speed: 0.08, Size: 64},
			Boss: BossConfig{
				EnemyConfig: EnemyConfig{Health: 30, Speed: 0.05, Size: 128},
				KillTrigger: 5,
				Offset:      Point{X: 300, Y: -300},
			},
		},
		Melee: MeleeConfig{
			ProgressPerMillis: 0.01, // 100 ms swing
			Range:             100,
			Damage:            1,
			AngleOffset:       -1.5,
			ArcWidth:          math.Pi,
		},
		Ranged: RangedConfig{
			ManaCost:       20,
			Speed:          0.6,
			LifetimeMillis: 1500,
			HitRadius:      60,
			Damage:         2,
		},
		Particles: ParticlesConfig{
			Count:          8,
			Spread:         0.5,
			LifetimeMillis: 500,
		},
		Viewport: ViewportConfig{
			Width:  800,
			Height: 600,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultQuestYAML
}
