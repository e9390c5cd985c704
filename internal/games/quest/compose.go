package quest

import (
	"cmp"
	"slices"

	"github.com/vovakirdan/tui-quest/internal/config"
	"github.com/vovakirdan/tui-quest/internal/core"
	"github.com/vovakirdan/tui-quest/internal/games/quest/world"
)

// Sprite is the asset key of a draw item.
type Sprite string

const (
	SpriteHouse      Sprite = "house"
	SpriteTree       Sprite = "tree"
	SpriteChest      Sprite = "chest"
	SpriteChestOpen  Sprite = "chest_open"
	SpriteGrunt      Sprite = "enemy"
	SpriteBoss       Sprite = "boss"
	SpritePlayer     Sprite = "player"
	SpriteFireball   Sprite = "fireball"
	SpriteParticle   Sprite = "particle"
	SpriteGrass      Sprite = "grass"
	SpriteFloorBoard Sprite = "floor"
)

// DrawItem is one sprite to draw, in world coordinates.
type DrawItem struct {
	Sprite    Sprite
	Box       core.Box
	Depth     float64 // Items are drawn in ascending depth order
	HasHealth bool
	Health    float64 // Fraction in [0, 1] when HasHealth is set
}

// MeleeArc describes the visible sword sweep around the player.
type MeleeArc struct {
	Angle    float64
	Progress float64
	Range    float64
}

// HUD carries the values shown in the status overlay.
type HUD struct {
	Health         float64
	MaxHealth      float64
	Mana           float64
	MaxMana        float64
	Kills          int
	Mode           WeaponMode
	RangedUnlocked bool
}

// Frame is the complete render description for one tick.
type Frame struct {
	Scene      Scene
	Background Sprite
	Camera     core.Vec2 // World position of the viewport's top-left corner
	Items      []DrawItem
	Arc        *MeleeArc // Nil when no swing is active
	HUD        HUD
}

// Compositor builds depth-sorted draw lists.
type Compositor struct {
	cfg config.QuestConfig
}

// NewCompositor creates a compositor.
func NewCompositor(cfg config.QuestConfig) *Compositor {
	return &Compositor{cfg: cfg}
}

// Compose describes the current state as a frame. Items with equal depth
// keep their insertion order: terrain, then enemies, projectiles,
// particles and finally the player.
func (c *Compositor) Compose(s *SimulationState) Frame {
	p := s.Player
	f := Frame{
		Scene:  s.Scene,
		Camera: p.Pos.Sub(c.cfg.Viewport.Center()),
		HUD: HUD{
			Health:         p.Health,
			MaxHealth:      p.MaxHealth,
			Mana:           p.Mana,
			MaxMana:        p.MaxMana,
			Kills:          s.Kills,
			Mode:           p.Mode,
			RangedUnlocked: p.RangedUnlocked,
		},
	}

	switch s.Scene {
	case SceneMenu, SceneDefeated:
		return f
	case SceneInterior:
		f.Background = SpriteFloorBoard
		f.Items = append(f.Items, c.chestItem(s.Chest))
	default:
		f.Background = SpriteGrass
		f.Items = c.terrainItems(s, f.Items)
	}

	for _, e := range s.Entities.Enemies {
		sprite := SpriteGrunt
		if e.Kind == EnemyBoss {
			sprite = SpriteBoss
		}
		f.Items = append(f.Items, DrawItem{
			Sprite:    sprite,
			Box:       e.Box(),
			Depth:     e.Pos.Y,
			HasHealth: true,
			Health:    e.HealthFraction(),
		})
	}
	for _, pr := range s.Entities.Projectiles {
		f.Items = append(f.Items, DrawItem{Sprite: SpriteFireball, Box: pointBox(pr.Pos, 16), Depth: pr.Pos.Y})
	}
	for _, pt := range s.Entities.Particles {
		f.Items = append(f.Items, DrawItem{Sprite: SpriteParticle, Box: pointBox(pt.Pos, 4), Depth: pt.Pos.Y})
	}

	size := c.cfg.Player.Size
	f.Items = append(f.Items, DrawItem{Sprite: SpritePlayer, Box: pointBox(p.Pos, size), Depth: p.Pos.Y})

	slices.SortStableFunc(f.Items, func(a, b DrawItem) int {
		return cmp.Compare(a.Depth, b.Depth)
	})

	if s.Swing.Active {
		f.Arc = &MeleeArc{
			Angle:    s.Swing.Angle,
			Progress: s.Swing.Progress,
			Range:    c.cfg.Melee.Range,
		}
	}
	return f
}

func (c *Compositor) terrainItems(s *SimulationState, items []DrawItem) []DrawItem {
	center := s.World.CoordOf(s.Player.Pos)
	for _, cell := range s.World.Window(center, c.cfg.World.ViewRadius) {
		sprite := SpriteTree
		if cell.Variant == world.VariantHouse {
			sprite = SpriteHouse
		}
		items = append(items, DrawItem{Sprite: sprite, Box: cell.Bounds, Depth: cell.Depth})
	}
	return items
}

func (c *Compositor) chestItem(ch Chest) DrawItem {
	sprite := SpriteChest
	if ch.Opened {
		sprite = SpriteChestOpen
	}
	return DrawItem{Sprite: sprite, Box: ch.Box(), Depth: ch.Center.Y}
}

// pointBox returns a size x size box centered on p.
func pointBox(p core.Vec2, size float64) core.Box {
	return core.Box{Min: p.Sub(core.V(size/2, size/2)), W: size, H: size}
}
