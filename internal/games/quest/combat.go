package quest

import (
	"github.com/vovakirdan/tui-quest/internal/config"
	"github.com/vovakirdan/tui-quest/internal/core"
)

// CombatResolver turns primary actions into swings and fireballs and
// applies their damage. Kill accounting and the boss trigger live here
// because both follow directly from damage.
type CombatResolver struct {
	cfg config.QuestConfig
}

// NewCombatResolver creates a combat resolver.
func NewCombatResolver(cfg config.QuestConfig) *CombatResolver {
	return &CombatResolver{cfg: cfg}
}

// HandleInput applies the weapon toggle and the primary action.
// Input is ignored outside active scenes and once the player is dead.
func (c *CombatResolver) HandleInput(s *SimulationState, in core.InputFrame) []Event {
	if !s.Scene.Active() || !s.Player.Alive() {
		return nil
	}

	var events []Event
	if in.Has(core.ActionToggleMode) {
		if s.Player.Mode == ModeMelee {
			s.Player.Mode = ModeRanged
		} else {
			s.Player.Mode = ModeMelee
		}
		events = append(events, ModeChangedEvent{Mode: s.Player.Mode})
	}

	if !in.Has(core.ActionPrimary) {
		return events
	}
	switch s.Player.Mode {
	case ModeMelee:
		if c.StartSwing(s) {
			events = append(events, SoundEvent{Sound: SoundSwing})
		}
	case ModeRanged:
		if c.Cast(s) {
			events = append(events, SoundEvent{Sound: SoundCast})
		}
	}
	return events
}

// StartSwing begins a melee swing unless one is already in progress.
func (c *CombatResolver) StartSwing(s *SimulationState) bool {
	if s.Swing.Active {
		return false
	}
	s.Swing = Swing{
		Active: true,
		Angle:  s.AimAngle(c.cfg.Viewport) + c.cfg.Melee.AngleOffset,
		hit:    make(map[EntityID]struct{}),
	}
	return true
}

// Cast launches a fireball toward the pointer. It fails without side
// effects unless the attack is unlocked and enough mana remains.
func (c *CombatResolver) Cast(s *SimulationState) bool {
	p := &s.Player
	if !p.RangedUnlocked || p.Mana < c.cfg.Ranged.ManaCost {
		return false
	}
	p.Mana -= c.cfg.Ranged.ManaCost
	s.Entities.Fire(p.Pos, s.AimAngle(c.cfg.Viewport))
	return true
}

// Resolve advances the active swing, applies melee and projectile damage,
// records kills and summons the boss once the kill threshold is reached.
func (c *CombatResolver) Resolve(s *SimulationState, dt float64) []Event {
	var events []Event
	events = c.resolveSwing(s, dt, events)
	events = c.resolveProjectiles(s, events)

	boss := c.cfg.Enemies.Boss
	if !s.BossSpawned && s.Kills >= boss.KillTrigger {
		s.BossSpawned = true
		e := s.Entities.Spawn(EnemyBoss, s.Player.Pos.Add(boss.Offset.Vec()))
		events = append(events, EnemySpawnedEvent{ID: e.ID, Kind: e.Kind})
	}
	return events
}

// resolveSwing hits every enemy within range that this swing has not hit
// yet. The swing ends, and forgets its hits, once progress reaches 1.
func (c *CombatResolver) resolveSwing(s *SimulationState, dt float64, events []Event) []Event {
	sw := &s.Swing
	if !sw.Active {
		return events
	}
	mc := c.cfg.Melee
	sw.Progress += mc.ProgressPerMillis * dt
	sw.Angle = s.AimAngle(c.cfg.Viewport) + mc.AngleOffset + min(sw.Progress, 1)*mc.ArcWidth

	for _, e := range s.Entities.Enemies {
		if _, done := sw.hit[e.ID]; done || !e.Alive() {
			continue
		}
		if e.Pos.Dist(s.Player.Pos) >= mc.Range {
			continue
		}
		sw.hit[e.ID] = struct{}{}
		events = c.damage(s, e, mc.Damage, events)
	}

	if sw.Progress >= 1 {
		*sw = Swing{}
	}
	return events
}

// resolveProjectiles lets each unspent projectile strike the first live
// enemy within its hit radius.
func (c *CombatResolver) resolveProjectiles(s *SimulationState, events []Event) []Event {
	rc := c.cfg.Ranged
	for _, p := range s.Entities.Projectiles {
		if p.Spent {
			continue
		}
		for _, e := range s.Entities.Enemies {
			if !e.Alive() || e.Pos.Dist(p.Pos) >= rc.HitRadius {
				continue
			}
			p.Spent = true
			p.Life = 0
			events = c.damage(s, e, rc.Damage, events)
			break
		}
	}
	return events
}

// damage applies dmg to e and accounts for the kill when health crosses
// to zero. An enemy is counted at most once.
func (c *CombatResolver) damage(s *SimulationState, e *Enemy, dmg float64, events []Event) []Event {
	if !e.Alive() {
		return events
	}
	e.Health -= dmg
	if e.Alive() {
		return events
	}
	s.Kills++
	s.Entities.Burst(e.Pos)
	return append(events,
		EnemyKilledEvent{ID: e.ID, Kind: e.Kind, Kills: s.Kills},
		SoundEvent{Sound: SoundPickup},
	)
}
