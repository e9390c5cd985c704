package quest

import (
	"github.com/vovakirdan/tui-quest/internal/config"
	"github.com/vovakirdan/tui-quest/internal/core"
	"github.com/vovakirdan/tui-quest/internal/games/quest/world"
)

// SceneMachine owns scene transitions and player movement.
//
//	menu --start--> overworld <--doorway/exit--> interior
//	overworld|interior --health<=0--> defeated
type SceneMachine struct {
	cfg config.QuestConfig
}

// NewSceneMachine creates a scene machine.
func NewSceneMachine(cfg config.QuestConfig) *SceneMachine {
	return &SceneMachine{cfg: cfg}
}

// Start leaves the title menu. It is a no-op in any other scene.
func (sm *SceneMachine) Start(s *SimulationState) []Event {
	if s.Scene != SceneMenu {
		return nil
	}
	return []Event{GameStartedEvent{}, sm.transition(s, SceneOverworld)}
}

// Step moves the player and resolves doorway, exit and chest rules.
// Movement is the unit direction of the held keys times base speed, so
// diagonal movement is no faster than straight movement.
func (sm *SceneMachine) Step(s *SimulationState, in core.InputFrame, dt float64) []Event {
	move := in.Axis().Normalize().Scale(sm.cfg.Player.BaseSpeed * dt)

	switch s.Scene {
	case SceneOverworld:
		s.Player.Pos = s.Player.Pos.Add(move)
		return sm.checkDoorway(s)

	case SceneInterior:
		sm.moveInside(&s.Player, move)
		ic := sm.cfg.Interior
		if s.Player.Pos.Y > ic.ExitY {
			s.Player.Pos = s.SavedPos
			return []Event{sm.transition(s, SceneOverworld)}
		}
		if in.Has(core.ActionInteract) {
			return sm.interact(s)
		}
	}
	return nil
}

// checkDoorway enters the house under the player when they are close
// enough to its doorway.
func (sm *SceneMachine) checkDoorway(s *SimulationState) []Event {
	at := s.World.CoordOf(s.Player.Pos)
	cell := s.World.CellAt(at.X, at.Y)
	if cell.Variant != world.VariantHouse {
		return nil
	}
	door := cell.Origin().Add(sm.cfg.Doorway.Offset.Vec())
	if s.Player.Pos.Dist(door) >= sm.cfg.Doorway.Radius {
		return nil
	}
	s.SavedPos = s.Player.Pos.Add(core.V(0, sm.cfg.Doorway.ExitOffsetY))
	s.Player.Pos = sm.cfg.Interior.Spawn.Vec()
	return []Event{sm.transition(s, SceneInterior)}
}

// moveInside applies a move per axis, rejecting any axis whose result
// would leave the interior bounds.
func (sm *SceneMachine) moveInside(p *PlayerState, move core.Vec2) {
	ic := sm.cfg.Interior
	next := p.Pos.Add(move)
	if next.X >= ic.MinX && next.X <= ic.MaxX {
		p.Pos.X = next.X
	}
	if next.Y >= ic.MinY && next.Y <= ic.MaxY {
		p.Pos.Y = next.Y
	}
}

// interact opens the chest when the player is next to it. Opening unlocks
// the ranged attack and restores full health. It happens at most once per run.
func (sm *SceneMachine) interact(s *SimulationState) []Event {
	if s.Chest.Opened || s.Player.Pos.Dist(s.Chest.Center) >= sm.cfg.Interior.Chest.InteractRadius {
		return nil
	}
	s.Chest.Opened = true
	s.Player.RangedUnlocked = true
	s.Player.Health = s.Player.MaxHealth
	return []Event{ChestOpenedEvent{}, SoundEvent{Sound: SoundPickup}}
}

// CheckDefeat moves an active scene to defeated once health is gone.
func (sm *SceneMachine) CheckDefeat(s *SimulationState) []Event {
	if !s.Scene.Active() || s.Player.Alive() {
		return nil
	}
	changed := sm.transition(s, SceneDefeated)
	return []Event{changed, GameOverEvent{Kills: s.Kills, BossSpawned: s.BossSpawned, Elapsed: s.Elapsed}}
}

func (sm *SceneMachine) transition(s *SimulationState, to Scene) Event {
	from := s.Scene
	s.Scene = to
	return SceneChangedEvent{From: from, To: to}
}
