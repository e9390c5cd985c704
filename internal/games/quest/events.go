package quest

// Event is something observable that happened during a frame.
// The loop returns events in the order they occurred.
type Event interface {
	questEvent()
}

// Sound identifies a one-shot sound effect.
type Sound int

const (
	SoundSwing  Sound = iota // Melee swing started
	SoundCast                // Fireball launched
	SoundPickup              // Chest opened or enemy killed
)

// String returns the asset name of the sound.
func (s Sound) String() string {
	switch s {
	case SoundSwing:
		return "swing"
	case SoundCast:
		return "cast"
	case SoundPickup:
		return "pickup"
	default:
		return "unknown"
	}
}

// GameStartedEvent is emitted when the player leaves the title menu.
type GameStartedEvent struct{}

func (GameStartedEvent) questEvent() {}

// SceneChangedEvent is emitted on every scene transition.
type SceneChangedEvent struct {
	From Scene
	To   Scene
}

func (SceneChangedEvent) questEvent() {}

// SoundEvent requests a one-shot sound effect.
type SoundEvent struct {
	Sound Sound
}

func (SoundEvent) questEvent() {}

// ChestOpenedEvent is emitted when the chest unlocks the ranged attack.
type ChestOpenedEvent struct{}

func (ChestOpenedEvent) questEvent() {}

// ModeChangedEvent is emitted when the weapon mode toggles.
type ModeChangedEvent struct {
	Mode WeaponMode
}

func (ModeChangedEvent) questEvent() {}

// EnemySpawnedEvent is emitted for every new enemy, boss included.
type EnemySpawnedEvent struct {
	ID   EntityID
	Kind EnemyKind
}

func (EnemySpawnedEvent) questEvent() {}

// EnemyKilledEvent is emitted when an enemy's health crosses to zero.
type EnemyKilledEvent struct {
	ID    EntityID
	Kind  EnemyKind
	Kills int // Kill count including this one
}

func (EnemyKilledEvent) questEvent() {}

// PlayerHurtEvent is emitted when contact damage lands.
type PlayerHurtEvent struct {
	Damage float64
	Health float64 // Health after the hit
}

func (PlayerHurtEvent) questEvent() {}

// GameOverEvent is emitted once when the player is defeated.
type GameOverEvent struct {
	Kills       int
	BossSpawned bool
	Elapsed     float64 // Milliseconds of active play
}

func (GameOverEvent) questEvent() {}

// AudioSink plays the sounds the simulation asks for. Implementations
// must not block the caller.
type AudioSink interface {
	Play(s Sound)
	StartAmbient()
	StopAmbient()
}

// NopAudio is an AudioSink that does nothing.
type NopAudio struct{}

func (NopAudio) Play(Sound)    {}
func (NopAudio) StartAmbient() {}
func (NopAudio) StopAmbient()  {}
