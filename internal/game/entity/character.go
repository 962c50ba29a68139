package entity

import "github.com/Faultbox/sakura-forest/pkg/math"

// MovementState is the locomotion a character is currently animating.
type MovementState uint8

const (
	Idle MovementState = iota
	Walking
	Running
)

func (s MovementState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Walking:
		return "walking"
	case Running:
		return "running"
	default:
		return "unknown"
	}
}

// Animator receives fire-and-forget locomotion commands.
// The simulation never waits on or observes their completion.
type Animator interface {
	StartWalking()
	StartRunning()
	StopMoving()
}

// Default wander speeds. Starting an animation sets the matching speed.
const (
	DefaultWalkSpeed = 2.0
	DefaultRunSpeed  = 5.0
)

// WanderState is the autonomous movement state of a character that is not
// possessed by the player.
type WanderState struct {
	Target      math.Vec3
	HasTarget   bool
	Speed       float32
	IdleElapsed float32
	IdleBudget  float32 // Idle time to wait before picking a new target
}

// ClearTarget drops the current destination.
func (w *WanderState) ClearTarget() {
	w.Target = math.Vec3{}
	w.HasTarget = false
}

// Entity is a character: either the player's avatar or a wandering NPC.
type Entity struct {
	Body
	ID    ID
	Name  string
	Color Color

	Wander  WanderState
	History *PathHistory

	// Seconds accumulated since the last history sample.
	HistoryClock float32

	// Speeds applied to Wander.Speed by the locomotion commands.
	WalkSpeed float32
	RunSpeed  float32

	controlled bool
	state      MovementState
	animator   Animator
}

// NewEntity creates a character at the given position.
func NewEntity(id ID, model string, position math.Vec3, historyCapacity int) *Entity {
	return &Entity{
		ID: id,
		Body: Body{
			Position: position,
			Scale:    1,
			Model:    model,
		},
		Wander:    WanderState{Speed: DefaultWalkSpeed},
		History:   NewPathHistory(historyCapacity),
		WalkSpeed: DefaultWalkSpeed,
		RunSpeed:  DefaultRunSpeed,
	}
}

// IsPlayerControlled reports whether the player currently possesses e.
func (e *Entity) IsPlayerControlled() bool {
	return e.controlled
}

// SetPlayerControlled relabels e. It does not touch any other entity.
func (e *Entity) SetPlayerControlled(controlled bool) {
	e.controlled = controlled
}

// SetAnimator attaches the external animation system. nil detaches it.
func (e *Entity) SetAnimator(a Animator) {
	e.animator = a
}

// State returns the current movement state.
func (e *Entity) State() MovementState {
	return e.state
}

// StartWalking switches to the walk animation and walk speed.
func (e *Entity) StartWalking() {
	e.Wander.Speed = e.WalkSpeed
	e.setState(Walking)
}

// StartRunning switches to the run animation and run speed.
func (e *Entity) StartRunning() {
	e.Wander.Speed = e.RunSpeed
	e.setState(Running)
}

// StopMoving switches to the idle animation.
func (e *Entity) StopMoving() {
	e.Wander.Speed = e.WalkSpeed
	e.setState(Idle)
}

// setState forwards a command to the animator only when the state changes.
func (e *Entity) setState(s MovementState) {
	if e.state == s {
		return
	}
	e.state = s
	if e.animator == nil {
		return
	}
	switch s {
	case Walking:
		e.animator.StartWalking()
	case Running:
		e.animator.StartRunning()
	default:
		e.animator.StopMoving()
	}
}
