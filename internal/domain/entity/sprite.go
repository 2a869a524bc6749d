package entity

import (
	"errors"
	"fmt"
	"math"

	"github.com/younwookim/platformer/internal/domain/flags"
	"github.com/younwookim/platformer/internal/domain/tuning"
)

// ErrNotPlatformer is raised when a platformer operation gets a plain body.
var ErrNotPlatformer = errors.New("entity: object is not a platformer sprite")

// Never is the timestamp of an event that has not happened yet.
const Never int64 = math.MinInt64 / 4

// Sprite is a body driven by the platformer movement engine.
type Sprite struct {
	Body

	Behavior      flags.Behavior
	State         flags.State
	PreviousState flags.State

	// Player is the controller index (0-3) that steers the sprite.
	Player int
	// Moving overrides controller steering when not DirNone.
	Moving Direction

	Constants *tuning.Table

	// Timers in simulation milliseconds.
	JumpStartTime    int64
	LastOnGroundTime int64
	LastOnWallTime   int64
	DashEndTime      int64

	LastJumpHeight int
	JumpCount      int

	handlers []EventHandler
}

// NewSprite creates a platformer sprite at pixel coordinates.
// Its constants fall back to defaults.
func NewSprite(x, y, w, h, kind int, template flags.Behavior, defaults *tuning.Table) *Sprite {
	s := &Sprite{
		Body:             Body{Width: w, Height: h, Kind: kind},
		Behavior:         template,
		Constants:        tuning.NewTable(defaults),
		JumpStartTime:    Never,
		LastOnGroundTime: Never,
		LastOnWallTime:   Never,
		DashEndTime:      Never,
	}
	s.SetPixelPos(x, y)
	s.Body.sprite = s
	return s
}

// AsSprite returns the platformer sprite behind o, if any.
func AsSprite(o Object) (*Sprite, bool) {
	if o == nil {
		return nil, false
	}
	b := o.Base()
	if b == nil || b.sprite == nil {
		return nil, false
	}
	return b.sprite, true
}

// MustSprite is AsSprite that panics on misuse.
func MustSprite(o Object) *Sprite {
	s, ok := AsSprite(o)
	if !ok {
		panic(fmt.Errorf("%w: %T", ErrNotPlatformer, o))
	}
	return s
}

// Const looks up a tuning constant through the parent chain.
func (s *Sprite) Const(c tuning.Constant) int {
	return s.Constants.Value(c)
}

// HasJumped reports whether the sprite ever started a jump.
func (s *Sprite) HasJumped() bool {
	return s.JumpStartTime != Never
}

// HasState reports whether every bit of f is set in the current state.
func (s *Sprite) HasState(f flags.State) bool {
	return s.State.Has(f)
}

// AddHandler registers an event handler scoped to this sprite.
func (s *Sprite) AddHandler(h EventHandler) {
	s.handlers = append(s.handlers, h)
}

// Handlers returns the sprite's handlers in registration order.
func (s *Sprite) Handlers() []EventHandler {
	return s.handlers
}

// ClearHandlers drops every sprite-scoped handler.
func (s *Sprite) ClearHandlers() {
	s.handlers = nil
}
