// Package scene defines the Scene interface for game screens.
//
// Each screen gets its own simulation context when it is entered, so
// sprites, gravity and handlers never leak between screens.
package scene

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/platformer/internal/application/simulation"
)

// Scene represents a game screen.
//
// The game loop delegates Update and Draw calls to the top scene.
// Returning a scene from Update replaces the current one; wrap it with
// Push to keep the current scene underneath, or return Pop to resume the
// scene below.
type Scene interface {
	// Update advances the scene by dt milliseconds.
	// Returns the next scene if a transition is needed, nil to stay.
	// Returns an error to terminate the game.
	Update(dt int64) (next Scene, err error)

	// Draw renders the scene to the screen.
	Draw(screen *ebiten.Image)

	// OnEnter is called with the fresh context the scene runs in.
	OnEnter(ctx *simulation.Context)

	// OnExit is called when the scene is removed.
	OnExit()
}

// Action is what the game does with a scene returned from Update
type Action int

const (
	Stay Action = iota
	Replace
	PushAction
	PopAction
)

type pushed struct{ Scene }

type popped struct{}

func (popped) Update(int64) (Scene, error) { return nil, nil }
func (popped) Draw(*ebiten.Image)          {}
func (popped) OnEnter(*simulation.Context) {}
func (popped) OnExit()                     {}

// Pop leaves the current scene and resumes the one below it
var Pop Scene = popped{}

// Push enters s on top of the current scene
func Push(s Scene) Scene {
	return pushed{s}
}

// Decode classifies a scene returned from Update
func Decode(next Scene) (Action, Scene) {
	switch n := next.(type) {
	case nil:
		return Stay, nil
	case popped:
		return PopAction, nil
	case pushed:
		return PushAction, n.Scene
	default:
		return Replace, next
	}
}
