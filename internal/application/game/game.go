// Package game provides the main game loop manager that handles Scene transitions.
package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/platformer/internal/application/scene"
	"github.com/younwookim/platformer/internal/application/simulation"
)

// Game implements ebiten.Game. It keeps a stack of scenes and a matching
// stack of simulation contexts: every scene runs in its own context.
type Game struct {
	scenes  []scene.Scene
	sims    *simulation.Stack
	screenW int
	screenH int
	dt      int64
}

// New creates a new Game with the given initial scene.
// The initial scene's OnEnter is called immediately with the stack's current context.
func New(initialScene scene.Scene, sims *simulation.Stack, screenW, screenH int) *Game {
	g := &Game{
		sims:    sims,
		screenW: screenW,
		screenH: screenH,
		dt:      16, // ~60 FPS
	}
	g.scenes = append(g.scenes, initialScene)
	initialScene.OnEnter(sims.Current())
	return g
}

// Update updates the top scene and applies the transition it asks for.
// Implements ebiten.Game interface.
func (g *Game) Update() error {
	next, err := g.Current().Update(g.dt)
	if err != nil {
		return err
	}

	action, s := scene.Decode(next)
	switch action {
	case scene.Replace:
		g.pop()
		g.push(s)
	case scene.PushAction:
		g.push(s)
	case scene.PopAction:
		g.pop()
		if len(g.scenes) == 0 {
			return ebiten.Termination
		}
	}
	return nil
}

// Draw renders every scene from the bottom up so pushed scenes overlay the ones below.
// Implements ebiten.Game interface.
func (g *Game) Draw(screen *ebiten.Image) {
	for _, s := range g.scenes {
		s.Draw(screen)
	}
}

// Layout returns the game's logical screen dimensions.
// Implements ebiten.Game interface.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.screenW, g.screenH
}

// SetDT sets the frame time in milliseconds used for updates.
func (g *Game) SetDT(dt int64) {
	g.dt = dt
}

// Current returns the top scene
func (g *Game) Current() scene.Scene {
	return g.scenes[len(g.scenes)-1]
}

// Depth returns the number of scenes on the stack
func (g *Game) Depth() int {
	return len(g.scenes)
}

// push enters s in a fresh context. The stack is never empty, so the
// bottom scene takes the context left behind by the last pop.
func (g *Game) push(s scene.Scene) {
	ctx := g.sims.Current()
	if len(g.scenes) > 0 {
		ctx = g.sims.Push()
	}
	g.scenes = append(g.scenes, s)
	log.Printf("scene push: depth=%d contexts=%d", len(g.scenes), g.sims.Len())
	s.OnEnter(ctx)
}

func (g *Game) pop() {
	top := g.Current()
	top.OnExit()
	g.scenes[len(g.scenes)-1] = nil
	g.scenes = g.scenes[:len(g.scenes)-1]
	g.sims.Pop()
	log.Printf("scene pop: depth=%d contexts=%d", len(g.scenes), g.sims.Len())
}
