package replay

import (
	"github.com/younwookim/platformer/internal/application/simulation"
	"github.com/younwookim/platformer/internal/application/system"
)

// Pad is a controller that plays back the held directions of a FrameInput.
// Live play is routed through a Pad too, so a recording drives the
// simulation exactly like the session it was taken from.
type Pad struct {
	in FrameInput
}

// Load makes fi the pad's current input
func (p *Pad) Load(fi FrameInput) {
	p.in = fi
}

func (p *Pad) IsPressed(b system.Button) bool {
	if b == system.ButtonA {
		return p.in.A
	}
	return p.PressureLevel(b) > 0
}

func (p *Pad) PressureLevel(b system.Button) int {
	switch b {
	case system.ButtonLeft:
		return p.in.L
	case system.ButtonRight:
		return p.in.R
	case system.ButtonUp:
		return p.in.U
	case system.ButtonDown:
		return p.in.D
	case system.ButtonA:
		if p.in.A {
			return system.PressureMax
		}
	}
	return 0
}

func (p *Pad) IsAnalog() bool { return p.in.Analog }

// Capture samples a controller's held state into a FrameInput
func Capture(c system.Controller, dt int64) FrameInput {
	return FrameInput{
		DT:     dt,
		L:      c.PressureLevel(system.ButtonLeft),
		R:      c.PressureLevel(system.ButtonRight),
		U:      c.PressureLevel(system.ButtonUp),
		D:      c.PressureLevel(system.ButtonDown),
		A:      c.IsPressed(system.ButtonA),
		Analog: c.IsAnalog(),
	}
}

// Feed loads fi into pad and hands its A and Up edges to ctx for player.
// When a button has both edges in one tick, they are ordered so the button
// ends in its recorded held state.
func Feed(ctx *simulation.Context, player int, pad *Pad, fi FrameInput) {
	pad.Load(fi)
	feedEdges(ctx, player, system.ButtonA, fi.AP, fi.AR, fi.A)
	feedEdges(ctx, player, system.ButtonUp, fi.UP, fi.UR, fi.U > 0)
}

func feedEdges(ctx *simulation.Context, player int, b system.Button, pressed, released, held bool) {
	if released && held {
		ctx.HandleButton(player, b, false)
	}
	if pressed {
		ctx.HandleButton(player, b, true)
	}
	if released && !held {
		ctx.HandleButton(player, b, false)
	}
}

// SetEdge records a press or release of A or Up; other buttons are ignored
func (fi *FrameInput) SetEdge(b system.Button, pressed bool) {
	switch {
	case b == system.ButtonA && pressed:
		fi.AP = true
	case b == system.ButtonA:
		fi.AR = true
	case b == system.ButtonUp && pressed:
		fi.UP = true
	case b == system.ButtonUp:
		fi.UR = true
	}
}
