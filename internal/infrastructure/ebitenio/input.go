// Package ebitenio connects the simulation's input and draw collaborators to ebiten.
package ebitenio

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/younwookim/platformer/internal/application/system"
)

// Edge is a press or release of a jump button seen this tick
type Edge struct {
	Button  system.Button
	Pressed bool
}

// Device is a controller that also reports jump-button edges
type Device interface {
	system.Controller
	Edges() []Edge
}

// edgeButtons are the buttons tracked as edges rather than polled
var edgeButtons = []system.Button{system.ButtonA, system.ButtonUp}

// KeyMap lists the keys bound to each button
type KeyMap map[system.Button][]ebiten.Key

// DefaultKeys binds arrows and WASD for directions, Z and Space for A
var DefaultKeys = KeyMap{
	system.ButtonLeft:  {ebiten.KeyArrowLeft, ebiten.KeyA},
	system.ButtonRight: {ebiten.KeyArrowRight, ebiten.KeyD},
	system.ButtonUp:    {ebiten.KeyArrowUp, ebiten.KeyW},
	system.ButtonDown:  {ebiten.KeyArrowDown, ebiten.KeyS},
	system.ButtonA:     {ebiten.KeyZ, ebiten.KeySpace},
}

// Keyboard is a digital controller backed by the keyboard
type Keyboard struct {
	keys KeyMap
}

// NewKeyboard creates a keyboard controller; a nil map uses DefaultKeys
func NewKeyboard(keys KeyMap) *Keyboard {
	if keys == nil {
		keys = DefaultKeys
	}
	return &Keyboard{keys: keys}
}

func (k *Keyboard) IsPressed(b system.Button) bool {
	for _, key := range k.keys[b] {
		if ebiten.IsKeyPressed(key) {
			return true
		}
	}
	return false
}

func (k *Keyboard) PressureLevel(b system.Button) int {
	if k.IsPressed(b) {
		return system.PressureMax
	}
	return 0
}

func (k *Keyboard) IsAnalog() bool { return false }

// Edges reports A and Up presses and releases since the last tick
func (k *Keyboard) Edges() []Edge {
	var edges []Edge
	for _, b := range edgeButtons {
		for _, key := range k.keys[b] {
			if inpututil.IsKeyJustPressed(key) {
				edges = append(edges, Edge{Button: b, Pressed: true})
				break
			}
			if inpututil.IsKeyJustReleased(key) && !k.IsPressed(b) {
				edges = append(edges, Edge{Button: b, Pressed: false})
				break
			}
		}
	}
	return edges
}

// DefaultDeadzone is the stick travel ignored around the center
const DefaultDeadzone = 0.2

// gamepadButtons maps buttons onto the standard layout
var gamepadButtons = map[system.Button]ebiten.StandardGamepadButton{
	system.ButtonLeft:  ebiten.StandardGamepadButtonLeftLeft,
	system.ButtonRight: ebiten.StandardGamepadButtonLeftRight,
	system.ButtonUp:    ebiten.StandardGamepadButtonLeftTop,
	system.ButtonDown:  ebiten.StandardGamepadButtonLeftBottom,
	system.ButtonA:     ebiten.StandardGamepadButtonRightBottom,
}

// Gamepad is an analog controller reading the left stick of a standard-layout pad
type Gamepad struct {
	id       ebiten.GamepadID
	deadzone float64
}

func NewGamepad(id ebiten.GamepadID) *Gamepad {
	return &Gamepad{id: id, deadzone: DefaultDeadzone}
}

// FirstGamepad returns the first connected pad with a standard layout, or nil
func FirstGamepad() *Gamepad {
	for _, id := range ebiten.AppendGamepadIDs(nil) {
		if ebiten.IsStandardGamepadLayoutAvailable(id) {
			return NewGamepad(id)
		}
	}
	return nil
}

func (g *Gamepad) IsPressed(b system.Button) bool {
	return g.PressureLevel(b) > 0
}

func (g *Gamepad) PressureLevel(b system.Button) int {
	if btn, ok := gamepadButtons[b]; ok && ebiten.IsStandardGamepadButtonPressed(g.id, btn) {
		return system.PressureMax
	}

	var v float64
	switch b {
	case system.ButtonLeft:
		v = -ebiten.StandardGamepadAxisValue(g.id, ebiten.StandardGamepadAxisLeftStickHorizontal)
	case system.ButtonRight:
		v = ebiten.StandardGamepadAxisValue(g.id, ebiten.StandardGamepadAxisLeftStickHorizontal)
	case system.ButtonUp:
		v = -ebiten.StandardGamepadAxisValue(g.id, ebiten.StandardGamepadAxisLeftStickVertical)
	case system.ButtonDown:
		v = ebiten.StandardGamepadAxisValue(g.id, ebiten.StandardGamepadAxisLeftStickVertical)
	}
	return axisPressure(v, g.deadzone)
}

func (g *Gamepad) IsAnalog() bool {
	return ebiten.IsStandardGamepadLayoutAvailable(g.id)
}

// Edges reports A and Up presses and releases since the last tick
func (g *Gamepad) Edges() []Edge {
	var edges []Edge
	for _, b := range edgeButtons {
		btn := gamepadButtons[b]
		switch {
		case inpututil.IsStandardGamepadButtonJustPressed(g.id, btn):
			edges = append(edges, Edge{Button: b, Pressed: true})
		case inpututil.IsStandardGamepadButtonJustReleased(g.id, btn):
			edges = append(edges, Edge{Button: b, Pressed: false})
		}
	}
	return edges
}

// axisPressure rescales stick travel past the deadzone onto 0..PressureMax
func axisPressure(v, deadzone float64) int {
	if v <= deadzone {
		return 0
	}
	if v >= 1 {
		return system.PressureMax
	}
	return int(math.Round((v - deadzone) / (1 - deadzone) * system.PressureMax))
}
