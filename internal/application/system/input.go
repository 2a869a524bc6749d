package system

import "github.com/younwookim/platformer/internal/domain/entity"

// MaxPlayers is the number of controller slots.
const MaxPlayers = 4

// PressureMax is the full-scale analog reading of a direction.
const PressureMax = 512

// Button identifies a controller button
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonUp
	ButtonDown
	ButtonA
)

// Controller is the polled input of one player
type Controller interface {
	IsPressed(b Button) bool
	// PressureLevel returns 0..PressureMax for analog directions
	PressureLevel(b Button) int
	IsAnalog() bool
}

// ButtonEvent is a pressed or released edge of A or Up
type ButtonEvent struct {
	Player  int
	Button  Button
	Pressed bool
	At      int64 // simulation milliseconds
}

type playerButtons struct {
	aPressed, aLast   bool
	upPressed, upLast bool
	aTimer, upTimer   int64
}

// Buttons tracks jump-button edges and their timestamps for every player.
// A and Up are edge-driven; directions are polled from the bound Controller.
type Buttons struct {
	players     [MaxPlayers]playerButtons
	controllers [MaxPlayers]Controller
}

// NewButtons creates a tracker with no recorded presses
func NewButtons() *Buttons {
	b := &Buttons{}
	for i := range b.players {
		b.players[i].aTimer = entity.Never
		b.players[i].upTimer = entity.Never
	}
	return b
}

// Bind attaches a controller to a player slot
func (b *Buttons) Bind(player int, c Controller) {
	if !validPlayer(player) {
		return
	}
	b.controllers[player] = c
}

// Controller returns the controller bound to a player slot, or nil
func (b *Buttons) Controller(player int) Controller {
	if !validPlayer(player) {
		return nil
	}
	return b.controllers[player]
}

// Handle records a button edge. Events for other buttons or players are ignored.
func (b *Buttons) Handle(ev ButtonEvent) {
	if !validPlayer(ev.Player) {
		return
	}
	p := &b.players[ev.Player]
	switch ev.Button {
	case ButtonA:
		if ev.Pressed {
			// a fresh press always counts as an edge for in-air jumps
			p.aLast = false
			p.aPressed = true
			p.aTimer = ev.At
		} else {
			p.aPressed = false
		}
	case ButtonUp:
		if ev.Pressed {
			p.upPressed = true
			p.upTimer = ev.At
		} else {
			p.upPressed = false
		}
	}
}

// Pressed reports whether A or Up is currently held
func (b *Buttons) Pressed(player int, btn Button) bool {
	if !validPlayer(player) {
		return false
	}
	p := &b.players[player]
	if btn == ButtonA {
		return p.aPressed
	}
	return p.upPressed
}

// JustPressed reports a press that was not held at the end of the previous frame
func (b *Buttons) JustPressed(player int, btn Button) bool {
	if !validPlayer(player) {
		return false
	}
	p := &b.players[player]
	if btn == ButtonA {
		return p.aPressed && !p.aLast
	}
	return p.upPressed && !p.upLast
}

// PressedAt returns the time of the last press, or entity.Never
func (b *Buttons) PressedAt(player int, btn Button) int64 {
	if !validPlayer(player) {
		return entity.Never
	}
	p := &b.players[player]
	if btn == ButtonA {
		return p.aTimer
	}
	return p.upTimer
}

// EndFrame copies the held state into the previous-frame state
func (b *Buttons) EndFrame() {
	for i := range b.players {
		b.players[i].aLast = b.players[i].aPressed
		b.players[i].upLast = b.players[i].upPressed
	}
}

// steering returns the signed Fx8 steering input for a sprite: +-256 per axis
// for digital input, scaled pressure for analog input.
func (b *Buttons) steering(s *entity.Sprite) (svx, svy int) {
	switch s.Moving {
	case entity.DirLeft:
		return -256, 0
	case entity.DirRight:
		return 256, 0
	case entity.DirUp:
		return 0, -256
	case entity.DirDown:
		return 0, 256
	}

	if !s.Behavior.ControlsEnabled() {
		return 0, 0
	}
	ctrl := b.Controller(s.Player)
	if ctrl == nil {
		return 0, 0
	}

	if ctrl.IsAnalog() {
		svx = (ctrl.PressureLevel(ButtonRight) - ctrl.PressureLevel(ButtonLeft)) >> 1
		svy = (ctrl.PressureLevel(ButtonDown) - ctrl.PressureLevel(ButtonUp)) >> 1
		return svx, svy
	}
	return digital(ctrl, ButtonRight) - digital(ctrl, ButtonLeft),
		digital(ctrl, ButtonDown) - digital(ctrl, ButtonUp)
}

func digital(c Controller, b Button) int {
	if c.IsPressed(b) {
		return 256
	}
	return 0
}

func validPlayer(p int) bool {
	return p >= 0 && p < MaxPlayers
}
