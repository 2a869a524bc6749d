package ebitenio

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/younwookim/platformer/internal/application/system"
)

func TestAxisPressure(t *testing.T) {
	tests := []struct {
		name string
		v    float64
		want int
	}{
		{"centered", 0, 0},
		{"inside deadzone", 0.15, 0},
		{"at deadzone", 0.2, 0},
		{"halfway past deadzone", 0.6, system.PressureMax / 2},
		{"full", 1, system.PressureMax},
		{"beyond full", 1.2, system.PressureMax},
		{"opposite direction", -0.8, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, axisPressure(tt.v, DefaultDeadzone))
		})
	}
}

func TestDefaultKeys_CoverEveryButton(t *testing.T) {
	for _, b := range []system.Button{system.ButtonLeft, system.ButtonRight, system.ButtonUp, system.ButtonDown, system.ButtonA} {
		assert.NotEmpty(t, DefaultKeys[b], "button %d has no keys", b)
		assert.Contains(t, gamepadButtons, b)
	}
	assert.False(t, NewKeyboard(nil).IsAnalog())
}

func TestDevicesAreControllers(t *testing.T) {
	var _ Device = NewKeyboard(nil)
	var _ Device = NewGamepad(0)
}
