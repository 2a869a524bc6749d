package system

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/platformer/internal/domain/entity"
	"github.com/younwookim/platformer/internal/domain/flags"
	"github.com/younwookim/platformer/internal/domain/fx"
	"github.com/younwookim/platformer/internal/domain/tuning"
)

// launch is the takeoff speed for a 40px jump under 1000 px/s^2
var launch = fx.FromFloat(math.Sqrt(2 * 1000 * 40))

func TestJump_FromGround(t *testing.T) {
	rig := newTestRig(nil)
	rig.ground(true)
	rig.press(ButtonA, 1000)

	rig.step(1016, 16)

	s := rig.sprite
	assert.Equal(t, -launch, s.VY)
	assert.True(t, s.Behavior.CurrentlyJumping())
	assert.True(t, s.Behavior.JumpStartedWithA())
	assert.True(t, s.State.JumpingUp())
	assert.False(t, s.State.Falling())
	assert.Equal(t, 1, s.JumpCount)
	assert.Equal(t, int64(1016), s.JumpStartTime)
	assert.Equal(t, 40, s.LastJumpHeight)
	assert.False(t, s.IsHitting(entity.EdgeBottom), "obstacle latches cleared")
}

func TestJump_BufferedPress(t *testing.T) {
	tests := []struct {
		name    string
		landAt  int64
		wantJmp bool
	}{
		{"landing inside grace window", 1050, true},
		{"landing after grace window", 1200, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rig := newTestRig(nil)
			rig.press(ButtonA, 1000)
			rig.step(1000, 16)
			require.False(t, rig.sprite.Behavior.CurrentlyJumping(), "airborne press alone does nothing")

			rig.ground(true)
			rig.step(tt.landAt, 16)
			assert.Equal(t, tt.wantJmp, rig.sprite.Behavior.CurrentlyJumping())
		})
	}
}

func TestJump_CoyoteTime(t *testing.T) {
	tests := []struct {
		name     string
		coyote   bool
		pressAt  int64
		wantJump bool
	}{
		{"inside coyote window", true, 1040, true},
		{"after coyote window", true, 1140, false},
		{"coyote disabled", false, 1040, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rig := newTestRig(nil)
			rig.sprite.Behavior.Set(flags.CoyoteTime, tt.coyote)
			rig.ground(true)
			rig.step(1000, 16)

			rig.ground(false)
			rig.press(ButtonA, tt.pressAt)
			rig.step(tt.pressAt+10, 16)

			assert.Equal(t, tt.wantJump, rig.sprite.Behavior.CurrentlyJumping())
		})
	}
}

func TestJump_GracePreventsDoubleTrigger(t *testing.T) {
	rig := newTestRig(nil)
	rig.ground(true)
	rig.press(ButtonA, 1000)
	rig.step(1016, 16)
	require.Equal(t, 1, rig.sprite.JumpCount)

	// lands again while the same press is still inside the grace window
	rig.ground(true)
	rig.step(1060, 16)

	assert.Equal(t, 0, rig.sprite.JumpCount)
	assert.False(t, rig.sprite.Behavior.CurrentlyJumping())
}

func TestJump_ApexCutoff(t *testing.T) {
	rig := newTestRig(nil)
	rig.ground(true)
	rig.press(ButtonA, 1000)
	rig.step(1016, 16)

	apex := TimeToApex(40, 1000)
	require.Equal(t, int64(282), apex)

	rig.step(1016+apex, 16)
	assert.True(t, rig.sprite.Behavior.CurrentlyJumping())

	rig.step(1016+apex+1, 1)
	assert.False(t, rig.sprite.Behavior.CurrentlyJumping())
	assert.False(t, rig.sprite.State.JumpingUp())
	assert.True(t, rig.sprite.State.AfterJumpApex())
}

func TestJump_CancelOnRelease(t *testing.T) {
	rig := newTestRig(nil)
	rig.ground(true)
	rig.press(ButtonA, 1000)
	rig.step(1016, 16)

	rig.release(ButtonA, 1040)
	rig.step(1048, 16)

	s := rig.sprite
	assert.Equal(t, fx.Zero, s.VY)
	assert.False(t, s.Behavior.CurrentlyJumping())
	assert.True(t, s.State.AfterJumpApex())
	assert.False(t, s.State.JumpingUp())
}

func TestJump_CancelDisabled(t *testing.T) {
	rig := newTestRig(nil)
	rig.sprite.Behavior.Set(flags.AllowJumpCancellation, false)
	rig.ground(true)
	rig.press(ButtonA, 1000)
	rig.step(1016, 16)

	rig.release(ButtonA, 1040)
	rig.step(1048, 16)

	assert.Equal(t, -launch, rig.sprite.VY)
	assert.True(t, rig.sprite.Behavior.CurrentlyJumping())
}

func TestJump_CancelFollowsTriggerButton(t *testing.T) {
	rig := newTestRig(nil)
	rig.sprite.Behavior.Set(flags.JumpOnAPressed, false)
	rig.sprite.Behavior.Set(flags.JumpOnUpPressed, true)
	rig.ground(true)
	rig.press(ButtonUp, 1000)
	rig.step(1016, 16)
	require.True(t, rig.sprite.Behavior.CurrentlyJumping())
	require.False(t, rig.sprite.Behavior.JumpStartedWithA())

	rig.step(1032, 16)
	assert.True(t, rig.sprite.Behavior.CurrentlyJumping(), "up still held")

	rig.release(ButtonUp, 1040)
	rig.step(1048, 16)
	assert.False(t, rig.sprite.Behavior.CurrentlyJumping())
}

func TestJump_InAir(t *testing.T) {
	rig := newTestRig(nil)
	rig.sprite.Constants.SetValue(tuning.InAirJumps, 1)

	// walked off a ledge
	rig.step(1000, 16)
	require.True(t, rig.sprite.State.Falling())

	rig.press(ButtonA, 1010)
	rig.step(1016, 16)
	assert.Equal(t, -fx.FromFloat(math.Sqrt(2*1000*20)), rig.sprite.VY)
	assert.Equal(t, 2, rig.sprite.JumpCount, "ledge counts as the first jump")

	rig.release(ButtonA, 1020)
	rig.step(1032, 16)
	rig.press(ButtonA, 1040)
	rig.step(1048, 16)
	assert.Equal(t, 2, rig.sprite.JumpCount, "in-air jumps exhausted")
}

func TestJump_InAirNeedsFreshPress(t *testing.T) {
	rig := newTestRig(nil)
	rig.sprite.Constants.SetValue(tuning.InAirJumps, 2)
	rig.press(ButtonA, 990)
	rig.step(1000, 16)
	require.Equal(t, 2, rig.sprite.JumpCount)

	// button still held, no new edge
	rig.step(1016, 16)
	assert.Equal(t, 2, rig.sprite.JumpCount)
}

func TestStartJump_Directions(t *testing.T) {
	v := fx.FromFloat(math.Sqrt(2 * 1000 * 16))
	k := fx.FromInt(200)

	tests := []struct {
		name     string
		dir      entity.Direction
		wallLeft bool
		vx, vy   fx.Fx8
	}{
		{"down, right wall", entity.DirDown, false, -k, -v},
		{"down, left wall", entity.DirDown, true, k, -v},
		{"up", entity.DirUp, true, k, v},
		{"right", entity.DirRight, false, -v, -k},
		{"left", entity.DirLeft, true, v, k},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rig := newTestRig(nil)
			rig.sprite.Behavior.Set(flags.LastWallLeft, tt.wallLeft)

			StartJump(rig.sprite, entity.Gravity{Strength: 1000, Direction: tt.dir}, 500, 16, 200)

			assert.Equal(t, tt.vx, rig.sprite.VX)
			assert.Equal(t, tt.vy, rig.sprite.VY)
			assert.Equal(t, entity.Never, rig.sprite.LastOnGroundTime)
		})
	}
}

func TestTimeToApex(t *testing.T) {
	assert.Equal(t, int64(282), TimeToApex(40, 1000))
	assert.Equal(t, int64(282), TimeToApex(40, -1000), "strength sign is ignored")
	assert.Equal(t, int64(math.MaxInt64), TimeToApex(40, 0))
	assert.Equal(t, int64(0), TimeToApex(0, 1000))
}
