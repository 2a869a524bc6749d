package system

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/platformer/internal/domain/entity"
	"github.com/younwookim/platformer/internal/domain/flags"
	"github.com/younwookim/platformer/internal/domain/fx"
)

// wallFrictionStep is 500 px/s over 16ms in Fx8
const wallFrictionStep = fx.Fx8(2048)

func newWallRig() *testRig {
	rig := newTestRig(nil)
	rig.sprite.Behavior.Set(flags.WallJumps, true)
	return rig
}

func TestWall_Slide(t *testing.T) {
	rig := newWallRig()
	rig.sprite.SetHitting(entity.EdgeLeft, true)
	rig.sprite.VY = fx.FromInt(200)

	rig.step(1000, 16)

	s := rig.sprite
	assert.True(t, s.State.OnWallLeft())
	assert.True(t, s.State.WallSliding())
	assert.False(t, s.State.Falling())
	assert.True(t, s.Behavior.LastWallLeft())
	assert.Equal(t, fx.FromInt(200)-wallFrictionStep, s.VY)
	assert.Equal(t, fx.Zero, s.AY, "gravity suspended while sliding")
	assert.Equal(t, int64(1000), s.LastOnWallTime)
}

func TestWall_SlideMinimumSpeed(t *testing.T) {
	tests := []struct {
		name    string
		gravity entity.Gravity
		wall    entity.Edge
		start   fx.Fx8
		want    fx.Fx8
	}{
		{"down gravity floors to positive", entity.DefaultGravity, entity.EdgeRight, fx.FromInt(5), fx.FromInt(50)},
		{"up gravity floors to negative", entity.Gravity{Strength: 1000, Direction: entity.DirUp}, entity.EdgeLeft, fx.FromInt(-5), fx.FromInt(-50)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rig := newWallRig()
			rig.gravity = tt.gravity
			rig.sprite.SetHitting(tt.wall, true)
			rig.sprite.VY = tt.start

			rig.step(1000, 16)

			assert.True(t, rig.sprite.State.WallSliding())
			assert.Equal(t, tt.want, rig.sprite.VY)
		})
	}
}

func TestWall_NoSlideWhileRising(t *testing.T) {
	rig := newWallRig()
	rig.sprite.SetHitting(entity.EdgeRight, true)
	rig.sprite.VY = fx.FromInt(-120)

	rig.step(1000, 16)

	assert.True(t, rig.sprite.State.OnWallRight())
	assert.False(t, rig.sprite.State.WallSliding())
	assert.False(t, rig.sprite.Behavior.LastWallLeft())
	assert.Equal(t, fx.FromInt(-120), rig.sprite.VY)
}

func TestWall_Jump(t *testing.T) {
	rig := newWallRig()
	rig.sprite.SetHitting(entity.EdgeLeft, true)
	rig.sprite.VY = fx.FromInt(100)
	rig.press(ButtonA, 990)

	rig.step(1000, 16)

	s := rig.sprite
	assert.Equal(t, -fx.FromFloat(math.Sqrt(2*1000*16)), s.VY)
	assert.Equal(t, fx.FromInt(200), s.VX, "kicked away from the left wall")
	assert.False(t, s.State.WallSliding())
	assert.True(t, s.Behavior.CurrentlyJumping())
	assert.Equal(t, 16, s.LastJumpHeight)
}

func TestWall_JumpCoyoteAfterLeavingWall(t *testing.T) {
	rig := newWallRig()
	rig.sprite.SetHitting(entity.EdgeRight, true)
	rig.sprite.VY = fx.FromInt(100)
	rig.step(1000, 16)
	require.True(t, rig.sprite.State.WallSliding())

	rig.sprite.ClearObstacles()
	rig.sprite.State.Set(flags.OnWall, false)
	rig.press(ButtonA, 1040)
	rig.step(1050, 16)

	assert.True(t, rig.sprite.Behavior.CurrentlyJumping())
	assert.Equal(t, fx.FromInt(-200), rig.sprite.VX, "kicked away from the right wall")
}

func TestWall_DisabledWithoutFlag(t *testing.T) {
	rig := newTestRig(nil)
	rig.sprite.SetHitting(entity.EdgeLeft, true)
	rig.sprite.VY = fx.FromInt(200)

	rig.step(1000, 16)

	assert.True(t, rig.sprite.State.OnWallLeft())
	assert.False(t, rig.sprite.State.WallSliding())
	assert.Equal(t, fx.FromInt(200), rig.sprite.VY)
}

func TestWallState_ScanKeepsContact(t *testing.T) {
	stage := createFloorStage()
	rig := newTestRig(stage)

	// flush against the solid left column, no contact latch this frame
	rig.sprite.SetPixelPos(16, 16)
	rig.sprite.State.Set(flags.OnWallLeft, true)
	rig.step(1000, 16)
	assert.True(t, rig.sprite.State.OnWallLeft())

	rig.sprite.SetPixelPos(40, 16)
	rig.step(1016, 16)
	assert.False(t, rig.sprite.State.OnWallLeft())
}

func TestWallState_ClearedOnGround(t *testing.T) {
	rig := newTestRig(nil)
	rig.ground(true)
	rig.sprite.SetHitting(entity.EdgeLeft, true)

	rig.step(1000, 16)

	assert.False(t, rig.sprite.State.Any(flags.OnWall))
	assert.True(t, rig.sprite.State.PushingWallLeft())
	assert.False(t, rig.sprite.State.PushingWallRight())
}
