package animation

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/platformer/internal/domain/entity"
	"github.com/younwookim/platformer/internal/domain/flags"
	"github.com/younwookim/platformer/internal/domain/rule"
	"github.com/younwookim/platformer/internal/domain/tuning"
)

func newSprite() *entity.Sprite {
	return entity.NewSprite(32, 32, 16, 16, 1, flags.DefaultTemplate, tuning.NewTable(tuning.Defaults()))
}

func frames(n int) []image.Image {
	out := make([]image.Image, n)
	for i := range out {
		out[i] = image.NewRGBA(image.Rect(0, 0, 8, 12))
	}
	return out
}

func TestCharacter_IdleWithoutClips(t *testing.T) {
	c := NewCharacter(newSprite())
	c.Update(100)

	assert.Equal(t, Idle, c.Phase())
	assert.Nil(t, c.Image())
	assert.True(t, c.Sprite().Invisible(), "enabled characters hide the sprite")
}

func TestCharacter_LoopWraps(t *testing.T) {
	s := newSprite()
	c := NewCharacter(s)
	loop := frames(3)
	c.SetFrames(true, loop, 100, rule.Make(flags.Moving))
	s.State = flags.Moving

	c.Update(0)
	require.Equal(t, RunningLoop, c.Phase())
	assert.Same(t, loop[0], c.Image())

	c.Update(100)
	assert.Equal(t, 1, c.Frame())

	c.Update(250)
	assert.Equal(t, 0, c.Frame(), "wrapped past the last frame")
	assert.Equal(t, int64(50), c.Timer())
	assert.Same(t, loop[0], c.Image())
}

func TestCharacter_StartFramesHandOffToLoop(t *testing.T) {
	s := newSprite()
	c := NewCharacter(s)
	start, loop := frames(2), frames(2)
	r := rule.Make(flags.JumpingUp)
	c.SetFrames(false, start, 50, r)
	c.SetFrames(true, loop, 100, r)
	s.State = flags.JumpingUp

	c.Update(0)
	require.Equal(t, RunningStart, c.Phase())
	assert.Same(t, start[0], c.Image())

	c.Update(50)
	assert.Same(t, start[1], c.Image())

	c.Update(60)
	assert.Equal(t, RunningLoop, c.Phase())
	assert.Same(t, loop[0], c.Image())
	assert.Equal(t, 0, c.Frame())
	assert.Equal(t, int64(0), c.Timer(), "hand-off resets the timer")
}

func TestCharacter_StartOnlyHoldsLastFrame(t *testing.T) {
	s := newSprite()
	c := NewCharacter(s)
	start := frames(2)
	c.SetFrames(false, start, 50, rule.Make(flags.Turning))
	s.State = flags.Turning

	c.Update(0)
	c.Update(500)

	assert.Same(t, start[1], c.Image())
	assert.Equal(t, 1, c.Frame())

	c.Update(500)
	assert.Same(t, start[1], c.Image())
}

func TestCharacter_Selection(t *testing.T) {
	onGround := rule.Make(flags.OnGround)
	moving := rule.Make(flags.Moving)
	movingLeft := rule.Make(flags.Moving, flags.FacingLeft)

	t.Run("most specific rule wins", func(t *testing.T) {
		s := newSprite()
		c := NewCharacter(s)
		c.SetFrames(true, frames(1), 100, moving)
		c.SetFrames(true, frames(1), 100, movingLeft)
		s.State = flags.Moving | flags.FacingLeft

		c.Update(0)
		assert.Equal(t, movingLeft, c.Current().Rule)
	})

	t.Run("ties go to the earliest registered", func(t *testing.T) {
		s := newSprite()
		c := NewCharacter(s)
		c.SetFrames(true, frames(1), 100, onGround)
		c.SetFrames(true, frames(1), 100, moving)
		s.State = flags.OnGround | flags.Moving

		c.Update(0)
		assert.Equal(t, onGround, c.Current().Rule)
	})

	t.Run("ties keep the current clip", func(t *testing.T) {
		s := newSprite()
		c := NewCharacter(s)
		c.SetFrames(true, frames(1), 100, onGround)
		c.SetFrames(true, frames(1), 100, moving)

		s.State = flags.Moving
		c.Update(0)
		require.Equal(t, moving, c.Current().Rule)

		s.State = flags.OnGround | flags.Moving
		c.Update(0)
		assert.Equal(t, moving, c.Current().Rule)
	})

	t.Run("no matching rule is idle", func(t *testing.T) {
		s := newSprite()
		c := NewCharacter(s)
		c.SetFrames(true, frames(1), 100, rule.Make(flags.OnGround, flags.Moving))
		s.State = flags.OnGround

		c.Update(0)
		assert.Equal(t, Idle, c.Phase())
	})
}

func TestCharacter_TransitionResetsPlayback(t *testing.T) {
	s := newSprite()
	c := NewCharacter(s)
	walk, fall := frames(3), frames(2)
	c.SetFrames(true, walk, 100, rule.Make(flags.Moving))
	c.SetFrames(true, fall, 100, rule.Make(flags.Falling))

	s.State = flags.Moving
	c.Update(0)
	c.Update(130)
	require.Equal(t, 1, c.Frame())

	s.State = flags.Falling
	c.Update(10)

	assert.Same(t, fall[0], c.Image())
	assert.Equal(t, 0, c.Frame())
	assert.Equal(t, int64(10), c.Timer())
}

func TestCharacter_SetFrames(t *testing.T) {
	r := rule.Make(flags.Moving)

	t.Run("re-registering one mode keeps the other", func(t *testing.T) {
		c := NewCharacter(newSprite())
		start, loop, loop2 := frames(1), frames(2), frames(3)
		c.SetFrames(false, start, 50, r)
		c.SetFrames(true, loop, 100, r)
		c.SetFrames(true, loop2, 80, r)

		require.Len(t, c.Clips(), 1)
		clip := c.Clips()[0]
		assert.Equal(t, start, clip.StartFrames)
		assert.Equal(t, loop2, clip.LoopFrames)
		assert.Equal(t, int64(80), clip.LoopInterval)
	})

	t.Run("interval floor", func(t *testing.T) {
		c := NewCharacter(newSprite())
		c.SetFrames(true, frames(1), 1, r)
		assert.Equal(t, int64(MinInterval), c.Clips()[0].LoopInterval)
	})

	t.Run("ignores empty frames and the zero rule", func(t *testing.T) {
		c := NewCharacter(newSprite())
		c.SetFrames(true, nil, 100, r)
		c.SetFrames(true, frames(1), 100, 0)
		assert.Empty(t, c.Clips())
	})
}

func TestCharacter_SetEnabled(t *testing.T) {
	s := newSprite()
	c := NewCharacter(s)
	loop := frames(3)
	c.SetFrames(true, loop, 100, rule.Make(flags.Moving))
	s.State = flags.Moving
	c.Update(0)
	c.Update(150)
	require.Equal(t, 1, c.Frame())

	c.SetEnabled(false)
	assert.False(t, s.Invisible())
	assert.Nil(t, c.Image())

	c.Update(1000)
	assert.Equal(t, 1, c.Frame(), "disabled characters do not advance")
	assert.Equal(t, int64(50), c.Timer())

	c.SetEnabled(true)
	assert.True(t, s.Invisible())
	assert.Same(t, loop[1], c.Image())
}

func TestCharacter_Clear(t *testing.T) {
	moving := rule.Make(flags.Moving)
	ground := rule.Make(flags.OnGround)

	s := newSprite()
	c := NewCharacter(s)
	c.SetFrames(true, frames(1), 100, moving)
	c.SetFrames(false, frames(1), 100, moving)
	c.SetFrames(true, frames(1), 100, ground)
	s.State = flags.Moving | flags.OnGround
	c.Update(0)
	require.Equal(t, moving, c.Current().Rule)

	c.ClearAnimationsForRule(moving)
	require.Len(t, c.Clips(), 1)
	assert.Nil(t, c.Current())

	c.Update(0)
	assert.Equal(t, ground, c.Current().Rule)

	c.ClearAnimations()
	assert.Empty(t, c.Clips())
	c.Update(0)
	assert.Equal(t, Idle, c.Phase())
}

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "running_start", RunningStart.String())
	assert.Equal(t, "running_loop", RunningLoop.String())
}
