package system

import (
	"math"

	"github.com/younwookim/platformer/internal/domain/entity"
	"github.com/younwookim/platformer/internal/domain/flags"
	"github.com/younwookim/platformer/internal/domain/fx"
	"github.com/younwookim/platformer/internal/domain/tuning"
)

func (m *MovementSystem) handleJumping(f Frame, s *entity.Sprite) {
	dir := f.Gravity.Direction
	onGround := m.onGround(dir, s)

	if !onGround && s.Behavior.Gravity() {
		m.updateWallState(dir, s)
	} else {
		s.State.Set(flags.OnWall, false)
	}
	onWall := s.State.Any(flags.OnWall)

	if onGround {
		s.JumpCount = 0
		s.LastOnGroundTime = f.Now
		s.State.Set(flags.AfterJumpApex|flags.Falling, false)
	} else if !s.State.Any(flags.AfterJumpApex | flags.JumpingUp) {
		s.State.Set(flags.Falling, true)
	}
	s.State.Set(flags.OnGround, onGround)

	if !onWall {
		ApplyGravity(s, f.Gravity)
		s.State.Set(flags.WallSliding, false)
	}

	coyote := int64(s.Const(tuning.CoyoteTimeMillis))
	didJump := false

	if onGround || (s.Behavior.CoyoteTime() && f.Now-s.LastOnGroundTime < coyote) {
		s.Behavior.Set(flags.CurrentlyJumping, false)
		s.State.Set(flags.JumpingUp, false)
		if graceElapsed(f, s) {
			didJump = m.tryJump(f, s, s.Const(tuning.MaxJumpHeight), 0)
		}
	} else if s.Behavior.CurrentlyJumping() {
		if f.Now-s.JumpStartTime > TimeToApex(s.LastJumpHeight, f.Gravity.Strength) {
			s.Behavior.Set(flags.CurrentlyJumping, false)
			s.State.Set(flags.JumpingUp, false)
			s.State.Set(flags.AfterJumpApex, true)
		}
		if s.Behavior.AllowJumpCancellation() {
			startedWithA := s.Behavior.JumpStartedWithA()
			if s.Behavior.JumpOnAPressed() && startedWithA && !m.buttons.Pressed(s.Player, ButtonA) {
				CancelJump(s, dir)
			}
			if s.Behavior.JumpOnUpPressed() && !startedWithA && !m.buttons.Pressed(s.Player, ButtonUp) {
				CancelJump(s, dir)
			}
		}
	}

	if !didJump && !onGround && !onWall {
		m.inAirJump(f, s)
	}

	if s.Behavior.WallJumps() {
		m.handleWall(f, s, onWall)
	}

	vertical := dir.Vertical()
	if onGround {
		if vertical {
			s.State.Set(flags.PushingWallLeft, m.touching(s, entity.EdgeLeft))
			s.State.Set(flags.PushingWallRight, m.touching(s, entity.EdgeRight))
		} else {
			s.State.Set(flags.PushingWallLeft, m.touching(s, entity.EdgeBottom))
			s.State.Set(flags.PushingWallRight, m.touching(s, entity.EdgeTop))
		}
	}

	// pushing into a wall never counts as accelerating
	vel, pos, neg := s.VY, entity.EdgeBottom, entity.EdgeTop
	if vertical {
		vel, pos, neg = s.VX, entity.EdgeRight, entity.EdgeLeft
	}
	if (vel > 0 && m.touching(s, pos)) || (vel < 0 && m.touching(s, neg)) {
		s.State.Set(flags.Accelerating, false)
	}
}

// tryJump starts a jump when a jump button was pressed within the grace
// window. The window is measured from the start of the frame, so a press
// stamped when the frame began still counts however long the frame is.
func (m *MovementSystem) tryJump(f Frame, s *entity.Sprite, height, kickoff int) bool {
	if !s.Behavior.ControlsEnabled() {
		return false
	}
	grace := int64(s.Const(tuning.JumpGracePeriodMillis))
	jumped := false

	if s.Behavior.JumpOnAPressed() && f.Start()-m.buttons.PressedAt(s.Player, ButtonA) < grace {
		StartJump(s, f.Gravity, f.Now, height, kickoff)
		s.Behavior.Set(flags.JumpStartedWithA, true)
		jumped = true
	}
	if s.Behavior.JumpOnUpPressed() && f.Start()-m.buttons.PressedAt(s.Player, ButtonUp) < grace {
		StartJump(s, f.Gravity, f.Now, height, kickoff)
		s.Behavior.Set(flags.JumpStartedWithA, false)
		jumped = true
	}
	return jumped
}

func (m *MovementSystem) inAirJump(f Frame, s *entity.Sprite) {
	jumps := s.Const(tuning.InAirJumps)
	if jumps <= 0 || s.JumpCount > jumps || !s.Behavior.ControlsEnabled() {
		return
	}
	height := s.Const(tuning.InAirJumpHeight)

	if s.Behavior.JumpOnAPressed() && m.buttons.JustPressed(s.Player, ButtonA) {
		// walking off a ledge uses up the ground jump
		if s.JumpCount == 0 {
			s.JumpCount = 1
		}
		StartJump(s, f.Gravity, f.Now, height, 0)
		s.Behavior.Set(flags.JumpStartedWithA, true)
	}
	if s.Behavior.JumpOnUpPressed() && m.buttons.JustPressed(s.Player, ButtonUp) {
		if s.JumpCount == 0 {
			s.JumpCount = 1
		}
		StartJump(s, f.Gravity, f.Now, height, 0)
		s.Behavior.Set(flags.JumpStartedWithA, false)
	}
}

func graceElapsed(f Frame, s *entity.Sprite) bool {
	return !s.HasJumped() || f.Now-s.JumpStartTime > int64(s.Const(tuning.JumpGracePeriodMillis))
}

// StartJump launches s against gravity so that it peaks height pixels up.
// A non-zero kickoff pushes it away from the last wall touched.
func StartJump(s *entity.Sprite, g entity.Gravity, now int64, height, kickoff int) {
	launch := fx.Zero
	if h := 2 * math.Abs(float64(g.Strength)) * float64(height); h > 0 {
		launch = fx.FromFloat(math.Sqrt(h))
	}
	kick := fx.FromInt(kickoff)
	if !s.Behavior.LastWallLeft() {
		kick = -kick
	}

	switch g.Direction {
	case entity.DirUp:
		s.VY = launch
		if kickoff != 0 {
			s.VX = kick
		}
	case entity.DirRight:
		s.VX = -launch
		if kickoff != 0 {
			s.VY = kick
		}
	case entity.DirLeft:
		s.VX = launch
		if kickoff != 0 {
			s.VY = kick
		}
	default:
		s.VY = -launch
		if kickoff != 0 {
			s.VX = kick
		}
	}

	s.Behavior.Set(flags.CurrentlyJumping, true)
	s.State.Set(flags.JumpingUp, true)
	s.State.Set(flags.Falling, false)
	s.JumpStartTime = now
	s.LastOnGroundTime = entity.Never
	s.LastJumpHeight = height
	s.JumpCount++
	s.ClearObstacles()
}

// CancelJump stops upward motion and moves the sprite past the apex
func CancelJump(s *entity.Sprite, dir entity.Direction) {
	if dir.Vertical() {
		s.VY = 0
	} else {
		s.VX = 0
	}
	s.Behavior.Set(flags.CurrentlyJumping, false)
	s.State.Set(flags.JumpingUp, false)
	s.State.Set(flags.AfterJumpApex, true)
}

// TimeToApex is the time in milliseconds a jump of height pixels takes to peak.
// Zero gravity never peaks.
func TimeToApex(height, strength int) int64 {
	g := math.Abs(float64(strength))
	if g == 0 {
		return math.MaxInt64
	}
	if height <= 0 {
		return 0
	}
	return int64(1000 * math.Sqrt(2*float64(height)*g) / g)
}
