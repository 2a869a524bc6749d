package system

import (
	"github.com/younwookim/platformer/internal/domain/entity"
	"github.com/younwookim/platformer/internal/domain/flags"
	"github.com/younwookim/platformer/internal/domain/fx"
	"github.com/younwookim/platformer/internal/domain/tuning"
)

func (m *MovementSystem) handleWall(f Frame, s *entity.Sprite, onWall bool) {
	dir := f.Gravity.Direction
	v, down := gravityAxis(s, dir)

	// sliding only while moving with gravity
	sliding := onWall && fx.Compare(*v, 0) == down

	if onWall {
		s.Behavior.Set(flags.LastWallLeft, s.State.OnWallLeft())
	}

	coyote := int64(s.Const(tuning.CoyoteTimeMillis))
	didWallJump := false
	if sliding || (s.Behavior.CoyoteTime() && f.Now-s.LastOnWallTime < coyote) {
		if graceElapsed(f, s) {
			didWallJump = m.tryJump(f, s, s.Const(tuning.WallJumpHeight), s.Const(tuning.WallJumpKickoffVelocity))
		}
	}

	if !onWall || didWallJump {
		s.State.Set(flags.WallSliding, false)
		return
	}

	s.State.Set(flags.WallSliding, sliding)
	if !sliding {
		return
	}
	s.State.Set(flags.JumpingUp|flags.AfterJumpApex|flags.Falling, false)

	friction := scaled(s.Const(tuning.WallFriction), f.DT)
	minSpeed := fx.FromInt(s.Const(tuning.WallMinVelocity))
	switch fx.Compare(*v, 0) {
	case -1:
		*v = fx.Min(0, *v+friction)
	case 1:
		*v = fx.Max(0, *v-friction)
	}
	if fx.Compare(v.Abs(), minSpeed) < 0 {
		if v.Sign() < 0 || (*v == 0 && down < 0) {
			*v = -minSpeed
		} else {
			*v = minSpeed
		}
	}

	if dir.Vertical() {
		s.AY = 0
	} else {
		s.AX = 0
	}
	s.LastOnWallTime = f.Now
}

// gravityAxis returns the velocity component along gravity and the sign
// that component has when moving with gravity.
func gravityAxis(s *entity.Sprite, dir entity.Direction) (*fx.Fx8, int) {
	switch dir {
	case entity.DirUp:
		return &s.VY, -1
	case entity.DirLeft:
		return &s.VX, -1
	case entity.DirRight:
		return &s.VX, 1
	}
	return &s.VY, 1
}

// updateWallState probes the edges orthogonal to gravity. Once on a wall the
// flag holds while any tile along the leading column (or row) is solid or off-map.
func (m *MovementSystem) updateWallState(dir entity.Direction, s *entity.Sprite) {
	vertical := dir.Vertical()
	lo, hi := entity.EdgeTop, entity.EdgeBottom
	if vertical {
		lo, hi = entity.EdgeLeft, entity.EdgeRight
	}

	if m.touching(s, lo) {
		s.State.Set(flags.OnWallLeft, true)
		s.State.Set(flags.OnWallRight, false)
		return
	}
	if m.touching(s, hi) {
		s.State.Set(flags.OnWallRight, true)
		s.State.Set(flags.OnWallLeft, false)
		return
	}
	if m.collision == nil {
		s.State.Set(flags.OnWall, false)
		return
	}

	shift := m.collision.TileShift()
	left := (s.Left() - 1) >> shift
	right := s.Right() >> shift
	top := (s.Top() - 1) >> shift
	bottom := s.Bottom() >> shift

	if s.State.OnWallLeft() {
		if vertical {
			for row := top; row <= bottom; row++ {
				if m.blocked(left, row) {
					return
				}
			}
		} else {
			for col := left; col <= right; col++ {
				if m.blocked(col, top) {
					return
				}
			}
		}
		s.State.Set(flags.OnWallLeft, false)
	}

	if s.State.OnWallRight() {
		if vertical {
			for row := top; row <= bottom; row++ {
				if m.blocked(right, row) {
					return
				}
			}
		} else {
			for col := left; col <= right; col++ {
				if m.blocked(col, bottom) {
					return
				}
			}
		}
	}
	s.State.Set(flags.OnWallRight, false)
}

func (m *MovementSystem) blocked(col, row int) bool {
	return m.collision.IsSolid(col, row) || m.collision.IsOutsideBounds(col, row)
}
