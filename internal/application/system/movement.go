package system

import (
	"github.com/younwookim/platformer/internal/domain/entity"
	"github.com/younwookim/platformer/internal/domain/flags"
	"github.com/younwookim/platformer/internal/domain/fx"
	"github.com/younwookim/platformer/internal/domain/tuning"
)

// Frame is the per-tick input of the movement engine
type Frame struct {
	Now     int64 // simulation milliseconds after this tick
	DT      int64 // elapsed milliseconds
	Gravity entity.Gravity
}

// Start is the simulation time when the tick began
func (f Frame) Start() int64 { return f.Now - f.DT }

// MovementSystem turns controller input into velocity, acceleration and state flags
type MovementSystem struct {
	collision Collision
	buttons   *Buttons
}

// NewMovementSystem creates a new movement system
func NewMovementSystem(collision Collision, buttons *Buttons) *MovementSystem {
	return &MovementSystem{
		collision: collision,
		buttons:   buttons,
	}
}

// SetCollision swaps the collision source, e.g. after a stage change
func (m *MovementSystem) SetCollision(c Collision) {
	m.collision = c
}

// Update steers every live sprite, then runs the jump and wall state machine.
// Sprites appended by the caller during the tick are picked up on the next one.
func (m *MovementSystem) Update(f Frame, sprites []*entity.Sprite) {
	for i := 0; i < len(sprites); i++ {
		if s := sprites[i]; !s.Destroyed() {
			m.steer(f, s)
		}
	}
	for i := 0; i < len(sprites); i++ {
		if s := sprites[i]; !s.Destroyed() {
			m.handleJumping(f, s)
		}
	}
}

func (m *MovementSystem) steer(f Frame, s *entity.Sprite) {
	svx, svy := m.buttons.steering(s)
	speed := s.Const(tuning.MoveSpeed)

	// Only the axis orthogonal to gravity is steered; the other component is dropped.
	vertical := f.Gravity.Direction.Vertical()
	v, sv := &s.VY, svy
	if vertical {
		v, sv = &s.VX, svx
	}

	if s.Behavior.MovementMomentum() {
		s.State.Set(flags.SpeedFlags, false)
		switch {
		case sv != 0:
			if speed != 0 {
				m.accelerate(f, s, v, sv, fx.FromInt(speed))
			}
			s.Behavior.Set(flags.InputLastFrame, true)
		case s.Behavior.Friction():
			if speed != 0 {
				m.decelerate(f, s, v)
			}
			s.Behavior.Set(flags.InputLastFrame, false)
		default:
			s.State.Set(flags.Decelerating, false)
		}
	} else {
		if s.Behavior.InputLastFrame() && speed != 0 {
			*v = 0
		}
		if sv != 0 {
			if speed != 0 {
				*v = fx.IMul(fx.Fx8(sv), speed)
			}
			s.Behavior.Set(flags.InputLastFrame, true)
		} else {
			s.Behavior.Set(flags.InputLastFrame, false)
		}
	}

	m.updateFacing(s, vertical)
}

// accelerate moves v toward the signed target speed. When already faster than
// target in the steering direction it brakes with friction instead, never
// dropping below target.
func (m *MovementSystem) accelerate(f Frame, s *entity.Sprite, v *fx.Fx8, sv int, target fx.Fx8) {
	tooFast := (*v > 0 && *v > target && sv > 0) || (*v < 0 && *v < -target && sv < 0)

	if tooFast {
		friction := m.frictionStep(f, s)
		switch fx.Compare(*v, 0) {
		case -1:
			*v = fx.Min(-target, *v+friction)
		case 1:
			*v = fx.Max(target, *v-friction)
		}

		atMax := atTarget(*v, sv, target)
		s.State.Set(flags.MaxRunningSpeed, atMax)
		if !atMax {
			s.State.Set(flags.Decelerating|flags.AboveMaxSpeed, true)
		}
		return
	}

	acc := fx.FromInt(s.Const(tuning.MovementAcceleration))
	*v = fx.Add(*v, fx.Scale(fx.Mul(fx.Fx8(sv), acc), f.DT))
	if sv > 0 {
		*v = fx.Min(*v, target)
	} else {
		*v = fx.Max(*v, -target)
	}

	atMax := atTarget(*v, sv, target)
	s.State.Set(flags.MaxRunningSpeed, atMax)
	if atMax {
		return
	}
	if v.Sign() != sign(sv) {
		s.State.Set(flags.Turning, true)
	} else {
		s.State.Set(flags.Accelerating, true)
	}
}

// decelerate applies friction toward zero without crossing it
func (m *MovementSystem) decelerate(f Frame, s *entity.Sprite, v *fx.Fx8) {
	friction := m.frictionStep(f, s)
	switch fx.Compare(*v, 0) {
	case -1:
		s.State.Set(flags.Decelerating, true)
		*v = fx.Min(0, *v+friction)
	case 1:
		s.State.Set(flags.Decelerating, true)
		*v = fx.Max(0, *v-friction)
	default:
		s.State.Set(flags.Decelerating, false)
		*v = 0
	}
}

// frictionStep is ground or air friction scaled to the frame time
func (m *MovementSystem) frictionStep(f Frame, s *entity.Sprite) fx.Fx8 {
	c := tuning.AirFriction
	if m.onGround(f.Gravity.Direction, s) {
		c = tuning.GroundFriction
	}
	return scaled(s.Const(c), f.DT)
}

func (m *MovementSystem) updateFacing(s *entity.Sprite, vertical bool) {
	vel, pos, neg := s.VY, entity.EdgeBottom, entity.EdgeTop
	if vertical {
		vel, pos, neg = s.VX, entity.EdgeRight, entity.EdgeLeft
	}

	moving, left := false, false
	switch {
	case vel > 0 && m.touching(s, pos):
	case vel < 0 && m.touching(s, neg):
		left = true
	case vel != 0:
		moving = true
		left = vel < 0
	}

	if s.Behavior.InputLastFrame() {
		s.State.Set(flags.FacingLeft, left)
		s.State.Set(flags.FacingRight, !left)
	}
	s.State.Set(flags.Moving, moving)
}

func (m *MovementSystem) touching(s *entity.Sprite, e entity.Edge) bool {
	if m.collision == nil {
		return false
	}
	return m.collision.IsTouchingSurface(&s.Body, e)
}

func (m *MovementSystem) onGround(dir entity.Direction, s *entity.Sprite) bool {
	return m.touching(s, dir.Edge())
}

// ApplyGravity sets the sprite's acceleration from g, or zeroes it when the
// sprite has gravity disabled.
func ApplyGravity(s *entity.Sprite, g entity.Gravity) {
	s.AX, s.AY = 0, 0
	if !s.Behavior.Gravity() {
		return
	}
	strength := fx.FromInt(g.Strength)
	switch g.Direction {
	case entity.DirDown:
		s.AY = strength
	case entity.DirUp:
		s.AY = -strength
	case entity.DirRight:
		s.AX = strength
	case entity.DirLeft:
		s.AX = -strength
	}
}

func atTarget(v fx.Fx8, sv int, target fx.Fx8) bool {
	if sv > 0 {
		return fx.Compare(v, target) == 0
	}
	return fx.Compare(v, -target) == 0
}

// scaled returns per-second amount a applied over dt milliseconds
func scaled(a int, dt int64) fx.Fx8 {
	return fx.Scale(fx.FromInt(a), dt)
}

func sign(x int) int {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}
