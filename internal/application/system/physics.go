package system

import (
	"github.com/younwookim/platformer/internal/domain/entity"
	"github.com/younwookim/platformer/internal/domain/fx"
)

// DefaultMaxVelocity caps each velocity component, in pixels per second
const DefaultMaxVelocity = 500

// PhysicsSystem integrates acceleration and velocity and moves bodies
// pixel by pixel against the stage tiles, latching the edges they touch.
type PhysicsSystem struct {
	stage       *entity.Stage
	maxVelocity fx.Fx8
}

// NewPhysicsSystem creates a new physics system
func NewPhysicsSystem(stage *entity.Stage) *PhysicsSystem {
	return &PhysicsSystem{
		stage:       stage,
		maxVelocity: fx.FromInt(DefaultMaxVelocity),
	}
}

// SetStage replaces the stage used for collision
func (s *PhysicsSystem) SetStage(stage *entity.Stage) {
	s.stage = stage
}

// SetMaxVelocity changes the per-axis speed cap
func (s *PhysicsSystem) SetMaxVelocity(pixelsPerSecond int) {
	s.maxVelocity = fx.FromInt(pixelsPerSecond)
}

// Update steps every live sprite
func (s *PhysicsSystem) Update(sprites []*entity.Sprite, dt int64) {
	for _, sp := range sprites {
		if !sp.Destroyed() {
			s.Step(&sp.Body, dt)
		}
	}
}

// Step advances one body by dt milliseconds
func (s *PhysicsSystem) Step(b *entity.Body, dt int64) {
	b.ClearObstacles()

	b.VX = fx.Clamp(fx.Add(b.VX, fx.Scale(b.AX, dt)), -s.maxVelocity, s.maxVelocity)
	b.VY = fx.Clamp(fx.Add(b.VY, fx.Scale(b.AY, dt)), -s.maxVelocity, s.maxVelocity)

	// Move X axis, then Y axis (1 pixel substeps)
	s.moveX(b, fx.Scale(b.VX, dt))
	s.moveY(b, fx.Scale(b.VY, dt))

	s.probeContacts(b)
}

// moveX moves a body horizontally with collision
func (s *PhysicsSystem) moveX(b *entity.Body, dx fx.Fx8) {
	target := fx.Add(b.X, dx)
	from, to := b.Left(), target.Int()
	step := sign(to - from)

	for px := from; px != to; px += step {
		if s.isSolidRect(px+step, b.Top(), b.Width, b.Height) {
			// Hit wall
			b.X = fx.FromInt(px)
			b.VX = 0
			if step > 0 {
				b.SetHitting(entity.EdgeRight, true)
			} else {
				b.SetHitting(entity.EdgeLeft, true)
			}
			return
		}
	}
	b.X = target
}

// moveY moves a body vertically with collision
func (s *PhysicsSystem) moveY(b *entity.Body, dy fx.Fx8) {
	target := fx.Add(b.Y, dy)
	from, to := b.Top(), target.Int()
	step := sign(to - from)

	for py := from; py != to; py += step {
		if s.isSolidRect(b.Left(), py+step, b.Width, b.Height) {
			b.Y = fx.FromInt(py)
			b.VY = 0
			if step > 0 {
				b.SetHitting(entity.EdgeBottom, true)
			} else {
				b.SetHitting(entity.EdgeTop, true)
			}
			return
		}
	}
	b.Y = target
}

// probeContacts latches edges that are flush against a tile while the body
// moves or accelerates into them, so resting contact survives sub-pixel steps.
func (s *PhysicsSystem) probeContacts(b *entity.Body) {
	if into(b.VY, b.AY) > 0 && s.isSolidRect(b.Left(), b.Bottom(), b.Width, 1) {
		b.SetHitting(entity.EdgeBottom, true)
	}
	if into(b.VY, b.AY) < 0 && s.isSolidRect(b.Left(), b.Top()-1, b.Width, 1) {
		b.SetHitting(entity.EdgeTop, true)
	}
	if into(b.VX, b.AX) > 0 && s.isSolidRect(b.Right(), b.Top(), 1, b.Height) {
		b.SetHitting(entity.EdgeRight, true)
	}
	if into(b.VX, b.AX) < 0 && s.isSolidRect(b.Left()-1, b.Top(), 1, b.Height) {
		b.SetHitting(entity.EdgeLeft, true)
	}
}

// into is the sign of motion along an axis, falling back to acceleration at rest
func into(v, a fx.Fx8) int {
	if v != 0 {
		return v.Sign()
	}
	return a.Sign()
}

// isSolidRect checks if any tile in the rect is solid
// Iterates all tiles the rectangle overlaps to handle any hitbox size
func (s *PhysicsSystem) isSolidRect(x, y, w, h int) bool {
	if s.stage == nil || w <= 0 || h <= 0 {
		return false
	}
	shift := s.stage.TileShift()

	// Calculate tile range that the rect overlaps
	startTX := x >> shift
	endTX := (x + w - 1) >> shift
	startTY := y >> shift
	endTY := (y + h - 1) >> shift

	for ty := startTY; ty <= endTY; ty++ {
		for tx := startTX; tx <= endTX; tx++ {
			if s.stage.GetTile(tx, ty).Solid {
				return true
			}
		}
	}

	return false
}
