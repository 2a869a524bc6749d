package entity

import "github.com/younwookim/platformer/internal/domain/fx"

// BodyFlags are host-level flags of a movable object.
type BodyFlags uint8

const (
	BodyDestroyed BodyFlags = 1 << iota
	BodyInvisible
	BodyRelativeToCamera
)

// Object is anything that exposes a movable body.
type Object interface {
	Base() *Body
}

// Body is the base movable object shared by every sprite.
// Position is the top-left corner in pixels, stored as Fx8 for sub-pixel precision.
// Velocity is in pixels per second, acceleration in pixels per second squared.
type Body struct {
	X, Y   fx.Fx8
	VX, VY fx.Fx8
	AX, AY fx.Fx8

	Width, Height int
	Kind          int

	flags BodyFlags
	hits  uint8 // edges touched during the last physics step

	// set only by NewSprite; marks the platformer capability
	sprite *Sprite
}

// NewBody creates a body at pixel coordinates.
func NewBody(x, y, w, h, kind int) *Body {
	b := &Body{Width: w, Height: h, Kind: kind}
	b.SetPixelPos(x, y)
	return b
}

// Base returns the body itself.
func (b *Body) Base() *Body {
	return b
}

// SetPixelPos sets the top-left corner from pixel coordinates.
func (b *Body) SetPixelPos(x, y int) {
	b.X = fx.FromInt(x)
	b.Y = fx.FromInt(y)
}

func (b *Body) Left() int    { return b.X.Int() }
func (b *Body) Top() int     { return b.Y.Int() }
func (b *Body) Right() int   { return b.Left() + b.Width }
func (b *Body) Bottom() int  { return b.Top() + b.Height }
func (b *Body) CenterX() int { return b.Left() + b.Width/2 }
func (b *Body) CenterY() int { return b.Top() + b.Height/2 }

// Destroy marks the body as destroyed. Systems prune it lazily.
func (b *Body) Destroy() {
	b.flags |= BodyDestroyed
}

// Destroyed reports whether Destroy was called.
func (b *Body) Destroyed() bool {
	return b.flags&BodyDestroyed != 0
}

// Invisible reports whether the host should skip drawing the body's own image.
func (b *Body) Invisible() bool {
	return b.flags&BodyInvisible != 0
}

// SetInvisible toggles the invisible flag.
func (b *Body) SetInvisible(on bool) {
	b.setFlag(BodyInvisible, on)
}

// RelativeToCamera reports whether the body is drawn in screen space.
func (b *Body) RelativeToCamera() bool {
	return b.flags&BodyRelativeToCamera != 0
}

// SetRelativeToCamera toggles screen-space drawing.
func (b *Body) SetRelativeToCamera(on bool) {
	b.setFlag(BodyRelativeToCamera, on)
}

func (b *Body) setFlag(f BodyFlags, on bool) {
	if on {
		b.flags |= f
	} else {
		b.flags &^= f
	}
}

// IsHitting reports whether the body touched a solid tile on edge e
// during the last physics step.
func (b *Body) IsHitting(e Edge) bool {
	return b.hits&(1<<e) != 0
}

// SetHitting latches or clears contact on edge e.
func (b *Body) SetHitting(e Edge, on bool) {
	if on {
		b.hits |= 1 << e
	} else {
		b.hits &^= 1 << e
	}
}

// ClearObstacles drops every contact latch.
func (b *Body) ClearObstacles() {
	b.hits = 0
}
