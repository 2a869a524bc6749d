package animation

import (
	"image"

	"github.com/younwookim/platformer/internal/domain/entity"
)

// DrawTarget receives character frames at pixel positions
type DrawTarget interface {
	DrawImage(img image.Image, x, y int)
}

// Camera is the world offset subtracted from drawn positions
type Camera struct {
	X, Y int
}

// Selector owns the animation state of every animated sprite in a context
type Selector struct {
	characters []*Character
	index      map[*entity.Sprite]*Character
}

func NewSelector() *Selector {
	return &Selector{index: make(map[*entity.Sprite]*Character)}
}

// StateFor returns the character for s, creating it when create is set.
// Returns nil for an unknown sprite otherwise.
func (sel *Selector) StateFor(s *entity.Sprite, create bool) *Character {
	if s == nil {
		return nil
	}
	if c, ok := sel.index[s]; ok {
		return c
	}
	if !create {
		return nil
	}
	c := NewCharacter(s)
	sel.characters = append(sel.characters, c)
	sel.index[s] = c
	return c
}

// Len returns the number of tracked characters
func (sel *Selector) Len() int {
	return len(sel.characters)
}

// Update prunes destroyed sprites and advances every character by dt milliseconds
func (sel *Selector) Update(dt int64) {
	sel.prune()
	for _, c := range sel.characters {
		c.Update(dt)
	}
}

func (sel *Selector) prune() {
	kept := sel.characters[:0]
	for _, c := range sel.characters {
		if c.sprite.Destroyed() {
			delete(sel.index, c.sprite)
			continue
		}
		kept = append(kept, c)
	}
	for i := len(kept); i < len(sel.characters); i++ {
		sel.characters[i] = nil
	}
	sel.characters = kept
}

// Draw renders the current frame of every enabled character. Frames are
// anchored to the side of the bounding box that gravity pulls toward.
func (sel *Selector) Draw(dst DrawTarget, cam Camera, gravity entity.Direction) {
	for _, c := range sel.characters {
		if !c.enabled || c.image == nil || c.sprite.Destroyed() {
			continue
		}
		x, y := Position(&c.sprite.Body, c.image.Bounds(), gravity)
		if !c.sprite.RelativeToCamera() {
			x -= cam.X
			y -= cam.Y
		}
		dst.DrawImage(c.image, x, y)
	}
}

// Position returns the top-left pixel at which a frame is drawn for a body
func Position(b *entity.Body, frame image.Rectangle, gravity entity.Direction) (x, y int) {
	w, h := frame.Dx(), frame.Dy()
	switch gravity {
	case entity.DirUp:
		return b.CenterX() - w/2, b.Top()
	case entity.DirRight:
		return b.Right() - w, b.CenterY() - h/2
	case entity.DirLeft:
		return b.Left(), b.CenterY() - h/2
	}
	return b.CenterX() - w/2, b.Bottom() - h
}
