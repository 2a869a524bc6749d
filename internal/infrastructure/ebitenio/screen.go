package ebitenio

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// Screen draws animation frames onto an ebiten image. Frames that are not
// already ebiten images are uploaded once and cached.
type Screen struct {
	dst   *ebiten.Image
	cache map[image.Image]*ebiten.Image
}

func NewScreen() *Screen {
	return &Screen{cache: make(map[image.Image]*ebiten.Image)}
}

// SetTarget selects the image drawn to, usually the frame's screen
func (s *Screen) SetTarget(dst *ebiten.Image) {
	s.dst = dst
}

// DrawImage implements animation.DrawTarget
func (s *Screen) DrawImage(img image.Image, x, y int) {
	if s.dst == nil || img == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	s.dst.DrawImage(s.upload(img), op)
}

// Cached returns the number of uploaded frames
func (s *Screen) Cached() int {
	return len(s.cache)
}

func (s *Screen) upload(img image.Image) *ebiten.Image {
	if e, ok := img.(*ebiten.Image); ok {
		return e
	}
	if e, ok := s.cache[img]; ok {
		return e
	}
	e := ebiten.NewImageFromImage(img)
	s.cache[img] = e
	return e
}
