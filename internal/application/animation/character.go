package animation

import (
	"image"

	"github.com/younwookim/platformer/internal/domain/entity"
	"github.com/younwookim/platformer/internal/domain/rule"
)

// MinInterval is the shortest frame interval in milliseconds
const MinInterval = 5

// Phase is the playback phase of a character
type Phase int

const (
	Idle Phase = iota
	RunningStart
	RunningLoop
)

func (p Phase) String() string {
	switch p {
	case RunningStart:
		return "running_start"
	case RunningLoop:
		return "running_loop"
	}
	return "idle"
}

// Clip holds the frames bound to one rule
type Clip struct {
	Rule          rule.Rule
	StartFrames   []image.Image
	StartInterval int64
	LoopFrames    []image.Image
	LoopInterval  int64
}

// Character plays the best-matching clip for a sprite's state
type Character struct {
	sprite  *entity.Sprite
	clips   []*Clip
	current *Clip

	timer        int64
	frame        int
	enabled      bool
	runningStart bool
	image        image.Image
}

// NewCharacter creates an enabled character, which hides the sprite's own image
func NewCharacter(s *entity.Sprite) *Character {
	c := &Character{sprite: s}
	c.SetEnabled(true)
	return c
}

func (c *Character) Sprite() *entity.Sprite { return c.sprite }
func (c *Character) Frame() int             { return c.frame }
func (c *Character) Timer() int64           { return c.timer }
func (c *Character) Enabled() bool          { return c.enabled }

// Image returns the frame to draw, or nil before any clip has played
func (c *Character) Image() image.Image { return c.image }

// Current returns the playing clip, or nil when idle
func (c *Character) Current() *Clip { return c.current }

// Clips returns the registered clips in registration order
func (c *Character) Clips() []*Clip { return c.clips }

func (c *Character) Phase() Phase {
	switch {
	case c.current == nil:
		return Idle
	case c.runningStart:
		return RunningStart
	}
	return RunningLoop
}

// SetFrames registers loop or start frames for a rule. The other mode of an
// existing clip for the same rule is kept. Empty frame lists and the zero
// rule are ignored; intervals are floored at MinInterval.
func (c *Character) SetFrames(loop bool, frames []image.Image, interval int64, r rule.Rule) {
	if len(frames) == 0 || r == 0 {
		return
	}
	if interval < MinInterval {
		interval = MinInterval
	}

	clip := c.clipFor(r)
	if clip == nil {
		clip = &Clip{Rule: r}
		c.clips = append(c.clips, clip)
	}
	if loop {
		clip.LoopFrames = frames
		clip.LoopInterval = interval
	} else {
		clip.StartFrames = frames
		clip.StartInterval = interval
	}
}

func (c *Character) clipFor(r rule.Rule) *Clip {
	for _, clip := range c.clips {
		if clip.Rule == r {
			return clip
		}
	}
	return nil
}

// Update selects the clip for the sprite's state and advances it by dt milliseconds
func (c *Character) Update(dt int64) {
	next := c.pick()
	if next != c.current {
		c.frame = 0
		c.timer = 0
		c.runningStart = next != nil && len(next.StartFrames) > 0
		c.current = next
		if next != nil && c.enabled {
			c.image = c.frameImage()
		}
	}

	if c.current == nil || !c.enabled {
		return
	}

	c.timer += dt
	clip := c.current

	if c.runningStart {
		for c.runningStart && c.timer >= clip.StartInterval {
			c.timer -= clip.StartInterval
			c.frame++
			if c.frame < len(clip.StartFrames) {
				c.image = clip.StartFrames[c.frame]
				continue
			}
			c.runningStart = false
			if len(clip.LoopFrames) > 0 {
				c.frame = 0
				c.timer = 0
				c.image = clip.LoopFrames[0]
			} else {
				// no loop frames: hold the last start frame
				c.frame = len(clip.StartFrames) - 1
			}
		}
		return
	}

	if len(clip.LoopFrames) == 0 {
		return
	}
	for c.timer >= clip.LoopInterval {
		c.timer -= clip.LoopInterval
		c.frame = (c.frame + 1) % len(clip.LoopFrames)
		c.image = clip.LoopFrames[c.frame]
	}
}

// pick returns the highest scoring clip. Ties keep the current clip, then the
// earliest registered one. Nothing scoring above zero means idle.
func (c *Character) pick() *Clip {
	state := c.sprite.State
	best := c.current
	bestScore := 0
	if best != nil {
		bestScore = rule.Score(state, best.Rule)
	}

	for _, clip := range c.clips {
		if s := rule.Score(state, clip.Rule); s > bestScore {
			best = clip
			bestScore = s
		}
	}

	if bestScore == 0 {
		return nil
	}
	return best
}

func (c *Character) frameImage() image.Image {
	clip := c.current
	switch {
	case clip == nil:
		return nil
	case c.runningStart:
		return clip.StartFrames[c.frame]
	case len(clip.LoopFrames) > 0:
		return clip.LoopFrames[c.frame%len(clip.LoopFrames)]
	case len(clip.StartFrames) > 0:
		return clip.StartFrames[len(clip.StartFrames)-1]
	}
	return nil
}

// SetEnabled turns rule animations on or off. Frame and timer are kept;
// the sprite's own image is hidden while enabled.
func (c *Character) SetEnabled(on bool) {
	c.enabled = on
	if on {
		if img := c.frameImage(); img != nil {
			c.image = img
		}
	} else {
		c.image = nil
	}
	c.sprite.SetInvisible(on)
}

// ClearAnimations drops every clip
func (c *Character) ClearAnimations() {
	c.clips = nil
	c.current = nil
}

// ClearAnimationsForRule drops the clip registered for r, both modes
func (c *Character) ClearAnimationsForRule(r rule.Rule) {
	kept := c.clips[:0]
	for _, clip := range c.clips {
		if clip.Rule != r {
			kept = append(kept, clip)
		}
	}
	for i := len(kept); i < len(c.clips); i++ {
		c.clips[i] = nil
	}
	c.clips = kept

	if c.current != nil && c.current.Rule == r {
		c.current = nil
	}
}
