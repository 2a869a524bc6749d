package simulation

import (
	"errors"
	"fmt"
	"image"

	"github.com/younwookim/platformer/internal/application/animation"
	"github.com/younwookim/platformer/internal/application/system"
	"github.com/younwookim/platformer/internal/domain/entity"
	"github.com/younwookim/platformer/internal/domain/flags"
	"github.com/younwookim/platformer/internal/domain/rule"
	"github.com/younwookim/platformer/internal/domain/tuning"
	"github.com/younwookim/platformer/internal/infrastructure/config"
)

// ErrUntracked is raised when a sprite from another context is passed in.
var ErrUntracked = errors.New("simulation: sprite is not tracked by this context")

// Context is one scene's platformer world: its sprites, gravity, default
// constants, input edges, event handlers and animation state.
type Context struct {
	gravity  entity.Gravity
	template flags.Behavior
	defaults *tuning.Table
	now      int64

	sprites []*entity.Sprite
	tracked map[*entity.Sprite]struct{}
	created map[int][]func(*entity.Sprite)

	buttons    *system.Buttons
	movement   *system.MovementSystem
	dispatcher *system.EventDispatcher
	animations *animation.Selector
}

// New creates a context whose default constants overlay root.
// A nil root uses tuning.Defaults(); a nil collision sees no tiles.
func New(root *tuning.Table, collision system.Collision) *Context {
	if root == nil {
		root = tuning.Defaults()
	}
	if collision == nil {
		collision = system.NewTileCollision(nil)
	}
	buttons := system.NewButtons()
	return &Context{
		gravity:    entity.DefaultGravity,
		template:   flags.DefaultTemplate,
		defaults:   tuning.NewTable(root),
		tracked:    make(map[*entity.Sprite]struct{}),
		created:    make(map[int][]func(*entity.Sprite)),
		buttons:    buttons,
		movement:   system.NewMovementSystem(collision, buttons),
		dispatcher: system.NewEventDispatcher(),
		animations: animation.NewSelector(),
	}
}

func (c *Context) Now() int64                          { return c.now }
func (c *Context) Gravity() entity.Gravity             { return c.gravity }
func (c *Context) Template() flags.Behavior            { return c.template }
func (c *Context) Defaults() *tuning.Table             { return c.defaults }
func (c *Context) Buttons() *system.Buttons            { return c.buttons }
func (c *Context) Animations() *animation.Selector     { return c.animations }
func (c *Context) Dispatcher() *system.EventDispatcher { return c.dispatcher }

// Sprites returns the tracked sprites in creation order
func (c *Context) Sprites() []*entity.Sprite {
	return c.sprites
}

// SetCollision swaps the collision source, e.g. after a stage change
func (c *Context) SetCollision(collision system.Collision) {
	c.movement.SetCollision(collision)
}

// Bind attaches a controller to a player slot (0-3)
func (c *Context) Bind(player int, ctrl system.Controller) {
	c.buttons.Bind(player, ctrl)
}

// HandleButton records an A or Up edge at the current simulation time,
// which is the start of the next Advance
func (c *Context) HandleButton(player int, b system.Button, pressed bool) {
	c.buttons.Handle(system.ButtonEvent{Player: player, Button: b, Pressed: pressed, At: c.now})
}

// Advance runs one movement tick of dt milliseconds, fires state edge
// events and drops destroyed sprites.
func (c *Context) Advance(dt int64) {
	c.now += dt
	c.movement.Update(system.Frame{Now: c.now, DT: dt, Gravity: c.gravity}, c.sprites)
	c.dispatcher.Dispatch(c.sprites)
	c.buttons.EndFrame()
	c.compact()
}

// Animate advances every character animation by dt milliseconds
func (c *Context) Animate(dt int64) {
	c.animations.Update(dt)
}

// Draw renders character frames anchored according to the gravity direction
func (c *Context) Draw(dst animation.DrawTarget, cam animation.Camera) {
	c.animations.Draw(dst, cam, c.gravity.Direction)
}

func (c *Context) compact() {
	kept := c.sprites[:0]
	for _, s := range c.sprites {
		if s.Destroyed() {
			delete(c.tracked, s)
			continue
		}
		kept = append(kept, s)
	}
	for i := len(kept); i < len(c.sprites); i++ {
		c.sprites[i] = nil
	}
	c.sprites = kept
}

// Create makes a sprite facing right with the context's template flags and
// gravity, then runs the created handlers registered for its kind.
func (c *Context) Create(x, y, w, h, kind int) *entity.Sprite {
	s := entity.NewSprite(x, y, w, h, kind, c.template, c.defaults)
	s.State.Set(flags.FacingRight, true)
	system.ApplyGravity(s, c.gravity)

	c.sprites = append(c.sprites, s)
	c.tracked[s] = struct{}{}

	for _, fn := range c.created[kind] {
		fn(s)
	}
	return s
}

// OnCreated registers fn to run for every sprite of kind made by Create
func (c *Context) OnCreated(kind int, fn func(*entity.Sprite)) {
	c.created[kind] = append(c.created[kind], fn)
}

// sprite resolves o to a platformer sprite owned by this context or panics
func (c *Context) sprite(o entity.Object) *entity.Sprite {
	s := entity.MustSprite(o)
	if _, ok := c.tracked[s]; !ok {
		panic(fmt.Errorf("%w: kind %d", ErrUntracked, s.Kind))
	}
	return s
}

// MoveSprite turns controller steering on or off. When enabling, a speed of
// zero or more sets the sprite's move speed and a negative one keeps it; a
// player of 0-3 rebinds the sprite, anything else keeps its player.
func (c *Context) MoveSprite(o entity.Object, enabled bool, speed, player int) {
	s := c.sprite(o)
	if player >= 0 && player < system.MaxPlayers {
		s.Player = player
	}
	if !enabled {
		s.Behavior.Set(flags.ControlsEnabled, false)
		return
	}
	s.Behavior.Set(flags.ControlsEnabled, true)
	if speed >= 0 {
		s.Constants.SetValue(tuning.MoveSpeed, speed)
	}
}

// SetMoving makes the sprite steer left or right on its own.
// Any other direction clears the override.
func (c *Context) SetMoving(o entity.Object, dir entity.Direction) {
	s := c.sprite(o)
	switch dir {
	case entity.DirLeft, entity.DirRight:
		s.Moving = dir
	default:
		s.Moving = entity.DirNone
	}
}

// Jump launches the sprite to peak height pixels up; zero or less uses
// its max jump height.
func (c *Context) Jump(o entity.Object, height int) {
	s := c.sprite(o)
	if height <= 0 {
		height = s.Const(tuning.MaxJumpHeight)
	}
	system.StartJump(s, c.gravity, c.now, height, 0)
}

// SetGravityEnabled toggles gravity for one sprite
func (c *Context) SetGravityEnabled(o entity.Object, on bool) {
	s := c.sprite(o)
	s.Behavior.Set(flags.Gravity, on)
	system.ApplyGravity(s, c.gravity)
}

// SetFrictionEnabled toggles friction for one sprite
func (c *Context) SetFrictionEnabled(o entity.Object, on bool) {
	c.sprite(o).Behavior.Set(flags.Friction, on)
}

// SetGravity changes gravity for the context and every sprite in it
func (c *Context) SetGravity(strength int, dir entity.Direction) {
	if dir == entity.DirNone {
		dir = entity.DirDown
	}
	c.gravity = entity.Gravity{Strength: strength, Direction: dir}
	for _, s := range c.sprites {
		system.ApplyGravity(s, c.gravity)
	}
}

// SetFeatureEnabled updates the template and every existing sprite
func (c *Context) SetFeatureEnabled(f flags.Feature, on bool) {
	c.template.Set(f, on)
	for _, s := range c.sprites {
		s.Behavior.Set(f, on)
	}
}

// SetDefaultConstant sets a constant for every sprite without its own value
func (c *Context) SetDefaultConstant(k tuning.Constant, v int) {
	c.defaults.SetValue(k, v)
}

// SetConstant sets a constant on one sprite
func (c *Context) SetConstant(o entity.Object, k tuning.Constant, v int) {
	c.sprite(o).Constants.SetValue(k, v)
}

// HasState reports whether every flag in f is set on the sprite
func (c *Context) HasState(o entity.Object, f flags.State) bool {
	return c.sprite(o).HasState(f)
}

// OnRule registers a handler for every sprite in the context
func (c *Context) OnRule(r rule.Rule, cond entity.Condition, fn func(*entity.Sprite)) {
	c.dispatcher.AddHandler(r, cond, fn)
}

// OnSpriteRule registers a handler for one sprite
func (c *Context) OnSpriteRule(o entity.Object, r rule.Rule, cond entity.Condition, fn func(*entity.Sprite)) {
	c.sprite(o).AddHandler(entity.EventHandler{Rule: r, Condition: cond, Fn: fn})
}

// ClearSpriteHandlers drops every handler registered for one sprite.
// Context-wide handlers and animation clips are kept.
func (c *Context) ClearSpriteHandlers(o entity.Object) {
	c.sprite(o).ClearHandlers()
}

// LoopFrames loops frames while r is the best rule for the sprite
func (c *Context) LoopFrames(o entity.Object, frames []image.Image, interval int64, r rule.Rule) {
	c.setFrames(o, true, frames, interval, r)
}

// RunFrames plays frames once when r becomes the best rule, before any loop frames
func (c *Context) RunFrames(o entity.Object, frames []image.Image, interval int64, r rule.Rule) {
	c.setFrames(o, false, frames, interval, r)
}

func (c *Context) setFrames(o entity.Object, loop bool, frames []image.Image, interval int64, r rule.Rule) {
	if o == nil || len(frames) == 0 || r == 0 {
		return
	}
	s := c.sprite(o)
	c.animations.StateFor(s, true).SetFrames(loop, frames, interval, r)
}

// ClearAnimations drops every clip of the sprite
func (c *Context) ClearAnimations(o entity.Object) {
	if ch := c.animations.StateFor(c.sprite(o), false); ch != nil {
		ch.ClearAnimations()
	}
}

// ClearAnimationsForRule drops the sprite's clip for r
func (c *Context) ClearAnimationsForRule(o entity.Object, r rule.Rule) {
	if ch := c.animations.StateFor(c.sprite(o), false); ch != nil {
		ch.ClearAnimationsForRule(r)
	}
}

// SetAnimationsEnabled pauses or resumes rule animations for the sprite
func (c *Context) SetAnimationsEnabled(o entity.Object, on bool) {
	if ch := c.animations.StateFor(c.sprite(o), false); ch != nil {
		ch.SetEnabled(on)
	}
}

// ApplyTuning applies gravity, feature toggles and default constants from a config
func (c *Context) ApplyTuning(cfg *config.TuningConfig) error {
	g, err := cfg.GravityValue()
	if err != nil {
		return err
	}
	features, err := cfg.FeatureValues()
	if err != nil {
		return err
	}
	constants, err := cfg.ConstantValues()
	if err != nil {
		return err
	}

	c.SetGravity(g.Strength, g.Direction)
	for f, on := range features {
		c.SetFeatureEnabled(f, on)
	}
	for k, v := range constants {
		c.SetDefaultConstant(k, v)
	}
	return nil
}
