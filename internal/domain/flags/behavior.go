// Package flags defines the two bit sets carried by every platformer sprite:
// Behavior (configuration and internal bookkeeping) and State (observable
// movement state used by animation rules and events).
package flags

import "sort"

// Behavior holds per-sprite configuration and bookkeeping bits.
type Behavior uint32

const (
	ControlsEnabled       Behavior = 1 << 0
	InputLastFrame        Behavior = 1 << 1
	JumpOnAPressed        Behavior = 1 << 2
	JumpOnUpPressed       Behavior = 1 << 3
	AllowJumpCancellation Behavior = 1 << 4
	CurrentlyJumping      Behavior = 1 << 5
	JumpStartedWithA      Behavior = 1 << 6
	CoyoteTime            Behavior = 1 << 7
	MovementMomentum      Behavior = 1 << 8
	WallJumps             Behavior = 1 << 9
	LastWallLeft          Behavior = 1 << 10
	Friction              Behavior = 1 << 11
	Gravity               Behavior = 1 << 12
)

// DefaultTemplate is the behavior every new sprite starts with.
const DefaultTemplate = AllowJumpCancellation | JumpOnAPressed | CoyoteTime |
	MovementMomentum | Gravity | Friction

// Has reports whether every bit of f is set.
func (b Behavior) Has(f Behavior) bool {
	return b&f == f
}

// Set turns f on or off.
func (b *Behavior) Set(f Behavior, on bool) {
	if on {
		*b |= f
	} else {
		*b &^= f
	}
}

func (b Behavior) ControlsEnabled() bool       { return b.Has(ControlsEnabled) }
func (b Behavior) InputLastFrame() bool        { return b.Has(InputLastFrame) }
func (b Behavior) JumpOnAPressed() bool        { return b.Has(JumpOnAPressed) }
func (b Behavior) JumpOnUpPressed() bool       { return b.Has(JumpOnUpPressed) }
func (b Behavior) AllowJumpCancellation() bool { return b.Has(AllowJumpCancellation) }
func (b Behavior) CurrentlyJumping() bool      { return b.Has(CurrentlyJumping) }
func (b Behavior) JumpStartedWithA() bool      { return b.Has(JumpStartedWithA) }
func (b Behavior) CoyoteTime() bool            { return b.Has(CoyoteTime) }
func (b Behavior) MovementMomentum() bool      { return b.Has(MovementMomentum) }
func (b Behavior) WallJumps() bool             { return b.Has(WallJumps) }
func (b Behavior) LastWallLeft() bool          { return b.Has(LastWallLeft) }
func (b Behavior) Friction() bool              { return b.Has(Friction) }
func (b Behavior) Gravity() bool               { return b.Has(Gravity) }

// Feature is a behavior bit a host may toggle.
type Feature = Behavior

var featureNames = map[string]Feature{
	"jump_on_a":         JumpOnAPressed,
	"jump_on_up":        JumpOnUpPressed,
	"allow_jump_cancel": AllowJumpCancellation,
	"coyote_time":       CoyoteTime,
	"momentum":          MovementMomentum,
	"wall_jumps":        WallJumps,
	"friction":          Friction,
	"gravity":           Gravity,
}

// ParseFeature resolves a config name such as "wall_jumps".
func ParseFeature(name string) (Feature, bool) {
	f, ok := featureNames[name]
	return f, ok
}

// FeatureNames lists the accepted feature names.
func FeatureNames() []string {
	names := make([]string, 0, len(featureNames))
	for n := range featureNames {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
