// Package tuning holds the numeric constants that shape sprite movement.
// Tables form a parent chain: sprite overlay -> simulation defaults -> root.
package tuning

import (
	"errors"
	"fmt"
)

// Constant identifies a tunable value.
type Constant int

const (
	MoveSpeed Constant = iota
	MaxJumpHeight
	MovementAcceleration
	GroundFriction
	AirFriction
	WallJumpHeight
	WallJumpKickoffVelocity
	CoyoteTimeMillis
	JumpGracePeriodMillis
	WallFriction
	WallMinVelocity
	InAirJumps
	InAirJumpHeight

	numConstants
)

var (
	// ErrMissingConstant means the root table has no value for a constant.
	ErrMissingConstant = errors.New("tuning: constant missing from root table")
	// ErrFrozen is raised when writing to an immutable table.
	ErrFrozen = errors.New("tuning: table is frozen")
)

var constantNames = [numConstants]string{
	MoveSpeed:               "move_speed",
	MaxJumpHeight:           "max_jump_height",
	MovementAcceleration:    "movement_acceleration",
	GroundFriction:          "ground_friction",
	AirFriction:             "air_friction",
	WallJumpHeight:          "wall_jump_height",
	WallJumpKickoffVelocity: "wall_jump_kickoff_velocity",
	CoyoteTimeMillis:        "coyote_time_millis",
	JumpGracePeriodMillis:   "jump_grace_period_millis",
	WallFriction:            "wall_friction",
	WallMinVelocity:         "wall_min_velocity",
	InAirJumps:              "in_air_jumps",
	InAirJumpHeight:         "in_air_jump_height",
}

func (c Constant) String() string {
	if c < 0 || c >= numConstants {
		return fmt.Sprintf("constant(%d)", int(c))
	}
	return constantNames[c]
}

// ParseConstant resolves a config name such as "move_speed".
func ParseConstant(name string) (Constant, bool) {
	for i, n := range constantNames {
		if n == name {
			return Constant(i), true
		}
	}
	return 0, false
}

// Table is a sparse map of constants with fallback to a parent table.
type Table struct {
	values [numConstants]int
	set    [numConstants]bool
	parent *Table
	frozen bool
}

// NewTable creates an empty overlay on top of parent.
func NewTable(parent *Table) *Table {
	return &Table{parent: parent}
}

// Defaults returns a frozen root table with the built-in values.
func Defaults() *Table {
	t := &Table{}
	t.seed(JumpGracePeriodMillis, 100)
	t.seed(CoyoteTimeMillis, 100)
	t.seed(MoveSpeed, 100)
	t.seed(MaxJumpHeight, 40)
	t.seed(MovementAcceleration, 700)
	t.seed(GroundFriction, 700)
	t.seed(AirFriction, 200)
	t.seed(WallJumpHeight, 16)
	t.seed(WallJumpKickoffVelocity, 200)
	t.seed(WallFriction, 500)
	t.seed(WallMinVelocity, 50)
	t.seed(InAirJumps, 0)
	t.seed(InAirJumpHeight, 20)
	t.frozen = true
	return t
}

func (t *Table) seed(c Constant, v int) {
	t.values[c] = v
	t.set[c] = true
}

// Parent returns the fallback table, or nil for a root.
func (t *Table) Parent() *Table {
	return t.parent
}

// SetValue stores v locally. Writing to a frozen table panics.
func (t *Table) SetValue(c Constant, v int) {
	if t.frozen {
		panic(fmt.Errorf("%w: set %s", ErrFrozen, c))
	}
	t.seed(c, v)
}

// Unset removes the local value so lookups fall through to the parent.
func (t *Table) Unset(c Constant) {
	if t.frozen {
		panic(fmt.Errorf("%w: unset %s", ErrFrozen, c))
	}
	t.set[c] = false
	t.values[c] = 0
}

// HasLocal reports whether c is set on this table itself.
func (t *Table) HasLocal(c Constant) bool {
	return t.set[c]
}

// Value walks the parent chain and returns the first value found.
// A constant missing from the whole chain is a programming error and panics.
func (t *Table) Value(c Constant) int {
	for cur := t; cur != nil; cur = cur.parent {
		if cur.set[c] {
			return cur.values[c]
		}
	}
	panic(fmt.Errorf("%w: %s", ErrMissingConstant, c))
}
