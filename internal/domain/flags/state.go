package flags

import "strings"

// State holds the observable movement state of a sprite.
type State uint32

const (
	FacingLeft       State = 1 << 0
	FacingRight      State = 1 << 1
	Moving           State = 1 << 2
	WallSliding      State = 1 << 3
	OnWallRight      State = 1 << 4
	OnWallLeft       State = 1 << 5
	OnGround         State = 1 << 6
	JumpingUp        State = 1 << 7
	AfterJumpApex    State = 1 << 8
	Turning          State = 1 << 9
	PushingWallLeft  State = 1 << 11
	PushingWallRight State = 1 << 12
	Accelerating     State = 1 << 13
	Falling          State = 1 << 14
	MaxRunningSpeed  State = 1 << 15
	Decelerating     State = 1 << 16
	AboveMaxSpeed    State = 1 << 17

	// OnWall is set when touching a wall on either side.
	OnWall = OnWallLeft | OnWallRight

	// AllStates is every defined state bit. Bit 10 is unused.
	AllStates = FacingLeft | FacingRight | Moving | WallSliding | OnWallRight | OnWallLeft |
		OnGround | JumpingUp | AfterJumpApex | Turning | PushingWallLeft | PushingWallRight |
		Accelerating | Falling | MaxRunningSpeed | Decelerating | AboveMaxSpeed

	// SpeedFlags are cleared at the start of every momentum update.
	SpeedFlags = Turning | Decelerating | Accelerating | MaxRunningSpeed | AboveMaxSpeed
)

// Has reports whether every bit of f is set.
func (s State) Has(f State) bool {
	return s&f == f
}

// Any reports whether at least one bit of f is set.
func (s State) Any(f State) bool {
	return s&f != 0
}

// Set turns f on or off.
func (s *State) Set(f State, on bool) {
	if on {
		*s |= f
	} else {
		*s &^= f
	}
}

func (s State) FacingLeft() bool       { return s.Has(FacingLeft) }
func (s State) FacingRight() bool      { return s.Has(FacingRight) }
func (s State) Moving() bool           { return s.Has(Moving) }
func (s State) WallSliding() bool      { return s.Has(WallSliding) }
func (s State) OnWallRight() bool      { return s.Has(OnWallRight) }
func (s State) OnWallLeft() bool       { return s.Has(OnWallLeft) }
func (s State) OnGround() bool         { return s.Has(OnGround) }
func (s State) JumpingUp() bool        { return s.Has(JumpingUp) }
func (s State) AfterJumpApex() bool    { return s.Has(AfterJumpApex) }
func (s State) Turning() bool          { return s.Has(Turning) }
func (s State) PushingWallLeft() bool  { return s.Has(PushingWallLeft) }
func (s State) PushingWallRight() bool { return s.Has(PushingWallRight) }
func (s State) Accelerating() bool     { return s.Has(Accelerating) }
func (s State) Falling() bool          { return s.Has(Falling) }
func (s State) MaxRunningSpeed() bool  { return s.Has(MaxRunningSpeed) }
func (s State) Decelerating() bool     { return s.Has(Decelerating) }
func (s State) AboveMaxSpeed() bool    { return s.Has(AboveMaxSpeed) }

var stateNames = []struct {
	name string
	bit  State
}{
	{"facing_left", FacingLeft},
	{"facing_right", FacingRight},
	{"moving", Moving},
	{"wall_sliding", WallSliding},
	{"on_wall_right", OnWallRight},
	{"on_wall_left", OnWallLeft},
	{"on_ground", OnGround},
	{"jumping_up", JumpingUp},
	{"after_jump_apex", AfterJumpApex},
	{"turning", Turning},
	{"pushing_wall_left", PushingWallLeft},
	{"pushing_wall_right", PushingWallRight},
	{"accelerating", Accelerating},
	{"falling", Falling},
	{"max_running_speed", MaxRunningSpeed},
	{"decelerating", Decelerating},
	{"above_max_speed", AboveMaxSpeed},
}

// ParseState resolves a single state name such as "on_ground".
func ParseState(name string) (State, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, n := range stateNames {
		if n.name == name {
			return n.bit, true
		}
	}
	return 0, false
}

// String joins the set bit names with "|".
func (s State) String() string {
	if s == 0 {
		return "none"
	}
	var parts []string
	for _, n := range stateNames {
		if s.Has(n.bit) {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}
