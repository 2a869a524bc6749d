package config

import (
	"errors"
	"fmt"

	"github.com/younwookim/platformer/internal/domain/entity"
	"github.com/younwookim/platformer/internal/domain/flags"
	"github.com/younwookim/platformer/internal/domain/rule"
	"github.com/younwookim/platformer/internal/domain/tuning"
)

// ErrUnknownName is returned when a config file names a feature, constant,
// direction or state flag that does not exist.
var ErrUnknownName = errors.New("config: unknown name")

// TuningConfig is the root config for tuning.json
type TuningConfig struct {
	Display   DisplayConfig   `json:"display"`
	Gravity   GravityConfig   `json:"gravity"`
	Features  map[string]bool `json:"features,omitempty" jsonschema:"description=Feature toggles applied to the sprite template (jump_on_a, jump_on_up, allow_jump_cancel, coyote_time, momentum, wall_jumps, friction, gravity)"`
	Constants map[string]int  `json:"constants,omitempty" jsonschema:"description=Default tuning constants by snake_case name"`
}

type DisplayConfig struct {
	ScreenWidth  int    `json:"screenWidth"`
	ScreenHeight int    `json:"screenHeight"`
	Scale        int    `json:"scale"`
	Framerate    int    `json:"framerate"`
	Title        string `json:"title,omitempty"`
}

type GravityConfig struct {
	Strength  int    `json:"strength" jsonschema:"description=Pixels per second squared"`
	Direction string `json:"direction" jsonschema:"enum=down,enum=up,enum=left,enum=right"`
}

// GravityValue returns the configured gravity. A zero config means default gravity.
func (c *TuningConfig) GravityValue() (entity.Gravity, error) {
	if c.Gravity.Strength == 0 && c.Gravity.Direction == "" {
		return entity.DefaultGravity, nil
	}
	dir, err := entity.ParseDirection(c.Gravity.Direction)
	if err != nil {
		return entity.Gravity{}, fmt.Errorf("%w: gravity direction %q", ErrUnknownName, c.Gravity.Direction)
	}
	if dir == entity.DirNone {
		dir = entity.DirDown
	}
	return entity.Gravity{Strength: c.Gravity.Strength, Direction: dir}, nil
}

// FeatureValues resolves feature names to template flags
func (c *TuningConfig) FeatureValues() (map[flags.Feature]bool, error) {
	out := make(map[flags.Feature]bool, len(c.Features))
	for name, on := range c.Features {
		f, ok := flags.ParseFeature(name)
		if !ok {
			return nil, fmt.Errorf("%w: feature %q", ErrUnknownName, name)
		}
		out[f] = on
	}
	return out, nil
}

// ConstantValues resolves constant names
func (c *TuningConfig) ConstantValues() (map[tuning.Constant]int, error) {
	out := make(map[tuning.Constant]int, len(c.Constants))
	for name, v := range c.Constants {
		k, ok := tuning.ParseConstant(name)
		if !ok {
			return nil, fmt.Errorf("%w: constant %q", ErrUnknownName, name)
		}
		out[k] = v
	}
	return out, nil
}

// Validate checks every name in the config
func (c *TuningConfig) Validate() error {
	if _, err := c.GravityValue(); err != nil {
		return err
	}
	if _, err := c.FeatureValues(); err != nil {
		return err
	}
	_, err := c.ConstantValues()
	return err
}

// ParseRule builds a rule from a list of state flag names
func ParseRule(names []string) (rule.Rule, error) {
	if len(names) > rule.MaxParts {
		return 0, fmt.Errorf("rule has %d states, at most %d allowed", len(names), rule.MaxParts)
	}
	var parts []flags.State
	for _, n := range names {
		s, ok := flags.ParseState(n)
		if !ok {
			return 0, fmt.Errorf("%w: state %q", ErrUnknownName, n)
		}
		parts = append(parts, s)
	}
	return rule.Make(parts...), nil
}
