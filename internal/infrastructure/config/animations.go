package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

// AnimationSet is the root of animations.yaml
type AnimationSet struct {
	Kinds []KindSpec `yaml:"kinds"`
}

// KindSpec holds the clips and event scripts of one sprite kind
type KindSpec struct {
	Name   string      `yaml:"name"`
	Kind   int         `yaml:"kind"`
	Clips  []ClipSpec  `yaml:"clips"`
	Events []EventSpec `yaml:"events"`
}

// ClipSpec binds start and loop frames to a rule
type ClipSpec struct {
	Rule  []string   `yaml:"rule"`
	Start *StripSpec `yaml:"start"`
	Loop  *StripSpec `yaml:"loop"`
}

type StripSpec struct {
	Interval int         `yaml:"interval"` // milliseconds per frame
	Frames   []FrameSpec `yaml:"frames"`
}

// FrameSpec is a placeholder frame: a filled rectangle
type FrameSpec struct {
	Color  YAMLColor `yaml:"color"`
	Width  int       `yaml:"width"`
	Height int       `yaml:"height"`
}

// EventSpec attaches a script to a state edge
type EventSpec struct {
	Rule   []string `yaml:"rule"`
	When   string   `yaml:"when"` // becomes_true or becomes_false
	Script string   `yaml:"script"`
}

// Kind returns the animation and event settings for a sprite kind
func (a *AnimationSet) Kind(kind int) (*KindSpec, bool) {
	for i := range a.Kinds {
		if a.Kinds[i].Kind == kind {
			return &a.Kinds[i], true
		}
	}
	return nil, false
}

// YAMLColor accepts an SVG color name ("crimson") or "#rrggbb[aa]"
type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	if named, ok := colornames.Map[strings.ToLower(value.Value)]; ok {
		c.Color = named
		return nil
	}

	s := strings.TrimPrefix(value.Value, "#")
	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	var rgba [4]uint8
	rgba[3] = 255
	for i := 0; i < len(s)/2; i++ {
		v, err := parse(i * 2)
		if err != nil {
			return fmt.Errorf("invalid color format: %s", value.Value)
		}
		rgba[i] = v
	}

	c.Color = color.NRGBA{R: rgba[0], G: rgba[1], B: rgba[2], A: rgba[3]}
	return nil
}

// RGBA returns the color, or magenta when unset
func (c YAMLColor) RGBA() (r, g, b, a uint32) {
	if c.Color == nil {
		return colornames.Magenta.RGBA()
	}
	return c.Color.RGBA()
}
