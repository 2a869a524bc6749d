package entity

import (
	"fmt"
	"strings"
)

// Direction is a gravity or movement direction.
type Direction int

const (
	DirNone Direction = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

// Vertical reports whether d points along the Y axis.
func (d Direction) Vertical() bool {
	return d == DirUp || d == DirDown
}

// Edge is the bounding-box edge that faces d.
func (d Direction) Edge() Edge {
	switch d {
	case DirUp:
		return EdgeTop
	case DirLeft:
		return EdgeLeft
	case DirRight:
		return EdgeRight
	}
	return EdgeBottom
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	}
	return "none"
}

// ParseDirection resolves "up", "down", "left", "right" or "none".
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return DirUp, nil
	case "down", "":
		return DirDown, nil
	case "left":
		return DirLeft, nil
	case "right":
		return DirRight, nil
	case "none":
		return DirNone, nil
	}
	return DirNone, fmt.Errorf("unknown direction %q", s)
}

// Edge is a side of a bounding box.
type Edge uint8

const (
	EdgeLeft Edge = iota
	EdgeTop
	EdgeRight
	EdgeBottom
)

// Gravity is a strength in pixels per second squared plus a direction.
type Gravity struct {
	Strength  int
	Direction Direction
}

// DefaultGravity pulls down at 1000 px/s^2.
var DefaultGravity = Gravity{Strength: 1000, Direction: DirDown}
