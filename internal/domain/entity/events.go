package entity

import (
	"fmt"

	"github.com/younwookim/platformer/internal/domain/flags"
	"github.com/younwookim/platformer/internal/domain/rule"
)

// Condition is the edge an event handler waits for.
type Condition int

const (
	BecomesTrue Condition = iota
	BecomesFalse
)

// ParseCondition resolves "becomes_true" or "becomes_false".
func ParseCondition(s string) (Condition, error) {
	switch s {
	case "becomes_true", "":
		return BecomesTrue, nil
	case "becomes_false":
		return BecomesFalse, nil
	}
	return BecomesTrue, fmt.Errorf("unknown condition %q", s)
}

// EventHandler runs Fn when Rule starts or stops matching a sprite's state.
type EventHandler struct {
	Rule      rule.Rule
	Condition Condition
	Fn        func(*Sprite)
}

// Fires reports whether the transition prev -> cur crosses the handler's edge.
func (h EventHandler) Fires(prev, cur flags.State) bool {
	was := rule.Matches(prev, h.Rule)
	is := rule.Matches(cur, h.Rule)
	if h.Condition == BecomesTrue {
		return is && !was
	}
	return was && !is
}
