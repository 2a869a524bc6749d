// Package rule matches sprite state against required flag sets.
package rule

import (
	"math/bits"

	"github.com/younwookim/platformer/internal/domain/flags"
)

// Rule is a set of state bits that must all be present.
type Rule flags.State

// MaxParts is the number of inputs Make combines.
const MaxParts = 5

// Make combines up to MaxParts state flags into one rule. Inputs past the
// fifth are ignored, and so are bits outside flags.AllStates.
func Make(parts ...flags.State) Rule {
	if len(parts) > MaxParts {
		parts = parts[:MaxParts]
	}
	var r Rule
	for _, p := range parts {
		r |= Rule(p & flags.AllStates)
	}
	return r
}

// Matches reports whether s contains every bit of r.
func Matches(s flags.State, r Rule) bool {
	return s&flags.State(r) == flags.State(r)
}

// Specificity is the number of bits in r.
func (r Rule) Specificity() int {
	return bits.OnesCount32(uint32(r))
}

// Score is 0 when r does not match s, else the specificity of r.
// The empty rule always matches with score 0.
func Score(s flags.State, r Rule) int {
	if !Matches(s, r) {
		return 0
	}
	return r.Specificity()
}

func (r Rule) String() string {
	return flags.State(r).String()
}
