package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/younwookim/platformer/internal/domain/flags"
)

func TestMatchesAndScore(t *testing.T) {
	tests := []struct {
		name      string
		state     flags.State
		rule      Rule
		wantMatch bool
		wantScore int
	}{
		{"empty rule", flags.OnGround, 0, true, 0},
		{"single bit", flags.OnGround | flags.Moving, Make(flags.OnGround), true, 1},
		{"two bits", flags.OnGround | flags.Moving | flags.FacingRight, Make(flags.Moving, flags.FacingRight), true, 2},
		{"missing bit", flags.OnGround, Make(flags.OnGround, flags.Moving), false, 0},
		{"disjoint", flags.Falling, Make(flags.OnGround), false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMatch, Matches(tt.state, tt.rule))
			assert.Equal(t, tt.wantScore, Score(tt.state, tt.rule))
		})
	}
}

func TestScoreIsPopcountWhenMatching(t *testing.T) {
	r := Make(flags.FacingLeft, flags.Moving, flags.OnGround, flags.Accelerating, flags.MaxRunningSpeed)
	s := flags.State(r) | flags.Falling
	assert.Equal(t, 5, Score(s, r))
	assert.Equal(t, 5, r.Specificity())
}

func TestMakeIgnoresZero(t *testing.T) {
	assert.Equal(t, Make(flags.Moving), Make(0, flags.Moving, 0, 0, 0))
	assert.Equal(t, Rule(0), Make())
}

func TestMakeMasksUndefinedBits(t *testing.T) {
	tests := []struct {
		name  string
		parts []flags.State
		want  Rule
	}{
		{"unused bit 10", []flags.State{1 << 10, flags.OnGround}, Make(flags.OnGround)},
		{"bits past the last flag", []flags.State{1 << 18, 1 << 31}, Rule(0)},
		{"mixed value keeps defined bits", []flags.State{flags.Moving | 1<<20}, Make(flags.Moving)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Make(tt.parts...))
		})
	}
}

func TestMakeTakesFiveInputs(t *testing.T) {
	r := Make(flags.FacingLeft, flags.Moving, flags.OnGround, flags.Falling, flags.Turning, flags.Accelerating)

	assert.Equal(t, MaxParts, r.Specificity())
	assert.False(t, Matches(flags.Accelerating, r))
	assert.Equal(t, flags.State(0), flags.State(r)&flags.Accelerating)
}
