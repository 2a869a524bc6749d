package script

import (
	"bytes"
	"log"
	"os"
	"testing"

	"github.com/d5/tengo/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/platformer/internal/domain/entity"
	"github.com/younwookim/platformer/internal/domain/flags"
	"github.com/younwookim/platformer/internal/domain/fx"
	"github.com/younwookim/platformer/internal/domain/tuning"
)

type jumpCall struct {
	sprite *entity.Sprite
	height int
}

// fakeHost records what scripts ask the simulation to do
type fakeHost struct {
	jumps []jumpCall
	moves []entity.Direction
}

func (h *fakeHost) Jump(o entity.Object, height int) {
	h.jumps = append(h.jumps, jumpCall{entity.MustSprite(o), height})
}

func (h *fakeHost) SetMoving(o entity.Object, dir entity.Direction) {
	h.moves = append(h.moves, dir)
}

func newScriptSprite() *entity.Sprite {
	s := entity.NewSprite(12, 34, 16, 16, 3, flags.DefaultTemplate, tuning.NewTable(tuning.Defaults()))
	s.State = flags.OnGround | flags.FacingLeft
	s.VX = fx.FromInt(-40)
	s.JumpCount = 2
	return s
}

func TestProgram_ReadsSprite(t *testing.T) {
	store := NewStore()
	p, err := Compile("read", `
store.x = sprite.x
store.y = sprite.y
store.vx = sprite.vx
store.kind = sprite.kind
store.jumps = sprite.jump_count
store.facing = sprite.facing
store.state = sprite.state
store.grounded = sprite.has("on_ground")
store.falling = sprite.has("falling")
`, &fakeHost{}, store)
	require.NoError(t, err)

	require.NoError(t, p.Run(newScriptSprite()))

	assert.Equal(t, 12, store.Int("x"))
	assert.Equal(t, 34, store.Int("y"))
	assert.Equal(t, -40, store.Int("vx"))
	assert.Equal(t, 3, store.Int("kind"))
	assert.Equal(t, 2, store.Int("jumps"))
	assert.Equal(t, "left", store.Get("facing"))
	assert.Equal(t, "facing_left|on_ground", store.Get("state"))
	assert.Equal(t, true, store.Get("grounded"))
	assert.Equal(t, false, store.Get("falling"))
}

func TestProgram_DrivesHost(t *testing.T) {
	tests := []struct {
		name      string
		src       string
		wantJumps []int
		wantMoves []entity.Direction
	}{
		{"jump with height", `sprite.jump(24)`, []int{24}, nil},
		{"jump with default height", `sprite.jump()`, []int{0}, nil},
		{"move left", `sprite.move("left")`, nil, []entity.Direction{entity.DirLeft}},
		{"stop", `sprite.move("none")`, nil, []entity.Direction{entity.DirNone}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host := &fakeHost{}
			s := newScriptSprite()
			p, err := Compile(tt.name, tt.src, host, nil)
			require.NoError(t, err)

			require.NoError(t, p.Run(s))

			var heights []int
			for _, j := range host.jumps {
				assert.Same(t, s, j.sprite)
				heights = append(heights, j.height)
			}
			assert.Equal(t, tt.wantJumps, heights)
			assert.Equal(t, tt.wantMoves, host.moves)
		})
	}
}

func TestProgram_Destroy(t *testing.T) {
	s := newScriptSprite()
	p, err := Compile("destroy", `sprite.destroy()`, &fakeHost{}, nil)
	require.NoError(t, err)

	require.NoError(t, p.Run(s))
	assert.True(t, s.Destroyed())
}

func TestProgram_StorePersistsAcrossRunsAndPrograms(t *testing.T) {
	store := NewStore()
	src := `
if is_undefined(store.count) {
	store.count = 0
}
store.count += 1
`
	a, err := Compile("a", src, &fakeHost{}, store)
	require.NoError(t, err)
	b, err := Compile("b", src, &fakeHost{}, store)
	require.NoError(t, err)

	s := newScriptSprite()
	require.NoError(t, a.Run(s))
	require.NoError(t, a.Run(s))
	require.NoError(t, b.Run(s))

	assert.Equal(t, 3, store.Int("count"))
	assert.Nil(t, store.Get("missing"))
	assert.Equal(t, 0, store.Int("missing"))
}

func TestProgram_Stdlib(t *testing.T) {
	store := NewStore()
	p, err := Compile("stdlib", `
text := import("text")
store.upper = text.to_upper(sprite.facing)
`, &fakeHost{}, store)
	require.NoError(t, err)

	require.NoError(t, p.Run(newScriptSprite()))
	assert.Equal(t, "LEFT", store.Get("upper"))
}

func TestCompile_Errors(t *testing.T) {
	_, err := Compile("broken", `sprite.jump(`, &fakeHost{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to compile script broken")
}

func TestAddGlobal(t *testing.T) {
	s := tengo.NewScript([]byte(`out := x`))
	require.NoError(t, addGlobal(s, "x", map[string]any{}))

	err := addGlobal(s, "y", make(chan int))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "global y")
}

func TestProgram_RuntimeErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unknown state", `sprite.has("flying")`},
		{"unknown direction", `sprite.move("sideways")`},
		{"bad height", `sprite.jump("high")`},
		{"wrong arity", `sprite.move()`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Compile(tt.name, tt.src, &fakeHost{}, nil)
			require.NoError(t, err)

			err = p.Run(newScriptSprite())
			require.Error(t, err)
			assert.Contains(t, err.Error(), "script "+tt.name)
		})
	}
}

func TestProgram_HandlerLogsFailures(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	p, err := Compile("noisy", `sprite.move("sideways")`, &fakeHost{}, nil)
	require.NoError(t, err)

	assert.NotPanics(t, func() { p.Handler()(newScriptSprite()) })
	assert.Contains(t, buf.String(), "script noisy")
	assert.Equal(t, "noisy", p.Name())
}
