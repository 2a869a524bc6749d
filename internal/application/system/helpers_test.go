package system

import (
	"github.com/younwookim/platformer/internal/domain/entity"
	"github.com/younwookim/platformer/internal/domain/flags"
	"github.com/younwookim/platformer/internal/domain/tuning"
)

// fakeController is a scripted controller
type fakeController struct {
	pressed  map[Button]bool
	pressure map[Button]int
	analog   bool
}

func newFakeController() *fakeController {
	return &fakeController{
		pressed:  map[Button]bool{},
		pressure: map[Button]int{},
	}
}

func (c *fakeController) IsPressed(b Button) bool    { return c.pressed[b] }
func (c *fakeController) PressureLevel(b Button) int { return c.pressure[b] }
func (c *fakeController) IsAnalog() bool             { return c.analog }

type testRig struct {
	engine  *MovementSystem
	buttons *Buttons
	ctrl    *fakeController
	sprite  *entity.Sprite
	gravity entity.Gravity
}

// newTestRig creates a controllable sprite at (32, 32) with the default template
func newTestRig(stage *entity.Stage) *testRig {
	buttons := NewButtons()
	ctrl := newFakeController()
	buttons.Bind(0, ctrl)

	s := entity.NewSprite(32, 32, 16, 16, 1, flags.DefaultTemplate|flags.ControlsEnabled, tuning.NewTable(tuning.Defaults()))
	s.State.Set(flags.FacingRight, true)

	return &testRig{
		engine:  NewMovementSystem(NewTileCollision(stage), buttons),
		buttons: buttons,
		ctrl:    ctrl,
		sprite:  s,
		gravity: entity.DefaultGravity,
	}
}

// step runs one movement tick ending at now
func (r *testRig) step(now, dt int64) {
	r.engine.Update(Frame{Now: now, DT: dt, Gravity: r.gravity}, []*entity.Sprite{r.sprite})
	r.buttons.EndFrame()
}

func (r *testRig) press(b Button, at int64) {
	r.buttons.Handle(ButtonEvent{Player: 0, Button: b, Pressed: true, At: at})
}

func (r *testRig) release(b Button, at int64) {
	r.buttons.Handle(ButtonEvent{Player: 0, Button: b, Pressed: false, At: at})
}

func (r *testRig) ground(on bool) {
	r.sprite.SetHitting(r.gravity.Direction.Edge(), on)
}

// createFloorStage returns a 10x5 stage with a solid bottom row and a solid left column
func createFloorStage() *entity.Stage {
	stage := &entity.Stage{
		Width:    10,
		Height:   5,
		TileSize: 16,
		Tiles:    make([][]entity.Tile, 5),
	}
	for y := 0; y < 5; y++ {
		stage.Tiles[y] = make([]entity.Tile, 10)
		for x := 0; x < 10; x++ {
			if y == 4 || x == 0 {
				stage.Tiles[y][x] = entity.Tile{Type: entity.TileWall, Solid: true}
			}
		}
	}
	return stage
}
