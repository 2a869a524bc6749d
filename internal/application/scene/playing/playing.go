// Package playing provides the demo gameplay scene.
package playing

import (
	"fmt"
	"image/color"
	"log"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/younwookim/platformer/internal/application/animation"
	"github.com/younwookim/platformer/internal/application/replay"
	"github.com/younwookim/platformer/internal/application/scene"
	"github.com/younwookim/platformer/internal/application/simulation"
	"github.com/younwookim/platformer/internal/application/state"
	"github.com/younwookim/platformer/internal/domain/entity"
	"github.com/younwookim/platformer/internal/infrastructure/config"
	"github.com/younwookim/platformer/internal/infrastructure/ebitenio"
)

// Colors for rendering
var (
	colorWall = color.RGBA{80, 80, 100, 255}
	colorBG   = color.RGBA{26, 26, 46, 255}
)

// Options configures recording, playback and hot reload
type Options struct {
	Record  string             // file to record into, empty to disable
	Replay  *replay.ReplayData // session played back instead of live input
	Loader  *config.Loader     // reloads files named on Changes
	Changes <-chan string      // config files changed on disk
}

// Playing is the demo gameplay scene
type Playing struct {
	assets   Assets
	opts     Options
	world    *World
	state    state.GameState
	resume   state.GameState
	device   ebitenio.Device
	screen   *ebitenio.Screen
	recorder *replay.Recorder
	replayer *replay.Replayer
	screenW  int
	screenH  int
	err      error
}

// New creates a new Playing scene. The world is built when the scene is entered.
func New(assets Assets, opts Options) *Playing {
	p := &Playing{
		assets:  assets,
		opts:    opts,
		state:   state.StatePlaying,
		screen:  ebitenio.NewScreen(),
		screenW: assets.Tuning.Display.ScreenWidth,
		screenH: assets.Tuning.Display.ScreenHeight,
	}

	if opts.Replay != nil {
		p.replayer = replay.NewReplayer(*opts.Replay)
		p.state = state.StateReplaying
		log.Printf("Replaying %d frames recorded on %q", p.replayer.TotalFrames(), p.replayer.Stage())
	} else if opts.Record != "" {
		p.recorder = replay.NewRecorder(assets.StageName)
		log.Printf("Recording enabled: %s", opts.Record)
	}
	return p
}

// OnEnter builds the world in the scene's context
func (p *Playing) OnEnter(ctx *simulation.Context) {
	w, err := NewWorld(ctx, p.assets)
	if err != nil {
		p.err = fmt.Errorf("failed to build world: %w", err)
		return
	}
	p.world = w

	if pad := ebitenio.FirstGamepad(); pad != nil {
		p.device = pad
	} else {
		p.device = ebitenio.NewKeyboard(nil)
	}
}

// OnExit is called when leaving this scene
func (p *Playing) OnExit() {
	p.saveRecording()
}

// Update advances the simulation by one tick (implements scene.Scene)
func (p *Playing) Update(dt int64) (scene.Scene, error) {
	if p.err != nil {
		return nil, p.err
	}
	if next := p.checkChanges(); next != nil {
		return next, nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		return New(p.assets, p.opts), nil
	}

	switch p.state {
	case state.StatePlaying, state.StateReplaying:
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			p.resume = p.state
			p.state = state.StatePaused
			return nil, nil
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
			p.saveRecording()
		}
		fi, ok := p.nextInput(dt)
		if !ok {
			p.state = state.StateReplayDone
			log.Printf("Replay finished after %d frames", p.replayer.CurrentFrame())
			return nil, nil
		}
		p.world.Step(fi)
	case state.StatePaused:
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			p.state = p.resume
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
			return scene.Pop, nil
		}
	}

	return nil, nil // nil = stay on this scene
}

// nextInput returns the recorded frame when replaying, otherwise samples the device
func (p *Playing) nextInput(dt int64) (replay.FrameInput, bool) {
	if p.replayer != nil {
		return p.replayer.Next()
	}

	fi := replay.Capture(p.device, dt)
	for _, e := range p.device.Edges() {
		fi.SetEdge(e.Button, e.Pressed)
	}
	if p.recorder != nil {
		p.recorder.RecordFrame(fi)
	}
	return fi, true
}

// checkChanges applies config changes seen by the watcher. Tuning applies
// in place; stage and animation changes rebuild the scene.
func (p *Playing) checkChanges() scene.Scene {
	if p.opts.Changes == nil || p.opts.Loader == nil {
		return nil
	}
	for {
		select {
		case path, ok := <-p.opts.Changes:
			if !ok {
				p.opts.Changes = nil
				return nil
			}
			if filepath.Base(path) == config.TuningFile {
				p.reloadTuning()
				continue
			}
			assets, err := LoadAssets(p.opts.Loader, p.assets.StageName)
			if err != nil {
				log.Printf("Reload failed: %v", err)
				continue
			}
			log.Printf("Reloaded %s, restarting scene", filepath.Base(path))
			return New(assets, p.opts)
		default:
			return nil
		}
	}
}

func (p *Playing) reloadTuning() {
	cfg, err := p.opts.Loader.LoadTuning()
	if err != nil {
		log.Printf("Reload failed: %v", err)
		return
	}
	if err := p.world.ApplyTuning(cfg); err != nil {
		log.Printf("Reload failed: %v", err)
		return
	}
	p.assets.Tuning = cfg
	log.Printf("Reloaded %s", config.TuningFile)
}

// saveRecording saves the current recording to file
func (p *Playing) saveRecording() {
	if p.recorder == nil || p.recorder.FrameCount() == 0 {
		return
	}

	filename := p.opts.Record
	if filename == "" {
		filename = replay.GenerateFilename()
	}

	if err := p.recorder.Save(filename); err != nil {
		log.Printf("Failed to save recording: %v", err)
	} else {
		log.Printf("Recording saved: %s (%d frames)", filename, p.recorder.FrameCount())
	}
}

// Draw renders the game screen
func (p *Playing) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)
	if p.world == nil {
		return
	}

	cam := p.camera()
	p.drawTiles(screen, cam)

	p.screen.SetTarget(screen)
	p.world.Context().Draw(p.screen, cam)

	p.drawUI(screen)
	if p.state == state.StatePaused {
		p.drawPauseOverlay(screen)
	}
}

// camera centers the player and clamps to the stage bounds
func (p *Playing) camera() animation.Camera {
	player := p.world.Player()
	stage := p.world.Stage()

	camX := player.CenterX() - p.screenW/2
	camY := player.CenterY() - p.screenH/2

	maxCamX := stage.PixelWidth() - p.screenW
	maxCamY := stage.PixelHeight() - p.screenH
	if camX > maxCamX {
		camX = maxCamX
	}
	if camY > maxCamY {
		camY = maxCamY
	}
	if camX < 0 {
		camX = 0
	}
	if camY < 0 {
		camY = 0
	}
	return animation.Camera{X: camX, Y: camY}
}

func (p *Playing) drawTiles(screen *ebiten.Image, cam animation.Camera) {
	stage := p.world.Stage()
	size := stage.TileSize
	startTileX := cam.X / size
	startTileY := cam.Y / size
	endTileX := (cam.X+p.screenW)/size + 1
	endTileY := (cam.Y+p.screenH)/size + 1

	for ty := startTileY; ty <= endTileY && ty < stage.Height; ty++ {
		for tx := startTileX; tx <= endTileX && tx < stage.Width; tx++ {
			if stage.GetTile(tx, ty).Type != entity.TileWall {
				continue
			}
			x := float64(tx*size - cam.X)
			y := float64(ty*size - cam.Y)
			ebitenutil.DrawRect(screen, x, y, float64(size), float64(size), colorWall)
		}
	}
}

func (p *Playing) drawUI(screen *ebiten.Image) {
	s := p.world.Player()
	text := fmt.Sprintf("%s  vx=%d vy=%d jumps=%d landings=%d\n%s",
		p.state, s.VX.Int(), s.VY.Int(), s.JumpCount, p.world.Store().Int("landings"), s.State)
	ebitenutil.DebugPrint(screen, text)

	controls := "Arrows/WASD: Move | Z/Space: Jump | R: Restart | ESC: Pause"
	if p.state == state.StateReplayDone {
		controls = "Replay finished | R: Replay again"
	}
	ebitenutil.DebugPrintAt(screen, controls, 4, p.screenH-16)
}

func (p *Playing) drawPauseOverlay(screen *ebiten.Image) {
	// Semi-transparent overlay
	overlay := color.RGBA{0, 0, 0, 128}
	ebitenutil.DrawRect(screen, 0, 0, float64(p.screenW), float64(p.screenH), overlay)

	text := "PAUSED\n\nESC: resume\nQ: quit"
	ebitenutil.DebugPrintAt(screen, text, p.screenW/2-40, p.screenH/2-20)
}

// State returns the scene's current state
func (p *Playing) State() state.GameState {
	return p.state
}

// World returns the scene's world, nil before OnEnter
func (p *Playing) World() *World {
	return p.world
}
