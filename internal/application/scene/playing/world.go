package playing

import (
	"fmt"

	"github.com/younwookim/platformer/internal/application/replay"
	"github.com/younwookim/platformer/internal/application/script"
	"github.com/younwookim/platformer/internal/application/simulation"
	"github.com/younwookim/platformer/internal/application/system"
	"github.com/younwookim/platformer/internal/domain/entity"
	"github.com/younwookim/platformer/internal/infrastructure/config"
)

// PlayerKind is the sprite kind controlled by player 1
const PlayerKind = 1

const (
	playerWidth  = 16
	playerHeight = 16
)

// Assets is everything a world is built from
type Assets struct {
	StageName  string
	Tuning     *config.TuningConfig
	StageCfg   *config.StageConfig
	Stage      *entity.Stage
	Animations *config.AnimationSet
}

// LoadAssets reads the tuning, stage and animation files
func LoadAssets(loader *config.Loader, stageName string) (Assets, error) {
	tuning, err := loader.LoadTuning()
	if err != nil {
		return Assets{}, err
	}
	stageCfg, err := loader.LoadStage(stageName)
	if err != nil {
		return Assets{}, err
	}
	stage, err := system.LoadStage(stageCfg)
	if err != nil {
		return Assets{}, fmt.Errorf("stage %s: %w", stageName, err)
	}
	anims, err := loader.LoadAnimations()
	if err != nil {
		return Assets{}, err
	}
	return Assets{
		StageName:  stageName,
		Tuning:     tuning,
		StageCfg:   stageCfg,
		Stage:      stage,
		Animations: anims,
	}, nil
}

// World is the headless part of the playing scene: one simulation context
// with its stage, physics and scripted sprites. Player 1 is driven through
// a replay pad so live and recorded input take the same path.
type World struct {
	ctx     *simulation.Context
	stage   *entity.Stage
	physics *system.PhysicsSystem
	pad     *replay.Pad
	store   *script.Store
	player  *entity.Sprite
}

// NewWorld populates ctx from assets
func NewWorld(ctx *simulation.Context, assets Assets) (*World, error) {
	w := &World{
		ctx:     ctx,
		stage:   assets.Stage,
		physics: system.NewPhysicsSystem(assets.Stage),
		pad:     &replay.Pad{},
		store:   script.NewStore(),
	}

	ctx.SetCollision(system.NewTileCollision(assets.Stage))
	ctx.Bind(0, w.pad)
	if assets.Tuning != nil {
		if err := ctx.ApplyTuning(assets.Tuning); err != nil {
			return nil, err
		}
	}

	if assets.Animations != nil {
		for i := range assets.Animations.Kinds {
			if err := w.registerKind(&assets.Animations.Kinds[i]); err != nil {
				return nil, err
			}
		}
	}

	w.player = ctx.Create(assets.Stage.SpawnX, assets.Stage.SpawnY, playerWidth, playerHeight, PlayerKind)
	ctx.MoveSprite(w.player, true, -1, 0)

	if assets.StageCfg != nil {
		for i, sp := range assets.StageCfg.Sprites {
			dir, err := entity.ParseDirection(sp.Moving)
			if err != nil {
				return nil, fmt.Errorf("stage sprite %d: %w", i, err)
			}
			s := ctx.Create(sp.X, sp.Y, sp.Width, sp.Height, sp.Kind)
			ctx.SetMoving(s, dir)
		}
	}
	return w, nil
}

// registerKind attaches the kind's clips and event scripts to every sprite
// of that kind created afterwards
func (w *World) registerKind(spec *config.KindSpec) error {
	clips, err := buildClips(spec)
	if err != nil {
		return err
	}
	events, err := script.CompileKind(spec, w.ctx, w.store)
	if err != nil {
		return err
	}

	w.ctx.OnCreated(spec.Kind, func(s *entity.Sprite) {
		for _, c := range clips {
			w.ctx.RunFrames(s, c.start, c.startInterval, c.rule)
			w.ctx.LoopFrames(s, c.loop, c.loopInterval, c.rule)
		}
		for _, ev := range events {
			w.ctx.OnSpriteRule(s, ev.Rule, ev.When, ev.Program.Handler())
		}
	})
	return nil
}

// Step runs one tick: input, movement and events, physics, then animation
func (w *World) Step(fi replay.FrameInput) {
	replay.Feed(w.ctx, 0, w.pad, fi)
	w.ctx.Advance(fi.DT)
	w.physics.Update(w.ctx.Sprites(), fi.DT)
	w.ctx.Animate(fi.DT)
}

// ApplyTuning applies a reloaded tuning file to the running world
func (w *World) ApplyTuning(cfg *config.TuningConfig) error {
	return w.ctx.ApplyTuning(cfg)
}

func (w *World) Context() *simulation.Context { return w.ctx }
func (w *World) Player() *entity.Sprite       { return w.player }
func (w *World) Stage() *entity.Stage         { return w.stage }
func (w *World) Store() *script.Store         { return w.store }
