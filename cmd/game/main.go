package main

import (
	"flag"
	"io/fs"
	"log"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/platformer/internal/application/game"
	"github.com/younwookim/platformer/internal/application/replay"
	"github.com/younwookim/platformer/internal/application/scene/playing"
	"github.com/younwookim/platformer/internal/application/simulation"
	"github.com/younwookim/platformer/internal/infrastructure/config"
)

func main() {
	// Parse command line flags
	recordFlag := flag.String("record", "", "Record input to file (e.g., -record replay.json)")
	replayFlag := flag.String("replay", "", "Play back a recorded session")
	verifyFlag := flag.String("verify", "", "Replay a session twice headless, check both runs match, and exit")
	watchFlag := flag.String("watch", "", "Load configs from this directory and reload them on change")
	stageFlag := flag.String("stage", "demo", "Stage to load")
	flag.Parse()

	loader, err := newLoader(*watchFlag)
	if err != nil {
		log.Fatalf("Failed to get config subfs: %v", err)
	}
	assets, err := playing.LoadAssets(loader, *stageFlag)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if *verifyFlag != "" {
		data, err := replay.LoadReplay(*verifyFlag)
		if err != nil {
			log.Fatalf("Failed to load replay: %v", err)
		}
		frames, err := verifyReplay(assets, data)
		if err != nil {
			log.Fatalf("Replay is not deterministic: %v", err)
		}
		log.Printf("Replay verified: %d frames", frames)
		return
	}

	opts := playing.Options{Record: *recordFlag}
	if *replayFlag != "" {
		data, err := replay.LoadReplay(*replayFlag)
		if err != nil {
			log.Fatalf("Failed to load replay: %v", err)
		}
		opts.Replay = data
	}

	if *watchFlag != "" {
		watcher, err := config.NewWatcher(*watchFlag, filepath.Join(*watchFlag, "stages"))
		if err != nil {
			log.Fatalf("Failed to watch %s: %v", *watchFlag, err)
		}
		defer func() { _ = watcher.Close() }()
		go func() {
			for err := range watcher.Errors {
				log.Printf("Watcher error: %v", err)
			}
		}()
		opts.Loader = loader
		opts.Changes = watcher.Events
		log.Printf("Watching %s for changes", *watchFlag)
	}

	display := assets.Tuning.Display
	if display.Framerate <= 0 {
		display.Framerate = 60
	}
	if display.Scale <= 0 {
		display.Scale = 1
	}
	sims := simulation.NewStack(nil, nil)
	g := game.New(playing.New(assets, opts), sims, display.ScreenWidth, display.ScreenHeight)
	g.SetDT(int64(1000 / display.Framerate))

	// Set up ebiten
	ebiten.SetWindowSize(display.ScreenWidth*display.Scale, display.ScreenHeight*display.Scale)
	ebiten.SetWindowTitle(display.Title)
	ebiten.SetTPS(display.Framerate)

	// Run game
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}

// newLoader reads configs from dir when set, otherwise from the embedded copy
func newLoader(dir string) (*config.Loader, error) {
	if dir != "" {
		return config.NewLoader(dir), nil
	}
	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		return nil, err
	}
	return config.NewFSLoader(fsys, "configs"), nil
}
