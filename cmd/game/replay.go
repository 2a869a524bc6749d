package main

import (
	"fmt"

	"github.com/younwookim/platformer/internal/application/replay"
	"github.com/younwookim/platformer/internal/application/scene/playing"
	"github.com/younwookim/platformer/internal/application/simulation"
	"github.com/younwookim/platformer/internal/domain/flags"
	"github.com/younwookim/platformer/internal/domain/fx"
)

// Snapshot is the player's state after one replayed frame
type Snapshot struct {
	State  flags.State
	X, Y   int
	VX, VY fx.Fx8
}

// simulateReplay plays a session headless on a fresh context
func simulateReplay(assets playing.Assets, data *replay.ReplayData) ([]Snapshot, error) {
	w, err := playing.NewWorld(simulation.New(nil, nil), assets)
	if err != nil {
		return nil, err
	}

	replayer := replay.NewReplayer(*data)
	snapshots := make([]Snapshot, 0, replayer.TotalFrames())
	for {
		fi, ok := replayer.Next()
		if !ok {
			break
		}
		w.Step(fi)
		p := w.Player()
		snapshots = append(snapshots, Snapshot{State: p.State, X: p.Left(), Y: p.Top(), VX: p.VX, VY: p.VY})
	}
	return snapshots, nil
}

// verifyReplay runs a session twice and reports the first frame where the
// runs disagree. It returns the number of frames checked.
func verifyReplay(assets playing.Assets, data *replay.ReplayData) (int, error) {
	first, err := simulateReplay(assets, data)
	if err != nil {
		return 0, err
	}
	second, err := simulateReplay(assets, data)
	if err != nil {
		return 0, err
	}

	for i := range first {
		if first[i] != second[i] {
			return i, fmt.Errorf("frame %d diverged: %+v != %+v", i, first[i], second[i])
		}
	}
	return len(first), nil
}
