package replay

import (
	"encoding/json"
	"fmt"
	"os"
)

// Replayer feeds recorded frames back one tick at a time
type Replayer struct {
	data ReplayData
	next int
}

func NewReplayer(data ReplayData) *Replayer {
	return &Replayer{data: data}
}

// LoadReplay reads a session file and checks it can be replayed as-is.
// Every frame must carry a positive dt so playback stays on the recorded clock.
func LoadReplay(filename string) (*ReplayData, error) {
	raw, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read replay: %w", err)
	}

	var data ReplayData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}
	if data.Version != Version {
		return nil, fmt.Errorf("unsupported replay version %q (want %q)", data.Version, Version)
	}
	for i, fi := range data.Frames {
		if fi.DT <= 0 {
			return nil, fmt.Errorf("frame %d: dt must be positive, got %d", i, fi.DT)
		}
	}
	return &data, nil
}

// Next returns the next recorded frame, or false once the session is over
func (r *Replayer) Next() (FrameInput, bool) {
	if r.Remaining() == 0 {
		return FrameInput{}, false
	}
	fi := r.data.Frames[r.next]
	r.next++
	return fi, true
}

// CurrentFrame is the number of frames handed out so far
func (r *Replayer) CurrentFrame() int { return r.next }
func (r *Replayer) TotalFrames() int  { return len(r.data.Frames) }
func (r *Replayer) Remaining() int    { return len(r.data.Frames) - r.next }
func (r *Replayer) Stage() string     { return r.data.Stage }

// Reset rewinds to the first frame
func (r *Replayer) Reset() { r.next = 0 }

// CreateTestReplayData builds an idle session of n frames, dt ms apart
func CreateTestReplayData(n int, dt int64) ReplayData {
	frames := make([]FrameInput, n)
	for i := range frames {
		frames[i] = FrameInput{F: i, DT: dt}
	}
	return ReplayData{Version: Version, Stage: "test", Frames: frames}
}
