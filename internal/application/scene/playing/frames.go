package playing

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/younwookim/platformer/internal/domain/rule"
	"github.com/younwookim/platformer/internal/infrastructure/config"
)

type clip struct {
	rule          rule.Rule
	start, loop   []image.Image
	startInterval int64
	loopInterval  int64
}

func buildClips(spec *config.KindSpec) ([]clip, error) {
	clips := make([]clip, 0, len(spec.Clips))
	for _, c := range spec.Clips {
		r, err := config.ParseRule(c.Rule)
		if err != nil {
			return nil, err
		}
		start, startInterval := buildStrip(c.Start)
		loop, loopInterval := buildStrip(c.Loop)
		clips = append(clips, clip{
			rule:          r,
			start:         start,
			loop:          loop,
			startInterval: startInterval,
			loopInterval:  loopInterval,
		})
	}
	return clips, nil
}

// buildStrip renders placeholder frames as filled rectangles
func buildStrip(strip *config.StripSpec) ([]image.Image, int64) {
	if strip == nil {
		return nil, 0
	}
	frames := make([]image.Image, 0, len(strip.Frames))
	for _, f := range strip.Frames {
		img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
		draw.Draw(img, img.Bounds(), &image.Uniform{C: f.Color}, image.Point{}, draw.Src)
		frames = append(frames, img)
	}
	return frames, int64(strip.Interval)
}
