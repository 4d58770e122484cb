package chartrender

import (
	"context"
	"time"

	"github.com/opd-ai/chartrender/audio"
	"github.com/opd-ai/chartrender/chart"
	"github.com/opd-ai/chartrender/config"
	"github.com/opd-ai/chartrender/render"
	"github.com/opd-ai/chartrender/staging"
	"github.com/sirupsen/logrus"
)

// ResolveWindow fills in the window bounds the job leaves open: the end
// defaults to the later of the last note and the end of the song, the offset
// to the chart's AudioOffset.
func ResolveWindow(cfg config.Config, c *chart.Chart, song *audio.Clip) (render.Window, error) {
	end := cfg.EndTiming
	if end == 0 {
		if _, last, ok := c.Bounds(); ok {
			end = last
		}
		if song != nil {
			if songEnd := int(song.Duration() / time.Millisecond); songEnd > end {
				end = songEnd
			}
		}
	}
	offset := c.AudioOffset
	if cfg.AudioOffset != nil {
		offset = *cfg.AudioOffset
	}
	return render.NewWindow(cfg.StartTiming, end, offset)
}

// NewOptions converts the render job into renderer options.
func NewOptions(cfg config.Config, c *chart.Chart, assets *render.Assets) (render.Options, error) {
	window, err := ResolveWindow(cfg, c, assets.Song)
	if err != nil {
		return render.Options{}, err
	}
	mode, err := cfg.Mode()
	if err != nil {
		return render.Options{}, err
	}
	opts := render.Options{
		Window:         window,
		ShowTransition: cfg.ShowTransition,
		Settings:       cfg.Settings(),
		Assets:         assets,
		Context: render.Context{
			ProjectPath: cfg.ProjectPath,
			InputMode:   mode,
			Chart:       c,
		},
	}
	if cfg.ShowTransition {
		seq, err := cfg.TransitionSequence()
		if err != nil {
			return render.Options{}, err
		}
		opts.Transition = seq
	}
	return opts, nil
}

// Render runs one render job: it parses the chart, optionally clears the
// staging directory, decodes every clip and writes the WAV files and the
// manifest next to the project file.
func Render(ctx context.Context, cfg config.Config) (*render.Result, error) {
	logrus.WithFields(logrus.Fields{
		"function": "Render",
		"project":  cfg.ProjectPath,
		"chart":    cfg.ChartPath,
	}).Info("Starting render job")

	c, err := chart.ParseFile(cfg.ChartPath)
	if err != nil {
		return nil, err
	}

	if cfg.Clean {
		if err := staging.Clean(cfg.ProjectPath); err != nil {
			return nil, err
		}
	}

	assets, err := render.LoadAssets(ctx, cfg.AssetPaths())
	if err != nil {
		return nil, err
	}

	opts, err := NewOptions(cfg, c, assets)
	if err != nil {
		return nil, err
	}
	renderer, err := render.NewRenderer(opts)
	if err != nil {
		return nil, err
	}
	return renderer.Render(ctx)
}
