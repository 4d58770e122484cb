package render

import (
	"context"
	"fmt"
	"sort"

	"github.com/opd-ai/chartrender/audio"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentDecodes bounds the number of clips decoded at once.
const maxConcurrentDecodes = 4

// Assets are the decoded clips a render mixes.
type Assets struct {
	Song *audio.Clip
	Tap  *audio.Clip
	Arc  *audio.Clip
	// RenderStart and GameplayLoadComplete are the transition cues. They are
	// only required when the transition lead-in is rendered.
	RenderStart          *audio.Clip
	GameplayLoadComplete *audio.Clip
	// Sfx maps a custom sound name to its clip.
	Sfx map[string]*audio.Clip
}

// AssetPaths lists the files LoadAssets decodes. Empty cue paths are skipped.
type AssetPaths struct {
	Song                 string
	Tap                  string
	Arc                  string
	RenderStart          string
	GameplayLoadComplete string
	Sfx                  map[string]string
}

// clipLoader decodes one audio file.
type clipLoader func(path string) (*audio.Clip, error)

// LoadAssets decodes every clip in paths concurrently. The first failure
// cancels the remaining decodes and is returned.
func LoadAssets(ctx context.Context, paths AssetPaths) (*Assets, error) {
	return loadAssets(ctx, paths, audio.LoadClip)
}

func loadAssets(ctx context.Context, paths AssetPaths, load clipLoader) (*Assets, error) {
	assets := &Assets{Sfx: make(map[string]*audio.Clip, len(paths.Sfx))}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentDecodes)

	decode := func(what, path string, dst **audio.Clip) {
		if path == "" {
			return
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			clip, err := load(path)
			if err != nil {
				return fmt.Errorf("load %s clip: %w", what, err)
			}
			*dst = clip
			return nil
		})
	}

	decode("song", paths.Song, &assets.Song)
	decode("tap", paths.Tap, &assets.Tap)
	decode("arc", paths.Arc, &assets.Arc)
	decode("render start", paths.RenderStart, &assets.RenderStart)
	decode("gameplay load complete", paths.GameplayLoadComplete, &assets.GameplayLoadComplete)

	names := make([]string, 0, len(paths.Sfx))
	for name := range paths.Sfx {
		names = append(names, name)
	}
	sort.Strings(names)
	sfx := make([]*audio.Clip, len(names))
	for i, name := range names {
		decode("sfx "+name, paths.Sfx[name], &sfx[i])
	}

	if err := g.Wait(); err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "LoadAssets",
			"error":    err.Error(),
		}).Error("Failed to load render assets")
		return nil, err
	}

	for i, name := range names {
		if sfx[i] != nil {
			assets.Sfx[name] = sfx[i]
		}
	}

	logrus.WithFields(logrus.Fields{
		"function": "LoadAssets",
		"sfx":      len(assets.Sfx),
	}).Info("Loaded render assets")

	return assets, nil
}

// SfxNames returns the registered custom sound names in ascending order.
func (a *Assets) SfxNames() []string {
	names := make([]string, 0, len(a.Sfx))
	for name := range a.Sfx {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type namedClip struct {
	name string
	clip *audio.Clip
}

// validate checks that every clip the render needs is present.
func (a *Assets) validate(withTransition bool) error {
	required := []namedClip{{"song", a.Song}, {"tap", a.Tap}, {"arc", a.Arc}}
	if withTransition {
		required = append(required,
			namedClip{"render start", a.RenderStart},
			namedClip{"gameplay load complete", a.GameplayLoadComplete})
	}
	for _, r := range required {
		if r.clip == nil {
			return fmt.Errorf("%w: %s", ErrMissingClip, r.name)
		}
	}
	for name, clip := range a.Sfx {
		if clip == nil {
			return fmt.Errorf("%w: sfx %q", ErrMissingClip, name)
		}
	}
	return nil
}
