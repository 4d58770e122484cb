package render

import (
	"context"
	"fmt"

	"github.com/opd-ai/chartrender/audio"
	"github.com/opd-ai/chartrender/chart"
	"github.com/opd-ai/chartrender/limits"
	"github.com/opd-ai/chartrender/manifest"
	"github.com/opd-ai/chartrender/staging"
	"github.com/sirupsen/logrus"
)

// Output stream names. Custom sound streams are named SfxStreamPrefix+name.
const (
	StreamSfx       = "sfx"
	StreamSong      = "song"
	SfxStreamPrefix = "sfx_"
)

// Context carries the collaborators of a single render. It is read-only for
// the duration of the render.
type Context struct {
	// ProjectPath is the project file; output goes to its staging directory.
	ProjectPath string
	InputMode   InputMode
	Chart       chart.Query
}

// Options configure a Renderer.
type Options struct {
	Window         Window
	ShowTransition bool
	// Transition is required when ShowTransition is set.
	Transition Transition
	Settings   Settings
	Assets     *Assets
	Context    Context
	// TimeProvider stamps the manifest. Nil uses the manifest package default.
	TimeProvider manifest.TimeProvider
}

// Renderer mixes a chart's hit sounds and song into WAV files.
// A Renderer is not safe for concurrent use.
type Renderer struct {
	opts     Options
	leadInMs int
}

// Mix holds the float buffers of a finished mix.
type Mix struct {
	// Format is shared by the effect buffer and every custom sound buffer.
	Format   audio.Format
	LeadInMs int
	Events   *Events
	// Effects holds the tap and arc sounds plus the transition cues.
	Effects []float32
	// Sfx holds one buffer per triggered custom sound.
	Sfx        map[string][]float32
	Song       []float32
	SongFormat audio.Format
}

// OutputFile describes one written WAV file.
type OutputFile struct {
	Name   string
	File   string
	Path   string
	Format audio.Format
	Frames int
	Digest string
}

// Result lists the files produced by Render.
type Result struct {
	Dir      string
	Files    []OutputFile
	Manifest *manifest.Manifest
}

// NewRenderer validates opts and returns a renderer.
func NewRenderer(opts Options) (*Renderer, error) {
	if err := opts.Window.Validate(); err != nil {
		return nil, err
	}
	if err := opts.Settings.Validate(); err != nil {
		return nil, err
	}
	if opts.Context.Chart == nil {
		return nil, ErrMissingChart
	}
	if opts.Assets == nil {
		return nil, fmt.Errorf("%w: no assets", ErrMissingClip)
	}
	if err := opts.Assets.validate(opts.ShowTransition); err != nil {
		return nil, err
	}

	leadIn := 0
	if opts.ShowTransition {
		if opts.Transition == nil {
			return nil, ErrMissingTransition
		}
		leadIn = opts.Transition.FullSequenceMs()
		if leadIn < 0 {
			return nil, fmt.Errorf("%w: lead-in %d ms", ErrInvalidTransition, leadIn)
		}
	}
	if err := limits.ValidateDuration(opts.Window.DurationMs() + leadIn); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWindow, err)
	}

	logrus.WithFields(logrus.Fields{
		"function":      "NewRenderer",
		"window":        opts.Window.String(),
		"transition":    opts.ShowTransition,
		"lead_in_ms":    leadIn,
		"input_mode":    opts.Context.InputMode.String(),
		"effect_volume": opts.Settings.EffectVolume,
		"music_volume":  opts.Settings.MusicVolume,
		"sfx":           len(opts.Assets.Sfx),
	}).Info("Created renderer")

	return &Renderer{opts: opts, leadInMs: leadIn}, nil
}

// LeadInMs returns the transition lead-in, or 0 without a transition.
func (r *Renderer) LeadInMs() int {
	return r.leadInMs
}

// SfxNames returns the registered custom sound names in ascending order.
func (r *Renderer) SfxNames() []string {
	return r.opts.Assets.SfxNames()
}

// primaryFormat returns the tap clip format after checking every other
// contributing clip against it.
func (r *Renderer) primaryFormat() (audio.Format, error) {
	a := r.opts.Assets
	primary := a.Tap.Format

	internal := []namedClip{
		{"arc", a.Arc},
		{"render start", a.RenderStart},
		{"gameplay load complete", a.GameplayLoadComplete},
	}
	for _, c := range internal {
		if c.clip != nil && c.clip.Format != primary {
			err := &FormatError{Stream: c.name, Expected: primary, Actual: c.clip.Format}
			logrus.WithFields(logrus.Fields{
				"function": "Renderer.primaryFormat",
				"stream":   c.name,
				"expected": primary.String(),
				"actual":   c.clip.Format.String(),
			}).Error("Internal clip format mismatch")
			return audio.Format{}, err
		}
	}

	for _, name := range a.SfxNames() {
		clip := a.Sfx[name]
		if clip.Format != primary {
			logrus.WithFields(logrus.Fields{
				"function": "Renderer.primaryFormat",
				"sfx":      name,
				"expected": primary.String(),
				"actual":   clip.Format.String(),
			}).Error("Incompatible sfx clip")
			return audio.Format{}, &FormatError{Stream: name, Sfx: true, Expected: primary, Actual: clip.Format}
		}
	}

	return primary, nil
}

// newBuffer allocates a zeroed buffer covering the window plus lead-in.
func (r *Renderer) newBuffer(f audio.Format) ([]float32, error) {
	frames := audio.FrameCount(r.opts.Window.DurationMs()+r.leadInMs, f.Frequency)
	samples := int64(frames) * int64(f.Channels)
	if err := limits.ValidateBufferSize(samples); err != nil {
		return nil, err
	}
	return make([]float32, samples), nil
}

// mixEvents adds the one-shot sound of every event, in order, to the effect
// buffer or to its custom sound buffer. It returns the number of triggers that
// were cut short by the end of the buffer.
func (r *Renderer) mixEvents(events []SoundEvent, effects []float32, sfx map[string][]float32, f audio.Format, gain float32) int {
	a := r.opts.Assets
	tap, arc := a.Tap.Data(), a.Arc.Data()
	oneShots := make(map[string][]float32, len(sfx))
	for name := range sfx {
		oneShots[name] = a.Sfx[name].Data()
	}

	truncated := 0
	for _, ev := range events {
		dst, src := effects, tap
		switch ev.Category {
		case CategoryArc:
			src = arc
		case CategorySfx:
			dst, src = sfx[ev.Sfx], oneShots[ev.Sfx]
		}
		idx := TimingToSampleIndex(ev.Timing, r.opts.Window, r.leadInMs, f)
		if MixInto(dst, src, idx, gain) < len(src) {
			truncated++
		}
	}
	return truncated
}

// Mix builds every output buffer in memory.
//
// The tap clip defines the primary format. The arc clip, the transition cues
// and every registered custom sound must match it. Hit sounds are scaled by
// the resolved effect gain; transition cues are mixed at unity gain; the
// song is scaled by the music volume.
func (r *Renderer) Mix() (*Mix, error) {
	a := r.opts.Assets
	w := r.opts.Window

	format, err := r.primaryFormat()
	if err != nil {
		return nil, err
	}

	events := ExtractEvents(r.opts.Context.Chart, w, func(name string) bool {
		_, ok := a.Sfx[name]
		return ok
	})
	gain := ResolveEffectGain(r.opts.Settings, r.opts.Context.InputMode)

	effects, err := r.newBuffer(format)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"function":    "Renderer.Mix",
		"format":      format.String(),
		"samples":     len(effects),
		"effect_gain": gain,
	}).Info("Prepared effect buffer")

	if r.opts.ShowTransition {
		t := r.opts.Transition
		MixInto(effects, a.RenderStart.Data(), 0, 1)
		cueFrame := int((t.ShowDurationSeconds() + t.WaitDurationSeconds()) * float64(format.Frequency))
		MixInto(effects, a.GameplayLoadComplete.Data(), cueFrame*format.Channels, 1)
	}

	sfx := make(map[string][]float32, len(events.Sfx))
	for _, name := range events.SfxNames() {
		buf, err := r.newBuffer(format)
		if err != nil {
			return nil, err
		}
		sfx[name] = buf
	}

	sounds := events.SoundEvents()
	truncated := r.mixEvents(sounds, effects, sfx, format, gain)

	logrus.WithFields(logrus.Fields{
		"function":  "Renderer.Mix",
		"events":    len(sounds),
		"sfx":       len(sfx),
		"truncated": truncated,
	}).Debug("Mixed one-shot sounds")

	music, err := audio.NewGainEffect(r.opts.Settings.MusicVolume)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	song := music.Process(a.Song.Window(w.StartTiming, w.EndTiming, r.leadInMs))

	return &Mix{
		Format:     format,
		LeadInMs:   r.leadInMs,
		Events:     events,
		Effects:    effects,
		Sfx:        sfx,
		Song:       song,
		SongFormat: a.Song.Format,
	}, nil
}

type stream struct {
	name    string
	file    string
	samples []float32
	format  audio.Format
}

// Render mixes and writes sfx.wav, one sfx_<name>.wav per triggered custom
// sound, song.wav and the render.json manifest into the project's staging
// directory.
//
// ctx is checked between files only; a mix in progress runs to completion.
// Files already written are left in place when a later step fails.
func (r *Renderer) Render(ctx context.Context) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	project := r.opts.Context.ProjectPath
	if project == "" {
		return nil, ErrMissingProject
	}

	mix, err := r.Mix()
	if err != nil {
		return nil, err
	}

	streams := []stream{{StreamSfx, StreamSfx + ".wav", mix.Effects, mix.Format}}
	for _, name := range mix.Events.SfxNames() {
		streams = append(streams, stream{SfxStreamPrefix + name, SfxStreamPrefix + name + ".wav", mix.Sfx[name], mix.Format})
	}
	streams = append(streams, stream{StreamSong, StreamSong + ".wav", mix.Song, mix.SongFormat})

	m := manifest.New(r.opts.TimeProvider)
	m.StartTiming = r.opts.Window.StartTiming
	m.EndTiming = r.opts.Window.EndTiming
	m.AudioOffset = r.opts.Window.AudioOffset
	m.LeadInMs = r.leadInMs
	m.Transition = r.opts.ShowTransition
	m.InputMode = r.opts.Context.InputMode.String()

	result := &Result{Dir: staging.Dir(project), Manifest: m}
	for _, s := range streams {
		if err := ctx.Err(); err != nil {
			logrus.WithFields(logrus.Fields{
				"function": "Renderer.Render",
				"next":     s.file,
				"written":  len(result.Files),
			}).Warn("Render cancelled")
			return nil, err
		}

		path, err := staging.Resolve(project, s.file)
		if err != nil {
			return nil, fmt.Errorf("stream %s: %w", s.name, err)
		}
		pcm := audio.EncodePCM16(s.samples)
		if err := audio.WriteWAVFile(path, pcm, s.format); err != nil {
			return nil, err
		}

		frames := len(pcm) / s.format.Channels
		m.Add(s.name, s.file, s.format.Channels, s.format.Frequency, frames, audio.PCM16Bytes(pcm))
		entry := m.Files[len(m.Files)-1]
		result.Files = append(result.Files, OutputFile{
			Name:   s.name,
			File:   s.file,
			Path:   path,
			Format: s.format,
			Frames: frames,
			Digest: entry.Digest,
		})
	}

	manifestPath, err := staging.Resolve(project, manifest.FileName)
	if err != nil {
		return nil, err
	}
	m.Finish()
	if err := m.Write(manifestPath); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"function":  "Renderer.Render",
		"dir":       result.Dir,
		"files":     len(result.Files),
		"render_id": m.RenderID,
		"render_ms": m.RenderMs,
	}).Info("Render complete")

	return result, nil
}
