package config

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/opd-ai/chartrender/render"
	"github.com/opd-ai/chartrender/staging"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Environment variable names read by Load.
const (
	EnvPrefix = "CHARTRENDER_"

	EnvProject              = EnvPrefix + "PROJECT"
	EnvChart                = EnvPrefix + "CHART"
	EnvSong                 = EnvPrefix + "SONG"
	EnvTap                  = EnvPrefix + "TAP"
	EnvArc                  = EnvPrefix + "ARC"
	EnvRenderStart          = EnvPrefix + "RENDER_START"
	EnvGameplayLoadComplete = EnvPrefix + "GAMEPLAY_LOAD_COMPLETE"
	EnvSfx                  = EnvPrefix + "SFX"
	EnvStartTiming          = EnvPrefix + "START_TIMING"
	EnvEndTiming            = EnvPrefix + "END_TIMING"
	EnvAudioOffset          = EnvPrefix + "AUDIO_OFFSET"
	EnvShowTransition       = EnvPrefix + "SHOW_TRANSITION"
	EnvTransitionShowMs     = EnvPrefix + "TRANSITION_SHOW_MS"
	EnvTransitionWaitMs     = EnvPrefix + "TRANSITION_WAIT_MS"
	EnvTransitionHideMs     = EnvPrefix + "TRANSITION_HIDE_MS"
	EnvEffectVolume         = EnvPrefix + "EFFECT_VOLUME"
	EnvMusicVolume          = EnvPrefix + "MUSIC_VOLUME"
	EnvInputMode            = EnvPrefix + "INPUT_MODE"
	EnvLogLevel             = EnvPrefix + "LOG_LEVEL"
	EnvLogFormat            = EnvPrefix + "LOG_FORMAT"
	EnvClean                = EnvPrefix + "CLEAN"
)

// Default transition phase lengths in milliseconds.
const (
	DefaultShowMs = 1000
	DefaultWaitMs = 2000
	DefaultHideMs = 500
)

// TransitionConfig holds the lead-in phase lengths in milliseconds.
type TransitionConfig struct {
	ShowMs int `yaml:"show_ms"`
	WaitMs int `yaml:"wait_ms"`
	HideMs int `yaml:"hide_ms"`
}

// Config holds one render job.
type Config struct {
	// Inputs
	ProjectPath              string            `yaml:"project"`
	ChartPath                string            `yaml:"chart"`
	SongPath                 string            `yaml:"song"`
	TapPath                  string            `yaml:"tap"`
	ArcPath                  string            `yaml:"arc"`
	RenderStartPath          string            `yaml:"render_start"`
	GameplayLoadCompletePath string            `yaml:"gameplay_load_complete"`
	SfxPaths                 map[string]string `yaml:"sfx"`

	// Window. A zero EndTiming renders to the last note of the chart and a
	// nil AudioOffset uses the chart header's offset.
	StartTiming int  `yaml:"start_timing"`
	EndTiming   int  `yaml:"end_timing"`
	AudioOffset *int `yaml:"audio_offset"`

	ShowTransition bool             `yaml:"show_transition"`
	Transition     TransitionConfig `yaml:"transition"`

	EffectVolume float64 `yaml:"effect_volume"`
	MusicVolume  float64 `yaml:"music_volume"`
	InputMode    string  `yaml:"input_mode"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"` // text or json
	Clean     bool   `yaml:"clean"`
}

// Default returns a configuration with every optional field set.
func Default() Config {
	return Config{
		SfxPaths: map[string]string{},
		Transition: TransitionConfig{
			ShowMs: DefaultShowMs,
			WaitMs: DefaultWaitMs,
			HideMs: DefaultHideMs,
		},
		EffectVolume: 1,
		MusicVolume:  1,
		InputMode:    render.InputModeTouch.String(),
		LogLevel:     "info",
		LogFormat:    "text",
	}
}

// Load reads configuration from environment variables on top of the defaults.
func Load() Config {
	cfg := Default()
	cfg.applyEnv()
	return cfg
}

// LoadFile reads a YAML render job on top of the defaults. Environment
// variables override values from the file.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.SfxPaths == nil {
		cfg.SfxPaths = map[string]string{}
	}
	cfg.applyEnv()

	logrus.WithFields(logrus.Fields{
		"function": "LoadFile",
		"path":     path,
		"sfx":      len(cfg.SfxPaths),
	}).Debug("Loaded render job")

	return cfg, nil
}

func (c *Config) applyEnv() {
	c.ProjectPath = envStr(EnvProject, c.ProjectPath)
	c.ChartPath = envStr(EnvChart, c.ChartPath)
	c.SongPath = envStr(EnvSong, c.SongPath)
	c.TapPath = envStr(EnvTap, c.TapPath)
	c.ArcPath = envStr(EnvArc, c.ArcPath)
	c.RenderStartPath = envStr(EnvRenderStart, c.RenderStartPath)
	c.GameplayLoadCompletePath = envStr(EnvGameplayLoadComplete, c.GameplayLoadCompletePath)

	if v := os.Getenv(EnvSfx); v != "" {
		sfx, err := ParseSfxList(v)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"function": "Load",
				"variable": EnvSfx,
				"error":    err.Error(),
			}).Warn("Ignoring malformed sfx list")
		} else {
			for name, path := range sfx {
				c.SfxPaths[name] = path
			}
		}
	}

	c.StartTiming = envInt(EnvStartTiming, c.StartTiming)
	c.EndTiming = envInt(EnvEndTiming, c.EndTiming)
	if v := os.Getenv(EnvAudioOffset); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.AudioOffset = &n
		}
	}

	c.ShowTransition = envBool(EnvShowTransition, c.ShowTransition)
	c.Transition.ShowMs = envInt(EnvTransitionShowMs, c.Transition.ShowMs)
	c.Transition.WaitMs = envInt(EnvTransitionWaitMs, c.Transition.WaitMs)
	c.Transition.HideMs = envInt(EnvTransitionHideMs, c.Transition.HideMs)

	c.EffectVolume = envFloat(EnvEffectVolume, c.EffectVolume)
	c.MusicVolume = envFloat(EnvMusicVolume, c.MusicVolume)
	c.InputMode = envStr(EnvInputMode, c.InputMode)

	c.LogLevel = envStr(EnvLogLevel, c.LogLevel)
	c.LogFormat = envStr(EnvLogFormat, c.LogFormat)
	c.Clean = envBool(EnvClean, c.Clean)
}

// ParseSfxList parses a comma separated list of name=path pairs.
// Names must be valid staging file name components.
func ParseSfxList(s string) (map[string]string, error) {
	out := map[string]string{}
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		name, path, ok := strings.Cut(item, "=")
		name = strings.TrimSpace(name)
		path = strings.TrimSpace(path)
		if !ok || name == "" || path == "" {
			return nil, fmt.Errorf("%w: %q is not name=path", ErrInvalidSfxList, item)
		}
		if err := staging.ValidateName(name); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSfxList, err)
		}
		if _, dup := out[name]; dup {
			return nil, fmt.Errorf("%w: duplicate name %q", ErrInvalidSfxList, name)
		}
		out[name] = path
	}
	return out, nil
}

type requiredPath struct{ name, value string }

// Validate checks required paths, the window order, volume ranges and the
// input mode.
func (c Config) Validate() error {
	required := []requiredPath{
		{"project", c.ProjectPath},
		{"chart", c.ChartPath},
		{"song", c.SongPath},
		{"tap", c.TapPath},
		{"arc", c.ArcPath},
	}
	if c.ShowTransition {
		required = append(required,
			requiredPath{"render_start", c.RenderStartPath},
			requiredPath{"gameplay_load_complete", c.GameplayLoadCompletePath})
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("%w: %s", ErrMissingPath, r.name)
		}
	}

	names := make([]string, 0, len(c.SfxPaths))
	for name := range c.SfxPaths {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := staging.ValidateName(name); err != nil {
			return fmt.Errorf("%w: sfx %q: %v", ErrInvalidValue, name, err)
		}
		if c.SfxPaths[name] == "" {
			return fmt.Errorf("%w: sfx %s", ErrMissingPath, name)
		}
	}

	if c.EndTiming != 0 && c.EndTiming <= c.StartTiming {
		return fmt.Errorf("%w: end timing %d is not after start timing %d", ErrInvalidValue, c.EndTiming, c.StartTiming)
	}
	if _, err := c.TransitionSequence(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}

	if err := c.Settings().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	if _, err := render.ParseInputMode(c.InputMode); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log level %q", ErrInvalidValue, c.LogLevel)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log format %q", ErrInvalidValue, c.LogFormat)
	}
	return nil
}

// Settings returns the volume settings of the job.
func (c Config) Settings() render.Settings {
	return render.Settings{
		EffectVolume: float32(c.EffectVolume),
		MusicVolume:  float32(c.MusicVolume),
	}
}

// Mode returns the parsed input mode.
func (c Config) Mode() (render.InputMode, error) {
	return render.ParseInputMode(c.InputMode)
}

// TransitionSequence returns the configured lead-in, or nil when the
// transition is not rendered.
func (c Config) TransitionSequence() (*render.TransitionSequence, error) {
	if !c.ShowTransition {
		return nil, nil
	}
	return render.NewTransitionSequence(c.Transition.ShowMs, c.Transition.WaitMs, c.Transition.HideMs)
}

// AssetPaths returns the clip files of the job. The transition cues are only
// included when the transition is rendered.
func (c Config) AssetPaths() render.AssetPaths {
	paths := render.AssetPaths{
		Song: c.SongPath,
		Tap:  c.TapPath,
		Arc:  c.ArcPath,
		Sfx:  make(map[string]string, len(c.SfxPaths)),
	}
	if c.ShowTransition {
		paths.RenderStart = c.RenderStartPath
		paths.GameplayLoadComplete = c.GameplayLoadCompletePath
	}
	for name, path := range c.SfxPaths {
		paths.Sfx[name] = path
	}
	return paths
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
