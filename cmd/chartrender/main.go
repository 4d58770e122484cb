// Package main provides the command-line interface for rendering a chart's
// hit sounds and song into WAV stems.
//
// The render job is assembled from defaults, an optional YAML job file
// (-config), CHARTRENDER_* environment variables and command-line flags, in
// increasing order of precedence. Output is written to the .rendering
// directory next to the project file.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/opd-ai/chartrender"
	"github.com/opd-ai/chartrender/config"
	"github.com/opd-ai/chartrender/render"
	"github.com/sirupsen/logrus"
)

// CLI configuration
type CLIConfig struct {
	flags      *flag.FlagSet
	configPath string

	projectPath              string
	chartPath                string
	songPath                 string
	tapPath                  string
	arcPath                  string
	renderStartPath          string
	gameplayLoadCompletePath string
	sfx                      string

	startTiming    int
	endTiming      int
	audioOffset    int
	showTransition bool
	effectVolume   float64
	musicVolume    float64
	inputMode      string

	logLevel  string
	logFormat string
	clean     bool
	help      bool
}

// parseCLIFlags parses command-line flags and returns the configuration.
func parseCLIFlags(args []string) (*CLIConfig, error) {
	cli := &CLIConfig{}
	fs := flag.NewFlagSet("chartrender", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cli.flags = fs

	fs.StringVar(&cli.configPath, "config", "", "YAML render job file")

	// Inputs
	fs.StringVar(&cli.projectPath, "project", "", "Project file; output goes to its .rendering directory")
	fs.StringVar(&cli.chartPath, "chart", "", "Chart file (.aff)")
	fs.StringVar(&cli.songPath, "song", "", "Song audio (.wav, .ogg, .opus)")
	fs.StringVar(&cli.tapPath, "tap", "", "Tap hit sound")
	fs.StringVar(&cli.arcPath, "arc", "", "Arc hit sound")
	fs.StringVar(&cli.renderStartPath, "render-start", "", "Transition start cue")
	fs.StringVar(&cli.gameplayLoadCompletePath, "gameplay-load-complete", "", "Transition gameplay cue")
	fs.StringVar(&cli.sfx, "sfx", "", "Custom hit sounds as name=path,name=path")

	// Window
	fs.IntVar(&cli.startTiming, "start", 0, "Window start timing in ms")
	fs.IntVar(&cli.endTiming, "end", 0, "Window end timing in ms (default: end of chart or song)")
	fs.IntVar(&cli.audioOffset, "offset", 0, "Audio offset in ms (default: chart AudioOffset)")
	fs.BoolVar(&cli.showTransition, "transition", false, "Render the transition lead-in")

	// Mix
	fs.Float64Var(&cli.effectVolume, "effect-volume", 1, "Hit sound volume")
	fs.Float64Var(&cli.musicVolume, "music-volume", 1, "Song volume")
	fs.StringVar(&cli.inputMode, "input-mode", "Touch", "Input mode (Touch, Mouse, Keyboard, Controller, Auto, AutoController)")

	// Logging
	fs.StringVar(&cli.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	fs.StringVar(&cli.logFormat, "log-format", "text", "Log format (text, json)")

	fs.BoolVar(&cli.clean, "clean", false, "Remove the .rendering directory before rendering")
	fs.BoolVar(&cli.help, "help", false, "Show help message")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			cli.help = true
			return cli, nil
		}
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return cli, nil
}

// printUsage prints the usage information.
func printUsage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "Chart Audio Renderer")
	fmt.Fprintln(w, "====================")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Mixes a chart's hit sounds and its song into WAV files:")
	fmt.Fprintln(w, "  • sfx.wav with tap and arc sounds and the transition cues")
	fmt.Fprintln(w, "  • sfx_<name>.wav for every custom sound the chart triggers")
	fmt.Fprintln(w, "  • song.wav with the song cut to the render window")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintf(w, "  %s [options]\n", os.Args[0])
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fs.SetOutput(io.Discard)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintf(w, "  # Render a job file\n")
	fmt.Fprintf(w, "  %s -config job.yaml\n", os.Args[0])
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  # Render an autoplay window with a custom sound\n")
	fmt.Fprintf(w, "  %s -project song/project.arcproj -chart song/2.aff -song song/base.ogg \\\n", os.Args[0])
	fmt.Fprintf(w, "      -tap tap.wav -arc arc.wav -sfx glass=glass.wav -input-mode auto -start 1000 -end 60000\n")
}

// loadJob builds the render job from the config file or environment and
// applies every flag that was set explicitly.
func loadJob(cli *CLIConfig) (config.Config, error) {
	var cfg config.Config
	if cli.configPath != "" {
		var err error
		if cfg, err = config.LoadFile(cli.configPath); err != nil {
			return config.Config{}, err
		}
	} else {
		cfg = config.Load()
	}

	var sfxErr error
	cli.flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "project":
			cfg.ProjectPath = cli.projectPath
		case "chart":
			cfg.ChartPath = cli.chartPath
		case "song":
			cfg.SongPath = cli.songPath
		case "tap":
			cfg.TapPath = cli.tapPath
		case "arc":
			cfg.ArcPath = cli.arcPath
		case "render-start":
			cfg.RenderStartPath = cli.renderStartPath
		case "gameplay-load-complete":
			cfg.GameplayLoadCompletePath = cli.gameplayLoadCompletePath
		case "sfx":
			sfx, err := config.ParseSfxList(cli.sfx)
			if err != nil {
				sfxErr = err
				return
			}
			for name, path := range sfx {
				cfg.SfxPaths[name] = path
			}
		case "start":
			cfg.StartTiming = cli.startTiming
		case "end":
			cfg.EndTiming = cli.endTiming
		case "offset":
			offset := cli.audioOffset
			cfg.AudioOffset = &offset
		case "transition":
			cfg.ShowTransition = cli.showTransition
		case "effect-volume":
			cfg.EffectVolume = cli.effectVolume
		case "music-volume":
			cfg.MusicVolume = cli.musicVolume
		case "input-mode":
			cfg.InputMode = cli.inputMode
		case "log-level":
			cfg.LogLevel = cli.logLevel
		case "log-format":
			cfg.LogFormat = cli.logFormat
		case "clean":
			cfg.Clean = cli.clean
		}
	})
	if sfxErr != nil {
		return config.Config{}, sfxErr
	}
	return cfg, nil
}

// validateCLIConfig validates the assembled render job.
func validateCLIConfig(cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if _, err := os.Stat(cfg.ChartPath); err != nil {
		return fmt.Errorf("chart: %w", err)
	}
	return nil
}

// setupLogging configures the global logrus logger.
func setupLogging(cfg config.Config, w io.Writer) error {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logrus.SetOutput(w)
	logrus.SetLevel(level)
	switch cfg.LogFormat {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	default:
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}
	return nil
}

// printResult lists the written files.
func printResult(w io.Writer, result *render.Result) {
	fmt.Fprintf(w, "Rendered %d files to %s (render %s)\n", len(result.Files), result.Dir, result.Manifest.RenderID)
	for _, f := range result.Files {
		fmt.Fprintf(w, "  %-20s %-24s %8d frames  %s\n", f.File, f.Format.String(), f.Frames, f.Digest[:16])
	}
}

// main is the entry point for the renderer.
func main() {
	// Parse command-line flags
	cli, err := parseCLIFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		fmt.Fprintf(os.Stderr, "Use -help for usage information.\n")
		os.Exit(2)
	}

	// Show help if requested
	if cli.help {
		printUsage(os.Stdout, cli.flags)
		os.Exit(0)
	}

	cfg, err := loadJob(cli)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Configuration error: %v\n", err)
		os.Exit(1)
	}

	// Validate configuration
	if err := validateCLIConfig(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Configuration error: %v\n", err)
		fmt.Fprintf(os.Stderr, "Use -help for usage information.\n")
		os.Exit(1)
	}

	if err := setupLogging(cfg, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Invalid log level: %v\n", err)
		os.Exit(1)
	}

	// Cancel between output files on interrupt
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := chartrender.Render(ctx, cfg)
	if err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "❌ Render failed: %v\n", err)
		os.Exit(1)
	}

	printResult(os.Stdout, result)
}
