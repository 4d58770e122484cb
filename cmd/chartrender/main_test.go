package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/opd-ai/chartrender/audio"
	"github.com/opd-ai/chartrender/config"
	"github.com/opd-ai/chartrender/manifest"
	"github.com/opd-ai/chartrender/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCLIFlags(t *testing.T) {
	cli, err := parseCLIFlags([]string{"-chart", "a.aff", "-start", "1000", "-transition", "-sfx", "glass=g.wav"})
	require.NoError(t, err)
	assert.Equal(t, "a.aff", cli.chartPath)
	assert.Equal(t, 1000, cli.startTiming)
	assert.True(t, cli.showTransition)
	assert.False(t, cli.help)

	cli, err = parseCLIFlags([]string{"-h"})
	require.NoError(t, err)
	assert.True(t, cli.help)

	_, err = parseCLIFlags([]string{"-start", "soon"})
	assert.Error(t, err)

	_, err = parseCLIFlags([]string{"extra"})
	assert.Error(t, err)
}

func TestPrintUsage(t *testing.T) {
	cli, err := parseCLIFlags(nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	printUsage(&buf, cli.flags)
	assert.Contains(t, buf.String(), "-input-mode")
	assert.Contains(t, buf.String(), "sfx_<name>.wav")
}

func TestLoadJobPrecedence(t *testing.T) {
	dir := t.TempDir()
	job := filepath.Join(dir, "job.yaml")
	require.NoError(t, os.WriteFile(job, []byte("chart: file.aff\nstart_timing: 100\nend_timing: 900\nsfx:\n  glass: file.wav\n"), 0o644))
	t.Setenv(config.EnvEndTiming, "800")

	cli, err := parseCLIFlags([]string{"-config", job, "-start", "200", "-sfx", "wood=flag.wav", "-offset", "0"})
	require.NoError(t, err)

	cfg, err := loadJob(cli)
	require.NoError(t, err)

	assert.Equal(t, "file.aff", cfg.ChartPath)
	assert.Equal(t, 200, cfg.StartTiming, "flag overrides file")
	assert.Equal(t, 800, cfg.EndTiming, "env overrides file")
	assert.Equal(t, map[string]string{"glass": "file.wav", "wood": "flag.wav"}, cfg.SfxPaths)
	require.NotNil(t, cfg.AudioOffset)
	assert.Equal(t, 0, *cfg.AudioOffset)
	assert.Equal(t, 1.0, cfg.EffectVolume, "unset flags keep the loaded value")
}

func TestLoadJobBadSfxFlag(t *testing.T) {
	cli, err := parseCLIFlags([]string{"-sfx", "glass"})
	require.NoError(t, err)

	_, err = loadJob(cli)
	assert.ErrorIs(t, err, config.ErrInvalidSfxList)
}

func TestSetupLogging(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.Default()
	cfg.LogFormat = "json"
	require.NoError(t, setupLogging(cfg, &buf))
	t.Cleanup(func() {
		require.NoError(t, setupLogging(config.Default(), os.Stderr))
	})

	cfg.LogLevel = "verbose"
	assert.Error(t, setupLogging(cfg, &buf))
}

func TestValidateCLIConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.ProjectPath = filepath.Join(dir, "project.arcproj")
	cfg.ChartPath = filepath.Join(dir, "2.aff")
	cfg.SongPath = "song.wav"
	cfg.TapPath = "tap.wav"
	cfg.ArcPath = "arc.wav"

	assert.ErrorIs(t, validateCLIConfig(cfg), os.ErrNotExist)

	require.NoError(t, os.WriteFile(cfg.ChartPath, []byte("(1000,1);\n"), 0o644))
	assert.NoError(t, validateCLIConfig(cfg))

	cfg.TapPath = ""
	assert.ErrorIs(t, validateCLIConfig(cfg), config.ErrMissingPath)
}

func TestPrintResult(t *testing.T) {
	digest := strings.Repeat("ab", 32)
	result := &render.Result{
		Dir:      "/p/.rendering",
		Manifest: &manifest.Manifest{RenderID: "job-1"},
		Files: []render.OutputFile{
			{Name: "sfx", File: "sfx.wav", Format: audio.Format{Channels: 2, Frequency: 44100}, Frames: 441, Digest: digest},
			{Name: "song", File: "song.wav", Format: audio.Format{Channels: 2, Frequency: 44100}, Frames: 441, Digest: digest},
		},
	}

	var buf bytes.Buffer
	printResult(&buf, result)

	out := buf.String()
	assert.Contains(t, out, "Rendered 2 files to /p/.rendering (render job-1)")
	assert.Contains(t, out, "song.wav")
	assert.Contains(t, out, digest[:16])
	assert.NotContains(t, out, digest[:17])
}
