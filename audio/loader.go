package audio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// LoadClip decodes the audio file at path, choosing the decoder from the file
// extension: .wav for PCM WAV, .opus for Ogg Opus and .ogg for Ogg Opus or
// Ogg Vorbis as identified by the stream header.
// The clip is named after the file's base name.
func LoadClip(path string) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open clip: %w", err)
	}
	defer f.Close()

	name := filepath.Base(path)
	ext := strings.ToLower(filepath.Ext(path))

	var clip *Clip
	switch ext {
	case ".wav", ".wave":
		clip, err = DecodeWAV(f, name)
	case ".ogg":
		clip, err = DecodeOgg(f, name)
	case ".opus":
		clip, err = DecodeOggOpus(f, name)
	default:
		return nil, fmt.Errorf("%w: %s: unknown extension %q", ErrUnsupportedFormat, name, ext)
	}
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "LoadClip",
			"path":     path,
			"error":    err.Error(),
		}).Error("Failed to load clip")
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"function": "LoadClip",
		"path":     path,
		"format":   clip.Format.String(),
		"duration": clip.Duration().String(),
	}).Info("Loaded clip")

	return clip, nil
}
