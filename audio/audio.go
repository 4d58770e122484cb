package audio

import (
	"fmt"
	"time"

	"github.com/opd-ai/chartrender/limits"
	"github.com/sirupsen/logrus"
)

// Format describes the layout of interleaved PCM samples.
type Format struct {
	Channels  int // interleaved channel count (1=mono, 2=stereo)
	Frequency int // sample rate in Hz
}

// String returns a compact representation such as "2ch/44100Hz".
func (f Format) String() string {
	return fmt.Sprintf("%dch/%dHz", f.Channels, f.Frequency)
}

// Validate checks the format against the render limits.
func (f Format) Validate() error {
	if err := limits.ValidateFormat(f.Channels, f.Frequency); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return nil
}

// Clip is a decoded audio asset: interleaved float samples in [-1, 1].
//
// len(Samples) is always a multiple of Channels. Clips are treated as
// read-only once decoded; every accessor returns a copy.
type Clip struct {
	Name string
	Format
	Samples []float32
}

// NewClip creates a clip from interleaved samples, validating the format and
// trimming a trailing partial frame.
func NewClip(name string, format Format, samples []float32) (*Clip, error) {
	if err := format.Validate(); err != nil {
		return nil, fmt.Errorf("clip %q: %w", name, err)
	}
	if err := limits.ValidateBufferSize(int64(len(samples))); err != nil {
		return nil, fmt.Errorf("clip %q: %w", name, err)
	}
	if rem := len(samples) % format.Channels; rem != 0 {
		logrus.WithFields(logrus.Fields{
			"function": "NewClip",
			"clip":     name,
			"samples":  len(samples),
			"channels": format.Channels,
		}).Warn("Dropping trailing partial frame")
		samples = samples[:len(samples)-rem]
	}
	return &Clip{Name: name, Format: format, Samples: samples}, nil
}

// Frames returns the number of sample frames (samples per channel).
func (c *Clip) Frames() int {
	if c == nil || c.Channels == 0 {
		return 0
	}
	return len(c.Samples) / c.Channels
}

// Duration returns the playback length of the clip.
func (c *Clip) Duration() time.Duration {
	if c == nil || c.Frequency == 0 {
		return 0
	}
	return time.Duration(c.Frames()) * time.Second / time.Duration(c.Frequency)
}

// Data returns a copy of all channels*frames samples of the clip.
func (c *Clip) Data() []float32 {
	if c == nil {
		return nil
	}
	out := make([]float32, len(c.Samples))
	copy(out, c.Samples)
	return out
}

// Window extracts the samples covering [startMs, endMs] of the clip, preceded
// by leadInMs of silence.
//
// A negative startMs is treated as additional lead-in: reading starts at the
// beginning of the clip and the valid samples are shifted later in the
// output. The output holds FrameCount(endMs-startMs+leadInMs) frames; any part
// of the window the clip does not cover is zero. The clip is never read out
// of bounds.
func (c *Clip) Window(startMs, endMs, leadInMs int) []float32 {
	start := startMs
	lead := leadInMs
	if start < 0 {
		lead += -start
		start = 0
	}

	frames := FrameCount(endMs-start+lead, c.Frequency)
	out := make([]float32, frames*c.Channels)

	shift := floorDiv(int64(lead)*int64(c.Frequency), 1000) * int64(c.Channels)
	read := floorDiv(int64(start)*int64(c.Frequency), 1000) * int64(c.Channels)

	copied := 0
	for i := shift; i < int64(len(out)); i++ {
		src := read + i - shift
		if src >= int64(len(c.Samples)) {
			break
		}
		out[i] = c.Samples[src]
		copied++
	}

	logrus.WithFields(logrus.Fields{
		"function":   "Clip.Window",
		"clip":       c.Name,
		"start_ms":   startMs,
		"end_ms":     endMs,
		"lead_in_ms": leadInMs,
		"read_index": read,
		"shift":      shift,
		"length":     len(out),
		"copied":     copied,
	}).Debug("Extracted clip window")

	return out
}

// FrameCount returns ceil(durationMs/1000 * frequency), the number of frames
// needed to hold durationMs of audio. Non-positive durations yield 0.
func FrameCount(durationMs, frequency int) int {
	if durationMs <= 0 || frequency <= 0 {
		return 0
	}
	n := int64(durationMs) * int64(frequency)
	return int((n + 999) / 1000)
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// MsToFrame converts a millisecond position to a frame index with
// floor(ms/1000 * frequency) semantics.
func MsToFrame(ms, frequency int) int {
	return int(floorDiv(int64(ms)*int64(frequency), 1000))
}
