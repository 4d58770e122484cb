package render

import (
	"fmt"

	"github.com/opd-ai/chartrender/audio"
	"github.com/opd-ai/chartrender/limits"
)

// Window is the exported span of the chart in milliseconds.
//
// AudioOffset is a global calibration offset: a note at timing t sounds at
// t+AudioOffset in the rendered audio.
type Window struct {
	StartTiming int
	EndTiming   int
	AudioOffset int
}

// NewWindow creates a validated render window.
func NewWindow(startTiming, endTiming, audioOffset int) (Window, error) {
	w := Window{StartTiming: startTiming, EndTiming: endTiming, AudioOffset: audioOffset}
	if err := w.Validate(); err != nil {
		return Window{}, err
	}
	return w, nil
}

// Validate checks that the window ends after it starts and fits the render limits.
func (w Window) Validate() error {
	if w.EndTiming <= w.StartTiming {
		return fmt.Errorf("%w: end %d is not after start %d", ErrInvalidWindow, w.EndTiming, w.StartTiming)
	}
	if err := limits.ValidateDuration(w.DurationMs()); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidWindow, err)
	}
	return nil
}

// DurationMs returns EndTiming-StartTiming.
func (w Window) DurationMs() int {
	return w.EndTiming - w.StartTiming
}

// Contains reports whether a note at timing falls in
// [StartTiming-AudioOffset, EndTiming-AudioOffset].
func (w Window) Contains(timing int) bool {
	return timing >= w.StartTiming-w.AudioOffset && timing <= w.EndTiming-w.AudioOffset
}

// String implements fmt.Stringer.
func (w Window) String() string {
	return fmt.Sprintf("[%d, %d] offset %d", w.StartTiming, w.EndTiming, w.AudioOffset)
}

// TimingToSampleIndex maps a note timing to the interleaved sample index at
// which its sound starts:
//
//	floor((timing - StartTiming + AudioOffset + leadInMs) * frequency / 1000) * channels
//
// The arithmetic is exact integer math, so the same inputs always land on
// the same sample.
func TimingToSampleIndex(timing int, w Window, leadInMs int, f audio.Format) int {
	ms := timing - w.StartTiming + w.AudioOffset + leadInMs
	return audio.MsToFrame(ms, f.Frequency) * f.Channels
}
