package render

import "fmt"

// Transition describes the intro sequence played before the chart starts.
type Transition interface {
	// FullSequenceSeconds is the length of the whole lead-in.
	FullSequenceSeconds() float64
	// FullSequenceMs is FullSequenceSeconds in whole milliseconds.
	FullSequenceMs() int
	// ShowDurationSeconds is how long the intro is shown.
	ShowDurationSeconds() float64
	// WaitDurationSeconds is the pause between the intro and gameplay.
	WaitDurationSeconds() float64
}

// TransitionSequence is a fixed intro made of three phases.
// The "gameplay load complete" cue plays when Show and Wait have elapsed.
type TransitionSequence struct {
	ShowMs int
	WaitMs int
	HideMs int
}

// NewTransitionSequence creates a transition with non-negative phases.
func NewTransitionSequence(showMs, waitMs, hideMs int) (*TransitionSequence, error) {
	if showMs < 0 || waitMs < 0 || hideMs < 0 {
		return nil, fmt.Errorf("%w: negative phase (show %d, wait %d, hide %d)", ErrInvalidTransition, showMs, waitMs, hideMs)
	}
	return &TransitionSequence{ShowMs: showMs, WaitMs: waitMs, HideMs: hideMs}, nil
}

// FullSequenceMs implements Transition.
func (t *TransitionSequence) FullSequenceMs() int { return t.ShowMs + t.WaitMs + t.HideMs }

// FullSequenceSeconds implements Transition.
func (t *TransitionSequence) FullSequenceSeconds() float64 {
	return float64(t.FullSequenceMs()) / 1000
}

// ShowDurationSeconds implements Transition.
func (t *TransitionSequence) ShowDurationSeconds() float64 { return float64(t.ShowMs) / 1000 }

// WaitDurationSeconds implements Transition.
func (t *TransitionSequence) WaitDurationSeconds() float64 { return float64(t.WaitMs) / 1000 }
