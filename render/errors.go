package render

import (
	"errors"
	"fmt"

	"github.com/opd-ai/chartrender/audio"
)

// Sentinel errors for render operations.
// These errors enable reliable error classification using errors.Is().
var (
	// ErrFormatMismatch indicates a built-in clip (arc sound or transition cue)
	// whose format differs from the tap sound.
	ErrFormatMismatch = errors.New("internal audio clips have differing channel count or frequency")

	// ErrIncompatibleSfx indicates a custom sound effect clip whose format
	// differs from the tap sound.
	ErrIncompatibleSfx = errors.New("incompatible sfx clip")

	// ErrInvalidWindow indicates a render window that does not end after it starts.
	ErrInvalidWindow = errors.New("invalid render window")

	// ErrInvalidSettings indicates an effect or music volume out of range.
	ErrInvalidSettings = errors.New("invalid render settings")

	// ErrMissingClip indicates a required audio clip was not supplied.
	ErrMissingClip = errors.New("missing audio clip")

	// ErrMissingTransition indicates a transition lead-in was requested without a sequence.
	ErrMissingTransition = errors.New("transition requested without a transition sequence")

	// ErrInvalidTransition indicates a transition sequence with a negative phase.
	ErrInvalidTransition = errors.New("invalid transition sequence")

	// ErrMissingChart indicates a render context without a chart.
	ErrMissingChart = errors.New("render context has no chart")

	// ErrMissingProject indicates a render context without a project path.
	ErrMissingProject = errors.New("render context has no project path")

	// ErrUnknownInputMode indicates an input mode name that is not recognized.
	ErrUnknownInputMode = errors.New("unknown input mode")
)

// FormatError reports a clip whose channel count or sample rate differs from
// the primary format.
type FormatError struct {
	// Stream names the offending clip: "arc", "render start",
	// "gameplay load complete", or the custom sound effect name.
	Stream string
	// Sfx is true for custom sound effect clips.
	Sfx      bool
	Expected audio.Format
	Actual   audio.Format
}

func (e *FormatError) Error() string {
	if e.Sfx {
		return fmt.Sprintf("sfx %q is incompatible: expected %d channels at %d Hz, got %d channels at %d Hz",
			e.Stream, e.Expected.Channels, e.Expected.Frequency, e.Actual.Channels, e.Actual.Frequency)
	}
	return fmt.Sprintf("%s clip format %s differs from tap clip format %s", e.Stream, e.Actual, e.Expected)
}

// Unwrap returns ErrIncompatibleSfx for sound effect clips and
// ErrFormatMismatch otherwise.
func (e *FormatError) Unwrap() error {
	if e.Sfx {
		return ErrIncompatibleSfx
	}
	return ErrFormatMismatch
}
