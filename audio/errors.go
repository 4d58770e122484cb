package audio

import "errors"

// Sentinel errors for audio package operations.
// These errors enable reliable error classification using errors.Is().
var (
	// ErrUnsupportedFormat indicates a container or encoding that cannot be decoded.
	ErrUnsupportedFormat = errors.New("unsupported audio format")

	// ErrInvalidFormat indicates a channel count or sample rate outside the render limits.
	ErrInvalidFormat = errors.New("invalid audio format")

	// ErrEmptyClip indicates a decoded clip with no samples where samples are required.
	ErrEmptyClip = errors.New("empty audio clip")

	// ErrInvalidGain indicates a gain outside 0..MaxGain.
	ErrInvalidGain = errors.New("invalid gain")
)
