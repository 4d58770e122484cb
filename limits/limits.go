package limits

import (
	"errors"
	"fmt"
)

const (
	// MaxRenderDurationMs is the longest render window in milliseconds,
	// including any transition lead-in.
	MaxRenderDurationMs = 60 * 60 * 1000

	// MinFrequency is the lowest accepted sample rate in Hz.
	MinFrequency = 8000

	// MaxFrequency is the highest accepted sample rate in Hz.
	MaxFrequency = 192000

	// MaxChannels is the highest accepted interleaved channel count.
	MaxChannels = 8

	// MaxBufferSamples is the absolute maximum length of any sample buffer
	// (interleaved samples, not frames). It keeps indices within int32 and
	// bounds allocations from corrupt headers. The worst legal format at the
	// longest duration does not fit; such renders fail here instead of in the
	// allocator.
	MaxBufferSamples = 1<<31 - 1
)

var (
	// ErrDurationEmpty indicates a zero or negative duration was provided
	ErrDurationEmpty = errors.New("empty duration")

	// ErrDurationTooLong indicates a duration exceeds MaxRenderDurationMs
	ErrDurationTooLong = errors.New("duration too long")

	// ErrInvalidChannels indicates a channel count outside 1..MaxChannels
	ErrInvalidChannels = errors.New("invalid channel count")

	// ErrInvalidFrequency indicates a sample rate outside MinFrequency..MaxFrequency
	ErrInvalidFrequency = errors.New("invalid frequency")

	// ErrBufferTooLarge indicates a buffer exceeds MaxBufferSamples
	ErrBufferTooLarge = errors.New("buffer too large")
)

// ValidateDuration validates a render duration in milliseconds.
// Returns an error with context if the duration is empty or exceeds the limit.
func ValidateDuration(ms int) error {
	if ms <= 0 {
		return fmt.Errorf("%w: %d ms", ErrDurationEmpty, ms)
	}
	if ms > MaxRenderDurationMs {
		return fmt.Errorf("%w: %d ms exceeds limit %d ms", ErrDurationTooLong, ms, MaxRenderDurationMs)
	}
	return nil
}

// ValidateFormat validates a channel count and sample rate pair.
func ValidateFormat(channels, frequency int) error {
	if channels < 1 || channels > MaxChannels {
		return fmt.Errorf("%w: %d (allowed 1..%d)", ErrInvalidChannels, channels, MaxChannels)
	}
	if frequency < MinFrequency || frequency > MaxFrequency {
		return fmt.Errorf("%w: %d Hz (allowed %d..%d)", ErrInvalidFrequency, frequency, MinFrequency, MaxFrequency)
	}
	return nil
}

// ValidateBufferSize validates an interleaved sample count against MaxBufferSamples.
// A zero-length buffer is valid: a clip may legitimately be silent.
func ValidateBufferSize(samples int64) error {
	if samples < 0 {
		return fmt.Errorf("%w: negative size %d", ErrBufferTooLarge, samples)
	}
	if samples > MaxBufferSamples {
		return fmt.Errorf("%w: size %d exceeds limit %d", ErrBufferTooLarge, samples, int64(MaxBufferSamples))
	}
	return nil
}
