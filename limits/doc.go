// Package limits provides centralized size constants and validation functions
// for offline audio renders. It keeps every component that allocates sample
// buffers or accepts clip formats on the same bounds.
//
// # Render Size Hierarchy
//
//   - MaxRenderDurationMs (1 hour): the longest window, lead-in included, that a
//     single render may cover.
//
//   - MinFrequency / MaxFrequency (8 kHz to 192 kHz): accepted clip sample rates.
//
//   - MaxChannels (8): accepted interleaved channel count.
//
//   - MaxBufferSamples: the absolute maximum for any float sample buffer
//     (2^31-1 interleaved samples). Larger requests are rejected before
//     allocation.
//
// # Validation Functions
//
//	if err := limits.ValidateDuration(endMs - startMs); err != nil {
//	    // ErrDurationEmpty or ErrDurationTooLong
//	}
//
//	if err := limits.ValidateFormat(channels, frequency); err != nil {
//	    // ErrInvalidChannels or ErrInvalidFrequency
//	}
//
// All errors wrap a sentinel and carry the offending value and the limit, so
// callers can classify them with errors.Is.
package limits
