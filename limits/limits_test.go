package limits

import (
	"errors"
	"testing"
)

// TestValidateDuration tests the duration validation function
func TestValidateDuration(t *testing.T) {
	tests := []struct {
		name    string
		ms      int
		wantErr error
	}{
		{"zero", 0, ErrDurationEmpty},
		{"negative", -10, ErrDurationEmpty},
		{"one millisecond", 1, nil},
		{"typical song", 180000, nil},
		{"at limit", MaxRenderDurationMs, nil},
		{"over limit", MaxRenderDurationMs + 1, ErrDurationTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDuration(tt.ms)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateDuration(%d) unexpected error: %v", tt.ms, err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateDuration(%d) = %v, want %v", tt.ms, err, tt.wantErr)
			}
		})
	}
}

// TestValidateFormat tests channel and frequency bounds
func TestValidateFormat(t *testing.T) {
	tests := []struct {
		name      string
		channels  int
		frequency int
		wantErr   error
	}{
		{"mono 44.1k", 1, 44100, nil},
		{"stereo 48k", 2, 48000, nil},
		{"max channels", MaxChannels, MaxFrequency, nil},
		{"min frequency", 1, MinFrequency, nil},
		{"no channels", 0, 44100, ErrInvalidChannels},
		{"too many channels", MaxChannels + 1, 44100, ErrInvalidChannels},
		{"frequency too low", 2, MinFrequency - 1, ErrInvalidFrequency},
		{"frequency too high", 2, MaxFrequency + 1, ErrInvalidFrequency},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFormat(tt.channels, tt.frequency)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateFormat(%d, %d) unexpected error: %v", tt.channels, tt.frequency, err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateFormat(%d, %d) = %v, want %v", tt.channels, tt.frequency, err, tt.wantErr)
			}
		})
	}
}

// TestValidateBufferSize tests the absolute buffer cap
func TestValidateBufferSize(t *testing.T) {
	if err := ValidateBufferSize(0); err != nil {
		t.Errorf("empty buffer should be valid, got %v", err)
	}
	if err := ValidateBufferSize(MaxBufferSamples); err != nil {
		t.Errorf("buffer at limit should be valid, got %v", err)
	}
	if err := ValidateBufferSize(MaxBufferSamples + 1); !errors.Is(err, ErrBufferTooLarge) {
		t.Errorf("buffer over limit: got %v, want ErrBufferTooLarge", err)
	}
	if err := ValidateBufferSize(-1); !errors.Is(err, ErrBufferTooLarge) {
		t.Errorf("negative buffer: got %v, want ErrBufferTooLarge", err)
	}
}

// TestLimitHierarchy verifies that the largest legal render fits the buffer cap
// when measured in frames of one channel.
func TestLimitHierarchy(t *testing.T) {
	frames := int64(MaxRenderDurationMs) / 1000 * MaxFrequency
	if frames > MaxBufferSamples {
		t.Errorf("one-channel frame count %d exceeds MaxBufferSamples %d", frames, int64(MaxBufferSamples))
	}
	if MinFrequency >= MaxFrequency {
		t.Errorf("MinFrequency (%d) >= MaxFrequency (%d)", MinFrequency, MaxFrequency)
	}
}
