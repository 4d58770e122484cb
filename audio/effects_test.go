package audio

import (
	"errors"
	"math"
	"testing"
)

func TestGainEffect_NewGainEffect(t *testing.T) {
	tests := []struct {
		name    string
		gain    float32
		wantErr bool
	}{
		{name: "valid gain zero", gain: 0.0},
		{name: "valid gain unity", gain: 1.0},
		{name: "valid gain amplification", gain: 2.0},
		{name: "valid gain maximum", gain: 4.0},
		{name: "invalid negative gain", gain: -0.5, wantErr: true},
		{name: "invalid too high gain", gain: 5.0, wantErr: true},
		{name: "invalid NaN gain", gain: float32(math.NaN()), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			effect, err := NewGainEffect(tt.gain)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidGain) {
					t.Errorf("NewGainEffect() error = %v, want ErrInvalidGain", err)
				}
				return
			}
			if err != nil {
				t.Errorf("NewGainEffect() unexpected error: %v", err)
				return
			}
			if effect.GetGain() != tt.gain {
				t.Errorf("NewGainEffect() gain = %f, want %f", effect.GetGain(), tt.gain)
			}
		})
	}
}

func TestGainEffect_Process(t *testing.T) {
	tests := []struct {
		name  string
		gain  float32
		input []float32
		want  []float32
	}{
		{
			name:  "unity gain",
			gain:  1.0,
			input: []float32{0.25, -0.5, 1},
			want:  []float32{0.25, -0.5, 1},
		},
		{
			name:  "half gain",
			gain:  0.5,
			input: []float32{0.5, -1, 0},
			want:  []float32{0.25, -0.5, 0},
		},
		{
			name:  "silence",
			gain:  0,
			input: []float32{0.5, -1},
			want:  []float32{0, 0},
		},
		{
			name:  "no clipping",
			gain:  2,
			input: []float32{0.75},
			want:  []float32{1.5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			effect, err := NewGainEffect(tt.gain)
			if err != nil {
				t.Fatalf("NewGainEffect() unexpected error: %v", err)
			}
			got := effect.Process(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("Process() length = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Process()[%d] = %f, want %f", i, got[i], tt.want[i])
				}
			}
		})
	}
}
