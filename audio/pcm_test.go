package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodePCM16(t *testing.T) {
	tests := []struct {
		name  string
		input float32
		want  int16
	}{
		{"zero", 0, 0},
		{"full scale", 1, 32767},
		{"negative full scale", -1, -32767},
		{"half", 0.5, 16383},
		{"truncates toward zero", -0.5, -16383},
		{"wraps above full scale", 1.5, -16386},
		{"wraps below full scale", -2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EncodePCM16([]float32{tt.input})
			assert.Equal(t, tt.want, got[0])
		})
	}
}

func TestEncodePCM16WrapIsNotSaturation(t *testing.T) {
	pcm := EncodePCM16([]float32{2})
	// 2*32767 = 65534 wraps to -2
	assert.Equal(t, int16(-2), pcm[0])
}

func TestPCM16Bytes(t *testing.T) {
	b := PCM16Bytes([]int16{1, -1, 0x1234})
	assert.Equal(t, []byte{0x01, 0x00, 0xFF, 0xFF, 0x34, 0x12}, b)
	assert.Empty(t, PCM16Bytes(nil))
}
