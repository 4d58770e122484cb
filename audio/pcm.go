package audio

import "encoding/binary"

// pcm16Scale is the float-to-PCM scale factor (math.MaxInt16).
const pcm16Scale float32 = 32767

// EncodePCM16 converts float samples to signed 16-bit PCM.
//
// Each sample becomes int16(trunc(s * 32767)). Values outside [-1, 1] are not
// clamped: the truncated integer wraps modulo 2^16, matching a fixed-point
// cast rather than saturation. Rendered files are compared bit-for-bit
// against earlier renders, so this must stay as is.
func EncodePCM16(samples []float32) []int16 {
	pcm := make([]int16, len(samples))
	for i, s := range samples {
		pcm[i] = int16(int64(s * pcm16Scale))
	}
	return pcm
}

// PCM16Bytes converts int16 samples to little-endian bytes.
func PCM16Bytes(pcm []int16) []byte {
	buf := make([]byte, len(pcm)*2)
	for i, s := range pcm {
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(s))
	}
	return buf
}
