package render

// MixInto adds source, scaled by gain, into target starting at offset.
//
// Samples that would land before index 0 or at or beyond len(target) are
// dropped. Returns the number of samples written.
func MixInto(target, source []float32, offset int, gain float32) int {
	begin := 0
	if offset < 0 {
		begin = -offset
	}
	end := len(source)
	if room := len(target) - offset; room < end {
		end = room
	}
	if begin >= end {
		return 0
	}

	dst := target[offset+begin : offset+end]
	for i, s := range source[begin:end] {
		dst[i] += s * gain
	}
	return end - begin
}
