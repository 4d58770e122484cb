package render

import (
	"testing"

	"github.com/opd-ai/chartrender/audio"
	"github.com/opd-ai/chartrender/chart"
	"github.com/stretchr/testify/require"
)

var (
	mono8k   = audio.Format{Channels: 1, Frequency: 8000}
	stereo8k = audio.Format{Channels: 2, Frequency: 8000}
)

func newClip(t *testing.T, name string, f audio.Format, samples ...float32) *audio.Clip {
	t.Helper()
	clip, err := audio.NewClip(name, f, samples)
	require.NoError(t, err)
	return clip
}

// constClip returns a clip of n frames that all hold v.
func constClip(t *testing.T, name string, f audio.Format, frames int, v float32) *audio.Clip {
	t.Helper()
	samples := make([]float32, frames*f.Channels)
	for i := range samples {
		samples[i] = v
	}
	return newClip(t, name, f, samples...)
}

func registeredSet(names ...string) func(string) bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return func(name string) bool { return set[name] }
}

func chartWith(build func(c *chart.Chart)) *chart.Chart {
	c := chart.New()
	build(c)
	return c
}

func assertZero(t *testing.T, buf []float32, from, to int) {
	t.Helper()
	for i := from; i < to; i++ {
		if buf[i] != 0 {
			t.Fatalf("sample %d = %f, want 0", i, buf[i])
		}
	}
}
