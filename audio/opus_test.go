package audio

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/pion/opus"
	"github.com/pion/rtp"
	"github.com/pion/webrtc/v4/pkg/media/oggreader"
	"github.com/pion/webrtc/v4/pkg/media/oggwriter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rampDecoder mimics the SILK decoder output layout: 20ms of coded samples
// at the bandwidth rate, each written three times. Coded sample k holds
// (k+1)/1024.
type rampDecoder struct {
	bandwidth opus.Bandwidth
	stereo    bool
	err       error
	calls     int
}

func (d *rampDecoder) DecodeFloat32(in []byte, out []float32) (opus.Bandwidth, bool, error) {
	d.calls++
	if d.err != nil {
		return 0, false, d.err
	}
	coded := d.bandwidth.SampleRate() / 50
	for k := 0; k < 320; k++ {
		var v float32
		if k < coded {
			v = rampSample(k)
		}
		for j := 0; j < 3; j++ {
			out[k*3+j] = v
		}
	}
	return d.bandwidth, d.stereo, nil
}

func rampSample(k int) float32 {
	return float32(k+1) / 1024
}

// oggOpusStream writes packets into an Ogg Opus stream with the default
// 3840-sample pre-skip. The last page carries the end granule position when
// there is more than one packet.
func oggOpusStream(t *testing.T, end uint64, packets ...[]byte) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	w, err := oggwriter.NewWith(&buf, 48000, 1)
	require.NoError(t, err)
	for i, p := range packets {
		// The writer leaves the granule at 1 for the first packet and then
		// advances it by the timestamp delta.
		ts := uint32(2 + i*960)
		if i > 0 && i == len(packets)-1 {
			ts = uint32(end + 1)
		}
		require.NoError(t, w.WriteRTP(&rtp.Packet{
			Header:  rtp.Header{Timestamp: ts, SequenceNumber: uint16(i)},
			Payload: p,
		}))
	}
	return &buf
}

func repeatPacket(p []byte, n int) [][]byte {
	out := make([][]byte, n)
	for i := range out {
		out[i] = p
	}
	return out
}

func TestPacketDuration48k(t *testing.T) {
	tests := []struct {
		name    string
		packet  []byte
		want    int
		wantErr bool
	}{
		{"celt fb 20ms single", []byte{0xF8, 0x00}, 960, false},
		{"silk nb 10ms single", []byte{0x00}, 480, false},
		{"silk wb 20ms single", []byte{0x48}, 960, false},
		{"silk wb 60ms single", []byte{0x58}, 2880, false},
		{"celt nb 2.5ms two frames", []byte{0x81}, 240, false},
		{"hybrid fb 20ms two frames", []byte{0x7A}, 1920, false},
		{"code 3 with count", []byte{0xFB, 0x03}, 2880, false},
		{"code 3 missing count", []byte{0xFB}, 0, true},
		{"code 3 too long", []byte{0xFB, 0x07}, 0, true},
		{"empty", nil, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := packetDuration48k(tt.packet)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeOggOpus(t *testing.T) {
	// SILK wideband, 20ms, mono
	packets := repeatPacket([]byte{0x48, 0x01, 0x02}, 6)
	stream := oggOpusStream(t, 3840+6*960, packets...)
	dec := &rampDecoder{bandwidth: opus.BandwidthWideband}

	clip, err := decodeOggOpus(stream, "song.ogg", dec)
	require.NoError(t, err)

	assert.Equal(t, 6, dec.calls)
	assert.Equal(t, Format{Channels: 1, Frequency: 48000}, clip.Format)
	// 6 packets of 960 samples minus the 3840 sample pre-skip
	require.Equal(t, 1920, clip.Frames())
	for i, s := range clip.Samples {
		want := rampSample(((i + 3840) % 960) / 3)
		if s != want {
			t.Fatalf("sample %d = %f, want %f", i, s, want)
		}
	}
}

func TestDecodeOggOpusNarrowband(t *testing.T) {
	// SILK narrowband, 20ms, mono: 160 coded samples per packet
	packets := repeatPacket([]byte{0x08, 0x01}, 5)
	stream := oggOpusStream(t, 3840+5*960, packets...)

	clip, err := decodeOggOpus(stream, "nb.ogg", &rampDecoder{bandwidth: opus.BandwidthNarrowband})
	require.NoError(t, err)

	assert.Equal(t, 48000, clip.Frequency)
	require.Equal(t, 960, clip.Frames())
	for i, s := range clip.Samples {
		want := rampSample(i / 6)
		if s != want {
			t.Fatalf("sample %d = %f, want %f", i, s, want)
		}
	}
	assert.Equal(t, clip.Samples[0], clip.Samples[5])
	assert.NotEqual(t, clip.Samples[5], clip.Samples[6])
}

func TestDecodeOggOpusEndTrim(t *testing.T) {
	packets := repeatPacket([]byte{0x48, 0x01}, 6)
	stream := oggOpusStream(t, 3840+1000, packets...)

	clip, err := decodeOggOpus(stream, "song.ogg", &rampDecoder{bandwidth: opus.BandwidthWideband})
	require.NoError(t, err)
	assert.Equal(t, 1000, clip.Frames())
}

func TestDecodeOggOpusSilkFile(t *testing.T) {
	clip, err := LoadClip("testdata/tiny.ogg")
	require.NoError(t, err)

	assert.Equal(t, Format{Channels: 1, Frequency: 48000}, clip.Format)
	// final granule 591 minus the 312 sample pre-skip
	require.Equal(t, 279, clip.Frames())

	f, err := os.Open("testdata/tiny.ogg")
	require.NoError(t, err)
	defer f.Close()
	reader, header, err := oggreader.NewWith(f)
	require.NoError(t, err)
	require.Equal(t, uint16(312), header.PreSkip)

	var packet []byte
	for {
		payload, _, err := reader.ParseNextPage()
		require.NoError(t, err)
		if len(payload) > 0 && !bytes.HasPrefix(payload, []byte("OpusTags")) {
			packet = payload
			break
		}
	}

	d := opus.NewDecoder()
	want := make([]float32, 960)
	bw, stereo, err := d.DecodeFloat32(packet, want)
	require.NoError(t, err)
	require.Equal(t, opus.BandwidthWideband, bw)
	require.False(t, stereo)

	silent := true
	for i, s := range clip.Samples {
		if s != want[312+i] {
			t.Fatalf("sample %d = %f, want %f", i, s, want[312+i])
		}
		if s != 0 {
			silent = false
		}
	}
	assert.False(t, silent)
}

func TestDecodeOggOpusErrors(t *testing.T) {
	t.Run("not ogg", func(t *testing.T) {
		_, err := decodeOggOpus(bytes.NewReader([]byte("RIFF....WAVE")), "x", &rampDecoder{})
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})

	t.Run("no packets", func(t *testing.T) {
		_, err := decodeOggOpus(oggOpusStream(t, 0), "x", &rampDecoder{})
		assert.ErrorIs(t, err, ErrEmptyClip)
	})

	t.Run("decoder failure", func(t *testing.T) {
		boom := errors.New("boom")
		stream := oggOpusStream(t, 0, []byte{0x48, 0x01})
		_, err := decodeOggOpus(stream, "x", &rampDecoder{err: boom})
		assert.ErrorIs(t, err, boom)
	})

	t.Run("stereo packet", func(t *testing.T) {
		stream := oggOpusStream(t, 0, []byte{0x4C, 0x01})
		_, err := decodeOggOpus(stream, "x", &rampDecoder{bandwidth: opus.BandwidthWideband, stereo: true})
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})

	t.Run("invalid bandwidth", func(t *testing.T) {
		stream := oggOpusStream(t, 0, []byte{0x48, 0x01})
		_, err := decodeOggOpus(stream, "x", &rampDecoder{})
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})

	t.Run("truncated page", func(t *testing.T) {
		stream := oggOpusStream(t, 0, []byte{0x48, 0x01, 0x02, 0x03})
		truncated := bytes.NewReader(stream.Bytes()[:stream.Len()-2])
		_, err := decodeOggOpus(truncated, "x", &rampDecoder{bandwidth: opus.BandwidthWideband})
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})
}
