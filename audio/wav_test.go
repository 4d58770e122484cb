package audio

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteWAVFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.wav")
	format := Format{Channels: 2, Frequency: 44100}
	pcm := []int16{0, 16383, -16383, 32767, -32767, 1}

	require.NoError(t, WriteWAVFile(path, pcm, format))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Len(t, raw, 44+len(pcm)*2)
	assert.Equal(t, "RIFF", string(raw[0:4]))
	assert.Equal(t, uint32(len(raw)-8), binary.LittleEndian.Uint32(raw[4:8]))
	assert.Equal(t, "WAVE", string(raw[8:12]))
	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(raw[20:22]), "PCM format tag")
	assert.Equal(t, uint16(2), binary.LittleEndian.Uint16(raw[22:24]))
	assert.Equal(t, uint32(44100), binary.LittleEndian.Uint32(raw[24:28]))
	assert.Equal(t, uint16(16), binary.LittleEndian.Uint16(raw[34:36]))
	assert.Equal(t, "data", string(raw[36:40]))
	assert.Equal(t, uint32(len(pcm)*2), binary.LittleEndian.Uint32(raw[40:44]))
	assert.Equal(t, PCM16Bytes(pcm), raw[44:])

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	clip, err := DecodeWAV(f, "out.wav")
	require.NoError(t, err)
	assert.Equal(t, format, clip.Format)
	require.Len(t, clip.Samples, len(pcm))
	for i, s := range pcm {
		assert.InDelta(t, float64(s)/32768, clip.Samples[i], 1e-9, "sample %d", i)
	}
}

func TestWriteWAVFileEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.wav")
	require.NoError(t, WriteWAVFile(path, nil, Format{Channels: 1, Frequency: 48000}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Len(t, raw, 44)
	assert.Equal(t, uint32(36), binary.LittleEndian.Uint32(raw[4:8]))
	assert.Equal(t, "data", string(raw[36:40]))
	assert.Zero(t, binary.LittleEndian.Uint32(raw[40:44]))
}

func TestWriteWAVRejectsInvalidFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.wav")
	err := WriteWAVFile(path, []int16{1}, Format{Channels: 0, Frequency: 44100})
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestDecodeWAV8Bit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "u8.wav")
	f, err := os.Create(path)
	require.NoError(t, err)

	enc := wav.NewEncoder(f, 8000, 8, 1, 1)
	require.NoError(t, enc.Write(&goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: 8000},
		Data:           []int{0, 128, 192},
		SourceBitDepth: 8,
	}))
	require.NoError(t, enc.Close())
	require.NoError(t, f.Close())

	f, err = os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	clip, err := DecodeWAV(f, "u8.wav")
	require.NoError(t, err)
	assert.Equal(t, []float32{-1, 0, 0.5}, clip.Samples)
}

func TestDecodeWAVRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.wav")
	require.NoError(t, os.WriteFile(path, []byte("definitely not a riff file"), 0o644))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	_, err = DecodeWAV(f, "garbage.wav")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoadClip(t *testing.T) {
	dir := t.TempDir()

	t.Run("wav by extension", func(t *testing.T) {
		path := filepath.Join(dir, "tap.WAV")
		require.NoError(t, WriteWAVFile(path, []int16{16384, -16384}, Format{Channels: 1, Frequency: 22050}))

		clip, err := LoadClip(path)
		require.NoError(t, err)
		assert.Equal(t, "tap.WAV", clip.Name)
		assert.Equal(t, []float32{0.5, -0.5}, clip.Samples)
	})

	t.Run("unknown extension", func(t *testing.T) {
		path := filepath.Join(dir, "tap.mp3")
		require.NoError(t, os.WriteFile(path, []byte{0}, 0o644))
		_, err := LoadClip(path)
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadClip(filepath.Join(dir, "missing.wav"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}
