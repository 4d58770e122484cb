package audio

import (
	"fmt"
	"io"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/sirupsen/logrus"
)

const (
	// wavFormatPCM is the WAVE_FORMAT_PCM category code.
	wavFormatPCM = 1

	// pcmBitDepth is the bit depth of every rendered file.
	pcmBitDepth = 16
)

// WriteWAV writes 16-bit PCM samples as a canonical uncompressed WAV
// container (RIFF header, fmt chunk, data chunk).
//
// The header is always written, so an empty pcm slice still yields a valid
// file with an empty data chunk.
func WriteWAV(w io.WriteSeeker, pcm []int16, f Format) error {
	if err := f.Validate(); err != nil {
		return err
	}

	data := make([]int, len(pcm))
	for i, s := range pcm {
		data[i] = int(s)
	}
	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: f.Channels,
			SampleRate:  f.Frequency,
		},
		Data:           data,
		SourceBitDepth: pcmBitDepth,
	}

	enc := wav.NewEncoder(w, f.Frequency, pcmBitDepth, f.Channels, wavFormatPCM)
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("write wav data: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalize wav header: %w", err)
	}
	return nil
}

// WriteWAVFile creates (or truncates) path and writes pcm into it as WAV.
// The write is not atomic: a failure leaves a partial file behind.
func WriteWAVFile(path string, pcm []int16, f Format) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	if err := WriteWAV(file, pcm, f); err != nil {
		file.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}

	logrus.WithFields(logrus.Fields{
		"function": "WriteWAVFile",
		"path":     path,
		"format":   f.String(),
		"samples":  len(pcm),
	}).Info("Wrote wav file")

	return nil
}

// DecodeWAV decodes an integer PCM WAV stream into a clip normalized to
// [-1, 1). 8, 16, 24 and 32-bit samples are supported.
func DecodeWAV(r io.ReadSeeker, name string) (*Clip, error) {
	dec := wav.NewDecoder(r)
	dec.ReadInfo()
	if err := dec.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnsupportedFormat, name, err)
	}
	if dec.NumChans == 0 {
		return nil, fmt.Errorf("%w: %s: missing fmt chunk", ErrUnsupportedFormat, name)
	}
	if dec.WavAudioFormat != wavFormatPCM {
		return nil, fmt.Errorf("%w: %s: wave format %d is not integer PCM", ErrUnsupportedFormat, name, dec.WavAudioFormat)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnsupportedFormat, name, err)
	}

	bitDepth := int(dec.BitDepth)
	samples := make([]float32, len(buf.Data))
	switch bitDepth {
	case 8:
		// 8-bit WAV is unsigned with a 128 midpoint
		for i, v := range buf.Data {
			samples[i] = float32(v-128) / 128
		}
	case 16, 24, 32:
		scale := float64(int64(1) << (bitDepth - 1))
		for i, v := range buf.Data {
			samples[i] = float32(float64(v) / scale)
		}
	default:
		return nil, fmt.Errorf("%w: %s: %d-bit samples", ErrUnsupportedFormat, name, bitDepth)
	}

	clip, err := NewClip(name, Format{Channels: int(dec.NumChans), Frequency: int(dec.SampleRate)}, samples)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"function":  "DecodeWAV",
		"clip":      name,
		"format":    clip.Format.String(),
		"bit_depth": bitDepth,
		"frames":    clip.Frames(),
	}).Debug("Decoded wav clip")

	return clip, nil
}
