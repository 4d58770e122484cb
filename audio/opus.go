package audio

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/pion/opus"
	"github.com/pion/webrtc/v4/pkg/media/oggreader"
	"github.com/sirupsen/logrus"
)

const (
	// opusClockRate is the rate of every decoded Opus clip and of its
	// durations, pre-skip and granule positions.
	opusClockRate = 48000

	// maxOpusPacketFrames is the longest packet (120ms) at the clock rate.
	maxOpusPacketFrames = 5760

	// decoderUpsample is the fixed repeat factor the SILK decoder applies to
	// each internal sample regardless of bandwidth.
	decoderUpsample = 3
)

// packetDecoder decodes a single Opus packet into float32 PCM.
// *opus.Decoder satisfies it.
type packetDecoder interface {
	DecodeFloat32(in []byte, out []float32) (opus.Bandwidth, bool, error)
}

// frameSizes48k maps the TOC configuration number to its frame duration in
// 48kHz samples (RFC 6716 section 3.1).
var frameSizes48k = [32]int{
	// SILK NB, MB, WB: 10, 20, 40, 60 ms
	480, 960, 1920, 2880,
	480, 960, 1920, 2880,
	480, 960, 1920, 2880,
	// Hybrid SWB, FB: 10, 20 ms
	480, 960,
	480, 960,
	// CELT NB, WB, SWB, FB: 2.5, 5, 10, 20 ms
	120, 240, 480, 960,
	120, 240, 480, 960,
	120, 240, 480, 960,
	120, 240, 480, 960,
}

// packetDuration48k returns the number of 48kHz samples per channel carried
// by an Opus packet, read from its TOC byte.
func packetDuration48k(packet []byte) (int, error) {
	if len(packet) == 0 {
		return 0, errors.New("empty opus packet")
	}
	toc := packet[0]
	frameSize := frameSizes48k[toc>>3]

	var frames int
	switch toc & 0x03 {
	case 0:
		frames = 1
	case 1, 2:
		frames = 2
	default:
		if len(packet) < 2 {
			return 0, errors.New("opus packet missing frame count byte")
		}
		frames = int(packet[1] & 0x3F)
	}

	duration := frames * frameSize
	if duration > maxOpusPacketFrames {
		return 0, fmt.Errorf("opus packet duration %d exceeds 120ms", duration)
	}
	return duration, nil
}

// DecodeOggOpus decodes an Ogg Opus stream into a mono 48kHz clip.
//
// Each Ogg page is expected to carry one complete SILK packet. Packets coded
// below wideband are stretched to 48kHz by sample repetition. The stream
// pre-skip is removed and the end is trimmed to the final granule position.
func DecodeOggOpus(r io.Reader, name string) (*Clip, error) {
	decoder := opus.NewDecoder()
	return decodeOggOpus(r, name, &decoder)
}

func decodeOggOpus(r io.Reader, name string, decoder packetDecoder) (*Clip, error) {
	reader, header, err := oggreader.NewWith(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnsupportedFormat, name, err)
	}

	logrus.WithFields(logrus.Fields{
		"function":    "DecodeOggOpus",
		"clip":        name,
		"channels":    header.Channels,
		"pre_skip":    header.PreSkip,
		"input_rate":  header.SampleRate,
		"output_gain": header.OutputGain,
	}).Debug("Read ogg opus header")

	out := make([]float32, maxOpusPacketFrames)
	var (
		samples   []float32
		bandwidth opus.Bandwidth
		granule   uint64
		packets   int
	)

	for {
		payload, page, err := reader.ParseNextPage()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s: page %d: %v", ErrUnsupportedFormat, name, packets, err)
		}
		if len(payload) == 0 || bytes.HasPrefix(payload, []byte("OpusTags")) {
			continue
		}
		granule = page.GranulePosition

		duration, err := packetDuration48k(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: packet %d: %v", ErrUnsupportedFormat, name, packets, err)
		}

		bw, isStereo, err := decoder.DecodeFloat32(payload, out)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"function": "DecodeOggOpus",
				"clip":     name,
				"packet":   packets,
				"error":    err.Error(),
			}).Error("Opus decode failed")
			return nil, fmt.Errorf("%s: opus decode failed: %w", name, err)
		}
		if isStereo {
			return nil, fmt.Errorf("%w: %s: packet %d is stereo", ErrUnsupportedFormat, name, packets)
		}

		rate := bw.SampleRate()
		if rate <= 0 || opusClockRate%rate != 0 {
			return nil, fmt.Errorf("%w: %s: packet %d has bandwidth %s",
				ErrUnsupportedFormat, name, packets, bw)
		}
		if packets == 0 {
			bandwidth = bw
		}

		// The decoder writes every coded sample three times; undo that and
		// repeat up to the clock rate instead.
		coded := duration * rate / opusClockRate
		if coded*decoderUpsample > len(out) {
			coded = len(out) / decoderUpsample
		}
		repeat := opusClockRate / rate
		for i := 0; i < coded; i++ {
			s := out[i*decoderUpsample]
			for j := 0; j < repeat; j++ {
				samples = append(samples, s)
			}
		}
		packets++
	}

	if packets == 0 {
		return nil, fmt.Errorf("%w: %s: no opus packets", ErrEmptyClip, name)
	}

	skip := int(header.PreSkip)
	if skip > len(samples) {
		skip = len(samples)
	}
	samples = samples[skip:]

	if granule > uint64(header.PreSkip) {
		if end := granule - uint64(header.PreSkip); end < uint64(len(samples)) {
			samples = samples[:end]
		}
	}

	format := Format{Channels: 1, Frequency: opusClockRate}
	clip, err := NewClip(name, format, samples)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"function":  "DecodeOggOpus",
		"clip":      name,
		"bandwidth": bandwidth.String(),
		"format":    format.String(),
		"packets":   packets,
		"frames":    clip.Frames(),
	}).Debug("Decoded ogg opus clip")

	return clip, nil
}
