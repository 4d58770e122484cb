package audio

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"
	"github.com/sirupsen/logrus"
)

// oggPageHeaderSize is the fixed part of an Ogg page header; the segment
// table follows it.
const oggPageHeaderSize = 27

var (
	oggCapturePattern = []byte("OggS")
	opusHeadMagic     = []byte("OpusHead")
	vorbisIDMagic     = []byte("\x01vorbis")
)

// DecodeOgg decodes an Ogg stream, choosing Opus or Vorbis from the
// identification header in the first page.
func DecodeOgg(r io.Reader, name string) (*Clip, error) {
	br := bufio.NewReader(r)
	payload, err := peekFirstOggPayload(br)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnsupportedFormat, name, err)
	}

	switch {
	case bytes.HasPrefix(payload, opusHeadMagic):
		return DecodeOggOpus(br, name)
	case bytes.HasPrefix(payload, vorbisIDMagic):
		return DecodeOggVorbis(br, name)
	default:
		return nil, fmt.Errorf("%w: %s: unknown ogg codec", ErrUnsupportedFormat, name)
	}
}

// peekFirstOggPayload returns the start of the first page's payload without
// consuming it.
func peekFirstOggPayload(br *bufio.Reader) ([]byte, error) {
	header, err := br.Peek(oggPageHeaderSize)
	if err != nil {
		return nil, fmt.Errorf("short ogg page header: %w", err)
	}
	if !bytes.Equal(header[:4], oggCapturePattern) {
		return nil, errors.New("missing ogg capture pattern")
	}

	segments := int(header[26])
	buf, err := br.Peek(oggPageHeaderSize + segments)
	if err != nil {
		return nil, fmt.Errorf("short ogg segment table: %w", err)
	}
	size := 0
	for _, s := range buf[oggPageHeaderSize:] {
		size += int(s)
	}
	if size > len(opusHeadMagic) {
		size = len(opusHeadMagic)
	}

	buf, err = br.Peek(oggPageHeaderSize + segments + size)
	if err != nil {
		return nil, fmt.Errorf("short ogg page: %w", err)
	}
	return buf[oggPageHeaderSize+segments:], nil
}

// DecodeOggVorbis decodes an Ogg Vorbis stream into a clip at the stream's
// own rate and channel layout.
func DecodeOggVorbis(r io.Reader, name string) (*Clip, error) {
	samples, vf, err := oggvorbis.ReadAll(r)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "DecodeOggVorbis",
			"clip":     name,
			"error":    err.Error(),
		}).Error("Vorbis decode failed")
		return nil, fmt.Errorf("%w: %s: %v", ErrUnsupportedFormat, name, err)
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("%w: %s: no vorbis samples", ErrEmptyClip, name)
	}

	format := Format{Channels: vf.Channels, Frequency: vf.SampleRate}
	clip, err := NewClip(name, format, samples)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"function":        "DecodeOggVorbis",
		"clip":            name,
		"format":          format.String(),
		"nominal_bitrate": vf.Bitrate.Nominal,
		"frames":          clip.Frames(),
	}).Debug("Decoded ogg vorbis clip")

	return clip, nil
}
