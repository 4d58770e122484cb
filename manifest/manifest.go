package manifest

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/blake2b"
)

const (
	// FileName is the manifest file written next to the rendered audio.
	FileName = "render.json"

	// wavHeaderSize is the canonical PCM WAV header length.
	wavHeaderSize = 44
)

// Entry describes one rendered output file.
type Entry struct {
	Name      string `json:"name"`
	File      string `json:"file"`
	Channels  int    `json:"channels"`
	Frequency int    `json:"frequency"`
	Frames    int    `json:"frames"`
	Digest    string `json:"blake2b"`
}

// Manifest describes a complete render.
type Manifest struct {
	RenderID    string    `json:"render_id"`
	CreatedAt   time.Time `json:"created_at"`
	StartTiming int       `json:"start_timing"`
	EndTiming   int       `json:"end_timing"`
	AudioOffset int       `json:"audio_offset"`
	LeadInMs    int       `json:"lead_in_ms"`
	Transition  bool      `json:"transition"`
	InputMode   string    `json:"input_mode"`
	// RenderMs is the wall time from New to Finish.
	RenderMs int64   `json:"render_ms"`
	Files    []Entry `json:"files"`

	clock TimeProvider
}

// Digest returns the hex BLAKE2b-256 digest of data.
func Digest(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// New creates an empty manifest stamped with a fresh render ID.
// A nil tp uses the package default time provider.
func New(tp TimeProvider) *Manifest {
	if tp == nil {
		tp = defaultTimeProvider()
	}
	return &Manifest{
		RenderID:  uuid.NewString(),
		CreatedAt: tp.Now().UTC(),
		clock:     tp,
	}
}

// Finish records the time elapsed since the manifest was created.
func (m *Manifest) Finish() {
	tp := m.clock
	if tp == nil {
		tp = defaultTimeProvider()
	}
	m.RenderMs = tp.Since(m.CreatedAt).Milliseconds()
}

// Add records an output file and the digest of its PCM payload.
func (m *Manifest) Add(name, file string, channels, frequency, frames int, pcm []byte) {
	m.Files = append(m.Files, Entry{
		Name:      name,
		File:      file,
		Channels:  channels,
		Frequency: frequency,
		Frames:    frames,
		Digest:    Digest(pcm),
	})
}

// Lookup returns the entry for a stream name.
func (m *Manifest) Lookup(name string) (Entry, bool) {
	for _, e := range m.Files {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// Write stores the manifest as indented JSON at path.
func (m *Manifest) Write(path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"function":  "Manifest.Write",
		"path":      path,
		"render_id": m.RenderID,
		"files":     len(m.Files),
	}).Info("Wrote render manifest")

	return nil
}

// Read loads a manifest written by Write.
func Read(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, path, err)
	}
	return &m, nil
}

// Verify checks every entry against the WAV file of the same name in dir.
// The digest covers the PCM payload after the 44-byte header.
func (m *Manifest) Verify(dir string) error {
	for _, e := range m.Files {
		path := filepath.Join(dir, e.File)
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("verify %s: %w", e.Name, err)
		}
		if len(data) < wavHeaderSize {
			return fmt.Errorf("%w: %s: file shorter than a wav header", ErrDigestMismatch, e.File)
		}
		if got := Digest(data[wavHeaderSize:]); got != e.Digest {
			logrus.WithFields(logrus.Fields{
				"function": "Manifest.Verify",
				"file":     e.File,
				"expected": e.Digest,
				"actual":   got,
			}).Warn("Rendered file digest mismatch")
			return fmt.Errorf("%w: %s", ErrDigestMismatch, e.File)
		}
	}
	return nil
}
