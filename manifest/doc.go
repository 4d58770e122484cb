// Package manifest records what a render produced.
//
// A manifest is written as render.json beside the rendered files. It lists
// each output stream with its format, frame count and a BLAKE2b-256 digest of
// its PCM payload, so two renders of the same chart can be compared without
// diffing audio:
//
//	m := manifest.New(nil)
//	m.Add("sfx", "sfx.wav", 1, 44100, frames, pcmBytes)
//	err := m.Write(filepath.Join(dir, manifest.FileName))
//
// Verify re-reads the files and checks their digests. Time is taken from a
// TimeProvider so tests can pin CreatedAt.
package manifest
