// Package audio provides the clip model and sample-level I/O for offline
// chart renders.
//
// # Clips
//
// A Clip holds interleaved float samples in [-1, 1] plus its Format (channel
// count and sample rate). Clips are decoded once and then read-only:
//
//	clip, err := audio.LoadClip("assets/tap.wav")
//	data := clip.Data()                  // whole clip, for one-shot effects
//	song := clip.Window(1000, 5000, 500) // [1s, 5s] with 500ms lead-in
//
// Window zero-fills any part of the requested range the clip does not cover
// and treats a negative start as extra lead-in.
//
// # Decoding
//
//   - DecodeWAV: integer PCM WAV (8/16/24/32-bit) via go-audio/wav.
//   - DecodeOggOpus: SILK Ogg Opus via the pion Ogg reader and pion/opus,
//     always mono at 48kHz.
//   - DecodeOggVorbis: Ogg Vorbis via jfreymuth/oggvorbis.
//   - DecodeOgg: sniffs the first Ogg page and picks Opus or Vorbis.
//   - LoadClip: picks a decoder from the file extension.
//
// # Encoding
//
// Rendered buffers are converted with EncodePCM16, which truncates
// s*32767 to int16 without clamping, and written with WriteWAV as canonical
// 16-bit PCM WAV:
//
//	pcm := audio.EncodePCM16(samples)
//	err := audio.WriteWAVFile(".rendering/sfx.wav", pcm, clip.Format)
//
// # Effects
//
// GainEffect scales samples in place by a validated linear gain
// (0 to MaxGain):
//
//	gain, err := audio.NewGainEffect(0.8)
//	gain.Process(samples)
//
// All errors wrap the sentinels in errors.go for errors.Is classification.
package audio
