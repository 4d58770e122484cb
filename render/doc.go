// Package render mixes a chart's hit sounds and song into WAV files for
// video export.
//
// A render is a deterministic batch job: the chart is queried once, every
// triggered one-shot sound is added into fixed-length float buffers at its
// sample offset, and the buffers are written as 16-bit PCM WAV files under
// the project's staging directory:
//
//	sfx.wav          tap and arc sounds (plus transition cues)
//	sfx_<name>.wav   one per custom sound effect that was triggered
//	song.wav         the song cut to the window, scaled by music volume
//	render.json      manifest with digests of every file
//
// # Usage
//
//	w, err := render.NewWindow(1000, 5000, 0)
//	r, err := render.NewRenderer(render.Options{
//	    Window:   w,
//	    Settings: render.DefaultSettings(),
//	    Assets:   assets,
//	    Context: render.Context{
//	        ProjectPath: "songs/mysong/project.arcproj",
//	        InputMode:   render.InputModeAuto,
//	        Chart:       c,
//	    },
//	})
//	result, err := r.Render(ctx)
//
// # Sample offsets
//
// A note at timing t starts at interleaved sample
//
//	floor((t - StartTiming + AudioOffset + leadIn) * frequency / 1000) * channels
//
// computed in integer arithmetic. Samples past the end of a buffer are
// dropped. Buffers hold ceil((window + leadIn) * frequency / 1000) frames.
//
// # Formats
//
// The tap clip defines the format of sfx.wav and every custom sound file.
// A differing arc clip or transition cue fails with ErrFormatMismatch, a
// differing custom sound with ErrIncompatibleSfx; both are reported as a
// *FormatError naming the clip and both formats. The song keeps its own format.
//
// Hit sounds are only audible for the Auto and AutoController input modes.
package render
