// Package chartrender renders the audio of a rhythm game chart offline.
//
// A render mixes the tap and arc hit sounds of every note inside a time
// window into one effect stream, routes arcs and arc-taps carrying a named
// custom sound into a stream of their own, cuts the song to the same window
// and writes each stream as a 16-bit PCM WAV file into the .rendering
// directory next to the project file:
//
//	<project dir>/.rendering/sfx.wav
//	<project dir>/.rendering/sfx_<name>.wav
//	<project dir>/.rendering/song.wav
//	<project dir>/.rendering/render.json
//
// The streams are sample aligned so a video pipeline can lay them over a
// recording of the same window.
//
// # Getting Started
//
// Describe the job with a config.Config and run it:
//
//	cfg := config.Load()
//	cfg.ProjectPath = "songs/base/project.arcproj"
//	cfg.ChartPath = "songs/base/2.aff"
//	cfg.SongPath = "songs/base/base.ogg"
//	cfg.TapPath = "sounds/tap.wav"
//	cfg.ArcPath = "sounds/arc.wav"
//	cfg.InputMode = "auto"
//
//	result, err := chartrender.Render(ctx, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, f := range result.Files {
//	    fmt.Println(f.Path)
//	}
//
// # Packages
//
//   - chart parses .aff charts into notes.
//   - audio decodes WAV and Ogg Opus clips and encodes PCM WAV.
//   - render extracts sound events and mixes the output streams.
//   - staging resolves files in the .rendering directory.
//   - manifest records the digests of a render in render.json.
//   - config loads render jobs from YAML files and the environment.
//   - limits bounds durations, formats and buffer sizes.
//
// Hit sounds are only rendered for the automated input modes; a render for
// a human input mode produces silent effect streams of the right length.
package chartrender
