// Package config loads render jobs for the chartrender command.
//
// A job can come from three layers, each overriding the one before it:
// built-in defaults, an optional YAML job file, and CHARTRENDER_* environment
// variables. Command-line flags are applied last by the caller.
//
//	project: songs/base/base.arcproj
//	chart: songs/base/2.aff
//	song: songs/base/base.ogg
//	tap: sounds/tap.wav
//	arc: sounds/arc.wav
//	sfx:
//	  glass: sounds/glass.wav
//	start_timing: 1000
//	end_timing: 60000
//	show_transition: true
//	transition:
//	  show_ms: 1000
//	  wait_ms: 2000
//	  hide_ms: 500
//	effect_volume: 0.8
//	music_volume: 1.0
//	input_mode: auto
package config
