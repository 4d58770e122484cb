// Package chart models the notes of a rhythm-game chart and reads the .aff
// chart text format.
//
// Renderers only need read access to notes by kind, exposed through the
// Query interface:
//
//	c, err := chart.ParseFile("project/2.aff")
//	for _, tap := range c.Taps() {
//	    fmt.Println(tap.Timing, tap.Lane)
//	}
//
// # Note kinds
//
//   - Tap: a floor note at a single timing.
//   - Hold: a floor note spanning [Timing, EndTiming].
//   - Arc: a sky curve; trace arcs are decorative and never sound.
//   - ArcTap: a sky note on a trace arc. It carries the sound effect name of
//     its parent arc ("none" when the arc has no custom sound).
//
// Every note records the timing group it was declared in. Notes inside a
// group carrying the noinput property have NoInput set and are not judged.
//
// Timings are integer milliseconds from the start of the song.
package chart
