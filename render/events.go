package render

import (
	"sort"

	"github.com/opd-ai/chartrender/chart"
	"github.com/sirupsen/logrus"
)

// Category classifies which sound a note triggers.
type Category int

const (
	// CategoryTap is the generic tap sound (taps and hold heads).
	CategoryTap Category = iota
	// CategoryArc is the generic arc sound (arc heads and arc-taps without a
	// registered custom sound).
	CategoryArc
	// CategorySfx is a registered custom sound effect.
	CategorySfx
)

// String implements fmt.Stringer.
func (c Category) String() string {
	switch c {
	case CategoryTap:
		return "tap"
	case CategoryArc:
		return "arc"
	case CategorySfx:
		return "sfx"
	default:
		return "unknown"
	}
}

// SoundEvent is a single triggered one-shot sound.
type SoundEvent struct {
	Timing   int
	Category Category
	// Sfx is the custom sound name for CategorySfx events.
	Sfx string
}

// TimingSet is a set of millisecond timings.
type TimingSet map[int]struct{}

// Add inserts timing and reports whether it was new.
func (s TimingSet) Add(timing int) bool {
	if _, ok := s[timing]; ok {
		return false
	}
	s[timing] = struct{}{}
	return true
}

// Contains reports whether timing is in the set.
func (s TimingSet) Contains(timing int) bool {
	_, ok := s[timing]
	return ok
}

// Len returns the number of timings.
func (s TimingSet) Len() int { return len(s) }

// Sorted returns the timings in ascending order.
func (s TimingSet) Sorted() []int {
	out := make([]int, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Ints(out)
	return out
}

// Events holds the sounds triggered inside a render window.
//
// Tap and arc sounds are deduplicated per timing. Custom sound effects keep
// one entry per arc-tap, in chart order, so simultaneous arc-taps overlap.
type Events struct {
	Timings map[Category]TimingSet
	Sfx     map[string][]chart.ArcTap
}

func newEvents() *Events {
	return &Events{
		Timings: map[Category]TimingSet{
			CategoryTap: make(TimingSet),
			CategoryArc: make(TimingSet),
		},
		Sfx: make(map[string][]chart.ArcTap),
	}
}

// SfxNames returns the triggered custom sound names in ascending order.
func (e *Events) SfxNames() []string {
	names := make([]string, 0, len(e.Sfx))
	for name := range e.Sfx {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of sounds triggered in a category.
func (e *Events) Count(c Category) int {
	if c == CategorySfx {
		n := 0
		for _, notes := range e.Sfx {
			n += len(notes)
		}
		return n
	}
	return e.Timings[c].Len()
}

// SoundEvents flattens every triggered sound, ordered by timing, then
// category, then sound name.
func (e *Events) SoundEvents() []SoundEvent {
	var out []SoundEvent
	for _, c := range []Category{CategoryTap, CategoryArc} {
		for _, t := range e.Timings[c].Sorted() {
			out = append(out, SoundEvent{Timing: t, Category: c})
		}
	}
	for name, notes := range e.Sfx {
		for _, n := range notes {
			out = append(out, SoundEvent{Timing: n.Timing, Category: CategorySfx, Sfx: name})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Timing != b.Timing {
			return a.Timing < b.Timing
		}
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		return a.Sfx < b.Sfx
	})
	return out
}

// isSilentSfx reports whether an arc-tap sound name means "no sound".
func isSilentSfx(name string) bool {
	return name == "" || name == chart.NoSfx
}

// ExtractEvents collects the sounds triggered by the notes of q inside w.
//
// A note contributes only when its timing lies in
// [StartTiming-AudioOffset, EndTiming-AudioOffset] and it is not flagged
// NoInput. Taps and hold heads trigger the tap sound. Arcs trigger the arc
// sound unless they are traces or have no duration. Arc-taps trigger their
// custom sound when registered reports it as known and fall back to the arc
// sound otherwise; an arc-tap whose sound is empty or "none" triggers nothing.
func ExtractEvents(q chart.Query, w Window, registered func(string) bool) *Events {
	ev := newEvents()
	taps := ev.Timings[CategoryTap]
	arcs := ev.Timings[CategoryArc]

	for _, n := range q.Taps() {
		if w.Contains(n.Timing) && !n.NoInput {
			taps.Add(n.Timing)
		}
	}
	for _, n := range q.Holds() {
		if w.Contains(n.Timing) && !n.NoInput {
			taps.Add(n.Timing)
		}
	}
	for _, n := range q.Arcs() {
		if w.Contains(n.Timing) && !n.NoInput && !n.IsTrace && n.Timing < n.EndTiming {
			arcs.Add(n.Timing)
		}
	}

	dropped := 0
	for _, n := range q.ArcTaps() {
		if !w.Contains(n.Timing) || n.NoInput {
			continue
		}
		switch {
		case isSilentSfx(n.Sfx):
			dropped++
		case registered != nil && registered(n.Sfx):
			ev.Sfx[n.Sfx] = append(ev.Sfx[n.Sfx], n)
		default:
			arcs.Add(n.Timing)
		}
	}

	logrus.WithFields(logrus.Fields{
		"function":       "ExtractEvents",
		"window":         w.String(),
		"tap_sounds":     taps.Len(),
		"arc_sounds":     arcs.Len(),
		"sfx_names":      len(ev.Sfx),
		"sfx_sounds":     ev.Count(CategorySfx),
		"silent_arctaps": dropped,
	}).Info("Extracted sound events")

	return ev
}
