package chart

import "sort"

// NoSfx is the arc sound effect name meaning "no custom sound".
const NoSfx = "none"

// Tap is a floor note.
type Tap struct {
	Timing  int
	Lane    int
	Group   int
	NoInput bool
}

// Hold is a floor note held from Timing to EndTiming.
type Hold struct {
	Timing    int
	EndTiming int
	Lane      int
	Group     int
	NoInput   bool
}

// Arc is a sky curve from Timing to EndTiming.
type Arc struct {
	Timing    int
	EndTiming int
	IsTrace   bool
	Sfx       string
	Group     int
	NoInput   bool
}

// ArcTap is a sky note placed on an arc.
type ArcTap struct {
	Timing  int
	Sfx     string
	Group   int
	NoInput bool
}

// Query gives read access to every note of a kind.
type Query interface {
	Taps() []Tap
	Holds() []Hold
	Arcs() []Arc
	ArcTaps() []ArcTap
}

// Chart is an in-memory note collection implementing Query.
type Chart struct {
	// AudioOffset is the AudioOffset header value in milliseconds.
	AudioOffset int
	// Header holds every "key:value" header line.
	Header map[string]string

	taps    []Tap
	holds   []Hold
	arcs    []Arc
	arcTaps []ArcTap
}

// New returns an empty chart.
func New() *Chart {
	return &Chart{Header: make(map[string]string)}
}

// AddTap appends tap notes.
func (c *Chart) AddTap(taps ...Tap) { c.taps = append(c.taps, taps...) }

// AddHold appends hold notes.
func (c *Chart) AddHold(holds ...Hold) { c.holds = append(c.holds, holds...) }

// AddArc appends arcs.
func (c *Chart) AddArc(arcs ...Arc) { c.arcs = append(c.arcs, arcs...) }

// AddArcTap appends arc-tap notes.
func (c *Chart) AddArcTap(arcTaps ...ArcTap) { c.arcTaps = append(c.arcTaps, arcTaps...) }

// Taps returns a copy of the tap notes.
func (c *Chart) Taps() []Tap { return append([]Tap(nil), c.taps...) }

// Holds returns a copy of the hold notes.
func (c *Chart) Holds() []Hold { return append([]Hold(nil), c.holds...) }

// Arcs returns a copy of the arcs.
func (c *Chart) Arcs() []Arc { return append([]Arc(nil), c.arcs...) }

// ArcTaps returns a copy of the arc-tap notes.
func (c *Chart) ArcTaps() []ArcTap { return append([]ArcTap(nil), c.arcTaps...) }

// NoteCount returns the total number of notes of every kind.
func (c *Chart) NoteCount() int {
	return len(c.taps) + len(c.holds) + len(c.arcs) + len(c.arcTaps)
}

// Sort orders every note kind by timing, keeping declaration order for ties.
func (c *Chart) Sort() {
	sort.SliceStable(c.taps, func(i, j int) bool { return c.taps[i].Timing < c.taps[j].Timing })
	sort.SliceStable(c.holds, func(i, j int) bool { return c.holds[i].Timing < c.holds[j].Timing })
	sort.SliceStable(c.arcs, func(i, j int) bool { return c.arcs[i].Timing < c.arcs[j].Timing })
	sort.SliceStable(c.arcTaps, func(i, j int) bool { return c.arcTaps[i].Timing < c.arcTaps[j].Timing })
}

// Bounds returns the earliest note timing and the latest note end timing.
// ok is false for a chart without notes.
func (c *Chart) Bounds() (first, last int, ok bool) {
	visit := func(start, end int) {
		if !ok || start < first {
			first = start
		}
		if !ok || end > last {
			last = end
		}
		ok = true
	}
	for _, n := range c.taps {
		visit(n.Timing, n.Timing)
	}
	for _, n := range c.holds {
		visit(n.Timing, n.EndTiming)
	}
	for _, n := range c.arcs {
		visit(n.Timing, n.EndTiming)
	}
	for _, n := range c.arcTaps {
		visit(n.Timing, n.Timing)
	}
	return first, last, ok
}
