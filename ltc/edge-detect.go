package ltc

import (
	"github.com/edorfaus/ltc-decode/filter"
)

// Widths are capped at this, so that long stretches of silence cannot
// overflow the counter. Anything this long is an invalid pulse anyway.
const maxWidth = 1 << 30

// EdgeDetect finds polarity transitions in a stream of polarities, and
// measures the distance between them in samples.
//
// The first transition after the polarity becomes known only starts the
// count, since there is no earlier edge to measure from.
type EdgeDetect struct {
	// Polarity of the previous sample.
	Prev filter.Polarity

	// Samples since the latest edge.
	Count int

	counting bool
}

// Next handles the polarity of one sample. When that sample is the first
// one after a transition, it returns the width of the pulse that just
// ended and true.
func (e *EdgeDetect) Next(pol filter.Polarity) (int, bool) {
	if pol == filter.PolarityUnknown {
		return 0, false
	}
	if e.Prev == filter.PolarityUnknown {
		e.Prev = pol
		return 0, false
	}

	if e.Count < maxWidth {
		e.Count++
	}
	if pol == e.Prev {
		return 0, false
	}

	e.Prev = pol
	width := e.Count
	e.Count = 0

	if !e.counting {
		// This is the first edge; we don't know where the pulse before
		// it started.
		e.counting = true
		return 0, false
	}
	return width, true
}

// Reset forgets the previous polarity and edge.
func (e *EdgeDetect) Reset() {
	*e = EdgeDetect{}
}
