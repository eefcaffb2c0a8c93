package ltc

import (
	"fmt"
)

type PulseClass uint8

const (
	// PulseNone means no pulse ended on this sample.
	PulseNone PulseClass = iota
	// PulseShort is about half a bit cell: one half of a 1-bit.
	PulseShort
	// PulseLong is about a whole bit cell: a 0-bit.
	PulseLong
	// PulseInvalid is any pulse that is neither, meaning sync was lost.
	PulseInvalid
)

// PulseClassifier classifies pulse widths relative to a nominal bit cell
// width, which it adjusts as it goes to follow the signal's speed.
type PulseClassifier struct {
	// The nominal width in samples of a full bit cell (a LONG pulse).
	// This is updated automatically, from the LONG pulses seen so far.
	// It should not be set directly, use SetCellWidth() instead.
	CellWidth float64

	// Allowed deviation from the nominal widths, as a fraction of them.
	Tolerance float64

	// How far each LONG pulse moves CellWidth toward its own width.
	Smoothing float64

	// CellWidth is kept within these bounds.
	MinCellWidth float64
	MaxCellWidth float64
}

// NewPulseClassifier returns a classifier configured from cfg, starting
// out with the cell width of the middle supported frame rate.
func NewPulseClassifier(cfg Config) *PulseClassifier {
	c := &PulseClassifier{}
	c.init(cfg)
	return c
}

func (c *PulseClassifier) init(cfg Config) {
	c.Tolerance = cfg.Tolerance
	c.Smoothing = cfg.Smoothing
	c.MinCellWidth, c.MaxCellWidth = cellWidthBounds(
		cfg.SampleRate, cfg.WidthMargin,
	)
	c.SetCellWidth(initialCellWidth(cfg.SampleRate))
}

// Next classifies a pulse of the given width, and if it is LONG, uses it
// to update the nominal cell width.
func (c *PulseClassifier) Next(width int) PulseClass {
	class := ClassifyWidth(float64(width), c.CellWidth, c.Tolerance)
	if class == PulseLong {
		w := float64(width)
		c.SetCellWidth(c.CellWidth + (w-c.CellWidth)*c.Smoothing)
	}
	return class
}

// SetCellWidth sets the nominal cell width, clamped to the allowed range.
func (c *PulseClassifier) SetCellWidth(w float64) {
	if w < c.MinCellWidth {
		w = c.MinCellWidth
	}
	if w > c.MaxCellWidth {
		w = c.MaxCellWidth
	}
	if !(w > 0) {
		panic(fmt.Errorf("invalid cell width: %v", w))
	}
	c.CellWidth = w
}

// ClassifyWidth classifies a pulse width against a nominal cell width.
//
// In biphase mark code there is an edge at the start of every bit cell,
// and a 1-bit has another one in the middle. So the distance between
// edges is either half a cell (SHORT) or a whole cell (LONG). Speed
// variations and the mismatch between sampling rate and bit rate mean we
// can't expect exact widths, so each is accepted within the tolerance,
// bounds included. With tolerance below 1/3, the two ranges never touch.
func ClassifyWidth(width, cellWidth, tolerance float64) PulseClass {
	half := cellWidth / 2
	switch {
	case width >= half*(1-tolerance) && width <= half*(1+tolerance):
		return PulseShort
	case width >= cellWidth*(1-tolerance) && width <= cellWidth*(1+tolerance):
		return PulseLong
	default:
		return PulseInvalid
	}
}

func (c PulseClass) String() string {
	const classes = "-SLI"
	if int(c) >= len(classes) {
		return fmt.Sprintf("[bad PulseClass=%d]", int(c))
	}
	return classes[c : c+1]
}
