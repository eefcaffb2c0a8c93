package filter

import (
	"math"
)

// Polarity is which side of the adaptive center a signal is on.
type Polarity uint8

const (
	// PolarityUnknown is only used until the signal has been seen on
	// both sides of the center.
	PolarityUnknown Polarity = iota
	PolarityLow
	PolarityHigh
)

// Conditioner turns raw samples of any numeric type into signed values
// referenced to an adaptive center, and tracks the signal's polarity.
//
// The center is the midpoint between a high and a low envelope. A sample
// outside an envelope moves that envelope to it immediately; otherwise the
// envelope decays toward the sample by Decay per sample. This handles
// unsigned samples, DC offset and slow drift the same way, since polarity
// is defined relative to this center rather than to a fixed zero.
//
// To keep small wiggles near the center from being seen as edges, the
// polarity only changes when the signal leaves a hysteresis band around
// the center, whose half-width is Hysteresis times the envelope span.
//
// Push does a constant amount of work and never allocates.
type Conditioner[T Sample] struct {
	// Per-sample envelope decay factor, in (0, 1).
	Decay float64

	// Hysteresis band half-width, as a fraction of the envelope span.
	Hysteresis float64

	// Envelope spans no larger than twice this are considered to be
	// noise, during which the polarity is left unchanged.
	NoiseFloor float64

	hi, lo  float64
	started bool
	pol     Polarity
}

// NewConditioner returns a conditioner with the given settings.
func NewConditioner[T Sample](decay, hysteresis, noiseFloor float64) *Conditioner[T] {
	return &Conditioner[T]{
		Decay:      decay,
		Hysteresis: hysteresis,
		NoiseFloor: noiseFloor,
	}
}

// Push conditions one sample, returning its value relative to the current
// center and the resulting polarity.
//
// A NaN or infinite sample is treated as a dropout: it returns 0 and the
// previous polarity, and leaves the envelopes alone.
func (c *Conditioner[T]) Push(sample T) (float64, Polarity) {
	v := float64(sample)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, c.pol
	}
	if !c.started {
		c.hi, c.lo = v, v
		c.started = true
	}

	if v > c.hi {
		c.hi = v
	} else {
		c.hi += (v - c.hi) * c.Decay
	}
	if v < c.lo {
		c.lo = v
	} else {
		c.lo += (v - c.lo) * c.Decay
	}

	span := c.hi - c.lo
	x := v - (c.hi+c.lo)/2

	if span <= 2*c.NoiseFloor {
		// Silence (or just noise): nothing to see here.
		return x, c.pol
	}

	band := span * c.Hysteresis
	switch {
	case x > band:
		c.pol = PolarityHigh
	case x < -band:
		c.pol = PolarityLow
	}
	return x, c.pol
}

// Center returns the current center estimate.
func (c *Conditioner[T]) Center() float64 {
	return (c.hi + c.lo) / 2
}

// Span returns the distance between the high and low envelopes.
func (c *Conditioner[T]) Span() float64 {
	return c.hi - c.lo
}

// Polarity returns the polarity determined by the latest sample.
func (c *Conditioner[T]) Polarity() Polarity {
	return c.pol
}

// Reset forgets the envelopes and polarity, keeping the settings.
func (c *Conditioner[T]) Reset() {
	c.hi, c.lo = 0, 0
	c.started = false
	c.pol = PolarityUnknown
}

func (p Polarity) String() string {
	switch p {
	case PolarityUnknown:
		return "?"
	case PolarityLow:
		return "L"
	case PolarityHigh:
		return "H"
	default:
		return "!"
	}
}
