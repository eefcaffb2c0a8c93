package ltc

import (
	"fmt"
)

// FrameRate is a nominal LTC frame rate in frames per second.
type FrameRate uint8

const (
	Rate24 FrameRate = 24
	Rate25 FrameRate = 25
	Rate30 FrameRate = 30
)

var frameRates = [...]FrameRate{Rate24, Rate25, Rate30}

// NearestFrameRate returns the supported frame rate closest to fps.
// Ties go to the lower rate.
func NearestFrameRate(fps float64) FrameRate {
	best := frameRates[0]
	bestDiff := abs(fps - float64(best))
	for _, r := range frameRates[1:] {
		if d := abs(fps - float64(r)); d < bestDiff {
			best, bestDiff = r, d
		}
	}
	return best
}

// Valid reports whether r is one of the supported frame rates.
func (r FrameRate) Valid() bool {
	for _, v := range frameRates {
		if r == v {
			return true
		}
	}
	return false
}

// TimecodeFrame is one decoded LTC frame.
type TimecodeFrame struct {
	Hours   uint8
	Minutes uint8
	Seconds uint8
	Frames  uint8

	FrameRate FrameRate

	// DropFrame is the drop-frame flag bit as received. It is reported
	// only: frame numbers are never adjusted for it.
	DropFrame bool

	// ColorFrame is the color-frame flag bit as received.
	ColorFrame bool

	// UserBits holds the eight 4-bit user bit groups, with the first
	// group in the lowest nibble.
	UserBits uint32
}

func (t TimecodeFrame) String() string {
	return fmt.Sprintf(
		"%02d:%02d:%02d:%02d", t.Hours, t.Minutes, t.Seconds, t.Frames,
	)
}

// Next returns the timecode of the frame after this one, wrapping around
// at 24 hours. Flags and user bits are kept as-is.
func (t TimecodeFrame) Next() TimecodeFrame {
	fps := t.FrameRate
	if !fps.Valid() {
		fps = Rate30
	}
	t.Frames++
	if t.Frames >= uint8(fps) {
		t.Frames = 0
		t.Seconds++
	}
	if t.Seconds >= 60 {
		t.Seconds = 0
		t.Minutes++
	}
	if t.Minutes >= 60 {
		t.Minutes = 0
		t.Hours++
	}
	if t.Hours >= 24 {
		t.Hours = 0
	}
	return t
}

// SameTime reports whether t and o carry the same hh:mm:ss:ff.
func (t TimecodeFrame) SameTime(o TimecodeFrame) bool {
	return t.Hours == o.Hours && t.Minutes == o.Minutes &&
		t.Seconds == o.Seconds && t.Frames == o.Frames
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
