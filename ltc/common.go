package ltc

import (
	"errors"
	"fmt"
)

const (
	// BitsPerFrame is the number of bit cells in one LTC frame.
	BitsPerFrame = 80

	// PayloadBits is the number of bits before the sync word.
	PayloadBits = 64

	// SyncWord is the fixed pattern ending every LTC frame, with the
	// first-arriving bit as the most significant bit.
	SyncWord uint16 = 0x3FFD
)

// ErrInvalidConfiguration is returned (wrapped) when a decoder cannot be
// constructed from the given parameters.
var ErrInvalidConfiguration = errors.New("invalid configuration")

func invalidConfig(f string, v ...any) error {
	return fmt.Errorf("%w: "+f, append([]any{ErrInvalidConfiguration}, v...)...)
}

// CellWidth calculates the expected width in samples of one LTC bit cell
// for the given input sampling rate and frame rate.
func CellWidth(sampleRate int, fps FrameRate) float64 {
	return float64(sampleRate) / float64(BitsPerFrame*int(fps))
}

// cellWidthBounds returns the range the adaptive cell width is kept in:
// the widths implied by the fastest and slowest supported frame rates,
// widened by the given margin.
func cellWidthBounds(sampleRate int, margin float64) (lo, hi float64) {
	lo = CellWidth(sampleRate, Rate30) * (1 - margin)
	hi = CellWidth(sampleRate, Rate24) * (1 + margin)
	return lo, hi
}

// initialCellWidth is the cell width assumed before any pulses are seen,
// which is that of the middle frame rate.
func initialCellWidth(sampleRate int) float64 {
	return CellWidth(sampleRate, Rate25)
}
