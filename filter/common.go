package filter

import (
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

// Sample is any numeric type that the host may deliver audio samples as,
// signed or unsigned, integer or floating point.
type Sample interface {
	constraints.Integer | constraints.Float
}

// DefaultNoiseFloor returns the noise floor to use for integer samples of
// the given bit depth: 2% of the maximum amplitude.
func DefaultNoiseFloor(bits int) int {
	if bits <= 0 {
		return 0
	}
	maxValue := 1 << (bits - 1)
	return maxValue * 2 / 100
}

// LowHigh returns the smallest and largest of the given samples.
// It returns zero values for an empty slice.
func LowHigh[T Sample](v []T) (low, high T) {
	if len(v) == 0 {
		return low, high
	}
	return slices.Min(v), slices.Max(v)
}
