package ltc

import (
	"math"

	"github.com/edorfaus/ltc-decode/filter"
)

// encode builds the payload bits for a timecode, the inverse of
// Payload.Timecode.
func encode(tc TimecodeFrame) Payload {
	var p Payload
	set := func(start, n int, v uint8) {
		for j := 0; j < n; j++ {
			if v>>j&1 == 1 {
				p |= 1 << (PayloadBits - 1 - (start + j))
			}
		}
	}
	set(frameUnitsBit, 4, tc.Frames%10)
	set(frameTensBit, 2, tc.Frames/10)
	set(secUnitsBit, 4, tc.Seconds%10)
	set(secTensBit, 3, tc.Seconds/10)
	set(minUnitsBit, 4, tc.Minutes%10)
	set(minTensBit, 3, tc.Minutes/10)
	set(hourUnitsBit, 4, tc.Hours%10)
	set(hourTensBit, 2, tc.Hours/10)
	if tc.DropFrame {
		set(dropFrameBit, 1, 1)
	}
	if tc.ColorFrame {
		set(colorFrameBit, 1, 1)
	}
	for g := 0; g < userGroupCount; g++ {
		nibble := uint8(tc.UserBits>>(g*userGroupBits)) & 0xF
		set(firstUserBit+g*userGroupStep, userGroupBits, nibble)
	}
	return p
}

// frameBits returns all 80 bits of an LTC frame in arrival order.
func frameBits(p Payload) [BitsPerFrame]byte {
	var bits [BitsPerFrame]byte
	for i := 0; i < PayloadBits; i++ {
		bits[i] = p.Bit(i)
	}
	for i := 0; i < 16; i++ {
		bits[PayloadBits+i] = byte(SyncWord>>(15-i)) & 1
	}
	return bits
}

// synthesize generates an idealized biphase mark signal (levels of +1 and
// -1) carrying the given frames back to back, at the given sampling rate
// and frame rate.
//
// After the last frame, the edge that would start the next frame is
// included, followed by one cell of samples, so that the last bit of the
// last frame is complete.
//
// The first frame starts at sample 0, and frame i starts at the first
// sample at or after i*rate/fps.
func synthesize(rate int, fps FrameRate, frames ...Payload) []float64 {
	return synthesizeBits(rate, fps, nil, frames...)
}

// synthesizeBits is like synthesize, but sends the given bits before the
// first frame.
func synthesizeBits(rate int, fps FrameRate, lead []byte, frames ...Payload) []float64 {
	cell := CellWidth(rate, fps)

	bits := append([]byte(nil), lead...)
	for _, p := range frames {
		fb := frameBits(p)
		bits = append(bits, fb[:]...)
	}

	var edges []float64
	for c, b := range bits {
		start := float64(c) * cell
		edges = append(edges, start)
		if b == 1 {
			edges = append(edges, start+cell/2)
		}
	}
	end := float64(len(bits)) * cell
	edges = append(edges, end)

	total := int(math.Ceil(end + cell))
	out := make([]float64, total)
	level := -1.0
	j := 0
	for k := range out {
		for j < len(edges) && edges[j] <= float64(k) {
			level = -level
			j++
		}
		out[k] = level
	}
	return out
}

// cellStart returns the index of the first sample of bit cell c, as laid
// out by synthesizeBits.
func cellStart(rate int, fps FrameRate, c int) int {
	return int(math.Ceil(float64(c) * CellWidth(rate, fps)))
}

// frameStart returns the index of the first sample of frame i, as laid
// out by synthesize.
func frameStart(rate int, fps FrameRate, i int) int {
	return cellStart(rate, fps, i*BitsPerFrame)
}

// convert scales +-1 levels into samples of type T around center.
func convert[T filter.Sample](levels []float64, center, amp float64) []T {
	out := make([]T, len(levels))
	for i, l := range levels {
		out[i] = T(center + amp*l)
	}
	return out
}

// emitted is a frame returned by Step, with the index of the sample that
// produced it.
type emitted struct {
	index int
	tc    TimecodeFrame
}

// run feeds all samples to the decoder and collects the frames.
func run[T filter.Sample](d *Decoder[T], samples []T) []emitted {
	var out []emitted
	for i, s := range samples {
		if tc, ok := d.Step(s); ok {
			out = append(out, emitted{i, tc})
		}
	}
	return out
}

// sequence returns n consecutive timecodes starting at first.
func sequence(first TimecodeFrame, n int) []TimecodeFrame {
	out := make([]TimecodeFrame, n)
	tc := first
	for i := range out {
		out[i] = tc
		tc = tc.Next()
	}
	return out
}

func encodeAll(tcs []TimecodeFrame) []Payload {
	out := make([]Payload, len(tcs))
	for i, tc := range tcs {
		out[i] = encode(tc)
	}
	return out
}
