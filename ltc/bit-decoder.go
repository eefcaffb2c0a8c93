package ltc

type pairState uint8

const (
	// Not aligned to the bit cells; waiting for a LONG pulse.
	pairUnaligned pairState = iota
	// At a cell boundary.
	pairIdle
	// Half way through a 1-bit.
	pairPending
)

// BitDecoder turns classified pulses into bits.
//
// A LONG pulse is a 0-bit. A SHORT pulse is half of a 1-bit, so it is
// held until the next pulse, which must be SHORT as well.
//
// Pulse pairing is only meaningful when we know where the bit cells
// start, which a run of 1-bits alone can't tell us. So after a resync
// (and at the start), SHORT pulses are dropped until a LONG pulse, which
// always spans exactly one cell, shows where the cells are.
type BitDecoder struct {
	state pairState
}

// Next handles one classified pulse. It returns a bit and true when one
// was completed, and resync=true when the pulse broke the pairing (which
// also means no bit).
func (d *BitDecoder) Next(class PulseClass) (bit byte, ok, resync bool) {
	switch class {
	case PulseShort:
		switch d.state {
		case pairIdle:
			d.state = pairPending
		case pairPending:
			d.state = pairIdle
			return 1, true, false
		}
		return 0, false, false

	case PulseLong:
		switch d.state {
		case pairUnaligned, pairIdle:
			d.state = pairIdle
			return 0, true, false
		case pairPending:
			// A half bit followed by a full bit: the SHORT we are
			// holding was not what we thought, so drop both.
			d.state = pairUnaligned
			return 0, false, true
		}

	case PulseInvalid:
		wasAligned := d.state != pairUnaligned
		d.state = pairUnaligned
		return 0, false, wasAligned
	}
	return 0, false, false
}

// Aligned reports whether the decoder currently knows the cell boundaries.
func (d *BitDecoder) Aligned() bool {
	return d.state != pairUnaligned
}

// Reset drops any pairing state.
func (d *BitDecoder) Reset() {
	d.state = pairUnaligned
}
