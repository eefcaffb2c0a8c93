package ltc

// Window holds the last 80 decoded bits.
//
// The newest 16 bits are kept apart so they can be compared directly with
// the sync word; the bit shifted out of them moves on into the payload.
// The most recently received bit is always the least significant one.
type Window struct {
	payload uint64
	sync    uint16
}

// Shift adds a bit at the end of the window, dropping the oldest one.
func (w *Window) Shift(bit byte) {
	w.payload = w.payload<<1 | uint64(w.sync>>15)
	w.sync = w.sync<<1 | uint16(bit&1)
}

// Synced reports whether the newest 16 bits are the sync word, meaning
// the rest of the window should be a complete frame payload.
func (w *Window) Synced() bool {
	return w.sync == SyncWord
}

// Payload returns the 64 bits received before the newest 16.
func (w *Window) Payload() Payload {
	return Payload(w.payload)
}

// Reset clears the window.
func (w *Window) Reset() {
	*w = Window{}
}

// Payload is the 64 bits of an LTC frame that come before the sync word.
// Bit 0 of the frame (the first to arrive) is the most significant bit.
type Payload uint64

// Bit positions (in arrival order) and widths of the payload fields.
// Within each field, the least significant bit arrives first.
const (
	frameUnitsBit  = 0
	frameTensBit   = 8
	dropFrameBit   = 10
	colorFrameBit  = 11
	secUnitsBit    = 16
	secTensBit     = 24
	minUnitsBit    = 32
	minTensBit     = 40
	hourUnitsBit   = 48
	hourTensBit    = 56
	firstUserBit   = 4
	userGroupBits  = 4
	userGroupCount = 8
	userGroupStep  = 8
)

// Bit returns frame bit i (0..63).
func (p Payload) Bit(i int) byte {
	return byte(p>>(PayloadBits-1-i)) & 1
}

// Field returns the n-bit field starting at frame bit start.
func (p Payload) Field(start, n int) uint8 {
	var v uint8
	for j := 0; j < n; j++ {
		v |= p.Bit(start+j) << j
	}
	return v
}

// UserBits returns the eight user bit groups, the first in the low nibble.
func (p Payload) UserBits() uint32 {
	var v uint32
	for g := 0; g < userGroupCount; g++ {
		nibble := p.Field(firstUserBit+g*userGroupStep, userGroupBits)
		v |= uint32(nibble) << (g * userGroupBits)
	}
	return v
}

// Timecode extracts and validates the timecode fields, using the given
// frame rate as the bound for the frame number. It returns false if any
// field is not a valid BCD value within its range.
func (p Payload) Timecode(rate FrameRate) (TimecodeFrame, bool) {
	frames, ok := bcd(p.Field(frameUnitsBit, 4), p.Field(frameTensBit, 2), int(rate))
	if !ok {
		return TimecodeFrame{}, false
	}
	seconds, ok := bcd(p.Field(secUnitsBit, 4), p.Field(secTensBit, 3), 60)
	if !ok {
		return TimecodeFrame{}, false
	}
	minutes, ok := bcd(p.Field(minUnitsBit, 4), p.Field(minTensBit, 3), 60)
	if !ok {
		return TimecodeFrame{}, false
	}
	hours, ok := bcd(p.Field(hourUnitsBit, 4), p.Field(hourTensBit, 2), 24)
	if !ok {
		return TimecodeFrame{}, false
	}

	return TimecodeFrame{
		Hours:      hours,
		Minutes:    minutes,
		Seconds:    seconds,
		Frames:     frames,
		FrameRate:  rate,
		DropFrame:  p.Bit(dropFrameBit) == 1,
		ColorFrame: p.Bit(colorFrameBit) == 1,
		UserBits:   p.UserBits(),
	}, true
}

// bcd combines a units digit and a tens digit, checking that the units
// digit is a decimal digit and the result is below limit.
func bcd(units, tens uint8, limit int) (uint8, bool) {
	if units > 9 {
		return 0, false
	}
	v := int(tens)*10 + int(units)
	if v >= limit {
		return 0, false
	}
	return uint8(v), true
}
