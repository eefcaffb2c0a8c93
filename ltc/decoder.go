package ltc

import (
	"github.com/edorfaus/ltc-decode/filter"
)

// Stats counts what a decoder has seen so far.
type Stats struct {
	// Samples submitted.
	Samples uint64
	// Bits decoded.
	Bits uint64
	// Frames emitted.
	Frames uint64
	// Sync word matches that were discarded for invalid fields.
	Spurious uint64
	// Times sync was lost (invalid pulse or pulse pairing violation).
	Resyncs uint64
}

// Decoder decodes LTC from a stream of samples, one sample at a time.
//
// Step does a bounded amount of work per sample, never allocates and
// never blocks, so it can be called directly from an audio callback. A
// Decoder must not be used from more than one goroutine at a time; use
// one per audio channel.
//
// A frame is only returned when all of its 80 bits were decoded after the
// decoder locked on, so the signal needs a short lead-in before the first
// frame that can be decoded: about three bit cells, since the first edges
// only establish the polarity, start the pulse count, and find where the
// bit cells start. A frame that starts right at the first sample is not
// decoded, but the ones following it are.
//
// NaN and infinite samples are treated as dropouts, which at worst cost the
// frames they fall in.
type Decoder[T filter.Sample] struct {
	cfg Config

	cond   filter.Conditioner[T]
	edges  EdgeDetect
	pulses PulseClassifier
	bits   BitDecoder
	window Window
	rate   RateEstimator

	// Bits decoded since the last resync, up to BitsPerFrame. A frame is
	// only accepted once the whole window comes from after the resync.
	continuity int

	// Samples since the last emitted frame, if haveMatch.
	sinceMatch int
	haveMatch  bool

	stats Stats
}

// NewDecoder returns a decoder for the given sampling rate, with the
// default configuration.
func NewDecoder[T filter.Sample](sampleRate int) (*Decoder[T], error) {
	return NewDecoderConfig[T](DefaultConfig(sampleRate))
}

// NewDecoderConfig returns a decoder using the given configuration.
func NewDecoderConfig[T filter.Sample](cfg Config) (*Decoder[T], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	d := &Decoder[T]{cfg: cfg}
	d.Reset()
	return d, nil
}

// Config returns the configuration the decoder was created with.
func (d *Decoder[T]) Config() Config {
	return d.cfg
}

// Reset puts the decoder back into the state it had right after it was
// created, forgetting everything learned about the signal.
func (d *Decoder[T]) Reset() {
	cfg := d.cfg
	d.cond = filter.Conditioner[T]{
		Decay:      cfg.Decay(),
		Hysteresis: cfg.Hysteresis,
		NoiseFloor: cfg.NoiseFloor,
	}
	d.edges.Reset()
	d.pulses.init(cfg)
	d.bits.Reset()
	d.window.Reset()
	d.rate = RateEstimator{SampleRate: cfg.SampleRate}
	d.continuity = 0
	d.sinceMatch = 0
	d.haveMatch = false
	d.stats = Stats{}
}

// Step submits one sample. When that sample completes a valid frame, the
// frame is returned along with true.
func (d *Decoder[T]) Step(sample T) (TimecodeFrame, bool) {
	d.stats.Samples++
	if d.haveMatch && d.sinceMatch < maxWidth {
		d.sinceMatch++
	}

	_, pol := d.cond.Push(sample)

	width, ok := d.edges.Next(pol)
	if !ok {
		return TimecodeFrame{}, false
	}

	class := d.pulses.Next(width)

	bit, ok, resync := d.bits.Next(class)
	if resync {
		d.resync()
		return TimecodeFrame{}, false
	}
	if !ok {
		return TimecodeFrame{}, false
	}

	return d.shiftBit(bit)
}

// shiftBit adds a decoded bit to the window, and checks for a frame.
func (d *Decoder[T]) shiftBit(bit byte) (TimecodeFrame, bool) {
	d.stats.Bits++
	d.window.Shift(bit)
	if d.continuity < BitsPerFrame {
		d.continuity++
	}

	if !d.window.Synced() || d.continuity < BitsPerFrame {
		return TimecodeFrame{}, false
	}

	distance := 0
	if d.haveMatch {
		distance = d.sinceMatch
	}
	rate := d.rate.Peek(distance, d.pulses.CellWidth)

	tc, ok := d.window.Payload().Timecode(rate)
	if !ok {
		// The sync word showed up in the middle of other data.
		d.stats.Spurious++
		return TimecodeFrame{}, false
	}

	d.rate.Measure(distance)
	d.haveMatch = true
	d.sinceMatch = 0
	d.stats.Frames++
	return tc, true
}

// resync handles loss of sync. The window is kept as-is; only the pairing
// and the bookkeeping that depends on unbroken bits are dropped.
func (d *Decoder[T]) resync() {
	d.stats.Resyncs++
	d.continuity = 0
	d.haveMatch = false
	d.sinceMatch = 0
}

// CellWidth returns the current nominal bit cell width in samples.
func (d *Decoder[T]) CellWidth() float64 {
	return d.pulses.CellWidth
}

// FrameRate returns the current frame rate estimate.
func (d *Decoder[T]) FrameRate() FrameRate {
	return d.rate.Rate(d.pulses.CellWidth)
}

// Stats returns the decoder's counters.
func (d *Decoder[T]) Stats() Stats {
	return d.stats
}
