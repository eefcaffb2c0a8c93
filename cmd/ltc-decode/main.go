package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alexflint/go-arg"

	"github.com/edorfaus/ltc-decode/audiofile"
	"github.com/edorfaus/ltc-decode/config"
	"github.com/edorfaus/ltc-decode/filter"
	"github.com/edorfaus/ltc-decode/log"
	"github.com/edorfaus/ltc-decode/ltc"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var args = struct {
	Input string `arg:"positional" help:"input wav, flac or mp3 file"`

	Config  string `help:"YAML file with decoder tuning"`
	Channel int    `help:"input channel to decode; negative counts from the end"`

	Raw  bool `help:"read raw signed 16-bit little-endian mono PCM from stdin"`
	Rate int  `help:"sampling rate of the raw input"`

	NoiseFloor int  `help:"noise floor; -1 means use 2% of max"`
	Samples    bool `help:"print the sample index and time of each frame"`
	Stats      bool `help:"print decoder statistics at the end"`

	LogLevel int  `help:"log level; -1 silences warnings"`
	Debug    bool `help:"print verbose debug info (log level 4)"`
}{
	Channel:    -1,
	Rate:       48000,
	NoiseFloor: -1,
	LogLevel:   1,
}

var errNoInput = errors.New("no input file given (use --raw to read stdin)")

func run() error {
	arg.MustParse(&args)

	log.Level = args.LogLevel
	if args.Debug {
		log.Level = 4
	}

	cfg := ltc.DefaultConfig(0)
	if args.Config != "" {
		var err error
		if cfg, err = config.Load(args.Config); err != nil {
			return err
		}
	}

	if args.Raw {
		return decodeRaw(cfg, os.Stdin)
	}
	if args.Input == "" {
		return errNoInput
	}
	return decodeFile(cfg)
}

func decodeFile(cfg ltc.Config) error {
	samples, meta, err := audiofile.LoadChannel(args.Input, args.Channel)
	if err != nil {
		return err
	}
	rate, bits := meta.SampleRate, meta.BitDepth

	type d = time.Duration
	log.F(
		1, "Input: %v %v-bit samples at %v Hz = %v\n",
		len(samples), bits, rate, d(len(samples))*time.Second/d(rate),
	)
	if log.Enabled(2) {
		l, h := filter.LowHigh(samples)
		log.F(2, "Input sample min: %v, max: %v\n", l, h)
	}

	dec, err := ltc.NewDecoderConfig[int](setup(cfg, rate, bits))
	if err != nil {
		return err
	}

	defer log.Time(1, "Decoding...\n")("Decoding done in")

	out := newPrinter(rate)
	for i, s := range samples {
		if tc, ok := dec.Step(s); ok {
			out.frame(i, tc)
		}
	}
	out.stats(dec.Stats())
	return nil
}

func decodeRaw(cfg ltc.Config, in io.Reader) error {
	rate := args.Rate
	if cfg.SampleRate != 0 {
		rate = cfg.SampleRate
	}

	dec, err := ltc.NewDecoderConfig[int16](
		setup(cfg, rate, audiofile.RawBitDepth),
	)
	if err != nil {
		return err
	}

	log.F(1, "Reading raw %v-bit samples at %v Hz from stdin\n",
		audiofile.RawBitDepth, rate)

	r := audiofile.NewRawReader(in)
	out := newPrinter(rate)
	for i := 0; ; i++ {
		s, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			out.stats(dec.Stats())
			return fmt.Errorf("reading stdin: %w", err)
		}
		if tc, ok := dec.Step(s); ok {
			out.frame(i, tc)
		}
	}
	out.stats(dec.Stats())
	return nil
}

// setup finishes the decoder configuration for the input.
func setup(cfg ltc.Config, rate, bits int) ltc.Config {
	cfg = config.ForRate(cfg, rate)
	if args.NoiseFloor >= 0 {
		cfg.NoiseFloor = float64(args.NoiseFloor)
	} else if cfg.NoiseFloor == 0 {
		cfg.NoiseFloor = float64(filter.DefaultNoiseFloor(bits))
	}
	log.F(
		2, "Tolerance: %v, hysteresis: %v, noise floor: %v\n",
		cfg.Tolerance, cfg.Hysteresis, cfg.NoiseFloor,
	)
	return cfg
}

type printer struct {
	rate int
	prev ltc.TimecodeFrame
	have bool
}

func newPrinter(rate int) *printer {
	return &printer{rate: rate}
}

func (p *printer) frame(index int, tc ltc.TimecodeFrame) {
	if p.have && !tc.SameTime(p.prev.Next()) {
		log.Warnf("timecode jumped from %v to %v", p.prev, tc)
	}
	p.prev, p.have = tc, true

	flags := ""
	if tc.DropFrame {
		flags += " DF"
	}
	if tc.ColorFrame {
		flags += " CF"
	}
	if log.Enabled(3) && tc.UserBits != 0 {
		flags += fmt.Sprintf(" UB=%08x", tc.UserBits)
	}

	if args.Samples {
		type d = time.Duration
		at := d(index) * time.Second / d(p.rate)
		fmt.Printf("%v @%v%v\t%v\t%v\n", tc, tc.FrameRate, flags, index, at)
	} else {
		fmt.Printf("%v @%v%v\n", tc, tc.FrameRate, flags)
	}
}

func (p *printer) stats(s ltc.Stats) {
	lvl := 1
	if args.Stats {
		lvl = 0
	}
	log.F(
		lvl, "Samples: %v, bits: %v, frames: %v, spurious: %v, resyncs: %v\n",
		s.Samples, s.Bits, s.Frames, s.Spurious, s.Resyncs,
	)
}
