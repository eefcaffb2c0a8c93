package main

import (
	"fmt"
	"math"
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
	Stats   bool   `help:"print some statistics"`
	Input   string `arg:"positional,required" help:"input wav, flac or mp3 file"`
	Output  string `arg:"positional" help:"output wav file"`
	Channel int    `help:"input channel to use; negative counts from the end"`
	Config  string `help:"YAML file with decoder tuning"`
	Debug   bool   `help:"print verbose debug info (log level 4)"`

	NoiseFloor int  `help:"noise floor; -1 means use 2% of max"`
	Offsets    bool `help:"output the tracked center instead of adjusted samples"`
	Polarity   bool `help:"output the detected polarity as a square wave"`
}{
	Output:     "out.wav",
	Channel:    -1,
	NoiseFloor: -1,
}

func run() error {
	arg.MustParse(&args)

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

	samples, meta, err := audiofile.LoadChannel(args.Input, args.Channel)
	if err != nil {
		return err
	}
	rate, bits := meta.SampleRate, meta.BitDepth

	type d = time.Duration
	fmt.Printf(
		"Input: %v %v-bit samples at %v Hz = %v\n",
		len(samples), bits, rate, d(len(samples))*time.Second/d(rate),
	)

	if args.Stats {
		l, h := filter.LowHigh(samples)
		fmt.Printf("Input sample min: %v, max: %v\n", l, h)
	}

	cfg = config.ForRate(cfg, rate)
	if args.NoiseFloor >= 0 {
		cfg.NoiseFloor = float64(args.NoiseFloor)
	} else if cfg.NoiseFloor == 0 {
		cfg.NoiseFloor = float64(filter.DefaultNoiseFloor(bits))
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	output, flips := runFilter(cfg, samples, bits)

	if args.Stats {
		l, h := filter.LowHigh(output)
		fmt.Printf("Output sample min: %v, max: %v\n", l, h)
		fmt.Printf("Polarity changes: %v\n", flips)
	}

	return audiofile.SaveMono(args.Output, output, rate, bits)
}

func runFilter(cfg ltc.Config, samples []int, bits int) ([]int, int) {
	defer log.Time(1, "Running filter...\n")("Filter done in")

	log.F(
		1, "Noise floor: %v, hysteresis: %v, decay: %.3g\n",
		cfg.NoiseFloor, cfg.Hysteresis, cfg.Decay(),
	)

	c := filter.NewConditioner[int](cfg.Decay(), cfg.Hysteresis, cfg.NoiseFloor)
	low, high := sampleRange(bits)
	zero := 0
	if bits == 8 {
		// 8-bit WAVE samples are unsigned.
		zero = 128
	}

	output := make([]int, len(samples))
	flips := 0
	prev := filter.PolarityUnknown
	for i, s := range samples {
		x, pol := c.Push(s)
		if pol != prev && prev != filter.PolarityUnknown {
			flips++
		}
		prev = pol

		var v float64
		switch {
		case args.Offsets:
			v = c.Center()
		case args.Polarity:
			v = float64(zero) + polarityLevel(pol)*float64(high-zero)*0.5
		default:
			v = float64(zero) + x
		}
		output[i] = clamp(int(math.Round(v)), low, high)
	}
	return output, flips
}

func polarityLevel(p filter.Polarity) float64 {
	switch p {
	case filter.PolarityHigh:
		return 1
	case filter.PolarityLow:
		return -1
	}
	return 0
}

func sampleRange(bits int) (int, int) {
	if bits == 8 {
		return 0, 255
	}
	m := 1 << (bits - 1)
	return -m, m - 1
}

func clamp(v, low, high int) int {
	return max(low, min(v, high))
}
