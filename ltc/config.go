package ltc

// Config holds the decoder's construction parameters.
//
// Only SampleRate is required; the rest is tuning, where DefaultConfig
// gives values that work for clean and moderately degraded signals.
type Config struct {
	// Input sampling rate in Hz.
	SampleRate int `yaml:"sample_rate"`

	// Pulse width tolerance, as a fraction of the nominal half or full
	// cell width. Must be below 1/3 so the SHORT and LONG windows do not
	// overlap.
	Tolerance float64 `yaml:"tolerance"`

	// How far each LONG pulse moves the nominal cell width toward its
	// own width, in (0, 1].
	Smoothing float64 `yaml:"smoothing"`

	// How far outside the 24..30 fps cell widths the nominal cell width
	// may wander.
	WidthMargin float64 `yaml:"width_margin"`

	// Hysteresis band half-width, as a fraction of the signal span.
	Hysteresis float64 `yaml:"hysteresis"`

	// Time constant in seconds of the signal envelope decay.
	CenterTime float64 `yaml:"center_time"`

	// Signal spans no larger than twice this (in sample units) are
	// treated as silence.
	NoiseFloor float64 `yaml:"noise_floor"`
}

// DefaultConfig returns the default configuration for the given rate.
func DefaultConfig(sampleRate int) Config {
	return Config{
		SampleRate:  sampleRate,
		Tolerance:   0.25,
		Smoothing:   0.125,
		WidthMargin: 0.1,
		Hysteresis:  0.1,
		CenterTime:  0.02,
	}
}

// Validate checks the whole configuration, including the sample rate.
func (c Config) Validate() error {
	if c.SampleRate <= 0 {
		return invalidConfig("sample rate must be positive: %v", c.SampleRate)
	}
	return c.ValidateTuning()
}

// ValidateTuning checks everything except the sample rate, for when that
// is not known yet (e.g. a tuning file loaded before the input).
func (c Config) ValidateTuning() error {
	if !(c.Tolerance > 0 && c.Tolerance < 1.0/3) {
		return invalidConfig("tolerance must be in (0, 1/3): %v", c.Tolerance)
	}
	if !(c.Smoothing > 0 && c.Smoothing <= 1) {
		return invalidConfig("smoothing must be in (0, 1]: %v", c.Smoothing)
	}
	if !(c.WidthMargin >= 0 && c.WidthMargin < 1) {
		return invalidConfig("width margin must be in [0, 1): %v", c.WidthMargin)
	}
	if !(c.Hysteresis >= 0 && c.Hysteresis < 1) {
		return invalidConfig("hysteresis must be in [0, 1): %v", c.Hysteresis)
	}
	if !(c.CenterTime > 0) {
		return invalidConfig("center time must be positive: %v", c.CenterTime)
	}
	if !(c.NoiseFloor >= 0) {
		return invalidConfig("noise floor must not be negative: %v", c.NoiseFloor)
	}
	return nil
}

// Decay converts CenterTime into the per-sample envelope decay factor
// used by the signal conditioner.
func (c Config) Decay() float64 {
	d := 1 / (c.CenterTime * float64(c.SampleRate))
	if d > 1 {
		d = 1
	}
	return d
}
