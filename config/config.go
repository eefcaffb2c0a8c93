// Package config loads decoder tuning from YAML files.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/edorfaus/ltc-decode/ltc"
)

// Load reads the YAML tuning file at path. Settings missing from the
// file keep their ltc.DefaultConfig values.
func Load(path string) (ltc.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return ltc.Config{}, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return ltc.Config{}, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML tuning document from r, over the default
// configuration, and validates the result.
//
// The sample rate is usually left out, since it comes from the input; it
// is then 0, and only the tuning is validated.
func LoadFromReader(r io.Reader) (ltc.Config, error) {
	cfg := ltc.DefaultConfig(0)

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return ltc.Config{}, fmt.Errorf("config: decode yaml: %w", err)
	}

	var err error
	if cfg.SampleRate == 0 {
		err = cfg.ValidateTuning()
	} else {
		err = cfg.Validate()
	}
	if err != nil {
		return ltc.Config{}, err
	}
	return cfg, nil
}

// ForRate returns cfg with the sample rate set, unless the file set one.
func ForRate(cfg ltc.Config, sampleRate int) ltc.Config {
	if cfg.SampleRate == 0 {
		cfg.SampleRate = sampleRate
	}
	return cfg
}
