package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/edorfaus/ltc-decode/ltc"
)

func TestLoadFromReader(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want func(*ltc.Config)
	}{
		{"empty", "", func(*ltc.Config) {}},
		{"comment only", "# nothing here\n", func(*ltc.Config) {}},
		{
			"tuning",
			"tolerance: 0.3\nhysteresis: 0.05\nnoise_floor: 655\n",
			func(c *ltc.Config) {
				c.Tolerance = 0.3
				c.Hysteresis = 0.05
				c.NoiseFloor = 655
			},
		},
		{
			"with rate",
			"sample_rate: 44100\nsmoothing: 0.5\ncenter_time: 0.01\nwidth_margin: 0.2\n",
			func(c *ltc.Config) {
				c.SampleRate = 44100
				c.Smoothing = 0.5
				c.CenterTime = 0.01
				c.WidthMargin = 0.2
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LoadFromReader(strings.NewReader(tt.yaml))
			if err != nil {
				t.Fatalf("LoadFromReader: %v", err)
			}
			want := ltc.DefaultConfig(0)
			tt.want(&want)
			if got != want {
				t.Errorf("got %+v, want %+v", got, want)
			}
		})
	}
}

func TestLoadFromReader_Errors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		invalid bool
	}{
		{"unknown key", "tolerence: 0.2\n", false},
		{"bad type", "tolerance: lots\n", false},
		{"not a mapping", "- 1\n- 2\n", false},
		{"tolerance too large", "tolerance: 0.4\n", true},
		{"negative rate", "sample_rate: -1\n", true},
		{"zero center time", "center_time: 0\n", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromReader(strings.NewReader(tt.yaml))
			if err == nil {
				t.Fatal("no error")
			}
			if got := errors.Is(err, ltc.ErrInvalidConfiguration); got != tt.invalid {
				t.Errorf("errors.Is(%v, ErrInvalidConfiguration) = %v, want %v", err, got, tt.invalid)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "ltc.yaml")
	if err := os.WriteFile(fn, []byte("tolerance: 0.2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(fn)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Tolerance != 0.2 {
		t.Errorf("Tolerance = %v, want 0.2", cfg.Tolerance)
	}

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file: err = %v, want os.ErrNotExist", err)
	}
}

func TestForRate(t *testing.T) {
	cfg := ForRate(ltc.DefaultConfig(0), 48000)
	if cfg.SampleRate != 48000 {
		t.Errorf("SampleRate = %v, want 48000", cfg.SampleRate)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}

	cfg = ForRate(ltc.DefaultConfig(96000), 48000)
	if cfg.SampleRate != 96000 {
		t.Errorf("SampleRate = %v, want the configured 96000", cfg.SampleRate)
	}
}
