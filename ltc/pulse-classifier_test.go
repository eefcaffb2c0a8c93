package ltc

import (
	"math"
	"testing"

	"github.com/edorfaus/ltc-decode/filter"
)

func TestClassifyWidth(t *testing.T) {
	tests := []struct {
		width float64
		want  PulseClass
	}{
		{0, PulseInvalid},
		{7.4, PulseInvalid},
		{7.5, PulseShort},
		{10, PulseShort},
		{12.5, PulseShort},
		{12.6, PulseInvalid},
		{14.9, PulseInvalid},
		{15, PulseLong},
		{20, PulseLong},
		{25, PulseLong},
		{25.1, PulseInvalid},
		{40, PulseInvalid},
	}
	for _, tt := range tests {
		if got := ClassifyWidth(tt.width, 20, 0.25); got != tt.want {
			t.Errorf("ClassifyWidth(%v, 20, 0.25) = %v, want %v", tt.width, got, tt.want)
		}
	}
}

func TestPulseClassifier(t *testing.T) {
	c := NewPulseClassifier(DefaultConfig(48000))
	if c.CellWidth != 24 {
		t.Fatalf("initial CellWidth = %v, want 24", c.CellWidth)
	}
	if math.Abs(c.MinCellWidth-18) > 1e-9 || math.Abs(c.MaxCellWidth-27.5) > 1e-9 {
		t.Errorf("bounds = [%v, %v], want [18, 27.5]", c.MinCellWidth, c.MaxCellWidth)
	}

	// SHORT pulses do not move the cell width.
	if got := c.Next(12); got != PulseShort {
		t.Errorf("Next(12) = %v, want S", got)
	}
	if c.CellWidth != 24 {
		t.Errorf("CellWidth after SHORT = %v, want 24", c.CellWidth)
	}

	// Each LONG moves it an eighth of the way.
	if got := c.Next(20); got != PulseLong {
		t.Errorf("Next(20) = %v, want L", got)
	}
	if c.CellWidth != 23.5 {
		t.Errorf("CellWidth after LONG = %v, want 23.5", c.CellWidth)
	}

	// Following a 30 fps signal.
	for i := 0; i < 100; i++ {
		if got := c.Next(20); got != PulseLong {
			t.Fatalf("pulse %d: Next(20) = %v, want L", i, got)
		}
	}
	if w := c.CellWidth; w < 19.99 || w > 20.01 {
		t.Errorf("CellWidth = %v, want about 20", w)
	}
	if got := c.Next(10); got != PulseShort {
		t.Errorf("Next(10) = %v, want S", got)
	}
	if got := c.Next(24); got != PulseLong {
		t.Errorf("Next(24) = %v, want L", got)
	}
	if got := c.Next(30); got != PulseInvalid {
		t.Errorf("Next(30) = %v, want I", got)
	}
}

func TestPulseClassifier_Clamp(t *testing.T) {
	c := NewPulseClassifier(DefaultConfig(48000))
	c.Smoothing = 1
	for i := 0; i < 10; i++ {
		c.Next(19)
		c.Next(15)
	}
	if c.CellWidth != c.MinCellWidth {
		t.Errorf("CellWidth = %v, want clamped to %v", c.CellWidth, c.MinCellWidth)
	}

	c.SetCellWidth(1000)
	if c.CellWidth != c.MaxCellWidth {
		t.Errorf("SetCellWidth(1000): CellWidth = %v, want %v", c.CellWidth, c.MaxCellWidth)
	}
}

func TestPulseClass_String(t *testing.T) {
	var got string
	for _, c := range []PulseClass{PulseNone, PulseShort, PulseLong, PulseInvalid} {
		got += c.String()
	}
	if got != "-SLI" {
		t.Errorf("got %q, want %q", got, "-SLI")
	}
	if s := PulseClass(9).String(); s != "[bad PulseClass=9]" {
		t.Errorf("PulseClass(9).String() = %q", s)
	}
}

func TestEdgeDetect(t *testing.T) {
	const (
		U = filter.PolarityUnknown
		L = filter.PolarityLow
		H = filter.PolarityHigh
	)
	pols := []filter.Polarity{U, U, H, H, L, L, L, H, H, H, H, U, L, H}
	// The first edge (sample 4) only starts the count, and unknown
	// polarity is not counted.
	want := map[int]int{7: 3, 12: 4, 13: 1}

	var e EdgeDetect
	for i, p := range pols {
		width, ok := e.Next(p)
		if w, exp := want[i]; exp {
			if !ok || width != w {
				t.Errorf("sample %d: got %v %v, want %v true", i, width, ok, w)
			}
		} else if ok {
			t.Errorf("sample %d: unexpected edge of width %v", i, width)
		}
	}

	e.Reset()
	if _, ok := e.Next(filter.PolarityHigh); ok {
		t.Error("edge right after Reset")
	}
	if _, ok := e.Next(filter.PolarityLow); ok {
		t.Error("first edge after Reset should only start the count")
	}
}

func TestEdgeDetect_Saturates(t *testing.T) {
	e := EdgeDetect{Prev: filter.PolarityHigh, Count: maxWidth - 1, counting: true}
	for i := 0; i < 10; i++ {
		e.Next(filter.PolarityHigh)
	}
	width, ok := e.Next(filter.PolarityLow)
	if !ok || width != maxWidth {
		t.Errorf("got %v %v, want %v true", width, ok, maxWidth)
	}
}

func TestBitDecoder(t *testing.T) {
	const (
		S = PulseShort
		L = PulseLong
		I = PulseInvalid
	)
	tests := []struct {
		name    string
		pulses  []PulseClass
		bits    string
		resyncs int
	}{
		{"unaligned shorts dropped", []PulseClass{S, S, S, L}, "0", 0},
		{"zeros", []PulseClass{L, L, L}, "000", 0},
		{"ones", []PulseClass{L, S, S, S, S}, "011", 0},
		{"mixed", []PulseClass{L, S, S, L, S, S, L}, "01010", 0},
		{"short then long", []PulseClass{L, S, L, L}, "00", 1},
		{"realigns after violation", []PulseClass{L, S, L, S, S, L}, "00", 1},
		{"invalid while aligned", []PulseClass{L, I, S, S, L, S, S}, "001", 1},
		{"invalid while unaligned", []PulseClass{I, S, I, L}, "0", 0},
		{"odd pending then invalid", []PulseClass{L, S, I}, "0", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d BitDecoder
			var got []byte
			resyncs := 0
			for _, p := range tt.pulses {
				bit, ok, resync := d.Next(p)
				if resync {
					resyncs++
				}
				if ok {
					got = append(got, '0'+bit)
				}
			}
			if string(got) != tt.bits {
				t.Errorf("bits = %q, want %q", got, tt.bits)
			}
			if resyncs != tt.resyncs {
				t.Errorf("resyncs = %v, want %v", resyncs, tt.resyncs)
			}
		})
	}
}
