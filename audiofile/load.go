package audiofile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"

	"github.com/edorfaus/ltc-decode/log"
)

var (
	// ErrUnsupportedFormat is returned for files that are not WAVE, FLAC
	// or MP3, judging by their extension.
	ErrUnsupportedFormat = errors.New("unsupported audio file format")

	// ErrBadChannel is returned when the requested channel does not exist.
	ErrBadChannel = errors.New("no such channel")
)

type Meta struct {
	SampleRate  int
	BitDepth    int
	NumChannels int
}

func readFile(filename string) ([]byte, error) {
	defer log.Time(1, "Reading: %v ...", filename)(" done in")
	return os.ReadFile(filename)
}

// LoadChannel loads the samples of one channel from the given WAVE, FLAC
// or MP3 file. Channels are numbered from 0; a negative channel counts from the
// end, so -1 is the last channel (the right one, if stereo).
func LoadChannel(filename string, channel int) ([]int, Meta, error) {
	var (
		data []int
		meta Meta
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".wav", ".wave":
		data, meta, err = LoadInterleaved(filename)
	case ".flac":
		data, meta, err = LoadFLACInterleaved(filename)
	case ".mp3":
		data, meta, err = LoadMP3Interleaved(filename)
	default:
		return nil, Meta{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, Meta{}, err
	}
	return ExtractChannel(data, meta, channel)
}

// ExtractChannel returns the samples of one channel of interleaved data,
// numbered as for LoadChannel.
func ExtractChannel(data []int, meta Meta, channel int) ([]int, Meta, error) {
	n := meta.NumChannels
	if channel < 0 {
		channel += n
	}
	if channel < 0 || channel >= n {
		return nil, Meta{}, fmt.Errorf(
			"%w: channel %v of %v", ErrBadChannel, channel, n,
		)
	}
	if n == 1 {
		return data, meta, nil
	}

	defer log.Time(1, "Extracting channel %v...", channel)(" done in")

	// Make a new buffer so we can release the oversized one.
	out := make([]int, len(data)/n)

	for i, j := 0, channel; i < len(out); i, j = i+1, j+n {
		out[i] = data[j]
	}

	meta.NumChannels = 1

	return out, meta, nil
}

// LoadInterleaved loads the wave samples from the given file, without
// de-interleaving them if there's more than one channel.
func LoadInterleaved(filename string) ([]int, Meta, error) {
	fileData, err := readFile(filename)
	if err != nil {
		return nil, Meta{}, err
	}
	data, meta, err := DecodeWAV(bytes.NewReader(fileData))
	if err != nil {
		return nil, Meta{}, fmt.Errorf("%v: %w", filename, err)
	}
	return data, meta, nil
}

// DecodeWAV decodes a PCM WAVE stream into interleaved samples.
func DecodeWAV(r io.ReadSeeker) ([]int, Meta, error) {
	defer log.Time(1, "Decoding WAVE data...\n")("Decoding done in")

	d := wav.NewDecoder(r)
	if err := d.FwdToPCM(); err != nil {
		return nil, Meta{}, err
	}

	meta := Meta{
		SampleRate:  int(d.SampleRate),
		BitDepth:    int(d.BitDepth),
		NumChannels: int(d.NumChans),
	}
	if meta.BitDepth < 8 || meta.BitDepth > 32 || meta.BitDepth%8 != 0 {
		return nil, Meta{}, fmt.Errorf(
			"%w: bit depth %v", ErrUnsupportedFormat, meta.BitDepth,
		)
	}
	if meta.NumChannels < 1 || meta.SampleRate < 1 {
		return nil, Meta{}, fmt.Errorf("missing or bad PCM format information")
	}

	expected := int(d.PCMLen() / int64(meta.BitDepth/8))
	log.Ln(2, "Expected samples:", expected)

	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, Meta{}, err
	}
	log.Ln(2, "     Got samples:", len(buf.Data))

	if n := len(buf.Data); n != expected {
		log.Warnf("data chunk holds %v samples, got %v", expected, n)
	}
	if n := len(buf.Data) % meta.NumChannels; n != 0 {
		// Drop the partial sample frame at the end.
		buf.Data = buf.Data[:len(buf.Data)-n]
	}

	return buf.Data, meta, nil
}
