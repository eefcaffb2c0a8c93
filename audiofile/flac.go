package audiofile

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/mewkiz/flac"

	"github.com/edorfaus/ltc-decode/log"
)

// LoadFLACInterleaved decodes the given FLAC file into interleaved
// samples.
func LoadFLACInterleaved(filename string) ([]int, Meta, error) {
	fileData, err := readFile(filename)
	if err != nil {
		return nil, Meta{}, err
	}
	return DecodeFLAC(bytes.NewReader(fileData))
}

// DecodeFLAC decodes a FLAC stream into interleaved samples.
func DecodeFLAC(r io.Reader) ([]int, Meta, error) {
	defer log.Time(1, "Decoding FLAC data...\n")("Decoding done in")

	stream, err := flac.New(r)
	if err != nil {
		return nil, Meta{}, fmt.Errorf("failed to decode FLAC: %w", err)
	}
	defer stream.Close()

	info := stream.Info
	meta := Meta{
		SampleRate:  int(info.SampleRate),
		BitDepth:    int(info.BitsPerSample),
		NumChannels: int(info.NChannels),
	}
	if meta.NumChannels < 1 {
		return nil, Meta{}, fmt.Errorf("missing or bad FLAC stream info")
	}
	log.Ln(2, "Expected samples:", info.NSamples*uint64(meta.NumChannels))

	out := make([]int, 0, int(info.NSamples)*meta.NumChannels)
	for {
		frame, err := stream.ParseNext()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, Meta{}, fmt.Errorf("failed to decode FLAC: %w", err)
		}
		if len(frame.Subframes) != meta.NumChannels {
			return nil, Meta{}, fmt.Errorf(
				"FLAC frame has %v channels, expected %v",
				len(frame.Subframes), meta.NumChannels,
			)
		}
		for i := 0; i < int(frame.BlockSize); i++ {
			for _, sub := range frame.Subframes {
				out = append(out, int(sub.Samples[i]))
			}
		}
	}
	log.Ln(2, "     Got samples:", len(out))

	return out, meta, nil
}
