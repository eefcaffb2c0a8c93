package audiofile

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/hajimehoshi/go-mp3"

	"github.com/edorfaus/ltc-decode/log"
)

// The MP3 decoder always produces 16-bit little-endian stereo.
const (
	mp3Channels = 2
	mp3BitDepth = 16
)

// LoadMP3Interleaved decodes the given MP3 file into interleaved stereo
// samples.
func LoadMP3Interleaved(filename string) ([]int, Meta, error) {
	fileData, err := readFile(filename)
	if err != nil {
		return nil, Meta{}, err
	}
	return DecodeMP3(bytes.NewReader(fileData))
}

// DecodeMP3 decodes an MP3 stream into interleaved stereo samples.
func DecodeMP3(r io.Reader) ([]int, Meta, error) {
	defer log.Time(1, "Decoding MP3 data...\n")("Decoding done in")

	d, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, Meta{}, fmt.Errorf("failed to decode MP3: %w", err)
	}

	pcm, err := io.ReadAll(d)
	if err != nil {
		return nil, Meta{}, fmt.Errorf("failed to decode MP3: %w", err)
	}
	if len(pcm)%2 != 0 {
		log.Warn("MP3 data ended in the middle of a sample")
	}

	out := make([]int, len(pcm)/2)
	for i := range out {
		out[i] = int(int16(binary.LittleEndian.Uint16(pcm[i*2:])))
	}
	log.Ln(2, "Got samples:", len(out))

	meta := Meta{
		SampleRate:  d.SampleRate(),
		BitDepth:    mp3BitDepth,
		NumChannels: mp3Channels,
	}
	return out, meta, nil
}
