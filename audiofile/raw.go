package audiofile

import (
	"bufio"
	"encoding/binary"
	"errors"
	"io"
)

// RawBitDepth is the sample size read by RawReader.
const RawBitDepth = 16

// RawReader reads headerless signed 16-bit little-endian mono PCM, one
// sample at a time, as produced by e.g. `arecord -t raw -f S16_LE`.
type RawReader struct {
	r   *bufio.Reader
	buf [2]byte
}

func NewRawReader(r io.Reader) *RawReader {
	return &RawReader{r: bufio.NewReaderSize(r, 64*1024)}
}

// Next returns the next sample. At the end of the input it returns
// io.EOF, or io.ErrUnexpectedEOF if the input ended inside a sample.
func (r *RawReader) Next() (int16, error) {
	if _, err := io.ReadFull(r.r, r.buf[:]); err != nil {
		return 0, err
	}
	return int16(binary.LittleEndian.Uint16(r.buf[:])), nil
}

// ReadAll reads the remaining samples.
func (r *RawReader) ReadAll() ([]int16, error) {
	var out []int16
	for {
		s, err := r.Next()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, s)
	}
}
