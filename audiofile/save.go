package audiofile

import (
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/edorfaus/ltc-decode/log"
)

// SaveMono writes the samples as a mono PCM WAVE file.
func SaveMono(fn string, samples []int, rate, bits int) error {
	return SaveInterleaved(fn, samples, Meta{
		SampleRate:  rate,
		BitDepth:    bits,
		NumChannels: 1,
	})
}

// SaveInterleaved writes interleaved samples as a PCM WAVE file.
func SaveInterleaved(fn string, samples []int, meta Meta) (er error) {
	defer log.Time(1, "Saving WAVE to: %v ...", fn)(" done in")

	f, err := os.Create(fn)
	if err != nil {
		return err
	}
	defer func() {
		if err := f.Close(); err != nil && er == nil {
			er = err
		}
	}()

	const pcmFormat = 1
	e := wav.NewEncoder(
		f, meta.SampleRate, meta.BitDepth, meta.NumChannels, pcmFormat,
	)

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: meta.NumChannels,
			SampleRate:  meta.SampleRate,
		},

		Data: samples,

		SourceBitDepth: meta.BitDepth,
	}
	if err := e.Write(buf); err != nil {
		return err
	}

	return e.Close()
}
