package wavfile

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-spectrogram/dsp/core"
)

const (
	formatPCM     = 1
	encodeDepth   = 16
	encodeMaxCode = 32767
)

// Info describes a decoded file before down-mixing.
type Info struct {
	SampleRate int
	Channels   int
	BitDepth   int
	Frames     int
}

// Decode reads a PCM WAV stream and returns mono samples in [-1, 1).
func Decode(r io.ReadSeeker) ([]float32, Info, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, Info{}, ErrNotWavFile
	}

	if dec.WavAudioFormat != formatPCM {
		return nil, Info{}, fmt.Errorf("%w: audio format %d", ErrUnsupportedLayout, dec.WavAudioFormat)
	}

	depth := int(dec.SampleBitDepth())
	switch depth {
	case 16, 24, 32:
	default:
		return nil, Info{}, fmt.Errorf("%w: %d bits per sample", ErrUnsupportedLayout, depth)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, Info{}, fmt.Errorf("wavfile: decode PCM: %w", err)
	}

	format := dec.Format()
	channels := format.NumChannels
	if channels < 1 {
		return nil, Info{}, fmt.Errorf("%w: %d channels", ErrUnsupportedLayout, channels)
	}

	info := Info{
		SampleRate: format.SampleRate,
		Channels:   channels,
		BitDepth:   depth,
		Frames:     len(buf.Data) / channels,
	}

	return downmix(buf.Data, channels, depth), info, nil
}

// Load opens path and decodes it with Decode.
func Load(path string) ([]float32, Info, error) {
	if path == "" {
		return nil, Info{}, errEmptyPath
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, Info{}, fmt.Errorf("wavfile: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Encode writes samples as 16-bit mono PCM. Values outside [-1, 1] are
// clipped.
func Encode(w io.WriteSeeker, samples []float32, sampleRate int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("%w: sample rate must be > 0: %d", core.ErrArgument, sampleRate)
	}

	enc := wav.NewEncoder(w, sampleRate, encodeDepth, 1, formatPCM)

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 1,
			SampleRate:  sampleRate,
		},
		Data:           make([]int, len(samples)),
		SourceBitDepth: encodeDepth,
	}
	for i, s := range samples {
		v := core.Clamp(float64(s), -1, 1)
		buf.Data[i] = int(math.Round(v * encodeMaxCode))
	}

	if err := enc.Write(buf); err != nil {
		_ = enc.Close()
		return fmt.Errorf("wavfile: encode: %w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("wavfile: finalize: %w", err)
	}

	return nil
}

// Save writes samples to path with Encode.
func Save(path string, samples []float32, sampleRate int) (err error) {
	if path == "" {
		return errEmptyPath
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("wavfile: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("wavfile: %w", cerr)
		}
	}()

	return Encode(f, samples, sampleRate)
}

func downmix(data []int, channels, depth int) []float32 {
	frames := len(data) / channels
	out := make([]float32, frames)
	scale := 1 / (math.Exp2(float64(depth-1)) * float64(channels))

	for i := range frames {
		sum := 0
		for _, v := range data[i*channels : (i+1)*channels] {
			sum += v
		}

		out[i] = float32(float64(sum) * scale)
	}

	return out
}
