package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/cwbudde/algo-spectrogram/audio/wavfile"
	"github.com/cwbudde/algo-spectrogram/dsp/core"
	"github.com/cwbudde/algo-spectrogram/dsp/signal"
)

type sourceConfig struct {
	kind      string
	f0, f1    float64
	amplitude float64
	duration  time.Duration
	seed      int64
	blockSize int
}

// loadSource returns mono samples and their rate. A WAV file dictates the
// rate; generated signals use sampleRate.
func loadSource(path string, src sourceConfig, sampleRate float64) ([]float32, float64, error) {
	if path != "" {
		samples, info, err := wavfile.Load(path)
		if err != nil {
			return nil, 0, err
		}
		return samples, float64(info.SampleRate), nil
	}

	samples, err := generate(src, sampleRate)
	if err != nil {
		return nil, 0, err
	}
	return samples, sampleRate, nil
}

func generate(src sourceConfig, sampleRate float64) ([]float32, error) {
	gen := signal.NewGeneratorWithOptions(
		[]core.ProcessorOption{core.WithSampleRate(sampleRate), core.WithBlockSize(src.blockSize)},
		signal.WithSeed(src.seed),
	)
	if err := gen.Config().Validate(); err != nil {
		return nil, err
	}

	n := int(src.duration.Seconds() * sampleRate)

	switch strings.ToLower(src.kind) {
	case "sine":
		return gen.Sine(src.f0, src.amplitude, n)
	case "chirp":
		return gen.Chirp(src.f0, src.f1, src.amplitude, n)
	case "noise":
		return gen.WhiteNoise(src.amplitude, n)
	default:
		return nil, fmt.Errorf("%w: unknown signal %q", core.ErrConfiguration, src.kind)
	}
}
