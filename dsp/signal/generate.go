// Package signal generates deterministic mono test signals for feeding the
// spectrogram pipeline.
package signal

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-spectrogram/dsp/core"
)

// Generator creates deterministic signals from a shared configuration.
type Generator struct {
	cfg  core.ProcessorConfig
	seed int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets deterministic random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a configured signal generator.
func NewGenerator(opts ...core.ProcessorOption) *Generator {
	return NewGeneratorWithOptions(opts)
}

// NewGeneratorWithOptions creates a configured signal generator with signal-specific options.
func NewGeneratorWithOptions(coreOpts []core.ProcessorOption, opts ...Option) *Generator {
	g := &Generator{
		cfg:  core.ApplyProcessorOptions(coreOpts...),
		seed: 1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Config returns the generator processor configuration.
func (g *Generator) Config() core.ProcessorConfig {
	return g.cfg
}

// SetSeed changes the noise seed.
func (g *Generator) SetSeed(seed int64) { g.seed = seed }

// Seed returns the noise seed.
func (g *Generator) Seed() int64 { return g.seed }

// Sine generates a sine wave starting at phase 0.
func (g *Generator) Sine(freqHz, amplitude float64, samples int) ([]float32, error) {
	if err := g.validate("sine", samples); err != nil {
		return nil, err
	}
	out := make([]float32, samples)
	step := 2 * math.Pi * freqHz / g.cfg.SampleRate
	for i := range out {
		out[i] = float32(amplitude * math.Sin(step*float64(i)))
	}
	return out, nil
}

// Chirp generates a linear frequency sweep from startHz to endHz over the
// given number of samples.
func (g *Generator) Chirp(startHz, endHz, amplitude float64, samples int) ([]float32, error) {
	if err := g.validate("chirp", samples); err != nil {
		return nil, err
	}
	nyquist := g.cfg.SampleRate / 2
	if startHz < 0 || endHz < 0 || startHz > nyquist || endHz > nyquist {
		return nil, fmt.Errorf("%w: chirp range %g..%g Hz outside [0, %g]", core.ErrArgument, startHz, endHz, nyquist)
	}

	out := make([]float32, samples)
	duration := float64(samples) / g.cfg.SampleRate
	rate := (endHz - startHz) / duration
	for i := range out {
		t := float64(i) / g.cfg.SampleRate
		phase := 2 * math.Pi * (startHz*t + 0.5*rate*t*t)
		out[i] = float32(amplitude * math.Sin(phase))
	}
	return out, nil
}

// WhiteNoise generates deterministic white noise in [-amplitude, amplitude].
func (g *Generator) WhiteNoise(amplitude float64, samples int) ([]float32, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("%w: noise samples must be > 0: %d", core.ErrArgument, samples)
	}
	if amplitude < 0 {
		return nil, fmt.Errorf("%w: noise amplitude must be >= 0: %f", core.ErrArgument, amplitude)
	}
	out := make([]float32, samples)
	rng := rand.New(rand.NewSource(g.seed))
	for i := range out {
		out[i] = float32((rng.Float64()*2 - 1) * amplitude)
	}
	return out, nil
}

// Normalize scales data to target peak amplitude and returns a new slice.
func Normalize(data []float32, targetPeak float64) ([]float32, error) {
	if targetPeak < 0 {
		return nil, fmt.Errorf("%w: normalize target peak must be >= 0: %f", core.ErrArgument, targetPeak)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: normalize input must not be empty", core.ErrArgument)
	}

	maxAbs := 0.0
	for _, v := range data {
		maxAbs = math.Max(maxAbs, math.Abs(float64(v)))
	}

	out := make([]float32, len(data))
	if maxAbs == 0 || targetPeak == 0 {
		return out, nil
	}

	scale := targetPeak / maxAbs
	for i, v := range data {
		out[i] = float32(float64(v) * scale)
	}
	return out, nil
}

func (g *Generator) validate(kind string, samples int) error {
	if samples <= 0 {
		return fmt.Errorf("%w: %s samples must be > 0: %d", core.ErrArgument, kind, samples)
	}
	if g.cfg.SampleRate <= 0 {
		return fmt.Errorf("%w: %s sample rate must be > 0: %f", core.ErrConfiguration, kind, g.cfg.SampleRate)
	}
	return nil
}
