package freqscale

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-spectrogram/dsp/core"
	"github.com/cwbudde/algo-spectrogram/dsp/spectrum"
)

type params struct {
	scale      Scale
	minFreq    float64
	maxFreq    float64
	sampleRate float64
	fftSize    int
	height     int
}

func (p params) validate() error {
	if !p.scale.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownScale, int(p.scale))
	}
	if !(p.sampleRate > 0) {
		return fmt.Errorf("%w: sample rate must be > 0: %g", core.ErrConfiguration, p.sampleRate)
	}
	if !(p.minFreq > 0) {
		return fmt.Errorf("%w: min frequency must be > 0: %g", core.ErrConfiguration, p.minFreq)
	}
	if !(p.maxFreq > p.minFreq) {
		return fmt.Errorf("%w: max frequency %g must exceed min frequency %g", core.ErrConfiguration, p.maxFreq, p.minFreq)
	}
	if nyquist := p.sampleRate / 2; p.maxFreq > nyquist {
		return fmt.Errorf("%w: max frequency %g exceeds nyquist %g", core.ErrConfiguration, p.maxFreq, nyquist)
	}
	if p.height <= 0 {
		return fmt.Errorf("%w: output height must be > 0: %d", core.ErrConfiguration, p.height)
	}
	if !core.IsPowerOfTwo(p.fftSize) {
		return fmt.Errorf("%w: fft size must be a power of two: %d", core.ErrConfiguration, p.fftSize)
	}
	return nil
}

// Resampler interpolates a linear-frequency spectrum onto Height output
// pixels spaced evenly on the selected scale. Pixel 0 samples MinFreq and
// pixel Height-1 samples MaxFreq.
//
// A Resampler is not safe for concurrent use.
type Resampler struct {
	p       params
	mapping []float64
}

// NewResampler validates the configuration and builds the bin mapping.
func NewResampler(scale Scale, minFreq, maxFreq, sampleRate float64, fftSize, height int) (*Resampler, error) {
	r := &Resampler{}
	if err := r.apply(params{
		scale:      scale,
		minFreq:    minFreq,
		maxFreq:    maxFreq,
		sampleRate: sampleRate,
		fftSize:    fftSize,
		height:     height,
	}); err != nil {
		return nil, err
	}
	return r, nil
}

// Resample writes Height interpolated values into dst. src must hold
// fftSize/2+1 bins.
func (r *Resampler) Resample(dst, src []float64) error {
	if len(src) != r.NumBins() {
		return fmt.Errorf("%w: input length %d, want %d bins", core.ErrArgument, len(src), r.NumBins())
	}
	if len(dst) != r.p.height {
		return fmt.Errorf("%w: output length %d, want height %d", core.ErrArgument, len(dst), r.p.height)
	}

	last := float64(len(src) - 1)
	for i, bin := range r.mapping {
		bin = core.Clamp(bin, 0, last)
		b0 := int(bin)
		frac := bin - float64(b0)
		b1 := min(b0+1, len(src)-1)
		dst[i] = src[b0]*(1-frac) + src[b1]*frac
	}
	return nil
}

// SetScale switches the axis law and rebuilds the mapping.
func (r *Resampler) SetScale(s Scale) error {
	p := r.p
	p.scale = s
	return r.apply(p)
}

// SetFrequencyRange changes the displayed range and rebuilds the mapping.
func (r *Resampler) SetFrequencyRange(minFreq, maxFreq float64) error {
	p := r.p
	p.minFreq, p.maxFreq = minFreq, maxFreq
	return r.apply(p)
}

// SetOutputHeight changes the pixel count and rebuilds the mapping.
func (r *Resampler) SetOutputHeight(height int) error {
	p := r.p
	p.height = height
	return r.apply(p)
}

// SetFFTSize changes the bin spacing and rebuilds the mapping.
func (r *Resampler) SetFFTSize(n int) error {
	p := r.p
	p.fftSize = n
	return r.apply(p)
}

// SetSampleRate changes the bin spacing and rebuilds the mapping. The current
// max frequency must not exceed the new Nyquist frequency.
func (r *Resampler) SetSampleRate(sampleRate float64) error {
	p := r.p
	p.sampleRate = sampleRate
	return r.apply(p)
}

// Scale returns the active axis law.
func (r *Resampler) Scale() Scale { return r.p.scale }

// FrequencyRange returns the configured min and max frequency in Hz.
func (r *Resampler) FrequencyRange() (minFreq, maxFreq float64) { return r.p.minFreq, r.p.maxFreq }

// SampleRate returns the sample rate used for the bin mapping.
func (r *Resampler) SampleRate() float64 { return r.p.sampleRate }

// FFTSize returns the transform length the mapping assumes.
func (r *Resampler) FFTSize() int { return r.p.fftSize }

// Height returns the number of output pixels.
func (r *Resampler) Height() int { return r.p.height }

// NumBins returns the expected input length, fftSize/2+1.
func (r *Resampler) NumBins() int { return r.p.fftSize/2 + 1 }

// Mapping returns a copy of the fractional bin index of every pixel.
func (r *Resampler) Mapping() []float64 {
	return append([]float64(nil), r.mapping...)
}

// FrequencyAt returns the frequency in Hz sampled by pixel i.
func (r *Resampler) FrequencyAt(i int) float64 {
	if i < 0 || i >= len(r.mapping) {
		return math.NaN()
	}
	return r.mapping[i] * r.p.sampleRate / float64(r.p.fftSize)
}

// NearestPixel returns the pixel whose sampled frequency is closest to freq.
func (r *Resampler) NearestPixel(freq float64) int {
	best := 0
	bestDist := math.Inf(1)
	for i := range r.mapping {
		if d := math.Abs(r.FrequencyAt(i) - freq); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func (r *Resampler) apply(p params) error {
	if err := p.validate(); err != nil {
		return err
	}
	r.p = p
	r.computeMapping()
	return nil
}

// computeMapping interpolates linearly in scale space between the transformed
// range endpoints and converts each inverse-mapped frequency to a bin index.
func (r *Resampler) computeMapping() {
	p := r.p
	r.mapping = core.EnsureLen(r.mapping, p.height)

	lo := p.scale.Forward(p.minFreq)
	hi := p.scale.Forward(p.maxFreq)

	for i := range r.mapping {
		t := 0.0
		if p.height > 1 {
			t = float64(i) / float64(p.height-1)
		}
		freq := p.scale.Inverse(lo + t*(hi-lo))
		r.mapping[i] = spectrum.FrequencyBin(freq, p.fftSize, p.sampleRate)
	}
}
