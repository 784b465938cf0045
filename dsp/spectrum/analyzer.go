package spectrum

import (
	"fmt"

	"github.com/cwbudde/algo-spectrogram/dsp/core"
	"github.com/cwbudde/algo-spectrogram/dsp/window"
)

const (
	// MinFFTSize is the smallest supported transform length.
	MinFFTSize = 32
	// MaxFFTSize is the largest supported transform length.
	MaxFFTSize = 16384
)

// ErrInvalidFFTSize reports an FFT size outside the supported powers of two.
var ErrInvalidFFTSize = fmt.Errorf("%w: fft size must be a power of two in [%d, %d]",
	core.ErrConfiguration, MinFFTSize, MaxFFTSize)

// ValidateFFTSize reports whether n is a power of two in [MinFFTSize, MaxFFTSize].
func ValidateFFTSize(n int) error {
	if n < MinFFTSize || n > MaxFFTSize || !core.IsPowerOfTwo(n) {
		return fmt.Errorf("%w: %d", ErrInvalidFFTSize, n)
	}
	return nil
}

// Option configures an Analyzer.
type Option func(*analyzerConfig)

type analyzerConfig struct {
	backend Backend
}

// WithBackend selects the forward transform implementation.
func WithBackend(b Backend) Option {
	return func(cfg *analyzerConfig) {
		cfg.backend = b
	}
}

// Analyzer converts fixed-size frames into dB power spectra.
//
// It is not safe for concurrent use. Process does not mutate any state that
// affects later results; SetFFTSize and SetWindow rebuild all tables and are
// not meant to be called per frame.
type Analyzer struct {
	fftSize int
	win     window.Type
	backend Backend

	coeffs []float64
	frame  []float64
	re     []float64
	im     []float64
	fft    transform
}

// NewAnalyzer builds an analyzer for the given FFT size and window.
func NewAnalyzer(fftSize int, win window.Type, opts ...Option) (*Analyzer, error) {
	var cfg analyzerConfig
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	a := &Analyzer{backend: cfg.backend}
	if err := a.rebuild(fftSize, win); err != nil {
		return nil, err
	}
	return a, nil
}

// Process windows in, transforms it and writes fftSize/2+1 dB values to out.
// in must hold exactly FFTSize samples and out exactly NumBins values.
func (a *Analyzer) Process(in []float32, out []float64) error {
	if len(in) != a.fftSize {
		return fmt.Errorf("%w: input length %d, want %d", core.ErrArgument, len(in), a.fftSize)
	}
	if len(out) != a.NumBins() {
		return fmt.Errorf("%w: output length %d, want %d", core.ErrArgument, len(out), a.NumBins())
	}

	if err := window.ApplyCoefficients(a.frame, in, a.coeffs); err != nil {
		return err
	}

	if err := a.fft.forward(a.re, a.im, a.frame); err != nil {
		return err
	}

	PowerFromParts(out, a.re, a.im)

	n := float64(a.fftSize)
	PowerToDB(out, 1/(n*n))

	return nil
}

// SetFFTSize rebuilds the window, scratch buffers and FFT plan for n.
// On error the analyzer keeps its previous configuration.
func (a *Analyzer) SetFFTSize(n int) error {
	if n == a.fftSize {
		return nil
	}
	return a.rebuild(n, a.win)
}

// SetWindow recomputes the window table.
func (a *Analyzer) SetWindow(t window.Type) error {
	if !t.Valid() {
		return fmt.Errorf("%w: %d", window.ErrUnknownType, int(t))
	}
	a.win = t
	a.coeffs = window.Generate(t, a.fftSize)
	return nil
}

// FFTSize returns the transform length.
func (a *Analyzer) FFTSize() int { return a.fftSize }

// Window returns the active window type.
func (a *Analyzer) Window() window.Type { return a.win }

// Backend returns the transform backend.
func (a *Analyzer) Backend() Backend { return a.backend }

// NumBins returns fftSize/2+1.
func (a *Analyzer) NumBins() int { return a.fftSize/2 + 1 }

// BinFrequency returns the center frequency of bin k at sampleRate.
func (a *Analyzer) BinFrequency(k int, sampleRate float64) float64 {
	return BinFrequency(k, a.fftSize, sampleRate)
}

func (a *Analyzer) rebuild(fftSize int, win window.Type) error {
	if err := ValidateFFTSize(fftSize); err != nil {
		return err
	}
	if !win.Valid() {
		return fmt.Errorf("%w: %d", window.ErrUnknownType, int(win))
	}

	fft, err := newTransform(a.backend, fftSize)
	if err != nil {
		return err
	}

	bins := fftSize/2 + 1
	a.fftSize = fftSize
	a.win = win
	a.fft = fft
	a.coeffs = window.Generate(win, fftSize)
	a.frame = make([]float64, fftSize)
	a.re = make([]float64, bins)
	a.im = make([]float64, bins)

	return nil
}
