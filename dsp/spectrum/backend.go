package spectrum

import (
	"fmt"
	"strings"

	algofft "github.com/MeKo-Christian/algo-fft"
	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/cwbudde/algo-spectrogram/dsp/core"
)

// Backend selects the forward transform implementation.
type Backend int

const (
	// BackendAlgoFFT runs a complex algo-fft plan over the real frame.
	BackendAlgoFFT Backend = iota
	// BackendGonum runs gonum's real-to-complex FFT.
	BackendGonum
)

// String returns the backend name.
func (b Backend) String() string {
	switch b {
	case BackendAlgoFFT:
		return "algofft"
	case BackendGonum:
		return "gonum"
	default:
		return fmt.Sprintf("Backend(%d)", int(b))
	}
}

// ParseBackend resolves a backend by name.
func ParseBackend(name string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "algofft", "algo-fft":
		return BackendAlgoFFT, nil
	case "gonum":
		return BackendGonum, nil
	default:
		return 0, fmt.Errorf("%w: unknown fft backend %q", core.ErrConfiguration, name)
	}
}

// transform computes the non-negative half of the DFT of a real frame.
// re and im have length n/2+1.
type transform interface {
	forward(re, im, frame []float64) error
}

func newTransform(b Backend, n int) (transform, error) {
	switch b {
	case BackendAlgoFFT:
		plan, err := algofft.NewPlan64(n)
		if err != nil {
			return nil, fmt.Errorf("%w: fft plan: %w", core.ErrConfiguration, err)
		}
		return &algoTransform{
			plan: plan,
			in:   make([]complex128, n),
			out:  make([]complex128, n),
		}, nil
	case BackendGonum:
		return &gonumTransform{
			fft:    fourier.NewFFT(n),
			coeffs: make([]complex128, n/2+1),
		}, nil
	default:
		return nil, fmt.Errorf("%w: unknown fft backend %d", core.ErrConfiguration, int(b))
	}
}

type algoTransform struct {
	plan *algofft.Plan[complex128]
	in   []complex128
	out  []complex128
}

func (t *algoTransform) forward(re, im, frame []float64) error {
	for i, v := range frame {
		t.in[i] = complex(v, 0)
	}

	if err := t.plan.Forward(t.out, t.in); err != nil {
		return fmt.Errorf("spectrum: forward fft: %w", err)
	}

	for k := range re {
		re[k] = real(t.out[k])
		im[k] = imag(t.out[k])
	}
	return nil
}

type gonumTransform struct {
	fft    *fourier.FFT
	coeffs []complex128
}

func (t *gonumTransform) forward(re, im, frame []float64) error {
	coeffs := t.fft.Coefficients(t.coeffs, frame)
	for k := range re {
		re[k] = real(coeffs[k])
		im[k] = imag(coeffs[k])
	}
	return nil
}
