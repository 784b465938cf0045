package weighting

import (
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-spectrogram/dsp/core"
)

// IEC 61672 analog prototype pole frequencies (Hz).
const (
	f1 = 20.598997 // double pole for A, B, C
	f2 = 107.65265 // single pole for A only
	f3 = 158.48932 // single pole for B only
	f4 = 737.86223 // single pole for A only
	f5 = 12194.217 // double pole for A, B, C
)

const (
	// FloorDB is the lowest gain reported, used for DC and for very low
	// frequencies where the curves tend to -Inf.
	FloorDB = -200.0

	refFreq = 1000.0
)

// Type identifies a frequency weighting curve.
type Type int

const (
	// TypeNone applies no weighting (IEC 61672 Z-weighting).
	TypeNone Type = iota
	// TypeA is the A-weighting curve.
	TypeA
	// TypeB is the B-weighting curve.
	TypeB
	// TypeC is the C-weighting curve.
	TypeC
)

// ErrUnknownType is returned for weighting names or values outside the supported set.
var ErrUnknownType = fmt.Errorf("%w: unknown weighting", core.ErrConfiguration)

// String returns a human-readable name for the weighting type.
func (t Type) String() string {
	switch t {
	case TypeNone:
		return "None"
	case TypeA:
		return "A"
	case TypeB:
		return "B"
	case TypeC:
		return "C"
	default:
		return "Unknown"
	}
}

// Valid reports whether t is a supported weighting.
func (t Type) Valid() bool {
	return t >= TypeNone && t <= TypeC
}

// ParseType resolves a weighting name. "Z" and "" are accepted for TypeNone.
func ParseType(name string) (Type, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "", "NONE", "Z":
		return TypeNone, nil
	case "A":
		return TypeA, nil
	case "B":
		return TypeB, nil
	case "C":
		return TypeC, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownType, name)
	}
}

// GainDB returns the weighting gain in dB at freq, normalized to 0 dB at
// 1 kHz and floored at FloorDB. Unknown types have unity gain.
func GainDB(t Type, freq float64) float64 {
	if t == TypeNone || !t.Valid() {
		return 0
	}
	if !(freq > 0) {
		return FloorDB
	}

	g := 20 * math.Log10(response(t, freq)/response(t, refFreq))
	return math.Max(g, FloorDB)
}

// BinOffsets returns the gain in dB of every bin of an fftSize transform at
// sampleRate. The slice has fftSize/2+1 entries and can be added directly to
// an analyzer output.
func BinOffsets(t Type, fftSize int, sampleRate float64) ([]float64, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownType, int(t))
	}
	if fftSize <= 0 {
		return nil, fmt.Errorf("%w: fft size must be > 0: %d", core.ErrConfiguration, fftSize)
	}
	if !(sampleRate > 0) {
		return nil, fmt.Errorf("%w: sample rate must be > 0: %g", core.ErrConfiguration, sampleRate)
	}

	out := make([]float64, fftSize/2+1)
	if t == TypeNone {
		return out, nil
	}

	binHz := sampleRate / float64(fftSize)
	for k := range out {
		out[k] = GainDB(t, float64(k)*binHz)
	}
	return out, nil
}

// response evaluates |H(j2πf)| of the unnormalized analog prototype.
func response(t Type, f float64) float64 {
	ff := f * f
	lowHigh := f5 * f5 / ((ff + f1*f1) * (ff + f5*f5))

	switch t {
	case TypeA:
		return lowHigh * ff * ff / math.Sqrt((ff+f2*f2)*(ff+f4*f4))
	case TypeB:
		return lowHigh * ff * f / math.Sqrt(ff+f3*f3)
	case TypeC:
		return lowHigh * ff
	default:
		return 1
	}
}
