package freqscale

import (
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-spectrogram/dsp/core"
)

// Scale selects a frequency axis law.
type Scale int

const (
	Linear Scale = iota
	Logarithmic
	Mel
	ERB
	Octave
)

// erbA is the Glasberg & Moore ERB-rate constant 1000*ln(10)/(24.7*4.37).
const erbA = 21.3323

// ErrUnknownScale is returned for scale names or values outside the supported set.
var ErrUnknownScale = fmt.Errorf("%w: unknown frequency scale", core.ErrConfiguration)

// Scales lists every scale in declaration order.
func Scales() []Scale {
	return []Scale{Linear, Logarithmic, Mel, ERB, Octave}
}

// String returns the scale name.
func (s Scale) String() string {
	switch s {
	case Linear:
		return "Linear"
	case Logarithmic:
		return "Logarithmic"
	case Mel:
		return "Mel"
	case ERB:
		return "ERB"
	case Octave:
		return "Octave"
	default:
		return fmt.Sprintf("Scale(%d)", int(s))
	}
}

// Valid reports whether s is one of the five supported scales.
func (s Scale) Valid() bool {
	return s >= Linear && s <= Octave
}

// ParseScale resolves a case-insensitive scale name. "log" is accepted for
// Logarithmic.
func ParseScale(name string) (Scale, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "log" || n == "log10" {
		return Logarithmic, nil
	}
	for _, s := range Scales() {
		if n == strings.ToLower(s.String()) {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownScale, name)
}

// Forward maps a frequency in Hz into scale space.
func (s Scale) Forward(freq float64) float64 {
	switch s {
	case Logarithmic:
		return math.Log10(freq)
	case Mel:
		return 2595 * math.Log10(1+freq/700)
	case ERB:
		return erbA * math.Log10(1+0.00437*freq)
	case Octave:
		return math.Log2(freq)
	default:
		return freq
	}
}

// Inverse maps a scale-space value back to Hz.
func (s Scale) Inverse(x float64) float64 {
	switch s {
	case Logarithmic:
		return math.Pow(10, x)
	case Mel:
		return 700 * (math.Pow(10, x/2595) - 1)
	case ERB:
		return (math.Pow(10, x/erbA) - 1) / 0.00437
	case Octave:
		return math.Exp2(x)
	default:
		return x
	}
}
