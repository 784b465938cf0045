package spectrum

import (
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-spectrogram/dsp/core"
)

// PowerFloor is added to linear power before the dB conversion so that
// silent bins map to a finite value (-300 dB) instead of -Inf.
const PowerFloor = 1e-30

// PowerFromParts computes |X[k]|^2 = re[k]^2 + im[k]^2 into dst.
// All three slices must have the same length.
func PowerFromParts(dst, re, im []float64) {
	vecmath.Power(dst, re, im)
}

// PowerToDB scales linear power by scale and converts it in place to
// 10*log10(p*scale + PowerFloor).
func PowerToDB(power []float64, scale float64) {
	if scale != 1 {
		vecmath.ScaleBlockInPlace(power, scale)
	}
	for i, p := range power {
		power[i] = core.LinearPowerToDB(p + PowerFloor)
	}
}

// PeakBin returns the index of the largest value in a spectrum, or -1 when
// the spectrum is empty. Ties resolve to the lowest index.
func PeakBin(spectrum []float64) int {
	if len(spectrum) == 0 {
		return -1
	}

	peak := 0
	for i, v := range spectrum {
		if v > spectrum[peak] {
			peak = i
		}
	}
	return peak
}

// BinFrequency returns the center frequency in Hz of bin k.
func BinFrequency(k, fftSize int, sampleRate float64) float64 {
	if fftSize <= 0 {
		return 0
	}
	return float64(k) * sampleRate / float64(fftSize)
}

// FrequencyBin returns the fractional bin index of freq.
func FrequencyBin(freq float64, fftSize int, sampleRate float64) float64 {
	if sampleRate <= 0 {
		return 0
	}
	return freq * float64(fftSize) / sampleRate
}
