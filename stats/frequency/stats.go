package frequency

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-spectrogram/dsp/core"
)

// RolloffFraction is the share of total power below the rolloff frequency.
const RolloffFraction = 0.85

// Descriptors summarizes the shape of one power spectrum.
type Descriptors struct {
	PeakBin   int
	Centroid  float64 // power-weighted mean frequency, Hz
	Spread    float64 // power-weighted standard deviation around Centroid, Hz
	Flatness  float64 // geometric over arithmetic mean power, 0..1, DC excluded
	Rolloff   float64 // Hz
	Bandwidth float64 // -3 dB width around the peak, Hz
}

// Extractor computes Descriptors with a reusable scratch buffer. The zero
// value is ready to use. It is not safe for concurrent use.
type Extractor struct {
	linear []float64
}

// Describe computes descriptors for a dB power spectrum with a throwaway
// Extractor.
func Describe(powerDB []float64, sampleRate float64) Descriptors {
	var e Extractor
	return e.Describe(powerDB, sampleRate)
}

// Describe computes descriptors for powerDB. Spectra with fewer than two
// bins or no power yield the zero value.
func (e *Extractor) Describe(powerDB []float64, sampleRate float64) Descriptors {
	n := len(powerDB)
	if n < 2 {
		return Descriptors{}
	}

	e.linear = core.EnsureLen(e.linear, n)
	for i, db := range powerDB {
		e.linear[i] = core.DBPowerToLinear(db)
	}

	total := floats.Sum(e.linear)
	if !(total > 0) || math.IsInf(total, 1) {
		return Descriptors{}
	}

	d := Descriptors{PeakBin: floats.MaxIdx(powerDB)}
	d.Centroid = centroid(e.linear, sampleRate, total)
	d.Spread = spread(e.linear, sampleRate, d.Centroid, total)
	d.Flatness = flatness(e.linear[1:])
	d.Rolloff = rolloff(e.linear, sampleRate, total)
	d.Bandwidth = bandwidth(powerDB, d.PeakBin, sampleRate)
	return d
}

func binFreq(i, n int, sampleRate float64) float64 {
	return float64(i) * sampleRate / float64(2*(n-1))
}

func centroid(p []float64, sampleRate, total float64) float64 {
	weighted := 0.0
	for i, v := range p {
		weighted += binFreq(i, len(p), sampleRate) * v
	}
	return weighted / total
}

func spread(p []float64, sampleRate, cent, total float64) float64 {
	acc := 0.0
	for i, v := range p {
		d := binFreq(i, len(p), sampleRate) - cent
		acc += d * d * v
	}
	return math.Sqrt(acc / total)
}

func flatness(p []float64) float64 {
	mean := floats.Sum(p) / float64(len(p))
	if mean == 0 {
		return 0
	}

	logSum := 0.0
	for _, v := range p {
		if v <= 0 {
			return 0
		}
		logSum += math.Log(v)
	}
	return math.Exp(logSum/float64(len(p))) / mean
}

func rolloff(p []float64, sampleRate, total float64) float64 {
	threshold := RolloffFraction * total
	cum := 0.0
	for i, v := range p {
		cum += v
		if cum >= threshold {
			return binFreq(i, len(p), sampleRate)
		}
	}
	return binFreq(len(p)-1, len(p), sampleRate)
}

// bandwidth walks outwards from the peak to the -3 dB crossings and
// interpolates linearly in dB between the straddling bins. A side without a
// crossing extends to the spectrum edge.
func bandwidth(db []float64, peak int, sampleRate float64) float64 {
	n := len(db)
	threshold := db[peak] - 3

	lower := 0.0
	for i := peak; i >= 1; i-- {
		if db[i-1] <= threshold {
			lower = crossing(i-1, db[i-1], db[i], threshold, n, sampleRate)
			break
		}
	}

	upper := binFreq(n-1, n, sampleRate)
	for i := peak; i < n-1; i++ {
		if db[i+1] <= threshold {
			upper = crossing(i, db[i], db[i+1], threshold, n, sampleRate)
			break
		}
	}

	return math.Max(0, upper-lower)
}

// crossing returns the frequency between bins lo and lo+1 where the level
// equals threshold.
func crossing(lo int, a, b, threshold float64, n int, sampleRate float64) float64 {
	f := binFreq(lo, n, sampleRate)
	step := binFreq(1, n, sampleRate)
	if a == b {
		return f + step/2
	}
	return f + (threshold-a)/(b-a)*step
}
