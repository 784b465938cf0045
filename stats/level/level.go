// Package level measures time-domain levels of analysis frames.
package level

import "math"

// Level summarizes one block of samples. dB values are relative to full
// scale (amplitude 1) and are -Inf for silence.
type Level struct {
	Length        int
	DC            float64
	RMS           float64
	Peak          float64
	RMSDB         float64
	PeakDB        float64
	CrestDB       float64 // PeakDB - RMSDB, 0 for silence
	ZeroCrossings int
}

// Measure computes Level in a single pass.
func Measure(samples []float32) Level {
	if len(samples) == 0 {
		return Level{RMSDB: math.Inf(-1), PeakDB: math.Inf(-1)}
	}

	var (
		sum, sumSq float64
		peak       float64
		crossings  int
	)

	prev := float64(samples[0])
	for i, s := range samples {
		x := float64(s)
		sum += x
		sumSq += x * x
		peak = math.Max(peak, math.Abs(x))
		if i > 0 && prev*x < 0 {
			crossings++
		}
		prev = x
	}

	n := float64(len(samples))
	l := Level{
		Length:        len(samples),
		DC:            sum / n,
		RMS:           math.Sqrt(sumSq / n),
		Peak:          peak,
		ZeroCrossings: crossings,
	}
	l.RMSDB = ampToDB(l.RMS)
	l.PeakDB = ampToDB(l.Peak)
	if l.RMS > 0 {
		l.CrestDB = l.PeakDB - l.RMSDB
	}
	return l
}

func ampToDB(v float64) float64 {
	if v == 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(v)
}
