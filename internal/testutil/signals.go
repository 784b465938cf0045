package testutil

import (
	"math"
	"math/rand"
)

// Sine32 generates a deterministic float32 sine wave starting at phase 0.
func Sine32(freqHz, sampleRate, amplitude float64, length int) []float32 {
	out := make([]float32, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = float32(amplitude * math.Sin(step*float64(i)))
	}
	return out
}

// Noise32 generates white noise with a fixed seed for reproducibility.
func Noise32(seed int64, amplitude float64, length int) []float32 {
	out := make([]float32, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = float32((rng.Float64()*2 - 1) * amplitude)
	}
	return out
}

// Ramp32 returns start, start+1, ... as float32. Values stay exact up to 2^24,
// which makes the slice usable as a stream of sample indices.
func Ramp32(start uint64, length int) []float32 {
	out := make([]float32, length)
	for i := range out {
		out[i] = float32(start + uint64(i))
	}
	return out
}

// Flat returns a constant spectrum of n bins.
func Flat(value float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = value
	}
	return out
}
