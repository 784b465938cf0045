// Package spectrum turns fixed-size frames of audio into dB power spectra.
//
// An [Analyzer] owns a window table, an FFT plan and its scratch buffers.
// Process windows a frame, runs the forward real transform and writes
// fftSize/2+1 power values in dB into a caller-owned slice. Two transform
// backends are available: the algo-fft complex plan (default) and the gonum
// real FFT.
//
// The package also keeps a few bin-level helpers used around the analyzer.
package spectrum
