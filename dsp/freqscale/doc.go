// Package freqscale maps a linear-frequency spectrum onto perceptual
// frequency axes.
//
// A [Scale] is one of five closed variants (linear, logarithmic, mel, ERB,
// octave), each with a forward transform from Hz into scale space and its
// inverse. A [Resampler] precomputes, for every output pixel, the fractional
// FFT bin it samples, and then linearly interpolates spectra onto that grid.
// The mapping table is rebuilt explicitly by every setter.
package freqscale
