// Package frequency derives spectral shape descriptors from the dB power
// spectra produced by the spectrum analyzer.
//
// Bin k of an n-bin one-sided spectrum sits at k*sampleRate/(2*(n-1)) Hz.
package frequency
