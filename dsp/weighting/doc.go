// Package weighting provides A, B and C frequency weighting curves per
// IEC 61672 for spectral display.
//
// The curves are evaluated directly from the analog prototype transfer
// functions at each FFT bin frequency, so there is no bilinear-transform
// warping near Nyquist. All curves are normalized to 0 dB at 1 kHz.
//
//   - A-weighting approximates the 40-phon equal-loudness contour.
//   - B-weighting approximates the 70-phon equal-loudness contour.
//   - C-weighting approximates the 100-phon equal-loudness contour.
//
// TypeNone applies no weighting.
package weighting
