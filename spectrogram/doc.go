// Package spectrogram assembles the DSP and render packages into a scrolling
// spectrogram.
//
// Samples enter through Pipeline.Write into a lock-free ring. Each Step reads
// one windowed frame, computes its dB power spectrum, optionally adds a
// frequency weighting curve, resamples the bins onto the display rows of the
// configured frequency scale, normalizes against the dB range, colors the
// result and appends it to the canvas. Consecutive frames are HopSize samples
// apart.
//
// Settings carries the full configuration and is validated before any stage
// is built.
package spectrogram
