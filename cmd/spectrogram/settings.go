package main

import (
	"flag"

	"github.com/cwbudde/algo-spectrogram/dsp/freqscale"
	"github.com/cwbudde/algo-spectrogram/dsp/spectrum"
	"github.com/cwbudde/algo-spectrogram/dsp/weighting"
	"github.com/cwbudde/algo-spectrogram/dsp/window"
	"github.com/cwbudde/algo-spectrogram/render/colormap"
	"github.com/cwbudde/algo-spectrogram/spectrogram"
)

// settingsFlags mirrors spectrogram.Settings on the command line. Names are
// parsed late so every error surfaces through build.
type settingsFlags struct {
	fftSize     int
	window      string
	scale       string
	minFreq     float64
	maxFreq     float64
	minDB       float64
	maxDB       float64
	timeRange   float64
	weighting   string
	sampleRate  float64
	overlap     float64
	theme       string
	backendName string
}

func (f *settingsFlags) register(fs *flag.FlagSet) {
	d := spectrogram.DefaultSettings()

	fs.IntVar(&f.fftSize, "fft", d.FFTSize, "FFT size (power of two, 32..16384)")
	fs.StringVar(&f.window, "window", d.Window.String(), "window: rectangular, hann, hamming, blackman")
	fs.StringVar(&f.scale, "scale", d.Scale.String(), "frequency scale: linear, log, mel, erb, octave")
	fs.Float64Var(&f.minFreq, "min", d.MinFreq, "lowest displayed frequency in Hz")
	fs.Float64Var(&f.maxFreq, "max", d.MaxFreq, "highest displayed frequency in Hz (clamped to Nyquist)")
	fs.Float64Var(&f.minDB, "db-min", d.MinDB, "level mapped to the first color")
	fs.Float64Var(&f.maxDB, "db-max", d.MaxDB, "level mapped to the last color")
	fs.Float64Var(&f.timeRange, "time", d.TimeRange, "seconds of history across the canvas")
	fs.StringVar(&f.weighting, "weighting", d.Weighting.String(), "frequency weighting: none, A, B, C")
	fs.Float64Var(&f.sampleRate, "rate", d.SampleRate, "sample rate of generated signals in Hz")
	fs.Float64Var(&f.overlap, "overlap", d.Overlap, "fraction of overlap between frames")
	fs.StringVar(&f.theme, "theme", d.Theme.String(), "color theme: cmrmap, grayscale")
	fs.StringVar(&f.backendName, "backend", spectrum.BackendAlgoFFT.String(), "FFT backend: algofft, gonum")
}

// build resolves the flags against the stream's sample rate.
func (f *settingsFlags) build(sampleRate float64) (spectrogram.Settings, error) {
	win, err := window.ParseType(f.window)
	if err != nil {
		return spectrogram.Settings{}, err
	}
	scale, err := freqscale.ParseScale(f.scale)
	if err != nil {
		return spectrogram.Settings{}, err
	}
	wt, err := weighting.ParseType(f.weighting)
	if err != nil {
		return spectrogram.Settings{}, err
	}
	theme, err := colormap.ParseTheme(f.theme)
	if err != nil {
		return spectrogram.Settings{}, err
	}

	return spectrogram.NewSettings(
		spectrogram.WithFFTSize(f.fftSize),
		spectrogram.WithWindow(win),
		spectrogram.WithScale(scale),
		spectrogram.WithFrequencyRange(f.minFreq, f.maxFreq),
		spectrogram.WithAmplitudeRange(f.minDB, f.maxDB),
		spectrogram.WithTimeRange(f.timeRange),
		spectrogram.WithWeighting(wt),
		spectrogram.WithOverlap(f.overlap),
		spectrogram.WithTheme(theme),
		spectrogram.WithSampleRate(sampleRate),
	)
}

func (f *settingsFlags) backend() (spectrum.Backend, error) {
	return spectrum.ParseBackend(f.backendName)
}
