package spectrogram

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/cwbudde/algo-spectrogram/dsp/core"
	"github.com/cwbudde/algo-spectrogram/dsp/freqscale"
	"github.com/cwbudde/algo-spectrogram/dsp/weighting"
	"github.com/cwbudde/algo-spectrogram/dsp/window"
	"github.com/cwbudde/algo-spectrogram/render/colormap"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if s.FFTSize != 4096 || s.Window != window.TypeHann || s.Scale != freqscale.Mel {
		t.Fatalf("unexpected defaults: %+v", s)
	}
	if s.MinFreq != 20 || s.MaxFreq != 24000 || s.MinDB != -140 || s.MaxDB != 0 {
		t.Fatalf("unexpected ranges: %+v", s)
	}
	if s.Weighting != weighting.TypeNone || s.Theme != colormap.ThemeCMRMAP {
		t.Fatalf("unexpected weighting/theme: %+v", s)
	}
}

func TestDerivedTiming(t *testing.T) {
	tests := []struct {
		fft     int
		overlap float64
		hop     int
	}{
		{4096, 0.75, 1024},
		{2048, 0.75, 512},
		{8192, 0.75, 2048},
		{1024, 0, 1024},
		{32, 0.95, 1},
	}

	for _, tt := range tests {
		s := DefaultSettings()
		s.FFTSize = tt.fft
		s.Overlap = tt.overlap
		if got := s.HopSize(); got != tt.hop {
			t.Fatalf("HopSize(fft=%d, overlap=%v) = %d, want %d", tt.fft, tt.overlap, got, tt.hop)
		}
	}

	s := DefaultSettings()
	if got, want := s.ColumnDuration(), 21333333*time.Nanosecond; got != want {
		t.Fatalf("ColumnDuration() = %v, want %v", got, want)
	}
	if got := s.ColumnsForTimeRange(); got != 469 {
		t.Fatalf("ColumnsForTimeRange() = %d, want 469", got)
	}
	if s.Nyquist() != 24000 {
		t.Fatalf("Nyquist() = %v", s.Nyquist())
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"fft not power of two", func(s *Settings) { s.FFTSize = 1000 }},
		{"fft too small", func(s *Settings) { s.FFTSize = 16 }},
		{"fft too large", func(s *Settings) { s.FFTSize = 32768 }},
		{"unknown window", func(s *Settings) { s.Window = window.Type(99) }},
		{"unknown scale", func(s *Settings) { s.Scale = freqscale.Scale(99) }},
		{"unknown weighting", func(s *Settings) { s.Weighting = weighting.Type(99) }},
		{"unknown theme", func(s *Settings) { s.Theme = colormap.Theme(99) }},
		{"zero sample rate", func(s *Settings) { s.SampleRate = 0 }},
		{"nan sample rate", func(s *Settings) { s.SampleRate = math.NaN() }},
		{"zero min freq", func(s *Settings) { s.MinFreq = 0 }},
		{"inverted freqs", func(s *Settings) { s.MinFreq, s.MaxFreq = 5000, 100 }},
		{"max above nyquist", func(s *Settings) { s.MaxFreq = 30000 }},
		{"equal db", func(s *Settings) { s.MinDB, s.MaxDB = -10, -10 }},
		{"db below limit", func(s *Settings) { s.MinDB = -250 }},
		{"db above limit", func(s *Settings) { s.MaxDB = 250 }},
		{"time range short", func(s *Settings) { s.TimeRange = 0.05 }},
		{"time range long", func(s *Settings) { s.TimeRange = 2000 }},
		{"negative overlap", func(s *Settings) { s.Overlap = -0.1 }},
		{"overlap too high", func(s *Settings) { s.Overlap = 0.99 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(&s)
			if err := s.Validate(); !errors.Is(err, core.ErrConfiguration) {
				t.Fatalf("Validate() error = %v, want ErrConfiguration", err)
			}
		})
	}
}

func TestWithSampleRateLowersMaxFreq(t *testing.T) {
	s := DefaultSettings().WithSampleRate(44100)
	if s.SampleRate != 44100 || s.MaxFreq != 22050 {
		t.Fatalf("got rate=%v max=%v", s.SampleRate, s.MaxFreq)
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	up := s.WithSampleRate(96000)
	if up.MaxFreq != 22050 {
		t.Fatalf("raising the rate changed MaxFreq to %v", up.MaxFreq)
	}
}

func TestNewSettings(t *testing.T) {
	s, err := NewSettings(
		WithFFTSize(2048),
		WithWindow(window.TypeBlackman),
		WithScale(freqscale.Octave),
		WithSampleRate(16000),
		WithFrequencyRange(50, 6000),
		WithAmplitudeRange(-100, -10),
		WithTimeRange(5),
		WithWeighting(weighting.TypeA),
		WithOverlap(0.5),
		WithTheme(colormap.ThemeGrayscale),
	)
	if err != nil {
		t.Fatalf("NewSettings() error = %v", err)
	}

	want := Settings{
		FFTSize: 2048, Window: window.TypeBlackman, Scale: freqscale.Octave,
		MinFreq: 50, MaxFreq: 6000, MinDB: -100, MaxDB: -10, TimeRange: 5,
		Weighting: weighting.TypeA, SampleRate: 16000, Overlap: 0.5, Theme: colormap.ThemeGrayscale,
	}
	if s != want {
		t.Fatalf("NewSettings() = %+v, want %+v", s, want)
	}

	if _, err := NewSettings(WithFFTSize(100)); !errors.Is(err, core.ErrConfiguration) {
		t.Fatalf("NewSettings(bad fft) error = %v", err)
	}
}
