package spectrogram

import (
	"fmt"
	"math"
	"time"

	"github.com/cwbudde/algo-spectrogram/dsp/core"
	"github.com/cwbudde/algo-spectrogram/dsp/freqscale"
	"github.com/cwbudde/algo-spectrogram/dsp/spectrum"
	"github.com/cwbudde/algo-spectrogram/dsp/weighting"
	"github.com/cwbudde/algo-spectrogram/dsp/window"
	"github.com/cwbudde/algo-spectrogram/render/colormap"
)

// Limits enforced by Settings.Validate.
const (
	MinLevelDB     = -200.0
	MaxLevelDB     = 200.0
	MinTimeRange   = 0.1
	MaxTimeRange   = 1000.0
	MaxOverlap     = 0.95
	DefaultOverlap = 0.75
)

// Settings is the complete analysis and display configuration.
type Settings struct {
	FFTSize    int
	Window     window.Type
	Scale      freqscale.Scale
	MinFreq    float64
	MaxFreq    float64
	MinDB      float64
	MaxDB      float64
	TimeRange  float64 // seconds of history shown across the canvas
	Weighting  weighting.Type
	SampleRate float64
	Overlap    float64 // fraction of each frame shared with the next one
	Theme      colormap.Theme
}

// DefaultSettings returns the stock configuration: 4096-point Hann frames,
// Mel axis 20 Hz - 24 kHz, -140..0 dB, 10 s history at 48 kHz.
func DefaultSettings() Settings {
	return Settings{
		FFTSize:    4096,
		Window:     window.TypeHann,
		Scale:      freqscale.Mel,
		MinFreq:    20,
		MaxFreq:    24000,
		MinDB:      -140,
		MaxDB:      0,
		TimeRange:  10,
		Weighting:  weighting.TypeNone,
		SampleRate: 48000,
		Overlap:    DefaultOverlap,
		Theme:      colormap.ThemeCMRMAP,
	}
}

// SettingsOption mutates Settings.
type SettingsOption func(*Settings)

// NewSettings applies opts to DefaultSettings and validates the result.
func NewSettings(opts ...SettingsOption) (Settings, error) {
	s := DefaultSettings()
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// WithFFTSize sets the analysis frame length in samples.
func WithFFTSize(n int) SettingsOption { return func(s *Settings) { s.FFTSize = n } }

// WithWindow sets the analysis window.
func WithWindow(t window.Type) SettingsOption { return func(s *Settings) { s.Window = t } }

// WithScale sets the vertical frequency scale.
func WithScale(sc freqscale.Scale) SettingsOption { return func(s *Settings) { s.Scale = sc } }

// WithFrequencyRange sets the band shown between the bottom and top rows.
func WithFrequencyRange(minFreq, maxFreq float64) SettingsOption {
	return func(s *Settings) { s.MinFreq, s.MaxFreq = minFreq, maxFreq }
}

// WithAmplitudeRange sets the dB values mapped to the first and last colors.
func WithAmplitudeRange(minDB, maxDB float64) SettingsOption {
	return func(s *Settings) { s.MinDB, s.MaxDB = minDB, maxDB }
}

// WithTimeRange sets the seconds of history the canvas is sized for.
func WithTimeRange(seconds float64) SettingsOption { return func(s *Settings) { s.TimeRange = seconds } }

// WithWeighting selects the frequency weighting applied before display.
func WithWeighting(t weighting.Type) SettingsOption { return func(s *Settings) { s.Weighting = t } }

// WithSampleRate sets the stream rate and lowers MaxFreq to the new Nyquist
// frequency when it would exceed it.
func WithSampleRate(sampleRate float64) SettingsOption {
	return func(s *Settings) { *s = s.WithSampleRate(sampleRate) }
}

// WithOverlap sets the fraction of each frame shared with the next.
func WithOverlap(fraction float64) SettingsOption { return func(s *Settings) { s.Overlap = fraction } }

// WithTheme selects the colormap.
func WithTheme(t colormap.Theme) SettingsOption { return func(s *Settings) { s.Theme = t } }

// Validate checks every field. Errors wrap core.ErrConfiguration.
func (s Settings) Validate() error {
	if err := spectrum.ValidateFFTSize(s.FFTSize); err != nil {
		return err
	}
	if !s.Window.Valid() {
		return fmt.Errorf("%w: %v", window.ErrUnknownType, s.Window)
	}
	if !s.Scale.Valid() {
		return fmt.Errorf("%w: %v", freqscale.ErrUnknownScale, s.Scale)
	}
	if !s.Weighting.Valid() {
		return fmt.Errorf("%w: %v", weighting.ErrUnknownType, s.Weighting)
	}
	if !s.Theme.Valid() {
		return fmt.Errorf("%w: %v", colormap.ErrUnknownTheme, s.Theme)
	}
	if !(s.SampleRate > 0) || math.IsInf(s.SampleRate, 0) {
		return fmt.Errorf("%w: sample rate must be > 0: %g", core.ErrConfiguration, s.SampleRate)
	}
	if !(s.MinFreq > 0) || !(s.MinFreq < s.MaxFreq) {
		return fmt.Errorf("%w: need 0 < min freq < max freq: %g, %g", core.ErrConfiguration, s.MinFreq, s.MaxFreq)
	}
	if s.MaxFreq > s.Nyquist() {
		return fmt.Errorf("%w: max freq %g exceeds Nyquist %g", core.ErrConfiguration, s.MaxFreq, s.Nyquist())
	}
	if !(s.MinDB < s.MaxDB) || s.MinDB < MinLevelDB || s.MaxDB > MaxLevelDB {
		return fmt.Errorf("%w: amplitude range must satisfy %g <= min < max <= %g: %g, %g",
			core.ErrConfiguration, MinLevelDB, MaxLevelDB, s.MinDB, s.MaxDB)
	}
	if !(s.TimeRange >= MinTimeRange && s.TimeRange <= MaxTimeRange) {
		return fmt.Errorf("%w: time range must be in [%g, %g] s: %g", core.ErrConfiguration, MinTimeRange, MaxTimeRange, s.TimeRange)
	}
	if !(s.Overlap >= 0 && s.Overlap <= MaxOverlap) {
		return fmt.Errorf("%w: overlap must be in [0, %g]: %g", core.ErrConfiguration, MaxOverlap, s.Overlap)
	}
	return nil
}

// Nyquist returns half the sample rate.
func (s Settings) Nyquist() float64 { return s.SampleRate / 2 }

// HopSize returns the number of samples between consecutive frames. It is at
// least 1.
func (s Settings) HopSize() int {
	return max(1, int(float64(s.FFTSize)*(1-s.Overlap)))
}

// ColumnDuration is the stream time covered by one canvas column.
func (s Settings) ColumnDuration() time.Duration {
	return time.Duration(float64(s.HopSize()) / s.SampleRate * float64(time.Second))
}

// ColumnsForTimeRange returns how many columns span TimeRange seconds.
func (s Settings) ColumnsForTimeRange() int {
	hop := float64(s.HopSize()) / s.SampleRate
	return max(1, int(math.Ceil(s.TimeRange/hop)))
}

// WithSampleRate returns a copy using sampleRate. MaxFreq is lowered to the
// new Nyquist frequency when needed; other fields are unchanged.
func (s Settings) WithSampleRate(sampleRate float64) Settings {
	s.SampleRate = sampleRate
	if ny := s.Nyquist(); sampleRate > 0 && s.MaxFreq > ny {
		s.MaxFreq = ny
	}
	return s
}
