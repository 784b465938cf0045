package spectrogram

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"slices"
	"sync"
	"time"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-spectrogram/dsp/buffer"
	"github.com/cwbudde/algo-spectrogram/dsp/core"
	"github.com/cwbudde/algo-spectrogram/dsp/freqscale"
	"github.com/cwbudde/algo-spectrogram/dsp/spectrum"
	"github.com/cwbudde/algo-spectrogram/dsp/weighting"
	"github.com/cwbudde/algo-spectrogram/internal/logging"
	"github.com/cwbudde/algo-spectrogram/render/canvas"
	"github.com/cwbudde/algo-spectrogram/render/colormap"
	"github.com/cwbudde/algo-spectrogram/stats/frequency"
	"github.com/cwbudde/algo-spectrogram/stats/level"
)

// DefaultCapacitySeconds is the amount of audio retained by the sample ring.
const DefaultCapacitySeconds = 60.0

// minTickInterval bounds how often Run polls the ring when the column
// duration is shorter, e.g. a hop of one sample at a very high rate.
const minTickInterval = 100 * time.Microsecond

// Option configures a Pipeline.
type Option func(*pipelineConfig)

type pipelineConfig struct {
	logger          logging.Logger
	capacitySeconds float64
	backend         spectrum.Backend
}

// WithLogger routes pipeline diagnostics to l. The default discards them.
func WithLogger(l logging.Logger) Option {
	return func(c *pipelineConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithCapacitySeconds sizes the sample ring. The ring always holds at least
// two frames of the largest FFT size.
func WithCapacitySeconds(seconds float64) Option {
	return func(c *pipelineConfig) {
		if seconds > 0 {
			c.capacitySeconds = seconds
		}
	}
}

// WithBackend selects the FFT implementation.
func WithBackend(b spectrum.Backend) Option {
	return func(c *pipelineConfig) { c.backend = b }
}

// Stats counts pipeline activity since construction or the last Reset.
type Stats struct {
	Columns        uint64
	Skips          uint64
	SkippedSamples uint64

	// Dominant component of the most recent frame, after weighting.
	PeakFrequency float64
	PeakDB        float64

	// Shape and level of the most recent frame.
	Spectral frequency.Descriptors
	Level    level.Level
}

// Pipeline drives samples from the ring through analysis, frequency
// resampling, normalization and coloring onto the scrolling canvas.
//
// Write may be called from a capture goroutine concurrently with every other
// method. All remaining methods serialize on an internal mutex.
type Pipeline struct {
	ring    *buffer.Ring
	logger  logging.Logger
	backend spectrum.Backend

	mu        sync.Mutex
	settings  Settings
	analyzer  *spectrum.Analyzer
	resampler *freqscale.Resampler
	colors    *colormap.Colormap
	canvas    *canvas.Canvas
	weights   []float64
	position  uint64
	stats     Stats
	features  frequency.Extractor

	frame  []float32
	power  []float64
	column []float64
	pixels []color.RGBA
}

// New validates s and builds a pipeline rendering onto a width x height
// canvas.
func New(s Settings, width, height int, opts ...Option) (*Pipeline, error) {
	cfg := pipelineConfig{
		logger:          logging.NoOpLogger{},
		capacitySeconds: DefaultCapacitySeconds,
		backend:         spectrum.BackendAlgoFFT,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	capacity := max(int(cfg.capacitySeconds*s.SampleRate), 2*spectrum.MaxFFTSize)
	ring, err := buffer.NewRing(capacity)
	if err != nil {
		return nil, err
	}

	cv, err := canvas.New(width, height)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		ring:    ring,
		logger:  cfg.logger.WithFields(logging.Fields{"component": "spectrogram"}),
		backend: cfg.backend,
		canvas:  cv,
	}

	st, err := p.build(s, height)
	if err != nil {
		return nil, err
	}
	p.install(st)

	p.logger.Debug("pipeline created", logging.Fields{
		"fft_size": s.FFTSize,
		"hop":      s.HopSize(),
		"scale":    s.Scale,
		"width":    width,
		"height":   height,
		"capacity": capacity,
		"backend":  cfg.backend,
	})

	return p, nil
}

// stages holds everything derived from Settings, built off to the side so
// a failed reconfiguration leaves the running pipeline untouched.
type stages struct {
	settings  Settings
	analyzer  *spectrum.Analyzer
	resampler *freqscale.Resampler
	colors    *colormap.Colormap
	weights   []float64
}

func (p *Pipeline) build(s Settings, height int) (stages, error) {
	analyzer, err := spectrum.NewAnalyzer(s.FFTSize, s.Window, spectrum.WithBackend(p.backend))
	if err != nil {
		return stages{}, err
	}

	resampler, err := freqscale.NewResampler(s.Scale, s.MinFreq, s.MaxFreq, s.SampleRate, s.FFTSize, height)
	if err != nil {
		return stages{}, err
	}

	colors, err := colormap.New(s.Theme)
	if err != nil {
		return stages{}, err
	}

	var weights []float64
	if s.Weighting != weighting.TypeNone {
		weights, err = weighting.BinOffsets(s.Weighting, s.FFTSize, s.SampleRate)
		if err != nil {
			return stages{}, err
		}
	}

	return stages{
		settings:  s,
		analyzer:  analyzer,
		resampler: resampler,
		colors:    colors,
		weights:   weights,
	}, nil
}

func (p *Pipeline) install(st stages) {
	p.settings = st.settings
	p.analyzer = st.analyzer
	p.resampler = st.resampler
	p.colors = st.colors
	p.weights = st.weights

	p.frame = make([]float32, st.settings.FFTSize)
	p.power = make([]float64, st.analyzer.NumBins())
	p.column = make([]float64, st.resampler.Height())
	p.pixels = make([]color.RGBA, st.resampler.Height())
}

// Write appends captured samples to the ring. It never blocks on the
// processing side.
func (p *Pipeline) Write(samples []float32) {
	p.ring.Write(samples)
}

// Step renders one column if a full frame is available past the read
// position. It reports whether a column was produced.
func (p *Pipeline) Step() (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.step()
}

// Drain renders every column currently available and returns the count.
func (p *Pipeline) Drain() (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := 0
	for {
		ok, err := p.step()
		if err != nil {
			return n, err
		}
		if !ok {
			return n, nil
		}
		n++
	}
}

// Run drains the pipeline once per column duration until ctx is done, then
// returns ctx.Err(). Column durations below 100µs are polled at 100µs.
func (p *Pipeline) Run(ctx context.Context) error {
	p.mu.Lock()
	interval := tickInterval(p.settings)
	p.mu.Unlock()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, err := p.Drain(); err != nil {
				p.logger.Error(err, "column processing failed")
				return err
			}

			p.mu.Lock()
			next := tickInterval(p.settings)
			p.mu.Unlock()
			if next != interval {
				interval = next
				ticker.Reset(interval)
			}
		}
	}
}

func tickInterval(s Settings) time.Duration {
	return max(s.ColumnDuration(), minTickInterval)
}

func (p *Pipeline) step() (bool, error) {
	n := uint64(p.settings.FFTSize)
	written := p.ring.WritePosition()

	p.catchUp(written)

	if written < p.position+n {
		return false, nil
	}

	p.ring.Read(p.position, p.frame)
	if err := p.analyzer.Process(p.frame, p.power); err != nil {
		return false, err
	}

	if p.weights != nil {
		vecmath.AddBlockInPlace(p.power, p.weights)
	}

	peak := spectrum.PeakBin(p.power)
	p.stats.PeakDB = p.power[peak]
	p.stats.PeakFrequency = p.analyzer.BinFrequency(peak, p.settings.SampleRate)
	p.stats.Spectral = p.features.Describe(p.power, p.settings.SampleRate)
	p.stats.Level = level.Measure(p.frame)

	if err := p.resampler.Resample(p.column, p.power); err != nil {
		return false, err
	}

	if err := Normalize(p.column, p.column, p.settings.MinDB, p.settings.MaxDB); err != nil {
		return false, err
	}

	// Highest frequency on the top row.
	slices.Reverse(p.column)

	if err := p.colors.TransformColumn(p.pixels, p.column); err != nil {
		return false, err
	}
	if err := p.canvas.AddColumn(p.pixels); err != nil {
		return false, err
	}

	p.position += uint64(p.settings.HopSize())
	p.stats.Columns++

	return true, nil
}

// catchUp moves the read position forward when the writer has lapped, or is
// about to lap, the oldest sample the next frame needs.
func (p *Pipeline) catchUp(written uint64) {
	n := uint64(p.settings.FFTSize)
	limit := uint64(p.ring.Capacity()) - n
	if written <= p.position || written-p.position <= limit {
		return
	}

	next := written - n
	skipped := next - p.position
	p.stats.Skips++
	p.stats.SkippedSamples += skipped

	p.logger.Warn("processing fell behind capture, skipping ahead", logging.Fields{
		"from":    p.position,
		"to":      next,
		"skipped": skipped,
	})

	p.position = next
}

// Reconfigure applies new settings. Analyzer, resampler, weighting and
// colormap are rebuilt and the canvas is cleared; the ring and the read
// position are kept. On error nothing changes.
//
// The ring keeps the capacity in samples it was built with. After a sample
// rate change it therefore spans a different time than WithCapacitySeconds
// requested; the lag policy always works from the ring's actual capacity.
func (p *Pipeline) Reconfigure(s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	st, err := p.build(s, p.canvas.Height())
	if err != nil {
		return err
	}

	p.install(st)
	p.canvas.Clear()

	p.logger.Info("pipeline reconfigured", logging.Fields{
		"fft_size":  s.FFTSize,
		"window":    s.Window,
		"scale":     s.Scale,
		"weighting": s.Weighting,
	})

	return nil
}

// Resize changes the canvas dimensions, rebuilding the resampler for the new
// height. The canvas is cleared.
func (p *Pipeline) Resize(width, height int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	st, err := p.build(p.settings, height)
	if err != nil {
		return err
	}
	if err := p.canvas.Resize(width, height); err != nil {
		return err
	}

	p.install(st)
	return nil
}

// SetTheme switches the colormap. Columns already on the canvas keep their
// colors.
func (p *Pipeline) SetTheme(t colormap.Theme) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.colors.SetTheme(t); err != nil {
		return err
	}
	p.settings.Theme = t
	return nil
}

// Reset clears the canvas and statistics and moves the read position to the
// current write position.
func (p *Pipeline) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.canvas.Clear()
	p.position = p.ring.WritePosition()
	p.stats = Stats{}
}

// Seek sets the absolute read position. Positions the ring no longer holds
// are moved forward on the next Step.
func (p *Pipeline) Seek(position uint64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if w := p.ring.WritePosition(); position > w {
		return fmt.Errorf("%w: position %d beyond write position %d", core.ErrArgument, position, w)
	}
	p.position = position
	return nil
}

// Settings returns the active settings.
func (p *Pipeline) Settings() Settings {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.settings
}

// Stats returns a snapshot of the counters.
func (p *Pipeline) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stats
}

// Position returns the absolute index of the next frame's first sample.
func (p *Pipeline) Position() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.position
}

// Ring exposes the sample store.
func (p *Pipeline) Ring() *buffer.Ring { return p.ring }

// Canvas exposes the canvas. Callers must not use it concurrently with Step,
// Drain or Run; VisibleImage and SaveBMP are safe alternatives.
func (p *Pipeline) Canvas() *canvas.Canvas { return p.canvas }

// Resampler exposes the active frequency mapping, e.g. for axis labels.
func (p *Pipeline) Resampler() *freqscale.Resampler {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.resampler
}

// VisibleImage copies the visible window of the canvas, oldest column left.
func (p *Pipeline) VisibleImage() *image.RGBA {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.canvas.VisibleImage()
}

// SaveBMP writes the canvas to path.
func (p *Pipeline) SaveBMP(path string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.canvas.SaveBMP(path)
}

// Normalize maps dB values onto [0, 1]: (v-minDB)/(maxDB-minDB), clamped.
// dst and src may be the same slice.
func Normalize(dst, src []float64, minDB, maxDB float64) error {
	if len(dst) != len(src) {
		return fmt.Errorf("%w: dst length %d, src length %d", core.ErrArgument, len(dst), len(src))
	}
	if !(minDB < maxDB) {
		return fmt.Errorf("%w: need min dB < max dB: %g, %g", core.ErrArgument, minDB, maxDB)
	}
	if len(dst) == 0 {
		return nil
	}

	scale := 1 / (maxDB - minDB)
	vecmath.ScaleBlock(dst, src, scale)
	floats.AddConst(-minDB*scale, dst)

	for i, v := range dst {
		dst[i] = core.Clamp(v, 0, 1)
	}
	return nil
}
