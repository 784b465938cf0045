// Command spectrogram renders a scrolling spectrogram of a WAV file or a
// generated test signal to a BMP image, optionally also as PNG.
//
// Usage:
//
//	spectrogram [flags]
//
// Examples:
//
//	spectrogram -in speech.wav -out speech.bmp
//	spectrogram -signal chirp -f0 50 -f1 20000 -duration 8s -scale log -png chirp.png
//	spectrogram -signal sine -f0 1000 -weighting A -theme grayscale
//	spectrogram -in music.wav -realtime
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cwbudde/algo-spectrogram/dsp/core"
	"github.com/cwbudde/algo-spectrogram/internal/logging"
	"github.com/cwbudde/algo-spectrogram/spectrogram"
)

type options struct {
	input    string
	output   string
	pngOut   string
	width    int
	height   int
	realtime bool
	progress bool
	logLevel string

	source   sourceConfig
	settings settingsFlags
}

func main() {
	opts := options{}

	flag.StringVar(&opts.input, "in", "", "input WAV file (default: generated signal)")
	flag.StringVar(&opts.output, "out", "spectrogram.bmp", "output BMP path")
	flag.StringVar(&opts.pngOut, "png", "", "optional PNG output path")
	flag.IntVar(&opts.width, "width", 0, "canvas width in columns (0: derived from -time)")
	flag.IntVar(&opts.height, "height", 512, "canvas height in pixels")
	flag.BoolVar(&opts.realtime, "realtime", false, "feed samples at the stream rate and render concurrently")
	flag.BoolVar(&opts.progress, "progress", true, "show a progress bar when stderr is a terminal")
	flag.StringVar(&opts.logLevel, "log", "info", "log level: debug, info, warn, error")

	flag.StringVar(&opts.source.kind, "signal", "sine", "generated signal: sine, chirp, noise")
	flag.Float64Var(&opts.source.f0, "f0", 1000, "sine frequency or chirp start in Hz")
	flag.Float64Var(&opts.source.f1, "f1", 8000, "chirp end frequency in Hz")
	flag.Float64Var(&opts.source.amplitude, "amp", 0.5, "generated signal peak amplitude")
	flag.DurationVar(&opts.source.duration, "duration", 10*time.Second, "generated signal length")
	flag.Int64Var(&opts.source.seed, "seed", 1, "noise seed")
	flag.IntVar(&opts.source.blockSize, "block", core.DefaultProcessorConfig().BlockSize, "samples per write")

	opts.settings.register(flag.CommandLine)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: spectrogram [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Renders a spectrogram of a WAV file or a generated signal.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	logger := logging.NewDefaultLogger()
	level, ok := logging.ParseLevel(opts.logLevel)
	if !ok {
		fmt.Fprintf(os.Stderr, "warning: unknown log level %q, using info\n", opts.logLevel)
	}
	logger.SetLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts, logger); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, logger logging.Logger) error {
	samples, sampleRate, err := loadSource(opts.input, opts.source, opts.settings.sampleRate)
	if err != nil {
		return err
	}

	settings, err := opts.settings.build(sampleRate)
	if err != nil {
		return err
	}

	width := opts.width
	if width <= 0 {
		width = settings.ColumnsForTimeRange()
	}

	backend, err := opts.settings.backend()
	if err != nil {
		return err
	}

	p, err := spectrogram.New(settings, width, opts.height,
		spectrogram.WithLogger(logger),
		spectrogram.WithBackend(backend),
	)
	if err != nil {
		return err
	}

	logger.Info("rendering", logging.Fields{
		"samples":  len(samples),
		"rate":     settings.SampleRate,
		"fft":      settings.FFTSize,
		"hop":      settings.HopSize(),
		"scale":    settings.Scale,
		"canvas":   fmt.Sprintf("%dx%d", width, opts.height),
		"realtime": opts.realtime,
	})

	blockSize := max(1, opts.source.blockSize)
	if opts.realtime {
		err = renderRealtime(ctx, p, samples, blockSize)
	} else {
		err = renderOffline(ctx, p, samples, blockSize, newProgress(opts.progress, expectedColumns(len(samples), settings)))
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	st := p.Stats()
	logger.Info("rendered", logging.Fields{
		"columns":     st.Columns,
		"skips":       st.Skips,
		"peak_hz":     fmt.Sprintf("%.1f", st.PeakFrequency),
		"peak_db":     fmt.Sprintf("%.1f", st.PeakDB),
		"interrupted": errors.Is(err, context.Canceled),
		"bmp":         opts.output,
		"png":         opts.pngOut,
	})

	return writeImages(p, opts.output, opts.pngOut)
}
