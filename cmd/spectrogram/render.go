package main

import (
	"bufio"
	"context"
	"fmt"
	"image/png"
	"os"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
	"golang.org/x/term"

	"github.com/cwbudde/algo-spectrogram/spectrogram"
)

// progress reports rendered columns. The zero value is silent.
type progress struct {
	p   *mpb.Progress
	bar *mpb.Bar
}

func newProgress(enabled bool, total int) progress {
	if !enabled || total <= 0 || !term.IsTerminal(int(os.Stderr.Fd())) {
		return progress{}
	}

	p := mpb.New(mpb.WithWidth(64), mpb.WithOutput(os.Stderr))
	bar := p.AddBar(int64(total),
		mpb.PrependDecorators(
			decor.Name("Rendering: "),
			decor.CountersNoUnit("%d / %d"),
		),
		mpb.AppendDecorators(
			decor.Percentage(),
			decor.AverageETA(decor.ET_STYLE_GO),
		),
	)
	return progress{p: p, bar: bar}
}

func (pr progress) add(n int) {
	if pr.bar != nil && n > 0 {
		pr.bar.IncrBy(n)
	}
}

func (pr progress) done() {
	if pr.p == nil {
		return
	}
	pr.bar.SetTotal(-1, true)
	pr.p.Wait()
}

// expectedColumns is the number of frames a stream of n samples yields.
func expectedColumns(n int, s spectrogram.Settings) int {
	if n < s.FFTSize {
		return 0
	}
	return (n-s.FFTSize)/s.HopSize() + 1
}

// renderOffline feeds the samples block by block and drains after each
// block, so the ring never laps the read position.
func renderOffline(ctx context.Context, p *spectrogram.Pipeline, samples []float32, blockSize int, pr progress) error {
	defer pr.done()

	for off := 0; off < len(samples); off += blockSize {
		if err := ctx.Err(); err != nil {
			return err
		}

		p.Write(samples[off:min(off+blockSize, len(samples))])
		n, err := p.Drain()
		if err != nil {
			return err
		}
		pr.add(n)
	}
	return nil
}

// renderRealtime plays the samples into the pipeline at the stream rate on
// one goroutine while Pipeline.Run renders on the caller's. It returns when
// the samples are exhausted or ctx is cancelled.
func renderRealtime(ctx context.Context, p *spectrogram.Pipeline, samples []float32, blockSize int) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	rate := p.Settings().SampleRate
	interval := time.Duration(float64(blockSize) / rate * float64(time.Second))

	go func() {
		defer cancel()

		ticker := time.NewTicker(max(interval, time.Millisecond))
		defer ticker.Stop()

		for off := 0; off < len(samples); off += blockSize {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				p.Write(samples[off:min(off+blockSize, len(samples))])
			}
		}

		// Let Run pick up the final frames.
		select {
		case <-ctx.Done():
		case <-time.After(2 * p.Settings().ColumnDuration()):
		}
	}()

	err := p.Run(ctx)
	if _, derr := p.Drain(); derr != nil {
		return derr
	}
	return err
}

func writeImages(p *spectrogram.Pipeline, bmpPath, pngPath string) error {
	if bmpPath != "" {
		if err := p.SaveBMP(bmpPath); err != nil {
			return err
		}
	}
	if pngPath != "" {
		if err := savePNG(p, pngPath); err != nil {
			return err
		}
	}
	return nil
}

func savePNG(p *spectrogram.Pipeline, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("png: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("png: %w", cerr)
		}
	}()

	w := bufio.NewWriter(f)
	if err := png.Encode(w, p.VisibleImage()); err != nil {
		return fmt.Errorf("png: %w", err)
	}
	return w.Flush()
}
