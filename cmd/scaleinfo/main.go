// Command scaleinfo prints how spectrogram rows map to frequencies and FFT
// bins for each frequency scale, and the properties of the analysis windows.
//
// Usage:
//
//	scaleinfo [flags] [scale-name ...]
//
// Without arguments it prints the mapping for all scales.
//
// Examples:
//
//	scaleinfo mel
//	scaleinfo -height 512 -rows 16 log erb
//	scaleinfo -fft 1024 -rate 44100 -max 22050 octave
//	scaleinfo -windows
//	scaleinfo -list
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-spectrogram/dsp/freqscale"
	"github.com/cwbudde/algo-spectrogram/dsp/spectrum"
	"github.com/cwbudde/algo-spectrogram/dsp/window"
)

type mappingConfig struct {
	fftSize    int
	sampleRate float64
	minFreq    float64
	maxFreq    float64
	height     int
	rows       int
}

func main() {
	cfg := mappingConfig{}
	flag.IntVar(&cfg.fftSize, "fft", 4096, "FFT size (power of two, 32..16384)")
	flag.Float64Var(&cfg.sampleRate, "rate", 48000, "sample rate in Hz")
	flag.Float64Var(&cfg.minFreq, "min", 20, "lowest displayed frequency in Hz")
	flag.Float64Var(&cfg.maxFreq, "max", 24000, "highest displayed frequency in Hz")
	flag.IntVar(&cfg.height, "height", 1080, "canvas height in pixels")
	flag.IntVar(&cfg.rows, "rows", 12, "number of evenly spaced pixel rows to print per scale")
	windows := flag.Bool("windows", false, "print window properties at the FFT size instead")
	list := flag.Bool("list", false, "list available scale names")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: scaleinfo [flags] [scale-name ...]\n\n")
		fmt.Fprintf(os.Stderr, "Prints the pixel -> frequency -> FFT bin mapping of spectrogram scales.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  scaleinfo mel\n")
		fmt.Fprintf(os.Stderr, "  scaleinfo -height 512 -rows 16 log erb\n")
		fmt.Fprintf(os.Stderr, "  scaleinfo -windows\n")
	}
	flag.Parse()

	if *list {
		for _, s := range freqscale.Scales() {
			fmt.Println(s)
		}
		return
	}

	if *windows {
		if err := printWindows(os.Stdout, cfg.fftSize); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	scales := resolveScales(flag.Args())
	if len(scales) == 0 {
		fmt.Fprintf(os.Stderr, "error: no matching scales\n")
		os.Exit(1)
	}

	if err := printMappings(os.Stdout, scales, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func resolveScales(names []string) []freqscale.Scale {
	if len(names) == 0 {
		return freqscale.Scales()
	}

	var result []freqscale.Scale
	for _, name := range names {
		s, err := freqscale.ParseScale(name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: unknown scale %q (use -list to see available)\n", name)
			continue
		}
		result = append(result, s)
	}
	return result
}

// sampleRows returns n pixel indices spread evenly over [0, height-1],
// always including both ends.
func sampleRows(height, n int) []int {
	if n < 2 || height < 2 {
		return []int{0}
	}
	n = min(n, height)

	rows := make([]int, n)
	for i := range rows {
		rows[i] = i * (height - 1) / (n - 1)
	}
	return rows
}

func printMappings(w io.Writer, scales []freqscale.Scale, cfg mappingConfig) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Scale\tPixel\tFrequency [Hz]\tBin\tBin Width [Hz]\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(tw, "-----\t-----\t--------------\t---\t--------------\n"); err != nil {
		return err
	}

	binHz := spectrum.BinFrequency(1, cfg.fftSize, cfg.sampleRate)
	for _, s := range scales {
		r, err := freqscale.NewResampler(s, cfg.minFreq, cfg.maxFreq, cfg.sampleRate, cfg.fftSize, cfg.height)
		if err != nil {
			return err
		}

		mapping := r.Mapping()
		for _, y := range sampleRows(cfg.height, cfg.rows) {
			if _, err := fmt.Fprintf(tw, "%s\t%d\t%.2f\t%.3f\t%.2f\n",
				s, y, r.FrequencyAt(y), mapping[y], binHz); err != nil {
				return err
			}
		}
	}
	return tw.Flush()
}

func printWindows(w io.Writer, size int) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Window\tSize\tCoherent Gain\tENBW [bins]\tMeasured ENBW\tPeriodic ENBW\tSidelobe [dB]\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(tw, "------\t----\t-------------\t-----------\t-------------\t-------------\t-------------\n"); err != nil {
		return err
	}

	for _, t := range window.Types() {
		info := window.Info(t)
		enbw, err := window.EquivalentNoiseBandwidth(window.Generate(t, size))
		if err != nil {
			return err
		}
		periodic, err := window.EquivalentNoiseBandwidth(window.Generate(t, size, window.WithPeriodic()))
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(tw, "%s\t%d\t%.4f\t%.4f\t%.4f\t%.4f\t%.2f\n",
			info.Name, size, info.CoherentGain, info.ENBW, enbw, periodic, info.HighestSidelobe); err != nil {
			return err
		}
	}
	return tw.Flush()
}
