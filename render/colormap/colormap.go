// Package colormap converts normalized magnitudes into colors through a
// precomputed 256-entry lookup table.
package colormap

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/cwbudde/algo-spectrogram/dsp/core"
)

// Size is the number of LUT entries.
const Size = 256

// Theme selects a color ramp.
type Theme int

const (
	// ThemeCMRMAP is Rappaport's black-purple-red-yellow-white ramp with
	// monotonically increasing luminance.
	ThemeCMRMAP Theme = iota
	// ThemeGrayscale is a linear black-to-white ramp.
	ThemeGrayscale
)

// ErrUnknownTheme is returned for theme names or values outside the supported set.
var ErrUnknownTheme = fmt.Errorf("%w: unknown color theme", core.ErrConfiguration)

// Themes lists the supported themes.
func Themes() []Theme {
	return []Theme{ThemeCMRMAP, ThemeGrayscale}
}

// String returns the theme name.
func (t Theme) String() string {
	switch t {
	case ThemeCMRMAP:
		return "CMRMAP"
	case ThemeGrayscale:
		return "Grayscale"
	default:
		return fmt.Sprintf("Theme(%d)", int(t))
	}
}

// Valid reports whether t is a supported theme.
func (t Theme) Valid() bool {
	return t == ThemeCMRMAP || t == ThemeGrayscale
}

// ParseTheme resolves a case-insensitive theme name.
func ParseTheme(name string) (Theme, error) {
	n := strings.TrimSpace(name)
	switch {
	case strings.EqualFold(n, "cmrmap"):
		return ThemeCMRMAP, nil
	case strings.EqualFold(n, "grayscale"), strings.EqualFold(n, "gray"), strings.EqualFold(n, "grey"):
		return ThemeGrayscale, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}
}

// Colormap holds the LUT for the active theme.
//
// A Colormap is not safe for concurrent use with SetTheme.
type Colormap struct {
	theme Theme
	lut   [Size]color.RGBA
}

// New builds the lookup table for theme.
func New(theme Theme) (*Colormap, error) {
	c := &Colormap{}
	if err := c.build(theme); err != nil {
		return nil, err
	}
	return c, nil
}

// ValueToColor maps t in [0,1] to a color. Values outside the range are
// clamped; NaN and -Inf map to the first entry and +Inf to the last.
func (c *Colormap) ValueToColor(t float64) color.RGBA {
	return c.lut[index(t)]
}

// TransformColumn maps every value of src into dst. Both slices must have
// the same length.
func (c *Colormap) TransformColumn(dst []color.RGBA, src []float64) error {
	if len(dst) != len(src) {
		return fmt.Errorf("%w: column length %d, want %d", core.ErrArgument, len(dst), len(src))
	}
	for i, v := range src {
		dst[i] = c.lut[index(v)]
	}
	return nil
}

// SetTheme regenerates the LUT. Setting the active theme is a no-op.
func (c *Colormap) SetTheme(theme Theme) error {
	if theme == c.theme {
		return nil
	}
	return c.build(theme)
}

// Theme returns the active theme.
func (c *Colormap) Theme() Theme { return c.theme }

// Table returns a copy of the LUT.
func (c *Colormap) Table() [Size]color.RGBA { return c.lut }

// Luminance returns 0.299R + 0.587G + 0.114B on the 0..255 channel scale.
func Luminance(c color.RGBA) float64 {
	return 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
}

func index(t float64) int {
	if math.IsNaN(t) {
		return 0
	}
	t = core.Clamp(t, 0, 1)
	return int(math.Round(t * (Size - 1)))
}

func (c *Colormap) build(theme Theme) error {
	var lut [Size]color.RGBA

	switch theme {
	case ThemeCMRMAP:
		for k := range lut {
			lut[k] = cmrmap.at(float64(k) / (Size - 1))
		}
	case ThemeGrayscale:
		for k := range lut {
			v := uint8(k)
			lut[k] = color.RGBA{R: v, G: v, B: v, A: 255}
		}
	default:
		return fmt.Errorf("%w: %d", ErrUnknownTheme, int(theme))
	}

	c.theme = theme
	c.lut = lut
	return nil
}
