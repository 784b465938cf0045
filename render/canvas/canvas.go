// Package canvas stores a scrolling spectrogram image.
//
// The pixel store holds 2*width columns. New columns are written at the
// write offset and the visible window is the width columns starting at the
// read offset, wrapping at 2*width. Existing pixels are never shifted.
package canvas

import (
	"fmt"
	"image"
	"image/color"

	"github.com/cwbudde/algo-spectrogram/dsp/core"
)

// Canvas is a double-width, column-major ring of RGBA columns. Element y of
// a column is image row y, so row 0 is the top of the picture.
//
// A Canvas is not safe for concurrent use.
type Canvas struct {
	width  int
	height int
	pixels []color.RGBA

	writeOffset    int
	readOffset     int
	columnsWritten uint64
}

// New allocates a zeroed canvas of the given visible size.
func New(width, height int) (*Canvas, error) {
	if err := validateSize(width, height); err != nil {
		return nil, err
	}
	return &Canvas{
		width:  width,
		height: height,
		pixels: make([]color.RGBA, 2*width*height),
	}, nil
}

// AddColumn appends one column. col must hold exactly Height colors.
func (c *Canvas) AddColumn(col []color.RGBA) error {
	if len(col) != c.height {
		return fmt.Errorf("%w: column length %d, want height %d", core.ErrArgument, len(col), c.height)
	}

	copy(c.pixels[c.writeOffset*c.height:], col)
	c.columnsWritten++
	c.writeOffset = (c.writeOffset + 1) % (2 * c.width)

	switch {
	case c.columnsWritten <= uint64(c.width):
		c.readOffset = 0
	case c.writeOffset >= c.width:
		c.readOffset = c.writeOffset - c.width
	default:
		c.readOffset = c.writeOffset + c.width
	}

	return nil
}

// Clear zeroes every pixel and resets the offsets and column count.
func (c *Canvas) Clear() {
	clear(c.pixels)
	c.writeOffset = 0
	c.readOffset = 0
	c.columnsWritten = 0
}

// Resize reallocates the store for the new size and discards all history.
// On error the canvas is left unchanged.
func (c *Canvas) Resize(width, height int) error {
	if err := validateSize(width, height); err != nil {
		return err
	}
	c.width = width
	c.height = height
	c.pixels = make([]color.RGBA, 2*width*height)
	c.writeOffset = 0
	c.readOffset = 0
	c.columnsWritten = 0
	return nil
}

// Width returns the number of visible columns.
func (c *Canvas) Width() int { return c.width }

// Height returns the number of rows.
func (c *Canvas) Height() int { return c.height }

// WriteOffset returns the column slot the next AddColumn writes to.
func (c *Canvas) WriteOffset() int { return c.writeOffset }

// ReadOffset returns the column slot of the leftmost visible column.
func (c *Canvas) ReadOffset() int { return c.readOffset }

// ColumnsWritten returns the number of columns added since the last Clear
// or Resize.
func (c *Canvas) ColumnsWritten() uint64 { return c.columnsWritten }

// Pixels exposes the column-major store of 2*Width*Height colors. Column
// slot s occupies Pixels()[s*Height : (s+1)*Height]. Callers must not modify it.
func (c *Canvas) Pixels() []color.RGBA { return c.pixels }

// Column returns the visible column x (0 is the oldest) as a view into the
// store.
func (c *Canvas) Column(x int) []color.RGBA {
	slot := c.slot(x)
	return c.pixels[slot*c.height : (slot+1)*c.height]
}

// At returns the visible pixel at column x and row y.
func (c *Canvas) At(x, y int) color.RGBA {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return color.RGBA{}
	}
	return c.pixels[c.slot(x)*c.height+y]
}

// VisibleImage copies the visible window into a new image.
func (c *Canvas) VisibleImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, c.width, c.height))
	for x := range c.width {
		for y, px := range c.Column(x) {
			i := img.PixOffset(x, y)
			img.Pix[i+0] = px.R
			img.Pix[i+1] = px.G
			img.Pix[i+2] = px.B
			img.Pix[i+3] = px.A
		}
	}
	return img
}

func (c *Canvas) slot(x int) int {
	return (c.readOffset + x) % (2 * c.width)
}

func validateSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: canvas size must be > 0: %dx%d", core.ErrConfiguration, width, height)
	}
	return nil
}
