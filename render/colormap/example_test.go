package colormap_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-spectrogram/render/colormap"
)

func ExampleColormap_ValueToColor() {
	c, err := colormap.New(colormap.ThemeCMRMAP)
	if err != nil {
		panic(err)
	}

	for _, t := range []float64{0, 0.25, 0.5, 0.75, 1, math.NaN()} {
		rgba := c.ValueToColor(t)
		fmt.Println(rgba.R, rgba.G, rgba.B)
	}
	// Output:
	// 0 0 0
	// 77 38 191
	// 255 65 38
	// 230 191 25
	// 255 255 255
	// 0 0 0
}
