package colormap

import (
	"image/color"
	"math"
	"sort"
)

// segmentData is a piecewise-linear color ramp. Knot positions are shared by
// all three channels and must be strictly increasing from 0 to 1.
type segmentData struct {
	pos     []float64
	r, g, b []float64
}

// cmrmap is the CMRmap segment table (Rappaport 2002).
var cmrmap = segmentData{
	pos: []float64{0, 0.125, 0.25, 0.375, 0.5, 0.625, 0.75, 0.875, 1},
	r:   []float64{0, 0.15, 0.30, 0.60, 1.00, 0.90, 0.90, 0.90, 1},
	g:   []float64{0, 0.15, 0.15, 0.20, 0.25, 0.50, 0.75, 0.90, 1},
	b:   []float64{0, 0.50, 0.75, 0.50, 0.15, 0.00, 0.10, 0.50, 1},
}

func (s segmentData) at(t float64) color.RGBA {
	j := sort.SearchFloat64s(s.pos, t)
	if j <= 0 {
		return rgba(s.r[0], s.g[0], s.b[0])
	}
	if j >= len(s.pos) {
		last := len(s.pos) - 1
		return rgba(s.r[last], s.g[last], s.b[last])
	}

	x0, x1 := s.pos[j-1], s.pos[j]
	f := (t - x0) / (x1 - x0)
	lerp := func(v []float64) float64 { return v[j-1] + f*(v[j]-v[j-1]) }

	return rgba(lerp(s.r), lerp(s.g), lerp(s.b))
}

func rgba(r, g, b float64) color.RGBA {
	return color.RGBA{R: channel(r), G: channel(g), B: channel(b), A: 255}
}

func channel(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}
