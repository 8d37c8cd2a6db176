/*
Package quant provides the color quantization service used to build the
palettes for the indexed texture formats.

Quantization itself is delegated to a median-cut quantizer; this package
only adds the plumbing to get a per-pixel index buffer alongside the
palette. The quantizer is free to return fewer colors than requested when
the image doesn't have enough distinct colors; callers that need a
fixed-size palette are expected to pad.
*/
package quant

import (
	"errors"
	"image"
	"image/color"
	"image/draw"

	"github.com/ericpauley/go-quantize/quantize"
)

// ErrNoColors is returned when the quantizer produces an empty palette,
// which only happens for an empty image.
var ErrNoColors = errors.New("quant: quantizer returned no colors")

// Image reduces m to at most colors distinct colors. It returns the
// palette and one palette index per pixel in row-major order.
func Image(m image.Image, colors int) (color.Palette, []uint8, error) {
	q := quantize.MedianCutQuantizer{}
	p := q.Quantize(make(color.Palette, 0, colors), m)
	if len(p) == 0 {
		return nil, nil, ErrNoColors
	}

	b := m.Bounds()
	pm := image.NewPaletted(b, p)
	draw.Draw(pm, b, m, b.Min, draw.Src)

	indices := make([]uint8, b.Dx()*b.Dy())
	for y := 0; y < b.Dy(); y++ {
		copy(indices[y*b.Dx():(y+1)*b.Dx()], pm.Pix[y*pm.Stride:])
	}

	return p, indices, nil
}
