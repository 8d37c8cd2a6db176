package quant

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImage(t *testing.T) {
	red := color.NRGBA{R: 0xff, A: 0xff}
	blue := color.NRGBA{B: 0xff, A: 0xff}

	m := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if x < 4 {
				m.SetNRGBA(x, y, red)
			} else {
				m.SetNRGBA(x, y, blue)
			}
		}
	}

	palette, indices, err := Image(m, 16)
	require.NoError(t, err)

	assert.True(t, len(palette) >= 2)
	assert.True(t, len(palette) <= 16)
	require.Len(t, indices, 64)

	// Substituting every index back through the palette must reproduce
	// the image; both colors survive quantization untouched.
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			r, g, b, a := palette[indices[y*8+x]].RGBA()
			got := color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
			assert.Equal(t, m.NRGBAAt(x, y), got)
		}
	}
}
