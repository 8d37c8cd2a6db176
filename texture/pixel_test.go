package texture

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniformImage(width, height int, c color.NRGBA) *image.NRGBA {
	m := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			m.SetNRGBA(x, y, c)
		}
	}
	return m
}

func testImage(width, height int) *image.NRGBA {
	m := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			m.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x*37 + y*17),
				G: uint8(x*11 + y*43),
				B: uint8(x*29 + y*7),
				A: uint8(x*16 + y),
			})
		}
	}
	return m
}

func TestEncodePixelsGolden(t *testing.T) {
	red := color.NRGBA{R: 0xff, A: 0xff}

	tables := []struct {
		format        DataFormat
		width, height int
		pixel         color.NRGBA
		want          []byte
	}{
		{Rgb565, 4, 4, red, bytes.Repeat([]byte{0xf8, 0x00}, 16)},
		{Rgb5a3, 4, 4, red, bytes.Repeat([]byte{0xfc, 0x00}, 16)},
		{Rgb5a3, 4, 4, color.NRGBA{R: 16, G: 32, B: 48, A: 64}, bytes.Repeat([]byte{0x21, 0x23}, 16)},
		{IntensityA8, 4, 4, color.NRGBA{R: 0xff, A: 128}, bytes.Repeat([]byte{128, 76}, 16)},
		{IntensityA4, 8, 4, color.NRGBA{R: 0xff, A: 128}, bytes.Repeat([]byte{0x74}, 32)},
		{Intensity8, 8, 4, red, bytes.Repeat([]byte{76}, 32)},
		{Intensity4, 8, 8, red, bytes.Repeat([]byte{0x44}, 32)},
	}

	for _, table := range tables {
		m := uniformImage(table.width, table.height, table.pixel)
		assert.Equal(t, table.want, encodePixels(m, table.format), table.format.String())
	}
}

// Two packed samples per byte, even column in the high nibble.
func TestEncodePixelsIntensity4Packing(t *testing.T) {
	m := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	m.SetNRGBA(0, 0, color.NRGBA{R: 0xff, A: 0xff})

	data := encodePixels(m, Intensity4)
	require.Len(t, data, 32)
	assert.Equal(t, byte(0x40), data[0])

	m = image.NewNRGBA(image.Rect(0, 0, 8, 8))
	m.SetNRGBA(1, 0, color.NRGBA{R: 0xff, A: 0xff})

	data = encodePixels(m, Intensity4)
	assert.Equal(t, byte(0x04), data[0])
}

// Each 4x4 block is two 32-byte planes, alpha/red pairs then green/blue
// pairs.
func TestEncodePixelsArgb8888Layout(t *testing.T) {
	m := image.NewNRGBA(image.Rect(0, 0, 8, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			m.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x),
				G: uint8(y),
				B: uint8(x + y),
				A: uint8(0xc8 + x),
			})
		}
	}

	data := encodePixels(m, Argb8888)
	require.Len(t, data, 128)

	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			block := x / 4
			i := y*4 + x%4
			base := block*64 + i*2

			assert.Equal(t, byte(0xc8+x), data[base])
			assert.Equal(t, byte(x), data[base+1])
			assert.Equal(t, byte(y), data[base+32])
			assert.Equal(t, byte(x+y), data[base+33])
		}
	}
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

func TestPixelsRoundtrip(t *testing.T) {
	m := testImage(16, 16)

	tables := []struct {
		format       DataFormat
		rgb, g, a    int
		opaque, gray bool
	}{
		{Argb8888, 0, 0, 0, false, false},
		{Rgb565, 8, 4, 0, true, false},
		{Rgb5a3, 17, 17, 36, false, false},
		{IntensityA8, 0, 0, 0, false, true},
		{IntensityA4, 17, 17, 17, false, true},
		{Intensity8, 0, 0, 0, true, true},
		{Intensity4, 17, 17, 0, true, true},
	}

	for _, table := range tables {
		data := encodePixels(m, table.format)
		got, err := decodePixels(data, 16, 16, table.format)
		require.NoError(t, err, table.format.String())

		for y := 0; y < 16; y++ {
			for x := 0; x < 16; x++ {
				want, have := m.NRGBAAt(x, y), got.NRGBAAt(x, y)

				if table.gray {
					i := luma(want)
					assert.LessOrEqual(t, absDiff(i, have.R), table.rgb, table.format.String())
					assert.Equal(t, have.R, have.G)
					assert.Equal(t, have.R, have.B)
				} else {
					assert.LessOrEqual(t, absDiff(want.R, have.R), table.rgb, table.format.String())
					assert.LessOrEqual(t, absDiff(want.G, have.G), table.g, table.format.String())
					assert.LessOrEqual(t, absDiff(want.B, have.B), table.rgb, table.format.String())
				}

				if table.opaque {
					assert.Equal(t, uint8(0xff), have.A, table.format.String())
				} else {
					assert.LessOrEqual(t, absDiff(want.A, have.A), table.a, table.format.String())
				}
			}
		}
	}
}

func TestDecodePixelsShortPayload(t *testing.T) {
	for _, format := range []DataFormat{
		Intensity4, Intensity8, IntensityA4, IntensityA8, Rgb565, Rgb5a3, Argb8888,
	} {
		_, err := decodePixels([]byte{0x00}, 8, 8, format)
		assert.Error(t, err, format.String())
	}
}
