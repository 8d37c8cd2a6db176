package texture

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dxtBlock(pixels [16]color.NRGBA) [64]byte {
	var block [64]byte
	for i, c := range pixels {
		block[i*4] = c.R
		block[i*4+1] = c.G
		block[i*4+2] = c.B
		block[i*4+3] = c.A
	}
	return block
}

func TestCompressDxtBlockUniform(t *testing.T) {
	var pixels [16]color.NRGBA
	for i := range pixels {
		pixels[i] = color.NRGBA{R: 0xff, A: 0xff}
	}
	block := dxtBlock(pixels)

	// A uniform block has a degenerate reference pair; the second color
	// is pushed to black and the stored order selects four color mode.
	out := compressDxtBlock(&block)
	assert.Equal(t, [8]byte{0xf8, 0x00, 0x00, 0x00, 0, 0, 0, 0}, out)
}

func TestCompressDxtBlockUniformBlack(t *testing.T) {
	var pixels [16]color.NRGBA
	for i := range pixels {
		pixels[i] = color.NRGBA{A: 0xff}
	}
	block := dxtBlock(pixels)

	// Black can't be perturbed downwards, so the second color becomes
	// white and ends up stored first.
	out := compressDxtBlock(&block)
	assert.Equal(t, [8]byte{0xff, 0xff, 0x00, 0x00, 0x55, 0x55, 0x55, 0x55}, out)
}

func TestCompressDxtBlockTwoColors(t *testing.T) {
	var pixels [16]color.NRGBA
	for i := range pixels {
		pixels[i] = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}
	pixels[0] = color.NRGBA{A: 0xff}
	block := dxtBlock(pixels)

	// Opaque block, so the pair is stored in four color order; the black
	// pixel maps to the second palette entry.
	out := compressDxtBlock(&block)
	assert.Equal(t, [8]byte{0xff, 0xff, 0x00, 0x00, 0x40, 0x00, 0x00, 0x00}, out)
}

func TestCompressDxtBlockTransparent(t *testing.T) {
	var block [64]byte

	// No opaque pixels at all; the fallback pair is stored in three
	// color order and every index is the transparent entry.
	out := compressDxtBlock(&block)
	assert.Equal(t, [8]byte{0x00, 0x00, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}, out)
}

func TestCompressDxtBlockPunchThrough(t *testing.T) {
	var pixels [16]color.NRGBA
	for i := range pixels {
		if i%4 < 2 {
			pixels[i] = color.NRGBA{R: 0xff, A: 0xff}
		}
	}
	block := dxtBlock(pixels)

	out := compressDxtBlock(&block)
	assert.Equal(t, [8]byte{0x00, 0x00, 0xf8, 0x00, 0x5f, 0x5f, 0x5f, 0x5f}, out)

	palette := dxtPalette(0x0000, 0xf800)
	assert.Equal(t, color.NRGBA{}, palette[3])
}

func TestDxtPalette(t *testing.T) {
	// Four color mode interpolates at thirds.
	palette := dxtPalette(0xffff, 0x0000)
	assert.Equal(t, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, palette[0])
	assert.Equal(t, color.NRGBA{A: 0xff}, palette[1])
	assert.Equal(t, color.NRGBA{R: 170, G: 170, B: 170, A: 0xff}, palette[2])
	assert.Equal(t, color.NRGBA{R: 85, G: 85, B: 85, A: 0xff}, palette[3])

	// Three color mode has a midpoint and a transparent entry.
	palette = dxtPalette(0x0000, 0xffff)
	assert.Equal(t, color.NRGBA{R: 127, G: 127, B: 127, A: 0xff}, palette[2])
	assert.Equal(t, color.NRGBA{}, palette[3])
}

func TestEncodePixelsDxt1Roundtrip(t *testing.T) {
	m := uniformImage(8, 8, color.NRGBA{R: 0xff, A: 0xff})
	for y := 4; y < 8; y++ {
		for x := 4; x < 8; x++ {
			m.SetNRGBA(x, y, color.NRGBA{})
		}
	}

	data := encodePixels(m, Dxt1)
	require.Len(t, data, 32)

	got, err := decodePixels(data, 8, 8, Dxt1)
	require.NoError(t, err)

	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			want := color.NRGBA{R: 0xff, A: 0xff}
			if x >= 4 && y >= 4 {
				want = color.NRGBA{}
			}
			assert.Equal(t, want, got.NRGBAAt(x, y))
		}
	}
}

// A 4x4 image still emits a full 8x8 tile worth of blocks, which also
// satisfies the minimum payload size.
func TestEncodePixelsDxt1Small(t *testing.T) {
	m := uniformImage(4, 4, color.NRGBA{R: 0xff, A: 0xff})

	data := encodePixels(m, Dxt1)
	require.Len(t, data, minDxtSize)

	assert.Equal(t, []byte{0xf8, 0x00, 0x00, 0x00, 0, 0, 0, 0}, data[:8])

	got, err := decodePixels(data, 4, 4, Dxt1)
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 0xff, A: 0xff}, got.NRGBAAt(3, 3))
}
