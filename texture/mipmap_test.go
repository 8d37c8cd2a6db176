package texture

import (
	"bytes"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeMipmaps16(t *testing.T) {
	m := uniformImage(16, 16, color.NRGBA{R: 0xff, A: 0xff})

	data := encodeMipmaps(m, Rgb565)

	// Levels 8x8, 4x4, 2x2 and 1x1; the last two round up to a whole
	// block and land on the 32 byte floor anyway.
	require.Len(t, data, 128+32+32+32)

	// Downsampling a uniform image is a no-op, so the 8x8 level is solid.
	assert.Equal(t, bytes.Repeat([]byte{0xf8, 0x00}, 64), data[:128])
}
