package texture

import (
	"image"
	"math/bits"

	"github.com/KononK/resize"
)

// encodeMipmaps produces the downsampled levels appended after the base
// payload, largest first. Every level is generated from the original
// bitmap rather than the previous level, downsampled with a triangle
// filter to a square of half the preceding size, and padded to at least
// 32 bytes once encoded.
func encodeMipmaps(m *image.NRGBA, f DataFormat) []byte {
	var dest []byte

	count := bits.Len(uint(m.Rect.Dx())) - 1
	size := m.Rect.Dx() / 2

	for i := 0; i < count; i++ {
		if size < 1 {
			break
		}

		level := resize.Resize(uint(size), uint(size), m, resize.Bilinear)
		encoded := encodePixels(rgbaImage(level), f)
		for len(encoded) < minDxtSize {
			encoded = append(encoded, 0)
		}

		dest = append(dest, encoded...)
		size /= 2
	}

	return dest
}
