package texture

import (
	"image"
	"image/color"
)

// DXT1 alpha thresholds. A pixel below alphaPair is left out of the
// reference pair search and marks the block as transparent; a pixel below
// alphaIndex is forced onto the transparent palette entry.
const (
	alphaPair  = 16
	alphaIndex = 8
)

// extractDxtBlock gathers the pixels of the 4x4 sub-block at (bx, by)
// into a 64-byte RGBA scratch buffer. Pixels are packed consecutively and
// the remainder is left as fully transparent zero pixels, so sub-blocks
// beyond the image edge quantize as empty.
func extractDxtBlock(m *image.NRGBA, bx, by int) [64]byte {
	var block [64]byte

	i := 0
	for y := by; y < by+4 && y < m.Rect.Max.Y; y++ {
		for x := bx; x < bx+4 && x < m.Rect.Max.X; x++ {
			c := m.NRGBAAt(x, y)
			block[i] = c.R
			block[i+1] = c.G
			block[i+2] = c.B
			block[i+3] = c.A
			i += 4
		}
	}

	return block
}

func sqDistance(r0, g0, b0, r1, g1, b1 int) int {
	dr, dg, db := r0-r1, g0-g1, b0-b1
	return dr*dr + dg*dg + db*db
}

// compressDxtBlock quantizes one 4x4 block down to two 5-6-5 reference
// colors and sixteen 2-bit palette indices.
func compressDxtBlock(block *[64]byte) [8]byte {
	// Find the most distant pair of sufficiently opaque pixels. Ties
	// keep the first pair found in scan order.
	transparent := false
	best := -1
	var p0, p1 int
	for i := 0; i < 16; i++ {
		if block[i*4+3] < alphaPair {
			transparent = true
			continue
		}
		for j := i + 1; j < 16; j++ {
			if block[j*4+3] < alphaPair {
				continue
			}
			d := sqDistance(
				int(block[i*4]), int(block[i*4+1]), int(block[i*4+2]),
				int(block[j*4]), int(block[j*4+1]), int(block[j*4+2]),
			)
			if d > best {
				best, p0, p1 = d, i, j
			}
		}
	}

	var c0, c1 uint16
	if best < 0 {
		// Fewer than two opaque pixels; fall back to a black/white
		// reference pair.
		c0 = encode565(color.NRGBA{A: 0xff})
		c1 = encode565(color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
	} else {
		c0 = encode565(color.NRGBA{R: block[p0*4], G: block[p0*4+1], B: block[p0*4+2]})
		c1 = encode565(color.NRGBA{R: block[p1*4], G: block[p1*4+1], B: block[p1*4+2]})
	}

	// A degenerate pair would collapse the palette; push the second
	// color to the far end of the range.
	if c0 == c1 {
		if c0 == 0 {
			c1 = 0xffff
		} else {
			c1 = 0
		}
	}

	// The stored order selects the sub-mode: color0 > color1 means four
	// interpolated colors, otherwise three colors plus transparent.
	if (c0 > c1) == transparent {
		c0, c1 = c1, c0
	}

	palette := dxtPalette(c0, c1)
	opaque := 4
	if transparent {
		opaque = 3
	}

	var out [8]byte
	out[0] = byte(c0 >> 8)
	out[1] = byte(c0)
	out[2] = byte(c1 >> 8)
	out[3] = byte(c1)

	for i := 0; i < 16; i++ {
		var index int
		if block[i*4+3] < alphaIndex {
			index = 3
		} else {
			r, g, b := int(block[i*4]), int(block[i*4+1]), int(block[i*4+2])
			best := -1
			for j := 0; j < opaque; j++ {
				d := sqDistance(r, g, b,
					int(palette[j].R), int(palette[j].G), int(palette[j].B))
				if best < 0 || d < best {
					best, index = d, j
				}
				if d == 0 {
					break
				}
			}
		}
		out[4+i/4] |= byte(index) << uint((3-i&0x3)*2)
	}

	return out
}

// dxtPalette derives the four palette entries from the two stored
// reference colors, selecting the sub-mode by their ordering.
func dxtPalette(c0, c1 uint16) [4]color.NRGBA {
	e0, e1 := decode565(c0), decode565(c1)

	var palette [4]color.NRGBA
	palette[0] = e0
	palette[1] = e1

	if c0 > c1 {
		palette[2] = color.NRGBA{
			R: uint8((2*int(e0.R) + int(e1.R)) / 3),
			G: uint8((2*int(e0.G) + int(e1.G)) / 3),
			B: uint8((2*int(e0.B) + int(e1.B)) / 3),
			A: 0xff,
		}
		palette[3] = color.NRGBA{
			R: uint8((int(e0.R) + 2*int(e1.R)) / 3),
			G: uint8((int(e0.G) + 2*int(e1.G)) / 3),
			B: uint8((int(e0.B) + 2*int(e1.B)) / 3),
			A: 0xff,
		}
	} else {
		palette[2] = color.NRGBA{
			R: uint8((int(e0.R) + int(e1.R)) / 2),
			G: uint8((int(e0.G) + int(e1.G)) / 2),
			B: uint8((int(e0.B) + int(e1.B)) / 2),
			A: 0xff,
		}
		palette[3] = color.NRGBA{}
	}

	return palette
}

func encodePixelsDxt1(m *image.NRGBA) []byte {
	width, height := m.Rect.Dx(), m.Rect.Dy()
	dest := make([]byte, 0, (width*height+1)/2)

	it := newDxtBlockIterator(width, height)
	for x, y, ok := it.next(); ok; x, y, ok = it.next() {
		block := extractDxtBlock(m, x, y)
		compressed := compressDxtBlock(&block)
		dest = append(dest, compressed[:]...)
	}

	for len(dest) < minDxtSize {
		dest = append(dest, 0)
	}

	return dest
}

func decodePixelsDxt1(data []byte, width, height int) (*image.NRGBA, error) {
	m := image.NewNRGBA(image.Rect(0, 0, width, height))
	r := &byteReader{data: data}

	it := newDxtBlockIterator(width, height)
	for bx, by, ok := it.next(); ok; bx, by, ok = it.next() {
		c0, err := r.u16()
		if err != nil {
			return nil, err
		}
		c1, err := r.u16()
		if err != nil {
			return nil, err
		}
		palette := dxtPalette(c0, c1)

		// Sixteen 2-bit indices follow, four per byte with the most
		// significant pair first, row-major within the block.
		for i := 0; i < 16; i += 4 {
			indices, err := r.u8()
			if err != nil {
				return nil, err
			}
			for j := 0; j < 4; j++ {
				x, y := bx+j, by+i/4
				if x >= width || y >= height {
					continue
				}
				m.SetNRGBA(x, y, palette[indices>>uint((3-j)*2)&0x3])
			}
		}
	}

	return m, nil
}
