package texture

import (
	"image"
	"image/color"
	"io"

	"github.com/bodgit/gvr/quant"
)

func paletteColors(f DataFormat) int {
	if f == Index4 {
		return colorsIndex4
	}
	return colorsIndex8
}

// encodePaletteEntry packs one palette color using the chosen palette
// pixel format. Entries are always two bytes.
func encodePaletteEntry(f PixelFormat, c color.NRGBA) (byte, byte) {
	switch f {
	case PixelRgb565:
		p := encode565(c)
		return byte(p >> 8), byte(p)
	case PixelRgb5a3:
		p := encode5a3(c)
		return byte(p >> 8), byte(p)
	default:
		return c.A, luma(c)
	}
}

func decodePaletteEntry(f PixelFormat, hi, lo byte) color.NRGBA {
	switch f {
	case PixelRgb565:
		return decode565(uint16(hi)<<8 | uint16(lo))
	case PixelRgb5a3:
		return decode5a3(uint16(hi)<<8 | uint16(lo))
	default:
		return color.NRGBA{R: lo, G: lo, B: lo, A: hi}
	}
}

// encodePalettized builds the internal palette with the quantization
// service and appends the index stream for the whole image. If the
// quantizer comes back with fewer colors than the format needs, the
// palette is padded with fully transparent entries, never shrunk.
func encodePalettized(m *image.NRGBA, f DataFormat, pf PixelFormat) ([]byte, error) {
	width, height := m.Rect.Dx(), m.Rect.Dy()
	colors := paletteColors(f)

	src := m
	if pf == PixelRgb565 {
		// The palette can't hold alpha, so don't let it influence
		// quantization.
		src = image.NewNRGBA(m.Rect)
		copy(src.Pix, m.Pix)
		for i := 3; i < len(src.Pix); i += 4 {
			src.Pix[i] = 0xff
		}
	}

	palette, indices, err := quant.Image(src, colors)
	if err != nil {
		return nil, err
	}

	dest := make([]byte, 0, colors*2+width*height)
	for i := 0; i < colors; i++ {
		var c color.NRGBA
		if i < len(palette) {
			r, g, b, a := palette[i].RGBA()
			c = color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
		}
		hi, lo := encodePaletteEntry(pf, c)
		dest = append(dest, hi, lo)
	}

	if f == Index4 {
		packed := make([]byte, (width*height+1)/2)
		idx := 0
		it := newBlockIterator(width, height, 8, 8)
		for x, y, ok := it.next(); ok; x, y, ok = it.next() {
			packed[idx/2] |= indices[y*width+x] & 0x0f << uint(^it.col&0x1*4)
			idx++
		}
		dest = append(dest, packed...)
	} else {
		it := newBlockIterator(width, height, 8, 4)
		for x, y, ok := it.next(); ok; x, y, ok = it.next() {
			dest = append(dest, indices[y*width+x])
		}
	}

	return dest, nil
}

// decodePalettized reads the fixed-size palette followed by the index
// stream and substitutes colors.
func decodePalettized(data []byte, width, height int, f DataFormat, pf PixelFormat) (*image.NRGBA, error) {
	colors := paletteColors(f)
	if len(data) < colors*2 {
		return nil, io.ErrUnexpectedEOF
	}

	palette := make([]color.NRGBA, colors)
	for i := range palette {
		palette[i] = decodePaletteEntry(pf, data[i*2], data[i*2+1])
	}
	data = data[colors*2:]

	m := image.NewNRGBA(image.Rect(0, 0, width, height))

	if f == Index4 {
		if len(data) < (width*height+1)/2 {
			return nil, io.ErrUnexpectedEOF
		}
		idx := 0
		it := newBlockIterator(width, height, 8, 8)
		for x, y, ok := it.next(); ok; x, y, ok = it.next() {
			m.SetNRGBA(x, y, palette[data[idx/2]>>uint(^it.col&0x1*4)&0x0f])
			idx++
		}
	} else {
		r := &byteReader{data: data}
		it := newBlockIterator(width, height, 8, 4)
		for x, y, ok := it.next(); ok; x, y, ok = it.next() {
			i, err := r.u8()
			if err != nil {
				return nil, err
			}
			m.SetNRGBA(x, y, palette[i])
		}
	}

	return m, nil
}
