package texture

import (
	"image"
	"image/color"
	"image/draw"
	"io"
)

// byteReader is a bounds-checked cursor over a pixel payload.
type byteReader struct {
	data []byte
	off  int
}

func (r *byteReader) u8() (byte, error) {
	if r.off >= len(r.data) {
		return 0, io.ErrUnexpectedEOF
	}
	b := r.data[r.off]
	r.off++
	return b, nil
}

// u16 reads a big-endian 16-bit value; every multi-byte pixel word in the
// payload is big-endian.
func (r *byteReader) u16() (uint16, error) {
	if r.off+2 > len(r.data) {
		return 0, io.ErrUnexpectedEOF
	}
	v := uint16(r.data[r.off])<<8 | uint16(r.data[r.off+1])
	r.off += 2
	return v, nil
}

// rgbaImage returns m as a non-premultiplied RGBA buffer anchored at
// (0, 0), copying only if it isn't one already.
func rgbaImage(m image.Image) *image.NRGBA {
	if p, ok := m.(*image.NRGBA); ok && p.Rect.Min == (image.Point{}) {
		return p
	}
	b := m.Bounds()
	p := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(p, p.Rect, m, b.Min, draw.Src)
	return p
}

// pixelAt returns the pixel at (x, y), or a zero pixel when the
// coordinate falls outside the image. Blocks never straddle the edge of a
// validated image, but mipmap levels can shrink below one block.
func pixelAt(m *image.NRGBA, x, y int) color.NRGBA {
	if x >= m.Rect.Max.X || y >= m.Rect.Max.Y {
		return color.NRGBA{}
	}
	return m.NRGBAAt(x, y)
}

// luma converts a color to its brightness using the reference weights,
// truncating the result.
func luma(c color.NRGBA) uint8 {
	return uint8(0.30*float32(c.R) + 0.59*float32(c.G) + 0.11*float32(c.B))
}

// nibble scales an 8-bit value down to 4 bits, truncating.
func nibble(v uint8) uint8 {
	return uint8(float32(v) * 15 / 255)
}

func expand3(v uint16) uint8 { return uint8(float32(v) * 255 / 7) }
func expand4(v uint16) uint8 { return uint8(float32(v) * 255 / 15) }
func expand5(v uint16) uint8 { return uint8(float32(v) * 255 / 31) }
func expand6(v uint16) uint8 { return uint8(float32(v) * 255 / 63) }

// encode565 packs a color into the 5-6-5 layout, dropping alpha.
func encode565(c color.NRGBA) uint16 {
	return uint16(c.R>>3)<<11 | uint16(c.G>>2)<<5 | uint16(c.B>>3)
}

// decode565 unpacks a 5-6-5 value into an opaque color.
func decode565(p uint16) color.NRGBA {
	return color.NRGBA{
		R: expand5(p >> 11 & 0x1f),
		G: expand6(p >> 5 & 0x3f),
		B: expand5(p & 0x1f),
		A: 0xff,
	}
}

// encode5a3 packs a color into either the 3-bit alpha + 4-4-4 layout or,
// for mostly opaque pixels, the opaque 5-5-5 layout with the top bit set.
func encode5a3(c color.NRGBA) uint16 {
	if c.A <= 0xda {
		// Argb3444
		return uint16(c.A>>5)<<12 | uint16(c.R>>4)<<8 | uint16(c.G>>4)<<4 | uint16(c.B>>4)
	}
	// Rgb555
	return 0x8000 | uint16(c.R>>3)<<10 | uint16(c.G>>3)<<5 | uint16(c.B>>3)
}

// decode5a3 inspects the top bit to pick the inverse of encode5a3.
func decode5a3(p uint16) color.NRGBA {
	if p&0x8000 != 0 {
		// Rgb555
		return color.NRGBA{
			R: expand5(p >> 10 & 0x1f),
			G: expand5(p >> 5 & 0x1f),
			B: expand5(p & 0x1f),
			A: 0xff,
		}
	}
	// Argb3444
	return color.NRGBA{
		R: expand4(p >> 8 & 0x0f),
		G: expand4(p >> 4 & 0x0f),
		B: expand4(p & 0x0f),
		A: expand3(p >> 12 & 0x07),
	}
}

// encodePixels encodes the whole image with the given non-palettized data
// format, in block traversal order.
func encodePixels(m *image.NRGBA, f DataFormat) []byte {
	switch f {
	case Intensity4:
		return encodePixelsIntensity4(m)
	case Intensity8:
		return encodePixelsIntensity8(m)
	case IntensityA4:
		return encodePixelsIntensityA4(m)
	case IntensityA8:
		return encodePixelsIntensityA8(m)
	case Rgb565:
		return encodePixelsRgb565(m)
	case Rgb5a3:
		return encodePixelsRgb5a3(m)
	case Argb8888:
		return encodePixelsArgb8888(m)
	case Dxt1:
		return encodePixelsDxt1(m)
	}
	return nil
}

// decodePixels decodes a non-palettized pixel payload back into a bitmap.
func decodePixels(data []byte, width, height int, f DataFormat) (*image.NRGBA, error) {
	switch f {
	case Intensity4:
		return decodePixelsIntensity4(data, width, height)
	case Intensity8:
		return decodePixelsIntensity8(data, width, height)
	case IntensityA4:
		return decodePixelsIntensityA4(data, width, height)
	case IntensityA8:
		return decodePixelsIntensityA8(data, width, height)
	case Rgb565:
		return decodePixelsRgb565(data, width, height)
	case Rgb5a3:
		return decodePixelsRgb5a3(data, width, height)
	case Argb8888:
		return decodePixelsArgb8888(data, width, height)
	case Dxt1:
		return decodePixelsDxt1(data, width, height)
	}
	return nil, ErrInvalidFile
}

func encodePixelsRgb5a3(m *image.NRGBA) []byte {
	width, height := m.Rect.Dx(), m.Rect.Dy()
	dest := make([]byte, 0, width*height*2)

	it := newBlockIterator(width, height, 4, 4)
	for x, y, ok := it.next(); ok; x, y, ok = it.next() {
		p := encode5a3(pixelAt(m, x, y))
		dest = append(dest, byte(p>>8), byte(p))
	}

	return dest
}

func decodePixelsRgb5a3(data []byte, width, height int) (*image.NRGBA, error) {
	m := image.NewNRGBA(image.Rect(0, 0, width, height))
	r := &byteReader{data: data}

	it := newBlockIterator(width, height, 4, 4)
	for x, y, ok := it.next(); ok; x, y, ok = it.next() {
		p, err := r.u16()
		if err != nil {
			return nil, err
		}
		m.SetNRGBA(x, y, decode5a3(p))
	}

	return m, nil
}

func encodePixelsRgb565(m *image.NRGBA) []byte {
	width, height := m.Rect.Dx(), m.Rect.Dy()
	dest := make([]byte, 0, width*height*2)

	it := newBlockIterator(width, height, 4, 4)
	for x, y, ok := it.next(); ok; x, y, ok = it.next() {
		p := encode565(pixelAt(m, x, y))
		dest = append(dest, byte(p>>8), byte(p))
	}

	return dest
}

func decodePixelsRgb565(data []byte, width, height int) (*image.NRGBA, error) {
	m := image.NewNRGBA(image.Rect(0, 0, width, height))
	r := &byteReader{data: data}

	it := newBlockIterator(width, height, 4, 4)
	for x, y, ok := it.next(); ok; x, y, ok = it.next() {
		p, err := r.u16()
		if err != nil {
			return nil, err
		}
		m.SetNRGBA(x, y, decode565(p))
	}

	return m, nil
}

// encodePixelsArgb8888 writes each 4x4 block as two 32-byte planes: the
// (alpha, red) pairs for its 16 pixels followed by the (green, blue)
// pairs at the same per-pixel offsets.
func encodePixelsArgb8888(m *image.NRGBA) []byte {
	width, height := m.Rect.Dx(), m.Rect.Dy()
	dest := make([]byte, width*height*4)

	idx := 0
	it := newBlockIterator(width, height, 4, 4)
	for x, y, ok := it.next(); ok; x, y, ok = it.next() {
		c := pixelAt(m, x, y)
		cur := it.blocks*32 + idx

		dest[cur] = c.A
		dest[cur+1] = c.R
		dest[cur+32] = c.G
		dest[cur+33] = c.B

		idx += 2
	}

	return dest
}

func decodePixelsArgb8888(data []byte, width, height int) (*image.NRGBA, error) {
	if len(data) < width*height*4 {
		return nil, io.ErrUnexpectedEOF
	}
	m := image.NewNRGBA(image.Rect(0, 0, width, height))

	idx := 0
	it := newBlockIterator(width, height, 4, 4)
	for x, y, ok := it.next(); ok; x, y, ok = it.next() {
		cur := it.blocks*32 + idx

		m.SetNRGBA(x, y, color.NRGBA{
			R: data[cur+1],
			G: data[cur+32],
			B: data[cur+33],
			A: data[cur],
		})

		idx += 2
	}

	return m, nil
}

func encodePixelsIntensityA8(m *image.NRGBA) []byte {
	width, height := m.Rect.Dx(), m.Rect.Dy()
	dest := make([]byte, 0, width*height*2)

	it := newBlockIterator(width, height, 4, 4)
	for x, y, ok := it.next(); ok; x, y, ok = it.next() {
		c := pixelAt(m, x, y)
		dest = append(dest, c.A, luma(c))
	}

	return dest
}

func decodePixelsIntensityA8(data []byte, width, height int) (*image.NRGBA, error) {
	m := image.NewNRGBA(image.Rect(0, 0, width, height))
	r := &byteReader{data: data}

	it := newBlockIterator(width, height, 4, 4)
	for x, y, ok := it.next(); ok; x, y, ok = it.next() {
		a, err := r.u8()
		if err != nil {
			return nil, err
		}
		i, err := r.u8()
		if err != nil {
			return nil, err
		}
		m.SetNRGBA(x, y, color.NRGBA{R: i, G: i, B: i, A: a})
	}

	return m, nil
}

func encodePixelsIntensityA4(m *image.NRGBA) []byte {
	width, height := m.Rect.Dx(), m.Rect.Dy()
	dest := make([]byte, 0, width*height)

	it := newBlockIterator(width, height, 8, 4)
	for x, y, ok := it.next(); ok; x, y, ok = it.next() {
		c := pixelAt(m, x, y)
		dest = append(dest, nibble(luma(c))&0x0f|nibble(c.A)&0x0f<<4)
	}

	return dest
}

func decodePixelsIntensityA4(data []byte, width, height int) (*image.NRGBA, error) {
	m := image.NewNRGBA(image.Rect(0, 0, width, height))
	r := &byteReader{data: data}

	it := newBlockIterator(width, height, 8, 4)
	for x, y, ok := it.next(); ok; x, y, ok = it.next() {
		b, err := r.u8()
		if err != nil {
			return nil, err
		}
		i := expand4(uint16(b) & 0x0f)
		m.SetNRGBA(x, y, color.NRGBA{R: i, G: i, B: i, A: expand4(uint16(b) >> 4)})
	}

	return m, nil
}

func encodePixelsIntensity8(m *image.NRGBA) []byte {
	width, height := m.Rect.Dx(), m.Rect.Dy()
	dest := make([]byte, 0, width*height)

	it := newBlockIterator(width, height, 8, 4)
	for x, y, ok := it.next(); ok; x, y, ok = it.next() {
		dest = append(dest, luma(pixelAt(m, x, y)))
	}

	return dest
}

func decodePixelsIntensity8(data []byte, width, height int) (*image.NRGBA, error) {
	m := image.NewNRGBA(image.Rect(0, 0, width, height))
	r := &byteReader{data: data}

	it := newBlockIterator(width, height, 8, 4)
	for x, y, ok := it.next(); ok; x, y, ok = it.next() {
		i, err := r.u8()
		if err != nil {
			return nil, err
		}
		m.SetNRGBA(x, y, color.NRGBA{R: i, G: i, B: i, A: 0xff})
	}

	return m, nil
}

// encodePixelsIntensity4 packs two horizontally adjacent samples per byte,
// even columns in the high nibble.
func encodePixelsIntensity4(m *image.NRGBA) []byte {
	width, height := m.Rect.Dx(), m.Rect.Dy()
	dest := make([]byte, (width*height+1)/2)

	idx := 0
	it := newBlockIterator(width, height, 8, 8)
	for x, y, ok := it.next(); ok; x, y, ok = it.next() {
		p := nibble(luma(pixelAt(m, x, y)))
		dest[idx/2] |= p & 0x0f << uint(^it.col&0x1*4)
		idx++
	}

	return dest
}

func decodePixelsIntensity4(data []byte, width, height int) (*image.NRGBA, error) {
	if len(data) < (width*height+1)/2 {
		return nil, io.ErrUnexpectedEOF
	}
	m := image.NewNRGBA(image.Rect(0, 0, width, height))

	idx := 0
	it := newBlockIterator(width, height, 8, 8)
	for x, y, ok := it.next(); ok; x, y, ok = it.next() {
		i := expand4(uint16(data[idx/2]) >> uint(^it.col&0x1*4) & 0x0f)
		m.SetNRGBA(x, y, color.NRGBA{R: i, G: i, B: i, A: 0xff})
		idx++
	}

	return m, nil
}
