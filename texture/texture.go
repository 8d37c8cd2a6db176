/*
Package texture implements a GVR texture decoder and encoder.

GVR is the texture container used by GameCube and Wii games built on the
PVR/GBIX family of formats. A file starts with a "GCIX" or "GBIX" chunk
holding a 32-bit global index, followed by a "GVRT" chunk holding the pixel
data. The pixel data itself is laid out the way the GPU expects it: the
image is split into blocks (4x4, 8x4 or 8x8 depending on the data format)
which are stored row-major, with each block written out row-major
internally.

Nine data formats are supported, covering 16-bit direct color, intensity
and intensity+alpha variants, two palettized formats with an internal
color table, and the DXT1 block-compressed format.
*/
package texture

// DataFormat selects how pixel data is encoded in the GVRT chunk.
type DataFormat byte

// The set of data formats a GVR texture can hold. The values are the
// on-disk format codes.
const (
	// Intensity4 stores a 4-bit luma value per pixel, two pixels per
	// byte. No alpha channel.
	Intensity4 DataFormat = 0x00
	// Intensity8 stores an 8-bit luma value per pixel. No alpha channel.
	Intensity8 DataFormat = 0x01
	// IntensityA4 stores a 4-bit luma and a 4-bit alpha value per pixel.
	IntensityA4 DataFormat = 0x02
	// IntensityA8 stores an 8-bit luma and an 8-bit alpha value per pixel.
	IntensityA8 DataFormat = 0x03
	// Rgb565 stores 16-bit direct color with no alpha channel.
	Rgb565 DataFormat = 0x04
	// Rgb5a3 stores 16-bit direct color, switching per pixel between a
	// 15-bit opaque layout and a 12-bit color + 3-bit alpha layout.
	Rgb5a3 DataFormat = 0x05
	// Argb8888 stores 32-bit true color split into two 32-byte planes
	// per 4x4 block.
	Argb8888 DataFormat = 0x06
	// Index4 stores 4-bit indices into a 16 entry internal palette.
	Index4 DataFormat = 0x08
	// Index8 stores 8-bit indices into a 256 entry internal palette.
	Index8 DataFormat = 0x09
	// Dxt1 stores 4x4 blocks compressed with the DXT1/BC1 scheme,
	// grouped into 8x8 tiles.
	Dxt1 DataFormat = 0x0e
)

func (f DataFormat) String() string {
	switch f {
	case Intensity4:
		return "Intensity4"
	case Intensity8:
		return "Intensity8"
	case IntensityA4:
		return "IntensityA4"
	case IntensityA8:
		return "IntensityA8"
	case Rgb565:
		return "Rgb565"
	case Rgb5a3:
		return "Rgb5a3"
	case Argb8888:
		return "Argb8888"
	case Index4:
		return "Index4"
	case Index8:
		return "Index8"
	case Dxt1:
		return "Dxt1"
	}
	return "Unknown"
}

// valid returns whether f is one of the nine known format codes.
func (f DataFormat) valid() bool {
	switch f {
	case Intensity4, Intensity8, IntensityA4, IntensityA8, Rgb565, Rgb5a3,
		Argb8888, Index4, Index8, Dxt1:
		return true
	}
	return false
}

// palettized returns whether f needs an internal color palette.
func (f DataFormat) palettized() bool {
	return f == Index4 || f == Index8
}

// mipmappable returns whether f supports an appended mipmap chain.
func (f DataFormat) mipmappable() bool {
	return f == Dxt1 || f == Rgb565 || f == Rgb5a3
}

// blockSize returns the block dimensions the hardware uses for f. Dxt1 is
// nominally 4x4; its payload additionally groups the 4x4 blocks into 8x8
// tiles, see the iterators.
func (f DataFormat) blockSize() (int, int) {
	switch f {
	case Intensity4, Index4:
		return 8, 8
	case Intensity8, IntensityA4, Index8:
		return 8, 4
	default:
		return 4, 4
	}
}

// PixelFormat selects the encoding of internal palette entries for the
// Index4 and Index8 data formats. It is independent of the data format
// itself.
type PixelFormat byte

// The set of palette entry encodings. The values are the on-disk codes
// stored in the upper nibble of the header flags byte.
const (
	PixelIntensityA8 PixelFormat = iota
	PixelRgb565
	PixelRgb5a3
)

func (f PixelFormat) String() string {
	switch f {
	case PixelIntensityA8:
		return "IntensityA8"
	case PixelRgb565:
		return "Rgb565"
	case PixelRgb5a3:
		return "Rgb5a3"
	}
	return "Unknown"
}

func (f PixelFormat) valid() bool {
	return f <= PixelRgb5a3
}

// textureType selects which magic string tags the outer chunk. Both
// variants are otherwise identical.
type textureType byte

const (
	typeGcix textureType = iota
	typeGbix
)

// dataFlags is the lower nibble of the header flags byte.
type dataFlags byte

const (
	flagMipmaps         dataFlags = 0x1
	flagExternalPalette dataFlags = 0x2
	flagInternalPalette dataFlags = 0x8

	flagsKnown = flagMipmaps | flagExternalPalette | flagInternalPalette
)

const (
	gcixMagic = "GCIX"
	gbixMagic = "GBIX"
	gvrtMagic = "GVRT"

	headerSize = 0x20

	// DXT1 payloads are never shorter than one full 8x8 tile.
	minDxtSize = 32
)

const (
	colorsIndex4 = 16
	colorsIndex8 = 256
)
