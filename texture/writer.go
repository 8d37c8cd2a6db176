package texture

import (
	"image"
	"io"
)

// Encoder encodes bitmaps into GVR textures. Construct one with
// NewGcixEncoder/NewGbixEncoder for the direct color formats or
// NewGcixPalettizedEncoder/NewGbixPalettizedEncoder for the indexed
// formats; an Encoder holds no state between Encode calls and may be
// reused.
type Encoder struct {
	textureType textureType
	pixelFormat PixelFormat
	dataFormat  DataFormat
	flags       dataFlags
	globalIndex uint32
}

func newEncoder(t textureType, f DataFormat) (*Encoder, error) {
	if f.palettized() {
		return nil, ErrFormat
	}
	return &Encoder{
		textureType: t,
		dataFormat:  f,
	}, nil
}

func newPalettizedEncoder(t textureType, pf PixelFormat, f DataFormat) (*Encoder, error) {
	if !f.palettized() {
		return nil, ErrFormat
	}
	return &Encoder{
		textureType: t,
		pixelFormat: pf,
		dataFormat:  f,
		flags:       flagInternalPalette,
	}, nil
}

// NewGcixEncoder returns an Encoder for a non-palettized data format,
// tagging files with the "GCIX" magic. Passing Index4 or Index8 returns
// ErrFormat.
func NewGcixEncoder(f DataFormat) (*Encoder, error) {
	return newEncoder(typeGcix, f)
}

// NewGbixEncoder is NewGcixEncoder with the "GBIX" magic.
func NewGbixEncoder(f DataFormat) (*Encoder, error) {
	return newEncoder(typeGbix, f)
}

// NewGcixPalettizedEncoder returns an Encoder for the Index4 or Index8
// data format, quantizing each image to an internal palette stored with
// the given palette pixel format. Any other data format returns
// ErrFormat.
func NewGcixPalettizedEncoder(pf PixelFormat, f DataFormat) (*Encoder, error) {
	return newPalettizedEncoder(typeGcix, pf, f)
}

// NewGbixPalettizedEncoder is NewGcixPalettizedEncoder with the "GBIX"
// magic.
func NewGbixPalettizedEncoder(pf PixelFormat, f DataFormat) (*Encoder, error) {
	return newPalettizedEncoder(typeGbix, pf, f)
}

// EnableMipmaps makes Encode append a mipmap chain after the base level.
// Only Dxt1, Rgb565 and Rgb5a3 support mipmaps; anything else returns
// ErrMipmap.
func (e *Encoder) EnableMipmaps() error {
	if !e.dataFormat.mipmappable() {
		return ErrMipmap
	}
	e.flags |= flagMipmaps
	return nil
}

// SetGlobalIndex sets the 32-bit global index written to the file header.
// It defaults to zero, which is what most games expect.
func (e *Encoder) SetGlobalIndex(index uint32) {
	e.globalIndex = index
}

// validateDimensions rejects images that can't be cut into whole blocks.
func validateDimensions(f DataFormat, width, height int) error {
	bw, bh := f.blockSize()
	biggest := bw
	if bh > biggest {
		biggest = bh
	}

	if width < bw || height < bh {
		return &SmallDimensionsError{
			Width:       width,
			Height:      height,
			BlockWidth:  bw,
			BlockHeight: bh,
		}
	}

	if width%biggest != 0 || height%biggest != 0 {
		return &InvalidDimensionsError{
			Width:    width,
			Height:   height,
			Multiple: biggest,
		}
	}

	return nil
}

// Encode writes the image m to w as a GVR texture.
func (e *Encoder) Encode(w io.Writer, m image.Image) error {
	img := rgbaImage(m)
	width, height := img.Rect.Dx(), img.Rect.Dy()

	if err := validateDimensions(e.dataFormat, width, height); err != nil {
		return err
	}

	var encoded []byte
	if e.flags&flagInternalPalette != 0 {
		var err error
		if encoded, err = encodePalettized(img, e.dataFormat, e.pixelFormat); err != nil {
			return err
		}
	} else {
		encoded = encodePixels(img, e.dataFormat)
		if e.flags&flagMipmaps != 0 {
			encoded = append(encoded, encodeMipmaps(img, e.dataFormat)...)
		}
	}

	h := header{
		textureType: e.textureType,
		globalIndex: e.globalIndex,
		pixelFormat: e.pixelFormat,
		dataFormat:  e.dataFormat,
		flags:       e.flags,
		width:       width,
		height:      height,
		dataLen:     len(encoded),
	}

	if _, err := w.Write(h.bytes()); err != nil {
		return err
	}
	if _, err := w.Write(encoded); err != nil {
		return err
	}

	return nil
}
