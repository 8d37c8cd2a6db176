package texture

import (
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
)

// Config holds the header fields of a GVR texture without any pixel data.
type Config struct {
	Width       int
	Height      int
	DataFormat  DataFormat
	PixelFormat PixelFormat
	GlobalIndex uint32
	Mipmaps     bool
	Palettized  bool
}

// Decoder decodes a single GVR texture. It starts out holding only the
// raw file contents; Decode parses them exactly once, after which the
// bitmap can be retrieved or saved any number of times. A failed decode
// leaves no image accessible.
type Decoder struct {
	data  []byte
	image *image.NRGBA
}

// NewDecoder returns a Decoder holding the contents of r. Nothing is
// parsed until Decode is called.
func NewDecoder(r io.Reader) (*Decoder, error) {
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return &Decoder{data: data}, nil
}

// NewDecoderFile is NewDecoder reading from the named file.
func NewDecoderFile(path string) (*Decoder, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return NewDecoder(f)
}

// Decode parses and decodes the texture. Any failure reports
// ErrInvalidFile, ErrExternalPalette or an I/O error, and leaves the
// decoder without a decoded image.
func (d *Decoder) Decode() error {
	d.image = nil

	h, err := parseHeader(d.data)
	if err != nil {
		return err
	}
	payload := d.data[headerSize:]

	var m *image.NRGBA
	if h.flags&flagInternalPalette != 0 {
		m, err = decodePalettized(payload, h.width, h.height, h.dataFormat, h.pixelFormat)
	} else {
		// Any mipmap levels after the base payload are left
		// unconsumed; only the base level is reconstructed.
		m, err = decodePixels(payload, h.width, h.height, h.dataFormat)
	}
	if err != nil {
		return err
	}

	d.image = m
	return nil
}

// Image returns the decoded bitmap, or ErrUndecoded if Decode hasn't run
// successfully.
func (d *Decoder) Image() (image.Image, error) {
	if d.image == nil {
		return nil, ErrUndecoded
	}
	return d.image, nil
}

// Save writes the decoded bitmap to the named file, picking the image
// format from the file extension (.png, .jpg, .jpeg or .gif). It can be
// called repeatedly.
func (d *Decoder) Save(path string) error {
	if d.image == nil {
		return ErrUndecoded
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		err = png.Encode(f, d.image)
	case ".jpg", ".jpeg":
		err = jpeg.Encode(f, d.image, nil)
	case ".gif":
		err = gif.Encode(f, d.image, nil)
	default:
		err = ErrFormat
	}
	if err != nil {
		return err
	}

	return f.Close()
}

// Decode reads a GVR texture from r and returns it as an image.Image.
func Decode(r io.Reader) (image.Image, error) {
	d, err := NewDecoder(r)
	if err != nil {
		return nil, err
	}
	if err := d.Decode(); err != nil {
		return nil, err
	}
	return d.Image()
}

// DecodeConfig returns the dimensions and formats of a GVR texture
// without decoding any pixel data.
func DecodeConfig(r io.Reader) (Config, error) {
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return Config{}, err
	}
	h, err := parseHeader(data)
	if err != nil {
		return Config{}, err
	}
	return Config{
		Width:       h.width,
		Height:      h.height,
		DataFormat:  h.dataFormat,
		PixelFormat: h.pixelFormat,
		GlobalIndex: h.globalIndex,
		Mipmaps:     h.flags&flagMipmaps != 0,
		Palettized:  h.flags&flagInternalPalette != 0,
	}, nil
}
