package texture

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidFile is returned when decoding anything that is not a
	// well formed GVR texture: missing magic strings, unknown formats or
	// flags, or a payload length that doesn't match the header.
	ErrInvalidFile = errors.New("texture: invalid GVR file")

	// ErrUndecoded is returned when accessing the decoded image before
	// Decode has run, or after it has failed.
	ErrUndecoded = errors.New("texture: texture has not been decoded")

	// ErrExternalPalette is returned when decoding a texture flagged as
	// using an external palette, which this package does not support.
	ErrExternalPalette = errors.New("texture: external palettes are not supported")

	// ErrFormat is returned when a palettized data format is passed to a
	// non-palettized encoder constructor, or vice versa.
	ErrFormat = errors.New("texture: incorrect or incompatible data format")

	// ErrMipmap is returned when enabling mipmaps on a data format that
	// doesn't support them.
	ErrMipmap = errors.New("texture: data format does not support mipmaps")
)

// SmallDimensionsError is returned when encoding an image smaller than one
// block of the chosen data format.
type SmallDimensionsError struct {
	Width, Height           int
	BlockWidth, BlockHeight int
}

func (e *SmallDimensionsError) Error() string {
	return fmt.Sprintf("texture: image dimensions %dx%d are too small, need at least %dx%d",
		e.Width, e.Height, e.BlockWidth, e.BlockHeight)
}

// InvalidDimensionsError is returned when encoding an image whose
// dimensions are not a multiple of the chosen data format's block size.
type InvalidDimensionsError struct {
	Width, Height int
	Multiple      int
}

func (e *InvalidDimensionsError) Error() string {
	return fmt.Sprintf("texture: image dimensions %dx%d are not a multiple of %d",
		e.Width, e.Height, e.Multiple)
}
