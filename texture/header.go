package texture

import "encoding/binary"

// header is the in-memory form of the two fixed chunks that prefix the
// pixel payload. It exists only for the duration of one encode or decode.
type header struct {
	textureType textureType
	globalIndex uint32
	pixelFormat PixelFormat
	dataFormat  DataFormat
	flags       dataFlags
	width       int
	height      int
	dataLen     int
}

// bytes lays the header out on disk:
//
//	0x00  magic "GCIX" or "GBIX"
//	0x04  chunk size, always 8 (little-endian)
//	0x08  global index (big-endian)
//	0x0c  padding
//	0x10  magic "GVRT"
//	0x14  payload length + 8 (little-endian)
//	0x18  padding
//	0x1a  palette pixel format (upper nibble) and flags (lower nibble)
//	0x1b  data format code
//	0x1c  width (big-endian)
//	0x1e  height (big-endian)
func (h *header) bytes() []byte {
	b := make([]byte, headerSize)

	if h.textureType == typeGbix {
		copy(b, gbixMagic)
	} else {
		copy(b, gcixMagic)
	}
	binary.LittleEndian.PutUint32(b[0x04:], 8)
	binary.BigEndian.PutUint32(b[0x08:], h.globalIndex)

	copy(b[0x10:], gvrtMagic)
	binary.LittleEndian.PutUint32(b[0x14:], uint32(h.dataLen+8))

	b[0x1a] = byte(h.pixelFormat)<<4 | byte(h.flags)
	b[0x1b] = byte(h.dataFormat)
	binary.BigEndian.PutUint16(b[0x1c:], uint16(h.width))
	binary.BigEndian.PutUint16(b[0x1e:], uint16(h.height))

	return b
}

// parseHeader validates the magic strings and structural consistency of
// an entire file and returns its header.
func parseHeader(data []byte) (*header, error) {
	if len(data) < headerSize {
		return nil, ErrInvalidFile
	}

	h := new(header)
	switch string(data[0x00:0x04]) {
	case gcixMagic:
		h.textureType = typeGcix
	case gbixMagic:
		h.textureType = typeGbix
	default:
		return nil, ErrInvalidFile
	}
	if string(data[0x10:0x14]) != gvrtMagic {
		return nil, ErrInvalidFile
	}

	h.globalIndex = binary.BigEndian.Uint32(data[0x08:])

	chunkLen := binary.LittleEndian.Uint32(data[0x14:])
	if chunkLen < 8 {
		return nil, ErrInvalidFile
	}
	h.dataLen = int(chunkLen - 8)

	flags := data[0x1a]
	h.flags = dataFlags(flags & 0x0f)
	if h.flags&^flagsKnown != 0 {
		return nil, ErrInvalidFile
	}
	h.pixelFormat = PixelFormat(flags >> 4)
	if !h.pixelFormat.valid() {
		return nil, ErrInvalidFile
	}

	h.dataFormat = DataFormat(data[0x1b])
	if !h.dataFormat.valid() {
		return nil, ErrInvalidFile
	}

	if h.flags&flagExternalPalette != 0 {
		return nil, ErrExternalPalette
	}

	// An internal palette and an indexed data format only make sense
	// together.
	if (h.flags&flagInternalPalette != 0) != h.dataFormat.palettized() {
		return nil, ErrInvalidFile
	}

	h.width = int(binary.BigEndian.Uint16(data[0x1c:]))
	h.height = int(binary.BigEndian.Uint16(data[0x1e:]))

	if len(data)-headerSize != h.dataLen {
		return nil, ErrInvalidFile
	}

	return h, nil
}
