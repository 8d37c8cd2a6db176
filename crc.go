package gvr

import (
	"hash/crc32"
	"io"
	"os"
)

// crcFile returns the CRC-32 of the named file's contents, used as the
// catalog key for a texture.
func crcFile(file string) (uint32, error) {
	f, err := os.Open(file)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	h := crc32.NewIEEE()
	if _, err = io.Copy(h, f); err != nil {
		return 0, err
	}

	return h.Sum32(), nil
}
