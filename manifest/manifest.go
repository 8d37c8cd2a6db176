/*
Package manifest implements the small texture index written to each
directory that contains GVR textures.

The file holds one fixed-width record per texture, keyed by the CRC-32 of
the texture file and sorted by key, so the whole index can be searched
with a handful of reads on very modest hardware.
*/
package manifest

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"sort"
)

const (
	// Filename is the expected filename used when writing to disk
	Filename   = "textures.idx"
	maxEntries = 1024

	entrySize = 16
)

// Entry describes one texture in the index.
type Entry struct {
	GlobalIndex uint32
	Width       uint16
	Height      uint16
	Format      byte
	Flags       byte
}

// DB is the texture index object. It implements the
// encoding.BinaryMarshaler and encoding.BinaryUnmarshaler interfaces.
type DB struct {
	entries map[uint32]Entry
}

// New returns an empty texture index
func New() *DB {
	return &DB{
		entries: make(map[uint32]Entry),
	}
}

// Length returns the number of textures in the index
func (db *DB) Length() int {
	return len(db.entries)
}

// Set stores the provided entry for the given CRC
func (db *DB) Set(crc uint32, entry Entry) {
	db.entries[crc] = entry
}

// Get returns the entry for the given CRC, if present
func (db *DB) Get(crc uint32) (Entry, bool) {
	entry, ok := db.entries[crc]
	return entry, ok
}

// MarshalBinary encodes the index into binary form and returns the result
func (db *DB) MarshalBinary() ([]byte, error) {
	length := len(db.entries)

	if length > maxEntries {
		return nil, fmt.Errorf("more than %d entries", maxEntries)
	}

	keys := make([]uint32, 0, len(db.entries))
	for k := range db.entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	b := new(bytes.Buffer)

	if err := binary.Write(b, binary.LittleEndian, uint32(length)); err != nil {
		return nil, err
	}

	for _, k := range keys {
		e := db.entries[k]
		record := []interface{}{
			k,
			e.GlobalIndex,
			e.Width,
			e.Height,
			e.Format,
			e.Flags,
			uint16(0),
		}
		for _, v := range record {
			if err := binary.Write(b, binary.LittleEndian, v); err != nil {
				return nil, err
			}
		}
	}

	return b.Bytes(), nil
}

// UnmarshalBinary decodes the index from binary form
func (db *DB) UnmarshalBinary(b []byte) error {
	r := bytes.NewReader(b)

	db.entries = make(map[uint32]Entry)

	var length uint32
	if err := binary.Read(r, binary.LittleEndian, &length); err != nil {
		return err
	}
	if length > maxEntries {
		return fmt.Errorf("more than %d entries", maxEntries)
	}
	if r.Len() < int(length)*entrySize {
		return errors.New("insufficient data")
	}

	for i := 0; i < int(length); i++ {
		var crc uint32
		var e Entry
		var pad uint16
		for _, v := range []interface{}{&crc, &e.GlobalIndex, &e.Width, &e.Height, &e.Format, &e.Flags, &pad} {
			if err := binary.Read(r, binary.LittleEndian, v); err != nil {
				return err
			}
		}
		db.entries[crc] = e
	}

	return nil
}
