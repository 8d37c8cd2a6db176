package gvr

import (
	"bytes"
	"image"
	"image/color"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/bodgit/gvr/manifest"
	"github.com/bodgit/gvr/texture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTexture(t *testing.T, path string, index uint32) {
	t.Helper()

	e, err := texture.NewGcixEncoder(texture.Rgb565)
	require.NoError(t, err)
	e.SetGlobalIndex(index)

	m := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			m.SetNRGBA(x, y, color.NRGBA{R: uint8(index), G: uint8(x * 32), A: 0xff})
		}
	}

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, e.Encode(f, m))
}

func TestCrcFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "gvr")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	file := filepath.Join(dir, "check.bin")
	require.NoError(t, ioutil.WriteFile(file, []byte("123456789"), 0644))

	crc, err := crcFile(file)
	require.NoError(t, err)
	assert.Equal(t, uint32(0xcbf43926), crc)
}

func TestManifestFlags(t *testing.T) {
	assert.Equal(t, byte(0x0), manifestFlags(texture.Config{}))
	assert.Equal(t, byte(0x1), manifestFlags(texture.Config{Mipmaps: true}))
	assert.Equal(t, byte(0x2), manifestFlags(texture.Config{Palettized: true}))
	assert.Equal(t, byte(0x3), manifestFlags(texture.Config{Mipmaps: true, Palettized: true}))
}

func TestTextureDB(t *testing.T) {
	dir, err := ioutil.TempDir("", "gvr")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	db, err := NewTextureDB(filepath.Join(dir, "gvr.db"))
	require.NoError(t, err)
	defer db.Close()

	config := texture.Config{
		Width:       64,
		Height:      32,
		DataFormat:  texture.Dxt1,
		GlobalIndex: 42,
		Mipmaps:     true,
	}

	id, err := db.Add(0xdeadbeef, "/tmp/a.gvr", config)
	require.NoError(t, err)

	// Same CRC is only recorded once.
	again, err := db.Add(0xdeadbeef, "/tmp/b.gvr", config)
	require.NoError(t, err)
	assert.Equal(t, id, again)

	found, err := db.FindByCRC(0xdeadbeef)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "/tmp/a.gvr", found.Path)
	assert.Equal(t, 64, found.Width)
	assert.Equal(t, 32, found.Height)
	assert.Equal(t, texture.Dxt1, found.Format)
	assert.Equal(t, uint32(42), found.GlobalIndex)
	assert.True(t, found.Mipmaps)

	missing, err := db.FindByCRC(0x12345678)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestScan(t *testing.T) {
	dir, err := ioutil.TempDir("", "gvr")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	sub := filepath.Join(dir, "textures")
	require.NoError(t, os.Mkdir(sub, 0755))

	writeTexture(t, filepath.Join(sub, "a.gvr"), 1)
	writeTexture(t, filepath.Join(sub, "b.gvr"), 2)

	// Not a texture at all; it should be skipped, not fail the scan.
	require.NoError(t, ioutil.WriteFile(filepath.Join(sub, "c.gvr"), []byte("junk junk junk junk junk junk junk"), 0644))

	// Wrong extension, ignored entirely.
	require.NoError(t, ioutil.WriteFile(filepath.Join(sub, "d.bin"), []byte("junk"), 0644))

	var buf bytes.Buffer
	g, err := New(filepath.Join(dir, "gvr.db"), log.New(&buf, "", 0))
	require.NoError(t, err)
	defer g.Close()

	require.NoError(t, g.Scan(dir))

	// The skipped file is logged.
	assert.Contains(t, buf.String(), "c.gvr")

	b, err := ioutil.ReadFile(filepath.Join(sub, manifest.Filename))
	require.NoError(t, err)

	db := manifest.New()
	require.NoError(t, db.UnmarshalBinary(b))
	assert.Equal(t, 2, db.Length())

	crc, err := crcFile(filepath.Join(sub, "a.gvr"))
	require.NoError(t, err)

	e, ok := db.Get(crc)
	require.True(t, ok)
	assert.Equal(t, uint32(1), e.GlobalIndex)
	assert.Equal(t, uint16(8), e.Width)

	found, err := g.db.FindByCRC(crc)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, uint32(1), found.GlobalIndex)
}
