/*
Package gvr is a library for converting and cataloguing the GVR textures
used by GameCube and Wii games.

The texture codec itself lives in the texture package; this package adds
the tooling around it to scan a directory tree of textures, index them by
checksum and record what each one contains.
*/
package gvr

import "log"

type GVR struct {
	db     *TextureDB
	logger *log.Logger
}

func New(db string, logger *log.Logger) (*GVR, error) {
	tdb, err := NewTextureDB(db)
	if err != nil {
		return nil, err
	}
	return &GVR{
		db:     tdb,
		logger: logger,
	}, nil
}

func (g *GVR) Close() error {
	return g.db.Close()
}
