package gvr

import (
	"database/sql"
	"fmt"

	"github.com/bodgit/gvr/texture"
	_ "github.com/mattn/go-sqlite3"
)

// TextureDB is the catalog of every texture seen by a scan, keyed by the
// CRC-32 of the file contents.
type TextureDB struct {
	db *sql.DB
}

func NewTextureDB(file string) (*TextureDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS texture (id INTEGER PRIMARY KEY NOT NULL, crc TEXT NOT NULL UNIQUE, path TEXT NOT NULL, width INTEGER NOT NULL, height INTEGER NOT NULL, format INTEGER NOT NULL, global_index INTEGER NOT NULL, mipmaps INTEGER NOT NULL)"); err != nil {
		return nil, err
	}

	return &TextureDB{
		db: db,
	}, nil
}

func (db *TextureDB) Close() error {
	return db.db.Close()
}

// Texture is one catalogued texture.
type Texture struct {
	Path        string
	Width       int
	Height      int
	Format      texture.DataFormat
	GlobalIndex uint32
	Mipmaps     bool
}

func crcKey(crc uint32) string {
	return fmt.Sprintf("%08X", crc)
}

// Add records a texture, returning the row ID. A texture with the same
// CRC is only recorded once.
func (db *TextureDB) Add(crc uint32, path string, c texture.Config) (int64, error) {
	var id int64
	switch err := db.db.QueryRow("SELECT id FROM texture WHERE crc = ?", crcKey(crc)).Scan(&id); err {
	case sql.ErrNoRows:
		result, err := db.db.Exec("INSERT INTO texture (crc, path, width, height, format, global_index, mipmaps) VALUES (?, ?, ?, ?, ?, ?, ?)",
			crcKey(crc), path, c.Width, c.Height, int(c.DataFormat), int64(c.GlobalIndex), c.Mipmaps)
		if err != nil {
			return 0, err
		}
		return result.LastInsertId()
	case nil:
		return id, nil
	default:
		return 0, err
	}
}

// FindByCRC looks up a catalogued texture, returning nil when the CRC has
// never been seen.
func (db *TextureDB) FindByCRC(crc uint32) (*Texture, error) {
	var t Texture
	var format int
	var index int64
	switch err := db.db.QueryRow("SELECT path, width, height, format, global_index, mipmaps FROM texture WHERE crc = ?", crcKey(crc)).Scan(&t.Path, &t.Width, &t.Height, &format, &index, &t.Mipmaps); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		t.Format = texture.DataFormat(format)
		t.GlobalIndex = uint32(index)
		return &t, nil
	default:
		return nil, err
	}
}
