package minipng

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/bodgit/minipng/image"
	"github.com/cespare/xxhash/v2"
	_ "github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned when the catalog has no image with the given ID.
var ErrNotFound = errors.New("minipng: no such image in catalog")

// Catalog is an SQLite index of Mini-PNG images. Each distinct image is
// stored once in its canonical encoding.
type Catalog struct {
	db *sql.DB
}

// Entry describes an image stored in the catalog.
type Entry struct {
	ID       int64
	Digest   string
	Path     string
	Header   image.Header
	Colors   int
	Comments []string
}

// NewCatalog opens, creating if necessary, the catalog stored in file.
func NewCatalog(file string) (*Catalog, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS image (id INTEGER PRIMARY KEY NOT NULL, digest TEXT NOT NULL UNIQUE, path TEXT NOT NULL, width INTEGER NOT NULL, height INTEGER NOT NULL, pixel_type INTEGER NOT NULL, colors INTEGER, data BLOB NOT NULL)"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS comment (image_id INTEGER NOT NULL, seq INTEGER NOT NULL, text TEXT NOT NULL, PRIMARY KEY(image_id, seq), FOREIGN KEY(image_id) REFERENCES image(id))"); err != nil {
		db.Close()
		return nil, err
	}

	return &Catalog{
		db: db,
	}, nil
}

// Close closes the underlying database.
func (c *Catalog) Close() error {
	return c.db.Close()
}

func digest(b []byte) string {
	return fmt.Sprintf("%016X", xxhash.Sum64(b))
}

// Add stores m, found at path, in the catalog. If an identical image is
// already present its ID is returned and added is false.
func (c *Catalog) Add(path string, m *image.Image) (id int64, added bool, err error) {
	b := image.Encode(m)
	sum := digest(b)

	switch err := c.db.QueryRow("SELECT id FROM image WHERE digest = ?", sum).Scan(&id); err {
	case sql.ErrNoRows:
	case nil:
		return id, false, nil
	default:
		return 0, false, err
	}

	var colors sql.NullInt64
	if m.Palette != nil {
		colors.Int64 = int64(len(m.Palette))
		colors.Valid = true
	}

	tx, err := c.db.Begin()
	if err != nil {
		return 0, false, err
	}
	defer tx.Rollback()

	result, err := tx.Exec("INSERT INTO image (digest, path, width, height, pixel_type, colors, data) VALUES (?, ?, ?, ?, ?, ?, ?)", sum, path, m.Width, m.Height, m.PixelType.Code(), colors, b)
	if err != nil {
		return 0, false, err
	}
	if id, err = result.LastInsertId(); err != nil {
		return 0, false, err
	}

	for i, comment := range m.Comments {
		if _, err := tx.Exec("INSERT INTO comment (image_id, seq, text) VALUES (?, ?, ?)", id, i, comment); err != nil {
			return 0, false, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, false, err
	}

	return id, true, nil
}

// List returns every image in the catalog ordered by path.
func (c *Catalog) List() ([]Entry, error) {
	rows, err := c.db.Query("SELECT id, digest, path, width, height, pixel_type, colors FROM image ORDER BY path, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	index := make(map[int64]int)
	for rows.Next() {
		var e Entry
		var code byte
		var colors sql.NullInt64
		if err := rows.Scan(&e.ID, &e.Digest, &e.Path, &e.Header.Width, &e.Header.Height, &code, &colors); err != nil {
			return nil, err
		}
		if e.Header.PixelType, err = image.ParsePixelType(code); err != nil {
			return nil, err
		}
		e.Colors = int(colors.Int64)
		index[e.ID] = len(entries)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	comments, err := c.db.Query("SELECT image_id, text FROM comment ORDER BY image_id, seq")
	if err != nil {
		return nil, err
	}
	defer comments.Close()

	for comments.Next() {
		var id int64
		var text string
		if err := comments.Scan(&id, &text); err != nil {
			return nil, err
		}
		if i, ok := index[id]; ok {
			entries[i].Comments = append(entries[i].Comments, text)
		}
	}

	return entries, comments.Err()
}

// Get decodes the image stored under id.
func (c *Catalog) Get(id int64) (*image.Image, error) {
	var b []byte
	switch err := c.db.QueryRow("SELECT data FROM image WHERE id = ?", id).Scan(&b); err {
	case sql.ErrNoRows:
		return nil, ErrNotFound
	case nil:
		return image.Decode(b)
	default:
		return nil, err
	}
}
