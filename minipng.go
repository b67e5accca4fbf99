/*
Package minipng is a library for cataloguing Mini-PNG images.

The image format itself is implemented by the image subpackage.
*/
package minipng

import (
	"log"

	"github.com/bodgit/minipng/image"
)

// MiniPNG maintains a catalog of Mini-PNG images.
type MiniPNG struct {
	catalog *Catalog
	logger  *log.Logger
}

// New returns a MiniPNG storing images in catalog and logging progress to
// logger.
func New(catalog *Catalog, logger *log.Logger) *MiniPNG {
	return &MiniPNG{
		catalog: catalog,
		logger:  logger,
	}
}

// List returns every image in the catalog.
func (m *MiniPNG) List() ([]Entry, error) {
	return m.catalog.List()
}

// Extract writes the catalog image with the given ID to file.
func (m *MiniPNG) Extract(id int64, file string) error {
	img, err := m.catalog.Get(id)
	if err != nil {
		return err
	}
	if err := WriteFile(file, image.Encode(img)); err != nil {
		return err
	}
	m.logger.Printf("Extracted %d to \"%s\"\n", id, file)
	return nil
}
