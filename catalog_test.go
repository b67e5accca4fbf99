package minipng

import (
	"image/color"
	"path/filepath"
	"testing"

	"github.com/bodgit/minipng/image"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalog(t *testing.T) *Catalog {
	c, err := NewCatalog(filepath.Join(t.TempDir(), "minipng.db"))
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestCatalog(t *testing.T) {
	c := newCatalog(t)

	bw, err := image.FromText("X X\n X \nX X")
	require.NoError(t, err)
	bw.Comments = []string{"cross", "3x3"}

	p, err := image.New(image.Header{Width: 2, Height: 1, PixelType: image.Palette}, color.Palette{color.RGBA{1, 2, 3, 0xff}}, []byte{0, 0})
	require.NoError(t, err)

	id1, added, err := c.Add("b/cross.mpng", bw)
	require.NoError(t, err)
	assert.True(t, added)

	id2, added, err := c.Add("a/palette.mpng", p)
	require.NoError(t, err)
	assert.True(t, added)
	assert.NotEqual(t, id1, id2)

	// Same content under another name
	id, added, err := c.Add("c/copy.mpng", bw)
	require.NoError(t, err)
	assert.False(t, added)
	assert.Equal(t, id1, id)

	entries, err := c.List()
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, id2, entries[0].ID)
	assert.Equal(t, "a/palette.mpng", entries[0].Path)
	assert.Equal(t, image.Header{Width: 2, Height: 1, PixelType: image.Palette}, entries[0].Header)
	assert.Equal(t, 1, entries[0].Colors)
	assert.Empty(t, entries[0].Comments)
	assert.Len(t, entries[0].Digest, 16)

	assert.Equal(t, "b/cross.mpng", entries[1].Path)
	assert.Equal(t, 0, entries[1].Colors)
	assert.Equal(t, []string{"cross", "3x3"}, entries[1].Comments)

	m, err := c.Get(id1)
	require.NoError(t, err)
	assert.Equal(t, bw, m)

	_, err = c.Get(id1 + id2)
	assert.Equal(t, ErrNotFound, err)
}

func TestCatalogReopen(t *testing.T) {
	file := filepath.Join(t.TempDir(), "minipng.db")

	c, err := NewCatalog(file)
	require.NoError(t, err)

	m, err := image.FromText("XX")
	require.NoError(t, err)
	id, _, err := c.Add("xx.mpng", m)
	require.NoError(t, err)
	require.NoError(t, c.Close())

	c, err = NewCatalog(file)
	require.NoError(t, err)
	defer c.Close()

	n, err := c.Get(id)
	require.NoError(t, err)
	assert.Equal(t, m.Data, n.Data)
}
