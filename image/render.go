package image

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-sixel"
)

const swatch = "\x1b[38;2;%d;%d;%dm██\x1b[0m"

// Render returns a textual description of m: the header details, palette
// size and comments, a blank line, then one line of text per pixel row.
// Black and white pixels are drawn as ' ' and 'X', everything else as
// true-color block characters.
func Render(m *Image) (string, error) {
	var b strings.Builder

	b.WriteString("Mini-PNG Image\n")
	fmt.Fprintf(&b, "Width: %d\n", m.Width)
	fmt.Fprintf(&b, "Height: %d\n", m.Height)
	fmt.Fprintf(&b, "Pixel Type: %s\n", m.PixelType)
	fmt.Fprintf(&b, "Data size: %d bytes\n", len(m.Data))

	if m.Palette != nil {
		fmt.Fprintf(&b, "Palette: %d colors\n", len(m.Palette))
	}

	if len(m.Comments) > 0 {
		b.WriteString("Comments:\n")
		for _, c := range m.Comments {
			fmt.Fprintf(&b, "  - %s\n", c)
		}
	}

	if err := renderPixels(&b, m); err != nil {
		return "", err
	}

	return b.String(), nil
}

func renderPixels(b *strings.Builder, m *Image) error {
	if m.Width == 0 {
		return nil
	}
	width := uint64(m.Width)

	// Start a new row before every pixel at the start of one
	row := func(i uint64) {
		if i%width == 0 {
			b.WriteByte('\n')
		}
	}

	switch m.PixelType {
	case BlackAndWhite:
		// Padding bits in the last byte are never drawn
		n := m.Pixels()
		if limit := uint64(len(m.Data)) * 8; n > limit {
			n = limit
		}
		for i := uint64(0); i < n; i++ {
			row(i)
			if m.Data[i/8]>>(7-i%8)&1 == 0 {
				b.WriteByte(' ')
			} else {
				b.WriteByte('X')
			}
		}
	case GrayLevels:
		for i, v := range m.Data {
			row(uint64(i))
			fmt.Fprintf(b, swatch, v, v, v)
		}
	case RGB:
		for i := 0; i+bytesPerColor <= len(m.Data); i += bytesPerColor {
			row(uint64(i / bytesPerColor))
			fmt.Fprintf(b, swatch, m.Data[i], m.Data[i+1], m.Data[i+2])
		}
	case Palette:
		for i, v := range m.Data {
			if int(v) >= len(m.Palette) {
				return PaletteIndexError(v)
			}
			row(uint64(i))
			c := opaque(m.Palette[v])
			fmt.Fprintf(b, swatch, c.R, c.G, c.B)
		}
	default:
		return PixelTypeError(m.PixelType)
	}

	return nil
}

// RenderSixel writes m to w as a sixel graphics sequence.
func RenderSixel(w io.Writer, m *Image) error {
	img, err := ToImage(m)
	if err != nil {
		return err
	}
	return sixel.NewEncoder(w).Encode(img)
}
