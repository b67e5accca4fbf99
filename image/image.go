/*
Package image implements a Mini-PNG image decoder and encoder.

A Mini-PNG file starts with the eight byte magic "Mini-PNG" followed by a
sequence of blocks. Each block is a one byte tag, a four byte big-endian
payload length and the payload itself:

	H  header; width and height as big-endian uint32 then a pixel type code
	P  palette; consecutive RGB triples
	C  comment; UTF-8 text, one comment per block
	D  data; raw pixel bytes, concatenated across every D block

There must be exactly one header, a palette if and only if the pixel type is
Palette, and enough data to hold width * height pixels rounded up to a whole
byte. There is no compression.
*/
package image

import (
	"image/color"
)

// Magic is the literal prefix of every Mini-PNG file.
const Magic = "Mini-PNG"

const (
	magicLen      = len(Magic)
	lengthLen     = 4
	headerLen     = 9
	bytesPerColor = 3
)

const (
	tagHeader  = 'H'
	tagPalette = 'P'
	tagComment = 'C'
	tagData    = 'D'
)

// Header holds the dimensions and pixel encoding of an image.
type Header struct {
	Width     uint32
	Height    uint32
	PixelType PixelType
}

// Image is an assembled Mini-PNG image. Palette is nil unless the pixel type
// is Palette. Data holds the raw packed pixel values.
type Image struct {
	Header
	Palette  color.Palette
	Data     []byte
	Comments []string
}

// New validates the given parts against the Mini-PNG invariants and returns
// the resulting image.
func New(h Header, p color.Palette, data []byte, comments ...string) (*Image, error) {
	return assemble(&h, p, data, comments)
}

func assemble(h *Header, p color.Palette, data []byte, comments []string) (*Image, error) {
	if h == nil {
		return nil, ErrMissingHeader
	}

	if _, err := ParsePixelType(h.PixelType.Code()); err != nil {
		return nil, err
	}

	if len(data) == 0 {
		return nil, ErrMissingData
	}

	switch {
	case h.PixelType == Palette && p == nil:
		return nil, ErrMissingPalette
	case h.PixelType != Palette && p != nil:
		return nil, ErrUnexpectedPalette
	}

	expected := expectedBits(h)
	if found := uint64(len(data)) * 8; found != expected {
		return nil, &DataSizeError{
			Expected: expected,
			Found:    found,
			Width:    h.Width,
			Height:   h.Height,
		}
	}

	return &Image{
		Header:   *h,
		Palette:  opaquePalette(p),
		Data:     data,
		Comments: comments,
	}, nil
}

// Only the RGB channels of a color are stored, so drop any alpha without
// scaling the channels by it.
func opaque(c color.Color) color.RGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return color.RGBA{n.R, n.G, n.B, 0xff}
}

func opaquePalette(p color.Palette) color.Palette {
	if p == nil {
		return nil
	}
	q := make(color.Palette, len(p))
	for i, c := range p {
		q[i] = opaque(c)
	}
	return q
}

// Pixels returns the number of pixels in the image.
func (h Header) Pixels() uint64 {
	return uint64(h.Width) * uint64(h.Height)
}

// DataSize returns the number of data bytes an image with this header needs.
func (h Header) DataSize() uint64 {
	return expectedBits(&h) >> 3
}
