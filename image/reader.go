package image

import (
	"encoding/binary"
	"image/color"
	"io"
	"unicode/utf8"
)

type decoder struct {
	b   []byte
	pos int

	header   *Header
	palette  color.Palette
	data     []byte
	comments []string
}

func (d *decoder) remaining() int {
	return len(d.b) - d.pos
}

// next returns the tag and payload of the block under the cursor and moves
// the cursor past it. The payload aliases the input buffer.
func (d *decoder) next() (byte, []byte, error) {
	tag := d.b[d.pos]
	d.pos++

	if d.remaining() < lengthLen {
		return 0, nil, ErrInvalidBlockLength
	}
	n := binary.BigEndian.Uint32(d.b[d.pos:])
	d.pos += lengthLen

	if uint64(n) > uint64(d.remaining()) {
		return 0, nil, ErrBlockLengthMismatch
	}
	payload := d.b[d.pos : d.pos+int(n)]
	d.pos += int(n)

	return tag, payload, nil
}

func (d *decoder) readHeader(b []byte) error {
	if d.header != nil {
		return ErrDuplicateHeader
	}
	if len(b) < headerLen {
		return ErrHeaderTooSmall
	}

	pt, err := ParsePixelType(b[8])
	if err != nil {
		return err
	}

	// Anything after the pixel type is ignored
	d.header = &Header{
		Width:     binary.BigEndian.Uint32(b[0:4]),
		Height:    binary.BigEndian.Uint32(b[4:8]),
		PixelType: pt,
	}
	return nil
}

func (d *decoder) readPalette(b []byte) error {
	if d.palette != nil {
		return ErrDuplicatePalette
	}

	// A trailing partial color is dropped
	d.palette = make(color.Palette, 0, len(b)/bytesPerColor)
	for i := 0; i+bytesPerColor <= len(b); i += bytesPerColor {
		d.palette = append(d.palette, color.RGBA{b[i], b[i+1], b[i+2], 0xff})
	}
	return nil
}

func (d *decoder) readComment(b []byte) error {
	if !utf8.Valid(b) {
		return ErrInvalidUTF8Comment
	}
	d.comments = append(d.comments, string(b))
	return nil
}

func (d *decoder) decode(b []byte) error {
	if len(b) < magicLen {
		return ErrFileTooSmall
	}
	if string(b[:magicLen]) != Magic {
		return ErrInvalidMagic
	}

	d.b, d.pos = b, magicLen

	for d.remaining() > 0 {
		tag, payload, err := d.next()
		if err != nil {
			return err
		}

		switch tag {
		case tagHeader:
			err = d.readHeader(payload)
		case tagPalette:
			err = d.readPalette(payload)
		case tagComment:
			err = d.readComment(payload)
		case tagData:
			d.data = append(d.data, payload...)
		default:
			err = BlockTypeError(tag)
		}
		if err != nil {
			return err
		}
	}

	return nil
}

// Decode parses b as a complete Mini-PNG file. Either a fully validated image
// or the first error encountered is returned.
func Decode(b []byte) (*Image, error) {
	var d decoder
	if err := d.decode(b); err != nil {
		return nil, err
	}
	return assemble(d.header, d.palette, d.data, d.comments)
}

// Read reads r until EOF and decodes the result.
func Read(r io.Reader) (*Image, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Decode(b)
}
