package image

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
)

var maxBlockLen uint64 = math.MaxUint32

type encoder struct {
	w   io.Writer
	tmp [1 + lengthLen]byte
}

func (e *encoder) writeBlock(tag byte, payload []byte) error {
	e.tmp[0] = tag
	binary.BigEndian.PutUint32(e.tmp[1:], uint32(len(payload)))
	if _, err := e.w.Write(e.tmp[:]); err != nil {
		return err
	}
	_, err := e.w.Write(payload)
	return err
}

func (e *encoder) encode(m *Image) error {
	if _, err := io.WriteString(e.w, Magic); err != nil {
		return err
	}

	var h [headerLen]byte
	binary.BigEndian.PutUint32(h[0:4], m.Width)
	binary.BigEndian.PutUint32(h[4:8], m.Height)
	h[8] = m.PixelType.Code()
	if err := e.writeBlock(tagHeader, h[:]); err != nil {
		return err
	}

	if m.Palette != nil {
		p := make([]byte, 0, len(m.Palette)*bytesPerColor)
		for _, c := range m.Palette {
			rgba := opaque(c)
			p = append(p, rgba.R, rgba.G, rgba.B)
		}
		if err := e.writeBlock(tagPalette, p); err != nil {
			return err
		}
	}

	for _, c := range m.Comments {
		if err := e.writeBlock(tagComment, []byte(c)); err != nil {
			return err
		}
	}

	// One data block unless the length field can't hold it
	data := m.Data
	for {
		n := len(data)
		if uint64(n) > maxBlockLen {
			n = int(maxBlockLen)
		}
		if err := e.writeBlock(tagData, data[:n]); err != nil {
			return err
		}
		if data = data[n:]; len(data) == 0 {
			return nil
		}
	}
}

// Write writes the image m to w in Mini-PNG format.
func Write(w io.Writer, m *Image) error {
	e := encoder{w: w}
	return e.encode(m)
}

// Encode returns the Mini-PNG encoding of m.
func Encode(m *Image) []byte {
	b := new(bytes.Buffer)
	// Writes to a bytes.Buffer can't fail
	_ = Write(b, m)
	return b.Bytes()
}
