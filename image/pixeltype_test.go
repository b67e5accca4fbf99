package image

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePixelType(t *testing.T) {
	tables := []struct {
		code byte
		pt   PixelType
		bits int
		desc string
	}{
		{0, BlackAndWhite, 1, "0 (1 bit black and white)"},
		{1, GrayLevels, 8, "1 (8 bits gray levels)"},
		{2, Palette, 8, "2 (8 bits palette)"},
		{3, RGB, 24, "3 (24 bits rgb images)"},
	}

	for _, table := range tables {
		pt, err := ParsePixelType(table.code)
		assert.NoError(t, err)
		assert.Equal(t, table.pt, pt)
		assert.Equal(t, table.code, pt.Code())
		assert.Equal(t, table.bits, pt.BitsPerPixel())
		assert.Equal(t, table.desc, pt.String())
	}
}

func TestParsePixelTypeInvalid(t *testing.T) {
	for _, code := range []byte{4, 5, 0x80, 0xff} {
		_, err := ParsePixelType(code)
		assert.Equal(t, PixelTypeError(code), err)
	}
}

func TestDataSize(t *testing.T) {
	tables := []struct {
		h    Header
		size uint64
	}{
		{Header{3, 3, BlackAndWhite}, 2},
		{Header{8, 1, BlackAndWhite}, 1},
		{Header{17, 3, BlackAndWhite}, 7},
		{Header{0, 10, BlackAndWhite}, 0},
		{Header{3, 3, GrayLevels}, 9},
		{Header{3, 3, Palette}, 9},
		{Header{3, 3, RGB}, 27},
	}

	for _, table := range tables {
		assert.Equal(t, table.size, table.h.DataSize())
	}
}

func TestExpectedBitsSaturates(t *testing.T) {
	h := Header{0xffffffff, 0xffffffff, RGB}
	assert.Equal(t, uint64(1<<64-1), expectedBits(&h))
}
