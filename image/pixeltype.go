package image

import (
	"math"
	"math/bits"
)

// PixelType describes how the data bytes of an image map to pixels.
type PixelType uint8

// The four pixel types, numbered as they are stored in the header block.
const (
	BlackAndWhite PixelType = iota
	GrayLevels
	Palette
	RGB
)

// ParsePixelType returns the pixel type stored as code in a header block.
func ParsePixelType(code byte) (PixelType, error) {
	switch PixelType(code) {
	case BlackAndWhite, GrayLevels, Palette, RGB:
		return PixelType(code), nil
	}
	return 0, PixelTypeError(code)
}

// Code returns the header block representation of p.
func (p PixelType) Code() byte {
	return byte(p)
}

// BitsPerPixel returns the number of data bits used by each pixel.
func (p PixelType) BitsPerPixel() int {
	switch p {
	case BlackAndWhite:
		return 1
	case GrayLevels, Palette:
		return 8
	case RGB:
		return 24
	}
	return 0
}

func (p PixelType) String() string {
	switch p {
	case BlackAndWhite:
		return "0 (1 bit black and white)"
	case GrayLevels:
		return "1 (8 bits gray levels)"
	case Palette:
		return "2 (8 bits palette)"
	case RGB:
		return "3 (24 bits rgb images)"
	}
	return PixelTypeError(p).Error()
}

// Number of bits needed to hold every pixel, rounded up to a whole byte.
// Saturates rather than wrapping for absurd dimensions.
func expectedBits(h *Header) uint64 {
	hi, lo := bits.Mul64(h.Pixels(), uint64(h.PixelType.BitsPerPixel()))
	if hi != 0 || lo > math.MaxUint64-7 {
		return math.MaxUint64
	}
	return (lo + 7) &^ 7
}
