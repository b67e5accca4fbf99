package image

import (
	"errors"
	"fmt"
)

var (
	ErrFileTooSmall        = errors.New("minipng: file is too small to be a Mini-PNG image")
	ErrInvalidMagic        = errors.New("minipng: file doesn't have the magic number \"" + Magic + "\"")
	ErrInvalidBlockLength  = errors.New("minipng: could not read the length field of the current block")
	ErrBlockLengthMismatch = errors.New("minipng: block length is invalid")
	ErrInvalidUTF8Comment  = errors.New("minipng: could not read UTF-8 text from a comment")
	ErrDuplicateHeader     = errors.New("minipng: found a second header block")
	ErrHeaderTooSmall      = errors.New("minipng: header block too small")
	ErrDuplicatePalette    = errors.New("minipng: found a second palette block")
	ErrMissingHeader       = errors.New("minipng: no header block found")
	ErrMissingPalette      = errors.New("minipng: no palette block found")
	ErrMissingData         = errors.New("minipng: no data block found")
	ErrUnexpectedPalette   = errors.New("minipng: a palette block was found but pixel type is not palette")
)

// A BlockTypeError reports an unknown block tag.
type BlockTypeError byte

func (e BlockTypeError) Error() string {
	return fmt.Sprintf("minipng: invalid block type found: %q", rune(e))
}

// A PixelTypeError reports a pixel type code outside 0-3.
type PixelTypeError byte

func (e PixelTypeError) Error() string {
	return fmt.Sprintf("minipng: invalid pixel type: %d", byte(e))
}

// A PaletteIndexError reports a data byte with no matching palette entry.
type PaletteIndexError byte

func (e PaletteIndexError) Error() string {
	return fmt.Sprintf("minipng: invalid palette index: %d", byte(e))
}

// An IllegalCharacterError reports a character in imported text that is
// neither a space nor an X.
type IllegalCharacterError rune

func (e IllegalCharacterError) Error() string {
	return fmt.Sprintf("minipng: illegal character found: %q", rune(e))
}

// A DataSizeError reports data that doesn't match the header dimensions. Sizes
// are in bits.
type DataSizeError struct {
	Expected uint64
	Found    uint64
	Width    uint32
	Height   uint32
}

func (e *DataSizeError) Error() string {
	return fmt.Sprintf("minipng: expected %d bits (%dx%d pixels) but found %d bits in data", e.Expected, e.Width, e.Height, e.Found)
}
