package image

import (
	"strings"
)

// Split on newlines, dropping a trailing carriage return from each line. A
// final newline doesn't start another line.
func splitLines(s string) [][]rune {
	if s == "" {
		return nil
	}
	s = strings.TrimSuffix(s, "\n")

	var lines [][]rune
	for _, l := range strings.Split(s, "\n") {
		lines = append(lines, []rune(strings.TrimSuffix(l, "\r")))
	}
	return lines
}

// FromText converts ASCII art into a black and white image. Each line of s is
// a row of pixels where ' ' is black and 'X' is white. The image is as wide as
// the longest line; shorter lines are padded with black.
func FromText(s string) (*Image, error) {
	lines := splitLines(s)

	var width int
	for _, l := range lines {
		if len(l) > width {
			width = len(l)
		}
	}
	height := len(lines)

	n := width * height
	data := make([]byte, (n+7)/8)

	for i := 0; i < n; i++ {
		c := ' '
		if l := lines[i/width]; i%width < len(l) {
			c = l[i%width]
		}

		switch c {
		case ' ':
		case 'X':
			data[i/8] |= 1 << (7 - i%8)
		default:
			return nil, IllegalCharacterError(c)
		}
	}

	return &Image{
		Header: Header{
			Width:     uint32(width),
			Height:    uint32(height),
			PixelType: BlackAndWhite,
		},
		Data: data,
	}, nil
}
