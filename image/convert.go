package image

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"io"
	"math"

	"github.com/ericpauley/go-quantize/quantize"
)

const maxColors = 256

var errTooLarge = errors.New("minipng: image dimensions too large")

// Bit 0 is black, bit 1 is white
var blackAndWhite = color.Palette{
	color.Gray{Y: 0x00},
	color.Gray{Y: 0xff},
}

func init() {
	image.RegisterFormat("minipng", Magic, decodeImage, DecodeConfig)
}

func decodeImage(r io.Reader) (image.Image, error) {
	m, err := Read(r)
	if err != nil {
		return nil, err
	}
	return ToImage(m)
}

func colorModel(m *Image) color.Model {
	switch m.PixelType {
	case BlackAndWhite:
		return blackAndWhite
	case GrayLevels:
		return color.GrayModel
	case Palette:
		return m.Palette
	}
	return color.RGBAModel
}

// DecodeConfig returns the color model and dimensions of a Mini-PNG image.
// The whole stream is validated as the header can appear anywhere in it.
func DecodeConfig(r io.Reader) (image.Config, error) {
	m, err := Read(r)
	if err != nil {
		return image.Config{}, err
	}
	if m.Width > math.MaxInt32 || m.Height > math.MaxInt32 {
		return image.Config{}, errTooLarge
	}
	return image.Config{
		ColorModel: colorModel(m),
		Width:      int(m.Width),
		Height:     int(m.Height),
	}, nil
}

// ToImage converts m into an image.Image. Black and white and palette images
// become *image.Paletted, gray levels become *image.Gray and RGB images become
// *image.RGBA.
func ToImage(m *Image) (image.Image, error) {
	if m.Width > math.MaxInt32 || m.Height > math.MaxInt32 {
		return nil, errTooLarge
	}
	if uint64(len(m.Data)) < m.DataSize() {
		return nil, &DataSizeError{
			Expected: expectedBits(&m.Header),
			Found:    uint64(len(m.Data)) * 8,
			Width:    m.Width,
			Height:   m.Height,
		}
	}

	w, h := int(m.Width), int(m.Height)
	r := image.Rect(0, 0, w, h)

	switch m.PixelType {
	case BlackAndWhite:
		img := image.NewPaletted(r, blackAndWhite)
		for i := range img.Pix {
			img.Pix[i] = m.Data[i/8] >> (7 - i%8) & 1
		}
		return img, nil
	case GrayLevels:
		img := image.NewGray(r)
		copy(img.Pix, m.Data)
		return img, nil
	case Palette:
		img := image.NewPaletted(r, m.Palette)
		for i := range img.Pix {
			if int(m.Data[i]) >= len(m.Palette) {
				return nil, PaletteIndexError(m.Data[i])
			}
			img.Pix[i] = m.Data[i]
		}
		return img, nil
	case RGB:
		img := image.NewRGBA(r)
		for i := 0; i < w*h; i++ {
			copy(img.Pix[i*4:], m.Data[i*bytesPerColor:i*bytesPerColor+bytesPerColor])
			img.Pix[i*4+3] = 0xff
		}
		return img, nil
	}

	return nil, PixelTypeError(m.PixelType)
}

// Reuse the palette of src if it is small enough, otherwise quantize it down
// to maxColors colors.
func paletted(src image.Image) *image.Paletted {
	b := src.Bounds()

	if pm, ok := src.(*image.Paletted); ok && len(pm.Palette) <= maxColors {
		return pm
	}

	q := quantize.MedianCutQuantizer{}
	pm := image.NewPaletted(b, q.Quantize(make(color.Palette, 0, maxColors), src))
	draw.Draw(pm, b, src, b.Min, draw.Src)
	return pm
}

// FromImage converts src into a Mini-PNG image with the given pixel type.
// Black and white pixels are chosen by thresholding the gray level and
// palette images are limited to 256 colors.
func FromImage(src image.Image, pt PixelType) (*Image, error) {
	if _, err := ParsePixelType(pt.Code()); err != nil {
		return nil, err
	}

	b := src.Bounds()
	if uint64(b.Dx()) > math.MaxUint32 || uint64(b.Dy()) > math.MaxUint32 {
		return nil, errTooLarge
	}

	h := Header{
		Width:     uint32(b.Dx()),
		Height:    uint32(b.Dy()),
		PixelType: pt,
	}
	data := make([]byte, 0, h.DataSize())

	var p color.Palette
	switch pt {
	case BlackAndWhite:
		data = data[:h.DataSize()]
		i := 0
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				if color.GrayModel.Convert(src.At(x, y)).(color.Gray).Y >= 0x80 {
					data[i/8] |= 1 << (7 - i%8)
				}
				i++
			}
		}
	case GrayLevels:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				data = append(data, color.GrayModel.Convert(src.At(x, y)).(color.Gray).Y)
			}
		}
	case Palette:
		pm := paletted(src)
		p = pm.Palette
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				data = append(data, pm.ColorIndexAt(x, y))
			}
		}
	case RGB:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				c := color.RGBAModel.Convert(src.At(x, y)).(color.RGBA)
				data = append(data, c.R, c.G, c.B)
			}
		}
	}

	return New(h, p, data)
}
