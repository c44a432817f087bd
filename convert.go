package pixbuf

import (
	"fmt"
	"image"
	"image/color"
	"io"

	_ "image/gif"  // register GIF decoder for Decode
	_ "image/jpeg" // register JPEG decoder for Decode
	_ "image/png"  // register PNG decoder for Decode

	_ "golang.org/x/image/bmp"  // register BMP decoder for Decode
	_ "golang.org/x/image/tiff" // register TIFF decoder for Decode
)

// This file bridges ImageBuffer and the standard image.Image types so
// that decoders and third-party processing libraries can act as external
// consumers of the buffer contract. The buffer core itself never
// interprets pixel content; the bridge is a convenience layer on top.

// indexAt extracts the packed pixel value at (x, y) for depths 1-8.
// Pixels are packed most-significant-bit first within each byte.
func (b *ImageBuffer) indexAt(x, y int) uint8 {
	bits := int(b.depth)
	byteIdx := y*b.stride + (x*bits)/8
	shift := 8 - bits - (x*bits)%8
	mask := uint8(1<<bits - 1)
	return (b.data[byteIdx] >> shift) & mask
}

// ToImage converts the buffer to a standard image.Image. Indexed depths
// with a palette produce *image.Paletted; depth 8 without a palette
// produces *image.Gray, depth 16 *image.Gray16, depths 24 and 32
// *image.NRGBA. Shallow depths without a palette are expanded to
// grayscale. Header-only buffers fail with ErrInvalidValue.
func (b *ImageBuffer) ToImage() (image.Image, error) {
	if b == nil {
		return nil, ErrNilBuffer
	}
	if b.data == nil {
		return nil, fmt.Errorf("%w: buffer has no pixel storage", ErrInvalidValue)
	}

	rect := image.Rect(0, 0, b.width, b.height)

	if b.depth.IsIndexed() && b.palette != nil {
		pal := make(color.Palette, b.palette.Len())
		for i, e := range b.palette.entries {
			pal[i] = color.NRGBA{R: e.R, G: e.G, B: e.B, A: 255}
		}
		img := image.NewPaletted(rect, pal)
		for y := 0; y < b.height; y++ {
			for x := 0; x < b.width; x++ {
				img.SetColorIndex(x, y, b.indexAt(x, y))
			}
		}
		return img, nil
	}

	switch b.depth {
	case Depth1, Depth2, Depth4:
		// Expand to grayscale; for bilevel, 1 is ink (black).
		img := image.NewGray(rect)
		maxVal := uint16(1<<b.depth - 1)
		for y := 0; y < b.height; y++ {
			for x := 0; x < b.width; x++ {
				v := uint16(b.indexAt(x, y))
				if b.depth == Depth1 {
					v = 1 - v
				}
				img.SetGray(x, y, color.Gray{Y: uint8(v * 255 / maxVal)})
			}
		}
		return img, nil

	case Depth8:
		img := image.NewGray(rect)
		for y := 0; y < b.height; y++ {
			copy(img.Pix[y*img.Stride:y*img.Stride+b.width], b.data[y*b.stride:])
		}
		return img, nil

	case Depth16:
		img := image.NewGray16(rect)
		for y := 0; y < b.height; y++ {
			copy(img.Pix[y*img.Stride:y*img.Stride+2*b.width], b.data[y*b.stride:])
		}
		return img, nil

	case Depth24:
		img := image.NewNRGBA(rect)
		for y := 0; y < b.height; y++ {
			src := b.data[y*b.stride:]
			dst := img.Pix[y*img.Stride:]
			for x := 0; x < b.width; x++ {
				dst[4*x+0] = src[3*x+0]
				dst[4*x+1] = src[3*x+1]
				dst[4*x+2] = src[3*x+2]
				dst[4*x+3] = 255
			}
		}
		return img, nil

	case Depth32:
		img := image.NewNRGBA(rect)
		for y := 0; y < b.height; y++ {
			copy(img.Pix[y*img.Stride:y*img.Stride+4*b.width], b.data[y*b.stride:])
		}
		return img, nil
	}

	return nil, fmt.Errorf("%w: depth %d", ErrInvalidValue, b.depth)
}

// FromImage wraps a decoded image into a new ImageBuffer with a handle
// count of 1, using the default factory's allocator. Grayscale images
// map to depth 8, 16-bit grayscale to depth 16, paletted images to depth
// 8 with a palette; everything else is converted to depth 32 NRGBA.
func FromImage(img image.Image) (*ImageBuffer, error) {
	if img == nil {
		return nil, ErrNilBuffer
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	switch src := img.(type) {
	case *image.Gray:
		b, err := NewUninitialized(w, h, Depth8)
		if err != nil {
			return nil, err
		}
		for y := 0; y < h; y++ {
			row := b.data[y*b.stride : y*b.stride+b.stride]
			n := copy(row, src.Pix[y*src.Stride:y*src.Stride+w])
			clear(row[n:]) // pad bytes
		}
		return b, nil

	case *image.Gray16:
		b, err := NewUninitialized(w, h, Depth16)
		if err != nil {
			return nil, err
		}
		for y := 0; y < h; y++ {
			row := b.data[y*b.stride : y*b.stride+b.stride]
			n := copy(row, src.Pix[y*src.Stride:y*src.Stride+2*w])
			clear(row[n:])
		}
		return b, nil

	case *image.Paletted:
		b, err := NewUninitialized(w, h, Depth8)
		if err != nil {
			return nil, err
		}
		pal, perr := NewPalette(Depth8)
		if perr != nil {
			return nil, perr
		}
		for _, c := range src.Palette {
			r, g, bl, _ := c.RGBA()
			if _, err := pal.Add(uint8(r>>8), uint8(g>>8), uint8(bl>>8)); err != nil {
				break
			}
		}
		if err := b.SetPalette(pal); err != nil {
			return nil, err
		}
		for y := 0; y < h; y++ {
			row := b.data[y*b.stride : y*b.stride+b.stride]
			n := copy(row, src.Pix[y*src.Stride:y*src.Stride+w])
			clear(row[n:])
		}
		return b, nil
	}

	b, err := NewUninitialized(w, h, Depth32)
	if err != nil {
		return nil, err
	}
	for y := 0; y < h; y++ {
		row := b.data[y*b.stride:]
		for x := 0; x < w; x++ {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			row[4*x+0] = c.R
			row[4*x+1] = c.G
			row[4*x+2] = c.B
			row[4*x+3] = c.A
		}
	}
	return b, nil
}

// Decode reads an encoded image from r, wraps it into an ImageBuffer and
// records the detected source format. PNG, JPEG, GIF, BMP and TIFF
// decoders are registered by this package.
func Decode(r io.Reader) (*ImageBuffer, error) {
	img, name, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("pixbuf: decode: %w", err)
	}
	b, err := FromImage(img)
	if err != nil {
		return nil, err
	}
	if err := b.SetFormat(DetectSourceFormat(name)); err != nil {
		return nil, err
	}
	return b, nil
}
