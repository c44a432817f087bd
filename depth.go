package pixbuf

// Depth is the number of bits used to store one pixel.
//
// Rows are packed into 32-bit words, so the byte stride of a row is
// always a multiple of 4 regardless of depth. Pixels at depths below 8
// are packed most-significant-bit first within each byte.
type Depth int

// Legal pixel depths.
const (
	Depth1  Depth = 1  // bilevel
	Depth2  Depth = 2  // 4-level grayscale or 4-entry indexed
	Depth4  Depth = 4  // 16-level grayscale or 16-entry indexed
	Depth8  Depth = 8  // grayscale or 256-entry indexed
	Depth16 Depth = 16 // 16-bit grayscale
	Depth24 Depth = 24 // RGB, 3 bytes per pixel
	Depth32 Depth = 32 // RGBA or RGB with spare byte
)

// IsValid returns true if d is one of the legal pixel depths.
func (d Depth) IsValid() bool {
	switch d {
	case Depth1, Depth2, Depth4, Depth8, Depth16, Depth24, Depth32:
		return true
	}
	return false
}

// IsIndexed returns true if d can address a palette (at most 256 entries).
func (d Depth) IsIndexed() bool {
	switch d {
	case Depth1, Depth2, Depth4, Depth8:
		return true
	}
	return false
}

// WordsPerRow returns the number of 32-bit words needed for a packed row
// of the given width.
func (d Depth) WordsPerRow(width int) int {
	return (width*int(d) + 31) / 32
}

// RowBytes returns the byte stride of a packed row of the given width.
func (d Depth) RowBytes(width int) int {
	return 4 * d.WordsPerRow(width)
}

// ImageBytes returns the total storage size for a width x height buffer.
func (d Depth) ImageBytes(width, height int) int {
	return d.RowBytes(width) * height
}

// SourceFormat records the file format an ImageBuffer was decoded from.
// It is descriptive metadata only; the buffer core never re-encodes.
type SourceFormat uint8

const (
	// FormatUnknown is the default for buffers created in memory.
	FormatUnknown SourceFormat = iota

	// FormatPNG marks a buffer decoded from a PNG stream.
	FormatPNG

	// FormatJPEG marks a buffer decoded from a JPEG stream.
	FormatJPEG

	// FormatGIF marks a buffer decoded from a GIF stream.
	FormatGIF

	// FormatBMP marks a buffer decoded from a BMP stream.
	FormatBMP

	// FormatTIFF marks a buffer decoded from a TIFF stream.
	FormatTIFF

	// formatCount is the number of formats (for internal use).
	formatCount
)

// IsValid returns true if f is a known source format.
func (f SourceFormat) IsValid() bool {
	return f < formatCount
}

// String returns a string representation of the format.
func (f SourceFormat) String() string {
	switch f {
	case FormatUnknown:
		return "unknown"
	case FormatPNG:
		return "png"
	case FormatJPEG:
		return "jpeg"
	case FormatGIF:
		return "gif"
	case FormatBMP:
		return "bmp"
	case FormatTIFF:
		return "tiff"
	default:
		return "unknown"
	}
}

// DetectSourceFormat maps a decoder name, as reported by image.Decode,
// to the matching SourceFormat. Unrecognized names map to FormatUnknown.
func DetectSourceFormat(name string) SourceFormat {
	switch name {
	case "png":
		return FormatPNG
	case "jpeg":
		return FormatJPEG
	case "gif":
		return FormatGIF
	case "bmp":
		return FormatBMP
	case "tiff":
		return FormatTIFF
	}
	return FormatUnknown
}
