package pixel

import "fmt"

// Format is one concrete pixel encoding.
//
// ToVector requires len(src) == len(dst)*BytesPerPixel() and FromVector
// requires len(dst) == len(src)*BytesPerPixel(). A mismatch is a caller bug
// and panics.
//
// FromVector may overwrite src; callers must not read it afterwards.
type Format interface {
	// Name identifies the encoding, e.g. "RGBA32".
	Name() string

	// Info describes the storage layout.
	Info() FormatInfo

	// BytesPerPixel is Info().BytesPerPixel.
	BytesPerPixel() int

	// ToVector decodes len(dst) pixels from src.
	ToVector(src []byte, dst []Vec4, m Modifiers)

	// FromVector encodes len(src) vectors into dst.
	FromVector(src []Vec4, dst []byte, m Modifiers)
}

// FormatInfo contains metadata about a pixel encoding.
type FormatInfo struct {
	// BytesPerPixel is the number of bytes per pixel.
	BytesPerPixel int

	// Channels is the number of stored channels.
	Channels int

	// HasAlpha indicates the encoding stores alpha.
	HasAlpha bool

	// IsPremultiplied indicates stored color is premultiplied by alpha.
	IsPremultiplied bool

	// IsGrayscale indicates a single luma channel.
	IsGrayscale bool

	// IsFloat indicates channels are stored as IEEE floats.
	IsFloat bool

	// BitsPerChannel is the number of bits per stored channel.
	BitsPerChannel int
}

// RowBytes returns the minimum bytes needed for a row of width pixels.
func RowBytes(f Format, width int) int {
	return f.BytesPerPixel() * width
}

func checkToVector(f Format, src []byte, dst []Vec4) {
	if len(src) != len(dst)*f.BytesPerPixel() {
		panic(fmt.Sprintf("pixel: %s.ToVector: %d bytes for %d vectors", f.Name(), len(src), len(dst)))
	}
}

func checkFromVector(f Format, src []Vec4, dst []byte) {
	if len(dst) != len(src)*f.BytesPerPixel() {
		panic(fmt.Sprintf("pixel: %s.FromVector: %d vectors for %d bytes", f.Name(), len(src), len(dst)))
	}
}

// Formats lists every built-in encoding.
func Formats() []Format {
	return []Format{RGBA32, BGRA32, RGBA32Premul, RGB24, Gray8, RGBA64, RGBAF32}
}
