package pixel

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Common errors for buffer construction.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("pixel: invalid dimensions")

	// ErrInvalidStride is returned when stride is less than a row needs.
	ErrInvalidStride = errors.New("pixel: stride too small for width")

	// ErrDataTooSmall is returned when wrapped data cannot hold the image.
	ErrDataTooSmall = errors.New("pixel: data buffer too small")

	// ErrNilFormat is returned when no encoding is given.
	ErrNilFormat = errors.New("pixel: nil format")
)

// Buffer is a row-addressable view over a 2D block of pixels in one encoding.
//
// A Buffer never owns its memory in any special way: Wrap shares the
// caller's slice, and Sub shares the parent's. Writes through any view are
// visible through all of them.
//
// Thread safety: concurrent access is safe as long as writers touch
// disjoint rows.
type Buffer struct {
	pix    []byte
	width  int
	height int
	stride int
	format Format
}

// NewBuffer allocates a zeroed buffer.
func NewBuffer(width, height int, f Format) (*Buffer, error) {
	if f == nil {
		return nil, ErrNilFormat
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	stride := RowBytes(f, width)
	return &Buffer{
		pix:    make([]byte, stride*height),
		width:  width,
		height: height,
		stride: stride,
		format: f,
	}, nil
}

// Wrap creates a view over existing data without copying.
// Stride must be at least RowBytes(f, width).
func Wrap(pix []byte, width, height, stride int, f Format) (*Buffer, error) {
	if f == nil {
		return nil, ErrNilFormat
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if stride < RowBytes(f, width) {
		return nil, fmt.Errorf("%w: stride %d, need %d", ErrInvalidStride, stride, RowBytes(f, width))
	}
	// The last row only needs its pixels, not a full stride.
	need := stride*(height-1) + RowBytes(f, width)
	if len(pix) < need {
		return nil, fmt.Errorf("%w: have %d bytes, need %d", ErrDataTooSmall, len(pix), need)
	}
	return &Buffer{pix: pix, width: width, height: height, stride: stride, format: f}, nil
}

// Width returns the width in pixels.
func (b *Buffer) Width() int { return b.width }

// Height returns the height in pixels.
func (b *Buffer) Height() int { return b.height }

// Stride returns the distance in bytes between row starts.
func (b *Buffer) Stride() int { return b.stride }

// Format returns the pixel encoding.
func (b *Buffer) Format() Format { return b.format }

// Pix returns the underlying bytes.
func (b *Buffer) Pix() []byte { return b.pix }

// Bounds returns (0,0)-(width,height).
func (b *Buffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.width, b.height)
}

// Row returns the bytes of row y, exactly width pixels long.
// It panics if y is out of range.
func (b *Buffer) Row(y int) []byte {
	if y < 0 || y >= b.height {
		panic(fmt.Sprintf("pixel: row %d out of range [0,%d)", y, b.height))
	}
	off := y * b.stride
	end := off + RowBytes(b.format, b.width)
	return b.pix[off:end:end]
}

// RowSpan returns the bytes of pixels [x0,x1) in row y.
func (b *Buffer) RowSpan(y, x0, x1 int) []byte {
	bpp := b.format.BytesPerPixel()
	return b.Row(y)[x0*bpp : x1*bpp]
}

// Sub returns a view of r intersected with the buffer bounds.
// The view's origin is r.Min. An empty intersection yields a nil view.
func (b *Buffer) Sub(r image.Rectangle) *Buffer {
	r = r.Intersect(b.Bounds())
	if r.Empty() {
		return nil
	}
	bpp := b.format.BytesPerPixel()
	off := r.Min.Y*b.stride + r.Min.X*bpp
	return &Buffer{
		pix:    b.pix[off:],
		width:  r.Dx(),
		height: r.Dy(),
		stride: b.stride,
		format: b.format,
	}
}

// PixelAt returns the scaled canonical vector at (x, y).
// Out-of-range coordinates return transparent black.
func (b *Buffer) PixelAt(x, y int) Vec4 {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return Vec4{}
	}
	var v [1]Vec4
	b.format.ToVector(b.RowSpan(y, x, x+1), v[:], Scale)
	return v[0]
}

// SetPixel stores a scaled canonical vector at (x, y).
// Out-of-range coordinates are ignored.
func (b *Buffer) SetPixel(x, y int, v Vec4) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return
	}
	tmp := [1]Vec4{v}
	b.format.FromVector(tmp[:], b.RowSpan(y, x, x+1), Scale)
}

// Fill sets every pixel to v.
func (b *Buffer) Fill(v Vec4) {
	bpp := b.format.BytesPerPixel()
	encoded := make([]byte, bpp)
	tmp := [1]Vec4{v}
	b.format.FromVector(tmp[:], encoded, Scale)
	for y := 0; y < b.height; y++ {
		row := b.Row(y)
		for x := 0; x < len(row); x += bpp {
			copy(row[x:x+bpp], encoded)
		}
	}
}

// Clone returns a tightly packed copy.
func (b *Buffer) Clone() *Buffer {
	c := &Buffer{
		pix:    make([]byte, RowBytes(b.format, b.width)*b.height),
		width:  b.width,
		height: b.height,
		stride: RowBytes(b.format, b.width),
		format: b.format,
	}
	for y := 0; y < b.height; y++ {
		copy(c.Row(y), b.Row(y))
	}
	return c
}

// ToNRGBA converts the buffer to an image.NRGBA.
func (b *Buffer) ToNRGBA() *image.NRGBA {
	img := image.NewNRGBA(b.Bounds())
	row := make([]Vec4, b.width)
	for y := 0; y < b.height; y++ {
		b.format.ToVector(b.Row(y), row, Scale)
		RGBA32.FromVector(row, img.Pix[y*img.Stride:y*img.Stride+b.width*4], Scale)
	}
	return img
}

// FromImage copies img into a new buffer in encoding f.
func FromImage(img image.Image, f Format) (*Buffer, error) {
	if f == nil {
		return nil, ErrNilFormat
	}
	src := imaging.Clone(img)
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	buf, err := NewBuffer(w, h, f)
	if err != nil {
		return nil, err
	}
	row := make([]Vec4, w)
	for y := 0; y < h; y++ {
		RGBA32.ToVector(src.Pix[y*src.Stride:y*src.Stride+w*4], row, Scale)
		f.FromVector(row, buf.Row(y), Scale)
	}
	return buf, nil
}

// At implements image.Image.
func (b *Buffer) At(x, y int) color.Color {
	v := b.PixelAt(x, y)
	return color.NRGBA64{
		R: quantize16(v.R),
		G: quantize16(v.G),
		B: quantize16(v.B),
		A: quantize16(v.A),
	}
}

// ColorModel implements image.Image.
func (b *Buffer) ColorModel() color.Model {
	return color.NRGBA64Model
}
