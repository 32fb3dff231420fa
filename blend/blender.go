package blend

import (
	"fmt"

	"github.com/gogpu/paint/memory"
	"github.com/gogpu/paint/pixel"
)

// PixelBlender composites rows of one pixel encoding.
//
// For every pixel i the result is the composite of background[i] and
// source[i], weighted by amount[i]: amount 0 leaves the background, amount 1
// yields the full composite, values between interpolate. With Normal/Src
// (and with Normal/SrcOver for opaque pixels) this is
//
//	result = background*(1-amount) + source*amount
//
// Amounts are not clamped; out-of-range values extrapolate linearly and
// integer encodings clamp on write.
type PixelBlender interface {
	// Blend composites encoded rows. dst, background and source must each
	// hold len(amount) pixels; dst may alias background. It returns an error
	// only when scratch memory cannot be allocated.
	Blend(dst, background, source []byte, amount []float32) error

	// BlendVectors composites canonical rows. All slices must have equal
	// length; dst may alias background or source.
	BlendVectors(dst, background, source []pixel.Vec4, amount []float32)

	// Format returns the encoding Blend works on.
	Format() pixel.Format
}

type pixelBlender struct {
	format    pixel.Format
	alloc     *memory.Allocator
	composite compositeFunc
	color     ColorMode
	alpha     AlphaMode
}

// NewPixelBlender returns a blender for rows in encoding f. Scratch rows are
// taken from alloc; a nil alloc uses memory.Default().
func NewPixelBlender(f pixel.Format, c ColorMode, a AlphaMode, alloc *memory.Allocator) PixelBlender {
	if alloc == nil {
		alloc = memory.Default()
	}
	return &pixelBlender{
		format:    f,
		alloc:     alloc,
		composite: newComposite(c, a),
		color:     c,
		alpha:     a,
	}
}

func (b *pixelBlender) Format() pixel.Format { return b.format }

func (b *pixelBlender) String() string {
	return fmt.Sprintf("%s/%s/%s", b.format.Name(), b.color, b.alpha)
}

func (b *pixelBlender) Blend(dst, background, source []byte, amount []float32) error {
	n := len(amount)
	want := n * b.format.BytesPerPixel()
	if len(dst) != want || len(background) != want || len(source) != want {
		panic(fmt.Sprintf("blend: %s: spans of %d, %d, %d bytes for %d amounts",
			b.format.Name(), len(dst), len(background), len(source), n))
	}
	if n == 0 {
		return nil
	}

	bgBuf, err := b.alloc.Vectors(n)
	if err != nil {
		return fmt.Errorf("blend: background scratch: %w", err)
	}
	defer bgBuf.Release()
	srcBuf, err := b.alloc.Vectors(n)
	if err != nil {
		return fmt.Errorf("blend: source scratch: %w", err)
	}
	defer srcBuf.Release()

	bg := bgBuf.Slice()
	src := srcBuf.Slice()
	b.format.ToVector(background, bg, pixel.Scale)
	b.format.ToVector(source, src, pixel.Scale)
	b.BlendVectors(bg, bg, src, amount)
	b.format.FromVector(bg, dst, pixel.Scale)
	return nil
}

func (b *pixelBlender) BlendVectors(dst, background, source []pixel.Vec4, amount []float32) {
	n := len(amount)
	if len(dst) != n || len(background) != n || len(source) != n {
		panic(fmt.Sprintf("blend: vector spans of %d, %d, %d for %d amounts",
			len(dst), len(background), len(source), n))
	}
	for i, t := range amount {
		bg := background[i]
		if t == 0 {
			dst[i] = bg
			continue
		}
		dst[i] = mixAmount(bg, b.composite(bg, source[i]), t)
	}
}
