package pixel

import (
	"encoding/binary"
	"math"
)

// Built-in encodings. Compare formats by identity: f == pixel.RGBA32.
var (
	// RGBA32 is 8-bit straight-alpha RGBA, the layout of image.NRGBA.
	RGBA32 Format = &rgba8{name: "RGBA32", order: [4]int{0, 1, 2, 3}}

	// BGRA32 is 8-bit straight-alpha BGRA, common for window surfaces.
	BGRA32 Format = &rgba8{name: "BGRA32", order: [4]int{2, 1, 0, 3}}

	// RGBA32Premul is 8-bit premultiplied RGBA, the layout of image.RGBA.
	RGBA32Premul Format = &rgba8{name: "RGBA32Premul", order: [4]int{0, 1, 2, 3}, premul: true}

	// RGB24 is 8-bit RGB without alpha. Decoded alpha is always 1;
	// encoding drops alpha.
	RGB24 Format = rgb24{}

	// Gray8 is 8-bit luma. Encoding uses Rec. 709 weights and drops alpha.
	Gray8 Format = gray8{}

	// RGBA64 is 16-bit big-endian straight-alpha RGBA, the layout of
	// image.NRGBA64.
	RGBA64 Format = rgba16{}

	// RGBAF32 is four little-endian float32 channels, straight alpha.
	// Values are stored as-is, so round trips are exact.
	RGBAF32 Format = rgbaF32{}
)

func quantize8(v float32) uint8 {
	return uint8(clamp01(v)*255 + 0.5)
}

func quantize16(v float32) uint16 {
	return uint16(clamp01(v)*65535 + 0.5)
}

// rgba8 covers the four-byte encodings that differ only in channel order
// and alpha storage.
type rgba8 struct {
	name   string
	order  [4]int
	premul bool
}

func (f *rgba8) Name() string { return f.name }

func (f *rgba8) Info() FormatInfo {
	return FormatInfo{
		BytesPerPixel:   4,
		Channels:        4,
		HasAlpha:        true,
		IsPremultiplied: f.premul,
		BitsPerChannel:  8,
	}
}

func (f *rgba8) BytesPerPixel() int { return 4 }

func (f *rgba8) ToVector(src []byte, dst []Vec4, m Modifiers) {
	checkToVector(f, src, dst)
	r, g, b, a := f.order[0], f.order[1], f.order[2], f.order[3]
	for i := range dst {
		p := src[i*4 : i*4+4 : i*4+4]
		v := Vec4{
			R: float32(p[r]) / 255,
			G: float32(p[g]) / 255,
			B: float32(p[b]) / 255,
			A: float32(p[a]) / 255,
		}
		if f.premul {
			v = v.Unpremultiply()
		}
		dst[i] = v
	}
	expand(dst, m, 255)
}

func (f *rgba8) FromVector(src []Vec4, dst []byte, m Modifiers) {
	checkFromVector(f, src, dst)
	reduce(src, m, 255)
	r, g, b, a := f.order[0], f.order[1], f.order[2], f.order[3]
	for i, v := range src {
		if f.premul {
			v = v.Clamp().Premultiply()
		}
		p := dst[i*4 : i*4+4 : i*4+4]
		p[r] = quantize8(v.R)
		p[g] = quantize8(v.G)
		p[b] = quantize8(v.B)
		p[a] = quantize8(v.A)
	}
}

type rgb24 struct{}

func (rgb24) Name() string { return "RGB24" }

func (rgb24) Info() FormatInfo {
	return FormatInfo{BytesPerPixel: 3, Channels: 3, BitsPerChannel: 8}
}

func (rgb24) BytesPerPixel() int { return 3 }

func (f rgb24) ToVector(src []byte, dst []Vec4, m Modifiers) {
	checkToVector(f, src, dst)
	for i := range dst {
		p := src[i*3 : i*3+3 : i*3+3]
		dst[i] = Vec4{
			R: float32(p[0]) / 255,
			G: float32(p[1]) / 255,
			B: float32(p[2]) / 255,
			A: 1,
		}
	}
	expand(dst, m, 255)
}

func (f rgb24) FromVector(src []Vec4, dst []byte, m Modifiers) {
	checkFromVector(f, src, dst)
	reduce(src, m, 255)
	for i, v := range src {
		p := dst[i*3 : i*3+3 : i*3+3]
		p[0] = quantize8(v.R)
		p[1] = quantize8(v.G)
		p[2] = quantize8(v.B)
	}
}

// Rec. 709 luma weights.
const (
	lumaR = 0.2126
	lumaG = 0.7152
	lumaB = 0.0722
)

type gray8 struct{}

func (gray8) Name() string { return "Gray8" }

func (gray8) Info() FormatInfo {
	return FormatInfo{BytesPerPixel: 1, Channels: 1, IsGrayscale: true, BitsPerChannel: 8}
}

func (gray8) BytesPerPixel() int { return 1 }

func (f gray8) ToVector(src []byte, dst []Vec4, m Modifiers) {
	checkToVector(f, src, dst)
	for i := range dst {
		y := float32(src[i]) / 255
		dst[i] = Vec4{R: y, G: y, B: y, A: 1}
	}
	expand(dst, m, 255)
}

func (f gray8) FromVector(src []Vec4, dst []byte, m Modifiers) {
	checkFromVector(f, src, dst)
	reduce(src, m, 255)
	for i, v := range src {
		dst[i] = quantize8(lumaR*v.R + lumaG*v.G + lumaB*v.B)
	}
}

type rgba16 struct{}

func (rgba16) Name() string { return "RGBA64" }

func (rgba16) Info() FormatInfo {
	return FormatInfo{BytesPerPixel: 8, Channels: 4, HasAlpha: true, BitsPerChannel: 16}
}

func (rgba16) BytesPerPixel() int { return 8 }

func (f rgba16) ToVector(src []byte, dst []Vec4, m Modifiers) {
	checkToVector(f, src, dst)
	be := binary.BigEndian
	for i := range dst {
		p := src[i*8 : i*8+8 : i*8+8]
		dst[i] = Vec4{
			R: float32(be.Uint16(p[0:])) / 65535,
			G: float32(be.Uint16(p[2:])) / 65535,
			B: float32(be.Uint16(p[4:])) / 65535,
			A: float32(be.Uint16(p[6:])) / 65535,
		}
	}
	expand(dst, m, 65535)
}

func (f rgba16) FromVector(src []Vec4, dst []byte, m Modifiers) {
	checkFromVector(f, src, dst)
	reduce(src, m, 65535)
	be := binary.BigEndian
	for i, v := range src {
		p := dst[i*8 : i*8+8 : i*8+8]
		be.PutUint16(p[0:], quantize16(v.R))
		be.PutUint16(p[2:], quantize16(v.G))
		be.PutUint16(p[4:], quantize16(v.B))
		be.PutUint16(p[6:], quantize16(v.A))
	}
}

type rgbaF32 struct{}

func (rgbaF32) Name() string { return "RGBAF32" }

func (rgbaF32) Info() FormatInfo {
	return FormatInfo{BytesPerPixel: 16, Channels: 4, HasAlpha: true, IsFloat: true, BitsPerChannel: 32}
}

func (rgbaF32) BytesPerPixel() int { return 16 }

func (f rgbaF32) ToVector(src []byte, dst []Vec4, m Modifiers) {
	checkToVector(f, src, dst)
	le := binary.LittleEndian
	for i := range dst {
		p := src[i*16 : i*16+16 : i*16+16]
		dst[i] = Vec4{
			R: math.Float32frombits(le.Uint32(p[0:])),
			G: math.Float32frombits(le.Uint32(p[4:])),
			B: math.Float32frombits(le.Uint32(p[8:])),
			A: math.Float32frombits(le.Uint32(p[12:])),
		}
	}
	expand(dst, m, 1)
}

func (f rgbaF32) FromVector(src []Vec4, dst []byte, m Modifiers) {
	checkFromVector(f, src, dst)
	reduce(src, m, 1)
	le := binary.LittleEndian
	for i, v := range src {
		p := dst[i*16 : i*16+16 : i*16+16]
		le.PutUint32(p[0:], math.Float32bits(v.R))
		le.PutUint32(p[4:], math.Float32bits(v.G))
		le.PutUint32(p[8:], math.Float32bits(v.B))
		le.PutUint32(p[12:], math.Float32bits(v.A))
	}
}
