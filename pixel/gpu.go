package pixel

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// TextureFormat returns the GPU texture format a Buffer in f is uploaded as.
//
// RGBA32Premul maps to RGBA8Unorm: the bytes are the same, and the sampler
// side is expected to treat them as premultiplied. RGB24 has no 3-channel
// texture format and is widened to RGBA8Unorm by TextureData. RGBA64 is
// stored big-endian and is byte-swapped into RGBA16Unorm.
func TextureFormat(f Format) gputypes.TextureFormat {
	switch f {
	case RGBA32, RGBA32Premul, RGB24:
		return gputypes.TextureFormatRGBA8Unorm
	case BGRA32:
		return gputypes.TextureFormatBGRA8Unorm
	case Gray8:
		return gputypes.TextureFormatR8Unorm
	case RGBA64:
		return gputypes.TextureFormatRGBA16Unorm
	case RGBAF32:
		return gputypes.TextureFormatRGBA32Float
	default:
		return gputypes.TextureFormatUndefined
	}
}

// textureBytesPerPixel is the texel size of the upload layout of f.
func textureBytesPerPixel(f Format) int {
	if f == RGB24 {
		return 4
	}
	return f.BytesPerPixel()
}

// TextureData packs b into tightly packed rows laid out as
// TextureFormat(b.Format()), ready for a queue write with
// bytesPerRow = Width * texel size.
func TextureData(b *Buffer) (gputypes.TextureFormat, []byte, error) {
	tf := TextureFormat(b.Format())
	if tf == gputypes.TextureFormatUndefined {
		return tf, nil, fmt.Errorf("pixel: no texture format for %s", b.Format().Name())
	}

	f := b.Format()
	rowBytes := b.Width() * textureBytesPerPixel(f)
	out := make([]byte, rowBytes*b.Height())
	for y := 0; y < b.Height(); y++ {
		src := b.Row(y)
		dst := out[y*rowBytes : (y+1)*rowBytes]
		switch f {
		case RGB24:
			for x := 0; x < b.Width(); x++ {
				copy(dst[x*4:x*4+3], src[x*3:x*3+3])
				dst[x*4+3] = 0xff
			}
		case RGBA64:
			for i := 0; i+1 < len(src); i += 2 {
				dst[i], dst[i+1] = src[i+1], src[i]
			}
		default:
			copy(dst, src)
		}
	}
	return tf, out, nil
}
