package blend

import "github.com/gogpu/paint/pixel"

// epsilon guards divisions by a vanishing result alpha.
const epsilon = 1e-6

// colorFunc mixes one straight color channel: d is background, s is source.
type colorFunc func(d, s float32) float32

func colorFuncFor(m ColorMode) colorFunc {
	switch m {
	case Multiply:
		return func(d, s float32) float32 { return d * s }
	case Add:
		return func(d, s float32) float32 { return min(1, d+s) }
	case Subtract:
		return func(d, s float32) float32 { return max(0, d-s) }
	case Screen:
		return func(d, s float32) float32 { return d + s - d*s }
	case Darken:
		return func(d, s float32) float32 { return min(d, s) }
	case Lighten:
		return func(d, s float32) float32 { return max(d, s) }
	case Overlay:
		return func(d, s float32) float32 { return hardLight(s, d) }
	case HardLight:
		return func(d, s float32) float32 { return hardLight(d, s) }
	default:
		return nil
	}
}

func hardLight(d, s float32) float32 {
	if s <= 0.5 {
		return 2 * d * s
	}
	return 1 - 2*(1-d)*(1-s)
}

// compositeFunc combines straight-alpha background and source vectors into
// the fully covered result.
type compositeFunc func(dst, src pixel.Vec4) pixel.Vec4

// newComposite builds the composite for a color/alpha mode pair.
func newComposite(c ColorMode, a AlphaMode) compositeFunc {
	cf := colorFuncFor(c)
	mix := func(dst, src pixel.Vec4) pixel.Vec4 {
		if cf == nil {
			return src
		}
		return pixel.Vec4{R: cf(dst.R, src.R), G: cf(dst.G, src.G), B: cf(dst.B, src.B), A: src.A}
	}

	switch a {
	case Src:
		return func(_, src pixel.Vec4) pixel.Vec4 { return src }
	case Dest:
		return func(dst, _ pixel.Vec4) pixel.Vec4 { return dst }
	case Clear:
		return func(_, _ pixel.Vec4) pixel.Vec4 { return pixel.Vec4{} }
	case SrcAtop:
		return func(dst, src pixel.Vec4) pixel.Vec4 { return atop(dst, src, mix(dst, src)) }
	case DestAtop:
		return func(dst, src pixel.Vec4) pixel.Vec4 { return atop(src, dst, mix(src, dst)) }
	case DestOver:
		return func(dst, src pixel.Vec4) pixel.Vec4 { return over(src, dst, mix(src, dst)) }
	case SrcIn:
		return func(dst, src pixel.Vec4) pixel.Vec4 { return in(dst, src) }
	case DestIn:
		return func(dst, src pixel.Vec4) pixel.Vec4 { return in(src, dst) }
	case SrcOut:
		return func(dst, src pixel.Vec4) pixel.Vec4 { return out(dst, src) }
	case DestOut:
		return func(dst, src pixel.Vec4) pixel.Vec4 { return out(src, dst) }
	case Xor:
		return xor
	default:
		if cf == nil {
			return func(dst, src pixel.Vec4) pixel.Vec4 { return over(dst, src, src) }
		}
		return func(dst, src pixel.Vec4) pixel.Vec4 { return over(dst, src, mix(dst, src)) }
	}
}

// over places src over dst. Where both are present the color is blend.
func over(dst, src, blend pixel.Vec4) pixel.Vec4 {
	blendW := dst.A * src.A
	dstW := dst.A - blendW
	srcW := src.A - blendW
	alpha := dstW + src.A

	c := dst.Mul(dstW).Add(src.Mul(srcW)).Add(blend.Mul(blendW))
	c = c.Mul(1 / max(alpha, epsilon))
	c.A = alpha
	return c
}

// atop keeps dst alpha; src shows only where dst is present.
func atop(dst, src, blend pixel.Vec4) pixel.Vec4 {
	blendW := dst.A * src.A
	dstW := dst.A - blendW
	alpha := dst.A

	c := dst.Mul(dstW).Add(blend.Mul(blendW))
	c = c.Mul(1 / max(alpha, epsilon))
	c.A = alpha
	return c
}

// in shows src color only where dst is present.
func in(dst, src pixel.Vec4) pixel.Vec4 {
	src.A *= dst.A
	return src
}

// out shows src color only where dst is absent.
func out(dst, src pixel.Vec4) pixel.Vec4 {
	src.A *= 1 - dst.A
	return src
}

func xor(dst, src pixel.Vec4) pixel.Vec4 {
	srcW := src.A * (1 - dst.A)
	dstW := dst.A * (1 - src.A)
	alpha := srcW + dstW

	c := src.Mul(srcW).Add(dst.Mul(dstW))
	c = c.Mul(1 / max(alpha, epsilon))
	c.A = alpha
	return c
}

// mixAmount weights the composite by amount. The interpolation runs on
// premultiplied values so partially covered pixels over transparent
// backgrounds keep the source color.
func mixAmount(dst, composite pixel.Vec4, amount float32) pixel.Vec4 {
	switch amount {
	case 0:
		return dst
	case 1:
		return composite
	}
	return dst.Premultiply().Lerp(composite.Premultiply(), amount).Unpremultiply()
}
