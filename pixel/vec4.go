// Package pixel converts between concrete pixel encodings and the canonical
// four-channel float vector used for all blending and per-pixel math.
//
// Every encoding implements [Format] exactly once. Code that mutates pixels
// converts a row to []Vec4, works on the vectors, and converts back, so the
// math never has to know how pixels are stored.
package pixel

import "golang.org/x/exp/constraints"

// Vec4 is the canonical pixel vector.
// With the Scale modifier, every channel is in [0,1].
type Vec4 struct {
	R, G, B, A float32
}

// Premultiply returns v with R, G and B multiplied by A.
func (v Vec4) Premultiply() Vec4 {
	return Vec4{R: v.R * v.A, G: v.G * v.A, B: v.B * v.A, A: v.A}
}

// Unpremultiply reverses Premultiply. A zero alpha yields transparent black.
func (v Vec4) Unpremultiply() Vec4 {
	if v.A == 0 {
		return Vec4{}
	}
	return Vec4{R: v.R / v.A, G: v.G / v.A, B: v.B / v.A, A: v.A}
}

// Lerp interpolates every channel from v to o by t.
// t is not clamped.
func (v Vec4) Lerp(o Vec4, t float32) Vec4 {
	return Vec4{
		R: v.R + (o.R-v.R)*t,
		G: v.G + (o.G-v.G)*t,
		B: v.B + (o.B-v.B)*t,
		A: v.A + (o.A-v.A)*t,
	}
}

// Mul multiplies every channel by s.
func (v Vec4) Mul(s float32) Vec4 {
	return Vec4{R: v.R * s, G: v.G * s, B: v.B * s, A: v.A * s}
}

// Add returns the channel-wise sum.
func (v Vec4) Add(o Vec4) Vec4 {
	return Vec4{R: v.R + o.R, G: v.G + o.G, B: v.B + o.B, A: v.A + o.A}
}

// Clamp restricts every channel to [0,1].
func (v Vec4) Clamp() Vec4 {
	return Vec4{R: clamp01(v.R), G: clamp01(v.G), B: clamp01(v.B), A: clamp01(v.A)}
}

// Opaque returns v with alpha set to 1.
func (v Vec4) Opaque() Vec4 {
	v.A = 1
	return v
}

func clamp[T constraints.Float | constraints.Integer](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clamp01(v float32) float32 {
	return clamp(v, 0, 1)
}
