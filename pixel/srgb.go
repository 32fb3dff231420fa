package pixel

import "math"

// srgb8ToLinear maps every 8-bit sRGB level to linear light. Values decoded
// from 8-bit encodings hit this table instead of math.Pow.
var srgb8ToLinear [256]float32

func init() {
	for i := range srgb8ToLinear {
		srgb8ToLinear[i] = srgbToLinear64(float64(i) / 255)
	}
}

func srgbToLinear64(s float64) float32 {
	if s <= 0.04045 {
		return float32(s / 12.92)
	}
	return float32(math.Pow((s+0.055)/1.055, 2.4))
}

// SRGB8ToLinear converts an 8-bit sRGB level to linear light.
func SRGB8ToLinear(b uint8) float32 {
	return srgb8ToLinear[b]
}

// SRGBToLinear converts an sRGB component to linear light.
// Formula: if s <= 0.04045: s/12.92; else: pow((s+0.055)/1.055, 2.4)
func SRGBToLinear(s float32) float32 {
	if s >= 0 && s <= 1 {
		if i := int(s*255 + 0.5); float32(i)/255 == s {
			return srgb8ToLinear[i]
		}
	}
	return srgbToLinear64(float64(s))
}

// LinearToSRGB converts a linear component back to sRGB.
// Formula: if l <= 0.0031308: l*12.92; else: 1.055*pow(l, 1/2.4)-0.055
func LinearToSRGB(l float32) float32 {
	if l <= 0.0031308 {
		return l * 12.92
	}
	return 1.055*float32(math.Pow(float64(l), 1.0/2.4)) - 0.055
}
