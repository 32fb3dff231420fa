package paint

import (
	"image"
	"math"

	"github.com/gogpu/paint/pixel"
)

// ColorMatrix is a 4x5 color transformation in row-major order:
//
//	[R']   [m00 m01 m02 m03 m04]   [R]
//	[G'] = [m10 m11 m12 m13 m14] * [G]
//	[B']   [m20 m21 m22 m23 m24]   [B]
//	[A']   [m30 m31 m32 m33 m34]   [A]
//	                               [1]
//
// Channels are straight (unpremultiplied) and scaled to [0, 1], so the
// fifth column is an offset in the same range.
type ColorMatrix [20]float32

// IdentityMatrix leaves colors unchanged.
func IdentityMatrix() ColorMatrix {
	return ColorMatrix{
		1, 0, 0, 0, 0,
		0, 1, 0, 0, 0,
		0, 0, 1, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// BrightnessMatrix scales RGB by factor: 0 is black, 1 unchanged.
func BrightnessMatrix(factor float32) ColorMatrix {
	return ColorMatrix{
		factor, 0, 0, 0, 0,
		0, factor, 0, 0, 0,
		0, 0, factor, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// ContrastMatrix scales RGB around mid-gray: 0 is flat gray, 1 unchanged.
func ContrastMatrix(factor float32) ColorMatrix {
	offset := 0.5 * (1 - factor)
	return ColorMatrix{
		factor, 0, 0, 0, offset,
		0, factor, 0, 0, offset,
		0, 0, factor, 0, offset,
		0, 0, 0, 1, 0,
	}
}

// Rec. 709 luma weights.
const (
	lumaR = 0.2126
	lumaG = 0.7152
	lumaB = 0.0722
)

// SaturationMatrix blends between luma (0) and the original color (1).
func SaturationMatrix(factor float32) ColorMatrix {
	inv := 1 - factor
	return ColorMatrix{
		lumaR*inv + factor, lumaG * inv, lumaB * inv, 0, 0,
		lumaR * inv, lumaG*inv + factor, lumaB * inv, 0, 0,
		lumaR * inv, lumaG * inv, lumaB*inv + factor, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// GrayscaleMatrix replaces RGB with Rec. 709 luma.
func GrayscaleMatrix() ColorMatrix {
	return SaturationMatrix(0)
}

// SepiaMatrix applies a sepia tone.
func SepiaMatrix() ColorMatrix {
	return ColorMatrix{
		0.393, 0.769, 0.189, 0, 0,
		0.349, 0.686, 0.168, 0, 0,
		0.272, 0.534, 0.131, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// InvertMatrix inverts RGB.
func InvertMatrix() ColorMatrix {
	return ColorMatrix{
		-1, 0, 0, 0, 1,
		0, -1, 0, 0, 1,
		0, 0, -1, 0, 1,
		0, 0, 0, 1, 0,
	}
}

// OpacityMatrix multiplies alpha by factor.
func OpacityMatrix(factor float32) ColorMatrix {
	return ColorMatrix{
		1, 0, 0, 0, 0,
		0, 1, 0, 0, 0,
		0, 0, 1, 0, 0,
		0, 0, 0, factor, 0,
	}
}

// HueRotateMatrix rotates hue by degrees, keeping luma.
func HueRotateMatrix(degrees float32) ColorMatrix {
	rad := float64(degrees) * math.Pi / 180
	cos := float32(math.Cos(rad))
	sin := float32(math.Sin(rad))

	return ColorMatrix{
		lumaR + cos*(1-lumaR) - sin*lumaR, lumaG - cos*lumaG - sin*lumaG, lumaB - cos*lumaB + sin*(1-lumaB), 0, 0,
		lumaR - cos*lumaR + sin*0.143, lumaG + cos*(1-lumaG) + sin*0.140, lumaB - cos*lumaB - sin*0.283, 0, 0,
		lumaR - cos*lumaR - sin*(1-lumaR), lumaG - cos*lumaG + sin*lumaG, lumaB + cos*(1-lumaB) + sin*lumaB, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// Then returns the matrix that applies m first and next second.
func (m ColorMatrix) Then(next ColorMatrix) ColorMatrix {
	var r ColorMatrix
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += next[row*5+k] * m[k*5+col]
			}
			r[row*5+col] = sum
		}
		r[row*5+4] = next[row*5]*m[4] + next[row*5+1]*m[9] +
			next[row*5+2]*m[14] + next[row*5+3]*m[19] + next[row*5+4]
	}
	return r
}

// Transform applies m to one straight, scaled vector.
func (m *ColorMatrix) Transform(v pixel.Vec4) pixel.Vec4 {
	return pixel.Vec4{
		R: m[0]*v.R + m[1]*v.G + m[2]*v.B + m[3]*v.A + m[4],
		G: m[5]*v.R + m[6]*v.G + m[7]*v.B + m[8]*v.A + m[9],
		B: m[10]*v.R + m[11]*v.G + m[12]*v.B + m[13]*v.A + m[14],
		A: m[15]*v.R + m[16]*v.G + m[17]*v.B + m[18]*v.A + m[19],
	}
}

// ApplyColorMatrix transforms every pixel of bounds in buf by m, in
// parallel row intervals. Integer encodings clamp the result on write.
func ApplyColorMatrix(cfg *Configuration, buf *pixel.Buffer, bounds image.Rectangle, m ColorMatrix) error {
	return ProcessPixelRowsAsVector4(cfg, buf, bounds, pixel.Scale, func(_ int, row []pixel.Vec4) {
		for i := range row {
			row[i] = m.Transform(row[i])
		}
	})
}
