package blend

import (
	"errors"
	"math"
	"testing"

	"github.com/gogpu/paint/memory"
	"github.com/gogpu/paint/pixel"
)

func approxVec(a, b pixel.Vec4, eps float64) bool {
	return math.Abs(float64(a.R-b.R)) <= eps &&
		math.Abs(float64(a.G-b.G)) <= eps &&
		math.Abs(float64(a.B-b.B)) <= eps &&
		math.Abs(float64(a.A-b.A)) <= eps
}

var (
	black = pixel.Vec4{A: 1}
	white = pixel.Vec4{R: 1, G: 1, B: 1, A: 1}
	red   = pixel.Vec4{R: 1, A: 1}
	blue  = pixel.Vec4{B: 1, A: 1}
	transparent = pixel.Vec4{}
)

func TestBlendAmounts(t *testing.T) {
	b := NewPixelBlender(pixel.RGBA32, Normal, SrcOver, memory.NewAllocator())

	bg := []byte{0, 0, 0, 255, 0, 0, 0, 255, 0, 0, 0, 255, 0, 0, 0, 255}
	src := []byte{255, 255, 255, 255, 255, 255, 255, 255, 255, 255, 255, 255, 255, 255, 255, 255}
	dst := make([]byte, len(bg))

	if err := b.Blend(dst, bg, src, []float32{1, 0.5, 0, 0.25}); err != nil {
		t.Fatal(err)
	}
	want := []byte{255, 255, 255, 255, 128, 128, 128, 255, 0, 0, 0, 255, 64, 64, 64, 255}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("dst = %v, want %v", dst, want)
		}
	}
}

func TestBlendZeroAmountKeepsBackground(t *testing.T) {
	for _, f := range pixel.Formats() {
		t.Run(f.Name(), func(t *testing.T) {
			n := 8
			bg := make([]byte, n*f.BytesPerPixel())
			src := make([]byte, len(bg))
			vs := make([]pixel.Vec4, n)
			for i := range vs {
				vs[i] = pixel.Vec4{R: float32(i) / 7, G: 0.3, B: 1 - float32(i)/7, A: 1}
			}
			f.FromVector(vs, bg, pixel.Scale)
			for i := range vs {
				vs[i] = white
			}
			f.FromVector(vs, src, pixel.Scale)

			dst := make([]byte, len(bg))
			b := NewPixelBlender(f, Multiply, SrcOver, nil)
			if err := b.Blend(dst, bg, src, make([]float32, n)); err != nil {
				t.Fatal(err)
			}
			for i := range bg {
				if dst[i] != bg[i] {
					t.Fatalf("byte %d = %d, want %d", i, dst[i], bg[i])
				}
			}
		})
	}
}

func TestBlendInPlace(t *testing.T) {
	b := NewPixelBlender(pixel.BGRA32, Normal, SrcOver, nil)
	row := []byte{0, 0, 255, 255} // red in BGRA
	src := []byte{255, 0, 0, 255} // blue in BGRA
	if err := b.Blend(row, row, src, []float32{1}); err != nil {
		t.Fatal(err)
	}
	if row[0] != 255 || row[2] != 0 {
		t.Errorf("row = %v, want blue", row)
	}
}

func TestBlendLengthMismatchPanics(t *testing.T) {
	b := NewPixelBlender(pixel.RGBA32, Normal, SrcOver, nil)
	defer func() {
		if recover() == nil {
			t.Error("Blend with mismatched spans should panic")
		}
	}()
	_ = b.Blend(make([]byte, 8), make([]byte, 8), make([]byte, 4), []float32{1, 1})
}

func TestBlendAllocationLimit(t *testing.T) {
	alloc := memory.NewAllocator(memory.WithAllocationLimit(64))
	b := NewPixelBlender(pixel.RGBA32, Normal, SrcOver, alloc)

	n := 5 // 80 bytes of vectors
	row := make([]byte, n*4)
	err := b.Blend(row, row, row, make([]float32, n))
	if !errors.Is(err, memory.ErrAllocationLimit) {
		t.Errorf("error = %v, want ErrAllocationLimit", err)
	}
	if st := alloc.Stats(); st.Outstanding != 0 {
		t.Errorf("Outstanding = %d after failed blend", st.Outstanding)
	}
}

func TestBlendReleasesScratch(t *testing.T) {
	alloc := memory.NewAllocator()
	b := NewPixelBlender(pixel.RGBA64, Screen, SrcOver, alloc)
	row := make([]byte, 16*8)
	for i := 0; i < 3; i++ {
		if err := b.Blend(row, row, row, make([]float32, 16)); err != nil {
			t.Fatal(err)
		}
	}
	if st := alloc.Stats(); st.Outstanding != 0 {
		t.Errorf("Outstanding = %d, want 0", st.Outstanding)
	}
}

func TestColorModes(t *testing.T) {
	gray := pixel.Vec4{R: 0.5, G: 0.5, B: 0.5, A: 1}
	dark := pixel.Vec4{R: 0.25, G: 0.25, B: 0.25, A: 1}

	tests := []struct {
		mode    ColorMode
		bg, src pixel.Vec4
		want    pixel.Vec4
	}{
		{Normal, gray, dark, dark},
		{Multiply, gray, dark, pixel.Vec4{R: 0.125, G: 0.125, B: 0.125, A: 1}},
		{Add, gray, gray, white},
		{Subtract, gray, dark, dark},
		{Screen, gray, gray, pixel.Vec4{R: 0.75, G: 0.75, B: 0.75, A: 1}},
		{Darken, gray, dark, dark},
		{Lighten, gray, dark, gray},
		{HardLight, gray, dark, pixel.Vec4{R: 0.25, G: 0.25, B: 0.25, A: 1}},
		{Overlay, dark, gray, pixel.Vec4{R: 0.25, G: 0.25, B: 0.25, A: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			b := NewPixelBlender(pixel.RGBAF32, tt.mode, SrcOver, nil)
			dst := make([]pixel.Vec4, 1)
			b.BlendVectors(dst, []pixel.Vec4{tt.bg}, []pixel.Vec4{tt.src}, []float32{1})
			if !approxVec(dst[0], tt.want, 1e-5) {
				t.Errorf("got %+v, want %+v", dst[0], tt.want)
			}
		})
	}
}

func TestAlphaModes(t *testing.T) {
	tests := []struct {
		mode    AlphaMode
		bg, src pixel.Vec4
		want    pixel.Vec4
	}{
		{SrcOver, red, blue, blue},
		{SrcOver, red, transparent, red},
		{SrcOver, transparent, blue, blue},
		{Src, red, transparent, transparent},
		{Dest, red, blue, red},
		{DestOver, red, blue, red},
		{DestOver, transparent, blue, blue},
		{Clear, red, blue, transparent},
		{SrcIn, red, blue, blue},
		{SrcIn, transparent, blue, pixel.Vec4{B: 1}},
		{SrcOut, transparent, blue, blue},
		{SrcOut, red, blue, pixel.Vec4{B: 1}},
		{DestIn, red, blue, red},
		{DestOut, red, transparent, red},
		{SrcAtop, red, blue, blue},
		{SrcAtop, transparent, blue, transparent},
		{DestAtop, red, blue, red},
		{Xor, red, transparent, red},
		{Xor, transparent, blue, blue},
		{Xor, red, blue, transparent},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			b := NewPixelBlender(pixel.RGBAF32, Normal, tt.mode, nil)
			dst := make([]pixel.Vec4, 1)
			b.BlendVectors(dst, []pixel.Vec4{tt.bg}, []pixel.Vec4{tt.src}, []float32{1})
			got := dst[0]
			if tt.want.A == 0 {
				if got.A > 1e-5 {
					t.Errorf("alpha = %v, want transparent", got.A)
				}
				return
			}
			if !approxVec(got, tt.want, 1e-5) {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPartialCoverageOverTransparent(t *testing.T) {
	b := NewPixelBlender(pixel.RGBAF32, Normal, SrcOver, nil)
	dst := make([]pixel.Vec4, 1)
	b.BlendVectors(dst, []pixel.Vec4{transparent}, []pixel.Vec4{red}, []float32{0.5})

	want := pixel.Vec4{R: 1, A: 0.5}
	if !approxVec(dst[0], want, 1e-6) {
		t.Errorf("got %+v, want %+v", dst[0], want)
	}
}

func TestParseModes(t *testing.T) {
	for m := Normal; m < colorModeCount; m++ {
		got, err := ParseColorMode(m.String())
		if err != nil || got != m {
			t.Errorf("ParseColorMode(%q) = %v, %v", m.String(), got, err)
		}
	}
	for m := SrcOver; m < alphaModeCount; m++ {
		got, err := ParseAlphaMode(" " + m.String() + " ")
		if err != nil || got != m {
			t.Errorf("ParseAlphaMode(%q) = %v, %v", m.String(), got, err)
		}
	}
	if _, err := ParseColorMode("dodge"); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("ParseColorMode(dodge) error = %v", err)
	}
	if _, err := ParseAlphaMode("plus"); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("ParseAlphaMode(plus) error = %v", err)
	}
	if s := ColorMode(200).String(); s != "ColorMode(200)" {
		t.Errorf("String() = %q", s)
	}
}
