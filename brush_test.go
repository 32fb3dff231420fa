package paint

import (
	"errors"
	"image"
	"testing"

	"github.com/gogpu/paint/blend"
	"github.com/gogpu/paint/memory"
	"github.com/gogpu/paint/pixel"
)

// newRow returns a width x 1 RGBA32 buffer filled with c.
func newRow(t *testing.T, width int, c Color) *pixel.Buffer {
	t.Helper()
	buf, err := pixel.NewBuffer(width, 1, pixel.RGBA32)
	if err != nil {
		t.Fatal(err)
	}
	buf.Fill(c.Vector())
	return buf
}

func applyOnce(t *testing.T, b Brush, opts GraphicsOptions, target *pixel.Buffer, coverage []float32, x, y int) {
	t.Helper()
	app, err := b.CreateApplicator(nil, opts, target, image.Rectangle{})
	if err != nil {
		t.Fatal(err)
	}
	defer app.Release()
	if err := app.Apply(coverage, x, y); err != nil {
		t.Fatal(err)
	}
}

func TestSolidApplicatorScenario(t *testing.T) {
	row := newRow(t, 4, Black)
	applyOnce(t, Solid(White), DefaultGraphicsOptions(), row, []float32{1, 0.5, 0, 1}, 0, 0)

	want := []byte{
		255, 255, 255, 255,
		128, 128, 128, 255,
		0, 0, 0, 255,
		255, 255, 255, 255,
	}
	if got := row.Row(0); string(got) != string(want) {
		t.Errorf("row = %v, want %v", got, want)
	}
}

func TestSolidApplicatorFullCoverage(t *testing.T) {
	for _, f := range pixel.Formats() {
		t.Run(f.Name(), func(t *testing.T) {
			for _, n := range []int{1, 7, 64} {
				buf, _ := pixel.NewBuffer(n, 1, f)
				buf.Fill(pixel.Vec4{R: 0.3, G: 0.6, B: 0.9, A: 1})
				c := RGB(1, 0.5, 0)

				coverage := make([]float32, n)
				for i := range coverage {
					coverage[i] = 1
				}
				applyOnce(t, Solid(c), DefaultGraphicsOptions(), buf, coverage, 0, 0)

				want := c.ToPixel(f)
				bpp := f.BytesPerPixel()
				got := buf.Row(0)
				for i := 0; i < n; i++ {
					if string(got[i*bpp:(i+1)*bpp]) != string(want) {
						t.Fatalf("n=%d pixel %d = %v, want %v", n, i, got[i*bpp:(i+1)*bpp], want)
					}
				}
			}
		})
	}
}

func TestSolidApplicatorZeroCoverageUnchanged(t *testing.T) {
	for _, f := range pixel.Formats() {
		t.Run(f.Name(), func(t *testing.T) {
			buf, _ := pixel.NewBuffer(9, 1, f)
			for x := 0; x < 9; x++ {
				buf.SetPixel(x, 0, pixel.Vec4{R: float32(x) / 8, G: 0.25, B: 0.75, A: 1})
			}
			before := append([]byte(nil), buf.Row(0)...)

			opts := NewGraphicsOptions(WithColorBlending(blend.Multiply), WithBlendPercentage(0.7))
			applyOnce(t, Solid(Magenta), opts, buf, make([]float32, 9), 0, 0)

			if string(buf.Row(0)) != string(before) {
				t.Errorf("row changed:\n got %v\nwant %v", buf.Row(0), before)
			}
		})
	}
}

func TestSolidApplicatorBlendPercentage(t *testing.T) {
	coverageHalf := newRow(t, 1, Black)
	applyOnce(t, Solid(White), DefaultGraphicsOptions(), coverageHalf, []float32{0.5}, 0, 0)

	percentHalf := newRow(t, 1, Black)
	applyOnce(t, Solid(White), NewGraphicsOptions(WithBlendPercentage(0.5)), percentHalf, []float32{1}, 0, 0)

	if string(coverageHalf.Row(0)) != string(percentHalf.Row(0)) {
		t.Errorf("coverage 0.5 gives %v, percentage 0.5 gives %v", coverageHalf.Row(0), percentHalf.Row(0))
	}
	if got := percentHalf.Row(0)[0]; got != 128 {
		t.Errorf("channel = %d, want 128", got)
	}
}

func TestSolidApplicatorAntialiasOff(t *testing.T) {
	row := newRow(t, 4, Black)
	opts := NewGraphicsOptions(WithAntialias(false))
	applyOnce(t, Solid(White), opts, row, []float32{0.2, 0.5, 0.49, 0.9}, 0, 0)

	want := []byte{0, 255, 0, 255}
	for i, w := range want {
		if got := row.Row(0)[i*4]; got != w {
			t.Errorf("pixel %d = %d, want %d", i, got, w)
		}
	}
}

func TestSolidApplicatorClipping(t *testing.T) {
	tests := []struct {
		name     string
		coverage []float32
		x, y     int
		want     []byte // red channel per pixel
	}{
		{"exact", []float32{1, 1, 1, 1}, 0, 0, []byte{255, 255, 255, 255}},
		{"longer than row", []float32{1, 1, 1, 1, 1, 1}, 2, 0, []byte{0, 0, 255, 255}},
		{"shorter than row", []float32{1}, 1, 0, []byte{0, 255, 0, 0}},
		{"row below", []float32{1, 1}, 0, 1, []byte{0, 0, 0, 0}},
		{"row above", []float32{1, 1}, 0, -1, []byte{0, 0, 0, 0}},
		{"x past end", []float32{1, 1}, 4, 0, []byte{0, 0, 0, 0}},
		{"negative x", []float32{1, 1}, -1, 0, []byte{255, 0, 0, 0}},
		{"overhangs left", []float32{1, 1, 1, 1}, -2, 0, []byte{255, 255, 0, 0}},
		{"entirely left", []float32{1, 1}, -2, 0, []byte{0, 0, 0, 0}},
		{"empty coverage", nil, 0, 0, []byte{0, 0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := newRow(t, 4, Black)
			applyOnce(t, Solid(Red), DefaultGraphicsOptions(), row, tt.coverage, tt.x, tt.y)
			for i, w := range tt.want {
				if got := row.Row(0)[i*4]; got != w {
					t.Errorf("pixel %d red = %d, want %d", i, got, w)
				}
			}
		})
	}
}

func TestApplicatorRegionClip(t *testing.T) {
	buf, _ := pixel.NewBuffer(4, 2, pixel.RGBA32)
	buf.Fill(Black.Vector())

	app, err := Solid(White).CreateApplicator(nil, DefaultGraphicsOptions(), buf, image.Rect(1, 1, 3, 2))
	if err != nil {
		t.Fatal(err)
	}
	defer app.Release()

	full := []float32{1, 1, 1, 1}
	for y := 0; y < 2; y++ {
		if err := app.Apply(full, 0, y); err != nil {
			t.Fatal(err)
		}
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			inside := y == 1 && x >= 1 && x < 3
			got := buf.PixelAt(x, y).R
			if (got == 1) != inside {
				t.Errorf("pixel (%d,%d) red = %v, inside region %v", x, y, got, inside)
			}
		}
	}
}

func TestSolidApplicatorSubBuffer(t *testing.T) {
	buf, _ := pixel.NewBuffer(4, 4, pixel.RGBA32)
	buf.Fill(Black.Vector())
	view := buf.Sub(image.Rect(1, 1, 3, 3))

	applyOnce(t, Solid(Green), DefaultGraphicsOptions(), view, []float32{1, 1, 1}, 0, 1)

	for x := 0; x < 4; x++ {
		want := float32(0)
		if x == 1 || x == 2 {
			want = 1
		}
		if got := buf.PixelAt(x, 2).G; got != want {
			t.Errorf("pixel (%d,2) green = %v, want %v", x, got, want)
		}
	}
	if buf.PixelAt(1, 1).G != 0 {
		t.Error("row outside the applied scanline changed")
	}
}

func TestSolidApplicatorTranslucentSrc(t *testing.T) {
	row := newRow(t, 1, White)
	c := RGBA(1, 0, 0, 0.5)
	applyOnce(t, Solid(c), NewGraphicsOptions(WithAlphaComposition(blend.Src)), row, []float32{1}, 0, 0)

	if got, want := row.Row(0), c.ToPixel(pixel.RGBA32); string(got) != string(want) {
		t.Errorf("pixel = %v, want %v", got, want)
	}
}

func TestApplicatorDoubleRelease(t *testing.T) {
	alloc := memory.NewAllocator()
	cfg := NewConfiguration(WithAllocator(alloc))
	row := newRow(t, 8, Black)

	app, err := Solid(White).CreateApplicator(cfg, DefaultGraphicsOptions(), row, image.Rectangle{})
	if err != nil {
		t.Fatal(err)
	}
	app.Release()
	app.Release()

	if st := alloc.Stats(); st.Outstanding != 0 || st.Pooled != 1 {
		t.Errorf("Stats() = %+v, want the color row pooled exactly once", st)
	}

	// The pooled color row must be reusable by the next applicator.
	next, err := Solid(Blue).CreateApplicator(cfg, DefaultGraphicsOptions(), row, image.Rectangle{})
	if err != nil {
		t.Fatal(err)
	}
	defer next.Release()
	if err := next.Apply([]float32{1}, 0, 0); err != nil {
		t.Fatal(err)
	}
	if got := row.PixelAt(0, 0); got != Blue.Vector() {
		t.Errorf("pixel = %+v, want blue", got)
	}
}

func TestApplyAfterReleasePanics(t *testing.T) {
	row := newRow(t, 2, Black)
	app, _ := Solid(White).CreateApplicator(nil, DefaultGraphicsOptions(), row, image.Rectangle{})
	app.Release()

	defer func() {
		r := recover()
		if err, ok := r.(error); !ok || !errors.Is(err, ErrApplicatorReleased) {
			t.Errorf("recovered %v, want ErrApplicatorReleased", r)
		}
	}()
	_ = app.Apply([]float32{1}, 0, 0)
}

func TestApplicatorAllocationLimit(t *testing.T) {
	// 64 bytes fit an 8-pixel RGBA32 color row and 4 blend vectors.
	alloc := memory.NewAllocator(memory.WithAllocationLimit(64))
	cfg := NewConfiguration(WithAllocator(alloc))

	wide, _ := pixel.NewBuffer(32, 1, pixel.RGBA32) // 128-byte color row
	if _, err := Solid(White).CreateApplicator(cfg, DefaultGraphicsOptions(), wide, image.Rectangle{}); !errors.Is(err, memory.ErrAllocationLimit) {
		t.Errorf("CreateApplicator error = %v, want ErrAllocationLimit", err)
	}

	narrow, _ := pixel.NewBuffer(8, 1, pixel.RGBA32) // 32-byte color row, 128-byte vector rows
	app, err := Solid(White).CreateApplicator(cfg, DefaultGraphicsOptions(), narrow, image.Rectangle{})
	if err != nil {
		t.Fatal(err)
	}
	defer app.Release()
	if err := app.Apply(make([]float32, 8), 0, 0); !errors.Is(err, memory.ErrAllocationLimit) {
		t.Errorf("Apply error = %v, want ErrAllocationLimit", err)
	}
	if err := app.Apply(make([]float32, 4), 0, 0); err != nil {
		t.Errorf("Apply within limit = %v", err)
	}
	if st := alloc.Stats(); st.Outstanding != 1 {
		t.Errorf("Outstanding = %d, want only the color row", st.Outstanding)
	}
}

func TestCreateApplicatorErrors(t *testing.T) {
	if _, err := Solid(Red).CreateApplicator(nil, DefaultGraphicsOptions(), nil, image.Rectangle{}); !errors.Is(err, ErrNilTarget) {
		t.Errorf("nil target error = %v", err)
	}
	row := newRow(t, 1, Black)
	if _, err := Solid(Red).CreateApplicator(nil, NewGraphicsOptions(WithBlendPercentage(2)), row, image.Rectangle{}); !errors.Is(err, ErrInvalidOptions) {
		t.Errorf("invalid options error = %v", err)
	}
}

func TestSolidBrushConstructors(t *testing.T) {
	if b := SolidRGB(1, 0, 0); b.Color != Red {
		t.Errorf("SolidRGB = %+v", b.Color)
	}
	if b := SolidHex("#0000FF"); b.Color != Blue {
		t.Errorf("SolidHex = %+v", b.Color)
	}
	if b := Solid(Red).WithAlpha(0.5); b.Color != RGBA(1, 0, 0, 0.5) {
		t.Errorf("WithAlpha = %+v", b.Color)
	}
}
