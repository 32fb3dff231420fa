package paint

import (
	"image"
	"math"

	"github.com/gogpu/paint/memory"
	"github.com/gogpu/paint/pixel"
)

// ColorFunc returns the brush color at a position in target pixel
// coordinates. Pixel (x, y) is sampled at its center (x+0.5, y+0.5).
type ColorFunc func(x, y float32) Color

// FuncBrush is a brush with a user-defined color function.
// It allows procedural patterns without a dedicated brush type.
//
// Example:
//
//	checker := paint.NewFuncBrush(func(x, y float32) paint.Color {
//	    if (int(x/10)+int(y/10))%2 == 0 {
//	        return paint.Black
//	    }
//	    return paint.White
//	})
type FuncBrush struct {
	// Func is the color function that determines the color at each point.
	Func ColorFunc

	// Name is an optional identifier for debugging and logging.
	Name string
}

func (FuncBrush) brushMarker() {}

// NewFuncBrush creates a FuncBrush from a color function.
func NewFuncBrush(fn ColorFunc) FuncBrush {
	return FuncBrush{Func: fn}
}

// WithName returns a copy of b with the given name.
func (b FuncBrush) WithName(name string) FuncBrush {
	return FuncBrush{Func: b.Func, Name: name}
}

// ColorAt returns the color at (x, y). A nil Func paints Transparent.
func (b FuncBrush) ColorAt(x, y float32) Color {
	if b.Func == nil {
		return Transparent
	}
	return b.Func(x, y)
}

// CreateApplicator implements Brush. The applicator owns one row of source
// vectors and one encoded row; both are refilled for every span.
func (b FuncBrush) CreateApplicator(cfg *Configuration, opts GraphicsOptions, target *pixel.Buffer, region image.Rectangle) (Applicator, error) {
	name := b.Name
	if name == "" {
		name = "func"
	}
	base, err := newApplicatorBase(name, cfg, opts, target, region)
	if err != nil {
		return nil, err
	}

	w := target.Width()
	vectors, err := base.alloc.Vectors(w)
	if err != nil {
		return nil, base.allocFailed("source vectors", err)
	}
	encoded, err := base.alloc.Bytes(w * target.Format().BytesPerPixel())
	if err != nil {
		vectors.Release()
		return nil, base.allocFailed("source row", err)
	}

	base.log("applicator created")
	return &funcApplicator{applicatorBase: base, brush: b, vectors: vectors, encoded: encoded}, nil
}

type funcApplicator struct {
	applicatorBase
	brush   FuncBrush
	vectors *memory.Buffer[pixel.Vec4]
	encoded *memory.Buffer[byte]
}

func (a *funcApplicator) Apply(coverage []float32, x, y int) error {
	x0, x1, cov, ok := a.span(coverage, x, y)
	if !ok {
		return nil
	}
	n := x1 - x0
	vs := a.vectors.Slice()[:n]
	cy := float32(y) + 0.5
	for i := range vs {
		vs[i] = a.brush.ColorAt(float32(x0+i)+0.5, cy).Vector()
	}

	f := a.target.Format()
	src := a.encoded.Slice()[:n*f.BytesPerPixel()]
	f.FromVector(vs, src, pixel.Scale)
	return a.blendSpan(y, x0, x1, cov, src)
}

func (a *funcApplicator) Release() {
	if a.markReleased() {
		a.vectors.Release()
		a.encoded.Release()
	}
}

// HorizontalRamp blends c0 to c1 from x0 to x1, clamped outside.
//
// A ramp is a two-color closed-form ColorFunc. It has no stops, spread modes
// or color-space options; multi-stop gradients are out of scope for this
// package and belong in a dedicated brush built on FuncBrush.
//
// Example:
//
//	ramp := paint.HorizontalRamp(paint.Red, paint.Blue, 0, 100)
func HorizontalRamp(c0, c1 Color, x0, x1 float32) FuncBrush {
	return FuncBrush{
		Func: func(x, _ float32) Color {
			return c0.Lerp(c1, rampT(x, x0, x1))
		},
		Name: "horizontal_ramp",
	}
}

// VerticalRamp is HorizontalRamp along y.
func VerticalRamp(c0, c1 Color, y0, y1 float32) FuncBrush {
	return FuncBrush{
		Func: func(_, y float32) Color {
			return c0.Lerp(c1, rampT(y, y0, y1))
		},
		Name: "vertical_ramp",
	}
}

// Checkerboard alternates c0 and c1 in squares of the given size.
func Checkerboard(c0, c1 Color, size float32) FuncBrush {
	if size <= 0 {
		size = 1
	}
	return FuncBrush{
		Func: func(x, y float32) Color {
			xi := int(math.Floor(float64(x / size)))
			yi := int(math.Floor(float64(y / size)))
			if (xi+yi)%2 == 0 {
				return c0
			}
			return c1
		},
		Name: "checkerboard",
	}
}

// Stripes alternates c0 and c1 in bands of the given width, rotated by
// angle radians. Angle 0 gives vertical stripes.
func Stripes(c0, c1 Color, width, angle float32) FuncBrush {
	if width <= 0 {
		width = 1
	}
	cos := float32(math.Cos(float64(angle)))
	sin := float32(math.Sin(float64(angle)))

	return FuncBrush{
		Func: func(x, y float32) Color {
			rx := x*cos + y*sin
			stripe := int(math.Floor(float64(rx / width)))
			if stripe%2 == 0 {
				return c0
			}
			return c1
		},
		Name: "stripes",
	}
}

// rampT maps v from [a, b] to [0, 1], clamped. A degenerate ramp is a step
// at a.
func rampT(v, a, b float32) float32 {
	if a == b {
		if v < a {
			return 0
		}
		return 1
	}
	return min(max((v-a)/(b-a), 0), 1)
}
