package paint

import (
	"image"

	"github.com/gogpu/paint/pixel"
)

// Brush describes what a fill paints with.
// This is a sealed interface: only types in this package implement it.
//
// Supported brush types:
//   - SolidBrush: a single color
//   - FuncBrush: a user-defined color function (see brush_custom.go)
//
// A brush is an immutable descriptor. Compositing state lives in the
// Applicator it creates for one fill.
type Brush interface {
	// brushMarker seals the interface.
	brushMarker()

	// CreateApplicator binds the brush to target for one fill. Spans passed
	// to Apply are clipped to region intersected with the target bounds; an
	// empty region means the whole target. Pixels of a span that fall
	// outside a region narrower than the span are dropped, not deferred.
	// A nil cfg uses DefaultConfiguration. The caller must Release the
	// applicator.
	CreateApplicator(cfg *Configuration, opts GraphicsOptions, target *pixel.Buffer, region image.Rectangle) (Applicator, error)
}

// SolidBrush is a single-color brush.
type SolidBrush struct {
	// Color is the solid color of this brush.
	Color Color
}

func (SolidBrush) brushMarker() {}

// Solid creates a SolidBrush from a color.
//
// Example:
//
//	brush := paint.Solid(paint.Red)
func Solid(c Color) SolidBrush {
	return SolidBrush{Color: c}
}

// SolidRGB creates an opaque SolidBrush from RGB components (0-1 range).
func SolidRGB(r, g, b float32) SolidBrush {
	return SolidBrush{Color: RGB(r, g, b)}
}

// SolidHex creates a SolidBrush from a hex color string.
// Supports formats: "RGB", "RGBA", "RRGGBB", "RRGGBBAA", with optional '#'.
//
// Example:
//
//	brush := paint.SolidHex("#FF5733")
func SolidHex(hex string) SolidBrush {
	return SolidBrush{Color: Hex(hex)}
}

// WithAlpha returns a copy of b with the given alpha.
func (b SolidBrush) WithAlpha(alpha float32) SolidBrush {
	return SolidBrush{Color: b.Color.WithAlpha(alpha)}
}

// CreateApplicator implements Brush. The brush color is encoded once into a
// row as wide as the target and reused for every span.
func (b SolidBrush) CreateApplicator(cfg *Configuration, opts GraphicsOptions, target *pixel.Buffer, region image.Rectangle) (Applicator, error) {
	base, err := newApplicatorBase("solid", cfg, opts, target, region)
	if err != nil {
		return nil, err
	}

	f := target.Format()
	bpp := f.BytesPerPixel()
	colors, err := base.alloc.Bytes(target.Width() * bpp)
	if err != nil {
		return nil, base.allocFailed("color row", err)
	}

	row := colors.Slice()
	px := b.Color.ToPixel(f)
	for i := 0; i < len(row); i += bpp {
		copy(row[i:i+bpp], px)
	}

	base.log("applicator created", "color", b.Color)
	return &solidApplicator{applicatorBase: base, colors: colors}, nil
}
