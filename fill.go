package paint

import (
	"fmt"
	"image"

	"golang.org/x/image/vector"

	"github.com/gogpu/paint/blend"
	"github.com/gogpu/paint/pixel"
)

// FillPath fills path on target with brush.
//
// The path is rasterized into a coverage mask covering its bounds clipped
// to the target, and every mask row is handed to the brush's applicator as
// one scanline. A nil cfg uses DefaultConfiguration.
func FillPath(cfg *Configuration, opts GraphicsOptions, target *pixel.Buffer, brush Brush, path *Path) error {
	if target == nil {
		return ErrNilTarget
	}
	if brush == nil {
		return ErrNilBrush
	}
	if path == nil || path.Empty() {
		return nil
	}
	cfg = orDefault(cfg)

	bounds := path.Bounds().Intersect(target.Bounds())
	if bounds.Empty() {
		return nil
	}
	w, h := bounds.Dx(), bounds.Dy()

	z := vector.NewRasterizer(w, h)
	path.rasterize(z, bounds.Min)
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	return applyRows(cfg, opts, target, brush, bounds, func(y int, coverage []float32) {
		row := mask.Pix[(y-bounds.Min.Y)*mask.Stride:]
		for i := range coverage {
			coverage[i] = float32(row[i]) / 255
		}
	})
}

// FillRect fills rect on target with brush at full coverage.
func FillRect(cfg *Configuration, opts GraphicsOptions, target *pixel.Buffer, brush Brush, rect image.Rectangle) error {
	if target == nil {
		return ErrNilTarget
	}
	if brush == nil {
		return ErrNilBrush
	}
	cfg = orDefault(cfg)

	bounds := rect.Intersect(target.Bounds())
	if bounds.Empty() {
		return nil
	}
	filled := false
	return applyRows(cfg, opts, target, brush, bounds, func(_ int, coverage []float32) {
		if filled {
			return
		}
		for i := range coverage {
			coverage[i] = 1
		}
		filled = true
	})
}

// Clear replaces every pixel of target with c.
func Clear(cfg *Configuration, target *pixel.Buffer, c Color) error {
	if target == nil {
		return ErrNilTarget
	}
	opts := NewGraphicsOptions(WithAlphaComposition(blend.Src))
	return FillRect(cfg, opts, target, Solid(c), target.Bounds())
}

// applyRows drives one applicator over bounds, top to bottom. coverage
// fills the scanline for row y.
func applyRows(cfg *Configuration, opts GraphicsOptions, target *pixel.Buffer, brush Brush, bounds image.Rectangle, coverage func(y int, scanline []float32)) error {
	app, err := brush.CreateApplicator(cfg, opts, target, bounds)
	if err != nil {
		return err
	}
	defer app.Release()

	buf, err := cfg.allocator().Floats(bounds.Dx())
	if err != nil {
		return fmt.Errorf("paint: coverage scanline: %w", err)
	}
	defer buf.Release()
	scanline := buf.Slice()

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		coverage(y, scanline)
		if err := app.Apply(scanline, bounds.Min.X, y); err != nil {
			return err
		}
	}
	return nil
}
