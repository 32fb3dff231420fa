package paint

import (
	"context"
	"fmt"
	"image"
	"log/slog"

	"github.com/gogpu/paint/blend"
	"github.com/gogpu/paint/memory"
	"github.com/gogpu/paint/pixel"
)

// Applicator composites a brush into one target, one scanline at a time.
//
// An applicator belongs to a single fill and a single goroutine: the scan
// converter calls Apply for each covered row, then Release. Apply after
// Release panics with ErrApplicatorReleased.
type Applicator interface {
	// Apply blends the brush into row y starting at column x, weighting
	// each pixel by the matching coverage value. Coverage beyond the target
	// or region is ignored. It returns an error only when scratch memory
	// cannot be allocated.
	Apply(coverage []float32, x, y int) error

	// Release returns the applicator's buffers. Calling it again is a no-op.
	Release()
}

// applicatorBase holds what every applicator shares: the clip, the blender
// and the blend-percentage handling.
type applicatorBase struct {
	kind     string
	opts     GraphicsOptions
	target   *pixel.Buffer
	clip     image.Rectangle
	alloc    *memory.Allocator
	blender  blend.PixelBlender
	released bool
}

func newApplicatorBase(kind string, cfg *Configuration, opts GraphicsOptions, target *pixel.Buffer, region image.Rectangle) (applicatorBase, error) {
	if target == nil {
		return applicatorBase{}, ErrNilTarget
	}
	if err := opts.Validate(); err != nil {
		return applicatorBase{}, err
	}
	cfg = orDefault(cfg)

	clip := target.Bounds()
	if !region.Empty() {
		clip = clip.Intersect(region)
	}
	alloc := cfg.allocator()
	return applicatorBase{
		kind:    kind,
		opts:    opts,
		target:  target,
		clip:    clip,
		alloc:   alloc,
		blender: blend.NewPixelBlender(target.Format(), opts.ColorBlending, opts.AlphaComposition, alloc),
	}, nil
}

// span clips a coverage run starting at (x, y). ok is false when nothing
// is left to paint.
func (a *applicatorBase) span(coverage []float32, x, y int) (x0, x1 int, cov []float32, ok bool) {
	if a.released {
		panic(ErrApplicatorReleased)
	}
	if x >= a.target.Width() || y < a.clip.Min.Y || y >= a.clip.Max.Y {
		return 0, 0, nil, false
	}
	x0 = max(x, a.clip.Min.X)
	x1 = min(x+len(coverage), a.clip.Max.X)
	if x1 <= x0 {
		return 0, 0, nil, false
	}
	return x0, x1, coverage[x0-x : x1-x], true
}

// blendSpan composites source over target pixels [x0,x1) of row y.
func (a *applicatorBase) blendSpan(y, x0, x1 int, coverage []float32, source []byte) error {
	dst := a.target.RowSpan(y, x0, x1)
	amount := coverage

	if a.opts.BlendPercentage != 1 || !a.opts.Antialias {
		buf, err := a.alloc.Floats(len(coverage))
		if err != nil {
			return a.allocFailed("amount scratch", err)
		}
		defer buf.Release()

		amount = buf.Slice()
		p := a.opts.BlendPercentage
		for i, c := range coverage {
			if !a.opts.Antialias {
				c = snapCoverage(c)
			}
			amount[i] = c * p
		}
	}

	return a.blender.Blend(dst, dst, source, amount)
}

func snapCoverage(c float32) float32 {
	if c >= 0.5 {
		return 1
	}
	return 0
}

// markReleased reports whether this call is the first release.
func (a *applicatorBase) markReleased() bool {
	if a.released {
		return false
	}
	a.released = true
	a.log("applicator released")
	return true
}

func (a *applicatorBase) allocFailed(what string, err error) error {
	Logger().Warn("paint: scratch allocation failed",
		"brush", a.kind, "what", what, "error", err)
	return fmt.Errorf("paint: %s applicator %s: %w", a.kind, what, err)
}

func (a *applicatorBase) log(msg string, args ...any) {
	l := Logger()
	if !l.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	args = append(args, "brush", a.kind, "format", a.target.Format().Name(),
		"clip", a.clip, "blender", a.blender)
	l.Debug("paint: "+msg, args...)
}

// solidApplicator blends one precomputed color row.
type solidApplicator struct {
	applicatorBase
	colors *memory.Buffer[byte]
}

func (a *solidApplicator) Apply(coverage []float32, x, y int) error {
	x0, x1, cov, ok := a.span(coverage, x, y)
	if !ok {
		return nil
	}
	bpp := a.target.Format().BytesPerPixel()
	return a.blendSpan(y, x0, x1, cov, a.colors.Slice()[:(x1-x0)*bpp])
}

func (a *solidApplicator) Release() {
	if a.markReleased() {
		a.colors.Release()
	}
}
