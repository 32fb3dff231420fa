package paint

import (
	"fmt"

	"github.com/gogpu/paint/blend"
)

// GraphicsOptions control how brushes composite onto a target.
type GraphicsOptions struct {
	// Antialias keeps fractional coverage. When false, coverage is snapped
	// to 0 or 1 at 0.5.
	Antialias bool

	// AntialiasSubpixelDepth is the number of subpixel samples per axis a
	// scan converter should use. The compositing core only passes it on.
	AntialiasSubpixelDepth int

	// BlendPercentage scales every coverage value. It must be in [0, 1].
	BlendPercentage float32

	// ColorBlending selects how colors mix.
	ColorBlending blend.ColorMode

	// AlphaComposition selects the Porter-Duff operator.
	AlphaComposition blend.AlphaMode
}

// GraphicsOption configures GraphicsOptions.
//
// Example:
//
//	opts := paint.NewGraphicsOptions(
//	    paint.WithBlendPercentage(0.5),
//	    paint.WithColorBlending(blend.Multiply),
//	)
type GraphicsOption func(*GraphicsOptions)

// DefaultGraphicsOptions returns antialiased Normal/SrcOver compositing at
// full strength.
func DefaultGraphicsOptions() GraphicsOptions {
	return GraphicsOptions{
		Antialias:              true,
		AntialiasSubpixelDepth: 16,
		BlendPercentage:        1,
		ColorBlending:          blend.Normal,
		AlphaComposition:       blend.SrcOver,
	}
}

// NewGraphicsOptions applies opts over DefaultGraphicsOptions.
func NewGraphicsOptions(opts ...GraphicsOption) GraphicsOptions {
	o := DefaultGraphicsOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithAntialias enables or disables antialiasing.
func WithAntialias(enabled bool) GraphicsOption {
	return func(o *GraphicsOptions) {
		o.Antialias = enabled
	}
}

// WithSubpixelDepth sets AntialiasSubpixelDepth.
func WithSubpixelDepth(depth int) GraphicsOption {
	return func(o *GraphicsOptions) {
		o.AntialiasSubpixelDepth = depth
	}
}

// WithBlendPercentage sets BlendPercentage.
func WithBlendPercentage(p float32) GraphicsOption {
	return func(o *GraphicsOptions) {
		o.BlendPercentage = p
	}
}

// WithColorBlending sets the color blending mode.
func WithColorBlending(m blend.ColorMode) GraphicsOption {
	return func(o *GraphicsOptions) {
		o.ColorBlending = m
	}
}

// WithAlphaComposition sets the Porter-Duff operator.
func WithAlphaComposition(m blend.AlphaMode) GraphicsOption {
	return func(o *GraphicsOptions) {
		o.AlphaComposition = m
	}
}

// Validate reports whether o can be used for compositing.
func (o GraphicsOptions) Validate() error {
	if !(o.BlendPercentage >= 0 && o.BlendPercentage <= 1) {
		return fmt.Errorf("%w: blend percentage %v not in [0,1]", ErrInvalidOptions, o.BlendPercentage)
	}
	if o.AntialiasSubpixelDepth < 0 {
		return fmt.Errorf("%w: subpixel depth %d", ErrInvalidOptions, o.AntialiasSubpixelDepth)
	}
	if !o.ColorBlending.Valid() {
		return fmt.Errorf("%w: color blending %v", ErrInvalidOptions, o.ColorBlending)
	}
	if !o.AlphaComposition.Valid() {
		return fmt.Errorf("%w: alpha composition %v", ErrInvalidOptions, o.AlphaComposition)
	}
	return nil
}
