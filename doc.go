// Package paint composites brushes into pixel buffers and runs per-pixel
// operators over row intervals in parallel.
//
// # Overview
//
// A scan converter produces coverage: one value in [0, 1] per pixel of a
// scanline. paint turns coverage into pixels. A Brush creates an Applicator
// bound to one target buffer, the scan converter calls Apply once per
// covered row, and the applicator blends the brush color into that row in
// place, weighted by coverage and GraphicsOptions.BlendPercentage.
//
// # Quick Start
//
//	buf, _ := pixel.NewBuffer(256, 256, pixel.RGBA32)
//	_ = paint.Clear(nil, buf, paint.White)
//
//	var p paint.Path
//	p.Polygon(20, 20, 230, 60, 120, 220)
//	opts := paint.NewGraphicsOptions(paint.WithBlendPercentage(0.75))
//	_ = paint.FillPath(nil, opts, buf, paint.Solid(paint.Red), &p)
//
// # Pixel formats
//
// All math happens on canonical vectors (pixel.Vec4). Every encoding in
// package pixel converts rows to and from vectors, so brushes, blenders and
// row operators work with any of them.
//
// # Row intervals
//
// IterateRowIntervals splits a region into disjoint horizontal bands and
// runs an operator on each, on the Configuration's worker pool. Each band
// gets its own scratch row. MakeOpaque is the simplest such operator.
//
// # Coordinate System
//
// Origin (0,0) is the top-left pixel of the target, X increases right and
// Y increases down. Pixel (x, y) covers [x, x+1) × [y, y+1).
package paint
