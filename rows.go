package paint

import (
	"context"
	"image"
	"log/slog"

	"github.com/gogpu/paint/internal/parallel"
	"github.com/gogpu/paint/pixel"
)

// RowInterval is the half-open row range [Min, Max).
type RowInterval = parallel.RowInterval

// RowIntervalOperation processes the rows of one interval. scratch holds
// one zeroed canonical vector per column of the iterated region and belongs
// to this call only.
type RowIntervalOperation interface {
	Invoke(rows RowInterval, scratch []pixel.Vec4) error
}

// RowIntervalFunc adapts a function to RowIntervalOperation.
type RowIntervalFunc func(rows RowInterval, scratch []pixel.Vec4) error

// Invoke calls f.
func (f RowIntervalFunc) Invoke(rows RowInterval, scratch []pixel.Vec4) error {
	return f(rows, scratch)
}

// RowOperation processes one row and needs no scratch.
type RowOperation interface {
	Invoke(y int) error
}

// RowFunc adapts a function to RowOperation.
type RowFunc func(y int) error

// Invoke calls f.
func (f RowFunc) Invoke(y int) error {
	return f(y)
}

// IterateRowIntervals splits the rows of bounds into disjoint intervals and
// invokes op on each, in parallel when the region is large enough. It
// returns after every interval finished.
//
// Operators must only touch rows of their own interval. If op fails, the
// other intervals still run and the first error in row order is returned.
// A panic in op is re-raised on the calling goroutine. Empty bounds are a
// no-op. A nil cfg uses DefaultConfiguration.
func IterateRowIntervals(cfg *Configuration, bounds image.Rectangle, op RowIntervalOperation) error {
	cfg = orDefault(cfg)
	logPartition(cfg, bounds)
	return parallel.Run(poolExecutor{cfg}, cfg.allocator(), bounds, cfg.settings(), op.Invoke)
}

// IterateRows invokes op once per row of bounds, partitioned the same way
// as IterateRowIntervals.
func IterateRows(cfg *Configuration, bounds image.Rectangle, op RowOperation) error {
	cfg = orDefault(cfg)
	logPartition(cfg, bounds)
	return parallel.Run(poolExecutor{cfg}, nil, bounds, cfg.settings(), func(rows RowInterval, _ []pixel.Vec4) error {
		for y := rows.Min; y < rows.Max; y++ {
			if err := op.Invoke(y); err != nil {
				return err
			}
		}
		return nil
	})
}

// ProcessPixelRowsAsVector4 converts each row of bounds in buf to canonical
// vectors with modifiers m, calls fn to mutate them in place, and writes the
// result back. bounds is clipped to the buffer.
func ProcessPixelRowsAsVector4(cfg *Configuration, buf *pixel.Buffer, bounds image.Rectangle, m pixel.Modifiers, fn func(y int, row []pixel.Vec4)) error {
	if buf == nil {
		return ErrNilTarget
	}
	bounds = bounds.Intersect(buf.Bounds())
	f := buf.Format()

	return IterateRowIntervals(cfg, bounds, RowIntervalFunc(func(rows RowInterval, scratch []pixel.Vec4) error {
		for y := rows.Min; y < rows.Max; y++ {
			row := buf.RowSpan(y, bounds.Min.X, bounds.Max.X)
			f.ToVector(row, scratch, m)
			fn(y, scratch)
			f.FromVector(scratch, row, m)
		}
		return nil
	}))
}

func logPartition(cfg *Configuration, bounds image.Rectangle) {
	l := Logger()
	s := cfg.settings()
	if !l.Enabled(context.Background(), slog.LevelDebug) || s.Validate() != nil {
		return
	}
	intervals := parallel.Partition(bounds, s)
	l.Debug("paint: iterate row intervals", "bounds", bounds, "intervals", len(intervals))
}
