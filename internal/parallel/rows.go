// Package parallel splits a pixel region into horizontal row intervals and
// runs an operation on each of them on a shared worker pool.
package parallel

import (
	"errors"
	"fmt"
	"image"
	"runtime"

	"golang.org/x/exp/constraints"

	"github.com/gogpu/paint/memory"
	"github.com/gogpu/paint/pixel"
)

// ErrInvalidSettings is returned for settings that cannot partition work.
var ErrInvalidSettings = errors.New("parallel: invalid settings")

// DefaultMinimumPixelsPerTask is the smallest amount of work worth a task.
const DefaultMinimumPixelsPerTask = 4096

// RowInterval is the half-open row range [Min, Max).
type RowInterval struct {
	Min, Max int
}

// Height returns the number of rows in the interval.
func (r RowInterval) Height() int {
	return r.Max - r.Min
}

func (r RowInterval) String() string {
	return fmt.Sprintf("rows[%d,%d)", r.Min, r.Max)
}

// Settings controls how a region is partitioned.
type Settings struct {
	// MaxDegreeOfParallelism caps the number of intervals. Zero or -1 means
	// GOMAXPROCS.
	MaxDegreeOfParallelism int

	// MinimumPixelsProcessedPerTask is the smallest pixel count a single
	// interval should cover.
	MinimumPixelsProcessedPerTask int
}

// Validate reports whether s can be used for partitioning.
func (s Settings) Validate() error {
	if s.MaxDegreeOfParallelism < -1 {
		return fmt.Errorf("%w: MaxDegreeOfParallelism %d", ErrInvalidSettings, s.MaxDegreeOfParallelism)
	}
	if s.MinimumPixelsProcessedPerTask < 1 {
		return fmt.Errorf("%w: MinimumPixelsProcessedPerTask %d", ErrInvalidSettings, s.MinimumPixelsProcessedPerTask)
	}
	return nil
}

func (s Settings) maxDegree() int {
	if s.MaxDegreeOfParallelism <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return s.MaxDegreeOfParallelism
}

func ceilDiv[T constraints.Integer](a, b T) T {
	return (a + b - 1) / b
}

// Partition splits bounds into disjoint row intervals that together cover
// every row of bounds, in top-to-bottom order. Empty bounds yield nil.
func Partition(bounds image.Rectangle, s Settings) []RowInterval {
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return nil
	}

	steps := min(s.maxDegree(), ceilDiv(w*h, s.MinimumPixelsProcessedPerTask), h)
	steps = max(steps, 1)
	if steps == 1 {
		return []RowInterval{{Min: bounds.Min.Y, Max: bounds.Max.Y}}
	}

	stepHeight := ceilDiv(h, steps)
	intervals := make([]RowInterval, 0, steps)
	for y := bounds.Min.Y; y < bounds.Max.Y; y += stepHeight {
		intervals = append(intervals, RowInterval{Min: y, Max: min(y+stepHeight, bounds.Max.Y)})
	}
	return intervals
}

// IntervalFunc processes one interval. scratch holds bounds.Dx() zeroed
// vectors owned by the call.
type IntervalFunc func(rows RowInterval, scratch []pixel.Vec4) error

// IntervalError reports the interval an operation failed on.
type IntervalError struct {
	Rows RowInterval
	Err  error
}

func (e *IntervalError) Error() string {
	return fmt.Sprintf("parallel: %s: %v", e.Rows, e.Err)
}

func (e *IntervalError) Unwrap() error {
	return e.Err
}

// Executor runs a batch of jobs and returns once all of them finished.
// *WorkerPool is the usual implementation.
type Executor interface {
	ExecuteAll(jobs []func())
}

// Run partitions bounds and invokes fn once per interval. A single interval
// runs on the calling goroutine; otherwise intervals are dispatched on exec
// and Run returns after all of them finished. The first error in interval
// order is returned. A panic in fn is re-raised on the caller.
//
// With a nil exec every interval runs on the calling goroutine. With a nil
// alloc fn receives a nil scratch slice.
func Run(exec Executor, alloc *memory.Allocator, bounds image.Rectangle, s Settings, fn IntervalFunc) error {
	if err := s.Validate(); err != nil {
		return err
	}
	intervals := Partition(bounds, s)
	if len(intervals) == 0 {
		return nil
	}
	width := bounds.Dx()

	if len(intervals) == 1 || exec == nil {
		var first error
		for _, rows := range intervals {
			if err := runInterval(alloc, width, rows, fn); err != nil && first == nil {
				first = err
			}
		}
		return first
	}

	errs := make([]error, len(intervals))
	jobs := make([]func(), len(intervals))
	for i, rows := range intervals {
		jobs[i] = func() {
			errs[i] = runInterval(alloc, width, rows, fn)
		}
	}
	exec.ExecuteAll(jobs)

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func runInterval(alloc *memory.Allocator, width int, rows RowInterval, fn IntervalFunc) error {
	var scratch []pixel.Vec4
	if alloc != nil {
		buf, err := alloc.Vectors(width)
		if err != nil {
			return &IntervalError{Rows: rows, Err: err}
		}
		defer buf.Release()
		scratch = buf.Slice()
	}

	if err := fn(rows, scratch); err != nil {
		return &IntervalError{Rows: rows, Err: err}
	}
	return nil
}
