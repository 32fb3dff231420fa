// Package memory provides pooled scratch buffers for pixel processing.
//
// Scratch rows are requested at the start of a unit of work (one blend call,
// one row interval) and released at its end. Released buffers go back into
// bucketed pools keyed by capacity class, so steady-state processing does not
// allocate.
package memory

import (
	"errors"
	"fmt"
	"math/bits"
	"sync"
	"sync/atomic"

	"github.com/gogpu/paint/pixel"
)

// Common errors for allocation.
var (
	// ErrAllocationLimit is returned when a request exceeds the allocator's
	// per-allocation byte limit.
	ErrAllocationLimit = errors.New("memory: allocation exceeds limit")

	// ErrNegativeLength is returned for negative element counts.
	ErrNegativeLength = errors.New("memory: negative length")
)

// Byte sizes of the pooled element types.
const (
	vec4Size    = 16
	float32Size = 4
)

// Allocator hands out pooled buffers of canonical vectors, floats and bytes.
//
// Thread safety: all methods are safe for concurrent use. A Buffer returned
// by the allocator is owned by one caller until released.
type Allocator struct {
	limit int

	vectors *pool[pixel.Vec4]
	floats  *pool[float32]
	bytes   *pool[byte]
}

// Option configures an Allocator.
type Option func(*allocatorOptions)

type allocatorOptions struct {
	maxPerBucket int
	limit        int
}

// WithMaxPooledPerBucket limits how many released buffers each capacity class
// retains. Zero disables pooling.
func WithMaxPooledPerBucket(n int) Option {
	return func(o *allocatorOptions) {
		o.maxPerBucket = n
	}
}

// WithAllocationLimit rejects any single request larger than limit bytes.
// Zero means no limit.
func WithAllocationLimit(limit int) Option {
	return func(o *allocatorOptions) {
		o.limit = limit
	}
}

// NewAllocator creates an allocator. By default each capacity class keeps up
// to 16 buffers and there is no allocation limit.
func NewAllocator(opts ...Option) *Allocator {
	o := allocatorOptions{maxPerBucket: 16}
	for _, opt := range opts {
		opt(&o)
	}
	return &Allocator{
		limit:   o.limit,
		vectors: newPool[pixel.Vec4](o.maxPerBucket),
		floats:  newPool[float32](o.maxPerBucket),
		bytes:   newPool[byte](o.maxPerBucket),
	}
}

var (
	defaultOnce      sync.Once
	defaultAllocator *Allocator
)

// Default returns the process-wide allocator.
func Default() *Allocator {
	defaultOnce.Do(func() {
		defaultAllocator = NewAllocator()
	})
	return defaultAllocator
}

// Vectors returns a zeroed buffer of n canonical vectors.
func (a *Allocator) Vectors(n int) (*Buffer[pixel.Vec4], error) {
	return allocate(a, a.vectors, n, vec4Size)
}

// Floats returns a zeroed buffer of n float32 values.
func (a *Allocator) Floats(n int) (*Buffer[float32], error) {
	return allocate(a, a.floats, n, float32Size)
}

// Bytes returns a zeroed buffer of n bytes.
func (a *Allocator) Bytes(n int) (*Buffer[byte], error) {
	return allocate(a, a.bytes, n, 1)
}

// Limit returns the per-allocation byte limit, or zero if unlimited.
func (a *Allocator) Limit() int {
	return a.limit
}

// Stats is a snapshot of allocator usage.
type Stats struct {
	// Outstanding is the number of buffers handed out and not yet released.
	Outstanding int64

	// Pooled is the number of released buffers waiting for reuse.
	Pooled int
}

// Stats returns current usage across all element types.
func (a *Allocator) Stats() Stats {
	return Stats{
		Outstanding: a.vectors.outstanding.Load() + a.floats.outstanding.Load() + a.bytes.outstanding.Load(),
		Pooled:      a.vectors.pooled() + a.floats.pooled() + a.bytes.pooled(),
	}
}

func allocate[T any](a *Allocator, p *pool[T], n, elemSize int) (*Buffer[T], error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeLength, n)
	}
	if a.limit > 0 && n > a.limit/elemSize {
		return nil, fmt.Errorf("%w: %d bytes requested, limit %d", ErrAllocationLimit, n*elemSize, a.limit)
	}
	return &Buffer[T]{data: p.get(n), pool: p}, nil
}

// Buffer is a pooled slice. Release returns it to its pool; releasing twice
// is a no-op.
type Buffer[T any] struct {
	data     []T
	pool     *pool[T]
	released bool
}

// Slice returns the buffer contents. It panics after Release.
func (b *Buffer[T]) Slice() []T {
	if b.released {
		panic("memory: use of released buffer")
	}
	return b.data
}

// Len returns the element count, zero after Release.
func (b *Buffer[T]) Len() int {
	return len(b.data)
}

// Released reports whether Release has been called.
func (b *Buffer[T]) Released() bool {
	return b.released
}

// Release returns the buffer to its pool. Safe to call multiple times and on
// a nil Buffer.
func (b *Buffer[T]) Release() {
	if b == nil || b.released {
		return
	}
	b.released = true
	b.pool.put(b.data)
	b.data = nil
}

// pool keeps released slices grouped by power-of-two capacity class.
type pool[T any] struct {
	mu           sync.Mutex
	buckets      map[int][][]T
	maxPerBucket int
	outstanding  atomic.Int64
}

func newPool[T any](maxPerBucket int) *pool[T] {
	return &pool[T]{
		buckets:      make(map[int][][]T),
		maxPerBucket: maxPerBucket,
	}
}

// class returns the capacity class for n: the smallest k with 1<<k >= n.
func class(n int) int {
	if n <= 1 {
		return 0
	}
	return bits.Len(uint(n - 1))
}

func (p *pool[T]) get(n int) []T {
	p.outstanding.Add(1)
	k := class(n)

	p.mu.Lock()
	bucket := p.buckets[k]
	if len(bucket) > 0 {
		s := bucket[len(bucket)-1]
		p.buckets[k] = bucket[:len(bucket)-1]
		p.mu.Unlock()

		s = s[:n]
		clear(s)
		return s
	}
	p.mu.Unlock()

	return make([]T, n, 1<<k)
}

func (p *pool[T]) put(s []T) {
	p.outstanding.Add(-1)
	if p.maxPerBucket <= 0 || cap(s) == 0 {
		return
	}
	k := class(cap(s))
	if 1<<k != cap(s) {
		// Not one of ours; let the GC have it.
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.buckets[k]) >= p.maxPerBucket {
		return
	}
	p.buckets[k] = append(p.buckets[k], s[:0])
}

func (p *pool[T]) pooled() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, b := range p.buckets {
		n += len(b)
	}
	return n
}
