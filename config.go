package paint

import (
	"runtime"
	"sync"

	"github.com/gogpu/paint/internal/parallel"
	"github.com/gogpu/paint/memory"
)

// DefaultMinimumPixelsPerTask is the default smallest pixel count worth its
// own row interval.
const DefaultMinimumPixelsPerTask = parallel.DefaultMinimumPixelsPerTask

// Configuration holds the process-level resources shared by paint
// operations: the scratch allocator and the parallelism settings with their
// worker pool.
//
// Thread safety: a Configuration is safe for concurrent use once built.
// Changing its fields while operations run is not supported.
type Configuration struct {
	// MaxDegreeOfParallelism caps how many row intervals run at once.
	// Zero or -1 means GOMAXPROCS.
	MaxDegreeOfParallelism int

	// MinimumPixelsProcessedPerTask is the smallest pixel count a row
	// interval should cover.
	MinimumPixelsProcessedPerTask int

	// Allocator supplies scratch rows. Nil means memory.Default().
	Allocator *memory.Allocator

	mu     sync.Mutex
	pool   *parallel.WorkerPool
	closed bool
}

// ConfigOption configures a Configuration.
type ConfigOption func(*Configuration)

// WithMaxDegreeOfParallelism sets MaxDegreeOfParallelism.
func WithMaxDegreeOfParallelism(n int) ConfigOption {
	return func(c *Configuration) {
		c.MaxDegreeOfParallelism = n
	}
}

// WithMinimumPixelsPerTask sets MinimumPixelsProcessedPerTask.
func WithMinimumPixelsPerTask(n int) ConfigOption {
	return func(c *Configuration) {
		c.MinimumPixelsProcessedPerTask = n
	}
}

// WithAllocator sets the scratch allocator.
func WithAllocator(a *memory.Allocator) ConfigOption {
	return func(c *Configuration) {
		c.Allocator = a
	}
}

// NewConfiguration creates a configuration. Defaults are GOMAXPROCS workers,
// DefaultMinimumPixelsPerTask and the default allocator.
func NewConfiguration(opts ...ConfigOption) *Configuration {
	c := &Configuration{
		MaxDegreeOfParallelism:        runtime.GOMAXPROCS(0),
		MinimumPixelsProcessedPerTask: DefaultMinimumPixelsPerTask,
		Allocator:                     memory.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var (
	defaultConfigOnce sync.Once
	defaultConfig     *Configuration
)

// DefaultConfiguration returns the process-wide configuration used when an
// operation is given a nil *Configuration.
func DefaultConfiguration() *Configuration {
	defaultConfigOnce.Do(func() {
		defaultConfig = NewConfiguration()
	})
	return defaultConfig
}

func orDefault(c *Configuration) *Configuration {
	if c == nil {
		return DefaultConfiguration()
	}
	return c
}

func (c *Configuration) allocator() *memory.Allocator {
	if c.Allocator == nil {
		return memory.Default()
	}
	return c.Allocator
}

func (c *Configuration) settings() parallel.Settings {
	return parallel.Settings{
		MaxDegreeOfParallelism:        c.MaxDegreeOfParallelism,
		MinimumPixelsProcessedPerTask: c.MinimumPixelsProcessedPerTask,
	}
}

// workerPool returns the pool, starting it on first use. After Close it
// returns nil and intervals run on the calling goroutine.
func (c *Configuration) workerPool() *parallel.WorkerPool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	if c.pool == nil {
		c.pool = parallel.NewWorkerPool(c.MaxDegreeOfParallelism)
		Logger().Debug("paint: worker pool started", "workers", c.pool.Workers())
	}
	return c.pool
}

// poolExecutor starts the configuration's worker pool only when a region
// actually splits into several intervals.
type poolExecutor struct {
	c *Configuration
}

func (e poolExecutor) ExecuteAll(jobs []func()) {
	pool := e.c.workerPool()
	if pool == nil {
		for _, job := range jobs {
			job()
		}
		return
	}
	pool.ExecuteAll(jobs)
}

// Close stops the worker pool. Later operations still work but run
// sequentially. Close is safe to call multiple times.
func (c *Configuration) Close() {
	c.mu.Lock()
	pool := c.pool
	c.pool = nil
	c.closed = true
	c.mu.Unlock()

	if pool != nil {
		pool.Close()
	}
}
