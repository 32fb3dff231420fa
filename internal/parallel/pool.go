package parallel

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool runs row-interval jobs on a fixed set of goroutines.
//
// Each worker owns a queue. Jobs are handed out round-robin; a worker whose
// queue is empty steals from the others, which keeps the join short when
// intervals take uneven time.
//
// Thread safety: WorkerPool is safe for concurrent use.
type WorkerPool struct {
	workers int

	// queues holds per-worker job queues.
	queues []chan func()

	// done signals workers to stop.
	done chan struct{}

	wg      sync.WaitGroup
	running atomic.Bool
}

// NewWorkerPool starts a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	queueSize := max(workers*4, 8)

	p := &WorkerPool{
		workers: workers,
		queues:  make([]chan func(), workers),
		done:    make(chan struct{}),
	}
	for i := range workers {
		p.queues[i] = make(chan func(), queueSize)
	}

	p.running.Store(true)
	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}
	return p
}

func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	own := p.queues[id]
	for {
		select {
		case <-p.done:
			p.drain(own)
			return
		case job := <-own:
			job()
		default:
			if stolen := p.steal(id); stolen != nil {
				stolen()
				continue
			}
			select {
			case <-p.done:
				p.drain(own)
				return
			case job := <-own:
				job()
			}
		}
	}
}

func (p *WorkerPool) drain(queue chan func()) {
	for {
		select {
		case job := <-queue:
			job()
		default:
			return
		}
	}
}

// steal takes one job from another worker's queue, or returns nil. A
// negative self searches every queue.
func (p *WorkerPool) steal(self int) func() {
	for i := range p.workers {
		if i == self {
			continue
		}
		select {
		case job := <-p.queues[i]:
			return job
		default:
		}
	}
	return nil
}

// PanicError carries a value recovered from a job so it can be re-raised on
// the goroutine that called ExecuteAll.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("parallel: job panicked: %v\n%s", e.Value, e.Stack)
}

// ExecuteAll runs every job and returns when all of them have finished.
//
// While it waits, the calling goroutine runs queued jobs itself, so a job
// may call ExecuteAll on the same pool without starving it. A job that
// finds every queue full runs on the caller.
//
// If a job panics, the remaining jobs still run to completion and the first
// recovered panic is re-raised on the caller as a *PanicError. After Close
// the jobs run sequentially on the calling goroutine.
func (p *WorkerPool) ExecuteAll(jobs []func()) {
	if len(jobs) == 0 {
		return
	}
	if !p.running.Load() {
		for _, job := range jobs {
			job()
		}
		return
	}

	var (
		remaining atomic.Int64
		finished  = make(chan struct{})
		panicOnce sync.Once
		caught    *PanicError
	)
	remaining.Store(int64(len(jobs)))

	for i, fn := range jobs {
		wrapped := func() {
			defer func() {
				if remaining.Add(-1) == 0 {
					close(finished)
				}
			}()
			defer func() {
				if r := recover(); r != nil {
					buf := make([]byte, 4096)
					buf = buf[:runtime.Stack(buf, false)]
					panicOnce.Do(func() { caught = &PanicError{Value: r, Stack: buf} })
				}
			}()
			fn()
		}

		select {
		case p.queues[i%p.workers] <- wrapped:
		default:
			wrapped()
		}
	}

	p.help(finished)
	if caught != nil {
		panic(caught)
	}
}

// help runs queued jobs until finished is closed. It blocks only when every
// queue is empty, at which point all jobs of the waiting batch are already
// running on other goroutines.
func (p *WorkerPool) help(finished <-chan struct{}) {
	for {
		select {
		case <-finished:
			return
		default:
		}
		if job := p.steal(-1); job != nil {
			job()
			continue
		}
		<-finished
		return
	}
}

// Close stops the workers after the queued jobs have run.
// Close is safe to call multiple times.
func (p *WorkerPool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning reports whether the pool still dispatches to workers.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}
