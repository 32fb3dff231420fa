package memory

import (
	"errors"
	"sync"
	"testing"

	"github.com/gogpu/paint/pixel"
)

func TestAllocatorVectors(t *testing.T) {
	a := NewAllocator()
	buf, err := a.Vectors(100)
	if err != nil {
		t.Fatal(err)
	}
	defer buf.Release()

	if buf.Len() != 100 || len(buf.Slice()) != 100 {
		t.Errorf("Len() = %d, want 100", buf.Len())
	}
	for i, v := range buf.Slice() {
		if v != (pixel.Vec4{}) {
			t.Fatalf("element %d = %+v, want zero", i, v)
		}
	}
}

func TestAllocatorReuseClears(t *testing.T) {
	a := NewAllocator()
	buf, _ := a.Floats(10)
	for i := range buf.Slice() {
		buf.Slice()[i] = 7
	}
	buf.Release()

	if st := a.Stats(); st.Pooled != 1 || st.Outstanding != 0 {
		t.Fatalf("Stats() = %+v, want 1 pooled, 0 outstanding", st)
	}

	again, _ := a.Floats(12)
	defer again.Release()
	for i, v := range again.Slice() {
		if v != 0 {
			t.Fatalf("reused element %d = %v, want 0", i, v)
		}
	}
	if st := a.Stats(); st.Pooled != 0 || st.Outstanding != 1 {
		t.Errorf("Stats() = %+v, want reuse from pool", st)
	}
}

func TestBufferDoubleRelease(t *testing.T) {
	a := NewAllocator()
	buf, _ := a.Bytes(64)
	buf.Release()
	buf.Release()

	if !buf.Released() {
		t.Error("Released() = false after Release")
	}
	if st := a.Stats(); st.Outstanding != 0 || st.Pooled != 1 {
		t.Errorf("Stats() = %+v, want the buffer pooled exactly once", st)
	}

	var nilBuf *Buffer[byte]
	nilBuf.Release()
}

func TestBufferSliceAfterReleasePanics(t *testing.T) {
	buf, _ := NewAllocator().Vectors(4)
	buf.Release()
	defer func() {
		if recover() == nil {
			t.Error("Slice() after Release should panic")
		}
	}()
	_ = buf.Slice()
}

func TestAllocationLimit(t *testing.T) {
	tests := []struct {
		name    string
		alloc   func(a *Allocator) error
		wantErr error
	}{
		{"vectors within", func(a *Allocator) error { _, err := a.Vectors(64); return err }, nil},
		{"vectors over", func(a *Allocator) error { _, err := a.Vectors(65); return err }, ErrAllocationLimit},
		{"floats within", func(a *Allocator) error { _, err := a.Floats(256); return err }, nil},
		{"floats over", func(a *Allocator) error { _, err := a.Floats(257); return err }, ErrAllocationLimit},
		{"bytes over", func(a *Allocator) error { _, err := a.Bytes(1025); return err }, ErrAllocationLimit},
		{"negative", func(a *Allocator) error { _, err := a.Bytes(-1); return err }, ErrNegativeLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAllocator(WithAllocationLimit(1024))
			if err := tt.alloc(a); !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNoPooling(t *testing.T) {
	a := NewAllocator(WithMaxPooledPerBucket(0))
	buf, _ := a.Vectors(8)
	buf.Release()
	if st := a.Stats(); st.Pooled != 0 {
		t.Errorf("Pooled = %d, want 0 with pooling disabled", st.Pooled)
	}
}

func TestBucketCapacity(t *testing.T) {
	a := NewAllocator(WithMaxPooledPerBucket(2))
	bufs := make([]*Buffer[byte], 5)
	for i := range bufs {
		bufs[i], _ = a.Bytes(100)
	}
	for _, b := range bufs {
		b.Release()
	}
	if st := a.Stats(); st.Pooled != 2 {
		t.Errorf("Pooled = %d, want 2", st.Pooled)
	}
}

func TestClass(t *testing.T) {
	tests := []struct{ n, want int }{
		{0, 0}, {1, 0}, {2, 1}, {3, 2}, {4, 2}, {5, 3}, {1024, 10}, {1025, 11},
	}
	for _, tt := range tests {
		if got := class(tt.n); got != tt.want {
			t.Errorf("class(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestAllocatorConcurrent(t *testing.T) {
	a := NewAllocator()
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				buf, err := a.Vectors(i%50 + 1)
				if err != nil {
					t.Error(err)
					return
				}
				buf.Slice()[0] = pixel.Vec4{A: 1}
				buf.Release()
			}
		}()
	}
	wg.Wait()
	if st := a.Stats(); st.Outstanding != 0 {
		t.Errorf("Outstanding = %d, want 0", st.Outstanding)
	}
}

func TestDefault(t *testing.T) {
	if Default() != Default() {
		t.Error("Default() should return the same allocator")
	}
}
