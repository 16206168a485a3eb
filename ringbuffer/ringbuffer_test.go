package ringbuffer

import (
	"reflect"
	"testing"
)

func drain[T any](r *RingBuffer[T]) []T {
	var out []T
	for {
		v, err := r.Read()
		if err != nil {
			return out
		}
		out = append(out, v)
	}
}

func TestRingBuffer(t *testing.T) {
	r := New[int](3)
	if _, err := r.Read(); err == nil {
		t.Fatal("expected error reading empty buffer")
	}

	r.Write(1)
	r.Write(2)
	if r.Len() != 2 {
		t.Errorf("expected length 2, got %d", r.Len())
	}

	v, err := r.Read()
	if err != nil || v != 1 {
		t.Errorf("expected 1, got %d (%v)", v, err)
	}

	r.Write(3)
	r.Write(4)
	if r.Len() != 3 {
		t.Errorf("expected length 3, got %d", r.Len())
	}
	if got := drain(r); !reflect.DeepEqual(got, []int{2, 3, 4}) {
		t.Errorf("unexpected contents %v", got)
	}
	if r.Len() != 0 {
		t.Errorf("expected empty buffer after draining, got %d", r.Len())
	}
}

func TestRingBufferOverwrite(t *testing.T) {
	r := New[string](2)
	r.Write("a")
	r.Write("b")
	r.Write("c")

	if r.Dropped() != 1 {
		t.Errorf("expected 1 dropped, got %d", r.Dropped())
	}
	if got := drain(r); !reflect.DeepEqual(got, []string{"b", "c"}) {
		t.Errorf("unexpected contents %v", got)
	}

	r.Write("d")
	r.Reset()
	if r.Len() != 0 || r.Dropped() != 0 {
		t.Errorf("expected empty buffer after reset")
	}
}

func TestRingBufferDefaultSize(t *testing.T) {
	r := New[byte](0)
	for i := 0; i < defaultBufferSz; i++ {
		r.Write(byte(i))
	}
	if r.Len() != defaultBufferSz || r.Dropped() != 0 {
		t.Errorf("expected full buffer without drops, got len %d dropped %d", r.Len(), r.Dropped())
	}
}
