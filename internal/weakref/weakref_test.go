package weakref

import (
	"testing"

	"glintvm/internal/heap"
	"glintvm/internal/value"
)

func TestNewAndGetLiveTarget(t *testing.T) {
	h := heap.New()
	arr := h.NewArray()

	var tbl Table
	id := tbl.New(h, arr)

	got := tbl.Get(id)
	if !value.Equal(got, arr) {
		t.Errorf("Get(id) = %v, want %v", got, arr)
	}
}

func TestNewOnNonHeapValueIsDead(t *testing.T) {
	h := heap.New()
	var tbl Table
	id := tbl.New(h, value.Int(5))

	if got := tbl.Get(id); got.Kind != value.KindNil {
		t.Errorf("weak ref to a non-heap value should resolve to nil, got %v", got)
	}
}

func TestInvalidateNullsObservers(t *testing.T) {
	h := heap.New()
	arr := h.NewArray()

	var tbl Table
	id := tbl.New(h, arr)

	obj, _ := h.Get(arr.H)
	tbl.Invalidate(obj.Observers)

	if got := tbl.Get(id); got.Kind != value.KindNil {
		t.Errorf("invalidated weak ref should resolve to nil, got %v", got)
	}
}

func TestGetOutOfRangeID(t *testing.T) {
	var tbl Table
	if got := tbl.Get(ID(42)); got.Kind != value.KindNil {
		t.Errorf("out-of-range id should resolve to nil, got %v", got)
	}
}

func TestLen(t *testing.T) {
	h := heap.New()
	arr := h.NewArray()
	var tbl Table
	tbl.New(h, arr)
	tbl.New(h, value.Int(1))
	if tbl.Len() != 2 {
		t.Errorf("Len() = %d, want 2", tbl.Len())
	}
}
