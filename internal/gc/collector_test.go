package gc

import (
	"testing"

	"glintvm/internal/heap"
	"glintvm/internal/value"
)

func TestFullCollectFreesUnreachable(t *testing.T) {
	h := heap.New()
	reachable := h.NewArray()
	_ = h.NewArray() // unreachable once collected

	c := New(h, nil)
	c.FullCollect([]value.Value{reachable})

	if _, ok := h.Get(reachable.H); !ok {
		t.Error("reachable array should survive collection")
	}
	if len(h.Young) != 1 {
		t.Errorf("young generation has %d objects, want 1", len(h.Young))
	}
}

func TestMarkPropagatesThroughContainer(t *testing.T) {
	h := heap.New()
	arr := h.NewArray()
	inner := h.NewArray()
	arrObj, _ := h.Get(arr.H)
	heap.ArrayPush(arrObj, inner)

	c := New(h, nil)
	c.FullCollect([]value.Value{arr})

	if _, ok := h.Get(inner.H); !ok {
		t.Error("array element should be kept alive transitively")
	}
}

func TestTenurePromotesToOldGeneration(t *testing.T) {
	h := heap.New()
	arr := h.NewArray()
	c := New(h, nil)

	for i := 0; i <= TenureLimit; i++ {
		c.FullCollect([]value.Value{arr})
	}

	obj, ok := h.Get(arr.H)
	if !ok {
		t.Fatal("array should still be live")
	}
	if obj.Gen != heap.Old {
		t.Errorf("object should have been promoted to the old generation after %d collections", TenureLimit+1)
	}
}

func TestFinalizeInvalidatesObservers(t *testing.T) {
	h := heap.New()
	arr := h.NewArray()
	obj, _ := h.Get(arr.H)
	obj.Observers = []uint32{3}

	var invalidated []uint32
	c := New(h, func(ids []uint32) { invalidated = ids })

	c.FullCollect(nil) // no roots: arr is unreachable

	if len(invalidated) != 1 || invalidated[0] != 3 {
		t.Errorf("onFinalize should be called with the object's observers, got %v", invalidated)
	}
	if _, ok := h.Get(arr.H); ok {
		t.Error("finalized object should be removed from the heap")
	}
}

func TestMaybeCollectRespectsThreshold(t *testing.T) {
	h := heap.New()
	c := New(h, nil)
	c.YoungThreshold = 2

	h.NewArray()
	c.MaybeCollect(nil)
	if c.Collections != 0 {
		t.Error("collection should not run before crossing the threshold")
	}

	h.NewArray()
	h.NewArray()
	c.MaybeCollect(nil)
	if c.Collections != 1 {
		t.Errorf("collections = %d, want 1 once the threshold is crossed", c.Collections)
	}
}
