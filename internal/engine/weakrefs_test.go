package engine

import (
	"testing"

	"glintvm/internal/value"
)

func TestWeakRefNewAndGetLiveTarget(t *testing.T) {
	vm := newTestVM(dummyProgram(5))
	vm.execArrayNew()
	arr, _ := vm.peek()

	push(vm, arr)
	if err := vm.execWeakRefNew(); err != nil {
		t.Fatalf("execWeakRefNew: %v", err)
	}
	ref, _ := vm.pop()
	if ref.Kind != value.KindWeakRef {
		t.Fatalf("WEAK_REF_NEW should produce a weakref value, got %s", ref.Kind)
	}

	push(vm, ref)
	if err := vm.execWeakRefGet(); err != nil {
		t.Fatalf("execWeakRefGet: %v", err)
	}
	got, _ := vm.pop()
	if got.Kind != value.KindArray || got.H != arr.H {
		t.Errorf("got %v, want the original array %v", got, arr)
	}
}

func TestWeakRefNewOnNonHeapValueIsDead(t *testing.T) {
	vm := newTestVM(dummyProgram(5))
	push(vm, value.Int(42))
	if err := vm.execWeakRefNew(); err != nil {
		t.Fatalf("execWeakRefNew: %v", err)
	}
	ref, _ := vm.pop()

	push(vm, ref)
	if err := vm.execWeakRefGet(); err != nil {
		t.Fatalf("execWeakRefGet: %v", err)
	}
	got, _ := vm.pop()
	if got.Kind != value.KindNil {
		t.Errorf("a weak ref to a non-heap value should resolve to nil, got %v", got)
	}
}

func TestWeakRefGetAfterInvalidateIsNil(t *testing.T) {
	vm := newTestVM(dummyProgram(5))
	vm.execArrayNew()
	arr, _ := vm.pop()

	push(vm, arr)
	vm.execWeakRefNew()
	ref, _ := vm.pop()

	obj, _ := vm.Heap.Get(arr.H)
	vm.Weak.Invalidate(obj.Observers)

	push(vm, ref)
	if err := vm.execWeakRefGet(); err != nil {
		t.Fatalf("execWeakRefGet: %v", err)
	}
	got, _ := vm.pop()
	if got.Kind != value.KindNil {
		t.Errorf("a weak ref to an invalidated object should resolve to nil, got %v", got)
	}
}

func TestWeakRefGetRequiresWeakRefKind(t *testing.T) {
	vm := newTestVM(dummyProgram(5))
	push(vm, value.Int(1))
	if err := vm.execWeakRefGet(); err == nil || err.Kind != ErrTypeError {
		t.Errorf("WEAK_REF_GET on a non-weakref should return TypeError, got %v", err)
	}
}
