package engine

import (
	"glintvm/internal/value"
	"glintvm/internal/weakref"
)

func (vm *VM) execWeakRefNew() *Error {
	target, err := vm.pop()
	if err != nil {
		return err
	}
	id := vm.Weak.New(vm.Heap, target)
	return vm.push(value.WeakRef(int64(id)))
}

func (vm *VM) execWeakRefGet() *Error {
	v, err := vm.pop()
	if err != nil {
		return err
	}
	if v.Kind != value.KindWeakRef {
		return newErr(ErrTypeError, "WEAK_REF_GET requires a weak reference, got %s", v.Kind)
	}
	return vm.push(vm.Weak.Get(weakref.ID(v.I)))
}
