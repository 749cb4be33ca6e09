package engine

import (
	"glintvm/internal/heap"
	"glintvm/internal/value"
)

func (vm *VM) execArrayNew() *Error {
	arr := vm.Heap.NewArray()
	vm.collectIfNeeded()
	return vm.push(arr)
}

func (vm *VM) arrayObj(v value.Value) (*heap.Object, *Error) {
	if v.Kind != value.KindArray {
		return nil, newErr(ErrTypeError, "expected array, got %s", v.Kind)
	}
	obj, ok := vm.Heap.Get(v.H)
	if !ok {
		return nil, newErr(ErrInvalidOperation, "array handle %d is not live", v.H)
	}
	return obj, nil
}

// execArrayGet pops index then the array, per the push order array, index.
func (vm *VM) execArrayGet() *Error {
	idx, err := vm.pop()
	if err != nil {
		return err
	}
	arrVal, err := vm.pop()
	if err != nil {
		return err
	}
	obj, err := vm.arrayObj(arrVal)
	if err != nil {
		return err
	}
	if idx.Kind != value.KindInt {
		return newErr(ErrTypeError, "array index must be an int, got %s", idx.Kind)
	}
	v, ok := heap.ArrayGet(obj, idx.I)
	if !ok {
		return newErr(ErrIndexOutOfBounds, "array index %d out of range", idx.I)
	}
	return vm.push(v)
}

// execArraySet pops value, index, array, growing with nil padding (§4.8).
func (vm *VM) execArraySet() *Error {
	v, err := vm.pop()
	if err != nil {
		return err
	}
	idx, err := vm.pop()
	if err != nil {
		return err
	}
	arrVal, err := vm.pop()
	if err != nil {
		return err
	}
	obj, err := vm.arrayObj(arrVal)
	if err != nil {
		return err
	}
	if idx.Kind != value.KindInt {
		return newErr(ErrTypeError, "array index must be an int, got %s", idx.Kind)
	}
	if !heap.ArraySet(obj, idx.I, v) {
		return newErr(ErrIndexOutOfBounds, "array index %d out of range", idx.I)
	}
	return nil
}

func (vm *VM) execArrayLen() *Error {
	arrVal, err := vm.pop()
	if err != nil {
		return err
	}
	obj, err := vm.arrayObj(arrVal)
	if err != nil {
		return err
	}
	return vm.push(value.Int(int64(len(obj.Elems))))
}

func (vm *VM) execArrayPush() *Error {
	v, err := vm.pop()
	if err != nil {
		return err
	}
	arrVal, err := vm.pop()
	if err != nil {
		return err
	}
	obj, err := vm.arrayObj(arrVal)
	if err != nil {
		return err
	}
	heap.ArrayPush(obj, v)
	return nil
}

func (vm *VM) execArrayPop() *Error {
	arrVal, err := vm.pop()
	if err != nil {
		return err
	}
	obj, err := vm.arrayObj(arrVal)
	if err != nil {
		return err
	}
	v, ok := heap.ArrayPop(obj)
	if !ok {
		return newErr(ErrIndexOutOfBounds, "ARRAY_POP on empty array")
	}
	return vm.push(v)
}

// execMapNew creates a hashmap or, when isStruct, a record — the two share
// the same entry storage and only differ in the kind tag (§4.9).
func (vm *VM) execMapNew(isStruct bool) *Error {
	var v value.Value
	if isStruct {
		v = vm.Heap.NewRecord()
	} else {
		v = vm.Heap.NewMap()
	}
	vm.collectIfNeeded()
	return vm.push(v)
}

func (vm *VM) containerObj(v value.Value, isStruct bool) (*heap.Object, *Error) {
	want := value.KindMap
	if isStruct {
		want = value.KindRecord
	}
	if v.Kind != want {
		return nil, newErr(ErrTypeError, "expected %s, got %s", want, v.Kind)
	}
	obj, ok := vm.Heap.Get(v.H)
	if !ok {
		return nil, newErr(ErrInvalidOperation, "handle %d is not live", v.H)
	}
	return obj, nil
}

func keyString(v value.Value) (string, *Error) {
	if v.Kind != value.KindString {
		return "", newErr(ErrTypeError, "key must be a string, got %s", v.Kind)
	}
	return v.S, nil
}

func (vm *VM) execMapGet(isStruct bool) *Error {
	keyVal, err := vm.pop()
	if err != nil {
		return err
	}
	containerVal, err := vm.pop()
	if err != nil {
		return err
	}
	obj, err := vm.containerObj(containerVal, isStruct)
	if err != nil {
		return err
	}
	key, err := keyString(keyVal)
	if err != nil {
		return err
	}
	v, ok := heap.MapGet(obj, key)
	if !ok {
		if isStruct {
			return newErr(ErrKeyNotFound, "key %q not found", key)
		}
		return vm.push(value.Nil())
	}
	return vm.push(v)
}

func (vm *VM) execMapSet(isStruct bool) *Error {
	v, err := vm.pop()
	if err != nil {
		return err
	}
	keyVal, err := vm.pop()
	if err != nil {
		return err
	}
	containerVal, err := vm.pop()
	if err != nil {
		return err
	}
	obj, err := vm.containerObj(containerVal, isStruct)
	if err != nil {
		return err
	}
	key, err := keyString(keyVal)
	if err != nil {
		return err
	}
	heap.MapSet(obj, key, v)
	return nil
}

func (vm *VM) execMapHas(isStruct bool) *Error {
	keyVal, err := vm.pop()
	if err != nil {
		return err
	}
	containerVal, err := vm.pop()
	if err != nil {
		return err
	}
	obj, err := vm.containerObj(containerVal, isStruct)
	if err != nil {
		return err
	}
	key, err := keyString(keyVal)
	if err != nil {
		return err
	}
	return vm.push(value.Bool(heap.MapHas(obj, key)))
}

func (vm *VM) execMapDelete(isStruct bool) *Error {
	keyVal, err := vm.pop()
	if err != nil {
		return err
	}
	containerVal, err := vm.pop()
	if err != nil {
		return err
	}
	obj, err := vm.containerObj(containerVal, isStruct)
	if err != nil {
		return err
	}
	key, err := keyString(keyVal)
	if err != nil {
		return err
	}
	return vm.push(value.Bool(heap.MapDelete(obj, key)))
}
