package engine

import (
	"strings"

	"glintvm/internal/value"
)

func popString(vm *VM) (string, *Error) {
	v, err := vm.pop()
	if err != nil {
		return "", err
	}
	if v.Kind != value.KindString {
		return "", newErr(ErrTypeError, "expected string, got %s", v.Kind)
	}
	return v.S, nil
}

func (vm *VM) execStringConcat() *Error {
	b, err := popString(vm)
	if err != nil {
		return err
	}
	a, err := popString(vm)
	if err != nil {
		return err
	}
	return vm.push(value.String(a + b))
}

// execStringSubstr pops length, start, s: start out of range fails
// IndexOutOfBounds, length is clipped to the end of the string (§4.8).
func (vm *VM) execStringSubstr() *Error {
	lengthVal, err := vm.pop()
	if err != nil {
		return err
	}
	startVal, err := vm.pop()
	if err != nil {
		return err
	}
	s, err := popString(vm)
	if err != nil {
		return err
	}
	if lengthVal.Kind != value.KindInt || startVal.Kind != value.KindInt {
		return newErr(ErrTypeError, "STRING_SUBSTR requires int start/length")
	}
	start := startVal.I
	if start < 0 || start > int64(len(s)) {
		return newErr(ErrIndexOutOfBounds, "substring start %d out of range", start)
	}
	end := start + lengthVal.I
	if end > int64(len(s)) || lengthVal.I < 0 {
		end = int64(len(s))
	}
	return vm.push(value.String(s[start:end]))
}

func (vm *VM) execStringLen() *Error {
	s, err := popString(vm)
	if err != nil {
		return err
	}
	return vm.push(value.Int(int64(len(s))))
}

func (vm *VM) execStringCompare() *Error {
	b, err := popString(vm)
	if err != nil {
		return err
	}
	a, err := popString(vm)
	if err != nil {
		return err
	}
	return vm.push(value.Int(int64(strings.Compare(a, b))))
}
