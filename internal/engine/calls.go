package engine

import (
	"glintvm/internal/frame"
	"glintvm/internal/value"
)

func (vm *VM) execFunctionDef(arity, address, varargs int64) *Error {
	entry, err := vm.validJump(address)
	if err != nil {
		return err
	}
	fn := vm.Heap.NewFunction(entry, toInt(arity), 0, varargs != 0, "")
	vm.collectIfNeeded()
	return vm.push(fn)
}

// execCall implements CALL: push a call frame, rebase bp to the callee's
// arguments, and jump to entry. Return values travel on the operand stack
// (§4.6): RETURN hands the callee's top value, if any, back to the caller
// and discards everything else above the callee's bp (see execReturn).
func (vm *VM) execCall(nArgs, entry int64) *Error {
	n := toInt(nArgs)
	target, err := vm.validJump(entry)
	if err != nil {
		return err
	}
	if vm.CallSP >= len(vm.CallStack) {
		return newErr(ErrStackOverflow, "call stack overflow")
	}
	if n > vm.SP {
		return newErr(ErrStackUnderflow, "CALL needs %d arguments, stack has %d", n, vm.SP)
	}
	newBP := vm.SP - n
	vm.CallStack[vm.CallSP] = frame.Call{
		ReturnAddr: vm.IP,
		BasePtr:    newBP,
		SavedBP:    vm.BP,
		ArgCount:   n,
	}
	vm.CallSP++
	vm.BP = newBP
	vm.IP = target
	return nil
}

// execReturn implements RETURN. Returning with no frame present is a
// clean halt (§4.6), not an error. A single return value, if the callee
// left one on top of its operand stack, travels down into the slot its
// arguments occupied (§4.6); everything else the callee pushed is
// discarded with the frame.
func (vm *VM) execReturn() *Error {
	if vm.CallSP <= 0 {
		vm.Halted = true
		return nil
	}
	vm.CallSP--
	f := vm.CallStack[vm.CallSP]

	var retVal value.Value
	hasRet := vm.SP > f.BasePtr
	if hasRet {
		retVal = vm.Stack[vm.SP-1]
	}

	vm.BP = f.SavedBP
	vm.SP = f.BasePtr
	vm.IP = f.ReturnAddr
	if hasRet {
		return vm.push(retVal)
	}
	return nil
}

func (vm *VM) execClosureNew() *Error {
	fnVal, err := vm.pop()
	if err != nil {
		return err
	}
	if fnVal.Kind != value.KindFunction {
		return newErr(ErrTypeError, "CLOSURE_NEW requires a function, got %s", fnVal.Kind)
	}
	clos := vm.Heap.NewClosure(fnVal.H)
	vm.collectIfNeeded()
	return vm.push(clos)
}

// execClosureCapture pops a value and appends it to the closure on top of
// the stack, which remains (§4.6).
func (vm *VM) execClosureCapture() *Error {
	captured, err := vm.pop()
	if err != nil {
		return err
	}
	closVal, err := vm.peek()
	if err != nil {
		return err
	}
	if closVal.Kind != value.KindClosure {
		return newErr(ErrTypeError, "CLOSURE_CAPTURE requires a closure on top of stack, got %s", closVal.Kind)
	}
	obj, ok := vm.Heap.Get(closVal.H)
	if !ok {
		return newErr(ErrInvalidOperation, "closure handle %d is not live", closVal.H)
	}
	obj.Clos.Captures = append(obj.Clos.Captures, captured)
	return nil
}
