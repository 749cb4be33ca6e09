package engine

import (
	"glintvm/internal/frame"
	"glintvm/internal/value"
)

func (vm *VM) execTryStart(catchAddr int64) *Error {
	addr, err := vm.validJump(catchAddr)
	if err != nil {
		return err
	}
	if vm.CallSP >= len(vm.CallStack) {
		return newErr(ErrStackOverflow, "call stack overflow")
	}
	vm.CallStack[vm.CallSP] = frame.Call{
		BasePtr:   vm.BP,
		SavedBP:   vm.BP,
		SavedSP:   vm.SP,
		IsHandler: true,
		CatchAddr: addr,
	}
	vm.CallSP++
	return nil
}

// execThrow implements THROW's unwinding: pop frames until the topmost
// handler is found, restore sp/bp to that frame's saved values, and
// install the exception message. If no handler exists, the engine halts
// with RuntimeException (§4.7, §7) — user THROW is caught only by the
// nearest TRY_START/CATCH.
func (vm *VM) execThrow() *Error {
	msgVal, err := vm.pop()
	if err != nil {
		return err
	}
	msg := msgVal.S
	if msgVal.Kind != value.KindString {
		msg = vm.toText(msgVal)
	}

	handlerIdx := -1
	for i := vm.CallSP - 1; i >= 0; i-- {
		if vm.CallStack[i].IsHandler {
			handlerIdx = i
			break
		}
	}
	if handlerIdx < 0 {
		vm.Halted = true
		return newErr(ErrRuntimeException, "%s", msg)
	}

	handler := vm.CallStack[handlerIdx]
	vm.CallSP = handlerIdx + 1 // handler frame itself stays until TRY_END
	vm.SP = handler.SavedSP
	vm.BP = handler.BasePtr
	vm.IP = handler.CatchAddr
	vm.Exception = &msg
	return nil
}

// execCatch pushes the current exception's message (or nil) and clears it.
func (vm *VM) execCatch() *Error {
	if vm.Exception == nil {
		return vm.push(value.Nil())
	}
	msg := *vm.Exception
	vm.Exception = nil
	return vm.push(value.String(msg))
}

// execTryEnd pops the topmost frame iff it is a handler.
func (vm *VM) execTryEnd() *Error {
	if vm.CallSP <= 0 || !vm.CallStack[vm.CallSP-1].IsHandler {
		return newErr(ErrInvalidOperation, "TRY_END with no active handler frame")
	}
	vm.CallSP--
	return nil
}
