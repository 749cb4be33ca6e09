package engine

import (
	"glintvm/internal/program"
	"glintvm/internal/value"
)

func (vm *VM) execPush(instr program.Instruction) *Error {
	switch program.PushKind(instr.B) {
	case program.PushInt:
		return vm.push(value.Int(instr.A))
	case program.PushFloat:
		return vm.push(value.Float(program.DecodePushFloat(instr.A)))
	case program.PushBool:
		return vm.push(value.Bool(instr.A != 0))
	case program.PushNil:
		return vm.push(value.Nil())
	case program.PushString:
		idx := instr.A
		if idx < 0 || int(idx) >= len(vm.Program.Strings) {
			return newErr(ErrInvalidInstruction, "PUSH string pool index %d out of range", idx)
		}
		return vm.push(value.String(vm.Program.Strings[idx]))
	default:
		return newErr(ErrInvalidInstruction, "unknown PUSH variant %d", instr.B)
	}
}

func (vm *VM) execDup() *Error {
	v, err := vm.peek()
	if err != nil {
		return err
	}
	return vm.push(v)
}

func (vm *VM) execSwap() *Error {
	if vm.SP < 2 {
		return newErr(ErrStackUnderflow, "SWAP needs two operands")
	}
	vm.Stack[vm.SP-1], vm.Stack[vm.SP-2] = vm.Stack[vm.SP-2], vm.Stack[vm.SP-1]
	return nil
}
