package engine

import (
	"fortio.org/safecast"

	"glintvm/internal/program"
)

// toInt safely narrows an instruction operand (always int64 on the wire)
// to the platform int the rest of the engine indexes with.
func toInt(n int64) int {
	i, err := safecast.Conv[int](n)
	if err != nil {
		// operands this far out of range cannot address anything real;
		// clamp instead of panicking so InvalidJump/IndexOutOfBounds can
		// report cleanly from the caller.
		if n < 0 {
			return -1
		}
		return int(^uint(0) >> 1)
	}
	return i
}

// dispatch executes instr, advancing vm.IP per its control-flow shape.
func (vm *VM) dispatch(instr program.Instruction) *Error {
	vm.IP++

	switch instr.Op {
	case program.OpNop:
		// no-op

	case program.OpHalt:
		vm.Halted = true

	case program.OpPush:
		return vm.execPush(instr)
	case program.OpPop:
		_, err := vm.pop()
		return err
	case program.OpDup:
		return vm.execDup()
	case program.OpSwap:
		return vm.execSwap()

	case program.OpAdd, program.OpSub, program.OpMul, program.OpDiv, program.OpMod:
		return vm.execArith(instr.Op)
	case program.OpNeg:
		return vm.execNeg()

	case program.OpEq, program.OpNe:
		return vm.execEquality(instr.Op)
	case program.OpLt, program.OpLe, program.OpGt, program.OpGe:
		return vm.execCompare(instr.Op)

	case program.OpAnd, program.OpOr:
		return vm.execLogic(instr.Op)
	case program.OpNot:
		return vm.execNot()

	case program.OpLoadVar, program.OpLoadArg:
		return vm.execLoadVar(instr.A)
	case program.OpStoreVar, program.OpStoreArg:
		return vm.execStoreVar(instr.A)
	case program.OpLoadGlobal:
		return vm.execLoadGlobal(instr.A)
	case program.OpStoreGlobal:
		return vm.execStoreGlobal(instr.A)

	case program.OpJump:
		return vm.execJump(instr.A)
	case program.OpJumpIfFalse:
		return vm.execJumpIf(instr.A, false)
	case program.OpJumpIfTrue:
		return vm.execJumpIf(instr.A, true)

	case program.OpCall:
		return vm.execCall(instr.A, instr.B)
	case program.OpReturn:
		return vm.execReturn()

	case program.OpForInit:
		return vm.execForInit(instr.A, instr.B)
	case program.OpForCondition:
		return vm.execLoopCondition()
	case program.OpForIncrement:
		return vm.execForIncrement()
	case program.OpForEnd:
		return vm.execLoopEnd()
	case program.OpWhileStart:
		return vm.execWhileStart(instr.A)
	case program.OpWhileCondition:
		return vm.execLoopCondition()
	case program.OpWhileEnd:
		return vm.execWhileEnd()
	case program.OpBreak:
		return vm.execBreak()
	case program.OpContinue:
		return vm.execContinue()

	case program.OpSwitchStart:
		return vm.execSwitchStart(instr.A)
	case program.OpCase:
		return vm.execCase(instr.A)
	case program.OpDefaultCase:
		return vm.execDefaultCase(instr.A)
	case program.OpSwitchEnd:
		return vm.execSwitchEnd()

	case program.OpTryStart:
		return vm.execTryStart(instr.A)
	case program.OpCatch:
		return vm.execCatch()
	case program.OpThrow:
		return vm.execThrow()
	case program.OpTryEnd:
		return vm.execTryEnd()

	case program.OpArrayNew:
		return vm.execArrayNew()
	case program.OpArrayGet:
		return vm.execArrayGet()
	case program.OpArraySet:
		return vm.execArraySet()
	case program.OpArrayLen:
		return vm.execArrayLen()
	case program.OpArrayPush:
		return vm.execArrayPush()
	case program.OpArrayPop:
		return vm.execArrayPop()

	case program.OpHashMapNew:
		return vm.execMapNew(false)
	case program.OpHashMapGet:
		return vm.execMapGet(false)
	case program.OpHashMapSet:
		return vm.execMapSet(false)
	case program.OpHashMapHas:
		return vm.execMapHas(false)
	case program.OpHashMapDelete:
		return vm.execMapDelete(false)

	case program.OpStructNew:
		return vm.execMapNew(true)
	case program.OpStructGet:
		return vm.execMapGet(true)
	case program.OpStructSet:
		return vm.execMapSet(true)

	case program.OpFunctionDef:
		return vm.execFunctionDef(instr.A, instr.B, instr.C)
	case program.OpClosureNew:
		return vm.execClosureNew()
	case program.OpClosureCapture:
		return vm.execClosureCapture()

	case program.OpStringConcat:
		return vm.execStringConcat()
	case program.OpStringSubstr:
		return vm.execStringSubstr()
	case program.OpStringLen:
		return vm.execStringLen()
	case program.OpStringCompare:
		return vm.execStringCompare()

	case program.OpPrint:
		return vm.execPrint()
	case program.OpInput:
		return vm.execInput()

	case program.OpGCCollect:
		vm.GC.FullCollect(vm.Roots())
	case program.OpWeakRefNew:
		return vm.execWeakRefNew()
	case program.OpWeakRefGet:
		return vm.execWeakRefGet()

	default:
		return newErr(ErrInvalidInstruction, "unknown opcode %d", instr.Op)
	}
	return nil
}
