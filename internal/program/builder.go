package program

import "math"

// Op0 builds a zero-operand instruction.
func Op0(op Op) Instruction { return Instruction{Op: op} }

// Op1 builds a one-operand instruction.
func Op1(op Op, a int64) Instruction { return Instruction{Op: op, A: a} }

// Op2 builds a two-operand instruction.
func Op2(op Op, a, b int64) Instruction { return Instruction{Op: op, A: a, B: b} }

// Op3 builds a three-operand instruction.
func Op3(op Op, a, b, c int64) Instruction { return Instruction{Op: op, A: a, B: b, C: c} }

// The following are named constructors for every opcode that takes
// operands, matching spec §6/§4's per-instruction shapes. They exist so a
// compiler/assembler builds a Program without hand-encoding operand
// positions.

func PushIntInstr(n int64) Instruction   { return Op2(OpPush, n, int64(PushInt)) }
func PushFloatInstr(f float64) Instruction {
	return Op2(OpPush, int64(math.Float64bits(f)), int64(PushFloat))
}
func PushBoolInstr(b bool) Instruction {
	var n int64
	if b {
		n = 1
	}
	return Op2(OpPush, n, int64(PushBool))
}
func PushNilInstr() Instruction { return Op2(OpPush, 0, int64(PushNil)) }

// PushStringInstr pushes the string at poolIndex (see Program.Intern).
func PushStringInstr(poolIndex int64) Instruction { return Op2(OpPush, poolIndex, int64(PushString)) }

func LoadVar(slot int64) Instruction     { return Op1(OpLoadVar, slot) }
func StoreVar(slot int64) Instruction    { return Op1(OpStoreVar, slot) }
func LoadGlobal(slot int64) Instruction  { return Op1(OpLoadGlobal, slot) }
func StoreGlobal(slot int64) Instruction { return Op1(OpStoreGlobal, slot) }
func LoadArg(slot int64) Instruction     { return Op1(OpLoadArg, slot) }
func StoreArg(slot int64) Instruction    { return Op1(OpStoreArg, slot) }

func Jump(addr int64) Instruction         { return Op1(OpJump, addr) }
func JumpIfFalse(addr int64) Instruction  { return Op1(OpJumpIfFalse, addr) }
func JumpIfTrue(addr int64) Instruction   { return Op1(OpJumpIfTrue, addr) }

func Call(nArgs, entry int64) Instruction { return Op2(OpCall, nArgs, entry) }

func ForInit(condAddr, endAddr int64) Instruction { return Op2(OpForInit, condAddr, endAddr) }
func WhileStart(endAddr int64) Instruction        { return Op1(OpWhileStart, endAddr) }

func SwitchStart(endAddr int64) Instruction { return Op1(OpSwitchStart, endAddr) }
func Case(addr int64) Instruction           { return Op1(OpCase, addr) }
func DefaultCase(addr int64) Instruction    { return Op1(OpDefaultCase, addr) }

func TryStart(catchAddr int64) Instruction { return Op1(OpTryStart, catchAddr) }

func FunctionDef(arity, address int64, varargs bool) Instruction {
	var v int64
	if varargs {
		v = 1
	}
	return Op3(OpFunctionDef, arity, address, v)
}

// DecodePushFloat recovers the float64 PUSH encoded via PushFloatInstr.
func DecodePushFloat(a int64) float64 {
	return math.Float64frombits(uint64(a))
}
