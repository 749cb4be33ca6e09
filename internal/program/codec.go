package program

import "github.com/vmihailenco/msgpack/v5"

// wireInstruction mirrors Instruction with exported msgpack tags stable
// across versions of this package, matching how the teacher pins its own
// disk-cache payload schema (internal/driver/dcache.go's DiskPayload).
type wireInstruction struct {
	Op uint8 `msgpack:"op"`
	A  int64 `msgpack:"a"`
	B  int64 `msgpack:"b"`
	C  int64 `msgpack:"c"`
}

type wireProgram struct {
	Schema  uint16            `msgpack:"schema"`
	Instrs  []wireInstruction `msgpack:"instrs"`
	Strings []string          `msgpack:"strings"`
}

const codecSchemaVersion uint16 = 1

// Encode serializes p to the binary container format loaded by `glintvm
// run`/`disassemble`.
func Encode(p *Program) ([]byte, error) {
	w := wireProgram{Schema: codecSchemaVersion, Instrs: make([]wireInstruction, len(p.Instrs)), Strings: p.Strings}
	for i, instr := range p.Instrs {
		w.Instrs[i] = wireInstruction{Op: uint8(instr.Op), A: instr.A, B: instr.B, C: instr.C}
	}
	return msgpack.Marshal(&w)
}

// Decode parses the binary container format produced by Encode.
func Decode(data []byte) (*Program, error) {
	var w wireProgram
	if err := msgpack.Unmarshal(data, &w); err != nil {
		return nil, err
	}
	p := &Program{Instrs: make([]Instruction, len(w.Instrs)), Strings: w.Strings}
	for i, instr := range w.Instrs {
		p.Instrs[i] = Instruction{Op: Op(instr.Op), A: instr.A, B: instr.B, C: instr.C}
	}
	return p, nil
}
