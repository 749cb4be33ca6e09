package program

import (
	"bytes"
	"strings"
	"testing"
)

func TestLookupRoundTrip(t *testing.T) {
	for op, name := range names {
		got, ok := Lookup(name)
		if !ok || got != op {
			t.Errorf("Lookup(%q) = %v, %v, want %v, true", name, got, ok, op)
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	if _, ok := Lookup("NOT_AN_OPCODE"); ok {
		t.Error("Lookup of an unknown mnemonic should report false")
	}
}

func TestInternDedups(t *testing.T) {
	var p Program
	a := p.Intern("foo")
	b := p.Intern("bar")
	c := p.Intern("foo")
	if a != c {
		t.Errorf("interning the same string twice should return the same index: %d != %d", a, c)
	}
	if a == b {
		t.Error("distinct strings should get distinct indices")
	}
	if len(p.Strings) != 2 {
		t.Errorf("string pool has %d entries, want 2", len(p.Strings))
	}
}

func TestAtOutOfRange(t *testing.T) {
	p := &Program{Instrs: []Instruction{Op0(OpNop)}}
	if _, ok := p.At(-1); ok {
		t.Error("negative ip should not resolve")
	}
	if _, ok := p.At(1); ok {
		t.Error("ip past the end should not resolve")
	}
	if _, ok := p.At(0); !ok {
		t.Error("ip 0 should resolve")
	}
}

func TestPushFloatRoundTrip(t *testing.T) {
	instr := PushFloatInstr(3.25)
	if PushKind(instr.B) != PushFloat {
		t.Fatalf("expected PushFloat kind, got %v", PushKind(instr.B))
	}
	if got := DecodePushFloat(instr.A); got != 3.25 {
		t.Errorf("DecodePushFloat() = %v, want 3.25", got)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	p := &Program{
		Instrs: []Instruction{
			PushIntInstr(10),
			PushIntInstr(32),
			Op0(OpAdd),
			Op0(OpPrint),
			Op0(OpHalt),
		},
		Strings: []string{"hello"},
	}
	data, err := Encode(p)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if decoded.Len() != p.Len() {
		t.Fatalf("decoded program has %d instructions, want %d", decoded.Len(), p.Len())
	}
	for i := range p.Instrs {
		if decoded.Instrs[i] != p.Instrs[i] {
			t.Errorf("instruction %d = %+v, want %+v", i, decoded.Instrs[i], p.Instrs[i])
		}
	}
	if len(decoded.Strings) != 1 || decoded.Strings[0] != "hello" {
		t.Errorf("decoded strings = %v, want [hello]", decoded.Strings)
	}
}

// Regression test for a msgpack tag collision that made B silently 0 after
// a round trip whenever A and C were also non-zero.
func TestEncodeDecodeRoundTripMultiOperand(t *testing.T) {
	p := &Program{
		Instrs: []Instruction{
			Call(3, 17),
			ForInit(4, 9),
			FunctionDef(2, 21, true),
		},
	}
	data, err := Encode(p)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	for i := range p.Instrs {
		if decoded.Instrs[i] != p.Instrs[i] {
			t.Errorf("instruction %d = %+v, want %+v", i, decoded.Instrs[i], p.Instrs[i])
		}
	}
}

func TestFormatAndParseTextRoundTrip(t *testing.T) {
	p := &Program{
		Instrs: []Instruction{
			PushIntInstr(10),
			PushIntInstr(32),
			Op0(OpAdd),
			Op0(OpPrint),
			Op0(OpHalt),
		},
	}
	var buf bytes.Buffer
	if err := FormatText(&buf, p); err != nil {
		t.Fatalf("FormatText: %v", err)
	}

	parsed, err := ParseText(&buf)
	if err != nil {
		t.Fatalf("ParseText: %v", err)
	}
	if parsed.Len() != p.Len() {
		t.Fatalf("parsed program has %d instructions, want %d", parsed.Len(), p.Len())
	}
	for i := range p.Instrs {
		if parsed.Instrs[i] != p.Instrs[i] {
			t.Errorf("instruction %d = %+v, want %+v", i, parsed.Instrs[i], p.Instrs[i])
		}
	}
}

func TestParseTextPushString(t *testing.T) {
	src := `PUSH_STR "hello world"
PRINT
HALT
`
	p, err := ParseText(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseText: %v", err)
	}
	if p.Len() != 3 {
		t.Fatalf("program has %d instructions, want 3", p.Len())
	}
	if PushKind(p.Instrs[0].B) != PushString {
		t.Fatalf("first instruction is not a PUSH_STR, got %+v", p.Instrs[0])
	}
	idx := p.Instrs[0].A
	if p.Strings[idx] != "hello world" {
		t.Errorf("interned string = %q, want %q", p.Strings[idx], "hello world")
	}
}

func TestParseTextSkipsCommentsAndBlankLines(t *testing.T) {
	src := `# a comment

PUSH_STR "ok"
PRINT
HALT
`
	p, err := ParseText(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseText: %v", err)
	}
	if p.Len() != 3 {
		t.Fatalf("program has %d instructions, want 3", p.Len())
	}
}

func TestParseTextIgnoresLeadingAddressColumn(t *testing.T) {
	src := `   0  PUSH_STR "ok"
   1  PRINT
   2  HALT
`
	p, err := ParseText(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseText: %v", err)
	}
	if p.Len() != 3 {
		t.Fatalf("program has %d instructions, want 3", p.Len())
	}
}
