package engine

import (
	"testing"

	"glintvm/internal/value"
)

func TestStringConcat(t *testing.T) {
	vm := newTestVM(dummyProgram(5))
	push(vm, value.String("foo"))
	push(vm, value.String("bar"))
	if err := vm.execStringConcat(); err != nil {
		t.Fatalf("execStringConcat: %v", err)
	}
	got, _ := vm.pop()
	if got.S != "foobar" {
		t.Errorf("got %q, want \"foobar\"", got.S)
	}
}

func TestStringConcatRequiresStrings(t *testing.T) {
	vm := newTestVM(dummyProgram(5))
	push(vm, value.String("foo"))
	push(vm, value.Int(1))
	if err := vm.execStringConcat(); err == nil || err.Kind != ErrTypeError {
		t.Errorf("STRING_CONCAT with a non-string operand should return TypeError, got %v", err)
	}
}

func TestStringSubstrValidRange(t *testing.T) {
	vm := newTestVM(dummyProgram(5))
	push(vm, value.String("hello world"))
	push(vm, value.Int(6))
	push(vm, value.Int(5))
	if err := vm.execStringSubstr(); err != nil {
		t.Fatalf("execStringSubstr: %v", err)
	}
	got, _ := vm.pop()
	if got.S != "world" {
		t.Errorf("got %q, want \"world\"", got.S)
	}
}

func TestStringSubstrLengthClippedToEnd(t *testing.T) {
	vm := newTestVM(dummyProgram(5))
	push(vm, value.String("hello"))
	push(vm, value.Int(2))
	push(vm, value.Int(100))
	if err := vm.execStringSubstr(); err != nil {
		t.Fatalf("execStringSubstr: %v", err)
	}
	got, _ := vm.pop()
	if got.S != "llo" {
		t.Errorf("got %q, want \"llo\"", got.S)
	}
}

func TestStringSubstrNegativeLengthClipsToEnd(t *testing.T) {
	vm := newTestVM(dummyProgram(5))
	push(vm, value.String("hello"))
	push(vm, value.Int(1))
	push(vm, value.Int(-1))
	if err := vm.execStringSubstr(); err != nil {
		t.Fatalf("execStringSubstr: %v", err)
	}
	got, _ := vm.pop()
	if got.S != "ello" {
		t.Errorf("got %q, want \"ello\"", got.S)
	}
}

func TestStringSubstrStartOutOfRange(t *testing.T) {
	vm := newTestVM(dummyProgram(5))
	push(vm, value.String("hi"))
	push(vm, value.Int(5))
	push(vm, value.Int(1))
	if err := vm.execStringSubstr(); err == nil || err.Kind != ErrIndexOutOfBounds {
		t.Errorf("out-of-range start should return IndexOutOfBounds, got %v", err)
	}
}

func TestStringSubstrNegativeStartOutOfRange(t *testing.T) {
	vm := newTestVM(dummyProgram(5))
	push(vm, value.String("hi"))
	push(vm, value.Int(-1))
	push(vm, value.Int(1))
	if err := vm.execStringSubstr(); err == nil || err.Kind != ErrIndexOutOfBounds {
		t.Errorf("negative start should return IndexOutOfBounds, got %v", err)
	}
}

func TestStringLen(t *testing.T) {
	vm := newTestVM(dummyProgram(5))
	push(vm, value.String("hello"))
	if err := vm.execStringLen(); err != nil {
		t.Fatalf("execStringLen: %v", err)
	}
	got, _ := vm.pop()
	if got.I != 5 {
		t.Errorf("len = %d, want 5", got.I)
	}
}

func TestStringLenIsByteLength(t *testing.T) {
	vm := newTestVM(dummyProgram(5))
	push(vm, value.String("café")) // "é" is two UTF-8 bytes
	if err := vm.execStringLen(); err != nil {
		t.Fatalf("execStringLen: %v", err)
	}
	got, _ := vm.pop()
	if got.I != 5 {
		t.Errorf("len = %d, want 5 (byte length, not rune count)", got.I)
	}
}

func TestStringCompare(t *testing.T) {
	cases := []struct {
		a, b string
		want int64
	}{
		{"abc", "abc", 0},
		{"abc", "abd", -1},
		{"abd", "abc", 1},
	}
	for _, c := range cases {
		vm := newTestVM(dummyProgram(5))
		push(vm, value.String(c.a))
		push(vm, value.String(c.b))
		if err := vm.execStringCompare(); err != nil {
			t.Fatalf("execStringCompare(%q, %q): %v", c.a, c.b, err)
		}
		got, _ := vm.pop()
		if got.I != c.want {
			t.Errorf("compare(%q, %q) = %d, want %d", c.a, c.b, got.I, c.want)
		}
	}
}
