// Package value defines the tagged runtime value representation shared by
// the engine, heap, and collector.
package value

import (
	"fmt"
	"strconv"
)

// Handle is a stable, monotonically increasing reference to a heap object.
// Handle(0) is always invalid.
type Handle uint32

// Kind identifies the runtime variant of a Value.
type Kind uint8

const (
	KindNil Kind = iota
	KindInt
	KindFloat
	KindBool
	KindString
	KindArray
	KindMap
	KindRecord
	KindFunction
	KindClosure
	KindWeakRef // engine-internal: payload is a weak-reference id, not a heap handle
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindMap:
		return "map"
	case KindRecord:
		return "record"
	case KindFunction:
		return "function"
	case KindClosure:
		return "closure"
	case KindWeakRef:
		return "weakref"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Value is the tagged union the engine operates on. Only the field(s)
// matching Kind are meaningful.
type Value struct {
	Kind Kind
	I    int64  // KindInt, KindWeakRef
	F    float64
	B    bool
	S    string
	H    Handle // KindArray, KindMap, KindRecord, KindFunction, KindClosure
}

func Nil() Value                 { return Value{Kind: KindNil} }
func Int(n int64) Value          { return Value{Kind: KindInt, I: n} }
func Float(f float64) Value      { return Value{Kind: KindFloat, F: f} }
func Bool(b bool) Value          { return Value{Kind: KindBool, B: b} }
func String(s string) Value      { return Value{Kind: KindString, S: s} }
func Array(h Handle) Value       { return Value{Kind: KindArray, H: h} }
func Map(h Handle) Value         { return Value{Kind: KindMap, H: h} }
func Record(h Handle) Value      { return Value{Kind: KindRecord, H: h} }
func Function(h Handle) Value    { return Value{Kind: KindFunction, H: h} }
func Closure(h Handle) Value     { return Value{Kind: KindClosure, H: h} }
func WeakRef(id int64) Value     { return Value{Kind: KindWeakRef, I: id} }

// IsHeap reports whether v refers to a heap object the collector traces.
func (v Value) IsHeap() bool {
	switch v.Kind {
	case KindArray, KindMap, KindRecord, KindFunction, KindClosure:
		return true
	default:
		return false
	}
}

// IsNumeric reports whether v is an int or a float.
func (v Value) IsNumeric() bool {
	return v.Kind == KindInt || v.Kind == KindFloat
}

// Num returns v's numeric value as a float64, regardless of int/float tag.
func (v Value) Num() float64 {
	if v.Kind == KindInt {
		return float64(v.I)
	}
	return v.F
}

// IsTruthy implements §3's truthiness law. Array/map emptiness is resolved
// by the caller (the engine has to consult the heap for that), so this
// method only covers the heap-independent variants; callers pass whether
// the array/map is empty via emptyHeap.
func (v Value) IsTruthy(emptyHeap bool) bool {
	switch v.Kind {
	case KindNil:
		return false
	case KindBool:
		return v.B
	case KindInt:
		return v.I != 0
	case KindFloat:
		return v.F != 0
	case KindString:
		return v.S != ""
	case KindArray, KindMap:
		return !emptyHeap
	case KindRecord, KindFunction, KindClosure:
		return true
	default:
		return false
	}
}

// Equal implements §3's structural equality: same tag, bit-equal payload;
// heap values compare by handle identity.
func Equal(a, b Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindNil:
		return true
	case KindInt, KindWeakRef:
		return a.I == b.I
	case KindFloat:
		return a.F == b.F
	case KindBool:
		return a.B == b.B
	case KindString:
		return a.S == b.S
	case KindArray, KindMap, KindRecord, KindFunction, KindClosure:
		return a.H == b.H
	default:
		return false
	}
}

// ToText renders v the way PRINT and diagnostic dumps do. Heap handles are
// rendered by the caller (ToText needs the heap to know kind-specific
// counts), via the render hook.
func (v Value) ToText(render func(Value) string) string {
	switch v.Kind {
	case KindNil:
		return "nil"
	case KindInt:
		return strconv.FormatInt(v.I, 10)
	case KindFloat:
		return strconv.FormatFloat(v.F, 'g', -1, 64)
	case KindBool:
		if v.B {
			return "true"
		}
		return "false"
	case KindString:
		return v.S
	case KindWeakRef:
		return fmt.Sprintf("<WeakRef@%d>", v.I)
	default:
		if render != nil {
			return render(v)
		}
		return fmt.Sprintf("<%s@%d>", v.Kind, v.H)
	}
}
