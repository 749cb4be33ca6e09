// Package heap implements the handle-indexed object arena that backs the
// engine's array, map, record, function, and closure values. Objects are
// owned by the collector (internal/gc); everything else only borrows a
// handle, per the object header living inline with the arena slot rather
// than requiring a linear scan to locate it.
package heap

import (
	"fmt"

	"glintvm/internal/value"
)

// Kind identifies the kind of heap object.
type Kind uint8

const (
	KindArray Kind = iota
	KindMap
	KindRecord
	KindFunction
	KindClosure
)

func (k Kind) String() string {
	switch k {
	case KindArray:
		return "Array"
	case KindMap:
		return "Map"
	case KindRecord:
		return "Record"
	case KindFunction:
		return "Function"
	case KindClosure:
		return "Closure"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Generation identifies which generation currently owns an object.
type Generation uint8

const (
	Young Generation = iota
	Old
)

// Function is the immutable descriptor built by FUNCTION_DEF.
type Function struct {
	Entry    int
	Arity    int
	Varargs  bool
	Locals   int
	Name     string
}

// Closure wraps a Function handle with its captured values.
type Closure struct {
	Fn       value.Handle
	Captures []value.Value
}

// Entry is a single hashed map/record slot. The original string key is
// never retained (documented limitation: two distinct keys sharing a hash
// are indistinguishable).
type Entry struct {
	Hash uint64
	V    value.Value
}

// Object is the arena slot every heap handle resolves to.
type Object struct {
	Kind    Kind
	Gen     Generation
	Marked  bool
	Tenure  int
	AllocID uint64
	Alive   bool

	// Observers holds the ids (weakref.ID, stored untyped to avoid an
	// import cycle) of every WeakRef currently pointing at this object.
	Observers []uint32

	Elems   []value.Value // KindArray
	Entries []Entry       // KindMap, KindRecord
	Fn      Function      // KindFunction
	Clos    Closure       // KindClosure
}

// ValueFor builds the Value variant that refers to this object's handle.
func (o *Object) ValueFor(h value.Handle) value.Value {
	switch o.Kind {
	case KindArray:
		return value.Array(h)
	case KindMap:
		return value.Map(h)
	case KindRecord:
		return value.Record(h)
	case KindFunction:
		return value.Function(h)
	case KindClosure:
		return value.Closure(h)
	default:
		return value.Nil()
	}
}

// RenderText implements the "<Kind>[<count>]" / "<Kind>@<address>" token
// from §4.1.
func (o *Object) RenderText(h value.Handle) string {
	switch o.Kind {
	case KindArray:
		return fmt.Sprintf("%s[%d]", o.Kind, len(o.Elems))
	case KindMap, KindRecord:
		return fmt.Sprintf("%s[%d]", o.Kind, len(o.Entries))
	default:
		return fmt.Sprintf("%s@%d", o.Kind, h)
	}
}
