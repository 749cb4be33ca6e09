package heap

import (
	"hash/fnv"

	"glintvm/internal/value"
)

// Heap owns every live object, partitioned across the young and old
// generations the collector tenures between.
type Heap struct {
	next        value.Handle
	nextAllocID uint64
	Young       map[value.Handle]*Object
	Old         map[value.Handle]*Object

	// Allocs counts allocations since the last minor collection; the
	// collector compares it against the young-generation threshold.
	Allocs int
}

// New returns an empty heap.
func New() *Heap {
	return &Heap{
		next:  1,
		Young: make(map[value.Handle]*Object, 64),
		Old:   make(map[value.Handle]*Object, 64),
	}
}

func (h *Heap) alloc(kind Kind) (value.Handle, *Object) {
	handle := h.next
	h.next++
	h.nextAllocID++
	obj := &Object{Kind: kind, Gen: Young, Alive: true, AllocID: h.nextAllocID}
	h.Young[handle] = obj
	h.Allocs++
	return handle, obj
}

func (h *Heap) NewArray() value.Value {
	handle, obj := h.alloc(KindArray)
	obj.Elems = nil
	return value.Array(handle)
}

func (h *Heap) NewMap() value.Value {
	handle, _ := h.alloc(KindMap)
	return value.Map(handle)
}

func (h *Heap) NewRecord() value.Value {
	handle, _ := h.alloc(KindRecord)
	return value.Record(handle)
}

func (h *Heap) NewFunction(entry, arity, locals int, varargs bool, name string) value.Value {
	handle, obj := h.alloc(KindFunction)
	obj.Fn = Function{Entry: entry, Arity: arity, Varargs: varargs, Locals: locals, Name: name}
	return value.Function(handle)
}

func (h *Heap) NewClosure(fn value.Handle) value.Value {
	handle, obj := h.alloc(KindClosure)
	obj.Clos = Closure{Fn: fn}
	return value.Closure(handle)
}

// Get resolves a handle to its object in whichever generation holds it.
// ok is false for handle 0 or a handle with no live object (freed or never
// allocated).
func (h *Heap) Get(hnd value.Handle) (*Object, bool) {
	if hnd == 0 {
		return nil, false
	}
	if obj, ok := h.Young[hnd]; ok {
		return obj, true
	}
	if obj, ok := h.Old[hnd]; ok {
		return obj, true
	}
	return nil, false
}

// HashKey is the 64-bit digest used to address map/record entries; the
// original string key is never retained (§3's documented limitation).
func HashKey(key string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(key))
	return h.Sum64()
}

func entryIndex(entries []Entry, hash uint64) int {
	for i, e := range entries {
		if e.Hash == hash {
			return i
		}
	}
	return -1
}

// MapSet inserts or overwrites the entry for key's hash.
func MapSet(obj *Object, key string, v value.Value) {
	hash := HashKey(key)
	if i := entryIndex(obj.Entries, hash); i >= 0 {
		obj.Entries[i].V = v
		return
	}
	obj.Entries = append(obj.Entries, Entry{Hash: hash, V: v})
}

// MapGet returns the value for key's hash, or (Nil, false) on miss.
func MapGet(obj *Object, key string) (value.Value, bool) {
	hash := HashKey(key)
	if i := entryIndex(obj.Entries, hash); i >= 0 {
		return obj.Entries[i].V, true
	}
	return value.Nil(), false
}

// MapHas reports whether key's hash has an entry.
func MapHas(obj *Object, key string) bool {
	return entryIndex(obj.Entries, HashKey(key)) >= 0
}

// MapDelete removes key's entry, reporting whether one was present.
func MapDelete(obj *Object, key string) bool {
	hash := HashKey(key)
	i := entryIndex(obj.Entries, hash)
	if i < 0 {
		return false
	}
	obj.Entries = append(obj.Entries[:i], obj.Entries[i+1:]...)
	return true
}

// ArrayGet reads index i, reporting false on an out-of-bounds index.
func ArrayGet(obj *Object, i int64) (value.Value, bool) {
	if i < 0 || i >= int64(len(obj.Elems)) {
		return value.Nil(), false
	}
	return obj.Elems[i], true
}

// ArraySet grows the array with nil padding to admit index i, per §4.8.
func ArraySet(obj *Object, i int64, v value.Value) bool {
	if i < 0 {
		return false
	}
	for int64(len(obj.Elems)) <= i {
		obj.Elems = append(obj.Elems, value.Nil())
	}
	obj.Elems[i] = v
	return true
}

func ArrayPush(obj *Object, v value.Value) {
	obj.Elems = append(obj.Elems, v)
}

// ArrayPop removes and returns the last element, reporting false if empty.
func ArrayPop(obj *Object) (value.Value, bool) {
	if len(obj.Elems) == 0 {
		return value.Nil(), false
	}
	last := obj.Elems[len(obj.Elems)-1]
	obj.Elems = obj.Elems[:len(obj.Elems)-1]
	return last, true
}

// ClosureCapture appends v to clos's capture list.
func ClosureCapture(obj *Object, v value.Value) {
	obj.Clos.Captures = append(obj.Clos.Captures, v)
}
