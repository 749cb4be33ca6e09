// Package engine implements the execution engine of spec §4.2-§4.11: the
// operand stack, instruction dispatch, and every opcode's semantics.
package engine

import (
	"bufio"
	"io"
	"os"

	"glintvm/internal/config"
	"glintvm/internal/frame"
	"glintvm/internal/gc"
	"glintvm/internal/heap"
	"glintvm/internal/program"
	"glintvm/internal/value"
	"glintvm/internal/weakref"
)

// VM is a stack-based bytecode interpreter for a single, already-built
// instruction vector. Multiple VMs never share state (spec §5).
type VM struct {
	Program *program.Program
	IP      int
	Halted  bool

	Stack []value.Value
	SP    int
	BP    int

	Globals []value.Value

	CallStack   []frame.Call
	CallSP      int
	LoopStack   []frame.Loop
	LoopSP      int
	SwitchStack []frame.Switch
	SwitchSP    int

	Heap *heap.Heap
	GC   *gc.Collector
	Weak *weakref.Table

	Exception *string

	Cfg config.Config

	Out io.Writer
	In  *bufio.Reader

	ExitCode int
}

// New creates a VM ready to execute prog under cfg.
func New(prog *program.Program, cfg config.Config) *VM {
	h := heap.New()
	vm := &VM{
		Program:     prog,
		Stack:       make([]value.Value, cfg.StackSize),
		Globals:     make([]value.Value, cfg.GlobalVarCount),
		CallStack:   make([]frame.Call, cfg.CallStackSize),
		LoopStack:   make([]frame.Loop, cfg.LoopStackSize),
		SwitchStack: make([]frame.Switch, cfg.SwitchStackSize),
		Heap:        h,
		Weak:        &weakref.Table{},
		Cfg:         cfg,
		Out:         os.Stdout,
		In:          bufio.NewReader(os.Stdin),
	}
	vm.GC = gc.New(h, vm.Weak.Invalidate)
	vm.GC.YoungThreshold = cfg.YoungThreshold
	for i := range vm.Globals {
		vm.Globals[i] = value.Nil()
	}
	return vm
}

// Roots gathers every live root per spec §4.10: the live stack prefix,
// non-nil globals, and every call frame's argument region.
func (vm *VM) Roots() []value.Value {
	roots := make([]value.Value, 0, vm.SP+len(vm.Globals))
	roots = append(roots, vm.Stack[:vm.SP]...)
	for _, g := range vm.Globals {
		if g.Kind != value.KindNil {
			roots = append(roots, g)
		}
	}
	for i := 0; i < vm.CallSP; i++ {
		f := vm.CallStack[i]
		end := f.BasePtr + f.ArgCount
		if end > vm.SP {
			end = vm.SP
		}
		if end > f.BasePtr {
			roots = append(roots, vm.Stack[f.BasePtr:end]...)
		}
	}
	return roots
}

func (vm *VM) push(v value.Value) *Error {
	if vm.SP >= len(vm.Stack) {
		return newErr(ErrStackOverflow, "operand stack overflow")
	}
	vm.Stack[vm.SP] = v
	vm.SP++
	return nil
}

func (vm *VM) pop() (value.Value, *Error) {
	if vm.SP <= 0 {
		return value.Nil(), newErr(ErrStackUnderflow, "operand stack underflow")
	}
	vm.SP--
	return vm.Stack[vm.SP], nil
}

func (vm *VM) peek() (value.Value, *Error) {
	if vm.SP <= 0 {
		return value.Nil(), newErr(ErrStackUnderflow, "operand stack underflow")
	}
	return vm.Stack[vm.SP-1], nil
}

// truthy resolves a Value's truthiness, consulting the heap for array/map
// emptiness.
func (vm *VM) truthy(v value.Value) bool {
	switch v.Kind {
	case value.KindArray:
		obj, ok := vm.Heap.Get(v.H)
		return ok && len(obj.Elems) > 0
	case value.KindMap:
		obj, ok := vm.Heap.Get(v.H)
		return ok && len(obj.Entries) > 0
	default:
		return v.IsTruthy(false)
	}
}

// renderValue implements ToText's heap-handle branch.
func (vm *VM) renderValue(v value.Value) string {
	obj, ok := vm.Heap.Get(v.H)
	if !ok {
		return "<freed>"
	}
	return obj.RenderText(v.H)
}

func (vm *VM) toText(v value.Value) string {
	return v.ToText(vm.renderValue)
}

// ToText exposes toText for the inspection surface (§6's Host API), which
// lives outside this package and has no other way to render heap handles.
func (vm *VM) ToText(v value.Value) string {
	return vm.toText(v)
}

// StackDepth reports how many operand-stack slots are live.
func (vm *VM) StackDepth() int { return vm.SP }

// StackAt reads operand-stack slot i without popping it.
func (vm *VM) StackAt(i int) value.Value { return vm.Stack[i] }

// GlobalsSnapshot returns the global slot table, bottom first.
func (vm *VM) GlobalsSnapshot() []value.Value { return vm.Globals }

// GCStats reports the collector's generational occupancy and activity.
func (vm *VM) GCStats() gc.Stats { return vm.GC.StatsSnapshot() }

// WeakRefCount reports how many weak references have been allocated.
func (vm *VM) WeakRefCount() int { return vm.Weak.Len() }

// collectIfNeeded is called after each heap allocation and gives the
// collector a chance to run before the young generation grows unbounded.
func (vm *VM) collectIfNeeded() {
	vm.GC.MaybeCollect(vm.Roots())
}

// Run drives the engine to completion: fetch, dispatch, repeat until
// Halted or a clean return with no frame present.
func (vm *VM) Run() *Error {
	for !vm.Halted {
		if err := vm.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Step executes exactly one instruction.
func (vm *VM) Step() *Error {
	if vm.Halted {
		return nil
	}
	instr, ok := vm.Program.At(vm.IP)
	if !ok {
		vm.Halted = true
		return nil
	}
	return vm.dispatch(instr)
}
