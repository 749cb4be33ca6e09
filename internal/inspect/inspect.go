// Package inspect implements the engine's read-only introspection surface
// (§6's Host API: stack, globals, and memory statistics), independent of
// any particular rendering front end.
package inspect

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"glintvm/internal/engine"
	"glintvm/internal/value"
)

// StackEntry is one operand-stack slot, bottom first.
type StackEntry struct {
	Index int
	Text  string
	Kind  string
}

// GlobalEntry is one non-nil global slot.
type GlobalEntry struct {
	Slot int
	Text string
	Kind string
}

// MemoryStats mirrors the collector's Stats plus the weak-reference count.
type MemoryStats struct {
	Young       int
	Old         int
	Collections int
	WeakRefs    int
}

func render(vm *engine.VM, v value.Value) string {
	return vm.ToText(v)
}

// Stack reports every live operand-stack slot, bottom first.
func Stack(vm *engine.VM) []StackEntry {
	entries := make([]StackEntry, 0, vm.StackDepth())
	for i := 0; i < vm.StackDepth(); i++ {
		v := vm.StackAt(i)
		entries = append(entries, StackEntry{Index: i, Text: render(vm, v), Kind: v.Kind.String()})
	}
	return entries
}

// Globals reports every non-nil global slot.
func Globals(vm *engine.VM) []GlobalEntry {
	var entries []GlobalEntry
	for i, v := range vm.GlobalsSnapshot() {
		if v.Kind == value.KindNil {
			continue
		}
		entries = append(entries, GlobalEntry{Slot: i, Text: render(vm, v), Kind: v.Kind.String()})
	}
	return entries
}

// Memory reports generational heap occupancy and collector activity.
func Memory(vm *engine.VM) MemoryStats {
	stats := vm.GCStats()
	return MemoryStats{Young: stats.Young, Old: stats.Old, Collections: stats.Collections, WeakRefs: vm.WeakRefCount()}
}

// PrintStack writes the operand stack as a column-aligned, colorized table.
func PrintStack(w io.Writer, vm *engine.VM) {
	idxStyle := color.New(color.FgCyan)
	kindStyle := color.New(color.FgYellow)
	for _, e := range Stack(vm) {
		idx := idxStyle.Sprintf("%4d", e.Index)
		kind := kindStyle.Sprint(runewidth.FillRight(e.Kind, 8))
		fmt.Fprintf(w, "%s  %s  %s\n", idx, kind, e.Text)
	}
}

// PrintGlobals writes every live global as a column-aligned table.
func PrintGlobals(w io.Writer, vm *engine.VM) {
	idxStyle := color.New(color.FgCyan)
	kindStyle := color.New(color.FgYellow)
	for _, e := range Globals(vm) {
		idx := idxStyle.Sprintf("%4d", e.Slot)
		kind := kindStyle.Sprint(runewidth.FillRight(e.Kind, 8))
		fmt.Fprintf(w, "%s  %s  %s\n", idx, kind, e.Text)
	}
}

// PrintMemoryStats writes a one-line heap/collector summary.
func PrintMemoryStats(w io.Writer, vm *engine.VM) {
	m := Memory(vm)
	label := color.New(color.FgMagenta, color.Bold).Sprint("heap")
	fmt.Fprintf(w, "%s  young=%d old=%d collections=%d weakrefs=%d\n",
		label, m.Young, m.Old, m.Collections, m.WeakRefs)
}
