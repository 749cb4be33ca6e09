package engine

import (
	"bufio"
	"bytes"
	"strings"

	"glintvm/internal/config"
	"glintvm/internal/program"
)

// newTestVM builds a VM over instrs with small, test-sized stacks and an
// in-memory Out/In pair.
func newTestVM(instrs []program.Instruction) *VM {
	cfg := config.Default()
	cfg.StackSize = 64
	cfg.CallStackSize = 16
	cfg.LoopStackSize = 8
	cfg.SwitchStackSize = 8
	cfg.GlobalVarCount = 16
	vm := New(&program.Program{Instrs: instrs}, cfg)
	vm.Out = new(bytes.Buffer)
	vm.In = bufio.NewReader(strings.NewReader(""))
	return vm
}

func runUntilHalt(vm *VM) *Error {
	return vm.Run()
}
