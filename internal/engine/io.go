package engine

import (
	"glintvm/internal/value"
)

// execPrint pops a value, renders it, and writes it followed by a newline.
func (vm *VM) execPrint() *Error {
	v, err := vm.pop()
	if err != nil {
		return err
	}
	text := vm.toText(v)
	if _, werr := vm.Out.Write([]byte(text + "\n")); werr != nil {
		return newErr(ErrIO, "PRINT: %v", werr)
	}
	return nil
}

// execInput reads one newline-terminated line and pushes it as a string,
// with the trailing newline stripped.
func (vm *VM) execInput() *Error {
	line, rerr := vm.In.ReadString('\n')
	if rerr != nil && line == "" {
		return newErr(ErrIO, "INPUT: %v", rerr)
	}
	for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
		line = line[:len(line)-1]
	}
	return vm.push(value.String(line))
}
