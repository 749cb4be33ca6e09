package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"glintvm/internal/program"
)

// loadProgram reads a program from path, choosing the text assembly format
// for .gvmasm/.txt/.asm and the msgpack-encoded binary format otherwise.
func loadProgram(path string) (*program.Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if isTextProgram(path) {
		prog, err := program.ParseText(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		return prog, nil
	}
	prog, err := program.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return prog, nil
}

func isTextProgram(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gvmasm", ".txt", ".asm":
		return true
	default:
		return false
	}
}
