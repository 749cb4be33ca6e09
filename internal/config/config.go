// Package config loads the VM's tunable fixed sizes (spec §6) from an
// optional TOML file, following the same library the teacher's project
// manifest loader uses (cmd/surge/module_helpers.go).
package config

import "github.com/BurntSushi/toml"

// Config holds the fixed-size defaults spec §6 lists as tunable.
type Config struct {
	StackSize       int `toml:"stack_size"`
	CallStackSize   int `toml:"call_stack_size"`
	LoopStackSize   int `toml:"loop_stack_size"`
	SwitchStackSize int `toml:"switch_stack_size"`
	GlobalVarCount  int `toml:"global_var_count"`
	YoungThreshold  int `toml:"gc_young_threshold"`
}

// Default returns spec §6's defaults.
func Default() Config {
	return Config{
		StackSize:       8192,
		CallStackSize:   1024,
		LoopStackSize:   256,
		SwitchStackSize: 128,
		GlobalVarCount:  1024,
		YoungThreshold:  100,
	}
}

// Load reads a TOML config file, starting from Default() and overriding
// only the fields the file sets.
func Load(path string) (Config, error) {
	cfg := Default()
	_, err := toml.DecodeFile(path, &cfg)
	return cfg, err
}
