package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"glintvm/internal/engine"
)

var runCmd = &cobra.Command{
	Use:   "run <program>",
	Short: "Execute a bytecode program to completion",
	Args:  cobra.ExactArgs(1),
	RunE:  runExecution,
}

func runExecution(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfigFlag(cmd)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	prog, err := loadProgram(args[0])
	if err != nil {
		return err
	}

	vm := engine.New(prog, cfg)
	if vmErr := vm.Run(); vmErr != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", vmErr.Kind, vmErr.Message)
		os.Exit(1)
	}
	os.Exit(vm.ExitCode)
	return nil
}
