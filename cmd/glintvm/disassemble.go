package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"glintvm/internal/program"
)

var disassembleCmd = &cobra.Command{
	Use:   "disassemble <program.gvm>",
	Short: "Disassemble a binary program into its text form",
	Args:  cobra.ExactArgs(1),
	RunE:  runDisassemble,
}

func runDisassemble(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}
	prog, err := program.Decode(data)
	if err != nil {
		return fmt.Errorf("decode %s: %w", args[0], err)
	}
	return program.FormatText(cmd.OutOrStdout(), prog)
}
