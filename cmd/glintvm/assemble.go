package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"glintvm/internal/program"
)

var assembleCmd = &cobra.Command{
	Use:   "assemble <source.gvmasm>",
	Short: "Assemble a text program into its binary encoding",
	Args:  cobra.ExactArgs(1),
	RunE:  runAssemble,
}

func init() {
	assembleCmd.Flags().StringP("out", "o", "", "output path (defaults to <source> with .gvm)")
}

func runAssemble(cmd *cobra.Command, args []string) error {
	src := args[0]
	f, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer f.Close()

	prog, err := program.ParseText(f)
	if err != nil {
		return fmt.Errorf("parse %s: %w", src, err)
	}

	data, err := program.Encode(prog)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	out, err := cmd.Flags().GetString("out")
	if err != nil {
		return err
	}
	if out == "" {
		out = src + ".gvm"
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", out, len(data))
	return nil
}
