package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var rootCmd = &cobra.Command{
	Use:   "glintvm",
	Short: "Stack-based bytecode VM toolchain",
	Long:  `glintvm runs, assembles, disassembles, and inspects programs for the tagged-value bytecode engine`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		applyColorMode(cmd)
	},
}

func main() {
	rootCmd.Version = buildVersion()

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(assembleCmd)
	rootCmd.AddCommand(disassembleCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("config", "", "path to a TOML config overriding engine defaults")
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// applyColorMode resolves --color against terminal detection, once cobra
// has parsed flags but before any subcommand runs.
func applyColorMode(cmd *cobra.Command) {
	mode, _ := cmd.Flags().GetString("color")
	switch mode {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	default:
		color.NoColor = !isTerminal(os.Stdout)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
