package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"glintvm/internal/engine"
)

type batchResult struct {
	path     string
	exitCode int
	err      *engine.Error
}

var batchCmd = &cobra.Command{
	Use:   "batch <program>...",
	Short: "Run multiple programs concurrently, each in its own VM",
	Long:  `Every program gets its own VM and heap; no state is shared between runs (§5)`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runBatch,
}

func init() {
	batchCmd.Flags().Int("jobs", 0, "max concurrent VMs (default: GOMAXPROCS)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfigFlag(cmd)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]batchResult, len(args))
	g, _ := errgroup.WithContext(cmd.Context())
	g.SetLimit(min(jobs, len(args)))

	for i, path := range args {
		i, path := i, path
		g.Go(func() error {
			prog, loadErr := loadProgram(path)
			if loadErr != nil {
				results[i] = batchResult{path: path, err: &engine.Error{Kind: engine.ErrIO, Message: loadErr.Error()}}
				return nil
			}
			vm := engine.New(prog, cfg)
			vmErr := vm.Run()
			results[i] = batchResult{path: path, exitCode: vm.ExitCode, err: vmErr}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	failed := 0
	okStyle := color.New(color.FgGreen)
	errStyle := color.New(color.FgRed)
	for _, r := range results {
		if r.err != nil {
			failed++
			errStyle.Fprintf(cmd.OutOrStdout(), "%s: %s: %s\n", r.path, r.err.Kind, r.err.Message)
			continue
		}
		okStyle.Fprintf(cmd.OutOrStdout(), "%s: exit %d\n", r.path, r.exitCode)
	}
	if failed > 0 {
		os.Exit(1)
	}
	return nil
}
