package main

import (
	"github.com/spf13/cobra"

	"glintvm/internal/config"
)

// loadConfigFlag resolves --config against the engine defaults, falling
// back cleanly when the flag is unset.
func loadConfigFlag(cmd *cobra.Command) (config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return config.Config{}, err
	}
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}
