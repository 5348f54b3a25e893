package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/andyballingall/schemaform/internal/config"
)

const InitCmdName = "init"

// NewInitCmd returns a command that writes a default configuration file.
func NewInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   InitCmdName + " [dirpath]",
		Short: "Create a default configuration file",
		Long:  "Write a commented " + config.ConfigFile + " to the given directory, or the current one.",
		Args:  cobra.MaximumNArgs(1),
		Example: `
  sfv init
  sfv init ./forms`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dirpath := "."
			if len(args) > 0 {
				dirpath = args[0]
			}

			if err := os.MkdirAll(dirpath, 0o750); err != nil {
				return fmt.Errorf("failed to create directory: %w", err)
			}

			configPath := filepath.Join(dirpath, config.ConfigFile)
			if err := config.WriteDefault(configPath); err != nil {
				return err
			}

			cmd.Printf("Created %s\n", configPath)
			return nil
		},
	}
}
