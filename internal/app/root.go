package app

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/andyballingall/schemaform/internal/config"
	"github.com/andyballingall/schemaform/internal/fs"
	"github.com/andyballingall/schemaform/internal/validation"
	"github.com/andyballingall/schemaform/internal/validator"
)

// Version is the current version of sfv, set at build time.
var Version = "dev"

var LongDescription = `
sfv checks JSON Schemas written for forms and validates data against them.
On top of standard JSON Schema it understands the json, html and text formats,
a boolean "required" on properties, and a "precision" limit on decimal places.
`

// NewRootCmd creates the root command and wires up dependencies.
func NewRootCmd(
	lazy *LazyManager,
	ll *slog.LevelVar,
	stdout, stderr io.Writer,
	envProvider fs.EnvProvider,
) *cobra.Command {
	var debug bool
	var noColour bool
	var standard bool
	var configPath pathValue

	rootCmd := &cobra.Command{
		Use:           "sfv",
		Short:         "A JSON Schema checker and validator for forms",
		Version:       Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Long:          LongDescription,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if debug {
				ll.Set(slog.LevelDebug)
			}
			// Skip initialization for help, completion and init commands
			if cmd.Name() == "help" || isCompletionCommand(cmd) || cmd.Name() == InitCmdName {
				return nil
			}
			// Skip if already initialised (e.g., in tests)
			if lazy.HasInner() {
				return nil
			}

			// 1. Load configuration
			path, required := string(configPath), true
			if path == "" {
				path = envProvider.Get(ConfigEnvVar)
			}
			if path == "" {
				path, required = config.ConfigFile, false
			}
			cfg, err := config.Load(path, required, validator.NewFactory().New())
			if err != nil {
				return fmt.Errorf("configuration failed: %w", err)
			}

			// 2. Setup Logging
			logPath := envProvider.Get(LogEnvVar)
			if logPath == "" {
				logPath = cfg.LogFile
			}
			logger, _, err := setupLogger(stderr, ll, logPath)
			if err != nil {
				logger.Warn("logging to file disabled", "error", err)
			}

			// 3. Build Dependencies
			factory := validator.NewFactory(cfg.FactoryOptions()...)
			if standard {
				factory = validator.NewPlainFactory(validator.WithDraft(cfg.DefaultDraft))
			}
			v := validation.New(
				validation.WithFactory(factory),
				validation.WithLogger(logger),
				validation.WithWorkers(cfg.Workers),
			)

			// 4. Hydrate the Lazy Wrapper
			lazy.SetInner(NewCLIManager(logger, cfg, v, fs.NewPathResolver(), stdout))

			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	// Global flags
	rootCmd.PersistentFlags().VarP(&configPath, "config", "f",
		"path to config file (overrides "+ConfigEnvVar+" and ./"+config.ConfigFile+")")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&standard, "standard", false,
		"Use standard JSON Schema only: no custom formats or keywords, unknown keywords rejected")

	rootCmd.PersistentFlags().BoolVarP(&noColour, "nocolour", "c", false, "Disable colour in output")
	// Support alternate spellings
	rootCmd.PersistentFlags().BoolVar(&noColour, "nocolor", false, "")
	rootCmd.PersistentFlags().BoolVar(&noColour, "noColor", false, "")
	rootCmd.PersistentFlags().BoolVar(&noColour, "noColour", false, "")
	_ = rootCmd.PersistentFlags().MarkHidden("nocolor")
	_ = rootCmd.PersistentFlags().MarkHidden("noColor")
	_ = rootCmd.PersistentFlags().MarkHidden("noColour")

	// Subcommands
	rootCmd.AddCommand(NewInitCmd())
	rootCmd.AddCommand(NewCheckSchemaCmd(lazy))
	rootCmd.AddCommand(NewValidateCmd(lazy))
	rootCmd.AddCommand(NewCheckFieldCmd(lazy))
	rootCmd.AddCommand(NewFieldsCmd(lazy))
	rootCmd.AddCommand(NewPreprocessCmd(lazy))

	return rootCmd
}

// isCompletionCommand returns true if the command or any of its parents is the "completion" command.
func isCompletionCommand(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "completion" {
			return true
		}
	}
	return false
}
