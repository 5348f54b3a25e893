package app

import (
	"github.com/spf13/cobra"
)

func NewValidateCmd(mgr Manager) *cobra.Command {
	var verbose bool
	var watch bool
	var schemaPath pathValue

	cmd := &cobra.Command{
		Use:   "validate <data>...",
		Short: "Validate data documents against a schema",
		Long: `Validate one or more JSON or YAML data documents against a schema.
Directories are searched recursively for .json, .yaml and .yml files.
The command fails if any document is invalid.`,
		Args: cobra.MinimumNArgs(1),
		Example: `
  sfv validate -s person.schema.json alice.json bob.yaml
  sfv validate -s person.schema.json ./people
  sfv validate -s person.schema.json ./people --watch`,
	}

	cmd.Flags().VarP(&schemaPath, "schema", "s", "Schema to validate against (JSON or YAML)")
	_ = cmd.MarkFlagRequired("schema")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show the schema location of each error")
	outputVal := formatValue("")
	cmd.Flags().VarP(&outputVal, "output", "o", "Output format (text, json)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Watch for changes and rerun validation")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		noColour, _ := cmd.Flags().GetBool("nocolour")

		req := ValidateRequest{
			SchemaPath: string(schemaPath),
			DataPaths:  args,
			Format:     outputVal.resolve(mgr),
			Verbose:    verbose,
			UseColour:  !noColour,
		}

		if watch {
			return mgr.WatchValidation(cmd.Context(), req, nil)
		}
		return mgr.Validate(cmd.Context(), req)
	}

	return cmd
}
