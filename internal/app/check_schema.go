package app

import (
	"github.com/spf13/cobra"
)

func NewCheckSchemaCmd(mgr Manager) *cobra.Command {
	return &cobra.Command{
		Use:   "check-schema <schema>",
		Short: "Check that a schema is well formed",
		Long: `Check a JSON or YAML schema for structural problems, such as a precision
outside 0 to 4 or a format on a non-string type, and make sure it compiles.
Every structural problem is reported together.`,
		Args: cobra.ExactArgs(1),
		Example: `
  sfv check-schema person.schema.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return mgr.CheckSchema(cmd.Context(), args[0])
		},
	}
}
