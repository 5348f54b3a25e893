package app

import (
	"github.com/spf13/cobra"

	"github.com/andyballingall/schemaform/internal/document"
)

func NewCheckFieldCmd(mgr Manager) *cobra.Command {
	var schemaPath pathValue

	cmd := &cobra.Command{
		Use:   "check-field <field> <value>",
		Short: "Validate a single form field value",
		Long: `Validate one value as a property of the object described by the schema,
the way a form does while the user types. The value is read as JSON if it
parses as JSON, and as a plain string otherwise. An empty string is an
unfilled field.`,
		Args: cobra.ExactArgs(2),
		Example: `
  sfv check-field -s contact.schema.json email "john@example.com"
  sfv check-field -s contact.schema.json age 42
  sfv check-field -s contact.schema.json name ""`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return mgr.CheckField(cmd.Context(), string(schemaPath), args[0], document.ParseValue(args[1]))
		},
	}

	cmd.Flags().VarP(&schemaPath, "schema", "s", "Schema of the object holding the field")
	_ = cmd.MarkFlagRequired("schema")

	return cmd
}
