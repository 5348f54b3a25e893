package app

import (
	"github.com/spf13/cobra"
)

func NewFieldsCmd(mgr Manager) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "fields <schema>",
		Short: "List the form fields a schema describes",
		Long: `List the properties of a schema with the input control a form would use
for each. The control comes from the property's format, falling back to its type.`,
		Args: cobra.ExactArgs(1),
		Example: `
  sfv fields contact.schema.json
  sfv fields contact.schema.json -o json`,
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show field descriptions")
	outputVal := formatValue("")
	cmd.Flags().VarP(&outputVal, "output", "o", "Output format (text, json)")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		noColour, _ := cmd.Flags().GetBool("nocolour")
		return mgr.Fields(cmd.Context(), args[0], outputVal.resolve(mgr), verbose, !noColour)
	}

	return cmd
}
