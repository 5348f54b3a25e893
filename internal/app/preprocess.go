package app

import (
	"github.com/spf13/cobra"
)

func NewPreprocessCmd(mgr Manager) *cobra.Command {
	return &cobra.Command{
		Use:   "preprocess <schema>",
		Short: "Print a schema as it is compiled",
		Long:  `Print the schema with "type": "string" added to every subschema that has a format but no type.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mgr.Preprocess(cmd.Context(), args[0])
		},
	}
}
