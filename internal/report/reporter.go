// Package report renders validation reports and form descriptors for the CLI.
package report

import (
	"io"

	"github.com/andyballingall/schemaform/internal/form"
	"github.com/andyballingall/schemaform/internal/validation"
)

// Reporter writes command output in one format.
type Reporter interface {
	Write(w io.Writer, r *validation.Report) error
	WriteFields(w io.Writer, fields []form.Field) error
}

// New returns the Reporter for format, "json" or "text".
func New(format string, verbose, useColour bool) Reporter {
	if format == "json" {
		return &JSONReporter{}
	}
	return &TextReporter{Verbose: verbose, UseColour: useColour}
}
