package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/andyballingall/schemaform/internal/form"
	"github.com/andyballingall/schemaform/internal/validation"
)

// TextReporter implements Reporter for plain text output.
type TextReporter struct {
	Verbose   bool
	UseColour bool
}

const (
	colReset     = "\033[0m"
	colRed       = "\033[31m"
	colGreen     = "\033[32m"
	colYellow    = "\033[33m"
	colGrey      = "\033[90m"
	colWhite     = "\033[37m"
	colBoldRed   = "\033[1;31m"
	colBoldGreen = "\033[1;32m"
	colBoldWhite = "\033[1;37m"
)

// cs returns a string which will render with the given colour
// if colourisation is enabled.
func (tr *TextReporter) cs(c, s string) string {
	if !tr.UseColour {
		return s
	}
	return c + s + colReset
}

func (tr *TextReporter) Write(w io.Writer, r *validation.Report) error {
	divider := strings.Repeat("-", 40)

	fmt.Fprintf(w, "%s\n", divider)
	fmt.Fprint(w, tr.cs(colBoldWhite, "SFV VALIDATION REPORT\n\n"))
	fmt.Fprintf(w, "%s %s\n", tr.cs(colGrey, "Started: "), tr.cs(colWhite, r.StartTime.Format("15:04:05")))
	fmt.Fprintf(w, "%s %s\n", tr.cs(colGrey, "Duration:"), tr.cs(colWhite, r.EndTime.Sub(r.StartTime).String()))
	fmt.Fprintf(w, "%s\n", divider)

	totalPassed := 0
	totalFailed := 0

	for _, dr := range r.Results {
		if dr.Result == nil {
			continue
		}
		if dr.Result.Valid {
			totalPassed++
			fmt.Fprintf(w, "%s %s\n", tr.cs(colGreen, "[PASS]"), tr.cs(colWhite, dr.Name))
			continue
		}

		totalFailed++
		suffix := fmt.Sprintf("(%d errors)", len(dr.Result.Errors))
		if len(dr.Result.Errors) == 1 {
			suffix = "(1 error)"
		}
		fmt.Fprintf(w, "%s %s %s\n", tr.cs(colRed, "[FAIL]"), tr.cs(colRed, dr.Name), tr.cs(colRed, suffix))

		for _, e := range dr.Result.Errors {
			fmt.Fprintf(w, "  %s %s: %s\n",
				tr.cs(colRed, "✗"),
				tr.cs(colGrey, instanceLabel(e.InstancePath)),
				e.Message)
			if tr.Verbose {
				fmt.Fprintf(w, "    %s %s\n", tr.cs(colGrey, "schema:"), e.SchemaPath)
			}
		}
	}

	fmt.Fprintf(w, "%s\n", divider)
	summaryLabel := tr.cs(colBoldWhite, "Validation summary: ")
	summaryStats := fmt.Sprintf("%d passed, %d failed", totalPassed, totalFailed)
	statsColor := colBoldGreen
	if totalFailed > 0 {
		statsColor = colBoldRed
	}
	fmt.Fprintf(w, "%s%s\n", summaryLabel, tr.cs(statsColor, summaryStats))
	fmt.Fprintf(w, "%s\n", divider)

	return nil
}

func instanceLabel(p string) string {
	if p == "" {
		return "(root)"
	}
	return p
}

// WriteFields prints one line per field, nested fields indented below their parent.
func (tr *TextReporter) WriteFields(w io.Writer, fields []form.Field) error {
	tr.writeFields(w, fields, 0)
	return nil
}

func (tr *TextReporter) writeFields(w io.Writer, fields []form.Field, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, f := range fields {
		label := f.Label
		if f.Required {
			label += tr.cs(colYellow, " *")
		}
		fmt.Fprintf(w, "%s%s %s %s\n",
			indent,
			tr.cs(colWhite, f.Name),
			tr.cs(colGrey, "["+string(f.Control)+"]"),
			label)
		if tr.Verbose && f.Description != "" {
			fmt.Fprintf(w, "%s  %s\n", indent, tr.cs(colGrey, f.Description))
		}
		tr.writeFields(w, f.Fields, depth+1)
	}
}
