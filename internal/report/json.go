package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/andyballingall/schemaform/internal/form"
	"github.com/andyballingall/schemaform/internal/validation"
)

// JSONReporter implements Reporter for JSON output.
type JSONReporter struct{}

type jsonDocument struct {
	Name   string             `json:"name"`
	Valid  bool               `json:"valid"`
	Errors []validation.Error `json:"errors,omitempty"`
}

type jsonOutput struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Duration  string `json:"duration"`
	Stats     struct {
		TotalPassed int `json:"totalPassed"`
		TotalFailed int `json:"totalFailed"`
	} `json:"stats"`
	Results []jsonDocument `json:"results"`
}

func (jr *JSONReporter) Write(w io.Writer, r *validation.Report) error {
	out := jsonOutput{
		StartTime: r.StartTime.Format(time.RFC3339),
		EndTime:   r.EndTime.Format(time.RFC3339),
		Duration:  r.EndTime.Sub(r.StartTime).String(),
		Results:   make([]jsonDocument, 0, len(r.Results)),
	}

	for _, dr := range r.Results {
		if dr.Result == nil {
			continue
		}
		out.Results = append(out.Results, jsonDocument{
			Name:   dr.Name,
			Valid:  dr.Result.Valid,
			Errors: dr.Result.Errors,
		})
		if dr.Result.Valid {
			out.Stats.TotalPassed++
		} else {
			out.Stats.TotalFailed++
		}
	}

	return encode(w, out)
}

func (jr *JSONReporter) WriteFields(w io.Writer, fields []form.Field) error {
	if fields == nil {
		fields = []form.Field{}
	}
	return encode(w, fields)
}

func encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
