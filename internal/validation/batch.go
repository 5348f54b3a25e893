package validation

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// Document is a named data value to validate.
type Document struct {
	Name string
	Data any
}

// DocumentResult is the outcome for one Document.
type DocumentResult struct {
	Name   string  `json:"name"`
	Result *Result `json:"result"`
}

// Report collects the outcome of a Batch run.
type Report struct {
	StartTime time.Time        `json:"startTime"`
	EndTime   time.Time        `json:"endTime"`
	Results   []DocumentResult `json:"results"`
}

// Failed returns the number of documents that did not validate. Documents
// left unvalidated by a cancelled run are not counted.
func (r *Report) Failed() int {
	n := 0
	for _, dr := range r.Results {
		if dr.Result != nil && !dr.Result.Valid {
			n++
		}
	}
	return n
}

// Batch validates every document against schema, running up to the
// configured number of workers at once. Results are in document order.
// It stops at the first compile error or when ctx is cancelled.
func (v *Validator) Batch(ctx context.Context, schema any, docs []Document) (*Report, error) {
	if v.workers < 1 {
		return nil, &InvalidWorkersError{Workers: v.workers}
	}

	report := &Report{
		StartTime: time.Now(),
		Results:   make([]DocumentResult, len(docs)),
	}
	defer func() { report.EndTime = time.Now() }()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(v.workers)

	for i, doc := range docs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := v.ValidateData(doc.Data, schema)
			if err != nil {
				return err
			}
			// each goroutine owns one slot
			report.Results[i] = DocumentResult{Name: doc.Name, Result: res}
			return nil
		})
	}

	err := g.Wait()
	// a caller cancellation takes priority over a worker error
	if ctx.Err() != nil {
		return report, ctx.Err()
	}
	if err != nil {
		return report, err
	}

	v.logger.Debug("batch complete",
		slog.Int("documents", len(docs)),
		slog.Int("failed", report.Failed()),
	)
	return report, nil
}
