package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/andyballingall/schemaform/internal/config"
	"github.com/andyballingall/schemaform/internal/document"
	"github.com/andyballingall/schemaform/internal/form"
	"github.com/andyballingall/schemaform/internal/fs"
	"github.com/andyballingall/schemaform/internal/preprocess"
	"github.com/andyballingall/schemaform/internal/report"
	"github.com/andyballingall/schemaform/internal/validation"
	"github.com/andyballingall/schemaform/internal/watch"
)

// ValidateRequest selects the documents to validate and how to report them.
type ValidateRequest struct {
	SchemaPath string
	DataPaths  []string
	Format     string
	Verbose    bool
	UseColour  bool
}

// Manager defines the operations behind the CLI commands.
type Manager interface {
	Config() *config.Config
	CheckSchema(ctx context.Context, schemaPath string) error
	Validate(ctx context.Context, req ValidateRequest) error
	WatchValidation(ctx context.Context, req ValidateRequest, readyChan chan<- struct{}) error
	CheckField(ctx context.Context, schemaPath, field string, value any) error
	Fields(ctx context.Context, schemaPath, format string, verbose, useColour bool) error
	Preprocess(ctx context.Context, schemaPath string) error
}

// Ensure the interface is satisfied.
var _ Manager = (*LazyManager)(nil)

// LazyManager acts as a placeholder for a real Manager implementation, allowing
// for deferred initialization of dependencies.
type LazyManager struct {
	inner Manager
}

func (l *LazyManager) SetInner(m Manager) {
	l.inner = m
}

// HasInner returns true if the inner manager has been set.
// PersistentPreRunE uses it to skip initialization if already configured, e.g. in tests.
func (l *LazyManager) HasInner() bool {
	return l.inner != nil
}

func (l *LazyManager) check() Manager {
	if l.inner == nil {
		panic("LazyManager accessed before initialization; check command wiring.")
	}
	return l.inner
}

func (l *LazyManager) Config() *config.Config {
	return l.check().Config()
}

func (l *LazyManager) CheckSchema(ctx context.Context, schemaPath string) error {
	return l.check().CheckSchema(ctx, schemaPath)
}

func (l *LazyManager) Validate(ctx context.Context, req ValidateRequest) error {
	return l.check().Validate(ctx, req)
}

func (l *LazyManager) WatchValidation(ctx context.Context, req ValidateRequest, readyChan chan<- struct{}) error {
	return l.check().WatchValidation(ctx, req, readyChan)
}

func (l *LazyManager) CheckField(ctx context.Context, schemaPath, field string, value any) error {
	return l.check().CheckField(ctx, schemaPath, field, value)
}

func (l *LazyManager) Fields(ctx context.Context, schemaPath, format string, verbose, useColour bool) error {
	return l.check().Fields(ctx, schemaPath, format, verbose, useColour)
}

func (l *LazyManager) Preprocess(ctx context.Context, schemaPath string) error {
	return l.check().Preprocess(ctx, schemaPath)
}

// Ensure the interface is satisfied.
var _ Manager = (*CLIManager)(nil)

// CLIManager is the concrete implementation of the Manager interface.
type CLIManager struct {
	logger         *slog.Logger
	config         *config.Config
	validator      *validation.Validator
	resolver       fs.PathResolver
	reporterWriter io.Writer
}

func NewCLIManager(
	l *slog.Logger,
	cfg *config.Config,
	v *validation.Validator,
	r fs.PathResolver,
	w io.Writer,
) *CLIManager {
	return &CLIManager{
		logger:         l,
		config:         cfg,
		validator:      v,
		resolver:       r,
		reporterWriter: w,
	}
}

func (m *CLIManager) Config() *config.Config {
	return m.config
}

func (m *CLIManager) CheckSchema(_ context.Context, schemaPath string) error {
	m.logger.Debug("checking schema", "path", schemaPath)

	schema, err := document.LoadOrdered(schemaPath)
	if err != nil {
		return err
	}
	if err = m.validator.ValidateSchema(schema); err != nil {
		return &SchemaCheckError{Path: schemaPath, Wrapped: err}
	}

	fmt.Fprintf(m.reporterWriter, "%s is a valid schema\n", schemaPath)
	return nil
}

func (m *CLIManager) Validate(ctx context.Context, req ValidateRequest) error {
	m.logger.Debug("validating documents", "schema", req.SchemaPath, "data", req.DataPaths,
		"format", req.Format, "verbose", req.Verbose, "useColour", req.UseColour)

	r, err := m.runBatch(ctx, req)
	if err != nil {
		return err
	}

	reporter := report.New(req.Format, req.Verbose, req.UseColour)
	if err = reporter.Write(m.reporterWriter, r); err != nil {
		return err
	}

	if failed := r.Failed(); failed > 0 {
		return &ValidationFailedError{Failed: failed, Total: len(r.Results)}
	}
	return nil
}

// runBatch loads the schema and every data document, then validates them.
func (m *CLIManager) runBatch(ctx context.Context, req ValidateRequest) (*validation.Report, error) {
	schema, err := document.LoadOrdered(req.SchemaPath)
	if err != nil {
		return nil, err
	}

	paths, err := m.resolver.DocumentFiles(req.DataPaths)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, &NoDocumentsError{Paths: req.DataPaths}
	}

	docs := make([]validation.Document, 0, len(paths))
	for _, p := range paths {
		data, lErr := document.Load(p)
		if lErr != nil {
			return nil, lErr
		}
		docs = append(docs, validation.Document{Name: p, Data: data})
	}

	return m.validator.Batch(ctx, schema, docs)
}

// WatchValidation validates once, then again each time the schema or a data
// document changes. If you want to know when the watcher is ready to start
// listening to changes, pass a non-nil readyChan to be notified.
func (m *CLIManager) WatchValidation(ctx context.Context, req ValidateRequest, readyChan chan<- struct{}) error {
	m.logger.Debug("watching validation", "schema", req.SchemaPath, "data", req.DataPaths,
		"format", req.Format, "verbose", req.Verbose, "useColour", req.UseColour)

	schemaPath, err := m.resolver.CanonicalPath(req.SchemaPath)
	if err != nil {
		return err
	}
	dataPaths := make([]string, 0, len(req.DataPaths))
	for _, p := range req.DataPaths {
		cp, cErr := m.resolver.CanonicalPath(p)
		if cErr != nil {
			return cErr
		}
		dataPaths = append(dataPaths, cp)
	}

	watcher, err := watch.New(schemaPath, dataPaths, m.logger)
	if err != nil {
		return err
	}

	run := func() {
		if vErr := m.Validate(ctx, req); vErr != nil {
			m.logger.Error("Validation failed", "error", vErr)
		}
	}
	run()

	callback := func(event watch.Event) {
		if event.Schema {
			m.logger.Info("Schema changed:", "path", event.Path)
		} else {
			m.logger.Info("Document changed:", "path", event.Path)
		}
		run()
	}

	done := make(chan struct{})
	defer close(done)
	if readyChan != nil {
		go forwardReady(watcher.Ready, done, readyChan)
	}

	return watcher.Watch(ctx, callback)
}

// forwardReady signals out once ready is closed. It gives up when done is
// closed, which happens if the watcher stops before it is ready.
func forwardReady(ready <-chan struct{}, done <-chan struct{}, out chan<- struct{}) {
	select {
	case <-ready:
	case <-done:
		return
	}
	select {
	case out <- struct{}{}:
	case <-done:
	}
}

func (m *CLIManager) CheckField(_ context.Context, schemaPath, field string, value any) error {
	m.logger.Debug("checking field", "schema", schemaPath, "field", field)

	schema, err := document.LoadOrdered(schemaPath)
	if err != nil {
		return err
	}

	msg, found, err := m.validator.ValidateField(schema, field, value)
	if err != nil {
		return err
	}
	if found {
		return &FieldInvalidError{Field: field, Message: msg}
	}

	fmt.Fprintf(m.reporterWriter, "%s is valid\n", field)
	return nil
}

func (m *CLIManager) Fields(_ context.Context, schemaPath, format string, verbose, useColour bool) error {
	m.logger.Debug("describing fields", "schema", schemaPath, "format", format)

	raw, err := schemaJSON(schemaPath)
	if err != nil {
		return err
	}
	fields, err := form.Describe(raw)
	if err != nil {
		return err
	}
	return report.New(format, verbose, useColour).WriteFields(m.reporterWriter, fields)
}

// schemaJSON returns the schema at path as JSON with its property order kept.
// JSON files are returned as they are.
func schemaJSON(path string) ([]byte, error) {
	f, err := document.FormatOf(path)
	if err != nil {
		return nil, err
	}
	if f == document.FormatJSON {
		return os.ReadFile(path)
	}

	schema, err := document.LoadOrdered(path)
	if err != nil {
		return nil, err
	}
	return json.Marshal(schema)
}

func (m *CLIManager) Preprocess(_ context.Context, schemaPath string) error {
	m.logger.Debug("preprocessing schema", "path", schemaPath)

	schema, err := document.Load(schemaPath)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(m.reporterWriter)
	enc.SetIndent("", "  ")
	return enc.Encode(preprocess.Schema(schema))
}
