// Package validation is the public entry point for checking schemas and
// validating data against them.
//
// Every call builds a new compiler from the configured validator.Factory, so
// no compiled state survives between calls and concurrent use is safe.
package validation

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/andyballingall/schemaform/internal/preprocess"
	"github.com/andyballingall/schemaform/internal/validator"
)

// schemaURL is the resource location given to the schema under validation.
const schemaURL = "https://schemaform.invalid/schema.json"

// Validator validates schemas and data. The zero value is not usable; use New.
type Validator struct {
	factory *validator.Factory
	logger  *slog.Logger
	workers int
}

// Option configures a Validator.
type Option func(*Validator)

// WithFactory sets the compiler factory. The default is validator.NewFactory().
func WithFactory(f *validator.Factory) Option {
	return func(v *Validator) {
		v.factory = f
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(v *Validator) {
		v.logger = l
	}
}

// WithWorkers sets how many documents Batch validates at once.
func WithWorkers(n int) Option {
	return func(v *Validator) {
		v.workers = n
	}
}

// New creates a Validator.
func New(opts ...Option) *Validator {
	v := &Validator{
		factory: validator.NewFactory(),
		logger:  slog.New(slog.DiscardHandler),
		workers: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

var defaultValidator = New()

// ValidateSchema checks schema using a Validator with default options.
func ValidateSchema(schema any) error {
	return defaultValidator.ValidateSchema(schema)
}

// ValidateData validates data using a Validator with default options.
func ValidateData(data, schema any) (*Result, error) {
	return defaultValidator.ValidateData(data, schema)
}

// ValidateField validates one field using a Validator with default options.
func ValidateField(parent any, name string, value any) (string, bool, error) {
	return defaultValidator.ValidateField(parent, name, value)
}

// ValidateSchema reports whether schema is well formed. schema may be a
// *document.Document.
//
// All structural checks run first and every problem they find is returned
// together in an *InvalidSchemaError. Only a structurally sound schema is then
// compiled; a compiler failure is returned as a *CompileError.
func (v *Validator) ValidateSchema(schema any) error {
	problems, err := Lint(schema)
	if err != nil {
		return err
	}
	if len(problems) > 0 {
		v.logger.Debug("schema has structural problems", slog.Int("count", len(problems)))
		return &InvalidSchemaError{Problems: problems}
	}

	value, _ := unwrap(schema)
	_, err = v.compile(value)
	return err
}

// ValidateData validates data against schema.
//
// Errors are ordered by instance location, with the members of an object in
// the order its schema declares their properties. That order is only known
// when schema is a *document.Document; a schema held as plain Go maps has
// none, so its undeclared order falls back to property names.
//
// The returned error is non-nil only if schema cannot be compiled, in which
// case it is a *CompileError. Data that fails validation gives a Result with
// Valid set to false.
func (v *Validator) ValidateData(data, schema any) (*Result, error) {
	data, _ = unwrap(data)
	schema, keys := unwrap(schema)
	sv, err := v.compile(schema)
	if err != nil {
		return nil, err
	}

	err = sv.Validate(data)
	if err == nil {
		return validResult(), nil
	}

	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return nil, fmt.Errorf("validating data: %w", err)
	}
	var order locationOrder = byName{}
	if keys != nil {
		order = newSchemaOrder(schema, keys)
	}
	res := newResult(verr, order)
	v.logger.Debug("data is invalid", slog.Int("errors", len(res.Errors)))
	return res, nil
}

// compile preprocesses schema and compiles it with a new compiler.
func (v *Validator) compile(schema any) (validator.Validator, error) {
	c := v.factory.New()
	if err := c.AddSchema(schemaURL, preprocess.Schema(schema)); err != nil {
		v.logger.Debug("schema rejected", slog.String("error", err.Error()))
		return nil, &CompileError{Wrapped: err}
	}
	sv, err := c.Compile(schemaURL)
	if err != nil {
		v.logger.Debug("schema failed to compile", slog.String("error", err.Error()))
		return nil, &CompileError{Wrapped: err}
	}
	return sv, nil
}
