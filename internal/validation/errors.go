package validation

import (
	"fmt"
	"strings"
)

// Problem is one structural issue found in a schema document.
type Problem struct {
	Message string `json:"message"`
	// Path is a JSON Pointer fragment into the schema, e.g. "#/properties/age/precision".
	Path string `json:"path"`
}

func (p Problem) String() string {
	return fmt.Sprintf("%s at %s", p.Message, p.Path)
}

// InvalidSchemaError reports every structural problem found in a schema.
type InvalidSchemaError struct {
	Problems []Problem
}

func (e *InvalidSchemaError) Error() string {
	msgs := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		msgs[i] = p.String()
	}
	return strings.Join(msgs, "; ")
}

// CompileError is returned when the compiler cannot build a validator from a
// schema. It is never returned for data that merely fails validation.
type CompileError struct {
	Wrapped error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("Invalid schema: %v", e.Wrapped)
}

func (e *CompileError) Unwrap() error {
	return e.Wrapped
}

// UnknownFieldError is returned by ValidateField when the parent schema does
// not declare the field.
type UnknownFieldError struct {
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("field %q is not declared in the schema's properties", e.Field)
}

// InvalidWorkersError is returned when a batch is configured with fewer than one worker.
type InvalidWorkersError struct {
	Workers int
}

func (e *InvalidWorkersError) Error() string {
	return fmt.Sprintf("workers must be at least 1, got %d", e.Workers)
}
