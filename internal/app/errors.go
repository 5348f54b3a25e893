package app

import (
	"fmt"
	"strings"
)

// SchemaCheckError is returned by check-schema for a schema that is not well formed.
type SchemaCheckError struct {
	Path    string
	Wrapped error
}

func (e *SchemaCheckError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Wrapped)
}

func (e *SchemaCheckError) Unwrap() error {
	return e.Wrapped
}

// ValidationFailedError is returned by validate when any document is invalid.
type ValidationFailedError struct {
	Failed int
	Total  int
}

func (e *ValidationFailedError) Error() string {
	return fmt.Sprintf("%d of %d documents failed validation", e.Failed, e.Total)
}

// FieldInvalidError is returned by check-field for a value that does not validate.
type FieldInvalidError struct {
	Field   string
	Message string
}

func (e *FieldInvalidError) Error() string {
	return fmt.Sprintf("field %q: %s", e.Field, e.Message)
}

// NoDocumentsError is returned when the data paths contain no documents.
type NoDocumentsError struct {
	Paths []string
}

func (e *NoDocumentsError) Error() string {
	return "no JSON or YAML documents found in " + strings.Join(e.Paths, ", ")
}
