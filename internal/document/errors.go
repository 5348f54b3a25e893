package document

import "fmt"

// UnsupportedFormatError is returned for files that are neither JSON nor YAML.
type UnsupportedFormatError struct {
	Path string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("%s: unsupported document type - use .json, .yaml or .yml", e.Path)
}

// InvalidDocumentError is returned when a file cannot be parsed.
type InvalidDocumentError struct {
	Path    string
	Wrapped error
}

func (e *InvalidDocumentError) Error() string {
	return fmt.Sprintf("%s is not a valid document: %v", e.Path, e.Wrapped)
}

func (e *InvalidDocumentError) Unwrap() error {
	return e.Wrapped
}

// NonFiniteNumberError is returned for YAML values such as .inf that JSON cannot represent.
type NonFiniteNumberError struct {
	Value float64
}

func (e *NonFiniteNumberError) Error() string {
	return fmt.Sprintf("%v cannot be represented in JSON", e.Value)
}
