package keywords

import (
	"golang.org/x/text/message"
)

// The types below implement jsonschema.ErrorKind for the schemaform keywords.

// RequiredProperty reports a property missing from an object.
type RequiredProperty struct {
	Missing string
}

func (*RequiredProperty) KeywordPath() []string {
	return []string{Required}
}

func (k *RequiredProperty) LocalizedString(p *message.Printer) string {
	return p.Sprintf("must have required property '%s'", k.Missing)
}

// NotNull reports a null value where "required": true applies.
type NotNull struct{}

func (*NotNull) KeywordPath() []string {
	return []string{Required}
}

func (*NotNull) LocalizedString(p *message.Printer) string {
	return p.Sprintf("must not be null or undefined")
}

// NotEmpty reports an empty string where "required": true applies.
type NotEmpty struct{}

func (*NotEmpty) KeywordPath() []string {
	return []string{Required}
}

func (*NotEmpty) LocalizedString(p *message.Printer) string {
	return p.Sprintf("must not be empty")
}

// PrecisionExceeded reports a number with too many decimal places.
type PrecisionExceeded struct {
	Got, Want int
}

func (*PrecisionExceeded) KeywordPath() []string {
	return []string{Precision}
}

func (k *PrecisionExceeded) LocalizedString(p *message.Printer) string {
	return p.Sprintf("must have at most %d decimal places", k.Want)
}

// InvalidPrecision reports a precision keyword whose value is not an integer
// between 0 and 4. It surfaces while validating data, not while compiling.
type InvalidPrecision struct {
	Value any
}

func (*InvalidPrecision) KeywordPath() []string {
	return []string{Precision}
}

func (*InvalidPrecision) LocalizedString(p *message.Printer) string {
	return p.Sprintf("precision must be an integer between %d and %d", minPrecision, maxPrecision)
}
