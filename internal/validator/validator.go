// Package validator builds JSON Schema compilers. A Factory hands out a new,
// independent Compiler for every validation so that no compiled state is shared
// between calls.
package validator

// Draft represents a JSON Schema draft version.
type Draft string

const (
	// Draft4 represents JSON Schema Draft 4.
	Draft4 Draft = "http://json-schema.org/draft-04/schema#"
	// Draft6 represents JSON Schema Draft 6.
	Draft6 Draft = "http://json-schema.org/draft-06/schema#"
	// Draft7 represents JSON Schema Draft 7.
	Draft7 Draft = "http://json-schema.org/draft-07/schema#"
	// Draft2019_09 represents JSON Schema Draft 2019-09.
	Draft2019_09 Draft = "https://json-schema.org/draft/2019-09/schema"
	// Draft2020_12 represents JSON Schema Draft 2020-12.
	Draft2020_12 Draft = "https://json-schema.org/draft/2020-12/schema"
)

// DefaultDraft is used for schemas without a $schema property.
const DefaultDraft = Draft7

// SupportedDrafts lists every draft a Compiler understands.
func SupportedDrafts() []Draft {
	return []Draft{
		Draft4,
		Draft6,
		Draft7,
		Draft2019_09,
		Draft2020_12,
	}
}

// A JSONDocument is a parsed JSON value - i.e. the result of json.Unmarshal().
type JSONDocument interface{}

// A JSONSchema is a JSONDocument representing a JSON Schema.
// A Compiler must compile the JSONSchema before use, which identifies any JSON Schema issues.
type JSONSchema JSONDocument

// Validator validates JSON documents against one compiled schema.
type Validator interface {
	// Validate returns nil if v is valid, or a *jsonschema.ValidationError
	// describing every violation found.
	Validate(v JSONDocument) error
}

// Compiler defines a JSON Schema compiler. Every schema that is referenced via
// $ref must be added before the referencing schema is compiled.
type Compiler interface {
	// AddSchema registers a JSONSchema with the compiler under the given ID.
	// In strict mode, unknown keywords and formats are rejected here.
	AddSchema(id string, data JSONSchema) error

	// Compile creates a Validator from the JSONSchema previously added with the given ID.
	// An error is produced if the JSONSchema cannot be compiled.
	Compile(id string) (Validator, error)

	// SupportedSchemaVersions returns the supported schema drafts.
	SupportedSchemaVersions() []Draft
}
