// Package keywords implements the schemaform vocabulary: a dual-mode "required"
// keyword and a "precision" keyword for numbers.
//
// The compiler validates every schema against its draft metaschema, and the
// metaschemas only allow "required" as an array of property names. Schemas are
// therefore passed through Lower before compilation, which moves every
// "required" occurrence to a private keyword owned by this vocabulary.
// Errors are still reported under the "required" keyword.
package keywords

import (
	"github.com/santhosh-tekuri/jsonschema/v6"
)

// VocabularyURL identifies the schemaform vocabulary.
const VocabularyURL = "https://github.com/andyballingall/schemaform/vocab/custom"

const (
	// Required is the public keyword name.
	Required = "required"
	// Precision constrains the number of decimal places of a number.
	Precision = "precision"

	// loweredRequired is where Lower moves the "required" keyword.
	loweredRequired = "x-schemaform-required"
)

// Names returns the keywords added by this vocabulary.
func Names() []string {
	return []string{Required, Precision}
}

// Vocabulary returns a new vocabulary for registration with a compiler.
// The vocabulary carries no metaschema: an out-of-range precision is reported
// when data is validated, not when the schema is compiled.
func Vocabulary() *jsonschema.Vocabulary {
	return &jsonschema.Vocabulary{
		URL:     VocabularyURL,
		Compile: compile,
	}
}

// extensions runs its members in order. Keeping both keywords in one
// vocabulary gives them a stable evaluation order.
type extensions []jsonschema.SchemaExt

func (e extensions) Validate(ctx *jsonschema.ValidatorContext, v any) {
	for _, ext := range e {
		ext.Validate(ctx, v)
	}
}

func compile(_ *jsonschema.CompilerContext, obj map[string]any) (jsonschema.SchemaExt, error) {
	var exts extensions

	if raw, ok := obj[loweredRequired]; ok {
		if ext := compileRequired(raw); ext != nil {
			exts = append(exts, ext)
		}
	}
	if raw, ok := obj[Precision]; ok {
		exts = append(exts, &precision{raw: raw})
	}

	switch len(exts) {
	case 0:
		return nil, nil
	case 1:
		return exts[0], nil
	default:
		return exts, nil
	}
}
