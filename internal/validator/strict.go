package validator

import (
	"fmt"
	"slices"
	"strings"

	"github.com/andyballingall/schemaform/internal/formats"
	"github.com/andyballingall/schemaform/internal/keywords"
)

// standardKeywords is the union of the keywords defined by draft-04 to 2020-12.
var standardKeywords = []string{
	// core
	"$schema", "$id", "id", "$ref", "$comment", "$defs", "definitions", "$anchor",
	"$dynamicRef", "$dynamicAnchor", "$recursiveRef", "$recursiveAnchor", "$vocabulary",
	// applicator
	"allOf", "anyOf", "oneOf", "not", "if", "then", "else",
	"properties", "patternProperties", "additionalProperties", "propertyNames",
	"items", "prefixItems", "additionalItems", "contains",
	"dependencies", "dependentSchemas", "unevaluatedProperties", "unevaluatedItems",
	// validation
	"type", "enum", "const", "multipleOf", "maximum", "exclusiveMaximum", "minimum",
	"exclusiveMinimum", "maxLength", "minLength", "pattern", "maxItems", "minItems",
	"uniqueItems", "maxContains", "minContains", "maxProperties", "minProperties",
	"required", "dependentRequired",
	// meta-data
	"title", "description", "default", "deprecated", "readOnly", "writeOnly", "examples",
	// format and content
	"format", "contentEncoding", "contentMediaType", "contentSchema",
}

// standardFormats are the formats the compiler validates out of the box.
var standardFormats = []string{
	"date", "date-time", "duration", "email", "hostname", "ipv4", "ipv6",
	"iri", "iri-reference", "json-pointer", "period", "regex", "relative-json-pointer",
	"semver", "time", "uri", "uri-reference", "uri-template", "uuid",
}

// Subschema locations visited by the strict checker.
var (
	subschemaMaps = []string{
		"properties", "patternProperties", "definitions", "$defs", "dependentSchemas", "dependencies",
	}
	subschemaValues = []string{
		"additionalProperties", "items", "additionalItems", "contains", "propertyNames",
		"not", "if", "then", "else", "unevaluatedProperties", "unevaluatedItems", "contentSchema",
	}
	subschemaArrays = []string{"allOf", "anyOf", "oneOf", "prefixItems", "items"}
)

// StrictModeError reports a keyword or format unknown to a strict compiler.
type StrictModeError struct {
	Path    string
	Keyword string
	Format  string
}

func (e *StrictModeError) Error() string {
	if e.Format != "" {
		return fmt.Sprintf("strict mode: unknown format %q ignored in schema at %q", e.Format, e.Path)
	}
	return fmt.Sprintf("strict mode: unknown keyword %q in schema at %q", e.Keyword, e.Path)
}

type strictChecker struct {
	keywords map[string]bool
	formats  map[string]bool
}

func newStrictChecker(custom bool) *strictChecker {
	sc := &strictChecker{
		keywords: make(map[string]bool),
		formats:  make(map[string]bool),
	}
	for _, k := range standardKeywords {
		sc.keywords[k] = true
	}
	for _, f := range standardFormats {
		sc.formats[f] = true
	}
	if custom {
		for _, k := range keywords.Names() {
			sc.keywords[k] = true
		}
		for _, f := range formats.Names() {
			sc.formats[f] = true
		}
	}
	return sc
}

// check returns the first strictness violation found in schema, visiting
// keywords in sorted order so the result is stable.
func (sc *strictChecker) check(schema any) error {
	return sc.walk(schema, "#")
}

func (sc *strictChecker) walk(schema any, ptr string) error {
	obj, ok := schema.(map[string]any)
	if !ok {
		return nil
	}

	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		if !sc.keywords[k] {
			return &StrictModeError{Path: ptr, Keyword: k}
		}
	}
	if f, ok := obj["format"].(string); ok && !sc.formats[f] {
		return &StrictModeError{Path: ptr, Format: f}
	}

	for _, kw := range subschemaMaps {
		m, ok := obj[kw].(map[string]any)
		if !ok {
			continue
		}
		names := make([]string, 0, len(m))
		for name := range m {
			names = append(names, name)
		}
		slices.Sort(names)
		for _, name := range names {
			if err := sc.walk(m[name], ptr+"/"+kw+"/"+escape(name)); err != nil {
				return err
			}
		}
	}
	for _, kw := range subschemaValues {
		if err := sc.walk(obj[kw], ptr+"/"+kw); err != nil {
			return err
		}
	}
	for _, kw := range subschemaArrays {
		arr, ok := obj[kw].([]any)
		if !ok {
			continue
		}
		for i, sub := range arr {
			if err := sc.walk(sub, fmt.Sprintf("%s/%s/%d", ptr, kw, i)); err != nil {
				return err
			}
		}
	}
	return nil
}

// escape encodes a JSON Pointer reference token.
func escape(tok string) string {
	tok = strings.ReplaceAll(tok, "~", "~0")
	return strings.ReplaceAll(tok, "/", "~1")
}
