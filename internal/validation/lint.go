package validation

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const lintSchemaURL = "https://github.com/andyballingall/schemaform/lint.schema.json"

// lintSchemaContent describes what the schemaform vocabulary allows on top of
// standard JSON Schema. Every subschema position is checked recursively.
// Keywords with two accepted shapes branch with if/then/else so that a bad
// value gives one problem rather than one per shape.
const lintSchemaContent = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "$id": "` + lintSchemaURL + `",
  "definitions": {
    "simpleTypes": {"enum": ["array", "boolean", "integer", "null", "number", "object", "string"]},
    "schemaArray": {"type": "array", "minItems": 1, "items": {"$ref": "#"}},
    "schemaMap": {"type": "object", "additionalProperties": {"$ref": "#"}}
  },
  "type": ["object", "boolean"],
  "properties": {
    "type": {
      "if": {"type": "array"},
      "then": {"items": {"$ref": "#/definitions/simpleTypes"}, "minItems": 1, "uniqueItems": true},
      "else": {"$ref": "#/definitions/simpleTypes"}
    },
    "format": {"type": "string"},
    "title": {"type": "string"},
    "description": {"type": "string"},
    "precision": {"type": "integer", "minimum": 0, "maximum": 4},
    "required": {
      "if": {"type": "array"},
      "then": {"items": {"type": "string"}, "uniqueItems": true},
      "else": {"type": "boolean"}
    },
    "properties": {"$ref": "#/definitions/schemaMap"},
    "patternProperties": {"$ref": "#/definitions/schemaMap"},
    "definitions": {"$ref": "#/definitions/schemaMap"},
    "$defs": {"$ref": "#/definitions/schemaMap"},
    "additionalProperties": {"$ref": "#"},
    "propertyNames": {"$ref": "#"},
    "items": {
      "if": {"type": "array"},
      "then": {"items": {"$ref": "#"}},
      "else": {"$ref": "#"}
    },
    "additionalItems": {"$ref": "#"},
    "contains": {"$ref": "#"},
    "not": {"$ref": "#"},
    "if": {"$ref": "#"},
    "then": {"$ref": "#"},
    "else": {"$ref": "#"},
    "allOf": {"$ref": "#/definitions/schemaArray"},
    "anyOf": {"$ref": "#/definitions/schemaArray"},
    "oneOf": {"$ref": "#/definitions/schemaArray"},
    "minLength": {"type": "integer", "minimum": 0},
    "maxLength": {"type": "integer", "minimum": 0},
    "minItems": {"type": "integer", "minimum": 0},
    "maxItems": {"type": "integer", "minimum": 0},
    "minProperties": {"type": "integer", "minimum": 0},
    "maxProperties": {"type": "integer", "minimum": 0},
    "pattern": {"type": "string", "format": "regex"},
    "enum": {"type": "array"},
    "multipleOf": {"type": "number", "exclusiveMinimum": 0},
    "minimum": {"type": "number"},
    "maximum": {"type": "number"},
    "uniqueItems": {"type": "boolean"}
  }
}`

// lintSchema is compiled once. A compiled schema is read-only and safe for
// concurrent use.
var lintSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(lintSchemaContent))
	if err != nil {
		return nil, err
	}
	c := jsonschema.NewCompiler()
	c.AssertFormat()
	if err = c.AddResource(lintSchemaURL, doc); err != nil {
		return nil, err
	}
	return c.Compile(lintSchemaURL)
})

// Lint returns every structural problem found in schema. Problems are ordered
// by their location in the schema. For a *document.Document, keys are taken
// in the order they were written; otherwise by name.
func Lint(schema any) ([]Problem, error) {
	schema, keys := unwrap(schema)
	var order locationOrder = byName{}
	if keys != nil {
		order = documentOrder(keys)
	}

	sch, err := lintSchema()
	if err != nil {
		return nil, fmt.Errorf("compiling lint schema: %w", err)
	}

	var problems []Problem
	if err = sch.Validate(schema); err != nil {
		var verr *jsonschema.ValidationError
		if !errors.As(err, &verr) {
			return nil, err
		}
		for _, e := range newResult(verr, order).Errors {
			problems = append(problems, Problem{Message: e.Message, Path: "#" + e.InstancePath})
		}
	}

	problems = append(problems, conflicts(schema, "#")...)
	slices.SortStableFunc(problems, func(a, b Problem) int {
		return compareLocations(splitPath(a.Path), splitPath(b.Path), order)
	})
	return problems, nil
}

func splitPath(p string) []string {
	p = strings.TrimPrefix(p, "#")
	if p == "" {
		return nil
	}
	toks := strings.Split(strings.TrimPrefix(p, "/"), "/")
	for i, tok := range toks {
		toks[i] = unescapeToken(tok)
	}
	return toks
}

// conflicts finds keyword combinations that can never be satisfied together.
func conflicts(schema any, path string) []Problem {
	obj, ok := schema.(map[string]any)
	if !ok {
		return nil
	}

	var out []Problem
	if types, ok := declaredTypes(obj); ok {
		if f, ok := obj["format"].(string); ok && !slices.Contains(types, "string") {
			out = append(out, Problem{
				Message: fmt.Sprintf("format %q requires type string", f),
				Path:    path + "/format",
			})
		}
		if _, ok := obj["precision"]; ok && !slices.Contains(types, "number") && !slices.Contains(types, "integer") {
			out = append(out, Problem{
				Message: "precision requires type number or integer",
				Path:    path + "/precision",
			})
		}
	}

	for _, kw := range []string{"properties", "patternProperties", "definitions", "$defs"} {
		if m, ok := obj[kw].(map[string]any); ok {
			for name, sub := range m {
				out = append(out, conflicts(sub, path+"/"+kw+"/"+escapeToken(name))...)
			}
		}
	}
	for _, kw := range []string{
		"items", "additionalItems", "additionalProperties", "contains", "propertyNames", "not", "if", "then", "else",
	} {
		out = append(out, conflicts(obj[kw], path+"/"+kw)...)
	}
	for _, kw := range []string{"allOf", "anyOf", "oneOf", "items"} {
		if arr, ok := obj[kw].([]any); ok {
			for i, sub := range arr {
				out = append(out, conflicts(sub, fmt.Sprintf("%s/%s/%d", path, kw, i))...)
			}
		}
	}
	return out
}

// declaredTypes returns the string members of "type", if the keyword is present.
func declaredTypes(obj map[string]any) ([]string, bool) {
	switch t := obj["type"].(type) {
	case string:
		return []string{t}, true
	case []any:
		var types []string
		for _, v := range t {
			if s, ok := v.(string); ok {
				types = append(types, s)
			}
		}
		return types, true
	default:
		return nil, false
	}
}
