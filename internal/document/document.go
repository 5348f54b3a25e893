// Package document reads schema and data documents from JSON or YAML.
package document

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatOf returns the Format for a file name based on its extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", &UnsupportedFormatError{Path: path}
	}
}

// Load reads and parses the document at path.
func Load(path string) (any, error) {
	f, data, err := read(path)
	if err != nil {
		return nil, err
	}
	v, err := Parse(data, f)
	if err != nil {
		return nil, &InvalidDocumentError{Path: path, Wrapped: err}
	}
	return v, nil
}

func read(path string) (Format, []byte, error) {
	f, err := FormatOf(path)
	if err != nil {
		return "", nil, err
	}
	data, err := os.ReadFile(path)
	return f, data, err
}

// Parse decodes data. Numbers decode as json.Number so that their decimal
// representation is kept.
func Parse(data []byte, f Format) (any, error) {
	switch f {
	case FormatJSON:
		return jsonschema.UnmarshalJSON(bytes.NewReader(data))
	case FormatYAML:
		var v any
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		return normalize(v)
	default:
		return nil, fmt.Errorf("unknown document format %q", f)
	}
}

// ParseValue interprets a command line value: JSON if it parses as JSON,
// otherwise the raw string.
func ParseValue(s string) any {
	if v, err := jsonschema.UnmarshalJSON(strings.NewReader(s)); err == nil {
		return v
	}
	return s
}
