// Package formats provides the string formats that schemaform adds on top of the
// formats built into the JSON Schema compiler.
//
// Each format is a pure predicate over a string. Predicates never panic; a value
// that does not match simply yields false, which the compiler reports as a
// "format" validation error at the enclosing instance location.
package formats

import (
	"encoding/json"
	"regexp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Predicate reports whether s conforms to a format.
type Predicate func(s string) bool

var (
	htmlTag   = regexp.MustCompile(`(?s)<[A-Za-z].*>`)
	iriScheme = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.\-]*:`)
)

const (
	maxHostnameLength = 253
	maxLabelLength    = 63
)

// registry maps a format name to its predicate.
var registry = map[string]Predicate{
	"json":          JSON,
	"html":          HTML,
	"text":          Text,
	"iri":           IRI,
	"iri-reference": IRIReference,
	"idn-email":     IDNEmail,
	"idn-hostname":  IDNHostname,
}

// JSON reports whether s parses as a JSON value. Bare scalars such as "123" or
// "null" are valid; the empty string is not.
func JSON(s string) bool {
	return json.Valid([]byte(s))
}

// HTML reports whether s contains at least one HTML-like tag: a '<', an ASCII
// letter, any characters, then '>'.
func HTML(s string) bool {
	return htmlTag.MatchString(s)
}

// Text accepts any string, including the empty string and multi-line text.
// It exists so that "format": "text" can drive a textarea control.
func Text(string) bool {
	return true
}

// IRI reports whether s is non-empty and starts with a scheme followed by ':'.
// Percent-encoding and Unicode normalisation are not checked.
func IRI(s string) bool {
	return s != "" && iriScheme.MatchString(s)
}

// IRIReference reports whether s is non-empty and free of whitespace and the
// characters < > { } | \ ^ and backtick.
func IRIReference(s string) bool {
	if s == "" {
		return false
	}
	return !strings.ContainsFunc(s, func(r rune) bool {
		if unicode.IsSpace(r) {
			return true
		}
		return strings.ContainsRune("<>{}|\\^`", r)
	})
}

// IDNEmail reports whether s has exactly one '@' separating two non-empty parts,
// and the domain part neither starts nor ends with '.'.
func IDNEmail(s string) bool {
	parts := strings.Split(s, "@")
	if len(parts) != 2 {
		return false
	}
	local, domain := parts[0], parts[1]
	if local == "" || domain == "" {
		return false
	}
	return !strings.HasPrefix(domain, ".") && !strings.HasSuffix(domain, ".")
}

// IDNHostname reports whether s is 1-253 characters long, does not start or end
// with '.' or '-', and every dot-separated label is 1-63 characters long without
// a leading or trailing '-'.
func IDNHostname(s string) bool {
	n := utf8.RuneCountInString(s)
	if n == 0 || n > maxHostnameLength {
		return false
	}
	if strings.HasPrefix(s, ".") || strings.HasSuffix(s, ".") ||
		strings.HasPrefix(s, "-") || strings.HasSuffix(s, "-") {
		return false
	}
	for _, label := range strings.Split(s, ".") {
		ln := utf8.RuneCountInString(label)
		if ln == 0 || ln > maxLabelLength {
			return false
		}
		if strings.HasPrefix(label, "-") || strings.HasSuffix(label, "-") {
			return false
		}
	}
	return true
}

// Lookup returns the predicate registered under name.
func Lookup(name string) (Predicate, bool) {
	p, ok := registry[name]
	return p, ok
}

// Names returns the names of all custom formats in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Register adds every custom format to the compiler. Formats of the same name
// built into the compiler (iri, iri-reference) are replaced.
func Register(c *jsonschema.Compiler) {
	for _, name := range Names() {
		c.RegisterFormat(newFormat(name, registry[name]))
	}
}

// newFormat adapts a Predicate to the compiler's format contract. Non-string
// values are ignored since formats only constrain strings.
func newFormat(name string, p Predicate) *jsonschema.Format {
	return &jsonschema.Format{
		Name: name,
		Validate: func(v any) error {
			s, ok := v.(string)
			if !ok {
				return nil
			}
			if !p(s) {
				return jsonschema.LocalizableError("not a valid %s value", name)
			}
			return nil
		},
	}
}
