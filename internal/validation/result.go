package validation

import (
	"cmp"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
)

// Result is the outcome of validating a data value.
// Errors is nil if and only if Valid is true.
type Result struct {
	Valid  bool    `json:"valid"`
	Errors []Error `json:"errors"`
}

// Error describes one violation found in a data value.
type Error struct {
	Keyword string `json:"keyword"`
	Message string `json:"message"`
	// InstancePath is a JSON Pointer into the data, "" for the root value.
	InstancePath string `json:"instancePath"`
	// SchemaPath locates the failing keyword in the schema, e.g. "#/properties/age/precision".
	SchemaPath string         `json:"schemaPath"`
	Params     map[string]any `json:"params"`
}

// First returns the first error whose instance path matches one of paths.
func (r *Result) First(paths ...string) (Error, bool) {
	for _, e := range r.Errors {
		if slices.Contains(paths, e.InstancePath) {
			return e, true
		}
	}
	return Error{}, false
}

func validResult() *Result {
	return &Result{Valid: true}
}

// newResult converts a validation error tree into a flat Result ordered by
// instance location.
func newResult(verr *jsonschema.ValidationError, order locationOrder) *Result {
	leaves := flatten(verr, nil)
	if len(leaves) == 0 {
		// a failure without a reportable cause is still a failure
		leaves = []*jsonschema.ValidationError{verr}
	}
	sortLeaves(leaves, order)

	errs := make([]Error, len(leaves))
	for i, l := range leaves {
		errs[i] = toError(l)
	}
	return &Result{Valid: false, Errors: errs}
}

// flatten collects the reportable errors of a tree in evaluation order.
// Structural nodes are transparent. anyOf and oneOf report their causes
// followed by themselves.
func flatten(e *jsonschema.ValidationError, out []*jsonschema.ValidationError) []*jsonschema.ValidationError {
	switch k := e.ErrorKind.(type) {
	case *kind.Schema, *kind.Group, *kind.Reference, *kind.AllOf:
		for _, c := range e.Causes {
			out = flatten(c, out)
		}
		return out
	case *kind.AnyOf:
		for _, c := range e.Causes {
			out = flatten(c, out)
		}
		return append(out, e)
	case *kind.OneOf:
		if k.Subschemas == nil {
			for _, c := range e.Causes {
				out = flatten(c, out)
			}
		}
		return append(out, e)
	default:
		return append(out, e)
	}
}

// sortLeaves orders errors by instance location: parents before children,
// object members in declared order and array items by index. "required"
// errors lead at each location. The sort is stable so that errors at one
// location keep the order in which their keywords were evaluated.
func sortLeaves(leaves []*jsonschema.ValidationError, order locationOrder) {
	slices.SortStableFunc(leaves, func(a, b *jsonschema.ValidationError) int {
		if c := compareLocations(a.InstanceLocation, b.InstanceLocation, order); c != 0 {
			return c
		}
		return cmp.Compare(requiredRank(a), requiredRank(b))
	})
}

func requiredRank(e *jsonschema.ValidationError) int {
	if keywordOf(e.ErrorKind) == "required" {
		return 0
	}
	return 1
}

func compareLocations(a, b []string, order locationOrder) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] == b[i] {
			continue
		}
		names := order.names(a[:i])
		if c := cmp.Compare(rank(names, a[i]), rank(names, b[i])); c != 0 {
			return c
		}
		return compareTokens(a[i], b[i])
	}
	return cmp.Compare(len(a), len(b))
}

func rank(names []string, tok string) int {
	if i := slices.Index(names, tok); i >= 0 {
		return i
	}
	return len(names)
}

func compareTokens(a, b string) int {
	ai, aerr := strconv.Atoi(a)
	bi, berr := strconv.Atoi(b)
	if aerr == nil && berr == nil {
		return cmp.Compare(ai, bi)
	}
	return strings.Compare(a, b)
}

func toError(e *jsonschema.ValidationError) Error {
	msg, params := describe(e.ErrorKind)
	return Error{
		Keyword:      keywordOf(e.ErrorKind),
		Message:      msg,
		InstancePath: pointer(e.InstanceLocation),
		SchemaPath:   schemaPath(e),
		Params:       params,
	}
}

func keywordOf(k jsonschema.ErrorKind) string {
	switch k.(type) {
	case *kind.FalseSchema:
		return "false schema"
	case *kind.Dependency:
		return "dependencies"
	}
	if path := k.KeywordPath(); len(path) > 0 {
		return path[0]
	}
	return ""
}

// pointer encodes tokens as a JSON Pointer.
func pointer(tokens []string) string {
	var sb strings.Builder
	for _, tok := range tokens {
		sb.WriteByte('/')
		sb.WriteString(escapeToken(tok))
	}
	return sb.String()
}

func escapeToken(tok string) string {
	tok = strings.ReplaceAll(tok, "~", "~0")
	return strings.ReplaceAll(tok, "/", "~1")
}

// schemaPath joins the fragment of the failing schema's location with the
// keyword path of the error.
func schemaPath(e *jsonschema.ValidationError) string {
	frag := ""
	if _, f, ok := strings.Cut(e.SchemaURL, "#"); ok {
		if dec, err := url.PathUnescape(f); err == nil {
			f = dec
		}
		frag = f
	}
	return "#" + frag + pointer(e.ErrorKind.KeywordPath())
}
