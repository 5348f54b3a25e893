package validation

import (
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/andyballingall/schemaform/internal/document"
)

// locationOrder gives the declared order of the members of the instance at
// parent. Members it does not list sort after those it does, by name.
type locationOrder interface {
	names(parent []string) []string
}

// byName declares no order.
type byName struct{}

func (byName) names([]string) []string { return nil }

// documentOrder orders the members of a document as they were written. Lint
// uses it because the schema is the instance being checked.
type documentOrder document.KeyOrder

func (o documentOrder) names(parent []string) []string {
	return o[pointer(parent)]
}

// schemaOrder orders the members of a data value by the declaration order of
// the schema properties that describe them. That is the order in which the
// properties are evaluated.
type schemaOrder struct {
	root  any
	keys  document.KeyOrder
	cache map[string][]string
}

func newSchemaOrder(root any, keys document.KeyOrder) *schemaOrder {
	return &schemaOrder{root: root, keys: keys, cache: map[string][]string{}}
}

func (o *schemaOrder) names(parent []string) []string {
	key := pointer(parent)
	if names, ok := o.cache[key]; ok {
		return names
	}

	schemas := o.applicable([]string{""})
	for _, tok := range parent {
		schemas = o.applicable(o.step(schemas, tok))
	}
	var names []string
	for _, s := range schemas {
		for _, n := range o.keys[s+"/properties"] {
			if !slices.Contains(names, n) {
				names = append(names, n)
			}
		}
	}
	o.cache[key] = names
	return names
}

// applicable returns ptrs together with the schemas they pull in at the same
// instance location: local $ref targets, combinator branches and if/then/else.
func (o *schemaOrder) applicable(ptrs []string) []string {
	var out []string
	seen := map[string]bool{}
	var visit func(ptr string)
	visit = func(ptr string) {
		if seen[ptr] {
			return
		}
		seen[ptr] = true
		obj, ok := lookup(o.root, ptr).(map[string]any)
		if !ok {
			return
		}
		out = append(out, ptr)

		if ref, ok := obj["$ref"].(string); ok {
			if target, ok := localRef(ref); ok {
				visit(target)
			}
		}
		for _, kw := range []string{"allOf", "anyOf", "oneOf"} {
			if arr, ok := obj[kw].([]any); ok {
				for i := range arr {
					visit(ptr + "/" + kw + "/" + strconv.Itoa(i))
				}
			}
		}
		for _, kw := range []string{"if", "then", "else"} {
			visit(ptr + "/" + kw)
		}
	}
	for _, p := range ptrs {
		visit(p)
	}
	return out
}

// step returns the schemas that describe member tok of an instance described
// by ptrs.
func (o *schemaOrder) step(ptrs []string, tok string) []string {
	var next []string
	for _, ptr := range ptrs {
		obj, _ := lookup(o.root, ptr).(map[string]any)
		if props, ok := obj["properties"].(map[string]any); ok {
			if _, ok := props[tok]; ok {
				next = append(next, ptr+"/properties/"+escapeToken(tok))
				continue
			}
		}
		if i, err := strconv.Atoi(tok); err == nil {
			switch items := obj["items"].(type) {
			case map[string]any:
				next = append(next, ptr+"/items")
				continue
			case []any:
				if i >= 0 && i < len(items) {
					next = append(next, ptr+"/items/"+tok)
				} else {
					next = append(next, ptr+"/additionalItems")
				}
				continue
			}
		}
		next = append(next, ptr+"/additionalProperties")
	}
	return next
}

// lookup returns the value at the JSON Pointer ptr, or nil.
func lookup(v any, ptr string) any {
	if ptr == "" {
		return v
	}
	if !strings.HasPrefix(ptr, "/") {
		return nil
	}
	for _, tok := range strings.Split(ptr[1:], "/") {
		tok = unescapeToken(tok)
		switch x := v.(type) {
		case map[string]any:
			v = x[tok]
		case []any:
			i, err := strconv.Atoi(tok)
			if err != nil || i < 0 || i >= len(x) {
				return nil
			}
			v = x[i]
		default:
			return nil
		}
	}
	return v
}

// localRef returns the JSON Pointer of a reference into the same document.
func localRef(ref string) (string, bool) {
	frag, ok := strings.CutPrefix(ref, "#")
	if !ok {
		return "", false
	}
	if dec, err := url.PathUnescape(frag); err == nil {
		frag = dec
	}
	if frag != "" && !strings.HasPrefix(frag, "/") {
		return "", false
	}
	return frag, true
}

func unescapeToken(tok string) string {
	tok = strings.ReplaceAll(tok, "~1", "/")
	return strings.ReplaceAll(tok, "~0", "~")
}

// unwrap returns the value of a *document.Document and its key order. Other
// values are returned as they are, with no key order.
func unwrap(v any) (any, document.KeyOrder) {
	if d, ok := v.(*document.Document); ok && d != nil {
		return d.Value, d.Keys
	}
	return v, nil
}
