package keywords

import (
	"github.com/santhosh-tekuri/jsonschema/v6"
)

// compileRequired returns the extension for a lowered "required" value, or nil
// when the keyword imposes no constraint ("required": false).
func compileRequired(raw any) jsonschema.SchemaExt {
	switch v := raw.(type) {
	case bool:
		if v {
			return propertyRequired{}
		}
		return nil
	case []any:
		names, ok := toStrings(v)
		if !ok {
			return nil
		}
		return &objectRequired{names: names}
	case []string:
		return &objectRequired{names: v}
	}
	return nil
}

// objectRequired checks that each listed property exists as an own key of an
// object. Only the first missing property is reported.
type objectRequired struct {
	names []string
}

func (r *objectRequired) Validate(ctx *jsonschema.ValidatorContext, v any) {
	obj, ok := v.(map[string]any)
	if !ok {
		return
	}
	for _, name := range r.names {
		if _, ok := obj[name]; !ok {
			ctx.AddError(&RequiredProperty{Missing: name})
			return
		}
	}
}

// propertyRequired rejects null and, for strings, the empty string.
type propertyRequired struct{}

func (propertyRequired) Validate(ctx *jsonschema.ValidatorContext, v any) {
	if v == nil {
		ctx.AddError(&NotNull{})
		return
	}
	if s, ok := v.(string); ok && s == "" {
		ctx.AddError(&NotEmpty{})
	}
}

func toStrings(arr []any) ([]string, bool) {
	names := make([]string, 0, len(arr))
	for _, item := range arr {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		names = append(names, s)
	}
	return names, true
}
