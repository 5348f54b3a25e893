package keywords

// Subschema locations, per draft-04 to 2020-12.
var (
	schemaMaps = []string{
		"properties", "patternProperties", "definitions", "$defs",
		"dependentSchemas", "dependencies",
	}
	schemaValues = []string{
		"additionalProperties", "items", "additionalItems", "contains",
		"propertyNames", "not", "if", "then", "else",
		"unevaluatedProperties", "unevaluatedItems", "contentSchema",
	}
	schemaArrays = []string{"allOf", "anyOf", "oneOf", "prefixItems", "items"}
)

// Lower returns a copy of schema in which every "required" keyword holding a
// boolean or an array of strings is moved to the private keyword compiled by
// Vocabulary. Other "required" values are left in place so that the
// metaschema rejects them. schema is not modified.
func Lower(schema any) any {
	obj, ok := schema.(map[string]any)
	if !ok {
		return schema
	}

	out := make(map[string]any, len(obj))
	for k, v := range obj {
		out[k] = v
	}

	if raw, ok := out[Required]; ok && lowerable(raw) {
		delete(out, Required)
		out[loweredRequired] = raw
	}

	for _, kw := range schemaMaps {
		if m, ok := out[kw].(map[string]any); ok {
			lowered := make(map[string]any, len(m))
			for name, sub := range m {
				lowered[name] = Lower(sub)
			}
			out[kw] = lowered
		}
	}
	for _, kw := range schemaValues {
		if sub, ok := out[kw].(map[string]any); ok {
			out[kw] = Lower(sub)
		}
	}
	for _, kw := range schemaArrays {
		if arr, ok := out[kw].([]any); ok {
			lowered := make([]any, len(arr))
			for i, sub := range arr {
				lowered[i] = Lower(sub)
			}
			out[kw] = lowered
		}
	}

	return out
}

func lowerable(raw any) bool {
	switch v := raw.(type) {
	case bool:
		return true
	case []any:
		_, ok := toStrings(v)
		return ok
	}
	return false
}
