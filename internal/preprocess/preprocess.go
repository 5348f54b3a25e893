// Package preprocess normalises schema documents before they are compiled.
package preprocess

// Schema returns a deep copy of schema in which every subschema that declares
// a "format" but no "type" gets "type": "string".
//
// The current node is handled first, then "properties" values, a single-schema
// "items", and each member of "oneOf", "anyOf" and "allOf". Array-form "items"
// and every other value are copied unchanged. Non-object inputs, including
// boolean schemas, are returned as they are. The input is never modified and
// the transform is idempotent.
func Schema(schema any) any {
	obj, ok := schema.(map[string]any)
	if !ok {
		return schema
	}

	out := make(map[string]any, len(obj)+1)
	for k, v := range obj {
		out[k] = clone(v)
	}

	if _, hasFormat := out["format"]; hasFormat {
		if _, hasType := out["type"]; !hasType {
			out["type"] = "string"
		}
	}

	if props, ok := out["properties"].(map[string]any); ok {
		for name, sub := range props {
			props[name] = Schema(sub)
		}
	}

	if items, ok := out["items"].(map[string]any); ok {
		out["items"] = Schema(items)
	}

	for _, kw := range []string{"oneOf", "anyOf", "allOf"} {
		if arr, ok := out[kw].([]any); ok {
			for i, sub := range arr {
				arr[i] = Schema(sub)
			}
		}
	}

	return out
}

// clone deep-copies JSON container values. Scalars are immutable and shared.
func clone(v any) any {
	switch x := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(x))
		for k, e := range x {
			m[k] = clone(e)
		}
		return m
	case []any:
		a := make([]any, len(x))
		for i, e := range x {
			a[i] = clone(e)
		}
		return a
	default:
		return v
	}
}
