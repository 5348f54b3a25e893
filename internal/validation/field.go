package validation

import (
	"slices"
)

// ValidateField validates value as the field name of an object described by
// parent. It returns the message of the first error that concerns the field,
// and false if there is none.
//
// The field is required if parent lists it in an object-level "required" array.
func (v *Validator) ValidateField(parent any, name string, value any) (string, bool, error) {
	parent, _ = unwrap(parent)
	obj, _ := parent.(map[string]any)
	props, _ := obj["properties"].(map[string]any)
	fieldSchema, ok := props[name]
	if !ok {
		return "", false, &UnknownFieldError{Field: name}
	}
	return v.ValidateFieldSchema(name, fieldSchema, value, objectRequired(obj, name))
}

// ValidateFieldSchema validates value against fieldSchema as if it were the
// property name of an object. If required is true the object must contain it.
//
// An empty string is an unfilled field. The keywords that judge entered text
// (format, pattern and minLength) do not apply to it until something has been
// entered. The field's own "required", type, enum and const still do.
func (v *Validator) ValidateFieldSchema(name string, fieldSchema, value any, required bool) (string, bool, error) {
	fieldSchema, _ = unwrap(fieldSchema)
	if s, ok := value.(string); ok && s == "" {
		fieldSchema = unfilled(fieldSchema)
	}
	wrapper := map[string]any{
		"type":       "object",
		"properties": map[string]any{name: fieldSchema},
	}
	if required {
		wrapper["required"] = []any{name}
	}

	res, err := v.ValidateData(map[string]any{name: value}, wrapper)
	if err != nil {
		return "", false, err
	}
	if e, ok := res.First("/"+escapeToken(name), ""); ok {
		return e.Message, true, nil
	}
	return "", false, nil
}

// textKeywords judge the text of a string value.
var textKeywords = []string{"format", "pattern", "minLength"}

// unfilled returns schema without its textKeywords.
func unfilled(schema any) any {
	obj, ok := schema.(map[string]any)
	if !ok {
		return schema
	}
	out := make(map[string]any, len(obj))
	for k, v := range obj {
		if !slices.Contains(textKeywords, k) {
			out[k] = v
		}
	}
	return out
}

// objectRequired reports whether obj lists name in an object-level "required" array.
func objectRequired(obj map[string]any, name string) bool {
	switch req := obj["required"].(type) {
	case []any:
		return slices.Contains(req, any(name))
	case []string:
		return slices.Contains(req, name)
	default:
		return false
	}
}
