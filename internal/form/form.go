// Package form derives input field descriptors from a schema document.
//
// A property's control is chosen from its "format", falling back to its
// "type". Unknown discriminants render as a plain text input.
package form

import (
	"github.com/tidwall/gjson"
)

// Control names an input widget.
type Control string

const (
	ControlText       Control = "text"
	ControlTextArea   Control = "textarea"
	ControlEmail      Control = "email"
	ControlNumber     Control = "number"
	ControlCheckbox   Control = "checkbox"
	ControlJSONEditor Control = "json-editor"
	ControlHTMLEditor Control = "html-editor"
	ControlDate       Control = "date"
	ControlDateTime   Control = "datetime"
	ControlTime       Control = "time"
	ControlURL        Control = "url"
	ControlList       Control = "list"
	ControlGroup      Control = "group"
)

var controls = map[string]Control{
	// formats
	"text":          ControlTextArea,
	"email":         ControlEmail,
	"idn-email":     ControlEmail,
	"json":          ControlJSONEditor,
	"html":          ControlHTMLEditor,
	"date":          ControlDate,
	"date-time":     ControlDateTime,
	"time":          ControlTime,
	"uri":           ControlURL,
	"iri":           ControlURL,
	"uri-reference": ControlURL,
	"iri-reference": ControlURL,
	// types
	"string":  ControlText,
	"number":  ControlNumber,
	"integer": ControlNumber,
	"boolean": ControlCheckbox,
	"array":   ControlList,
	"object":  ControlGroup,
}

// ControlFor returns the control for a discriminant, a format or type name.
func ControlFor(discriminant string) Control {
	if c, ok := controls[discriminant]; ok {
		return c
	}
	return ControlText
}

// Field describes how one property is presented.
type Field struct {
	Name         string  `json:"name"`
	Label        string  `json:"label"`
	Description  string  `json:"description,omitempty"`
	Discriminant string  `json:"discriminant"`
	Control      Control `json:"control"`
	Required     bool    `json:"required"`
	// Fields holds the nested properties of an object property.
	Fields []Field `json:"fields,omitempty"`
}

// InvalidJSONError is returned when the schema is not valid JSON.
type InvalidJSONError struct{}

func (e *InvalidJSONError) Error() string {
	return "schema is not valid JSON"
}

// Describe returns a Field for each entry of the schema's "properties", in
// document order.
func Describe(schema []byte) ([]Field, error) {
	if !gjson.ValidBytes(schema) {
		return nil, &InvalidJSONError{}
	}
	return describe(gjson.ParseBytes(schema)), nil
}

func describe(schema gjson.Result) []Field {
	required := map[string]bool{}
	if req := schema.Get("required"); req.IsArray() {
		for _, name := range req.Array() {
			required[name.String()] = true
		}
	}

	var fields []Field
	schema.Get("properties").ForEach(func(key, prop gjson.Result) bool {
		name := key.String()
		d := discriminant(prop)
		f := Field{
			Name:         name,
			Label:        name,
			Description:  prop.Get("description").String(),
			Discriminant: d,
			Control:      ControlFor(d),
			Required:     required[name] || prop.Get("required").Type == gjson.True,
		}
		if title := prop.Get("title"); title.Type == gjson.String && title.String() != "" {
			f.Label = title.String()
		}
		if f.Control == ControlGroup {
			f.Fields = describe(prop)
		}
		fields = append(fields, f)
		return true
	})
	return fields
}

// discriminant is the property's format, or else its first non-null type.
func discriminant(prop gjson.Result) string {
	if f := prop.Get("format"); f.Type == gjson.String {
		return f.String()
	}
	t := prop.Get("type")
	if t.IsArray() {
		for _, v := range t.Array() {
			if v.String() != "null" {
				return v.String()
			}
		}
		return ""
	}
	return t.String()
}
