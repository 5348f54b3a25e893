package document

import (
	"bytes"
	"encoding/json"
	"slices"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// KeyOrder records the order in which object keys were written, indexed by
// the JSON Pointer of the object. The root object is "".
type KeyOrder map[string][]string

// Document is a decoded document together with the key order that decoding
// into Go maps loses.
type Document struct {
	Value any
	Keys  KeyOrder
}

// LoadOrdered reads and parses the document at path and records its key order.
func LoadOrdered(path string) (*Document, error) {
	f, data, err := read(path)
	if err != nil {
		return nil, err
	}
	d, err := ParseOrdered(data, f)
	if err != nil {
		return nil, &InvalidDocumentError{Path: path, Wrapped: err}
	}
	return d, nil
}

// ParseOrdered decodes data like Parse and records its key order.
func ParseOrdered(data []byte, f Format) (*Document, error) {
	v, err := Parse(data, f)
	if err != nil {
		return nil, err
	}

	keys := KeyOrder{}
	switch f {
	case FormatJSON:
		jsonKeys(gjson.ParseBytes(data), "", keys)
	case FormatYAML:
		var n yaml.Node
		if err = yaml.Unmarshal(data, &n); err != nil {
			return nil, err
		}
		yamlKeys(&n, "", keys)
	}
	return &Document{Value: v, Keys: keys}, nil
}

func jsonKeys(r gjson.Result, ptr string, keys KeyOrder) {
	switch {
	case r.IsObject():
		var names []string
		r.ForEach(func(k, v gjson.Result) bool {
			names = appendKey(names, k.String())
			jsonKeys(v, ptr+"/"+escape(k.String()), keys)
			return true
		})
		keys[ptr] = names
	case r.IsArray():
		for i, e := range r.Array() {
			jsonKeys(e, ptr+"/"+strconv.Itoa(i), keys)
		}
	}
}

func yamlKeys(n *yaml.Node, ptr string, keys KeyOrder) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) > 0 {
			yamlKeys(n.Content[0], ptr, keys)
		}
	case yaml.AliasNode:
		yamlKeys(n.Alias, ptr, keys)
	case yaml.MappingNode:
		var names []string
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			if k.ShortTag() == "!!merge" {
				continue
			}
			names = appendKey(names, k.Value)
			yamlKeys(v, ptr+"/"+escape(k.Value), keys)
		}
		keys[ptr] = names
	case yaml.SequenceNode:
		for i, c := range n.Content {
			yamlKeys(c, ptr+"/"+strconv.Itoa(i), keys)
		}
	}
}

// appendKey adds name unless a duplicate key already placed it.
func appendKey(names []string, name string) []string {
	if slices.Contains(names, name) {
		return names
	}
	return append(names, name)
}

func escape(tok string) string {
	tok = strings.ReplaceAll(tok, "~", "~0")
	return strings.ReplaceAll(tok, "/", "~1")
}

// MarshalJSON encodes the document with object keys in their recorded order.
// Keys with no recorded position follow, sorted by name.
func (d *Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.encode(&buf, d.Value, ""); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (d *Document) encode(buf *bytes.Buffer, v any, ptr string) error {
	switch x := v.(type) {
	case map[string]any:
		buf.WriteByte('{')
		for i, k := range d.orderedKeys(x, ptr) {
			if i > 0 {
				buf.WriteByte(',')
			}
			name, err := json.Marshal(k)
			if err != nil {
				return err
			}
			buf.Write(name)
			buf.WriteByte(':')
			if err = d.encode(buf, x[k], ptr+"/"+escape(k)); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case []any:
		buf.WriteByte('[')
		for i, e := range x {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := d.encode(buf, e, ptr+"/"+strconv.Itoa(i)); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return err
		}
		buf.Write(b)
	}
	return nil
}

func (d *Document) orderedKeys(m map[string]any, ptr string) []string {
	keys := make([]string, 0, len(m))
	for _, k := range d.Keys[ptr] {
		if _, ok := m[k]; ok {
			keys = append(keys, k)
		}
	}
	var rest []string
	for k := range m {
		if !slices.Contains(keys, k) {
			rest = append(rest, k)
		}
	}
	slices.Sort(rest)
	return append(keys, rest...)
}
