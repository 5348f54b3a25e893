package preprocess

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, s string) any {
	t.Helper()
	v, err := jsonschema.UnmarshalJSON(strings.NewReader(s))
	require.NoError(t, err)
	return v
}

func asJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

func TestSchema(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "format without type",
			in:   `{"format":"email"}`,
			want: `{"format":"email","type":"string"}`,
		},
		{
			name: "explicit type is kept",
			in:   `{"format":"date","type":["string","null"]}`,
			want: `{"format":"date","type":["string","null"]}`,
		},
		{
			name: "no format",
			in:   `{"type":"number","precision":2}`,
			want: `{"type":"number","precision":2}`,
		},
		{
			name: "nested properties",
			in:   `{"type":"object","properties":{"email":{"format":"email"},"age":{"type":"number"}}}`,
			want: `{"type":"object","properties":{"email":{"format":"email","type":"string"},"age":{"type":"number"}}}`,
		},
		{
			name: "single items",
			in:   `{"type":"array","items":{"format":"uri"}}`,
			want: `{"type":"array","items":{"format":"uri","type":"string"}}`,
		},
		{
			name: "tuple items are not rewritten",
			in:   `{"type":"array","items":[{"format":"uri"}]}`,
			want: `{"type":"array","items":[{"format":"uri"}]}`,
		},
		{
			name: "combinators",
			in:   `{"oneOf":[{"format":"ipv4"},true],"anyOf":[{"format":"ipv6"}],"allOf":[{"format":"json"}]}`,
			want: `{"oneOf":[{"format":"ipv4","type":"string"},true],"anyOf":[{"format":"ipv6","type":"string"}],` +
				`"allOf":[{"format":"json","type":"string"}]}`,
		},
		{
			name: "other subschema locations are not visited",
			in:   `{"not":{"format":"email"},"definitions":{"d":{"format":"email"}}}`,
			want: `{"not":{"format":"email"},"definitions":{"d":{"format":"email"}}}`,
		},
		{
			name: "deep nesting",
			in:   `{"properties":{"a":{"properties":{"b":{"items":{"anyOf":[{"format":"html"}]}}}}}}`,
			want: `{"properties":{"a":{"properties":{"b":{"items":{"anyOf":[{"format":"html","type":"string"}]}}}}}}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Schema(parse(t, tt.in))
			assert.JSONEq(t, tt.want, asJSON(t, got))
		})
	}
}

func TestSchemaPassesThroughNonObjects(t *testing.T) {
	t.Parallel()
	assert.Equal(t, true, Schema(true))
	assert.Equal(t, false, Schema(false))
	assert.Nil(t, Schema(nil))
	assert.Equal(t, "x", Schema("x"))
}

func TestSchemaDoesNotMutateInput(t *testing.T) {
	t.Parallel()
	in := parse(t, `{
		"properties": {"email": {"format": "email"}},
		"items": {"format": "uri"},
		"oneOf": [{"format": "date"}],
		"enum": [["a"], {"b": 1}]
	}`)
	before := asJSON(t, in)

	out := Schema(in)
	assert.Equal(t, before, asJSON(t, in))

	// the output shares no containers with the input
	out.(map[string]any)["enum"].([]any)[0].([]any)[0] = "changed"
	assert.Equal(t, before, asJSON(t, in))
}

func TestSchemaIsIdempotent(t *testing.T) {
	t.Parallel()
	schemas := []string{
		`{"format":"email"}`,
		`{"type":"object","properties":{"a":{"format":"json"},"b":{"items":{"format":"text"}}},"required":["a"]}`,
		`{"anyOf":[{"format":"date"},{"type":"null"}]}`,
		`true`,
	}
	for _, s := range schemas {
		once := Schema(parse(t, s))
		twice := Schema(once)
		assert.JSONEq(t, asJSON(t, once), asJSON(t, twice), s)
	}
}
