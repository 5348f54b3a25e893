package validator

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchemaID = "http://example.com/schema.json"

func mustParse(t *testing.T, s string) any {
	t.Helper()
	v, err := jsonschema.UnmarshalJSON(strings.NewReader(s))
	require.NoError(t, err)
	return v
}

func compile(t *testing.T, f *Factory, schema string) (Validator, error) {
	t.Helper()
	c := f.New()
	if err := c.AddSchema(testSchemaID, mustParse(t, schema)); err != nil {
		return nil, err
	}
	return c.Compile(testSchemaID)
}

func TestNewFactory(t *testing.T) {
	t.Parallel()
	f := NewFactory()
	assert.Equal(t, DefaultDraft, f.Draft())
	assert.NotNil(t, f.New())

	assert.Equal(t, Draft2020_12, NewFactory(WithDraft(Draft2020_12)).Draft())
	assert.Equal(t, DefaultDraft, NewFactory(WithDraft("draft-99")).Draft(), "unsupported drafts are ignored")
}

func TestFactory_NewReturnsIndependentCompilers(t *testing.T) {
	t.Parallel()
	f := NewFactory()
	a := f.New()
	b := f.New()

	require.NoError(t, a.AddSchema(testSchemaID, mustParse(t, `{"type":"string"}`)))
	_, err := b.Compile(testSchemaID)
	require.Error(t, err, "a schema added to one compiler is not visible to another")

	v, err := a.Compile(testSchemaID)
	require.NoError(t, err)
	require.NoError(t, v.Validate("x"))
}

func TestSanthoshCompiler_Compile(t *testing.T) {
	t.Parallel()
	t.Run("successful compile", func(t *testing.T) {
		t.Parallel()
		v, err := compile(t, NewFactory(), `{"$id":"`+testSchemaID+`","type":"object"}`)
		require.NoError(t, err)
		assert.NotNil(t, v)
	})

	t.Run("compile missing schema", func(t *testing.T) {
		t.Parallel()
		v, err := NewFactory().New().Compile("http://example.com/missing.json")
		require.Error(t, err)
		assert.Nil(t, v)
	})

	t.Run("compile invalid schema", func(t *testing.T) {
		t.Parallel()
		v, err := compile(t, NewFactory(), `{"type":123}`)
		require.Error(t, err)
		assert.Nil(t, v)
	})
}

func TestSanthoshCompiler_SupportedSchemaVersions(t *testing.T) {
	t.Parallel()
	versions := NewFactory().New().SupportedSchemaVersions()
	assert.Len(t, versions, 5)
	assert.Contains(t, versions, Draft4)
	assert.Contains(t, versions, Draft6)
	assert.Contains(t, versions, Draft7)
	assert.Contains(t, versions, Draft2019_09)
	assert.Contains(t, versions, Draft2020_12)
}

func TestCustomFactory_FormatsAndKeywords(t *testing.T) {
	t.Parallel()
	v, err := compile(t, NewFactory(), `{
		"type": "object",
		"properties": {
			"payload": {"type": "string", "format": "json"},
			"body": {"type": "string", "format": "html"},
			"notes": {"type": "string", "format": "text"},
			"name": {"type": "string", "required": true},
			"price": {"type": "number", "precision": 2}
		},
		"required": ["name"]
	}`)
	require.NoError(t, err)

	valid := map[string]any{
		"payload": `{"a":1}`,
		"body":    "<p>hi</p>",
		"notes":   "anything",
		"name":    "John",
		"price":   json.Number("9.99"),
	}
	require.NoError(t, v.Validate(valid))

	tests := []struct {
		name  string
		field string
		value any
	}{
		{"invalid json", "payload", "{"},
		{"invalid html", "body", "plain"},
		{"empty required property", "name", ""},
		{"too many decimals", "price", json.Number("9.999")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			doc := map[string]any{}
			for k, val := range valid {
				doc[k] = val
			}
			doc[tt.field] = tt.value
			require.Error(t, v.Validate(doc))
		})
	}

	t.Run("missing required property", func(t *testing.T) {
		t.Parallel()
		require.Error(t, v.Validate(map[string]any{"price": json.Number("1")}))
	})
}

func TestPlainFactory_RejectsCustomVocabulary(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		schema string
		strict bool
	}{
		{"format json", `{"type":"string","format":"json"}`, true},
		{"format html", `{"type":"string","format":"html"}`, true},
		{"format text", `{"type":"string","format":"text"}`, true},
		{"precision", `{"type":"number","precision":2}`, true},
		{"property-level required", `{"type":"string","required":true}`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := compile(t, NewPlainFactory(), tt.schema)
			require.Error(t, err)
			var serr *StrictModeError
			assert.Equal(t, tt.strict, errors.As(err, &serr))

			_, err = compile(t, NewFactory(), tt.schema)
			require.NoError(t, err, "the custom factory accepts the same schema")
		})
	}
}

func TestPlainFactory_StandardSchemas(t *testing.T) {
	t.Parallel()
	v, err := compile(t, NewPlainFactory(), `{
		"type": "object",
		"properties": {"email": {"type": "string", "format": "email"}},
		"required": ["email"]
	}`)
	require.NoError(t, err)
	require.NoError(t, v.Validate(map[string]any{"email": "a@b.co"}))
	require.Error(t, v.Validate(map[string]any{"email": "nope"}))
	require.Error(t, v.Validate(map[string]any{}))
}

func TestStrictMode(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		schema  string
		path    string
		keyword string
		format  string
	}{
		{
			name:    "unknown keyword",
			schema:  `{"type":"object","properties":{"age":{"type":"number","widget":"slider"}}}`,
			path:    "#/properties/age",
			keyword: "widget",
		},
		{
			name:   "unknown format",
			schema: `{"type":"string","format":"colour"}`,
			path:   "#",
			format: "colour",
		},
		{
			name:    "escaped property names",
			schema:  `{"properties":{"a/b":{"x":1}}}`,
			path:    "#/properties/a~1b",
			keyword: "x",
		},
		{
			name:    "array subschemas",
			schema:  `{"anyOf":[{"type":"string"},{"y":1}]}`,
			path:    "#/anyOf/1",
			keyword: "y",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := compile(t, NewFactory(WithStrict(true)), tt.schema)
			require.Error(t, err)
			var serr *StrictModeError
			require.ErrorAs(t, err, &serr)
			assert.Equal(t, tt.path, serr.Path)
			assert.Equal(t, tt.keyword, serr.Keyword)
			assert.Equal(t, tt.format, serr.Format)
			assert.Contains(t, serr.Error(), "strict mode")

			_, err = compile(t, NewFactory(), tt.schema)
			require.NoError(t, err, "non-strict compilers ignore unknown annotations")
		})
	}
}

func TestStrictModeAcceptsCustomVocabulary(t *testing.T) {
	t.Parallel()
	_, err := compile(t, NewFactory(WithStrict(true)), `{
		"type": "object",
		"title": "Person",
		"properties": {
			"bio": {"type": "string", "format": "html", "required": true},
			"score": {"type": "number", "precision": 1}
		}
	}`)
	require.NoError(t, err)
}

func TestSanthoshValidator_Validate(t *testing.T) {
	t.Parallel()
	v, err := compile(t, NewFactory(), `{
		"$id": "`+testSchemaID+`",
		"type": "object",
		"properties": {"foo": {"type": "string"}},
		"required": ["foo"]
	}`)
	require.NoError(t, err)

	t.Run("valid document", func(t *testing.T) {
		t.Parallel()
		require.NoError(t, v.Validate(map[string]any{"foo": "bar"}))
	})

	t.Run("invalid document", func(t *testing.T) {
		t.Parallel()
		require.Error(t, v.Validate(map[string]any{"foo": json.Number("123")}))
	})

	t.Run("missing required field", func(t *testing.T) {
		t.Parallel()
		require.Error(t, v.Validate(map[string]any{}))
	})
}

func TestDraftSelection(t *testing.T) {
	t.Parallel()
	// prefixItems only exists from 2020-12 onwards
	schema := `{"type":"array","prefixItems":[{"type":"string"}]}`
	doc := []any{json.Number("1")}

	v, err := compile(t, NewFactory(WithDraft(Draft7)), schema)
	require.NoError(t, err)
	require.NoError(t, v.Validate(doc))

	v, err = compile(t, NewFactory(WithDraft(Draft2020_12)), schema)
	require.NoError(t, err)
	require.Error(t, v.Validate(doc))
}
