package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const contactSchema = `{
	"type": "object",
	"properties": {
		"email": {"type": "string", "format": "email"},
		"name": {"type": "string", "minLength": 2, "required": true},
		"phone": {"type": "string", "minLength": 5},
		"age": {"type": "integer", "minimum": 0},
		"a/b": {"type": "string", "maxLength": 1},
		"size": {"enum": ["S", "M", "L"]},
		"code": {"type": "string", "pattern": "^[A-Z]{3}$"}
	},
	"required": ["phone"]
}`

func TestValidateField(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		field     string
		value     any
		wantMsg   string
		wantFound bool
	}{
		{
			name:  "empty value for an optional format field",
			field: "email",
			value: "",
		},
		{
			name:  "valid email",
			field: "email",
			value: "john@example.com",
		},
		{
			name:      "invalid email",
			field:     "email",
			value:     "not-an-email",
			wantMsg:   `must match format "email"`,
			wantFound: true,
		},
		{
			name:      "property-level required rejects empty",
			field:     "name",
			value:     "",
			wantMsg:   "must not be empty",
			wantFound: true,
		},
		{
			name:      "null fails the type check first",
			field:     "name",
			value:     nil,
			wantMsg:   "must be string",
			wantFound: true,
		},
		{
			name:      "constraints apply once something is entered",
			field:     "name",
			value:     "J",
			wantMsg:   "must NOT have fewer than 2 characters",
			wantFound: true,
		},
		{
			name:  "object-level required is a presence check",
			field: "phone",
			value: "",
		},
		{
			name:      "object-level required field with a bad value",
			field:     "phone",
			value:     "123",
			wantMsg:   "must NOT have fewer than 5 characters",
			wantFound: true,
		},
		{
			name:      "an unfilled field still has a type",
			field:     "age",
			value:     "",
			wantMsg:   "must be integer",
			wantFound: true,
		},
		{
			name:      "an unfilled field must still be an allowed value",
			field:     "size",
			value:     "",
			wantMsg:   "must be equal to one of the allowed values",
			wantFound: true,
		},
		{
			name:  "pattern waits for input",
			field: "code",
			value: "",
		},
		{
			name:      "pattern applies once something is entered",
			field:     "code",
			value:     "x1",
			wantMsg:   `must match pattern "^[A-Z]{3}$"`,
			wantFound: true,
		},
		{
			name:      "below minimum",
			field:     "age",
			value:     -1,
			wantMsg:   "must be >= 0",
			wantFound: true,
		},
		{
			name:      "escaped field names",
			field:     "a/b",
			value:     "xy",
			wantMsg:   "must NOT have more than 1 characters",
			wantFound: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			msg, found, err := New().ValidateField(mustParse(t, contactSchema), tt.field, tt.value)
			require.NoError(t, err)
			if !tt.wantFound {
				assert.False(t, found)
				assert.Empty(t, msg)
				return
			}
			assert.True(t, found)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestValidateField_UnknownField(t *testing.T) {
	t.Parallel()
	_, _, err := New().ValidateField(mustParse(t, contactSchema), "missing", "x")
	var ferr *UnknownFieldError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, "missing", ferr.Field)
}

func TestValidateFieldSchema(t *testing.T) {
	t.Parallel()
	v := New()

	msg, found, err := v.ValidateFieldSchema("age", mustParse(t, `{"type":"number","precision":1}`), 1.25, false)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "must have at most 1 decimal places", msg)

	_, found, err = v.ValidateFieldSchema("age", mustParse(t, `{"type":"number"}`), 1.25, true)
	require.NoError(t, err)
	assert.False(t, found)

	_, _, err = v.ValidateFieldSchema("age", mustParse(t, `{"type":7}`), 1, false)
	var cerr *CompileError
	require.ErrorAs(t, err, &cerr)
}
