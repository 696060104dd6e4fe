package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEventValidator(t *testing.T) *JSONSchemaValidator {
	t.Helper()

	schema, err := NewJSONSchemaBuilder().
		SetTitle("alert event").
		AllowAdditionalProperties(true).
		AddStringProperty("message", true).
		AddNumberProperty("timestamp", false).
		AddStringProperty("node_id", false).
		Build()
	require.NoError(t, err)

	v := NewJSONSchemaValidator()
	require.NoError(t, v.LoadSchema("event", schema))
	return v
}

func TestJSONSchemaValidator(t *testing.T) {
	v := newEventValidator(t)

	t.Run("Should accept a document with extra properties when allowed", func(t *testing.T) {
		assert.NoError(t, v.ValidateBytes("event", []byte(`{"message":"pH low","timestamp":12,"extra":true}`)))
	})

	t.Run("Should report every violation", func(t *testing.T) {
		err := v.ValidateBytes("event", []byte(`{"timestamp":"soon"}`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "validation failed")
		assert.Contains(t, err.Error(), "message")
		assert.Contains(t, err.Error(), "timestamp")
	})

	t.Run("Should fail for an unknown schema", func(t *testing.T) {
		err := v.ValidateBytes("missing", []byte(`{}`))
		assert.EqualError(t, err, "schema missing not found")
	})

	t.Run("Should fail to load an invalid schema", func(t *testing.T) {
		assert.Error(t, NewJSONSchemaValidator().LoadSchema("broken", `{"type": 12}`))
	})
}

func TestJSONSchemaBuilder(t *testing.T) {
	t.Run("Should reject additional properties by default", func(t *testing.T) {
		schema, err := NewJSONSchemaBuilder().AddNumberProperty("timestamp", true).Build()
		require.NoError(t, err)

		v := NewJSONSchemaValidator()
		require.NoError(t, v.LoadSchema("strict", schema))

		assert.NoError(t, v.ValidateBytes("strict", []byte(`{"timestamp":2.5}`)))
		assert.Error(t, v.ValidateBytes("strict", []byte(`{"timestamp":2,"other":1}`)))
		assert.Error(t, v.ValidateBytes("strict", []byte(`{}`)))
	})
}
