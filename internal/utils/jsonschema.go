package utils

import (
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// JSONSchemaValidator handles validation against JSON schemas
type JSONSchemaValidator struct {
	schemas map[string]*gojsonschema.Schema
}

// NewJSONSchemaValidator creates a new JSONSchemaValidator
func NewJSONSchemaValidator() *JSONSchemaValidator {
	return &JSONSchemaValidator{
		schemas: make(map[string]*gojsonschema.Schema),
	}
}

// LoadSchema loads and compiles a JSON schema
func (v *JSONSchemaValidator) LoadSchema(name, schema string) error {
	schemaLoader := gojsonschema.NewStringLoader(schema)
	compiledSchema, err := gojsonschema.NewSchema(schemaLoader)
	if err != nil {
		return fmt.Errorf("failed to compile schema %s: %w", name, err)
	}

	v.schemas[name] = compiledSchema
	return nil
}

// ValidateBytes validates a raw JSON document against a named schema
func (v *JSONSchemaValidator) ValidateBytes(name string, document []byte) error {
	schema, ok := v.schemas[name]
	if !ok {
		return fmt.Errorf("schema %s not found", name)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(document))
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if !result.Valid() {
		var errorMessages string
		for i, err := range result.Errors() {
			if i > 0 {
				errorMessages += "; "
			}
			errorMessages += fmt.Sprintf("%s: %s", err.Field(), err.Description())
		}
		return fmt.Errorf("validation failed: %s", errorMessages)
	}

	return nil
}

// JSONSchemaBuilder helps build JSON schemas programmatically
type JSONSchemaBuilder struct {
	schema map[string]interface{}
}

// NewJSONSchemaBuilder creates a new JSONSchemaBuilder
func NewJSONSchemaBuilder() *JSONSchemaBuilder {
	return &JSONSchemaBuilder{
		schema: map[string]interface{}{
			"$schema":              "http://json-schema.org/draft-07/schema#",
			"type":                 "object",
			"additionalProperties": false,
			"properties":           map[string]interface{}{},
			"required":             []string{},
		},
	}
}

// SetTitle sets the schema title
func (b *JSONSchemaBuilder) SetTitle(title string) *JSONSchemaBuilder {
	b.schema["title"] = title
	return b
}

// AllowAdditionalProperties toggles whether unknown properties are accepted
func (b *JSONSchemaBuilder) AllowAdditionalProperties(allow bool) *JSONSchemaBuilder {
	b.schema["additionalProperties"] = allow
	return b
}

// AddProperty adds a property to the schema
func (b *JSONSchemaBuilder) AddProperty(name, propertyType string, required bool) *JSONSchemaBuilder {
	properties := b.schema["properties"].(map[string]interface{})
	properties[name] = map[string]interface{}{
		"type": propertyType,
	}

	if required {
		requiredProps := b.schema["required"].([]string)
		b.schema["required"] = append(requiredProps, name)
	}

	return b
}

// AddStringProperty adds a string property to the schema
func (b *JSONSchemaBuilder) AddStringProperty(name string, required bool) *JSONSchemaBuilder {
	return b.AddProperty(name, "string", required)
}

// AddNumberProperty adds a number property to the schema
func (b *JSONSchemaBuilder) AddNumberProperty(name string, required bool) *JSONSchemaBuilder {
	return b.AddProperty(name, "number", required)
}

// Build returns the JSON schema as a string
func (b *JSONSchemaBuilder) Build() (string, error) {
	jsonBytes, err := json.MarshalIndent(b.schema, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal schema: %w", err)
	}

	return string(jsonBytes), nil
}
