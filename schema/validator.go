// Package schema validates launcher configuration against the embedded JSON
// Schema generated by tools/schema-generator.
package schema

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed launcher.embedded.schema.json
var embeddedSchema []byte

// Validator checks a decoded configuration against the embedded schema.
type Validator struct {
	schema *jsonschema.Schema
}

func NewValidator() (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("launcher.json", bytes.NewReader(embeddedSchema)); err != nil {
		return nil, fmt.Errorf("failed to add embedded schema resource: %w", err)
	}
	schema, err := compiler.Compile("launcher.json")
	if err != nil {
		return nil, fmt.Errorf("failed to compile embedded schema: %w", err)
	}
	return &Validator{schema: schema}, nil
}

// Validate round-trips the config struct through JSON so the schema sees the
// plain-object shape it was generated for, then reports all violations in one
// error.
func (v *Validator) Validate(cfg interface{}) error {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config for validation: %w", err)
	}
	var instance interface{}
	if err := json.Unmarshal(raw, &instance); err != nil {
		return fmt.Errorf("failed to unmarshal config for validation: %w", err)
	}

	err = v.schema.Validate(instance)
	if err == nil {
		return nil
	}
	if validationErr, ok := err.(*jsonschema.ValidationError); ok {
		return fmt.Errorf("schema validation failed:\n%s", strings.Join(flatten(validationErr), "\n"))
	}
	return fmt.Errorf("schema validation failed: %w", err)
}

func flatten(err *jsonschema.ValidationError) []string {
	var messages []string
	if err.InstanceLocation != "" {
		messages = append(messages, fmt.Sprintf("- %s: %s", err.InstanceLocation, err.Message))
	}
	for _, cause := range err.Causes {
		messages = append(messages, flatten(cause)...)
	}
	return messages
}
