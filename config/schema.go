package config

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// GenerateSchema reflects the configuration structs into the JSON Schema that
// schema.Validator embeds. Field names come from the json tags, which mirror
// the yaml tags; the free-form Extensions map is decoded on demand and stays
// out of the schema.
func GenerateSchema() ([]byte, error) {
	reflector := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		ExpandedStruct:            true,
		FieldNameTag:              "json",
	}

	s := reflector.Reflect(&Config{})
	s.Title = "Launcher Configuration"
	s.Description = "Schema for launcher.yml actions, togglers and settings."
	s.Version = "http://json-schema.org/draft-07/schema#"

	return json.MarshalIndent(s, "", "  ")
}
