package schema

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/mchmarny/docnav/pkg/sidebar"
)

//go:embed sidebar.schema.json
var embeddedSchemaData []byte

// Validator validates sidebar documents against the embedded JSON Schema.
type Validator struct {
	schema *jsonschema.Schema
}

// NewValidator creates a new schema validator, loading the embedded schema.
func NewValidator() (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("sidebar.json", strings.NewReader(string(embeddedSchemaData))); err != nil {
		return nil, fmt.Errorf("failed to add embedded schema resource: %w", err)
	}

	schema, err := compiler.Compile("sidebar.json")
	if err != nil {
		return nil, fmt.Errorf("failed to compile embedded schema: %w", err)
	}

	return &Validator{schema: schema}, nil
}

// Embedded returns the raw embedded schema document.
func Embedded() []byte {
	out := make([]byte, len(embeddedSchemaData))
	copy(out, embeddedSchemaData)
	return out
}

// Validate validates any value that marshals to a sidebar document, such as
// a *sidebar.Sidebar or a generic map.
func (v *Validator) Validate(data any) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal sidebar to JSON for validation: %w", err)
	}

	var doc any
	if err := json.Unmarshal(jsonData, &doc); err != nil {
		return fmt.Errorf("failed to unmarshal JSON for validation: %w", err)
	}

	if err := v.schema.Validate(doc); err != nil {
		if validationErr, ok := err.(*jsonschema.ValidationError); ok {
			var messages []string
			collectErrors(validationErr, &messages)
			return fmt.Errorf("schema validation failed:\n%s", strings.Join(messages, "\n"))
		}
		return fmt.Errorf("schema validation failed: %w", err)
	}

	return nil
}

// ValidateDocument decodes a raw YAML or JSON document into generic values and
// validates it, so fields the Go types would drop are still reported.
func (v *Validator) ValidateDocument(data []byte, format sidebar.Format) error {
	var doc any

	switch format {
	case sidebar.FormatJSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parse JSON document: %w", err)
		}
	case sidebar.FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parse YAML document: %w", err)
		}
	default:
		return fmt.Errorf("unsupported format %q", format)
	}

	return v.Validate(doc)
}

// collectErrors recursively collects all validation errors into a slice
func collectErrors(err *jsonschema.ValidationError, messages *[]string) {
	if len(err.Causes) == 0 {
		loc := err.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		*messages = append(*messages, fmt.Sprintf("- %s: %s", loc, err.Message))
	}
	for _, cause := range err.Causes {
		collectErrors(cause, messages)
	}
}
