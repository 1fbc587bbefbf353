// Package schema generates and enforces the JSON Schema of sidebar documents.
package schema

import (
	"encoding/json"

	"github.com/invopop/jsonschema"

	"github.com/mchmarny/docnav/pkg/sidebar"
)

// Generate reflects the sidebar types into a JSON Schema describing the
// document shape. The output follows the reflector's dialect (2020-12, with
// definitions under $defs). Variant rules (links need an href, categories
// need items) are only expressed in the embedded schema used by Validator.
func Generate() ([]byte, error) {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		FieldNameTag:              "yaml",
	}

	schema := r.Reflect(&sidebar.Sidebar{})
	schema.Title = "Documentation Sidebar"
	schema.Description = "Navigation groups of a documentation site."

	return json.MarshalIndent(schema, "", "  ")
}
