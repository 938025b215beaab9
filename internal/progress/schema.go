package progress

import (
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const recordSchemaURL = "schema://session-record.json"

// recordSchema is the shape every stored session document must have.
var recordSchema = map[string]any{
	"type":     "object",
	"required": []any{"currentIndex", "cardOrder"},
	"properties": map[string]any{
		"currentIndex": map[string]any{"type": "integer"},
		"cardOrder": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
	},
}

var compiledRecordSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	if err := c.AddResource(recordSchemaURL, recordSchema); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	return c.Compile(recordSchemaURL)
})

// validateRecord checks a decoded JSON value against recordSchema.
func validateRecord(v any) error {
	sch, err := compiledRecordSchema()
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	return sch.Validate(v)
}
