// Package schemas provides JSON Schema validation for the structured
// documents exchanged with the semantic service and persisted on disk.
package schemas

import (
	"embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed *.schema.json
var schemaFiles embed.FS

// Schema names accepted by Validate.
const (
	SchemaProfile       = "profile.schema.json"
	SchemaFeedbackDelta = "feedback_delta.schema.json"
)

// FieldError represents a single validation error at a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError aggregates schema violations for one document.
type ValidationError struct {
	Schema string
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("document does not match %s:\n", e.Schema))
	for i, fe := range e.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, fe.Field, fe.Message))
	}
	return sb.String()
}

// Validate checks a JSON document against one of the embedded schemas.
// Returns a *ValidationError when the document is well-formed JSON but
// violates the schema, and a plain error when it cannot be evaluated at all.
func Validate(schemaName string, document []byte) error {
	schemaData, err := schemaFiles.ReadFile(schemaName)
	if err != nil {
		return fmt.Errorf("unknown schema %s: %w", schemaName, err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaData),
		gojsonschema.NewBytesLoader(document),
	)
	if err != nil {
		return fmt.Errorf("schema validation failed for %s: %w", schemaName, err)
	}

	if result.Valid() {
		return nil
	}

	verr := &ValidationError{Schema: schemaName}
	for _, desc := range result.Errors() {
		verr.Errors = append(verr.Errors, FieldError{
			Field:   desc.Field(),
			Message: desc.Description(),
		})
	}
	return verr
}
