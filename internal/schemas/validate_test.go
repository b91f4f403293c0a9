package schemas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_ProfileDocument(t *testing.T) {
	valid := `{
		"shopping_principles": ["prefer wired"],
		"blacklisted_keywords": [],
		"preferred_ingredients": [],
		"disliked_ingredients": []
	}`
	assert.NoError(t, Validate(SchemaProfile, []byte(valid)))
}

func TestValidate_FeedbackDeltaDocument(t *testing.T) {
	assert.NoError(t, Validate(SchemaFeedbackDelta, []byte(`{}`)))
	assert.NoError(t, Validate(SchemaFeedbackDelta, []byte(`{"blacklisted_keywords": ["refurbished"]}`)))
}

func TestValidate_WrongItemType(t *testing.T) {
	doc := `{"blacklisted_keywords": [42]}`
	err := Validate(SchemaFeedbackDelta, []byte(doc))
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, SchemaFeedbackDelta, verr.Schema)
	assert.NotEmpty(t, verr.Errors)
}

func TestValidate_NonObjectDocument(t *testing.T) {
	err := Validate(SchemaFeedbackDelta, []byte(`["not", "an", "object"]`))
	assert.Error(t, err)
}

func TestValidate_UnknownSchema(t *testing.T) {
	err := Validate("bogus.schema.json", []byte(`{}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown schema")
}

func TestValidationError_MessageListsFields(t *testing.T) {
	verr := &ValidationError{
		Schema: SchemaProfile,
		Errors: []FieldError{{Field: "shopping_principles", Message: "Invalid type"}},
	}
	assert.Contains(t, verr.Error(), "shopping_principles")
	assert.Contains(t, verr.Error(), SchemaProfile)
}
