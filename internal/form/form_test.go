package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/munihub/civic-portal/internal/model"
)

func schemaOf(fields ...model.FieldDef) []model.FieldDef { return fields }

func TestValidate_EmptySchema(t *testing.T) {
	assert.ErrorIs(t, Validate(nil, map[string]any{"x": "y"}), ErrMissingSchema)
	assert.ErrorIs(t, Validate([]model.FieldDef{}, nil), ErrMissingSchema)
}

func TestValidate_CollectsAllMissingFields(t *testing.T) {
	schema := schemaOf(
		model.FieldDef{ID: "name", Type: model.FieldShortText, Required: true},
		model.FieldDef{ID: "age", Type: model.FieldNumber, Required: true},
		model.FieldDef{ID: "terms", Type: model.FieldTerms, Required: true},
		model.FieldDef{ID: "notes", Type: model.FieldParagraph, Required: false},
	)
	err := Validate(schema, map[string]any{})

	var mf *MissingFieldsError
	require.ErrorAs(t, err, &mf)
	assert.Equal(t, []string{"name", "age", "terms"}, mf.FieldIDs)
}

func TestValidate_TermsMustBeTrue(t *testing.T) {
	schema := schemaOf(
		model.FieldDef{ID: "name", Type: model.FieldShortText, Required: true},
		model.FieldDef{ID: "terms", Type: model.FieldTerms, Required: true},
	)
	err := Validate(schema, map[string]any{"name": "Ana"})

	var mf *MissingFieldsError
	require.ErrorAs(t, err, &mf)
	assert.Equal(t, []string{"terms"}, mf.FieldIDs)

	err = Validate(schema, map[string]any{"name": "Ana", "terms": false})
	require.ErrorAs(t, err, &mf)
	assert.Equal(t, []string{"terms"}, mf.FieldIDs)

	assert.NoError(t, Validate(schema, map[string]any{"name": "Ana", "terms": true}))
}

func TestValidate_TextRequiresNonBlank(t *testing.T) {
	schema := schemaOf(model.FieldDef{ID: "name", Type: model.FieldShortText, Required: true})

	var mf *MissingFieldsError
	require.ErrorAs(t, Validate(schema, map[string]any{"name": "   "}), &mf)
	assert.NoError(t, Validate(schema, map[string]any{"name": " Ana "}))
}

func TestValidate_MultiSelectRequiresElements(t *testing.T) {
	schema := schemaOf(model.FieldDef{
		ID: "topics", Type: model.FieldMultiSelect, Required: true,
		Options: []model.FieldOption{{Label: "Parks", Value: "parks"}},
	})

	var mf *MissingFieldsError
	require.ErrorAs(t, Validate(schema, map[string]any{"topics": []any{}}), &mf)
	assert.NoError(t, Validate(schema, map[string]any{"topics": []any{"parks"}}))
	assert.NoError(t, Validate(schema, map[string]any{"topics": []string{"parks"}}))
}

func TestValidate_UnknownKeysAndOptionalFieldsPass(t *testing.T) {
	schema := schemaOf(
		model.FieldDef{ID: "name", Type: model.FieldShortText, Required: true},
		model.FieldDef{ID: "phone", Type: model.FieldShortText, Required: false},
	)
	assert.NoError(t, Validate(schema, map[string]any{
		"name":   "Ana",
		"extra":  42,
		"legacy": "ignored",
	}))
}

func TestValidate_NonTextTypesAcceptAnyNonNil(t *testing.T) {
	schema := schemaOf(
		model.FieldDef{ID: "age", Type: model.FieldNumber, Required: true},
		model.FieldDef{ID: "day", Type: model.FieldDate, Required: true},
	)
	assert.NoError(t, Validate(schema, map[string]any{"age": float64(0), "day": "2026-01-01"}))

	var mf *MissingFieldsError
	err := Validate(schema, map[string]any{"age": float64(1)})
	require.ErrorAs(t, err, &mf)
	assert.Equal(t, []string{"day"}, mf.FieldIDs)
}

func TestValidateSchema(t *testing.T) {
	valid := schemaOf(
		model.FieldDef{ID: "name", Type: model.FieldShortText, Label: "Name"},
		model.FieldDef{ID: "topic", Type: model.FieldSingleSelect, Label: "Topic",
			Options: []model.FieldOption{{Label: "Parks", Value: "parks"}}},
	)
	assert.NoError(t, ValidateSchema(valid))
	assert.ErrorIs(t, ValidateSchema(nil), ErrMissingSchema)

	bad := map[string][]model.FieldDef{
		"blank id":       schemaOf(model.FieldDef{ID: " ", Type: model.FieldShortText, Label: "X"}),
		"duplicate id":   schemaOf(valid[0], valid[0]),
		"unknown type":   schemaOf(model.FieldDef{ID: "x", Type: "slider", Label: "X"}),
		"missing label":  schemaOf(model.FieldDef{ID: "x", Type: model.FieldShortText}),
		"select without": schemaOf(model.FieldDef{ID: "x", Type: model.FieldMultiSelect, Label: "X"}),
	}
	for name, schema := range bad {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, ValidateSchema(schema), ErrInvalidSchema)
		})
	}
}

func TestValidate_IsDeterministic(t *testing.T) {
	schema := schemaOf(
		model.FieldDef{ID: "a", Type: model.FieldShortText, Required: true},
		model.FieldDef{ID: "b", Type: model.FieldCheckbox, Required: true},
	)
	answers := map[string]any{"a": ""}
	first := Validate(schema, answers)
	for i := 0; i < 10; i++ {
		err := Validate(schema, answers)
		require.Error(t, err)
		assert.Equal(t, first.Error(), err.Error())
	}
	var mf *MissingFieldsError
	require.ErrorAs(t, first, &mf)
	assert.Equal(t, []string{"a", "b"}, mf.FieldIDs)
}
