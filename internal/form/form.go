// Package form validates submitted registration answers against an
// item's dynamic field schema.  Validation is a pure function: it
// performs no I/O and the same (schema, answers) pair always yields the
// same verdict.  Answers are only checked at registration time; stored
// answers are never re-validated because schemas may evolve.
package form

import (
	"errors"
	"fmt"
	"strings"

	"github.com/munihub/civic-portal/internal/model"
)

// ErrMissingSchema is returned when an item requires registration but
// carries no schema with at least one field.
var ErrMissingSchema = errors.New("registration form schema is missing or empty")

// MissingFieldsError reports every required field whose answer failed
// the filled predicate, not just the first one, so the client can show
// all violations in a single round trip.
type MissingFieldsError struct {
	FieldIDs []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.FieldIDs, ", "))
}

// Validate checks answers against the schema.  Non-required fields and
// unknown extra keys are accepted without inspection so that older
// clients keep working when a schema gains optional fields.
func Validate(schema []model.FieldDef, answers map[string]any) error {
	if len(schema) == 0 {
		return ErrMissingSchema
	}
	var missing []string
	for _, f := range schema {
		if !f.Required {
			continue
		}
		if !filled(f.Type, answers[f.ID]) {
			missing = append(missing, f.ID)
		}
	}
	if len(missing) > 0 {
		return &MissingFieldsError{FieldIDs: missing}
	}
	return nil
}

var knownTypes = map[string]bool{
	model.FieldShortText:    true,
	model.FieldParagraph:    true,
	model.FieldNumber:       true,
	model.FieldSingleSelect: true,
	model.FieldMultiSelect:  true,
	model.FieldCheckbox:     true,
	model.FieldDate:         true,
	model.FieldTerms:        true,
}

// ErrInvalidSchema wraps every schema-authoring mistake so callers can
// distinguish bad admin input from storage failures.
var ErrInvalidSchema = errors.New("invalid form schema")

// ValidateSchema checks an admin-authored schema before it is stored:
// field ids must be present and unique, types known, and select fields
// must carry at least one option.
func ValidateSchema(schema []model.FieldDef) error {
	if len(schema) == 0 {
		return ErrMissingSchema
	}
	seen := make(map[string]bool, len(schema))
	for _, f := range schema {
		if strings.TrimSpace(f.ID) == "" {
			return fmt.Errorf("%w: field is missing an id", ErrInvalidSchema)
		}
		if seen[f.ID] {
			return fmt.Errorf("%w: duplicate field id %q", ErrInvalidSchema, f.ID)
		}
		seen[f.ID] = true
		if !knownTypes[f.Type] {
			return fmt.Errorf("%w: unknown field type %q", ErrInvalidSchema, f.Type)
		}
		if strings.TrimSpace(f.Label) == "" {
			return fmt.Errorf("%w: field %q is missing a label", ErrInvalidSchema, f.ID)
		}
		if (f.Type == model.FieldSingleSelect || f.Type == model.FieldMultiSelect) && len(f.Options) == 0 {
			return fmt.Errorf("%w: field %q requires options", ErrInvalidSchema, f.ID)
		}
	}
	return nil
}

// filled implements the per-type predicate deciding whether a required
// answer counts as provided.
func filled(fieldType string, answer any) bool {
	if answer == nil {
		return false
	}
	switch fieldType {
	case model.FieldCheckbox, model.FieldTerms:
		// Boolean-like fields must be explicitly true; false or any
		// non-boolean value does not satisfy a required consent box.
		b, ok := answer.(bool)
		return ok && b
	case model.FieldShortText, model.FieldParagraph:
		s, ok := answer.(string)
		return ok && strings.TrimSpace(s) != ""
	case model.FieldMultiSelect:
		switch v := answer.(type) {
		case []any:
			return len(v) > 0
		case []string:
			return len(v) > 0
		default:
			return false
		}
	default:
		// number, single_select, date and future types: any non-nil
		// answer counts.
		return true
	}
}
