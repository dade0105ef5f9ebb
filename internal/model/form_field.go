package model

// Field types accepted in a dynamic form schema.  Boolean-like fields
// (checkbox, terms) are considered filled only when the answer is true;
// multi_select is filled when at least one option is chosen.
const (
	FieldShortText    = "short_text"
	FieldParagraph    = "paragraph"
	FieldNumber       = "number"
	FieldSingleSelect = "single_select"
	FieldMultiSelect  = "multi_select"
	FieldCheckbox     = "checkbox"
	FieldDate         = "date"
	FieldTerms        = "terms"
)

// FieldOption is one selectable choice of a single_select or
// multi_select field.
type FieldOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// FieldDef is one element of an item's dynamic form schema.  Schemas are
// authored by administrators and stored as JSON on the content item.
// IDs must be unique within a schema; options are required for select
// types.
type FieldDef struct {
	ID          string        `json:"id"`
	Type        string        `json:"type"`
	Label       string        `json:"label"`
	Required    bool          `json:"required"`
	Placeholder string        `json:"placeholder,omitempty"`
	HelpText    string        `json:"help_text,omitempty"`
	Options     []FieldOption `json:"options,omitempty"`
}
