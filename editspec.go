package schemagrid

import (
	"encoding/json"
)

// EditorType is the cell editor widget of a column.
type EditorType string

const (
	EditorText     EditorType = ""
	EditorSelect   EditorType = "select"
	EditorCheckbox EditorType = "checkbox"
	EditorDateTime EditorType = "datetime"
	EditorDate     EditorType = "date"
	EditorTime     EditorType = "time"
)

// SelectOption is a value of a select editor.
// Text is empty if the options have no labels.
type SelectOption struct {
	Value any    `json:"value"`
	Text  string `json:"text"`
}

// EditSpec describes how a column's cells are edited.
// The zero value is a freely editable plain text cell.
type EditSpec struct {
	Type     EditorType
	Disabled bool
	Options  []SelectOption
	// Labeled is true when Options pair values with labels.
	Labeled bool
}

// IsPlain returns true if the cell is editable as plain text,
// which grid widgets express as editable: true.
func (e EditSpec) IsPlain() bool {
	return e.Type == EditorText && !e.Disabled
}

// MarshalJSON implements json.Marshaler using the shape
// grid widgets expect for the editable column property:
// true, false or {"type": ..., "options": {"values": [...]}}.
func (e EditSpec) MarshalJSON() ([]byte, error) {
	if e.Disabled {
		return []byte("false"), nil
	}
	if e.Type == EditorText {
		return []byte("true"), nil
	}
	spec := struct {
		Type    EditorType `json:"type"`
		Options *struct {
			Values any `json:"values"`
		} `json:"options,omitempty"`
	}{Type: e.Type}
	if e.Type == EditorSelect {
		spec.Options = &struct {
			Values any `json:"values"`
		}{}
		if e.Labeled {
			spec.Options.Values = e.Options
		} else {
			values := make([]any, len(e.Options))
			for i, o := range e.Options {
				values[i] = o.Value
			}
			spec.Options.Values = values
		}
	}
	return json.Marshal(spec)
}

// EditSpecFor derives the cell editor of a field.
// Enumerations are edited with a select,
// labeled if the field has enumNames.
// Other fields use the editor of their FieldKind.
func EditSpecFor(field *Field) EditSpec {
	if field.HasEnum() {
		spec := EditSpec{
			Type:    EditorSelect,
			Options: make([]SelectOption, len(field.Enum)),
			Labeled: len(field.EnumNames) > 0,
		}
		for i, value := range field.Enum {
			spec.Options[i].Value = value
			if i < len(field.EnumNames) {
				spec.Options[i].Text = field.EnumNames[i]
			}
		}
		return spec
	}
	return EditSpec{Type: behaviorOf(field.Kind).editor()}
}
