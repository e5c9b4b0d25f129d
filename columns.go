package schemagrid

import (
	"fmt"
	"slices"
)

// Column is the descriptor of a grid column
// derived from a schema field and its override.
// Columns are recomputed for every render and never persisted.
type Column struct {
	DataField    string        `json:"dataField"`
	DisplayName  string        `json:"displayName"`
	Editable     EditSpec      `json:"editable"`
	DataFormat   DataFormatter `json:"-"`
	CustomEditor *CustomEditor `json:"-"`

	Hidden              bool   `json:"hidden,omitempty"`
	ClassName           string `json:"className,omitempty"`
	ColumnClassName     string `json:"columnClassName,omitempty"`
	EditColumnClassName string `json:"editColumnClassName,omitempty"`

	// Field is the schema field of the column.
	Field *Field `json:"-"`
}

// Format returns the display value of the column for a row
// using DataFormat if set, else the display coercion
// of the column's field kind.
func (c *Column) Format(row Record, coercer *Coercer) any {
	cell := row[c.DataField]
	if c.DataFormat != nil {
		return c.DataFormat.FormatData(cell, row)
	}
	if c.Field == nil {
		return cell
	}
	return coercer.CoerceForDisplay(cell, c.Field.Kind, "")
}

// FieldProps are passed to a FieldEditor.
type FieldProps struct {
	FormData any
	Schema   *Field
	UISchema map[string]any
	OnChange func(value any)
}

// FieldEditor is a custom cell editor component
// registered by id in a Registry.
// The returned element is opaque to this package.
type FieldEditor interface {
	RenderField(props FieldProps) any
}

// FieldEditorFunc implements FieldEditor for a function.
type FieldEditorFunc func(props FieldProps) any

func (f FieldEditorFunc) RenderField(props FieldProps) any {
	return f(props)
}

// Registry maps custom field editor ids to editors.
type Registry map[string]FieldEditor

// CustomEditor wraps a registered FieldEditor for a column.
type CustomEditor struct {
	editor   FieldEditor
	schema   *Field
	uiSchema map[string]any
}

// GetElement renders the editor for the current cell value.
// Changes are reported by calling onUpdate directly.
func (e *CustomEditor) GetElement(onUpdate func(value any), defaultValue any) any {
	return e.editor.RenderField(FieldProps{
		FormData: defaultValue,
		Schema:   e.schema,
		UISchema: e.uiSchema,
		OnChange: onUpdate,
	})
}

// BuildColumns derives the column descriptors of a schema,
// orders them by the overrides in tableCols
// and merges the overrides into the columns.
//
// An override naming a field that is not in the schema
// only affects the ordering if it carries nothing but layout.
// If it sets a custom editor, a data format or a formatter
// an error wrapping ErrMissingField is returned.
func BuildColumns(schema *Schema, tableCols []TableColumn, fields Registry) ([]Column, error) {
	for i := range tableCols {
		tCol := &tableCols[i]
		if schema.Properties.Get(tCol.DataField) != nil {
			continue
		}
		if tCol.Field != "" || tCol.DataFormat != "" || tCol.Formatter != nil {
			return nil, missingField(tCol.DataField, "schema items.properties")
		}
	}

	columns := make([]Column, 0, schema.Properties.Len())
	for _, field := range schema.Properties.Fields() {
		col := Column{
			DataField:   field.Name,
			DisplayName: field.Title,
			Editable:    EditSpecFor(field),
			Field:       field,
		}
		if col.DisplayName == "" {
			col.DisplayName = SpacePascalCase(field.Name)
		}
		if field.HasEnum() && len(field.EnumNames) > 0 {
			col.DataFormat = EnumNamesFormatter{Field: field}
		}
		columns = append(columns, col)
	}

	order := make([]string, len(tableCols))
	for i := range tableCols {
		order[i] = tableCols[i].DataField
	}
	columns = orderColumns(columns, order)

	for i := range columns {
		if tCol := findTableColumn(tableCols, columns[i].DataField); tCol != nil {
			mergeOverride(&columns[i], tCol, fields)
		}
	}
	return withColumnCSS(columns), nil
}

func findTableColumn(tableCols []TableColumn, dataField string) *TableColumn {
	for i := range tableCols {
		if tableCols[i].DataField == dataField {
			return &tableCols[i]
		}
	}
	return nil
}

func mergeOverride(col *Column, tCol *TableColumn, fields Registry) {
	if tCol.Title != "" {
		col.DisplayName = tCol.Title
	}
	switch {
	case tCol.Formatter != nil:
		col.DataFormat = tCol.Formatter
	case tCol.DataFormat != "":
		col.DataFormat = SubPropertyFormatter{DataField: col.DataField, Property: tCol.DataFormat}
	}
	if editor, ok := fields[tCol.Field]; ok && tCol.Field != "" {
		col.CustomEditor = &CustomEditor{
			editor:   editor,
			schema:   col.Field,
			uiSchema: tCol.UISchema,
		}
	}
	if tCol.Editable != nil && !*tCol.Editable {
		col.Editable.Disabled = true
	}
	col.Hidden = tCol.Hidden
	if tCol.ClassName != "" {
		col.ClassName = tCol.ClassName
	}
	if tCol.ColumnClassName != "" {
		col.ColumnClassName = tCol.ColumnClassName
	}
	if tCol.EditColumnClassName != "" {
		col.EditColumnClassName = tCol.EditColumnClassName
	}
}

// orderColumns moves the columns named in order to the front
// in that order, followed by the other columns in their original order.
// Names in order without a column are ignored.
func orderColumns(columns []Column, order []string) []Column {
	if len(order) == 0 {
		return columns
	}
	var ordered, rest []Column
	for _, name := range order {
		for i := range columns {
			if columns[i].DataField == name && !containsColumn(ordered, name) {
				ordered = append(ordered, columns[i])
			}
		}
	}
	if len(ordered) == 0 {
		return columns
	}
	for _, col := range columns {
		if !slices.Contains(order, col.DataField) {
			rest = append(rest, col)
		}
	}
	return append(ordered, rest...)
}

func containsColumn(columns []Column, dataField string) bool {
	return slices.ContainsFunc(columns, func(c Column) bool { return c.DataField == dataField })
}

// withColumnCSS sets a responsive width class on every visible column
// except the first, unless the column already has a class.
// No classes are set for more than 12 visible columns.
func withColumnCSS(columns []Column) []Column {
	var visible []int
	for i := range columns {
		if !columns[i].Hidden {
			visible = append(visible, i)
		}
	}
	if len(visible) == 0 {
		return columns
	}
	colSize := 12 / len(visible)
	if colSize == 0 {
		return columns
	}
	css := fmt.Sprintf("col-md-%d", colSize)
	for n, i := range visible {
		if n == 0 {
			continue
		}
		col := &columns[i]
		if col.ClassName == "" {
			col.ClassName = css
		}
		if col.ColumnClassName == "" {
			col.ColumnClassName = col.ClassName
		}
		if col.EditColumnClassName == "" {
			col.EditColumnClassName = col.ClassName
		}
	}
	return columns
}
