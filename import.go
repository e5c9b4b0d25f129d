package schemagrid

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoMatchingColumns is returned by RecordsFromView
// when no column title of a view names a schema field.
var ErrNoMatchingColumns = errors.New("no view column matches a schema field")

// RecordsFromView reads the rows of view as records of schema.
//
// A column belongs to the field whose name or title equals the
// column title ignoring case, or whose name spaced with SpacePascalCase
// equals the spaced column title, so "due_date" matches "dueDate".
// Other columns are ignored. Cells are coerced with storage coercion,
// empty cells leave the field absent.
// Object and array fields are only read from object or array cells.
func RecordsFromView(view View, schema *Schema, coercer *Coercer) ([]Record, error) {
	if coercer == nil {
		coercer = DefaultCoercer
	}
	fields := make([]*Field, len(view.Columns()))
	matched := false
	for col, title := range view.Columns() {
		fields[col] = fieldForTitle(schema, title)
		matched = matched || fields[col] != nil
	}
	if !matched {
		return nil, fmt.Errorf("%w in %q", ErrNoMatchingColumns, view.Title())
	}

	records := make([]Record, view.NumRows())
	for row := range records {
		record := make(Record)
		for col, field := range fields {
			if field == nil {
				continue
			}
			cell := view.Cell(row, col)
			if isEmptyValue(cell) {
				continue
			}
			if field.Kind == KindObject || field.Kind == KindArray {
				if _, isText := rawText(cell); isText {
					continue
				}
			}
			value := coercer.CoerceForStorage(cell, field)
			if value == nil || (field.Kind == KindNumber && value == "") {
				continue
			}
			record[field.Name] = value
		}
		records[row] = record
	}
	return records, nil
}

func fieldForTitle(schema *Schema, title string) *Field {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil
	}
	for _, field := range schema.Properties.Fields() {
		if strings.EqualFold(title, field.Name) ||
			(field.Title != "" && strings.EqualFold(title, field.Title)) ||
			strings.EqualFold(SpacePascalCase(title), SpacePascalCase(field.Name)) {
			return field
		}
	}
	return nil
}
