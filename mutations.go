package schemagrid

import (
	"fmt"
	"slices"
	"strings"
)

// HandleCellSave stores an edited cell value.
//
// The value is coerced for the schema field named cellName.
// If cellValue is an object with a property named cellName,
// all its properties are merged into the row.
// A nil or empty result for a number field removes the field.
// The record with the same key as row is replaced by the updated row.
func (t *TableField) HandleCellSave(row Record, cellName string, cellValue any) error {
	conf := t.tableConf()
	field, err := t.props.Schema.Field(cellName)
	if err != nil {
		t.logger().Error("can't save cell", "cell", cellName, "err", err)
		return err
	}
	key, ok := row[conf.KeyField]
	if !ok {
		return fmt.Errorf("%w %q for saving cell %q", ErrMissingKey, conf.KeyField, cellName)
	}

	updated := row.Clone()
	if value := t.coercer().CoerceForStorage(cellValue, field); value != nil {
		updated[cellName] = value
	} else {
		delete(updated, cellName)
	}
	if obj := asObject(cellValue); obj != nil {
		if _, ok := obj[cellName]; ok {
			for name, value := range obj {
				updated[name] = value
			}
		}
	}
	if field.Kind == KindNumber {
		if value := updated[cellName]; value == nil || value == "" {
			delete(updated, cellName)
		}
	}

	data := make([]Record, len(conf.Data))
	for i, r := range conf.Data {
		if ValuesEqual(r[conf.KeyField], key) {
			data[i] = updated
		} else {
			data[i] = r
		}
	}
	t.commit("cell save", StripSyntheticKey(data))
	return nil
}

// HandleRowsDelete removes all records with a key in removedKeys.
func (t *TableField) HandleRowsDelete(removedKeys []any) error {
	conf := t.tableConf()
	data := make([]Record, 0, len(conf.Data))
	for _, r := range conf.Data {
		removed := slices.ContainsFunc(removedKeys, func(k any) bool {
			return ValuesEqual(r[conf.KeyField], k)
		})
		if !removed {
			data = append(data, r)
		}
	}
	t.commit("rows delete", StripSyntheticKey(data))
	return nil
}

// HandleRowSelect sets the selection field of every record equal to row.
// The selection field is configured by the ViewConfig's
// selectRow.onSelectRow.fieldToUpdate and defaults to DefaultSelectionField.
func (t *TableField) HandleRowSelect(row Record, isSelected bool) error {
	conf := t.tableConf()
	field := selectionField(conf.SelectRow.OnSelectRow)
	data := make([]Record, len(conf.Data))
	for i, r := range conf.Data {
		if EqualRecords(r, row, PositionKey, field) {
			data[i] = withSelection(r, field, isSelected)
		} else {
			data[i] = r
		}
	}
	t.commit("row select", StripSyntheticKey(data))
	return nil
}

// HandleAllRowSelect sets the selection field of every record
// equal to one of rows. The selection field is configured by
// selectRow.onSelectAllRow.fieldToUpdate.
// Records not reported in rows keep their selection.
func (t *TableField) HandleAllRowSelect(isSelected bool, rows []Record) error {
	conf := t.tableConf()
	field := selectionField(conf.SelectRow.OnSelectAllRow)
	data := make([]Record, len(conf.Data))
	for i, r := range conf.Data {
		matches := slices.ContainsFunc(rows, func(row Record) bool {
			return EqualRecords(r, row, PositionKey, field)
		})
		if matches {
			data[i] = withSelection(r, field, isSelected)
		} else {
			data[i] = r
		}
	}
	t.commit("all rows select", StripSyntheticKey(data))
	return nil
}

// HandleRowInsert appends a new record.
// Values of schema fields are coerced like saved cells,
// absent fields get the schema default.
func (t *TableField) HandleRowInsert(row Record) error {
	conf := t.tableConf()
	inserted := make(Record, len(row))
	for name, value := range row {
		if name != PositionKey {
			inserted[name] = value
		}
	}
	for _, field := range t.props.Schema.Properties.Fields() {
		value, ok := row[field.Name]
		if !ok {
			if field.Default != nil {
				inserted[field.Name] = field.Default
			}
			continue
		}
		value = t.coercer().CoerceForStorage(value, field)
		if value == nil || (field.Kind == KindNumber && value == "") {
			delete(inserted, field.Name)
			continue
		}
		inserted[field.Name] = value
	}
	data := append(slices.Clone(conf.Data), inserted)
	t.commit("row insert", StripSyntheticKey(data))
	return nil
}

// RowClassName returns the completed class names of all "update"
// right actions for rows where the schema's DefaultFilterKey field
// is present and falsy, otherwise an empty string.
func (t *TableField) RowClassName(row Record, rowIndex int) string {
	view := t.view()
	if len(view.RightActions) == 0 {
		return ""
	}
	filterKey := t.props.Schema.DefaultFilterKey
	if filterKey == "" {
		return ""
	}
	value, ok := row[filterKey]
	if !ok || !IsFalsy(value) {
		return ""
	}
	var classNames []string
	for _, action := range view.RightActions {
		if action.Action != "update" {
			continue
		}
		if className := action.ActionConfiguration.ActionCompletedClassName; className != "" {
			classNames = append(classNames, className)
		}
	}
	return strings.Join(classNames, " ")
}

func selectionField(update FieldUpdate) string {
	if update.FieldToUpdate != "" {
		return update.FieldToUpdate
	}
	return DefaultSelectionField
}

// withSelection returns a copy of r with the selection stored in field.
// Deselecting removes a present field,
// a record without the field gets an explicit false.
func withSelection(r Record, field string, isSelected bool) Record {
	selected := r.Clone()
	if !isSelected && r.Has(field) {
		delete(selected, field)
	} else {
		selected[field] = isSelected
	}
	return selected
}

func asObject(v any) map[string]any {
	switch o := v.(type) {
	case map[string]any:
		return o
	case Record:
		return o
	}
	return nil
}
