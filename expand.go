package schemagrid

import (
	"fmt"
)

// ExpandedContent is the detail content shown below an expanded row.
type ExpandedContent struct {
	Sections []ExpandedSection `json:"sections"`
}

// IsEmpty returns true if the content has no sections.
func (c *ExpandedContent) IsEmpty() bool {
	return c == nil || len(c.Sections) == 0
}

// ExpandedSection lists the sub-fields of one object column.
// A section always has at least one item.
type ExpandedSection struct {
	DataField string   `json:"dataField"`
	Heading   string   `json:"heading"`
	Items     []string `json:"items"`
}

// BuildExpandedContent builds the expanded content of row
// from the table columns flagged with IncludeInExpandedRow.
//
// If the column has an Order, every ordered sub-field with a non empty
// value that is flagged in the column's Fields renders an item
// "title - value". Object sub-fields render their description.
// Without Order, every non empty object sub-field in the sub-schema's
// property order renders "code - description".
//
// Columns without items are omitted.
// An error wrapping ErrMissingField is returned if an included column
// or an ordered sub-field is not declared by the schema.
func BuildExpandedContent(schema *Schema, tableCols []TableColumn, row Record, coercer *Coercer) (*ExpandedContent, error) {
	content := new(ExpandedContent)
	for i := range tableCols {
		col := &tableCols[i]
		if !col.IncludeInExpandedRow {
			continue
		}
		field, err := schema.Field(col.DataField)
		if err != nil {
			return nil, err
		}
		var items []string
		if len(col.Order) > 0 {
			items, err = orderedItems(field, col, row.Object(col.DataField), coercer)
			if err != nil {
				return nil, err
			}
		} else {
			items = codeDescriptionItems(field, row.Object(col.DataField))
		}
		if len(items) == 0 {
			continue
		}
		heading := field.Title
		if heading == "" {
			heading = SpacePascalCase(field.Name)
		}
		content.Sections = append(content.Sections, ExpandedSection{
			DataField: col.DataField,
			Heading:   heading,
			Items:     items,
		})
	}
	return content, nil
}

func orderedItems(field *Field, col *TableColumn, data map[string]any, coercer *Coercer) ([]string, error) {
	var items []string
	for _, name := range col.Order {
		sub := field.Properties.Get(name)
		if sub == nil {
			return nil, missingField(name, fmt.Sprintf("properties of %q", field.Name))
		}
		conf, ok := col.Fields[name]
		if !ok || !conf.IncludeInExpandedRow {
			continue
		}
		value := data[name]
		if isEmptyValue(value) {
			continue
		}
		switch sub.Kind {
		case KindObject:
			items = append(items, sub.Title+" - "+Text(asObject(value)["description"]))
		case KindArray:
			// Arrays have no single line representation
		default:
			display := coercer.CoerceForDisplay(value, sub.Kind, conf.DataFormat)
			items = append(items, sub.Title+" - "+Text(display))
		}
	}
	return items, nil
}

func codeDescriptionItems(field *Field, data map[string]any) []string {
	var items []string
	for _, name := range field.Properties.Names() {
		obj := asObject(data[name])
		if len(obj) == 0 {
			continue
		}
		items = append(items, Text(obj["code"])+" - "+Text(obj["description"]))
	}
	return items
}
