package schemagrid

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// UISchema is the ui configuration of a table field.
type UISchema struct {
	Table *ViewConfig `yaml:"table" json:"table,omitempty"`
}

// ViewConfig is the presentation and behavior configuration
// of the table, the "table" entry of the ui-schema.
// It is read-only for this package, computed defaults
// are applied to copies.
type ViewConfig struct {
	// KeyField names the record field acting as row identity.
	// If empty, a synthetic positional key is used.
	KeyField string `yaml:"keyField" json:"keyField,omitempty"`

	// TableCols are ordered column overrides.
	TableCols []TableColumn `yaml:"tableCols" json:"tableCols,omitempty"`

	// IsTableExpandable makes rows expandable when set,
	// independent of its value.
	IsTableExpandable *bool `yaml:"isTableExpandable" json:"isTableExpandable,omitempty"`

	// FocusOnAdd is the column index to start editing
	// after rows have been added.
	FocusOnAdd *int `yaml:"focusOnAdd" json:"focusOnAdd,omitempty"`

	// FocusRowIndex is the row to start editing after rows have been added.
	// Zero means the first added row.
	FocusRowIndex int `yaml:"focusRowIndex" json:"focusRowIndex,omitempty"`

	RightActions []RightAction  `yaml:"rightActions" json:"rightActions,omitempty"`
	SelectRow    SelectRowConf  `yaml:"selectRow" json:"selectRow"`
	CellEdit     CellEditConf   `yaml:"cellEdit" json:"cellEdit"`
	DeleteRow    *bool          `yaml:"deleteRow" json:"deleteRow,omitempty"`
	Options      map[string]any `yaml:"options" json:"options,omitempty"`
}

// TableColumn returns the override for dataField or nil.
func (v *ViewConfig) TableColumn(dataField string) *TableColumn {
	if v == nil {
		return nil
	}
	for i := range v.TableCols {
		if v.TableCols[i].DataField == dataField {
			return &v.TableCols[i]
		}
	}
	return nil
}

// RightAction is a row level action of the host.
type RightAction struct {
	Action              string              `yaml:"action" json:"action"`
	ActionConfiguration ActionConfiguration `yaml:"actionConfiguration" json:"actionConfiguration"`
}

// ActionConfiguration holds the class name of rows
// for which a right action was completed.
type ActionConfiguration struct {
	ActionCompletedClassName string `yaml:"actionCompletedClassName" json:"actionCompletedClassName,omitempty"`
}

// SelectRowConf is the row selection part of a ViewConfig.
type SelectRowConf struct {
	Mode           string      `yaml:"mode" json:"mode,omitempty"`
	OnSelectRow    FieldUpdate `yaml:"onSelectRow" json:"onSelectRow"`
	OnSelectAllRow FieldUpdate `yaml:"onSelectAllRow" json:"onSelectAllRow"`
}

// FieldUpdate names the record field
// that stores the selection state.
type FieldUpdate struct {
	FieldToUpdate string `yaml:"fieldToUpdate" json:"fieldToUpdate,omitempty"`
}

// CellEditConf overrides the cell edit defaults of the grid.
// A nil BlurToSave keeps the default.
type CellEditConf struct {
	Mode       string `yaml:"mode" json:"mode,omitempty"`
	BlurToSave *bool  `yaml:"blurToSave" json:"blurToSave,omitempty"`
}

// TableColumn is a column override of the view configuration.
type TableColumn struct {
	DataField string
	// Title replaces the schema title as column display name if not empty.
	Title string
	// DataFormat names a property of the nested object value
	// of the column to display instead of the object.
	DataFormat string
	// Formatter is a programmatic display formatter,
	// it takes precedence over DataFormat.
	Formatter DataFormatter
	// IncludeInExpandedRow adds the nested object of the
	// column to the expanded row content.
	IncludeInExpandedRow bool
	// Field is the id of a registered custom field editor.
	Field string
	// UISchema is passed to the custom field editor.
	UISchema map[string]any
	// Order is the explicit order of sub-fields
	// in the expanded row content ("ui:order").
	Order []string
	// Fields configures the sub-fields of the column's
	// nested object for the expanded row content.
	Fields map[string]ExpandedField

	Hidden              bool
	Editable            *bool
	ClassName           string
	ColumnClassName     string
	EditColumnClassName string
}

// ExpandedField configures a sub-field in expanded row content.
type ExpandedField struct {
	// DataFormat is the display pattern for dates
	// using moment.js tokens like "DD.MM.YYYY".
	DataFormat           string `yaml:"dataFormat"`
	IncludeInExpandedRow bool   `yaml:"includeInExpandedRow"`
}

type tableColumnAttrs struct {
	DataField            string   `yaml:"dataField"`
	Title                string   `yaml:"title"`
	DataFormat           string   `yaml:"dataFormat"`
	IncludeInExpandedRow bool     `yaml:"includeInExpandedRow"`
	Field                string   `yaml:"field"`
	Order                []string `yaml:"ui:order"`
	Hidden               bool     `yaml:"hidden"`
	Editable             *bool    `yaml:"editable"`
	ClassName            string   `yaml:"className"`
	ColumnClassName      string   `yaml:"columnClassName"`
	EditColumnClassName  string   `yaml:"editColumnClassName"`
}

var tableColumnKeys = map[string]bool{
	"dataField":            true,
	"title":                true,
	"dataFormat":           true,
	"includeInExpandedRow": true,
	"field":                true,
	"ui:order":             true,
	"hidden":               true,
	"editable":             true,
	"className":            true,
	"columnClassName":      true,
	"editColumnClassName":  true,
	"uiSchema":             true,
}

// UnmarshalYAML implements yaml.Unmarshaler.
// Mapping entries that are not column attributes
// are decoded as sub-field configurations into Fields.
func (c *TableColumn) UnmarshalYAML(node *yaml.Node) error {
	var attrs tableColumnAttrs
	err := node.Decode(&attrs)
	if err != nil {
		return err
	}
	*c = TableColumn{
		DataField:            attrs.DataField,
		Title:                attrs.Title,
		DataFormat:           attrs.DataFormat,
		IncludeInExpandedRow: attrs.IncludeInExpandedRow,
		Field:                attrs.Field,
		Order:                attrs.Order,
		Hidden:               attrs.Hidden,
		Editable:             attrs.Editable,
		ClassName:            attrs.ClassName,
		ColumnClassName:      attrs.ColumnClassName,
		EditColumnClassName:  attrs.EditColumnClassName,
	}
	if ui := mappingValue(node, "uiSchema"); ui != nil {
		value, err := nodeValue(ui)
		if err != nil {
			return err
		}
		c.UISchema, _ = value.(map[string]any)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i].Value, node.Content[i+1]
		if tableColumnKeys[key] || value.Kind != yaml.MappingNode {
			continue
		}
		var sub ExpandedField
		if err := value.Decode(&sub); err != nil {
			return fmt.Errorf("failed to parse sub-field %q of column %q: %w", key, c.DataField, err)
		}
		if c.Fields == nil {
			c.Fields = make(map[string]ExpandedField)
		}
		c.Fields[key] = sub
	}
	return nil
}

// ParseUISchema parses a JSON or YAML ui-schema document
// with a "table" entry holding the ViewConfig.
func ParseUISchema(data []byte) (*UISchema, error) {
	var ui UISchema
	err := yaml.Unmarshal(data, &ui)
	if err != nil {
		return nil, fmt.Errorf("failed to parse ui-schema: %w", err)
	}
	applyDefaults(&ui)
	return &ui, nil
}

// applyDefaults fills in an empty table configuration.
func applyDefaults(ui *UISchema) {
	if ui.Table == nil {
		ui.Table = new(ViewConfig)
	}
}
