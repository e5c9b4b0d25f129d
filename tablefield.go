package schemagrid

import (
	"log/slog"
)

// ChangeFunc receives the complete array of records after a mutation.
// It is the only point where a mutation is committed.
type ChangeFunc func(records []Record)

// Props are the inputs of a TableField supplied by the host form.
type Props struct {
	Schema   *Schema
	UISchema *UISchema
	FormData []Record
	OnChange ChangeFunc
	// Registry holds the custom field editors
	// referenced by TableColumn.Field.
	Registry Registry
}

// GridBody is the part of a rendered grid widget
// that can start editing a cell.
type GridBody interface {
	HandleEditCell(rowIndex, column int)
}

var _ Handlers = new(TableField)

// TableField synchronizes an array of records with a grid widget.
//
// The host calls Render for every render cycle and passes the resulting
// GridConfig and columns to the grid. The grid reports interactions
// to the handlers of the GridConfig which call Props.OnChange exactly
// once with a new array. The host is expected to call Update and Render
// again with the new data before the next interaction is handled.
//
// TableField is not safe for concurrent use.
type TableField struct {
	props  Props
	conf   *GridConfig
	adding bool

	// Body of the rendered grid, used to focus added rows.
	Body GridBody
	// Coercer for edited cell values, DefaultCoercer if nil.
	Coercer *Coercer
	// Defaults are merged below the ViewConfig.
	Defaults GridDefaults
	// Logger for diagnostics, slog.Default() if nil.
	Logger *slog.Logger
}

// NewTableField returns a TableField for props
// using DefaultGridDefaults.
func NewTableField(props Props) *TableField {
	return &TableField{
		props:    props,
		Defaults: DefaultGridDefaults,
	}
}

// Props returns the current props.
func (t *TableField) Props() Props { return t.props }

// Render computes the grid configuration and the column descriptors
// from the current props. Handlers use the configuration
// of the latest Render.
func (t *TableField) Render() (*GridConfig, []Column, error) {
	columns, err := BuildColumns(t.props.Schema, t.view().TableCols, t.props.Registry)
	if err != nil {
		return nil, nil, err
	}
	t.conf = NewGridConfig(t.view(), t.props.FormData, t.Defaults, t)
	return t.conf, columns, nil
}

// Update replaces the props with next.
// If FocusOnAdd is configured and next has more records,
// the next DidUpdate starts editing the added row.
func (t *TableField) Update(next Props) {
	focusOnAdd := viewOf(next.UISchema).FocusOnAdd
	t.adding = focusOnAdd != nil &&
		next.FormData != nil &&
		t.props.FormData != nil &&
		len(next.FormData) > len(t.props.FormData)
	t.props = next
	t.conf = nil
}

// DidUpdate is called by the host after the grid was rendered
// with the props of the last Update.
// A missing Body is logged and the focus action is skipped.
func (t *TableField) DidUpdate() {
	if !t.adding {
		return
	}
	t.adding = false
	view := t.view()
	if t.Body == nil {
		t.logger().Error("can't find body in the table", "focusOnAdd", *view.FocusOnAdd)
		return
	}
	rowIndex := view.FocusRowIndex
	if rowIndex == 0 {
		rowIndex = len(t.props.FormData)
	}
	t.Body.HandleEditCell(rowIndex, *view.FocusOnAdd)
}

// IsRowExpandable returns true if the ViewConfig
// sets IsTableExpandable to any value.
func (t *TableField) IsRowExpandable() bool {
	return t.view().IsTableExpandable != nil
}

// ExpandRow builds the expanded content of a row.
func (t *TableField) ExpandRow(row Record) (*ExpandedContent, error) {
	return BuildExpandedContent(t.props.Schema, t.view().TableCols, row, t.coercer())
}

func (t *TableField) view() *ViewConfig {
	return viewOf(t.props.UISchema)
}

func viewOf(ui *UISchema) *ViewConfig {
	if ui == nil || ui.Table == nil {
		return new(ViewConfig)
	}
	return ui.Table
}

// tableConf returns the configuration of the latest Render
// or a new one if props were updated since.
func (t *TableField) tableConf() *GridConfig {
	if t.conf == nil {
		t.conf = NewGridConfig(t.view(), t.props.FormData, t.Defaults, t)
	}
	return t.conf
}

func (t *TableField) coercer() *Coercer {
	if t.Coercer == nil {
		return DefaultCoercer
	}
	return t.Coercer
}

func (t *TableField) logger() *slog.Logger {
	if t.Logger == nil {
		return slog.Default()
	}
	return t.Logger
}

// commit hands records to the change sink.
func (t *TableField) commit(op string, records []Record) {
	t.logger().Debug("table data changed", "op", op, "rows", len(records))
	if t.props.OnChange != nil {
		t.props.OnChange(records)
	}
}
