package schemagrid

// GridDefaults are the grid settings used
// where the ViewConfig does not configure them.
type GridDefaults struct {
	CellEditMode  string
	BlurToSave    bool
	SelectRowMode string
	DeleteRow     bool
}

// Handlers are the callbacks a grid widget reports user interactions to.
// TableField implements Handlers.
type Handlers interface {
	HandleCellSave(row Record, cellName string, cellValue any) error
	HandleRowsDelete(removedKeys []any) error
	HandleRowSelect(row Record, isSelected bool) error
	HandleAllRowSelect(isSelected bool, rows []Record) error
	HandleRowInsert(row Record) error
	RowClassName(row Record, rowIndex int) string
	ExpandRow(row Record) (*ExpandedContent, error)
	IsRowExpandable() bool
}

// GridConfig is the complete configuration handed to a grid widget.
// Callbacks are excluded from JSON.
type GridConfig struct {
	Data      []Record    `json:"data"`
	KeyField  string      `json:"keyField"`
	CellEdit  CellEdit    `json:"cellEdit"`
	SelectRow SelectRow   `json:"selectRow"`
	DeleteRow bool        `json:"deleteRow"`
	Options   GridOptions `json:"options"`

	ExpandableRow       func(row Record) bool                      `json:"-"`
	ExpandComponent     func(row Record) (*ExpandedContent, error) `json:"-"`
	ExpandColumnOptions ExpandColumnOptions                        `json:"expandColumnOptions"`
	TrClassName         func(row Record, rowIndex int) string      `json:"-"`

	// View is the configuration the grid was built from
	// with KeyField set to the effective key field.
	View *ViewConfig `json:"-"`
}

// CellEdit configures how the grid edits cells
// and reports saved cell values.
type CellEdit struct {
	Mode          string                                                 `json:"mode"`
	BlurToSave    bool                                                   `json:"blurToSave"`
	AfterSaveCell func(row Record, cellName string, cellValue any) error `json:"-"`
}

// SelectRow configures row selection and its handlers.
type SelectRow struct {
	Mode           string                                     `json:"mode"`
	OnSelectRow    FieldUpdate                                `json:"onSelectRow"`
	OnSelectAllRow FieldUpdate                                `json:"onSelectAllRow"`
	OnSelect       func(row Record, isSelected bool) error    `json:"-"`
	OnSelectAll    func(isSelected bool, rows []Record) error `json:"-"`
}

// GridOptions are the row delete and insert handlers
// and the remaining widget options.
type GridOptions struct {
	AfterDeleteRow func(removedKeys []any) error `json:"-"`
	AfterInsertRow func(row Record) error        `json:"-"`
	// Extra holds the widget options of the ViewConfig.
	Extra map[string]any `json:"extra,omitempty"`
}

// ExpandColumnOptions configure the column with the expand indicator.
type ExpandColumnOptions struct {
	ExpandColumnVisible bool `json:"expandColumnVisible"`
	// ExpandColumnComponent returns the class names of the expand indicator.
	ExpandColumnComponent func(isExpandableRow, isExpanded bool) string `json:"-"`
}

// ExpandIndicatorClass returns the class names
// of the indicator in the expand column of a row.
func ExpandIndicatorClass(isExpandableRow, isExpanded bool) string {
	switch {
	case !isExpandableRow:
		return "fa fa-plus glyphicon  "
	case isExpanded:
		return "fa fa-plus glyphicon glyphicon-chevron-down"
	default:
		return "fa fa-plus glyphicon glyphicon-chevron-up"
	}
}

// NewGridConfig merges defaults with the view configuration,
// keys the data and wires the grid callbacks to handlers.
// The passed view and data are not modified.
func NewGridConfig(view *ViewConfig, data []Record, defaults GridDefaults, handlers Handlers) *GridConfig {
	if view == nil {
		view = new(ViewConfig)
	}
	effective := *view
	keyField, keyed := EnsureKeyed(view.KeyField, data)
	effective.KeyField = keyField

	conf := &GridConfig{
		Data:     keyed,
		KeyField: keyField,
		CellEdit: CellEdit{
			Mode:       defaults.CellEditMode,
			BlurToSave: defaults.BlurToSave,
		},
		SelectRow: SelectRow{
			Mode:           defaults.SelectRowMode,
			OnSelectRow:    view.SelectRow.OnSelectRow,
			OnSelectAllRow: view.SelectRow.OnSelectAllRow,
		},
		DeleteRow: defaults.DeleteRow,
		Options:   GridOptions{Extra: view.Options},
		ExpandColumnOptions: ExpandColumnOptions{
			ExpandColumnComponent: ExpandIndicatorClass,
		},
		View: &effective,
	}
	if view.CellEdit.Mode != "" {
		conf.CellEdit.Mode = view.CellEdit.Mode
	}
	if view.CellEdit.BlurToSave != nil {
		conf.CellEdit.BlurToSave = *view.CellEdit.BlurToSave
	}
	if view.SelectRow.Mode != "" {
		conf.SelectRow.Mode = view.SelectRow.Mode
	}
	if view.DeleteRow != nil {
		conf.DeleteRow = *view.DeleteRow
	}

	if handlers != nil {
		conf.CellEdit.AfterSaveCell = handlers.HandleCellSave
		conf.Options.AfterDeleteRow = handlers.HandleRowsDelete
		conf.Options.AfterInsertRow = handlers.HandleRowInsert
		conf.SelectRow.OnSelect = handlers.HandleRowSelect
		conf.SelectRow.OnSelectAll = handlers.HandleAllRowSelect
		conf.TrClassName = handlers.RowClassName
		conf.ExpandComponent = handlers.ExpandRow
		conf.ExpandableRow = func(Record) bool { return handlers.IsRowExpandable() }
		conf.ExpandColumnOptions.ExpandColumnVisible = handlers.IsRowExpandable()
	}
	return conf
}
