package schemagrid

import (
	"strings"
	"unicode/utf8"
)

// View is a read-only table of cells with a title and column titles.
// It is implemented by GridView for records shown through columns
// and used by the format packages to write and read tables.
type View interface {
	Title() string
	Columns() []string
	NumRows() int
	// Cell returns the value at row and col
	// or nil if out of bounds.
	Cell(row, col int) any
}

var (
	_ View = new(GridView)
	_ View = new(ValuesView)
	_ View = new(HeaderView)
)

// GridView presents records through the visible columns of a grid
// the way the grid displays them.
type GridView struct {
	title   string
	columns []Column
	records []Record
	coercer *Coercer
}

// NewGridView returns a GridView of records
// using the columns that are not hidden.
// The coercer is used for display coercion of columns
// without DataFormat, DefaultCoercer if nil.
func NewGridView(title string, columns []Column, records []Record, coercer *Coercer) *GridView {
	if coercer == nil {
		coercer = DefaultCoercer
	}
	visible := make([]Column, 0, len(columns))
	for _, col := range columns {
		if !col.Hidden {
			visible = append(visible, col)
		}
	}
	return &GridView{
		title:   title,
		columns: visible,
		records: records,
		coercer: coercer,
	}
}

func (view *GridView) Title() string { return view.title }

func (view *GridView) Columns() []string {
	titles := make([]string, len(view.columns))
	for i, col := range view.columns {
		titles[i] = col.DisplayName
	}
	return titles
}

func (view *GridView) NumRows() int { return len(view.records) }

func (view *GridView) Cell(row, col int) any {
	if row < 0 || col < 0 || row >= len(view.records) || col >= len(view.columns) {
		return nil
	}
	return view.columns[col].Format(view.records[row], view.coercer)
}

// Record returns the record of a view row.
func (view *GridView) Record(row int) Record {
	if row < 0 || row >= len(view.records) {
		return nil
	}
	return view.records[row]
}

// Column returns the column descriptor of a view column.
func (view *GridView) Column(col int) *Column {
	if col < 0 || col >= len(view.columns) {
		return nil
	}
	return &view.columns[col]
}

// ValuesView is a View implementation
// that holds its rows as slices of values with any type.
type ValuesView struct {
	Tit  string
	Cols []string
	Rows [][]any
}

// NewStringsView returns a ValuesView with the first
// of the passed rows used as column titles.
func NewStringsView(title string, rows [][]string) *ValuesView {
	view := &ValuesView{Tit: title}
	if len(rows) == 0 {
		return view
	}
	view.Cols = rows[0]
	view.Rows = make([][]any, len(rows)-1)
	for i, row := range rows[1:] {
		view.Rows[i] = make([]any, len(row))
		for col, str := range row {
			view.Rows[i][col] = str
		}
	}
	return view
}

func (view *ValuesView) Title() string     { return view.Tit }
func (view *ValuesView) Columns() []string { return view.Cols }
func (view *ValuesView) NumRows() int      { return len(view.Rows) }

func (view *ValuesView) Cell(row, col int) any {
	if row < 0 || col < 0 || row >= len(view.Rows) || col >= len(view.Rows[row]) {
		return nil
	}
	return view.Rows[row][col]
}

// HeaderView has the column titles of a view as its only row.
type HeaderView struct {
	Tit  string
	Cols []string
}

// NewHeaderViewFrom creates a HeaderView from the columns of source.
func NewHeaderViewFrom(source View) *HeaderView {
	return &HeaderView{Tit: source.Title(), Cols: source.Columns()}
}

func (view *HeaderView) Title() string     { return view.Tit }
func (view *HeaderView) Columns() []string { return view.Cols }
func (view *HeaderView) NumRows() int      { return 1 }

func (view *HeaderView) Cell(row, col int) any {
	if row != 0 || col < 0 || col >= len(view.Cols) {
		return nil
	}
	return view.Cols[col]
}

// StringColumnWidths returns the column widths of the passed
// table as count of UTF-8 runes.
// If numCols is negative the maximum row length is used.
func StringColumnWidths(rows [][]string, numCols int) []int {
	if numCols < 0 {
		for _, row := range rows {
			numCols = max(numCols, len(row))
		}
		if numCols <= 0 {
			return nil
		}
	}
	colWidths := make([]int, numCols)
	for _, row := range rows {
		for col := 0; col < numCols && col < len(row); col++ {
			colWidths[col] = max(colWidths[col], utf8.RuneCountInString(row[col]))
		}
	}
	return colWidths
}

// RemoveEmptyStringRows removes rows where every cell
// is empty or only whitespace.
func RemoveEmptyStringRows(rows [][]string) [][]string {
	filtered := rows[:0]
	for _, row := range rows {
		if !isEmptyStringRow(row) {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

// RemoveEmptyStringColumns removes trailing columns that are empty
// in every row and returns the resulting number of columns.
func RemoveEmptyStringColumns(rows [][]string) (numCols int) {
	for _, row := range rows {
		for col := len(row) - 1; col >= numCols; col-- {
			if strings.TrimSpace(row[col]) != "" {
				numCols = col + 1
				break
			}
		}
	}
	for i, row := range rows {
		if len(row) > numCols {
			rows[i] = row[:numCols]
		}
	}
	return numCols
}

func isEmptyStringRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
