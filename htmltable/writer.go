// Package htmltable writes schemagrid views as HTML tables
// and the expanded content of grid rows as HTML.
//
// Cell values are HTML escaped unless a formatter
// returns its result as raw HTML.
//
// Example usage:
//
//	conf, columns, err := field.Render()
//	if err != nil {
//	    return err
//	}
//	view := schemagrid.NewGridView("Invoices", columns, conf.Data, nil)
//	err = htmltable.NewWriter().
//	    WithHeaderRow(true).
//	    WithTableClass("table").
//	    WithGrid(view, conf.TrClassName).
//	    WriteView(ctx, os.Stdout, view)
package htmltable

import (
	"context"
	"errors"
	"html/template"
	"io"
	"maps"

	"github.com/domonda/go-schemagrid"
)

// Writer writes views as HTML table elements.
//
// Writer is immutable after creation - all With* methods return
// a new Writer instance with the modified configuration.
type Writer struct {
	tableClass       string
	columnFormatters map[int]schemagrid.CellFormatter
	formatter        schemagrid.CellFormatter
	nilValue         template.HTML
	headerRow        bool
	headerClasses    []string
	columnClasses    []string
	rowClass         func(row int) string
	headerTemplate   *template.Template
	rowTemplate      *template.Template
	footerTemplate   *template.Template
}

// NewWriter creates a new HTML table writer
// with the default templates and no formatters.
func NewWriter() *Writer {
	return &Writer{
		columnFormatters: make(map[int]schemagrid.CellFormatter),
		formatter:        schemagrid.TextCellFormatter,
		headerTemplate:   HeaderTemplate,
		rowTemplate:      RowTemplate,
		footerTemplate:   FooterTemplate,
	}
}

// WriteView writes a table view as HTML to the destination writer.
//
// Every cell is formatted by the first of the following
// that does not return errors.ErrUnsupported:
//  1. Column-specific formatter
//  2. The writer's formatter
//  3. The nil value for nil cells or schemagrid.Text
//
// All non-raw formatted values are HTML-escaped.
func (w *Writer) WriteView(ctx context.Context, dest io.Writer, view schemagrid.View) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	var (
		columns   = view.Columns()
		numCols   = len(columns)
		templData = &RowTemplateContext{
			TemplateContext: TemplateContext{
				TableClass: w.tableClass,
				Caption:    view.Title(),
			},
			Cells: make([]CellTemplateContext, numCols),
		}
	)

	err := w.headerTemplate.Execute(dest, templData.TemplateContext)
	if err != nil {
		return err
	}

	if w.headerRow {
		templData.IsHeaderRow = true
		for col := range columns {
			templData.Cells[col] = CellTemplateContext{
				Class: classAt(w.headerClasses, col),
				HTML:  template.HTML(template.HTMLEscapeString(columns[col])), //#nosec G203
			}
		}
		err = w.rowTemplate.Execute(dest, templData)
		if err != nil {
			return err
		}
		templData.IsHeaderRow = false
		templData.RowIndex++
	}

	for row, numRows := 0, view.NumRows(); row < numRows; row++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		for col := 0; col < numCols; col++ {
			cellHTML, err := w.cellHTML(ctx, view, row, col)
			if err != nil {
				return err
			}
			templData.Cells[col] = CellTemplateContext{
				Class: classAt(w.columnClasses, col),
				HTML:  cellHTML,
			}
		}
		templData.RowClass = ""
		if w.rowClass != nil {
			templData.RowClass = w.rowClass(row)
		}
		err = w.rowTemplate.Execute(dest, templData)
		if err != nil {
			return err
		}
		templData.RowIndex++
	}

	return w.footerTemplate.Execute(dest, templData.TemplateContext)
}

func (w *Writer) cellHTML(ctx context.Context, view schemagrid.View, row, col int) (template.HTML, error) {
	formatters := []schemagrid.CellFormatter{w.columnFormatters[col], w.formatter}
	for _, formatter := range formatters {
		if formatter == nil {
			continue
		}
		str, isRaw, err := formatter.FormatCell(ctx, view, row, col)
		if errors.Is(err, errors.ErrUnsupported) {
			continue
		}
		if err != nil {
			return "", err
		}
		if !isRaw {
			str = template.HTMLEscapeString(str)
		}
		return template.HTML(str), nil //#nosec G203
	}
	cell := view.Cell(row, col)
	if cell == nil {
		return w.nilValue, nil
	}
	return template.HTML(template.HTMLEscapeString(schemagrid.Text(cell))), nil //#nosec G203
}

// WriteExpanded writes the expanded content of a grid row as HTML.
// Nothing is written for empty content.
func WriteExpanded(dest io.Writer, content *schemagrid.ExpandedContent) error {
	if content.IsEmpty() {
		return nil
	}
	return ExpandedTemplate.Execute(dest, content)
}

func classAt(classes []string, col int) string {
	if col < len(classes) {
		return classes[col]
	}
	return ""
}

func (w *Writer) clone() *Writer {
	c := new(Writer)
	*c = *w
	return c
}

// WithHeaderRow returns a new writer that writes
// the column titles as first row if headerRow is true.
func (w *Writer) WithHeaderRow(headerRow bool) *Writer {
	mod := w.clone()
	mod.headerRow = headerRow
	return mod
}

// WithTableClass returns a new writer with the class
// attribute of the table element.
func (w *Writer) WithTableClass(tableClass string) *Writer {
	mod := w.clone()
	mod.tableClass = tableClass
	return mod
}

// WithGrid returns a new writer using the class names
// of the columns of view for header and data cells
// and trClassName for the class of data rows.
// trClassName may be nil.
func (w *Writer) WithGrid(view *schemagrid.GridView, trClassName func(row schemagrid.Record, rowIndex int) string) *Writer {
	mod := w.clone()
	numCols := len(view.Columns())
	mod.headerClasses = make([]string, numCols)
	mod.columnClasses = make([]string, numCols)
	for col := range numCols {
		column := view.Column(col)
		mod.headerClasses[col] = column.ClassName
		mod.columnClasses[col] = column.ColumnClassName
	}
	mod.rowClass = nil
	if trClassName != nil {
		mod.rowClass = func(row int) string {
			return trClassName(view.Record(row), row)
		}
	}
	return mod
}

// WithColumnFormatter returns a new writer with the passed formatter registered for columnIndex.
// If nil is passed as formatter, then a previous registered column formatter is removed.
func (w *Writer) WithColumnFormatter(columnIndex int, formatter schemagrid.CellFormatter) *Writer {
	mod := w.clone()
	mod.columnFormatters = maps.Clone(w.columnFormatters)
	if mod.columnFormatters == nil {
		mod.columnFormatters = make(map[int]schemagrid.CellFormatter)
	}
	if formatter != nil {
		mod.columnFormatters[columnIndex] = formatter
	} else {
		delete(mod.columnFormatters, columnIndex)
	}
	return mod
}

// WithFormatter returns a new writer using formatter
// for all columns without column formatter.
func (w *Writer) WithFormatter(formatter schemagrid.CellFormatter) *Writer {
	mod := w.clone()
	mod.formatter = formatter
	return mod
}

// WithNilValue returns a new writer with the HTML written for nil cells.
func (w *Writer) WithNilValue(nilValue template.HTML) *Writer {
	mod := w.clone()
	mod.nilValue = nilValue
	return mod
}
