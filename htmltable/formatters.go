package htmltable

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"

	"github.com/domonda/go-schemagrid"
)

var (
	// CheckboxCellFormatter formats boolean cells
	// as disabled checkbox input elements.
	CheckboxCellFormatter schemagrid.CellFormatterFunc = func(ctx context.Context, view schemagrid.View, row, col int) (str string, raw bool, err error) {
		checked, ok := view.Cell(row, col).(bool)
		if !ok {
			return "", false, errors.ErrUnsupported
		}
		if checked {
			return "<input type='checkbox' checked disabled>", true, nil
		}
		return "<input type='checkbox' disabled>", true, nil
	}

	_ schemagrid.CellFormatter = JSONCellFormatter("")
	_ schemagrid.CellFormatter = HTMLSpanClassCellFormatter("")
)

// JSONCellFormatter formats object and array cells as indented JSON
// within a pre element using the underlying string as indent.
// Other cells are not supported.
type JSONCellFormatter string

func (indent JSONCellFormatter) FormatCell(ctx context.Context, view schemagrid.View, row, col int) (str string, raw bool, err error) {
	cell := view.Cell(row, col)
	switch cell.(type) {
	case map[string]any, schemagrid.Record, []any:
	default:
		return "", false, errors.ErrUnsupported
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", string(indent))
	err = enc.Encode(cell)
	if err != nil {
		return "", false, err
	}
	text := template.HTMLEscapeString(string(bytes.TrimSpace(buf.Bytes())))
	return "<pre>" + text + "</pre>", true, nil
}

// HTMLSpanClassCellFormatter formats the cell value within an HTML span element
// with the class of the underlying string value.
type HTMLSpanClassCellFormatter string

func (class HTMLSpanClassCellFormatter) FormatCell(ctx context.Context, view schemagrid.View, row, col int) (str string, raw bool, err error) {
	text := template.HTMLEscapeString(schemagrid.Text(view.Cell(row, col)))
	return fmt.Sprintf("<span class='%s'>%s</span>", template.HTMLEscapeString(string(class)), text), true, nil
}
