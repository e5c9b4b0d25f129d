package schemagrid

import (
	"context"
	"errors"
	"fmt"
)

// DataFormatter formats the value of a cell for display.
// The returned value is rendered as text by the grid,
// nil means nothing is displayed.
type DataFormatter interface {
	FormatData(cell any, row Record) any
}

// DataFormatterFunc implements DataFormatter for a function.
type DataFormatterFunc func(cell any, row Record) any

func (f DataFormatterFunc) FormatData(cell any, row Record) any {
	return f(cell, row)
}

var (
	_ DataFormatter = EnumNamesFormatter{}
	_ DataFormatter = SubPropertyFormatter{}
)

// EnumNamesFormatter displays the enumName
// of a cell value of an enumeration field.
type EnumNamesFormatter struct {
	Field *Field
}

func (f EnumNamesFormatter) FormatData(cell any, _ Record) any {
	name, ok := f.Field.EnumName(cell)
	if !ok {
		return nil
	}
	return name
}

// SubPropertyFormatter displays a property of the nested
// object value of the column field DataField.
// It reads through to the row and does not transform the value.
type SubPropertyFormatter struct {
	DataField string
	Property  string
}

func (f SubPropertyFormatter) FormatData(_ any, row Record) any {
	obj := row.Object(f.DataField)
	if obj == nil {
		return nil
	}
	return obj[f.Property]
}

// CellFormatter formats a cell of a View as string for a table format writer.
type CellFormatter interface {
	// FormatCell formats a cell as string
	// or returns a wrapped errors.ErrUnsupported error if
	// it doesn't support formatting the value of the cell.
	// The raw result indicates if the returned string
	// is in the raw format of the table format and can be
	// used as is or if it has to be escaped.
	FormatCell(ctx context.Context, view View, row, col int) (str string, raw bool, err error)
}

// CellFormatterFunc implements CellFormatter for a function.
type CellFormatterFunc func(ctx context.Context, view View, row, col int) (str string, raw bool, err error)

func (f CellFormatterFunc) FormatCell(ctx context.Context, view View, row, col int) (str string, raw bool, err error) {
	return f(ctx, view, row, col)
}

// PrintfCellFormatter implements CellFormatter by calling
// fmt.Sprintf with this type's string value as format.
type PrintfCellFormatter string

func (format PrintfCellFormatter) FormatCell(ctx context.Context, view View, row, col int) (str string, raw bool, err error) {
	return fmt.Sprintf(string(format), view.Cell(row, col)), false, nil
}

// RawCellString implements CellFormatter by returning
// the underlying string as raw value.
type RawCellString string

func (rawStr RawCellString) FormatCell(ctx context.Context, view View, row, col int) (str string, raw bool, err error) {
	return string(rawStr), true, nil
}

// TextCellFormatter formats cells with Text
// and returns errors.ErrUnsupported for nil cells.
var TextCellFormatter CellFormatterFunc = func(ctx context.Context, view View, row, col int) (string, bool, error) {
	cell := view.Cell(row, col)
	if cell == nil {
		return "", false, errors.ErrUnsupported
	}
	return Text(cell), false, nil
}
