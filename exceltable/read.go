// Package exceltable writes schemagrid views as Excel sheets
// and reads records of a schema from Excel files
// using github.com/xuri/excelize/v2.
package exceltable

import (
	"errors"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/domonda/go-schemagrid"
)

// ReadFirstSheet reads the first sheet of an Excel file as view.
// The first row of the sheet is used as column titles.
// Empty rows and trailing empty columns are removed.
//
// If rawCellStrings is true, cell values are returned as raw strings
// without the number format of the cell applied.
func ReadFirstSheet(reader io.Reader, rawCellStrings bool) (sheetView schemagrid.View, err error) {
	f, e := excelize.OpenReader(reader)
	if e != nil {
		return nil, e
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, ErrSheetNotExist{SheetName: "<FirstSheet>"}
	}
	return readSheet(f, sheet, rawCellStrings)
}

// Read reads all non empty sheets of an Excel file as views
// titled with the sheet names.
func Read(reader io.Reader, rawCellStrings bool) (sheetViews []schemagrid.View, err error) {
	f, e := excelize.OpenReader(reader)
	if e != nil {
		return nil, e
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	for _, sheet := range f.GetSheetList() {
		view, err := readSheet(f, sheet, rawCellStrings)
		if err != nil {
			if errors.Is(err, ErrEmptySheet) {
				continue
			}
			return nil, err
		}
		sheetViews = append(sheetViews, view)
	}
	return sheetViews, nil
}

// ReadRecords reads the first sheet of an Excel file
// as records of schema.
// See schemagrid.RecordsFromView for how columns are matched to fields.
func ReadRecords(reader io.Reader, schema *schemagrid.Schema, coercer *schemagrid.Coercer) ([]schemagrid.Record, error) {
	view, err := ReadFirstSheet(reader, true)
	if err != nil {
		return nil, err
	}
	return schemagrid.RecordsFromView(view, schema, coercer)
}

func readSheet(f *excelize.File, sheet string, rawCellStrings bool) (schemagrid.View, error) {
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: rawCellStrings})
	if err != nil {
		return nil, err
	}
	rows = schemagrid.RemoveEmptyStringRows(rows)
	numCols := schemagrid.RemoveEmptyStringColumns(rows)
	if len(rows) == 0 || numCols == 0 {
		return nil, ErrEmptySheet
	}
	if len(rows[0]) < numCols {
		rows[0] = append(rows[0], make([]string, numCols-len(rows[0]))...)
	}
	return schemagrid.NewStringsView(sheet, rows), nil
}
