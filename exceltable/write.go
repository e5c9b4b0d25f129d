package exceltable

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/domonda/go-schemagrid"
)

// DefaultSheetName is used for views without title.
var DefaultSheetName = "Sheet1"

// WriteView writes view as the only sheet of a new Excel file to dest.
// The sheet is named after the view title and its first row
// contains the column titles.
// Numbers are written as typed cells, other values as text
// so that booleans are read back as "true" or "false".
func WriteView(ctx context.Context, dest io.Writer, view schemagrid.View) (err error) {
	f := excelize.NewFile()
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	sheet := SheetName(view.Title())
	err = f.SetSheetName(f.GetSheetName(0), sheet)
	if err != nil {
		return err
	}

	header := make([]any, len(view.Columns()))
	for col, title := range view.Columns() {
		header[col] = title
	}
	err = f.SetSheetRow(sheet, "A1", &header)
	if err != nil {
		return err
	}

	for row, numRows := 0, view.NumRows(); row < numRows; row++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		values := make([]any, len(header))
		for col := range values {
			values[col] = cellValue(view.Cell(row, col))
		}
		cell, err := excelize.CoordinatesToCellName(1, row+2)
		if err != nil {
			return err
		}
		err = f.SetSheetRow(sheet, cell, &values)
		if err != nil {
			return err
		}
	}
	_, err = f.WriteTo(dest)
	return err
}

var sheetNameReplacer = strings.NewReplacer(
	":", "-",
	"\\", "-",
	"/", "-",
	"?", "-",
	"*", "-",
	"[", "-",
	"]", "-",
)

// SheetName returns title as valid sheet name.
// Characters Excel does not allow in sheet names are replaced with '-',
// enclosing apostrophes are removed and the name is shortened
// to 31 characters.
// DefaultSheetName is returned for an empty title.
func SheetName(title string) string {
	name := strings.Trim(sheetNameReplacer.Replace(title), "'")
	if name == "" {
		return DefaultSheetName
	}
	if r := []rune(name); len(r) > 31 {
		name = strings.TrimRight(string(r[:31]), "'")
	}
	return name
}

func cellValue(cell any) any {
	switch v := cell.(type) {
	case nil:
		return nil
	case float64, float32, int, int64, int32:
		return v
	}
	return schemagrid.Text(cell)
}
