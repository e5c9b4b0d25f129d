package schemagrid

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCellFormatters(t *testing.T) {
	ctx := context.Background()
	view := &ValuesView{Cols: []string{"a", "b"}, Rows: [][]any{{12.5, nil}}}

	str, raw, err := PrintfCellFormatter("%.2f EUR").FormatCell(ctx, view, 0, 0)
	require.NoError(t, err)
	require.False(t, raw)
	require.Equal(t, "12.50 EUR", str)

	str, raw, err = RawCellString("<b>x</b>").FormatCell(ctx, view, 0, 1)
	require.NoError(t, err)
	require.True(t, raw)
	require.Equal(t, "<b>x</b>", str)

	str, _, err = TextCellFormatter.FormatCell(ctx, view, 0, 0)
	require.NoError(t, err)
	require.Equal(t, "12.5", str)

	_, _, err = TextCellFormatter.FormatCell(ctx, view, 0, 1)
	require.True(t, errors.Is(err, errors.ErrUnsupported))
}

func TestDataFormatters(t *testing.T) {
	field := &Field{Name: "status", Enum: []any{"open", "paid"}, EnumNames: []string{"Open", "Paid"}}
	require.Equal(t, "Open", EnumNamesFormatter{Field: field}.FormatData("open", nil))
	require.Nil(t, EnumNamesFormatter{Field: field}.FormatData(nil, nil))

	sub := SubPropertyFormatter{DataField: "vendor", Property: "name"}
	require.Equal(t, "Globex", sub.FormatData(nil, Record{"vendor": Record{"name": "Globex"}}))
	require.Nil(t, sub.FormatData(nil, Record{"vendor": "Globex"}))
}
