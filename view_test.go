package schemagrid

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGridView(t *testing.T) {
	columns, err := BuildColumns(invoiceSchema(), []TableColumn{
		{DataField: "vendor", DataFormat: "code"},
		{DataField: "id", Hidden: true},
	}, nil)
	require.NoError(t, err)
	records := []Record{
		{"id": "1", "amount": 10.0, "status": "paid", "dueDate": "2024-03-15", "vendor": map[string]any{"code": "V1"}},
		{"id": "2"},
	}
	view := NewGridView("Invoices", columns, records, nil)

	require.Equal(t, "Invoices", view.Title())
	require.Equal(t, []string{"Vendor", "Amount", "Status", "Due Date"}, view.Columns())
	require.Equal(t, 2, view.NumRows())
	require.Equal(t, "V1", view.Cell(0, 0))
	require.Equal(t, 10.0, view.Cell(0, 1))
	require.Equal(t, "Paid", view.Cell(0, 2))
	require.Equal(t, "2024-03-15", view.Cell(0, 3))
	require.Nil(t, view.Cell(1, 0))
	require.Equal(t, "", view.Cell(1, 1))
	require.Nil(t, view.Cell(2, 0))
	require.Nil(t, view.Cell(0, 4))

	require.Equal(t, records[1], view.Record(1))
	require.Nil(t, view.Record(-1))
	require.Equal(t, "vendor", view.Column(0).DataField)
	require.Nil(t, view.Column(4))
}

func TestValuesView(t *testing.T) {
	source := NewStringsView("t", [][]string{{"a", "b"}, {"1", "2"}, {"3"}})
	require.Equal(t, []string{"a", "b"}, source.Columns())
	require.Equal(t, 2, source.NumRows())
	require.Equal(t, "2", source.Cell(0, 1))
	require.Nil(t, source.Cell(1, 1))

	require.Equal(t, [][]any{{"1", "2"}, {"3"}}, source.Rows)

	require.Empty(t, NewStringsView("empty", nil).Columns())

	header := NewHeaderViewFrom(source)
	require.Equal(t, 1, header.NumRows())
	require.Equal(t, "b", header.Cell(0, 1))
	require.Nil(t, header.Cell(1, 0))
}

func TestStringUtils(t *testing.T) {
	rows := [][]string{
		{"a", "bbb", "", ""},
		{" ", "", "  ", ""},
		{"ccc", "äö", "", ""},
	}
	require.Equal(t, []int{3, 3, 2, 0}, StringColumnWidths(rows, -1))
	require.Equal(t, []int{3, 3}, StringColumnWidths(rows, 2))
	require.Nil(t, StringColumnWidths(nil, -1))

	rows = RemoveEmptyStringRows(rows)
	require.Len(t, rows, 2)

	numCols := RemoveEmptyStringColumns(rows)
	require.Equal(t, 2, numCols)
	require.Equal(t, [][]string{{"a", "bbb"}, {"ccc", "äö"}}, rows)
}
