package schemagrid

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func invoiceSchema() *Schema {
	return &Schema{
		Title: "Invoices",
		Properties: NewProperties(
			&Field{Name: "id", Type: "string"},
			&Field{Name: "amount", Type: "number", Title: "Amount"},
			&Field{Name: "status", Type: "string", Enum: []any{"open", "paid"}, EnumNames: []string{"Open", "Paid"}},
			&Field{Name: "dueDate", Type: "string", Format: "date"},
			&Field{Name: "vendor", Type: "object", Properties: NewProperties(
				&Field{Name: "code", Type: "string", Title: "Code"},
				&Field{Name: "description", Type: "string", Title: "Desc"},
			)},
		),
		DefaultFilterKey: "processed",
	}
}

func dataFields(columns []Column) []string {
	names := make([]string, len(columns))
	for i, col := range columns {
		names[i] = col.DataField
	}
	return names
}

func TestBuildColumns_Order(t *testing.T) {
	schema := &Schema{Properties: NewProperties(
		&Field{Name: "a", Type: "string"},
		&Field{Name: "b", Type: "string"},
		&Field{Name: "c", Type: "string"},
	)}
	tests := []struct {
		name      string
		tableCols []TableColumn
		want      []string
	}{
		{name: "schema order", tableCols: nil, want: []string{"a", "b", "c"}},
		{name: "override first", tableCols: []TableColumn{{DataField: "c"}}, want: []string{"c", "a", "b"}},
		{name: "partial order", tableCols: []TableColumn{{DataField: "c"}, {DataField: "a"}}, want: []string{"c", "a", "b"}},
		{name: "full order", tableCols: []TableColumn{{DataField: "b"}, {DataField: "c"}, {DataField: "a"}}, want: []string{"b", "c", "a"}},
		{name: "unknown override ignored", tableCols: []TableColumn{{DataField: "x"}, {DataField: "c"}}, want: []string{"c", "a", "b"}},
		{name: "only unknown overrides", tableCols: []TableColumn{{DataField: "x"}}, want: []string{"a", "b", "c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			columns, err := BuildColumns(schema, tt.tableCols, nil)
			require.NoError(t, err)
			require.Equal(t, tt.want, dataFields(columns))
		})
	}
}

func TestBuildColumns_CSS(t *testing.T) {
	columns, err := BuildColumns(invoiceSchema(), []TableColumn{
		{DataField: "vendor", Hidden: true},
		{DataField: "status", ClassName: "status-col"},
	}, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"vendor", "status", "id", "amount", "dueDate"}, dataFields(columns))

	// 4 visible columns, the first visible one gets no class
	require.True(t, columns[0].Hidden)
	require.Empty(t, columns[0].ClassName)
	require.Equal(t, "status-col", columns[1].ClassName)
	require.Empty(t, columns[1].ColumnClassName)
	require.Equal(t, "col-md-3", columns[2].ClassName)
	require.Equal(t, "col-md-3", columns[2].ColumnClassName)
	require.Equal(t, "col-md-3", columns[2].EditColumnClassName)
	require.Equal(t, "col-md-3", columns[4].ClassName)

	columns, err = BuildColumns(invoiceSchema(), []TableColumn{{DataField: "amount", ClassName: "num"}}, nil)
	require.NoError(t, err)
	require.Equal(t, "num", columns[0].ClassName)
	require.Equal(t, "col-md-2", columns[1].ClassName)
}

func TestBuildColumns_TooManyColumns(t *testing.T) {
	var props Properties
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l", "m"} {
		props.Add(&Field{Name: name})
	}
	columns, err := BuildColumns(&Schema{Properties: props}, nil, nil)
	require.NoError(t, err)
	for _, col := range columns {
		require.Empty(t, col.ClassName)
	}
}

func TestBuildColumns_Overrides(t *testing.T) {
	editable := false
	registry := Registry{
		"picker": FieldEditorFunc(func(props FieldProps) any {
			return props.Schema.Name + ":" + Text(props.FormData) + ":" + Text(props.UISchema["mode"])
		}),
	}
	columns, err := BuildColumns(invoiceSchema(), []TableColumn{
		{DataField: "id", Title: "Number", Editable: &editable},
		{DataField: "vendor", DataFormat: "code", Field: "picker", UISchema: map[string]any{"mode": "search"}},
		{DataField: "dueDate", Field: "not-registered"},
	}, registry)
	require.NoError(t, err)

	byName := make(map[string]Column)
	for _, col := range columns {
		byName[col.DataField] = col
	}

	require.Equal(t, "Number", byName["id"].DisplayName)
	require.True(t, byName["id"].Editable.Disabled)
	require.Equal(t, "Amount", byName["amount"].DisplayName)
	require.Equal(t, "Due Date", byName["dueDate"].DisplayName)
	require.Nil(t, byName["dueDate"].CustomEditor)
	require.Equal(t, EditorDate, byName["dueDate"].Editable.Type)

	vendor := byName["vendor"]
	require.NotNil(t, vendor.CustomEditor)
	require.Equal(t, "vendor:V1:search", vendor.CustomEditor.GetElement(nil, "V1"))
	row := Record{"vendor": map[string]any{"code": "V1", "description": "Globex"}}
	require.Equal(t, "V1", vendor.Format(row, nil))
	require.Nil(t, vendor.Format(Record{}, nil))

	status := byName["status"]
	require.Equal(t, EditorSelect, status.Editable.Type)
	require.Equal(t, "Paid", status.Format(Record{"status": "paid"}, nil))
	require.Nil(t, status.Format(Record{"status": "void"}, nil))
}

func TestBuildColumns_Formatter(t *testing.T) {
	upper := DataFormatterFunc(func(cell any, row Record) any {
		return "#" + Text(cell)
	})
	columns, err := BuildColumns(invoiceSchema(), []TableColumn{
		{DataField: "amount", DataFormat: "ignored", Formatter: upper},
	}, nil)
	require.NoError(t, err)
	require.Equal(t, "#12.5", columns[0].Format(Record{"amount": 12.5}, nil))
}

func TestBuildColumns_MissingField(t *testing.T) {
	registry := Registry{"picker": FieldEditorFunc(func(props FieldProps) any { return nil })}
	tests := []struct {
		name      string
		tableCols []TableColumn
	}{
		{name: "custom editor", tableCols: []TableColumn{{DataField: "ghost", Field: "picker"}}},
		{name: "data format", tableCols: []TableColumn{{DataField: "amount"}, {DataField: "ghost", DataFormat: "code"}}},
		{name: "formatter", tableCols: []TableColumn{{DataField: "ghost", Formatter: DataFormatterFunc(func(any, Record) any { return "" })}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			columns, err := BuildColumns(invoiceSchema(), tt.tableCols, registry)
			require.ErrorIs(t, err, ErrMissingField)
			require.ErrorContains(t, err, `"ghost"`)
			require.Nil(t, columns)
		})
	}

	// Layout only overrides of unknown fields don't fail
	columns, err := BuildColumns(invoiceSchema(), []TableColumn{{DataField: "ghost", Title: "Ghost", Hidden: true}}, registry)
	require.NoError(t, err)
	require.Len(t, columns, 5)
}

func TestColumn_FormatDisplayCoercion(t *testing.T) {
	columns, err := BuildColumns(invoiceSchema(), nil, nil)
	require.NoError(t, err)
	byName := make(map[string]Column)
	for _, col := range columns {
		byName[col.DataField] = col
	}
	dueDate := byName["dueDate"]
	require.Equal(t, "2024-03-15", dueDate.Format(Record{"dueDate": "2024-03-15"}, nil))
	require.Equal(t, "", dueDate.Format(Record{}, nil))

	german := NewCoercer(func(t time.Time, pattern string) string { return t.Format("02.01.2006") })
	require.Equal(t, "15.03.2024", dueDate.Format(Record{"dueDate": "2024-03-15"}, german))
}
