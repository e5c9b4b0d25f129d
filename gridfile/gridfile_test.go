package gridfile

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	fs "github.com/ungerik/go-fs"

	"github.com/domonda/go-schemagrid"
)

const schemaJSON = `{
	"type": "array",
	"items": {
		"type": "object",
		"properties": {
			"name":   {"type": "string", "title": "Name"},
			"amount": {"type": "number"}
		}
	}
}`

func writeFile(t *testing.T, name, content string) fs.File {
	t.Helper()
	file := fs.File(filepath.Join(t.TempDir(), name))
	require.NoError(t, file.WriteAll([]byte(content)))
	return file
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		dataFile string
		data     string
	}{
		{name: "json", dataFile: "data.json", data: `[{"name": "ACME", "amount": 2}, {"name": "Globex"}]`},
		{name: "yaml", dataFile: "data.yaml", data: "- name: ACME\n  amount: 2\n- name: Globex\n"},
		{name: "csv", dataFile: "data.csv", data: "Name;Amount\nACME;2\nGlobex;\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docs, err := Load(
				writeFile(t, "schema.json", schemaJSON),
				"",
				writeFile(t, tt.dataFile, tt.data),
			)
			require.NoError(t, err)
			require.Equal(t, []string{"name", "amount"}, docs.Schema.Properties.Names())
			require.NotNil(t, docs.UISchema.Table)
			require.Equal(t, []schemagrid.Record{
				{"name": "ACME", "amount": 2.0},
				{"name": "Globex"},
			}, docs.Records)
		})
	}
}

func TestLoadRecords_NoFile(t *testing.T) {
	records, err := LoadRecords("", nil)
	require.NoError(t, err)
	require.Nil(t, records)
}

func TestLoadSchema_Errors(t *testing.T) {
	_, err := LoadSchema(writeFile(t, "schema.json", `{"type": "object"}`))
	require.ErrorIs(t, err, schemagrid.ErrNoItems)

	_, err = LoadSchema(fs.File(filepath.Join(t.TempDir(), "missing.json")))
	require.Error(t, err)
}

func TestDetectSeparator(t *testing.T) {
	tests := []struct {
		csv  string
		want string
	}{
		{csv: "", want: ","},
		{csv: "a", want: ","},
		{csv: "a;b;c\n1,5;2;3", want: ";"},
		{csv: "a\tb\n", want: "\t"},
		{csv: "a,b;c", want: ","},
	}
	for _, tt := range tests {
		t.Run(tt.csv, func(t *testing.T) {
			require.Equal(t, tt.want, DetectSeparator([]byte(tt.csv)))
		})
	}
}
