// Package gridfile loads the schema, UI schema and data documents
// of a table field from files.
package gridfile

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	fs "github.com/ungerik/go-fs"

	"github.com/domonda/go-schemagrid"
	"github.com/domonda/go-schemagrid/csvtable"
	"github.com/domonda/go-schemagrid/exceltable"
)

// Documents are the inputs of a table field loaded from files.
type Documents struct {
	Schema   *schemagrid.Schema
	UISchema *schemagrid.UISchema
	Records  []schemagrid.Record
}

// Props returns the documents as props of a TableField.
func (d *Documents) Props(onChange schemagrid.ChangeFunc) schemagrid.Props {
	return schemagrid.Props{
		Schema:   d.Schema,
		UISchema: d.UISchema,
		FormData: d.Records,
		OnChange: onChange,
	}
}

// Load loads all documents.
// uiSchemaFile and dataFile are optional and may be empty.
func Load(schemaFile, uiSchemaFile, dataFile fs.File) (*Documents, error) {
	schema, err := LoadSchema(schemaFile)
	if err != nil {
		return nil, err
	}
	uiSchema, err := LoadUISchema(uiSchemaFile)
	if err != nil {
		return nil, err
	}
	records, err := LoadRecords(dataFile, schema)
	if err != nil {
		return nil, err
	}
	return &Documents{Schema: schema, UISchema: uiSchema, Records: records}, nil
}

// LoadSchema parses a JSON or YAML schema file.
func LoadSchema(file fs.File) (*schemagrid.Schema, error) {
	data, err := file.ReadAll()
	if err != nil {
		return nil, err
	}
	schema, err := schemagrid.ParseSchema(data)
	if err != nil {
		return nil, fmt.Errorf("can't parse schema %s: %w", file.Name(), err)
	}
	return schema, nil
}

// LoadUISchema parses a JSON or YAML UI schema file.
// An empty file path returns the default UI schema.
func LoadUISchema(file fs.File) (*schemagrid.UISchema, error) {
	if file == "" {
		return schemagrid.ParseUISchema(nil)
	}
	data, err := file.ReadAll()
	if err != nil {
		return nil, err
	}
	uiSchema, err := schemagrid.ParseUISchema(data)
	if err != nil {
		return nil, fmt.Errorf("can't parse UI schema %s: %w", file.Name(), err)
	}
	return uiSchema, nil
}

// LoadRecords reads the records of a data file.
// The format is selected by the file extension:
// ".csv" and ".xlsx" files are read as tables with a header row,
// all other files as JSON or YAML array of objects.
// An empty file path returns no records.
func LoadRecords(file fs.File, schema *schemagrid.Schema) ([]schemagrid.Record, error) {
	if file == "" {
		return nil, nil
	}
	data, err := file.ReadAll()
	if err != nil {
		return nil, err
	}
	var records []schemagrid.Record
	switch strings.ToLower(file.Ext()) {
	case ".csv":
		format := csvtable.NewFormat(DetectSeparator(data))
		if !utf8.Valid(data) {
			format.Encoding = "" // detect
		}
		records, err = csvtable.ReadRecords(data, format, schema, nil)
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		records, err = exceltable.ReadRecords(bytes.NewReader(data), schema, nil)
	default:
		records, err = schemagrid.ParseRecords(data)
	}
	if err != nil {
		return nil, fmt.Errorf("can't read records from %s: %w", file.Name(), err)
	}
	return records, nil
}

// DetectSeparator returns the most frequent
// of the separators ",", ";" and tab in the first line of csv.
// Ties prefer the earlier separator, "," is returned if none is found.
func DetectSeparator(csv []byte) string {
	line, _, _ := bytes.Cut(csv, []byte("\n"))
	best, bestCount := ",", 0
	for _, sep := range []string{",", ";", "\t"} {
		if count := bytes.Count(line, []byte(sep)); count > bestCount {
			best, bestCount = sep, count
		}
	}
	return best
}
