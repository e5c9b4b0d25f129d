package csvtable

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/domonda/go-types/charset"

	"github.com/domonda/go-schemagrid"
)

// Parse decodes csvData with the format's encoding
// and returns its rows with empty rows removed.
// If format.Encoding is empty, the encoding is detected using
// NewDefaultFormatDetectionConfig and stored in the returned format.
func Parse(csvData []byte, format *Format) (rows [][]string, detected *Format, err error) {
	if err = format.Validate(); err != nil {
		return nil, nil, err
	}
	detected = new(Format)
	*detected = *format

	switch format.Encoding {
	case "":
		config := NewDefaultFormatDetectionConfig()
		var encodings []charset.Encoding
		for _, name := range config.Encodings {
			enc, err := charset.GetEncoding(name)
			if err != nil {
				return nil, nil, err
			}
			encodings = append(encodings, enc)
		}
		csvData, detected.Encoding, err = charset.AutoDecode(csvData, encodings, config.EncodingTests)
		if err != nil {
			return nil, nil, err
		}
	case "UTF-8":
		csvData = charset.TrimBOM(csvData, charset.BOMUTF8)
	default:
		enc, err := charset.GetEncoding(format.Encoding)
		if err != nil {
			return nil, nil, err
		}
		csvData, err = enc.Decode(csvData)
		if err != nil {
			return nil, nil, err
		}
	}
	csvData = bytes.ToValidUTF8(csvData, []byte("�"))

	reader := csv.NewReader(bytes.NewReader(csvData))
	reader.Comma = format.SeparatorRune()
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	rows, err = reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("can't parse CSV: %w", err)
	}
	rows = schemagrid.RemoveEmptyStringRows(rows)
	return rows, detected, nil
}

// ReadRecords parses csvData with a header row
// and returns its rows as records of schema.
// See schemagrid.RecordsFromView for how columns are matched to fields.
func ReadRecords(csvData []byte, format *Format, schema *schemagrid.Schema, coercer *schemagrid.Coercer) ([]schemagrid.Record, error) {
	rows, _, err := Parse(csvData, format)
	if err != nil {
		return nil, err
	}
	return schemagrid.RecordsFromView(schemagrid.NewStringsView(schema.Title, rows), schema, coercer)
}
