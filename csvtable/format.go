// Package csvtable writes schemagrid views as CSV
// and reads records of a schema from CSV data
// with support for various character encodings.
package csvtable

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// Format describes the encoding and structural format of CSV data.
type Format struct {
	// Encoding of the CSV data like "UTF-8", "UTF-16LE",
	// "ISO 8859-1", "Windows 1252", or "Macintosh".
	// An empty encoding is detected when reading.
	Encoding string `json:"encoding"`

	// Separator is the single character field delimiter.
	Separator string `json:"separator"`

	// Newline is one of "\n", "\r\n", or "\n\r".
	Newline string `json:"newline"`
}

// NewFormat returns a UTF-8 Format with the passed separator
// and "\r\n" newlines.
func NewFormat(separator string) *Format {
	return &Format{
		Encoding:  "UTF-8",
		Separator: separator,
		Newline:   "\r\n",
	}
}

// Validate checks if the Format is valid.
// It can be safely called on a nil receiver.
// An empty Encoding is valid.
func (f *Format) Validate() error {
	switch {
	case f == nil:
		return errors.New("<nil> csvtable.Format")
	case f.Separator == "":
		return errors.New("missing csvtable.Format.Separator")
	case utf8.RuneCountInString(f.Separator) > 1:
		return fmt.Errorf("invalid csvtable.Format.Separator: %q", f.Separator)
	case f.Newline == "":
		return errors.New("missing csvtable.Format.Newline")
	case f.Newline != "\n" && f.Newline != "\n\r" && f.Newline != "\r\n":
		return fmt.Errorf("invalid csvtable.Format.Newline: %q", f.Newline)
	}
	return nil
}

// SeparatorRune returns the separator as rune.
func (f *Format) SeparatorRune() rune {
	r, _ := utf8.DecodeRuneInString(f.Separator)
	return r
}

// FormatDetectionConfig configures the detection of the character
// encoding of CSV data with an empty Format.Encoding.
type FormatDetectionConfig struct {
	// Encodings to test in priority order.
	Encodings []string `json:"encodings"`

	// EncodingTests contain characters that have different
	// byte representations across the tested encodings.
	EncodingTests []string `json:"encodingTests"`
}

// NewDefaultFormatDetectionConfig returns a FormatDetectionConfig
// for European and Cyrillic CSV files.
func NewDefaultFormatDetectionConfig() *FormatDetectionConfig {
	return &FormatDetectionConfig{
		Encodings: []string{
			"UTF-8",
			"UTF-16LE",
			"ISO 8859-1",
			"Windows 1252", // like ANSI
			"Macintosh",
		},
		EncodingTests: []string{
			"ä", "Ä", "ö", "Ö", "ü", "Ü", "ß", "§", "€",
			"д", "Д", "ъ", "Ъ", "б", "Б", "л", "Л", "и", "И", "ж",
		},
	}
}
