package csvtable

import (
	"bytes"
	"context"
	"errors"
	"io"
	"maps"
	"strings"
	"unicode/utf8"

	"github.com/domonda/go-types/charset"

	"github.com/domonda/go-schemagrid"
)

// Encoder is an interface to encode byte strings.
type Encoder interface {
	Bytes([]byte) ([]byte, error)
}

// EncoderFunc implements the Encoder interface for a function.
type EncoderFunc func([]byte) ([]byte, error)

func (f EncoderFunc) Bytes(data []byte) ([]byte, error) {
	return f(data)
}

// CharsetEncoder returns an Encoder that encodes UTF-8
// to the named character encoding.
func CharsetEncoder(encoding string) (Encoder, error) {
	enc, err := charset.GetEncoding(encoding)
	if err != nil {
		return nil, err
	}
	return EncoderFunc(enc.Encode), nil
}

type Padding int

const (
	NoPadding Padding = iota
	AlignLeft
	AlignRight
	AlignCenter
)

// Writer writes a schemagrid.View as CSV.
// The With methods return modified copies of the Writer.
type Writer struct {
	columnFormatters map[int]schemagrid.CellFormatter
	formatter        schemagrid.CellFormatter
	padding          Padding
	headerRow        bool
	quoteAllFields   bool
	quoteEmptyFields bool
	escapeQuotes     string
	nilValue         string
	delimiter        rune
	newLine          string
	encoder          Encoder
}

func NewWriter() *Writer {
	return &Writer{
		columnFormatters: make(map[int]schemagrid.CellFormatter),
		formatter:        schemagrid.TextCellFormatter,
		padding:          NoPadding,
		headerRow:        false,
		quoteAllFields:   false,
		quoteEmptyFields: false,
		escapeQuotes:     `""`,
		nilValue:         "",
		delimiter:        ';',
		newLine:          "\r\n",
		encoder:          nil,
	}
}

// NewWriterForFormat returns a Writer with the delimiter,
// newline and encoding of format.
func NewWriterForFormat(format *Format) (*Writer, error) {
	if err := format.Validate(); err != nil {
		return nil, err
	}
	w := NewWriter().
		WithDelimiter(format.SeparatorRune()).
		WithNewLine(format.Newline)
	if format.Encoding != "" && format.Encoding != "UTF-8" {
		enc, err := CharsetEncoder(format.Encoding)
		if err != nil {
			return nil, err
		}
		w = w.WithEncoder(enc)
	}
	return w, nil
}

func (w *Writer) clone() *Writer {
	c := new(Writer)
	*c = *w
	return c
}

// WriteView writes the view to dest formatted as CSV.
func (w *Writer) WriteView(ctx context.Context, dest io.Writer, view schemagrid.View) error {
	if w.padding != NoPadding {
		return w.writeViewPadded(ctx, dest, view)
	}

	if w.headerRow {
		err := w.writeView(ctx, dest, schemagrid.NewHeaderViewFrom(view))
		if err != nil {
			return err
		}
	}
	return w.writeView(ctx, dest, view)
}

func (w *Writer) writeView(ctx context.Context, dest io.Writer, view schemagrid.View) error {
	rowBuf := bytes.NewBuffer(make([]byte, 0, 1024))
	for row, numRows := 0, view.NumRows(); row < numRows; row++ {
		rowStrs, err := w.rowStrings(ctx, view, row)
		if err != nil {
			return err
		}
		for col, str := range rowStrs {
			if col > 0 {
				rowBuf.WriteRune(w.delimiter)
			}
			rowBuf.WriteString(str)
		}
		err = w.flushRow(dest, rowBuf)
		if err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) writeViewPadded(ctx context.Context, dest io.Writer, view schemagrid.View) error {
	rows, err := w.ViewStrings(ctx, view)
	if err != nil {
		return err
	}
	colRuneCount := schemagrid.StringColumnWidths(rows, len(view.Columns()))

	rowBuf := bytes.NewBuffer(make([]byte, 0, 1024))
	for row := range rows {
		for col, str := range rows[row] {
			if col > 0 {
				rowBuf.WriteRune(w.delimiter)
			}
			var (
				padTotal = colRuneCount[col] - utf8.RuneCountInString(str)
				padLeft  = 0
				padRight = 0
			)
			switch w.padding {
			case AlignLeft:
				padRight = padTotal
			case AlignRight:
				padLeft = padTotal
			case AlignCenter:
				padLeft = padTotal / 2
				padRight = (padTotal + 1) / 2
			}
			rowBuf.WriteString(strings.Repeat(" ", padLeft))
			rowBuf.WriteString(str)
			rowBuf.WriteString(strings.Repeat(" ", padRight))
		}
		err = w.flushRow(dest, rowBuf)
		if err != nil {
			return err
		}
	}
	return nil
}

// flushRow terminates, encodes and writes the buffered row to dest.
func (w *Writer) flushRow(dest io.Writer, rowBuf *bytes.Buffer) error {
	defer rowBuf.Reset()
	rowBuf.WriteString(w.newLine)
	data := rowBuf.Bytes()
	if w.encoder != nil {
		var err error
		data, err = w.encoder.Bytes(data)
		if err != nil {
			return err
		}
	}
	_, err := dest.Write(data)
	return err
}

// ViewStrings returns the view formatted as a slice of escaped string slices.
func (w *Writer) ViewStrings(ctx context.Context, view schemagrid.View) ([][]string, error) {
	var (
		numRows = view.NumRows()
		rows    = make([][]string, 0, numRows+1)
	)
	if w.headerRow {
		rowStrs, err := w.rowStrings(ctx, schemagrid.NewHeaderViewFrom(view), 0)
		if err != nil {
			return nil, err
		}
		rows = append(rows, rowStrs)
	}
	for row := 0; row < numRows; row++ {
		rowStrs, err := w.rowStrings(ctx, view, row)
		if err != nil {
			return nil, err
		}
		rows = append(rows, rowStrs)
	}
	return rows, nil
}

func (w *Writer) rowStrings(ctx context.Context, view schemagrid.View, row int) ([]string, error) {
	columns := view.Columns()
	rowStrs := make([]string, len(columns))
	for col := range columns {
		var err error
		rowStrs[col], err = w.cellString(ctx, view, row, col)
		if err != nil {
			return nil, err
		}
	}
	return rowStrs, nil
}

func (w *Writer) cellString(ctx context.Context, view schemagrid.View, row, col int) (string, error) {
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	if colFormatter, ok := w.columnFormatters[col]; ok {
		str, isRaw, err := colFormatter.FormatCell(ctx, view, row, col)
		if err == nil {
			return w.escapeString(str, isRaw), nil
		}
		if !errors.Is(err, errors.ErrUnsupported) {
			return "", err
		}
		// Continue after errors.ErrUnsupported
	}

	if w.formatter != nil {
		str, isRaw, err := w.formatter.FormatCell(ctx, view, row, col)
		if err == nil {
			return w.escapeString(str, isRaw), nil
		}
		if !errors.Is(err, errors.ErrUnsupported) {
			return "", err
		}
	}

	cell := view.Cell(row, col)
	if cell == nil {
		return w.escapeString(w.nilValue, false), nil
	}
	return w.escapeString(schemagrid.Text(cell), false), nil
}

func (w *Writer) escapeString(str string, isRaw bool) string {
	if isRaw {
		return str
	}
	// Just in case remove all \r,
	// \n alone is valid within quotes
	str = strings.ReplaceAll(str, "\r", "")
	switch {
	case w.quoteAllFields || strings.ContainsRune(str, w.delimiter) || strings.ContainsRune(str, '\n'):
		return `"` + strings.ReplaceAll(str, `"`, w.escapeQuotes) + `"`
	case w.quoteEmptyFields && str == "":
		return `""`
	}
	return strings.ReplaceAll(str, `"`, w.escapeQuotes)
}

func (w *Writer) WithHeaderRow(headerRow bool) *Writer {
	mod := w.clone()
	mod.headerRow = headerRow
	return mod
}

// WithColumnFormatter returns a new writer with the passed formatter registered for columnIndex.
// If nil is passed as formatter, then a previous registered column formatter is removed.
func (w *Writer) WithColumnFormatter(columnIndex int, formatter schemagrid.CellFormatter) *Writer {
	mod := w.clone()
	mod.columnFormatters = maps.Clone(w.columnFormatters)
	if mod.columnFormatters == nil {
		mod.columnFormatters = make(map[int]schemagrid.CellFormatter)
	}
	if formatter != nil {
		mod.columnFormatters[columnIndex] = formatter
	} else {
		delete(mod.columnFormatters, columnIndex)
	}
	return mod
}

// WithColumnFormatterFunc returns a new writer with the passed formatterFunc registered for columnIndex.
func (w *Writer) WithColumnFormatterFunc(columnIndex int, formatterFunc schemagrid.CellFormatterFunc) *Writer {
	if formatterFunc == nil {
		return w.WithColumnFormatter(columnIndex, nil)
	}
	return w.WithColumnFormatter(columnIndex, formatterFunc)
}

// WithFormatter returns a new writer using formatter for all columns
// without column formatter. nil formats cells with schemagrid.Text.
func (w *Writer) WithFormatter(formatter schemagrid.CellFormatter) *Writer {
	mod := w.clone()
	mod.formatter = formatter
	return mod
}

func (w *Writer) WithPadding(padding Padding) *Writer {
	mod := w.clone()
	mod.padding = padding
	return mod
}

func (w *Writer) WithQuoteAllFields(quoteAllFields bool) *Writer {
	mod := w.clone()
	mod.quoteAllFields = quoteAllFields
	return mod
}

func (w *Writer) WithQuoteEmptyFields(quoteEmptyFields bool) *Writer {
	mod := w.clone()
	mod.quoteEmptyFields = quoteEmptyFields
	return mod
}

func (w *Writer) WithNilValue(nilValue string) *Writer {
	mod := w.clone()
	mod.nilValue = nilValue
	return mod
}

func (w *Writer) WithEscapeQuotes(escapeQuotes string) *Writer {
	mod := w.clone()
	mod.escapeQuotes = escapeQuotes
	return mod
}

func (w *Writer) WithDelimiter(delimiter rune) *Writer {
	mod := w.clone()
	mod.delimiter = delimiter
	return mod
}

func (w *Writer) WithNewLine(newLine string) *Writer {
	mod := w.clone()
	mod.newLine = newLine
	return mod
}

func (w *Writer) WithEncoder(encoder Encoder) *Writer {
	mod := w.clone()
	mod.encoder = encoder
	return mod
}

func (w *Writer) Delimiter() rune  { return w.delimiter }
func (w *Writer) NilValue() string { return w.nilValue }
func (w *Writer) NewLine() string  { return w.newLine }
func (w *Writer) Encoder() Encoder { return w.encoder }
func (w *Writer) HeaderRow() bool  { return w.headerRow }
func (w *Writer) Padding() Padding { return w.padding }
