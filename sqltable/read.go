// Package sqltable reads the rows of SQL queries
// as schemagrid views and records.
//
// Rows of database/sql are read directly,
// rows of a pgx connection or pool are wrapped with PgxRows.
package sqltable

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/domonda/go-schemagrid"
)

var _ Rows = new(sql.Rows)

// Rows abstracts the methods of *sql.Rows
// used to read a query result.
type Rows interface {
	Columns() ([]string, error)
	Scan(dest ...any) error
	Close() error
	Next() bool
	Err() error
}

// ReadView reads all rows into a ValuesView with the
// result columns as column titles and closes rows.
// Column values are normalized to the JSON like values
// used by schemagrid records, see NormalizeValue.
func ReadView(ctx context.Context, title string, rows Rows) (*schemagrid.ValuesView, error) {
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	view := &schemagrid.ValuesView{Tit: title, Cols: columns}

	for rows.Next() {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		scannedValues := make([]any, len(columns))
		valueScanners := make([]any, len(columns))
		for i := range valueScanners {
			valueScanners[i] = valueScanner{&scannedValues[i]}
		}
		err = rows.Scan(valueScanners...)
		if err != nil {
			return view, err
		}
		view.Rows = append(view.Rows, scannedValues)
	}
	return view, rows.Err()
}

// ReadRecords reads all rows as records of schema.
// Result columns are matched to schema fields by name or title
// like schemagrid.RecordsFromView does.
func ReadRecords(ctx context.Context, rows Rows, schema *schemagrid.Schema, coercer *schemagrid.Coercer) ([]schemagrid.Record, error) {
	view, err := ReadView(ctx, schema.Title, rows)
	if err != nil {
		return nil, err
	}
	return schemagrid.RecordsFromView(view, schema, coercer)
}

var _ sql.Scanner = new(valueScanner)

type valueScanner struct {
	dest *any
}

// Scan implements the database/sql.Scanner interface.
func (s valueScanner) Scan(src any) error {
	value, err := NormalizeValue(src)
	if err != nil {
		return err
	}
	*s.dest = value
	return nil
}

// NormalizeValue converts a value read from a database
// into a value that coerces like edited cell text:
// bytes become strings, times become RFC 3339 timestamps,
// UUIDs become their canonical string and
// driver.Valuer implementations are replaced by their value.
func NormalizeValue(src any) (any, error) {
	switch v := src.(type) {
	case []byte:
		// Copy because the bytes are not valid after Scan returned
		return string(slices.Clone(v)), nil
	case time.Time:
		return v.Format(time.RFC3339Nano), nil
	case [16]byte:
		return uuid.UUID(v).String(), nil
	case uuid.UUID:
		return v.String(), nil
	case driver.Valuer:
		value, err := v.Value()
		if err != nil {
			return nil, err
		}
		if _, isValuer := value.(driver.Valuer); isValuer {
			return value, nil
		}
		return NormalizeValue(value)
	}
	return src, nil
}

// PgxRows wraps pgx.Rows as Rows.
// Values are read with pgx.Rows.Values and passed
// to destinations implementing sql.Scanner.
func PgxRows(rows pgx.Rows) Rows {
	return pgxRows{rows}
}

type pgxRows struct {
	pgx.Rows
}

func (r pgxRows) Columns() ([]string, error) {
	fields := r.FieldDescriptions()
	columns := make([]string, len(fields))
	for i, f := range fields {
		columns[i] = f.Name
	}
	return columns, nil
}

func (r pgxRows) Scan(dest ...any) error {
	values, err := r.Values()
	if err != nil {
		return err
	}
	for i, d := range dest {
		if i >= len(values) {
			break
		}
		scanner, ok := d.(sql.Scanner)
		if !ok {
			return r.Rows.Scan(dest...)
		}
		if err := scanner.Scan(values[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r pgxRows) Close() error {
	r.Rows.Close()
	return nil
}
