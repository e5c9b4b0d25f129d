package sqltable

import (
	"context"
	"database/sql"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/require"

	"github.com/domonda/go-schemagrid"
)

// sliceRows implements Rows for in-memory values.
type sliceRows struct {
	columns []string
	rows    [][]any
	next    int
	closed  bool
	err     error
}

func (r *sliceRows) Columns() ([]string, error) { return r.columns, nil }

func (r *sliceRows) Next() bool {
	if r.closed || r.next >= len(r.rows) {
		return false
	}
	r.next++
	return true
}

func (r *sliceRows) Scan(dest ...any) error {
	row := r.rows[r.next-1]
	for i, d := range dest {
		if err := d.(sql.Scanner).Scan(row[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *sliceRows) Close() error { r.closed = true; return nil }
func (r *sliceRows) Err() error   { return r.err }

func TestReadView(t *testing.T) {
	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	rows := &sliceRows{
		columns: []string{"id", "name", "created"},
		rows: [][]any{
			{[16]byte(id), []byte("Acme"), time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)},
			{id, nil, nil},
		},
	}
	view, err := ReadView(context.Background(), "vendors", rows)
	require.NoError(t, err)
	require.True(t, rows.closed)
	require.Equal(t, "vendors", view.Title())
	require.Equal(t, []string{"id", "name", "created"}, view.Columns())
	require.Equal(t, [][]any{
		{id.String(), "Acme", "2024-03-15T10:00:00Z"},
		{id.String(), nil, nil},
	}, view.Rows)
}

func TestReadView_Error(t *testing.T) {
	errQuery := errors.New("connection lost")
	rows := &sliceRows{columns: []string{"a"}, err: errQuery}
	_, err := ReadView(context.Background(), "", rows)
	require.ErrorIs(t, err, errQuery)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rows = &sliceRows{columns: []string{"a"}, rows: [][]any{{1}}}
	_, err = ReadView(ctx, "", rows)
	require.ErrorIs(t, err, context.Canceled)
}

func TestReadRecords(t *testing.T) {
	schema, err := schemagrid.ParseSchema([]byte(`{
		"title": "Invoices",
		"items": {"properties": {
			"number": {"type": "string"},
			"amount": {"type": "number"},
			"paid": {"type": "boolean"},
			"dueDate": {"type": "string", "format": "date"}
		}}
	}`))
	require.NoError(t, err)

	rows := &sliceRows{
		columns: []string{"number", "amount", "paid", "due_date", "internal"},
		rows: [][]any{{
			"R-1",
			pgtype.Numeric{Int: big.NewInt(1250), Exp: -2, Valid: true},
			"true",
			time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
			"x",
		}},
	}
	records, err := ReadRecords(context.Background(), rows, schema, nil)
	require.NoError(t, err)
	require.Equal(t, []schemagrid.Record{
		{"number": "R-1", "amount": 12.5, "paid": true, "dueDate": "2024-03-15"},
	}, records)
}

func TestNormalizeValue(t *testing.T) {
	tests := []struct {
		name string
		src  any
		want any
	}{
		{name: "nil", src: nil, want: nil},
		{name: "int", src: int64(7), want: int64(7)},
		{name: "bytes", src: []byte("abc"), want: "abc"},
		{name: "time", src: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), want: "2024-01-02T03:04:05Z"},
		{name: "null numeric", src: pgtype.Numeric{}, want: nil},
		{name: "text", src: pgtype.Text{String: "t", Valid: true}, want: "t"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeValue(tt.src)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}
