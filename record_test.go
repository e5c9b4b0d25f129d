package schemagrid

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValuesEqual(t *testing.T) {
	tests := []struct {
		a, b any
		want bool
	}{
		{a: nil, b: nil, want: true},
		{a: nil, b: "", want: false},
		{a: 1, b: 1.0, want: true},
		{a: int64(2), b: uint8(2), want: true},
		{a: 1.0, b: "1", want: false},
		{a: "a", b: "a", want: true},
		{a: true, b: true, want: true},
		{a: true, b: "true", want: false},
		{a: map[string]any{"x": 1}, b: Record{"x": 1.0}, want: true},
		{a: map[string]any{"x": 1}, b: map[string]any{"x": 1, "y": nil}, want: false},
		{a: []any{1, "a"}, b: []any{1.0, "a"}, want: true},
		{a: []any{1}, b: []any{1, 2}, want: false},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, ValuesEqual(tt.a, tt.b), "ValuesEqual(%#v, %#v)", tt.a, tt.b)
	}
}

func TestEqualRecords(t *testing.T) {
	a := Record{"id": "1", PositionKey: 0, "picked": true}
	require.True(t, EqualRecords(a, Record{"id": "1"}, PositionKey, "picked"))
	require.False(t, EqualRecords(a, Record{"id": "1"}, PositionKey))
	require.False(t, EqualRecords(a, Record{"id": "2", "picked": true}, PositionKey))
	require.True(t, EqualRecords(nil, Record{}))
}

func TestRecord(t *testing.T) {
	var nilRecord Record
	require.Equal(t, Record{}, nilRecord.Clone())

	r := Record{"a": nil, "obj": map[string]any{"x": 1}, "rec": Record{"y": 2}, "str": "s"}
	clone := r.Clone()
	clone["b"] = 1
	require.False(t, r.Has("b"))
	require.True(t, r.Has("a"), "nil values are present")

	require.Equal(t, map[string]any{"x": 1}, r.Object("obj"))
	require.Equal(t, map[string]any{"y": 2}, r.Object("rec"))
	require.Nil(t, r.Object("str"))
	require.Nil(t, r.Object("missing"))

	require.Nil(t, CloneRecords(nil))
	records := []Record{{"a": 1}}
	cloned := CloneRecords(records)
	cloned[0]["a"] = 2
	require.Equal(t, 1, records[0]["a"])
}

func TestIsFalsy(t *testing.T) {
	for _, v := range []any{nil, false, 0, 0.0, math.NaN(), ""} {
		require.True(t, IsFalsy(v), "%#v", v)
	}
	for _, v := range []any{true, 1, -0.5, "false", "0", map[string]any{}, []any{}} {
		require.False(t, IsFalsy(v), "%#v", v)
	}
}

func TestText(t *testing.T) {
	tests := []struct {
		v    any
		want string
	}{
		{v: nil, want: ""},
		{v: "abc", want: "abc"},
		{v: 12.5, want: "12.5"},
		{v: 1e21, want: "1000000000000000000000"},
		{v: 3, want: "3"},
		{v: math.NaN(), want: "NaN"},
		{v: true, want: "true"},
		{v: KindDate, want: "Date"},
		{v: []any{1, "a"}, want: "[1 a]"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, Text(tt.v), "Text(%#v)", tt.v)
	}
}
