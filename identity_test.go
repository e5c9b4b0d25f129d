package schemagrid

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureKeyed(t *testing.T) {
	records := []Record{{"name": "a"}, {"name": "b"}}

	keyField, keyed := EnsureKeyed("", records)
	require.Equal(t, PositionKey, keyField)
	require.Equal(t, []Record{{"name": "a", PositionKey: 0}, {"name": "b", PositionKey: 1}}, keyed)
	require.NotContains(t, records[0], PositionKey, "input records must not be modified")

	keyField, keyed = EnsureKeyed(PositionKey, records)
	require.Equal(t, PositionKey, keyField)
	require.Equal(t, 1, keyed[1][PositionKey])

	keyField, keyed = EnsureKeyed("name", records)
	require.Equal(t, "name", keyField)
	require.Equal(t, records, keyed)

	keyField, keyed = EnsureKeyed("", nil)
	require.Equal(t, PositionKey, keyField)
	require.Empty(t, keyed)
}

func TestStripSyntheticKey(t *testing.T) {
	keyed := []Record{{"name": "a", PositionKey: 0}, {"name": "b"}}
	stripped := StripSyntheticKey(keyed)
	require.Equal(t, []Record{{"name": "a"}, {"name": "b"}}, stripped)
	require.Contains(t, keyed[0], PositionKey, "input records must not be modified")
}

func TestEnsureKeyed_RoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		records []Record
	}{
		{name: "empty", records: []Record{}},
		{name: "flat", records: []Record{{"name": "a"}, {"name": "b", "amount": 1.5}}},
		{name: "nested", records: []Record{{"vendor": map[string]any{"code": "V1"}, "tags": []any{"x"}}}},
		{name: "empty record", records: []Record{{}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, keyed := EnsureKeyed("", tt.records)
			stripped := StripSyntheticKey(keyed)
			require.Equal(t, tt.records, stripped)

			_, keyed = EnsureKeyed("", stripped)
			require.Equal(t, tt.records, StripSyntheticKey(keyed))
			require.Equal(t, stripped, StripSyntheticKey(stripped))
		})
	}
}

func TestIsSyntheticKey(t *testing.T) {
	require.True(t, IsSyntheticKey(""))
	require.True(t, IsSyntheticKey(PositionKey))
	require.False(t, IsSyntheticKey("id"))
}
