package schemagrid

// PositionKey is the name of the synthetic positional key field
// assigned to records when no key field is configured.
const PositionKey = "_position"

// IsSyntheticKey returns true if keyField
// selects the synthetic positional key.
func IsSyntheticKey(keyField string) bool {
	return keyField == "" || keyField == PositionKey
}

// EnsureKeyed returns the key field to use for records
// together with the records keyed by it.
//
// If keyField is empty or PositionKey, every record is copied
// with PositionKey set to its index in records and PositionKey is returned.
// Otherwise records are returned unchanged with keyField.
func EnsureKeyed(keyField string, records []Record) (string, []Record) {
	if !IsSyntheticKey(keyField) {
		return keyField, records
	}
	keyed := make([]Record, len(records))
	for i, r := range records {
		k := r.Clone()
		k[PositionKey] = i
		keyed[i] = k
	}
	return PositionKey, keyed
}

// StripSyntheticKey returns copies of records without PositionKey.
// Every slice handed to a ChangeFunc has been stripped.
func StripSyntheticKey(records []Record) []Record {
	stripped := make([]Record, len(records))
	for i, r := range records {
		s := r.Clone()
		delete(s, PositionKey)
		stripped[i] = s
	}
	return stripped
}
