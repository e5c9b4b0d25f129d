package schemagrid

import (
	"fmt"
	"maps"
	"math"
	"reflect"
	"strconv"
)

// Record is one element of the backing data array:
// a mapping from field name to a JSON like value.
// A missing key means the field is absent.
type Record map[string]any

// Clone returns a shallow copy of the record.
// A nil record is cloned to an empty one.
func (r Record) Clone() Record {
	if r == nil {
		return Record{}
	}
	return maps.Clone(r)
}

// Has returns if the field is present on the record,
// including fields that are present with a nil value.
func (r Record) Has(field string) bool {
	_, ok := r[field]
	return ok
}

// Object returns the nested object value of a field
// or nil if the field is absent or not an object.
func (r Record) Object(field string) map[string]any {
	switch v := r[field].(type) {
	case map[string]any:
		return v
	case Record:
		return v
	}
	return nil
}

// CloneRecords returns a new slice with a shallow copy of every record.
func CloneRecords(records []Record) []Record {
	if records == nil {
		return nil
	}
	cloned := make([]Record, len(records))
	for i, r := range records {
		cloned[i] = r.Clone()
	}
	return cloned
}

// EqualRecords compares two records field by field
// while skipping the passed ignored field names.
// Both records must have the same set of non ignored fields
// with equal values.
func EqualRecords(a, b Record, ignore ...string) bool {
	skip := func(name string) bool {
		for _, i := range ignore {
			if i == name {
				return true
			}
		}
		return false
	}
	numA := 0
	for name, valA := range a {
		if skip(name) {
			continue
		}
		numA++
		valB, ok := b[name]
		if !ok || !ValuesEqual(valA, valB) {
			return false
		}
	}
	numB := 0
	for name := range b {
		if !skip(name) {
			numB++
		}
	}
	return numA == numB
}

// ValuesEqual compares JSON like values.
// Numbers of different Go types are compared by their float64 value,
// objects and arrays are compared recursively.
func ValuesEqual(a, b any) bool {
	if fa, ok := asFloat(a); ok {
		fb, ok := asFloat(b)
		return ok && fa == fb
	}
	switch va := a.(type) {
	case nil:
		return b == nil
	case string:
		vb, ok := b.(string)
		return ok && va == vb
	case bool:
		vb, ok := b.(bool)
		return ok && va == vb
	case Record:
		return objectsEqual(va, b)
	case map[string]any:
		return objectsEqual(va, b)
	case []any:
		vb, ok := b.([]any)
		if !ok || len(va) != len(vb) {
			return false
		}
		for i := range va {
			if !ValuesEqual(va[i], vb[i]) {
				return false
			}
		}
		return true
	}
	return reflect.DeepEqual(a, b)
}

func objectsEqual(a map[string]any, b any) bool {
	switch vb := b.(type) {
	case map[string]any:
		return EqualRecords(a, vb)
	case Record:
		return EqualRecords(a, vb)
	}
	return false
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

// IsFalsy returns true for values a JavaScript host treats as false:
// nil, false, zero, NaN and the empty string.
func IsFalsy(v any) bool {
	if f, ok := asFloat(v); ok {
		return f == 0 || math.IsNaN(f)
	}
	switch x := v.(type) {
	case nil:
		return true
	case bool:
		return !x
	case string:
		return x == ""
	}
	return false
}

// Text returns the text representation of a value
// as shown to users. nil is returned as empty string.
func Text(v any) string {
	if f, ok := asFloat(v); ok {
		if math.IsNaN(f) {
			return "NaN"
		}
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprint(v)
}
