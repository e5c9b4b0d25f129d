package schemagrid

import "fmt"

// FieldKind is the variant of a schema field
// derived from its declared JSON type and format.
type FieldKind int

const (
	// KindString is a plain text field.
	KindString FieldKind = iota
	// KindNumber is a "number" or "integer" field.
	KindNumber
	// KindBoolean is a "boolean" field.
	KindBoolean
	// KindObject is a nested "object" field with its own properties.
	KindObject
	// KindArray is an "array" field, passed through unchanged.
	KindArray
	// KindDate is a string field with format "date".
	KindDate
	// KindDateTime is a string field with format "date-time".
	KindDateTime
	// KindTime is a string field with format "time".
	KindTime
)

// KindOf returns the FieldKind for a JSON schema type and format.
// Formats are only considered for string or untyped fields.
func KindOf(typ, format string) FieldKind {
	switch typ {
	case "boolean":
		return KindBoolean
	case "number", "integer":
		return KindNumber
	case "object":
		return KindObject
	case "array":
		return KindArray
	case "string", "":
		switch format {
		case "date":
			return KindDate
		case "date-time":
			return KindDateTime
		case "time":
			return KindTime
		}
	}
	return KindString
}

// IsTemporal returns true for the date, date-time and time kinds.
func (k FieldKind) IsTemporal() bool {
	return k == KindDate || k == KindDateTime || k == KindTime
}

// String returns the string representation of a FieldKind.
func (k FieldKind) String() string {
	switch k {
	case KindString:
		return "String"
	case KindNumber:
		return "Number"
	case KindBoolean:
		return "Boolean"
	case KindObject:
		return "Object"
	case KindArray:
		return "Array"
	case KindDate:
		return "Date"
	case KindDateTime:
		return "DateTime"
	case KindTime:
		return "Time"
	default:
		return fmt.Sprintf("FieldKind(%d)", int(k))
	}
}
