package schemagrid

import (
	"time"
)

// InvalidDate is stored or displayed instead of
// a date that could not be parsed.
// Coercion does not validate input.
const InvalidDate = "Invalid date"

const isoTimestampLayout = "2006-01-02T15:04:05.000Z"

// DateFormatFunc formats a time with a display pattern.
// The patterns of UI schemas use moment.js tokens,
// see MomentDateFormat.
type DateFormatFunc func(t time.Time, pattern string) string

// Coercer converts edited cell text into schema typed values
// and typed values into display values.
//
// Storage and display coercion only differ in what an empty
// date becomes (the field default vs. an empty string)
// and in the date pattern (fixed "YYYY-MM-DD" vs. a display pattern).
type Coercer struct {
	Parser *CellParser
	// FormatDate formats dates for display,
	// MomentDateFormat is used if nil.
	FormatDate DateFormatFunc
}

// NewCoercer returns a Coercer using a default CellParser
// and the passed DateFormatFunc.
func NewCoercer(formatDate DateFormatFunc) *Coercer {
	return &Coercer{Parser: NewCellParser(), FormatDate: formatDate}
}

// coercion parameterizes the differences
// between storage and display coercion.
type coercion struct {
	display bool
	// empty is the result for empty date input
	empty any
	// pattern is the display pattern for dates
	pattern string
}

// kindBehavior is the per FieldKind contract
// for coercion and cell editing.
type kindBehavior interface {
	coerce(c *Coercer, raw any, opts coercion) any
	editor() EditorType
}

var kindBehaviors = map[FieldKind]kindBehavior{
	KindString:   passthroughKind{editorType: EditorText},
	KindObject:   passthroughKind{editorType: EditorText},
	KindArray:    passthroughKind{editorType: EditorText},
	KindTime:     passthroughKind{editorType: EditorTime},
	KindBoolean:  booleanKind{},
	KindNumber:   numberKind{},
	KindDate:     dateKind{},
	KindDateTime: dateTimeKind{},
}

func behaviorOf(kind FieldKind) kindBehavior {
	if b, ok := kindBehaviors[kind]; ok {
		return b
	}
	return kindBehaviors[KindString]
}

// CoerceForStorage converts a raw edited cell value into the
// typed value stored in a record according to the field.
//
// A nil raw value is returned unchanged, absence is never defaulted.
// Booleans are true only for the text "true".
// Numbers are parsed as float64, empty text stays an empty string.
// Empty dates become the field default, other dates are stored
// as ISO timestamp (date-time) or "YYYY-MM-DD" (date).
// All other values are returned unchanged.
func (c *Coercer) CoerceForStorage(raw any, field *Field) any {
	if raw == nil {
		return nil
	}
	return behaviorOf(field.Kind).coerce(c, raw, coercion{empty: field.Default})
}

// CoerceForDisplay converts a typed value into the value displayed
// for a field of the passed kind.
// Empty and nil dates are displayed as empty string,
// dates are formatted with pattern using FormatDate.
func (c *Coercer) CoerceForDisplay(value any, kind FieldKind, pattern string) any {
	if value == nil {
		return ""
	}
	return behaviorOf(kind).coerce(c, value, coercion{display: true, empty: "", pattern: pattern})
}

func (c *Coercer) parser() *CellParser {
	if c == nil || c.Parser == nil {
		return DefaultCoercer.Parser
	}
	return c.Parser
}

func (c *Coercer) formatDate(t time.Time, pattern string) string {
	if c == nil || c.FormatDate == nil {
		return MomentDateFormat(t, pattern)
	}
	return c.FormatDate(t, pattern)
}

// rawText returns the text of a raw cell value
// and false for objects and arrays.
func rawText(raw any) (string, bool) {
	switch raw.(type) {
	case map[string]any, Record, []any:
		return "", false
	}
	return Text(raw), true
}

type passthroughKind struct {
	editorType EditorType
}

func (k passthroughKind) coerce(_ *Coercer, raw any, _ coercion) any { return raw }
func (k passthroughKind) editor() EditorType                         { return k.editorType }

type booleanKind struct{}

func (booleanKind) editor() EditorType { return EditorCheckbox }

func (booleanKind) coerce(_ *Coercer, raw any, _ coercion) any {
	text, _ := rawText(raw)
	return text == "true"
}

type numberKind struct{}

func (numberKind) editor() EditorType { return EditorText }

// coerce returns an empty string for empty text
// and for text without a leading number,
// so that the field is treated as empty.
func (numberKind) coerce(c *Coercer, raw any, _ coercion) any {
	if f, ok := asFloat(raw); ok {
		return f
	}
	text, ok := rawText(raw)
	if !ok || text == "" {
		return ""
	}
	f, err := c.parser().ParseFloat(text)
	if err != nil {
		return ""
	}
	return f
}

type dateTimeKind struct{}

func (dateTimeKind) editor() EditorType { return EditorDateTime }

func (dateTimeKind) coerce(c *Coercer, raw any, opts coercion) any {
	text, ok := rawText(raw)
	if !ok {
		return raw
	}
	if text == "" {
		return opts.empty
	}
	t, err := c.parser().ParseTime(text)
	if err != nil {
		return InvalidDate
	}
	if opts.display && opts.pattern != "" {
		return c.formatDate(t, opts.pattern)
	}
	return t.UTC().Format(isoTimestampLayout)
}

type dateKind struct{}

func (dateKind) editor() EditorType { return EditorDate }

func (dateKind) coerce(c *Coercer, raw any, opts coercion) any {
	text, ok := rawText(raw)
	if !ok {
		return raw
	}
	if text == "" {
		return opts.empty
	}
	t, err := c.parser().ParseTime(text)
	if err != nil {
		return InvalidDate
	}
	if opts.display {
		return c.formatDate(t, opts.pattern)
	}
	return t.Format(time.DateOnly)
}

// CoerceForStorage calls DefaultCoercer.CoerceForStorage.
func CoerceForStorage(raw any, field *Field) any {
	return DefaultCoercer.CoerceForStorage(raw, field)
}

// CoerceForDisplay calls DefaultCoercer.CoerceForDisplay.
func CoerceForDisplay(value any, kind FieldKind, pattern string) any {
	return DefaultCoercer.CoerceForDisplay(value, kind, pattern)
}
