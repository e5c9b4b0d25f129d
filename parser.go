package schemagrid

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/domonda/go-types/date"
)

// CellParser parses the text of edited grid cells into typed values.
//
// Grid widgets report every edited cell as text, so CellParser is
// the counterpart of the display formatting done by Coercer:
//   - Number parsing is lenient like in a browser: a leading numeric
//     prefix is accepted and a single comma is accepted as decimal separator
//   - Time parsing tries multiple layouts in order and falls back
//     to the date normalization of github.com/domonda/go-types/date
//
// Example usage:
//
//	parser := NewCellParser()
//	f, _ := parser.ParseFloat("3,14")       // 3.14
//	f, _ = parser.ParseFloat("12px")        // 12
//	t, _ := parser.ParseTime("2024-03-15")  // 2024-03-15 00:00:00 UTC
type CellParser struct {
	// TimeFormats lists time layout strings to try when parsing time values.
	// Formats are tried in order until one succeeds.
	TimeFormats []string `json:"timeFormats"`

	// Location is used for layouts without time zone.
	// If nil, time.UTC is used.
	Location *time.Location `json:"-"`
}

// NewCellParser creates a new CellParser
// with the default list of time formats.
func NewCellParser() *CellParser {
	return &CellParser{
		TimeFormats: timeFormats,
	}
}

// ParseFloat parses the leading number of str.
//
// Strategies in order:
//
//  1. Standard parsing using strconv.ParseFloat ("123.45", "-2.5e10")
//  2. Comma as decimal separator ("123,45" -> 123.45)
//  3. The longest numeric prefix ("12px" -> 12)
//
// An error is returned if str does not start with a number.
// Infinity and NaN spellings like "inf" or "NaN"
// and numbers out of the float64 range are no numbers.
func (p *CellParser) ParseFloat(str string) (float64, error) {
	str = strings.TrimSpace(str)
	f, err := strconv.ParseFloat(str, 64)
	if err == nil && isFinite(f) {
		return f, nil
	}
	if strings.Count(str, ",") == 1 && strings.Count(str, ".") == 0 {
		if f, e := strconv.ParseFloat(strings.Replace(str, ",", ".", 1), 64); e == nil && isFinite(f) {
			return f, nil
		}
	}
	if prefix := numericPrefix(str); prefix != "" {
		if f, e := strconv.ParseFloat(prefix, 64); e == nil && isFinite(f) {
			return f, nil
		}
	}
	return math.NaN(), fmt.Errorf("cannot parse %q as number", str)
}

func isFinite(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}

// numericPrefix returns the longest prefix of str
// that has the syntax of a decimal floating point number.
func numericPrefix(str string) string {
	var (
		end      = 0
		i        = 0
		digits   = false
		dot      = false
		exponent = false
	)
	if i < len(str) && (str[i] == '+' || str[i] == '-') {
		i++
	}
	for ; i < len(str); i++ {
		c := str[i]
		switch {
		case c >= '0' && c <= '9':
			digits = true
			end = i + 1
		case c == '.' && !dot && !exponent:
			dot = true
		case (c == 'e' || c == 'E') && digits && !exponent:
			exponent = true
			if i+1 < len(str) && (str[i+1] == '+' || str[i+1] == '-') {
				i++
			}
		default:
			return str[:end]
		}
	}
	return str[:end]
}

// ParseTime parses str by trying all TimeFormats in order.
// If no layout matches, date.Normalize is used to recognize
// date-only notations of various locales.
func (p *CellParser) ParseTime(str string) (time.Time, error) {
	str = strings.TrimSpace(str)
	loc := p.Location
	if loc == nil {
		loc = time.UTC
	}
	for _, format := range p.TimeFormats {
		t, err := time.ParseInLocation(format, str, loc)
		if err == nil {
			return t, nil
		}
	}
	d, err := date.Normalize(str)
	if err != nil {
		return time.Time{}, fmt.Errorf("cannot parse %q as time", str)
	}
	return d.MidnightUTC().In(loc), nil
}

// timeFormats is the default list of time layout strings tried when parsing
// edited cell values. The formats are ordered from most specific to less
// common, with the ISO formats sent by date pickers first.
var timeFormats = []string{
	time.RFC3339Nano,       // "2006-01-02T15:04:05.999999999Z07:00"
	time.RFC3339,           // "2006-01-02T15:04:05Z07:00"
	formatISOMilliUTC,      // "2006-01-02T15:04:05.000Z"
	formatBrowserLocalTime, // "2006-01-02T15:04" datetime-local input
	formatBrowserSeconds,   // "2006-01-02T15:04:05"
	time.DateTime,          // "2006-01-02 15:04:05"
	formatDateTimeMinute,   // "2006-01-02 15:04"
	time.DateOnly,          // "2006-01-02" date input
	time.RFC1123Z,          // "Mon, 02 Jan 2006 15:04:05 -0700"
	time.RFC1123,           // "Mon, 02 Jan 2006 15:04:05 MST"
	time.UnixDate,          // "Mon Jan _2 15:04:05 MST 2006"
	time.ANSIC,             // "Mon Jan _2 15:04:05 2006"
	formatDateTimeGerman,   // "02.01.2006 15:04:05"
	formatDateGerman,       // "02.01.2006"
	formatDateSlashUS,      // "01/02/2006"
}

const (
	formatISOMilliUTC      = "2006-01-02T15:04:05.000Z"
	formatBrowserLocalTime = "2006-01-02T15:04"
	formatBrowserSeconds   = "2006-01-02T15:04:05"
	formatDateTimeMinute   = "2006-01-02 15:04"
	formatDateTimeGerman   = "02.01.2006 15:04:05"
	formatDateGerman       = "02.01.2006"
	formatDateSlashUS      = "01/02/2006"
)
