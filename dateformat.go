package schemagrid

import (
	"strconv"
	"strings"
	"time"
)

// momentTokens are the supported display pattern tokens,
// longer tokens before their prefixes.
var momentTokens = []string{
	"YYYY", "MMMM", "dddd", "MMM", "ddd", "SSS",
	"YY", "MM", "DD", "HH", "hh", "mm", "ss", "ZZ",
	"M", "D", "H", "h", "m", "s", "A", "a", "Z",
}

// MomentDateFormat is a DateFormatFunc for patterns
// written with moment.js tokens like "DD.MM.YYYY" or "YYYY-MM-DD HH:mm",
// the date format syntax used in UI schema configurations.
//
// Text in square brackets is written without the brackets,
// all other characters that are not tokens are copied.
// An empty pattern formats as "YYYY-MM-DD".
func MomentDateFormat(t time.Time, pattern string) string {
	if pattern == "" {
		return t.Format(time.DateOnly)
	}
	var b strings.Builder
	for len(pattern) > 0 {
		if pattern[0] == '[' {
			if end := strings.IndexByte(pattern, ']'); end > 0 {
				b.WriteString(pattern[1:end])
				pattern = pattern[end+1:]
				continue
			}
		}
		token := momentToken(pattern)
		if token == "" {
			b.WriteByte(pattern[0])
			pattern = pattern[1:]
			continue
		}
		b.WriteString(formatMomentToken(t, token))
		pattern = pattern[len(token):]
	}
	return b.String()
}

func momentToken(pattern string) string {
	for _, token := range momentTokens {
		if strings.HasPrefix(pattern, token) {
			return token
		}
	}
	return ""
}

func formatMomentToken(t time.Time, token string) string {
	switch token {
	case "YYYY":
		return t.Format("2006")
	case "YY":
		return t.Format("06")
	case "MMMM":
		return t.Format("January")
	case "MMM":
		return t.Format("Jan")
	case "MM":
		return t.Format("01")
	case "M":
		return strconv.Itoa(int(t.Month()))
	case "dddd":
		return t.Format("Monday")
	case "ddd":
		return t.Format("Mon")
	case "DD":
		return t.Format("02")
	case "D":
		return strconv.Itoa(t.Day())
	case "HH":
		return t.Format("15")
	case "H":
		return strconv.Itoa(t.Hour())
	case "hh":
		return t.Format("03")
	case "h":
		return t.Format("3")
	case "mm":
		return t.Format("04")
	case "m":
		return strconv.Itoa(t.Minute())
	case "ss":
		return t.Format("05")
	case "s":
		return strconv.Itoa(t.Second())
	case "SSS":
		return t.Format(".000")[1:]
	case "A":
		return t.Format("PM")
	case "a":
		return t.Format("pm")
	case "ZZ":
		return t.Format("-0700")
	case "Z":
		return t.Format("-07:00")
	}
	return token
}
