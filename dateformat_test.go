package schemagrid

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMomentDateFormat(t *testing.T) {
	morning := time.Date(2024, 3, 5, 9, 7, 3, 45_000_000, time.UTC)
	evening := time.Date(2024, 11, 15, 21, 30, 0, 0, time.FixedZone("CET", 3600))
	tests := []struct {
		name    string
		t       time.Time
		pattern string
		want    string
	}{
		{name: "empty pattern", t: morning, pattern: "", want: "2024-03-05"},
		{name: "ISO date", t: morning, pattern: "YYYY-MM-DD", want: "2024-03-05"},
		{name: "German date", t: morning, pattern: "DD.MM.YYYY", want: "05.03.2024"},
		{name: "slashes", t: evening, pattern: "DD/MM/YYYY", want: "15/11/2024"},
		{name: "unpadded", t: morning, pattern: "D.M.YY H:m:s", want: "5.3.24 9:7:3"},
		{name: "time", t: morning, pattern: "YYYY-MM-DD HH:mm:ss.SSS", want: "2024-03-05 09:07:03.045"},
		{name: "12 hour", t: evening, pattern: "hh:mm A / h a", want: "09:30 PM / 9 pm"},
		{name: "names", t: evening, pattern: "dddd, D MMMM YYYY", want: "Friday, 15 November 2024"},
		{name: "short names", t: evening, pattern: "ddd MMM D", want: "Fri Nov 15"},
		{name: "zone", t: evening, pattern: "HH:mm Z ZZ", want: "21:30 +01:00 +0100"},
		{name: "escaped text", t: morning, pattern: "[Due] DD.MM.", want: "Due 05.03."},
		{name: "unclosed bracket", t: morning, pattern: "[YYYY", want: "[2024"},
		{name: "no tokens", t: morning, pattern: "---", want: "---"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, MomentDateFormat(tt.t, tt.pattern))
		})
	}
}
