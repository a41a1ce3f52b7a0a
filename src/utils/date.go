package utils

import (
	"strings"
	"time"
)

// ISODateFormat is the key format of the rate table and the trade-date
// format of history exports.
const ISODateFormat = "2006-01-02"

// IsVariousDate reports whether the text is the brokerage convention for a
// lot with no single acquisition date.
func IsVariousDate(text string) bool {
	return strings.Contains(strings.ToUpper(text), "VARIOUS")
}

// ParseFlexibleDate parses the two date conventions seen in Firstrade
// exports: slash-delimited month/day/year and hyphen-delimited ISO
// year-month-day. The two are distinguished solely by the delimiter
// present in the string, not by a strict grammar. "VARIOUS" (any case) and
// unrecognized formats report ok=false.
func ParseFlexibleDate(text string) (time.Time, bool) {
	s := strings.TrimSpace(text)
	if s == "" || IsVariousDate(s) {
		return time.Time{}, false
	}
	var layout string
	switch {
	case strings.Contains(s, "/"):
		layout = "1/2/2006"
	case strings.Contains(s, "-"):
		layout = "2006-1-2"
	default:
		return time.Time{}, false
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
