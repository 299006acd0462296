package models

import (
	"fmt"
	"time"
)

const (
	queryDateLayout   = "2006-01-02"
	displayDateLayout = "January 2, 2006"

	// InvalidDate is shown for publication dates that cannot be parsed.
	InvalidDate = "Invalid Date"
)

// FormatQueryDate renders t as YYYY-MM-DD in t's own location.
func FormatQueryDate(t time.Time) string {
	return t.Format(queryDateLayout)
}

// FormatDisplayDate renders t as "May 6, 2025". The zero time renders as "".
func FormatDisplayDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(displayDateLayout)
}

// DisplayDateFromISO parses an RFC 3339 timestamp and formats it for display.
// Empty input yields "", unparsable input yields InvalidDate.
func DisplayDateFromISO(s string) string {
	if s == "" {
		return ""
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return InvalidDate
	}
	return FormatDisplayDate(t)
}

// SavedHeadline is the saved-articles page title, e.g. "Elise, you have 5 saved articles".
func SavedHeadline(name string, n int) string {
	noun := "articles"
	if n == 1 {
		noun = "article"
	}
	return fmt.Sprintf("%s, you have %d saved %s", name, n, noun)
}
