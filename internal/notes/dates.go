package notes

import (
	"fmt"
	"strings"
	"time"
)

// DisplayDateLayout renders dates like "May 15, 2023 at 10:30 AM".
const DisplayDateLayout = "January 2, 2006 at 3:04 PM"

// Layouts carrying a zone are converted to local time; the rest are shown as written.
var (
	zonedLayouts = []string{
		time.RFC3339Nano,
		"2006-01-02T15:04:05.999999999-0700",
		"2006-01-02 15:04:05Z07:00",
	}
	naiveLayouts = []string{
		"2006-01-02T15:04:05.999999999",
		"2006-01-02 15:04:05.999999999",
		"2006-01-02T15:04",
		"2006-01-02",
	}
)

// FormatDisplayDate parses an ISO-8601 creation date and formats it for the note header.
func FormatDisplayDate(raw string) (string, error) {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return "", fmt.Errorf("empty creation date")
	}

	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t.Local().Format(DisplayDateLayout), nil
		}
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, cleaned, time.Local); err == nil {
			return t.Format(DisplayDateLayout), nil
		}
	}

	return "", fmt.Errorf("could not parse creation date %q", raw)
}

// DateHeader is the line prepended to a note body for its creation date.
func DateHeader(date string) string {
	return "📅 " + date
}
