package format

import (
	"fmt"
	"time"
)

// timeLayouts lists the ISO-8601 shapes accepted by ParseTime, most specific first.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02",
}

// FormatTime renders t as the canonical ISO-8601 timestamp used throughout the format.
//
// Timestamps are always written in UTC; sub-second precision is kept only when present.
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// ParseTime parses an ISO-8601 timestamp. Strings without a zone designator are taken as UTC.
func ParseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("invalid ISO-8601 timestamp: %q", s)
}
