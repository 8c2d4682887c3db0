// Package timeutil parses and formats ISO 8601 timestamps with the offset
// spellings RFC 3339 alone rejects: "Z", "+HHMM" without a colon, offset-naive
// timestamps (read as UTC) and bare dates. Parsed times normalize to UTC.
package timeutil

import (
	"fmt"
	"strings"
	"time"
)

var layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999-0700",
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseISO8601 parses an ISO 8601 timestamp and returns it in UTC.
func ParseISO8601(s string) (time.Time, error) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("parse %q: not an ISO 8601 timestamp", s)
}

// FormatISO8601 renders t with seconds precision and a numeric UTC offset.
// With z set, a zero offset renders as "Z" instead of "+00:00".
func FormatISO8601(t time.Time, z bool) string {
	s := t.Format("2006-01-02T15:04:05-07:00")
	if z && strings.HasSuffix(s, "+00:00") {
		return strings.TrimSuffix(s, "+00:00") + "Z"
	}
	return s
}
