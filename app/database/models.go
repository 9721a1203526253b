package database

import (
	"database/sql"
	"fmt"
	"time"
)

// Timestamps are stored as RFC 3339 UTC strings so that SQL range comparisons
// against bound parameters stay lexicographically correct. The layout is
// fixed-width (nanoseconds are never trimmed); RFC3339Nano would drop trailing
// zeros and break string ordering for sub-second values.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func formatNullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse timestamp %q: %w", s, err)
	}
	return t, nil
}

func parseNullTime(s sql.NullString) (*time.Time, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	t, err := parseTime(s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
