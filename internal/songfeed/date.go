package songfeed

import (
	"fmt"
	"time"
)

// DisplayLayout is the output format for song timestamps, e.g. "17-Oct-2024 at 14:03"
const DisplayLayout = "02-Jan-2006 at 15:04"

// offsetLen is the length of the trailing UTC offset ("+02:00") dropped before parsing
const offsetLen = 6

// naiveLayouts are tried in order; fractional seconds are optional in each.
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseError is returned when a song timestamp cannot be parsed
type ParseError struct {
	Value string // The raw timestamp
	Err   error  // Underlying parse error, if any
}

// Error returns the error message
func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("songfeed: invalid date %q: %v", e.Value, e.Err)
	}
	return fmt.Sprintf("songfeed: invalid date %q", e.Value)
}

// Unwrap returns the underlying parse error
func (e *ParseError) Unwrap() error {
	return e.Err
}

// FormatDate turns an ISO-8601 timestamp with a trailing UTC offset into
// DisplayLayout. The offset (last 6 characters) is dropped and the rest is
// read as local wall-clock time, so no time zone conversion happens.
func FormatDate(s string) (string, error) {
	if len(s) <= offsetLen {
		return "", &ParseError{Value: s}
	}

	naive := s[:len(s)-offsetLen]

	var lastErr error
	for _, layout := range naiveLayouts {
		t, err := time.ParseInLocation(layout, naive, time.Local)
		if err == nil {
			return t.Format(DisplayLayout), nil
		}
		lastErr = err
	}

	return "", &ParseError{Value: s, Err: lastErr}
}
