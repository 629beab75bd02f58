package errata

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateParseError is returned when a publication timestamp matches none of
// the representations found in the errata databases, or is a zero epoch
// value.
type DateParseError struct {
	Value string
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("parse date from %s", e.Value)
}

// Timestamp is a publication timestamp as delivered by an errata database:
// either an epoch-milliseconds integer or an ISO 8601 UTC string.
type Timestamp struct {
	raw json.RawMessage
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	t.raw = append(t.raw[:0], b...)
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.raw == nil {
		return []byte("null"), nil
	}
	return t.raw, nil
}

const (
	iso8601Short = "2006-01-02T15:04:05Z"
	iso8601Long  = "2006-01-02T15:04:05.999999Z"
)

// Date returns the calendar date of the timestamp in UTC, discarding the
// time of day. The supported representations are tried in order: epoch
// milliseconds, ISO 8601 with second precision, ISO 8601 with fractional
// seconds. If none applies, or the epoch value is exactly zero, Date fails
// with a DateParseError; it never falls back to a value from an earlier
// call.
func (t Timestamp) Date() (time.Time, error) {
	var ms int64
	if err := json.Unmarshal(t.raw, &ms); err == nil && ms != 0 {
		d := time.UnixMilli(ms).UTC()
		return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC), nil
	}

	var s string
	if err := json.Unmarshal(t.raw, &s); err == nil {
		for _, layout := range []string{iso8601Short, iso8601Long} {
			if d, err := time.Parse(layout, s); err == nil {
				return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC), nil
			}
		}
	}

	return time.Time{}, &DateParseError{Value: string(t.raw)}
}
