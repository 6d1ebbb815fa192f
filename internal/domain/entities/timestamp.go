package entities

import (
	"bytes"
	"encoding/json"
	"time"
)

// Timestamp is a creation time that tolerates missing or malformed input.
// Decoding null, an empty string or an unparseable value yields the zero value
// instead of an error.
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps t.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// SortKey returns milliseconds since the Unix epoch; the zero value sorts as the epoch.
func (t Timestamp) SortKey() int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

// MarshalJSON encodes the zero value as null and everything else as RFC 3339.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.Format(time.RFC3339Nano))
}

// UnmarshalJSON accepts RFC 3339 and a few common store layouts.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	t.Time = time.Time{}
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}

	t.Time = ParseTimestamp(raw)
	return nil
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999 -0700 MST",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// ParseTimestamp parses raw with the known layouts, returning the zero time when none match.
func ParseTimestamp(raw string) time.Time {
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
