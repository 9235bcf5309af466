package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DocTime is a document timestamp tolerant of the encodings that accumulated
// across historical records: a {"seconds": N, "nanos": M} object, a raw epoch
// number, or an RFC 3339 string. Decoding normalizes all of them to a single
// canonical time so nothing past the store boundary has to care.
//
// The zero DocTime is "no timestamp"; callers check Valid before using Time.
type DocTime struct {
	Time  time.Time
	Valid bool
}

// NewDocTime wraps a concrete time.
func NewDocTime(t time.Time) DocTime {
	return DocTime{Time: t, Valid: true}
}

// Seconds returns the epoch seconds, or 0 when no timestamp is present.
// Missing timestamps sorting as epoch/zero is load-bearing for the
// newest-first sale ordering.
func (d DocTime) Seconds() int64 {
	if !d.Valid {
		return 0
	}
	return d.Time.Unix()
}

type secondsObject struct {
	Seconds int64 `json:"seconds"`
	Nanos   int64 `json:"nanos"`
}

// UnmarshalJSON accepts the three historical timestamp shapes.
func (d *DocTime) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" || trimmed == `""` {
		*d = DocTime{}
		return nil
	}

	if strings.HasPrefix(trimmed, "{") {
		var obj secondsObject
		if err := json.Unmarshal(data, &obj); err != nil {
			return fmt.Errorf("decode timestamp object: %w", err)
		}
		*d = NewDocTime(time.Unix(obj.Seconds, obj.Nanos))
		return nil
	}

	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode timestamp string: %w", err)
		}
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return fmt.Errorf("parse timestamp %q: %w", s, err)
		}
		*d = NewDocTime(t)
		return nil
	}

	secs, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return fmt.Errorf("parse epoch timestamp %q: %w", trimmed, err)
	}
	whole := int64(secs)
	nanos := int64((secs - float64(whole)) * float64(time.Second))
	*d = NewDocTime(time.Unix(whole, nanos))
	return nil
}

// MarshalJSON writes the seconds-object shape, matching what the original
// store produced for new records. Invalid times encode as null.
func (d DocTime) MarshalJSON() ([]byte, error) {
	if !d.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(secondsObject{
		Seconds: d.Time.Unix(),
		Nanos:   int64(d.Time.Nanosecond()),
	})
}
