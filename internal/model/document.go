package model

import (
	"encoding/json"
	"time"
)

var epoch = time.Unix(0, 0).UTC()

// Timestamp is a document creation time. Stored values that are not RFC 3339
// timestamps (epoch numbers, bare dates, maps) decode as unset instead of
// failing the whole document.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	t.Time = time.Time{}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return nil
	}
	if parsed, err := time.Parse(time.RFC3339Nano, s); err == nil {
		t.Time = parsed
	}
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return t.Time.MarshalJSON()
}

// createdOrEpoch treats a document without a usable creation timestamp as
// created at the Unix epoch, so it sorts after every timestamped document.
func createdOrEpoch(t Timestamp) time.Time {
	if t.IsZero() {
		return epoch
	}
	return t.Time
}
