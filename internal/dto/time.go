package dto

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Timestamp parses JSON as either date-only ("2006-01-02") or RFC3339.
// Date-only is stored as start of that day in UTC.
type Timestamp struct{ t *time.Time }

func (d *Timestamp) UnmarshalJSON(data []byte) error {
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil || strings.TrimSpace(*raw) == "" {
		d.t = nil
		return nil
	}
	s := strings.TrimSpace(*raw)
	layouts := []string{
		"2006-01-02",
		time.RFC3339,
		time.RFC3339Nano,
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			parsed = parsed.UTC()
			d.t = &parsed
			return nil
		}
	}
	return fmt.Errorf("use date (YYYY-MM-DD) or RFC3339 datetime, got %q", s)
}

// Ptr returns *time.Time for use in service/domain; nil when absent.
func (d Timestamp) Ptr() *time.Time { return d.t }

// Time returns the zero time when absent.
func (d Timestamp) Time() time.Time {
	if d.t == nil {
		return time.Time{}
	}
	return *d.t
}

// NewTimestamp wraps t; used by tests and clients building requests.
func NewTimestamp(t time.Time) Timestamp { return Timestamp{t: &t} }

func (d Timestamp) MarshalJSON() ([]byte, error) {
	if d.t == nil {
		return []byte("null"), nil
	}
	return json.Marshal(d.t.Format(time.RFC3339))
}
