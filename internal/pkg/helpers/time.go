package helpers

import (
	"time"
)

// DateLayout is the wire format of all date-only fields.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date string. Inputs are validated at the
// binding layer, so a parse failure here means a programming error.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// ParseDatePtr parses an optional date string, returning nil for nil input.
func ParseDatePtr(value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, *value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ParseDuration parses a duration string, falling back to a default on
// empty or malformed input.
func ParseDuration(value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}
