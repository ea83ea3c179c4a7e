package helpers

import (
	"strings"
	"time"
)

// ParseCheckbox coerces a checkbox form value to a bool. The form widget
// submits "y" when checked and omits the field when unchecked, so only the
// known truthy spellings map to true and anything unrecognized defaults to
// false.
func ParseCheckbox(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "y", "yes", "on", "true", "1":
		return true
	default:
		return false
	}
}

const startTimeLayout = "2006-01-02 15:04:05"

// ParseStartTime accepts the datetime format the show form submits, falling
// back to RFC3339 for programmatic callers.
func ParseStartTime(value string) (time.Time, error) {
	if t, err := time.Parse(startTimeLayout, value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
