package utils

import (
	"time"
)

// EventTimeLayout is the outbound timestamp format. The millisecond field is
// rendered as a literal 000: the receiving backend expects millisecond-shaped
// timestamps but the host never supplies sub-second precision.
const eventTimePrefixLayout = "2006-01-02T15:04:05"

// ParseEventTime parses a host-supplied timestamp. A trailing Z is treated as
// a UTC offset; date-only values are accepted at midnight UTC.
func ParseEventTime(value string) (time.Time, error) {
	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05-07:00",
		"2006-01-02 15:04:05",
		"2006-01-02",
	}
	var lastErr error
	for _, layout := range layouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// FormatEventTime renders t in the outbound wire format
// YYYY-MM-DDTHH:MM:SS.000Z, truncating any sub-second precision.
func FormatEventTime(t time.Time) string {
	return t.UTC().Format(eventTimePrefixLayout) + ".000Z"
}

// CalculateAge returns full years between birthDate (YYYY-MM-DD) and today,
// subtracting one when today's (month, day) precedes the birth (month, day).
// The boolean reports whether the birth date could be parsed.
func CalculateAge(birthDate string, today time.Time) (int, bool) {
	if birthDate == "" {
		return 0, false
	}
	dob, err := time.Parse("2006-01-02", birthDate)
	if err != nil {
		return 0, false
	}
	age := today.Year() - dob.Year()
	if today.Month() < dob.Month() || (today.Month() == dob.Month() && today.Day() < dob.Day()) {
		age--
	}
	return age, true
}
