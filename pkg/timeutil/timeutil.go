package timeutil

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidTimecode is the kind wrapped by every FormatError.
var ErrInvalidTimecode = errors.New("invalid timecode format")

// FormatError reports a timecode that is neither mm:ss nor hh:mm:ss, or has a non-numeric field.
type FormatError struct {
	Input  string
	Reason string
}

func (e *FormatError) Error() string {
	if e == nil {
		return ""
	}
	if e.Reason == "" {
		return fmt.Sprintf("%s: '%s'", ErrInvalidTimecode.Error(), e.Input)
	}
	return fmt.Sprintf("%s: '%s' (%s)", ErrInvalidTimecode.Error(), e.Input, e.Reason)
}

func (e *FormatError) Unwrap() error { return ErrInvalidTimecode }

// FormatTime formats seconds as H:MM:SS (e.g. 0:01:30, 1:11:22).
func FormatTime(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	totalSeconds := int(seconds)
	hours := totalSeconds / 3600
	mins := (totalSeconds % 3600) / 60
	secs := totalSeconds % 60
	return fmt.Sprintf("%d:%02d:%02d", hours, mins, secs)
}

// StripBrackets trims surrounding whitespace and any leading/trailing '[' or ']'.
func StripBrackets(raw string) string {
	return strings.Trim(strings.TrimSpace(raw), "[]")
}

// Normalize converts a timecode to its canonical minutes:seconds form.
// Two fields pass through unchanged; three fields fold hours into minutes,
// so "01:02:03" becomes "62:03".
func Normalize(raw string) (string, error) {
	tc := StripBrackets(raw)
	parts := strings.Split(tc, ":")

	switch len(parts) {
	case 2:
		if _, err := field(raw, parts[0]); err != nil {
			return "", err
		}
		if _, err := field(raw, parts[1]); err != nil {
			return "", err
		}
		return tc, nil
	case 3:
		hours, err := field(raw, parts[0])
		if err != nil {
			return "", err
		}
		minutes, err := field(raw, parts[1])
		if err != nil {
			return "", err
		}
		if _, err := field(raw, parts[2]); err != nil {
			return "", err
		}
		if hours > (math.MaxInt-minutes)/60 {
			return "", &FormatError{Input: raw, Reason: "value out of range"}
		}
		return fmt.Sprintf("%02d:%s", hours*60+minutes, parts[2]), nil
	}

	return "", &FormatError{Input: raw, Reason: fmt.Sprintf("expected 2 or 3 fields, got %d", len(parts))}
}

// ToSeconds parses a timecode in MM:SS or HH:MM:SS form, optionally wrapped in
// brackets, and returns the total number of seconds.
func ToSeconds(raw string) (int, error) {
	mmss, err := Normalize(raw)
	if err != nil {
		return 0, err
	}

	parts := strings.Split(mmss, ":")
	minutes, err := field(raw, parts[0])
	if err != nil {
		return 0, err
	}
	seconds, err := field(raw, parts[1])
	if err != nil {
		return 0, err
	}
	if minutes > (math.MaxInt-seconds)/60 {
		return 0, &FormatError{Input: raw, Reason: "value out of range"}
	}
	return minutes*60 + seconds, nil
}

// field parses one colon-separated component. Only unsigned decimal digits are accepted.
func field(raw, s string) (int, error) {
	if s == "" {
		return 0, &FormatError{Input: raw, Reason: "empty field"}
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, &FormatError{Input: raw, Reason: fmt.Sprintf("non-numeric field '%s'", s)}
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, &FormatError{Input: raw, Reason: err.Error()}
	}
	return n, nil
}
