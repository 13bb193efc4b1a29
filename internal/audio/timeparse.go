package audio

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidTimeFormat is returned for time strings that are not plain
// seconds, MM:SS or HH:MM:SS.
var ErrInvalidTimeFormat = errors.New("invalid time format")

// ParseClock converts a human time string into seconds. Accepted forms are
// plain seconds ("90", "30.5"), "MM:SS" and "HH:MM:SS". Minute and second
// components must be below 60.
func ParseClock(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty string", ErrInvalidTimeFormat)
	}

	if !strings.Contains(s, ":") {
		secs, err := strconv.ParseFloat(s, 64)
		if err != nil || secs < 0 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
		}
		return secs, nil
	}

	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}

	// the last component is seconds and may carry a fraction
	secs, err := strconv.ParseFloat(parts[len(parts)-1], 64)
	if err != nil || secs < 0 || secs >= 60 {
		return 0, fmt.Errorf("%w: %q (seconds must be 0-59)", ErrInvalidTimeFormat, s)
	}

	mins, err := strconv.Atoi(parts[len(parts)-2])
	if err != nil || mins < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}

	var hours int
	if len(parts) == 3 {
		hours, err = strconv.Atoi(parts[0])
		if err != nil || hours < 0 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
		}
		if mins >= 60 {
			return 0, fmt.Errorf("%w: %q (minutes must be 0-59)", ErrInvalidTimeFormat, s)
		}
	} else if mins >= 60 {
		return 0, fmt.Errorf("%w: %q (minutes must be 0-59)", ErrInvalidTimeFormat, s)
	}

	return float64(hours)*3600 + float64(mins)*60 + secs, nil
}

// FormatClock renders seconds as "HH:MM:SS", truncating fractions.
func FormatClock(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}
