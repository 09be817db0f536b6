// Package timefmt provides wall-clock HH:MM arithmetic for schedule
// calculation. Times are clock labels within a single day, not instants:
// arithmetic is minute-rounded and wraps modulo 24 hours.
package timefmt

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var clockPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)

// Valid reports whether s is a parseable HH:MM clock value.
func Valid(s string) bool {
	h, m, err := split(s)
	return err == nil && h >= 0 && h <= 23 && m >= 0 && m <= 59
}

// AddHours adds a fractional hour count to an HH:MM clock value.
// The addition is rounded to whole minutes and wraps at 24:00.
// Invalid input is returned unchanged.
func AddHours(clock string, hours float64) string {
	if clock == "" || hours == 0 {
		return clock
	}

	h, m, err := split(clock)
	if err != nil {
		return clock
	}

	total := h*60 + m + int(hours*60+0.5)
	total %= 24 * 60
	if total < 0 {
		total += 24 * 60
	}

	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// Extract pulls an HH:MM clock value out of s, which may be an RFC3339
// timestamp or already a bare clock string. Returns "" when neither.
func Extract(s string) string {
	if s == "" {
		return ""
	}

	if i := strings.IndexByte(s, 'T'); i >= 0 && len(s) >= i+6 {
		candidate := s[i+1 : i+6]
		if Valid(candidate) {
			return candidate
		}
		return ""
	}

	if clockPattern.MatchString(s) {
		h, m, _ := split(s)
		return fmt.Sprintf("%02d:%02d", h, m)
	}

	return ""
}

// Minutes converts an HH:MM clock value to minutes since midnight.
// Returns -1 for invalid input so callers can treat it as "unknown".
func Minutes(clock string) int {
	h, m, err := split(clock)
	if err != nil {
		return -1
	}
	return h*60 + m
}

// Format12Hour renders an HH:MM clock value as "h:MM AM/PM".
func Format12Hour(clock string) string {
	h, m, err := split(clock)
	if err != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return "Invalid Time"
	}

	period := "AM"
	if h >= 12 {
		period = "PM"
	}

	h12 := h % 12
	if h12 == 0 {
		h12 = 12
	}

	return fmt.Sprintf("%d:%02d %s", h12, m, period)
}

// Window renders a "[9:00 AM - 11:00 AM]" range for a start clock and a
// duration in hours.
func Window(start string, hours float64) string {
	return fmt.Sprintf("[%s - %s]", Format12Hour(start), Format12Hour(AddHours(start, hours)))
}

func split(clock string) (int, int, error) {
	match := clockPattern.FindStringSubmatch(clock)
	if match == nil {
		return 0, 0, fmt.Errorf("invalid clock value %q", clock)
	}
	h, _ := strconv.Atoi(match[1])
	m, _ := strconv.Atoi(match[2])
	return h, m, nil
}
