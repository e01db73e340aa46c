package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseExpiry reads a user-typed expiration: "" (none), "YYYY-MM-DD",
// "today", "tomorrow" or "+N" days from now. Dates are midnight in now's location.
func ParseExpiry(s string, now time.Time) (*time.Time, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	var t time.Time
	switch {
	case s == "":
		return nil, nil
	case s == "today":
		t = midnight
	case s == "tomorrow":
		t = midnight.AddDate(0, 0, 1)
	case strings.HasPrefix(s, "+"):
		n, err := strconv.Atoi(s[1:])
		if err != nil || n < 0 {
			return nil, fmt.Errorf("bad day offset %q", s)
		}
		t = midnight.AddDate(0, 0, n)
	default:
		d, err := time.ParseInLocation(DayLayout, s, now.Location())
		if err != nil {
			return nil, fmt.Errorf("bad date %q: want YYYY-MM-DD or +N", s)
		}
		t = d
	}
	return &t, nil
}
