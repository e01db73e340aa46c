// Package expiry classifies how urgently a pantry item needs eating.
//
// Day counts are taken between calendar days in the location of the
// supplied now, so the time of day never shifts an item into another bucket.
package expiry

import (
	"fmt"
	"math"
	"time"
)

// NoExpiration is the day count reported for items without a date.
const NoExpiration = math.MaxInt32

// Severity orders expiration urgency.
type Severity int

const (
	None Severity = iota
	Week
	Soon
	Tomorrow
	Today
	Expired
)

func (s Severity) String() string {
	switch s {
	case None:
		return "none"
	case Week:
		return "week"
	case Soon:
		return "soon"
	case Tomorrow:
		return "tomorrow"
	case Today:
		return "today"
	case Expired:
		return "expired"
	default:
		return "unknown"
	}
}

// MarshalText lets severities appear by name in JSON.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Severity) UnmarshalText(b []byte) error {
	for _, v := range Severities() {
		if v.String() == string(b) {
			*s = v
			return nil
		}
	}
	return fmt.Errorf("unknown severity %q", b)
}

// Severities lists every severity from most to least urgent.
func Severities() []Severity {
	return []Severity{Expired, Today, Tomorrow, Soon, Week, None}
}

// Status is the badge data for one item.
type Status struct {
	DaysUntil int      `json:"days_until"`
	Label     string   `json:"label"`
	Severity  Severity `json:"severity"`
}

// Tracked reports whether the item had an expiration date at all.
func (s Status) Tracked() bool { return s.DaysUntil != NoExpiration }

// DaysUntil counts calendar days from now to date; NoExpiration when date is nil.
func DaysUntil(date *time.Time, now time.Time) int {
	if date == nil {
		return NoExpiration
	}
	loc := now.Location()
	d := date.In(loc)
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	to := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	return int((to.Unix() - from.Unix()) / 86400)
}

// Classify derives the status of an expiration date relative to now.
func Classify(date *time.Time, now time.Time) Status {
	days := DaysUntil(date, now)
	if days == NoExpiration {
		return Status{DaysUntil: days, Label: "No date", Severity: None}
	}
	sev := severityFor(days)
	return Status{DaysUntil: days, Label: label(sev, days), Severity: sev}
}

func severityFor(days int) Severity {
	switch {
	case days < 0:
		return Expired
	case days == 0:
		return Today
	case days == 1:
		return Tomorrow
	case days <= 3:
		return Soon
	case days <= 7:
		return Week
	default:
		return None
	}
}

func label(sev Severity, days int) string {
	switch sev {
	case Expired:
		return "Expired"
	case Today:
		return "Expires today"
	case Tomorrow:
		return "Expires tomorrow"
	case Soon:
		return fmt.Sprintf("Expires in %d days", days)
	default:
		return fmt.Sprintf("%d days left", days)
	}
}
