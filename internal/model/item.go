package model

import (
	"strings"
	"time"
)

// Item is a single thing sitting in the pantry.
// AddedAt is set once by the store and never changes afterwards.
type Item struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Emoji     string     `json:"emoji"`
	Category  Category   `json:"category"`
	Quantity  string     `json:"quantity,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	Note      string     `json:"note,omitempty"`
	AddedAt   time.Time  `json:"added_at"`
}

// Glyph returns the item emoji, falling back to the category icon.
func (it Item) Glyph() string {
	if strings.TrimSpace(it.Emoji) != "" {
		return it.Emoji
	}
	return NormalizeCategory(string(it.Category)).Icon()
}

// Batch groups the items that entered the pantry on one calendar day.
type Batch struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Items []Item `json:"items"`
}

// Label is "Today", "Yesterday" or a short formatted date, relative to now.
func (b Batch) Label(now time.Time) string {
	switch b.Date {
	case DayKey(now):
		return "Today"
	case DayKey(now.AddDate(0, 0, -1)):
		return "Yesterday"
	}
	t, err := time.ParseInLocation(DayLayout, b.Date, now.Location())
	if err != nil {
		return b.Date
	}
	return t.Format("Mon, Jan 2 2006")
}

// Draft is what a form hands over before validation.
// Category is kept as raw text so unknown values can be rejected.
type Draft struct {
	Name      string     `json:"name"`
	Emoji     string     `json:"emoji,omitempty"`
	Category  string     `json:"category"`
	Quantity  string     `json:"quantity,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	Note      string     `json:"note,omitempty"`
}

// DayLayout is the key format of a batch date.
const DayLayout = "2006-01-02"

// DayKey returns the calendar day of t in its own location.
func DayKey(t time.Time) string {
	return t.Format(DayLayout)
}
