// Package views derives read-only projections of the pantry.
// Nothing here is cached; every call recomputes from the items it is given.
package views

import (
	"sort"
	"time"

	"github.com/idilsaglam/pantry/internal/expiry"
	"github.com/idilsaglam/pantry/internal/model"
)

// CategoryGroup is one section of the category view.
type CategoryGroup struct {
	Category model.Category `json:"category"`
	Items    []model.Item   `json:"items"`
}

// ByCategory groups items by category. Groups appear in the order their
// category is first seen; unknown categories land in Other.
func ByCategory(items []model.Item) []CategoryGroup {
	var groups []CategoryGroup
	index := make(map[model.Category]int)
	for _, it := range items {
		c := model.NormalizeCategory(string(it.Category))
		i, ok := index[c]
		if !ok {
			i = len(groups)
			index[c] = i
			groups = append(groups, CategoryGroup{Category: c})
		}
		groups[i].Items = append(groups[i].Items, it)
	}
	return groups
}

// Expiring pairs an item with its status.
type Expiring struct {
	Item   model.Item    `json:"item"`
	Status expiry.Status `json:"status"`
}

// ExpiringWithin keeps items that expire between today and days from now,
// soonest first. Expired and undated items are left out.
func ExpiringWithin(items []model.Item, days int, now time.Time) []Expiring {
	out := []Expiring{}
	for _, it := range items {
		st := expiry.Classify(it.ExpiresAt, now)
		if st.Tracked() && st.DaysUntil >= 0 && st.DaysUntil <= days {
			out = append(out, Expiring{Item: it, Status: st})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Status.DaysUntil < out[j].Status.DaysUntil
	})
	return out
}

// RecentFirst orders items by AddedAt, newest first. Ties keep input order.
func RecentFirst(items []model.Item) []model.Item {
	out := make([]model.Item, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AddedAt.After(out[j].AddedAt)
	})
	return out
}

// FlattenAll lists items batch by batch, keeping order within each batch.
func FlattenAll(batches []model.Batch) []model.Item {
	n := 0
	for _, b := range batches {
		n += len(b.Items)
	}
	out := make([]model.Item, 0, n)
	for _, b := range batches {
		out = append(out, b.Items...)
	}
	return out
}

// SeverityCounts tallies items per expiration severity.
func SeverityCounts(items []model.Item, now time.Time) map[expiry.Severity]int {
	counts := make(map[expiry.Severity]int, len(expiry.Severities()))
	for _, it := range items {
		counts[expiry.Classify(it.ExpiresAt, now).Severity]++
	}
	return counts
}
