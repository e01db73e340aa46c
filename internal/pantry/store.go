// Package pantry owns the mutable inventory: batches of items keyed by day.
//
// A Store is not safe for concurrent use. Callers that share one across
// goroutines must serialize access themselves.
package pantry

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/idilsaglam/pantry/internal/model"
)

var (
	ErrDuplicateBatch = errors.New("duplicate batch date")
	ErrDuplicateItem  = errors.New("duplicate or missing item id")
	ErrBadBatchDate   = errors.New("malformed batch date")
)

// Store keeps batches newest first. No batch is ever empty.
type Store struct {
	batches []model.Batch
	newID   func() string
}

// New returns an empty store.
func New() *Store {
	return &Store{newID: uuid.NewString}
}

// Restore rebuilds a store from persisted batches. Empty batches are dropped
// and unknown categories become Other.
func Restore(batches []model.Batch) (*Store, error) {
	s := New()
	dates := make(map[string]bool, len(batches))
	ids := make(map[string]bool)
	for _, b := range batches {
		if _, err := time.Parse(model.DayLayout, b.Date); err != nil {
			return nil, fmt.Errorf("%w: %q", ErrBadBatchDate, b.Date)
		}
		if dates[b.Date] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateBatch, b.Date)
		}
		dates[b.Date] = true
		if len(b.Items) == 0 {
			continue
		}
		nb := model.Batch{Date: b.Date, Items: make([]model.Item, 0, len(b.Items))}
		for _, it := range b.Items {
			if it.ID == "" || ids[it.ID] {
				return nil, fmt.Errorf("%w: %q", ErrDuplicateItem, it.ID)
			}
			ids[it.ID] = true
			it.Category = model.NormalizeCategory(string(it.Category))
			nb.Items = append(nb.Items, cloneItem(it))
		}
		s.batches = append(s.batches, nb)
	}
	return s, nil
}

// AddItem validates the draft and appends it to today's batch, creating
// that batch at the front when needed.
func (s *Store) AddItem(d model.Draft, now time.Time) (model.Item, error) {
	v, err := Validate(d)
	if err != nil {
		return model.Item{}, err
	}
	it := model.Item{
		ID:        s.newID(),
		Name:      v.name,
		Emoji:     v.emoji,
		Category:  v.category,
		Quantity:  v.quantity,
		ExpiresAt: v.expiresAt,
		Note:      v.note,
		AddedAt:   now,
	}
	if it.Emoji == "" {
		it.Emoji = it.Category.Icon()
	}

	key := model.DayKey(now)
	if i := s.batchIndex(key); i >= 0 {
		s.batches[i].Items = append(s.batches[i].Items, it)
	} else {
		s.batches = append([]model.Batch{{Date: key, Items: []model.Item{it}}}, s.batches...)
	}
	return cloneItem(it), nil
}

// RemoveItem deletes the item and, with it, a batch left empty.
// Unknown ids are ignored; the result reports whether anything was removed.
func (s *Store) RemoveItem(id string) bool {
	for bi := range s.batches {
		items := s.batches[bi].Items
		for ii := range items {
			if items[ii].ID != id {
				continue
			}
			if len(items) == 1 {
				s.batches = append(s.batches[:bi], s.batches[bi+1:]...)
				return true
			}
			s.batches[bi].Items = append(items[:ii], items[ii+1:]...)
			return true
		}
	}
	return false
}

// Find looks an item up by id.
func (s *Store) Find(id string) (model.Item, bool) {
	for _, b := range s.batches {
		for _, it := range b.Items {
			if it.ID == id {
				return cloneItem(it), true
			}
		}
	}
	return model.Item{}, false
}

// AllItems flattens batches in store order.
func (s *Store) AllItems() []model.Item {
	out := make([]model.Item, 0, s.TotalCount())
	for _, b := range s.batches {
		for _, it := range b.Items {
			out = append(out, cloneItem(it))
		}
	}
	return out
}

func (s *Store) TotalCount() int {
	n := 0
	for _, b := range s.batches {
		n += len(b.Items)
	}
	return n
}

// Batches returns a copy of the batch list; callers may keep or modify it.
func (s *Store) Batches() []model.Batch {
	out := make([]model.Batch, len(s.batches))
	for i, b := range s.batches {
		items := make([]model.Item, len(b.Items))
		for j, it := range b.Items {
			items[j] = cloneItem(it)
		}
		out[i] = model.Batch{Date: b.Date, Items: items}
	}
	return out
}

func (s *Store) batchIndex(date string) int {
	for i, b := range s.batches {
		if b.Date == date {
			return i
		}
	}
	return -1
}

func cloneItem(it model.Item) model.Item {
	if it.ExpiresAt != nil {
		t := *it.ExpiresAt
		it.ExpiresAt = &t
	}
	return it
}
