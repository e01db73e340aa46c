package pantry

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/idilsaglam/pantry/internal/model"
)

func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("item-%d", n)
	}
}

func newTestStore() *Store {
	s := New()
	s.newID = seqIDs()
	return s
}

func TestAddItem_EmptyStore(t *testing.T) {
	s := New()
	now := time.Date(2024, 11, 14, 10, 0, 0, 0, time.UTC)

	it, err := s.AddItem(model.Draft{Name: "Eggs", Category: "dairy"}, now)
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if it.ID == "" {
		t.Errorf("Expected generated id")
	}
	if !it.AddedAt.Equal(now) {
		t.Errorf("Expected addedAt %v, got %v", now, it.AddedAt)
	}

	batches := s.Batches()
	if len(batches) != 1 {
		t.Fatalf("Expected 1 batch, got %d", len(batches))
	}
	if batches[0].Date != "2024-11-14" {
		t.Errorf("Expected batch 2024-11-14, got %s", batches[0].Date)
	}
	if len(batches[0].Items) != 1 || batches[0].Items[0].Name != "Eggs" {
		t.Errorf("Expected single item Eggs, got %+v", batches[0].Items)
	}
	if s.TotalCount() != 1 {
		t.Errorf("Expected total count 1, got %d", s.TotalCount())
	}
}

func TestAddItem_AppendsToTodayAndPrependsNewDay(t *testing.T) {
	s := newTestStore()
	day1 := time.Date(2024, 11, 13, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 11, 14, 9, 0, 0, 0, time.UTC)

	mustAdd(t, s, "Milk", "dairy", day1)
	mustAdd(t, s, "Bread", "grains", day2)
	mustAdd(t, s, "Apples", "fruits", day2.Add(time.Hour))

	batches := s.Batches()
	if len(batches) != 2 {
		t.Fatalf("Expected 2 batches, got %d", len(batches))
	}
	if batches[0].Date != "2024-11-14" || batches[1].Date != "2024-11-13" {
		t.Errorf("Expected newest batch first, got %s, %s", batches[0].Date, batches[1].Date)
	}
	if got := names(batches[0].Items); got != "Bread,Apples" {
		t.Errorf("Expected insertion order Bread,Apples, got %s", got)
	}
}

func TestAddItem_NormalizesDraft(t *testing.T) {
	s := newTestStore()
	exp := time.Date(2024, 11, 20, 0, 0, 0, 0, time.UTC)
	it, err := s.AddItem(model.Draft{
		Name:      "  Yogurt ",
		Category:  " Dairy",
		Quantity:  " 2 cups ",
		Note:      " greek ",
		ExpiresAt: &exp,
	}, time.Date(2024, 11, 14, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if it.Name != "Yogurt" || it.Quantity != "2 cups" || it.Note != "greek" {
		t.Errorf("Expected trimmed fields, got %+v", it)
	}
	if it.Category != model.Dairy {
		t.Errorf("Expected dairy, got %q", it.Category)
	}
	if it.Emoji != model.Dairy.Icon() {
		t.Errorf("Expected default emoji %q, got %q", model.Dairy.Icon(), it.Emoji)
	}
	if it.ExpiresAt == nil || !it.ExpiresAt.Equal(exp) {
		t.Errorf("Expected expiration %v, got %v", exp, it.ExpiresAt)
	}
	exp = exp.AddDate(1, 0, 0)
	got, _ := s.Find(it.ID)
	if got.ExpiresAt.Year() != 2024 {
		t.Errorf("Store must not alias the caller's expiration date")
	}
}

func TestAddItem_ValidationGate(t *testing.T) {
	now := time.Date(2024, 11, 14, 0, 0, 0, 0, time.UTC)
	testCases := []struct {
		name  string
		draft model.Draft
		want  error
	}{
		{"empty name", model.Draft{Name: "", Category: "dairy"}, ErrMissingName},
		{"blank name", model.Draft{Name: "   \t", Category: "dairy"}, ErrMissingName},
		{"no category", model.Draft{Name: "Eggs"}, ErrMissingCategory},
		{"unknown category", model.Draft{Name: "Eggs", Category: "candy"}, ErrMissingCategory},
		{"both missing", model.Draft{}, ErrMissingName},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestStore()
			mustAdd(t, s, "Milk", "dairy", now)
			before := s.Batches()

			_, err := s.AddItem(tc.draft, now)
			if !errors.Is(err, tc.want) {
				t.Fatalf("Expected %v, got %v", tc.want, err)
			}
			var ve ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("Expected ValidationError, got %T", err)
			}
			if s.TotalCount() != 1 || len(s.Batches()) != len(before) {
				t.Errorf("Rejected draft must not mutate the store")
			}
		})
	}
}

func TestAddItem_UniqueIDs(t *testing.T) {
	s := New()
	now := time.Date(2024, 11, 14, 0, 0, 0, 0, time.UTC)
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		it := mustAdd(t, s, fmt.Sprintf("item %d", i), "snacks", now)
		if seen[it.ID] {
			t.Fatalf("Duplicate id %s", it.ID)
		}
		seen[it.ID] = true
	}
}

func TestRemoveItem_PrunesBatch(t *testing.T) {
	s, err := Restore([]model.Batch{
		{Date: "2024-11-10", Items: []model.Item{
			{ID: "A", Name: "Apples", Category: model.Fruits},
			{ID: "B", Name: "Bread", Category: model.Grains},
		}},
	})
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}

	if !s.RemoveItem("A") {
		t.Fatalf("Expected A to be removed")
	}
	batches := s.Batches()
	if len(batches) != 1 || batches[0].Date != "2024-11-10" {
		t.Fatalf("Expected batch 2024-11-10 to remain, got %+v", batches)
	}
	if got := names(batches[0].Items); got != "Bread" {
		t.Errorf("Expected only Bread, got %s", got)
	}

	if !s.RemoveItem("B") {
		t.Fatalf("Expected B to be removed")
	}
	if len(s.Batches()) != 0 {
		t.Errorf("Expected zero batches, got %d", len(s.Batches()))
	}
	if s.TotalCount() != 0 || len(s.AllItems()) != 0 {
		t.Errorf("Expected empty store")
	}
}

func TestRemoveItem_SingleItemBatchAmongOthers(t *testing.T) {
	s := newTestStore()
	old := time.Date(2024, 11, 12, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, 11, 14, 0, 0, 0, 0, time.UTC)
	lone := mustAdd(t, s, "Ham", "meat", old)
	mustAdd(t, s, "Milk", "dairy", now)
	mustAdd(t, s, "Juice", "beverages", now)

	s.RemoveItem(lone.ID)
	batches := s.Batches()
	if len(batches) != 1 || batches[0].Date != "2024-11-14" {
		t.Errorf("Expected only today's batch, got %+v", batches)
	}
	for _, it := range s.AllItems() {
		if it.ID == lone.ID {
			t.Errorf("Removed item still listed")
		}
	}
}

func TestRemoveItem_Idempotent(t *testing.T) {
	s := newTestStore()
	now := time.Date(2024, 11, 14, 0, 0, 0, 0, time.UTC)
	a := mustAdd(t, s, "Milk", "dairy", now)
	mustAdd(t, s, "Rice", "grains", now)

	if !s.RemoveItem(a.ID) {
		t.Fatalf("Expected first removal to succeed")
	}
	once := s.Batches()
	if s.RemoveItem(a.ID) {
		t.Errorf("Expected second removal to be a no-op")
	}
	twice := s.Batches()
	if len(once) != len(twice) || names(once[0].Items) != names(twice[0].Items) {
		t.Errorf("Expected identical state after repeated removal")
	}
	if s.RemoveItem("does-not-exist") {
		t.Errorf("Expected unknown id to be ignored")
	}
}

func TestAllItems_FlattensInOrder(t *testing.T) {
	s, err := Restore([]model.Batch{
		{Date: "2024-11-14", Items: []model.Item{{ID: "1", Name: "a"}, {ID: "2", Name: "b"}}},
		{Date: "2024-11-12", Items: []model.Item{{ID: "3", Name: "c"}}},
	})
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if got := names(s.AllItems()); got != "a,b,c" {
		t.Errorf("Expected a,b,c, got %s", got)
	}
	if s.TotalCount() != 3 {
		t.Errorf("Expected 3 items, got %d", s.TotalCount())
	}
}

func TestBatches_ReturnsCopy(t *testing.T) {
	s := newTestStore()
	mustAdd(t, s, "Milk", "dairy", time.Date(2024, 11, 14, 0, 0, 0, 0, time.UTC))
	b := s.Batches()
	b[0].Items[0].Name = "changed"
	b[0].Items = nil
	if s.AllItems()[0].Name != "Milk" {
		t.Errorf("Mutating a snapshot must not touch the store")
	}
}

func TestRestore(t *testing.T) {
	testCases := []struct {
		name    string
		batches []model.Batch
		wantErr error
	}{
		{"duplicate date", []model.Batch{
			{Date: "2024-11-14", Items: []model.Item{{ID: "1", Name: "a"}}},
			{Date: "2024-11-14", Items: []model.Item{{ID: "2", Name: "b"}}},
		}, ErrDuplicateBatch},
		{"duplicate id", []model.Batch{
			{Date: "2024-11-14", Items: []model.Item{{ID: "1", Name: "a"}}},
			{Date: "2024-11-13", Items: []model.Item{{ID: "1", Name: "b"}}},
		}, ErrDuplicateItem},
		{"missing id", []model.Batch{
			{Date: "2024-11-14", Items: []model.Item{{Name: "a"}}},
		}, ErrDuplicateItem},
		{"bad date", []model.Batch{
			{Date: "14/11/2024", Items: []model.Item{{ID: "1", Name: "a"}}},
		}, ErrBadBatchDate},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Restore(tc.batches); !errors.Is(err, tc.wantErr) {
				t.Errorf("Expected %v, got %v", tc.wantErr, err)
			}
		})
	}

	s, err := Restore([]model.Batch{
		{Date: "2024-11-14"},
		{Date: "2024-11-13", Items: []model.Item{{ID: "1", Name: "a", Category: "candy"}}},
	})
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if len(s.Batches()) != 1 {
		t.Errorf("Expected empty batch to be dropped")
	}
	if it, _ := s.Find("1"); it.Category != model.Other {
		t.Errorf("Expected unknown category to normalize to other, got %q", it.Category)
	}
}

func mustAdd(t *testing.T, s *Store, name, cat string, now time.Time) model.Item {
	t.Helper()
	it, err := s.AddItem(model.Draft{Name: name, Category: cat}, now)
	if err != nil {
		t.Fatalf("AddItem(%s) failed: %v", name, err)
	}
	return it
}

func names(items []model.Item) string {
	out := ""
	for i, it := range items {
		if i > 0 {
			out += ","
		}
		out += it.Name
	}
	return out
}
