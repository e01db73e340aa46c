package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/idilsaglam/pantry/internal/expiry"
	"github.com/idilsaglam/pantry/internal/model"
	"github.com/idilsaglam/pantry/internal/pantry"
	"github.com/idilsaglam/pantry/internal/views"
)

const defaultExpiringDays = 3

type itemView struct {
	model.Item
	Status expiry.Status `json:"status"`
}

type batchView struct {
	Date  string     `json:"date"`
	Label string     `json:"label"`
	Items []itemView `json:"items"`
}

type categoryView struct {
	Category model.Category `json:"category"`
	Label    string         `json:"label"`
	Icon     string         `json:"icon"`
	Items    []itemView     `json:"items"`
}

type errorBody struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"`
}

func toViews(items []model.Item, now time.Time) []itemView {
	out := make([]itemView, 0, len(items))
	for _, it := range items {
		out = append(out, itemView{Item: it, Status: expiry.Classify(it.ExpiresAt, now)})
	}
	return out
}

// listBatches returns the batches newest first, each with a display label.
func (s *Server) listBatches(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	batches := s.store.Batches()
	s.mu.Unlock()

	now := s.now()
	out := make([]batchView, 0, len(batches))
	for _, b := range batches {
		out = append(out, batchView{Date: b.Date, Label: b.Label(now), Items: toViews(b.Items, now)})
	}
	writeJSON(w, http.StatusOK, out)
}

// listItems returns every item, in batch order or newest first with ?view=recent.
func (s *Server) listItems(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	items := s.store.AllItems()
	s.mu.Unlock()

	switch r.URL.Query().Get("view") {
	case "", "all":
	case "recent":
		items = views.RecentFirst(items)
	default:
		writeError(w, http.StatusBadRequest, "unknown view", "")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"count": len(items),
		"items": toViews(items, s.now()),
	})
}

func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	items := s.store.AllItems()
	s.mu.Unlock()

	now := s.now()
	groups := views.ByCategory(items)
	out := make([]categoryView, 0, len(groups))
	for _, g := range groups {
		out = append(out, categoryView{
			Category: g.Category,
			Label:    g.Category.Label(),
			Icon:     g.Category.Icon(),
			Items:    toViews(g.Items, now),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) listExpiring(w http.ResponseWriter, r *http.Request) {
	days := defaultExpiringDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "days must be a non-negative integer", "")
			return
		}
		days = n
	}

	s.mu.Lock()
	items := s.store.AllItems()
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, views.ExpiringWithin(items, days, s.now()))
}

// addItem validates a draft and stores it in today's batch.
func (s *Server) addItem(w http.ResponseWriter, r *http.Request) {
	var d model.Draft
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json", "")
		return
	}

	now := s.now()
	s.mu.Lock()
	it, err := s.store.AddItem(d, now)
	if err == nil {
		err = s.save()
	}
	s.mu.Unlock()

	var ve pantry.ValidationError
	switch {
	case errors.As(err, &ve):
		writeError(w, http.StatusUnprocessableEntity, ve.Error(), ve.Reason.String())
		return
	case err != nil:
		s.log.Printf("save: %v", err)
		writeError(w, http.StatusInternalServerError, "could not save pantry", "")
		return
	}
	writeJSON(w, http.StatusCreated, itemView{Item: it, Status: expiry.Classify(it.ExpiresAt, now)})
}

// removeItem always answers 204; deleting an unknown id is not an error.
func (s *Server) removeItem(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	s.mu.Lock()
	var err error
	if s.store.RemoveItem(id) {
		err = s.save()
	}
	s.mu.Unlock()

	if err != nil {
		s.log.Printf("save: %v", err)
		writeError(w, http.StatusInternalServerError, "could not save pantry", "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// save must be called with mu held.
func (s *Server) save() error {
	if s.persist == nil {
		return nil
	}
	return s.persist(s.store.Batches())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg, reason string) {
	writeJSON(w, status, errorBody{Error: msg, Reason: reason})
}
