package api

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/idilsaglam/pantry/internal/auth"
	"github.com/idilsaglam/pantry/internal/model"
	"github.com/idilsaglam/pantry/internal/pantry"
)

// Options wires the server to its surroundings.
type Options struct {
	Persist func([]model.Batch) error // called after every mutation; may be nil
	Now     func() time.Time          // defaults to time.Now
	Token   *auth.TokenInfo           // nil disables auth
	Logger  *log.Logger               // defaults to a discarding logger
}

// Server exposes a pantry over HTTP. The store is owned by the server and
// every request touching it runs under mu.
type Server struct {
	mu      sync.Mutex
	store   *pantry.Store
	persist func([]model.Batch) error
	now     func() time.Time
	token   *auth.TokenInfo
	log     *log.Logger
}

func NewServer(store *pantry.Store, opt Options) *Server {
	s := &Server{
		store:   store,
		persist: opt.Persist,
		now:     opt.Now,
		token:   opt.Token,
		log:     opt.Logger,
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.log == nil {
		s.log = log.New(io.Discard, "", 0)
	}
	return s
}

func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.logRequests)
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "OK")
	}).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.Use(s.requireToken)
	api.HandleFunc("/batches", s.listBatches).Methods("GET")
	api.HandleFunc("/items", s.listItems).Methods("GET")
	api.HandleFunc("/items", s.addItem).Methods("POST")
	api.HandleFunc("/items/{id}", s.removeItem).Methods("DELETE")
	api.HandleFunc("/categories", s.listCategories).Methods("GET")
	api.HandleFunc("/expiring", s.listExpiring).Methods("GET")
	return r
}

func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.token != nil && !s.token.Verify(r.Header.Get("Authorization")) {
			writeError(w, http.StatusUnauthorized, "unauthorized", "")
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Printf("%s %s %d %s", r.Method, r.URL.Path, rec.status, time.Since(start).Round(time.Microsecond))
	})
}
