// internal/httpserver/server.go
//
// HTTP server wiring for the spelling game backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Word catalog endpoints: GET /words, GET /words/{id}.
//   - Roster endpoints: mounted under /teachers (see routes_roster.go).
//   - Session endpoints: mounted under /session (see routes_session.go).
//
// Notes:
//   - CORS is origin-aware and credentials-enabled.
//   - The server stands in for the original on-device screens: it gathers
//     nothing itself, it just relays engine effects as JSON for the caller
//     to schedule.

package httpserver

import (
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/hmongspell/go-server/internal/roster"
	"github.com/hmongspell/go-server/internal/store"
	"github.com/hmongspell/go-server/internal/words"
)

// Server bundles router, word catalog, roster store, and session registry.
type Server struct {
	r        *chi.Mux
	catalog  *words.Catalog
	roster   *roster.Store
	sessions store.Store
}

// New constructs a Server, installs middleware, and registers routes.
func New(catalog *words.Catalog, ros *roster.Store, sessions store.Store) *Server {
	s := &Server{r: chi.NewRouter(), catalog: catalog, roster: ros, sessions: sessions}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(corsFromEnv)                     // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"spelling-go","endpoints":["/health","/words","/teachers","POST /session/new"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	// Debug: catalog size
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]int{"words": catalog.Len()})
	})

	// Word catalog (read-only)
	s.r.Get("/words", s.handleListWords)
	s.r.Get("/words/{wordID}", s.handleGetWord)

	// Roster CRUD
	s.mountRosterRoutes()

	// Session engine
	s.mountSessionRoutes()

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFromEnv enables credentialed CORS for a single origin.
// Uses CLIENT_ORIGIN env var; defaults to http://localhost:5173.
func corsFromEnv(next http.Handler) http.Handler {
	origin := os.Getenv("CLIENT_ORIGIN")
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------ WORDS --------------------------------------

// wordRes is the per-language view of a catalog entry.
type wordRes struct {
	ID       string `json:"id"`
	Spelling string `json:"spelling"`
	Slots    int    `json:"slots"`
}

// queryLanguage reads ?lang=; the game defaults to Hmong like the original.
func queryLanguage(r *http.Request) (words.Language, bool) {
	q := r.URL.Query().Get("lang")
	if q == "" {
		return words.Hmong, true
	}
	return words.ParseLanguage(q)
}

func (s *Server) handleListWords(w http.ResponseWriter, r *http.Request) {
	lang, ok := queryLanguage(r)
	if !ok {
		http.Error(w, `{"error":"unknown_language"}`, http.StatusBadRequest)
		return
	}
	all := s.catalog.All()
	out := make([]wordRes, 0, len(all))
	for _, wd := range all {
		out = append(out, wordRes{ID: wd.ID, Spelling: wd.Spelling(lang), Slots: wd.Slots(lang)})
	}
	_ = json.NewEncoder(w).Encode(out)
}

func (s *Server) handleGetWord(w http.ResponseWriter, r *http.Request) {
	lang, ok := queryLanguage(r)
	if !ok {
		http.Error(w, `{"error":"unknown_language"}`, http.StatusBadRequest)
		return
	}
	wd, ok := s.catalog.Find(chi.URLParam(r, "wordID"))
	if !ok {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	_ = json.NewEncoder(w).Encode(wordRes{ID: wd.ID, Spelling: wd.Spelling(lang), Slots: wd.Slots(lang)})
}
