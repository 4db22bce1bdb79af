// internal/httpserver/routes_session.go
//
// Session endpoints: start a spelling run for a (teacher, student, language),
// submit slot contents, skip the current word, or abandon the session.
// Effects come back as an ordered JSON list of (delayMs, kind, payload)
// notifications; the caller owns the actual scheduling.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/hmongspell/go-server/internal/game"
	"github.com/hmongspell/go-server/internal/words"
)

// newSessionReq/Res payloads for POST /session/new.
type newSessionReq struct {
	TeacherIndex int    `json:"teacherIndex"`
	StudentIndex int    `json:"studentIndex"`
	Language     string `json:"language"` // "English" | "Hmong"
}
type sessionRes struct {
	SessionID string        `json:"sessionId"`
	State     game.State    `json:"state"`
	Effects   []game.Effect `json:"effects"`
}

// attemptReq payload for POST /session/attempt. Slots is the concatenation
// of every slot's current letter, with a blank placeholder per empty slot.
type attemptReq struct {
	SessionID string `json:"sessionId"`
	Slots     string `json:"slots"`
}

// skipReq payload for POST /session/skip.
type skipReq struct {
	SessionID string `json:"sessionId"`
}

func (s *Server) mountSessionRoutes() {
	s.r.Post("/session/new", s.handleNewSession)
	s.r.Post("/session/attempt", s.handleAttempt)
	s.r.Post("/session/skip", s.handleSkip)
	s.r.Delete("/session/{sessionID}", s.handleAbandonSession)
}

// handleNewSession resolves the selected student, opens a session engine on
// it, and registers the engine for follow-up calls.
func (s *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	var req newSessionReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	lang, ok := words.ParseLanguage(req.Language)
	if !ok {
		http.Error(w, `{"error":"unknown_language"}`, http.StatusBadRequest)
		return
	}
	student, err := s.roster.Student(req.TeacherIndex, req.StudentIndex)
	if err != nil {
		s.rosterError(w, err)
		return
	}

	sess, fx, err := game.New(s.catalog, student, lang)
	if err != nil {
		if errors.Is(err, game.ErrEmptyPool) {
			http.Error(w, `{"error":"empty_catalog"}`, http.StatusConflict)
			return
		}
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
		return
	}
	if err := s.sessions.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save session")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	log.Info().Str("sessionId", sess.ID).Str("student", student.Name).
		Str("language", string(lang)).Msg("session started")
	_ = json.NewEncoder(w).Encode(sessionRes{SessionID: sess.ID, State: sess.State(), Effects: fx})
}

// handleAttempt forwards gathered slot contents into the engine.
func (s *Server) handleAttempt(w http.ResponseWriter, r *http.Request) {
	var req attemptReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	sess, err := s.sessions.Get(r.Context(), req.SessionID)
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	fx, err := sess.SubmitAttempt(req.Slots)
	if err != nil {
		s.sessionError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(sessionRes{SessionID: sess.ID, State: sess.State(), Effects: fx})
}

// handleSkip advances past the current word without a correctness check.
func (s *Server) handleSkip(w http.ResponseWriter, r *http.Request) {
	var req skipReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	sess, err := s.sessions.Get(r.Context(), req.SessionID)
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	fx, err := sess.Skip()
	if err != nil {
		s.sessionError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(sessionRes{SessionID: sess.ID, State: sess.State(), Effects: fx})
}

// handleAbandonSession drops the engine; any already-delivered effects are
// the caller's to ignore.
func (s *Server) handleAbandonSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	if err := s.sessions.Delete(r.Context(), id); err != nil {
		log.Warn().Err(err).Str("sessionId", id).Msg("delete session")
	}
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// sessionError maps engine errors onto JSON responses.
func (s *Server) sessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrSessionOver):
		http.Error(w, `{"error":"session_complete"}`, http.StatusConflict)
	case errors.Is(err, game.ErrEmptyPool):
		http.Error(w, `{"error":"empty_pool"}`, http.StatusConflict)
	default:
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
	}
}
