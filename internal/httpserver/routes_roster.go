// internal/httpserver/routes_roster.go
//
// Roster endpoints: teacher/student CRUD and history listings.
// All add/remove operations address entries by insertion index; listings are
// sorted by the store on every read (case-insensitive by name, histories
// newest-first). An out-of-range index is a caller contract violation and
// maps to 404.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/hmongspell/go-server/internal/roster"
)

type teacherRes struct {
	Name     string `json:"name"`
	Students int    `json:"students"`
}

type studentRes struct {
	Name      string `json:"name"`
	Histories int    `json:"histories"`
}

type historyRes struct {
	Label string   `json:"label"`
	Date  string   `json:"date"`
	Words []string `json:"words"`
}

type addByNameReq struct {
	Name string `json:"name"`
}

func (s *Server) mountRosterRoutes() {
	s.r.Route("/teachers", func(r chi.Router) {
		r.Get("/", s.handleListTeachers)
		r.Post("/", s.handleAddTeacher)
		r.Delete("/{teacherIndex}", s.handleRemoveTeacher)
		r.Get("/{teacherIndex}/students", s.handleListStudents)
		r.Post("/{teacherIndex}/students", s.handleAddStudent)
		r.Delete("/{teacherIndex}/students/{studentIndex}", s.handleRemoveStudent)
		r.Get("/{teacherIndex}/students/{studentIndex}/histories", s.handleListHistories)
	})
}

func (s *Server) handleListTeachers(w http.ResponseWriter, r *http.Request) {
	teachers := s.roster.Teachers()
	out := make([]teacherRes, 0, len(teachers))
	for _, t := range teachers {
		out = append(out, teacherRes{Name: t.Name, Students: t.StudentCount()})
	}
	_ = json.NewEncoder(w).Encode(out)
}

func (s *Server) handleAddTeacher(w http.ResponseWriter, r *http.Request) {
	var req addByNameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		http.Error(w, `{"error":"name_required"}`, http.StatusBadRequest)
		return
	}
	t := s.roster.AddTeacher(strings.TrimSpace(req.Name))
	_ = json.NewEncoder(w).Encode(teacherRes{Name: t.Name})
}

func (s *Server) handleRemoveTeacher(w http.ResponseWriter, r *http.Request) {
	i, ok := pathIndex(w, r, "teacherIndex")
	if !ok {
		return
	}
	if err := s.roster.RemoveTeacher(i); err != nil {
		s.rosterError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

func (s *Server) handleListStudents(w http.ResponseWriter, r *http.Request) {
	i, ok := pathIndex(w, r, "teacherIndex")
	if !ok {
		return
	}
	students, err := s.roster.Students(i)
	if err != nil {
		s.rosterError(w, err)
		return
	}
	out := make([]studentRes, 0, len(students))
	for _, st := range students {
		out = append(out, studentRes{Name: st.Name, Histories: st.HistoryCount()})
	}
	_ = json.NewEncoder(w).Encode(out)
}

func (s *Server) handleAddStudent(w http.ResponseWriter, r *http.Request) {
	i, ok := pathIndex(w, r, "teacherIndex")
	if !ok {
		return
	}
	var req addByNameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		http.Error(w, `{"error":"name_required"}`, http.StatusBadRequest)
		return
	}
	st, err := s.roster.AddStudent(i, strings.TrimSpace(req.Name))
	if err != nil {
		s.rosterError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(studentRes{Name: st.Name})
}

func (s *Server) handleRemoveStudent(w http.ResponseWriter, r *http.Request) {
	ti, ok := pathIndex(w, r, "teacherIndex")
	if !ok {
		return
	}
	si, ok := pathIndex(w, r, "studentIndex")
	if !ok {
		return
	}
	if err := s.roster.RemoveStudent(ti, si); err != nil {
		s.rosterError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

func (s *Server) handleListHistories(w http.ResponseWriter, r *http.Request) {
	ti, ok := pathIndex(w, r, "teacherIndex")
	if !ok {
		return
	}
	si, ok := pathIndex(w, r, "studentIndex")
	if !ok {
		return
	}
	histories, err := s.roster.Histories(ti, si)
	if err != nil {
		s.rosterError(w, err)
		return
	}
	out := make([]historyRes, 0, len(histories))
	for _, h := range histories {
		words := h.Words
		if words == nil {
			words = []string{}
		}
		out = append(out, historyRes{Label: h.Label, Date: h.Stamp(), Words: words})
	}
	_ = json.NewEncoder(w).Encode(out)
}

// pathIndex parses a non-negative path index or writes a 400.
func pathIndex(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	i, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || i < 0 {
		http.Error(w, `{"error":"bad_index"}`, http.StatusBadRequest)
		return 0, false
	}
	return i, true
}

// rosterError maps store errors onto JSON responses.
func (s *Server) rosterError(w http.ResponseWriter, err error) {
	if errors.Is(err, roster.ErrIndexOutOfRange) {
		http.Error(w, `{"error":"index_out_of_range"}`, http.StatusNotFound)
		return
	}
	http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
}
