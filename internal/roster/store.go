// internal/roster/store.go
//
// In-memory roster registry: teachers, their students, and per-student
// histories. Constructed once at startup and passed by handle to the HTTP
// layer and the session engine.
//
// Characteristics:
//   - Membership is insertion-ordered; add/remove operations address entries
//     by insertion index.
//   - Listings are sorted on every read (case-insensitive by name; histories
//     newest-first) into a fresh slice, so they always reflect the latest
//     membership without disturbing insertion order.
//   - Out-of-range indices fail with ErrIndexOutOfRange and leave the roster
//     unchanged.
//   - Concurrency-safe via RWMutex; state lives for the process lifetime only.

package roster

import (
	"errors"
	"sort"
	"strings"
	"sync"
)

// ErrIndexOutOfRange reports a roster operation against an index the caller
// should never have offered. A contract violation, not a runtime condition.
var ErrIndexOutOfRange = errors.New("roster: index out of range")

// Store is the process-wide teacher/student registry.
type Store struct {
	mu       sync.RWMutex
	teachers []*Teacher
}

// NewStore constructs an empty roster.
func NewStore() *Store {
	return &Store{}
}

// AddTeacher appends a teacher in insertion order.
func (s *Store) AddTeacher(name string) *Teacher {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := NewTeacher(name)
	s.teachers = append(s.teachers, t)
	return t
}

// RemoveTeacher removes the teacher at insertion index i, and with it every
// student it owns.
func (s *Store) RemoveTeacher(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.teachers) {
		return ErrIndexOutOfRange
	}
	s.teachers = append(s.teachers[:i], s.teachers[i+1:]...)
	return nil
}

// AddStudent appends a student to the teacher at insertion index teacherIdx.
func (s *Store) AddStudent(teacherIdx int, name string) (*Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if teacherIdx < 0 || teacherIdx >= len(s.teachers) {
		return nil, ErrIndexOutOfRange
	}
	st := NewStudent(name)
	t := s.teachers[teacherIdx]
	t.students = append(t.students, st)
	return st, nil
}

// RemoveStudent removes the student at (teacher insertion index, student
// insertion index).
func (s *Store) RemoveStudent(teacherIdx, studentIdx int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if teacherIdx < 0 || teacherIdx >= len(s.teachers) {
		return ErrIndexOutOfRange
	}
	t := s.teachers[teacherIdx]
	if studentIdx < 0 || studentIdx >= len(t.students) {
		return ErrIndexOutOfRange
	}
	t.students = append(t.students[:studentIdx], t.students[studentIdx+1:]...)
	return nil
}

// Teachers lists teachers sorted case-insensitively by name.
func (s *Store) Teachers() []*Teacher {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Teacher, len(s.teachers))
	copy(out, s.teachers)
	sortByName(out, func(t *Teacher) string { return t.Name })
	return out
}

// Students lists a teacher's students sorted case-insensitively by name.
func (s *Store) Students(teacherIdx int) ([]*Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if teacherIdx < 0 || teacherIdx >= len(s.teachers) {
		return nil, ErrIndexOutOfRange
	}
	t := s.teachers[teacherIdx]
	out := make([]*Student, len(t.students))
	copy(out, t.students)
	sortByName(out, func(st *Student) string { return st.Name })
	return out, nil
}

// Student resolves the currently selected student by insertion indices.
func (s *Store) Student(teacherIdx, studentIdx int) (*Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if teacherIdx < 0 || teacherIdx >= len(s.teachers) {
		return nil, ErrIndexOutOfRange
	}
	t := s.teachers[teacherIdx]
	if studentIdx < 0 || studentIdx >= len(t.students) {
		return nil, ErrIndexOutOfRange
	}
	return t.students[studentIdx], nil
}

// Histories lists a student's history records newest-first.
func (s *Store) Histories(teacherIdx, studentIdx int) ([]*History, error) {
	st, err := s.Student(teacherIdx, studentIdx)
	if err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*History, len(st.histories))
	copy(out, st.histories)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// sortByName sorts in place, case-insensitive, stable across equal names.
func sortByName[T any](list []T, name func(T) string) {
	sort.SliceStable(list, func(i, j int) bool {
		return strings.ToLower(name(list[i])) < strings.ToLower(name(list[j]))
	})
}
