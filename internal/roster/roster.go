// internal/roster/roster.go
//
// Entities for the teacher/student roster.
// Defines:
//   - History: append-only log of correctly spelled words for one session.
//   - Student: owns its histories plus the single active-history slot.
//   - Teacher: owns its students (removing a teacher removes them too).

package roster

import (
	"errors"
	"time"
)

// ErrNoActiveHistory is returned when a word is recorded outside a session.
var ErrNoActiveHistory = errors.New("roster: student has no active history")

// History records the words a student spelled correctly during one session.
// Entries are the spellings in the session's language, appended as they are
// completed; once the session closes the record is never touched again.
type History struct {
	Label     string
	CreatedAt time.Time
	Words     []string
}

func newHistory(label string) *History {
	return &History{Label: label, CreatedAt: time.Now()}
}

// Stamp formats the creation time for display (MM/dd HH:mm).
func (h *History) Stamp() string { return h.CreatedAt.Format("01/02 15:04") }

func (h *History) add(word string) { h.Words = append(h.Words, word) }

// Student names are not guaranteed unique; display ordering is computed on
// read by the store, never stored here.
type Student struct {
	Name      string
	histories []*History
	active    *History
}

func NewStudent(name string) *Student {
	return &Student{Name: name}
}

// BeginHistory opens a new history record and makes it the active one.
// Starting again while a session is still open overwrites the active
// reference without closing the previous record.
func (s *Student) BeginHistory(label string) *History {
	h := newHistory(label)
	s.histories = append(s.histories, h)
	s.active = h
	return h
}

// RecordWord appends a spelling to the active history record.
func (s *Student) RecordWord(spelling string) error {
	if s.active == nil {
		return ErrNoActiveHistory
	}
	s.active.add(spelling)
	return nil
}

// CloseHistory clears the active-record reference. The record itself stays
// in the student's log.
func (s *Student) CloseHistory() { s.active = nil }

// HistoryCount reports how many history records the student has.
func (s *Student) HistoryCount() int { return len(s.histories) }

// Teacher owns an insertion-ordered set of students.
type Teacher struct {
	Name     string
	students []*Student
}

func NewTeacher(name string) *Teacher {
	return &Teacher{Name: name}
}

// StudentCount reports how many students the teacher owns.
func (t *Teacher) StudentCount() int { return len(t.students) }
