// internal/game/engine.go
//
// Session engine for a single spelling run.
// Responsibilities:
//   - Open a history record on the student and copy the catalog into a
//     shrinking word pool.
//   - Validate slot submissions against the current target spelling
//     (case-insensitive) and record correct words into the history.
//   - Advance through the pool and end the session when it is exhausted.
//   - Emit ordered (delay, effect) notifications for the UI to schedule.
//
// Notes:
//   - The next word is drawn uniformly from every pool slot except the last
//     one, so the word sitting in the final slot is never presented and a
//     catalog of N words yields N-1 attempts. The session ends with that
//     word still unplayed.
//   - The engine is driven by discrete external calls and holds no timers or
//     goroutines; callers abandon a session by discarding it.
package game

import (
	"errors"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hmongspell/go-server/internal/roster"
	"github.com/hmongspell/go-server/internal/words"
)

var (
	// ErrEmptyPool is returned when a word must be selected but none are
	// available (an empty catalog, or a defensive guard tripping).
	ErrEmptyPool = errors.New("game: word pool is empty")

	// ErrSessionOver is returned for calls on a completed session.
	ErrSessionOver = errors.New("game: session complete")
)

// historyLabel names the game in the student's history records.
const historyLabel = "Spelling Game"

// Delays for the post-solve effect chain, taken from the original
// letter → confetti → word-audio → next-word pacing.
const (
	celebrationDelayMs = 500
	wordAudioDelayMs   = 1000
	nextWordDelayMs    = 4000
)

// Session holds the state of one spelling run for a single student.
// It is not safe for concurrent use; drive it from one goroutine at a time.
type Session struct {
	ID      string
	lang    words.Language
	student *roster.Student
	pool    []words.Word
	current words.Word // zero value until the first advance
	state   State
	rng     *rand.Rand
}

// New opens a session for student in lang: a fresh history record becomes
// the student's active one, the full catalog is copied into the pool, and
// the first word is presented. The returned effects start with displayWord.
func New(cat *words.Catalog, student *roster.Student, lang words.Language) (*Session, []Effect, error) {
	s := &Session{
		ID:      uuid.NewString(),
		lang:    lang,
		student: student,
		pool:    cat.All(),
		state:   StateStarting,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	if len(s.pool) == 0 {
		return nil, nil, ErrEmptyPool
	}
	student.BeginHistory(historyLabel)
	fx, err := s.advance(0)
	if err != nil {
		return nil, nil, err
	}
	return s, fx, nil
}

// SubmitAttempt compares the gathered slot contents against the current
// target spelling (case-insensitive).
//
// On a match the target spelling is appended to the active history and the
// engine advances; the effects chain the letter sound, a celebration, the
// word audio, and finally the next word (or the session end). On a miss the
// letter sound still plays, a full-but-wrong board additionally gets a
// rejected effect, and nothing else changes: the pool and the history are
// untouched.
func (s *Session) SubmitAttempt(slots string) ([]Effect, error) {
	if s.state == StateComplete {
		return nil, ErrSessionOver
	}
	target := s.current.Spelling(s.lang)
	if !strings.EqualFold(slots, target) {
		fx := []Effect{s.letterEffect(slots)}
		if slotsFull(slots) {
			fx = append(fx, Effect{Kind: EffectRejected})
		}
		return fx, nil
	}

	if err := s.student.RecordWord(target); err != nil {
		return nil, err
	}
	s.state = StateSolved
	fx := []Effect{
		s.letterEffect(slots),
		{Kind: EffectCelebration, DelayMs: celebrationDelayMs, PictureID: s.current.ID},
		{Kind: EffectPlayWord, DelayMs: wordAudioDelayMs, Language: s.lang, WordID: s.current.ID},
	}
	adv, err := s.advance(nextWordDelayMs)
	if err != nil {
		return nil, err
	}
	return append(fx, adv...), nil
}

// Skip treats the current word as attempted without a correctness check or
// a history append.
func (s *Session) Skip() ([]Effect, error) {
	if s.state == StateComplete {
		return nil, ErrSessionOver
	}
	return s.advance(0)
}

// advance removes the just-attempted word from the pool (a no-op before any
// word was presented), then either presents the next word or completes the
// session. The final remaining word is never presented.
func (s *Session) advance(delayMs int64) ([]Effect, error) {
	s.pool = removeWord(s.pool, s.current.ID)
	if len(s.pool) > 1 {
		next, err := s.nextWord()
		if err != nil {
			return nil, err
		}
		s.current = next
		s.state = StateAwaiting
		return []Effect{{
			Kind:      EffectDisplayWord,
			DelayMs:   delayMs,
			PictureID: next.ID,
			SlotCount: next.Slots(s.lang),
		}}, nil
	}
	s.state = StateComplete
	s.student.CloseHistory()
	return []Effect{{Kind: EffectSessionEnded, DelayMs: delayMs}}, nil
}

// nextWord draws uniformly from every pool slot except the last one.
func (s *Session) nextWord() (words.Word, error) {
	if len(s.pool) == 0 {
		return words.Word{}, ErrEmptyPool
	}
	if len(s.pool) == 1 {
		return s.pool[0], nil
	}
	return s.pool[s.rng.Intn(len(s.pool)-1)], nil
}

// letterEffect voices the letter most recently visible on the board. The
// engine only sees the gathered slot string, so the rightmost filled slot
// stands in for the just-placed letter.
func (s *Session) letterEffect(slots string) Effect {
	letter := ""
	for _, r := range slots {
		if r != ' ' {
			letter = string(r)
		}
	}
	return Effect{Kind: EffectPlayLetter, Language: s.lang, Letter: letter}
}

// State reports the current session state.
func (s *Session) State() State { return s.state }

// Language reports the language chosen at start.
func (s *Session) Language() words.Language { return s.lang }

// CurrentWord returns the word on display. Zero value once complete is
// reached or before the first advance.
func (s *Session) CurrentWord() words.Word {
	if s.state == StateComplete {
		return words.Word{}
	}
	return s.current
}

// PoolSize reports how many words remain unattempted (the displayed word
// included).
func (s *Session) PoolSize() int { return len(s.pool) }

// slotsFull reports whether every slot holds a letter: the UI writes one
// blank placeholder per empty slot.
func slotsFull(slots string) bool {
	return slots != "" && !strings.Contains(slots, " ")
}

// removeWord drops the word with the given id, preserving order. Unknown
// ids (including the empty pre-first-advance id) leave the pool as is.
func removeWord(pool []words.Word, id string) []words.Word {
	for i, w := range pool {
		if w.ID == id {
			return append(pool[:i], pool[i+1:]...)
		}
	}
	return pool
}
