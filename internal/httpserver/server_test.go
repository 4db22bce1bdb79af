package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hmongspell/go-server/internal/game"
	"github.com/hmongspell/go-server/internal/roster"
	"github.com/hmongspell/go-server/internal/store"
	"github.com/hmongspell/go-server/internal/words"
)

func newTestServer(t *testing.T) (*Server, *words.Catalog) {
	t.Helper()
	cat, err := words.Load("")
	require.NoError(t, err)
	ros := roster.NewStore()
	ros.AddTeacher("Teacher1")
	_, err = ros.AddStudent(0, "Student1")
	require.NoError(t, err)
	return New(cat, ros, store.NewMemoryStore()), cat
}

// doJSON runs a request through the router and decodes a 2xx JSON body.
func doJSON(t *testing.T, srv *Server, method, path string, body, out any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	if out != nil && rec.Code < 300 {
		require.NoError(t, json.NewDecoder(rec.Body).Decode(out))
	}
	return rec
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doJSON(t, srv, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWordsEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)

	var list []wordRes
	rec := doJSON(t, srv, http.MethodGet, "/words", nil, &list)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, list, 15)
	assert.Equal(t, "apple", list[0].ID)
	assert.Equal(t, "kua", list[0].Spelling) // Hmong is the default language

	var word wordRes
	rec = doJSON(t, srv, http.MethodGet, "/words/pig?lang=English", nil, &word)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, wordRes{ID: "pig", Spelling: "pig", Slots: 3}, word)

	rec = doJSON(t, srv, http.MethodGet, "/words/zebra", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/words?lang=Klingon", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRosterEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/teachers", addByNameReq{Name: "zed"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, srv, http.MethodPost, "/teachers", addByNameReq{Name: "Amy"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var teachers []teacherRes
	rec = doJSON(t, srv, http.MethodGet, "/teachers", nil, &teachers)
	require.Equal(t, http.StatusOK, rec.Code)
	var names []string
	for _, tr := range teachers {
		names = append(names, tr.Name)
	}
	assert.Equal(t, []string{"Amy", "Teacher1", "zed"}, names)

	// Out-of-range removal is surfaced, not swallowed, and the roster is
	// left as it was.
	rec = doJSON(t, srv, http.MethodDelete, "/teachers/9", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	teachers = nil
	doJSON(t, srv, http.MethodGet, "/teachers", nil, &teachers)
	assert.Len(t, teachers, 3)

	rec = doJSON(t, srv, http.MethodPost, "/teachers/0/students", addByNameReq{Name: "walter"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, srv, http.MethodPost, "/teachers/0/students", addByNameReq{Name: "Ben"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var students []studentRes
	rec = doJSON(t, srv, http.MethodGet, "/teachers/0/students", nil, &students)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, students, 3) // seeded Student1 plus the two above
	assert.Equal(t, "Ben", students[0].Name)

	rec = doJSON(t, srv, http.MethodDelete, "/teachers/0/students/9", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, srv, http.MethodPost, "/teachers", addByNameReq{}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, srv, http.MethodDelete, "/teachers/nope", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSessionFlow(t *testing.T) {
	srv, cat := newTestServer(t)

	var res sessionRes
	rec := doJSON(t, srv, http.MethodPost, "/session/new",
		newSessionReq{TeacherIndex: 0, StudentIndex: 0, Language: "Hmong"}, &res)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, res.SessionID)
	require.Len(t, res.Effects, 1)
	require.Equal(t, game.EffectDisplayWord, res.Effects[0].Kind)

	seen := map[string]bool{}
	attempts := 0
	for res.State != game.StateComplete {
		require.Less(t, attempts, cat.Len(), "session failed to terminate")

		// The displayed picture id doubles as the word id.
		current, ok := cat.Find(lastDisplayedWord(res.Effects))
		require.True(t, ok)
		seen[current.ID] = true

		rec = doJSON(t, srv, http.MethodPost, "/session/attempt",
			attemptReq{SessionID: res.SessionID, Slots: current.Spelling(words.Hmong)}, &res)
		require.Equal(t, http.StatusOK, rec.Code)
		attempts++
	}

	assert.Equal(t, cat.Len()-1, attempts)
	assert.False(t, seen["dragon"])
	assert.Equal(t, game.EffectSessionEnded, res.Effects[len(res.Effects)-1].Kind)

	// Further attempts on the finished session are rejected.
	rec = doJSON(t, srv, http.MethodPost, "/session/attempt",
		attemptReq{SessionID: res.SessionID, Slots: "kua"}, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// The run is in the student's history, newest-first.
	var histories []historyRes
	rec = doJSON(t, srv, http.MethodGet, "/teachers/0/students/0/histories", nil, &histories)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, histories, 1)
	assert.Equal(t, "Spelling Game", histories[0].Label)
	assert.Len(t, histories[0].Words, cat.Len()-1)

	rec = doJSON(t, srv, http.MethodDelete, "/session/"+res.SessionID, nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, srv, http.MethodPost, "/session/skip", skipReq{SessionID: res.SessionID}, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSessionSkipFlow(t *testing.T) {
	srv, _ := newTestServer(t)

	var res sessionRes
	rec := doJSON(t, srv, http.MethodPost, "/session/new",
		newSessionReq{TeacherIndex: 0, StudentIndex: 0, Language: "Hmong"}, &res)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv, http.MethodPost, "/session/skip", skipReq{SessionID: res.SessionID}, &res)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, game.StateAwaiting, res.State)
	require.Len(t, res.Effects, 1)
	assert.Equal(t, game.EffectDisplayWord, res.Effects[0].Kind)

	// Nothing was recorded for the skipped word.
	var histories []historyRes
	doJSON(t, srv, http.MethodGet, "/teachers/0/students/0/histories", nil, &histories)
	require.Len(t, histories, 1)
	assert.Empty(t, histories[0].Words)
}

func TestSessionBadRequests(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/session/new",
		newSessionReq{TeacherIndex: 0, StudentIndex: 0, Language: "Klingon"}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, srv, http.MethodPost, "/session/new",
		newSessionReq{TeacherIndex: 4, StudentIndex: 0, Language: "Hmong"}, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, srv, http.MethodPost, "/session/attempt",
		attemptReq{SessionID: "missing", Slots: "kua"}, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// lastDisplayedWord pulls the picture id out of the most recent displayWord
// effect in a batch.
func lastDisplayedWord(fx []game.Effect) string {
	for i := len(fx) - 1; i >= 0; i-- {
		if fx[i].Kind == game.EffectDisplayWord {
			return fx[i].PictureID
		}
	}
	return ""
}
