package routes

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"notes/notes/config"
	"notes/notes/controllers"
	"notes/notes/sources/psql/dao"
	"notes/notes/sources/psql/testdb"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noteBody struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type listBody struct {
	Page     int        `json:"page"`
	PageSize int        `json:"page_size"`
	Total    int64      `json:"total"`
	Results  []noteBody `json:"results"`
	Ordering string     `json:"ordering"`
}

func newTestRouter(t *testing.T) chi.Router {
	t.Helper()
	cfg := config.Config{
		APIPrefix:      "/api",
		CORSOrigins:    []string{"*"},
		RequestTimeout: 5 * time.Second,
	}
	notesCtrl := controllers.NewNotesController(dao.NewNoteDAO(testdb.New(t)))
	return NewRouter(cfg, notesCtrl, controllers.NewHealthController())
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeJSON[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func createNote(t *testing.T, h http.Handler, title string) noteBody {
	t.Helper()
	rr := do(t, h, http.MethodPost, "/api/notes", fmt.Sprintf(`{"title": %q}`, title))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	return decodeJSON[noteBody](t, rr)
}

func TestHealthRoute(t *testing.T) {
	h := newTestRouter(t)
	for _, path := range []string{"/api/health/", "/api/health"} {
		rr := do(t, h, http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"message": "Server is up!"}`, rr.Body.String())
	}
}

func TestNoteLifecycleScenario(t *testing.T) {
	h := newTestRouter(t)

	rr := do(t, h, http.MethodPost, "/api/notes", `{"title": " Hello ", "content": "world"}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	created := decodeJSON[noteBody](t, rr)
	assert.Equal(t, "Hello", created.Title)
	assert.Equal(t, "world", created.Content)
	assert.NotZero(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	path := fmt.Sprintf("/api/notes/%d", created.ID)

	rr = do(t, h, http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, rr.Code)
	got := decodeJSON[noteBody](t, rr)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Hello", got.Title)
	assert.Equal(t, "world", got.Content)

	rr = do(t, h, http.MethodPatch, path, `{"title": "  "}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"title": ["Title must not be empty."]}`, rr.Body.String())

	rr = do(t, h, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Body.String())

	rr = do(t, h, http.MethodGet, path, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"detail": "Not found."}`, rr.Body.String())

	rr = do(t, h, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCreateRejectsInvalidTitles(t *testing.T) {
	h := newTestRouter(t)

	for _, body := range []string{`{"title": "   "}`, `{"content": "no title"}`, `{}`, ``} {
		rr := do(t, h, http.MethodPost, "/api/notes", body)
		assert.Equal(t, http.StatusBadRequest, rr.Code, "body %q", body)
		errs := decodeJSON[map[string][]string](t, rr)
		assert.Contains(t, errs, "title")
	}

	rr := do(t, h, http.MethodGet, "/api/notes", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.EqualValues(t, 0, decodeJSON[listBody](t, rr).Total)
}

func TestCreateMalformedJSON(t *testing.T) {
	h := newTestRouter(t)
	rr := do(t, h, http.MethodPost, "/api/notes", `{"title": "x"`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	body := decodeJSON[map[string]string](t, rr)
	assert.True(t, strings.HasPrefix(body["detail"], "JSON parse error - "))

	rr = do(t, h, http.MethodPost, "/api/notes", `{"title": "x"} garbage`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	list := decodeJSON[listBody](t, do(t, h, http.MethodGet, "/api/notes", ""))
	assert.Zero(t, list.Total)
}

func TestCreateIgnoresReadOnlyFields(t *testing.T) {
	h := newTestRouter(t)
	rr := do(t, h, http.MethodPost, "/api/notes/", `{"id": 999, "title": "t", "created_at": "2001-01-01T00:00:00Z"}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	note := decodeJSON[noteBody](t, rr)
	assert.NotEqual(t, uint(999), note.ID)
	assert.NotEqual(t, 2001, note.CreatedAt.Year())
}

func TestListPaginationAndOrdering(t *testing.T) {
	h := newTestRouter(t)
	for i := 0; i < 15; i++ {
		createNote(t, h, fmt.Sprintf("note %02d", i))
	}

	rr := do(t, h, http.MethodGet, "/api/notes", "")
	require.Equal(t, http.StatusOK, rr.Code)
	list := decodeJSON[listBody](t, rr)
	assert.Equal(t, 1, list.Page)
	assert.Equal(t, 10, list.PageSize)
	assert.EqualValues(t, 15, list.Total)
	assert.Equal(t, "-updated_at", list.Ordering)
	assert.Len(t, list.Results, 10)
	assert.Equal(t, "note 14", list.Results[0].Title)

	rr = do(t, h, http.MethodGet, "/api/notes?page=abc&page_size=xyz&ordering=title", "")
	list = decodeJSON[listBody](t, rr)
	assert.Equal(t, 1, list.Page)
	assert.Equal(t, 10, list.PageSize)
	assert.Equal(t, "-updated_at", list.Ordering)

	rr = do(t, h, http.MethodGet, "/api/notes?page_size=1000", "")
	list = decodeJSON[listBody](t, rr)
	assert.Equal(t, 100, list.PageSize)
	assert.Len(t, list.Results, 15)

	rr = do(t, h, http.MethodGet, "/api/notes?page=2&page_size=10", "")
	list = decodeJSON[listBody](t, rr)
	assert.Len(t, list.Results, 5)

	for _, query := range []string{
		"page=9999",
		"page=1152921504606846977&page_size=16",
		"page=99999999999999999999",
	} {
		rr = do(t, h, http.MethodGet, "/api/notes?"+query, "")
		require.Equal(t, http.StatusOK, rr.Code, query)
		assert.Contains(t, rr.Body.String(), `"results":[]`, query)
		assert.Contains(t, rr.Body.String(), `"total":15`, query)
	}

	desc := decodeJSON[listBody](t, do(t, h, http.MethodGet, "/api/notes?ordering=-updated_at&page_size=100", ""))
	asc := decodeJSON[listBody](t, do(t, h, http.MethodGet, "/api/notes?ordering=updated_at&page_size=100", ""))
	assert.Equal(t, "updated_at", asc.Ordering)
	require.Len(t, asc.Results, 15)
	for i := range desc.Results {
		assert.Equal(t, desc.Results[i].ID, asc.Results[len(asc.Results)-1-i].ID)
	}
}

func TestPutAndPatch(t *testing.T) {
	h := newTestRouter(t)
	note := createNote(t, h, "original")
	path := fmt.Sprintf("/api/notes/%d/", note.ID)
	time.Sleep(10 * time.Millisecond)

	rr := do(t, h, http.MethodPatch, path, `{"content": "x"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	patched := decodeJSON[noteBody](t, rr)
	assert.Equal(t, "original", patched.Title)
	assert.Equal(t, "x", patched.Content)
	assert.True(t, patched.CreatedAt.Equal(note.CreatedAt))
	assert.True(t, patched.UpdatedAt.After(note.UpdatedAt))

	rr = do(t, h, http.MethodPut, path, `{"content": "no title"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"title": ["This field is required."]}`, rr.Body.String())

	rr = do(t, h, http.MethodPut, path, `{"title": "  replaced  ", "content": "new"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	put := decodeJSON[noteBody](t, rr)
	assert.Equal(t, "replaced", put.Title)
	assert.Equal(t, "new", put.Content)

	// failed updates leave the row untouched
	got := decodeJSON[noteBody](t, do(t, h, http.MethodGet, path, ""))
	assert.Equal(t, "replaced", got.Title)
	assert.Equal(t, "new", got.Content)
}

func TestDetailMissingNoteIsNotFoundBeforeValidation(t *testing.T) {
	h := newTestRouter(t)
	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodPatch, http.MethodDelete} {
		rr := do(t, h, method, "/api/notes/12345", `{"title": ""}`)
		assert.Equal(t, http.StatusNotFound, rr.Code, method)
	}
}

func TestUnknownRoutesAndMethods(t *testing.T) {
	h := newTestRouter(t)

	rr := do(t, h, http.MethodGet, "/api/notes/abc", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = do(t, h, http.MethodGet, "/api/unknown", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"detail": "Not found."}`, rr.Body.String())

	rr = do(t, h, http.MethodDelete, "/api/notes", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.JSONEq(t, `{"detail": "Method \"DELETE\" not allowed."}`, rr.Body.String())
}

func TestCORSPreflight(t *testing.T) {
	h := newTestRouter(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/notes", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Less(t, rr.Code, 300)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}
