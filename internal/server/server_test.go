package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/deck/internal/adapters/sqlite"
	"github.com/example/deck/internal/db"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	database, err := db.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	srv := httptest.NewServer(New(sqlite.NewGateway(database)))
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestBoardLifecycleOverHTTP(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/boards", `{"id":"b1","title":"Sprint 1"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created boardDTO
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Equal(t, "b1", created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	resp = doJSON(t, http.MethodPatch, srv.URL+"/api/boards/b1", `{"title":"Sprint 2"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated boardDTO
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&updated))
	assert.Equal(t, "Sprint 2", updated.Title)

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/boards", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var boards []boardDTO
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&boards))
	require.Len(t, boards, 1)

	resp = doJSON(t, http.MethodDelete, srv.URL+"/api/boards/b1", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestMissingBoardIs404(t *testing.T) {
	srv := newTestServer(t)
	resp := doJSON(t, http.MethodPatch, srv.URL+"/api/boards/ghost", `{"title":"x"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, http.MethodDelete, srv.URL+"/api/cards/ghost", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCardsAndTagsOverHTTP(t *testing.T) {
	srv := newTestServer(t)

	require.Equal(t, http.StatusCreated,
		doJSON(t, http.MethodPost, srv.URL+"/api/boards", `{"id":"b1","title":"Sprint 1"}`).StatusCode)
	require.Equal(t, http.StatusCreated,
		doJSON(t, http.MethodPost, srv.URL+"/api/columns", `{"id":"c1","boardId":"b1","title":"To Do","position":0}`).StatusCode)
	require.Equal(t, http.StatusCreated,
		doJSON(t, http.MethodPost, srv.URL+"/api/cards", `{"id":"k1","columnId":"c1","title":"A","position":0}`).StatusCode)
	require.Equal(t, http.StatusCreated,
		doJSON(t, http.MethodPost, srv.URL+"/api/tags", `{"id":"t1","name":"urgent"}`).StatusCode)

	resp := doJSON(t, http.MethodPut, srv.URL+"/api/cards/k1/tags/t1", "")
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/boards/b1/cards", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var cards []cardDTO
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&cards))
	require.Len(t, cards, 1)
	assert.Equal(t, []string{"t1"}, cards[0].TagIDs)

	resp = doJSON(t, http.MethodDelete, srv.URL+"/api/cards/k1/tags/t1", "")
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/boards/b1/cards", "")
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&cards))
	assert.Empty(t, cards[0].TagIDs)
}

func TestPartialCardUpdateOverHTTP(t *testing.T) {
	srv := newTestServer(t)

	doJSON(t, http.MethodPost, srv.URL+"/api/boards", `{"id":"b1","title":"Sprint 1"}`)
	doJSON(t, http.MethodPost, srv.URL+"/api/columns", `{"id":"c1","boardId":"b1","title":"To Do"}`)
	doJSON(t, http.MethodPost, srv.URL+"/api/cards", `{"id":"k1","columnId":"c1","title":"A","description":"old"}`)

	// Only the title is present, so the description must survive.
	resp := doJSON(t, http.MethodPatch, srv.URL+"/api/cards/k1", `{"title":"A2"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated cardDTO
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&updated))
	assert.Equal(t, "A2", updated.Title)
	assert.Equal(t, "old", updated.Description)
}
