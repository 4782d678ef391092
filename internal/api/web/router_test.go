package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/jeopardy/internal/domain/board"
	"github.com/oshokin/jeopardy/internal/service/game"
)

// fakeTrivia serves two categories with two clues each.
type fakeTrivia struct {
	// err fails every call when set.
	err error
}

func (f *fakeTrivia) CategoryIDs(_ context.Context, n int) ([]int, error) {
	if f.err != nil {
		return nil, f.err
	}

	ids := make([]int, 0, n)
	for i := range n {
		ids = append(ids, i+1)
	}

	return ids, nil
}

func (f *fakeTrivia) Category(_ context.Context, id int) (board.Category, error) {
	if f.err != nil {
		return board.Category{}, f.err
	}

	return board.Category{
		Title: fmt.Sprintf("category %d", id),
		Clues: []board.Clue{
			{Question: fmt.Sprintf("q%d-0", id), Answer: fmt.Sprintf("a%d-0", id)},
			{Question: fmt.Sprintf("q%d-1", id), Answer: fmt.Sprintf("a%d-1", id)},
		},
	}, nil
}

// newTestServer returns a running server over a two-column game.
func newTestServer(t *testing.T, trivia *fakeTrivia) (*httptest.Server, *game.Service) {
	t.Helper()

	svc := game.NewService(trivia, trivia, board.NewModel(), 2)

	h, err := NewHandler(context.Background(), svc)
	require.NoError(t, err)

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	return srv, svc
}

// post sends a POST and returns the status and body.
func post(t *testing.T, url, contentType, body string) (int, string) {
	t.Helper()

	resp, err := http.Post(url, contentType, strings.NewReader(body)) //nolint:noctx // test helper
	require.NoError(t, err)

	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, string(raw)
}

// get sends a GET and returns the status and body.
func get(t *testing.T, url string) (int, string) {
	t.Helper()

	resp, err := http.Get(url) //nolint:noctx // test helper
	require.NoError(t, err)

	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, string(raw)
}

// TestHandler_Index shows the start label before the first game and restart afterwards.
func TestHandler_Index(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t, &fakeTrivia{})

	code, body := get(t, srv.URL+"/")
	require.Equal(t, http.StatusOK, code)
	require.Contains(t, body, ">Start!</button>")
	require.NotContains(t, body, `id="jeopardy"`)

	code, _ = post(t, srv.URL+"/game", "", "")
	require.Equal(t, http.StatusOK, code)

	code, body = get(t, srv.URL+"/")
	require.Equal(t, http.StatusOK, code)
	require.Contains(t, body, ">Restart</button>")
	require.Contains(t, body, `id="jeopardy"`)
}

// TestHandler_StartAndReveal walks one cell through question and answer.
func TestHandler_StartAndReveal(t *testing.T) {
	t.Parallel()

	srv, svc := newTestServer(t, &fakeTrivia{})

	code, body := post(t, srv.URL+"/game", "", "")
	require.Equal(t, http.StatusOK, code)
	require.Contains(t, body, "category 1")
	require.Contains(t, body, "category 2")
	require.Equal(t, 4, strings.Count(body, ">?</td>"))

	snapshot, err := svc.Board(context.Background())
	require.NoError(t, err)

	payload := fmt.Sprintf(`{"board_id":%q,"category":1,"clue":0}`, snapshot.ID)

	var res revealResponse

	code, body = post(t, srv.URL+"/reveal", "application/json", payload)
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal([]byte(body), &res))
	require.Equal(t, revealResponse{Cell: "cell-1-0", Text: "q2-0", State: "question", Changed: true}, res)

	code, body = post(t, srv.URL+"/reveal", "application/json", payload)
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal([]byte(body), &res))
	require.Equal(t, revealResponse{Cell: "cell-1-0", Text: "a2-0", State: "answer", Changed: true}, res)

	code, body = post(t, srv.URL+"/reveal", "application/json", payload)
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal([]byte(body), &res))
	require.False(t, res.Changed)
	require.Equal(t, "answer", res.State)
}

// TestHandler_RevealErrors checks the status codes of rejected clicks.
func TestHandler_RevealErrors(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t, &fakeTrivia{})

	code, _ := post(t, srv.URL+"/reveal", "application/json", `{"category":0,"clue":0}`)
	require.Equal(t, http.StatusConflict, code)

	code, _ = post(t, srv.URL+"/game", "", "")
	require.Equal(t, http.StatusOK, code)

	tests := []struct {
		name    string
		payload string
		want    int
	}{
		{name: "bad json", payload: `{`, want: http.StatusBadRequest},
		{name: "missing clue", payload: `{"category":0}`, want: http.StatusBadRequest},
		{name: "category out of range", payload: `{"category":2,"clue":0}`, want: http.StatusNotFound},
		{name: "clue out of range", payload: `{"category":0,"clue":10}`, want: http.StatusNotFound},
		{name: "stale board", payload: `{"board_id":"old","category":0,"clue":0}`, want: http.StatusConflict},
	}

	for _, tt := range tests {
		code, _ := post(t, srv.URL+"/reveal", "application/json", tt.payload)
		require.Equal(t, tt.want, code, tt.name)
	}

	oversized := `{"board_id":"` + strings.Repeat("x", maxRequestSize) + `","category":0,"clue":0}`
	code, _ = post(t, srv.URL+"/reveal", "application/json", oversized)
	require.Equal(t, http.StatusRequestEntityTooLarge, code)
}

// TestHandler_StartGameUnavailable maps fetch failures to 502 and keeps the page usable.
func TestHandler_StartGameUnavailable(t *testing.T) {
	t.Parallel()

	srv, svc := newTestServer(t, &fakeTrivia{err: errors.New("connection refused")})

	code, body := post(t, srv.URL+"/game", "", "")
	require.Equal(t, http.StatusBadGateway, code)
	require.Contains(t, body, "board data unavailable")
	require.False(t, svc.Started())

	code, _ = get(t, srv.URL+"/api/board")
	require.Equal(t, http.StatusNotFound, code)
}

// TestHandler_Board returns the JSON view with hidden cells masked.
func TestHandler_Board(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t, &fakeTrivia{})

	code, _ := post(t, srv.URL+"/game", "", "")
	require.Equal(t, http.StatusOK, code)

	code, _ = post(t, srv.URL+"/reveal", "application/json", `{"category":0,"clue":1}`)
	require.Equal(t, http.StatusOK, code)

	code, body := get(t, srv.URL+"/api/board")
	require.Equal(t, http.StatusOK, code)

	var res boardResponse
	require.NoError(t, json.Unmarshal([]byte(body), &res))
	require.NotEmpty(t, res.BoardID)
	require.Equal(t, 2, res.Rows)
	require.Len(t, res.Columns, 2)
	require.Equal(t, "category 1", res.Columns[0].Title)
	require.Equal(t, cellResponse{State: "hidden", Text: "?"}, res.Columns[0].Cells[0])
	require.Equal(t, cellResponse{State: "question", Text: "q1-1"}, res.Columns[0].Cells[1])
}

// TestHandler_Static serves the embedded script and the health probe.
func TestHandler_Static(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t, &fakeTrivia{})

	code, body := get(t, srv.URL+"/static/board.js")
	require.Equal(t, http.StatusOK, code)
	require.Contains(t, body, `fetch("/reveal"`)

	code, body = get(t, srv.URL+"/health")
	require.Equal(t, http.StatusOK, code)
	require.JSONEq(t, `{"ok":true}`, body)

	code, _ = get(t, srv.URL+"/missing")
	require.Equal(t, http.StatusNotFound, code)
}

// TestStatusFor covers the error to status mapping.
func TestStatusFor(t *testing.T) {
	t.Parallel()

	require.Equal(t, http.StatusNotFound, statusFor(fmt.Errorf("x: %w", board.ErrOutOfRange)))
	require.Equal(t, http.StatusBadGateway, statusFor(fmt.Errorf("%w: boom", game.ErrDataUnavailable)))
	require.Equal(t, http.StatusConflict, statusFor(game.ErrSetupInProgress))
	require.Equal(t, http.StatusConflict, statusFor(game.ErrNotStarted))
	require.Equal(t, http.StatusConflict, statusFor(game.ErrStaleBoard))
	require.Equal(t, http.StatusInternalServerError, statusFor(errors.New("other")))
}
