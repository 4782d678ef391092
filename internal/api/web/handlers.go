package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/oshokin/jeopardy/internal/domain/board"
	"github.com/oshokin/jeopardy/internal/logger"
	"github.com/oshokin/jeopardy/internal/render"
	"github.com/oshokin/jeopardy/internal/service/game"
)

// maxRequestSize caps JSON request bodies.
const maxRequestSize = 4 << 10

// revealRequest is the POST /reveal payload.
type revealRequest struct {
	BoardID  string `json:"board_id"`
	Category *int   `json:"category"`
	Clue     *int   `json:"clue"`
}

// revealResponse is the POST /reveal result.
type revealResponse struct {
	Cell    string `json:"cell"`
	Text    string `json:"text"`
	State   string `json:"state"`
	Changed bool   `json:"changed"`
}

// boardResponse is the JSON view of a snapshot.
type boardResponse struct {
	BoardID  string           `json:"board_id"`
	LoadedAt time.Time        `json:"loaded_at"`
	Rows     int              `json:"rows"`
	Columns  []columnResponse `json:"columns"`
}

type columnResponse struct {
	Title string         `json:"title"`
	Cells []cellResponse `json:"cells"`
}

type cellResponse struct {
	State string `json:"state"`
	Text  string `json:"text"`
}

// handleIndex renders the page with the current board, if any.
func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	page := render.Page{
		Title:      PageTitle,
		StartLabel: render.StartLabel,
	}

	if h.game.Started() {
		page.StartLabel = render.RestartLabel
	}

	if snapshot, err := h.game.Board(r.Context()); err == nil {
		page.Board = snapshot
	}

	var buf bytes.Buffer
	if err := h.html.Page(&buf, page); err != nil {
		logger.ErrorKV(r.Context(), "Render page failed", "error", err)
		writeError(w, http.StatusInternalServerError, "render_failed")

		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// handleStartGame runs a setup and answers with the new table fragment.
func (h *Handler) handleStartGame(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.game.Setup(r.Context())
	if err != nil {
		writeError(w, statusFor(err), err.Error())

		return
	}

	var buf bytes.Buffer
	if err := h.html.Table(&buf, snapshot); err != nil {
		logger.ErrorKV(r.Context(), "Render table failed", "error", err)
		writeError(w, http.StatusInternalServerError, "render_failed")

		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Board-Id", snapshot.ID)
	_, _ = buf.WriteTo(w)
}

// handleReveal dispatches a click on one cell.
func (h *Handler) handleReveal(w http.ResponseWriter, r *http.Request) {
	var req revealRequest

	body := http.MaxBytesReader(w, r.Body, maxRequestSize)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request_too_large")

			return
		}

		writeError(w, http.StatusBadRequest, "bad_json")

		return
	}

	if req.Category == nil || req.Clue == nil {
		writeError(w, http.StatusBadRequest, "category and clue are required")

		return
	}

	t, err := h.game.Reveal(r.Context(), req.BoardID, *req.Category, *req.Clue)
	if err != nil {
		writeError(w, statusFor(err), err.Error())

		return
	}

	writeJSON(w, http.StatusOK, revealResponse{
		Cell:    render.CellID(*req.Category, *req.Clue),
		Text:    t.Text,
		State:   t.State.String(),
		Changed: t.Changed,
	})
}

// handleBoard returns the JSON view of the current board.
func (h *Handler) handleBoard(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.game.Board(r.Context())
	if err != nil {
		writeError(w, statusFor(err), err.Error())

		return
	}

	writeJSON(w, http.StatusOK, newBoardResponse(snapshot))
}

// newBoardResponse converts a snapshot to its JSON view.
func newBoardResponse(s *board.Snapshot) boardResponse {
	columns := make([]columnResponse, 0, len(s.Columns))

	for _, column := range s.Columns {
		cells := make([]cellResponse, 0, len(column.Cells))
		for _, cell := range column.Cells {
			cells = append(cells, cellResponse{State: cell.State.String(), Text: cell.Text})
		}

		columns = append(columns, columnResponse{Title: column.Title, Cells: cells})
	}

	return boardResponse{
		BoardID:  s.ID,
		LoadedAt: s.LoadedAt,
		Rows:     s.Rows,
		Columns:  columns,
	}
}

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, board.ErrOutOfRange):
		return http.StatusNotFound
	case errors.Is(err, game.ErrDataUnavailable):
		return http.StatusBadGateway
	case errors.Is(err, game.ErrSetupInProgress),
		errors.Is(err, game.ErrNotStarted),
		errors.Is(err, game.ErrStaleBoard):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes {"error": message}.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
