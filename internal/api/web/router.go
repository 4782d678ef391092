package web

import (
	"context"
	"embed"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/oshokin/jeopardy/internal/domain/board"
	"github.com/oshokin/jeopardy/internal/render"
)

//go:embed static
var staticFS embed.FS

// DefaultHandlerTimeout bounds a single request, including a full game setup.
const DefaultHandlerTimeout = 60 * time.Second

// PageTitle is shown in the page header and the document title.
const PageTitle = "Jeopardy!"

// Game abstracts the game operations the browser transport depends on.
type Game interface {
	Setup(ctx context.Context) (*board.Snapshot, error)
	Board(ctx context.Context) (*board.Snapshot, error)
	Reveal(ctx context.Context, boardID string, categoryIndex, clueIndex int) (board.Transition, error)
	Started() bool
}

// Handler is the browser-facing HTTP handler.
type Handler struct {
	// router dispatches requests.
	router chi.Router
	// game runs setups and reveals.
	game Game
	// html renders the page and the table fragment.
	html *render.HTML
}

// NewHandler builds the router. base carries the logger used by the access log.
func NewHandler(base context.Context, game Game) (*Handler, error) {
	html, err := render.NewHTML()
	if err != nil {
		return nil, err
	}

	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, err
	}

	h := &Handler{
		router: chi.NewRouter(),
		game:   game,
		html:   html,
	}

	h.router.Use(chimw.RequestID)
	h.router.Use(chimw.RealIP)
	h.router.Use(accessLog(base))
	h.router.Use(chimw.Recoverer)
	h.router.Use(chimw.Timeout(DefaultHandlerTimeout))

	h.router.Get("/", h.handleIndex)
	h.router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	h.router.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(static)))

	h.router.Post("/game", h.handleStartGame)
	h.router.Post("/reveal", h.handleReveal)
	h.router.Get("/api/board", h.handleBoard)

	h.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found: "+r.URL.Path)
	})

	return h, nil
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}
