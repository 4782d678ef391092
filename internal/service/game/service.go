package game

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/oshokin/jeopardy/internal/domain/board"
	"github.com/oshokin/jeopardy/internal/logger"
)

// DefaultCategories is the number of columns on a board.
const DefaultCategories = 6

var (
	// ErrDataUnavailable wraps any failure to fetch board data.
	ErrDataUnavailable = errors.New("board data unavailable")
	// ErrSetupInProgress is returned when a setup is requested while one is running.
	ErrSetupInProgress = errors.New("game setup already in progress")
	// ErrNotStarted is returned for board operations before the first successful setup.
	ErrNotStarted = errors.New("game not started")
	// ErrStaleBoard is returned when a reveal addresses a board that was replaced.
	ErrStaleBoard = errors.New("board has been replaced")
)

// CategorySource picks random category identifiers from the remote catalog.
type CategorySource interface {
	CategoryIDs(ctx context.Context, n int) ([]int, error)
}

// CategoryLoader fetches one category with a random subset of its clues.
type CategoryLoader interface {
	Category(ctx context.Context, id int) (board.Category, error)
}

// Service coordinates setup and reveals for the single board.
type Service struct {
	// source provides category identifiers.
	source CategorySource
	// loader provides category contents.
	loader CategoryLoader
	// model holds the installed board.
	model *board.Model
	// categories is the requested number of columns.
	categories int

	// status is the current lifecycle state.
	status Status
	// mu protects status.
	mu sync.Mutex
}

// NewService creates a service. categories <= 0 selects DefaultCategories.
func NewService(source CategorySource, loader CategoryLoader, model *board.Model, categories int) *Service {
	if categories <= 0 {
		categories = DefaultCategories
	}

	if model == nil {
		model = board.NewModel()
	}

	status := StatusNotStarted
	if model.Loaded() {
		status = StatusReady
	}

	return &Service{
		source:     source,
		loader:     loader,
		model:      model,
		categories: categories,
		status:     status,
	}
}

// Status returns the current lifecycle state.
func (s *Service) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.status
}

// Started reports whether a board has ever been installed.
func (s *Service) Started() bool {
	return s.model.Loaded()
}

// Setup fetches a fresh board and installs it. On failure the previous board stays.
func (s *Service) Setup(ctx context.Context) (*board.Snapshot, error) {
	if err := s.beginLoading(); err != nil {
		return nil, err
	}

	started := time.Now()

	categories, err := s.fetch(ctx)
	if err != nil {
		s.finishLoading()
		logger.ErrorKV(ctx, "Game setup failed", "error", err, "elapsed", time.Since(started))

		return nil, fmt.Errorf("%w: %w", ErrDataUnavailable, err)
	}

	installed := s.model.Load(categories)
	s.finishLoading()

	logger.InfoKV(ctx, "Board installed",
		"board_id", installed.ID,
		"categories", len(installed.Columns),
		"rows", installed.Rows,
		"elapsed", time.Since(started),
	)

	return installed, nil
}

// Board returns a snapshot of the installed board.
func (s *Service) Board(_ context.Context) (*board.Snapshot, error) {
	snapshot, ok := s.model.Snapshot()
	if !ok {
		return nil, ErrNotStarted
	}

	return snapshot, nil
}

// Reveal advances the addressed clue. A non-empty boardID must match the installed board.
func (s *Service) Reveal(ctx context.Context, boardID string, categoryIndex, clueIndex int) (board.Transition, error) {
	// Boards are only ever replaced, never removed, so this check cannot go stale.
	if !s.model.Loaded() {
		return board.Transition{}, ErrNotStarted
	}

	t, err := s.model.RevealOn(boardID, categoryIndex, clueIndex)
	switch {
	case errors.Is(err, board.ErrBoardMismatch):
		return board.Transition{}, fmt.Errorf("%w: %w", ErrStaleBoard, err)
	case err != nil:
		logger.WarnKV(ctx, "Reveal rejected", "category", categoryIndex, "clue", clueIndex, "error", err)

		return board.Transition{}, err
	}

	logger.DebugKV(ctx, "Clue revealed",
		"board_id", boardID,
		"category", categoryIndex,
		"clue", clueIndex,
		"state", t.State.String(),
		"changed", t.Changed,
	)

	return t, nil
}

// fetch gathers the categories sequentially so the board order follows the sampled order.
func (s *Service) fetch(ctx context.Context) ([]board.Category, error) {
	ids, err := s.source.CategoryIDs(ctx, s.categories)
	if err != nil {
		return nil, fmt.Errorf("category ids: %w", err)
	}

	categories := make([]board.Category, 0, len(ids))

	for _, id := range ids {
		category, err := s.loader.Category(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("category %d: %w", id, err)
		}

		categories = append(categories, category)
	}

	return categories, nil
}

// beginLoading moves the game into Loading unless a setup is already running.
func (s *Service) beginLoading() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status == StatusLoading {
		return ErrSetupInProgress
	}

	s.status = StatusLoading

	return nil
}

// finishLoading leaves Loading for Ready when a board exists, NotStarted otherwise.
func (s *Service) finishLoading() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.model.Loaded() {
		s.status = StatusReady
	} else {
		s.status = StatusNotStarted
	}
}
