package board

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrOutOfRange is returned when a cell address is outside the current board.
	ErrOutOfRange = errors.New("clue address out of range")
	// ErrBoardMismatch is returned when a reveal names a board other than the installed one.
	ErrBoardMismatch = errors.New("board id does not match the installed board")
)

// Model holds the authoritative board. The zero value has no board installed.
type Model struct {
	// board is the installed board, nil until the first Load.
	board *Board
	// now returns the load timestamp; overridable in tests.
	now func() time.Time
	// mu protects board and the clues it owns.
	mu sync.RWMutex
}

// NewModel returns an empty model.
func NewModel() *Model {
	return &Model{
		now: time.Now,
	}
}

// Load replaces the whole board with the given categories and returns a view of it.
// The input is copied and every clue starts Hidden.
func (m *Model) Load(categories []Category) *Snapshot {
	owned := make([]Category, 0, len(categories))

	for _, category := range categories {
		cloned := category.Clone()
		for i := range cloned.Clues {
			cloned.Clues[i].State = Hidden
		}

		owned = append(owned, cloned)
	}

	now := time.Now
	if m.now != nil {
		now = m.now
	}

	b := &Board{
		ID:         uuid.NewString(),
		LoadedAt:   now(),
		Categories: owned,
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.board = b

	return NewSnapshot(b)
}

// Loaded reports whether a board is installed.
func (m *Model) Loaded() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.board != nil
}

// BoardID returns the ID of the installed board, or "" when there is none.
func (m *Model) BoardID() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.board == nil {
		return ""
	}

	return m.board.ID
}

// Clue returns a copy of the addressed clue.
func (m *Model) Clue(categoryIndex, clueIndex int) (Clue, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	clue, err := m.lookup(categoryIndex, clueIndex)
	if err != nil {
		return Clue{}, err
	}

	return *clue, nil
}

// Reveal applies the reveal transition to the addressed clue and stores the result.
func (m *Model) Reveal(categoryIndex, clueIndex int) (Transition, error) {
	return m.RevealOn("", categoryIndex, clueIndex)
}

// RevealOn is Reveal pinned to a board: a non-empty boardID must name the installed
// board, checked under the same lock that applies the transition.
func (m *Model) RevealOn(boardID string, categoryIndex, clueIndex int) (Transition, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if boardID != "" && m.board != nil && m.board.ID != boardID {
		return Transition{}, fmt.Errorf("%w: got %s, current %s", ErrBoardMismatch, boardID, m.board.ID)
	}

	clue, err := m.lookup(categoryIndex, clueIndex)
	if err != nil {
		return Transition{}, err
	}

	t := Reveal(*clue)
	clue.State = t.State

	return t, nil
}

// Snapshot returns a view of the installed board, or false when there is none.
func (m *Model) Snapshot() (*Snapshot, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.board == nil {
		return nil, false
	}

	return NewSnapshot(m.board), true
}

// lookup must be called with mu held.
func (m *Model) lookup(categoryIndex, clueIndex int) (*Clue, error) {
	if m.board == nil {
		return nil, fmt.Errorf("%w: no board loaded", ErrOutOfRange)
	}

	if categoryIndex < 0 || categoryIndex >= len(m.board.Categories) {
		return nil, fmt.Errorf("%w: category %d of %d", ErrOutOfRange, categoryIndex, len(m.board.Categories))
	}

	clues := m.board.Categories[categoryIndex].Clues
	if clueIndex < 0 || clueIndex >= len(clues) {
		return nil, fmt.Errorf("%w: clue %d of %d in category %d", ErrOutOfRange, clueIndex, len(clues), categoryIndex)
	}

	return &clues[clueIndex], nil
}
