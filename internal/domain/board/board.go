package board

import "time"

// Placeholder is displayed in place of a clue that has not been revealed yet.
const Placeholder = "?"

// Clue is one question/answer pair with its reveal state.
type Clue struct {
	// Question is shown on the first reveal.
	Question string
	// Answer is shown on the second reveal.
	Answer string
	// State is the current reveal state.
	State RevealState
}

// Display returns the text a renderer shows for the clue in its current state.
func (c Clue) Display() string {
	switch c.State {
	case Question:
		return c.Question
	case Answer:
		return c.Answer
	default:
		return Placeholder
	}
}

// Category is a titled group of clues.
type Category struct {
	// Title is the category name rendered in the header row.
	Title string
	// Clues are ordered by slot index.
	Clues []Clue
}

// Clone returns a deep copy of the category.
func (c Category) Clone() Category {
	clues := make([]Clue, len(c.Clues))
	copy(clues, c.Clues)

	return Category{
		Title: c.Title,
		Clues: clues,
	}
}

// Board is the full set of categories for one game.
type Board struct {
	// ID identifies this board; it changes on every load.
	ID string
	// LoadedAt is when the board was installed.
	LoadedAt time.Time
	// Categories are ordered by column index.
	Categories []Category
}

// Rows returns the number of clue slots of the longest category.
func (b *Board) Rows() int {
	rows := 0

	for _, category := range b.Categories {
		rows = max(rows, len(category.Clues))
	}

	return rows
}

// Cell is the renderer view of one clue slot.
type Cell struct {
	// State is the reveal state of the clue.
	State RevealState
	// Text is what the cell currently displays.
	Text string
}

// Column is the renderer view of one category.
type Column struct {
	// Title is the category title.
	Title string
	// Cells are ordered by clue slot index.
	Cells []Cell
}

// Snapshot is a read-only view of a board. Hidden clues never expose their text.
type Snapshot struct {
	// ID is the board ID the snapshot was taken from.
	ID string
	// LoadedAt is when the board was installed.
	LoadedAt time.Time
	// Rows is the number of clue slots of the longest column.
	Rows int
	// Columns are ordered by category index.
	Columns []Column
}

// NewSnapshot builds a Snapshot from the board.
func NewSnapshot(b *Board) *Snapshot {
	columns := make([]Column, 0, len(b.Categories))

	for _, category := range b.Categories {
		cells := make([]Cell, 0, len(category.Clues))

		for _, clue := range category.Clues {
			cells = append(cells, Cell{
				State: clue.State,
				Text:  clue.Display(),
			})
		}

		columns = append(columns, Column{
			Title: category.Title,
			Cells: cells,
		})
	}

	return &Snapshot{
		ID:       b.ID,
		LoadedAt: b.LoadedAt,
		Rows:     b.Rows(),
		Columns:  columns,
	}
}

// Cell returns the cell at the given address, or false if there is none.
// Categories shorter than Rows have no cell in the trailing slots.
func (s *Snapshot) Cell(categoryIndex, clueIndex int) (Cell, bool) {
	if categoryIndex < 0 || categoryIndex >= len(s.Columns) {
		return Cell{}, false
	}

	cells := s.Columns[categoryIndex].Cells
	if clueIndex < 0 || clueIndex >= len(cells) {
		return Cell{}, false
	}

	return cells[clueIndex], true
}
