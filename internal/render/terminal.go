package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/oshokin/jeopardy/internal/domain/board"
)

// DefaultCellWidth is the column width of the terminal grid in runes.
const DefaultCellWidth = 18

// Terminal prints snapshots as a colored text grid.
type Terminal struct {
	// width is the column width in runes.
	width int

	header   *color.Color
	hidden   *color.Color
	question *color.Color
	answer   *color.Color
	dim      *color.Color
}

// NewTerminal creates a terminal renderer. width <= 0 selects DefaultCellWidth.
func NewTerminal(width int) *Terminal {
	if width <= 0 {
		width = DefaultCellWidth
	}

	return &Terminal{
		width:    width,
		header:   color.New(color.FgCyan, color.Bold),
		hidden:   color.New(color.FgYellow),
		question: color.New(color.FgWhite),
		answer:   color.New(color.FgGreen),
		dim:      color.New(color.FgHiBlack),
	}
}

// Render writes the board to w.
func (t *Terminal) Render(w io.Writer, s *board.Snapshot) error {
	if s == nil || len(s.Columns) == 0 {
		_, err := fmt.Fprintln(w, t.dim.Sprint("(no board)"))

		return err
	}

	var b strings.Builder

	b.WriteString(t.dim.Sprintf("board %s\n", s.ID))
	b.WriteString(t.dim.Sprint(t.rowPrefix(-1)))

	for _, column := range s.Columns {
		b.WriteString(t.header.Sprint(t.pad(column.Title)))
	}

	b.WriteByte('\n')

	for r := range s.Rows {
		b.WriteString(t.dim.Sprint(t.rowPrefix(r)))

		for c := range s.Columns {
			cell, ok := s.Cell(c, r)
			if !ok {
				b.WriteString(t.pad(""))

				continue
			}

			b.WriteString(t.colorFor(cell.State).Sprint(t.pad(cell.Text)))
		}

		b.WriteByte('\n')
	}

	_, err := io.WriteString(w, b.String())

	return err
}

// colorFor picks the color of a cell by reveal state.
func (t *Terminal) colorFor(state board.RevealState) *color.Color {
	switch state {
	case board.Question:
		return t.question
	case board.Answer:
		return t.answer
	default:
		return t.hidden
	}
}

// rowPrefix labels a row with its clue index; -1 is the header row.
func (t *Terminal) rowPrefix(r int) string {
	if r < 0 {
		return "    "
	}

	return fmt.Sprintf("%2d  ", r)
}

// pad truncates or pads text to the column width plus a separator.
func (t *Terminal) pad(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)

	if len(runes) > t.width {
		runes = append(runes[:t.width-1], '…')
	}

	return string(runes) + strings.Repeat(" ", t.width-len(runes)+2)
}
