package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/oshokin/jeopardy/internal/domain/board"
)

//go:embed templates/*.html
var templatesFS embed.FS

const (
	// StartLabel is the trigger label before the first successful load.
	StartLabel = "Start!"
	// RestartLabel is the trigger label once a board has been loaded.
	RestartLabel = "Restart"
)

// Page is the data of the full browser page.
type Page struct {
	// Title is the document title.
	Title string
	// StartLabel is the text of the start/restart button.
	StartLabel string
	// Board is the current board, nil before the first load.
	Board *board.Snapshot
}

// tableView is the board flattened into rows for the template.
type tableView struct {
	BoardID string
	Headers []string
	Rows    [][]cellView
}

// cellView is one table cell.
type cellView struct {
	Present  bool
	Category int
	Clue     int
	State    string
	Text     string
}

// HTML renders pages and board fragments.
type HTML struct {
	// tmpl holds the parsed page and table templates.
	tmpl *template.Template
}

// NewHTML parses the embedded templates.
func NewHTML() (*HTML, error) {
	tmpl, err := template.New("render").Funcs(template.FuncMap{
		"table": newTableView,
	}).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	return &HTML{tmpl: tmpl}, nil
}

// Page writes the full page.
func (h *HTML) Page(w io.Writer, page Page) error {
	if page.StartLabel == "" {
		page.StartLabel = StartLabel
	}

	return h.tmpl.ExecuteTemplate(w, "page.html", page)
}

// Table writes the board table fragment.
func (h *HTML) Table(w io.Writer, s *board.Snapshot) error {
	return h.tmpl.ExecuteTemplate(w, "table.html", s)
}

// CellID is the DOM id of the cell at (categoryIndex, clueIndex).
func CellID(categoryIndex, clueIndex int) string {
	return fmt.Sprintf("cell-%d-%d", categoryIndex, clueIndex)
}

// newTableView arranges the snapshot row by row. Short columns get empty cells.
func newTableView(s *board.Snapshot) tableView {
	if s == nil {
		return tableView{}
	}

	view := tableView{
		BoardID: s.ID,
		Headers: make([]string, 0, len(s.Columns)),
		Rows:    make([][]cellView, 0, s.Rows),
	}

	for _, column := range s.Columns {
		view.Headers = append(view.Headers, column.Title)
	}

	for r := range s.Rows {
		row := make([]cellView, 0, len(s.Columns))

		for c := range s.Columns {
			cell, ok := s.Cell(c, r)
			if !ok {
				row = append(row, cellView{Category: c, Clue: r})

				continue
			}

			row = append(row, cellView{
				Present:  true,
				Category: c,
				Clue:     r,
				State:    cell.State.String(),
				Text:     cell.Text,
			})
		}

		view.Rows = append(view.Rows, row)
	}

	return view
}
