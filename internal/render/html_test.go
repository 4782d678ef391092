package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/jeopardy/internal/domain/board"
)

// testSnapshot builds a two-column board with one revealed cell and a short column.
func testSnapshot(t *testing.T) *board.Snapshot {
	t.Helper()

	m := board.NewModel()
	m.Load([]board.Category{
		{
			Title: "Math",
			Clues: []board.Clue{
				{Question: "2+2", Answer: "4"},
				{Question: "<i>3*3</i>", Answer: "9"},
			},
		},
		{
			Title: "Literature & Poetry",
			Clues: []board.Clue{
				{Question: "Hamlet author", Answer: "Shakespeare"},
			},
		},
	})

	_, err := m.Reveal(0, 1)
	require.NoError(t, err)

	s, ok := m.Snapshot()
	require.True(t, ok)

	return s
}

// TestHTML_Table checks headers, placeholders, addressable cells and escaping.
func TestHTML_Table(t *testing.T) {
	t.Parallel()

	h, err := NewHTML()
	require.NoError(t, err)

	s := testSnapshot(t)

	var buf bytes.Buffer
	require.NoError(t, h.Table(&buf, s))

	out := buf.String()
	require.Contains(t, out, `data-board-id="`+s.ID+`"`)
	require.Contains(t, out, "<th>Math</th>")
	require.Contains(t, out, "<th>Literature &amp; Poetry</th>")
	require.Contains(t, out, `id="`+CellID(0, 0)+`" class="clue hidden" data-category="0" data-clue="0">?</td>`)
	require.Contains(t, out, `id="`+CellID(1, 0)+`" class="clue hidden"`)
	require.Contains(t, out, `class="clue question"`)
	require.Contains(t, out, "&lt;i&gt;3*3&lt;/i&gt;")
	require.Contains(t, out, `<td class="empty"></td>`)
	require.NotContains(t, out, "Shakespeare")
	require.Equal(t, 2, strings.Count(out, "<th>"))
	require.Equal(t, 3, strings.Count(out, "<tr>"))
}

// TestHTML_Page renders the trigger label and the board when present.
func TestHTML_Page(t *testing.T) {
	t.Parallel()

	h, err := NewHTML()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, h.Page(&buf, Page{Title: "Jeopardy"}))
	require.Contains(t, buf.String(), `<button id="start-button" type="button">Start!</button>`)
	require.NotContains(t, buf.String(), "<table")

	buf.Reset()
	require.NoError(t, h.Page(&buf, Page{Title: "Jeopardy", StartLabel: RestartLabel, Board: testSnapshot(t)}))
	require.Contains(t, buf.String(), ">Restart</button>")
	require.Contains(t, buf.String(), `<table id="jeopardy"`)
}
