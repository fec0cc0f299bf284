package kibi

import (
	"errors"
	"slices"
	"strings"
	"unicode/utf8"
)

// view is the part of the editor state a canceled search puts back.
type view struct {
	cx, cy         int
	rowOff, colOff int
}

func (e *Editor) view() view {
	return view{cx: e.cx, cy: e.cy, rowOff: e.rowOff, colOff: e.colOff}
}

func (e *Editor) setView(v view) {
	e.cx, e.cy, e.rowOff, e.colOff = v.cx, v.cy, v.rowOff, v.colOff
}

// search is the state of one incremental search.
type search struct {
	lastMatch int // row of the current match, -1 for none
	direction int // +1 forward, -1 backward
	start     int // row the search started on

	// row whose highlight is overwritten by the match, -1 for none
	hlRow   int
	hlSaved []Highlight
}

func newSearch(startRow int) *search {
	return &search{lastMatch: -1, direction: 1, start: startRow, hlRow: -1}
}

// Find runs an incremental search. The cursor follows the match as the
// query is typed; the arrow keys move to the next or previous match.
// Enter keeps the cursor on the match, Escape puts the view back as it was
// and returns ErrPromptCanceled.
func (e *Editor) Find() error {
	saved := e.view()
	s := newSearch(e.cy)
	query, err := e.Prompt("Search: %s (Use ESC/Arrows/Enter)", func(query string, k Key) {
		e.searchStep(s, query, k)
	})
	if errors.Is(err, ErrPromptCanceled) {
		e.setView(saved)
	}
	e.restoreMatch(s)
	if err == nil {
		e.log.Debug("search", "query", query, "row", s.lastMatch)
	}
	return err
}

func (e *Editor) searchStep(s *search, query string, k Key) {
	e.restoreMatch(s)

	switch k {
	case keyEnter, keyEsc:
		return
	case keyArrowRight, keyArrowDown:
		s.direction = 1
	case keyArrowLeft, keyArrowUp:
		s.direction = -1
	default:
		s.lastMatch = -1
		s.direction = 1
	}
	if query == "" {
		return
	}
	e.findNext(s, query)
}

// findNext moves to the next row containing query in s.direction,
// wrapping around the document. Without a previous match the row the
// search started on is tried first.
func (e *Editor) findNext(s *search, query string) {
	n := e.doc.NumRows()
	if n == 0 {
		return
	}
	current := s.lastMatch
	if current == -1 {
		current = min(s.start, n-1) - s.direction
	}
	for range n {
		current += s.direction
		switch current {
		case -1:
			current = n - 1
		case n:
			current = 0
		}

		row := e.doc.rows[current]
		render := string(row.render)
		idx := strings.Index(render, query)
		if idx < 0 {
			continue
		}
		rx := utf8.RuneCountInString(render[:idx])

		s.lastMatch = current
		e.cy = current
		e.cx = e.doc.RxToCx(current, rx)
		// scroll puts the match row at the top of the screen
		e.rowOff = n

		s.hlRow = current
		s.hlSaved = slices.Clone(row.hl)
		end := min(rx+utf8.RuneCountInString(query), len(row.hl))
		for i := rx; i < end; i++ {
			row.hl[i] = hlMatch
		}
		return
	}
}

// restoreMatch puts back the highlight of the row holding the current
// match.
func (e *Editor) restoreMatch(s *search) {
	if s.hlRow < 0 {
		return
	}
	if row := e.doc.Row(s.hlRow); row != nil && len(row.hl) == len(s.hlSaved) {
		copy(row.hl, s.hlSaved)
	}
	s.hlRow = -1
	s.hlSaved = nil
}
