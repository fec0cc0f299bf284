package kibi

import (
	"slices"
	"strings"
)

const defaultTabStop = 8

// Row is a single line of the document.
type Row struct {
	chars  []rune      // as typed or loaded, no newline
	render []rune      // chars with tabs expanded
	hl     []Highlight // one entry per render rune
	// the row ends inside an unterminated multi-line comment
	openComment bool
}

// Chars returns the raw text of the row.
func (r *Row) Chars() string { return string(r.chars) }

// Render returns the row as drawn on screen.
func (r *Row) Render() string { return string(r.render) }

// Highlights returns a copy of the per-rune highlight classes of Render.
func (r *Row) Highlights() []Highlight { return slices.Clone(r.hl) }

// OpenComment reports whether the row ends inside a multi-line comment.
func (r *Row) OpenComment() bool { return r.openComment }

// Len returns the number of raw runes in the row.
func (r *Row) Len() int { return len(r.chars) }

// Document is the ordered sequence of rows being edited.
type Document struct {
	rows []*Row
	// number of mutations since the last save
	dirty    int
	filename string
	syntax   *Syntax
	tabStop  int
}

// NewDocument returns an empty document. A non-positive tabStop selects 8.
func NewDocument(tabStop int) *Document {
	if tabStop <= 0 {
		tabStop = defaultTabStop
	}
	return &Document{tabStop: tabStop}
}

func (d *Document) NumRows() int     { return len(d.rows) }
func (d *Document) Dirty() int       { return d.dirty }
func (d *Document) Filename() string { return d.filename }
func (d *Document) Syntax() *Syntax  { return d.syntax }

// Row returns row i, or nil when i is out of range.
func (d *Document) Row(i int) *Row {
	if i < 0 || i >= len(d.rows) {
		return nil
	}
	return d.rows[i]
}

// SetSyntax switches the highlighting rules and re-highlights every row.
func (d *Document) SetSyntax(s *Syntax) {
	d.syntax = s
	if len(d.rows) > 0 {
		d.updateSyntax(0, len(d.rows)-1)
	}
}

func expandTabs(chars []rune, tabStop int) []rune {
	render := make([]rune, 0, len(chars))
	for _, c := range chars {
		if c == '\t' {
			// a tab always advances at least one column
			render = append(render, ' ')
			for len(render)%tabStop != 0 {
				render = append(render, ' ')
			}
		} else {
			render = append(render, c)
		}
	}
	return render
}

// updateSyntax re-highlights rows from through to, then keeps going past
// to for as long as a row's open comment state differs from what it was.
func (d *Document) updateSyntax(from, to int) {
	for i := max(from, 0); i < len(d.rows); i++ {
		row := d.rows[i]
		open := i > 0 && d.rows[i-1].openComment
		hl, oc := d.syntax.Highlight(row.render, open)
		row.hl = hl
		changed := row.openComment != oc
		row.openComment = oc
		if i >= to && !changed {
			return
		}
	}
}

func (d *Document) updateRender(at int) {
	row := d.rows[at]
	row.render = expandTabs(row.chars, d.tabStop)
}

// InsertRow inserts a row holding s at position at, clamped to the valid
// range.
func (d *Document) InsertRow(at int, s string) {
	at = min(max(at, 0), len(d.rows))
	row := &Row{chars: []rune(s)}
	// carry the previous state so propagation stops at the right row
	if at > 0 {
		row.openComment = d.rows[at-1].openComment
	}
	d.rows = slices.Insert(d.rows, at, row)
	d.updateRender(at)
	d.updateSyntax(at, at)
	d.dirty++
}

// DeleteRow removes row at. Out of range indexes are ignored.
func (d *Document) DeleteRow(at int) {
	if at < 0 || at >= len(d.rows) {
		return
	}
	d.rows = slices.Delete(d.rows, at, at+1)
	d.updateSyntax(at, at)
	d.dirty++
}

// Clear removes every row.
func (d *Document) Clear() {
	if len(d.rows) == 0 {
		return
	}
	d.rows = nil
	d.dirty++
}

// InsertChar inserts c before column col of row. Inserting on the row just
// past the end first appends an empty row.
func (d *Document) InsertChar(row, col int, c rune) {
	row = min(max(row, 0), len(d.rows))
	if row == len(d.rows) {
		d.InsertRow(row, "")
	}
	r := d.rows[row]
	col = min(max(col, 0), len(r.chars))
	r.chars = slices.Insert(r.chars, col, c)
	d.updateRender(row)
	d.updateSyntax(row, row)
	d.dirty++
}

// DeleteChar deletes the rune before column col of row. At column zero the
// row is joined onto the end of the previous one. joined reports whether
// that happened; at is the column the cursor belongs at afterwards, on the
// previous row when joined.
func (d *Document) DeleteChar(row, col int) (joined bool, at int) {
	if row < 0 || row >= len(d.rows) {
		return false, col
	}
	r := d.rows[row]
	col = min(max(col, 0), len(r.chars))
	if col == 0 {
		if row == 0 {
			return false, 0
		}
		prev := d.rows[row-1]
		at = len(prev.chars)
		prev.chars = append(prev.chars, r.chars...)
		d.rows = slices.Delete(d.rows, row, row+1)
		d.updateRender(row - 1)
		d.updateSyntax(row-1, row)
		d.dirty++
		return true, at
	}
	r.chars = slices.Delete(r.chars, col-1, col)
	d.updateRender(row)
	d.updateSyntax(row, row)
	d.dirty++
	return false, col - 1
}

// SplitRow truncates row at col and inserts the remainder as a new row
// right after it.
func (d *Document) SplitRow(row, col int) {
	if row < 0 || row >= len(d.rows) {
		return
	}
	r := d.rows[row]
	col = min(max(col, 0), len(r.chars))
	rest := &Row{
		chars:       slices.Clone(r.chars[col:]),
		openComment: r.openComment,
	}
	r.chars = r.chars[:col:col]
	d.rows = slices.Insert(d.rows, row+1, rest)
	d.updateRender(row)
	d.updateRender(row + 1)
	d.updateSyntax(row, row+1)
	d.dirty++
}

// Text joins every row, each followed by a newline.
func (d *Document) Text() string {
	var b strings.Builder
	for _, row := range d.rows {
		b.WriteString(string(row.chars))
		b.WriteByte('\n')
	}
	return b.String()
}

// CxToRx converts a column in row's chars to a column in its render.
func (d *Document) CxToRx(row, cx int) int {
	r := d.Row(row)
	if r == nil {
		return 0
	}
	cx = min(max(cx, 0), len(r.chars))
	rx := 0
	for _, c := range r.chars[:cx] {
		if c == '\t' {
			rx += d.tabStop - rx%d.tabStop
		} else {
			rx++
		}
	}
	return rx
}

// RxToCx converts a render column back to a chars column.
func (d *Document) RxToCx(row, rx int) int {
	r := d.Row(row)
	if r == nil {
		return 0
	}
	cur := 0
	for i, c := range r.chars {
		if c == '\t' {
			cur += d.tabStop - cur%d.tabStop
		} else {
			cur++
		}
		if cur > rx {
			return i
		}
	}
	return len(r.chars)
}
