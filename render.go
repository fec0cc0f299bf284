package kibi

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// runeWidth is the number of cells c takes on screen. Control characters
// are drawn as a single inverted symbol.
func runeWidth(c rune) int {
	if unicode.IsControl(c) {
		return 1
	}
	return runewidth.RuneWidth(c)
}

func renderWidth(r []rune) int {
	w := 0
	for _, c := range r {
		w += runeWidth(c)
	}
	return w
}

// truncateWidth cuts s to at most width cells without splitting a
// grapheme cluster.
func truncateWidth(s string, width int) string {
	rest := s
	state := -1
	w := 0
	for len(rest) > 0 {
		var cluster string
		var cw int
		cluster, rest, cw, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if w+cw > width {
			return s[:len(s)-len(rest)-len(cluster)]
		}
		w += cw
	}
	return s
}

// scroll adjusts the offsets so the cursor is inside the text area.
func (e *Editor) scroll() {
	e.rx = 0
	if e.cy < e.doc.NumRows() {
		e.rx = e.doc.CxToRx(e.cy, e.cx)
	}

	if e.cy < e.rowOff {
		e.rowOff = e.cy
	}
	if e.cy >= e.rowOff+e.screenRows {
		e.rowOff = e.cy - e.screenRows + 1
	}
	if e.rx < e.colOff {
		e.colOff = e.rx
	}
	if row := e.doc.Row(e.cy); row != nil {
		for e.colOff < e.rx && renderWidth(row.render[e.colOff:e.rx]) >= e.screenCols {
			e.colOff++
		}
	} else if e.rx >= e.colOff+e.screenCols {
		e.colOff = e.rx - e.screenCols + 1
	}
}

// Refresh draws a complete frame with a single write to the screen.
func (e *Editor) Refresh() error {
	e.updateWindowSize()
	e.scroll()

	var b bytes.Buffer
	b.WriteString("\x1b[?25l") // hide cursor
	b.WriteString("\x1b[H")

	e.drawRows(&b)
	e.drawStatusBar(&b)
	e.drawMessageBar(&b)

	cursorCol := 1
	if row := e.doc.Row(e.cy); row != nil {
		cursorCol += renderWidth(row.render[e.colOff:e.rx])
	}
	fmt.Fprintf(&b, "\x1b[%d;%dH", e.cy-e.rowOff+1, cursorCol)
	b.WriteString("\x1b[?25h")

	_, err := e.screen.Write(b.Bytes())
	return err
}

func (e *Editor) drawWelcome(b *bytes.Buffer) {
	msg := truncateWidth(fmt.Sprintf("Kibi editor -- version %s", Version), e.screenCols)
	padding := (e.screenCols - uniseg.StringWidth(msg)) / 2
	if padding > 0 {
		b.WriteString("~")
		padding--
	}
	b.WriteString(strings.Repeat(" ", padding))
	b.WriteString(msg)
}

func (e *Editor) drawRows(b *bytes.Buffer) {
	n := e.doc.NumRows()
	for y := range e.screenRows {
		fileRow := y + e.rowOff
		if fileRow >= n {
			if n == 0 && e.doc.dirty == 0 && y == e.screenRows/3 {
				e.drawWelcome(b)
			} else {
				b.WriteString("~")
			}
		} else {
			e.drawRow(b, e.doc.rows[fileRow])
		}
		b.WriteString("\x1b[39m")
		b.WriteString("\x1b[K")
		b.WriteString("\r\n")
	}
}

// drawRow writes the visible slice of row. A color escape is only
// emitted when the highlight class changes.
func (e *Editor) drawRow(b *bytes.Buffer, row *Row) {
	if e.colOff >= len(row.render) {
		return
	}
	color := -1
	width := 0
	for i := e.colOff; i < len(row.render); i++ {
		c := row.render[i]
		w := runeWidth(c)
		if width+w > e.screenCols {
			break
		}
		width += w

		hl := hlNormal
		if i < len(row.hl) {
			hl = row.hl[i]
		}
		switch {
		case unicode.IsControl(c):
			sym := '?'
			if c <= 26 {
				sym = '@' + c
			}
			b.WriteString("\x1b[7m")
			b.WriteRune(sym)
			b.WriteString("\x1b[m")
			if color != -1 {
				fmt.Fprintf(b, "\x1b[%dm", color)
			}
		case hl == hlNormal:
			if color != -1 {
				b.WriteString("\x1b[39m")
				color = -1
			}
			b.WriteRune(c)
		default:
			if cl := syntaxToColor(hl); cl != color {
				color = cl
				fmt.Fprintf(b, "\x1b[%dm", cl)
			}
			b.WriteRune(c)
		}
	}
}

func (e *Editor) drawStatusBar(b *bytes.Buffer) {
	b.WriteString("\x1b[7m")

	name := e.doc.filename
	if name == "" {
		name = "[No Name]"
	}
	modified := ""
	if e.doc.dirty > 0 {
		modified = "(modified)"
	}
	ft := "no ft"
	if e.doc.syntax != nil {
		ft = e.doc.syntax.Filetype
	}
	n := e.doc.NumRows()

	left := truncateWidth(fmt.Sprintf("%.20s - %d lines %s", name, n, modified), e.screenCols)
	right := fmt.Sprintf("%s | %d/%d", ft, e.cy+1, n)
	rightWidth := uniseg.StringWidth(right)

	b.WriteString(left)
	for w := uniseg.StringWidth(left); w < e.screenCols; w++ {
		if e.screenCols-w == rightWidth {
			b.WriteString(right)
			break
		}
		b.WriteByte(' ')
	}
	b.WriteString("\x1b[m")
	b.WriteString("\r\n")
}

func (e *Editor) drawMessageBar(b *bytes.Buffer) {
	b.WriteString("\x1b[K")
	if e.statusMsg != "" && e.now().Sub(e.statusTime) < e.cfg.messageTimeout() {
		b.WriteString(truncateWidth(e.statusMsg, e.screenCols))
	}
}
