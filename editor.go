// Package kibi is a small terminal text editor in the style of antirez's
// kilo. It emits VT100 escape sequences directly, one batched write per
// frame, and highlights a handful of languages.
package kibi

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"
)

const Version = "0.1.0"

// Screen is the terminal the editor runs on. *Terminal implements it.
type Screen interface {
	io.Writer
	ReadKey() (Key, error)
	Size() (rows, cols int, err error)
}

// Options configures New.
type Options struct {
	// Config defaults to DefaultConfig() when its TabStop is zero.
	Config Config
	// Logger defaults to a logger that discards everything.
	Logger *slog.Logger
	// Now defaults to time.Now and decides when messages expire.
	Now func() time.Time
}

// Editor holds the complete state of the editor.
type Editor struct {
	screen Screen
	doc    *Document

	cx, cy int // cx is an index into Row.chars
	rx     int // rx is an index into Row.render
	rowOff int
	colOff int

	// text area size, without the two bar rows
	screenRows int
	screenCols int

	statusMsg  string
	statusTime time.Time

	// Ctrl-Q presses still needed to quit with unsaved changes
	quitTimes int

	// the last size query failed and was reported
	sizeFailed bool

	cfg      Config
	syntaxes []*Syntax
	log      *slog.Logger
	now      func() time.Time
}

// New creates an editor with an empty, unnamed document drawn on screen.
func New(screen Screen, opts Options) *Editor {
	cfg := opts.Config
	if cfg.TabStop == 0 {
		cfg = DefaultConfig()
	}
	e := &Editor{
		screen:    screen,
		doc:       NewDocument(cfg.TabStop),
		quitTimes: cfg.QuitTimes,
		cfg:       cfg,
		syntaxes:  cfg.syntaxes(),
		log:       opts.Logger,
		now:       opts.Now,
	}
	if e.log == nil {
		e.log = slog.New(slog.DiscardHandler)
	}
	if e.now == nil {
		e.now = time.Now
	}
	e.updateWindowSize()
	return e
}

// Document returns the document being edited.
func (e *Editor) Document() *Document { return e.doc }

// Cursor returns the cursor position in document coordinates.
func (e *Editor) Cursor() (row, col int) { return e.cy, e.cx }

func (e *Editor) updateWindowSize() {
	rows, cols, err := e.screen.Size()
	if err != nil {
		if !e.sizeFailed {
			e.SetStatusMessage("Can't read window size! I/O error: %v", err)
			e.log.Warn("window size", "err", err)
		}
		e.sizeFailed = true
		rows, cols = 24, 80
	} else {
		e.sizeFailed = false
	}
	// room for the status bar and the message bar
	e.screenRows = max(rows-2, 1)
	e.screenCols = max(cols, 1)
}

func (e *Editor) selectSyntax() {
	s := findSyntax(e.syntaxes, e.doc.filename)
	e.doc.SetSyntax(s)
	if s != nil {
		e.log.Debug("syntax selected", "file", e.doc.filename, "filetype", s.Filetype)
	}
}

// SetStatusMessage shows a message in the message bar until it expires.
func (e *Editor) SetStatusMessage(format string, args ...any) {
	e.statusMsg = fmt.Sprintf(format, args...)
	e.statusTime = e.now()
}

// ---------- File I/O ----------

// Open replaces the document with the contents of filename. The filename
// is kept even when loading fails, so a missing file becomes a new file
// on the first save. Errors are also reported in the message bar.
func (e *Editor) Open(filename string) error {
	e.doc.Clear()
	e.cx, e.cy, e.rowOff, e.colOff = 0, 0, 0, 0
	e.doc.filename = filename
	e.selectSyntax()

	lines, err := LoadLines(filename)
	e.doc.dirty = 0
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			e.SetStatusMessage("New file: %s", filename)
			e.log.Info("new file", "file", filename)
		} else {
			e.SetStatusMessage("Can't open! I/O error: %v", err)
			e.log.Error("open failed", "file", filename, "err", err)
		}
		return err
	}
	for _, line := range lines {
		e.doc.InsertRow(e.doc.NumRows(), line)
	}
	e.doc.dirty = 0
	e.log.Info("opened", "file", filename, "rows", len(lines))
	return nil
}

// Save writes the document to its file, asking for a name first if it has
// none. It returns ErrPromptCanceled when that prompt is aborted and an
// *IOError when writing fails; both are also shown in the message bar.
func (e *Editor) Save() error {
	if e.doc.filename == "" {
		name, err := e.Prompt("Save as: %s (ESC to cancel)", nil)
		if err != nil {
			if errors.Is(err, ErrPromptCanceled) {
				e.SetStatusMessage("Save aborted")
			}
			return err
		}
		e.doc.filename = name
		e.selectSyntax()
	}
	n, err := SaveText(e.doc.filename, e.doc.Text())
	if err != nil {
		e.SetStatusMessage("Can't save! I/O error: %v", err)
		e.log.Error("save failed", "file", e.doc.filename, "err", err)
		return err
	}
	e.doc.dirty = 0
	e.SetStatusMessage("%d bytes written to disk", n)
	e.log.Info("saved", "file", e.doc.filename, "bytes", n)
	return nil
}

// ---------- Prompt ----------

// Prompt shows prompt in the message bar, with %s replaced by the input,
// and edits a line of input until Enter confirms a non-empty input or
// Escape cancels with ErrPromptCanceled. cb, if not nil, is called with
// the current input after every key press.
func (e *Editor) Prompt(prompt string, cb func(input string, k Key)) (string, error) {
	var b strings.Builder
	for {
		e.SetStatusMessage(prompt, b.String())
		if err := e.Refresh(); err != nil {
			return "", err
		}

		k, err := e.screen.ReadKey()
		if err != nil {
			return "", err
		}
		switch {
		case k == keyDelete || k == keyBackspace || k == ctrl('h'):
			if s := b.String(); s != "" {
				_, size := utf8.DecodeLastRuneInString(s)
				b.Reset()
				b.WriteString(s[:len(s)-size])
			}
		case k == keyEsc:
			e.SetStatusMessage("")
			if cb != nil {
				cb(b.String(), k)
			}
			return "", ErrPromptCanceled
		case k == keyEnter:
			if b.Len() > 0 {
				e.SetStatusMessage("")
				if cb != nil {
					cb(b.String(), k)
				}
				return b.String(), nil
			}
		case k != keyTab && isPrintable(k):
			b.WriteRune(rune(k))
		}

		if cb != nil {
			cb(b.String(), k)
		}
	}
}

// ---------- Editing ----------

func (e *Editor) insertChar(c rune) {
	e.doc.InsertChar(e.cy, e.cx, c)
	e.cx++
}

func (e *Editor) insertNewline() {
	if e.cy >= e.doc.NumRows() || e.cx == 0 {
		e.doc.InsertRow(e.cy, "")
	} else {
		e.doc.SplitRow(e.cy, e.cx)
	}
	e.cy++
	e.cx = 0
}

// deleteChar deletes the character left of the cursor.
func (e *Editor) deleteChar() {
	if e.cy >= e.doc.NumRows() {
		return
	}
	joined, at := e.doc.DeleteChar(e.cy, e.cx)
	if joined {
		e.cy--
	}
	e.cx = at
}

// deleteForward deletes the character under the cursor, joining the next
// row when the cursor is at the end of its row.
func (e *Editor) deleteForward() {
	row := e.doc.Row(e.cy)
	if row == nil {
		return
	}
	if e.cx < row.Len() {
		e.doc.DeleteChar(e.cy, e.cx+1)
	} else if e.cy+1 < e.doc.NumRows() {
		e.doc.DeleteChar(e.cy+1, 0)
	}
}

// ---------- Cursor movement ----------

func (e *Editor) rowLen(i int) int {
	if row := e.doc.Row(i); row != nil {
		return row.Len()
	}
	return 0
}

func (e *Editor) moveCursor(k Key) {
	switch k {
	case keyArrowUp:
		if e.cy > 0 {
			e.cy--
		}
	case keyArrowDown:
		if e.cy < e.doc.NumRows() {
			e.cy++
		}
	case keyArrowLeft:
		if e.cx > 0 {
			e.cx--
		} else if e.cy > 0 {
			e.cy--
			e.cx = e.rowLen(e.cy)
		}
	case keyArrowRight:
		if e.cy < e.doc.NumRows() {
			if e.cx < e.rowLen(e.cy) {
				e.cx++
			} else {
				e.cy++
				e.cx = 0
			}
		}
	}
	// snap to the end of a shorter row
	e.cx = min(e.cx, e.rowLen(e.cy))
}

// ---------- Event processing ----------

// ProcessKey reads one key and applies it. It returns ErrQuit when the
// user quits and any error from reading the key.
func (e *Editor) ProcessKey() error {
	k, err := e.screen.ReadKey()
	if err != nil {
		return err
	}
	return e.handleKey(k)
}

func (e *Editor) handleKey(k Key) error {
	switch k {
	case keyEnter:
		e.insertNewline()

	case ctrl('q'):
		if e.doc.dirty > 0 && e.quitTimes > 0 {
			e.SetStatusMessage("WARNING!!! File has unsaved changes. Press Ctrl-Q %d more times to quit.", e.quitTimes)
			e.quitTimes--
			return nil
		}
		e.log.Info("quit", "dirty", e.doc.dirty)
		return ErrQuit

	case ctrl('s'):
		var ioErr *IOError
		if err := e.Save(); err != nil && !errors.Is(err, ErrPromptCanceled) && !errors.As(err, &ioErr) {
			return err
		}

	case ctrl('f'):
		if err := e.Find(); err != nil && !errors.Is(err, ErrPromptCanceled) {
			return err
		}

	case keyHome:
		e.cx = 0

	case keyEnd:
		e.cx = e.rowLen(e.cy)

	case keyBackspace, ctrl('h'):
		e.deleteChar()

	case keyDelete:
		e.deleteForward()

	case keyPageUp:
		// to the top of the screen, then up a screenful
		e.cy = e.rowOff
		for range e.screenRows {
			e.moveCursor(keyArrowUp)
		}

	case keyPageDown:
		e.cy = min(e.rowOff+e.screenRows-1, e.doc.NumRows())
		for range e.screenRows {
			e.moveCursor(keyArrowDown)
		}

	case keyArrowUp, keyArrowDown, keyArrowLeft, keyArrowRight:
		e.moveCursor(k)

	case ctrl('l'), keyEsc:
		// nothing

	default:
		if isPrintable(k) {
			e.insertChar(rune(k))
		}
	}
	// any other key resets the quit streak
	e.quitTimes = e.cfg.QuitTimes
	return nil
}

// Run draws a frame, processes a key, and repeats until the user quits.
// Every key press produces exactly one frame. The help message is shown
// first unless another message, such as an open error, is pending.
func (e *Editor) Run() error {
	if e.statusMsg == "" {
		e.SetStatusMessage("HELP: Ctrl-S = save | Ctrl-Q = quit | Ctrl-F = find")
	}
	for {
		if err := e.Refresh(); err != nil {
			return err
		}
		if err := e.ProcessKey(); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			return err
		}
	}
}
