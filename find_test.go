package kibi

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestFindHighlightsMatch(t *testing.T) {
	e, _, _ := newTestEditor(t, 10, 40, "fn main() {", "    // hi", "}")
	e.doc.SetSyntax(findSyntax(HLDB, "main.rs"))
	row := e.doc.Row(1)
	if got := row.Highlights()[7]; got != hlComment {
		t.Fatalf("before search: class = %v, want comment", got)
	}

	s := newSearch(0)
	e.searchStep(s, "h", 'h')
	e.searchStep(s, "hi", 'i')
	if e.cy != 1 || e.cx != 7 {
		t.Errorf("cursor = %d,%d, want 1,7", e.cy, e.cx)
	}
	hl := row.Highlights()
	if hl[7] != hlMatch || hl[8] != hlMatch {
		t.Errorf("match classes = %v %v, want match", hl[7], hl[8])
	}
	if hl[6] != hlComment {
		t.Errorf("class before the match = %v, want comment", hl[6])
	}

	e.searchStep(s, "hi", keyEsc)
	for i, h := range row.Highlights()[4:] {
		if h != hlComment {
			t.Errorf("after search: class %d = %v, want comment", i+4, h)
		}
	}
}

func TestFindCancelRestoresView(t *testing.T) {
	e, screen, _ := newTestEditor(t, 10, 40, "fn main() {", "    // hi", "}")
	e.doc.SetSyntax(findSyntax(HLDB, "main.rs"))
	screen.keys = append(typed("hi"), keyEsc)

	if err := e.Find(); !errors.Is(err, ErrPromptCanceled) {
		t.Fatalf("Find() = %v, want ErrPromptCanceled", err)
	}
	if e.cy != 0 || e.cx != 0 {
		t.Errorf("cursor = %d,%d, want 0,0", e.cy, e.cx)
	}
	if !strings.Contains(screen.frames[len(screen.frames)-1], "Search: hi") {
		t.Error("last frame does not show the query")
	}
	for _, h := range e.doc.Row(1).Highlights()[3:] {
		if h == hlMatch {
			t.Fatal("match highlight left after cancel")
		}
	}
}

func TestFindCancelRestoresScrolledView(t *testing.T) {
	var lines []string
	for i := range 40 {
		lines = append(lines, fmt.Sprintf("row %02d\tend", i))
	}
	e, screen, _ := newTestEditor(t, 10, 12, lines...)
	e.cy, e.cx = 25, 7
	refresh(t, e, screen)
	before := e.view()
	if before.rowOff == 0 {
		t.Fatalf("view did not scroll: %+v", before)
	}

	screen.keys = append(typed("row 03"), keyArrowDown, keyEsc)
	if err := e.Find(); !errors.Is(err, ErrPromptCanceled) {
		t.Fatalf("Find() = %v, want ErrPromptCanceled", err)
	}
	if got := e.view(); got != before {
		t.Errorf("view = %+v, want %+v", got, before)
	}
}

func TestFindConfirmKeepsMatch(t *testing.T) {
	e, screen, _ := newTestEditor(t, 10, 40, "alpha", "beta", "gamma")
	screen.keys = append(typed("mm"), keyEnter)

	if err := e.Find(); err != nil {
		t.Fatalf("Find() = %v", err)
	}
	if e.cy != 2 || e.cx != 2 {
		t.Errorf("cursor = %d,%d, want 2,2", e.cy, e.cx)
	}
	for _, h := range e.doc.Row(2).Highlights() {
		if h == hlMatch {
			t.Fatal("match highlight left after confirm")
		}
	}
}

func TestFindWrapsAround(t *testing.T) {
	e, screen, _ := newTestEditor(t, 10, 40, "target", "a", "b")
	e.cy = 2
	screen.keys = append(typed("target"), keyEnter)

	if err := e.Find(); err != nil {
		t.Fatalf("Find() = %v", err)
	}
	if e.cy != 0 {
		t.Errorf("cy = %d, want 0", e.cy)
	}
}

func TestFindStartsOnCurrentRow(t *testing.T) {
	e, _, _ := newTestEditor(t, 10, 40, "ab", "ab", "ab")
	s := newSearch(1)
	e.searchStep(s, "ab", 'b')
	if e.cy != 1 {
		t.Errorf("cy = %d, want 1", e.cy)
	}
}

func TestFindArrowKeys(t *testing.T) {
	e, _, _ := newTestEditor(t, 10, 40, "x1", "x2", "x3")
	s := newSearch(0)

	steps := []struct {
		k    Key
		want int
	}{
		{'x', 0},
		{keyArrowDown, 1},
		{keyArrowRight, 2},
		{keyArrowDown, 0},
		{keyArrowUp, 2},
		{keyArrowLeft, 1},
	}
	for _, st := range steps {
		e.searchStep(s, "x", st.k)
		if e.cy != st.want {
			t.Errorf("after %q: cy = %d, want %d", rune(st.k), e.cy, st.want)
		}
	}
}

func TestFindNoMatch(t *testing.T) {
	e, screen, _ := newTestEditor(t, 10, 40, "abc", "def")
	e.cy, e.cx = 1, 2
	screen.keys = append(typed("zz"), keyEnter)

	if err := e.Find(); err != nil {
		t.Fatalf("Find() = %v", err)
	}
	if e.cy != 1 || e.cx != 2 {
		t.Errorf("cursor = %d,%d, want 1,2", e.cy, e.cx)
	}
}

func TestFindEmptyDocument(t *testing.T) {
	e, _, _ := newTestEditor(t, 10, 40)
	e.searchStep(newSearch(0), "x", 'x')
	if e.cy != 0 || e.cx != 0 {
		t.Errorf("cursor = %d,%d, want 0,0", e.cy, e.cx)
	}
}

func TestFindAfterTab(t *testing.T) {
	e, _, _ := newTestEditor(t, 10, 40, "\tneedle")
	e.searchStep(newSearch(0), "needle", 'e')
	if e.cx != 1 {
		t.Errorf("cx = %d, want 1", e.cx)
	}
}
