package kibi

import (
	"strings"
	"testing"
)

// classes maps highlights to one letter each so rows compare as strings.
func classes(hl []Highlight) string {
	const letters = "nCMktsdx"
	var b strings.Builder
	for _, h := range hl {
		b.WriteByte(letters[h])
	}
	return b.String()
}

func TestHighlightC(t *testing.T) {
	c := findSyntax(HLDB, "main.c")
	tests := []struct {
		in   string
		want string
	}{
		{"int x = 12;", "tttnnnnnddn"},
		{"return 0;", "kkkkkkndn"},
		{"x1 = 3.14", "nnnnndddd"},
		{"1.2.3", "dddnd"},
		{"interval", "nnnnnnnn"},
		{"(int)", "ntttn"},
		{`"a\"b" 1`, "ssssssnd"},
		{"'x'", "sss"},
		{"a // b", "nnCCCC"},
		{"\"//\"", "ssss"},
		{"/* c */ if", "MMMMMMMnkk"},
	}
	for _, tt := range tests {
		hl, open := c.Highlight([]rune(tt.in), false)
		if got := classes(hl); got != tt.want {
			t.Errorf("Highlight(%q) = %s, want %s", tt.in, got, tt.want)
		}
		if open {
			t.Errorf("Highlight(%q) left a comment open", tt.in)
		}
	}
}

func TestHighlightMultiLineComment(t *testing.T) {
	c := findSyntax(HLDB, "main.c")

	hl, open := c.Highlight([]rune("x /* y"), false)
	if got, want := classes(hl), "nnMMMM"; got != want {
		t.Errorf("opening row = %s, want %s", got, want)
	}
	if !open {
		t.Error("opening row should leave the comment open")
	}

	hl, open = c.Highlight([]rune("y */ 1"), true)
	if got, want := classes(hl), "MMMMnd"; got != want {
		t.Errorf("closing row = %s, want %s", got, want)
	}
	if open {
		t.Error("closing row should close the comment")
	}

	hl, open = c.Highlight([]rune("// x"), true)
	if got, want := classes(hl), "MMMM"; got != want {
		t.Errorf("row inside comment = %s, want %s", got, want)
	}
	if !open {
		t.Error("row inside comment should stay open")
	}
}

func TestHighlightWithoutMultiLineComments(t *testing.T) {
	py := findSyntax(HLDB, "script.py")
	hl, open := py.Highlight([]rune("def f(): # note"), true)
	if got, want := classes(hl), "kkknnnnnnCCCCCC"; got != want {
		t.Errorf("Highlight = %s, want %s", got, want)
	}
	if open {
		t.Error("a syntax without multi-line comments never leaves one open")
	}
}

func TestHighlightNilSyntax(t *testing.T) {
	var s *Syntax
	hl, open := s.Highlight([]rune("int /* x"), true)
	if got, want := classes(hl), "nnnnnnnn"; got != want {
		t.Errorf("Highlight = %s, want %s", got, want)
	}
	if open {
		t.Error("nil syntax should not report an open comment")
	}
}

func TestFindSyntax(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"main.c", "c"},
		{"include/x.h", "c"},
		{"main.go", "go"},
		{"src/main.rs", "rust"},
		{"setup.py", "python"},
		{"notes.txt", ""},
		{"", ""},
		{"main.go.bak", ""},
	}
	for _, tt := range tests {
		got := ""
		if s := findSyntax(HLDB, tt.filename); s != nil {
			got = s.Filetype
		}
		if got != tt.want {
			t.Errorf("findSyntax(%q) = %q, want %q", tt.filename, got, tt.want)
		}
	}
}

func TestFindSyntaxSubstring(t *testing.T) {
	db := []*Syntax{{Filetype: "make", FileMatch: []string{"Makefile"}}}
	if s := findSyntax(db, "src/Makefile"); s == nil || s.Filetype != "make" {
		t.Errorf("findSyntax(Makefile) = %v, want make", s)
	}
}

func TestHighlightString(t *testing.T) {
	if got, want := hlKeyword2.String(), "keyword2"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got, want := Highlight(200).String(), "unknown"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
