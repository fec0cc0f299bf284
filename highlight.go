package kibi

import (
	"strings"
	"unicode"
)

// Highlight is the syntax class of a single rendered rune.
type Highlight uint8

// Syntax highlight types
const (
	hlNormal Highlight = iota
	hlComment
	hlMLComment
	hlKeyword1
	hlKeyword2
	hlString
	hlNumber
	hlMatch
)

var highlightNames = [...]string{
	hlNormal:    "normal",
	hlComment:   "comment",
	hlMLComment: "mlcomment",
	hlKeyword1:  "keyword1",
	hlKeyword2:  "keyword2",
	hlString:    "string",
	hlNumber:    "number",
	hlMatch:     "match",
}

func (h Highlight) String() string {
	if int(h) < len(highlightNames) {
		return highlightNames[h]
	}
	return "unknown"
}

// Syntax flags
const (
	HighlightNumbers = 1 << iota
	HighlightStrings
)

// Syntax describes how one language is highlighted. Languages are added
// by adding a Syntax value, either to HLDB or through the config file.
type Syntax struct {
	// Filetype is shown in the status bar.
	Filetype string
	// FileMatch patterns starting with a dot are compared with the file
	// extension, anything else is matched as a substring of the name.
	FileMatch []string
	// Keywords are highlighted as keyword1 (control flow, declarations).
	Keywords []string
	// Types are highlighted as keyword2 (built-in type names).
	Types []string

	SingleLineCommentStart string
	MultiLineCommentStart  string
	MultiLineCommentEnd    string

	Flags int
}

func isSeparator(c rune) bool {
	return c == 0 || unicode.IsSpace(c) || strings.ContainsRune(",.()+-/*=~%<>[]{}:;&|!^", c)
}

// hasPrefixAt reports whether s occurs in r at position i.
func hasPrefixAt(r []rune, i int, s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if i >= len(r) || r[i] != c {
			return false
		}
		i++
	}
	return true
}

// Highlight classifies every rune of render. openComment tells whether the
// previous row ended inside a multi-line comment; the second result is the
// same flag for this row. A nil Syntax leaves everything normal.
func (s *Syntax) Highlight(render []rune, openComment bool) ([]Highlight, bool) {
	hl := make([]Highlight, len(render))
	if s == nil {
		return hl, false
	}

	scs := s.SingleLineCommentStart
	mcs := s.MultiLineCommentStart
	mce := s.MultiLineCommentEnd
	multiline := mcs != "" && mce != ""

	prevSep := true
	inComment := openComment && multiline
	// set to the quote rune while inside a string
	var inString rune
	// a number run may contain a single dot
	dotSeen := false

	i := 0
	for i < len(render) {
		c := render[i]
		prevHL := hlNormal
		if i > 0 {
			prevHL = hl[i-1]
		}

		// "--[[" opens a block comment even though "--" starts a line comment
		if inString == 0 && !inComment && hasPrefixAt(render, i, scs) &&
			!(multiline && hasPrefixAt(render, i, mcs)) {
			for j := i; j < len(render); j++ {
				hl[j] = hlComment
			}
			break
		}

		if multiline && inString == 0 {
			if inComment {
				if hasPrefixAt(render, i, mce) {
					n := len([]rune(mce))
					for j := i; j < i+n; j++ {
						hl[j] = hlMLComment
					}
					i += n
					inComment = false
					prevSep = true
					continue
				}
				hl[i] = hlMLComment
				i++
				continue
			} else if hasPrefixAt(render, i, mcs) {
				n := len([]rune(mcs))
				for j := i; j < i+n; j++ {
					hl[j] = hlMLComment
				}
				i += n
				inComment = true
				continue
			}
		}

		if s.Flags&HighlightStrings != 0 {
			if inString != 0 {
				hl[i] = hlString
				if c == '\\' && i+1 < len(render) {
					hl[i+1] = hlString
					i += 2
					continue
				}
				if c == inString {
					inString = 0
				}
				i++
				prevSep = true
				continue
			} else if c == '"' || c == '\'' {
				inString = c
				hl[i] = hlString
				i++
				continue
			}
		}

		if s.Flags&HighlightNumbers != 0 {
			if unicode.IsDigit(c) && (prevSep || prevHL == hlNumber) ||
				c == '.' && prevHL == hlNumber && !dotSeen {
				if prevHL != hlNumber {
					dotSeen = false
				}
				if c == '.' {
					dotSeen = true
				}
				hl[i] = hlNumber
				i++
				prevSep = false
				continue
			}
		}

		if prevSep {
			if n, class := s.keywordAt(render, i); n > 0 {
				for j := i; j < i+n; j++ {
					hl[j] = class
				}
				i += n
				prevSep = false
				continue
			}
		}

		prevSep = isSeparator(c)
		i++
	}

	return hl, inComment
}

// keywordAt returns the length and class of the keyword starting at i, or
// zero if none ends on a separator there.
func (s *Syntax) keywordAt(render []rune, i int) (int, Highlight) {
	for _, set := range []struct {
		words []string
		class Highlight
	}{
		{s.Keywords, hlKeyword1},
		{s.Types, hlKeyword2},
	} {
		for _, kw := range set.words {
			if !hasPrefixAt(render, i, kw) {
				continue
			}
			end := i + len([]rune(kw))
			if end == len(render) || isSeparator(render[end]) {
				return end - i, set.class
			}
		}
	}
	return 0, hlNormal
}

func syntaxToColor(hl Highlight) int {
	switch hl {
	case hlComment, hlMLComment:
		return 36 // cyan
	case hlKeyword1:
		return 33 // yellow
	case hlKeyword2:
		return 32 // green
	case hlString:
		return 35 // magenta
	case hlNumber:
		return 31 // red
	case hlMatch:
		return 34 // blue
	default:
		return 37 // white
	}
}
