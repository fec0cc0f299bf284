package kibi

import (
	"io"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Key is a key press: either a rune or one of the special keys below.
type Key rune

// Key constants
const (
	keyTab       Key = '\t'
	keyEnter     Key = '\r'
	keyEsc       Key = 0x1b
	keyBackspace Key = 127
)

// Special keys live past the last valid rune so they never collide with
// typed text.
const (
	keyArrowLeft Key = unicode.MaxRune + 1 + iota
	keyArrowRight
	keyArrowUp
	keyArrowDown
	keyDelete
	keyHome
	keyEnd
	keyPageUp
	keyPageDown
)

// ctrl returns the key produced by pressing c together with Ctrl.
func ctrl(c byte) Key {
	return Key(c & 0x1f)
}

// isPrintable reports whether k is text that can be inserted.
func isPrintable(k Key) bool {
	return k == keyTab || k <= unicode.MaxRune && unicode.IsPrint(rune(k))
}

// nextByte reads one more byte of a sequence. A timeout or error ends the
// sequence.
func nextByte(r io.Reader) (byte, bool) {
	var b [1]byte
	n, _ := r.Read(b[:])
	if n != 1 {
		return 0, false
	}
	return b[0], true
}

// ReadKey blocks until a full key press is available on r. Reads that
// return no bytes and no error are retried, which is how a raw terminal
// reports its read timeout. Escape sequences for keys the editor does not
// use are consumed and dropped.
func ReadKey(r io.Reader) (Key, error) {
	for {
		c, err := readByte(r)
		if err != nil {
			return 0, err
		}
		switch {
		case c == byte(keyEsc):
			if k, ok := readEscape(r); ok {
				return k, nil
			}
		case c == '\n':
			return keyEnter, nil
		case c >= utf8.RuneSelf:
			return readRune(r, c), nil
		default:
			return Key(c), nil
		}
	}
}

func readByte(r io.Reader) (byte, error) {
	var buf [1]byte
	for {
		n, err := r.Read(buf[:])
		if n == 1 {
			return buf[0], nil
		}
		if err != nil {
			return 0, err
		}
	}
}

func readRune(r io.Reader, lead byte) Key {
	size := 0
	switch {
	case lead&0xe0 == 0xc0:
		size = 2
	case lead&0xf0 == 0xe0:
		size = 3
	case lead&0xf8 == 0xf0:
		size = 4
	default:
		return Key(utf8.RuneError)
	}
	p := []byte{lead}
	for len(p) < size {
		b, ok := nextByte(r)
		if !ok {
			return Key(utf8.RuneError)
		}
		p = append(p, b)
	}
	ch, _ := utf8.DecodeRune(p)
	return Key(ch)
}

// maxCSI bounds the parameter bytes kept for one control sequence. Longer
// sequences are read to the end and dropped.
const maxCSI = 16

// readEscape decodes the rest of an escape sequence. A sequence cut short
// by the read timeout is a plain Escape. The second result is false for a
// complete sequence that maps to no key.
func readEscape(r io.Reader) (Key, bool) {
	seq0, ok := nextByte(r)
	if !ok {
		return keyEsc, true
	}
	switch seq0 {
	case '[':
		return readCSI(r)
	case 'O':
		seq1, ok := nextByte(r)
		if !ok {
			return keyEsc, true
		}
		switch seq1 {
		case 'H':
			return keyHome, true
		case 'F':
			return keyEnd, true
		}
	}
	return 0, false
}

// readCSI reads parameter and intermediate bytes up to the final byte of
// a "\x1b[" sequence. Modifiers such as the 5 in "1;5C" are ignored.
func readCSI(r io.Reader) (Key, bool) {
	var params []byte
	tooLong := false
	for {
		b, ok := nextByte(r)
		if !ok {
			return keyEsc, true
		}
		if b >= 0x40 && b <= 0x7e {
			if tooLong {
				return 0, false
			}
			return csiKey(string(params), b)
		}
		if b < 0x20 || b > 0x7e {
			return 0, false
		}
		if len(params) == maxCSI {
			tooLong = true
			continue
		}
		params = append(params, b)
	}
}

func csiKey(params string, final byte) (Key, bool) {
	first, _, _ := strings.Cut(params, ";")
	if final == '~' {
		switch first {
		case "1", "7":
			return keyHome, true
		case "3":
			return keyDelete, true
		case "4", "8":
			return keyEnd, true
		case "5":
			return keyPageUp, true
		case "6":
			return keyPageDown, true
		}
		return 0, false
	}
	if first != "" && first != "1" {
		return 0, false
	}
	switch final {
	case 'A':
		return keyArrowUp, true
	case 'B':
		return keyArrowDown, true
	case 'C':
		return keyArrowRight, true
	case 'D':
		return keyArrowLeft, true
	case 'H':
		return keyHome, true
	case 'F':
		return keyEnd, true
	}
	return 0, false
}
