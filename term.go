package kibi

import (
	"errors"
	"os"
	"sync"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

const (
	altScreenOn  = "\x1b[?1049h"
	altScreenOff = "\x1b[?1049l"
	clearScreen  = "\x1b[2J\x1b[H"
)

// Terminal is the controlling terminal in raw mode. It implements Screen.
type Terminal struct {
	in, out   int
	orig      *unix.Termios
	closeOnce sync.Once
	closeErr  error
}

// OpenTerminal switches stdin to raw mode and the display to the alternate
// screen. Close must be called on every exit path to undo both.
func OpenTerminal() (*Terminal, error) {
	t := &Terminal{in: int(os.Stdin.Fd()), out: int(os.Stdout.Fd())}
	if !term.IsTerminal(t.in) {
		return nil, errors.New("stdin is not a terminal")
	}
	if err := t.enableRawMode(); err != nil {
		return nil, err
	}
	if _, err := t.Write([]byte(altScreenOn)); err != nil {
		t.Close()
		return nil, err
	}
	return t, nil
}

func (t *Terminal) enableRawMode() error {
	orig, err := unix.IoctlGetTermios(t.in, ioctlReadTermios)
	if err != nil {
		return err
	}
	raw := *orig
	// Input modes
	raw.Iflag &^= unix.BRKINT | unix.ICRNL | unix.INPCK | unix.ISTRIP | unix.IXON
	// Output modes
	raw.Oflag &^= unix.OPOST
	// Control modes
	raw.Cflag |= unix.CS8
	// Local modes
	raw.Lflag &^= unix.ECHO | unix.ICANON | unix.IEXTEN | unix.ISIG
	// return after 100ms even when nothing was typed
	raw.Cc[unix.VMIN] = 0
	raw.Cc[unix.VTIME] = 1

	if err := unix.IoctlSetTermios(t.in, ioctlWriteTermios, &raw); err != nil {
		return err
	}
	t.orig = orig
	return nil
}

// Close clears the screen, leaves the alternate screen and restores the
// original terminal mode. It is safe to call more than once and from a
// signal handler goroutine.
func (t *Terminal) Close() error {
	t.closeOnce.Do(func() {
		if t.orig == nil {
			return
		}
		t.Write([]byte(clearScreen + altScreenOff))
		t.closeErr = unix.IoctlSetTermios(t.in, ioctlWriteTermios, t.orig)
	})
	return t.closeErr
}

// Read reads raw input. A read timeout is reported as zero bytes and no
// error.
func (t *Terminal) Read(p []byte) (int, error) {
	n, err := unix.Read(t.in, p)
	if err == unix.EAGAIN || err == unix.EINTR {
		return 0, nil
	}
	if n < 0 {
		n = 0
	}
	return n, err
}

// Write writes all of p to the terminal.
func (t *Terminal) Write(p []byte) (int, error) {
	written := 0
	for written < len(p) {
		n, err := unix.Write(t.out, p[written:])
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return written, err
		}
		written += n
	}
	return written, nil
}

// ReadKey blocks until the next key press.
func (t *Terminal) ReadKey() (Key, error) {
	return ReadKey(t)
}

// Size returns the window size in rows and columns. Failures, including a
// terminal that reports a zero size, are an *IOError with Op "size".
func (t *Terminal) Size() (rows, cols int, err error) {
	cols, rows, err = term.GetSize(t.out)
	if err != nil {
		return 0, 0, &IOError{Op: "size", Err: err}
	}
	if cols == 0 || rows == 0 {
		return 0, 0, &IOError{Op: "size", Err: errZeroSize}
	}
	return rows, cols, nil
}
