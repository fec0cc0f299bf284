package kibi

import (
	"errors"
	"fmt"
)

var (
	// ErrQuit is returned by ProcessKey when the user asks to leave the editor.
	ErrQuit = errors.New("quit editor")

	// ErrPromptCanceled is returned by Prompt when the user presses Escape.
	ErrPromptCanceled = errors.New("user canceled the input prompt")

	// ErrNoFilename means a save was attempted without a filename.
	ErrNoFilename = errors.New("no filename")

	errZeroSize = errors.New("terminal reported a zero size")
)

// IOError is a failed file or terminal operation. It is shown to the user
// in the message bar and never aborts the editor.
type IOError struct {
	Op   string // "open", "save", "size"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
