package kibi

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LoadLines reads path and splits it into lines without their line
// endings. A missing file is an *IOError wrapping fs.ErrNotExist.
func LoadLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Op: "open", Path: path, Err: err}
	}
	if len(data) == 0 {
		return nil, nil
	}
	lines := strings.Split(string(data), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines, nil
}

// SaveText replaces path with text and returns the number of bytes
// written. The text goes to a temporary file in the same directory which
// is then renamed over path, so a failed save leaves the old file intact.
func SaveText(path, text string) (int, error) {
	if path == "" {
		return 0, &IOError{Op: "save", Err: ErrNoFilename}
	}
	perm := fs.FileMode(0o644)
	if fi, err := os.Stat(path); err == nil {
		perm = fi.Mode().Perm()
	} else if !errors.Is(err, fs.ErrNotExist) {
		return 0, &IOError{Op: "save", Path: path, Err: err}
	}

	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return 0, &IOError{Op: "save", Path: path, Err: err}
	}
	tmp := f.Name()
	fail := func(err error) (int, error) {
		f.Close()
		os.Remove(tmp)
		return 0, &IOError{Op: "save", Path: path, Err: err}
	}

	n, err := f.WriteString(text)
	if err != nil {
		return fail(err)
	}
	if err := f.Sync(); err != nil {
		return fail(err)
	}
	if err := f.Chmod(perm); err != nil {
		return fail(err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return 0, &IOError{Op: "save", Path: path, Err: err}
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return 0, &IOError{Op: "save", Path: path, Err: err}
	}
	return n, nil
}
