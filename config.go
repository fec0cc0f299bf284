package kibi

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the user settings read from config.toml. The editor never
// writes it.
type Config struct {
	TabStop int `toml:"tab_stop"`
	// QuitTimes is how many extra Ctrl-Q presses quit with unsaved changes.
	QuitTimes int `toml:"quit_times"`
	// MessageTimeout is how long a status message stays, in seconds.
	MessageTimeout int            `toml:"message_timeout"`
	Syntax         []SyntaxConfig `toml:"syntax"`
}

// SyntaxConfig declares an extra language. Entries take precedence over
// the built-in HLDB.
type SyntaxConfig struct {
	Filetype              string   `toml:"filetype"`
	FileMatch             []string `toml:"filematch"`
	Keywords              []string `toml:"keywords"`
	Types                 []string `toml:"types"`
	SingleLineComment     string   `toml:"single_line_comment"`
	MultiLineCommentStart string   `toml:"multiline_comment_start"`
	MultiLineCommentEnd   string   `toml:"multiline_comment_end"`
	HighlightNumbers      bool     `toml:"highlight_numbers"`
	HighlightStrings      bool     `toml:"highlight_strings"`
}

// ConfigError is a config file that exists but cannot be used.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// DefaultConfig returns the settings used when there is no config file.
func DefaultConfig() Config {
	return Config{
		TabStop:        defaultTabStop,
		QuitTimes:      3,
		MessageTimeout: 5,
	}
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/kibi/config.toml or the
// platform equivalent, or "" if there is no config directory.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "kibi", "config.toml")
}

// LoadConfig reads path on top of DefaultConfig. A missing file, or an
// empty path, is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, &ConfigError{Path: path, Err: err}
	}
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return DefaultConfig(), &ConfigError{Path: path, Err: err}
	}
	if err := cfg.validate(); err != nil {
		return DefaultConfig(), &ConfigError{Path: path, Err: err}
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.TabStop < 1 || c.TabStop > 16 {
		return fmt.Errorf("tab_stop must be between 1 and 16, got %d", c.TabStop)
	}
	if c.QuitTimes < 0 {
		return fmt.Errorf("quit_times must not be negative, got %d", c.QuitTimes)
	}
	if c.MessageTimeout < 1 {
		return fmt.Errorf("message_timeout must be at least 1, got %d", c.MessageTimeout)
	}
	for i, s := range c.Syntax {
		if s.Filetype == "" {
			return fmt.Errorf("syntax #%d: filetype is required", i+1)
		}
		if len(s.FileMatch) == 0 {
			return fmt.Errorf("syntax %q: filematch is required", s.Filetype)
		}
		if (s.MultiLineCommentStart == "") != (s.MultiLineCommentEnd == "") {
			return fmt.Errorf("syntax %q: multi-line comments need both a start and an end", s.Filetype)
		}
	}
	return nil
}

func (c Config) messageTimeout() time.Duration {
	return time.Duration(c.MessageTimeout) * time.Second
}

// syntaxes returns the configured languages followed by HLDB.
func (c Config) syntaxes() []*Syntax {
	db := make([]*Syntax, 0, len(c.Syntax)+len(HLDB))
	for _, sc := range c.Syntax {
		db = append(db, sc.toSyntax())
	}
	return append(db, HLDB...)
}

func (sc SyntaxConfig) toSyntax() *Syntax {
	s := &Syntax{
		Filetype:               sc.Filetype,
		FileMatch:              sc.FileMatch,
		Keywords:               sc.Keywords,
		Types:                  sc.Types,
		SingleLineCommentStart: sc.SingleLineComment,
		MultiLineCommentStart:  sc.MultiLineCommentStart,
		MultiLineCommentEnd:    sc.MultiLineCommentEnd,
	}
	if sc.HighlightNumbers {
		s.Flags |= HighlightNumbers
	}
	if sc.HighlightStrings {
		s.Flags |= HighlightStrings
	}
	return s
}
