package mapfile

import (
	"errors"
	"fmt"
)

// Parse error kinds. Use errors.Is against these.
var (
	ErrUnknownKey    = errors.New("unknown metadata key")
	ErrDuplicateKey  = errors.New("duplicate metadata key")
	ErrMissingKey    = errors.New("missing metadata key")
	ErrInvalidValue  = errors.New("invalid metadata value")
	ErrNoMap         = errors.New("no map body")
	ErrBlankLine     = errors.New("blank line inside map body")
	ErrUnknownSymbol = errors.New("unknown map symbol")
	ErrNoSpawn       = errors.New("no spawn")
	ErrMultipleSpawn = errors.New("multiple spawns")
	ErrOpenBorder    = errors.New("border not closed")
)

// Load error kinds, raised before parsing starts.
var (
	ErrBadExtension = errors.New("bad map file extension")
	ErrIsDirectory  = errors.New("map path is a directory")
	ErrUnreadable   = errors.New("map file unreadable")
	ErrEmptyFile    = errors.New("map file is empty")
)

// ParseError reports a malformed map with its position.
// Line and Col are 1-based; zero means "not tied to a position".
type ParseError struct {
	Name string
	Line int
	Col  int
	Kind error
	Msg  string
}

func (e *ParseError) Error() string {
	pos := e.Name
	if pos == "" {
		pos = "<map>"
	}
	if e.Line > 0 {
		pos = fmt.Sprintf("%s:%d", pos, e.Line)
		if e.Col > 0 {
			pos = fmt.Sprintf("%s:%d", pos, e.Col)
		}
	}
	if e.Msg == "" {
		return fmt.Sprintf("%s: %v", pos, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %s", pos, e.Kind, e.Msg)
}

func (e *ParseError) Unwrap() error {
	return e.Kind
}

// LoadError reports a map file that could not be handed to the parser.
type LoadError struct {
	Path string
	Kind error
	Err  error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v: %v", e.Path, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Kind)
}

func (e *LoadError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}
