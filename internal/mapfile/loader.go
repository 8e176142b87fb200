package mapfile

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Extension is the only accepted map file suffix.
const Extension = ".cub"

// Loader reads map files from disk and hands their lines to Parse.
type Loader struct {
	Opts   ParseOptions
	Logger *log.Logger
}

// NewLoader creates a loader. A nil logger falls back to the package default.
func NewLoader(opts ParseOptions, logger *log.Logger) *Loader {
	if logger == nil {
		logger = log.Default()
	}
	return &Loader{Opts: opts, Logger: logger}
}

// Load validates the path, reads the file and parses it.
// File-level problems come back as *LoadError, content problems as *ParseError.
func (l *Loader) Load(path string) (*Map, error) {
	lines, err := ReadLines(path)
	if err != nil {
		return nil, err
	}
	l.Logger.Debug("read map file", "path", path, "lines", len(lines))

	m, err := Parse(filepath.Base(path), lines, l.Opts)
	if err != nil {
		return nil, err
	}
	l.Logger.Debug("parsed map",
		"path", path,
		"cols", m.Grid.Cols(),
		"rows", m.Grid.Rows(),
		"spawn", m.Spawn.Facing.String())
	return m, nil
}

// ReadLines checks the extension, rejects directories and empty files, and
// splits the content into lines.
func ReadLines(path string) ([]string, error) {
	if filepath.Ext(path) != Extension {
		return nil, &LoadError{Path: path, Kind: ErrBadExtension}
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, &LoadError{Path: path, Kind: ErrUnreadable, Err: err}
	}
	if info.IsDir() {
		return nil, &LoadError{Path: path, Kind: ErrIsDirectory}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Kind: ErrUnreadable, Err: err}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &LoadError{Path: path, Kind: ErrEmptyFile}
	}
	return SplitLines(data), nil
}

// SplitLines splits raw file content into lines without their terminators.
func SplitLines(data []byte) []string {
	var lines []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 4096), len(data)+1)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines
}
