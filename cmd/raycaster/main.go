// raycaster renders .cub maps as a first-person raycast view in the terminal.
//
// Usage:
//
//	raycaster list                 - List built-in maps
//	raycaster play [map]           - Walk through a map (menu when omitted)
//	raycaster check <file.cub>...  - Validate map files
//	raycaster snapshot <map>       - Render one frame to stdout
//	raycaster bench <map>          - Time the renderer and record the run
//	raycaster history [map]        - Show recorded bench runs
//
// Global flags:
//
//	--config <path>     - Renderer config YAML (default: search ~/.raycaster/configs, ./configs)
//	--db <path>         - Bench database (default: ~/.raycaster/bench.db)
//	--log-level <level> - debug, info, warn or error
//	--fps <rate>        - Tick rate of the interactive viewer
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-raycaster/internal/config"
	"github.com/vovakirdan/tui-raycaster/internal/mapfile"
	"github.com/vovakirdan/tui-raycaster/internal/registry"

	// Import built-in maps to register them
	_ "github.com/vovakirdan/tui-raycaster/internal/maps"
)

// Exit codes by failure category.
const (
	exitOK          = 0
	exitInvalid     = 1
	exitUnreadable  = 2
	exitIsDirectory = 21
	exitEmptyFile   = 254
	exitBadExt      = 255
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagLogLevel string
	flagFPS      int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

var rootCmd = &cobra.Command{
	Use:   "raycaster",
	Short: "Raycaster - walk through .cub maps in your terminal",
	Long: `Raycaster parses .cub map files and renders them as a first-person
view using a fixed-step ray caster.

Available commands:
  list      - Show built-in maps
  play      - Walk through a map interactively
  check     - Validate map files
  snapshot  - Render a single frame to stdout
  bench     - Measure rendering speed
  history   - Show recorded bench runs

Examples:
  raycaster list
  raycaster play maze
  raycaster play ./levels/arena.cub
  raycaster check ./levels/*.cub
  raycaster snapshot room --width 100 --height 40 --color
  raycaster bench maze --frames 500 --workers 4`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to renderer config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.raycaster/bench.db", "Path to bench database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate of the interactive viewer")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(historyCmd)
}

// newLogger builds the command logger writing to w.
func newLogger(w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "raycaster",
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		level = log.WarnLevel
		logger.Warn("unknown log level, using warn", "level", flagLogLevel)
	}
	logger.SetLevel(level)
	return logger
}

// fileLogger logs to ~/.raycaster/raycaster.log so the alternate screen stays clean.
// Falls back to discarding output if the file cannot be opened.
func fileLogger() (*log.Logger, func()) {
	home, err := os.UserHomeDir()
	if err == nil {
		dir := filepath.Join(home, ".raycaster")
		if err = os.MkdirAll(dir, 0o755); err == nil {
			var f *os.File
			f, err = os.OpenFile(filepath.Join(dir, "raycaster.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
			if err == nil {
				return newLogger(f), func() { f.Close() }
			}
		}
	}
	return newLogger(io.Discard), func() {}
}

// loadRenderConfig loads the renderer config honoring --config.
func loadRenderConfig(logger *log.Logger) (config.RenderConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	logger.Debug("config loaded", "tile", cfg.TileSize, "fov", cfg.FOVDegrees, "workers", cfg.Workers)
	return cfg, nil
}

// openMap resolves a built-in map ID or a .cub path.
// Returns the map and the ID used for bench history.
func openMap(arg string, cfg config.RenderConfig, logger *log.Logger) (*mapfile.Map, string, error) {
	opts := mapfile.ParseOptions{TileSize: cfg.TileSize}
	if registry.Exists(arg) {
		m, err := registry.Load(arg, opts)
		return m, arg, err
	}
	m, err := mapfile.NewLoader(opts, logger).Load(arg)
	if err != nil {
		return nil, "", err
	}
	id := strings.TrimSuffix(filepath.Base(arg), mapfile.Extension)
	return m, id, nil
}

// exitCode maps an error to its process exit status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, mapfile.ErrBadExtension):
		return exitBadExt
	case errors.Is(err, mapfile.ErrIsDirectory):
		return exitIsDirectory
	case errors.Is(err, mapfile.ErrEmptyFile):
		return exitEmptyFile
	case errors.Is(err, mapfile.ErrUnreadable):
		return exitUnreadable
	default:
		return exitInvalid
	}
}
