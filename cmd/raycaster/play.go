package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-raycaster/internal/config"
	"github.com/vovakirdan/tui-raycaster/internal/core"
	"github.com/vovakirdan/tui-raycaster/internal/platform/tui"
	"github.com/vovakirdan/tui-raycaster/internal/session"
	"github.com/vovakirdan/tui-raycaster/internal/storage"
)

var (
	flagMinimap bool
	flagWorkers int
)

var playCmd = &cobra.Command{
	Use:   "play [map]",
	Short: "Walk through a map",
	Long: `Open a map in the interactive first-person viewer.
The map is a built-in ID (see 'raycaster list') or a path to a .cub file.
Without an argument a map picker is shown.

Controls:
  W/S, Up/Down     - Move forward/back
  A/D, Left/Right  - Turn
  Q/E              - Strafe
  M/Tab            - Toggle minimap
  P/Space          - Pause
  R                - Respawn
  Ctrl+S           - Save a text screenshot to ~/.raycaster/screenshots
  Esc/Ctrl+C       - Quit

Logs are written to ~/.raycaster/raycaster.log while the viewer runs.

Examples:
  raycaster play
  raycaster play maze --minimap
  raycaster play ./levels/arena.cub --workers 4`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagMinimap, "minimap", false, "Show the minimap at start")
	playCmd.Flags().IntVar(&flagWorkers, "workers", 0, "Goroutines casting columns (0 = from config)")
}

func runPlay(cmd *cobra.Command, args []string) error {
	logger, closeLog := fileLogger()
	defer closeLog()

	cfg, err := loadRenderConfig(logger)
	if err != nil {
		return err
	}
	if flagMinimap {
		cfg.Minimap.Enabled = true
	}
	if flagWorkers > 0 {
		cfg.Workers = flagWorkers
	}
	rt := runtimeConfig()

	if len(args) == 1 {
		return playMap(args[0], cfg, rt, logger)
	}

	// Menu loop: picker -> viewer or history -> back to picker
	for {
		res, err := tui.RunMenu(rt)
		if err != nil {
			return err
		}
		rt = res.Config
		switch {
		case res.Quit:
			return nil
		case res.WantHistory:
			store, err := storage.Open(flagDBPath)
			if err != nil {
				return err
			}
			goBack, err := tui.RunHistory(store, "", rt.ScreenW, rt.ScreenH)
			store.Close()
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}
		default:
			if err := playMap(res.MapID, cfg, rt, logger); err != nil {
				return err
			}
		}
	}
}

func playMap(arg string, cfg config.RenderConfig, rt core.RuntimeConfig, logger *log.Logger) error {
	m, id, err := openMap(arg, cfg, logger)
	if err != nil {
		return err
	}
	s, err := session.New(m, cfg)
	if err != nil {
		return err
	}
	logger.Info("viewer started", "map", id, "cols", rt.ScreenW, "rows", rt.ScreenH, "workers", cfg.Workers)
	return tui.Run(s, rt, logger)
}

// runtimeConfig reads the terminal size, falling back to 80x24.
func runtimeConfig() core.RuntimeConfig {
	rt := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		rt.ScreenW = w
		rt.ScreenH = h
	}
	if flagFPS > 0 {
		rt.TickRate = flagFPS
	}
	return rt
}
