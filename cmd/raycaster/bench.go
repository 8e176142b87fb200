package main

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-raycaster/internal/core"
	"github.com/vovakirdan/tui-raycaster/internal/session"
	"github.com/vovakirdan/tui-raycaster/internal/storage"
)

var (
	flagBenchFrames  int
	flagBenchWorkers int
	flagBenchWidth   int
	flagBenchHeight  int
	flagBenchNoSave  bool
)

var benchCmd = &cobra.Command{
	Use:   "bench <map>",
	Short: "Measure rendering speed",
	Long: `Render a number of frames off screen and report the mean frame time.
The player stays at the spawn point and turns one full circle over the run.
Results are stored in the bench database unless --no-save is given.

Examples:
  raycaster bench room
  raycaster bench maze --frames 1000 --workers 4
  raycaster bench ./levels/arena.cub --width 320 --height 200 --no-save`,
	Args: cobra.ExactArgs(1),
	RunE: runBench,
}

func init() {
	benchCmd.Flags().IntVar(&flagBenchFrames, "frames", 200, "Number of frames to render")
	benchCmd.Flags().IntVar(&flagBenchWorkers, "workers", 0, "Goroutines casting columns (0 = from config)")
	benchCmd.Flags().IntVar(&flagBenchWidth, "width", 160, "Frame width in pixels")
	benchCmd.Flags().IntVar(&flagBenchHeight, "height", 96, "Frame height in pixels")
	benchCmd.Flags().BoolVar(&flagBenchNoSave, "no-save", false, "Do not record the run")
}

func runBench(cmd *cobra.Command, args []string) error {
	logger := newLogger(os.Stderr)
	if flagBenchFrames < 1 {
		return fmt.Errorf("--frames must be at least 1, got %d", flagBenchFrames)
	}

	cfg, err := loadRenderConfig(logger)
	if err != nil {
		return err
	}
	if flagBenchWorkers > 0 {
		cfg.Workers = flagBenchWorkers
	}
	cfg.Minimap.Enabled = false
	cfg = cfg.WithScreen(core.Max(flagBenchWidth, 1), core.Max(flagBenchHeight, 1))

	m, id, err := openMap(args[0], cfg, logger)
	if err != nil {
		return err
	}
	s, err := session.New(m, cfg)
	if err != nil {
		return err
	}

	run := benchSession(s, flagBenchFrames)
	run.MapID = id
	logger.Info("bench finished", "map", id, "frames", run.Frames, "total", run.Total)

	label := lipgloss.NewStyle().Bold(true)
	fmt.Printf("%s %s (%dx%d, %d workers)\n", label.Render("Map:"), id, run.Width, run.Height, run.Workers)
	fmt.Printf("%s %d in %s\n", label.Render("Frames:"), run.Frames, run.Total.Round(time.Microsecond))
	fmt.Printf("%s %s/frame, %.1f FPS\n", label.Render("Mean:"), run.PerFrame(), run.FPS())

	if flagBenchNoSave {
		return nil
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if _, err := store.SaveRun(run); err != nil {
		return err
	}
	logger.Debug("bench run saved", "db", flagDBPath)
	best, err := store.BestRun(id)
	if err != nil {
		return err
	}
	if best != nil {
		fmt.Printf("%s %s/frame (%dx%d, %d workers)\n", label.Render("Best:"), best.PerFrame(), best.Width, best.Height, best.Workers)
	}
	return nil
}

// benchSession renders frames off screen while turning the player one full
// circle, and returns the timing without a map ID.
func benchSession(s *session.Session, frames int) storage.BenchRun {
	cfg := s.Config()
	scr := core.NewScreen(cfg.ScreenW, cfg.ScreenH)
	turn := 2 * math.Pi / float64(frames)

	start := time.Now()
	for i := 0; i < frames; i++ {
		s.Render(scr)
		s.Player.Angle += turn
		s.Player.Normalize()
	}
	total := time.Since(start)

	return storage.BenchRun{
		Width:   cfg.ScreenW,
		Height:  cfg.ScreenH,
		Workers: cfg.Workers,
		Frames:  frames,
		Total:   total,
	}
}
