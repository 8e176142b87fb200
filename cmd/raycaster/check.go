package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-raycaster/internal/mapfile"
)

var checkCmd = &cobra.Command{
	Use:   "check <file.cub>...",
	Short: "Validate map files",
	Long: `Parse and validate each map file, printing its size and spawn.

The exit status reports the category of the first failure:
  1    invalid map content or config
  2    file cannot be read
  21   path is a directory
  254  file is empty
  255  file does not end in .cub

Examples:
  raycaster check ./levels/arena.cub
  raycaster check ./levels/*.cub`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

var (
	okStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	errStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

func runCheck(cmd *cobra.Command, args []string) error {
	logger := newLogger(os.Stderr)
	cfg, err := loadRenderConfig(logger)
	if err != nil {
		return err
	}
	loader := mapfile.NewLoader(mapfile.ParseOptions{TileSize: cfg.TileSize}, logger)

	var first error
	failed := 0
	for _, path := range args {
		m, err := loader.Load(path)
		if err != nil {
			fmt.Printf("%s %v\n", errStyle.Render("FAIL"), err)
			if first == nil {
				first = err
			}
			failed++
			continue
		}
		fmt.Printf("%s %s: %dx%d tiles, spawn %s at row %d col %d, %d walkable tiles\n",
			okStyle.Render(" OK "), path, m.Grid.Cols(), m.Grid.Rows(),
			m.Spawn.Facing, m.Spawn.Row+1, m.Spawn.Col+1, len(mapfile.Reachable(m)))
	}

	if first != nil {
		return fmt.Errorf("%d of %d maps failed, first: %w", failed, len(args), first)
	}
	return nil
}
