package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-raycaster/internal/mapfile"
	"github.com/vovakirdan/tui-raycaster/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List built-in maps",
	Long:  `Display all maps bundled with the binary, with their size and spawn.`,
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	maps := registry.List()

	if len(maps) == 0 {
		fmt.Println("No maps registered.")
		return nil
	}

	fmt.Println("Built-in maps:")
	fmt.Println()

	for _, info := range maps {
		detail := ""
		if m, err := registry.Load(info.ID, mapfile.ParseOptions{}); err == nil {
			detail = fmt.Sprintf("%dx%d, spawn %s", m.Grid.Cols(), m.Grid.Rows(), m.Spawn.Facing)
		}
		fmt.Printf("  %-12s %-14s %s\n", info.ID, info.Title, detail)
	}

	fmt.Println()
	fmt.Println("Use 'raycaster play <map>' to start.")
	return nil
}
