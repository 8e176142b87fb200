// Package maps registers the built-in .cub maps shipped with the binary.
package maps

import (
	"embed"
	"path"
	"strings"

	"github.com/vovakirdan/tui-raycaster/internal/mapfile"
	"github.com/vovakirdan/tui-raycaster/internal/registry"
)

//go:embed data/*.cub
var files embed.FS

var titles = map[string]string{
	"room":      "Small Room",
	"maze":      "Maze",
	"courtyard": "Courtyard",
	"pillars":   "Pillar Hall",
}

func init() {
	entries, err := files.ReadDir("data")
	if err != nil {
		panic(err)
	}
	for _, e := range entries {
		name := e.Name()
		id := strings.TrimSuffix(name, mapfile.Extension)
		data, err := files.ReadFile(path.Join("data", name))
		if err != nil {
			panic(err)
		}
		title, ok := titles[id]
		if !ok {
			title = id
		}
		registry.Register(id, title, func() []string {
			return mapfile.SplitLines(data)
		})
	}
}
