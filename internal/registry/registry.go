// Package registry provides a global registry of built-in maps.
// Maps register themselves in init() functions, allowing the CLI to list and
// open them by ID without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-raycaster/internal/mapfile"
)

// MapInfo contains metadata about a registered map.
type MapInfo struct {
	ID    string
	Title string
}

// Factory returns the raw lines of a map file.
type Factory func() []string

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a map to the registry.
// Typically called from an init() function.
// Panics if a map with the same ID is already registered.
func Register(id, title string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: map %q already registered", id))
	}

	factories[id] = f
	titles[id] = title
}

// List returns information about all registered maps, sorted by ID.
func List() []MapInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]MapInfo, 0, len(factories))
	for id := range factories {
		result = append(result, MapInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Lines returns a fresh copy of a map's raw lines.
// Returns an error if the map ID is not registered.
func Lines(id string) ([]string, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown map %q", id)
	}

	return f(), nil
}

// Load parses a registered map.
func Load(id string, opts mapfile.ParseOptions) (*mapfile.Map, error) {
	lines, err := Lines(id)
	if err != nil {
		return nil, err
	}
	return mapfile.Parse(id, lines, opts)
}

// Exists checks if a map with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
