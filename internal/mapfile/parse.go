package mapfile

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vovakirdan/tui-raycaster/internal/core"
)

// Map symbols.
const (
	SymbolWall  = '1'
	SymbolFloor = ' '
)

// Metadata keys, in canonical order.
const (
	KeyNorth   = "NO"
	KeySouth   = "SO"
	KeyWest    = "WE"
	KeyEast    = "EA"
	KeyFloor   = "F"
	KeyCeiling = "C"
)

var metadataKeys = []string{KeyNorth, KeySouth, KeyWest, KeyEast, KeyFloor, KeyCeiling}

// ParseOptions configures the parser.
type ParseOptions struct {
	TileSize int // pixel extent of one tile; DefaultTileSize when zero
}

// Metadata holds the header values of a map file.
type Metadata struct {
	Textures map[Orientation]string
	Floor    core.Color
	Ceiling  core.Color
}

// SpawnPoint is the validated starting tile and facing of the player.
type SpawnPoint struct {
	Row    int
	Col    int
	Facing Orientation
}

// Pose returns the spawn position (tile center, pixel space) and angle.
func (s SpawnPoint) Pose(g *Grid) (core.Vec2, float64) {
	return g.TileCenter(s.Row, s.Col), s.Facing.Angle()
}

// Map is a fully validated map file.
type Map struct {
	Name  string
	Grid  *Grid
	Spawn SpawnPoint
	Meta  Metadata
}

// parser carries per-call state so errors can name the source.
type parser struct {
	name string
	opts ParseOptions
}

func (p *parser) errorf(kind error, line, col int, format string, args ...any) error {
	return &ParseError{
		Name: p.name,
		Line: line,
		Col:  col,
		Kind: kind,
		Msg:  fmt.Sprintf(format, args...),
	}
}

// Parse converts raw map lines into a validated Map.
// The header must define each metadata key exactly once, in any order. The
// body that follows must be a blank-line-free grid of '1', ' ' and exactly one
// of N/S/E/W, fully enclosed by walls.
func Parse(name string, lines []string, opts ParseOptions) (*Map, error) {
	if opts.TileSize <= 0 {
		opts.TileSize = DefaultTileSize
	}
	p := &parser{name: name, opts: opts}

	meta, next, err := p.parseHeader(lines)
	if err != nil {
		return nil, err
	}

	grid, spawn, err := p.parseBody(lines, next)
	if err != nil {
		return nil, err
	}

	return &Map{
		Name:  name,
		Grid:  grid,
		Spawn: spawn,
		Meta:  meta,
	}, nil
}

// parseHeader reads metadata lines until every key has been seen.
// Returns the index of the first line after the header.
func (p *parser) parseHeader(lines []string) (Metadata, int, error) {
	meta := Metadata{Textures: make(map[Orientation]string, 4)}
	seen := make(map[string]int, len(metadataKeys))

	i := 0
	for ; i < len(lines) && len(seen) < len(metadataKeys); i++ {
		line := trimLine(lines[i])
		if isBlank(line) {
			continue
		}
		lineNo := i + 1

		key, value, known := splitMetadata(line)
		if !known {
			if looksLikeMapRow(line) {
				return meta, 0, p.errorf(ErrMissingKey, lineNo, 0,
					"map body starts before %s", strings.Join(missingKeys(seen), ", "))
			}
			return meta, 0, p.errorf(ErrUnknownKey, lineNo, 1, "%q", key)
		}
		if prev, dup := seen[key]; dup {
			return meta, 0, p.errorf(ErrDuplicateKey, lineNo, 1, "%s already set on line %d", key, prev)
		}
		seen[key] = lineNo

		if err := p.applyMetadata(&meta, key, value, lineNo); err != nil {
			return meta, 0, err
		}
	}

	if len(seen) < len(metadataKeys) {
		return meta, 0, p.errorf(ErrMissingKey, 0, 0, "%s", strings.Join(missingKeys(seen), ", "))
	}
	return meta, i, nil
}

func (p *parser) applyMetadata(meta *Metadata, key, value string, lineNo int) error {
	switch key {
	case KeyFloor, KeyCeiling:
		c, err := parseColor(value)
		if err != nil {
			return p.errorf(ErrInvalidValue, lineNo, 0, "%s: %v", key, err)
		}
		if key == KeyFloor {
			meta.Floor = c
		} else {
			meta.Ceiling = c
		}
	default:
		if value == "" {
			return p.errorf(ErrInvalidValue, lineNo, 0, "%s: empty texture reference", key)
		}
		meta.Textures[textureFacing(key)] = value
	}
	return nil
}

// parseBody reads the grid, validates symbols and spawn count, then checks
// that the spawn's reachable area is enclosed.
func (p *parser) parseBody(lines []string, start int) (*Grid, SpawnPoint, error) {
	for start < len(lines) && isBlank(trimLine(lines[start])) {
		start++
	}
	end := len(lines)
	for end > start && isBlank(trimLine(lines[end-1])) {
		end--
	}
	if start >= end {
		return nil, SpawnPoint{}, p.errorf(ErrNoMap, 0, 0, "no grid after metadata")
	}

	var (
		spawn    SpawnPoint
		spawnSet bool
		rows     = make([][]Cell, 0, end-start)
	)

	for i := start; i < end; i++ {
		line := trimLine(lines[i])
		lineNo := i + 1
		if isBlank(line) {
			return nil, spawn, p.errorf(ErrBlankLine, lineNo, 0, "")
		}
		if key, _, known := splitMetadata(line); known {
			return nil, spawn, p.errorf(ErrDuplicateKey, lineNo, 1, "%s inside map body", key)
		}

		row := make([]Cell, 0, len(line))
		for col, r := range []rune(line) {
			cell, ok := cellForSymbol(r)
			if !ok {
				return nil, spawn, p.errorf(ErrUnknownSymbol, lineNo, col+1, "%q", r)
			}
			if cell.Kind == Spawn {
				if spawnSet {
					return nil, spawn, p.errorf(ErrMultipleSpawn, lineNo, col+1,
						"first spawn at line %d, column %d", start+spawn.Row+1, spawn.Col+1)
				}
				spawn = SpawnPoint{Row: i - start, Col: col, Facing: cell.Facing}
				spawnSet = true
			}
			row = append(row, cell)
		}
		rows = append(rows, row)
	}

	if !spawnSet {
		return nil, spawn, p.errorf(ErrNoSpawn, 0, 0, "map needs one of N, S, E, W")
	}

	grid := NewGrid(rows, p.opts.TileSize)
	if leak, open := findLeak(grid, spawn); open {
		return nil, spawn, p.errorf(ErrOpenBorder, start+leak.row+1, leak.col+1,
			"walkable area reaches the map edge")
	}
	return grid, spawn, nil
}

func cellForSymbol(r rune) (Cell, bool) {
	switch r {
	case SymbolWall:
		return Cell{Kind: Wall}, true
	case SymbolFloor:
		return Cell{Kind: Empty}, true
	case 'N':
		return Cell{Kind: Spawn, Facing: North}, true
	case 'S':
		return Cell{Kind: Spawn, Facing: South}, true
	case 'E':
		return Cell{Kind: Spawn, Facing: East}, true
	case 'W':
		return Cell{Kind: Spawn, Facing: West}, true
	default:
		return Cell{}, false
	}
}

// splitMetadata splits "KEY value" and reports whether KEY is a metadata key.
func splitMetadata(line string) (key, value string, known bool) {
	trimmed := strings.TrimLeft(line, " \t")
	key, value, _ = strings.Cut(trimmed, " ")
	if k, v, found := strings.Cut(trimmed, "\t"); found && len(k) < len(key) {
		key, value = k, v
	}
	value = strings.TrimSpace(value)
	for _, k := range metadataKeys {
		if key == k {
			return key, value, true
		}
	}
	return key, value, false
}

func looksLikeMapRow(line string) bool {
	for _, r := range line {
		if _, ok := cellForSymbol(r); !ok {
			return false
		}
	}
	return true
}

func missingKeys(seen map[string]int) []string {
	var missing []string
	for _, k := range metadataKeys {
		if _, ok := seen[k]; !ok {
			missing = append(missing, k)
		}
	}
	return missing
}

func textureFacing(key string) Orientation {
	switch key {
	case KeyNorth:
		return North
	case KeySouth:
		return South
	case KeyEast:
		return East
	default:
		return West
	}
}

// parseColor parses "R,G,B" with each channel in [0, 255].
func parseColor(s string) (core.Color, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return 0, fmt.Errorf("want R,G,B, got %q", s)
	}
	var ch [3]uint8
	for i, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || v < 0 || v > 255 {
			return 0, fmt.Errorf("channel %q out of range 0-255", strings.TrimSpace(part))
		}
		ch[i] = uint8(v)
	}
	return core.RGB(ch[0], ch[1], ch[2]), nil
}

func trimLine(s string) string {
	return strings.TrimRight(s, "\r")
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
