package mapfile

type tilePos struct {
	row, col int
}

// findLeak flood-fills from the spawn over every non-wall cell using
// 4-directional moves. The area is open if the fill touches the outer ring of
// the grid or a Void cell (a position past the end of a shorter line).
// Returns the first offending tile in fill order.
func findLeak(g *Grid, spawn SpawnPoint) (tilePos, bool) {
	start := tilePos{spawn.Row, spawn.Col}
	visited := make([]bool, g.Rows()*g.Cols())
	queue := []tilePos{start}
	visited[start.row*g.Cols()+start.col] = true

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		cell, _ := g.CellAt(cur.row, cur.col)
		if cell.Kind == Void || onEdge(g, cur) {
			return cur, true
		}

		for _, d := range [4]tilePos{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
			next := tilePos{cur.row + d.row, cur.col + d.col}
			n, ok := g.CellAt(next.row, next.col)
			if !ok || n.Kind == Wall {
				continue
			}
			idx := next.row*g.Cols() + next.col
			if visited[idx] {
				continue
			}
			visited[idx] = true
			queue = append(queue, next)
		}
	}
	return tilePos{}, false
}

func onEdge(g *Grid, p tilePos) bool {
	return p.row == 0 || p.col == 0 || p.row == g.Rows()-1 || p.col == g.Cols()-1
}

// Reachable returns every tile reachable from the spawn without crossing a
// wall. The closure invariant guarantees none of them lies on the edge.
func Reachable(m *Map) [][2]int {
	g := m.Grid
	start := tilePos{m.Spawn.Row, m.Spawn.Col}
	visited := map[tilePos]bool{start: true}
	queue := []tilePos{start}
	var out [][2]int

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		out = append(out, [2]int{cur.row, cur.col})

		for _, d := range [4]tilePos{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
			next := tilePos{cur.row + d.row, cur.col + d.col}
			n, ok := g.CellAt(next.row, next.col)
			if !ok || n.Kind == Wall || visited[next] {
				continue
			}
			visited[next] = true
			queue = append(queue, next)
		}
	}
	return out
}
