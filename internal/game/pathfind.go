package game

import "container/heap"

// --- Uniform-cost search ---

type pathNode struct {
	cell Cell
	dist int
	seq  int // insertion order, keeps pops stable among equal distances
}

type openList []pathNode

func (ol openList) Len() int { return len(ol) }
func (ol openList) Less(i, j int) bool {
	if ol[i].dist != ol[j].dist {
		return ol[i].dist < ol[j].dist
	}
	return ol[i].seq < ol[j].seq
}
func (ol openList) Swap(i, j int)       { ol[i], ol[j] = ol[j], ol[i] }
func (ol *openList) Push(x interface{}) { *ol = append(*ol, x.(pathNode)) }
func (ol *openList) Pop() interface{} {
	old := *ol
	n := old[len(old)-1]
	*ol = old[:len(old)-1]
	return n
}

var cardinals = [4]Cell{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}

// FindPath returns the shortest 4-connected path from start to end over the
// open cells of a walkability grid, including both endpoints. Returns nil if
// either endpoint is blocked or out of bounds, or if no path exists.
//
// The grid is only read, so concurrent callers are fine.
func FindPath(g *Grid, start, end Cell) []Cell {
	if !g.IsOpen(start.X, start.Y) || !g.IsOpen(end.X, end.Y) {
		return nil
	}
	if start == end {
		return []Cell{start}
	}

	idx := func(c Cell) int { return c.Y*g.Cols + c.X }
	dist := make([]int, len(g.Cells))
	for i := range dist {
		dist[i] = -1
	}
	prev := make([]int, len(g.Cells))
	dist[idx(start)] = 0
	prev[idx(start)] = -1

	seq := 0
	ol := &openList{{cell: start}}
	for ol.Len() > 0 {
		cur := heap.Pop(ol).(pathNode)
		if cur.dist > dist[idx(cur.cell)] {
			continue // stale entry
		}
		if cur.cell == end {
			return buildPath(g, prev, idx(end))
		}
		for _, d := range cardinals {
			n := cur.cell.Add(d)
			if !g.IsOpen(n.X, n.Y) {
				continue
			}
			nd := cur.dist + 1
			ni := idx(n)
			if dist[ni] >= 0 && nd >= dist[ni] {
				continue
			}
			dist[ni] = nd
			prev[ni] = idx(cur.cell)
			seq++
			heap.Push(ol, pathNode{cell: n, dist: nd, seq: seq})
		}
	}
	return nil
}

func buildPath(g *Grid, prev []int, end int) []Cell {
	var cells []Cell
	for i := end; i >= 0; i = prev[i] {
		cells = append(cells, Cell{X: i % g.Cols, Y: i / g.Cols})
	}
	// Reverse
	for i, j := 0, len(cells)-1; i < j; i, j = i+1, j-1 {
		cells[i], cells[j] = cells[j], cells[i]
	}
	return cells
}

// Truncate drops the starting cell of a path and caps what is left to steps
// waypoints. Returns nil when nothing remains.
func Truncate(path []Cell, steps int) []Cell {
	if len(path) < 2 || steps <= 0 {
		return nil
	}
	end := min(len(path), steps+1)
	out := make([]Cell, end-1)
	copy(out, path[1:end])
	return out
}

// ValidPath reports whether every waypoint is open and each one is adjacent
// to the one before it, starting from from.
func ValidPath(g *Grid, from Cell, path []Cell) bool {
	prev := from
	for _, c := range path {
		if !g.IsOpen(c.X, c.Y) || !prev.Adjacent(c) {
			return false
		}
		prev = c
	}
	return true
}
