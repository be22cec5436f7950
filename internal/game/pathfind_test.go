package game

import (
	"testing"

	"codeberg.org/anaseto/gruid"
	"codeberg.org/anaseto/gruid/paths"
)

func TestFindPath_StraightLine(t *testing.T) {
	g := NewGrid(5, 1)
	path := FindPath(g, Cell{0, 0}, Cell{4, 0})
	if len(path) != 5 {
		t.Fatalf("expected 5 cells, got %v", path)
	}
	for i, c := range path {
		if c != (Cell{i, 0}) {
			t.Fatalf("step %d: got %v", i, c)
		}
	}
}

func TestFindPath_AroundWall(t *testing.T) {
	g := GridFromRows([][]int{
		{0, 1, 0},
		{0, 1, 0},
		{0, 0, 0},
	})
	path := FindPath(g, Cell{0, 0}, Cell{2, 0})
	want := []Cell{{0, 0}, {0, 1}, {0, 2}, {1, 2}, {2, 2}, {2, 1}, {2, 0}}
	if len(path) != len(want) {
		t.Fatalf("expected %v, got %v", want, path)
	}
	for i := range want {
		if path[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, path)
		}
	}
}

func TestFindPath_SameCell(t *testing.T) {
	g := NewGrid(3, 3)
	path := FindPath(g, Cell{1, 1}, Cell{1, 1})
	if len(path) != 1 || path[0] != (Cell{1, 1}) {
		t.Fatalf("expected single-cell path, got %v", path)
	}
}

func TestFindPath_Unreachable(t *testing.T) {
	g := GridFromRows([][]int{
		{0, 1, 0},
		{1, 1, 0},
		{0, 0, 0},
	})
	if p := FindPath(g, Cell{0, 0}, Cell{2, 2}); p != nil {
		t.Fatalf("walled-in start should give nil, got %v", p)
	}
}

func TestFindPath_BlockedEndpoints(t *testing.T) {
	g := GridFromRows([][]int{
		{0, 1},
		{0, 0},
	})
	if FindPath(g, Cell{1, 0}, Cell{0, 0}) != nil {
		t.Fatal("blocked start should give nil")
	}
	if FindPath(g, Cell{0, 0}, Cell{1, 0}) != nil {
		t.Fatal("blocked end should give nil")
	}
	if FindPath(g, Cell{0, 0}, Cell{5, 5}) != nil {
		t.Fatal("out-of-bounds end should give nil")
	}
}

func TestTruncate(t *testing.T) {
	path := []Cell{{0, 0}, {1, 0}, {2, 0}, {3, 0}}
	got := Truncate(path, 2)
	if len(got) != 2 || got[0] != (Cell{1, 0}) || got[1] != (Cell{2, 0}) {
		t.Fatalf("unexpected truncation %v", got)
	}
	if got := Truncate(path, 10); len(got) != 3 {
		t.Fatalf("budget above length should keep all hops, got %v", got)
	}
	if Truncate(path, 0) != nil {
		t.Fatal("zero budget should give nil")
	}
	if Truncate(path[:1], 5) != nil {
		t.Fatal("single-cell path has no hops")
	}
}

func TestValidPath(t *testing.T) {
	g := GridFromRows([][]int{
		{0, 0, 1},
		{0, 0, 0},
	})
	if !ValidPath(g, Cell{0, 0}, []Cell{{1, 0}, {1, 1}, {2, 1}}) {
		t.Fatal("adjacent open waypoints should be valid")
	}
	if ValidPath(g, Cell{0, 0}, []Cell{{1, 1}}) {
		t.Fatal("diagonal hop should be invalid")
	}
	if ValidPath(g, Cell{1, 0}, []Cell{{2, 0}}) {
		t.Fatal("blocked waypoint should be invalid")
	}
}

// cardinalPather adapts a Grid to gruid's Pather for a reference BFS.
type cardinalPather struct {
	g  *Grid
	nb paths.Neighbors
}

func (cp *cardinalPather) Neighbors(p gruid.Point) []gruid.Point {
	return cp.nb.Cardinal(p, func(q gruid.Point) bool {
		return cp.g.IsOpen(q.X, q.Y)
	})
}

// TestFindPath_MatchesReferenceBFS checks optimality and reachability against
// gruid's breadth-first map on random levels.
func TestFindPath_MatchesReferenceBFS(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		rng := newRNG(seed)
		g := Generate(24, 0.42, rng)
		open := NewLevel(g).OpenCells()
		if len(open) < 2 {
			continue
		}
		start := open[rng.Intn(len(open))]

		pr := paths.NewPathRange(gruid.NewRange(0, 0, g.Cols, g.Rows))
		pr.BreadthFirstMap(&cardinalPather{g: g}, []gruid.Point{{X: start.X, Y: start.Y}}, g.Cols*g.Rows)

		for i := 0; i < 30; i++ {
			end := open[rng.Intn(len(open))]
			want := pr.BreadthFirstMapAt(gruid.Point{X: end.X, Y: end.Y})
			path := FindPath(g, start, end)
			if path == nil {
				if end != start && want <= g.Cols*g.Rows {
					t.Fatalf("seed %d: %v->%v unreachable but BFS cost is %d", seed, start, end, want)
				}
				continue
			}
			if path[0] != start || path[len(path)-1] != end {
				t.Fatalf("seed %d: path endpoints wrong: %v", seed, path)
			}
			if !ValidPath(g, start, path[1:]) {
				t.Fatalf("seed %d: path is not a walkable 4-connected chain: %v", seed, path)
			}
			if len(path)-1 != want {
				t.Fatalf("seed %d: %v->%v length %d, BFS says %d", seed, start, end, len(path)-1, want)
			}
		}
	}
}

func TestFindPath_OpenThreeByThreeCorner(t *testing.T) {
	g := NewGrid(3, 3)
	path := FindPath(g, Cell{0, 0}, Cell{2, 2})
	if len(path) != 5 {
		t.Fatalf("expected 5 cells, got %v", path)
	}
	if path[0] != (Cell{0, 0}) || path[4] != (Cell{2, 2}) {
		t.Fatalf("path must run from (0,0) to (2,2), got %v", path)
	}
	if !ValidPath(g, Cell{0, 0}, path[1:]) {
		t.Fatalf("every hop must be open and 4-adjacent, got %v", path)
	}
}
