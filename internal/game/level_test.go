package game

import (
	"errors"
	"math/rand"
	"testing"
)

func newRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed)) // #nosec G404 -- tests
}

func TestGenerate_Deterministic(t *testing.T) {
	a := Generate(32, 0.4, newRNG(7))
	b := Generate(32, 0.4, newRNG(7))
	for i := range a.Cells {
		if a.Cells[i] != b.Cells[i] {
			t.Fatalf("cell %d differs between runs with the same seed", i)
		}
	}
}

func TestGenerate_ValuesAreBinary(t *testing.T) {
	g := Generate(24, 0.5, newRNG(3))
	if g.Cols != 24 || g.Rows != 24 {
		t.Fatalf("expected 24x24, got %dx%d", g.Cols, g.Rows)
	}
	if g.Count(Open)+g.Count(Blocked) != len(g.Cells) {
		t.Fatal("generated grid should only hold 0 and 1")
	}
}

func TestGenerate_DensityExtremes(t *testing.T) {
	if n := Generate(16, 0, newRNG(1)).Count(Blocked); n != 0 {
		t.Fatalf("density 0 should give an open map, got %d blocked", n)
	}
	// Every interior cell has 8 blocked neighbours; corners only have 3.
	g := Generate(16, 1, newRNG(1))
	if g.At(5, 5) != Blocked {
		t.Fatal("interior cell should stay blocked at density 1")
	}
	if g.At(0, 0) != Open {
		t.Fatal("corner has only 3 neighbours and should open up")
	}
	if g.At(0, 5) != Blocked {
		t.Fatal("edge cell has 5 neighbours and should stay blocked")
	}
}

func TestSmooth_MajorityRule(t *testing.T) {
	src := GridFromRows([][]int{
		{1, 1, 1},
		{1, 0, 1},
		{1, 1, 0},
	})
	dst := smooth(src)
	// Centre sees 7 blocked neighbours.
	if dst.At(1, 1) != Blocked {
		t.Fatal("centre with 7 blocked neighbours should be blocked")
	}
	// (2,2) sees (1,1)=0, (2,1)=1, (1,2)=1 -> 2.
	if dst.At(2, 2) != Open {
		t.Fatal("corner with 2 blocked neighbours should be open")
	}

	lone := GridFromRows([][]int{
		{0, 0, 0},
		{0, 1, 0},
		{0, 0, 0},
	})
	if smooth(lone).Count(Blocked) != 0 {
		t.Fatal("an isolated blocked cell should not survive smoothing")
	}
}

func TestApplyBorder(t *testing.T) {
	g := NewGrid(8, 8)
	ApplyBorder(g, 2)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			inBand := x < 2 || y < 2 || x >= 6 || y >= 6
			if inBand && g.At(x, y) != Blocked {
				t.Fatalf("(%d,%d) should be border", x, y)
			}
			if !inBand && g.At(x, y) != Open {
				t.Fatalf("(%d,%d) should be untouched", x, y)
			}
		}
	}
}

func TestGenerateLevel_BorderIsBlocked(t *testing.T) {
	cfg := DefaultConfig().Map
	cfg.Size = 32
	lv := GenerateLevel(cfg, newRNG(11))
	for i := 0; i < 32; i++ {
		for _, c := range []Cell{{i, 0}, {i, 1}, {0, i}, {31, i}, {i, 30}} {
			if lv.Walk.At(c.X, c.Y) != Blocked {
				t.Fatalf("border cell (%d,%d) is open", c.X, c.Y)
			}
		}
	}
	for i := range lv.Walk.Cells {
		if lv.Walk.Cells[i] != lv.Tiles.Cells[i] {
			t.Fatal("Tiles should mirror Walk before decoration")
		}
	}
}

func TestDrawRandomBlocks_StampsSquares(t *testing.T) {
	lv := NewLevel(NewGrid(10, 10))
	placed := lv.DrawRandomBlocks(0.16, newRNG(5)) // 100*0.16/4 = 4
	if placed != 4 {
		t.Fatalf("expected 4 blocks, got %d", placed)
	}
	if got := lv.Walk.Count(Blocked); got != 16 {
		t.Fatalf("expected 16 blocked cells, got %d", got)
	}
}

func TestRandomQuadCell_InvalidQuadrant(t *testing.T) {
	lv := NewLevel(NewGrid(10, 10))
	for _, q := range []int{0, 5, -1} {
		_, err := lv.RandomQuadCell(q, newRNG(1))
		if !errors.Is(err, ErrInvalidQuadrant) {
			t.Fatalf("quadrant %d: expected ErrInvalidQuadrant, got %v", q, err)
		}
	}
}

func TestRandomQuadCell_StaysInQuadrant(t *testing.T) {
	lv := NewLevel(NewGrid(10, 10))
	rng := newRNG(2)
	for i := 0; i < 200; i++ {
		for q := 1; q <= 4; q++ {
			c, err := lv.RandomQuadCell(q, rng)
			if err != nil {
				t.Fatal(err)
			}
			right := c.X >= 5
			bottom := c.Y >= 5
			want := map[int][2]bool{1: {false, false}, 2: {true, false}, 3: {false, true}, 4: {true, true}}[q]
			if right != want[0] || bottom != want[1] {
				t.Fatalf("quadrant %d produced (%d,%d)", q, c.X, c.Y)
			}
		}
	}
}

func TestRandomOpenCell_GivesUp(t *testing.T) {
	walk := NewGrid(6, 6)
	walk.Fill(Blocked)
	lv := NewLevel(walk)
	_, ok, err := lv.RandomOpenCell(0, newRNG(1), 50)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("a fully blocked map has no open cell")
	}
}

func TestDestroy_Clears3x3(t *testing.T) {
	walk := NewGrid(5, 5)
	walk.Fill(Blocked)
	lv := NewLevel(walk)
	lv.Destroy(Cell{2, 2})
	if got := lv.Walk.Count(Open); got != 9 {
		t.Fatalf("expected 9 open cells, got %d", got)
	}
	if lv.Tiles.At(1, 1) != 0 || lv.Tiles.At(3, 3) != 0 {
		t.Fatal("Destroy should clear decoration too")
	}
	// On the edge the out-of-bounds neighbours are ignored.
	lv.Destroy(Cell{0, 0})
}

func TestDestroy_RemovesOverlappingPatternsWhole(t *testing.T) {
	lv := NewLevel(GridFromRows([][]int{
		{0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 1, 1, 0, 0},
		{0, 0, 0, 1, 1, 0, 0},
		{0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 1, 1},
		{0, 0, 0, 0, 0, 1, 1},
	}))
	set, err := NewPatternSet([]Pattern{{{19, 20}, {35, 36}}})
	if err != nil {
		t.Fatal(err)
	}
	if n := ReplaceTiles(lv, set, newRNG(1)); n != 2 {
		t.Fatalf("expected 2 trees, got %d", n)
	}

	// The 3x3 around (2,2) covers only the left half of the tree at (3,1).
	lv.Destroy(Cell{2, 2})
	for _, c := range []Cell{{3, 1}, {4, 1}, {3, 2}, {4, 2}} {
		if lv.Tiles.At(c.X, c.Y) != 0 || !lv.IsOpen(c) {
			t.Fatalf("cell %v should be cleared with the rest of its tree", c)
		}
	}
	if lv.Tiles.At(5, 4) != 19 || lv.Tiles.At(6, 5) != 36 {
		t.Fatal("a tree outside the cleared area must be kept")
	}
	if lv.IsOpen(Cell{5, 4}) {
		t.Fatal("the kept tree still blocks movement")
	}
}

func TestOpen2x2Cells(t *testing.T) {
	lv := NewLevel(GridFromRows([][]int{
		{0, 0, 1},
		{0, 0, 0},
		{1, 0, 0},
	}))
	got := lv.Open2x2Cells()
	if len(got) != 2 || got[0] != (Cell{0, 0}) || got[1] != (Cell{1, 1}) {
		t.Fatalf("unexpected 2x2 spaces %v", got)
	}
}

func TestCarveRoads_LeavesWalkUntouched(t *testing.T) {
	lv := NewLevel(NewGrid(12, 12))
	before := lv.Walk.Clone()
	n := lv.CarveRoads(newRNG(4), 10, 3, []int{43})
	if n == 0 || n > 3 {
		t.Fatalf("expected 1..3 roads on an open map, got %d", n)
	}
	if lv.Ground.Count(43) == 0 {
		t.Fatal("roads should be drawn on the ground layer")
	}
	for i := range before.Cells {
		if before.Cells[i] != lv.Walk.Cells[i] {
			t.Fatal("roads must not change walkability")
		}
	}
}

func TestBuildLevel_Deterministic(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Map.Size = 40
	a, err := BuildLevel(cfg, newRNG(99))
	if err != nil {
		t.Fatal(err)
	}
	b, err := BuildLevel(cfg, newRNG(99))
	if err != nil {
		t.Fatal(err)
	}
	for i := range a.Tiles.Cells {
		if a.Tiles.Cells[i] != b.Tiles.Cells[i] || a.Ground.Cells[i] != b.Ground.Cells[i] {
			t.Fatalf("cell %d differs between identical seeds", i)
		}
	}
	// No raw blocked id should survive the rocks layer.
	if a.Tiles.Count(TileBlocked) != 0 {
		t.Fatal("every blocked cell should be decorated")
	}
}
