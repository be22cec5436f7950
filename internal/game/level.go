package game

import (
	"errors"
	"fmt"
	"math/rand"
)

// ErrInvalidQuadrant is returned when a quadrant selector is outside 1..4.
var ErrInvalidQuadrant = errors.New("quadrant must be between 1 and 4")

// TileBlocked is the raw decoration id for a blocked cell that has not been
// decorated yet. Pattern passes only match windows made of it.
const TileBlocked = 1

// moore lists the eight neighbour offsets.
var moore = [8]Cell{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// Level is one generated map: walkability, decoration and ground layers.
type Level struct {
	Size   int
	Walk   *Grid // 0 open, 1 blocked
	Tiles  *Grid // decoration ids; 0 empty
	Ground *Grid // cosmetic ground ids drawn where Tiles is empty

	stamps []stampRect // placed patterns
}

// stampRect is the footprint of one placed pattern.
type stampRect struct {
	x, y, w, h int
}

func (r stampRect) overlaps(o stampRect) bool {
	return r.x < o.x+o.w && o.x < r.x+r.w && r.y < o.y+o.h && o.y < r.y+r.h
}

// NewLevel wraps a walkability grid. Tiles starts as a copy of it.
func NewLevel(walk *Grid) *Level {
	return &Level{
		Size:   max(walk.Cols, walk.Rows),
		Walk:   walk,
		Tiles:  walk.Clone(),
		Ground: NewGrid(walk.Cols, walk.Rows),
	}
}

// Generate builds a size×size walkability grid. Each cell starts blocked with
// probability density, then one majority pass smooths the noise.
func Generate(size int, density float64, rng *rand.Rand) *Grid {
	raw := NewGrid(size, size)
	for i := range raw.Cells {
		if rng.Float64() < density {
			raw.Cells[i] = Blocked
		}
	}
	return smooth(raw)
}

// smooth runs a single automata generation. A cell becomes blocked when more
// than four of its in-bounds neighbours are blocked.
func smooth(src *Grid) *Grid {
	dst := NewGrid(src.Cols, src.Rows)
	for y := 0; y < src.Rows; y++ {
		for x := 0; x < src.Cols; x++ {
			sum := 0
			for _, d := range moore {
				nx, ny := x+d.X, y+d.Y
				if src.InBounds(nx, ny) {
					sum += src.Cells[ny*src.Cols+nx]
				}
			}
			if sum > 4 {
				dst.Cells[y*dst.Cols+x] = Blocked
			}
		}
	}
	return dst
}

// ApplyBorder forces a band of the given width around the grid to blocked.
func ApplyBorder(g *Grid, width int) {
	if width <= 0 {
		return
	}
	for y := 0; y < g.Rows; y++ {
		for x := 0; x < g.Cols; x++ {
			if x < width || y < width || x >= g.Cols-width || y >= g.Rows-width {
				g.Cells[y*g.Cols+x] = Blocked
			}
		}
	}
}

// GenerateLevel composes the generation passes that run before decoration:
// automata noise, border band and random 2x2 blocks. Tiles mirrors Walk
// afterwards.
func GenerateLevel(cfg MapConfig, rng *rand.Rand) *Level {
	walk := Generate(cfg.Size, cfg.Density, rng)
	ApplyBorder(walk, cfg.Border)
	lv := NewLevel(walk)
	lv.DrawRandomBlocks(cfg.BlockDensity, rng)
	return lv
}

// DrawRandomBlocks stamps 2x2 blocked squares onto open space so later pattern
// passes have room for 2x2 decorations. The number of blocks is
// size*size*density/4; placement gives up on a block after a bounded number
// of misses.
func (lv *Level) DrawRandomBlocks(density float64, rng *rand.Rand) int {
	g := lv.Walk
	if g.Cols < 2 || g.Rows < 2 {
		return 0
	}
	total := int(float64(g.Cols*g.Rows) * density / 4)
	maxTries := g.Cols * g.Rows
	placed := 0
	for i := 0; i < total; i++ {
		for tries := 0; tries < maxTries; tries++ {
			x := rng.Intn(g.Cols - 1)
			y := rng.Intn(g.Rows - 1)
			if !lv.open2x2(x, y) {
				continue
			}
			g.Set(x, y, Blocked)
			g.Set(x+1, y, Blocked)
			g.Set(x, y+1, Blocked)
			g.Set(x+1, y+1, Blocked)
			placed++
			break
		}
	}
	lv.Tiles = g.Clone()
	return placed
}

func (lv *Level) open2x2(x, y int) bool {
	g := lv.Walk
	return g.IsOpen(x, y) && g.IsOpen(x+1, y) && g.IsOpen(x, y+1) && g.IsOpen(x+1, y+1)
}

// IsOpen reports whether c is walkable.
func (lv *Level) IsOpen(c Cell) bool {
	return lv.Walk.IsOpen(c.X, c.Y)
}

// SyncWalkability recomputes Walk from Tiles: any id above zero blocks.
func (lv *Level) SyncWalkability() {
	for i, t := range lv.Tiles.Cells {
		if t > 0 {
			lv.Walk.Cells[i] = Blocked
		} else {
			lv.Walk.Cells[i] = Open
		}
	}
}

// RandomQuadCell returns a random cell inside the given quadrant:
// 1 top-left, 2 top-right, 3 bottom-left, 4 bottom-right.
func (lv *Level) RandomQuadCell(quadrant int, rng *rand.Rand) (Cell, error) {
	if quadrant < 1 || quadrant > 4 {
		return Cell{}, fmt.Errorf("random quad cell %d: %w", quadrant, ErrInvalidQuadrant)
	}
	half := lv.Size / 2
	if half == 0 {
		return Cell{}, nil
	}
	c := Cell{X: rng.Intn(half), Y: rng.Intn(half)}
	if quadrant == 2 || quadrant == 4 {
		c.X += half
	}
	if quadrant >= 3 {
		c.Y += half
	}
	return c, nil
}

// RandomOpenCell samples cells in a quadrant (0 picks a random quadrant per
// attempt) until it finds an open one. ok is false if maxAttempts ran out.
func (lv *Level) RandomOpenCell(quadrant int, rng *rand.Rand, maxAttempts int) (Cell, bool, error) {
	for i := 0; i < maxAttempts; i++ {
		q := quadrant
		if q == 0 {
			q = rng.Intn(4) + 1
		}
		c, err := lv.RandomQuadCell(q, rng)
		if err != nil {
			return Cell{}, false, err
		}
		if lv.IsOpen(c) {
			return c, true, nil
		}
	}
	return Cell{}, false, nil
}

// OpenCells lists every open cell, row-major.
func (lv *Level) OpenCells() []Cell {
	var out []Cell
	g := lv.Walk
	for y := 0; y < g.Rows; y++ {
		for x := 0; x < g.Cols; x++ {
			if g.Cells[y*g.Cols+x] == Open {
				out = append(out, Cell{x, y})
			}
		}
	}
	return out
}

// Open2x2Cells lists the top-left corner of every fully open 2x2 square.
func (lv *Level) Open2x2Cells() []Cell {
	var out []Cell
	g := lv.Walk
	for y := 0; y < g.Rows-1; y++ {
		for x := 0; x < g.Cols-1; x++ {
			if lv.open2x2(x, y) {
				out = append(out, Cell{x, y})
			}
		}
	}
	return out
}

// RandomOpen2x2 picks one open 2x2 square, or false if none exist.
func (lv *Level) RandomOpen2x2(rng *rand.Rand) (Cell, bool) {
	spaces := lv.Open2x2Cells()
	if len(spaces) == 0 {
		return Cell{}, false
	}
	return spaces[rng.Intn(len(spaces))], true
}

// Destroy clears c and its eight neighbours on both Walk and Tiles. Any
// pattern that overlaps the cleared area is removed whole.
func (lv *Level) Destroy(c Cell) {
	lv.clearRect(stampRect{c.X - 1, c.Y - 1, 3, 3})
	cleared := []stampRect{{c.X - 1, c.Y - 1, 3, 3}}
	for changed := true; changed; {
		changed = false
		kept := lv.stamps[:0]
		for _, st := range lv.stamps {
			if overlapsAny(st, cleared) {
				lv.clearRect(st)
				cleared = append(cleared, st)
				changed = true
				continue
			}
			kept = append(kept, st)
		}
		lv.stamps = kept
	}
}

func (lv *Level) clearRect(r stampRect) {
	for y := r.y; y < r.y+r.h; y++ {
		for x := r.x; x < r.x+r.w; x++ {
			lv.Walk.Set(x, y, Open)
			lv.Tiles.Set(x, y, 0)
		}
	}
}

func overlapsAny(r stampRect, rs []stampRect) bool {
	for _, o := range rs {
		if r.overlaps(o) {
			return true
		}
	}
	return false
}

// CarveRoads draws up to maxRoads roads between random open cells onto the
// Ground layer. Roads are cosmetic and leave Walk untouched. Returns the
// number of roads drawn.
func (lv *Level) CarveRoads(rng *rand.Rand, attempts, maxRoads int, roadIDs []int) int {
	if len(roadIDs) == 0 {
		return 0
	}
	drawn := 0
	for i := 0; i < attempts && drawn < maxRoads; i++ {
		a, okA, _ := lv.RandomOpenCell(0, rng, 64)
		b, okB, _ := lv.RandomOpenCell(0, rng, 64)
		if !okA || !okB {
			continue
		}
		path := FindPath(lv.Walk, a, b)
		if path == nil {
			continue
		}
		id := roadIDs[rng.Intn(len(roadIDs))]
		for _, c := range path {
			lv.Ground.Set(c.X, c.Y, id)
		}
		drawn++
	}
	return drawn
}

// ScatterGround sprinkles random ground ids over empty, undecorated cells.
func (lv *Level) ScatterGround(rng *rand.Rand, chance float64, ids []int) {
	if len(ids) == 0 {
		return
	}
	for i := range lv.Ground.Cells {
		if rng.Float64() >= chance {
			continue
		}
		if lv.Tiles.Cells[i] != 0 || lv.Ground.Cells[i] != 0 {
			continue
		}
		lv.Ground.Cells[i] = ids[rng.Intn(len(ids))]
	}
}
