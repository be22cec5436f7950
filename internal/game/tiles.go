package game

import (
	"errors"
	"fmt"
	"math/rand"
)

var (
	ErrEmptyPatternSet = errors.New("pattern set is empty")
	ErrRaggedPattern   = errors.New("pattern rows differ in width")
	ErrPatternShape    = errors.New("patterns in a set must share dimensions")
)

// Pattern is a rectangular block of decoration ids; pattern[row][col].
type Pattern [][]int

// PatternSet is a group of same-shaped patterns. Build it with NewPatternSet.
type PatternSet struct {
	patterns []Pattern
	w, h     int
}

// NewPatternSet validates that every pattern is non-empty, rectangular and the
// same size as the others.
func NewPatternSet(patterns []Pattern) (*PatternSet, error) {
	if len(patterns) == 0 {
		return nil, ErrEmptyPatternSet
	}
	ps := &PatternSet{patterns: patterns}
	for i, p := range patterns {
		if len(p) == 0 || len(p[0]) == 0 {
			return nil, fmt.Errorf("pattern %d: %w", i, ErrEmptyPatternSet)
		}
		w := len(p[0])
		for _, row := range p {
			if len(row) != w {
				return nil, fmt.Errorf("pattern %d: %w", i, ErrRaggedPattern)
			}
		}
		if i == 0 {
			ps.w, ps.h = w, len(p)
			continue
		}
		if w != ps.w || len(p) != ps.h {
			return nil, fmt.Errorf("pattern %d is %dx%d, want %dx%d: %w",
				i, w, len(p), ps.w, ps.h, ErrPatternShape)
		}
	}
	return ps, nil
}

// Size returns the shared width and height of the set's patterns.
func (ps *PatternSet) Size() (w, h int) {
	return ps.w, ps.h
}

// Len returns the number of patterns.
func (ps *PatternSet) Len() int {
	return len(ps.patterns)
}

func (ps *PatternSet) pick(rng *rand.Rand) Pattern {
	return ps.patterns[rng.Intn(len(ps.patterns))]
}

// ReplaceTiles scans Tiles row-major with a window the size of the set. Every
// window made only of TileBlocked is overwritten with a random pattern. Walk
// is recomputed afterwards. Returns the number of replacements.
//
// Windows that overlap an earlier replacement in the same pass are still
// tested; they only match again if the earlier pattern left TileBlocked
// cells behind.
func ReplaceTiles(lv *Level, set *PatternSet, rng *rand.Rand) int {
	g := lv.Tiles
	w, h := set.Size()
	n := 0
	for y := 0; y <= g.Rows-h; y++ {
		for x := 0; x <= g.Cols-w; x++ {
			if !allBlocked(g, x, y, w, h) {
				continue
			}
			stamp(g, x, y, set.pick(rng))
			lv.stamps = append(lv.stamps, stampRect{x, y, w, h})
			n++
		}
	}
	lv.SyncWalkability()
	return n
}

func allBlocked(g *Grid, x, y, w, h int) bool {
	for iy := 0; iy < h; iy++ {
		row := (y + iy) * g.Cols
		for ix := 0; ix < w; ix++ {
			if g.Cells[row+x+ix] != TileBlocked {
				return false
			}
		}
	}
	return true
}

func stamp(g *Grid, x, y int, p Pattern) {
	for iy, row := range p {
		copy(g.Cells[(y+iy)*g.Cols+x:], row)
	}
}
