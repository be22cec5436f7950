package view

import (
	"github.com/Garsondee/Fog-Tactics/internal/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// worldRenderer draws entity sprites into the world buffer. It satisfies
// game.Renderer; coordinates arrive in cells.
type worldRenderer struct {
	dst  *ebiten.Image
	tile float32 // tile size in world pixels
}

var _ game.Renderer = (*worldRenderer)(nil)

func (r *worldRenderer) DrawTile(x, y float64, tile int, opts game.TileOptions) {
	span := float32(max(opts.Span, 1))
	px, py := float32(x)*r.tile, float32(y)*r.tile
	size := span * r.tile
	col := withAlpha(tileColor(tile), opts.Alpha)

	if opts.Shadow {
		vector.FillRect(r.dst, px+2, py+size-3, size-4, 3, colShadow, false)
	}
	if span > 1 {
		vector.FillRect(r.dst, px+1, py+1, size-2, size-2, col, false)
		return
	}
	// Single-cell sprites are drawn as a disc with a facing notch.
	cx, cy := px+size/2, py+size/2
	vector.FillCircle(r.dst, cx, cy, size*0.38, col, true)
	nx := cx + size*0.25
	if opts.FlipX {
		nx = cx - size*0.25
	}
	vector.FillCircle(r.dst, nx, cy-size*0.1, size*0.08, colBackground, true)
}
