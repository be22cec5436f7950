package view

import "image/color"

// Tile ids index a sprite sheet. The client draws flat colours instead,
// grouped by the id ranges in configs/default.yaml.
var (
	colBackground = color.RGBA{R: 12, G: 14, B: 12, A: 255}
	colOpen       = color.RGBA{R: 58, G: 88, B: 52, A: 255}
	colBlocked    = color.RGBA{R: 34, G: 40, B: 34, A: 255}
	colFog        = color.RGBA{R: 6, G: 8, B: 10, A: 255}
	colGrid       = color.RGBA{R: 0, G: 0, B: 0, A: 28}
	colCursor     = color.RGBA{R: 240, G: 240, B: 160, A: 200}
	colShadow     = color.RGBA{R: 0, G: 0, B: 0, A: 90}
	colPanel      = color.RGBA{R: 10, G: 12, B: 10, A: 248}
	colPanelEdge  = color.RGBA{R: 50, G: 70, B: 50, A: 255}
	colTitleBar   = color.RGBA{R: 20, G: 30, B: 20, A: 255}
	colHighlight  = color.RGBA{R: 30, G: 40, B: 30, A: 160}
	colText       = color.RGBA{R: 200, G: 220, B: 200, A: 255}
	colTextDim    = color.RGBA{R: 130, G: 150, B: 130, A: 255}
)

// playerColors is indexed by turn order.
var playerColors = []color.RGBA{
	{R: 230, G: 210, B: 90, A: 255},
	{R: 210, G: 70, B: 70, A: 255},
	{R: 70, G: 110, B: 210, A: 255},
	{R: 170, G: 90, B: 200, A: 255},
}

// tileColor maps a sprite id to a display colour.
func tileColor(id int) color.RGBA {
	switch {
	case id <= 0:
		return colOpen
	case id == 1:
		return colBlocked
	case id >= 2 && id <= 14: // ground variants
		v := uint8(id * 3)
		return color.RGBA{R: 52 + v/2, G: 84 + v, B: 48, A: 255}
	case id >= 16 && id <= 18, id == 32, id == 34, id == 48, id == 50: // rocks
		v := uint8(id % 7 * 6)
		return color.RGBA{R: 96 + v, G: 96 + v, B: 100 + v, A: 255}
	case id >= 19 && id <= 24, id >= 35 && id <= 40: // trees
		v := uint8(id % 5 * 5)
		return color.RGBA{R: 24, G: 70 + v, B: 32, A: 255}
	case id == 43 || id == 44: // roads
		return color.RGBA{R: 120, G: 100, B: 70, A: 255}
	case id == 49: // selection
		return color.RGBA{R: 255, G: 255, B: 255, A: 90}
	case id >= 51 && id <= 54: // flags
		return playerColors[(id-51)%len(playerColors)]
	case id == 59: // building
		return color.RGBA{R: 150, G: 120, B: 90, A: 255}
	case id >= 65 && id <= 68: // players
		return playerColors[(id-65)%len(playerColors)]
	case id == 95:
		return colCursor
	default:
		// Unknown ids get a stable but arbitrary colour.
		h := uint32(id) * 2654435761
		return color.RGBA{R: uint8(h >> 24), G: uint8(h >> 16), B: uint8(h >> 8), A: 255}
	}
}

// withAlpha scales c by a (0 means opaque).
func withAlpha(c color.RGBA, a float64) color.RGBA {
	if a <= 0 || a >= 1 {
		return c
	}
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(float64(c.A) * a),
	}
}

// fogColor returns the overlay for a fog value in [0,1].
func fogColor(v float64) color.RGBA {
	return withAlpha(colFog, v)
}
