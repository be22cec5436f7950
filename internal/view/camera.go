package view

import (
	"math"

	"github.com/Garsondee/Fog-Tactics/internal/game"
)

const (
	zoomMin = 0.5
	zoomMax = 4.0
)

// camera maps world pixels to the map viewport. World pixels are grid cells
// scaled by tileSize.
type camera struct {
	x, y   float64 // world-space centre
	zoom   float64
	vpW    float64 // viewport size in screen pixels
	vpH    float64
	offX   float64 // viewport offset from the window origin
	offY   float64
	worldW float64
	worldH float64
}

// toWorld is the inverse of the draw transform:
//
//	screen = (world - cam) * zoom + vpHalf + offset
//	world  = (screen - offset - vpHalf) / zoom + cam
func (c *camera) toWorld(sx, sy int) (float64, float64) {
	wx := (float64(sx)-c.offX-c.vpW/2)/c.zoom + c.x
	wy := (float64(sy)-c.offY-c.vpH/2)/c.zoom + c.y
	return wx, wy
}

// cellAt returns the grid cell under a screen position; ok is false outside
// the viewport.
func (c *camera) cellAt(sx, sy int, tileSize float64) (game.Cell, bool) {
	if float64(sx) < c.offX || float64(sy) < c.offY ||
		float64(sx) >= c.offX+c.vpW || float64(sy) >= c.offY+c.vpH {
		return game.Cell{}, false
	}
	wx, wy := c.toWorld(sx, sy)
	return game.Cell{X: int(math.Floor(wx / tileSize)), Y: int(math.Floor(wy / tileSize))}, true
}

// pan moves the centre by a screen-space delta.
func (c *camera) pan(dx, dy float64) {
	c.x += dx / c.zoom
	c.y += dy / c.zoom
	c.clamp()
}

// zoomBy multiplies the zoom factor and clamps it.
func (c *camera) zoomBy(f float64) {
	c.zoom = math.Max(zoomMin, math.Min(zoomMax, c.zoom*f))
	c.clamp()
}

// follow centres on a world position.
func (c *camera) follow(wx, wy float64) {
	c.x, c.y = wx, wy
	c.clamp()
}

// clamp keeps the view inside the world when the world is larger than the
// viewport, and centred on it otherwise.
func (c *camera) clamp() {
	halfW := c.vpW / 2 / c.zoom
	halfH := c.vpH / 2 / c.zoom
	if 2*halfW >= c.worldW {
		c.x = c.worldW / 2
	} else {
		c.x = math.Max(halfW, math.Min(c.worldW-halfW, c.x))
	}
	if 2*halfH >= c.worldH {
		c.y = c.worldH / 2
	} else {
		c.y = math.Max(halfH, math.Min(c.worldH-halfH, c.y))
	}
}
