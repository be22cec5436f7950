// Package view is the Ebiten client for a game session.
package view

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"math"

	"github.com/Garsondee/Fog-Tactics/internal/game"
	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/gomono"
)

const (
	// borderWidth is the pixel gap between the window edge and the map.
	borderWidth = 24
	// tileSize is the side of one cell in world pixels.
	tileSize = 16
	// viewport size in screen pixels.
	viewW = 960
	viewH = 720
)

// Game implements ebiten.Game over a session.
type Game struct {
	session *game.Session
	log     *slog.Logger

	width  int
	height int

	cam      camera
	worldBuf *ebiten.Image
	render   worldRenderer
	events   *EventLog
	face     text.Face
	hudFace  text.Face

	showHUD  bool
	showGrid bool
	follow   bool // keep the camera on the active player
	simSpeed float64
}

// New builds a client for s. The window size is fixed; the map is viewed
// through a pannable, zoomable camera.
func New(s *game.Session, log *slog.Logger) (*Game, error) {
	if log == nil {
		log = slog.Default()
	}
	src, err := text.NewGoTextFaceSource(bytes.NewReader(gomono.TTF))
	if err != nil {
		return nil, fmt.Errorf("load mono font: %w", err)
	}

	lv := s.Level()
	worldW := float64(lv.Walk.Cols * tileSize)
	worldH := float64(lv.Walk.Rows * tileSize)
	g := &Game{
		session: s,
		log:     log,
		width:   borderWidth + viewW + borderWidth + logPanelWidth,
		height:  borderWidth + viewH + borderWidth,
		cam: camera{
			zoom:   1.5,
			vpW:    viewW,
			vpH:    viewH,
			offX:   borderWidth,
			offY:   borderWidth,
			worldW: worldW,
			worldH: worldH,
		},
		worldBuf: ebiten.NewImage(int(worldW), int(worldH)),
		events:   NewEventLog(),
		face:     &text.GoTextFace{Source: src, Size: 11},
		hudFace:  &text.GoTextFace{Source: src, Size: 13},
		showHUD:  true,
		follow:   true,
		simSpeed: 1,
	}
	g.render = worldRenderer{dst: g.worldBuf, tile: tileSize}
	if p := s.ActivePlayer(); p != nil {
		g.cam.follow(cellCentre(p.Pos))
	} else {
		g.cam.clamp()
	}
	return g, nil
}

// Size returns the window size the client lays out for.
func (g *Game) Size() (int, int) {
	return g.width, g.height
}

func cellCentre(v game.Vec2) (float64, float64) {
	return (v.X + 0.5) * tileSize, (v.Y + 0.5) * tileSize
}

func (g *Game) Update() error {
	g.handleInput()
	if g.simSpeed > 0 {
		g.session.Update(g.simSpeed / float64(ebiten.TPS()))
	}
	g.events.Pull(g.session.Events())
	if g.follow {
		if p := g.session.ActivePlayer(); p != nil {
			g.cam.follow(cellCentre(p.Pos))
		}
	}
	return nil
}

// handleInput processes keyboard and mouse input (edge-triggered where it
// toggles something).
func (g *Game) handleInput() {
	s := g.session

	mx, my := ebiten.CursorPosition()
	if c, ok := g.cam.cellAt(mx, my, tileSize); ok {
		s.PointAt(c)
	} else {
		s.ClearPointer()
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		s.Click()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if !s.EndTurn() {
			g.log.Debug("end turn ignored outside a human turn")
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		g.showGrid = !g.showGrid
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		g.follow = !g.follow
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		if err := clipboard.WriteAll(g.events.Text()); err != nil {
			g.log.Warn("copy event log", "err", err)
		}
	}

	// Camera pan: WASD or arrow keys. Panning stops following.
	const panSpeed = 6.0
	var dx, dy float64
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		dy -= panSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		dy += panSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		dx -= panSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		dx += panSpeed
	}
	if dx != 0 || dy != 0 {
		g.follow = false
		g.cam.pan(dx, dy)
	}

	// Zoom: mouse wheel or =/- keys.
	if _, wy := ebiten.Wheel(); wy != 0 {
		g.cam.zoomBy(math.Pow(1.12, wy))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) {
		g.cam.zoomBy(1.25)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) {
		g.cam.zoomBy(1 / 1.25)
	}

	// Sim speed: P=pause/resume, ,=slower, .=faster.
	speeds := []float64{0, 0.5, 1, 2, 4}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		if g.simSpeed > 0 {
			g.simSpeed = 0
		} else {
			g.simSpeed = 1
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyComma) {
		for i := len(speeds) - 1; i > 0; i-- {
			if speeds[i] <= g.simSpeed {
				g.simSpeed = speeds[i-1]
				break
			}
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPeriod) {
		for _, sp := range speeds {
			if sp > g.simSpeed {
				g.simSpeed = sp
				break
			}
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colBackground)

	g.worldBuf.Clear()
	g.drawWorld(g.worldBuf)

	var blit ebiten.DrawImageOptions
	blit.GeoM.Translate(-g.cam.x, -g.cam.y)
	blit.GeoM.Scale(g.cam.zoom, g.cam.zoom)
	blit.GeoM.Translate(g.cam.vpW/2+g.cam.offX, g.cam.vpH/2+g.cam.offY)
	vp := screen.SubImage(image.Rect(borderWidth, borderWidth, borderWidth+viewW, borderWidth+viewH)).(*ebiten.Image)
	vp.DrawImage(g.worldBuf, &blit)

	ox, oy := float32(borderWidth), float32(borderWidth)
	vector.StrokeRect(screen, ox-1, oy-1, viewW+2, viewH+2, 2, colPanelEdge, false)

	logX := borderWidth + viewW + borderWidth
	g.events.Draw(screen, g.face, logX, g.height, g.playerColor)

	if g.showHUD {
		g.drawHUD(screen)
	}
}

// drawWorld renders ground, decoration, entities, fog and cursor in world
// pixels.
func (g *Game) drawWorld(dst *ebiten.Image) {
	s := g.session
	lv := s.Level()
	fog := s.Fog()
	ts := float32(tileSize)

	for y := 0; y < lv.Walk.Rows; y++ {
		for x := 0; x < lv.Walk.Cols; x++ {
			px, py := float32(x)*ts, float32(y)*ts
			ground := lv.Ground.At(x, y)
			vector.FillRect(dst, px, py, ts, ts, tileColor(ground), false)
			if t := lv.Tiles.At(x, y); t > 0 {
				vector.FillRect(dst, px+1, py+1, ts-2, ts-2, tileColor(t), false)
			}
		}
	}

	s.Draw(&g.render)

	for y := 0; y < fog.Rows; y++ {
		for x := 0; x < fog.Cols; x++ {
			if v := fog.At(x, y); v > 0 {
				vector.FillRect(dst, float32(x)*ts, float32(y)*ts, ts, ts, fogColor(v), false)
			}
		}
	}

	if g.showGrid {
		drawGrid(dst, lv.Walk.Cols, lv.Walk.Rows, ts, colGrid)
	}

	if p := s.Pointer(); p.Valid {
		cur := s.Config().Tiles.Cursor
		vector.StrokeRect(dst, float32(p.Cell.X)*ts, float32(p.Cell.Y)*ts, ts, ts, 1.5, tileColor(cur), false)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	s := g.session
	p := s.ActivePlayer()
	who, steps := "-", 0
	if p != nil {
		who, steps = p.Name, p.StepsRemaining
	}
	speed := fmt.Sprintf("%.1fx", g.simSpeed)
	if g.simSpeed == 0 {
		speed = "PAUSED"
	}
	st := s.Stats()
	lines := []string{
		fmt.Sprintf("Turn %d  %s  steps %d  t=%.0fs", s.Turn(), who, steps, s.Elapsed()),
		fmt.Sprintf("Fog revealed %.0f%%  captures %d  stuck %d", s.Fog().Revealed()*100, st.Captures, st.StuckTurns),
		fmt.Sprintf("SIM %s  P=pause  ,/. speed", speed),
		"click=move  Enter=end turn  F=follow  G=grid",
		fmt.Sprintf("WASD=pan  scroll=zoom (%.1fx)  H=hide", g.cam.zoom),
	}

	const lineH = 16
	const padX, padY = 6, 4
	boxW := float32(0)
	for _, l := range lines {
		w, _ := text.Measure(l, g.hudFace, 0)
		boxW = max(boxW, float32(w))
	}
	boxW += 2 * padX
	boxH := float32(len(lines)*lineH + 2*padY)
	bx := float32(borderWidth + 6)
	by := float32(borderWidth+viewH) - boxH - 6

	vector.FillRect(screen, bx, by, boxW, boxH, color.RGBA{R: 6, G: 10, B: 6, A: 210}, false)
	vector.StrokeRect(screen, bx, by, boxW, boxH, 1, color.RGBA{R: 60, G: 100, B: 60, A: 180}, false)
	for i, l := range lines {
		drawText(screen, g.hudFace, l, int(bx)+padX, int(by)+padY+i*lineH, colText)
	}
}

// playerColor colours an event log row by the entity that produced it.
func (g *Game) playerColor(name string) color.RGBA {
	for i, p := range g.session.Players() {
		if p.Name == name {
			return playerColors[i%len(playerColors)]
		}
	}
	return colTextDim
}

func drawGrid(dst *ebiten.Image, cols, rows int, ts float32, c color.Color) {
	w, h := float32(cols)*ts, float32(rows)*ts
	for x := 0; x <= cols; x++ {
		xf := float32(x) * ts
		vector.StrokeLine(dst, xf, 0, xf, h, 1, c, false)
	}
	for y := 0; y <= rows; y++ {
		yf := float32(y) * ts
		vector.StrokeLine(dst, 0, yf, w, yf, 1, c, false)
	}
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}
