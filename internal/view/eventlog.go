package view

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/Garsondee/Fog-Tactics/internal/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	logPanelWidth = 340
	logMaxEntries = 60
	logLineHeight = 14
)

// EventLog is a ring buffer of recent session events shown on the right
// side of the window. The session's SimLog keeps the full history.
type EventLog struct {
	entries []game.SimLogEntry
	head    int
	count   int
	seen    int // SimLog entries already pulled
}

// NewEventLog creates an event log with a fixed capacity.
func NewEventLog() *EventLog {
	return &EventLog{entries: make([]game.SimLogEntry, logMaxEntries)}
}

// Add appends an entry, overwriting the oldest once full.
func (el *EventLog) Add(e game.SimLogEntry) {
	el.entries[el.head] = e
	el.head = (el.head + 1) % logMaxEntries
	if el.count < logMaxEntries {
		el.count++
	}
}

// Pull copies entries recorded since the last call.
func (el *EventLog) Pull(src *game.SimLog) {
	all := src.Entries()
	for _, e := range all[el.seen:] {
		el.Add(e)
	}
	el.seen = len(all)
}

// Recent returns entries in chronological order (oldest first).
func (el *EventLog) Recent() []game.SimLogEntry {
	result := make([]game.SimLogEntry, el.count)
	for i := 0; i < el.count; i++ {
		idx := (el.head - el.count + i + logMaxEntries) % logMaxEntries
		result[i] = el.entries[idx]
	}
	return result
}

// Text returns the visible entries one per line.
func (el *EventLog) Text() string {
	var sb strings.Builder
	for _, e := range el.Recent() {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Draw renders the log panel at panelX, newest entry at the bottom.
func (el *EventLog) Draw(screen *ebiten.Image, face text.Face, panelX, panelH int, colors func(name string) color.RGBA) {
	vector.FillRect(screen, float32(panelX), 0, logPanelWidth, float32(panelH), colPanel, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1, colPanelEdge, false)
	vector.FillRect(screen, float32(panelX), 0, logPanelWidth, 18, colTitleBar, false)
	drawText(screen, face, "EVENTS  (C = copy)", panelX+8, 2, colText)

	entries := el.Recent()
	maxVisible := (panelH - 24) / logLineHeight
	if len(entries) > maxVisible {
		entries = entries[len(entries)-maxVisible:]
	}
	const recent = 3

	y := 22
	for i, e := range entries {
		isRecent := i >= len(entries)-recent
		if isRecent {
			vector.FillRect(screen, float32(panelX+2), float32(y), logPanelWidth-4, logLineHeight, colHighlight, false)
		}
		vector.FillRect(screen, float32(panelX+5), float32(y+4), 3, 6, colors(e.Entity), false)

		col := colTextDim
		if isRecent {
			col = colText
		}
		line := fmt.Sprintf("%03d %s %s %s", e.Turn, e.Entity, e.Key, e.Value)
		drawText(screen, face, line, panelX+12, y, col)
		y += logLineHeight
	}
}

func drawText(dst *ebiten.Image, face text.Face, s string, x, y int, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(c)
	text.Draw(dst, s, face, op)
}
