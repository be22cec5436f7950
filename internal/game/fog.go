package game

import "math"

// Fog values.
const (
	FogHidden  = 1.0
	FogEdge    = 0.5
	FogVisible = 0.0
)

// FogField tracks how hidden each cell is. Values only ever go down.
type FogField struct {
	Cols   int
	Rows   int
	Values []float64 // row-major, same layout as Grid
}

// NewFogField creates a fully hidden field.
func NewFogField(cols, rows int) *FogField {
	f := &FogField{Cols: cols, Rows: rows, Values: make([]float64, cols*rows)}
	for i := range f.Values {
		f.Values[i] = FogHidden
	}
	return f
}

// At returns the fog value at (x, y). Out-of-bounds cells read as hidden.
func (f *FogField) At(x, y int) float64 {
	if x < 0 || y < 0 || x >= f.Cols || y >= f.Rows {
		return FogHidden
	}
	return f.Values[y*f.Cols+x]
}

// Visible reports whether (x, y) is fully revealed.
func (f *FogField) Visible(x, y int) bool {
	return f.At(x, y) == FogVisible
}

// ClearCircle reveals every cell within radius of (cx, cy). Cells in the
// half-cell band around the radius get FogEdge; cells strictly inside get
// FogVisible. Already visible cells are skipped so nothing is re-hidden.
func (f *FogField) ClearCircle(cx, cy int, radius float64) {
	if radius < 0 {
		return
	}
	inner := (radius - 0.5) * (radius - 0.5)
	outer := (radius + 0.5) * (radius + 0.5)
	r2 := radius * radius

	reach := int(math.Ceil(radius + 0.5))
	x0, x1 := max(0, cx-reach), min(f.Cols-1, cx+reach)
	y0, y1 := max(0, cy-reach), min(f.Rows-1, cy+reach)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			i := y*f.Cols + x
			if f.Values[i] == FogVisible {
				continue
			}
			dx := float64(cx - x)
			dy := float64(cy - y)
			d2 := dx*dx + dy*dy
			switch {
			case d2 >= inner && d2 <= outer:
				f.Values[i] = FogEdge
			case d2 <= r2:
				f.Values[i] = FogVisible
			}
		}
	}
}

// Revealed returns the fraction of cells that are no longer fully hidden.
func (f *FogField) Revealed() float64 {
	if len(f.Values) == 0 {
		return 0
	}
	n := 0
	for _, v := range f.Values {
		if v < FogHidden {
			n++
		}
	}
	return float64(n) / float64(len(f.Values))
}
