package game

// Cell values on the walkability layer.
const (
	Open    = 0
	Blocked = 1
)

// Cell is an integer grid coordinate.
type Cell struct {
	X, Y int
}

// Add returns the cell offset by d.
func (c Cell) Add(d Cell) Cell {
	return Cell{X: c.X + d.X, Y: c.Y + d.Y}
}

// DistSq returns the squared Euclidean distance between two cells.
func (c Cell) DistSq(o Cell) int {
	dx := c.X - o.X
	dy := c.Y - o.Y
	return dx*dx + dy*dy
}

// Adjacent reports whether o is one of c's four direct neighbours.
func (c Cell) Adjacent(o Cell) bool {
	dx := c.X - o.X
	dy := c.Y - o.Y
	return dx*dx+dy*dy == 1
}

// Vec returns the cell as a continuous position.
func (c Cell) Vec() Vec2 {
	return Vec2{X: float64(c.X), Y: float64(c.Y)}
}

// Grid is a dense integer layer.
type Grid struct {
	Cols  int
	Rows  int
	Cells []int // row-major: index = y*Cols + x
}

// NewGrid creates a grid of the given size filled with zero.
func NewGrid(cols, rows int) *Grid {
	return &Grid{Cols: cols, Rows: rows, Cells: make([]int, cols*rows)}
}

// GridFromRows builds a grid from nested rows; rows[y][x]. Short rows are
// padded with zero.
func GridFromRows(rows [][]int) *Grid {
	cols := 0
	for _, r := range rows {
		cols = max(cols, len(r))
	}
	g := NewGrid(cols, len(rows))
	for y, r := range rows {
		copy(g.Cells[y*cols:], r)
	}
	return g
}

// InBounds returns true if (x, y) lies on the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Cols && y >= 0 && y < g.Rows
}

// At returns the value at (x, y), or 0 when out of bounds.
func (g *Grid) At(x, y int) int {
	if !g.InBounds(x, y) {
		return 0
	}
	return g.Cells[y*g.Cols+x]
}

// Set writes v at (x, y). Out-of-bounds writes are ignored.
func (g *Grid) Set(x, y, v int) {
	if !g.InBounds(x, y) {
		return
	}
	g.Cells[y*g.Cols+x] = v
}

// IsOpen returns true if (x, y) is in bounds and holds Open.
// Used on walkability layers only.
func (g *Grid) IsOpen(x, y int) bool {
	return g.InBounds(x, y) && g.Cells[y*g.Cols+x] == Open
}

// Fill sets every cell to v.
func (g *Grid) Fill(v int) {
	for i := range g.Cells {
		g.Cells[i] = v
	}
}

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	c := &Grid{Cols: g.Cols, Rows: g.Rows, Cells: make([]int, len(g.Cells))}
	copy(c.Cells, g.Cells)
	return c
}

// Rows2D returns the grid as nested rows, mostly for tests and debugging.
func (g *Grid) Rows2D() [][]int {
	out := make([][]int, g.Rows)
	for y := range out {
		out[y] = make([]int, g.Cols)
		copy(out[y], g.Cells[y*g.Cols:(y+1)*g.Cols])
	}
	return out
}

// Count returns how many cells hold v.
func (g *Grid) Count(v int) int {
	n := 0
	for _, c := range g.Cells {
		if c == v {
			n++
		}
	}
	return n
}
