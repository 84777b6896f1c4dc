package main

// SpatialCellSize is roughly twice the largest body radius
const SpatialCellSize = 64.0

// SpatialGrid is a uniform grid for broad-phase player queries.
// Entries are indices into the caller's player slice for the current tick.
type SpatialGrid struct {
	cols, rows int
	cells      [][]int
}

// NewSpatialGrid creates a grid covering a w x h arena
func NewSpatialGrid(w, h float64) *SpatialGrid {
	cols := int(w/SpatialCellSize) + 1
	rows := int(h/SpatialCellSize) + 1
	return &SpatialGrid{
		cols:  cols,
		rows:  rows,
		cells: make([][]int, cols*rows),
	}
}

// Clear resets all cells (keeps allocated capacity)
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

func (g *SpatialGrid) clampCell(x, y float64) (int, int) {
	cx := int(x / SpatialCellSize)
	cy := int(y / SpatialCellSize)
	if x < 0 {
		cx = 0
	}
	if y < 0 {
		cy = 0
	}
	if cx >= g.cols {
		cx = g.cols - 1
	}
	if cy >= g.rows {
		cy = g.rows - 1
	}
	return cx, cy
}

// InsertCircle adds idx to every cell overlapping the circle's bounding box
func (g *SpatialGrid) InsertCircle(x, y, radius float64, idx int) {
	minCX, minCY := g.clampCell(x-radius, y-radius)
	maxCX, maxCY := g.clampCell(x+radius, y+radius)
	for cy := minCY; cy <= maxCY; cy++ {
		for cx := minCX; cx <= maxCX; cx++ {
			i := cy*g.cols + cx
			g.cells[i] = append(g.cells[i], idx)
		}
	}
}

// QueryBuf appends candidate indices near (x, y) to buf. Indices may repeat.
func (g *SpatialGrid) QueryBuf(x, y, radius float64, buf []int) []int {
	minCX, minCY := g.clampCell(x-radius, y-radius)
	maxCX, maxCY := g.clampCell(x+radius, y+radius)
	for cy := minCY; cy <= maxCY; cy++ {
		for cx := minCX; cx <= maxCX; cx++ {
			buf = append(buf, g.cells[cy*g.cols+cx]...)
		}
	}
	return buf
}
