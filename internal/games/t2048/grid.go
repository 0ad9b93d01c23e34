package t2048

// Size is the board dimension.
const Size = 4

// TileID identifies a tile for its whole lifetime. IDs are never reused.
type TileID uint64

// Tile is a numbered block on the board.
// A tile stored in a Grid is never modified; merges allocate a new Tile.
type Tile struct {
	ID    TileID
	Value int
}

// Coord addresses a cell by column (horizontal) and row, both zero-based.
type Coord struct {
	Col int
	Row int
}

// Grid is a fixed 4x4 container of optional tiles.
type Grid struct {
	cells [Size][Size]*Tile // [row][col]
}

// NewGrid returns an empty grid.
func NewGrid() *Grid {
	return &Grid{}
}

// Get returns the tile at (col, row), or nil if the cell is empty.
// Coordinates outside [0, Size) panic.
func (g *Grid) Get(col, row int) *Tile {
	return g.cells[row][col]
}

// Set places a tile at (col, row). A nil tile clears the cell.
func (g *Grid) Set(col, row int, t *Tile) {
	g.cells[row][col] = t
}

// EmptyCells returns every unoccupied coordinate in row-major order.
func (g *Grid) EmptyCells() []Coord {
	cells := make([]Coord, 0, Size*Size)
	for row := range Size {
		for col := range Size {
			if g.cells[row][col] == nil {
				cells = append(cells, Coord{Col: col, Row: row})
			}
		}
	}
	return cells
}

// Count returns the number of occupied cells.
func (g *Grid) Count() int {
	return Size*Size - len(g.EmptyCells())
}

// Values returns tile values indexed [row][col], with 0 for empty cells.
func (g *Grid) Values() [Size][Size]int {
	var v [Size][Size]int
	for row := range Size {
		for col := range Size {
			if t := g.cells[row][col]; t != nil {
				v[row][col] = t.Value
			}
		}
	}
	return v
}

// Sum returns the total of all tile values.
func (g *Grid) Sum() int {
	sum := 0
	for _, row := range g.Values() {
		for _, v := range row {
			sum += v
		}
	}
	return sum
}

// MaxValue returns the highest tile value on the grid, or 0 when empty.
func (g *Grid) MaxValue() int {
	maxVal := 0
	for _, row := range g.Values() {
		for _, v := range row {
			if v > maxVal {
				maxVal = v
			}
		}
	}
	return maxVal
}

// Matrix is a read-only copy of the grid for rendering.
// A zero Tile (ID 0) marks an empty cell.
type Matrix [Size][Size]Tile

// At returns the tile at (col, row) and whether the cell is occupied.
func (m Matrix) At(col, row int) (Tile, bool) {
	t := m[row][col]
	return t, t.ID != 0
}

// snapshot copies the grid into a Matrix.
func (g *Grid) snapshot() Matrix {
	var m Matrix
	for row := range Size {
		for col := range Size {
			if t := g.cells[row][col]; t != nil {
				m[row][col] = *t
			}
		}
	}
	return m
}
