package tetris

import "fmt"

// Cell is either CellEmpty or a filled cell carrying its color.
type Cell int

const CellEmpty Cell = 0

func Filled(color Color) Cell {
	return Cell(color)
}

func (c Cell) IsFilled() bool {
	return c != CellEmpty
}

func (c Cell) Color() Color {
	return Color(c)
}

// Board holds the locked cells, rows ordered top to bottom.
type Board struct {
	width, height int
	rows          [][]Cell
}

func NewBoard(width, height int) *Board {
	if width < 4 || height < 4 {
		panic(fmt.Errorf("minimal board size is 4x4, got %dx%d", width, height))
	}
	b := &Board{
		width:  width,
		height: height,
		rows:   make([][]Cell, height),
	}
	for y := range b.rows {
		b.rows[y] = make([]Cell, width)
	}
	return b
}

func (b *Board) Width() int {
	return b.width
}

func (b *Board) Height() int {
	return b.height
}

func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Cell returns the cell at (x, y). Callers must bounds check first.
func (b *Board) Cell(x, y int) Cell {
	b.mustInBounds(x, y)
	return b.rows[y][x]
}

func (b *Board) Set(x, y int, color Color) {
	b.mustInBounds(x, y)
	b.rows[y][x] = Filled(color)
}

func (b *Board) mustInBounds(x, y int) {
	if !b.InBounds(x, y) {
		panic(fmt.Errorf("cell (%d,%d) out of %dx%d board", x, y, b.width, b.height))
	}
}

func (b *Board) RowIsFull(y int) bool {
	b.mustInBounds(0, y)
	for _, c := range b.rows[y] {
		if !c.IsFilled() {
			return false
		}
	}
	return true
}

// RemoveRow drops row y, leaving the board one row short until
// InsertEmptyRowAtTop restores it.
func (b *Board) RemoveRow(y int) {
	if y < 0 || y >= len(b.rows) {
		panic(fmt.Errorf("row %d out of %d rows", y, len(b.rows)))
	}
	b.rows = append(b.rows[:y], b.rows[y+1:]...)
}

func (b *Board) InsertEmptyRowAtTop() {
	b.rows = append(b.rows, nil)
	copy(b.rows[1:], b.rows)
	b.rows[0] = make([]Cell, b.width)
}

// Rows returns a copy of the grid.
func (b *Board) Rows() [][]Cell {
	rows := make([][]Cell, len(b.rows))
	for y, row := range b.rows {
		rows[y] = append(make([]Cell, 0, len(row)), row...)
	}
	return rows
}

func (b *Board) String() string {
	buf := make([]byte, 0, (b.width+1)*b.height)
	for _, row := range b.rows {
		for _, c := range row {
			if c.IsFilled() {
				buf = append(buf, '#')
			} else {
				buf = append(buf, '.')
			}
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}
