package tetris

// CanMoveTo reports whether p fits at (x, y). Only the floor and filled cells
// are checked: cells above the top row are allowed, and horizontal containment
// is left to CanShiftHorizontally.
func CanMoveTo(b *Board, p Piece, x, y int) bool {
	p.X, p.Y = x, y
	for _, c := range p.Cells() {
		if c.Y >= b.Height() {
			return false
		}
		if b.InBounds(c.X, c.Y) && b.Cell(c.X, c.Y).IsFilled() {
			return false
		}
	}
	return true
}

// CanShiftHorizontally reports whether p fits when moved to column x.
func CanShiftHorizontally(b *Board, p Piece, x int) bool {
	p.X = x
	for _, c := range p.Cells() {
		if c.X < 0 || c.X >= b.Width() {
			return false
		}
		if c.Y >= 0 && c.Y < b.Height() && b.Cell(c.X, c.Y).IsFilled() {
			return false
		}
	}
	return true
}

// CanRotateTo reports whether p fits in the given rotation. Unlike CanMoveTo,
// every cell must lie inside the board, including below the top row.
func CanRotateTo(b *Board, p Piece, rotation int) bool {
	p.Rotation = rotation % 4
	for _, c := range p.Cells() {
		if !b.InBounds(c.X, c.Y) {
			return false
		}
		if b.Cell(c.X, c.Y).IsFilled() {
			return false
		}
	}
	return true
}
