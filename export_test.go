package tetris

// Fill fills row y with color, leaving the columns in except empty.
func (b *Board) Fill(y int, color Color, except ...int) {
	for x := 0; x < b.width; x++ {
		b.Set(x, y, color)
	}
	for _, x := range except {
		b.mustInBounds(x, y)
		b.rows[y][x] = CellEmpty
	}
}

// Locks reports how many pieces the session has locked.
func (s *Session) Locks() int {
	return s.locks
}
