package tetris

import "time"

const (
	LinesPerLevel = 10
	PointsPerLine = 100
)

// LevelIntervals is the gravity interval of each level.
var LevelIntervals = []time.Duration{
	3000 * time.Millisecond,
	850 * time.Millisecond,
	700 * time.Millisecond,
	600 * time.Millisecond,
	500 * time.Millisecond,
	400 * time.Millisecond,
	300 * time.Millisecond,
	250 * time.Millisecond,
	221 * time.Millisecond,
	190 * time.Millisecond,
}

// IntervalForLevel clamps level into LevelIntervals.
func IntervalForLevel(level int) time.Duration {
	if level < 0 {
		level = 0
	}
	if level >= len(LevelIntervals) {
		level = len(LevelIntervals) - 1
	}
	return LevelIntervals[level]
}

// ClearLines removes every full row and shifts the rows above down. It returns
// the cleared row indices, top to bottom, as they were before the clear.
func ClearLines(b *Board) []int {
	var full []int
	for y := 0; y < b.Height(); y++ {
		if b.RowIsFull(y) {
			full = append(full, y)
		}
	}

	// remove bottom-most first so the remaining indices stay valid, then
	// refill from the top.
	for i := len(full) - 1; i >= 0; i-- {
		b.RemoveRow(full[i])
	}
	for range full {
		b.InsertEmptyRowAtTop()
	}
	return full
}

type Progression struct {
	Level        int
	LinesInLevel int
	Lines        int
}

// Record counts n cleared lines and reports whether the level went up.
func (p *Progression) Record(n int) bool {
	if n <= 0 {
		return false
	}
	p.Lines += n
	p.LinesInLevel += n
	if p.LinesInLevel < LinesPerLevel {
		return false
	}
	p.LinesInLevel -= LinesPerLevel
	if p.Level >= len(LevelIntervals)-1 {
		return false
	}
	p.Level++
	return true
}

func (p Progression) Interval() time.Duration {
	return IntervalForLevel(p.Level)
}
