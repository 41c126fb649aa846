package tetris_test

import (
	"bytes"
	"log"
	"testing"
	"time"

	"github.com/jauhararifin/tetris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T, shapes ...tetris.ShapeType) *tetris.Session {
	t.Helper()
	return tetris.NewSession(
		tetris.WithSize(10, 18),
		tetris.WithGetter(tetris.NewQueueGetter(shapes...)),
	)
}

func activePiece(t *testing.T, s *tetris.Session) tetris.Piece {
	t.Helper()
	p, ok := s.Active()
	require.True(t, ok, "expected an active piece")
	return p
}

func TestSpawn(t *testing.T) {
	s := newTestSession(t, tetris.ShapeO, tetris.ShapeT)

	p := activePiece(t, s)
	assert.Equal(t, tetris.Piece{Type: tetris.ShapeO, Rotation: 0, X: 4, Y: 0}, p)
	assert.Equal(t, tetris.ShapeT, s.Next())
	assert.Equal(t, tetris.StatePlaying, s.GameState())
	assert.NotEmpty(t, s.ID())
}

func TestSoftDropLocksOPiece(t *testing.T) {
	s := newTestSession(t, tetris.ShapeO, tetris.ShapeT)

	for i := 0; i < 16; i++ {
		s.Apply(tetris.ActionSoftDrop)
	}
	p := activePiece(t, s)
	assert.Equal(t, 16, p.Y)
	assert.Equal(t, 4, p.X)

	s.Apply(tetris.ActionSoftDrop)

	p = activePiece(t, s)
	assert.Equal(t, tetris.ShapeT, p.Type)
	assert.Equal(t, 0, p.Y)
	b := s.Board()
	for _, y := range []int{16, 17} {
		for x := 0; x < 10; x++ {
			if x == 4 || x == 5 {
				assert.Equal(t, tetris.Filled(tetris.ColorYellow), b.Cell(x, y))
			} else {
				assert.False(t, b.Cell(x, y).IsFilled())
			}
		}
	}
	assert.Equal(t, 0, s.Score())
}

func TestTickMatchesSoftDrop(t *testing.T) {
	s := newTestSession(t, tetris.ShapeO)
	s.Apply(tetris.ActionTick)
	s.Apply(tetris.ActionTick)
	assert.Equal(t, 2, activePiece(t, s).Y)
}

func TestShiftStopsAtWalls(t *testing.T) {
	s := newTestSession(t, tetris.ShapeO)

	for i := 0; i < 10; i++ {
		s.Apply(tetris.ActionShiftLeft)
	}
	assert.Equal(t, 0, activePiece(t, s).X)

	for i := 0; i < 10; i++ {
		s.Apply(tetris.ActionShiftRight)
	}
	assert.Equal(t, 8, activePiece(t, s).X)
}

func TestShiftBlockedByCells(t *testing.T) {
	s := newTestSession(t, tetris.ShapeO)
	s.Board().Set(3, 1, tetris.ColorRed)

	s.Apply(tetris.ActionShiftLeft)
	assert.Equal(t, 4, activePiece(t, s).X)
}

func TestRotate(t *testing.T) {
	s := newTestSession(t, tetris.ShapeI)
	s.Apply(tetris.ActionRotate)
	assert.Equal(t, 1, activePiece(t, s).Rotation)

	for i := 0; i < 3; i++ {
		s.Apply(tetris.ActionRotate)
	}
	assert.Equal(t, 0, activePiece(t, s).Rotation)
}

func TestRotateBlockedAtFloor(t *testing.T) {
	s := newTestSession(t, tetris.ShapeI)
	for i := 0; i < 17; i++ {
		s.Apply(tetris.ActionSoftDrop)
	}
	require.Equal(t, 17, activePiece(t, s).Y)

	s.Apply(tetris.ActionRotate)
	p := activePiece(t, s)
	assert.Equal(t, 0, p.Rotation)
	assert.Equal(t, 17, p.Y)
}

func TestHardDropScoresDistance(t *testing.T) {
	s := newTestSession(t, tetris.ShapeO)

	s.Apply(tetris.ActionHardDrop)
	assert.Equal(t, 16, s.Score())
	assert.True(t, s.Board().Cell(4, 17).IsFilled())
	assert.True(t, s.Board().Cell(5, 16).IsFilled())

	s.Apply(tetris.ActionHardDrop)
	assert.Equal(t, 16+14, s.Score())
	assert.True(t, s.Board().Cell(4, 14).IsFilled())
}

func TestHardDropFromRestAddsNothing(t *testing.T) {
	s := newTestSession(t, tetris.ShapeO)
	for i := 0; i < 16; i++ {
		s.Apply(tetris.ActionSoftDrop)
	}

	s.Apply(tetris.ActionHardDrop)
	assert.Equal(t, 0, s.Score())
	assert.True(t, s.Board().Cell(4, 16).IsFilled())
	assert.Equal(t, 0, activePiece(t, s).Y)
}

func TestLineClearScoresAndNotifies(t *testing.T) {
	var completed []int
	s := tetris.NewSession(
		tetris.WithSize(10, 18),
		tetris.WithGetter(tetris.NewQueueGetter(tetris.ShapeI)),
		tetris.WithCompleteHandler(tetris.CompleteHandlerFunc(func(rows int) {
			completed = append(completed, rows)
		})),
	)
	s.Board().Set(0, 16, tetris.ColorGreen)
	s.Board().Fill(17, tetris.ColorRed, 4, 5, 6, 7)

	s.Apply(tetris.ActionHardDrop)

	assert.Equal(t, 17+100, s.Score())
	assert.Equal(t, []int{1}, completed)
	assert.Equal(t, tetris.Progression{Level: 0, LinesInLevel: 1, Lines: 1}, s.Progression())
	assert.Equal(t, tetris.Filled(tetris.ColorGreen), s.Board().Cell(0, 17))
	assert.False(t, s.Board().RowIsFull(17))
}

func TestLevelUpChangesInterval(t *testing.T) {
	var intervals []time.Duration
	s := tetris.NewSession(
		tetris.WithSize(10, 18),
		tetris.WithGetter(tetris.NewQueueGetter(tetris.ShapeI)),
		tetris.WithIntervalHandler(tetris.IntervalHandlerFunc(func(d time.Duration) {
			intervals = append(intervals, d)
		})),
	)
	require.Equal(t, []time.Duration{3000 * time.Millisecond}, intervals)

	for i := 0; i < 10; i++ {
		s.Board().Fill(17, tetris.ColorRed, 4, 5, 6, 7)
		s.Apply(tetris.ActionHardDrop)
	}

	assert.Equal(t, tetris.Progression{Level: 1, LinesInLevel: 0, Lines: 10}, s.Progression())
	assert.Equal(t, 10*(17+100), s.Score())
	assert.Equal(t, 850*time.Millisecond, s.Interval())
	assert.Equal(t, []time.Duration{3000 * time.Millisecond, 850 * time.Millisecond}, intervals)
}

func TestSpawnBlockedIsGameOver(t *testing.T) {
	s := newTestSession(t, tetris.ShapeT, tetris.ShapeO)

	for i := 0; i < 5; i++ {
		s.Apply(tetris.ActionShiftRight)
	}
	require.Equal(t, 7, activePiece(t, s).X)
	s.Board().Set(4, 0, tetris.ColorRed)
	s.Board().Set(5, 0, tetris.ColorRed)

	s.Apply(tetris.ActionHardDrop)

	assert.Equal(t, tetris.StateGameOver, s.GameState())
	assert.True(t, s.IsOver())
	_, ok := s.Active()
	assert.False(t, ok)
	assert.Equal(t, 16, s.Score())

	// nothing moves after game over
	before := s.Board().Rows()
	for _, a := range []tetris.Action{tetris.ActionTick, tetris.ActionHardDrop, tetris.ActionShiftLeft, tetris.ActionRotate} {
		s.Apply(a)
	}
	assert.Equal(t, before, s.Board().Rows())
	assert.Equal(t, 16, s.Score())
	assert.Equal(t, tetris.StateGameOver, s.GameState())
}

func TestStackToTopIsGameOver(t *testing.T) {
	s := newTestSession(t, tetris.ShapeO)
	for i := 0; i < 8; i++ {
		s.Apply(tetris.ActionHardDrop)
		require.False(t, s.IsOver(), "drop %d", i)
	}
	s.Apply(tetris.ActionHardDrop)
	assert.True(t, s.IsOver())
	assert.True(t, s.Board().Cell(4, 0).IsFilled())
}

func TestFrameAppliesInputBeforeGravity(t *testing.T) {
	s := newTestSession(t, tetris.ShapeO, tetris.ShapeT)

	s.Frame(true, tetris.ActionShiftLeft)
	p := activePiece(t, s)
	assert.Equal(t, 3, p.X)
	assert.Equal(t, 1, p.Y)

	s.Frame(false, tetris.ActionShiftRight)
	p = activePiece(t, s)
	assert.Equal(t, 4, p.X)
	assert.Equal(t, 1, p.Y)
}

func TestFrameHardDropSkipsGravity(t *testing.T) {
	s := newTestSession(t, tetris.ShapeO, tetris.ShapeT)

	s.Frame(true, tetris.ActionHardDrop)

	p := activePiece(t, s)
	assert.Equal(t, tetris.ShapeT, p.Type)
	assert.Equal(t, 0, p.Y)
	assert.Equal(t, 16, s.Score())
	assert.Equal(t, 1, s.Locks())

	// the next frame's tick reaches the new piece
	s.Frame(true)
	assert.Equal(t, 1, activePiece(t, s).Y)
}

func TestFrameGravitySparesFreshPieceOnCrowdedBoard(t *testing.T) {
	s := newTestSession(t, tetris.ShapeI, tetris.ShapeO, tetris.ShapeT)
	s.Apply(tetris.ActionShiftRight)
	s.Apply(tetris.ActionShiftRight)
	require.Equal(t, 6, activePiece(t, s).X)
	// the O spawns legally but cannot fall
	s.Board().Set(4, 2, tetris.ColorRed)
	s.Board().Set(5, 2, tetris.ColorRed)

	s.Frame(true, tetris.ActionHardDrop)

	assert.Equal(t, tetris.StatePlaying, s.GameState())
	p := activePiece(t, s)
	assert.Equal(t, tetris.ShapeO, p.Type)
	assert.Equal(t, 0, p.Y)
	assert.False(t, s.Board().Cell(4, 0).IsFilled())
	assert.Equal(t, 1, s.Locks())
}

func TestReset(t *testing.T) {
	s := newTestSession(t, tetris.ShapeO)
	for i := 0; i < 9; i++ {
		s.Apply(tetris.ActionHardDrop)
	}
	require.True(t, s.IsOver())
	id := s.ID()

	s.Reset()

	assert.False(t, s.IsOver())
	assert.NotEqual(t, id, s.ID())
	assert.Equal(t, 0, s.Score())
	assert.Equal(t, tetris.Progression{}, s.Progression())
	assert.False(t, s.Board().Cell(4, 17).IsFilled())
	assert.Equal(t, 0, activePiece(t, s).Y)
}

func TestGhostY(t *testing.T) {
	s := newTestSession(t, tetris.ShapeO)
	y, ok := s.GhostY()
	require.True(t, ok)
	assert.Equal(t, 16, y)

	s.Board().Set(5, 10, tetris.ColorRed)
	y, _ = s.GhostY()
	assert.Equal(t, 8, y)
}

func TestRenderAndState(t *testing.T) {
	s := newTestSession(t, tetris.ShapeO, tetris.ShapeL)
	s.Board().Set(0, 17, tetris.ColorBlue)

	frame := s.Render()
	assert.Equal(t, tetris.Filled(tetris.ColorYellow), frame[0][4])
	assert.Equal(t, tetris.Filled(tetris.ColorYellow), frame[1][5])
	assert.Equal(t, tetris.Filled(tetris.ColorBlue), frame[17][0])
	assert.False(t, s.Board().Cell(4, 0).IsFilled())

	state := s.GetState()
	assert.Equal(t, s.ID(), state.ID)
	require.NotNil(t, state.Active)
	assert.Equal(t, tetris.ShapeO, state.Active.Type)
	assert.Equal(t, tetris.ShapeL, state.Next)
	assert.Equal(t, tetris.StatePlaying, state.GameState)
	assert.Equal(t, 3000*time.Millisecond, state.Interval)
	assert.Equal(t, tetris.Filled(tetris.ColorBlue), state.Cells[17][0])
}

func TestBoardIsLiveRenderIsCopy(t *testing.T) {
	s := newTestSession(t, tetris.ShapeO, tetris.ShapeO)

	frame := s.Render()
	frame[17][4] = tetris.Filled(tetris.ColorRed)
	assert.False(t, s.Board().Cell(4, 17).IsFilled())
	y, _ := s.GhostY()
	assert.Equal(t, 16, y)

	s.Board().Set(4, 17, tetris.ColorRed)
	y, _ = s.GhostY()
	assert.Equal(t, 15, y)
	assert.Equal(t, tetris.Filled(tetris.ColorRed), s.Render()[17][4])
}

func TestLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	s := tetris.NewSession(
		tetris.WithSize(10, 18),
		tetris.WithGetter(tetris.NewQueueGetter(tetris.ShapeO)),
		tetris.WithLogger(log.New(buf, "", 0)),
	)
	for i := 0; i < 9; i++ {
		s.Apply(tetris.ActionHardDrop)
	}

	out := buf.String()
	assert.Contains(t, out, s.ID())
	assert.Contains(t, out, "spawned O@(4,0)r0")
	assert.Contains(t, out, "game over")
}

func TestDefaultSession(t *testing.T) {
	s := tetris.NewSession()
	assert.Equal(t, 10, s.Board().Width())
	assert.Equal(t, 18, s.Board().Height())
	_, ok := s.Active()
	assert.True(t, ok)

	assert.Panics(t, func() { tetris.WithSize(2, 2) })
}
