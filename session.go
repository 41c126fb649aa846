package tetris

import (
	"fmt"
	"io"
	"log"
	"time"

	"github.com/google/uuid"
)

type Action int

const (
	ActionTick Action = iota
	ActionShiftLeft
	ActionShiftRight
	ActionSoftDrop
	ActionHardDrop
	ActionRotate
)

func (a Action) String() string {
	switch a {
	case ActionTick:
		return "Tick"
	case ActionShiftLeft:
		return "ShiftLeft"
	case ActionShiftRight:
		return "ShiftRight"
	case ActionSoftDrop:
		return "SoftDrop"
	case ActionHardDrop:
		return "HardDrop"
	case ActionRotate:
		return "Rotate"
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

type GameState int

const (
	StatePlaying GameState = iota
	StateGameOver
)

func (s GameState) String() string {
	if s == StateGameOver {
		return "GameOver"
	}
	return "Playing"
}

type CompleteHandler interface {
	OnCompleted(rows int)
}

type CompleteHandlerFunc func(rows int)

func (f CompleteHandlerFunc) OnCompleted(rows int) {
	f(rows)
}

// IntervalHandler receives the gravity interval whenever it changes. Hosts
// apply it to the scheduler that delivers ActionTick.
type IntervalHandler interface {
	OnInterval(interval time.Duration)
}

type IntervalHandlerFunc func(interval time.Duration)

func (f IntervalHandlerFunc) OnInterval(interval time.Duration) {
	f(interval)
}

// State is a read-only snapshot for renderers.
type State struct {
	ID          string
	Cells       [][]Cell
	Active      *Piece
	Next        ShapeType
	Score       int
	Progression Progression
	Interval    time.Duration
	GameState   GameState
}

// Session is one game: the board, the active piece, score and progression.
// It is not safe for concurrent use; hosts drive it from a single loop.
type Session struct {
	getter          ShapeGetter
	completeHandler CompleteHandler
	intervalHandler IntervalHandler
	logger          *log.Logger
	width, height   int

	id          uuid.UUID
	board       *Board
	active      *Piece
	next        ShapeType
	score       int
	progression Progression
	state       GameState
	locks       int
}

type SessionOption func(*Session)

func WithSize(width, height int) SessionOption {
	if width < 4 || height < 4 {
		panic(fmt.Errorf("minimal width x height is 4x4"))
	}
	return func(s *Session) {
		s.width = width
		s.height = height
	}
}

func WithGetter(getter ShapeGetter) SessionOption {
	return func(s *Session) {
		s.getter = getter
	}
}

func WithCompleteHandler(handler CompleteHandler) SessionOption {
	return func(s *Session) {
		s.completeHandler = handler
	}
}

func WithIntervalHandler(handler IntervalHandler) SessionOption {
	return func(s *Session) {
		s.intervalHandler = handler
	}
}

func WithLogger(logger *log.Logger) SessionOption {
	return func(s *Session) {
		s.logger = logger
	}
}

// NewSession starts a game on a 10x18 board unless WithSize says otherwise.
// The first piece is spawned immediately.
func NewSession(options ...SessionOption) *Session {
	s := &Session{
		width:  10,
		height: 18,
	}
	for _, opt := range options {
		opt(s)
	}
	if s.getter == nil {
		s.getter = NewRandomGetter(time.Now().UnixNano())
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard, "", 0)
	}

	s.next = s.getter.Next()
	s.Reset()
	return s
}

// Reset replaces the board and starts a new game. The upcoming piece is kept.
func (s *Session) Reset() {
	s.id = uuid.New()
	s.board = NewBoard(s.width, s.height)
	s.active = nil
	s.score = 0
	s.progression = Progression{}
	s.state = StatePlaying
	s.logf("new game on %dx%d board", s.width, s.height)

	s.notifyInterval()
	s.spawn()
}

func (s *Session) ID() string {
	return s.id.String()
}

// Board returns the live board. Callers that only draw should use Render or
// GetState instead, since writes through it change the game.
func (s *Session) Board() *Board {
	return s.board
}

// Active returns a copy of the falling piece, or false when there is none.
func (s *Session) Active() (Piece, bool) {
	if s.active == nil {
		return Piece{}, false
	}
	return *s.active, true
}

func (s *Session) Next() ShapeType {
	return s.next
}

func (s *Session) Score() int {
	return s.score
}

func (s *Session) Progression() Progression {
	return s.progression
}

func (s *Session) Interval() time.Duration {
	return s.progression.Interval()
}

func (s *Session) GameState() GameState {
	return s.state
}

func (s *Session) IsOver() bool {
	return s.state == StateGameOver
}

// Apply executes a single action. Blocked moves are silently ignored and
// nothing happens once the game is over.
func (s *Session) Apply(action Action) {
	if s.state == StateGameOver || s.active == nil {
		return
	}

	switch action {
	case ActionTick, ActionSoftDrop:
		s.applyDown()
	case ActionShiftLeft:
		s.applyShift(-1)
	case ActionShiftRight:
		s.applyShift(1)
	case ActionRotate:
		s.applyRotate()
	case ActionHardDrop:
		s.applyHardDrop()
	}
}

// Frame applies the input actions of one frame and then, if gravity is due,
// one gravity tick. A frame whose input locked a piece skips its tick, so a
// freshly spawned piece is never moved on the frame it appears.
func (s *Session) Frame(gravity bool, actions ...Action) {
	locks := s.locks
	for _, action := range actions {
		s.Apply(action)
	}
	if gravity && s.locks == locks {
		s.Apply(ActionTick)
	}
}

func (s *Session) applyDown() {
	p := s.active
	if CanMoveTo(s.board, *p, p.X, p.Y+1) {
		p.Y++
		return
	}
	s.lock()
}

func (s *Session) applyShift(dx int) {
	p := s.active
	if CanShiftHorizontally(s.board, *p, p.X+dx) {
		p.X += dx
	}
}

func (s *Session) applyRotate() {
	p := s.active
	next := (p.Rotation + 1) % 4
	if CanRotateTo(s.board, *p, next) {
		p.Rotation = next
	}
}

func (s *Session) applyHardDrop() {
	p := s.active
	finalY := s.landingY(*p)
	if finalY > p.Y {
		s.score += finalY - p.Y
		p.Y = finalY
	}
	s.lock()
}

func (s *Session) landingY(p Piece) int {
	y := p.Y
	for CanMoveTo(s.board, p, p.X, y+1) {
		y++
	}
	return y
}

// GhostY returns the row the active piece would land on if hard dropped.
func (s *Session) GhostY() (int, bool) {
	if s.active == nil {
		return 0, false
	}
	return s.landingY(*s.active), true
}

// lock merges the active piece into the board, clears lines and spawns the
// next piece. Cells above the top row are discarded.
func (s *Session) lock() {
	p := *s.active
	s.active = nil
	s.locks++
	color := p.Color()
	for _, c := range p.Cells() {
		if s.board.InBounds(c.X, c.Y) {
			s.board.Set(c.X, c.Y, color)
		}
	}
	s.logf("locked %s", p)

	s.popCompletedRows()
	s.spawn()
}

func (s *Session) popCompletedRows() {
	cleared := ClearLines(s.board)
	n := len(cleared)
	if n > 0 {
		s.score += n * PointsPerLine
		s.logf("cleared %d lines %v, score %d", n, cleared, s.score)
		if s.progression.Record(n) {
			s.logf("level %d", s.progression.Level)
			s.notifyInterval()
		}
	}

	if s.completeHandler != nil {
		s.completeHandler.OnCompleted(n)
	}
}

func (s *Session) spawn() {
	p := Piece{
		Type:     s.next,
		Rotation: 0,
		X:        s.width/2 - 1,
		Y:        0,
	}
	s.next = s.getter.Next()

	if !CanMoveTo(s.board, p, p.X, p.Y) {
		s.state = StateGameOver
		s.logf("game over: cannot spawn %s, score %d", p, s.score)
		return
	}
	s.active = &p
	s.logf("spawned %s", p)
}

func (s *Session) notifyInterval() {
	interval := s.progression.Interval()
	s.logf("gravity interval %s", interval)
	if s.intervalHandler != nil {
		s.intervalHandler.OnInterval(interval)
	}
}

func (s *Session) logf(format string, args ...any) {
	s.logger.Printf("[%s] "+format, append([]any{s.id}, args...)...)
}

func (s *Session) GetState() State {
	state := State{
		ID:          s.ID(),
		Cells:       s.board.Rows(),
		Next:        s.next,
		Score:       s.score,
		Progression: s.progression,
		Interval:    s.progression.Interval(),
		GameState:   s.state,
	}
	if s.active != nil {
		p := *s.active
		state.Active = &p
	}
	return state
}

// Render returns the board with the active piece drawn in. Piece cells outside
// the board are clipped.
func (s *Session) Render() [][]Cell {
	frame := s.board.Rows()
	if s.active == nil {
		return frame
	}
	color := s.active.Color()
	for _, c := range s.active.Cells() {
		if s.board.InBounds(c.X, c.Y) {
			frame[c.Y][c.X] = Filled(color)
		}
	}
	return frame
}
