package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/JoelOtter/termloop"
	"github.com/fatih/color"
	"github.com/jauhararifin/tetris"
	"github.com/spf13/cobra"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := newRootCmd(&cfg).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(cfg *Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "playtetris",
		Short:        "Play tetris in the terminal",
		Long:         "Arrows move and rotate, down soft drops, space hard drops, r restarts, ctrl+c quits.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(*cfg)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&cfg.Width, "width", cfg.Width, "board width")
	flags.IntVar(&cfg.Height, "height", cfg.Height, "board height")
	flags.Int64Var(&cfg.Seed, "seed", cfg.Seed, "piece seed, 0 picks one from the clock")
	flags.Float64Var(&cfg.FPS, "fps", cfg.FPS, "frames per second")
	flags.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "append game logs to this file")
	return cmd
}

func run(cfg Config) error {
	logger, closer, err := cfg.OpenLogger()
	if err != nil {
		return err
	}
	defer closer.Close()

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Printf("starting %dx%d game, seed %d", cfg.Width, cfg.Height, seed)

	game := termloop.NewGame()
	game.Screen().SetFps(cfg.FPS)
	level := termloop.NewBaseLevel(termloop.Cell{})
	player := NewBoardPlayer(0, 0, cfg.Width, cfg.Height, seed, logger)
	level.AddEntity(player)
	game.Screen().SetLevel(level)
	game.Start()

	printSummary(player.session)
	return nil
}

var (
	emph = color.New(color.FgBlue, color.Bold).SprintFunc()
	warn = color.New(color.FgRed, color.Bold).SprintFunc()
)

func printSummary(s *tetris.Session) {
	p := s.Progression()
	if s.IsOver() {
		fmt.Println(warn("Game over"))
	}
	fmt.Printf("Score: %s  Level: %s  Lines: %s\n", emph(s.Score()), emph(p.Level), emph(p.Lines))
}

type boardPlayer struct {
	session             *tetris.Session
	clock               *gravityClock
	x, y, width, height int
	pending             []tetris.Action

	scoreText *termloop.Text
	levelText *termloop.Text
	linesText *termloop.Text
	stateText *termloop.Text
}

func NewBoardPlayer(x, y, width, height int, seed int64, logger *log.Logger) *boardPlayer {
	textX := x + width + 3
	b := &boardPlayer{
		clock:  &gravityClock{},
		width:  width,
		height: height,
		x:      x,
		y:      y,

		scoreText: termloop.NewText(textX, y+7, "", termloop.ColorWhite, termloop.ColorDefault),
		levelText: termloop.NewText(textX, y+8, "", termloop.ColorWhite, termloop.ColorDefault),
		linesText: termloop.NewText(textX, y+9, "", termloop.ColorWhite, termloop.ColorDefault),
		stateText: termloop.NewText(textX, y+11, "", termloop.ColorRed, termloop.ColorDefault),
	}

	b.session = tetris.NewSession(
		tetris.WithSize(width, height),
		tetris.WithGetter(tetris.NewRandomGetter(seed)),
		tetris.WithIntervalHandler(b.clock),
		tetris.WithLogger(logger),
	)
	return b
}

// actionForKey maps a key press to a session action.
func actionForKey(ev termloop.Event) (tetris.Action, bool) {
	if ev.Type != termloop.EventKey {
		return 0, false
	}
	switch ev.Key {
	case termloop.KeyArrowLeft:
		return tetris.ActionShiftLeft, true
	case termloop.KeyArrowRight:
		return tetris.ActionShiftRight, true
	case termloop.KeyArrowUp:
		return tetris.ActionRotate, true
	case termloop.KeyArrowDown:
		return tetris.ActionSoftDrop, true
	case termloop.KeySpace:
		return tetris.ActionHardDrop, true
	}
	return 0, false
}

func (b *boardPlayer) Tick(ev termloop.Event) {
	if ev.Type == termloop.EventKey && (ev.Ch == 'r' || ev.Ch == 'R') {
		b.session.Reset()
		b.clock.Reset()
		b.pending = b.pending[:0]
		return
	}
	if action, ok := actionForKey(ev); ok {
		b.pending = append(b.pending, action)
	}
}

func (b *boardPlayer) Draw(s *termloop.Screen) {
	delta := time.Duration(s.TimeDelta() * float64(time.Second))
	gravity := !b.session.IsOver() && b.clock.Advance(delta)
	b.session.Frame(gravity, b.pending...)
	b.pending = b.pending[:0]

	b.drawFrame(s)
	b.drawNext(s)
	b.drawStats(s)
	b.drawTiles(s)
}

var borderCell = termloop.Cell{Fg: termloop.ColorWhite, Bg: termloop.ColorBlack, Ch: '+'}

func (b *boardPlayer) drawFrame(s *termloop.Screen) {
	for i := 0; i < b.width+2; i++ {
		s.RenderCell(b.x+i, b.y, &borderCell)
		s.RenderCell(b.x+i, b.y+b.height+1, &borderCell)
	}
	for i := 0; i < b.height+2; i++ {
		s.RenderCell(b.x, b.y+i, &borderCell)
		s.RenderCell(b.x+b.width+1, b.y+i, &borderCell)
	}

	for i := 0; i < 6; i++ {
		s.RenderCell(b.x+b.width+3+i, b.y, &borderCell)
		s.RenderCell(b.x+b.width+3+i, b.y+5, &borderCell)
		s.RenderCell(b.x+b.width+3, b.y+i, &borderCell)
		s.RenderCell(b.x+b.width+8, b.y+i, &borderCell)
	}
}

func (b *boardPlayer) drawNext(s *termloop.Screen) {
	next := b.session.Next().Shape()
	m := tetris.Matrix(next.Masks[0], next.Color)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			s.RenderCell(b.x+b.width+4+x, b.y+1+y, cellFor(m[y][x], '@'))
		}
	}
}

func (b *boardPlayer) drawStats(s *termloop.Screen) {
	p := b.session.Progression()
	b.scoreText.SetText(fmt.Sprintf("Score: %d", b.session.Score()))
	b.levelText.SetText(fmt.Sprintf("Level: %d", p.Level))
	b.linesText.SetText(fmt.Sprintf("Lines: %d", p.Lines))
	if b.session.IsOver() {
		b.stateText.SetText("GAME OVER - r to restart")
	} else {
		b.stateText.SetText("")
	}
	b.scoreText.Draw(s)
	b.levelText.Draw(s)
	b.linesText.Draw(s)
	b.stateText.Draw(s)
}

func (b *boardPlayer) drawTiles(s *termloop.Screen) {
	tiles := b.session.Render()
	ghost := make(map[tetris.Point]bool)
	if p, ok := b.session.Active(); ok {
		if y, ok := b.session.GhostY(); ok && y > p.Y {
			p.Y = y
			for _, c := range p.Cells() {
				ghost[c] = true
			}
		}
	}

	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			cell := cellFor(tiles[y][x], '#')
			if !tiles[y][x].IsFilled() && ghost[tetris.Point{X: x, Y: y}] {
				cell = &termloop.Cell{Fg: termloop.ColorWhite, Bg: termloop.ColorBlack, Ch: '.'}
			}
			s.RenderCell(b.x+1+x, b.y+1+y, cell)
		}
	}
}

func cellFor(c tetris.Cell, ch rune) *termloop.Cell {
	if !c.IsFilled() {
		return &termloop.Cell{Fg: termloop.ColorWhite, Bg: termloop.ColorBlack, Ch: 0}
	}
	return &termloop.Cell{Fg: attrFor(c.Color()), Bg: termloop.ColorBlack, Ch: ch}
}

func attrFor(c tetris.Color) termloop.Attr {
	switch c {
	case tetris.ColorCyan:
		return termloop.ColorCyan
	case tetris.ColorYellow:
		return termloop.ColorYellow
	case tetris.ColorPurple:
		return termloop.ColorMagenta
	case tetris.ColorGreen:
		return termloop.ColorGreen
	case tetris.ColorRed:
		return termloop.ColorRed
	case tetris.ColorBlue:
		return termloop.ColorBlue
	case tetris.ColorOrange:
		return termloop.ColorRed | termloop.AttrBold
	}
	return termloop.ColorWhite
}
