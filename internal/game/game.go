package game

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"chosenoffset.com/akari/internal/config"
	"chosenoffset.com/akari/internal/engine"
	"chosenoffset.com/akari/internal/grid"
	"chosenoffset.com/akari/internal/painter"
	"chosenoffset.com/akari/internal/render"
	"chosenoffset.com/akari/internal/ui/hud"
	"chosenoffset.com/akari/internal/ui/toolbar"
)

const (
	// QuitNotice is shown instead of quitting.
	QuitNotice = "You cannot quit the game!"
	// WinBanner is shown while the board reports the puzzle solved.
	WinBanner = "Congratulations, you win!"

	noticeSeconds = 3.0
)

// Config wires a Game to its collaborators.
type Config struct {
	Engine        engine.Engine
	Renderer      render.Renderer
	Input         render.InputManager
	Layout        grid.Layout
	Palette       config.Palette
	ToolbarHeight int
	Log           logrus.FieldLogger
}

// Game holds all game state and logic.
type Game struct {
	ScreenWidth  int
	ScreenHeight int

	Engine   engine.Engine
	Board    engine.Board
	Grid     grid.Layout
	Renderer render.Renderer
	InputMgr render.InputManager
	Log      logrus.FieldLogger

	Painter *painter.Painter
	Toolbar *toolbar.Toolbar
	HUD     *hud.HUD
}

// New builds the game and starts on a fresh default board.
func New(cfg Config) (*Game, error) {
	if err := cfg.Layout.Validate(); err != nil {
		return nil, err
	}
	log := cfg.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	l := cfg.Layout
	g := &Game{
		ScreenWidth:  l.Width,
		ScreenHeight: l.Height + cfg.ToolbarHeight,
		Engine:       cfg.Engine,
		Grid:         l,
		Renderer:     cfg.Renderer,
		InputMgr:     cfg.Input,
		Log:          log,
		Painter:      painter.New(cfg.Renderer, l, cfg.Palette),
		Toolbar:      toolbar.New(cfg.Renderer, cfg.Palette, 0, l.Height, l.Width, cfg.ToolbarHeight),
		HUD:          hud.New(cfg.Renderer, l.Width, l.Height),
	}

	if err := g.Execute(engine.Restart); err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}
	if g.Board.Rows() != l.Rows || g.Board.Cols() != l.Cols {
		err := fmt.Errorf("engine board is %dx%d, layout expects %dx%d", g.Board.Rows(), g.Board.Cols(), l.Rows, l.Cols)
		g.Close()
		return nil, err
	}
	return g, nil
}

// Update handles game logic updates.
func (g *Game) Update() error {
	// Delta time for timers (assuming 60 FPS)
	dt := 1.0 / 60.0
	g.HUD.Update(dt)

	x, y := g.InputMgr.GetCursorPosition()
	if g.InputMgr.IsMouseButtonJustPressed(render.MouseButtonLeft) {
		g.handleClick(x, y, render.MouseButtonLeft)
	} else if g.InputMgr.IsMouseButtonJustPressed(render.MouseButtonRight) {
		g.handleClick(x, y, render.MouseButtonRight)
	}

	switch {
	case g.InputMgr.IsKeyJustPressed(render.KeyR):
		g.Execute(engine.Restart)
	case g.InputMgr.IsKeyJustPressed(render.KeyZ):
		g.Execute(engine.Undo)
	case g.InputMgr.IsKeyJustPressed(render.KeyY):
		g.Execute(engine.Redo)
	case g.InputMgr.IsKeyJustPressed(render.KeyS):
		g.Execute(engine.Solve)
	case g.InputMgr.IsKeyJustPressed(render.KeyQ), g.InputMgr.IsKeyJustPressed(render.KeyEscape):
		g.Quit()
	}

	if g.Board.IsOver() {
		g.HUD.SetBanner(WinBanner)
	} else {
		g.HUD.SetBanner("")
	}
	return nil
}

// handleClick routes a click on the toolbar to its button and any other
// click to Click.
func (g *Game) handleClick(x, y int, button render.MouseButton) {
	if !g.Toolbar.Contains(x, y) {
		g.Click(x, y, button)
		return
	}
	action, ok := g.Toolbar.HitTest(x, y)
	if !ok {
		return
	}
	if action.Quit {
		g.Quit()
		return
	}
	g.Execute(action.Command)
}

// Click plays the move for a click at surface point (x, y). The left button
// toggles a lightbulb, the right button toggles a mark.
func (g *Game) Click(x, y int, button render.MouseButton) error {
	row, col := g.Grid.CellAt(x, y)
	s := g.toggle(row, col, button)

	fields := logrus.Fields{"row": row, "col": col, "square": s}
	if err := g.Board.PlayMove(row, col, s); err != nil {
		g.report("Move rejected", err, fields)
		return err
	}
	g.Log.WithFields(fields).Debug("move played")
	return nil
}

// toggle picks the square a click puts into (row, col). Cells the board
// does not have are not queried; the engine rejects the move.
func (g *Game) toggle(row, col int, button render.MouseButton) engine.Square {
	inside := row < g.Board.Rows() && col < g.Board.Cols()
	if button == render.MouseButtonRight {
		if inside && g.Board.IsMarked(row, col) {
			return engine.Blank
		}
		return engine.Mark
	}
	if inside && g.Board.IsLightbulb(row, col) {
		return engine.Blank
	}
	return engine.Lightbulb
}

// Execute runs a lifecycle command. A board replaced by Restart or Solve is
// closed.
func (g *Game) Execute(c engine.Command) error {
	next, err := engine.Apply(g.Engine, g.Board, c)
	if next != nil && next != g.Board {
		g.closeBoard()
		g.Board = next
	}
	if err != nil {
		g.report(fmt.Sprintf("Cannot %s", c), err, logrus.Fields{"command": c.String()})
		return err
	}
	g.Log.WithField("command", c.String()).Info("command executed")
	return nil
}

// Quit never quits; it only tells the player so.
func (g *Game) Quit() {
	g.HUD.Push(QuitNotice, noticeSeconds)
	g.Log.Info("quit blocked")
}

// Close releases the current board.
func (g *Game) Close() error {
	return g.closeBoard()
}

func (g *Game) closeBoard() error {
	c, ok := g.Board.(io.Closer)
	if !ok {
		return nil
	}
	if err := c.Close(); err != nil {
		g.Log.WithError(err).Warn("failed to close board")
		return err
	}
	return nil
}

// report logs err and shows notice to the player.
func (g *Game) report(notice string, err error, fields logrus.Fields) {
	g.Log.WithFields(fields).WithError(err).Warn(notice)
	g.HUD.Push(notice, noticeSeconds)
}
