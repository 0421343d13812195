package game

import (
	"chosenoffset.com/akari/internal/render"
)

// Draw repaints the whole window: board, toolbar, then notifications.
func (g *Game) Draw(screen render.Image) {
	g.Painter.Paint(screen, g.Board)

	x, y := g.InputMgr.GetCursorPosition()
	g.Toolbar.Draw(screen, x, y)

	g.HUD.Draw(screen)
}

// Layout returns the fixed logical screen size; the window scales it.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.ScreenWidth, g.ScreenHeight
}
