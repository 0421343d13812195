// Package painter draws a puzzle board onto a render.Image. Every Paint
// starts from a cleared surface and queries every cell again; nothing about
// the board is kept between frames.
package painter

import (
	"strconv"

	"chosenoffset.com/akari/internal/config"
	"chosenoffset.com/akari/internal/engine"
	"chosenoffset.com/akari/internal/grid"
	"chosenoffset.com/akari/internal/render"
)

// numberScale is the hint glyph height relative to the cell.
const numberScale = 0.75

// Painter paints boards laid out by Layout.
type Painter struct {
	Renderer render.Renderer
	Layout   grid.Layout
	Palette  config.Palette
}

// New returns a painter.
func New(r render.Renderer, layout grid.Layout, palette config.Palette) *Painter {
	return &Painter{Renderer: r, Layout: layout, Palette: palette}
}

// Paint clears dst and draws every cell of b followed by the guide lines.
func (p *Painter) Paint(dst render.Image, b engine.Board) {
	dst.Fill(p.Palette.Background)
	for row := 0; row < p.Layout.Rows; row++ {
		for col := 0; col < p.Layout.Cols; col++ {
			p.paintCell(dst, b, row, col)
		}
	}
	p.paintGridLines(dst)
}

// paintCell layers, in order: black fill and hint, blank fill, light,
// bulb, error tint, mark. The layers are not exclusive.
func (p *Painter) paintCell(dst render.Image, b engine.Board, row, col int) {
	blank := b.IsBlank(row, col)
	black := b.IsBlack(row, col)
	lighted := b.IsLighted(row, col)
	bulb := b.IsLightbulb(row, col)
	marked := b.IsMarked(row, col)
	hasError := b.HasError(row, col)

	r := p.Layout.CellRect(row, col)
	x, y := float32(r.Min.X), float32(r.Min.Y)
	w, h := float32(r.Dx()), float32(r.Dy())

	if black {
		p.Renderer.FillRect(dst, x, y, w, h, p.Palette.Black)
		if n := b.BlackNumber(row, col); n >= 0 && n <= 4 {
			p.paintNumber(dst, n, x, y, w, h)
		}
	}
	if blank {
		p.Renderer.FillRect(dst, x, y, w, h, p.Palette.Blank)
	}
	if lighted {
		p.Renderer.FillRect(dst, x, y, w, h, p.Palette.Lighted)
	}
	if bulb {
		radius := min(w, h) / 3
		cx, cy := x+w/2, y+h/2
		p.Renderer.FillCircle(dst, cx, cy, radius, p.Palette.Lightbulb)
		p.Renderer.StrokeCircle(dst, cx, cy, radius, p.Palette.LineWidth, p.Palette.Outline)
	}
	if hasError {
		p.Renderer.FillRect(dst, x, y, w, h, p.Palette.Error)
	}
	if marked {
		p.Renderer.FillRect(dst, x+w/2, y+h/2, w/4, h/2, p.Palette.Mark)
	}
}

func (p *Painter) paintNumber(dst render.Image, n int, x, y, w, h float32) {
	style := render.TextStyle{Size: float64(h) * numberScale, Weight: render.Bold}
	label := strconv.Itoa(n)
	tw, th := p.Renderer.MeasureText(label, style)
	tx := float64(x) + (float64(w)-tw)/2
	ty := float64(y) + (float64(h)-th)/2
	p.Renderer.DrawText(dst, label, tx, ty, style, p.Palette.Number)
}

// paintGridLines strokes a line at the top and left edge of every row and
// column. The closing lines along the bottom and right edge are left to
// the surface border.
func (p *Painter) paintGridLines(dst render.Image) {
	bounds := p.Layout.Bounds()
	width, height := float32(bounds.Dx()), float32(bounds.Dy())
	cw, ch := float32(p.Layout.CellWidth()), float32(p.Layout.CellHeight())
	for i := 0; i < p.Layout.Rows; i++ {
		y := float32(i) * ch
		p.Renderer.StrokeLine(dst, 0, y, width, y, p.Palette.LineWidth, p.Palette.GridLine)
	}
	for i := 0; i < p.Layout.Cols; i++ {
		x := float32(i) * cw
		p.Renderer.StrokeLine(dst, x, 0, x, height, p.Palette.LineWidth, p.Palette.GridLine)
	}
}
