// Package grid maps between surface pixels and puzzle cells. The painter and
// the click handler share one Layout so both directions use the same cell
// size.
package grid

import (
	"fmt"
	"image"
)

// Layout describes a Rows x Cols grid painted on a Width x Height surface.
// The cell size is derived from the surface, never configured on its own.
type Layout struct {
	Width, Height int
	Rows, Cols    int
}

// New returns a validated layout.
func New(width, height, rows, cols int) (Layout, error) {
	l := Layout{Width: width, Height: height, Rows: rows, Cols: cols}
	if err := l.Validate(); err != nil {
		return Layout{}, err
	}
	return l, nil
}

// Validate reports whether the layout can hold at least one pixel per cell.
func (l Layout) Validate() error {
	if l.Rows <= 0 || l.Cols <= 0 {
		return fmt.Errorf("grid must have at least one row and column, got %dx%d", l.Rows, l.Cols)
	}
	if l.Width < l.Cols || l.Height < l.Rows {
		return fmt.Errorf("surface %dx%d too small for a %dx%d grid", l.Width, l.Height, l.Rows, l.Cols)
	}
	return nil
}

// CellWidth is the pixel width of one column.
func (l Layout) CellWidth() int {
	return l.Width / l.Cols
}

// CellHeight is the pixel height of one row.
func (l Layout) CellHeight() int {
	return l.Height / l.Rows
}

// CellAt converts a surface point to a cell. x selects the column, y the
// row. The result is not clamped: points right of or below the painted grid
// yield indices >= Cols or >= Rows.
func (l Layout) CellAt(x, y int) (row, col int) {
	return y / l.CellHeight(), x / l.CellWidth()
}

// CellRect is the pixel rectangle of a cell.
func (l Layout) CellRect(row, col int) image.Rectangle {
	cw, ch := l.CellWidth(), l.CellHeight()
	return image.Rect(col*cw, row*ch, (col+1)*cw, (row+1)*ch)
}

// Bounds is the rectangle covered by painted cells. It can be smaller than
// the surface when the surface size is not a multiple of the grid.
func (l Layout) Bounds() image.Rectangle {
	return image.Rect(0, 0, l.Cols*l.CellWidth(), l.Rows*l.CellHeight())
}

// Contains reports whether (x, y) falls on a cell.
func (l Layout) Contains(x, y int) bool {
	return image.Pt(x, y).In(l.Bounds())
}
