// Package enginetest provides an in-memory engine for tests. It stores
// whatever cell flags a test scripts and records every command; it knows
// nothing about the puzzle rules.
package enginetest

import (
	"fmt"

	"chosenoffset.com/akari/internal/engine"
)

// Cell holds the flags reported for one square.
type Cell struct {
	Black     bool
	Number    int // -1 when unnumbered
	Lighted   bool
	Lightbulb bool
	Marked    bool
	Error     bool
}

// Move is a recorded PlayMove call.
type Move struct {
	Row, Col int
	Square   engine.Square
}

// Board is a scripted engine.Board.
type Board struct {
	Cells    [][]Cell
	Solution [][]Cell // installed by Solve when non-nil
	Over     bool

	Moves  []Move
	Calls  []string // "move", "solve", "undo", "redo" in call order
	Closed bool

	// Fail, when set, is returned by every command.
	Fail error
}

// NewBoard builds a board from rows of the engine's print format:
// ' ' or 'b' blank, '.' lighted blank, '0'-'4' numbered wall, 'w' wall,
// '*' lit bulb, '-' mark.
func NewBoard(rows ...string) *Board {
	return &Board{Cells: ParseCells(rows...)}
}

// ParseCells converts print-format rows to cells.
func ParseCells(rows ...string) [][]Cell {
	cells := make([][]Cell, len(rows))
	for i, r := range rows {
		cells[i] = make([]Cell, len(r))
		for j, ch := range r {
			c := Cell{Number: -1}
			switch {
			case ch == '.':
				c.Lighted = true
			case ch >= '0' && ch <= '4':
				c.Black = true
				c.Number = int(ch - '0')
			case ch == 'w':
				c.Black = true
			case ch == '*':
				c.Lightbulb = true
				c.Lighted = true
			case ch == '-':
				c.Marked = true
			}
			cells[i][j] = c
		}
	}
	return cells
}

// Default is the engine's default 7x7 puzzle.
var Default = []string{
	"  1    ",
	"  2    ",
	"     w2",
	"       ",
	"1w     ",
	"    2  ",
	"    w  ",
}

// DefaultSolution is Default with the solution bulbs placed.
var DefaultSolution = []string{
	"*.1*...",
	".*2...*",
	"..*..w2",
	"......*",
	"1w..*..",
	"*...2*.",
	".*..w..",
}

func (b *Board) cell(row, col int) Cell {
	return b.Cells[row][col]
}

func (b *Board) Rows() int { return len(b.Cells) }

func (b *Board) Cols() int {
	if len(b.Cells) == 0 {
		return 0
	}
	return len(b.Cells[0])
}

func (b *Board) IsBlank(row, col int) bool {
	c := b.cell(row, col)
	return !c.Black && !c.Lightbulb && !c.Marked
}

func (b *Board) IsBlack(row, col int) bool     { return b.cell(row, col).Black }
func (b *Board) IsLighted(row, col int) bool   { return b.cell(row, col).Lighted }
func (b *Board) IsLightbulb(row, col int) bool { return b.cell(row, col).Lightbulb }
func (b *Board) IsMarked(row, col int) bool    { return b.cell(row, col).Marked }
func (b *Board) HasError(row, col int) bool    { return b.cell(row, col).Error }

func (b *Board) BlackNumber(row, col int) int {
	c := b.cell(row, col)
	if !c.Black {
		return -1
	}
	return c.Number
}

func (b *Board) IsOver() bool { return b.Over }

// PlayMove records the move and stores the requested square content.
func (b *Board) PlayMove(row, col int, s engine.Square) error {
	b.Calls = append(b.Calls, "move")
	b.Moves = append(b.Moves, Move{Row: row, Col: col, Square: s})
	if b.Fail != nil {
		return b.Fail
	}
	if row < 0 || row >= b.Rows() || col < 0 || col >= b.Cols() {
		return fmt.Errorf("move (%d,%d) out of range", row, col)
	}
	c := &b.Cells[row][col]
	c.Lightbulb = s == engine.Lightbulb
	c.Marked = s == engine.Mark
	return nil
}

// Solve installs Solution.
func (b *Board) Solve() error {
	b.Calls = append(b.Calls, "solve")
	if b.Fail != nil {
		return b.Fail
	}
	if b.Solution != nil {
		b.Cells = copyCells(b.Solution)
		b.Over = true
	}
	return nil
}

func (b *Board) Undo() error {
	b.Calls = append(b.Calls, "undo")
	return b.Fail
}

func (b *Board) Redo() error {
	b.Calls = append(b.Calls, "redo")
	return b.Fail
}

// Close marks the board closed.
func (b *Board) Close() error {
	b.Closed = true
	return nil
}

// Engine hands out fresh copies of a scripted puzzle.
type Engine struct {
	Rows     []string
	Solution []string
	Boards   []*Board // every board created, oldest first
	Fail     error
}

// NewEngine returns an engine serving the default puzzle and its solution.
func NewEngine() *Engine {
	return &Engine{Rows: Default, Solution: DefaultSolution}
}

// NewDefault implements engine.Engine.
func (e *Engine) NewDefault() (engine.Board, error) {
	if e.Fail != nil {
		return nil, e.Fail
	}
	b := NewBoard(e.Rows...)
	if e.Solution != nil {
		b.Solution = ParseCells(e.Solution...)
	}
	e.Boards = append(e.Boards, b)
	return b, nil
}

// Last returns the most recently created board.
func (e *Engine) Last() *Board {
	if len(e.Boards) == 0 {
		return nil
	}
	return e.Boards[len(e.Boards)-1]
}

func copyCells(src [][]Cell) [][]Cell {
	out := make([][]Cell, len(src))
	for i := range src {
		out[i] = append([]Cell(nil), src[i]...)
	}
	return out
}
