// Package engine defines the boundary to the external puzzle engine. The
// engine owns the rules, the solver and the move history; this module only
// queries cells and issues commands through these interfaces.
package engine

import "fmt"

// Square is the content a move puts into a cell.
type Square int

const (
	Blank Square = iota
	Lightbulb
	Mark
)

func (s Square) String() string {
	switch s {
	case Blank:
		return "blank"
	case Lightbulb:
		return "lightbulb"
	case Mark:
		return "mark"
	default:
		return fmt.Sprintf("Square(%d)", int(s))
	}
}

// Board is a handle on one puzzle owned by the engine. Rows and columns are
// zero based.
type Board interface {
	Rows() int
	Cols() int

	IsBlank(row, col int) bool
	IsBlack(row, col int) bool
	IsLighted(row, col int) bool
	IsLightbulb(row, col int) bool
	IsMarked(row, col int) bool
	HasError(row, col int) bool
	// BlackNumber is the hint of a black wall, 0 to 4, or -1 when the wall
	// carries no number.
	BlackNumber(row, col int) int
	// IsOver reports whether the puzzle is solved.
	IsOver() bool

	PlayMove(row, col int, s Square) error
	Solve() error
	Undo() error
	Redo() error
}

// Engine creates boards.
type Engine interface {
	// NewDefault returns a fresh board of the engine's default puzzle.
	NewDefault() (Board, error)
}

// Command is one of the lifecycle commands.
type Command int

const (
	Restart Command = iota
	Solve
	Undo
	Redo
)

// Commands lists every lifecycle command in toolbar order.
var Commands = []Command{Restart, Undo, Redo, Solve}

func (c Command) String() string {
	switch c {
	case Restart:
		return "restart"
	case Solve:
		return "solve"
	case Undo:
		return "undo"
	case Redo:
		return "redo"
	default:
		return fmt.Sprintf("Command(%d)", int(c))
	}
}

// Apply runs c. Restart and Solve replace the board and return the new one;
// Undo and Redo act on current and return it. current may be nil only for
// Restart and Solve.
func Apply(e Engine, current Board, c Command) (Board, error) {
	switch c {
	case Restart:
		return e.NewDefault()
	case Solve:
		b, err := e.NewDefault()
		if err != nil {
			return nil, err
		}
		if err := b.Solve(); err != nil {
			return b, fmt.Errorf("solve: %w", err)
		}
		return b, nil
	case Undo, Redo:
		if current == nil {
			return nil, fmt.Errorf("%s: no board", c)
		}
		var err error
		if c == Undo {
			err = current.Undo()
		} else {
			err = current.Redo()
		}
		if err != nil {
			return current, fmt.Errorf("%s: %w", c, err)
		}
		return current, nil
	default:
		return current, fmt.Errorf("unknown command %d", int(c))
	}
}
