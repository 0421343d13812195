// Package textgame implements engine.Engine on top of the puzzle engine's
// text front end. Each board is one game_text process driven over
// stdin/stdout; solving goes through the game_solve tool.
package textgame

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"chosenoffset.com/akari/internal/engine"
	"chosenoffset.com/akari/internal/puzzles"
)

var (
	// ErrFinished is returned for commands sent after the puzzle was solved;
	// the engine exits once the board is complete.
	ErrFinished = errors.New("puzzle is finished")
	// ErrEngineExited is returned when the engine process went away
	// mid-response.
	ErrEngineExited = errors.New("engine exited unexpectedly")
)

// IllegalMoveError reports a move the engine refused.
type IllegalMoveError struct {
	Row, Col int
	Square   engine.Square
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("illegal move: %s at (%d,%d)", e.Square, e.Row, e.Col)
}

// Config selects the engine binaries.
type Config struct {
	// TextCommand starts the text front end. The puzzle file, when set, is
	// appended as the last argument. The engine block-buffers stdout on a
	// pipe, so the command usually goes through "stdbuf -oL".
	TextCommand []string
	// SolveCommand runs the solver; "-s <in> <out>" is appended.
	SolveCommand []string
	// Puzzle is an optional puzzle file. Empty means the engine default.
	Puzzle string
	// WorkDir holds the files exchanged with the solver. Empty means a
	// fresh directory under os.TempDir.
	WorkDir string
}

// DefaultConfig returns commands that find the engine binaries on PATH.
func DefaultConfig() Config {
	return Config{
		TextCommand:  []string{"stdbuf", "-oL", "game_text"},
		SolveCommand: []string{"game_solve"},
	}
}

// Engine starts boards as engine processes.
type Engine struct {
	cfg Config
	log logrus.FieldLogger
}

// New returns an engine using cfg.
func New(cfg Config, log logrus.FieldLogger) (*Engine, error) {
	if len(cfg.TextCommand) == 0 {
		return nil, errors.New("no text engine command configured")
	}
	if len(cfg.SolveCommand) == 0 {
		return nil, errors.New("no solver command configured")
	}
	return &Engine{cfg: cfg, log: log}, nil
}

// NewDefault starts a fresh engine process on the configured puzzle.
func (e *Engine) NewDefault() (engine.Board, error) {
	return e.start(e.cfg.Puzzle)
}

func (e *Engine) start(puzzle string) (*Board, error) {
	args := append([]string(nil), e.cfg.TextCommand[1:]...)
	if puzzle != "" {
		args = append(args, puzzle)
	}
	// The engine's built-in puzzle does not wrap.
	wrapping := false
	if puzzle != "" {
		h, err := puzzles.ReadHeader(puzzle)
		if err != nil {
			// game_text reports unreadable files itself
			e.log.WithError(err).Debug("puzzle header unreadable")
		} else {
			wrapping = h.Wrapping
		}
	}
	cmd := exec.Command(e.cfg.TextCommand[0], args...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to get stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to get stdout pipe: %w", err)
	}
	stderr := &bytes.Buffer{}
	cmd.Stderr = stderr

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start engine: %w", err)
	}
	e.log.WithFields(logrus.Fields{"pid": cmd.Process.Pid, "puzzle": puzzle}).Info("engine started")

	b := &Board{
		eng:      e,
		cmd:      cmd,
		stdin:    stdin,
		sess:     newSession(stdin, stdout, e.log),
		wrapping: wrapping,
	}
	resp, err := b.sess.read()
	if err != nil {
		b.Close()
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("failed to read initial board: %w: %s", err, msg)
		}
		return nil, fmt.Errorf("failed to read initial board: %w", err)
	}
	if err := b.apply(resp); err != nil {
		b.Close()
		return nil, err
	}
	return b, nil
}

// Board is one running engine process and the last board it printed.
type Board struct {
	eng   *Engine
	cmd   *exec.Cmd
	stdin io.WriteCloser
	sess  *session

	snap     *Snapshot
	wrapping bool
	finished bool
}

var _ engine.Board = (*Board)(nil)

func (b *Board) apply(resp *response) error {
	snap, err := parseSnapshot(resp.lines)
	if err != nil {
		return err
	}
	b.snap = snap
	if resp.finished {
		b.finished = true
		b.wait()
	}
	return nil
}

func (b *Board) run(cmd string) (*response, error) {
	if b.finished {
		return nil, ErrFinished
	}
	resp, err := b.sess.send(cmd)
	if err != nil {
		return nil, err
	}
	if err := b.apply(resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (b *Board) Rows() int                     { return b.snap.Rows() }
func (b *Board) Cols() int                     { return b.snap.Cols() }
func (b *Board) IsBlank(row, col int) bool     { return b.snap.IsBlank(row, col) }
func (b *Board) IsBlack(row, col int) bool     { return b.snap.IsBlack(row, col) }
func (b *Board) IsLighted(row, col int) bool   { return b.snap.IsLighted(row, col) }
func (b *Board) IsLightbulb(row, col int) bool { return b.snap.IsLightbulb(row, col) }
func (b *Board) IsMarked(row, col int) bool    { return b.snap.IsMarked(row, col) }
func (b *Board) HasError(row, col int) bool    { return b.snap.HasError(row, col) }
func (b *Board) BlackNumber(row, col int) int  { return b.snap.BlackNumber(row, col) }
func (b *Board) IsOver() bool                  { return b.snap.IsOver() }

// PlayMove sends a move. A move the engine refuses yields *IllegalMoveError.
func (b *Board) PlayMove(row, col int, s engine.Square) error {
	var letter byte
	switch s {
	case engine.Lightbulb:
		letter = 'l'
	case engine.Mark:
		letter = 'm'
	case engine.Blank:
		letter = 'b'
	default:
		return fmt.Errorf("unknown square %d", int(s))
	}
	// The engine reads unsigned coordinates.
	if row < 0 || col < 0 {
		return &IllegalMoveError{Row: row, Col: col, Square: s}
	}
	resp, err := b.run(fmt.Sprintf("%c %d %d", letter, row, col))
	if err != nil {
		return err
	}
	if resp.illegal != nil {
		return &IllegalMoveError{Row: row, Col: col, Square: s}
	}
	return nil
}

// Undo reverts the last move.
func (b *Board) Undo() error {
	_, err := b.run("z")
	return err
}

// Redo replays the last undone move.
func (b *Board) Redo() error {
	_, err := b.run("y")
	return err
}

// Solve hands the current board to the solver and replaces this board's
// engine process with one loaded on the solution.
func (b *Board) Solve() error {
	if b.finished {
		return ErrFinished
	}
	dir := b.eng.cfg.WorkDir
	cleanup := func() {}
	if dir == "" {
		tmp, err := os.MkdirTemp("", "akari-solve-*")
		if err != nil {
			return fmt.Errorf("failed to create solver directory: %w", err)
		}
		dir = tmp
		cleanup = func() { os.RemoveAll(tmp) }
	}
	defer cleanup()

	in := filepath.Join(dir, "puzzle.txt")
	out := filepath.Join(dir, "solution.txt")
	if err := os.WriteFile(in, []byte(b.snap.fileFormat(b.wrapping)), 0644); err != nil {
		return fmt.Errorf("failed to write puzzle: %w", err)
	}

	sc := b.eng.cfg.SolveCommand
	args := append(append([]string(nil), sc[1:]...), "-s", in, out)
	b.eng.log.WithField("solver", sc[0]).Info("solving")
	if output, err := exec.Command(sc[0], args...).CombinedOutput(); err != nil {
		return fmt.Errorf("solver failed: %w: %s", err, output)
	}

	solved, err := b.eng.start(out)
	if err != nil {
		return fmt.Errorf("failed to load solution: %w", err)
	}
	b.Close()
	*b = *solved
	return nil
}

// Close stops the engine process.
func (b *Board) Close() error {
	if b.stdin != nil && !b.finished {
		fmt.Fprintf(b.stdin, "q\n")
	}
	if b.stdin != nil {
		b.stdin.Close()
	}
	b.finished = true
	return b.wait()
}

func (b *Board) wait() error {
	if b.cmd == nil || b.cmd.Process == nil || b.cmd.ProcessState != nil {
		return nil
	}
	err := b.cmd.Wait()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// stdbuf reports a broken pipe as a non-zero exit
		return nil
	}
	return err
}
