package engine_test

import (
	"errors"
	"testing"

	"chosenoffset.com/akari/internal/engine"
	"chosenoffset.com/akari/internal/engine/enginetest"
)

func TestApplyRestart(t *testing.T) {
	e := enginetest.NewEngine()
	first, err := e.NewDefault()
	if err != nil {
		t.Fatalf("NewDefault: %v", err)
	}
	b, err := engine.Apply(e, first, engine.Restart)
	if err != nil {
		t.Fatalf("Apply(Restart): %v", err)
	}
	if b == first {
		t.Error("Restart returned the old board")
	}
	if len(e.Boards) != 2 {
		t.Errorf("boards created = %d, want 2", len(e.Boards))
	}
}

func TestApplySolveUsesFreshBoard(t *testing.T) {
	e := enginetest.NewEngine()
	b, err := engine.Apply(e, nil, engine.Solve)
	if err != nil {
		t.Fatalf("Apply(Solve): %v", err)
	}
	fake := e.Last()
	if b != engine.Board(fake) {
		t.Fatal("Solve did not return the new board")
	}
	if len(fake.Calls) != 1 || fake.Calls[0] != "solve" {
		t.Errorf("calls = %v, want [solve]", fake.Calls)
	}
	if !b.IsLightbulb(0, 0) {
		t.Error("solved board has no bulb at (0,0)")
	}
}

func TestApplyUndoRedoKeepBoard(t *testing.T) {
	e := enginetest.NewEngine()
	b, _ := e.NewDefault()
	for _, c := range []engine.Command{engine.Undo, engine.Redo} {
		got, err := engine.Apply(e, b, c)
		if err != nil {
			t.Fatalf("Apply(%s): %v", c, err)
		}
		if got != b {
			t.Errorf("Apply(%s) replaced the board", c)
		}
	}
	fake := b.(*enginetest.Board)
	if len(fake.Calls) != 2 || fake.Calls[0] != "undo" || fake.Calls[1] != "redo" {
		t.Errorf("calls = %v, want [undo redo]", fake.Calls)
	}
	if len(e.Boards) != 1 {
		t.Errorf("boards created = %d, want 1", len(e.Boards))
	}
}

func TestApplyErrors(t *testing.T) {
	e := enginetest.NewEngine()
	if _, err := engine.Apply(e, nil, engine.Undo); err == nil {
		t.Error("Undo without a board: want error")
	}

	boom := errors.New("boom")
	b, _ := e.NewDefault()
	b.(*enginetest.Board).Fail = boom
	if _, err := engine.Apply(e, b, engine.Redo); !errors.Is(err, boom) {
		t.Errorf("Redo error = %v, want %v", err, boom)
	}

	e.Fail = boom
	if _, err := engine.Apply(e, b, engine.Restart); !errors.Is(err, boom) {
		t.Errorf("Restart error = %v, want %v", err, boom)
	}
}

func TestCommandString(t *testing.T) {
	want := map[engine.Command]string{
		engine.Restart: "restart",
		engine.Solve:   "solve",
		engine.Undo:    "undo",
		engine.Redo:    "redo",
	}
	for c, s := range want {
		if c.String() != s {
			t.Errorf("%d.String() = %q, want %q", int(c), c.String(), s)
		}
	}
}
