package game

import (
	"errors"
	"reflect"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"chosenoffset.com/akari/internal/config"
	"chosenoffset.com/akari/internal/engine"
	"chosenoffset.com/akari/internal/engine/enginetest"
	"chosenoffset.com/akari/internal/grid"
	"chosenoffset.com/akari/internal/render"
	"chosenoffset.com/akari/internal/render/rendertest"
)

type fixture struct {
	game   *Game
	engine *enginetest.Engine
	input  *rendertest.Input
	hook   *test.Hook
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWith(t, enginetest.NewEngine())
}

func newFixtureWith(t *testing.T, eng *enginetest.Engine) *fixture {
	t.Helper()
	layout, err := grid.New(399, 399, 7, 7)
	if err != nil {
		t.Fatal(err)
	}
	palette, err := config.DefaultTheme.Palette()
	if err != nil {
		t.Fatal(err)
	}
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	input := rendertest.NewInput()

	g, err := New(Config{
		Engine:        eng,
		Renderer:      rendertest.NewRenderer(),
		Input:         input,
		Layout:        layout,
		Palette:       palette,
		ToolbarHeight: 48,
		Log:           log,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return &fixture{game: g, engine: eng, input: input, hook: hook}
}

// step runs one frame.
func (f *fixture) step(t *testing.T) {
	t.Helper()
	if err := f.game.Update(); err != nil {
		t.Fatalf("Update: %v", err)
	}
	f.input.Step()
}

func (f *fixture) click(t *testing.T, x, y int, button render.MouseButton) {
	t.Helper()
	f.input.Click(x, y, button)
	f.step(t)
}

func (f *fixture) press(t *testing.T, key render.Key) {
	t.Helper()
	f.input.Press(key)
	f.step(t)
}

func (f *fixture) clickButton(t *testing.T, label string) {
	t.Helper()
	x, y, ok := f.game.Toolbar.Center(label)
	if !ok {
		t.Fatalf("no %s button", label)
	}
	f.click(t, x, y, render.MouseButtonLeft)
}

func (f *fixture) draw() *rendertest.Image {
	img := rendertest.NewImage(f.game.ScreenWidth, f.game.ScreenHeight)
	f.game.Draw(img)
	return img
}

func TestNewStartsOnDefaultBoard(t *testing.T) {
	f := newFixture(t)

	if len(f.engine.Boards) != 1 {
		t.Fatalf("%d boards created, want 1", len(f.engine.Boards))
	}
	if f.game.Board != engine.Board(f.engine.Last()) {
		t.Error("game is not holding the new board")
	}
	if w, h := f.game.Layout(1000, 1000); w != 399 || h != 447 {
		t.Errorf("Layout = %dx%d, want 399x447", w, h)
	}
}

func TestNewErrors(t *testing.T) {
	failing := enginetest.NewEngine()
	failing.Fail = errors.New("engine missing")
	layout, _ := grid.New(399, 399, 7, 7)
	log, _ := test.NewNullLogger()

	_, err := New(Config{Engine: failing, Renderer: rendertest.NewRenderer(), Input: rendertest.NewInput(), Layout: layout, Log: log})
	if !errors.Is(err, failing.Fail) {
		t.Errorf("New with failing engine = %v, want wrapped engine error", err)
	}

	small := enginetest.NewEngine()
	small.Rows = []string{"   ", "   ", "   "}
	small.Solution = nil
	_, err = New(Config{Engine: small, Renderer: rendertest.NewRenderer(), Input: rendertest.NewInput(), Layout: layout, Log: log})
	if err == nil {
		t.Fatal("New accepted a 3x3 board on a 7x7 layout")
	}
	if !small.Last().Closed {
		t.Error("mismatched board was not closed")
	}

	_, err = New(Config{Engine: enginetest.NewEngine(), Layout: grid.Layout{Width: 399, Height: 399}})
	if err == nil {
		t.Error("New accepted an empty grid")
	}
}

func TestClickPlaysLightbulb(t *testing.T) {
	f := newFixture(t)

	f.click(t, 120, 180, render.MouseButtonLeft)

	want := []enginetest.Move{{Row: 3, Col: 2, Square: engine.Lightbulb}}
	if got := f.engine.Last().Moves; !reflect.DeepEqual(got, want) {
		t.Fatalf("moves = %v, want %v", got, want)
	}
	if !f.game.Board.IsLightbulb(3, 2) {
		t.Error("(3,2) not a lightbulb after the click")
	}

	img := f.draw()
	if n := len(img.CallsIn(f.game.Grid.CellRect(3, 2))); n == 0 {
		t.Error("redraw painted nothing in the clicked cell")
	}
	circles := img.CallsOf(rendertest.OpFillCircle)
	if len(circles) != 1 || circles[0].X != 142.5 || circles[0].Y != 199.5 {
		t.Errorf("bulbs drawn = %v, want one centered in (3,2)", circles)
	}
}

func TestClickTogglesLightbulbOff(t *testing.T) {
	f := newFixture(t)

	f.click(t, 120, 180, render.MouseButtonLeft)
	f.click(t, 130, 200, render.MouseButtonLeft)

	moves := f.engine.Last().Moves
	if len(moves) != 2 || moves[1] != (enginetest.Move{Row: 3, Col: 2, Square: engine.Blank}) {
		t.Fatalf("moves = %v, want a blank move second", moves)
	}
	if f.game.Board.IsLightbulb(3, 2) {
		t.Error("bulb still present after the second click")
	}
}

func TestRightClickTogglesMark(t *testing.T) {
	f := newFixture(t)

	f.click(t, 10, 10, render.MouseButtonRight)
	f.click(t, 10, 10, render.MouseButtonRight)

	want := []enginetest.Move{
		{Row: 0, Col: 0, Square: engine.Mark},
		{Row: 0, Col: 0, Square: engine.Blank},
	}
	if got := f.engine.Last().Moves; !reflect.DeepEqual(got, want) {
		t.Errorf("moves = %v, want %v", got, want)
	}
}

func TestClickMapsEveryCell(t *testing.T) {
	f := newFixture(t)
	b := f.engine.Last()

	for row := 0; row < 7; row++ {
		for col := 0; col < 7; col++ {
			r := f.game.Grid.CellRect(row, col)
			f.click(t, r.Max.X-1, r.Min.Y, render.MouseButtonRight)
			last := b.Moves[len(b.Moves)-1]
			if last.Row != row || last.Col != col {
				t.Errorf("click in cell (%d,%d) played (%d,%d)", row, col, last.Row, last.Col)
			}
		}
	}
}

func TestClickOutsideCellsIsLeftToTheEngine(t *testing.T) {
	f := newFixture(t)

	// 399 = 7*57, so there is no strip; use a wider surface to get one.
	layout, _ := grid.New(402, 399, 7, 7)
	f.game.Grid = layout

	f.click(t, 400, 10, render.MouseButtonLeft)

	moves := f.engine.Last().Moves
	if len(moves) != 1 || moves[0].Col != 7 {
		t.Fatalf("moves = %v, want the unchecked move at column 7", moves)
	}
	entry := f.hook.LastEntry()
	if entry == nil || entry.Level != logrus.WarnLevel {
		t.Fatalf("last log entry = %v, want a warning", entry)
	}
	if msg, ok := f.game.HUD.Current(); !ok || msg.Text != "Move rejected" {
		t.Errorf("HUD = %q, want a rejection notice", msg.Text)
	}
}

func TestClickBetweenToolbarButtonsDoesNothing(t *testing.T) {
	f := newFixture(t)

	f.click(t, 2, 420, render.MouseButtonLeft)
	f.click(t, 200, 399, render.MouseButtonRight)

	if b := f.engine.Last(); len(b.Moves) != 0 || len(b.Calls) != 0 {
		t.Errorf("toolbar gap reached the engine: moves %v, calls %v", b.Moves, b.Calls)
	}
	if len(f.engine.Boards) != 1 {
		t.Errorf("%d boards, want 1", len(f.engine.Boards))
	}
}

func TestRestartResetsBoard(t *testing.T) {
	f := newFixture(t)
	f.click(t, 120, 180, render.MouseButtonLeft)
	f.click(t, 10, 70, render.MouseButtonRight)
	first := f.engine.Last()

	f.clickButton(t, "Restart")

	if len(f.engine.Boards) != 2 {
		t.Fatalf("%d boards, want a fresh one", len(f.engine.Boards))
	}
	if !first.Closed {
		t.Error("replaced board was not closed")
	}
	fresh := f.game.Board
	for row := 0; row < 7; row++ {
		for col := 0; col < 7; col++ {
			if fresh.IsLightbulb(row, col) || fresh.IsMarked(row, col) || fresh.HasError(row, col) {
				t.Errorf("cell (%d,%d) not reset", row, col)
			}
		}
	}
	img := f.draw()
	if n := len(img.CallsOf(rendertest.OpFillCircle)); n != 0 {
		t.Errorf("%d bulbs drawn after restart", n)
	}
}

func TestSolveShowsSolution(t *testing.T) {
	f := newFixture(t)
	f.click(t, 120, 180, render.MouseButtonLeft)

	f.clickButton(t, "Solve")

	solved := f.engine.Last()
	if len(f.engine.Boards) != 2 || !reflect.DeepEqual(solved.Calls, []string{"solve"}) {
		t.Fatalf("solve ran on %v, want a fresh board", solved.Calls)
	}
	img := f.draw()
	if n := len(img.CallsOf(rendertest.OpFillCircle)); n != 10 {
		t.Errorf("%d bulbs drawn after solve, want 10", n)
	}
	if got := f.game.HUD.Banner(); got != WinBanner {
		t.Errorf("banner = %q, want %q", got, WinBanner)
	}

	f.press(t, render.KeyR)
	if got := f.game.HUD.Banner(); got != "" {
		t.Errorf("banner after restart = %q, want none", got)
	}
}

func TestUndoRedoKeepBoard(t *testing.T) {
	f := newFixture(t)
	b := f.engine.Last()

	f.clickButton(t, "Undo")
	f.clickButton(t, "Redo")
	f.press(t, render.KeyZ)
	f.press(t, render.KeyY)

	if len(f.engine.Boards) != 1 {
		t.Errorf("%d boards, undo/redo must not create boards", len(f.engine.Boards))
	}
	if want := []string{"undo", "redo", "undo", "redo"}; !reflect.DeepEqual(b.Calls, want) {
		t.Errorf("calls = %v, want %v", b.Calls, want)
	}
}

func TestKeyboardCommands(t *testing.T) {
	tests := []struct {
		key    render.Key
		boards int
		calls  []string
	}{
		{render.KeyR, 2, nil},
		{render.KeyS, 2, []string{"solve"}},
		{render.KeyZ, 1, []string{"undo"}},
		{render.KeyY, 1, []string{"redo"}},
	}
	for _, tt := range tests {
		f := newFixture(t)
		f.press(t, tt.key)
		if len(f.engine.Boards) != tt.boards {
			t.Errorf("key %d: %d boards, want %d", tt.key, len(f.engine.Boards), tt.boards)
		}
		if got := f.engine.Last().Calls; !reflect.DeepEqual(got, tt.calls) {
			t.Errorf("key %d: calls = %v, want %v", tt.key, got, tt.calls)
		}
	}
}

func TestQuitIsBlocked(t *testing.T) {
	for _, trigger := range []string{"button", "q", "escape"} {
		f := newFixture(t)
		switch trigger {
		case "button":
			f.clickButton(t, "Quit")
		case "q":
			f.press(t, render.KeyQ)
		case "escape":
			f.press(t, render.KeyEscape)
		}

		msg, ok := f.game.HUD.Current()
		if !ok || msg.Text != QuitNotice {
			t.Errorf("%s: HUD = %q, want %q", trigger, msg.Text, QuitNotice)
		}
		if len(f.engine.Boards) != 1 || len(f.engine.Last().Calls) != 0 {
			t.Errorf("%s: quit touched the engine", trigger)
		}
		texts := f.draw().CallsOf(rendertest.OpText)
		found := false
		for _, c := range texts {
			found = found || c.Text == QuitNotice
		}
		if !found {
			t.Errorf("%s: notice not drawn", trigger)
		}
	}
}

func TestEngineErrorsAreReported(t *testing.T) {
	f := newFixture(t)
	f.engine.Last().Fail = errors.New("engine crashed")

	f.click(t, 120, 180, render.MouseButtonLeft)
	f.press(t, render.KeyZ)

	var warnings int
	for _, e := range f.hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			warnings++
		}
	}
	if warnings != 2 {
		t.Errorf("%d warnings logged, want 2", warnings)
	}
	if msg, _ := f.game.HUD.Current(); msg.Text != "Cannot undo" {
		t.Errorf("HUD = %q, want %q", msg.Text, "Cannot undo")
	}

	f.engine.Fail = errors.New("no engine")
	if err := f.game.Execute(engine.Restart); err == nil {
		t.Fatal("Restart succeeded with a failing engine")
	}
	if f.game.Board != engine.Board(f.engine.Last()) {
		t.Error("failed restart dropped the current board")
	}
}

func TestDrawIsIdempotent(t *testing.T) {
	f := newFixture(t)
	f.click(t, 120, 180, render.MouseButtonLeft)

	first := f.draw()
	second := f.draw()
	if !reflect.DeepEqual(first.Calls, second.Calls) {
		t.Error("two draws without a move differ")
	}
}

func TestDrawLayers(t *testing.T) {
	f := newFixture(t)
	f.game.Quit()

	img := f.draw()
	toolbarAt, noticeAt := -1, -1
	for i, c := range img.Calls {
		if c.Op == rendertest.OpText && c.Text == "Restart" && toolbarAt < 0 {
			toolbarAt = i
		}
		if c.Op == rendertest.OpText && c.Text == QuitNotice {
			noticeAt = i
		}
	}
	if img.Calls[0].Op != rendertest.OpFill {
		t.Error("frame does not start with a clear")
	}
	if toolbarAt < 0 || noticeAt < toolbarAt {
		t.Errorf("toolbar at %d, notice at %d: notice must be drawn last", toolbarAt, noticeAt)
	}
}

func TestCloseClosesBoard(t *testing.T) {
	f := newFixture(t)
	if err := f.game.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !f.engine.Last().Closed {
		t.Error("board not closed")
	}
}
