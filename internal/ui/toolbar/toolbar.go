// Package toolbar draws the strip of command buttons under the board and
// maps clicks on it to actions.
package toolbar

import (
	"chosenoffset.com/akari/internal/config"
	"chosenoffset.com/akari/internal/engine"
	"chosenoffset.com/akari/internal/render"
)

// Action is what a button does: either a lifecycle command or quit.
type Action struct {
	Command engine.Command
	Quit    bool
}

func (a Action) String() string {
	if a.Quit {
		return "quit"
	}
	return a.Command.String()
}

// Button is one toolbar entry.
type Button struct {
	Label  string
	Action Action
	bounds rect
}

const (
	gap       = 6
	labelSize = 16
)

// Toolbar is a horizontal row of buttons occupying (x, y, width, height).
type Toolbar struct {
	renderer render.Renderer
	palette  config.Palette
	x, y     int
	width    int
	height   int
	buttons  []Button
}

// New lays out one button per lifecycle command followed by Quit.
func New(r render.Renderer, palette config.Palette, x, y, width, height int) *Toolbar {
	t := &Toolbar{renderer: r, palette: palette, x: x, y: y, width: width, height: height}
	for _, c := range engine.Commands {
		t.buttons = append(t.buttons, Button{Label: label(c.String()), Action: Action{Command: c}})
	}
	t.buttons = append(t.buttons, Button{Label: "Quit", Action: Action{Quit: true}})
	t.layout()
	return t
}

func label(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}

func (t *Toolbar) layout() {
	n := len(t.buttons)
	w := (t.width - gap*(n+1)) / n
	for i := range t.buttons {
		t.buttons[i].bounds = rect{
			x: t.x + gap + i*(w+gap),
			y: t.y + gap,
			w: w,
			h: t.height - 2*gap,
		}
	}
}

// Buttons returns the buttons in display order.
func (t *Toolbar) Buttons() []Button {
	return t.buttons
}

// Center returns the middle of the button with the given label, for
// scripting clicks.
func (t *Toolbar) Center(label string) (x, y int, ok bool) {
	for _, b := range t.buttons {
		if b.Label == label {
			return b.bounds.x + b.bounds.w/2, b.bounds.y + b.bounds.h/2, true
		}
	}
	return 0, 0, false
}

// HitTest returns the action of the button under (x, y).
func (t *Toolbar) HitTest(x, y int) (Action, bool) {
	for _, b := range t.buttons {
		if pointInRect(x, y, b.bounds) {
			return b.Action, true
		}
	}
	return Action{}, false
}

// Contains reports whether (x, y) is inside the toolbar strip.
func (t *Toolbar) Contains(x, y int) bool {
	return x >= t.x && x < t.x+t.width && y >= t.y && y < t.y+t.height
}

// Draw paints the strip and its buttons. The button under the cursor is
// drawn highlighted.
func (t *Toolbar) Draw(dst render.Image, cursorX, cursorY int) {
	if t.height <= 0 {
		return
	}
	t.renderer.FillRect(dst, float32(t.x), float32(t.y), float32(t.width), float32(t.height), t.palette.Toolbar)

	style := render.TextStyle{Size: labelSize, Weight: render.Regular}
	for _, b := range t.buttons {
		bg := t.palette.Button
		if pointInRect(cursorX, cursorY, b.bounds) {
			bg = t.palette.GridLine
		}
		r := b.bounds
		t.renderer.FillRect(dst, float32(r.x), float32(r.y), float32(r.w), float32(r.h), bg)
		t.renderer.StrokeLine(dst, float32(r.x), float32(r.y+r.h), float32(r.x+r.w), float32(r.y+r.h), t.palette.LineWidth, t.palette.Outline)

		tw, th := t.renderer.MeasureText(b.Label, style)
		tx := float64(r.x) + (float64(r.w)-tw)/2
		ty := float64(r.y) + (float64(r.h)-th)/2
		t.renderer.DrawText(dst, b.Label, tx, ty, style, t.palette.ButtonText)
	}
}

type rect struct {
	x, y, w, h int
}

func pointInRect(px, py int, r rect) bool {
	return px >= r.x && px < r.x+r.w && py >= r.y && py < r.y+r.h
}
