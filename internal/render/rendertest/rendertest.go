// Package rendertest provides a recording drawing surface and a scripted
// input manager for tests. Every draw operation is logged as a Call so tests
// can compare draw sequences instead of pixels.
package rendertest

import (
	"fmt"
	"image"
	"image/color"

	"chosenoffset.com/akari/internal/render"
)

// Op names a recorded draw operation.
type Op string

const (
	OpFill         Op = "fill"
	OpClear        Op = "clear"
	OpFillRect     Op = "fill_rect"
	OpStrokeLine   Op = "stroke_line"
	OpFillCircle   Op = "fill_circle"
	OpStrokeCircle Op = "stroke_circle"
	OpText         Op = "text"
)

// Call is one recorded draw operation. Geometry that an operation does not
// use is left zero.
type Call struct {
	Op     Op
	X, Y   float32
	W, H   float32 // rect size, or end point for lines
	Radius float32
	Width  float32 // stroke width
	Text   string
	Color  color.RGBA
}

func (c Call) String() string {
	return fmt.Sprintf("%s(%g,%g %gx%g r=%g w=%g %q %v)", c.Op, c.X, c.Y, c.W, c.H, c.Radius, c.Width, c.Text, c.Color)
}

// Image is a render.Image that records what is drawn onto it.
type Image struct {
	width, height int
	Calls         []Call
}

// NewImage returns an empty recording surface of the given size.
func NewImage(width, height int) *Image {
	return &Image{width: width, height: height}
}

// Bounds returns the surface rectangle.
func (i *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, i.width, i.height)
}

// Size returns the surface size.
func (i *Image) Size() (width, height int) {
	return i.width, i.height
}

// Fill records a full-surface fill.
func (i *Image) Fill(clr color.Color) {
	i.record(Call{Op: OpFill, W: float32(i.width), H: float32(i.height), Color: rgba(clr)})
}

// Clear records a clear.
func (i *Image) Clear() {
	i.record(Call{Op: OpClear, W: float32(i.width), H: float32(i.height)})
}

// Reset forgets every recorded call.
func (i *Image) Reset() {
	i.Calls = nil
}

// CallsOf returns the recorded calls with the given op, in order.
func (i *Image) CallsOf(op Op) []Call {
	var out []Call
	for _, c := range i.Calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// CallsIn returns the recorded calls whose origin lies inside r, in order.
func (i *Image) CallsIn(r image.Rectangle) []Call {
	var out []Call
	for _, c := range i.Calls {
		if c.Op == OpFill || c.Op == OpClear {
			continue
		}
		if image.Pt(int(c.X), int(c.Y)).In(r) {
			out = append(out, c)
		}
	}
	return out
}

func (i *Image) record(c Call) {
	i.Calls = append(i.Calls, c)
}

// Renderer is a render.Renderer that records onto *Image surfaces.
// Text is measured as 0.6em per rune by 1em high.
type Renderer struct{}

// NewRenderer returns a recording renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// FillRect records a filled rectangle.
func (r *Renderer) FillRect(dst render.Image, x, y, width, height float32, clr color.Color) {
	target(dst).record(Call{Op: OpFillRect, X: x, Y: y, W: width, H: height, Color: rgba(clr)})
}

// StrokeLine records a line; W/H carry the end point.
func (r *Renderer) StrokeLine(dst render.Image, x0, y0, x1, y1, strokeWidth float32, clr color.Color) {
	target(dst).record(Call{Op: OpStrokeLine, X: x0, Y: y0, W: x1, H: y1, Width: strokeWidth, Color: rgba(clr)})
}

// FillCircle records a filled circle.
func (r *Renderer) FillCircle(dst render.Image, x, y, radius float32, clr color.Color) {
	target(dst).record(Call{Op: OpFillCircle, X: x, Y: y, Radius: radius, Color: rgba(clr)})
}

// StrokeCircle records a circle outline.
func (r *Renderer) StrokeCircle(dst render.Image, x, y, radius float32, strokeWidth float32, clr color.Color) {
	target(dst).record(Call{Op: OpStrokeCircle, X: x, Y: y, Radius: radius, Width: strokeWidth, Color: rgba(clr)})
}

// DrawText records a text draw.
func (r *Renderer) DrawText(dst render.Image, str string, x, y float64, style render.TextStyle, clr color.Color) {
	target(dst).record(Call{Op: OpText, X: float32(x), Y: float32(y), H: float32(style.Size), Text: str, Color: rgba(clr)})
}

// MeasureText returns a deterministic size for str.
func (r *Renderer) MeasureText(str string, style render.TextStyle) (width, height float64) {
	return float64(len([]rune(str))) * style.Size * 0.6, style.Size
}

func target(img render.Image) *Image {
	rec, ok := img.(*Image)
	if !ok {
		panic(fmt.Sprintf("rendertest: cannot draw onto %T", img))
	}
	return rec
}

func rgba(clr color.Color) color.RGBA {
	if clr == nil {
		return color.RGBA{}
	}
	return color.RGBAModel.Convert(clr).(color.RGBA)
}

// Input is a scripted render.InputManager. Set the fields before calling the
// code under test; Step clears the one-frame "just pressed" state.
type Input struct {
	CursorX, CursorY int
	Buttons          map[render.MouseButton]bool
	Keys             map[render.Key]bool
}

// NewInput returns an input manager with nothing pressed.
func NewInput() *Input {
	return &Input{
		Buttons: make(map[render.MouseButton]bool),
		Keys:    make(map[render.Key]bool),
	}
}

// Click moves the cursor to (x, y) and presses button for one frame.
func (in *Input) Click(x, y int, button render.MouseButton) {
	in.CursorX, in.CursorY = x, y
	in.Buttons[button] = true
}

// Press presses key for one frame.
func (in *Input) Press(key render.Key) {
	in.Keys[key] = true
}

// Step ends the frame.
func (in *Input) Step() {
	for k := range in.Buttons {
		delete(in.Buttons, k)
	}
	for k := range in.Keys {
		delete(in.Keys, k)
	}
}

// IsKeyJustPressed implements render.InputManager.
func (in *Input) IsKeyJustPressed(key render.Key) bool {
	return in.Keys[key]
}

// GetCursorPosition implements render.InputManager.
func (in *Input) GetCursorPosition() (x, y int) {
	return in.CursorX, in.CursorY
}

// IsMouseButtonJustPressed implements render.InputManager.
func (in *Input) IsMouseButtonJustPressed(button render.MouseButton) bool {
	return in.Buttons[button]
}
