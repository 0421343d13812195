// Package render abstracts the drawing surface the puzzle is painted on, so
// the board painter and the UI never import a graphics backend directly.
package render

import (
	"image"
	"image/color"
)

// FontWeight selects between the regular and the bold face.
type FontWeight int

const (
	Regular FontWeight = iota
	Bold
)

// TextStyle describes how a string is drawn.
type TextStyle struct {
	Size   float64 // pixel size of the face
	Weight FontWeight
}

// Renderer is the main rendering interface that abstracts the underlying
// graphics engine. This allows swapping rendering backends without changing
// game logic.
type Renderer interface {
	// Shape operations
	FillRect(dst Image, x, y, width, height float32, clr color.Color)
	StrokeLine(dst Image, x0, y0, x1, y1, strokeWidth float32, clr color.Color)
	FillCircle(dst Image, x, y, radius float32, clr color.Color)
	StrokeCircle(dst Image, x, y, radius float32, strokeWidth float32, clr color.Color)

	// Text operations. (x, y) is the top-left corner of the text box.
	DrawText(dst Image, text string, x, y float64, style TextStyle, clr color.Color)
	MeasureText(text string, style TextStyle) (width, height float64)
}

// Image represents a renderable surface that can be drawn to.
type Image interface {
	Bounds() image.Rectangle
	Size() (width, height int)

	// Fill paints the whole surface with clr.
	Fill(clr color.Color)
	// Clear resets the surface to transparent.
	Clear()
}

// InputManager handles input from the user (keyboard, mouse).
type InputManager interface {
	IsKeyJustPressed(key Key) bool
	GetCursorPosition() (x, y int)
	IsMouseButtonJustPressed(button MouseButton) bool
}

// Key represents a keyboard key.
type Key int

// Key constants for the shortcuts the game listens to
const (
	KeyR Key = iota // restart
	KeyZ            // undo
	KeyY            // redo
	KeyS            // solve
	KeyQ            // quit
	KeyEscape
)

// MouseButton represents a mouse button.
type MouseButton int

// Mouse button constants
const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
)

// Game represents the game interface that the engine will call.
type Game interface {
	// Update updates the game logic. It is called every tick (typically 60 times per second).
	Update() error

	// Draw draws the game screen. It is called every frame.
	Draw(screen Image)

	// Layout accepts the outside size (e.g., window size) and returns the logical screen size.
	// The logical screen size is used for rendering and input coordinates.
	Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int)
}

// Engine represents the game engine that manages the game loop and window.
type Engine interface {
	SetWindowSize(width, height int)
	SetWindowTitle(title string)
	SetWindowResizable(resizable bool)

	// RunGame runs the game loop with the provided game.
	// This is a blocking call that runs until the window is closed.
	RunGame(game Game) error
}
