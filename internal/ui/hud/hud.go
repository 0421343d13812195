// Package hud shows short-lived notifications and a sticky banner over the
// board.
package hud

import (
	"image/color"

	"chosenoffset.com/akari/internal/render"
)

// Message represents an on-screen message that fades over time.
type Message struct {
	Text     string
	TimeLeft float64 // Seconds remaining
	MaxTime  float64 // Initial duration
}

// Alpha is the message opacity, fading linearly to zero.
func (m Message) Alpha() float64 {
	if m.MaxTime <= 0 {
		return 0
	}
	a := m.TimeLeft / m.MaxTime
	if a > 1 {
		return 1
	}
	return a
}

const (
	padding   = 8
	textSize  = 18
	bannerTop = 0.4 // banner position as a fraction of the height
)

// HUD manages the notifications drawn over a width x height area.
type HUD struct {
	renderer render.Renderer
	width    int
	height   int

	messages []Message
	banner   string

	PanelColor color.NRGBA
	TextColor  color.NRGBA
}

// New creates a HUD covering width x height pixels.
func New(r render.Renderer, width, height int) *HUD {
	return &HUD{
		renderer:   r,
		width:      width,
		height:     height,
		PanelColor: color.NRGBA{20, 20, 30, 200},
		TextColor:  color.NRGBA{255, 255, 255, 255},
	}
}

// Push queues a notification shown for the given number of seconds.
func (h *HUD) Push(text string, seconds float64) {
	h.messages = append(h.messages, Message{
		Text:     text,
		TimeLeft: seconds,
		MaxTime:  seconds,
	})
}

// Update ages the notifications by dt seconds and drops expired ones.
func (h *HUD) Update(dt float64) {
	var active []Message
	for _, msg := range h.messages {
		msg.TimeLeft -= dt
		if msg.TimeLeft > 0 {
			active = append(active, msg)
		}
	}
	h.messages = active
}

// Messages returns the live notifications, oldest first.
func (h *HUD) Messages() []Message {
	return h.messages
}

// Current returns the newest live notification.
func (h *HUD) Current() (Message, bool) {
	if len(h.messages) == 0 {
		return Message{}, false
	}
	return h.messages[len(h.messages)-1], true
}

// SetBanner shows text until it is replaced. An empty string hides it.
func (h *HUD) SetBanner(text string) {
	h.banner = text
}

func (h *HUD) Banner() string {
	return h.banner
}

// Draw paints the banner and the newest notification.
func (h *HUD) Draw(dst render.Image) {
	if h.banner != "" {
		h.drawPanel(dst, h.banner, float32(float64(h.height)*bannerTop), 1)
	}
	if msg, ok := h.Current(); ok {
		h.drawPanel(dst, msg.Text, padding, msg.Alpha())
	}
}

// drawPanel draws text centered in a strip starting at y.
func (h *HUD) drawPanel(dst render.Image, text string, y float32, alpha float64) {
	style := render.TextStyle{Size: textSize, Weight: render.Bold}
	tw, th := h.renderer.MeasureText(text, style)
	panelH := float32(th) + 2*padding

	h.renderer.FillRect(dst, padding, y, float32(h.width)-2*padding, panelH, fade(h.PanelColor, alpha))
	tx := (float64(h.width) - tw) / 2
	ty := float64(y) + padding
	h.renderer.DrawText(dst, text, tx, ty, style, fade(h.TextColor, alpha))
}

func fade(c color.NRGBA, alpha float64) color.NRGBA {
	c.A = uint8(float64(c.A) * alpha)
	return c
}
