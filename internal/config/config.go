// Package config loads the window, grid, engine and theme settings from
// $XDG_CONFIG_HOME/akari/config.json, falling back to built-in defaults.
package config

import (
	"encoding/json"
	"fmt"
	"image/color"
	"io/fs"
	"os"

	"github.com/adrg/xdg"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/sirupsen/logrus"
)

var (
	cfgFile = "akari/config.json"
)

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("config error: %s", e.err)
}

type WindowConfig struct {
	Title         string `json:"title"`
	BoardSize     int    `json:"board_size"` // pixel width and height of the board surface
	ToolbarHeight int    `json:"toolbar_height"`
}

type GridConfig struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

// EngineConfig selects the puzzle engine binaries and the puzzle to load.
type EngineConfig struct {
	TextCommand  []string `json:"text_command"`
	SolveCommand []string `json:"solve_command"`
	Puzzle       string   `json:"puzzle"`
	PuzzleDir    string   `json:"puzzle_dir"`
}

// ThemeColors are "#rrggbb" hex strings.
type ThemeColors struct {
	Background string `json:"background"`
	Black      string `json:"black"`
	Number     string `json:"number"`
	Blank      string `json:"blank"`
	Lighted    string `json:"lighted"`
	Lightbulb  string `json:"lightbulb"`
	Outline    string `json:"outline"`
	Error      string `json:"error"`
	Mark       string `json:"mark"`
	GridLine   string `json:"grid_line"`
	Toolbar    string `json:"toolbar"`
	Button     string `json:"button"`
	ButtonText string `json:"button_text"`
}

type Theme struct {
	Colors     ThemeColors `json:"colors"`
	ErrorAlpha float64     `json:"error_alpha"`
	LineWidth  float64     `json:"line_width"`
}

type Config struct {
	Window   WindowConfig `json:"window"`
	Grid     GridConfig   `json:"grid"`
	Engine   EngineConfig `json:"engine"`
	Theme    Theme        `json:"theme"`
	LogLevel string       `json:"log_level"`
}

// InitConfig returns the defaults overlaid with the user's config file, if
// one exists.
func InitConfig() (*Config, error) {
	absPath, err := xdg.SearchConfigFile(cfgFile)
	if err != nil {
		config := Default()
		return &config, config.Validate()
	}
	return Load(absPath)
}

// Load reads the config file at path on top of the defaults.
func Load(path string) (*Config, error) {
	config := Default()
	if err := readCfgFile(path, &config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	if c.Grid.Rows <= 0 || c.Grid.Cols <= 0 {
		return &InvalidConfig{fmt.Sprintf("grid must be at least 1x1, got %dx%d", c.Grid.Rows, c.Grid.Cols)}
	}
	if c.Window.BoardSize < c.Grid.Rows || c.Window.BoardSize < c.Grid.Cols {
		return &InvalidConfig{fmt.Sprintf("board size %d too small for a %dx%d grid", c.Window.BoardSize, c.Grid.Rows, c.Grid.Cols)}
	}
	if c.Window.ToolbarHeight < 0 {
		return &InvalidConfig{"toolbar height must not be negative"}
	}
	if len(c.Engine.TextCommand) == 0 || len(c.Engine.SolveCommand) == 0 {
		return &InvalidConfig{"engine text and solve commands are required"}
	}
	if c.Theme.ErrorAlpha < 0 || c.Theme.ErrorAlpha > 1 {
		return &InvalidConfig{fmt.Sprintf("error alpha %g outside [0,1]", c.Theme.ErrorAlpha)}
	}
	if _, err := c.Theme.Palette(); err != nil {
		return err
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return &InvalidConfig{err.Error()}
	}
	return nil
}

// Save writes the config to the user's config directory.
func (c *Config) Save() error {
	absPath, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to locate config file: %w", err)
	}
	return saveCfgFile(absPath, c, 0664)
}

// Palette holds the theme colors decoded for drawing.
type Palette struct {
	Background color.Color
	Black      color.Color
	Number     color.Color
	Blank      color.Color
	Lighted    color.Color
	Lightbulb  color.Color
	Outline    color.Color
	Error      color.Color // already carries ErrorAlpha
	Mark       color.Color
	GridLine   color.Color
	Toolbar    color.Color
	Button     color.Color
	ButtonText color.Color
	LineWidth  float32
}

// Palette parses the theme's hex colors.
func (t Theme) Palette() (Palette, error) {
	c := t.Colors
	p := Palette{LineWidth: float32(t.LineWidth)}
	for _, f := range []struct {
		name string
		hex  string
		dst  *color.Color
	}{
		{"background", c.Background, &p.Background},
		{"black", c.Black, &p.Black},
		{"number", c.Number, &p.Number},
		{"blank", c.Blank, &p.Blank},
		{"lighted", c.Lighted, &p.Lighted},
		{"lightbulb", c.Lightbulb, &p.Lightbulb},
		{"outline", c.Outline, &p.Outline},
		{"error", c.Error, &p.Error},
		{"mark", c.Mark, &p.Mark},
		{"grid_line", c.GridLine, &p.GridLine},
		{"toolbar", c.Toolbar, &p.Toolbar},
		{"button", c.Button, &p.Button},
		{"button_text", c.ButtonText, &p.ButtonText},
	} {
		col, err := colorful.Hex(f.hex)
		if err != nil {
			return Palette{}, &InvalidConfig{fmt.Sprintf("theme color %s: %v", f.name, err)}
		}
		*f.dst = col
	}
	p.Error = withAlpha(p.Error, t.ErrorAlpha)
	return p, nil
}

// withAlpha returns clr at the given opacity, premultiplied as image/color
// expects.
func withAlpha(clr color.Color, alpha float64) color.Color {
	r, g, b, _ := clr.RGBA()
	a := alpha * 0xffff
	return color.RGBA64{
		R: uint16(float64(r) * alpha),
		G: uint16(float64(g) * alpha),
		B: uint16(float64(b) * alpha),
		A: uint16(a),
	}
}

func saveCfgFile(filePath string, a interface{}, perm fs.FileMode) error {
	jsonData, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(filePath, jsonData, perm); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func readCfgFile(filePath string, a interface{}) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	if err := json.Unmarshal(data, a); err != nil {
		return &InvalidConfig{fmt.Sprintf("%s: %v", filePath, err)}
	}
	return nil
}
