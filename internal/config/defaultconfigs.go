package config

// DefaultTheme mirrors the web front end's palette.
var DefaultTheme = Theme{
	Colors: ThemeColors{
		Background: "#ffffff",
		Black:      "#000000",
		Number:     "#ffffff",
		Blank:      "#d3d3d3",
		Lighted:    "#ffff00",
		Lightbulb:  "#ffffff",
		Outline:    "#000000",
		Error:      "#ff0000",
		Mark:       "#000000",
		GridLine:   "#808080",
		Toolbar:    "#2b2b2b",
		Button:     "#4a4a4a",
		ButtonText: "#f0f0f0",
	},
	ErrorAlpha: 0.8,
	LineWidth:  1,
}

// Default returns a fresh copy of the built-in configuration.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:         "Akari",
			BoardSize:     399,
			ToolbarHeight: 48,
		},
		Grid: GridConfig{Rows: 7, Cols: 7},
		Engine: EngineConfig{
			TextCommand:  []string{"stdbuf", "-oL", "game_text"},
			SolveCommand: []string{"game_solve"},
			PuzzleDir:    "puzzles",
		},
		Theme:    DefaultTheme,
		LogLevel: "info",
	}
}
