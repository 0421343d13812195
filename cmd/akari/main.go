// akari shows a light-up puzzle in a window and plays it through the puzzle
// engine's text front end.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"chosenoffset.com/akari/internal/config"
	"chosenoffset.com/akari/internal/engine/textgame"
	"chosenoffset.com/akari/internal/game"
	"chosenoffset.com/akari/internal/grid"
	"chosenoffset.com/akari/internal/puzzles"
	ebitenrender "chosenoffset.com/akari/internal/render/ebiten"
)

// Version is set at build time via ldflags
var Version = "dev"

// Command-line flags
var (
	flagConfig  = flag.String("config", "", "Config file (default: $XDG_CONFIG_HOME/akari/config.json)")
	flagSize    = flag.Int("size", 0, "Board size in pixels")
	flagPuzzle  = flag.String("puzzle", "", "Puzzle name from the puzzle directory, or a puzzle file path")
	flagPuzzles = flag.String("puzzles", "", "Puzzle directory")
	flagList    = flag.Bool("list", false, "List the available puzzles and exit")
	flagEngine  = flag.String("engine", "", "Text engine command, space separated")
	flagSolver  = flag.String("solver", "", "Solver command, space separated")
	flagSave    = flag.Bool("save-config", false, "Write the effective config to the user config file and exit")
	flagDebug   = flag.Bool("debug", false, "Log engine traffic")
	flagVersion = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *flagVersion {
		fmt.Printf("akari %s\n", Version)
		return
	}

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	level, _ := logrus.ParseLevel(cfg.LogLevel)
	if *flagDebug {
		level = logrus.DebugLevel
	}
	log.SetLevel(level)

	if *flagSave {
		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}
		log.Info("Config saved")
		return
	}

	if *flagList {
		if err := listPuzzles(cfg.Engine.PuzzleDir); err != nil {
			log.Fatal(err)
		}
		return
	}

	if cfg.Engine.Puzzle != "" {
		entry, err := puzzles.Resolve(cfg.Engine.PuzzleDir, cfg.Engine.Puzzle)
		if err != nil {
			log.Fatalf("Failed to find puzzle: %v", err)
		}
		if entry.Header.Rows != cfg.Grid.Rows || entry.Header.Cols != cfg.Grid.Cols {
			log.Fatalf("Puzzle %s is %dx%d, the board is configured for %dx%d",
				entry.Name, entry.Header.Rows, entry.Header.Cols, cfg.Grid.Rows, cfg.Grid.Cols)
		}
		cfg.Engine.Puzzle = entry.Path
		log.WithField("puzzle", entry.Path).Info("Loading puzzle")
	}

	palette, err := cfg.Theme.Palette()
	if err != nil {
		log.Fatal(err)
	}
	layout, err := grid.New(cfg.Window.BoardSize, cfg.Window.BoardSize, cfg.Grid.Rows, cfg.Grid.Cols)
	if err != nil {
		log.Fatal(err)
	}

	eng, err := textgame.New(textgame.Config{
		TextCommand:  cfg.Engine.TextCommand,
		SolveCommand: cfg.Engine.SolveCommand,
		Puzzle:       cfg.Engine.Puzzle,
	}, log.WithField("component", "engine"))
	if err != nil {
		log.Fatal(err)
	}

	// Initialize the renderer backend (ebiten)
	renderer, err := ebitenrender.NewRenderer()
	if err != nil {
		log.Fatalf("Failed to load fonts: %v", err)
	}
	inputMgr := ebitenrender.NewInputManager()
	engine := ebitenrender.NewEngine()

	g, err := game.New(game.Config{
		Engine:        eng,
		Renderer:      renderer,
		Input:         inputMgr,
		Layout:        layout,
		Palette:       palette,
		ToolbarHeight: cfg.Window.ToolbarHeight,
		Log:           log.WithField("component", "game"),
	})
	if err != nil {
		log.Fatalf("Failed to start game: %v", err)
	}
	defer g.Close()

	// Set up the window
	engine.SetWindowSize(g.ScreenWidth, g.ScreenHeight)
	engine.SetWindowTitle(cfg.Window.Title)
	engine.SetWindowResizable(true)

	log.Info("Starting game...")
	if err := engine.RunGame(g); err != nil {
		log.Error(err)
	}
}

// loadConfig reads the config file and applies the command-line overrides.
func loadConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error
	if *flagConfig != "" {
		cfg, err = config.Load(*flagConfig)
	} else {
		cfg, err = config.InitConfig()
	}
	if err != nil {
		return nil, err
	}

	if *flagSize > 0 {
		cfg.Window.BoardSize = *flagSize
	}
	if *flagPuzzle != "" {
		cfg.Engine.Puzzle = *flagPuzzle
	}
	if *flagPuzzles != "" {
		cfg.Engine.PuzzleDir = *flagPuzzles
	}
	if *flagEngine != "" {
		cfg.Engine.TextCommand = strings.Fields(*flagEngine)
	}
	if *flagSolver != "" {
		cfg.Engine.SolveCommand = strings.Fields(*flagSolver)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func listPuzzles(dir string) error {
	entries, err := puzzles.ScanDirectory(dir)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintf(os.Stderr, "No puzzles found in %s\n", dir)
		return nil
	}
	for _, e := range entries {
		wrap := ""
		if e.Header.Wrapping {
			wrap = " (wrapping)"
		}
		fmt.Printf("%-20s %dx%d%s  %s\n", e.Name, e.Header.Rows, e.Header.Cols, wrap, e.Path)
	}
	return nil
}
