package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/asteroids-destroyer/internal/games/asteroids"
	"github.com/vovakirdan/asteroids-destroyer/internal/platform/tui"
	"github.com/vovakirdan/asteroids-destroyer/internal/storage"
)

var flagLogFile string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start the game at the mode menu.

Controls (classic):
  Up/W          - Thrust
  Left/Right    - Rotate
  Space         - Fire

Controls (modern):
  Arrows/WASD   - Move
  Z/X           - Aim
  Space         - Fire

Everywhere:
  Enter         - Start / leave the game over screen
  M/Tab         - Change mode (menu)
  P/Esc         - Pause
  Ctrl+S        - Screenshot
  Q/Ctrl+C      - Quit

Difficulty presets:
  easy   - Start at lowest difficulty, more lives
  normal - Start at 30% difficulty
  hard   - Start at 70% difficulty, fewer lives, more rocks
  fixed  - No progression, stays at the config's initial level

Examples:
  asteroids play
  asteroids play --mode modern
  asteroids play --preset easy --fps 30
  asteroids play --config ./my-asteroids.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "~/.asteroids/asteroids.log", "Log file (the terminal belongs to the game)")
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, err := loadGameConfig()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logFile, err := openLogFile(flagLogFile)
	if err != nil {
		return err
	}
	defer logFile.Close()
	logger, err := newLogger(logFile, "asteroids")
	if err != nil {
		return err
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}
	rt := runtimeConfig(width, height)
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}

	machine, err := asteroids.New(cfg, rt, asteroids.WithLogger(logger))
	if err != nil {
		return err
	}

	// Open run storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run database: %v\n", err)
		logger.Warn("playing without run history", "error", err)
		// Continue without storage - game still works
		store = nil
	}

	runErr := tui.Run(machine, store, rt, logger)

	if store != nil {
		store.Close()
	}
	if runErr != nil {
		return fmt.Errorf("running game: %w", runErr)
	}
	return nil
}

// openLogFile opens path for appending, creating its directory.
func openLogFile(path string) (*os.File, error) {
	if path != "" && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot expand home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return f, nil
}
