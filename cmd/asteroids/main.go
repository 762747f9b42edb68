// asteroids is a terminal asteroids game with a classic and a modern rule set.
//
// Usage:
//
//	asteroids play           - Play in the terminal
//	asteroids modes          - List available modes
//	asteroids scores [mode]  - Show the best runs
//	asteroids serve          - Start SSH server for remote play
//	asteroids sim            - Run the simulation headless and print state hashes
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.asteroids/runs.db)
//	--config <path>      - Load a custom asteroids.yaml
//	--mode <name>        - Mode selected in the menu (classic, modern)
//	--preset <name>      - Difficulty preset: easy, normal, hard, fixed
//	--log-level <level>  - debug, info, warn, error
//
// Every path flag also reads an ASTEROIDS_* variable, and a .env file in the
// working directory is loaded first.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/asteroids-destroyer/internal/config"
	"github.com/vovakirdan/asteroids-destroyer/internal/core"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagMode     string
	flagPreset   string
	flagLogLevel string
)

// Environment variables consulted when the matching flag is not given.
var envFlags = map[string]string{
	"db":        "ASTEROIDS_DB",
	"config":    "ASTEROIDS_CONFIG",
	"mode":      "ASTEROIDS_MODE",
	"preset":    "ASTEROIDS_PRESET",
	"log-level": "ASTEROIDS_LOG_LEVEL",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "asteroids",
	Short: "Asteroids - Shoot rocks and dodge black holes in your terminal",
	Long: `Asteroids is a terminal take on the arcade classic.

Classic mode steers by rotating and thrusting. Modern mode steers in eight
directions, aims separately and adds black holes that pull everything in.

Available commands:
  play     - Play in the terminal
  modes    - Show all available modes
  scores   - View the best runs
  serve    - Start SSH server for remote play
  sim      - Run the simulation headless

Examples:
  asteroids play
  asteroids play --mode modern --preset hard
  asteroids scores classic
  asteroids serve --ssh :2222
  asteroids sim --ticks 3600 --seed 7`,
	SilenceUsage:      true,
	PersistentPreRunE: loadEnvironment,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.asteroids/runs.db", "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom asteroids.yaml")
	rootCmd.PersistentFlags().StringVar(&flagMode, "mode", "", "Mode to start in: classic, modern")
	rootCmd.PersistentFlags().StringVar(&flagPreset, "preset", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(modesCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simCmd)
}

// loadEnvironment reads .env and fills flags the user left unset from
// ASTEROIDS_* variables.
func loadEnvironment(cmd *cobra.Command, _ []string) error {
	// A missing .env is fine
	_ = godotenv.Load()

	for name, env := range envFlags {
		f := cmd.Flags().Lookup(name)
		if f == nil || f.Changed {
			continue
		}
		if v, ok := os.LookupEnv(env); ok && v != "" {
			if err := f.Value.Set(v); err != nil {
				return fmt.Errorf("invalid %s: %w", env, err)
			}
		}
	}
	return nil
}

// newLogger builds the process logger writing to w.
func newLogger(w *os.File, prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", flagLogLevel, err)
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          prefix,
	}), nil
}

// loadGameConfig resolves the simulation config from --config, --preset and --mode.
func loadGameConfig() (config.AsteroidsConfig, error) {
	cfg, err := config.LoadAsteroids(flagConfig)
	if err != nil {
		return cfg, err
	}
	config.ApplyAsteroidsPreset(&cfg, config.DifficultyPreset(flagPreset))
	if flagMode != "" {
		cfg.Mode = flagMode
	}
	return cfg, cfg.Validate()
}

// runtimeConfig returns the runtime settings for a screen of the given size.
func runtimeConfig(width, height int) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}
