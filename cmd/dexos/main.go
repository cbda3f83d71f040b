// dexos is a simulated desktop that runs in the terminal: a boot screen,
// a window manager with a web page viewer and a snake game, and a shutdown
// screen.
//
// Usage:
//
//	dexos run                - Boot the desktop in this terminal
//	dexos serve              - Serve a desktop per SSH session
//	dexos apps               - List the desktop applications
//	dexos history            - Show pages loaded in the browser
//	dexos snapshot           - Run the snake headless and save a PNG
//
// Global flags:
//
//	--config <path>    - Configuration file (default search: ~/.dexos, ./configs)
//	--seed <value>     - Set RNG seed for reproducible food placement
//	--db <path>        - Set history database path (default: ~/.dexos/history.db)
//	--log-file <path>  - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/dexos/internal/config"
)

var (
	// Global flags
	flagConfig  string
	flagSeed    int64
	flagDBPath  string
	flagLogFile string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dexos",
	Short: "DexOS - a desktop in your terminal",
	Long: `DexOS is a simulated desktop operating system that runs in a terminal.

It boots with a typewriter BIOS screen, then shows a desktop with a taskbar
clock and three applications: a text web browser, a snake game and an
About window.

Available commands:
  run      - Boot the desktop locally
  serve    - Start SSH server, one desktop per session
  apps     - List the desktop applications
  history  - Show or clear the browser history
  snapshot - Run the snake headless and save a PNG frame

Examples:
  dexos run
  dexos run --skip-boot --open snake
  dexos serve --ssh :2222
  dexos history --limit 5`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to configuration YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.dexos/history.db", "Path to history database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(appsCmd)
	rootCmd.AddCommand(historyCmd)
}

// loadConfig loads the configuration selected by --config.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// newLogger creates the logger for --log-file. Without a file, logs go to
// fallback; a nil fallback discards them.
func newLogger(fallback io.Writer) (*log.Logger, func(), error) {
	out := fallback
	closeFn := func() {}

	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out = f
		closeFn = func() { f.Close() }
	}
	if out == nil {
		out = io.Discard
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "dexos",
		Level:           log.DebugLevel,
	})
	return logger, closeFn, nil
}
