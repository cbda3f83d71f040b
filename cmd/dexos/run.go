package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/dexos/internal/core"
	"github.com/vovakirdan/dexos/internal/platform/tui"
	"github.com/vovakirdan/dexos/internal/shell"
	"github.com/vovakirdan/dexos/internal/storage"
)

var (
	flagSkipBoot bool
	flagOpenApp  string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Boot the desktop in this terminal",
	Long: `Boot DexOS in the current terminal.

Controls:
  F1/F2/F3     - Open Browser, Snake, About (1/2/3 on an empty desktop)
  Tab          - Focus next window
  Esc          - Close focused window
  Arrows/WASD  - Steer the snake
  Ctrl+S       - Save a snake screenshot (PNG)
  F10          - Shut down
  Ctrl+C       - Quit

Examples:
  dexos run
  dexos run --skip-boot
  dexos run --open browser
  dexos run --seed 42 --open snake`,
	Args: cobra.NoArgs,
	RunE: runDesktop,
}

func init() {
	runCmd.Flags().BoolVar(&flagSkipBoot, "skip-boot", false, "Skip the boot animation")
	runCmd.Flags().StringVar(&flagOpenApp, "open", "", "Open this app when the desktop appears (browser, snake, about)")
}

func runDesktop(_ *cobra.Command, _ []string) error {
	if flagOpenApp != "" {
		if _, ok := shell.LookupApp(shell.AppID(flagOpenApp)); !ok {
			return fmt.Errorf("unknown app %q (run 'dexos apps' to list them)", flagOpenApp)
		}
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// The terminal belongs to Bubble Tea, logs only go to --log-file.
	logger, closeLog, err := newLogger(nil)
	if err != nil {
		return err
	}
	defer closeLog()

	screen := core.DefaultConfig()
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		screen.ScreenW = w
		screen.ScreenH = h
	}
	screen.Seed = flagSeed

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("history disabled", "error", err)
	} else {
		defer store.Close()
	}

	return tui.Run(tui.DesktopOptions{
		Config:   cfg,
		Store:    store,
		Logger:   logger,
		Seed:     screen.Seed,
		SkipBoot: flagSkipBoot,
		Open:     shell.AppID(flagOpenApp),
		Width:    screen.ScreenW,
		Height:   screen.ScreenH,
	})
}
