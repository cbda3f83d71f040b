package config

import (
	_ "embed"
)

//go:embed defaults/dexos.yaml
var defaultYAML []byte

// Default returns the built-in configuration. It mirrors defaults/dexos.yaml
// and is used when the embedded file cannot be parsed.
func Default() Config {
	return Config{
		Boot: BootConfig{
			Lines: []string{
				"DexOS BIOS v1.0",
				"Initializing hardware...",
				"Loading kernel modules...",
				"Checking memory... OK",
				"Detecting devices... OK",
				"Boot device: TERMINAL",
				"Starting DexOS kernel...",
				"Launching DexOS desktop...",
			},
			CharDelayMS:  40,
			LinePauseMS:  200,
			FinalPauseMS: 500,
		},
		Clock: ClockConfig{
			Format: "15:04:05",
		},
		Snake: SnakeConfig{
			TickMS:        120,
			SurfaceWidth:  40,
			SurfaceHeight: 20,
			CellWidth:     2,
			CellHeight:    1,
			ImageCellPX:   15,
			Start:         CellPoint{X: 10, Y: 10},
		},
		Browser: BrowserConfig{
			TimeoutMS:    10000,
			MaxBodyBytes: 1 << 20,
			UserAgent:    "DexOS/1.0",
			HistorySize:  20,
		},
		Shutdown: ShutdownConfig{
			DelayMS: 2000,
			Message: "DexOS has shut down. Please restart your terminal manually.",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
