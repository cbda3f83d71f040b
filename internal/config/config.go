// Package config provides YAML-based configuration loading for DexOS.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Config is the complete DexOS configuration.
type Config struct {
	Boot     BootConfig     `yaml:"boot"`
	Clock    ClockConfig    `yaml:"clock"`
	Snake    SnakeConfig    `yaml:"snake"`
	Browser  BrowserConfig  `yaml:"browser"`
	Shutdown ShutdownConfig `yaml:"shutdown"`
}

// BootConfig defines the boot text and typing speed.
type BootConfig struct {
	Lines        []string `yaml:"lines"`
	CharDelayMS  int      `yaml:"char_delay_ms"`
	LinePauseMS  int      `yaml:"line_pause_ms"`
	FinalPauseMS int      `yaml:"final_pause_ms"`
}

// CharDelay returns the delay between two typed runes.
func (b BootConfig) CharDelay() time.Duration { return ms(b.CharDelayMS) }

// LinePause returns the pause after each completed line.
func (b BootConfig) LinePause() time.Duration { return ms(b.LinePauseMS) }

// FinalPause returns the pause before the desktop appears.
func (b BootConfig) FinalPause() time.Duration { return ms(b.FinalPauseMS) }

// ClockConfig defines the taskbar clock.
type ClockConfig struct {
	Format string `yaml:"format"` // Go time layout
}

// SnakeConfig defines the snake board and timing.
type SnakeConfig struct {
	TickMS        int       `yaml:"tick_ms"`
	SurfaceWidth  int       `yaml:"surface_width"`  // Canvas width in terminal columns
	SurfaceHeight int       `yaml:"surface_height"` // Canvas height in terminal rows
	CellWidth     int       `yaml:"cell_width"`
	CellHeight    int       `yaml:"cell_height"`
	ImageCellPX   int       `yaml:"image_cell_px"` // Cell size of PNG screenshots
	Start         CellPoint `yaml:"start"`
}

// CellPoint is a grid coordinate.
type CellPoint struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// TickInterval returns the time between two snake ticks.
func (s SnakeConfig) TickInterval() time.Duration { return ms(s.TickMS) }

// BrowserConfig defines the page viewer.
type BrowserConfig struct {
	TimeoutMS    int    `yaml:"timeout_ms"`
	MaxBodyBytes int64  `yaml:"max_body_bytes"`
	UserAgent    string `yaml:"user_agent"`
	HistorySize  int    `yaml:"history_size"`
}

// Timeout returns the page load timeout.
func (b BrowserConfig) Timeout() time.Duration { return ms(b.TimeoutMS) }

// ShutdownConfig defines the shutdown screen.
type ShutdownConfig struct {
	DelayMS int    `yaml:"delay_ms"`
	Message string `yaml:"message"`
}

// Delay returns how long the shutdown screen shows before the message.
func (s ShutdownConfig) Delay() time.Duration { return ms(s.DelayMS) }

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

// Validate reports every setting that would leave DexOS unusable.
func (c Config) Validate() error {
	var errs []error

	if c.Boot.CharDelayMS < 0 || c.Boot.LinePauseMS < 0 || c.Boot.FinalPauseMS < 0 {
		errs = append(errs, errors.New("boot delays must not be negative"))
	}
	if c.Clock.Format == "" {
		errs = append(errs, errors.New("clock.format is empty"))
	}
	if c.Snake.TickMS <= 0 {
		errs = append(errs, fmt.Errorf("snake.tick_ms must be positive, got %d", c.Snake.TickMS))
	}
	if c.Snake.CellWidth <= 0 || c.Snake.CellHeight <= 0 {
		errs = append(errs, fmt.Errorf("snake cell size must be positive, got %dx%d", c.Snake.CellWidth, c.Snake.CellHeight))
	} else if c.Snake.SurfaceWidth < c.Snake.CellWidth || c.Snake.SurfaceHeight < c.Snake.CellHeight {
		errs = append(errs, fmt.Errorf("snake surface %dx%d is smaller than one cell", c.Snake.SurfaceWidth, c.Snake.SurfaceHeight))
	}
	if c.Snake.ImageCellPX <= 0 {
		errs = append(errs, fmt.Errorf("snake.image_cell_px must be positive, got %d", c.Snake.ImageCellPX))
	}
	if c.Browser.TimeoutMS <= 0 {
		errs = append(errs, fmt.Errorf("browser.timeout_ms must be positive, got %d", c.Browser.TimeoutMS))
	}
	if c.Browser.MaxBodyBytes <= 0 {
		errs = append(errs, fmt.Errorf("browser.max_body_bytes must be positive, got %d", c.Browser.MaxBodyBytes))
	}
	if c.Shutdown.DelayMS < 0 {
		errs = append(errs, errors.New("shutdown.delay_ms must not be negative"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}
