// Package tui provides the Bubble Tea integration for DexOS.
// It drives the shell and the snake engine from the terminal UI loop and
// serves the desktop over SSH.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// ClockMsg refreshes the taskbar clock.
type ClockMsg time.Time

// BootStepMsg advances the boot animation by one step.
type BootStepMsg struct{}

// ShutdownDoneMsg ends the shutdown delay.
type ShutdownDoneMsg struct{}

// clockCmd schedules the next clock refresh at the start of the next second.
func clockCmd() tea.Cmd {
	return tea.Every(time.Second, func(t time.Time) tea.Msg {
		return ClockMsg(t)
	})
}

// bootCmd schedules the next boot step.
func bootCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return BootStepMsg{}
	})
}

// shutdownCmd waits out the shutdown screen.
func shutdownCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return ShutdownDoneMsg{}
	})
}
