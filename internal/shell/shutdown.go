package shell

import "time"

// ShutdownPhase is the state of the shutdown flow.
type ShutdownPhase int

const (
	ShutdownIdle       ShutdownPhase = iota // Desktop running
	ShutdownInProgress                      // Shutdown screen shown
	ShutdownComplete                        // Final message shown
)

// DefaultShutdownMessage is shown when the configuration has none.
const DefaultShutdownMessage = "DexOS has shut down. Please restart your terminal manually."

// Shutdown models the two-stage shutdown screen.
type Shutdown struct {
	delay   time.Duration
	message string
	phase   ShutdownPhase
}

// NewShutdown creates an idle shutdown flow.
func NewShutdown(delay time.Duration, message string) *Shutdown {
	if message == "" {
		message = DefaultShutdownMessage
	}
	return &Shutdown{delay: max(delay, 0), message: message}
}

// Begin starts the shutdown and returns how long to wait before calling
// Complete. It reports false if shutdown had already begun.
func (s *Shutdown) Begin() (time.Duration, bool) {
	if s.phase != ShutdownIdle {
		return 0, false
	}
	s.phase = ShutdownInProgress
	return s.delay, true
}

// Complete shows the final message.
func (s *Shutdown) Complete() {
	if s.phase == ShutdownInProgress {
		s.phase = ShutdownComplete
	}
}

// Phase returns the current phase.
func (s *Shutdown) Phase() ShutdownPhase {
	return s.phase
}

// Message returns the final message.
func (s *Shutdown) Message() string {
	return s.message
}
