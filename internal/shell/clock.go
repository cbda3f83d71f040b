package shell

import "time"

// Clock renders the taskbar time.
type Clock struct {
	Format string
	Now    func() time.Time
}

// NewClock creates a clock using the wall clock and the given layout.
func NewClock(format string) Clock {
	if format == "" {
		format = time.TimeOnly
	}
	return Clock{Format: format, Now: time.Now}
}

// Text returns the current time formatted for display.
func (c Clock) Text() string {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	return now().Format(c.Format)
}
