package snake

import (
	"sync"
	"time"
)

// Timer is a handle to an armed repeating timer.
type Timer interface {
	// Stop cancels the timer. It is safe to call more than once and from
	// inside the timer's own callback.
	Stop()
}

// Scheduler arms repeating timers. Every must not call fire synchronously;
// the engine holds its lock while arming.
type Scheduler interface {
	Every(interval time.Duration, fire func()) Timer
}

// TickerScheduler runs each timer on its own goroutine backed by a
// time.Ticker. Callbacks of one timer never overlap.
type TickerScheduler struct{}

// Every starts a goroutine that calls fire once per interval until stopped.
func (TickerScheduler) Every(interval time.Duration, fire func()) Timer {
	t := &tickerTimer{done: make(chan struct{})}
	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-t.done:
				return
			case <-ticker.C:
				fire()
			}
		}
	}()

	return t
}

type tickerTimer struct {
	once sync.Once
	done chan struct{}
}

func (t *tickerTimer) Stop() {
	t.once.Do(func() { close(t.done) })
}
