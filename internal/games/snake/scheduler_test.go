package snake

import (
	"testing"
	"time"
)

func TestTickerSchedulerFiresUntilStopped(t *testing.T) {
	fired := make(chan struct{}, 100)
	timer := TickerScheduler{}.Every(2*time.Millisecond, func() {
		fired <- struct{}{}
	})

	for i := 0; i < 3; i++ {
		select {
		case <-fired:
		case <-time.After(time.Second):
			t.Fatalf("timer fired only %d times", i)
		}
	}

	timer.Stop()
	timer.Stop() // Second stop is a no-op

	// Allow a firing that was already in flight, then expect silence.
	time.Sleep(20 * time.Millisecond)
	for len(fired) > 0 {
		<-fired
	}
	time.Sleep(20 * time.Millisecond)
	if n := len(fired); n != 0 {
		t.Errorf("timer fired %d times after Stop", n)
	}
}

func TestEngineWithTickerScheduler(t *testing.T) {
	frames := make(chan Frame, 16)
	opts := DefaultOptions()
	opts.Interval = 2 * time.Millisecond

	e := NewEngine(opts, TickerScheduler{}, FrameSinkFunc(func(f Frame) {
		select {
		case frames <- f:
		default:
		}
	}))
	e.Reset()
	defer e.Stop()

	select {
	case f := <-frames:
		if f.Tick == 0 || len(f.Snake) == 0 {
			t.Errorf("unexpected frame %+v", f)
		}
	case <-time.After(time.Second):
		t.Fatal("no frame emitted")
	}
}
