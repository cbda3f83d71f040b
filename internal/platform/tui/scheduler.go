package tui

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/dexos/internal/games/snake"
)

// timerMsg is delivered when a scheduled timer is due.
type timerMsg struct {
	id uint64
}

// teaScheduler implements snake.Scheduler on top of tea.Tick. Arming a timer
// queues a command that the owning model returns from Update via Flush.
// Messages for stopped timers are dropped, so only the latest timer chain
// keeps ticking.
type teaScheduler struct {
	mu      sync.Mutex
	nextID  uint64
	timers  map[uint64]*teaTimer
	pending []tea.Cmd
}

type teaTimer struct {
	id       uint64
	interval time.Duration
	fire     func()
	sched    *teaScheduler
}

func newTeaScheduler() *teaScheduler {
	return &teaScheduler{timers: make(map[uint64]*teaTimer)}
}

// Every arms a repeating timer. The first firing happens one interval after
// the queued command is run.
func (s *teaScheduler) Every(interval time.Duration, fire func()) snake.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	t := &teaTimer{id: s.nextID, interval: interval, fire: fire, sched: s}
	s.timers[t.id] = t
	s.pending = append(s.pending, t.cmd())
	return t
}

// Handle processes a timerMsg and reports whether msg was one.
func (s *teaScheduler) Handle(msg tea.Msg) bool {
	tm, ok := msg.(timerMsg)
	if !ok {
		return false
	}

	s.mu.Lock()
	t, live := s.timers[tm.id]
	s.mu.Unlock()
	if !live {
		return true
	}

	t.fire()

	// fire may have stopped this timer, e.g. on collision reset.
	s.mu.Lock()
	if _, live := s.timers[tm.id]; live {
		s.pending = append(s.pending, t.cmd())
	}
	s.mu.Unlock()
	return true
}

// Flush returns the commands queued since the last call.
func (s *teaScheduler) Flush() tea.Cmd {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.pending) == 0 {
		return nil
	}
	cmds := s.pending
	s.pending = nil
	return tea.Batch(cmds...)
}

// Active returns the number of armed timers.
func (s *teaScheduler) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// StopAll cancels every timer.
func (s *teaScheduler) StopAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.timers)
	s.pending = nil
}

func (t *teaTimer) cmd() tea.Cmd {
	id := t.id
	return tea.Tick(t.interval, func(time.Time) tea.Msg {
		return timerMsg{id: id}
	})
}

// Stop cancels the timer. A tick already in flight is ignored when it
// arrives.
func (t *teaTimer) Stop() {
	t.sched.mu.Lock()
	defer t.sched.mu.Unlock()
	delete(t.sched.timers, t.id)
}
